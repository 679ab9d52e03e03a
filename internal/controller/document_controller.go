package controller

import (
	"errors"
	"io"

	"maritime-assistant-be/internal/dto"
	"maritime-assistant-be/internal/pkg/serverutils"
	"maritime-assistant-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IDocumentController interface {
	RegisterRoutes(r fiber.Router)
	Upload(ctx *fiber.Ctx) error
	GetAll(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	Search(ctx *fiber.Ctx) error
}

type documentController struct {
	service service.IDocumentService
}

func NewDocumentController(service service.IDocumentService) IDocumentController {
	return &documentController{service: service}
}

func (c *documentController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/documents")
	h.Post("/upload", c.Upload)
	h.Get("/search", c.Search)
	h.Get("", c.GetAll)
	h.Get(":id", c.Show)
	h.Delete(":id", c.Delete)
}

func documentError(err error) error {
	switch {
	case errors.Is(err, service.ErrDocumentNotFound):
		return fiber.NewError(fiber.StatusNotFound, "Document not found")
	case errors.Is(err, service.ErrFileTooLarge):
		return fiber.NewError(fiber.StatusRequestEntityTooLarge, err.Error())
	case errors.Is(err, service.ErrUnsupportedFileType), errors.Is(err, service.ErrEmptyFile):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return err
}

// Upload takes a multipart "file" field.
func (c *documentController) Upload(ctx *fiber.Ctx) error {
	header, err := ctx.FormFile("file")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "No file uploaded")
	}
	if header.Size > service.MaxUploadBytes {
		return documentError(service.ErrFileTooLarge)
	}

	file, err := header.Open()
	if err != nil {
		return err
	}
	defer file.Close()

	content, err := io.ReadAll(io.LimitReader(file, service.MaxUploadBytes+1))
	if err != nil {
		return err
	}

	res, err := c.service.Upload(ctx.UserContext(), &dto.UploadDocumentRequest{
		OriginalName: header.Filename,
		MimeType:     header.Header.Get("Content-Type"),
		Size:         header.Size,
		Content:      content,
	})
	if err != nil {
		return documentError(err)
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Document uploaded, processing started", res))
}

func (c *documentController) GetAll(ctx *fiber.Ctx) error {
	res, err := c.service.GetAll(ctx.UserContext())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get all documents", res))
}

func (c *documentController) Show(ctx *fiber.Ctx) error {
	id, err := parseID(ctx, "Document not found")
	if err != nil {
		return err
	}

	res, err := c.service.Show(ctx.UserContext(), id)
	if err != nil {
		return documentError(err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Success show document", res))
}

func (c *documentController) Delete(ctx *fiber.Ctx) error {
	id, err := parseID(ctx, "Document not found")
	if err != nil {
		return err
	}

	if err := c.service.Delete(ctx.UserContext(), id); err != nil {
		return documentError(err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Success delete document", nil))
}

func (c *documentController) Search(ctx *fiber.Ctx) error {
	query := ctx.Query("q")
	if query == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Query parameter q is required")
	}

	res, err := c.service.Search(ctx.UserContext(), query)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success search documents", res))
}
