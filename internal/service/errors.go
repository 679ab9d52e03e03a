package service

import "errors"

var (
	ErrConversationNotFound = errors.New("conversation not found")
	ErrDocumentNotFound     = errors.New("document not found")
	ErrUserNotFound         = errors.New("user not found")

	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")

	ErrUnsupportedFileType = errors.New("only text and markdown files are supported")
	ErrFileTooLarge        = errors.New("file exceeds the 10 MB limit")
	ErrEmptyFile           = errors.New("file is empty")

	ErrInvalidTime   = errors.New("invalid date/time format")
	ErrAPIKeyMissing = errors.New("API key is required")
)
