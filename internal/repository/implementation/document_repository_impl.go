package implementation

import (
	"context"
	"errors"

	"maritime-assistant-be/internal/entity"
	"maritime-assistant-be/internal/mapper"
	"maritime-assistant-be/internal/model"
	"maritime-assistant-be/internal/repository/contract"
	"maritime-assistant-be/internal/repository/scope"
	"maritime-assistant-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DocumentRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.DocumentMapper
}

func NewDocumentRepository(db *gorm.DB) contract.DocumentRepository {
	return &DocumentRepositoryImpl{
		db:     db,
		mapper: mapper.NewDocumentMapper(),
	}
}

func (r *DocumentRepositoryImpl) Create(ctx context.Context, document *entity.Document) error {
	m := r.mapper.ToModel(document)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*document = *r.mapper.ToEntity(m)
	return nil
}

func (r *DocumentRepositoryImpl) Update(ctx context.Context, document *entity.Document) error {
	m := r.mapper.ToModel(document)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*document = *r.mapper.ToEntity(m)
	return nil
}

func (r *DocumentRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Document{}, "id = ?", id).Error
}

func (r *DocumentRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*entity.Document, error) {
	var m model.Document
	query := specification.ApplyAll(r.db.WithContext(ctx), specification.ByID{ID: id})
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *DocumentRepositoryImpl) FindAll(ctx context.Context) ([]*entity.Document, error) {
	return r.find(ctx)
}

func (r *DocumentRepositoryImpl) Search(ctx context.Context, query string) ([]*entity.Document, error) {
	return r.find(ctx, specification.TextSearch{Query: query, Columns: []string{"original_name", "content"}})
}

func (r *DocumentRepositoryImpl) find(ctx context.Context, specs ...specification.Specification) ([]*entity.Document, error) {
	var models []*model.Document
	query := specification.ApplyAll(r.db.WithContext(ctx), specs...)
	if err := query.Scopes(scope.OrderByCreatedDesc).Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

type KnowledgeRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.KnowledgeMapper
}

func NewKnowledgeRepository(db *gorm.DB) contract.KnowledgeRepository {
	return &KnowledgeRepositoryImpl{
		db:     db,
		mapper: mapper.NewKnowledgeMapper(),
	}
}

func (r *KnowledgeRepositoryImpl) CreateMany(ctx context.Context, entries []*entity.KnowledgeEntry) error {
	if len(entries) == 0 {
		return nil
	}
	models := r.mapper.ToModels(entries)
	if err := r.db.WithContext(ctx).Create(&models).Error; err != nil {
		return err
	}
	for i, m := range models {
		*entries[i] = *r.mapper.ToEntity(m)
	}
	return nil
}

func (r *KnowledgeRepositoryImpl) FindAll(ctx context.Context, category string, limit int) ([]*entity.KnowledgeEntry, error) {
	return r.find(ctx, specification.ByCategory{Category: category}, specification.Limit{N: limit})
}

func (r *KnowledgeRepositoryImpl) Search(ctx context.Context, query, category string, limit int) ([]*entity.KnowledgeEntry, error) {
	return r.find(ctx,
		specification.TextSearch{Query: query, Columns: []string{"title", "content"}},
		specification.ByCategory{Category: category},
		specification.Limit{N: limit},
	)
}

func (r *KnowledgeRepositoryImpl) DeleteByDocument(ctx context.Context, documentId uuid.UUID) error {
	query := specification.ApplyAll(r.db.WithContext(ctx), specification.ByDocumentID{DocumentID: documentId})
	return query.Delete(&model.KnowledgeEntry{}).Error
}

func (r *KnowledgeRepositoryImpl) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.KnowledgeEntry{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *KnowledgeRepositoryImpl) find(ctx context.Context, specs ...specification.Specification) ([]*entity.KnowledgeEntry, error) {
	var models []*model.KnowledgeEntry
	query := specification.ApplyAll(r.db.WithContext(ctx).Scopes(scope.OrderByRelevanceDesc), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}
