package mapper

import (
	"maritime-assistant-be/internal/entity"
	"maritime-assistant-be/internal/model"
)

type DocumentMapper struct{}

func NewDocumentMapper() *DocumentMapper {
	return &DocumentMapper{}
}

func (m *DocumentMapper) ToEntity(d *model.Document) *entity.Document {
	if d == nil {
		return nil
	}
	return &entity.Document{
		Id:           d.Id,
		Filename:     d.Filename,
		OriginalName: d.OriginalName,
		MimeType:     d.MimeType,
		Size:         d.Size,
		Content:      d.Content,
		Summary:      d.Summary,
		DocumentType: d.DocumentType,
		Keywords:     append([]string(nil), d.Keywords...),
		Processed:    d.Processed,
		CreatedAt:    d.CreatedAt,
		ProcessedAt:  d.ProcessedAt,
	}
}

func (m *DocumentMapper) ToModel(d *entity.Document) *model.Document {
	if d == nil {
		return nil
	}
	return &model.Document{
		Id:           d.Id,
		Filename:     d.Filename,
		OriginalName: d.OriginalName,
		MimeType:     d.MimeType,
		Size:         d.Size,
		Content:      d.Content,
		Summary:      d.Summary,
		DocumentType: d.DocumentType,
		Keywords:     append([]string(nil), d.Keywords...),
		Processed:    d.Processed,
		CreatedAt:    d.CreatedAt,
		ProcessedAt:  d.ProcessedAt,
	}
}

func (m *DocumentMapper) ToEntities(documents []*model.Document) []*entity.Document {
	entities := make([]*entity.Document, len(documents))
	for i, d := range documents {
		entities[i] = m.ToEntity(d)
	}
	return entities
}

type KnowledgeMapper struct{}

func NewKnowledgeMapper() *KnowledgeMapper {
	return &KnowledgeMapper{}
}

func (m *KnowledgeMapper) ToEntity(k *model.KnowledgeEntry) *entity.KnowledgeEntry {
	if k == nil {
		return nil
	}
	return &entity.KnowledgeEntry{
		Id:             k.Id,
		DocumentId:     k.DocumentId,
		Title:          k.Title,
		Content:        k.Content,
		Category:       k.Category,
		RelevanceScore: k.RelevanceScore,
		Tags:           append([]string(nil), k.Tags...),
		CreatedAt:      k.CreatedAt,
	}
}

func (m *KnowledgeMapper) ToModel(k *entity.KnowledgeEntry) *model.KnowledgeEntry {
	if k == nil {
		return nil
	}
	return &model.KnowledgeEntry{
		Id:             k.Id,
		DocumentId:     k.DocumentId,
		Title:          k.Title,
		Content:        k.Content,
		Category:       k.Category,
		RelevanceScore: k.RelevanceScore,
		Tags:           append([]string(nil), k.Tags...),
		CreatedAt:      k.CreatedAt,
	}
}

func (m *KnowledgeMapper) ToEntities(entries []*model.KnowledgeEntry) []*entity.KnowledgeEntry {
	entities := make([]*entity.KnowledgeEntry, len(entries))
	for i, k := range entries {
		entities[i] = m.ToEntity(k)
	}
	return entities
}

func (m *KnowledgeMapper) ToModels(entries []*entity.KnowledgeEntry) []*model.KnowledgeEntry {
	models := make([]*model.KnowledgeEntry, len(entries))
	for i, k := range entries {
		models[i] = m.ToModel(k)
	}
	return models
}
