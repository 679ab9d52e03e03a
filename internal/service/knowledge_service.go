package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"maritime-assistant-be/internal/dto"
	"maritime-assistant-be/internal/entity"
	"maritime-assistant-be/internal/repository/unitofwork"
	"maritime-assistant-be/pkg/ai/fallback"
	"maritime-assistant-be/pkg/ai/router"
	"maritime-assistant-be/pkg/maritime"

	"github.com/google/uuid"
)

const KnowledgeResultLimit = 20

type IKnowledgeService interface {
	List(ctx context.Context, category string) ([]*dto.KnowledgeEntryResponse, error)
	Search(ctx context.Context, query, category string) ([]*dto.KnowledgeEntryResponse, error)
	// Seed inserts the reference entries into an empty knowledge base.
	Seed(ctx context.Context) (int, error)
	router.KnowledgeSource
}

type knowledgeService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewKnowledgeService(uowFactory unitofwork.RepositoryFactory) IKnowledgeService {
	return &knowledgeService{uowFactory: uowFactory}
}

func (s *knowledgeService) List(ctx context.Context, category string) ([]*dto.KnowledgeEntryResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	entries, err := uow.KnowledgeRepository().FindAll(ctx, category, KnowledgeResultLimit)
	if err != nil {
		return nil, err
	}
	return toKnowledgeResponses(entries), nil
}

func (s *knowledgeService) Search(ctx context.Context, query, category string) ([]*dto.KnowledgeEntryResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	entries, err := uow.KnowledgeRepository().Search(ctx, strings.TrimSpace(query), category, KnowledgeResultLimit)
	if err != nil {
		return nil, err
	}
	return toKnowledgeResponses(entries), nil
}

// Relevant ranks entries by how many query terms they mention, then by stored
// relevance. For a specific category every entry of that category qualifies;
// for general queries only entries mentioning a term do.
func (s *knowledgeService) Relevant(ctx context.Context, query string, category maritime.Category, limit int) ([]fallback.Snippet, error) {
	scope := category.String()
	if category == maritime.CategoryGeneral {
		scope = ""
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	candidates, err := uow.KnowledgeRepository().FindAll(ctx, scope, 0)
	if err != nil {
		return nil, err
	}

	terms := queryTerms(query)
	type scored struct {
		entry *entity.KnowledgeEntry
		hits  int
	}
	var ranked []scored
	for _, e := range candidates {
		text := strings.ToLower(e.Title + " " + e.Content)
		hits := 0
		for _, t := range terms {
			if strings.Contains(text, t) {
				hits++
			}
		}
		if hits == 0 && scope == "" {
			continue
		}
		ranked = append(ranked, scored{entry: e, hits: hits})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].hits != ranked[j].hits {
			return ranked[i].hits > ranked[j].hits
		}
		return ranked[i].entry.RelevanceScore > ranked[j].entry.RelevanceScore
	})

	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	snippets := make([]fallback.Snippet, len(ranked))
	for i, r := range ranked {
		snippets[i] = fallback.Snippet{Title: r.entry.Title, Content: r.entry.Content}
	}
	return snippets, nil
}

var stopWords = map[string]bool{
	"what": true, "when": true, "where": true, "which": true, "with": true,
	"from": true, "that": true, "this": true, "there": true, "about": true,
	"does": true, "have": true, "should": true, "would": true, "could": true,
}

func queryTerms(query string) []string {
	var terms []string
	seen := make(map[string]bool)
	for _, w := range strings.FieldsFunc(strings.ToLower(query), func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9')
	}) {
		if len(w) <= 3 || stopWords[w] || seen[w] {
			continue
		}
		seen[w] = true
		terms = append(terms, w)
	}
	return terms
}

var seedEntries = []entity.KnowledgeEntry{
	{
		Category:       maritime.CategoryLaytime.String(),
		Title:          "Laytime Calculation Basics",
		Content:        "Laytime is the time allowed for loading and discharging cargo. It begins when the vessel tenders Notice of Readiness (NOR) and ends when cargo operations are completed.",
		RelevanceScore: 1,
		Tags:           []string{"laytime", "loading", "discharging", "NOR", "notice of readiness"},
	},
	{
		Category:       maritime.CategoryCPClause.String(),
		Title:          "Weather Working Days",
		Content:        "Weather Working Days (WWD) exclude time when weather conditions prevent cargo operations. This clause protects charterers from delays due to adverse weather.",
		RelevanceScore: 1,
		Tags:           []string{"weather working days", "WWD", "weather", "cargo operations"},
	},
	{
		Category:       maritime.CategoryCPClause.String(),
		Title:          "Demurrage and Dispatch",
		Content:        "Demurrage is compensation paid when laytime is exceeded. Dispatch is a reward for completing operations ahead of schedule.",
		RelevanceScore: 1,
		Tags:           []string{"demurrage", "dispatch", "laytime", "compensation"},
	},
	{
		Category:       maritime.CategoryDistance.String(),
		Title:          "Great Circle Distance",
		Content:        "Great circle distance is the shortest distance between two points on a sphere, commonly used for voyage planning and fuel calculations.",
		RelevanceScore: 1,
		Tags:           []string{"great circle", "distance", "voyage planning", "fuel"},
	},
}

func (s *knowledgeService) Seed(ctx context.Context) (int, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	count, err := uow.KnowledgeRepository().Count(ctx)
	if err != nil {
		return 0, err
	}
	if count > 0 {
		return 0, nil
	}

	now := time.Now()
	entries := make([]*entity.KnowledgeEntry, len(seedEntries))
	for i := range seedEntries {
		e := seedEntries[i]
		e.Id = uuid.New()
		e.CreatedAt = now
		e.Tags = append([]string(nil), e.Tags...)
		entries[i] = &e
	}
	if err := uow.KnowledgeRepository().CreateMany(ctx, entries); err != nil {
		return 0, err
	}
	return len(entries), nil
}

func toKnowledgeResponses(entries []*entity.KnowledgeEntry) []*dto.KnowledgeEntryResponse {
	out := make([]*dto.KnowledgeEntryResponse, 0, len(entries))
	for _, e := range entries {
		tags := e.Tags
		if tags == nil {
			tags = []string{}
		}
		out = append(out, &dto.KnowledgeEntryResponse{
			Id:             e.Id,
			DocumentId:     e.DocumentId,
			Title:          e.Title,
			Content:        e.Content,
			Category:       e.Category,
			RelevanceScore: e.RelevanceScore,
			Tags:           tags,
			CreatedAt:      e.CreatedAt,
		})
	}
	return out
}
