package service

import (
	"context"
	"testing"

	"maritime-assistant-be/internal/entity"
	"maritime-assistant-be/internal/repository/contract"
	"maritime-assistant-be/internal/repository/memory"
	"maritime-assistant-be/internal/repository/unitofwork"
	"maritime-assistant-be/pkg/maritime"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKnowledgeSeedIsIdempotent(t *testing.T) {
	svc := newHarness(t, nil).knowledge

	n, err := svc.Seed(ctx())
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	n, err = svc.Seed(ctx())
	require.NoError(t, err)
	assert.Zero(t, n)

	all, err := svc.List(ctx(), "")
	require.NoError(t, err)
	assert.Len(t, all, 4)

	clauses, err := svc.List(ctx(), "cp_clause")
	require.NoError(t, err)
	assert.Len(t, clauses, 2)
}

func TestKnowledgeSearch(t *testing.T) {
	svc := newHarness(t, nil).knowledge
	_, err := svc.Seed(ctx())
	require.NoError(t, err)

	hits, err := svc.Search(ctx(), "demurrage", "")
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "Demurrage and Dispatch", hits[0].Title)

	hits, err = svc.Search(ctx(), "demurrage", "distance")
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestKnowledgeRelevant(t *testing.T) {
	svc := newHarness(t, nil).knowledge
	_, err := svc.Seed(ctx())
	require.NoError(t, err)

	// Category scope keeps every clause entry, best term match first.
	snippets, err := svc.Relevant(ctx(), "what does demurrage mean", maritime.CategoryCPClause, 5)
	require.NoError(t, err)
	require.Len(t, snippets, 2)
	assert.Equal(t, "Demurrage and Dispatch", snippets[0].Title)

	// General queries only see entries that mention a term.
	snippets, err = svc.Relevant(ctx(), "explain great circle sailing", maritime.CategoryGeneral, 5)
	require.NoError(t, err)
	require.Len(t, snippets, 1)
	assert.Equal(t, "Great Circle Distance", snippets[0].Title)

	snippets, err = svc.Relevant(ctx(), "hello", maritime.CategoryGeneral, 5)
	require.NoError(t, err)
	assert.Empty(t, snippets)
}

// unorderedFactory hands out a knowledge repository whose FindAll returns
// rows in reverse relevance order.
type unorderedFactory struct {
	unitofwork.RepositoryFactory
}

func (f unorderedFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return unorderedUnitOfWork{f.RepositoryFactory.NewUnitOfWork(ctx)}
}

type unorderedUnitOfWork struct {
	unitofwork.UnitOfWork
}

func (u unorderedUnitOfWork) KnowledgeRepository() contract.KnowledgeRepository {
	return reversedKnowledge{u.UnitOfWork.KnowledgeRepository()}
}

type reversedKnowledge struct {
	contract.KnowledgeRepository
}

func (r reversedKnowledge) FindAll(ctx context.Context, category string, n int) ([]*entity.KnowledgeEntry, error) {
	rows, err := r.KnowledgeRepository.FindAll(ctx, category, n)
	for i, j := 0, len(rows)-1; i < j; i, j = i+1, j-1 {
		rows[i], rows[j] = rows[j], rows[i]
	}
	return rows, err
}

func TestKnowledgeRelevantBreaksTiesOnStoredRelevance(t *testing.T) {
	factory := unitofwork.NewMemoryRepositoryFactory(memory.NewStore())
	require.NoError(t, factory.NewUnitOfWork(ctx()).KnowledgeRepository().CreateMany(ctx(), []*entity.KnowledgeEntry{
		{Title: "Laytime exceptions", Content: "laytime stops for rain", Category: "laytime", RelevanceScore: 0.4},
		{Title: "Laytime basics", Content: "laytime commences after NOR", Category: "laytime", RelevanceScore: 0.95},
		{Title: "Laytime reversible", Content: "laytime pooled across ports", Category: "laytime", RelevanceScore: 0.7},
	}))

	svc := NewKnowledgeService(unorderedFactory{factory})
	snippets, err := svc.Relevant(ctx(), "explain laytime", maritime.CategoryLaytime, 5)
	require.NoError(t, err)
	require.Len(t, snippets, 3)
	assert.Equal(t, "Laytime basics", snippets[0].Title)
	assert.Equal(t, "Laytime reversible", snippets[1].Title)
	assert.Equal(t, "Laytime exceptions", snippets[2].Title)
}

func TestQueryTerms(t *testing.T) {
	assert.Equal(t, []string{"demurrage", "rate", "santos"}, queryTerms("What's the demurrage rate at Santos? demurrage"))
}
