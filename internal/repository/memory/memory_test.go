package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zizouhuweidi/trivia/internal/domain"
)

func newStore() *Store {
	return NewStore(
		[]domain.Category{{ID: 2, Type: "Art"}, {ID: 1, Type: "Science"}},
		[]domain.Question{
			{ID: 3, Question: "Which American artist was a pioneer of Abstract Expressionism?", Answer: "Jackson Pollock", Category: 2, Difficulty: 2},
			{ID: 1, Question: "What is the heaviest organ in the human body?", Answer: "The Liver", Category: 1, Difficulty: 4},
			{ID: 2, Question: "Who discovered penicillin?", Answer: "Alexander Fleming", Category: 1, Difficulty: 3},
		},
	)
}

func TestListOrdersAndPages(t *testing.T) {
	repo := newStore().Questions()
	ctx := context.Background()

	all, err := repo.List(ctx, domain.QuestionFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []int{1, 2, 3}, []int{all[0].ID, all[1].ID, all[2].ID})

	page, err := repo.List(ctx, domain.QuestionFilter{CategoryID: 1, Limit: 1, Offset: 1})
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, 2, page[0].ID)

	beyond, err := repo.List(ctx, domain.QuestionFilter{Limit: 10, Offset: 10})
	require.NoError(t, err)
	assert.Empty(t, beyond)

	count, err := repo.Count(ctx, domain.QuestionFilter{CategoryID: 1, Limit: 1})
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestSearchIgnoresCase(t *testing.T) {
	repo := newStore().Questions()

	found, err := repo.Search(context.Background(), "american")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, 3, found[0].ID)
}

func TestCreateAndDelete(t *testing.T) {
	repo := newStore().Questions()
	ctx := context.Background()

	text, answer, category, difficulty := "What is the color of the sky", "blue", 2, 1
	id, err := repo.Create(ctx, &domain.NewQuestion{Question: &text, Answer: &answer, Category: &category, Difficulty: &difficulty})
	require.NoError(t, err)
	assert.Equal(t, 4, id)

	require.NoError(t, repo.Delete(ctx, id))
	err = repo.Delete(ctx, id)
	assert.ErrorIs(t, err, domain.ErrQuestionNotFound)

	empty := ""
	_, err = repo.Create(ctx, &domain.NewQuestion{Question: &text, Answer: &empty, Category: &category, Difficulty: &difficulty})
	assert.Equal(t, domain.KindConstraintViolation, domain.KindOf(err))
}

func TestListUnseen(t *testing.T) {
	repo := newStore().Questions()

	unseen, err := repo.ListUnseen(context.Background(), 1, []int{1})
	require.NoError(t, err)
	require.Len(t, unseen, 1)
	assert.Equal(t, 2, unseen[0].ID)
}

func TestCategories(t *testing.T) {
	repo := newStore().Categories()

	all, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []*domain.Category{{ID: 1, Type: "Science"}, {ID: 2, Type: "Art"}}, all)

	_, err = repo.GetByID(context.Background(), 100)
	assert.ErrorIs(t, err, domain.ErrCategoryNotFound)
}
