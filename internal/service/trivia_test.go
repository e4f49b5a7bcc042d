package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zizouhuweidi/trivia/internal/domain"
	"github.com/zizouhuweidi/trivia/internal/repository/memory"
)

var seedCategories = []domain.Category{
	{ID: 1, Type: "Science"},
	{ID: 2, Type: "Art"},
	{ID: 3, Type: "Geography"},
}

// seedQuestions returns n questions spread round-robin over categories 1 and 2
func seedQuestions(n int) []domain.Question {
	qs := make([]domain.Question, 0, n)
	for i := 1; i <= n; i++ {
		qs = append(qs, domain.Question{
			ID:         i,
			Question:   fmt.Sprintf("Question %d", i),
			Answer:     fmt.Sprintf("Answer %d", i),
			Category:   (i-1)%2 + 1,
			Difficulty: 1,
		})
	}
	return qs
}

type recorder struct {
	events []string
}

func (r *recorder) Publish(eventType string, _ any) {
	r.events = append(r.events, eventType)
}

func newService(t *testing.T, n int, opts ...Option) *TriviaService {
	t.Helper()
	store := memory.NewStore(seedCategories, seedQuestions(n))
	return NewTriviaService(store.Questions(), store.Categories(), opts...)
}

func ptr[T any](v T) *T { return &v }

func TestListCategories(t *testing.T) {
	svc := newService(t, 0)

	cats, err := svc.ListCategories(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.Categories{1: "Science", 2: "Art", 3: "Geography"}, cats)
}

func TestListCategoriesEmpty(t *testing.T) {
	store := memory.NewStore(nil, nil)
	svc := NewTriviaService(store.Questions(), store.Categories())

	_, err := svc.ListCategories(context.Background())
	assert.ErrorIs(t, err, domain.ErrNoCategories)
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
}

func TestListQuestionsPagination(t *testing.T) {
	svc := newService(t, 23)
	ctx := context.Background()

	tests := []struct {
		page    int
		want    int
		firstID int
	}{
		{page: 1, want: 10, firstID: 1},
		{page: 2, want: 10, firstID: 11},
		{page: 3, want: 3, firstID: 21},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("page %d", tt.page), func(t *testing.T) {
			page, err := svc.ListQuestions(ctx, tt.page)
			require.NoError(t, err)
			assert.Len(t, page.Questions, tt.want)
			assert.Equal(t, tt.firstID, page.Questions[0].ID)
			assert.Equal(t, 23, page.TotalQuestions)
			assert.Equal(t, AllCategories, page.CurrentCategory)
			assert.Len(t, page.Categories, 3)
		})
	}
}

func TestListQuestionsOutOfRange(t *testing.T) {
	svc := newService(t, 23)

	for _, page := range []int{0, -1, 4, 1000} {
		_, err := svc.ListQuestions(context.Background(), page)
		assert.ErrorIs(t, err, domain.ErrPageNotFound, "page %d", page)
		assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
	}
}

func TestListQuestionsEmptyStore(t *testing.T) {
	svc := newService(t, 0)

	_, err := svc.ListQuestions(context.Background(), 1)
	assert.ErrorIs(t, err, domain.ErrPageNotFound)
}

func TestListByCategory(t *testing.T) {
	svc := newService(t, 23)

	page, err := svc.ListByCategory(context.Background(), 1, 1)
	require.NoError(t, err)
	assert.Len(t, page.Questions, 10)
	assert.Equal(t, "Science", page.CurrentCategory)
	for _, q := range page.Questions {
		assert.Equal(t, 1, q.Category)
	}

	// category 1 holds 12 questions; the second page carries the rest
	page, err = svc.ListByCategory(context.Background(), 1, 2)
	require.NoError(t, err)
	assert.Len(t, page.Questions, 2)
	assert.Equal(t, 2, page.TotalQuestions)
}

func TestListByCategoryNotFound(t *testing.T) {
	svc := newService(t, 23)
	ctx := context.Background()

	_, err := svc.ListByCategory(ctx, 100, 1)
	assert.ErrorIs(t, err, domain.ErrCategoryNotFound)

	_, err = svc.ListByCategory(ctx, 0, 1)
	assert.ErrorIs(t, err, domain.ErrCategoryNotFound)

	// category exists but has no questions
	_, err = svc.ListByCategory(ctx, 3, 1)
	assert.ErrorIs(t, err, domain.ErrPageNotFound)

	_, err = svc.ListByCategory(ctx, 1, 0)
	assert.ErrorIs(t, err, domain.ErrPageNotFound)
}

func TestSearchQuestions(t *testing.T) {
	store := memory.NewStore(seedCategories, []domain.Question{
		{ID: 1, Question: "Which American artist painted drips?", Answer: "Pollock", Category: 2, Difficulty: 2},
		{ID: 2, Question: "What is the largest lake in Africa?", Answer: "Lake Victoria", Category: 3, Difficulty: 2},
		{ID: 3, Question: "Where is the AMERICAN Museum of Natural History?", Answer: "New York", Category: 3, Difficulty: 1},
	})
	svc := NewTriviaService(store.Questions(), store.Categories())

	page, err := svc.SearchQuestions(context.Background(), "american")
	require.NoError(t, err)
	require.Len(t, page.Questions, 2)
	assert.Equal(t, 1, page.Questions[0].ID)
	assert.Equal(t, 3, page.Questions[1].ID)
	assert.Equal(t, 2, page.TotalQuestions)

	page, err = svc.SearchQuestions(context.Background(), "blabla")
	require.NoError(t, err)
	assert.Empty(t, page.Questions)
	assert.NotNil(t, page.Questions)
	assert.Equal(t, 0, page.TotalQuestions)
}

func TestCreateQuestion(t *testing.T) {
	events := &recorder{}
	svc := newService(t, 5, WithEvents(events))
	ctx := context.Background()

	id, err := svc.CreateQuestion(ctx, &domain.NewQuestion{
		Question:   ptr("What is the color of the sky"),
		Answer:     ptr("blue"),
		Category:   ptr(2),
		Difficulty: ptr(1),
	})
	require.NoError(t, err)
	assert.Equal(t, 6, id)

	deleted, err := svc.DeleteQuestion(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, id, deleted)

	assert.Equal(t, []string{domain.EventQuestionCreated, domain.EventQuestionDeleted}, events.events)
}

func TestCreateQuestionInvalid(t *testing.T) {
	svc := newService(t, 5)

	tests := []struct {
		name string
		q    *domain.NewQuestion
	}{
		{"empty answer", &domain.NewQuestion{Question: ptr("What is the color of the sky blue ?"), Answer: ptr(""), Category: ptr(2), Difficulty: ptr(1)}},
		{"missing answer", &domain.NewQuestion{Question: ptr("Q"), Category: ptr(2), Difficulty: ptr(1)}},
		{"missing category", &domain.NewQuestion{Question: ptr("Q"), Answer: ptr("A"), Difficulty: ptr(1)}},
		{"nothing", &domain.NewQuestion{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateQuestion(context.Background(), tt.q)
			assert.Equal(t, domain.KindValidationFailed, domain.KindOf(err))
		})
	}
}

func TestDeleteQuestionTwice(t *testing.T) {
	svc := newService(t, 5)
	ctx := context.Background()

	_, err := svc.DeleteQuestion(ctx, 3)
	require.NoError(t, err)

	_, err = svc.DeleteQuestion(ctx, 3)
	assert.ErrorIs(t, err, domain.ErrQuestionNotFound)
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
}

func TestNextQuizQuestionInCategory(t *testing.T) {
	svc := newService(t, 10)
	ctx := context.Background()

	seen := []int{}
	for {
		q, err := svc.NextQuizQuestion(ctx, &domain.QuizRequest{
			PreviousQuestions: seen,
			QuizCategory:      &domain.QuizCategory{ID: ptr(2), Type: "Art"},
		})
		require.NoError(t, err)
		if q == nil {
			break
		}
		assert.Equal(t, 2, q.Category)
		assert.NotContains(t, seen, q.ID)
		seen = append(seen, q.ID)
	}

	assert.ElementsMatch(t, []int{2, 4, 6, 8, 10}, seen)
}

func TestNextQuizQuestionAllCategories(t *testing.T) {
	// always draw the last candidate
	svc := newService(t, 4, WithRandom(func(n int) int { return n - 1 }))

	q, err := svc.NextQuizQuestion(context.Background(), &domain.QuizRequest{
		PreviousQuestions: []int{4},
		QuizCategory:      &domain.QuizCategory{ID: ptr(0), Type: "click"},
	})
	require.NoError(t, err)
	require.NotNil(t, q)
	assert.Equal(t, 3, q.ID)
}

func TestNextQuizQuestionUnknownCategory(t *testing.T) {
	svc := newService(t, 4)

	q, err := svc.NextQuizQuestion(context.Background(), &domain.QuizRequest{
		PreviousQuestions: []int{},
		QuizCategory:      &domain.QuizCategory{ID: ptr(10)},
	})
	require.NoError(t, err)
	assert.Nil(t, q)
}

func TestNextQuizQuestionInvalid(t *testing.T) {
	svc := newService(t, 4)

	tests := []struct {
		name string
		req  *domain.QuizRequest
	}{
		{"empty body", &domain.QuizRequest{}},
		{"missing category", &domain.QuizRequest{PreviousQuestions: []int{}}},
		{"missing category id", &domain.QuizRequest{PreviousQuestions: []int{}, QuizCategory: &domain.QuizCategory{Type: "Art"}}},
		{"missing previous questions", &domain.QuizRequest{QuizCategory: &domain.QuizCategory{ID: ptr(1)}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.NextQuizQuestion(context.Background(), tt.req)
			assert.Equal(t, domain.KindValidationFailed, domain.KindOf(err))
		})
	}
}

type failingQuestions struct {
	domain.QuestionRepository
}

func (failingQuestions) List(context.Context, domain.QuestionFilter) ([]*domain.Question, error) {
	return nil, domain.E(domain.KindStoreUnavailable, "question.list", errors.New("connection refused"))
}

func TestStoreErrorsKeepTheirKind(t *testing.T) {
	store := memory.NewStore(seedCategories, nil)
	svc := NewTriviaService(failingQuestions{}, store.Categories())

	_, err := svc.ListQuestions(context.Background(), 1)
	assert.Equal(t, domain.KindStoreUnavailable, domain.KindOf(err))
}
