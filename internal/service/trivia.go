package service

import (
	"context"
	"math"
	"math/rand"

	"github.com/go-playground/validator/v10"
	"github.com/zizouhuweidi/trivia/internal/domain"
)

// QuestionsPerPage is the fixed page size of question listings
const QuestionsPerPage = 10

// AllCategories is the current category label of unfiltered listings
const AllCategories = "All"

// QuestionPage is one page of a question listing
type QuestionPage struct {
	Questions       []*domain.Question
	Categories      domain.Categories
	CurrentCategory string
	TotalQuestions  int
}

// TriviaService implements the question, category and quiz operations
type TriviaService struct {
	questions  domain.QuestionRepository
	categories domain.CategoryRepository
	events     domain.EventPublisher
	validate   *validator.Validate
	intn       func(n int) int
}

// Option configures a TriviaService
type Option func(*TriviaService)

// WithEvents publishes question lifecycle events to p
func WithEvents(p domain.EventPublisher) Option {
	return func(s *TriviaService) {
		s.events = p
	}
}

// WithRandom replaces the source used to draw quiz questions
func WithRandom(intn func(n int) int) Option {
	return func(s *TriviaService) {
		s.intn = intn
	}
}

// NewTriviaService creates a new trivia service
func NewTriviaService(questions domain.QuestionRepository, categories domain.CategoryRepository, opts ...Option) *TriviaService {
	s := &TriviaService{
		questions:  questions,
		categories: categories,
		events:     nopPublisher{},
		validate:   validator.New(),
		intn:       rand.Intn,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ListCategories returns every category keyed by id
func (s *TriviaService) ListCategories(ctx context.Context) (domain.Categories, error) {
	categories, err := s.categories.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(categories) == 0 {
		return nil, notFound("category.list", domain.ErrNoCategories)
	}
	return domain.NewCategories(categories), nil
}

// ListQuestions returns one page of all questions. TotalQuestions counts
// every question, not just the page.
func (s *TriviaService) ListQuestions(ctx context.Context, page int) (*QuestionPage, error) {
	const op = "question.list"

	offset, ok := pageOffset(page)
	if !ok {
		return nil, notFound(op, domain.ErrPageNotFound)
	}

	questions, err := s.questions.List(ctx, domain.QuestionFilter{Limit: QuestionsPerPage, Offset: offset})
	if err != nil {
		return nil, err
	}
	if len(questions) == 0 {
		return nil, notFound(op, domain.ErrPageNotFound)
	}

	total, err := s.questions.Count(ctx, domain.QuestionFilter{})
	if err != nil {
		return nil, err
	}

	categories, err := s.categories.List(ctx)
	if err != nil {
		return nil, err
	}

	return &QuestionPage{
		Questions:       questions,
		Categories:      domain.NewCategories(categories),
		CurrentCategory: AllCategories,
		TotalQuestions:  total,
	}, nil
}

// ListByCategory returns one page of a category's questions.
// TotalQuestions is the length of the returned page.
func (s *TriviaService) ListByCategory(ctx context.Context, categoryID, page int) (*QuestionPage, error) {
	const op = "category.questions"

	// zero selects every category in a QuestionFilter
	if categoryID <= 0 {
		return nil, notFound(op, domain.ErrCategoryNotFound)
	}

	category, err := s.categories.GetByID(ctx, categoryID)
	if err != nil {
		return nil, err
	}

	offset, ok := pageOffset(page)
	if !ok {
		return nil, notFound(op, domain.ErrPageNotFound)
	}

	questions, err := s.questions.List(ctx, domain.QuestionFilter{CategoryID: categoryID, Limit: QuestionsPerPage, Offset: offset})
	if err != nil {
		return nil, err
	}
	if len(questions) == 0 {
		return nil, notFound(op, domain.ErrPageNotFound)
	}

	return &QuestionPage{
		Questions:       questions,
		CurrentCategory: category.Type,
		TotalQuestions:  len(questions),
	}, nil
}

// SearchQuestions returns every question whose text contains term, ignoring
// case. No match is an empty result, not an error.
func (s *TriviaService) SearchQuestions(ctx context.Context, term string) (*QuestionPage, error) {
	questions, err := s.questions.Search(ctx, term)
	if err != nil {
		return nil, err
	}

	return &QuestionPage{
		Questions:       questions,
		CurrentCategory: AllCategories,
		TotalQuestions:  len(questions),
	}, nil
}

// CreateQuestion validates and stores a new question and returns its id
func (s *TriviaService) CreateQuestion(ctx context.Context, q *domain.NewQuestion) (int, error) {
	const op = "question.create"

	if err := s.validate.Struct(q); err != nil {
		return 0, invalid(op, err)
	}

	id, err := s.questions.Create(ctx, q)
	if err != nil {
		return 0, err
	}

	s.events.Publish(domain.EventQuestionCreated, &domain.Question{
		ID:         id,
		Question:   *q.Question,
		Answer:     *q.Answer,
		Category:   *q.Category,
		Difficulty: *q.Difficulty,
	})

	return id, nil
}

// DeleteQuestion removes a question and returns its id
func (s *TriviaService) DeleteQuestion(ctx context.Context, id int) (int, error) {
	question, err := s.questions.GetByID(ctx, id)
	if err != nil {
		return 0, err
	}

	if err := s.questions.Delete(ctx, question.ID); err != nil {
		return 0, err
	}

	s.events.Publish(domain.EventQuestionDeleted, map[string]int{"id": question.ID})

	return question.ID, nil
}

// NextQuizQuestion draws a random question the player has not seen yet.
// A nil question with a nil error means the quiz is exhausted.
func (s *TriviaService) NextQuizQuestion(ctx context.Context, req *domain.QuizRequest) (*domain.Question, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, invalid("quiz.next", err)
	}

	candidates, err := s.questions.ListUnseen(ctx, *req.QuizCategory.ID, req.PreviousQuestions)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, nil
	}

	return candidates[s.intn(len(candidates))], nil
}

// pageOffset converts a 1-indexed page number to a row offset
func pageOffset(page int) (int, bool) {
	if page < 1 || page > math.MaxInt/QuestionsPerPage {
		return 0, false
	}
	return (page - 1) * QuestionsPerPage, true
}

type nopPublisher struct{}

func (nopPublisher) Publish(string, any) {}
