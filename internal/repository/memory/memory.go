// Package memory provides in-process question and category repositories
// with the same ordering and filtering semantics as the postgres ones.
package memory

import (
	"context"
	"errors"
	"slices"
	"strings"
	"sync"

	"github.com/zizouhuweidi/trivia/internal/domain"
)

// Store holds questions and categories in memory
type Store struct {
	mu         sync.RWMutex
	questions  []domain.Question
	categories []domain.Category
	nextID     int
}

// NewStore creates a store seeded with categories and questions. Seeded
// question ids are kept; new ids continue after the highest one.
func NewStore(categories []domain.Category, questions []domain.Question) *Store {
	s := &Store{
		categories: slices.Clone(categories),
		questions:  slices.Clone(questions),
	}
	slices.SortFunc(s.categories, func(a, b domain.Category) int { return a.ID - b.ID })
	slices.SortFunc(s.questions, func(a, b domain.Question) int { return a.ID - b.ID })
	for _, q := range s.questions {
		s.nextID = max(s.nextID, q.ID)
	}
	return s
}

// Questions returns a domain.QuestionRepository backed by the store
func (s *Store) Questions() *QuestionRepository {
	return &QuestionRepository{s: s}
}

// Categories returns a domain.CategoryRepository backed by the store
func (s *Store) Categories() *CategoryRepository {
	return &CategoryRepository{s: s}
}

// QuestionRepository implements domain.QuestionRepository
type QuestionRepository struct {
	s *Store
}

func (r *QuestionRepository) match(filter domain.QuestionFilter) []*domain.Question {
	out := []*domain.Question{}
	for i := range r.s.questions {
		q := r.s.questions[i]
		if filter.CategoryID == 0 || q.Category == filter.CategoryID {
			out = append(out, &q)
		}
	}
	return out
}

// List retrieves questions ordered by id
func (r *QuestionRepository) List(_ context.Context, filter domain.QuestionFilter) ([]*domain.Question, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	all := r.match(filter)
	start := min(filter.Offset, len(all))
	end := len(all)
	if filter.Limit > 0 {
		end = min(start+filter.Limit, len(all))
	}
	return all[start:end], nil
}

// Count returns the number of questions in the filter's category
func (r *QuestionRepository) Count(_ context.Context, filter domain.QuestionFilter) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return len(r.match(domain.QuestionFilter{CategoryID: filter.CategoryID})), nil
}

// Search retrieves questions whose text contains term, ignoring case
func (r *QuestionRepository) Search(_ context.Context, term string) ([]*domain.Question, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	term = strings.ToLower(term)
	out := []*domain.Question{}
	for _, q := range r.match(domain.QuestionFilter{}) {
		if strings.Contains(strings.ToLower(q.Question), term) {
			out = append(out, q)
		}
	}
	return out, nil
}

// ListUnseen retrieves questions not in exclude, optionally in one category
func (r *QuestionRepository) ListUnseen(_ context.Context, categoryID int, exclude []int) ([]*domain.Question, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := []*domain.Question{}
	for _, q := range r.match(domain.QuestionFilter{CategoryID: categoryID}) {
		if !slices.Contains(exclude, q.ID) {
			out = append(out, q)
		}
	}
	return out, nil
}

// GetByID retrieves a question by its ID
func (r *QuestionRepository) GetByID(_ context.Context, id int) (*domain.Question, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, q := range r.s.questions {
		if q.ID == id {
			return &q, nil
		}
	}
	return nil, domain.E(domain.KindNotFound, "question.get", domain.ErrQuestionNotFound)
}

// Create stores a question. Nil or empty text and answer are rejected the
// way NOT NULL and CHECK constraints reject them in the database.
func (r *QuestionRepository) Create(_ context.Context, q *domain.NewQuestion) (int, error) {
	if q.Question == nil || q.Answer == nil || q.Category == nil || q.Difficulty == nil ||
		*q.Question == "" || *q.Answer == "" {
		return 0, domain.E(domain.KindConstraintViolation, "question.create", errNullField)
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.nextID++
	r.s.questions = append(r.s.questions, domain.Question{
		ID:         r.s.nextID,
		Question:   *q.Question,
		Answer:     *q.Answer,
		Category:   *q.Category,
		Difficulty: *q.Difficulty,
	})
	return r.s.nextID, nil
}

// Delete deletes a question
func (r *QuestionRepository) Delete(_ context.Context, id int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	i := slices.IndexFunc(r.s.questions, func(q domain.Question) bool { return q.ID == id })
	if i < 0 {
		return domain.E(domain.KindNotFound, "question.delete", domain.ErrQuestionNotFound)
	}
	r.s.questions = slices.Delete(r.s.questions, i, i+1)
	return nil
}

// CategoryRepository implements domain.CategoryRepository
type CategoryRepository struct {
	s *Store
}

// List retrieves all categories ordered by id
func (r *CategoryRepository) List(_ context.Context) ([]*domain.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]*domain.Category, 0, len(r.s.categories))
	for i := range r.s.categories {
		c := r.s.categories[i]
		out = append(out, &c)
	}
	return out, nil
}

// GetByID retrieves a category by its ID
func (r *CategoryRepository) GetByID(_ context.Context, id int) (*domain.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, c := range r.s.categories {
		if c.ID == id {
			return &c, nil
		}
	}
	return nil, domain.E(domain.KindNotFound, "category.get", domain.ErrCategoryNotFound)
}

var errNullField = errors.New("null value violates not-null constraint")
