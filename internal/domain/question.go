package domain

import "context"

// Question represents a trivia question
type Question struct {
	ID         int    `json:"id"`
	Question   string `json:"question"`
	Answer     string `json:"answer"`
	Category   int    `json:"category"`
	Difficulty int    `json:"difficulty"`
}

// Category represents a question category. Categories are seed data.
type Category struct {
	ID   int    `json:"id"`
	Type string `json:"type"`
}

// Categories maps category id to category type. It marshals as a JSON object
// keyed by the id so clients can index it directly.
type Categories map[int]string

// NewCategories builds the id to type mapping from a category list
func NewCategories(categories []*Category) Categories {
	m := make(Categories, len(categories))
	for _, c := range categories {
		m[c.ID] = c.Type
	}
	return m
}

// QuestionFilter narrows a question listing
type QuestionFilter struct {
	// CategoryID restricts results to one category when non-zero
	CategoryID int
	Limit      int
	Offset     int
}

// QuestionRepository defines the interface for question-related operations
type QuestionRepository interface {
	// List retrieves questions ordered by id
	List(ctx context.Context, filter QuestionFilter) ([]*Question, error)

	// Count returns the number of questions matching the filter, ignoring paging
	Count(ctx context.Context, filter QuestionFilter) (int, error)

	// Search retrieves questions whose text contains term, case-insensitively
	Search(ctx context.Context, term string) ([]*Question, error)

	// ListUnseen retrieves questions not in exclude, optionally limited to a category
	ListUnseen(ctx context.Context, categoryID int, exclude []int) ([]*Question, error)

	// GetByID retrieves a question by its ID
	GetByID(ctx context.Context, id int) (*Question, error)

	// Create inserts a question and returns its ID
	Create(ctx context.Context, question *NewQuestion) (int, error)

	// Delete deletes a question
	Delete(ctx context.Context, id int) error
}

// CategoryRepository defines the interface for category lookups
type CategoryRepository interface {
	// List retrieves all categories ordered by id
	List(ctx context.Context) ([]*Category, error)

	// GetByID retrieves a category by its ID
	GetByID(ctx context.Context, id int) (*Category, error)
}

// NewQuestion carries the fields of a question to be created. Any field may
// be absent; absent fields are stored as NULL.
type NewQuestion struct {
	Question   *string `validate:"required,min=1"`
	Answer     *string `validate:"required,min=1"`
	Category   *int    `validate:"required"`
	Difficulty *int    `validate:"required"`
}

// QuizCategory identifies the category a quiz is played in. An ID of zero
// means all categories.
type QuizCategory struct {
	ID   *int `validate:"required"`
	Type string
}

// QuizRequest asks for the next unseen quiz question
type QuizRequest struct {
	PreviousQuestions []int         `validate:"required"`
	QuizCategory      *QuizCategory `validate:"required"`
}

// EventPublisher fans out question lifecycle events
type EventPublisher interface {
	Publish(eventType string, payload any)
}

// Question lifecycle event types
const (
	EventQuestionCreated = "question.created"
	EventQuestionDeleted = "question.deleted"
)
