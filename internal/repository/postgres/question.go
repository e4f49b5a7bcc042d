package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/zizouhuweidi/trivia/internal/domain"
)

const questionColumns = `id, question, answer, category, difficulty`

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// QuestionRepository implements the domain.QuestionRepository interface
type QuestionRepository struct {
	db DBTX
}

// NewQuestionRepository creates a new question repository
func NewQuestionRepository(db DBTX) *QuestionRepository {
	return &QuestionRepository{
		db: db,
	}
}

// List retrieves questions ordered by id. A non-positive limit returns every row.
func (r *QuestionRepository) List(ctx context.Context, filter domain.QuestionFilter) ([]*domain.Question, error) {
	var limit any
	if filter.Limit > 0 {
		limit = filter.Limit
	}

	rows, err := r.db.Query(ctx, `
		SELECT `+questionColumns+`
		FROM questions
		WHERE ($1::int = 0 OR category = $1)
		ORDER BY id
		LIMIT $2 OFFSET $3
	`, filter.CategoryID, limit, filter.Offset)
	if err != nil {
		return nil, classify("question.list", err)
	}
	return collectQuestions("question.list", rows)
}

// Count returns the number of questions matching the filter's category
func (r *QuestionRepository) Count(ctx context.Context, filter domain.QuestionFilter) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM questions
		WHERE ($1::int = 0 OR category = $1)
	`, filter.CategoryID).Scan(&count)
	if err != nil {
		return 0, classify("question.count", err)
	}
	return count, nil
}

// Search retrieves questions whose text contains term, ignoring case.
// LIKE wildcards in term match literally.
func (r *QuestionRepository) Search(ctx context.Context, term string) ([]*domain.Question, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+questionColumns+`
		FROM questions
		WHERE question ILIKE '%' || $1 || '%'
		ORDER BY id
	`, likeEscaper.Replace(term))
	if err != nil {
		return nil, classify("question.search", err)
	}
	return collectQuestions("question.search", rows)
}

// ListUnseen retrieves questions whose ids are not in exclude. A zero
// categoryID spans all categories.
func (r *QuestionRepository) ListUnseen(ctx context.Context, categoryID int, exclude []int) ([]*domain.Question, error) {
	if exclude == nil {
		exclude = []int{}
	}

	rows, err := r.db.Query(ctx, `
		SELECT `+questionColumns+`
		FROM questions
		WHERE ($1::int = 0 OR category = $1)
		AND NOT (id = ANY($2::int[]))
		ORDER BY id
	`, categoryID, exclude)
	if err != nil {
		return nil, classify("question.list_unseen", err)
	}
	return collectQuestions("question.list_unseen", rows)
}

// GetByID retrieves a question by its ID
func (r *QuestionRepository) GetByID(ctx context.Context, id int) (*domain.Question, error) {
	var question domain.Question
	err := r.db.QueryRow(ctx, `
		SELECT `+questionColumns+`
		FROM questions
		WHERE id = $1
	`, id).Scan(
		&question.ID,
		&question.Question,
		&question.Answer,
		&question.Category,
		&question.Difficulty,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.E(domain.KindNotFound, "question.get", domain.ErrQuestionNotFound)
		}
		return nil, classify("question.get", err)
	}
	return &question, nil
}

// Create inserts a question. Nil fields are written as NULL and left to the
// table constraints.
func (r *QuestionRepository) Create(ctx context.Context, question *domain.NewQuestion) (int, error) {
	var id int
	err := r.db.QueryRow(ctx, `
		INSERT INTO questions (question, answer, category, difficulty)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`,
		question.Question,
		question.Answer,
		question.Category,
		question.Difficulty,
	).Scan(&id)
	if err != nil {
		return 0, classify("question.create", err)
	}
	return id, nil
}

// Delete deletes a question
func (r *QuestionRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.Exec(ctx, `DELETE FROM questions WHERE id = $1`, id)
	if err != nil {
		return classify("question.delete", err)
	}
	if result.RowsAffected() == 0 {
		return domain.E(domain.KindNotFound, "question.delete", domain.ErrQuestionNotFound)
	}
	return nil
}

func collectQuestions(op string, rows pgx.Rows) ([]*domain.Question, error) {
	defer rows.Close()

	questions := []*domain.Question{}
	for rows.Next() {
		var q domain.Question
		if err := rows.Scan(&q.ID, &q.Question, &q.Answer, &q.Category, &q.Difficulty); err != nil {
			return nil, domain.E(domain.KindInternal, op, fmt.Errorf("failed to scan question: %w", err))
		}
		questions = append(questions, &q)
	}

	if err := rows.Err(); err != nil {
		return nil, classify(op, err)
	}

	return questions, nil
}
