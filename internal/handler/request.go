package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// LooseInt is an integer that also decodes from a JSON string holding an
// integer. Web clients send select values such as category ids as strings.
type LooseInt int

// UnmarshalJSON implements json.Unmarshaler
func (n *LooseInt) UnmarshalJSON(data []byte) error {
	if bytes.HasPrefix(data, []byte(`"`)) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		v, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return fmt.Errorf("invalid integer %q", s)
		}
		*n = LooseInt(v)
		return nil
	}

	var v int
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*n = LooseInt(v)
	return nil
}

func (n *LooseInt) intPtr() *int {
	if n == nil {
		return nil
	}
	v := int(*n)
	return &v
}

// CreateOrSearchRequest is the body of POST /questions. A non-empty
// SearchTerm selects search; otherwise the question fields are created.
type CreateOrSearchRequest struct {
	SearchTerm *string   `json:"searchTerm"`
	Question   *string   `json:"question"`
	Answer     *string   `json:"answer"`
	Category   *LooseInt `json:"category"`
	Difficulty *LooseInt `json:"difficulty"`
}

// QuizCategoryRequest identifies the quiz category; id 0 means all
type QuizCategoryRequest struct {
	ID   *LooseInt `json:"id"`
	Type string    `json:"type"`
}

// QuizRequest is the body of POST /quizzes
type QuizRequest struct {
	PreviousQuestions []LooseInt           `json:"previous_questions"`
	QuizCategory      *QuizCategoryRequest `json:"quiz_category"`
}
