package service

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/zizouhuweidi/trivia/internal/domain"
)

// invalid classifies a validator failure. Non-validation errors from the
// validator itself (e.g. a nil struct) are internal.
func invalid(op string, err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return domain.E(domain.KindValidationFailed, op, verrs)
	}
	return domain.E(domain.KindInternal, op, err)
}

func notFound(op string, err error) error {
	return domain.E(domain.KindNotFound, op, err)
}
