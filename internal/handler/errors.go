package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/zizouhuweidi/trivia/internal/domain"
)

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   int    `json:"error"`
	Message string `json:"message"`
}

var errorMessages = map[int]string{
	http.StatusBadRequest:          "bad request",
	http.StatusNotFound:            "resource not found",
	http.StatusMethodNotAllowed:    "method not allowed",
	http.StatusUnprocessableEntity: "unprocessable",
	http.StatusInternalServerError: "internal server error",
}

// ErrorHandler renders errors returned by handlers and middleware as an
// ErrorResponse. It is installed as echo's HTTPErrorHandler.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		if he.Internal != nil && code < http.StatusInternalServerError {
			c.Logger().Warnf("%s %s: %d: %v", c.Request().Method, c.Request().URL.Path, code, he.Internal)
		} else if he.Internal != nil {
			c.Logger().Errorf("%s %s: %d: %v", c.Request().Method, c.Request().URL.Path, code, he.Internal)
		}
	} else {
		c.Logger().Errorf("%s %s: %v", c.Request().Method, c.Request().URL.Path, err)
	}

	message, ok := errorMessages[code]
	if !ok {
		message = strings.ToLower(http.StatusText(code))
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(code)
	} else {
		err = c.JSON(code, ErrorResponse{Success: false, Error: code, Message: message})
	}
	if err != nil {
		c.Logger().Error(err)
	}
}

// httpError maps a service error to the HTTP error returned to the client.
// Missing resources are 404; every other failure inside a handler is 422.
func httpError(err error) *echo.HTTPError {
	switch domain.KindOf(err) {
	case domain.KindNotFound:
		return echo.NewHTTPError(http.StatusNotFound).SetInternal(err)
	default:
		return unprocessable(err)
	}
}

func unprocessable(err error) *echo.HTTPError {
	return echo.NewHTTPError(http.StatusUnprocessableEntity).SetInternal(err)
}
