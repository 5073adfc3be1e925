package stories

import (
	"errors"
	"net/http"

	"github.com/goliatone/go-cmstheme/pkg/blog"
	"github.com/goliatone/go-cmstheme/pkg/pagination"
)

type HTTPError interface {
	error
	StatusCode() int
}

type StatusError struct {
	Code int
	Err  error
}

func (e StatusError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return http.StatusText(e.Code)
}

func (e StatusError) Unwrap() error { return e.Err }

func (e StatusError) StatusCode() int {
	if e.Code <= 0 {
		return http.StatusInternalServerError
	}
	return e.Code
}

// NotFound wraps err as a 404.
func NotFound(err error) error {
	return StatusError{Code: http.StatusNotFound, Err: err}
}

func statusFor(err error) int {
	var httpErr HTTPError
	switch {
	case errors.As(err, &httpErr) && httpErr != nil:
		return httpErr.StatusCode()
	case errors.Is(err, blog.ErrNotFound),
		errors.Is(err, pagination.ErrEmptyPage),
		errors.Is(err, pagination.ErrPageNotInteger):
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}
