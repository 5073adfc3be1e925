package pagination

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrPageNotInteger reports a page parameter that is not a whole number.
	ErrPageNotInteger = errors.New("pagination: page number is not an integer")
	// ErrEmptyPage reports a page number outside the available pages.
	ErrEmptyPage = errors.New("pagination: page contains no results")
)

// Paginator splits a result count into fixed-size pages.
type Paginator struct {
	Count   int
	PerPage int
}

// NewPaginator returns a paginator for count rows at perPage rows per page.
// A non-positive perPage is treated as one page holding everything.
func NewPaginator(count, perPage int) Paginator {
	if count < 0 {
		count = 0
	}
	if perPage <= 0 {
		perPage = count
		if perPage == 0 {
			perPage = 1
		}
	}
	return Paginator{Count: count, PerPage: perPage}
}

// NumPages returns the number of pages. An empty result still has one page.
func (p Paginator) NumPages() int {
	if p.Count == 0 {
		return 1
	}
	return (p.Count + p.PerPage - 1) / p.PerPage
}

// ParsePage parses a raw page parameter. An empty value means page 1, and the
// literal "last" means the final page.
func (p Paginator) ParsePage(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	switch raw {
	case "":
		return 1, nil
	case "last":
		return p.NumPages(), nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrPageNotInteger, raw)
	}
	return n, p.validate(n)
}

func (p Paginator) validate(n int) error {
	if n < 1 || n > p.NumPages() {
		return fmt.Errorf("%w: page %d of %d", ErrEmptyPage, n, p.NumPages())
	}
	return nil
}

// Page returns the window for page n. n must be valid.
func (p Paginator) Page(n int) (Window, error) {
	if err := p.validate(n); err != nil {
		return Window{}, err
	}
	offset := (n - 1) * p.PerPage
	limit := p.PerPage
	if offset+limit > p.Count {
		limit = p.Count - offset
	}
	return Window{Number: n, NumPages: p.NumPages(), Offset: offset, Limit: limit, Count: p.Count}, nil
}

// Window describes one page of results.
type Window struct {
	Number   int `json:"number"`
	NumPages int `json:"numPages"`
	Offset   int `json:"offset"`
	Limit    int `json:"limit"`
	Count    int `json:"count"`
}

func (w Window) HasNext() bool     { return w.Number < w.NumPages }
func (w Window) HasPrevious() bool { return w.Number > 1 }
func (w Window) HasOther() bool    { return w.HasNext() || w.HasPrevious() }
func (w Window) Next() int         { return w.Number + 1 }
func (w Window) Previous() int     { return w.Number - 1 }
