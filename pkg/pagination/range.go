// Package pagination computes the compact page-number strips and page links
// rendered under paginated listings.
package pagination

import (
	"encoding/json"
	"sort"
	"strconv"
)

// DefaultRadius is the number of neighbours shown on each side of the current
// page when a template does not pass one.
const DefaultRadius = 1

// EllipsisText is the marker rendered for an elided run of pages.
const EllipsisText = "…"

// Item is one entry of a page strip: either a page number or an ellipsis.
type Item struct {
	Number   int
	Ellipsis bool
}

// Page returns a numbered item.
func Page(n int) Item { return Item{Number: n} }

// Gap returns an ellipsis item.
func Gap() Item { return Item{Ellipsis: true} }

func (i Item) String() string {
	if i.Ellipsis {
		return EllipsisText
	}
	return strconv.Itoa(i.Number)
}

// MarshalJSON encodes numbers as JSON numbers and ellipses as the marker
// string, matching what templates and the CLI print.
func (i Item) MarshalJSON() ([]byte, error) {
	if i.Ellipsis {
		return json.Marshal(EllipsisText)
	}
	return json.Marshal(i.Number)
}

// Range returns the page strip for current page c of total pages with the
// given neighbour radius. The first and last page are always present, pages
// within radius of c are present, and every gap of more than one page between
// kept numbers collapses to a single ellipsis. A total of one page or less
// yields an empty strip.
//
// Out-of-range input is clamped: c below 1 becomes 1, c above total becomes
// total, and a negative radius becomes 0.
func Range(current, total, radius int) []Item {
	if total <= 1 {
		return []Item{}
	}
	if current < 1 {
		current = 1
	}
	if current > total {
		current = total
	}
	if radius < 0 {
		radius = 0
	}

	kept := map[int]struct{}{1: {}, total: {}}
	lo, hi := current-radius, current+radius
	if lo < 1 {
		lo = 1
	}
	if hi > total {
		hi = total
	}
	for n := lo; n <= hi; n++ {
		kept[n] = struct{}{}
	}

	numbers := make([]int, 0, len(kept))
	for n := range kept {
		numbers = append(numbers, n)
	}
	sort.Ints(numbers)

	items := make([]Item, 0, len(numbers)*2)
	prev := 0
	for _, n := range numbers {
		if prev > 0 && n-prev > 1 {
			items = append(items, Gap())
		}
		items = append(items, Page(n))
		prev = n
	}
	return items
}
