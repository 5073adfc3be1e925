package pagination

import (
	"net/url"
	"strconv"
	"strings"
)

// DefaultPageKey is the query parameter carrying the page number.
const DefaultPageKey = "page"

// PageQuery rewrites a raw query string so that key carries page, leaving
// every other parameter, its encoding and its position untouched. The first
// occurrence of key is replaced in place and later duplicates are dropped;
// when key is absent it is appended. The result has no leading "?".
func PageQuery(rawQuery string, page int, key string) string {
	if key == "" {
		key = DefaultPageKey
	}
	rawQuery = strings.TrimPrefix(rawQuery, "?")
	pair := url.QueryEscape(key) + "=" + strconv.Itoa(page)

	if rawQuery == "" {
		return pair
	}

	parts := strings.Split(rawQuery, "&")
	out := make([]string, 0, len(parts)+1)
	replaced := false
	for _, part := range parts {
		if part == "" {
			continue
		}
		name := part
		if idx := strings.IndexByte(part, '='); idx >= 0 {
			name = part[:idx]
		}
		if decoded, err := url.QueryUnescape(name); err == nil {
			name = decoded
		}
		if name != key {
			out = append(out, part)
			continue
		}
		if replaced {
			continue
		}
		out = append(out, pair)
		replaced = true
	}
	if !replaced {
		out = append(out, pair)
	}
	return strings.Join(out, "&")
}

// PageURL is PageQuery prefixed with "?" so it can be used as an href.
func PageURL(rawQuery string, page int) string {
	return "?" + PageQuery(rawQuery, page, DefaultPageKey)
}
