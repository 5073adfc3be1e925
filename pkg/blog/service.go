package blog

import (
	"context"
	"fmt"
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// DefaultLanguage is the language names fall back to when a category has no
// translation for the requested one.
const DefaultLanguage = "en"

// LocalizedCategory is a category resolved for one language.
type LocalizedCategory struct {
	Slug     string `json:"slug"`
	Name     string `json:"name"`
	Priority int    `json:"priority"`
}

// Service layers presentation ordering on top of a Store.
type Service struct {
	store    Store
	fallback string
}

// NewService wraps store. An empty fallback uses DefaultLanguage.
func NewService(store Store, fallback string) *Service {
	if fallback == "" {
		fallback = DefaultLanguage
	}
	return &Service{store: store, fallback: fallback}
}

// Store exposes the underlying store.
func (s *Service) Store() Store {
	return s.store
}

// Categories lists every category ordered by priority ascending, then by its
// name in lang using that language's collation, then by slug.
func (s *Service) Categories(ctx context.Context, lang string) ([]LocalizedCategory, error) {
	categories, err := s.store.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("blog: list categories: %w", err)
	}

	out := make([]LocalizedCategory, len(categories))
	for i, c := range categories {
		out[i] = LocalizedCategory{Slug: c.Slug, Name: c.Name(lang, s.fallback), Priority: c.Priority}
	}

	collator := collate.New(collationTag(lang), collate.IgnoreCase)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Priority != out[j].Priority {
			return out[i].Priority < out[j].Priority
		}
		if cmp := collator.CompareString(out[i].Name, out[j].Name); cmp != 0 {
			return cmp < 0
		}
		return out[i].Slug < out[j].Slug
	})
	return out, nil
}

func collationTag(lang string) language.Tag {
	tag, err := language.Parse(lang)
	if err != nil {
		return language.English
	}
	return tag
}
