package i18n

import (
	"strings"

	"golang.org/x/text/language"
)

// Negotiator picks the best supported locale for a request.
type Negotiator struct {
	supported []string
	matcher   language.Matcher
}

// NewNegotiator builds a negotiator over the supported locales. The first
// entry is the default returned when nothing matches. Unparseable entries are
// skipped; an empty list defaults to English.
func NewNegotiator(supported ...string) *Negotiator {
	var (
		names []string
		tags  []language.Tag
	)
	for _, locale := range supported {
		tag, err := language.Parse(normalizeLocale(locale))
		if err != nil {
			continue
		}
		names = append(names, normalizeLocale(locale))
		tags = append(tags, tag)
	}
	if len(tags) == 0 {
		names = []string{"en"}
		tags = []language.Tag{language.English}
	}
	return &Negotiator{supported: names, matcher: language.NewMatcher(tags)}
}

// Default returns the fallback locale.
func (n *Negotiator) Default() string {
	return n.supported[0]
}

// Supported returns the configured locales in priority order.
func (n *Negotiator) Supported() []string {
	return append([]string(nil), n.supported...)
}

// Negotiate matches an explicit locale preference (for example a ?lang=
// parameter) and then an Accept-Language header against the supported list.
func (n *Negotiator) Negotiate(preferred, acceptLanguage string) string {
	var wanted []language.Tag
	if preferred = strings.TrimSpace(preferred); preferred != "" {
		if tag, err := language.Parse(normalizeLocale(preferred)); err == nil {
			wanted = append(wanted, tag)
		}
	}
	if tags, _, err := language.ParseAcceptLanguage(acceptLanguage); err == nil {
		wanted = append(wanted, tags...)
	}
	if len(wanted) == 0 {
		return n.Default()
	}
	_, index, confidence := n.matcher.Match(wanted...)
	if confidence == language.No || index < 0 || index >= len(n.supported) {
		return n.Default()
	}
	return n.supported[index]
}
