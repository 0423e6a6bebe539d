package invalidation

import (
	"regexp"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"go.trai.ch/quill/internal/core/domain"
	"go.trai.ch/quill/internal/core/ports"
)

const (
	tagPrefix  = "tag"
	pathPrefix = "path"
	globPrefix = "glob"
	agePrefix  = "age"
)

var (
	agePattern = regexp.MustCompile(`^(\d+(?:\.\d+)?)\s*(day|week|month|year)s?$`)

	unitDays = map[string]float64{
		"day":   1,
		"week":  7,
		"month": 30,
		"year":  365,
	}
)

// Matcher evaluates invalidation terms against manifest entries.
type Matcher struct {
	logger ports.Logger
}

// NewMatcher creates a Matcher that reports unusable terms through logger.
func NewMatcher(logger ports.Logger) *Matcher {
	return &Matcher{logger: logger}
}

// Term is a classified invalidation term, ready to match many entries.
type Term struct {
	raw    string
	prefix string
	value  string
	bare   bool
}

// Compile classifies terms once. Unknown prefixes and malformed globs are warned
// about a single time and dropped, as are terms with an empty prefix or value.
func (m *Matcher) Compile(terms []string) []Term {
	compiled := make([]Term, 0, len(terms))
	for _, raw := range terms {
		if t, ok := m.compile(raw); ok {
			compiled = append(compiled, t)
		}
	}
	return compiled
}

func (m *Matcher) compile(raw string) (Term, bool) {
	prefix, value, prefixed := strings.Cut(raw, ":")
	if !prefixed {
		return Term{raw: raw, bare: true}, raw != ""
	}
	if prefix == "" || value == "" {
		return Term{}, false
	}

	switch prefix {
	case tagPrefix, pathPrefix, agePrefix:
	case globPrefix:
		if !doublestar.ValidatePattern(value) {
			m.logger.Warn("ignoring malformed glob " + strconv.Quote(value) + ": " + doublestar.ErrBadPattern.Error())
			return Term{}, false
		}
	default:
		m.logger.Warn("ignoring invalidation term with unknown prefix " + strconv.Quote(prefix))
		return Term{}, false
	}
	return Term{raw: raw, prefix: prefix, value: value}, true
}

// Matches reports whether entry, stored under path, is selected by term.
// Terms that cannot be interpreted never match.
func (m *Matcher) Matches(entry *domain.CacheEntry, path, term string, now time.Time) bool {
	t, ok := m.compile(term)
	return ok && t.Matches(entry, path, now)
}

// Matches reports whether entry, stored under path, is selected by t.
func (t Term) Matches(entry *domain.CacheEntry, path string, now time.Time) bool {
	if t.bare {
		return matchesBare(entry, path, t.raw)
	}

	switch t.prefix {
	case tagPrefix:
		return slices.Contains(entry.Tags, t.value)
	case pathPrefix:
		return strings.HasPrefix(path, t.value)
	case globPrefix:
		ok, err := doublestar.Match(t.value, path)
		return err == nil && ok
	case agePrefix:
		maxDays, ok := parseAge(t.value)
		if !ok {
			return false
		}
		return entryAgeDays(entry, now) < maxDays
	default:
		return false
	}
}

func matchesBare(entry *domain.CacheEntry, path, term string) bool {
	if term == "" {
		return false
	}
	if strings.Contains(path, term) {
		return true
	}
	return slices.ContainsFunc(entry.Tags, func(tag string) bool {
		return strings.Contains(tag, term)
	})
}

// parseAge converts "<N><unit>" into days.
func parseAge(value string) (float64, bool) {
	m := agePattern.FindStringSubmatch(strings.ToLower(strings.TrimSpace(value)))
	if m == nil {
		return 0, false
	}
	n, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}
	return n * unitDays[m[2]], true
}

// entryAgeDays measures from the publish date, or from the last render when none is known.
func entryAgeDays(entry *domain.CacheEntry, now time.Time) float64 {
	since := entry.RenderedAt
	if entry.PublishedAt != nil {
		since = *entry.PublishedAt
	}
	return domain.ContentAgeDays(since, now)
}
