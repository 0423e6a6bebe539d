package domain

import (
	"math"
	"slices"
	"time"
)

const (
	// DefaultTTLSeconds applies when neither the page nor the config sets a TTL (6 hours).
	DefaultTTLSeconds = 21600

	// TTLOverrideField is the front matter key of the per-page TTL override.
	TTLOverrideField = "ttlSeconds"

	secondsPerDay = 86400
)

// ContentAgeDays returns the age of content published at publishedAt, in fractional days.
// Future-dated content yields a negative age.
func ContentAgeDays(publishedAt, now time.Time) float64 {
	return now.Sub(publishedAt).Seconds() / secondsPerDay
}

// EffectiveTTL resolves the TTL of page in seconds, by precedence:
// a valid front matter override, then the aging ladder when the page has a
// publish date, then cfg.TTLSeconds, then DefaultTTLSeconds.
func EffectiveTTL(page *Page, cfg *ISGConfig, now time.Time) int {
	if ttl, ok := TTLOverride(page.FrontMatter); ok {
		return ttl
	}

	base := DefaultTTLSeconds
	if cfg != nil && cfg.TTLSeconds != nil {
		base = *cfg.TTLSeconds
	}

	if cfg != nil && len(cfg.Aging) > 0 {
		if publishedAt, ok := page.PublishDate(); ok {
			return ApplyAgingRules(publishedAt, cfg.Aging, base, now)
		}
	}
	return base
}

// TTLOverride returns the front matter ttlSeconds when it is a positive integer.
func TTLOverride(frontMatter map[string]any) (int, bool) {
	raw, ok := frontMatter[TTLOverrideField]
	if !ok {
		return 0, false
	}
	var ttl int
	switch v := raw.(type) {
	case int:
		ttl = v
	case int64:
		ttl = int(v)
	case uint64:
		if v > math.MaxInt32 {
			return 0, false
		}
		ttl = int(v)
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) || v != math.Trunc(v) || v > math.MaxInt32 {
			return 0, false
		}
		ttl = int(v)
	default:
		return 0, false
	}
	if ttl <= 0 {
		return 0, false
	}
	return ttl, true
}

// ApplyAgingRules picks the TTL bucket for content published at publishedAt.
// Rules are sorted by ascending UntilDays regardless of input order; the first
// rule with age < UntilDays wins, content older than every bucket gets the last
// rule, and an empty ladder yields defaultTTL. Incomplete rules are skipped.
func ApplyAgingRules(publishedAt time.Time, rules []*AgingRule, defaultTTL int, now time.Time) int {
	ladder := make([]*AgingRule, 0, len(rules))
	for _, r := range rules {
		if r.complete() {
			ladder = append(ladder, r)
		}
	}
	if len(ladder) == 0 {
		return defaultTTL
	}
	slices.SortStableFunc(ladder, func(a, b *AgingRule) int {
		return *a.UntilDays - *b.UntilDays
	})

	age := math.Max(ContentAgeDays(publishedAt, now), 0)
	for _, r := range ladder {
		if age < float64(*r.UntilDays) {
			return *r.TTLSeconds
		}
	}
	return *ladder[len(ladder)-1].TTLSeconds
}

// NextRebuildInput carries the inputs of NextRebuildAt.
type NextRebuildInput struct {
	Now           time.Time
	PublishedAt   *time.Time
	TTLSeconds    int
	MaxAgeCapDays *int
}

// NextRebuildAt returns Now + TTLSeconds. It returns false instead when the
// content has reached its freeze point: age >= MaxAgeCapDays (inclusive).
func NextRebuildAt(in NextRebuildInput) (time.Time, bool) {
	if in.PublishedAt != nil && in.MaxAgeCapDays != nil {
		if ContentAgeDays(*in.PublishedAt, in.Now) >= float64(*in.MaxAgeCapDays) {
			return time.Time{}, false
		}
	}
	return in.Now.Add(time.Duration(in.TTLSeconds) * time.Second), true
}

// IsFrozen reports whether entry is past its age cap at now: age > MaxAgeCapDays (exclusive).
// Entries without a publish date or cap are never frozen.
func IsFrozen(entry *CacheEntry, now time.Time) bool {
	if entry == nil || entry.PublishedAt == nil || entry.MaxAgeCapDays == nil {
		return false
	}
	return ContentAgeDays(*entry.PublishedAt, now) > float64(*entry.MaxAgeCapDays)
}
