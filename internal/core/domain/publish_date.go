package domain

import "time"

// PublishDateFields lists the front matter keys probed for a publish date, in priority order.
// Every lookup of a page's publish date goes through PublishDateFromFrontMatter.
var PublishDateFields = []string{
	"publishedAt",
	"published_at",
	"publishDate",
	"publish_date",
	"pubDate",
	"date",
	"created",
}

var publishDateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// PublishDateFromFrontMatter returns the first parseable date found under PublishDateFields.
// Unparseable values are skipped so a later field can still supply the date.
func PublishDateFromFrontMatter(frontMatter map[string]any) (time.Time, bool) {
	for _, field := range PublishDateFields {
		raw, ok := frontMatter[field]
		if !ok {
			continue
		}
		if t, ok := parseDate(raw); ok {
			return t, true
		}
	}
	return time.Time{}, false
}

func parseDate(raw any) (time.Time, bool) {
	switch v := raw.(type) {
	case time.Time:
		return v, !v.IsZero()
	case *time.Time:
		if v == nil || v.IsZero() {
			return time.Time{}, false
		}
		return *v, true
	case string:
		for _, layout := range publishDateLayouts {
			if t, err := time.Parse(layout, v); err == nil {
				return t, true
			}
		}
	}
	return time.Time{}, false
}
