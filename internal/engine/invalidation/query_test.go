package invalidation_test

import (
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"go.trai.ch/quill/internal/engine/invalidation"
)

func TestParseQuery(t *testing.T) {
	tests := []struct {
		query string
		want  []string
	}{
		{"", []string{}},
		{"   \t\n", []string{}},
		{"tag:blog", []string{"tag:blog"}},
		{"tag:blog  path:/docs", []string{"tag:blog", "path:/docs"}},
		{`tag:blog "path:/my posts"`, []string{"tag:blog", "path:/my posts"}},
		{`'glob:/a b/**' x`, []string{"glob:/a b/**", "x"}},
		{`tag:"two words"`, []string{"tag:two words"}},
		{`"unclosed quote runs on`, []string{"unclosed quote runs on"}},
		{`"it's"`, []string{"it's"}},
		{`""`, []string{""}},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			assert.Equal(t, tt.want, invalidation.ParseQuery(tt.query))
		})
	}
}

func TestParseQueryProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	term := gen.RegexMatch(`[a-z:/*]{1,12}`)

	properties.Property("space separated plain terms round trip", prop.ForAll(
		func(terms []string) bool {
			got := invalidation.ParseQuery(strings.Join(terms, "  "))
			if len(got) != len(terms) {
				return false
			}
			for i := range terms {
				if got[i] != terms[i] {
					return false
				}
			}
			return true
		},
		gen.SliceOf(term),
	))

	properties.Property("a double quoted term keeps inner whitespace", prop.ForAll(
		func(a, b string) bool {
			got := invalidation.ParseQuery(`"` + a + " " + b + `"`)
			return len(got) == 1 && got[0] == a+" "+b
		},
		term,
		term,
	))

	properties.Property("no term contains whitespace without quotes", prop.ForAll(
		func(s string) bool {
			for _, term := range invalidation.ParseQuery(s) {
				if strings.ContainsAny(term, " \t") {
					return false
				}
			}
			return true
		},
		gen.RegexMatch(`[a-z \t]{0,20}`),
	))

	properties.TestingRun(t)
}
