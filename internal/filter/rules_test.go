package filter

import (
	"io"
	"log/slog"
	"testing"

	"feedfilter/internal/domain"

	"github.com/stretchr/testify/assert"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func entries(titles ...string) []domain.RawEntry {
	out := make([]domain.RawEntry, 0, len(titles))
	for _, t := range titles {
		out = append(out, domain.RawEntry{Title: t})
	}
	return out
}

func titles(es []domain.RawEntry) []string {
	out := make([]string, 0, len(es))
	for _, e := range es {
		out = append(out, e.Title)
	}
	return out
}

func TestApply(t *testing.T) {
	tests := []struct {
		name          string
		titles        []string
		disqualifiers []string
		qualifiers    []string
		order         domain.RuleOrder
		expected      []string
	}{
		{
			name:     "empty input",
			titles:   nil,
			expected: []string{},
		},
		{
			name:          "dappered advertisers are filtered out",
			titles:        []string{"Daily Deals: thanks to Dappered's advertisers for support", "Daily Deals: Suits"},
			disqualifiers: []string{"thanks to Dappered's advertisers"},
			expected:      []string{"Daily Deals: Suits"},
		},
		{
			name:       "monitor deals keep only monitors",
			titles:     []string{"27-inch Monitor $99", "Mechanical Keyboard $40"},
			qualifiers: []string{"monitor"},
			expected:   []string{"27-inch Monitor $99"},
		},
		{
			name:          "disqualification matches case-insensitively inside words",
			titles:        []string{"Weekly GAME THREAD", "Gameday recap", "Postgame thread notes"},
			disqualifiers: []string{"game thread"},
			expected:      []string{"Gameday recap"},
		},
		{
			name:          "disqualifier wins over qualifier",
			titles:        []string{"Monitor Thread - Week of May", "Monitor $120"},
			disqualifiers: []string{"Thread - "},
			qualifiers:    []string{"monitor"},
			expected:      []string{"Monitor $120"},
		},
		{
			name:          "disqualifier wins over qualifier in qualify_first order",
			titles:        []string{"Monitor Thread - Week of May", "Monitor $120", "Mouse $5"},
			disqualifiers: []string{"Thread - "},
			qualifiers:    []string{"monitor"},
			order:         domain.QualifyFirst,
			expected:      []string{"Monitor $120"},
		},
		{
			name:          "order of survivors is preserved",
			titles:        []string{"c", "Post: skip", "a", "b"},
			disqualifiers: []string{"Post: "},
			expected:      []string{"c", "a", "b"},
		},
		{
			name:          "blank rules are ignored",
			titles:        []string{"one", "two"},
			disqualifiers: []string{""},
			qualifiers:    []string{""},
			expected:      []string{"one", "two"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			order := tt.order
			if order == "" {
				order = domain.DisqualifyFirst
			}
			got := Apply(discardLogger(), entries(tt.titles...), tt.disqualifiers, tt.qualifiers, order)
			assert.Equal(t, tt.expected, titles(got))
		})
	}
}

func TestQualify_EmptyQualifiersIsIdentity(t *testing.T) {
	in := entries("x", "y", "z")
	got := Qualify(discardLogger(), in, nil)
	assert.Equal(t, in, got)
}

func TestDisqualify_DoesNotMutateInput(t *testing.T) {
	in := entries("keep", "drop me", "keep too")
	_ = Disqualify(discardLogger(), in, []string{"drop"})
	assert.Equal(t, []string{"keep", "drop me", "keep too"}, titles(in))
}

func TestApply_PropertyEveryDisqualifiedTitleIsAbsent(t *testing.T) {
	in := entries("Open Thread", "Podcast Episode 12", "Facebook Live", "Real news", "open thread again", "More news")
	rules := []string{"Game Thread", "Podcast Episode", "Open Thread", "Facebook Live"}

	got := Apply(discardLogger(), in, rules, nil, domain.DisqualifyFirst)

	for _, e := range got {
		assert.False(t, containsAny(e.Title, lowered(rules)), "title %q should have been dropped", e.Title)
	}
	assert.Equal(t, []string{"Real news", "More news"}, titles(got))
}
