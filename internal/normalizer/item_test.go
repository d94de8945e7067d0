package normalizer

import (
	"bytes"
	"io"
	"log/slog"
	"testing"
	"time"

	"feedfilter/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func published() *time.Time {
	t := time.Date(2024, time.March, 5, 14, 30, 15, 987654321, time.FixedZone("CET", 3600))
	return &t
}

func TestNormalize(t *testing.T) {
	entry := domain.RawEntry{
		Title:       "Daily Deals: Suits",
		Link:        "https://dappered.com/suits",
		Author:      "Joe",
		Summary:     "summary text",
		Tags:        []domain.Tag{{Term: "deals"}, {Term: ""}, {Term: "suits"}},
		PublishedAt: published(),
	}

	item, err := Normalize(discardLogger(), entry, domain.GUIDNone)
	require.NoError(t, err)

	assert.Equal(t, "Daily Deals: Suits", item.Title)
	assert.Equal(t, "https://dappered.com/suits", item.Link)
	assert.Equal(t, "summary text", item.Description)
	assert.Equal(t, "Joe", item.Author)
	assert.Equal(t, []string{"deals", "", "suits"}, item.Categories)
	assert.Equal(t, time.Date(2024, time.March, 5, 13, 30, 15, 0, time.UTC), item.PublishedAt)
	assert.Empty(t, item.GUID)
}

func TestNormalize_GUIDFromLink(t *testing.T) {
	entry := domain.RawEntry{Title: "t", Link: "https://example.com/1", PublishedAt: published()}

	item, err := Normalize(discardLogger(), entry, domain.GUIDLink)
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/1", item.GUID)
}

func TestNormalize_MissingAuthorAndTags(t *testing.T) {
	entry := domain.RawEntry{Title: "t", PublishedAt: published()}

	item, err := Normalize(discardLogger(), entry, domain.GUIDNone)
	require.NoError(t, err)
	assert.Equal(t, "", item.Author)
	assert.NotNil(t, item.Categories)
	assert.Empty(t, item.Categories)
}

func TestCategories(t *testing.T) {
	tests := []struct {
		name     string
		tags     []domain.Tag
		expected []string
	}{
		{name: "no tags", tags: nil, expected: []string{}},
		{name: "order kept", tags: []domain.Tag{{Term: "b"}, {Term: "a"}}, expected: []string{"b", "a"}},
		{name: "empty terms kept", tags: []domain.Tag{{Term: ""}, {Term: "x"}, {Term: ""}}, expected: []string{"", "x", ""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Categories(tt.tags))
		})
	}
}

func TestNormalize_Malformed(t *testing.T) {
	tests := []struct {
		name  string
		entry domain.RawEntry
	}{
		{name: "missing published time", entry: domain.RawEntry{Title: "no date"}},
		{name: "blank title", entry: domain.RawEntry{Title: "  \t", PublishedAt: published()}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Normalize(discardLogger(), tt.entry, domain.GUIDNone)
			assert.ErrorIs(t, err, domain.ErrMalformedEntry)
		})
	}
}

func TestDescription(t *testing.T) {
	tests := []struct {
		name     string
		variants []domain.ContentVariant
		expected string
		warns    bool
	}{
		{
			name:     "no variants uses summary",
			expected: "the summary",
		},
		{
			name:     "single html variant",
			variants: []domain.ContentVariant{{Type: "text/html", Value: "<p>body</p>"}},
			expected: "<p>body</p>",
		},
		{
			name:     "single non-html variant",
			variants: []domain.ContentVariant{{Type: "text/plain", Value: "plain"}},
			expected: "",
		},
		{
			name: "several variants join html values",
			variants: []domain.ContentVariant{
				{Type: "text/html", Value: "<p>one</p>"},
				{Type: "text/plain", Value: "skip"},
				{Type: "text/html", Value: "<p>two</p>"},
			},
			expected: "<p>one</p><br><p>two</p>",
			warns:    true,
		},
		{
			name: "several variants without html",
			variants: []domain.ContentVariant{
				{Type: "text/plain", Value: "a"},
				{Type: "text/plain", Value: "b"},
			},
			expected: "",
			warns:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			log := slog.New(slog.NewTextHandler(&buf, nil))
			entry := domain.RawEntry{Title: "t", Summary: "the summary", ContentVariants: tt.variants}

			assert.Equal(t, tt.expected, Description(log, entry))
			if tt.warns {
				assert.Contains(t, buf.String(), "More content than expected")
			} else {
				assert.NotContains(t, buf.String(), "More content than expected")
			}
		})
	}
}
