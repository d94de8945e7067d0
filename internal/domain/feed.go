package domain

import (
	"errors"
	"time"
)

var (
	ErrUnknownFeed    = errors.New("unknown feed")
	ErrFetchFailed    = errors.New("feed fetch failed")
	ErrMalformedEntry = errors.New("malformed entry")
)

// RuleOrder задает порядок проходов фильтра для конкретного фида.
type RuleOrder string

const (
	DisqualifyFirst RuleOrder = "disqualify_first"
	QualifyFirst    RuleOrder = "qualify_first"
)

// GUIDPolicy определяет, заполняется ли guid у элементов выходного фида.
type GUIDPolicy string

const (
	GUIDNone GUIDPolicy = "none"
	GUIDLink GUIDPolicy = "link"
)

// MIME-тип варианта содержимого, который попадает в description.
const HTMLContentType = "text/html"

type FeedConfig struct {
	Name               string
	SourceURL          string
	TitleDisqualifiers []string
	TitleQualifiers    []string
	RuleOrder          RuleOrder
	GUID               GUIDPolicy
}

type ContentVariant struct {
	Type  string
	Value string
}

type Tag struct {
	Term string
}

// RawEntry - запись исходного фида в том виде, в котором ее отдал источник.
// PublishedAt == nil означает, что дату публикации разобрать не удалось.
type RawEntry struct {
	Title           string
	Link            string
	Author          string
	Summary         string
	ContentVariants []ContentVariant
	Tags            []Tag
	PublishedAt     *time.Time
}

type SourceFeed struct {
	Title    string
	Link     string
	Subtitle string
	Entries  []RawEntry
}

type OutputItem struct {
	Title       string
	Link        string
	Description string
	Author      string
	Categories  []string
	PublishedAt time.Time
	GUID        string
}

type OutputDocument struct {
	Title         string
	Link          string
	Description   string
	LastBuildDate time.Time
	Items         []OutputItem
}
