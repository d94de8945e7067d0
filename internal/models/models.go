package models

import "time"

// BuildEvent описывает одну успешную пересборку фида.
type BuildEvent struct {
	FeedName     string    `json:"feed_name"`
	SourceURL    string    `json:"source_url"`
	ItemCount    int       `json:"item_count"`
	DroppedCount int       `json:"dropped_count"`
	BuiltAt      time.Time `json:"built_at"`
}
