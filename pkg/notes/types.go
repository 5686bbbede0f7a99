package notes

import "time"

// Note is a single stored note. Tags is derived from the tag relation and
// populated by a second lookup, never by a fan-out join.
type Note struct {
	ID        int64     `json:"id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Category  string    `json:"category,omitempty"`
	IsDaily   bool      `json:"is_daily"`
	Tags      []string  `json:"tags,omitempty"`
}

// TagCount pairs a tag string with the number of tag rows carrying it.
type TagCount struct {
	Tag   string `json:"tag"`
	Count int64  `json:"count"`
}

// ListFilter holds the optional, conjunctive filters for List. Zero values
// mean "not filtered".
type ListFilter struct {
	Limit     int
	Tag       string
	Category  string
	TodayOnly bool
}
