package models

import "time"

// TimelineEntry is one dated entry on the timeline. Images is never nil.
type TimelineEntry struct {
	ID          string    `json:"_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
	Images      []string  `json:"images"`
}
