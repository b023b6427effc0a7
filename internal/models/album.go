package models

import "time"

// Album is a photo album. Date is nil when the submitted date was absent or
// could not be parsed.
type Album struct {
	ID          string     `json:"_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Date        *time.Time `json:"date"`
	Cover       string     `json:"cover"`
	Photos      []string   `json:"photos"`
}
