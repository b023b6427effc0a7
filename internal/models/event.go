package models

// Topics published on the live feed.
const (
	TopicPhotos   = "photos"
	TopicTimeline = "timeline"
	TopicNotes    = "notes"
)

var AllTopics = []string{TopicPhotos, TopicTimeline, TopicNotes}

// FeedEvent is the websocket frame sent after a document is created.
type FeedEvent struct {
	Event string      `json:"event"`
	Topic string      `json:"topic"`
	Data  interface{} `json:"data"`
}
