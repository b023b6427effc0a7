package models

import "time"

// Note is a guestbook message. Sender and Message are stored exactly as
// submitted, including when they are absent.
type Note struct {
	ID        string    `json:"_id"`
	Sender    *string   `json:"sender,omitempty"`
	Message   *string   `json:"message,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

type CreateNoteRequest struct {
	Sender  *string `json:"sender" form:"sender"`
	Message *string `json:"message" form:"message"`
}
