package services

import (
	"mime/multipart"

	"memories-backend/internal/store"
)

// MaxAttachments is the most files one album or timeline entry accepts.
const MaxAttachments = 10

// StoreProvider hands out the connected store, or db.ErrNotReady.
type StoreProvider interface {
	Store() (store.Store, error)
}

// FileSaver persists attachments and returns their stored paths in order.
type FileSaver interface {
	SaveAll(files []*multipart.FileHeader) ([]string, error)
}
