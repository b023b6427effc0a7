package utils

import (
	"github.com/rs/zerolog"
)

// JSONWriter is the part of *websocket.Conn the feed writes through.
type JSONWriter interface {
	WriteJSON(v interface{}) error
}

// SendJSON sends a JSON payload to a WebSocket connection.
// Connections are not safe for concurrent writes; the caller serialises them.
func SendJSON(c JSONWriter, payload interface{}) error {
	return c.WriteJSON(payload)
}

// LogError logs an error if it's not nil
func LogError(log zerolog.Logger, err error, context string) {
	if err != nil {
		log.Error().Err(err).Str("context", context).Msg("operation failed")
	}
}
