package middleware

import (
	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/contribgraph/backend/pkg/logger"
)

const requestIDAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// NewRequestID returns a short nanoid used as X-Request-Id.
func NewRequestID() string {
	id, err := gonanoid.Generate(requestIDAlphabet, 16)
	if err != nil {
		logger.Warn("Failed to generate request id", "err", err)
		return ""
	}
	return id
}
