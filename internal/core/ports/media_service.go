package ports

import (
	"context"
	"io"
)

// UploadInput is a single evidence file received from the public surface.
type UploadInput struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// MediaService uploads evidence to the blob store.
type MediaService interface {
	Upload(ctx context.Context, in UploadInput) (string, error)
	// Open streams a stored object when the backend serves its own files.
	Open(ctx context.Context, name string) (io.ReadCloser, string, error)
}

// ChatbotReply is the answer of the rule-based assistant.
type ChatbotReply struct {
	Response         string   `json:"response"`
	SuggestedActions []string `json:"suggested_actions"`
}

// ChatbotService answers citizen questions with static keyword rules.
type ChatbotService interface {
	Ask(ctx context.Context, message string, contextZoneID *int64) ChatbotReply
}
