package crawler

import (
	"context"

	"github.com/mycok/uRank/pipeline"
)

// Static and compile-time check to ensure pageSource implements
// pipeline.Source interface.
var _ pipeline.Source = (*pageSource)(nil)

// pageSource emits one payload per corpus document.
type pageSource struct {
	pages []string
	index int
}

// Next implements pipeline.Source.
func (s *pageSource) Next(context.Context) bool {
	if s.index >= len(s.pages) {
		return false
	}

	s.index++

	return true
}

// Payload implements pipeline.Source.
func (s *pageSource) Payload() pipeline.Payload {
	payload := payloadPool.Get().(*pagePayload)
	payload.Page = s.pages[s.index-1]

	return payload
}

// Error implements pipeline.Source.
func (s *pageSource) Error() error { return nil }
