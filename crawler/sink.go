package crawler

import (
	"context"

	"github.com/mycok/uRank/pipeline"
)

// Static and compile-time check to ensure corpusSink implements
// pipeline.Sink interface.
var _ pipeline.Sink = (*corpusSink)(nil)

// corpusSink collects the extracted links and titles of every document. The
// pipeline invokes Consume from a single goroutine.
type corpusSink struct {
	skipNoFollow bool
	links        map[string][]string
	titles       map[string]string
}

func newCorpusSink(skipNoFollow bool) *corpusSink {
	return &corpusSink{
		skipNoFollow: skipNoFollow,
		links:        make(map[string][]string),
		titles:       make(map[string]string),
	}
}

// Consume implements pipeline.Sink.
func (s *corpusSink) Consume(_ context.Context, payload pipeline.Payload) error {
	pPayload, ok := payload.(*pagePayload)
	if !ok {
		return nil
	}

	links := append([]string(nil), pPayload.Links...)
	if !s.skipNoFollow {
		links = append(links, pPayload.NoFollowLinks...)
	}

	// The payload is recycled once Consume returns so nothing may keep a
	// reference to its slices.
	s.links[pPayload.Page] = links
	if pPayload.Title != "" {
		s.titles[pPayload.Page] = pPayload.Title
	}

	return nil
}
