package crawler

import (
	"bytes"
	"sync"

	"github.com/mycok/uRank/pipeline"
)

var (
	_ pipeline.Payload = (*pagePayload)(nil)

	payloadPool = sync.Pool{
		New: func() interface{} {
			return new(pagePayload)
		},
	}
)

type pagePayload struct {
	Page          string       // populated by the file source.
	RawContent    bytes.Buffer // populated by the file reader.
	Links         []string     // populated by the link extractor.
	NoFollowLinks []string     // populated by the link extractor.
	Title         string       // populated by the title extractor.
}

// MarkAsProcessed resets the payload and returns it to the pool.
func (p *pagePayload) MarkAsProcessed() {
	p.Page = p.Page[:0]
	p.RawContent.Reset()
	p.Links = p.Links[:0]
	p.NoFollowLinks = p.NoFollowLinks[:0]
	p.Title = p.Title[:0]

	payloadPool.Put(p)
}
