package crawler

import (
	"context"
	"fmt"
	"io/fs"

	"github.com/mycok/uRank/pipeline"
)

// Static and compile-time check to ensure pageReader implements
// pipeline.Processor interface.
var _ pipeline.Processor = (*pageReader)(nil)

// pageReader loads the raw content of a corpus document.
type pageReader struct {
	fsys fs.FS
}

func newPageReader(fsys fs.FS) *pageReader {
	return &pageReader{fsys: fsys}
}

// Process reads the document named by the payload into its RawContent.
func (r *pageReader) Process(
	ctx context.Context, payload pipeline.Payload,
) (pipeline.Payload, error) {

	pPayload, ok := payload.(*pagePayload)
	if !ok {
		return nil, nil
	}

	f, err := r.fsys.Open(pPayload.Page)
	if err != nil {
		return nil, fmt.Errorf("read page %q: %w", pPayload.Page, err)
	}
	defer func() { _ = f.Close() }()

	if _, err := pPayload.RawContent.ReadFrom(f); err != nil {
		return nil, fmt.Errorf("read page %q: %w", pPayload.Page, err)
	}

	return pPayload, nil
}
