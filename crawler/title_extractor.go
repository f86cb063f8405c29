package crawler

import (
	"context"
	"html"
	"regexp"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"

	"github.com/mycok/uRank/pipeline"
)

// Static and compile-time check to ensure titleExtractor implements
// pipeline.Processor interface.
var _ pipeline.Processor = (*titleExtractor)(nil)

var (
	titleRegex         = regexp.MustCompile(`(?is)<title.*?>(.*?)</title>`)
	repeatedSpaceRegex = regexp.MustCompile(`\s+`)
)

// titleExtractor populates the title of each document with the tag-free,
// whitespace-collapsed content of its <title> element.
type titleExtractor struct {
	policyPool sync.Pool
}

func newTitleExtractor() *titleExtractor {
	return &titleExtractor{
		policyPool: sync.Pool{
			New: func() interface{} {
				return bluemonday.StrictPolicy()
			},
		},
	}
}

// Process implements pipeline.Processor.
func (p *titleExtractor) Process(
	ctx context.Context, payload pipeline.Payload,
) (pipeline.Payload, error) {

	pPayload, ok := payload.(*pagePayload)
	if !ok {
		return nil, nil
	}

	// Note: FindStringSubmatch returns either nil or a slice of length 2.
	titleMatch := titleRegex.FindStringSubmatch(pPayload.RawContent.String())
	if len(titleMatch) != 2 {
		return pPayload, nil
	}

	policy := p.policyPool.Get().(*bluemonday.Policy)
	cleanTitle := repeatedSpaceRegex.ReplaceAllString(policy.Sanitize(titleMatch[1]), " ")
	p.policyPool.Put(policy)

	pPayload.Title = strings.TrimSpace(html.UnescapeString(cleanTitle))

	return pPayload, nil
}
