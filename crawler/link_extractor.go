package crawler

import (
	"context"
	"path"
	"regexp"
	"strings"

	"github.com/mycok/uRank/pipeline"
)

// Static and compile-time check to ensure linkExtractor implements
// pipeline.Processor interface.
var _ pipeline.Processor = (*linkExtractor)(nil)

var (
	// Locate <a ... href="xxx" ...> tags and capture the href value.
	findLinkRegex = regexp.MustCompile(`(?i)<a\s+[^>]*?href\s*=\s*"\s*([^"]*?)\s*"[^>]*>`)
	// Match a rel="nofollow" attribute inside an anchor tag.
	noFollowRegex = regexp.MustCompile(`(?i)rel\s*=\s*"?nofollow"?`)
	// Match targets that carry a URL scheme (http:, mailto:, ...).
	schemeRegex = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9+.-]*:`)
)

// linkExtractor scans the raw content of each document and collects the
// corpus-relative targets of its anchor tags.
type linkExtractor struct{}

func newLinkExtractor() *linkExtractor {
	return &linkExtractor{}
}

// Process populates the Links and NoFollowLinks fields of the payload. Links
// are deduplicated; whether they point inside the corpus is decided later,
// once every page is known.
func (p *linkExtractor) Process(
	ctx context.Context, payload pipeline.Payload,
) (pipeline.Payload, error) {

	pPayload, ok := payload.(*pagePayload)
	if !ok {
		return nil, nil
	}

	seen := make(map[string]struct{})
	for _, match := range findLinkRegex.FindAllStringSubmatch(pPayload.RawContent.String(), -1) {
		target, ok := normalizeTarget(pPayload.Page, match[1])
		if !ok {
			continue
		}

		if _, exists := seen[target]; exists {
			continue
		}
		seen[target] = struct{}{}

		if noFollowRegex.MatchString(match[0]) {
			pPayload.NoFollowLinks = append(pPayload.NoFollowLinks, target)
		} else {
			pPayload.Links = append(pPayload.Links, target)
		}
	}

	return pPayload, nil
}

// normalizeTarget resolves an href value found in page to a corpus-relative
// page name. Targets with a URL scheme, pure fragments and empty targets are
// rejected.
func normalizeTarget(page, href string) (string, bool) {
	// Drop anchors and query strings: "2.html#top" and "2.html?x=1" both
	// refer to 2.html.
	if idx := strings.IndexAny(href, "#?"); idx >= 0 {
		href = href[:idx]
	}

	if href == "" || strings.HasPrefix(href, "//") || schemeRegex.MatchString(href) {
		return "", false
	}

	if strings.HasPrefix(href, "/") {
		return path.Clean(strings.TrimPrefix(href, "/")), true
	}

	return path.Clean(path.Join(path.Dir(page), href)), true
}
