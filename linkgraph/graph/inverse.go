package graph

import "sort"

// Origin records why a back-link exists in an InverseLinkGraph.
type Origin int

const (
	// OriginLink marks a back-link created by an explicit outgoing link.
	OriginLink Origin = iota

	// OriginDeadEnd marks a back-link created because the source page is a
	// dead-end and is treated as linking to every page of the corpus.
	OriginDeadEnd
)

// String implements fmt.Stringer.
func (o Origin) String() string {
	switch o {
	case OriginLink:
		return "link"
	case OriginDeadEnd:
		return "dead-end"
	default:
		return "unknown"
	}
}

// BackLinks maps each page that links to a particular page to the origin of
// that back-link.
type BackLinks map[string]Origin

// Sources returns the linking pages in ascending order.
func (b BackLinks) Sources() []string {
	sources := make([]string, 0, len(b))
	for src := range b {
		sources = append(sources, src)
	}
	sort.Strings(sources)

	return sources
}

// InverseLinkGraph maps every page q to the set of pages linking to q.
type InverseLinkGraph map[string]BackLinks

// BuildInverse derives the inverse link graph of g.
//
// A dead-end page (no outgoing links) is treated as if it links to every page
// of the corpus, itself included, so that it can't act as a rank sink. Pages
// with outgoing links only contribute to the entries of their explicit
// targets.
//
// The returned graph has an entry for every page of g, even when nothing links
// to it.
func BuildInverse(g LinkGraph) InverseLinkGraph {
	inverse := make(InverseLinkGraph, len(g))
	for page := range g {
		inverse[page] = make(BackLinks)
	}

	for page, links := range g {
		if len(links) == 0 {
			for target := range g {
				inverse[target][page] = OriginDeadEnd
			}

			continue
		}

		for link := range links {
			inverse[link][page] = OriginLink
		}
	}

	return inverse
}
