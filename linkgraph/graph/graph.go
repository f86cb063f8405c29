/*
	graph package defines the link graph model shared by the page-ranking
	algorithms: a closed set of pages, the outgoing links of each page and the
	derived inverse (back-link) graph.
*/

package graph

import "sort"

// LinkSet is the set of pages a single page links to.
type LinkSet map[string]struct{}

// LinkGraph maps every page of a corpus to the set of pages it links to.
// Link sets only reference pages that are themselves keys of the graph and
// never contain the page's own identifier.
//
// A LinkGraph is treated as immutable once built. None of the ranking
// algorithms modify it.
type LinkGraph map[string]LinkSet

// New builds a LinkGraph from raw page -> link target lists. Every key of
// links becomes a page of the graph. Self-links, duplicate links and links
// to pages that are not part of the corpus are discarded.
func New(links map[string][]string) LinkGraph {
	g := make(LinkGraph, len(links))
	for page := range links {
		g[page] = make(LinkSet)
	}

	for page, targets := range links {
		for _, target := range targets {
			if target == page {
				continue
			}

			// Only include links to other pages in the corpus.
			if _, exists := g[target]; !exists {
				continue
			}

			g[page][target] = struct{}{}
		}
	}

	return g
}

// Len returns the number of pages in the graph.
func (g LinkGraph) Len() int { return len(g) }

// Has returns true if page is part of the graph.
func (g LinkGraph) Has(page string) bool {
	_, exists := g[page]

	return exists
}

// Links returns the outgoing link set of page or nil if the page is unknown.
func (g LinkGraph) Links(page string) LinkSet { return g[page] }

// OutDegree returns the number of outgoing links of page.
func (g LinkGraph) OutDegree(page string) int { return len(g[page]) }

// IsDeadEnd returns true if page has no outgoing links.
func (g LinkGraph) IsDeadEnd(page string) bool { return len(g[page]) == 0 }

// Pages returns the identifiers of all pages in ascending order. This is the
// iteration order used whenever the result of a computation depends on it.
func (g LinkGraph) Pages() []string {
	pages := make([]string, 0, len(g))
	for page := range g {
		pages = append(pages, page)
	}
	sort.Strings(pages)

	return pages
}

// Sorted returns the members of the link set in ascending order.
func (s LinkSet) Sorted() []string {
	links := make([]string, 0, len(s))
	for link := range s {
		links = append(links, link)
	}
	sort.Strings(links)

	return links
}

// Contains returns true if the set contains page.
func (s LinkSet) Contains(page string) bool {
	_, exists := s[page]

	return exists
}
