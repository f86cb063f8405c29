package pagerank

import (
	"math"
	"sort"
)

// Distribution maps pages to a probability mass. Distributions returned as
// final ranking results contain every page of the ranked graph and their
// values add up to 1 (within floating-point and rounding tolerance).
type Distribution map[string]float64

// Pages returns the pages of the distribution in ascending order.
func (d Distribution) Pages() []string {
	pages := make([]string, 0, len(d))
	for page := range d {
		pages = append(pages, page)
	}
	sort.Strings(pages)

	return pages
}

// Sum returns the total probability mass of the distribution. Values are
// added up in page order so that the result is reproducible.
func (d Distribution) Sum() float64 {
	var sum float64
	for _, page := range d.Pages() {
		sum += d[page]
	}

	return sum
}

// Round returns a copy of the distribution with every value rounded to the
// specified number of decimal digits.
func (d Distribution) Round(precision int) Distribution {
	scale := math.Pow(10, float64(precision))

	rounded := make(Distribution, len(d))
	for page, value := range d {
		rounded[page] = math.Round(value*scale) / scale
	}

	return rounded
}

// MaxAbsDiff returns the largest absolute difference between the values of
// d and other. Pages missing from either side count as 0.
func (d Distribution) MaxAbsDiff(other Distribution) float64 {
	var maxDiff float64
	for page, value := range d {
		maxDiff = math.Max(maxDiff, math.Abs(value-other[page]))
	}

	for page, value := range other {
		if _, exists := d[page]; !exists {
			maxDiff = math.Max(maxDiff, math.Abs(value))
		}
	}

	return maxDiff
}
