/*
	report package renders the results of a ranking pass either as the plain
	text listing printed by the urank command or as a TOML document.
*/

package report

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/pelletier/go-toml/v2"

	"github.com/mycok/uRank/pagerank"
)

// ErrUnknownFormat is returned when a report format is not supported.
var ErrUnknownFormat = errors.New("unknown report format")

// Format selects the encoding of a report.
type Format string

// Supported report formats.
const (
	FormatText Format = "text"
	FormatTOML Format = "toml"
)

// ParseFormat converts s into a Format. Matching is case-insensitive.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatText, FormatTOML:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// Results holds the outcome of ranking a single corpus with both algorithms.
type Results struct {
	// Corpus identifies the ranked corpus, usually its directory.
	Corpus string

	// SampleCount is the number of samples behind Sampled.
	SampleCount int

	// Sampled holds the ranks estimated by random sampling.
	Sampled pagerank.Distribution

	// Iterated holds the ranks computed by iteration.
	Iterated pagerank.Distribution

	// Titles maps pages to their document title. Optional.
	Titles map[string]string
}

// Writer renders Results to an io.Writer. It is safe for concurrent use.
type Writer struct {
	mu     sync.Mutex
	out    io.Writer
	format Format
}

// NewWriter returns a Writer that renders reports to out using format.
func NewWriter(out io.Writer, format Format) (*Writer, error) {
	if out == nil {
		return nil, fmt.Errorf("report: output writer not provided")
	}

	if _, err := ParseFormat(string(format)); err != nil {
		return nil, fmt.Errorf("report: %w", err)
	}

	return &Writer{out: out, format: format}, nil
}

// Report renders res.
func (w *Writer) Report(_ context.Context, res *Results) error {
	var (
		data []byte
		err  error
	)

	switch w.format {
	case FormatTOML:
		data, err = MarshalTOML(res)
	default:
		data = []byte(Text(res))
	}
	if err != nil {
		return fmt.Errorf("report: %w", err)
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if _, err = w.out.Write(data); err != nil {
		return fmt.Errorf("report: write: %w", err)
	}

	return nil
}

// Text renders res as two listings, one per algorithm, with one
// "page: rank" line per page in ascending page order.
func Text(res *Results) string {
	var sb strings.Builder

	if res.Sampled != nil {
		fmt.Fprintf(&sb, "PageRank Results from Sampling (n = %d)\n", res.SampleCount)
		writeRanks(&sb, res.Sampled)
	}

	if res.Iterated != nil {
		sb.WriteString("PageRank Results from Iteration\n")
		writeRanks(&sb, res.Iterated)
	}

	return sb.String()
}

func writeRanks(sb *strings.Builder, ranks pagerank.Distribution) {
	for _, page := range ranks.Pages() {
		fmt.Fprintf(sb, "  %s: %.4f\n", page, ranks[page])
	}
}

type tomlDocument struct {
	Corpus    string            `toml:"corpus,omitempty"`
	Sampling  *tomlRanks        `toml:"sampling,omitempty"`
	Iteration *tomlRanks        `toml:"iteration,omitempty"`
	Titles    map[string]string `toml:"titles,omitempty"`
}

type tomlRanks struct {
	Samples int                `toml:"samples,omitempty"`
	Ranks   map[string]float64 `toml:"ranks"`
}

// MarshalTOML encodes res as a TOML document with a [sampling] and an
// [iteration] table.
func MarshalTOML(res *Results) ([]byte, error) {
	doc := tomlDocument{
		Corpus: res.Corpus,
		Titles: res.Titles,
	}

	if res.Sampled != nil {
		doc.Sampling = &tomlRanks{Samples: res.SampleCount, Ranks: res.Sampled}
	}

	if res.Iterated != nil {
		doc.Iteration = &tomlRanks{Ranks: res.Iterated}
	}

	data, err := toml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("marshal toml: %w", err)
	}

	return data, nil
}

// UnmarshalTOML decodes a document produced by MarshalTOML.
func UnmarshalTOML(data []byte) (*Results, error) {
	var doc tomlDocument
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("unmarshal toml: %w", err)
	}

	res := &Results{
		Corpus: doc.Corpus,
		Titles: doc.Titles,
	}

	if doc.Sampling != nil {
		res.SampleCount = doc.Sampling.Samples
		res.Sampled = doc.Sampling.Ranks
	}

	if doc.Iteration != nil {
		res.Iterated = doc.Iteration.Ranks
	}

	return res, nil
}
