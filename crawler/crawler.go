/*
	crawler package builds the link graph of a corpus: a flat directory of
	HTML documents that link to each other. Crawling runs as a pipeline:
		1. Read the raw content of each document (fixed pool of workers).
		2. Extract and normalise the targets of its anchor tags.
		3. Extract the document title.
		4. Collect links and titles, then drop self-links and links to
		   documents outside the corpus.
*/

package crawler

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"sort"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"

	"github.com/mycok/uRank/linkgraph/graph"
	"github.com/mycok/uRank/pipeline"
)

// DefaultExtension is the file extension of corpus documents.
const DefaultExtension = ".html"

// Config serves as a configuration object for the crawler.
type Config struct {
	// Extension selects which files of the corpus directory are treated as
	// documents. If not specified, DefaultExtension is used.
	Extension string

	// NumOfReadWorkers is the number of workers reading documents in
	// parallel. If not specified, a single worker is used.
	NumOfReadWorkers int

	// SkipNoFollow drops links carrying a rel="nofollow" attribute.
	SkipNoFollow bool

	// The logger to use. If not defined an output-discarding logger will
	// be used instead.
	Logger *logrus.Entry
}

func (cfg *Config) validate() error {
	var err error

	if cfg.Extension == "" {
		cfg.Extension = DefaultExtension
	}

	if !strings.HasPrefix(cfg.Extension, ".") {
		err = multierror.Append(err, fmt.Errorf("invalid extension %q, must start with a dot", cfg.Extension))
	}

	switch {
	case cfg.NumOfReadWorkers < 0:
		err = multierror.Append(err, fmt.Errorf("invalid value for read workers, must be >= 0"))
	case cfg.NumOfReadWorkers == 0:
		cfg.NumOfReadWorkers = 1
	}

	if cfg.Logger == nil {
		cfg.Logger = logrus.NewEntry(&logrus.Logger{Out: io.Discard})
	}

	return err
}

// Corpus is the result of a crawl.
type Corpus struct {
	// Graph holds the links between the documents of the corpus.
	Graph graph.LinkGraph

	// Titles maps documents to their title. Documents without a title are
	// omitted.
	Titles map[string]string
}

// Crawler extracts link graphs out of corpus directories.
type Crawler struct {
	cfg Config
}

// New returns a fully configured Crawler.
func New(cfg Config) (*Crawler, error) {
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("crawler: config validation failed: %w", err)
	}

	return &Crawler{cfg: cfg}, nil
}

// Crawl builds the corpus found in directory dir. Sub-directories are not
// traversed.
func (c *Crawler) Crawl(ctx context.Context, dir string) (*Corpus, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("crawler: %w", err)
	}

	if !info.IsDir() {
		return nil, fmt.Errorf("crawler: %q is not a directory", dir)
	}

	return c.CrawlFS(ctx, os.DirFS(dir))
}

// CrawlFS builds the corpus found at the root of fsys.
func (c *Crawler) CrawlFS(ctx context.Context, fsys fs.FS) (*Corpus, error) {
	pages, err := c.listPages(fsys)
	if err != nil {
		return nil, err
	}

	p := pipeline.New(
		pipeline.NewFixedWorkerPool(newPageReader(fsys), c.cfg.NumOfReadWorkers),
		pipeline.NewFIFO(newLinkExtractor()),
		pipeline.NewFIFO(newTitleExtractor()),
	)

	sink := newCorpusSink(c.cfg.SkipNoFollow)
	if err := p.Execute(ctx, &pageSource{pages: pages}, sink); err != nil {
		return nil, fmt.Errorf("crawler: %w", err)
	}

	corpus := &Corpus{
		Graph:  graph.New(sink.links),
		Titles: sink.titles,
	}

	c.cfg.Logger.WithFields(logrus.Fields{
		"pages":  corpus.Graph.Len(),
		"titles": len(corpus.Titles),
	}).Debug("crawled corpus")

	return corpus, nil
}

// IsPage returns true if name refers to a corpus document.
func (c *Crawler) IsPage(name string) bool {
	return strings.HasSuffix(name, c.cfg.Extension)
}

func (c *Crawler) listPages(fsys fs.FS) ([]string, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("crawler: list pages: %w", err)
	}

	var pages []string
	for _, entry := range entries {
		if entry.IsDir() || !c.IsPage(entry.Name()) {
			continue
		}

		pages = append(pages, entry.Name())
	}
	sort.Strings(pages)

	return pages, nil
}
