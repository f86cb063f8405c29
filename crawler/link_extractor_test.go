package crawler

import (
	"context"

	check "gopkg.in/check.v1"
)

// Initialize and register pointer instances of test suites to be
// executed by check testing package.
var (
	_ = check.Suite(new(linkExtractionTestSuite))
	_ = check.Suite(new(normalizeTargetTestSuite))
)

type normalizeTargetTestSuite struct{}

func (s *normalizeTargetTestSuite) TestRelativeTargets(c *check.C) {
	assertOnNormalizedTarget(c, "1.html", "2.html", "2.html")
	assertOnNormalizedTarget(c, "1.html", "./2.html", "2.html")
	assertOnNormalizedTarget(c, "1.html", "/2.html", "2.html")
	assertOnNormalizedTarget(c, "1.html", "sub/../2.html", "2.html")
	assertOnNormalizedTarget(c, "1.html", "../2.html", "../2.html")
}

func (s *normalizeTargetTestSuite) TestFragmentsAndQueries(c *check.C) {
	assertOnNormalizedTarget(c, "1.html", "2.html#intro", "2.html")
	assertOnNormalizedTarget(c, "1.html", "2.html?lang=en", "2.html")
}

func (s *normalizeTargetTestSuite) TestRejectedTargets(c *check.C) {
	for _, href := range []string{
		"",
		"#top",
		"https://example.com/2.html",
		"mailto:someone@example.com",
		"//example.com/2.html",
	} {
		_, ok := normalizeTarget("1.html", href)
		c.Assert(ok, check.Equals, false, check.Commentf("href %q", href))
	}
}

func assertOnNormalizedTarget(c *check.C, page, href, expected string) {
	target, ok := normalizeTarget(page, href)
	c.Assert(ok, check.Equals, true, check.Commentf("href %q", href))
	c.Assert(target, check.Equals, expected)
}

type linkExtractionTestSuite struct{}

func (s *linkExtractionTestSuite) TestAnchorVariants(c *check.C) {
	content := `
<html>
<body>
	<a href="2.html">two</a>
	<A class="nav" HREF = " 3.html ">three</A>
	<a id="x"
	   href="4.html">four</a>
	<a href="2.html#again">two again</a>
	<abbr href="5.html">not a link</abbr>
	<link href="style.css">
</body>
</html>
`
	s.assertOnExtractedLinks(c, content, []string{"2.html", "3.html", "4.html"}, nil)
}

func (s *linkExtractionTestSuite) TestNoFollowLinks(c *check.C) {
	content := `
<html>
<body>
	<a href="2.html" rel="nofollow">two</a>
	<a rel=nofollow href="3.html">three</a>
	<a href="4.html">four</a>
</body>
</html>
`
	s.assertOnExtractedLinks(c, content, []string{"4.html"}, []string{"2.html", "3.html"})
}

func (s *linkExtractionTestSuite) TestExternalLinks(c *check.C) {
	content := `
<html>
<body>
	<a href="https://example.com">out</a>
	<a href="ftp://example.com">an FTP site</a>
</body>
</html>
`
	s.assertOnExtractedLinks(c, content, nil, nil)
}

func (s *linkExtractionTestSuite) assertOnExtractedLinks(
	c *check.C, content string, expLinks, expNoFollowLinks []string,
) {

	payload := &pagePayload{Page: "1.html"}
	_, err := payload.RawContent.WriteString(content)
	c.Assert(err, check.IsNil)

	processed, err := newLinkExtractor().Process(context.TODO(), payload)
	c.Assert(err, check.IsNil)
	c.Assert(processed, check.Equals, payload)
	c.Assert(payload.Links, check.DeepEquals, expLinks)
	c.Assert(payload.NoFollowLinks, check.DeepEquals, expNoFollowLinks)
}
