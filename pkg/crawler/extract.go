package crawler

import (
	"net/url"
	"regexp"
	"strings"

	"golang.org/x/net/html"

	"dslabs/dssearch/pkg/trust"
)

var whitespacePattern = regexp.MustCompile(`\s+`)

// actionWords are the anchor-text keywords that mark a link worth keeping:
// the links a job seeker actually needs from a notification page.
var actionWords = []string{"apply", "download", "result", "notification", "official", "pdf", "click here", "आवेदन", "डाउनलोड", "परिणाम"}

// skippedElements are stripped wholesale during text extraction.
var skippedElements = map[string]bool{
	"script":   true,
	"style":    true,
	"noscript": true,
	"iframe":   true,
	"svg":      true,
	"nav":      true,
	"header":   true,
	"footer":   true,
	"aside":    true,
}

// keyPointWords mark a list item as carrying concrete information worth
// surfacing on its own.
var keyPointWords = []string{"last date", "fee", "apply", "eligibility", "age", "vacanc", "exam", "qualification", "अंतिम तिथि", "शुल्क", "आवेदन", "पात्रता"}

// domainProfile names where a family of sites keeps its primary content
// and which meta field carries the page date.
type domainProfile struct {
	containers []string
	dateMetas  []string
}

var (
	govProfile = domainProfile{
		containers: []string{".content-area", "#content", "main", ".main-content", "article"},
		dateMetas:  []string{"date", "updated"},
	}
	aggregatorProfile = domainProfile{
		containers: []string{".job-info", ".post-content", "article"},
		dateMetas:  []string{"post-date", "date"},
	}
	defaultProfile = domainProfile{
		containers: []string{"main", "article", "#content", ".content"},
		dateMetas:  []string{"date"},
	}
)

// aggregatorDomains are the commercial job/result portals with a known
// post layout.
var aggregatorDomains = map[string]bool{
	"sarkariresult.com": true,
	"freejobalert.com":  true,
	"sarkariexam.com":   true,
	"rojgarresult.com":  true,
	"resultbharat.com":  true,
}

// profileFor picks the extraction profile for a domain.
func profileFor(domain string) domainProfile {
	if strings.HasSuffix(domain, ".gov.in") || strings.HasSuffix(domain, ".nic.in") {
		return govProfile
	}
	if aggregatorDomains[domain] {
		return aggregatorProfile
	}
	return defaultProfile
}

// extraction is everything pulled from one HTML page.
type extraction struct {
	Title       string
	Content     string
	Snippet     string
	Links       []string
	KeyPoints   []string
	Description string
	Date        string
}

// extractPage reduces an HTML document to its useful parts. Content and
// key points come from the domain profile's primary container when one
// matches, otherwise from the whole document. Content is capped at
// MaxContentChars, the snippet at SnippetChars, links at MaxLinks.
func extractPage(htmlContent, pageURL string) extraction {
	var ex extraction
	doc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return ex
	}

	base, _ := url.Parse(pageURL)
	profile := defaultProfile
	if base != nil {
		profile = profileFor(trust.NormalizeDomain(base.Hostname()))
	}

	var docTitle, h1Title, pageTitle string
	seen := make(map[string]bool)

	// First pass over the whole document: titles, meta fields, and action
	// links, which portals scatter outside the content container.
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			if skippedElements[n.Data] {
				return
			}
			switch n.Data {
			case "title":
				if docTitle == "" {
					docTitle = textContent(n)
				}
				return
			case "h1":
				if h1Title == "" {
					h1Title = textContent(n)
				}
			case "meta":
				name := attrValue(n, "name")
				if name == "description" {
					ex.Description = strings.TrimSpace(attrValue(n, "content"))
				}
				if ex.Date == "" {
					for _, dm := range profile.dateMetas {
						if name == dm {
							ex.Date = strings.TrimSpace(attrValue(n, "content"))
							break
						}
					}
				}
			case "a":
				collectActionLink(n, base, seen, &ex.Links)
			}
			if pageTitle == "" && strings.Contains(attrValue(n, "class"), "page-title") {
				pageTitle = textContent(n)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	// Second pass for content text and key points, scoped to the profile's
	// primary container when the page has one.
	contentRoot := doc
	if c := findContainer(doc, profile.containers); c != nil {
		contentRoot = c
	}

	var content strings.Builder
	seenPoints := make(map[string]bool)
	var collect func(*html.Node)
	collect = func(n *html.Node) {
		if n.Type == html.ElementNode {
			if skippedElements[n.Data] || n.Data == "title" {
				return
			}
			switch n.Data {
			case "li", "td":
				collectKeyPoint(n, seenPoints, &ex.KeyPoints)
			}
		}
		if n.Type == html.TextNode {
			if t := strings.TrimSpace(n.Data); t != "" && content.Len() < MaxContentChars {
				content.WriteString(t)
				content.WriteString(" ")
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			collect(c)
		}
	}
	collect(contentRoot)

	// Title preference: the page's own heading beats the window title,
	// which portals routinely stuff with site-wide boilerplate.
	switch {
	case h1Title != "":
		ex.Title = h1Title
	case pageTitle != "":
		ex.Title = pageTitle
	default:
		ex.Title = docTitle
	}
	ex.Title = collapseSpace(ex.Title)

	ex.Content = collapseSpace(content.String())
	if len(ex.Content) > MaxContentChars {
		ex.Content = ex.Content[:MaxContentChars]
	}
	ex.Snippet = makeSnippet(ex.Content)
	return ex
}

// findContainer tries the profile's selectors in order and returns the
// first matching node. Selectors are one of "#id", ".class", or a bare
// element name.
func findContainer(doc *html.Node, selectors []string) *html.Node {
	for _, sel := range selectors {
		if n := findFirst(doc, sel); n != nil {
			return n
		}
	}
	return nil
}

func findFirst(n *html.Node, sel string) *html.Node {
	if n.Type == html.ElementNode && matchesSelector(n, sel) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findFirst(c, sel); found != nil {
			return found
		}
	}
	return nil
}

func matchesSelector(n *html.Node, sel string) bool {
	switch {
	case strings.HasPrefix(sel, "#"):
		return attrValue(n, "id") == sel[1:]
	case strings.HasPrefix(sel, "."):
		for _, cls := range strings.Fields(attrValue(n, "class")) {
			if cls == sel[1:] {
				return true
			}
		}
		return false
	default:
		return n.Data == sel
	}
}

// collectActionLink keeps the anchor when its text matches an action word,
// resolving relative hrefs against the page URL. Fragment-only and
// javascript links are dropped.
func collectActionLink(n *html.Node, base *url.URL, seen map[string]bool, links *[]string) {
	if len(*links) >= MaxLinks {
		return
	}
	href := strings.TrimSpace(attrValue(n, "href"))
	if href == "" || strings.HasPrefix(href, "#") || strings.HasPrefix(strings.ToLower(href), "javascript:") {
		return
	}

	text := strings.ToLower(textContent(n))
	hrefLower := strings.ToLower(href)
	matched := strings.HasSuffix(hrefLower, ".pdf")
	if !matched {
		for _, w := range actionWords {
			if strings.Contains(text, w) {
				matched = true
				break
			}
		}
	}
	if !matched {
		return
	}

	resolved := href
	if base != nil {
		if u, err := url.Parse(href); err == nil {
			resolved = base.ResolveReference(u).String()
		}
	}
	if seen[resolved] {
		return
	}
	seen[resolved] = true
	*links = append(*links, resolved)
}

// collectKeyPoint keeps a list or table cell line when it names something
// actionable and stays within a sentence-sized length.
func collectKeyPoint(n *html.Node, seen map[string]bool, points *[]string) {
	if len(*points) >= MaxKeyPoints {
		return
	}
	t := collapseSpace(textContent(n))
	if len(t) < 15 || len(t) > 200 {
		return
	}
	lower := strings.ToLower(t)
	matched := false
	for _, w := range keyPointWords {
		if strings.Contains(lower, w) {
			matched = true
			break
		}
	}
	if !matched || seen[lower] {
		return
	}
	seen[lower] = true
	*points = append(*points, t)
}

// makeSnippet takes the first SnippetChars characters of content, cut back
// to the last word boundary.
func makeSnippet(content string) string {
	if len(content) <= SnippetChars {
		return content
	}
	s := content[:SnippetChars]
	if idx := strings.LastIndex(s, " "); idx > 0 {
		s = s[:idx]
	}
	return s
}

func collapseSpace(s string) string {
	return strings.TrimSpace(whitespacePattern.ReplaceAllString(s, " "))
}
