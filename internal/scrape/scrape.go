/*
Package scrape fetches an event page and distills it into the signals the
analysis pipeline consumes: title, meta tags, JSON-LD and microdata
structured entries, cleaned main text, and harvested agenda, speaker and
sponsor candidates.
*/
package scrape

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"golang.org/x/net/html"

	"github.com/kbygtools/eventscout/internal/types"
)

const (
	maxMainTextLen       = 30000
	maxSessionBlocks     = 250
	maxSpeakerEntries    = 300
	maxSponsorCandidates = 200
)

var client = &http.Client{
	Timeout: 30 * time.Second,
}

var (
	spaceRunRe    = regexp.MustCompile(`[ \t]+`)
	blankRunRe    = regexp.MustCompile(`\n{3,}`)
	sponsorWordRe = regexp.MustCompile(`(?i)sponsor|sponsorship|opportunities`)
)

// ogMetaTags and nameMetaTags list the meta entries worth carrying forward.
var (
	ogMetaTags   = []string{"og:title", "og:description", "og:type", "og:url", "og:site_name"}
	nameMetaTags = []string{"description", "keywords", "author"}
)

// skipTags are non-content elements excluded from text extraction.
var skipTags = map[string]bool{
	"script":   true,
	"style":    true,
	"noscript": true,
	"iframe":   true,
	"svg":      true,
	"canvas":   true,
}

// FetchSignals downloads the page and extracts its signals.
func FetchSignals(pageURL string) (types.PageSignals, error) {
	resp, err := client.Get(pageURL)
	if err != nil {
		return types.PageSignals{}, fmt.Errorf("failed to fetch URL %s: %w", pageURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return types.PageSignals{}, fmt.Errorf("received non-OK status code %d from %s", resp.StatusCode, pageURL)
	}

	return ParseSignals(resp.Body, pageURL)
}

// ParseSignals extracts page signals from an HTML document.
func ParseSignals(r io.Reader, pageURL string) (types.PageSignals, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return types.PageSignals{}, fmt.Errorf("failed to parse HTML from %s: %w", pageURL, err)
	}

	mainText := cleanText(extractText(findMainContent(doc)))
	if len(mainText) > maxMainTextLen {
		mainText = mainText[:maxMainTextLen]
	}

	return types.PageSignals{
		URL:               pageURL,
		Title:             extractTitle(doc),
		Meta:              extractMeta(doc),
		StructuredData:    extractStructuredData(doc),
		MainText:          mainText,
		SessionBlocks:     extractSessionBlocks(doc),
		SpeakerDirectory:  extractSpeakerDirectory(doc),
		SponsorCandidates: extractSponsorCandidates(doc),
	}, nil
}

func extractTitle(doc *html.Node) string {
	var title string
	walk(doc, func(n *html.Node) bool {
		if n.Type == html.ElementNode && n.Data == "title" && title == "" {
			title = strings.TrimSpace(extractText(n))
			return false
		}
		return true
	})
	return title
}

func extractMeta(doc *html.Node) map[string]string {
	meta := make(map[string]string)

	walk(doc, func(n *html.Node) bool {
		if n.Type != html.ElementNode || n.Data != "meta" {
			return true
		}

		property := attrVal(n, "property")
		name := attrVal(n, "name")
		content := attrVal(n, "content")
		if content == "" {
			return true
		}

		for _, tag := range ogMetaTags {
			if property == tag {
				meta[tag] = content
				return true
			}
		}
		for _, tag := range nameMetaTags {
			if name == tag {
				meta[tag] = content
				return true
			}
		}
		return true
	})

	if len(meta) == 0 {
		return nil
	}
	return meta
}

// extractStructuredData collects JSON-LD script payloads plus a synthesized
// entry for any microdata Event element.
func extractStructuredData(doc *html.Node) []map[string]any {
	var entries []map[string]any

	walk(doc, func(n *html.Node) bool {
		if n.Type != html.ElementNode {
			return true
		}

		if n.Data == "script" && attrVal(n, "type") == "application/ld+json" {
			raw := rawText(n)
			var decoded any
			if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
				return true // invalid JSON, skip
			}
			switch v := decoded.(type) {
			case map[string]any:
				entries = append(entries, v)
			case []any:
				for _, item := range v {
					if m, ok := item.(map[string]any); ok {
						entries = append(entries, m)
					}
				}
			}
			return true
		}

		if strings.Contains(attrVal(n, "itemtype"), "Event") {
			if entry := microdataEvent(n); entry != nil {
				entries = append(entries, entry)
			}
			return false
		}

		return true
	})

	return entries
}

func microdataEvent(n *html.Node) map[string]any {
	name := cleanText(extractText(findItemprop(n, "name")))
	if name == "" {
		return nil
	}

	entry := map[string]any{
		"type": "microdata",
		"name": name,
	}
	if start := findItemprop(n, "startDate"); start != nil {
		entry["startDate"] = attrVal(start, "content")
	}
	if end := findItemprop(n, "endDate"); end != nil {
		entry["endDate"] = attrVal(end, "content")
	}
	if loc := findItemprop(n, "location"); loc != nil {
		entry["location"] = cleanText(extractText(loc))
	}
	return entry
}

func findItemprop(root *html.Node, prop string) *html.Node {
	var found *html.Node
	walk(root, func(n *html.Node) bool {
		if found != nil {
			return false
		}
		if n != root && n.Type == html.ElementNode && attrVal(n, "itemprop") == prop {
			found = n
			return false
		}
		return true
	})
	return found
}

// mainSelectors is the priority order for locating the page's main content
// region before falling back to the whole body.
var mainSelectors = []func(n *html.Node) bool{
	func(n *html.Node) bool { return n.Data == "main" },
	func(n *html.Node) bool { return attrVal(n, "role") == "main" },
	func(n *html.Node) bool { return attrVal(n, "id") == "main-content" || attrVal(n, "id") == "content" },
	func(n *html.Node) bool { return hasClass(n, "main-content") || hasClass(n, "content") },
	func(n *html.Node) bool { return n.Data == "article" },
	func(n *html.Node) bool {
		return hasClass(n, "event-details") || hasClass(n, "event-content") ||
			hasClass(n, "speakers") || hasClass(n, "sponsors") || hasClass(n, "agenda")
	},
}

func findMainContent(doc *html.Node) *html.Node {
	for _, match := range mainSelectors {
		var found *html.Node
		walk(doc, func(n *html.Node) bool {
			if found != nil {
				return false
			}
			if n.Type == html.ElementNode && match(n) {
				found = n
				return false
			}
			return true
		})
		if found != nil {
			return found
		}
	}

	var body *html.Node
	walk(doc, func(n *html.Node) bool {
		if n.Type == html.ElementNode && n.Data == "body" && body == nil {
			body = n
			return false
		}
		return true
	})
	if body != nil {
		return body
	}
	return doc
}

func extractSessionBlocks(doc *html.Node) []types.SessionBlock {
	var blocks []types.SessionBlock
	seen := make(map[string]bool)

	walk(doc, func(n *html.Node) bool {
		if len(blocks) >= maxSessionBlocks {
			return false
		}
		if n.Type != html.ElementNode || !isSessionNode(n) {
			return true
		}

		block := types.SessionBlock{
			Title:        cleanText(extractText(findByClass(n, "session_title", "h6", "h5", "h4"))),
			Time:         cleanText(extractText(findByClass(n, "time", "time"))),
			SpeakersText: cleanText(extractText(findByClass(n, "speaker"))),
			Location:     cleanText(extractText(findByClass(n, "location"))),
			Description:  cleanText(extractText(findByClass(n, "excerpt", "p"))),
		}
		if len(block.Title) < 4 {
			return false
		}

		key := strings.ToLower(block.Title + "|" + block.Time + "|" + block.Location)
		if seen[key] {
			return false
		}
		seen[key] = true

		blocks = append(blocks, block)
		return false
	})

	return blocks
}

func isSessionNode(n *html.Node) bool {
	class := strings.ToLower(attrVal(n, "class"))
	if strings.Contains(class, "session_content") {
		return true
	}
	if n.Data == "li" && (strings.Contains(class, "session") || strings.Contains(class, "themeborder")) {
		return true
	}
	return false
}

// findByClass returns the first descendant whose class contains classPart,
// falling back to the first descendant matching any of the tag names.
func findByClass(root *html.Node, classPart string, tags ...string) *html.Node {
	var byClass *html.Node
	walk(root, func(n *html.Node) bool {
		if byClass != nil {
			return false
		}
		if n != root && n.Type == html.ElementNode &&
			strings.Contains(strings.ToLower(attrVal(n, "class")), classPart) {
			byClass = n
			return false
		}
		return true
	})
	if byClass != nil {
		return byClass
	}

	for _, tag := range tags {
		var byTag *html.Node
		walk(root, func(n *html.Node) bool {
			if byTag != nil {
				return false
			}
			if n != root && n.Type == html.ElementNode && n.Data == tag {
				byTag = n
				return false
			}
			return true
		})
		if byTag != nil {
			return byTag
		}
	}
	return nil
}

func extractSpeakerDirectory(doc *html.Node) []types.SpeakerEntry {
	var people []types.SpeakerEntry
	seen := make(map[string]bool)

	walkWithAncestors(doc, nil, func(n *html.Node, ancestors []*html.Node) bool {
		if len(people) >= maxSpeakerEntries {
			return false
		}
		if n.Type != html.ElementNode || n.Data != "a" {
			return true
		}
		href := attrVal(n, "href")
		if !strings.Contains(href, "/speaker/") {
			return true
		}

		name := cleanText(extractText(n))
		if len(name) < 3 {
			return true
		}

		key := strings.ToLower(name + "|" + href)
		if seen[key] {
			return true
		}
		seen[key] = true

		people = append(people, types.SpeakerEntry{
			Name:       name,
			ProfileURL: href,
			Context:    speakerContext(ancestors),
		})
		return true
	})

	return people
}

// speakerContext finds the nearest enclosing list item or speaker/session
// container and returns its cleaned text.
func speakerContext(ancestors []*html.Node) string {
	for i := len(ancestors) - 1; i >= 0; i-- {
		n := ancestors[i]
		if n.Type != html.ElementNode {
			continue
		}
		class := strings.ToLower(attrVal(n, "class"))
		if n.Data == "li" || strings.Contains(class, "session_speakers") ||
			strings.Contains(class, "session_content") || strings.Contains(class, "speaker") {
			return cleanText(extractText(n))
		}
	}
	return ""
}

func extractSponsorCandidates(doc *html.Node) []string {
	var sponsors []string
	seen := make(map[string]bool)

	walk(doc, func(n *html.Node) bool {
		if len(sponsors) >= maxSponsorCandidates {
			return false
		}
		if n.Type != html.ElementNode || !isSponsorSection(n) {
			return true
		}

		walk(n, func(label *html.Node) bool {
			if len(sponsors) >= maxSponsorCandidates {
				return false
			}
			if label.Type != html.ElementNode || !isSponsorLabel(label.Data) {
				return true
			}

			var name string
			if label.Data == "img" {
				name = cleanText(attrVal(label, "alt"))
			} else {
				name = cleanText(extractText(label))
			}

			if len(name) < 2 || len(name) > 120 {
				return true
			}
			if sponsorWordRe.MatchString(name) {
				return true
			}

			key := strings.ToLower(name)
			if seen[key] {
				return true
			}
			seen[key] = true
			sponsors = append(sponsors, name)
			return true
		})
		return false
	})

	return sponsors
}

func isSponsorSection(n *html.Node) bool {
	class := strings.ToLower(attrVal(n, "class"))
	id := strings.ToLower(attrVal(n, "id"))
	return strings.Contains(class, "sponsor") || strings.Contains(id, "sponsor")
}

func isSponsorLabel(tag string) bool {
	switch tag {
	case "a", "img", "h2", "h3", "h4", "h5", "h6", "span", "li":
		return true
	}
	return false
}

// rawText concatenates a node's direct text children without any cleanup.
// Needed for script payloads, which extractText deliberately skips.
func rawText(n *html.Node) string {
	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			sb.WriteString(c.Data)
		}
	}
	return sb.String()
}

// extractText collects the text content of a node, inserting line breaks at
// block boundaries and skipping non-content elements.
func extractText(n *html.Node) string {
	if n == nil {
		return ""
	}

	var sb strings.Builder
	var extract func(*html.Node)

	extract = func(n *html.Node) {
		if n.Type == html.ElementNode && skipTags[n.Data] {
			return
		}
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
		if n.Type == html.ElementNode && isBlockTag(n.Data) {
			sb.WriteString("\n")
		}
	}

	extract(n)
	return sb.String()
}

func isBlockTag(tag string) bool {
	switch tag {
	case "p", "div", "li", "br", "tr", "section", "article", "header", "footer",
		"h1", "h2", "h3", "h4", "h5", "h6", "ul", "ol", "table":
		return true
	}
	return false
}

// cleanText normalizes runs of spaces and tabs, collapses excessive blank
// lines, and trims the result.
func cleanText(text string) string {
	cleaned := spaceRunRe.ReplaceAllString(text, " ")
	cleaned = blankRunRe.ReplaceAllString(cleaned, "\n\n")
	lines := strings.Split(cleaned, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// walk visits nodes depth-first. Returning false from fn skips the node's
// children.
func walk(n *html.Node, fn func(*html.Node) bool) {
	if n == nil {
		return
	}
	if !fn(n) {
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, fn)
	}
}

func walkWithAncestors(n *html.Node, ancestors []*html.Node, fn func(*html.Node, []*html.Node) bool) {
	if n == nil {
		return
	}
	if !fn(n, ancestors) {
		return
	}
	ancestors = append(ancestors, n)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walkWithAncestors(c, ancestors, fn)
	}
}

func attrVal(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return strings.TrimSpace(attr.Val)
		}
	}
	return ""
}

func hasClass(n *html.Node, class string) bool {
	for _, c := range strings.Fields(attrVal(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}
