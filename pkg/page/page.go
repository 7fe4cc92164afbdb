// Package page extracts clickable elements and form labels from HTML.
package page

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ClickableSelector matches the elements a user can activate.
const ClickableSelector = "a[href], a[onclick], button, select, textarea, input, " +
	"[role='button'], [role='link'], [onclick], [tabindex], [contenteditable='true']"

// Element is one clickable element in document order.
type Element struct {
	Index       int
	Tag         string
	InputType   string
	ID          string
	Href        string
	Value       string
	Placeholder string
	Text        string
	// ImageAlt and ImageTitle are only set for a link that has no text and
	// starts with an image.
	ImageAlt   string
	ImageTitle string
}

// Label is a <label for=...> element.
type Label struct {
	For  string
	Text string
}

// Document is the clickable surface of one page.
type Document struct {
	Title    string
	Elements []Element
	Labels   []Label
}

// Parse reads an HTML document.
func Parse(r io.Reader) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	// never visible, never clickable
	doc.Find("script, style, noscript, template, [hidden]").Remove()
	doc.Find("[style*='display:none'], [style*='display: none']").Remove()
	doc.Find("[style*='visibility:hidden'], [style*='visibility: hidden']").Remove()

	result := &Document{Title: collapseSpace(doc.Find("title").First().Text())}

	doc.Find(ClickableSelector).Each(func(_ int, s *goquery.Selection) {
		if !isClickable(s) {
			return
		}
		result.Elements = append(result.Elements, newElement(len(result.Elements), s))
	})

	doc.Find("label[for]").Each(func(_ int, s *goquery.Selection) {
		forID, _ := s.Attr("for")
		result.Labels = append(result.Labels, Label{For: forID, Text: collapseSpace(s.Text())})
	})

	return result, nil
}

// ParseString parses an HTML string.
func ParseString(content string) (*Document, error) {
	return Parse(strings.NewReader(content))
}

func isClickable(s *goquery.Selection) bool {
	if _, disabled := s.Attr("disabled"); disabled {
		return false
	}
	if goquery.NodeName(s) == "input" {
		if t, _ := s.Attr("type"); strings.EqualFold(t, "hidden") {
			return false
		}
	}
	if tabindex, ok := s.Attr("tabindex"); ok && strings.HasPrefix(strings.TrimSpace(tabindex), "-") {
		// focusable from script only
		_, onclick := s.Attr("onclick")
		return onclick || isNaturallyClickable(s)
	}
	return true
}

func isNaturallyClickable(s *goquery.Selection) bool {
	switch goquery.NodeName(s) {
	case "a", "button", "select", "textarea", "input":
		return true
	}
	return false
}

func newElement(index int, s *goquery.Selection) Element {
	el := Element{
		Index:       index,
		Tag:         goquery.NodeName(s),
		InputType:   strings.ToLower(s.AttrOr("type", "")),
		ID:          s.AttrOr("id", ""),
		Href:        s.AttrOr("href", ""),
		Value:       s.AttrOr("value", ""),
		Placeholder: s.AttrOr("placeholder", ""),
		Text:        collapseSpace(s.Text()),
	}

	if el.Tag == "a" && el.Text == "" {
		if img := firstElementChild(s.Nodes[0]); img != nil && img.DataAtom == atom.Img {
			el.ImageAlt = attr(img, "alt")
			el.ImageTitle = attr(img, "title")
		}
	}
	if el.Tag == "textarea" && el.Value == "" {
		el.Value = el.Text
	}
	return el
}

func firstElementChild(n *html.Node) *html.Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			return c
		}
	}
	return nil
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
