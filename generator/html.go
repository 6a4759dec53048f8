package generator

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/TessaraLabs/lingosnip"
	"golang.org/x/net/html"
)

// ignoredTags contains HTML tags whose text content is never substituted.
var ignoredTags = map[string]bool{
	"script":   true,
	"style":    true,
	"code":     true,
	"pre":      true,
	"textarea": true,
	"noscript": true,
}

// GenerateHTML substitutes placeholders inside an HTML template. Both
// @@key@@ markers in text nodes and elements carrying a data-l10n-key
// attribute are resolved, and the <html> tag receives lang and dir
// attributes derived from the highest-priority language.
func (g *Generator) GenerateHTML(htmlText string) (*Result, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlText))
	if err != nil {
		return nil, fmt.Errorf("parsing template HTML: %w", err)
	}

	result := &Result{}
	missing := make(map[string]bool)

	for _, root := range doc.Nodes {
		g.walkTextNodes(root, result, missing)
	}

	doc.Find("[data-l10n-key]").Each(func(_ int, sel *goquery.Selection) {
		key, ok := sel.Attr("data-l10n-key")
		if !ok || key == "" {
			return
		}
		sel.SetText(g.substitute(key, result, missing))
	})

	defaultLang := g.languages[0]
	htmlTag := doc.Find("html")
	if htmlTag.Length() > 0 {
		htmlTag.SetAttr("lang", lingosnip.NormalizeTag(defaultLang))
		htmlTag.SetAttr("dir", lingosnip.GetDirection(defaultLang))
	}

	content, err := doc.Html()
	if err != nil {
		return nil, fmt.Errorf("rendering template HTML: %w", err)
	}

	result.Content = content
	result.Missing = sortedKeys(missing)
	return result, nil
}

// walkTextNodes replaces @@key@@ markers in text nodes, skipping subtrees of
// ignored tags.
func (g *Generator) walkTextNodes(n *html.Node, result *Result, missing map[string]bool) {
	if n.Type == html.ElementNode && ignoredTags[strings.ToLower(n.Data)] {
		return
	}

	if n.Type == html.TextNode && strings.Contains(n.Data, "@@") {
		n.Data = placeholderPattern.ReplaceAllStringFunc(n.Data, func(match string) string {
			key := placeholderPattern.FindStringSubmatch(match)[1]
			return g.substitute(key, result, missing)
		})
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		g.walkTextNodes(c, result, missing)
	}
}
