package extract

import (
	"context"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Class names that conventionally hide content from sighted users.
var hiddenClasses = map[string]struct{}{
	"hidden": {}, "d-none": {}, "sr-only": {}, "visually-hidden": {},
	"screen-reader-text": {}, "a11y-hidden": {}, "u-hidden": {}, "is-hidden": {},
}

var hiddenStyleKeys = []string{"display:none", "visibility:hidden", "opacity:0", "font-size:0"}

// htmlExtractor extracts the visible body text of an HTML document.
type htmlExtractor struct{}

func (e *htmlExtractor) Extract(_ context.Context, path string, _ Options) Result {
	data, err := readFileLenient(path)
	if err != nil {
		return failed(InputMalformed)
	}
	text, err := VisibleText(data)
	if err != nil {
		// Parser refused the document: degrade to the tag stripper,
		// which keeps the body-only and script-removal semantics.
		return ok(Normalize(StripTags(data)))
	}
	return ok(text)
}

// VisibleText parses markup and returns the normalized visible text of
// the body. Scripts, styles, hidden inputs, aria-hidden elements,
// zero-opacity styling, and known hidden classes are all removed first.
func VisibleText(markup string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return "", err
	}

	doc.Find("script,style,noscript,meta,link,head,title,template").Remove()
	doc.Find("[hidden], input[type='hidden'], [aria-hidden]").Remove()
	doc.Find("[style]").Each(func(_ int, sel *goquery.Selection) {
		style := strings.ToLower(strings.ReplaceAll(sel.AttrOr("style", ""), " ", ""))
		for _, key := range hiddenStyleKeys {
			if strings.Contains(style, key) {
				sel.Remove()
				return
			}
		}
	})
	doc.Find("[class]").Each(func(_ int, sel *goquery.Selection) {
		for _, class := range strings.Fields(sel.AttrOr("class", "")) {
			if _, hidden := hiddenClasses[strings.ToLower(class)]; hidden {
				sel.Remove()
				return
			}
		}
	})

	root := doc.Find("body")
	if root.Length() == 0 {
		root = doc.Selection
	}
	var sb strings.Builder
	for _, node := range root.Nodes {
		collectText(node, &sb)
	}
	return Normalize(sb.String()), nil
}

// collectText gathers text nodes with space separation between them,
// unlike goquery's Text which concatenates adjacent elements directly.
func collectText(n *html.Node, sb *strings.Builder) {
	if n.Type == html.TextNode {
		sb.WriteString(n.Data)
		sb.WriteByte(' ')
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, sb)
	}
}

var (
	bodyRe      = regexp.MustCompile(`(?is)<body[^>]*>(.*?)</body>`)
	commentRe   = regexp.MustCompile(`(?is)<!--.*?-->`)
	containerRe = regexp.MustCompile(`(?is)<(script|style|template|noscript|head|title)[^>]*>.*?</(script|style|template|noscript|head|title)>`)
	voidRe      = regexp.MustCompile(`(?is)<(meta|link)(\s[^>]*)?>`)
	anyTagRe    = regexp.MustCompile(`(?is)<[^>]+>`)
)

// StripTags is the regex fallback when no HTML parsing capability is
// usable: body-only extraction with comments, scripts, and head
// machinery removed. Coarser than the parser path but the same shape.
func StripTags(markup string) string {
	s := markup
	if m := bodyRe.FindStringSubmatch(s); m != nil {
		s = m[1]
	}
	s = commentRe.ReplaceAllString(s, " ")
	s = containerRe.ReplaceAllString(s, " ")
	s = voidRe.ReplaceAllString(s, " ")
	s = anyTagRe.ReplaceAllString(s, " ")
	return s
}
