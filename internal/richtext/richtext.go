// Package richtext post-processes the HTML the CMS editor produces: code
// blocks get server-side syntax highlighting and plain-text excerpts are
// derived for meta descriptions.
package richtext

import (
	"bytes"
	"html/template"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"golang.org/x/net/html"
)

const lastGoodBreakRatio = 0.8

var htmlTagPattern = regexp.MustCompile(`<[^>]*>`)

// Highlight replaces every <pre><code> block with chroma-highlighted markup.
// Blocks that cannot be tokenised stay untouched, and a document that cannot
// be reassembled is returned as-is.
func Highlight(body string) template.HTML {
	if strings.TrimSpace(body) == "" {
		return template.HTML("")
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return template.HTML(body)
	}

	doc.Find("pre > code").Each(func(_ int, code *goquery.Selection) {
		highlightCodeBlock(code)
	})

	rendered, err := doc.Find("body").Html()
	if err != nil {
		return template.HTML(body)
	}

	return template.HTML(rendered)
}

func highlightCodeBlock(code *goquery.Selection) {
	source := code.Text()
	lexer := pickLexer(codeLanguage(code.AttrOr("class", "")), source)

	iterator, err := lexer.Tokenise(nil, source)
	if err != nil {
		return
	}

	formatter := chromahtml.New(chromahtml.WithClasses(true))
	var buffer bytes.Buffer
	if err := formatter.Format(&buffer, styles.Fallback, iterator); err != nil {
		return
	}

	code.Parent().ReplaceWithHtml(buffer.String())
}

func pickLexer(language string, code string) chroma.Lexer {
	if language != "" {
		if lexer := lexers.Get(language); lexer != nil {
			return lexer
		}
	}

	if lexer := lexers.Analyse(code); lexer != nil {
		return lexer
	}

	return lexers.Fallback
}

// codeLanguage extracts the language hint from a class attribute in the
// editor's "language-xxx" (or "lang-xxx") convention.
func codeLanguage(classAttr string) string {
	for _, class := range strings.Fields(classAttr) {
		normalized := strings.ToLower(class)
		if lang, ok := strings.CutPrefix(normalized, "language-"); ok {
			return lang
		}
		if lang, ok := strings.CutPrefix(normalized, "lang-"); ok {
			return lang
		}
	}

	return ""
}

// Excerpt reduces an HTML body to collapsed plain text of at most maxChars
// runes, preferring to cut on a word boundary.
func Excerpt(body string, maxChars int) string {
	if maxChars < 1 {
		return ""
	}

	clean := htmlToPlainText(body)
	if clean == "" {
		return ""
	}

	if utf8.RuneCountInString(clean) <= maxChars {
		return clean
	}

	return truncateRunes(clean, maxChars)
}

func htmlToPlainText(body string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		stripped := htmlTagPattern.ReplaceAllString(body, " ")
		return strings.Join(strings.Fields(stripped), " ")
	}

	doc.Find("pre, script, style").Remove()

	var b strings.Builder
	for _, node := range doc.Find("body").Nodes {
		appendTextNodes(&b, node)
	}

	return strings.Join(strings.Fields(b.String()), " ")
}

// appendTextNodes writes every text node with a trailing separator so text
// from adjacent elements never runs together.
func appendTextNodes(b *strings.Builder, node *html.Node) {
	if node.Type == html.TextNode {
		b.WriteString(node.Data)
		b.WriteByte(' ')
		return
	}

	for child := node.FirstChild; child != nil; child = child.NextSibling {
		appendTextNodes(b, child)
	}
}

func truncateRunes(text string, maxChars int) string {
	runes := []rune(text)
	if len(runes) <= maxChars {
		return text
	}

	truncateAt := maxChars
	minBreak := int(float64(maxChars) * lastGoodBreakRatio)
	for idx := maxChars - 1; idx >= minBreak; idx-- {
		if unicode.IsSpace(runes[idx]) {
			truncateAt = idx
			break
		}
	}

	truncated := strings.TrimSpace(string(runes[:truncateAt]))
	if truncated == "" {
		truncated = strings.TrimSpace(string(runes[:maxChars]))
	}

	return truncated + "..."
}
