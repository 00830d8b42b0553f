package richtext

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/styles"
)

const (
	chromaLightStyle = "github"
	chromaDarkStyle  = "monokai"
)

// ChromaCSS builds the stylesheet matching the class names Highlight emits,
// with a light and a dark palette behind prefers-color-scheme.
func ChromaCSS() (template.CSS, error) {
	lightCSS, err := buildSingleStyleCSS(chromaLightStyle)
	if err != nil {
		return "", err
	}
	darkCSS, err := buildSingleStyleCSS(chromaDarkStyle)
	if err != nil {
		return "", err
	}

	var out strings.Builder
	out.WriteString("@media (prefers-color-scheme: light) {\n")
	out.WriteString(lightCSS)
	out.WriteString("}\n")
	out.WriteString("@media (prefers-color-scheme: dark) {\n")
	out.WriteString(darkCSS)
	out.WriteString("}\n")

	return template.CSS(out.String()), nil
}

func buildSingleStyleCSS(styleName string) (string, error) {
	style := styles.Get(styleName)
	if style == nil {
		style = styles.Fallback
	}

	formatter := chromahtml.New(chromahtml.WithClasses(true))
	var buffer bytes.Buffer
	if err := formatter.WriteCSS(&buffer, style); err != nil {
		return "", fmt.Errorf("write %s chroma css: %w", styleName, err)
	}

	return buffer.String(), nil
}
