package problem

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/pfrederiksen/cf-readme/internal/convert"
)

var lineBreak = regexp.MustCompile(`<br\s*/?>`)

// FormatExamples renders the sample tests as fenced Input/Output blocks in
// page order. The fragment may come from either sample layout; once the
// lines are joined both parse the same way.
func FormatExamples(raw string, conv *convert.Converter) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	if err != nil {
		return strings.TrimSpace(conv.Convert(raw))
	}

	title := strings.TrimSpace(doc.Find("div.section-title").First().Text())
	if title == "" {
		title = "Examples"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "### %s\n", title)

	blocks := doc.Find("div.input, div.output")
	if blocks.Length() == 0 {
		return strings.TrimSpace(conv.Convert(raw))
	}

	blocks.Each(func(_ int, sel *goquery.Selection) {
		label := "Input"
		if sel.HasClass("output") {
			label = "Output"
		}
		fmt.Fprintf(&b, "%s\n```\n%s\n```\n", label, sampleText(sel.Find("pre").First()))
	})

	return strings.TrimRight(b.String(), "\n")
}

// sampleText returns the contents of a sample <pre>. Newer pages wrap every
// line in a test-example-line div, older ones separate lines with <br>.
func sampleText(pre *goquery.Selection) string {
	if lines := pre.Find("div.test-example-line"); lines.Length() > 0 {
		out := make([]string, 0, lines.Length())
		lines.Each(func(_ int, line *goquery.Selection) {
			out = append(out, line.Text())
		})
		return strings.Join(out, "\n")
	}

	inner, err := pre.Html()
	if err != nil {
		return strings.Trim(pre.Text(), "\n")
	}
	inner = lineBreak.ReplaceAllString(inner, "\n")
	return strings.Trim(convert.StripTags(inner), "\n")
}
