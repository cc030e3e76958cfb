package problem

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/pfrederiksen/cf-readme/internal/convert"
)

var digits = regexp.MustCompile(`\d+`)

// FormatDifficulty pulls the rating out of the raw difficulty line ("  *800").
func FormatDifficulty(raw string) string {
	return digits.FindString(raw)
}

// FormatName builds the heading from the problem title and its rating.
func FormatName(name, difficulty string) string {
	name = strings.TrimSpace(name)
	if difficulty == "" {
		return name
	}
	return name + " - " + difficulty
}

var tagAliases = map[string]string{
	"math":     "maths",
	"sortings": "sorting",
	"dp":       "dynamic programming",
}

// FormatTags capitalises each tag and joins them with commas.
func FormatTags(tags []string) string {
	formatted := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if alias, ok := tagAliases[tag]; ok {
			tag = alias
		}
		formatted = append(formatted, titleWords(tag))
	}
	return strings.Join(formatted, ", ")
}

// titleWords upper-cases the first letter of every space separated word.
func titleWords(s string) string {
	words := strings.Split(s, " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		r, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(r)) + w[size:]
	}
	return strings.Join(words, " ")
}

var statementCleanup = strings.NewReplacer(
	"ExamplesInput", "",
	"ExampleInput", "",
	"\nInput", "  \n### Input\n",
	"\nOutput", "  \n### Output\n",
)

// FormatStatement converts the statement markup and turns the input and
// output section titles into headers.
func FormatStatement(raw string, conv *convert.Converter) string {
	s := conv.Convert(raw)
	s = statementCleanup.Replace(s)
	return strings.TrimRight(s, " \n")
}

// toMarkdown converts notes that have no paragraph markup.
var toMarkdown = convert.ToMarkdown

var (
	noteTitle     = regexp.MustCompile(`<div class="section-title">\s*Note\s*</div>`)
	noteParagraph = regexp.MustCompile(`<p[\s>]`)
)

// FormatNote converts the note block. An absent note stays empty.
func FormatNote(raw string, conv *convert.Converter) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}

	body := noteTitle.ReplaceAllString(raw, "")
	var text string
	if noteParagraph.MatchString(body) {
		text = conv.Convert(body)
	} else if md, err := toMarkdown(body); err != nil {
		text = conv.Convert(body)
	} else {
		text = convert.ConvertSpecials(convert.ConvertLatex(md))
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}
	return "### Note\n" + text
}
