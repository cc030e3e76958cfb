package convert

import (
	"fmt"
	"html"
	"regexp"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/microcosm-cc/bluemonday"
)

type compiledRule struct {
	Rule
	re *regexp.Regexp
}

// Converter applies a precedence-sorted rule list. It holds no mutable state
// and is safe for concurrent use.
type Converter struct {
	rules []compiledRule
}

// New compiles the given rule sets into one Converter.
func New(sets ...[]Rule) (*Converter, error) {
	var all []Rule
	for _, set := range sets {
		all = append(all, set...)
	}
	sortRules(all)

	compiled := make([]compiledRule, 0, len(all))
	for _, r := range all {
		re, err := regexp.Compile(r.Pattern)
		if err != nil {
			return nil, fmt.Errorf("compiling rule %q: %w", r.Name, err)
		}
		compiled = append(compiled, compiledRule{Rule: r, re: re})
	}
	return &Converter{rules: compiled}, nil
}

// MustNew is like New but panics on an invalid pattern.
func MustNew(sets ...[]Rule) *Converter {
	c, err := New(sets...)
	if err != nil {
		panic(err)
	}
	return c
}

var (
	defaultConverter  = MustNew(LatexRules(), TagRules(), SpecialRules())
	latexConverter    = MustNew(LatexRules())
	tagConverter      = MustNew(TagRules())
	specialsConverter = MustNew(SpecialRules())
)

// Default returns the full LaTeX, tags and specials pipeline.
func Default() *Converter {
	return defaultConverter
}

// Convert runs every rule over s in precedence order.
func (c *Converter) Convert(s string) string {
	for _, r := range c.rules {
		out := r.re.ReplaceAllString(s, r.Replacement)
		for r.Repeat && out != s {
			s = out
			out = r.re.ReplaceAllString(s, r.Replacement)
		}
		s = out
	}
	return s
}

// Rules returns the rules in the order they are applied.
func (c *Converter) Rules() []Rule {
	out := make([]Rule, len(c.rules))
	for i, r := range c.rules {
		out[i] = r.Rule
	}
	return out
}

func ConvertLatex(s string) string {
	return latexConverter.Convert(s)
}

func ConvertTags(s string) string {
	return tagConverter.Convert(s)
}

func ConvertSpecials(s string) string {
	return specialsConverter.Convert(s)
}

var strict = bluemonday.StrictPolicy()

// StripTags removes all markup and decodes entities, leaving plain text.
func StripTags(s string) string {
	return html.UnescapeString(strict.Sanitize(s))
}

var mdConverter = converter.NewConverter(
	converter.WithPlugins(
		base.NewBasePlugin(),
		commonmark.NewCommonmarkPlugin(),
	),
)

// ToMarkdown converts a fragment with a general HTML-to-markdown converter.
// It is used for markup the rule table was not written for.
func ToMarkdown(fragment string) (string, error) {
	md, err := mdConverter.ConvertString(fragment)
	if err != nil {
		return "", fmt.Errorf("converting to markdown: %w", err)
	}
	return strings.TrimSpace(md), nil
}
