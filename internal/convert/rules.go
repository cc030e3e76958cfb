package convert

import "sort"

// Stage bases. A rule's precedence is its stage base plus an offset.
const (
	StageLatex    = 3000
	StageTags     = 2000
	StageSpecials = 1000
)

// Rule is one substitution. Replacement may reference capture groups ($1).
type Rule struct {
	Name        string
	Pattern     string
	Replacement string
	Precedence  int
	// Repeat reapplies the rule until the text stops changing. Set it on
	// rules whose pattern consumes the character after the match, so two
	// back-to-back matches are both replaced.
	Repeat      bool
}

type latexCommand struct {
	command string
	symbol  string
}

var latexCommands = []latexCommand{
	{`leq`, "<="},
	{`le`, "<="},
	{`lt`, "<"},
	{`geq`, ">="},
	{`ge`, ">="},
	{`gt`, ">"},
	{`ldots`, "..."},
	{`dots`, "..."},
	{`cdots`, "*"},
	{`cdot`, "*"},
	{`times`, "*"},
}

// LatexRules maps the LaTeX commands used in statements to plain symbols.
func LatexRules() []Rule {
	rules := make([]Rule, 0, len(latexCommands))
	for _, c := range latexCommands {
		rules = append(rules, Rule{
			Name:        `\` + c.command,
			Pattern:     `\\` + c.command + `([^A-Za-z]|$)`,
			Replacement: c.symbol + "${1}",
			Precedence:  StageLatex + len(c.command),
			Repeat:      true,
		})
	}
	return rules
}

// TagRules turn the HTML the statements use into markdown. Anything left
// over becomes a backtick so it stays visible in the output.
func TagRules() []Rule {
	return []Rule{
		{Name: "div open", Pattern: `<div(?:\s[^>]*)?>`, Replacement: "", Precedence: StageTags + 90},
		{Name: "paragraph open", Pattern: `<p(?:\s[^>]*)?>`, Replacement: "", Precedence: StageTags + 80},
		{Name: "paragraph close", Pattern: `</p\s*>`, Replacement: "  \n\n", Precedence: StageTags + 79},
		{Name: "div close", Pattern: `</div\s*>`, Replacement: "", Precedence: StageTags + 70},
		{Name: "list item open", Pattern: `<li(?:\s[^>]*)?>`, Replacement: "- ", Precedence: StageTags + 60},
		{Name: "list item close", Pattern: `</li\s*>`, Replacement: "\n", Precedence: StageTags + 59},
		{Name: "list container", Pattern: `</?(?:ul|ol)(?:\s[^>]*)?>`, Replacement: "", Precedence: StageTags + 50},
		{Name: "italics", Pattern: `</?(?:i|em)\s*>`, Replacement: "*", Precedence: StageTags + 40},
		{Name: "line break", Pattern: `<br\s*/?>`, Replacement: "\n", Precedence: StageTags + 30},
		{Name: "unknown tag", Pattern: `</?[A-Za-z][^<>]*>`, Replacement: "`", Precedence: StageTags},
	}
}

// SpecialRules handle the site's inline math delimiter and HTML entities.
// &amp; runs last so an escaped entity is decoded only once.
func SpecialRules() []Rule {
	return []Rule{
		{Name: "inline math", Pattern: `\$\$\$`, Replacement: "`", Precedence: StageSpecials + 90},
		{Name: "thin space", Pattern: `\\,`, Replacement: ",", Precedence: StageSpecials + 80},
		{Name: "quote", Pattern: `&quot;`, Replacement: `"`, Precedence: StageSpecials + 70},
		{Name: "apostrophe", Pattern: `&#39;`, Replacement: "'", Precedence: StageSpecials + 69},
		{Name: "less than", Pattern: `&lt;`, Replacement: "<", Precedence: StageSpecials + 60},
		{Name: "greater than", Pattern: `&gt;`, Replacement: ">", Precedence: StageSpecials + 59},
		{Name: "non-breaking space", Pattern: `&nbsp;`, Replacement: " ", Precedence: StageSpecials + 50},
		{Name: "ampersand", Pattern: `&amp;`, Replacement: "&", Precedence: StageSpecials},
	}
}

// sortRules orders rules by descending precedence. Equal precedences keep
// their declaration order.
func sortRules(rules []Rule) {
	sort.SliceStable(rules, func(i, j int) bool {
		return rules[i].Precedence > rules[j].Precedence
	})
}
