package problem

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/pfrederiksen/cf-readme/internal/convert"
	"github.com/pfrederiksen/cf-readme/internal/scanner"
)

// DefaultBaseURL is the site problem references are resolved against.
const DefaultBaseURL = "https://codeforces.com"

// Problem is a fully formatted problem, ready to be written out.
type Problem struct {
	URL        string   `json:"url"`
	Name       string   `json:"name"`
	Difficulty string   `json:"difficulty,omitempty"`
	Tags       []string `json:"tags,omitempty"`
	Statement  string   `json:"statement"`
	Examples   string   `json:"examples"`
	Note       string   `json:"note,omitempty"`
}

// Title is the README heading text, e.g. "A. Watermelon - 800".
func (p *Problem) Title() string {
	return FormatName(p.Name, p.Difficulty)
}

// New formats every fragment of res with conv.
func New(pageURL string, res *scanner.Result, tags []string, conv *convert.Converter) *Problem {
	if conv == nil {
		conv = convert.Default()
	}
	return &Problem{
		URL:        pageURL,
		Name:       strings.TrimSpace(res.Name),
		Difficulty: FormatDifficulty(res.Difficulty),
		Tags:       tags,
		Statement:  FormatStatement(res.Problem, conv),
		Examples:   FormatExamples(res.Examples, conv),
		Note:       FormatNote(res.Note, conv),
	}
}

var shortRef = regexp.MustCompile(`^(\d+)\s*/?\s*([A-Za-z]\d?)$`)

// ResolveURL accepts a full problem URL or a short "<contest><index>"
// reference ("1694A", "1694/a") and returns the page URL.
func ResolveURL(ref, baseURL string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", fmt.Errorf("empty problem reference")
	}

	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		u, err := url.Parse(ref)
		if err != nil {
			return "", fmt.Errorf("parsing problem URL: %w", err)
		}
		if u.Host == "" {
			return "", fmt.Errorf("problem URL has no host: %s", ref)
		}
		return u.String(), nil
	}

	m := shortRef.FindStringSubmatch(ref)
	if m == nil {
		return "", fmt.Errorf("unrecognised problem reference: %q (want a URL or e.g. 1694A)", ref)
	}

	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return fmt.Sprintf("%s/problemset/problem/%s/%s",
		strings.TrimRight(baseURL, "/"), m[1], strings.ToUpper(m[2])), nil
}
