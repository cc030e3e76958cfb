package readme

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/pfrederiksen/cf-readme/internal/problem"
)

// Format specifies the output format
type Format string

const (
	FormatMarkdown Format = "markdown"
	FormatJSON     Format = "json"
)

// ParseFormat accepts "markdown" (or "md") and "json", case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "markdown", "md":
		return FormatMarkdown, nil
	case "json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("invalid format: %s (must be 'markdown' or 'json')", s)
	}
}

// Extension is the file extension used when saving this format.
func (f Format) Extension() string {
	if f == FormatJSON {
		return ".json"
	}
	return ".md"
}

// Write writes p in the specified format
func Write(w io.Writer, p *problem.Problem, format Format) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, p)
	case FormatMarkdown:
		return writeMarkdown(w, p)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// Render returns the document as a string.
func Render(p *problem.Problem, format Format) (string, error) {
	var b strings.Builder
	if err := Write(&b, p, format); err != nil {
		return "", err
	}
	return b.String(), nil
}

func writeJSON(w io.Writer, p *problem.Problem) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(p)
}

func writeMarkdown(w io.Writer, p *problem.Problem) error {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n", p.Title())
	b.WriteString("- [Problem](#problem)\n")
	b.WriteString("- [Solution](#solution)\n\n")

	b.WriteString("## Problem\n")
	fmt.Fprintf(&b, "[Problem Link](%s)  \n\n", p.URL)

	if tags := problem.FormatTags(p.Tags); tags != "" {
		fmt.Fprintf(&b, "**Tags:** %s\n\n", tags)
	}

	b.WriteString(p.Statement + "\n\n")
	b.WriteString(p.Examples)
	if p.Note != "" {
		b.WriteString("\n\n" + p.Note)
	}

	b.WriteString("\n\n\n## Solution\n\n")

	_, err := io.WriteString(w, b.String())
	return err
}
