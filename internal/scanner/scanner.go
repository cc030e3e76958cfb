package scanner

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"
)

// Markers that delimit the page sections.
const (
	MarkerDifficulty       = `title="Difficulty"`
	MarkerProblemStatement = `class="problem-statement"`
	MarkerSampleTests      = `<div class="sample-tests"`
	MarkerNote             = `<div class="note">`
	MarkerNoteSection      = `<div class="section-title">Note`
	MarkerScript           = `<script>`

	markerInput  = `class="input"`
	markerOutput = `class="output"`
)

// MaxLineSize bounds a single source line. The whole statement usually sits
// on one line, so this is far above bufio's default.
const MaxLineSize = 8 << 20

var (
	ErrStatementNotFound = errors.New("could not find problem statement")
	ErrNameNotFound      = errors.New("could not find problem name")
	ErrLineLimit         = errors.New("line limit reached before scan finished")
)

var (
	statementStart = regexp.MustCompile(`standard output ?</div></div>`)
	titlePattern   = regexp.MustCompile(`<div class="title">(.+?)</div>`)
)

// Result holds the raw fragments of one page. Difficulty is the whole line
// that followed the difficulty marker; the other fragments are still markup.
type Result struct {
	Difficulty string `json:"difficulty"`
	Name       string `json:"name"`
	Problem    string `json:"problem"`
	Examples   string `json:"examples"`
	Note       string `json:"note"`
	Layout     Layout `json:"layout"`
}

// Option configures a Scanner.
type Option func(*Scanner)

// WithMaxLines stops the scan with ErrLineLimit after n lines. Zero means no limit.
func WithMaxLines(n int) Option {
	return func(s *Scanner) {
		s.maxLines = n
	}
}

// Scanner is a single-use state machine fed one line at a time.
type Scanner struct {
	state    State
	result   Result
	lines    int
	maxLines int
	err      error
}

// NewScanner creates a scanner positioned at the start of a page.
func NewScanner(opts ...Option) *Scanner {
	s := &Scanner{state: StateSeekingDifficulty}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// State returns the current scan state.
func (s *Scanner) State() State {
	return s.state
}

// Feed runs one line through the state machine and reports whether the scan
// has reached its terminal state. A line may be evaluated by more than one
// state: the statement and the sample block can share a line, and so can a
// single-line sample block and its note.
func (s *Scanner) Feed(line string) (bool, error) {
	if s.err != nil {
		return false, s.err
	}
	if s.state == StateDone {
		return true, nil
	}

	s.lines++
	if s.maxLines > 0 && s.lines > s.maxLines {
		s.err = fmt.Errorf("%w: %d lines read while %s", ErrLineLimit, s.maxLines, s.state)
		return false, s.err
	}

	for {
		again, err := s.transition(line)
		if err != nil {
			s.err = err
			return false, err
		}
		if s.state == StateDone {
			return true, nil
		}
		if !again {
			return false, nil
		}
	}
}

// Finish ends the scan and returns the collected fragments. A missing note or
// missing sample block is not an error; a missing statement is.
func (s *Scanner) Finish() (*Result, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.state < StateSeekingExamples {
		return nil, ErrStatementNotFound
	}
	res := s.result
	return &res, nil
}

// transition applies the rule for the current state to line. It returns true
// when the same line must be evaluated again in the new state.
func (s *Scanner) transition(line string) (bool, error) {
	switch s.state {
	case StateSeekingDifficulty:
		if strings.Contains(line, MarkerDifficulty) {
			s.state = StateSeekingName
			return false, nil
		}
		// Unrated problems have no difficulty tag at all.
		if strings.Contains(line, MarkerProblemStatement) {
			s.state = StateSeekingProblem
			return true, nil
		}
		return false, nil

	case StateSeekingName:
		s.result.Difficulty = line
		s.state = StateSeekingProblem
		return false, nil

	case StateSeekingProblem:
		idx := strings.Index(line, MarkerProblemStatement)
		if idx < 0 {
			return false, nil
		}
		problem, err := extractStatement(line[idx:])
		if err != nil {
			return false, err
		}
		name, err := extractName(line)
		if err != nil {
			return false, err
		}
		s.result.Problem = problem
		s.result.Name = name
		s.state = StateSeekingExamples
		return true, nil

	case StateSeekingExamples:
		idx := strings.Index(line, MarkerSampleTests)
		if idx < 0 {
			return false, nil
		}
		block := line[idx:]
		s.result.Examples = cutBefore(block, MarkerNote)
		s.result.Layout = detectLayout(block)
		s.state = StateSeekingNoteOrMoreExamples
		return s.result.Layout == LayoutSingleLine, nil

	case StateSeekingNoteOrMoreExamples:
		if s.result.Layout == LayoutMultiLine {
			s.collect(line)
			return false, nil
		}
		if idx := strings.Index(line, MarkerNote); idx >= 0 {
			s.result.Note = line[idx:]
		}
		s.state = StateDone
		return false, nil
	}

	return false, nil
}

// collect handles a line after a multi-line sample block has started.
func (s *Scanner) collect(line string) {
	if idx := strings.Index(line, MarkerNoteSection); idx >= 0 {
		start := idx
		if n := strings.LastIndex(line[:idx], MarkerNote); n >= 0 {
			start = n
		}
		s.appendTail(line[:start])
		s.result.Note = line[start:]
		s.state = StateDone
		return
	}
	if idx := strings.Index(line, MarkerScript); idx >= 0 {
		s.appendTail(line[:idx])
		s.state = StateDone
		return
	}
	s.result.Examples += "\n" + line
}

// appendTail keeps sample data that shares a line with the terminating marker.
func (s *Scanner) appendTail(text string) {
	if strings.TrimSpace(text) == "" {
		return
	}
	s.result.Examples += "\n" + text
}

// Scan reads r line by line until the scan terminates or input runs out.
func Scan(r io.Reader, opts ...Option) (*Result, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), MaxLineSize)

	s := NewScanner(opts...)
	for sc.Scan() {
		done, err := s.Feed(sc.Text())
		if err != nil {
			return nil, err
		}
		if done {
			break
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading page: %w", err)
	}

	return s.Finish()
}

// ScanLines runs the state machine over an in-memory sequence of lines.
func ScanLines(lines []string, opts ...Option) (*Result, error) {
	s := NewScanner(opts...)
	for _, line := range lines {
		done, err := s.Feed(line)
		if err != nil {
			return nil, err
		}
		if done {
			break
		}
	}
	return s.Finish()
}

// extractStatement copies the statement body that follows the header block,
// stopping at the sample tests or at the end of the line.
func extractStatement(line string) (string, error) {
	loc := statementStart.FindStringIndex(line)
	if loc == nil {
		return "", ErrStatementNotFound
	}
	statement := cutBefore(line[loc[1]:], MarkerSampleTests)
	if statement == "" {
		return "", ErrStatementNotFound
	}
	return statement, nil
}

// extractName returns the inner text of the first title div on the line.
func extractName(line string) (string, error) {
	m := titlePattern.FindStringSubmatch(line)
	if m == nil || strings.TrimSpace(m[1]) == "" {
		return "", ErrNameNotFound
	}
	return m[1], nil
}

// detectLayout compares the input and output counts on the marker line. Every
// input has a matching output, so equal counts mean the block is complete.
func detectLayout(block string) Layout {
	if strings.Count(block, markerInput) == strings.Count(block, markerOutput) {
		return LayoutSingleLine
	}
	return LayoutMultiLine
}

// cutBefore returns s up to the first occurrence of marker, or all of s.
func cutBefore(s, marker string) string {
	if before, _, found := strings.Cut(s, marker); found {
		return before
	}
	return s
}
