package scraper

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/avast/retry-go/v4"
	"github.com/pfrederiksen/cf-readme/internal/convert"
	"github.com/pfrederiksen/cf-readme/internal/logger"
	"github.com/pfrederiksen/cf-readme/internal/problem"
	"github.com/pfrederiksen/cf-readme/internal/scanner"
)

const (
	UserAgent         = "cf-readme/1.0 (github.com/pfrederiksen/cf-readme)"
	Timeout           = 30 * time.Second
	DefaultAttempts   = 3
	DefaultRetryDelay = 500 * time.Millisecond
)

// Scraper fetches and parses problem pages
type Scraper struct {
	client    *http.Client
	timeout   time.Duration
	userAgent string
	attempts  uint
	delay     time.Duration
	maxLines  int
	conv      *convert.Converter
	log       *logger.Logger
	metrics   *logger.Metrics
}

// Option configures a Scraper.
type Option func(*Scraper)

// WithHTTPClient replaces the default client. The client is used as given;
// WithTimeout does not change it.
func WithHTTPClient(client *http.Client) Option {
	return func(s *Scraper) {
		s.client = client
	}
}

// WithTimeout sets the request timeout of the default client. Zero disables it.
func WithTimeout(d time.Duration) Option {
	return func(s *Scraper) {
		s.timeout = d
	}
}

func WithUserAgent(ua string) Option {
	return func(s *Scraper) {
		if ua != "" {
			s.userAgent = ua
		}
	}
}

// WithAttempts sets the total number of tries per fetch. Values below one
// are raised to one.
func WithAttempts(n uint) Option {
	return func(s *Scraper) {
		if n < 1 {
			n = 1
		}
		s.attempts = n
	}
}

func WithRetryDelay(d time.Duration) Option {
	return func(s *Scraper) {
		s.delay = d
	}
}

// WithMaxLines caps the number of page lines the scanner reads.
func WithMaxLines(n int) Option {
	return func(s *Scraper) {
		s.maxLines = n
	}
}

func WithConverter(conv *convert.Converter) Option {
	return func(s *Scraper) {
		s.conv = conv
	}
}

func WithLogger(l *logger.Logger) Option {
	return func(s *Scraper) {
		s.log = l
	}
}

func WithMetrics(m *logger.Metrics) Option {
	return func(s *Scraper) {
		s.metrics = m
	}
}

// New creates a new Scraper instance
func New(opts ...Option) *Scraper {
	s := &Scraper{
		timeout:   Timeout,
		userAgent: UserAgent,
		attempts:  DefaultAttempts,
		delay:     DefaultRetryDelay,
		conv:      convert.Default(),
		log:       logger.Default(),
		metrics:   logger.DefaultMetrics(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.client == nil {
		s.client = &http.Client{
			Timeout: s.timeout,
		}
	}
	return s
}

// FetchProblem downloads the page at pageURL and formats the problem on it.
func (s *Scraper) FetchProblem(ctx context.Context, pageURL string) (*problem.Problem, error) {
	body, err := s.fetch(ctx, pageURL)
	if err != nil {
		return nil, err
	}

	s.log.Info("Fetched problem page", logger.Fields{
		"url":   pageURL,
		"bytes": len(body),
	})

	return s.ParsePage(bytes.NewReader(body), pageURL)
}

// fetch GETs pageURL, retrying transient failures.
func (s *Scraper) fetch(ctx context.Context, pageURL string) ([]byte, error) {
	start := time.Now()
	defer func() {
		s.metrics.RecordTiming("fetch", time.Since(start))
	}()

	var body []byte
	err := retry.Do(
		func() error {
			s.metrics.IncrCounter("fetch.attempts")
			b, err := s.get(ctx, pageURL)
			if err != nil {
				s.metrics.IncrCounter("fetch.failures")
				return err
			}
			body = b
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(s.attempts),
		retry.Delay(s.delay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			s.log.Warn("Retrying page fetch", logger.Fields{
				"url":     pageURL,
				"attempt": n + 1,
				"error":   err.Error(),
			})
		}),
	)
	if err != nil {
		return nil, err
	}
	return body, nil
}

// get performs a single request. Client errors other than 429 are marked
// unrecoverable: the URL is wrong and asking again will not help.
func (s *Scraper) get(ctx context.Context, pageURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, retry.Unrecoverable(fmt.Errorf("creating request: %w", err))
	}
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("unexpected status code: %d", resp.StatusCode)
		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
			return nil, err
		}
		return nil, retry.Unrecoverable(err)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading page: %w", err)
	}
	return body, nil
}

// ParsePage extracts and formats the problem from an already fetched page.
func (s *Scraper) ParsePage(r io.Reader, pageURL string) (*problem.Problem, error) {
	body, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading page: %w", err)
	}

	start := time.Now()
	res, err := scanner.Scan(bytes.NewReader(body), scanner.WithMaxLines(s.maxLines))
	s.metrics.RecordTiming("scan", time.Since(start))
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", pageURL, err)
	}

	tags, err := parseTags(bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	s.log.Debug("Scanned problem page", logger.Fields{
		"name":     res.Name,
		"layout":   res.Layout.String(),
		"has_note": res.Note != "",
		"tags":     len(tags),
	})
	if res.Examples == "" {
		s.log.Warn("No sample tests found", logger.Fields{"url": pageURL})
	}

	return problem.New(pageURL, res, tags, s.conv), nil
}

// parseTags reads the problem tags from the sidebar. The difficulty shares
// the tag-box markup and is skipped.
func parseTags(r io.Reader) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	tags := make([]string, 0)
	seen := make(map[string]bool)
	doc.Find("span.tag-box").Each(func(_ int, sel *goquery.Selection) {
		if title, _ := sel.Attr("title"); title == "Difficulty" {
			return
		}
		tag := strings.TrimSpace(sel.Text())
		if tag == "" || seen[tag] {
			return
		}
		seen[tag] = true
		tags = append(tags, tag)
	})

	return tags, nil
}
