package scraper

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/nepali-holidays/nepcal/internal/config"
	"github.com/nepali-holidays/nepcal/internal/logger"
)

// Timeout bounds the whole request, body included
const Timeout = 30 * time.Second

// Scraper fetches the source page
type Scraper struct {
	client *http.Client
	source config.Source
}

// New creates a Scraper for source
func New(source config.Source) *Scraper {
	return &Scraper{
		client: &http.Client{
			Timeout: Timeout,
		},
		source: source,
	}
}

// WithClient replaces the HTTP client
func (s *Scraper) WithClient(client *http.Client) *Scraper {
	if client != nil {
		s.client = client
	}
	return s
}

// URL returns the page address
func (s *Scraper) URL() string {
	return s.source.URL
}

// Fetch performs the GET and returns the page body
func (s *Scraper) Fetch(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.source.URL, nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	s.setHeaders(req)

	logger.Debug("fetching page", logger.Fields{"url": s.source.URL})

	resp, err := s.client.Do(req)
	if err != nil {
		return "", &NetworkError{URL: s.source.URL, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &NetworkError{URL: s.source.URL, Err: fmt.Errorf("reading body: %w", err)}
	}

	s.capture(body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &FetchError{
			URL:        s.source.URL,
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
		}
	}

	logger.Debug("fetched page", logger.Fields{
		"url":    s.source.URL,
		"status": resp.StatusCode,
		"bytes":  len(body),
	})

	return string(body), nil
}

func (s *Scraper) setHeaders(req *http.Request) {
	if s.source.UserAgent != "" {
		req.Header.Set("User-Agent", s.source.UserAgent)
	}
	if s.source.Accept != "" {
		req.Header.Set("Accept", s.source.Accept)
	}
	if s.source.AcceptLanguage != "" {
		req.Header.Set("Accept-Language", s.source.AcceptLanguage)
	}
}

// capture overwrites the debug file with body. Failures only warn.
func (s *Scraper) capture(body []byte) {
	if s.source.DebugPath == "" {
		return
	}
	if err := os.WriteFile(s.source.DebugPath, body, 0644); err != nil {
		logger.Warn("writing debug capture failed", logger.Fields{
			"path":  s.source.DebugPath,
			"error": err.Error(),
		})
	}
}
