package scraper

import (
	"compress/flate"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/andybalholm/brotli"
)

const chromeUA = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// maxBodyBytes caps how much of a response body is read.
const maxBodyBytes = 10 * 1024 * 1024

// Fetcher performs the single browser-mimicking GET for a product
// page. Sites routinely reject requests missing the navigation header
// set a real browser sends, so the full set is preserved.
type Fetcher struct {
	client *http.Client
	logger *slog.Logger
}

func NewFetcher(timeout time.Duration, logger *slog.Logger) *Fetcher {
	return &Fetcher{
		client: &http.Client{Timeout: timeout},
		logger: logger.With("component", "fetcher"),
	}
}

// Fetch retrieves the page and returns its decoded HTML body. A 403 is
// classified as ErrBlocked; any other non-2xx status or network-level
// failure becomes a FetchError.
func (f *Fetcher) Fetch(ctx context.Context, pageURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", &FetchError{Err: fmt.Errorf("build request: %w", err)}
	}

	req.Header.Set("User-Agent", chromeUA)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")
	req.Header.Set("Accept-Encoding", "gzip, deflate, br")
	req.Header.Set("Connection", "keep-alive")
	req.Header.Set("Upgrade-Insecure-Requests", "1")
	req.Header.Set("Sec-Fetch-Dest", "document")
	req.Header.Set("Sec-Fetch-Mode", "navigate")
	req.Header.Set("Sec-Fetch-Site", "none")
	req.Header.Set("Cache-Control", "max-age=0")

	resp, err := f.client.Do(req)
	if err != nil {
		f.logger.Warn("request failed", "url", pageURL, "error", err)
		return "", &FetchError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusForbidden {
		f.logger.Warn("blocked by site", "url", pageURL)
		return "", fmt.Errorf("%w: %s", ErrBlocked, pageURL)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		f.logger.Warn("unexpected status", "url", pageURL, "status", resp.StatusCode)
		return "", &FetchError{StatusCode: resp.StatusCode}
	}

	body, err := decodeBody(resp)
	if err != nil {
		return "", &FetchError{Err: fmt.Errorf("read body: %w", err)}
	}

	f.logger.Info("fetched page", "url", pageURL, "bytes", len(body))
	return string(body), nil
}

// decodeBody undoes the Content-Encoding the explicit Accept-Encoding
// header opted into. Setting Accept-Encoding by hand disables the
// transport's transparent gzip handling.
func decodeBody(resp *http.Response) ([]byte, error) {
	var reader io.Reader = resp.Body

	switch resp.Header.Get("Content-Encoding") {
	case "gzip":
		gz, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("gzip: %w", err)
		}
		defer gz.Close()
		reader = gz
	case "deflate":
		fl := flate.NewReader(resp.Body)
		defer fl.Close()
		reader = fl
	case "br":
		reader = brotli.NewReader(resp.Body)
	}

	return io.ReadAll(io.LimitReader(reader, maxBodyBytes))
}
