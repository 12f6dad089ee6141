package scraper

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"time"
)

// defaultUserAgents is the rotation pool for outbound requests. An empty pool
// is non-fatal: the fetcher just keeps whatever user-agent it last sent.
var defaultUserAgents = []string{
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36",
	"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/121.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:124.0) Gecko/20100101 Firefox/124.0",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.3 Safari/605.1.15",
}

// defaultHeaders mimics a real browser session
func defaultHeaders() map[string]string {
	return map[string]string{
		"User-Agent":                defaultUserAgents[0],
		"Accept":                    "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,image/apng,*/*;q=0.8",
		"Accept-Language":           "en-US,en;q=0.9",
		"Connection":                "keep-alive",
		"Upgrade-Insecure-Requests": "1",
		"Cache-Control":             "max-age=0",
		"Sec-Ch-Ua":                 `"Not_A Brand";v="8", "Chromium";v="120", "Google Chrome";v="120"`,
		"Sec-Ch-Ua-Mobile":          "?0",
		"Sec-Ch-Ua-Platform":        `"macOS"`,
		"Sec-Fetch-Dest":            "document",
		"Sec-Fetch-Mode":            "navigate",
		"Sec-Fetch-Site":            "none",
		"Sec-Fetch-User":            "?1",
	}
}

func (a *Amazon) rotateUserAgent() {
	if len(a.opts.UserAgents) == 0 {
		return
	}
	a.mu.Lock()
	a.headers["User-Agent"] = a.opts.UserAgents[rand.Intn(len(a.opts.UserAgents))]
	a.mu.Unlock()
}

// FetchPage performs the bounded retry loop over a single GET. HTTP 200
// returns the body immediately, 503 backs off exponentially, anything else
// (including network errors) is logged and retried after a linear wait.
// Exhausting the attempt budget returns an error; the caller treats that as
// a fetch failure, not a fault.
func (a *Amazon) FetchPage(ctx context.Context, url string) (string, error) {
	var lastErr error

	for attempt := 0; attempt < a.opts.MaxAttempts; attempt++ {
		a.rotateUserAgent()

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return "", err
		}
		a.mu.Lock()
		for k, v := range a.headers {
			req.Header.Set(k, v)
		}
		a.mu.Unlock()

		resp, err := a.client.Do(req)
		if err != nil {
			lastErr = err
			a.log.WithError(err).Warnf("Request failed (attempt %d/%d)", attempt+1, a.opts.MaxAttempts)
			if werr := wait(ctx, a.opts.RetryWait); werr != nil {
				return "", werr
			}
			continue
		}

		body, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()

		switch {
		case resp.StatusCode == http.StatusOK && readErr == nil:
			return string(body), nil

		case resp.StatusCode == http.StatusServiceUnavailable:
			backoff := a.opts.BackoffBase << attempt
			lastErr = fmt.Errorf("status code 503 for %s", url)
			a.log.Warnf("HTTP 503 for %s, backing off %s (attempt %d/%d)", url, backoff, attempt+1, a.opts.MaxAttempts)
			if werr := wait(ctx, backoff); werr != nil {
				return "", werr
			}

		default:
			if readErr != nil {
				lastErr = readErr
			} else {
				lastErr = fmt.Errorf("status code %d for %s", resp.StatusCode, url)
			}
			a.log.Warnf("HTTP %d for %s (attempt %d/%d)", resp.StatusCode, url, attempt+1, a.opts.MaxAttempts)
			if werr := wait(ctx, a.opts.RetryWait); werr != nil {
				return "", werr
			}
		}
	}

	return "", fmt.Errorf("no response after %d attempts: %w", a.opts.MaxAttempts, lastErr)
}

func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
