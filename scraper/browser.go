package scraper

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
)

// fetchWithBrowser is the opt-in escalation path after plain HTTP exhausts
// its attempt budget: headless Chrome first, a full Selenium session second.
// It is never applied to CAPTCHA outcomes.
func (a *Amazon) fetchWithBrowser(ctx context.Context, url string) (string, error) {
	a.log.Infof("Trying ChromeDP fallback: %s", url)
	html, err := a.fetchChromeDP(ctx, url)
	if err == nil && html != "" {
		return html, nil
	}
	if err != nil {
		a.log.WithError(err).Warn("ChromeDP fallback failed")
	}

	a.log.Infof("Trying Selenium fallback: %s", url)
	html, err = a.fetchSelenium(url)
	if err != nil {
		a.log.WithError(err).Warn("Selenium fallback failed")
		return "", err
	}
	return html, nil
}

// fetchChromeDP renders the page in headless Chrome and returns its HTML
func (a *Amazon) fetchChromeDP(ctx context.Context, url string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", "new"),
		chromedp.UserAgent(a.currentUserAgent()),
	)

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	taskCtx, cancelTask := chromedp.NewContext(allocCtx)
	defer cancelTask()

	headers := map[string]interface{}{
		"Accept":                    "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,*/*;q=0.8",
		"Accept-Language":           "en-US,en;q=0.9",
		"Upgrade-Insecure-Requests": "1",
		"Sec-Fetch-Dest":            "document",
		"Sec-Fetch-Mode":            "navigate",
		"Sec-Fetch-Site":            "none",
		"Sec-Fetch-User":            "?1",
	}
	if err := chromedp.Run(taskCtx, network.SetExtraHTTPHeaders(network.Headers(headers))); err != nil {
		return "", fmt.Errorf("chromedp header error: %w", err)
	}

	var htmlContent string
	err := chromedp.Run(taskCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.Sleep(time.Duration(3+rand.Float64()*3)*time.Second),
		chromedp.OuterHTML("html", &htmlContent),
	)
	if err != nil {
		return "", fmt.Errorf("chromedp navigation error: %w", err)
	}

	return htmlContent, nil
}

func (a *Amazon) currentUserAgent() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.headers["User-Agent"]
}
