package marketdata

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/transform"
)

// FetchProfile fetches the company profile page and extracts the
// display name.
func (c *Client) FetchProfile(ctx context.Context, symbol Symbol) (*Profile, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait failed: %w", err)
	}

	fullURL := fmt.Sprintf("%s/gszl_%s.html", c.cfg.ProfileBaseURL, symbol.Code)

	resp, err := c.http.Get(ctx, fullURL, map[string]string{
		"User-Agent": c.cfg.UserAgent,
	})
	if err != nil {
		return nil, fmt.Errorf("profile request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	decoded := transform.NewReader(resp.Body, simplifiedchinese.GBK.NewDecoder())
	name, err := parseProfileName(decoded)
	if err != nil {
		return nil, fmt.Errorf("parse profile failed: %w", err)
	}

	c.logger.WithFields(map[string]interface{}{
		"symbol": symbol.String(),
		"name":   name,
	}).Debug("Fetched profile")

	return &Profile{Symbol: symbol.String(), Name: name}, nil
}

// parseProfileName extracts the company name from the profile page.
func parseProfileName(r io.Reader) (string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return "", err
	}

	// Primary: the stock name header on the F10 page.
	if name := strings.TrimSpace(doc.Find(".stock_info .name, h1.name").First().Text()); name != "" {
		return name, nil
	}

	// Fallback: page title, "中国平安(601318)_..." shape.
	title := strings.TrimSpace(doc.Find("title").First().Text())
	if idx := strings.IndexAny(title, "(（"); idx > 0 {
		return strings.TrimSpace(title[:idx]), nil
	}
	if title != "" {
		return title, nil
	}

	return "", fmt.Errorf("company name not found in page")
}
