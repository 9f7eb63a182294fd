/*
Package asx downloads the announcements of ASX-listed tickers so they can be
archived and scored.
*/
package asx

import (
	"context"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"regexp"
	"strings"
	"time"

	"golang.org/x/net/html"

	"github.com/shanehull/lmsentiment/internal/logging"
	"github.com/shanehull/lmsentiment/internal/types"
)

const (
	DefaultBaseURL              = "https://www.asx.com.au"
	asxAnnouncementsByTickerURL = "%s/asx/v2/statistics/announcements.do?by=asxCode&timeframe=D&period=M%d&asxCode=%s"
	asxTermsAction              = "/asx/v2/statistics/announcementTerms.do"
	asxDateLayout               = "02/01/2006 3:04 PM"
)

var whitespaceRe = regexp.MustCompile(`[\n\t\r\s\xA0]+`)

type cellProcessorFunc func(n *html.Node, tdIndex int, ann *types.Announcement)

// Client talks to the ASX announcement pages. The cookie jar keeps the session
// cookie set when the terms form is accepted.
type Client struct {
	BaseURL string
	http    *http.Client
	logger  *logging.Logger
}

func NewClient(baseURL string, timeout time.Duration, logger *logging.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	jar, _ := cookiejar.New(nil)
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout, Jar: jar},
		logger:  logger,
	}
}

// Announcements lists the announcements of ticker over the last months.
func (c *Client) Announcements(ctx context.Context, ticker string, months int, priceSensitiveOnly bool) ([]types.Announcement, error) {
	url := fmt.Sprintf(asxAnnouncementsByTickerURL, c.BaseURL, months, ticker)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request for %s: %w", url, err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch URL %s: %w", url, err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			c.logger.Warn("failed to close response body for %s: %v", url, err)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("received non-OK status code %d from %s", resp.StatusCode, url)
	}

	doc, err := html.Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML from %s: %w", url, err)
	}

	processTickerTableCell := func(n *html.Node, tdIndex int, ann *types.Announcement) {
		// The ticker page does not repeat the code in its rows.
		ann.Ticker = ticker

		switch tdIndex {
		case 1: // Date and Time
			text := strings.TrimSpace(whitespaceRe.ReplaceAllString(extractText(n), " "))
			t, err := time.Parse(asxDateLayout, strings.ToUpper(text))
			if err == nil {
				ann.DateTime = t
			} else {
				c.logger.Warn("failed to parse date string '%s': %v", text, err)
			}
		case 2: // Price Sensitive Marker
			for _, attr := range n.Attr {
				if attr.Key == "class" && strings.Contains(attr.Val, "pricesens") {
					ann.IsPriceSensitive = true
					break
				}
			}
		case 3: // Announcement Title and PDF Link
			c.readLinkCell(n, ann)
		}
	}

	return traverseAndCollect(doc, priceSensitiveOnly, processTickerTableCell), nil
}

func (c *Client) readLinkCell(n *html.Node, ann *types.Announcement) {
	aTag := findFirst(n, "a")
	if aTag == nil {
		return
	}
	for _, attr := range aTag.Attr {
		if attr.Key == "href" {
			ann.PDFURL = c.absolute(strings.TrimSpace(attr.Val))
			break
		}
	}

	var titleBuilder strings.Builder
	for ch := aTag.FirstChild; ch != nil; ch = ch.NextSibling {
		if ch.Type == html.TextNode {
			if text := strings.TrimSpace(ch.Data); text != "" {
				titleBuilder.WriteString(text)
			}
		} else if ch.Type == html.ElementNode && ch.Data == "br" {
			break
		}
	}
	ann.Title = strings.TrimSpace(titleBuilder.String())
}

func (c *Client) absolute(href string) string {
	if strings.HasPrefix(href, "/") {
		return c.BaseURL + href
	}
	return href
}

func findFirst(n *html.Node, tag string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tag {
		return n
	}
	for ch := n.FirstChild; ch != nil; ch = ch.NextSibling {
		if found := findFirst(ch, tag); found != nil {
			return found
		}
	}
	return nil
}

func extractText(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var sb strings.Builder
	for ch := n.FirstChild; ch != nil; ch = ch.NextSibling {
		sb.WriteString(extractText(ch))
	}
	return sb.String()
}

func traverseAndCollect(doc *html.Node, priceSensitiveOnly bool, processor cellProcessorFunc) []types.Announcement {
	var announcements []types.Announcement
	var inTableBody bool
	var f func(*html.Node)

	f = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "tbody" {
			inTableBody = true
		}

		if inTableBody && n.Type == html.ElementNode && n.Data == "tr" {
			currentAnn := types.Announcement{}
			tdCount := 0
			for ch := n.FirstChild; ch != nil; ch = ch.NextSibling {
				if ch.Type == html.ElementNode && ch.Data == "td" {
					tdCount++
					processor(ch, tdCount, &currentAnn)
				}
			}

			if currentAnn.PDFURL != "" && (!priceSensitiveOnly || currentAnn.IsPriceSensitive) {
				announcements = append(announcements, currentAnn)
			}
			return
		}

		for ch := n.FirstChild; ch != nil; ch = ch.NextSibling {
			f(ch)
		}
	}

	f(doc)
	return announcements
}
