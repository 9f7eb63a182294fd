package asx

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"github.com/shanehull/lmsentiment/internal/types"
)

const maxPDFBytes = 64 << 20

var (
	pdfURLFieldRe = regexp.MustCompile(`name="pdfURL"\s+value="(.*?)"`)
	nameUnsafeRe  = regexp.MustCompile(`[^A-Za-z0-9]+`)
)

// Download returns the PDF bytes of ann, accepting the ASX terms form on the way
// when it is served instead of the document.
func (c *Client) Download(ctx context.Context, ann types.Announcement) ([]byte, error) {
	body, err := c.get(ctx, ann.PDFURL)
	if err != nil {
		return nil, err
	}
	if bytes.HasPrefix(body, []byte("%PDF")) {
		return body, nil
	}

	if !bytes.Contains(body, []byte(asxTermsAction)) {
		return nil, fmt.Errorf("%s did not return a PDF", ann.PDFURL)
	}
	match := pdfURLFieldRe.FindSubmatch(body)
	if len(match) < 2 {
		return nil, fmt.Errorf("T&C form detected, but could not find the hidden 'pdfURL' field")
	}
	directPDFURL := c.absolute(string(match[1]))

	// Submit the "Agree and proceed" form to set the session cookie.
	formValues := url.Values{
		"pdfURL":                  {directPDFURL},
		"showAnnouncementPDFForm": {"Agree and proceed"},
	}
	if err := c.postForm(ctx, c.BaseURL+asxTermsAction, formValues); err != nil {
		c.logger.Warn("T&C POST submission failed or redirected unexpectedly: %v", err)
	}

	pdf, err := c.get(ctx, directPDFURL)
	if err != nil {
		return nil, err
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		return nil, fmt.Errorf("%s did not return a PDF", directPDFURL)
	}
	return pdf, nil
}

// FetchTicker downloads every announcement of ticker over the last months as
// named documents. Announcements that fail to download are logged and skipped.
func (c *Client) FetchTicker(ctx context.Context, ticker string, months int, priceSensitiveOnly bool) ([]types.Document, error) {
	anns, err := c.Announcements(ctx, ticker, months, priceSensitiveOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list announcements for %s: %w", ticker, err)
	}
	c.logger.Info("%s: found %d announcements", ticker, len(anns))

	seen := make(map[string]int)
	var docs []types.Document
	for i, ann := range anns {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		c.logger.Debug("Downloading... %d/%d (%s)", i+1, len(anns), ann.Title)

		pdf, err := c.Download(ctx, ann)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			c.logger.Warn("%s: skipping %q: %v", ticker, ann.Title, err)
			continue
		}
		docs = append(docs, types.Document{Name: documentName(ann, seen), Content: pdf})
	}
	return docs, nil
}

// documentName builds a stable file name from the announcement date and title.
func documentName(ann types.Announcement, seen map[string]int) string {
	title := strings.Trim(nameUnsafeRe.ReplaceAllString(ann.Title, "-"), "-")
	if len(title) > 60 {
		title = strings.TrimRight(title[:60], "-")
	}
	if title == "" {
		title = "announcement"
	}
	base := ann.DateTime.Format("20060102-1504") + "_" + title

	seen[base]++
	if n := seen[base]; n > 1 {
		return fmt.Sprintf("%s_%d.pdf", base, n)
	}
	return base + ".pdf"
}

func (c *Client) get(ctx context.Context, target string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request for %s: %w", target, err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed GET to %s: %w", target, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("received status code %d from %s", resp.StatusCode, target)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPDFBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if len(body) > maxPDFBytes {
		return nil, fmt.Errorf("%s is larger than %d bytes", target, maxPDFBytes)
	}
	return body, nil
}

func (c *Client) postForm(ctx context.Context, target string, values url.Values) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, strings.NewReader(values.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("received status code %d from %s", resp.StatusCode, target)
	}
	return nil
}
