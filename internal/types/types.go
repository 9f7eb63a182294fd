package types

import (
	"path"
	"strings"
	"time"
)

// Announcement is one entry of an exchange announcement listing.
type Announcement struct {
	Ticker           string
	DateTime         time.Time
	Title            string
	PDFURL           string
	IsPriceSensitive bool
}

// Document is one file delivered for a ticker, usually a PDF filing.
type Document struct {
	Name    string
	Content []byte
}

// IsPDF reports whether the document name carries a .pdf suffix.
func (d Document) IsPDF() bool {
	return strings.EqualFold(path.Ext(d.Name), ".pdf")
}
