package asx

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shanehull/lmsentiment/internal/types"
)

const listingPage = `<html><body><table>
<thead><tr><th>Date</th><th>Price sens.</th><th>Headline</th></tr></thead>
<tbody>
<tr>
  <td>03/02/2025<br> 9:15 am</td>
  <td class="pricesens"><img src="x.gif"></td>
  <td><a href="/asx/statistics/displayAnnouncement.do?idsId=1">Half Year Report<br><span>3 pages</span></a></td>
</tr>
<tr>
  <td>01/02/2025 4:30 pm</td>
  <td></td>
  <td><a href="/direct/2.pdf">Quarterly Activities Report</a></td>
</tr>
<tr>
  <td>31/01/2025 10:00 am</td>
  <td class="pricesens"></td>
  <td><a href="/missing/3.pdf">Withdrawn</a></td>
</tr>
<tr><td colspan="3">No link row</td></tr>
</tbody></table></body></html>`

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/asx/v2/statistics/announcements.do", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("asxCode") != "BHP" || r.URL.Query().Get("period") != "M6" {
			http.Error(w, "bad query", http.StatusBadRequest)
			return
		}
		fmt.Fprint(w, listingPage)
	})
	mux.HandleFunc("/asx/statistics/displayAnnouncement.do", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `<form action="%s" method="post"><input type="hidden" name="pdfURL" value="/asxpdf/1.pdf"></form>`, asxTermsAction)
	})
	mux.HandleFunc(asxTermsAction, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.FormValue("showAnnouncementPDFForm") == "" {
			http.Error(w, "bad form", http.StatusBadRequest)
			return
		}
		http.SetCookie(w, &http.Cookie{Name: "terms", Value: "accepted", Path: "/"})
	})
	mux.HandleFunc("/asxpdf/1.pdf", func(w http.ResponseWriter, r *http.Request) {
		if c, err := r.Cookie("terms"); err != nil || c.Value != "accepted" {
			fmt.Fprint(w, "<html>terms not accepted</html>")
			return
		}
		fmt.Fprint(w, "%PDF-1.4 half year")
	})
	mux.HandleFunc("/direct/2.pdf", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "%PDF-1.4 quarterly")
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestAnnouncements(t *testing.T) {
	srv := newTestServer(t)
	c := NewClient(srv.URL, 5*time.Second, nil)

	anns, err := c.Announcements(context.Background(), "BHP", 6, false)
	if err != nil {
		t.Fatalf("Announcements: %v", err)
	}
	if len(anns) != 3 {
		t.Fatalf("got %d announcements, want 3: %+v", len(anns), anns)
	}
	first := anns[0]
	if first.Ticker != "BHP" || first.Title != "Half Year Report" || !first.IsPriceSensitive {
		t.Errorf("first = %+v", first)
	}
	if want := time.Date(2025, 2, 3, 9, 15, 0, 0, time.UTC); !first.DateTime.Equal(want) {
		t.Errorf("DateTime = %v, want %v", first.DateTime, want)
	}
	if !strings.HasPrefix(first.PDFURL, srv.URL+"/asx/statistics/") {
		t.Errorf("PDFURL should be absolute: %s", first.PDFURL)
	}

	sensitive, err := c.Announcements(context.Background(), "BHP", 6, true)
	if err != nil {
		t.Fatal(err)
	}
	if len(sensitive) != 2 {
		t.Errorf("price sensitive filter kept %d, want 2", len(sensitive))
	}
}

func TestAnnouncementsBadStatus(t *testing.T) {
	srv := newTestServer(t)
	c := NewClient(srv.URL, 5*time.Second, nil)
	if _, err := c.Announcements(context.Background(), "XYZ", 6, false); err == nil {
		t.Error("non-OK status should fail")
	}
}

func TestFetchTicker(t *testing.T) {
	srv := newTestServer(t)
	c := NewClient(srv.URL, 5*time.Second, nil)

	docs, err := c.FetchTicker(context.Background(), "BHP", 6, false)
	if err != nil {
		t.Fatalf("FetchTicker: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("got %d documents, want 2 (the missing one is skipped)", len(docs))
	}
	if docs[0].Name != "20250203-0915_Half-Year-Report.pdf" || string(docs[0].Content) != "%PDF-1.4 half year" {
		t.Errorf("doc 0 = %s %q", docs[0].Name, docs[0].Content)
	}
	if docs[1].Name != "20250201-1630_Quarterly-Activities-Report.pdf" || !docs[1].IsPDF() {
		t.Errorf("doc 1 = %s", docs[1].Name)
	}
}

func TestFetchTickerCancelled(t *testing.T) {
	srv := newTestServer(t)
	c := NewClient(srv.URL, 5*time.Second, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := c.FetchTicker(ctx, "BHP", 6, false); err == nil {
		t.Error("cancelled fetch should fail")
	}
}

func TestDocumentName(t *testing.T) {
	seen := map[string]int{}
	at := time.Date(2025, 1, 2, 15, 4, 0, 0, time.UTC)
	tests := []struct {
		title string
		want  string
	}{
		{"Annual Report / 2024", "20250102-1504_Annual-Report-2024.pdf"},
		{"Annual Report / 2024", "20250102-1504_Annual-Report-2024_2.pdf"},
		{"???", "20250102-1504_announcement.pdf"},
		{strings.Repeat("a", 80), "20250102-1504_" + strings.Repeat("a", 60) + ".pdf"},
	}
	for _, tt := range tests {
		if got := documentName(types.Announcement{Title: tt.title, DateTime: at}, seen); got != tt.want {
			t.Errorf("documentName(%q) = %q, want %q", tt.title, got, tt.want)
		}
	}
}
