// Package htmltable extracts the largest table from a rendered HTML page
// and hands it over as an ordered, untyped grid of cell strings.
package htmltable

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/quakewatch/quake-report-etl/internal/domain"
)

// Source fetches a page over HTTP and extracts its largest table.
// It implements pipeline.TableSource.
type Source struct {
	url        string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewSource creates a table source for the given page URL.
func NewSource(url string, timeout time.Duration, logger *slog.Logger) *Source {
	return &Source{
		url: url,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// FetchTable downloads the page and returns its largest table by row count.
func (s *Source) FetchTable(ctx context.Context) (*domain.RawTable, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("fetch page: status %d: %s", resp.StatusCode, body)
	}

	table, err := Extract(resp.Body)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("table extracted",
		"url", s.url,
		"headers", len(table.Headers),
		"rows", len(table.Rows),
	)
	return table, nil
}

// Extract parses HTML and returns the largest <table> by <tr> count as a
// RawTable. Header cells (<th>) of the first row become Headers; every
// other row becomes a data row, ragged lengths preserved. A page without
// any table rows fails with domain.ErrNoTable.
func Extract(r io.Reader) (*domain.RawTable, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	var largest *goquery.Selection
	maxRows := 0
	doc.Find("table").Each(func(_ int, table *goquery.Selection) {
		if n := table.Find("tr").Length(); n > maxRows {
			maxRows = n
			largest = table
		}
	})
	if largest == nil {
		return nil, domain.ErrNoTable
	}

	raw := &domain.RawTable{}
	largest.Find("tr").Each(func(_ int, tr *goquery.Selection) {
		if len(raw.Headers) == 0 && tr.Find("th").Length() > 0 {
			raw.Headers = cellTexts(tr.Find("th"))
			return
		}
		cells := cellTexts(tr.Find("td"))
		if len(cells) > 0 {
			raw.Rows = append(raw.Rows, cells)
		}
	})

	if len(raw.Rows) == 0 {
		return nil, domain.ErrNoTable
	}
	return raw, nil
}

func cellTexts(cells *goquery.Selection) []string {
	texts := make([]string, 0, cells.Length())
	cells.Each(func(_ int, cell *goquery.Selection) {
		texts = append(texts, strings.TrimSpace(cell.Text()))
	})
	return texts
}
