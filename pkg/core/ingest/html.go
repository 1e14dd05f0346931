package ingest

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ParseHTMLTable extracts a two-column statement table from an HTML
// document: the first cell of each row is the line-item label, the last
// cell its value. Filings frequently render statements this way, so this
// is the bridge from scraped pages into the processor's map source.
func ParseHTMLTable(r io.Reader) (map[string]any, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse html: %w", err)
	}

	record := make(map[string]any)
	doc.Find("table").First().Find("tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td, th")
		if cells.Length() < 2 {
			return
		}
		label := strings.TrimSpace(cells.First().Text())
		value := strings.TrimSpace(cells.Last().Text())
		if label == "" || value == "" {
			return
		}
		record[label] = value
	})

	if len(record) == 0 {
		return nil, fmt.Errorf("no statement rows found in html table")
	}
	return record, nil
}
