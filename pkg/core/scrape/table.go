// Package scrape converts Fava's HTML fragments into structured records.
package scrape

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Record maps a column title to the cell text of one data row.
type Record map[string]string

// ExtractTable reads a query-result table into one Record per data row.
//
// Column titles come from the thead cells in document order and are joined
// to data cells purely by position: cell i takes title i. This is
// deliberate — Fava emits unlabeled and merged cells, so a name-based join
// would be less robust, not more. Cells past the last title are dropped;
// rows shorter than the title list simply leave the later titles unused.
// Duplicate titles are not rejected; the later cell wins within a row.
func ExtractTable(html string) ([]Record, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parse table markup: %w", err)
	}

	var titles []string
	doc.Find("thead tr th").Each(func(_ int, th *goquery.Selection) {
		titles = append(titles, strings.TrimSpace(th.Text()))
	})

	records := []Record{}
	doc.Find("tbody tr").Each(func(_ int, tr *goquery.Selection) {
		rec := Record{}
		tr.Find("td").Each(func(i int, td *goquery.Selection) {
			if i >= len(titles) {
				return
			}
			rec[titles[i]] = strings.TrimSpace(td.Text())
		})
		records = append(records, rec)
	})
	return records, nil
}
