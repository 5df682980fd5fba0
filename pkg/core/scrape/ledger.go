package scrape

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Transaction is one normalized ledger entry. Amounts are decimal strings
// with a leading sign where negative; no fixed precision or trailing-zero
// padding is guaranteed.
type Transaction struct {
	Date    string `json:"date"`
	Changed string `json:"changed"`
	Balance string `json:"balance"`
}

// ExtractLedger reads the transaction lines of an account journal page
// and normalizes them:
//
//   - amounts are stripped of the currency substring and parsed; a value
//     that does not parse aborts the whole extraction
//   - lines repeating an already-seen date are dropped (Fava duplicates a
//     running-total row per date; keep-first-by-date collapses it — this
//     also drops a second real transaction on the same date, a known
//     limitation of the markup)
//   - negate flips the sign of both amounts
//   - the result is reversed, since the upstream emits newest-first
func ExtractLedger(html string, sel Selectors, currency string, negate bool) ([]Transaction, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parse account markup: %w", err)
	}

	seen := map[string]bool{}
	txs := []Transaction{}
	var lineErr error

	doc.Find(sel.Line).EachWithBreak(func(_ int, line *goquery.Selection) bool {
		date := strings.TrimSpace(line.Find(sel.Date).First().Text())

		changed, err := parseAmount(line.Find(sel.Change).First().Text(), currency)
		if err != nil {
			lineErr = err
			return false
		}
		balance, err := parseAmount(line.Find(sel.Amounts).Eq(sel.BalanceIndex).Text(), currency)
		if err != nil {
			lineErr = err
			return false
		}

		if seen[date] {
			return true
		}
		seen[date] = true

		if negate {
			changed, balance = -changed, -balance
		}
		txs = append(txs, Transaction{
			Date:    date,
			Changed: formatAmount(changed),
			Balance: formatAmount(balance),
		})
		return true
	})
	if lineErr != nil {
		return nil, lineErr
	}

	for i, j := 0, len(txs)-1; i < j; i, j = i+1, j-1 {
		txs[i], txs[j] = txs[j], txs[i]
	}
	return txs, nil
}

func parseAmount(text, currency string) (float64, error) {
	s := strings.TrimSpace(strings.ReplaceAll(text, currency, ""))
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("amount %q does not parse as a number", strings.TrimSpace(text))
	}
	return v, nil
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
