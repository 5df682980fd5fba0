package scrape

import (
	"fmt"
	"os"

	yaml "gopkg.in/yaml.v2"
)

// Selectors is the swappable strategy for locating transaction fields in
// an account journal page. The balance cell is picked by sibling position
// among the amount cells rather than by a semantic class, because Fava's
// journal rows carry no marker that distinguishes the running balance from
// the change amount. A markup reordering upstream is therefore a one-line
// change to BalanceIndex, not a rewrite.
type Selectors struct {
	// Line selects one transaction row within the journal container.
	Line string `yaml:"line"`
	// Date selects the date cell within a line.
	Date string `yaml:"date"`
	// Change selects the change-amount cell within a line.
	Change string `yaml:"change"`
	// Amounts selects all numeric cells of a line, in document order.
	Amounts string `yaml:"amounts"`
	// BalanceIndex is the position of the running balance within the
	// Amounts selection.
	BalanceIndex int `yaml:"balance_index"`
}

// DefaultSelectors matches the journal markup of current Fava releases.
func DefaultSelectors() Selectors {
	return Selectors{
		Line:         "ol.journal li.transaction",
		Date:         "span.datecell",
		Change:       "span.change",
		Amounts:      "span.num",
		BalanceIndex: 1,
	}
}

// LoadSelectors reads a YAML selector file. Fields absent from the file
// keep their default value.
func LoadSelectors(path string) (Selectors, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Selectors{}, err
	}
	sel := DefaultSelectors()
	if err := yaml.Unmarshal(data, &sel); err != nil {
		return Selectors{}, fmt.Errorf("parse selector config %s: %w", path, err)
	}
	return sel, nil
}
