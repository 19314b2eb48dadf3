package catalog

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/tealeg/xlsx"

	"github.com/OmGaler/kp-pesach-orders/models"
)

// DefaultCatalogFilename is the workbook the store uploads each season.
const DefaultCatalogFilename = "KP Pesach List 5786.xlsx"

const dataDir = "data"

// catalogCandidates lists workbook paths to try, most specific first.
// With no override: the default filename, then every .xlsx in data/.
func catalogCandidates(customPath string) []string {
	if customPath != "" {
		return []string{customPath}
	}

	candidates := []string{filepath.Join(dataDir, DefaultCatalogFilename)}

	entries, err := os.ReadDir(dataDir)
	if err != nil {
		return candidates
	}
	var found []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.HasSuffix(strings.ToLower(entry.Name()), ".xlsx") {
			found = append(found, filepath.Join(dataDir, entry.Name()))
		}
	}
	sort.Strings(found)

	seen := map[string]bool{candidates[0]: true}
	for _, path := range found {
		if !seen[path] {
			seen[path] = true
			candidates = append(candidates, path)
		}
	}
	return candidates
}

// LoadFromWorkbook parses the catalog out of the first readable
// candidate workbook's first sheet.
func LoadFromWorkbook(customPath string) ([]models.Category, error) {
	candidates := catalogCandidates(customPath)
	var failures []string

	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err != nil {
			continue
		}
		file, err := xlsx.OpenFile(candidate)
		if err != nil {
			failures = append(failures, candidate+": "+err.Error())
			continue
		}
		if len(file.Sheets) == 0 {
			failures = append(failures, candidate+": workbook has no sheets")
			continue
		}
		return ParseRows(sheetRows(file.Sheets[0])), nil
	}

	return nil, fmt.Errorf(
		"could not open any catalog workbook (tried: %s) (errors: %s)",
		strings.Join(candidates, ", "), strings.Join(failures, "; "),
	)
}

// sheetRows reads up to the first six cells of every row; the parser
// only ever looks at the first two.
func sheetRows(sheet *xlsx.Sheet) [][]string {
	rows := make([][]string, 0, len(sheet.Rows))
	for _, row := range sheet.Rows {
		cells := make([]string, 0, 6)
		for i, c := range row.Cells {
			if i >= 6 {
				break
			}
			cells = append(cells, c.String())
		}
		rows = append(rows, cells)
	}
	return rows
}
