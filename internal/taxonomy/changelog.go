package taxonomy

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Changelog sheet names in the structural changelog workbook.
const (
	SheetImperatives    = "Final Innovation Imperatives"
	SheetMoonshots      = "Final Moonshots"
	SheetTechCategories = "Final Tech Categories"
)

// ChangelogRow is one record from a changelog sheet, keyed by column header.
type ChangelogRow map[string]string

// Changelog holds the taxonomy metadata sheets from the structural changelog
// workbook. The enrich-taxonomy tool uses it to cross-check the taxonomy
// source against the curated sheet contents.
type Changelog struct {
	Imperatives    []ChangelogRow
	Moonshots      []ChangelogRow
	TechCategories []ChangelogRow
}

// ReadChangelog parses the three taxonomy sheets from an xlsx workbook.
// Missing sheets are skipped; a missing workbook is an error.
func ReadChangelog(path string) (*Changelog, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open changelog workbook %s: %w", path, err)
	}
	defer f.Close()

	cl := &Changelog{}
	sheets := []struct {
		name string
		dest *[]ChangelogRow
	}{
		{SheetImperatives, &cl.Imperatives},
		{SheetMoonshots, &cl.Moonshots},
		{SheetTechCategories, &cl.TechCategories},
	}

	for _, sheet := range sheets {
		rows, err := f.GetRows(sheet.name)
		if err != nil {
			// Sheet absent in this revision of the workbook.
			continue
		}
		*sheet.dest = rowsToRecords(rows)
	}

	return cl, nil
}

// rowsToRecords converts a header row plus data rows into keyed records,
// with empty cells preserved as empty strings.
func rowsToRecords(rows [][]string) []ChangelogRow {
	if len(rows) < 2 {
		return nil
	}
	headers := rows[0]

	records := make([]ChangelogRow, 0, len(rows)-1)
	for _, row := range rows[1:] {
		record := make(ChangelogRow, len(headers))
		empty := true
		for i, header := range headers {
			header = strings.TrimSpace(header)
			if header == "" {
				continue
			}
			value := ""
			if i < len(row) {
				value = strings.TrimSpace(row[i])
			}
			if value != "" {
				empty = false
			}
			record[header] = value
		}
		if !empty {
			records = append(records, record)
		}
	}
	return records
}

// Names returns the values of the first non-empty column commonly holding the
// subject name, for coverage reporting.
func Names(rows []ChangelogRow, columns ...string) []string {
	var names []string
	for _, row := range rows {
		for _, column := range columns {
			if value := row[column]; value != "" {
				names = append(names, value)
				break
			}
		}
	}
	return names
}
