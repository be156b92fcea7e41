// Package fileparser extracts raw records from bank CSV exports and
// normalizes them to the shape the classification pipeline expects:
// ISO day, decimal amount, trimmed description.
//
// Bank exports rarely start with the header row, so the parser scans for the
// row carrying a date-column marker, then resolves the remaining columns by
// header name with fixed fallback indices. A parse failure anywhere aborts
// the whole file; an import never stages a partial batch.
package fileparser

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"fjacquet/payday-budget/internal/classify"
	"fjacquet/payday-budget/internal/currencyutils"
	"fjacquet/payday-budget/internal/dateutils"
	"fjacquet/payday-budget/internal/importerror"
)

// Column header markers, compared lowercase and by substring.
var (
	dateMarkers        = []string{"datum", "date", "bokföringsdag", "transaktionsdag"}
	descriptionMarkers = []string{"text", "beskrivning", "description", "meddelande", "rubrik"}
	amountMarkers      = []string{"belopp", "amount", "summa"}
)

// Fallback column order when header names resolve nothing.
const (
	fallbackDateCol        = 0
	fallbackDescriptionCol = 1
	fallbackAmountCol      = 2
)

// ParseFile reads a CSV bank export from disk.
func ParseFile(path string) ([]classify.RawRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open import file: %w", err)
	}
	defer f.Close()
	return Parse(f, path)
}

// Parse reads a CSV bank export and returns normalized records.
func Parse(r io.Reader, name string) ([]classify.RawRecord, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read import file: %w", err)
	}

	reader := csv.NewReader(strings.NewReader(string(data)))
	reader.Comma = sniffDelimiter(string(data))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, &importerror.FormatError{File: name, Msg: fmt.Sprintf("unreadable CSV: %v", err)}
	}

	headerIdx, cols := findHeader(rows)
	if headerIdx < 0 {
		return nil, &importerror.FormatError{File: name, Msg: "no header row with a date column found"}
	}

	var records []classify.RawRecord
	for _, row := range rows[headerIdx+1:] {
		if isEmptyRow(row) {
			continue
		}
		rec, err := parseRow(name, row, cols)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

// sniffDelimiter picks between semicolon and comma based on the first line.
func sniffDelimiter(data string) rune {
	line := data
	if i := strings.IndexByte(data, '\n'); i >= 0 {
		line = data[:i]
	}
	if strings.Count(line, ";") > strings.Count(line, ",") {
		return ';'
	}
	return ','
}

type columns struct {
	date, description, amount int
}

// findHeader locates the first row containing a date marker and maps the
// column order from header names, falling back to fixed indices.
func findHeader(rows [][]string) (int, columns) {
	for i, row := range rows {
		cols := columns{date: -1, description: -1, amount: -1}
		for j, cell := range row {
			lower := strings.ToLower(strings.TrimSpace(cell))
			switch {
			case cols.date < 0 && matchesAny(lower, dateMarkers):
				cols.date = j
			case cols.description < 0 && matchesAny(lower, descriptionMarkers):
				cols.description = j
			case cols.amount < 0 && matchesAny(lower, amountMarkers):
				cols.amount = j
			}
		}
		if cols.date < 0 {
			continue
		}
		if cols.description < 0 {
			cols.description = fallbackDescriptionCol
		}
		if cols.amount < 0 {
			cols.amount = fallbackAmountCol
		}
		return i, cols
	}
	return -1, columns{}
}

func matchesAny(cell string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(cell, m) {
			return true
		}
	}
	return false
}

func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func parseRow(file string, row []string, cols columns) (classify.RawRecord, error) {
	get := func(i int) string {
		if i >= 0 && i < len(row) {
			return strings.TrimSpace(row[i])
		}
		return ""
	}

	day, err := parseDate(get(cols.date))
	if err != nil {
		return classify.RawRecord{}, &importerror.ParseError{
			File: file, Field: "date", Value: get(cols.date), Err: err,
		}
	}

	amount, err := currencyutils.ParseAmount(get(cols.amount))
	if err != nil {
		return classify.RawRecord{}, &importerror.ParseError{
			File: file, Field: "amount", Value: get(cols.amount), Err: err,
		}
	}

	return classify.RawRecord{
		Date:        day,
		Amount:      amount,
		Description: get(cols.description),
	}, nil
}

// parseDate normalizes textual, compact and spreadsheet serial dates to an
// ISO day string.
func parseDate(value string) (string, error) {
	if t, err := dateutils.ParseDay(value); err == nil {
		return dateutils.ToISODay(t), nil
	}
	// Spreadsheet exports sometimes leave serial-date numbers behind.
	if serial, err := strconv.ParseFloat(value, 64); err == nil && serial > 20000 {
		if t, err := dateutils.FromSerial(serial); err == nil {
			return dateutils.ToISODay(t), nil
		}
	}
	return "", fmt.Errorf("unrecognized date %q", value)
}
