// Package statement parses CSV statements exported by Brazilian banks.
package statement

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	enc "github.com/MrJamesThe3rd/carteira/internal/encoding"
	"github.com/MrJamesThe3rd/carteira/internal/money"
)

// ErrUnknownFormat is returned when no profile matches the file's headers.
var ErrUnknownFormat = errors.New("unrecognized statement format: expected a Nubank, Itaú or Banco do Brasil CSV export")

// Source identifies the bank a statement comes from.
type Source string

const (
	// SourceAuto tries every known profile.
	SourceAuto   Source = ""
	SourceNubank Source = "nubank"
	SourceItau   Source = "itau"
	SourceBB     Source = "bb"
)

func (s Source) Valid() bool {
	switch s {
	case SourceAuto, SourceNubank, SourceItau, SourceBB:
		return true
	}

	return false
}

// Kind tells whether an entry moved money out of or into the account.
type Kind string

const (
	KindDebit  Kind = "debit"
	KindCredit Kind = "credit"
)

// Entry is one statement line. Amount is always positive, in cents.
type Entry struct {
	Date        time.Time
	Description string
	Amount      int64
	Kind        Kind
	// Row is the 1-based line of the entry in the file.
	Row int
}

// Result holds the parsed entries and the profile that matched.
type Result struct {
	Profile string
	Card    bool
	Charset enc.Charset
	Entries []Entry
}

// Parse reads a statement, detecting its encoding and column layout. When
// source is not SourceAuto only that bank's profiles are tried.
func Parse(r io.Reader, source Source) (*Result, error) {
	utf8r, charset, err := enc.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	data, err := io.ReadAll(utf8r)
	if err != nil {
		return nil, fmt.Errorf("read statement: %w", err)
	}

	for _, comma := range []rune{';', ','} {
		rows, err := readRows(data, comma)
		if err != nil {
			continue
		}

		profile, cols, headerIdx := detectProfile(rows, comma, source)
		if profile == nil {
			continue
		}

		entries, err := parseRows(profile, cols, rows[headerIdx+1:], headerIdx+1)
		if err != nil {
			return nil, err
		}

		return &Result{Profile: profile.Name, Card: profile.Card, Charset: charset, Entries: entries}, nil
	}

	return nil, ErrUnknownFormat
}

func readRows(data []byte, comma rune) ([][]string, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = comma
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	return rows, nil
}

// colIndex maps normalized column names to their index in the row.
type colIndex map[string]int

// detectProfile scans rows for a header that matches a known profile.
// Returns the matched profile, column index map, and header row index.
func detectProfile(rows [][]string, comma rune, source Source) (*Profile, colIndex, int) {
	for rowIdx, row := range rows {
		cols := make(colIndex)

		for i, cell := range row {
			if name := normalize(cell); name != "" {
				cols[name] = i
			}
		}

		for i := range profiles {
			p := &profiles[i]
			if p.Comma != comma || (source != SourceAuto && p.Source != source) {
				continue
			}

			if matchesProfile(p, cols) {
				return p, cols, rowIdx
			}
		}
	}

	return nil, nil, 0
}

// matchesProfile checks if all required columns of a profile are present.
func matchesProfile(p *Profile, cols colIndex) bool {
	for _, name := range p.requiredCols() {
		if _, ok := cols[name]; !ok {
			return false
		}
	}

	return true
}

// parseRows extracts entries from data rows using the matched profile.
// headerRowNum is the 0-based index of the header in the original file.
func parseRows(p *Profile, cols colIndex, rows [][]string, headerRowNum int) ([]Entry, error) {
	dateIdx := cols[p.DateCol]
	descIdx := cols[p.DescCol]

	detailIdx := -1
	if p.DetailCol != "" {
		if idx, ok := cols[p.DetailCol]; ok {
			detailIdx = idx
		}
	}

	var entries []Entry

	for i, row := range rows {
		rowNum := headerRowNum + i + 1

		date, ok := parseDate(row, dateIdx, p.DateLayout)
		if !ok {
			continue
		}

		desc := cellValue(row, descIdx)
		if detail := cellValue(row, detailIdx); detail != "" {
			desc = strings.TrimSpace(desc + " " + detail)
		}

		if desc == "" {
			return nil, fmt.Errorf("row %d: missing description", rowNum)
		}

		if p.skipped(desc) {
			continue
		}

		amount, kind, ok := parseAmount(p, cols, row)
		if !ok {
			continue
		}

		entries = append(entries, Entry{
			Date:        date,
			Description: desc,
			Amount:      amount,
			Kind:        kind,
			Row:         rowNum,
		})
	}

	return entries, nil
}

func (p *Profile) skipped(desc string) bool {
	lower := strings.ToLower(desc)

	return slices.ContainsFunc(p.SkipPrefixes, func(prefix string) bool {
		return strings.HasPrefix(lower, prefix)
	})
}

// parseDate returns false for empty cells or unparseable values (footer rows, etc).
func parseDate(row []string, idx int, layout string) (time.Time, bool) {
	s := cellValue(row, idx)
	if s == "" {
		return time.Time{}, false
	}

	t, err := time.Parse(layout, s)
	if err != nil {
		return time.Time{}, false
	}

	return t, true
}

// parseAmount extracts the amount and direction from a row based on the profile's amount mode.
func parseAmount(p *Profile, cols colIndex, row []string) (int64, Kind, bool) {
	s := cellValue(row, cols[p.AmountCol])
	if s == "" {
		return 0, "", false
	}

	cents, err := money.Parse(s)
	if err != nil || cents == 0 {
		return 0, "", false
	}

	if p.AmountMode == amountTyped {
		kind := KindDebit
		if slices.Contains(p.CreditValues, normalize(cellValue(row, cols[p.TypeCol]))) {
			kind = KindCredit
		}

		return abs(cents), kind, true
	}

	if p.Invert {
		cents = -cents
	}

	if cents < 0 {
		return -cents, KindDebit, true
	}

	return cents, KindCredit, true
}

// cellValue safely gets a trimmed cell value from a row.
func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func abs(n int64) int64 {
	if n < 0 {
		return -n
	}

	return n
}
