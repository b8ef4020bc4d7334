// Package sheetjson converts uploaded CSV and spreadsheet files into JSON row objects
// The first row holds the column names. Cells are trimmed, blank lines skipped and
// numeric or boolean text cast to JSON numbers and booleans
package sheetjson

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"io"
	"strconv"
	"strings"

	"airwatch/internal/core/normalize"
	perr "airwatch/internal/platform/errors"

	"github.com/xuri/excelize/v2"
)

// Format is a supported input format
type Format string

// Supported formats
const (
	CSV  Format = "csv"
	XLSX Format = "xlsx"
	XLS  Format = "xls"
)

// FormatOf maps a file extension (with or without dot, any case) to a Format
func FormatOf(ext string) (Format, bool) {
	switch f := Format(strings.ToLower(strings.TrimPrefix(ext, "."))); f {
	case CSV, XLSX, XLS:
		return f, true
	}
	return "", false
}

// Row is one converted record; keys keep their column order when encoded
type Row struct {
	keys []string
	vals map[string]any
}

func newRow(n int) Row { return Row{keys: make([]string, 0, n), vals: make(map[string]any, n)} }

func (r *Row) set(k string, v any) {
	if _, ok := r.vals[k]; !ok {
		r.keys = append(r.keys, k)
	}
	r.vals[k] = v
}

// Get returns the value for column k
func (r Row) Get(k string) (any, bool) {
	v, ok := r.vals[k]
	return v, ok
}

// Keys returns the column names present in this row
func (r Row) Keys() []string { return r.keys }

// MarshalJSON writes the row as an object in column order
func (r Row) MarshalJSON() ([]byte, error) {
	var b bytes.Buffer
	b.WriteByte('{')
	for i, k := range r.keys {
		if i > 0 {
			b.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		vb, err := json.Marshal(r.vals[k])
		if err != nil {
			return nil, err
		}
		b.Write(kb)
		b.WriteByte(':')
		b.Write(vb)
	}
	b.WriteByte('}')
	return b.Bytes(), nil
}

// Parse reads r as format f and returns its rows
// CSV rows keep empty cells as ""; spreadsheet rows omit them
func Parse(f Format, r io.Reader) ([]Row, error) {
	switch f {
	case CSV:
		return parseCSV(r)
	case XLSX, XLS:
		return parseSheet(r)
	}
	return nil, perr.Validationf("Unsupported file format. Only CSV and Excel files are allowed.")
}

// Encode renders rows as an indented JSON array
func Encode(rows []Row) ([]byte, error) {
	if rows == nil {
		rows = []Row{}
	}
	return json.MarshalIndent(rows, "", "  ")
}

func parseCSV(r io.Reader) ([]Row, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	var (
		header []string
		out    = []Row{}
	)
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, perr.Wrapf(err, perr.ErrorCodeValidation, "Failed to parse CSV file")
		}
		if blank(rec) {
			continue
		}
		if header == nil {
			header = headers(rec)
			continue
		}
		row := newRow(len(header))
		for i, h := range header {
			v := ""
			if i < len(rec) {
				v = normalize.Cell(rec[i])
			}
			row.set(h, Cast(v))
		}
		out = append(out, row)
	}
	return out, nil
}

func parseSheet(r io.Reader) ([]Row, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeValidation, "Failed to parse Excel file")
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return []Row{}, nil
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeValidation, "Failed to parse Excel file")
	}

	var (
		header []string
		out    = []Row{}
	)
	for _, rec := range rows {
		if blank(rec) {
			continue
		}
		if header == nil {
			header = headers(rec)
			continue
		}
		row := newRow(len(header))
		for i, h := range header {
			if i >= len(rec) {
				break
			}
			if v := normalize.Cell(rec[i]); v != "" {
				row.set(h, Cast(v))
			}
		}
		out = append(out, row)
	}
	return out, nil
}

// headers cleans column names; blanks become __EMPTY, __EMPTY_1 and so on
func headers(rec []string) []string {
	out := make([]string, len(rec))
	empties := 0
	for i, h := range rec {
		if i == 0 {
			h = strings.TrimPrefix(h, "\ufeff")
		}
		h = normalize.Cell(h)
		if h == "" {
			h = "__EMPTY"
			if empties > 0 {
				h += "_" + strconv.Itoa(empties)
			}
			empties++
		}
		out[i] = h
	}
	return out
}

func blank(rec []string) bool {
	for _, c := range rec {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// Cast turns numeric text into int64 or float64 and true/false into bool
// everything else, including the empty string, stays a string
func Cast(s string) any {
	if s == "" {
		return s
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil && !leadingZero(s) {
		return i
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && !leadingZero(s) && !special(s) {
		return f
	}
	switch strings.ToLower(s) {
	case "true":
		return true
	case "false":
		return false
	}
	return s
}

// leadingZero keeps codes like 007 or 0123 as text
func leadingZero(s string) bool {
	s = strings.TrimPrefix(s, "-")
	return len(s) > 1 && s[0] == '0' && s[1] != '.'
}

// special rejects forms ParseFloat accepts that a sheet author would not mean as numbers
func special(s string) bool {
	l := strings.ToLower(strings.TrimLeft(s, "+-"))
	return strings.HasPrefix(l, "inf") || strings.HasPrefix(l, "nan") ||
		strings.HasPrefix(l, "0x") || strings.ContainsRune(l, '_')
}
