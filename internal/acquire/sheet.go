package acquire

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Address is a zero-based cell position.
type Address struct {
	Row int
	Col int
}

func (a Address) String() string {
	col := ""
	for n := a.Col + 1; n > 0; n = (n - 1) / 26 {
		col = string(rune('A'+(n-1)%26)) + col
	}
	return col + strconv.Itoa(a.Row+1)
}

// Sheet limits, as in common spreadsheet applications (column XFD).
const (
	MaxColumns = 16384
	MaxRows    = 1048576
)

// ParseAddress parses an A1-style reference such as "B3" or "aa10".
func ParseAddress(ref string) (Address, error) {
	ref = strings.ToUpper(strings.TrimSpace(ref))
	i := 0
	col := 0
	for i < len(ref) && ref[i] >= 'A' && ref[i] <= 'Z' {
		col = col*26 + int(ref[i]-'A'+1)
		i++
		if col > MaxColumns {
			return Address{}, fmt.Errorf("invalid cell reference %q: column out of range", ref)
		}
	}
	if i == 0 || i == len(ref) {
		return Address{}, fmt.Errorf("invalid cell reference %q", ref)
	}
	row, err := strconv.Atoi(ref[i:])
	if err != nil || row < 1 || row > MaxRows {
		return Address{}, fmt.Errorf("invalid cell reference %q", ref)
	}
	return Address{Row: row - 1, Col: col - 1}, nil
}

// SheetCell reads one cell from a CSV or TSV export of a spreadsheet.
type SheetCell struct {
	Path string
	Cell Address
}

func (s SheetCell) Name() string {
	return fmt.Sprintf("sheet %s!%s", filepath.Base(s.Path), s.Cell)
}

// Exists reports whether the sheet file is present. Used as the readiness
// check while waiting for an export to be written.
func (s SheetCell) Exists() bool {
	info, err := os.Stat(s.Path)
	return err == nil && !info.IsDir()
}

func (s SheetCell) SelectedText(ctx context.Context) (string, bool, error) {
	if s.Cell.Row < 0 || s.Cell.Col < 0 {
		return "", false, fmt.Errorf("invalid cell address %d,%d", s.Cell.Row, s.Cell.Col)
	}
	f, err := os.Open(s.Path)
	if err != nil {
		return "", false, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = delimiterFor(s.Path)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	r.ReuseRecord = true

	for row := 0; ; row++ {
		if err := ctx.Err(); err != nil {
			return "", false, err
		}
		rec, err := r.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return "", false, nil
			}
			return "", false, fmt.Errorf("reading row %d: %w", row+1, err)
		}
		if row < s.Cell.Row {
			continue
		}
		if s.Cell.Col >= len(rec) {
			return "", false, nil
		}
		return usable(rec[s.Cell.Col])
	}
}

func delimiterFor(path string) rune {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".tsv", ".tab":
		return '\t'
	default:
		return ','
	}
}
