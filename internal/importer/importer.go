// Package importer reads guest list source files for bulk import.
package importer

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	guestsdomain "wedding-registry-go/internal/domain/guests"
)

type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
)

var (
	ErrUnknownFormat = errors.New("unknown guest list format")
	ErrMissingColumn = errors.New("csv header must include a name column")
)

// FormatFromPath picks the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".csv":
		return FormatCSV, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, filepath.Ext(path))
}

func ReadFile(path string) ([]guestsdomain.ImportEntry, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Read(f, format)
}

func Read(r io.Reader, format Format) ([]guestsdomain.ImportEntry, error) {
	switch format {
	case FormatJSON:
		return readJSON(r)
	case FormatCSV:
		return readCSV(r)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

// readJSON accepts either a bare array of rows or the admin API body
// {"guests": [...]}.
func readJSON(r io.Reader) ([]guestsdomain.ImportEntry, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var entries []guestsdomain.ImportEntry
	if err := json.Unmarshal(data, &entries); err == nil {
		return entries, nil
	}

	var wrapped struct {
		Guests []guestsdomain.ImportEntry `json:"guests"`
	}
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return nil, fmt.Errorf("decode guest list json: %w", err)
	}
	return wrapped.Guests, nil
}

// readCSV expects a header row. Columns are matched by name, so
// family_group and side are optional and may appear in any order.
func readCSV(r io.Reader) ([]guestsdomain.ImportEntry, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("read csv header: %w", err)
	}

	columns := map[string]int{"name": -1, "family_group": -1, "side": -1}
	for i, col := range header {
		key := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(col, "\ufeff")))
		if _, ok := columns[key]; ok {
			columns[key] = i
		}
	}
	if columns["name"] < 0 {
		return nil, ErrMissingColumn
	}

	var entries []guestsdomain.ImportEntry
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}
		if blankRecord(record) {
			continue
		}
		entries = append(entries, guestsdomain.ImportEntry{
			Name:        field(record, columns["name"]),
			FamilyGroup: field(record, columns["family_group"]),
			Side:        field(record, columns["side"]),
		})
	}
	return entries, nil
}

func field(record []string, index int) string {
	if index < 0 || index >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[index])
}

func blankRecord(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
