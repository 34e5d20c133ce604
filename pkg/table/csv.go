package table

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

const utf8BOM = "\ufeff"

// Load reads a comma-separated file whose first row is the header.
func Load(path string) (*Table, error) {
	f, err := os.Open(path) //nolint:gosec // User-provided input path
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	t, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	return t, nil
}

// Read parses comma-separated input whose first row is the header. Blank
// lines are skipped, short rows are padded with null cells.
func Read(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrEmptyInput
	}
	if err != nil {
		return nil, err
	}

	header = normalizeHeader(header)

	var records [][]string
	for {
		record, readErr := reader.Read()
		if errors.Is(readErr, io.EOF) {
			break
		}
		if readErr != nil {
			return nil, readErr
		}

		if len(record) > len(header) {
			line, _ := reader.FieldPos(0)
			return nil, fmt.Errorf("%w: line %d has %d fields, expected %d", ErrRaggedRow, line, len(record), len(header))
		}

		records = append(records, record)
	}

	return FromRecords(header, records)
}

// Save writes the table to path, replacing any existing file.
func Save(path string, t *Table) (err error) {
	f, err := os.Create(path) //nolint:gosec // User-provided output path
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close %s: %w", path, closeErr)
		}
	}()

	if err := Write(f, t); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	return nil
}

// Write serializes the table as comma-separated text with a header row and
// no index column.
func Write(w io.Writer, t *Table) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(t.Columns()); err != nil {
		return err
	}

	for i := 0; i < t.Len(); i++ {
		if err := writer.Write(t.Record(i)); err != nil {
			return err
		}
	}

	writer.Flush()

	return writer.Error()
}

// normalizeHeader names blank headers "Unnamed: <i>" and suffixes repeated
// names with ".1", ".2", ... in order of appearance.
func normalizeHeader(header []string) []string {
	out := make([]string, len(header))
	seen := make(map[string]bool, len(header))

	for i, name := range header {
		if i == 0 {
			name = strings.TrimPrefix(name, utf8BOM)
		}
		if strings.TrimSpace(name) == "" {
			name = "Unnamed: " + strconv.Itoa(i)
		}

		candidate := name
		for n := 1; seen[candidate]; n++ {
			candidate = name + "." + strconv.Itoa(n)
		}

		seen[candidate] = true
		out[i] = candidate
	}

	return out
}
