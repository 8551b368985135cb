package flow

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Alrudin/fromto/pkg/errors"
)

// ReadOptions configures flow input parsing.
type ReadOptions struct {
	// Logger receives warnings about skipped rows. Nil disables warnings.
	Logger func(msg string, args ...any)
}

func (o ReadOptions) warnf(msg string, args ...any) {
	if o.Logger != nil {
		o.Logger(msg, args...)
	}
}

// ReadCSV parses flows from a delimited table with "from" and "to" columns.
// Column order is free and extra columns are ignored; header matching is
// case-insensitive. Rows with missing or empty endpoints are skipped with a
// warning instead of failing the whole file.
//
// An input without any header row yields an empty flow list; callers enforce
// the non-empty contract before building a diagram.
func ReadCSV(r io.Reader, opts ReadOptions) ([]Flow, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "read header")
	}

	fromCol, toCol := -1, -1
	for i, name := range header {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "from":
			fromCol = i
		case "to":
			toCol = i
		}
	}
	if fromCol < 0 || toCol < 0 {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "input must have 'from' and 'to' columns, got %v", header)
	}

	var flows []Flow
	row := 1
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		row++
		if err != nil {
			opts.warnf("skipping malformed row %d: %v", row, err)
			continue
		}
		if fromCol >= len(record) || toCol >= len(record) {
			opts.warnf("skipping row %d with missing data: %v", row, record)
			continue
		}
		from := strings.TrimSpace(record[fromCol])
		to := strings.TrimSpace(record[toCol])
		if from == "" || to == "" {
			opts.warnf("skipping row %d with missing data: %v", row, record)
			continue
		}
		flows = append(flows, Flow{From: from, To: to})
	}
	return flows, nil
}

// ReadFile reads flows from the file at path, picking the parser from the
// extension: ".json" is decoded as node-link JSON, everything else as CSV.
func ReadFile(path string, opts ReadOptions) ([]Flow, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "input file not found: %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "open %s", path)
	}
	defer f.Close()

	if strings.EqualFold(filepath.Ext(path), ".json") {
		return ReadJSON(f)
	}
	return ReadCSV(f, opts)
}
