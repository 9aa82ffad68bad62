package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/gocarina/gocsv"
	"github.com/spf13/afero"
)

// StatusSaved is reported by a successful Filter.
const StatusSaved = "File saved successfully"

// FilterResult describes the file written by Filter.
type FilterResult struct {
	Status   string `json:"status"`
	Path     string `json:"path"`
	FileSize int64  `json:"file_size"`
}

// Filter copies the kept columns of the raw CSV at in to a new CSV at out.
// Header names and values are written as they appear in the input.
func Filter(fs afero.Fs, in, out string) (FilterResult, error) {
	src, err := fs.Open(in)
	if err != nil {
		return FilterResult{}, fmt.Errorf("open %s: %w", in, err)
	}
	defer src.Close()

	dst, err := fs.Create(out)
	if err != nil {
		return FilterResult{}, fmt.Errorf("create %s: %w", out, err)
	}

	if err := copyColumns(src, dst); err != nil {
		dst.Close()
		return FilterResult{}, fmt.Errorf("filter %s: %w", in, err)
	}
	if err := dst.Close(); err != nil {
		return FilterResult{}, fmt.Errorf("close %s: %w", out, err)
	}

	info, err := fs.Stat(out)
	if err != nil {
		return FilterResult{}, fmt.Errorf("stat %s: %w", out, err)
	}
	abs, err := filepath.Abs(out)
	if err != nil {
		abs = out
	}
	return FilterResult{Status: StatusSaved, Path: abs, FileSize: info.Size()}, nil
}

func copyColumns(r io.Reader, w io.Writer) error {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cw := gocsv.NewSafeCSVWriter(csv.NewWriter(w))

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: empty file", ErrMissingColumn)
		}
		return err
	}
	idx, err := columnIndex(header)
	if err != nil {
		return err
	}

	row := make([]string, len(idx))
	pick := func(record []string) error {
		for i, pos := range idx {
			if pos >= len(record) {
				return fmt.Errorf("%w: %s", ErrMissingColumn, Columns[i])
			}
			row[i] = record[pos]
		}
		return cw.Write(row)
	}

	if err := pick(header); err != nil {
		return err
	}
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}
		if err := pick(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
