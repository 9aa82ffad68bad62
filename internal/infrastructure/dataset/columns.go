package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrMissingColumn is returned when the CSV header lacks a required column.
var ErrMissingColumn = errors.New("missing column")

// Columns are the normalized names of the columns kept from the raw dataset,
// label first.
var Columns = []string{
	"satisfaction",
	"customer_type",
	"age",
	"type_of_travel",
	"class",
	"flight_distance",
	"ease_of_online_booking",
	"online_boarding",
}

// Normalize lowercases s and replaces spaces with underscores. It is applied
// to header names and to every cell value.
func Normalize(s string) string {
	return strings.ReplaceAll(strings.ToLower(s), " ", "_")
}

// columnIndex maps each kept column to its position in a raw header row.
func columnIndex(header []string) ([]int, error) {
	positions := make(map[string]int, len(header))
	for i, name := range header {
		if _, dup := positions[Normalize(name)]; !dup {
			positions[Normalize(name)] = i
		}
	}

	idx := make([]int, len(Columns))
	for i, col := range Columns {
		pos, ok := positions[col]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, col)
		}
		idx[i] = pos
	}
	return idx, nil
}

// selectingReader yields the kept columns of a raw CSV in Columns order with
// normalized header and values. It satisfies gocsv.CSVReader.
type selectingReader struct {
	r      *csv.Reader
	idx    []int
	header bool
}

func newSelectingReader(r io.Reader) *selectingReader {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	return &selectingReader{r: cr}
}

func (s *selectingReader) Read() ([]string, error) {
	record, err := s.r.Read()
	if err != nil {
		return nil, err
	}

	if !s.header {
		s.header = true
		idx, err := columnIndex(record)
		if err != nil {
			return nil, err
		}
		s.idx = idx
		return append([]string(nil), Columns...), nil
	}

	out := make([]string, len(s.idx))
	for i, pos := range s.idx {
		if pos >= len(record) {
			line, _ := s.r.FieldPos(0)
			return nil, fmt.Errorf("line %d: %w: %s", line, ErrMissingColumn, Columns[i])
		}
		out[i] = Normalize(record[pos])
	}
	return out, nil
}

func (s *selectingReader) ReadAll() ([][]string, error) {
	var rows [][]string
	for {
		row, err := s.Read()
		if errors.Is(err, io.EOF) {
			return rows, nil
		}
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
}
