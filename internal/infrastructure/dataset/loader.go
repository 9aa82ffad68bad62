package dataset

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/gocarina/gocsv"
	"github.com/spf13/afero"

	"github.com/skysatisfy/skysatisfy/internal/domain/model"
	"github.com/skysatisfy/skysatisfy/internal/domain/valueobject"
)

// ErrEmpty is returned when a CSV has a header but no rows.
var ErrEmpty = errors.New("dataset has no rows")

// record is one normalized row of the kept columns.
type record struct {
	Satisfaction        string `csv:"satisfaction"`
	CustomerType        string `csv:"customer_type"`
	Age                 int    `csv:"age"`
	TypeOfTravel        string `csv:"type_of_travel"`
	Class               string `csv:"class"`
	FlightDistance      int    `csv:"flight_distance"`
	EaseOfOnlineBooking int    `csv:"ease_of_online_booking"`
	OnlineBoarding      int    `csv:"online_boarding"`
}

func (r *record) passenger() (model.LabeledPassenger, error) {
	p, err := model.NewPassenger(
		r.CustomerType,
		r.Age,
		r.TypeOfTravel,
		r.FlightDistance,
		r.EaseOfOnlineBooking,
		r.OnlineBoarding,
		r.Class,
	)
	if err != nil {
		return model.LabeledPassenger{}, err
	}
	s, err := valueobject.ParseSatisfaction(r.Satisfaction)
	if err != nil {
		return model.LabeledPassenger{}, err
	}
	return model.LabeledPassenger{Passenger: p, Satisfaction: s}, nil
}

// Read decodes labeled passengers from a raw CSV. Extra columns are ignored;
// a missing required column fails with ErrMissingColumn.
func Read(r io.Reader) ([]model.LabeledPassenger, error) {
	var records []*record
	if err := gocsv.UnmarshalCSV(newSelectingReader(r), &records); err != nil {
		return nil, fmt.Errorf("decode csv: %w", err)
	}
	if len(records) == 0 {
		return nil, ErrEmpty
	}

	out := make([]model.LabeledPassenger, len(records))
	for i, rec := range records {
		lp, err := rec.passenger()
		if err != nil {
			// +2: one for the header, one for 1-based numbering.
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		out[i] = lp
	}
	return out, nil
}

// CSVSource loads the training dataset from a CSV file.
type CSVSource struct {
	fs     afero.Fs
	path   string
	logger *slog.Logger
}

// NewCSVSource creates a CSVSource reading path from fs.
func NewCSVSource(fs afero.Fs, path string, logger *slog.Logger) *CSVSource {
	return &CSVSource{fs: fs, path: path, logger: logger}
}

// Load reads and parses the whole file.
func (s *CSVSource) Load(ctx context.Context) ([]model.LabeledPassenger, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := s.fs.Open(s.path)
	if err != nil {
		s.logger.Error("failed to open dataset", "path", s.path, "error", err)
		return nil, fmt.Errorf("open dataset %s: %w", s.path, err)
	}
	defer f.Close()

	rows, err := Read(f)
	if err != nil {
		s.logger.Error("failed to load dataset", "path", s.path, "error", err)
		return nil, fmt.Errorf("load dataset %s: %w", s.path, err)
	}

	s.logger.Info("dataset loaded", "path", s.path, "rows", len(rows))
	return rows, nil
}
