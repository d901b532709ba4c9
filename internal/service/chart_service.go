package service

import (
	"github.com/rs/zerolog"

	"github.com/excel-analyzer-api/internal/chart"
)

// chartService binds the pure chart builder to the active dataset.
type chartService struct {
	uploads UploadService
	log     zerolog.Logger
}

// newChartService creates a new ChartService.
func newChartService(uploads UploadService, log zerolog.Logger) *chartService {
	return &chartService{
		uploads: uploads,
		log:     log.With().Str("service", "chart").Logger(),
	}
}

// BuildFromCurrent aggregates the active dataset. ErrNoDataset when no
// upload has been decoded yet; chart.ErrMissingAxis passes through.
func (s *chartService) BuildFromCurrent(categoryColumn, valueColumn string, kind chart.Kind) (*chart.Series, error) {
	ds := s.uploads.Current()
	if ds == nil {
		return nil, ErrNoDataset
	}

	series, err := chart.Build(ds, categoryColumn, valueColumn, kind)
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("kind", string(kind)).
		Str("category", categoryColumn).
		Str("value", valueColumn).
		Int("points", len(series.Points)+len(series.XY)).
		Msg("Chart series built")

	return series, nil
}
