package export

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/baxterbids/bidboard/internal/quotes"
	"github.com/baxterbids/bidboard/pkg/enums"
	pkgerrors "github.com/baxterbids/bidboard/pkg/errors"
	"github.com/baxterbids/bidboard/pkg/metrics"
)

// ComparisonSource rebuilds the comparison for a bid; quotes.Service satisfies it.
type ComparisonSource interface {
	Compare(ctx context.Context, bidID string) (*quotes.Comparison, error)
}

// File is a rendered export ready to stream.
type File struct {
	Name        string
	ContentType string
	Body        []byte
}

type Service interface {
	Export(ctx context.Context, bidID, format string) (*File, error)
}

type service struct {
	source  ComparisonSource
	metrics *metrics.QuoteMetrics
}

func NewService(source ComparisonSource, m *metrics.QuoteMetrics) (Service, error) {
	if source == nil {
		return nil, fmt.Errorf("comparison source required")
	}
	return &service{source: source, metrics: m}, nil
}

// Export renders the current comparison of bidID as csv or xlsx.
func (s *service) Export(ctx context.Context, bidID, format string) (*File, error) {
	exportFormat, err := enums.ParseExportFormat(format)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid export format").
			WithDetails(map[string]any{"allowed": []string{enums.ExportFormatCSV.String(), enums.ExportFormatXLSX.String()}})
	}

	cmp, err := s.source.Compare(ctx, bidID)
	if err != nil {
		return nil, err
	}

	tables := []table{matrixTable(cmp), rankingTable(cmp), summaryTable(cmp)}

	var body []byte
	switch exportFormat {
	case enums.ExportFormatXLSX:
		body, err = writeXLSX(tables...)
	default:
		body, err = writeCSV(tables...)
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "render export")
	}

	s.metrics.IncExport(exportFormat.String())
	return &File{
		Name:        fileName(cmp.BidID, exportFormat),
		ContentType: exportFormat.ContentType(),
		Body:        body,
	}, nil
}

var unsafeFileChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

func fileName(bidID string, format enums.ExportFormat) string {
	safe := strings.Trim(unsafeFileChars.ReplaceAllString(bidID, "_"), "_")
	if safe == "" {
		safe = "bid"
	}
	return fmt.Sprintf("%s-quote-comparison.%s", safe, format)
}
