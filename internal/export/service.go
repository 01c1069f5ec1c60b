package export

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"lead-capture/internal/models"
)

var (
	ErrNoData            = errors.New("no leads to export")
	ErrExport            = errors.New("export failed")
	ErrUnsupportedFormat = errors.New("unsupported export format")
)

type LeadLister interface {
	ListAll(ctx context.Context) ([]models.Lead, error)
}

type Document struct {
	Filename    string
	ContentType string
	Data        []byte
}

type Service struct {
	leads    LeadLister
	encoders map[string]Encoder
	nowF     func() time.Time
}

// NewService exports with XLSX as the default format and CSV as an alternative.
func NewService(leads LeadLister) *Service {
	return &Service{
		leads: leads,
		encoders: map[string]Encoder{
			"xlsx": XLSXEncoder{},
			"csv":  CSVEncoder{},
		},
		nowF: time.Now,
	}
}

// ExportAll encodes every stored lead. format "" means xlsx.
func (s *Service) ExportAll(ctx context.Context, format string) (Document, error) {
	if format == "" {
		format = "xlsx"
	}
	enc, ok := s.encoders[format]
	if !ok {
		return Document{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	leads, err := s.leads.ListAll(ctx)
	if err != nil {
		return Document{}, fmt.Errorf("%w: %w", ErrExport, err)
	}
	if len(leads) == 0 {
		return Document{}, ErrNoData
	}

	var buf bytes.Buffer
	if err := enc.Encode(&buf, leads); err != nil {
		return Document{}, fmt.Errorf("%w: %w", ErrExport, err)
	}

	return Document{
		Filename:    Filename(s.nowF(), enc.Extension()),
		ContentType: enc.ContentType(),
		Data:        buf.Bytes(),
	}, nil
}

// Filename returns leads_YYYY-MM-DD.<ext>.
func Filename(t time.Time, ext string) string {
	return fmt.Sprintf("leads_%s.%s", t.Format("2006-01-02"), ext)
}
