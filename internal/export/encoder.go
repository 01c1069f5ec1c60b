// Package export turns stored leads into a downloadable spreadsheet.
package export

import (
	"io"
	"strconv"

	"lead-capture/internal/models"
)

const (
	SheetName  = "Leads"
	TimeLayout = "2006-01-02 15:04:05"
)

type Column struct {
	Header string
	Width  float64
}

// Columns is the fixed layout of every export.
var Columns = []Column{
	{"id", 8},
	{"name", 30},
	{"phone", 20},
	{"catalog_code", 20},
	{"created_at", 22},
}

// Encoder writes leads as a document in one format.
type Encoder interface {
	Encode(w io.Writer, leads []models.Lead) error
	Extension() string
	ContentType() string
}

// Record renders a lead as the cells of one row.
func Record(l models.Lead) []string {
	code := ""
	if l.CatalogCode != nil {
		code = *l.CatalogCode
	}
	return []string{
		strconv.FormatUint(uint64(l.ID), 10),
		l.Name,
		l.Phone,
		code,
		l.CreatedAt.UTC().Format(TimeLayout),
	}
}

func headers() []string {
	h := make([]string, len(Columns))
	for i, c := range Columns {
		h[i] = c.Header
	}
	return h
}

