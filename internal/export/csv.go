package export

import (
	"encoding/csv"
	"io"

	"lead-capture/internal/models"
)

type CSVEncoder struct{}

func (CSVEncoder) Extension() string   { return "csv" }
func (CSVEncoder) ContentType() string { return "text/csv" }

func (CSVEncoder) Encode(w io.Writer, leads []models.Lead) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(headers()); err != nil {
		return err
	}
	for _, lead := range leads {
		if err := cw.Write(Record(lead)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
