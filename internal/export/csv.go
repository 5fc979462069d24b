package export

import (
	"bytes"
	"encoding/csv"
	"io"

	"go-datamonitor/internal/model"
)

// WriteCSV writes the header and one CRLF-terminated record per measurement.
func WriteCSV(w io.Writer, ms []model.Measurement) error {
	cw := csv.NewWriter(w)
	cw.UseCRLF = true

	if err := cw.Write(Columns); err != nil {
		return err
	}
	for i := range ms {
		if err := cw.Write(record(&ms[i])); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// CSV returns the encoded file. The same input always yields the same bytes.
func CSV(ms []model.Measurement) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, ms); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
