package sheets

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/jhoicas/cmi-stock/internal/domain/fields"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ParseCSV convierte una exportación CSV en registros. La primera fila son los encabezados;
// las filas totalmente vacías se descartan y las filas cortas o largas se aceptan tal cual.
func ParseCSV(r io.Reader) ([]fields.Record, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("csv: leer: %w", err)
	}
	data = bytes.TrimPrefix(data, utf8BOM)

	cr := csv.NewReader(bytes.NewReader(data))
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return []fields.Record{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("csv: encabezados: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	var out []fields.Record
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("csv: fila %d: %w", len(out)+2, err)
		}
		if blank(row) {
			continue
		}
		out = append(out, fields.NewRecord(header, row))
	}
	return out, nil
}

func blank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
