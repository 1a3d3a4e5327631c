// Package spreadsheet lee archivos de órdenes (CSV o XLSX) como filas de texto.
// La fila 0 es el encabezado; la interpretación de columnas queda en la capa de aplicación.
package spreadsheet

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/Fulfillment-api/internal/domain"
)

// Table filas leídas; cada fila es una lista de celdas.
type Table = [][]string

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Read elige el lector por extensión (.csv o .xlsx).
func Read(filename string, r io.Reader, charset string) (Table, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv", ".txt":
		return ReadCSV(r, charset)
	case ".xlsx":
		return ReadXLSX(r)
	default:
		return nil, domain.Validation("formato de archivo no soportado %q (use .csv o .xlsx)", filepath.Ext(filename))
	}
}

// ReadCSV lee un CSV separado por comas. charset vacío o utf-8 no transforma;
// windows-1252 e iso-8859-1 se decodifican a UTF-8. Se descarta el BOM UTF-8.
func ReadCSV(r io.Reader, charset string) (Table, error) {
	dec, err := decoderFor(charset)
	if err != nil {
		return nil, err
	}
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("leer archivo: %w", err)
	}
	raw = bytes.TrimPrefix(raw, utf8BOM)

	var src io.Reader = bytes.NewReader(raw)
	if dec != nil {
		src = transform.NewReader(src, dec.NewDecoder())
	}
	cr := csv.NewReader(src)
	cr.FieldsPerRecord = -1 // las filas pueden traer columnas de más o de menos
	cr.TrimLeadingSpace = true

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, domain.Validation("CSV mal formado: %v", err)
	}
	return dropBlankRows(rows), nil
}

// ReadXLSX lee la primera hoja de un libro de Excel.
func ReadXLSX(r io.Reader) (Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, domain.Validation("Excel ilegible: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, domain.Validation("el libro no tiene hojas")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, domain.Validation("leer hoja %q: %v", sheets[0], err)
	}
	return dropBlankRows(rows), nil
}

func decoderFor(charset string) (*charmap.Charmap, error) {
	switch strings.ToLower(strings.TrimSpace(charset)) {
	case "", "utf-8", "utf8":
		return nil, nil
	case "windows-1252", "cp1252":
		return charmap.Windows1252, nil
	case "iso-8859-1", "iso8859-1", "latin1":
		return charmap.ISO8859_1, nil
	default:
		return nil, domain.Validation("charset %q no soportado", charset)
	}
}

// dropBlankRows quita filas sin ninguna celda con contenido (Excel deja muchas).
func dropBlankRows(rows [][]string) Table {
	out := make(Table, 0, len(rows))
	for _, row := range rows {
		for _, c := range row {
			if strings.TrimSpace(c) != "" {
				out = append(out, row)
				break
			}
		}
	}
	return out
}
