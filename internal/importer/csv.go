package importer

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"catalog-service/internal/models"
)

// exportColumns is the column order used by CSV and XLSX exports
var exportColumns = []string{"id", "name", "description", "category", "price", "image", "code"}

// ParseCSV parses CSV text with a header row into records keyed by the
// lowercased header names. Short rows get "" for the missing columns and an
// input without rows yields an empty slice.
func ParseCSV(r io.Reader) ([]map[string]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	reader.LazyQuotes = true

	headers, err := reader.Read()
	if err == io.EOF {
		return []map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}
	headers = normalizeHeaders(headers)

	rows := []map[string]string{}
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("error reading line %d: %w", line, err)
		}
		rows = append(rows, rowFromCells(headers, record))
	}
	return rows, nil
}

func normalizeHeaders(headers []string) []string {
	out := make([]string, len(headers))
	for i, h := range headers {
		if i == 0 {
			h = strings.TrimPrefix(h, "\ufeff")
		}
		h = strings.TrimSpace(strings.ToLower(h))
		out[i] = strings.TrimSuffix(h, " *")
	}
	return out
}

func rowFromCells(headers, cells []string) map[string]string {
	row := make(map[string]string, len(headers))
	for i, h := range headers {
		if h == "" {
			continue
		}
		if i < len(cells) {
			row[h] = strings.TrimSpace(cells[i])
		} else {
			row[h] = ""
		}
	}
	return row
}

// ExportCSV writes products as CSV with a header row
func ExportCSV(w io.Writer, products []models.Product) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(exportColumns); err != nil {
		return err
	}
	for _, p := range products {
		if err := writer.Write(productCells(p)); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// TemplateCSV writes the import header row
func TemplateCSV(w io.Writer, template models.ImportTemplate) error {
	writer := csv.NewWriter(w)
	headers := make([]string, len(template.Columns))
	for i, col := range template.Columns {
		headers[i] = col.Name
	}
	if err := writer.Write(headers); err != nil {
		return err
	}
	writer.Flush()
	return writer.Error()
}

func productCells(p models.Product) []string {
	return []string{
		p.ID.Value,
		p.Name,
		p.Description,
		p.Category,
		strconv.FormatFloat(p.Price, 'f', -1, 64),
		p.Image,
		p.Code,
	}
}

// ExportJSON writes products as an indented JSON array
func ExportJSON(w io.Writer, products []models.Product) error {
	if products == nil {
		products = []models.Product{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(products)
}
