// Package importer decodes uploaded catalog files into raw records and
// encodes the canonical collection for download.
package importer

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"catalog-service/internal/models"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported file format")
	ErrNotArray          = errors.New("JSON document must be an array")
	ErrEmptyFile         = errors.New("file contains no data")
)

// FormatFromFilename picks the import format from the file extension
func FormatFromFilename(name string) (models.ImportFormat, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json":
		return models.ImportFormatJSON, nil
	case ".csv":
		return models.ImportFormatCSV, nil
	case ".xlsx":
		return models.ImportFormatXLSX, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, name)
}

// ParseFormat validates a format name given as a query parameter
func ParseFormat(s string) (models.ImportFormat, error) {
	switch f := models.ImportFormat(strings.ToLower(strings.TrimSpace(s))); f {
	case models.ImportFormatJSON, models.ImportFormatCSV, models.ImportFormatXLSX:
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

// DecodeJSON decodes any JSON document keeping numbers as json.Number so
// numeric ids survive a load without float rounding.
func DecodeJSON(r io.Reader) (any, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyFile
		}
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	return v, nil
}

// RecordsFromJSON decodes a JSON document that must be an array
func RecordsFromJSON(r io.Reader) ([]any, error) {
	v, err := DecodeJSON(r)
	if err != nil {
		return nil, err
	}
	arr, ok := v.([]any)
	if !ok {
		return nil, ErrNotArray
	}
	return arr, nil
}

// Parse reads the records of an uploaded file in the given format. JSON files
// yield []any, tabular formats yield []map[string]string.
func Parse(format models.ImportFormat, r io.Reader) (any, error) {
	switch format {
	case models.ImportFormatJSON:
		return RecordsFromJSON(r)
	case models.ImportFormatCSV:
		return ParseCSV(r)
	case models.ImportFormatXLSX:
		return ParseXLSX(r)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
}

// ContentType returns the download content type for a format
func ContentType(format models.ImportFormat) string {
	switch format {
	case models.ImportFormatCSV:
		return "text/csv"
	case models.ImportFormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "application/json"
}

// Export encodes products in the given format
func Export(format models.ImportFormat, products []models.Product) ([]byte, error) {
	var buf bytes.Buffer
	var err error
	switch format {
	case models.ImportFormatJSON:
		err = ExportJSON(&buf, products)
	case models.ImportFormatCSV:
		err = ExportCSV(&buf, products)
	case models.ImportFormatXLSX:
		err = ExportXLSX(&buf, products)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
