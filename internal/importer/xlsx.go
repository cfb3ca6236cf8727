package importer

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"catalog-service/internal/models"
)

// ProductsSheet is the preferred sheet name for imports and the sheet
// written by exports
const ProductsSheet = "Products"

// ParseXLSX reads the "Products" sheet (or the first sheet) of a workbook.
// The first row is the header.
func ParseXLSX(r io.Reader) ([]map[string]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("no sheets found in Excel file")
	}
	sheetName := sheets[0]
	for _, name := range sheets {
		if strings.EqualFold(name, ProductsSheet) {
			sheetName = name
			break
		}
	}

	excelRows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet: %w", err)
	}
	if len(excelRows) == 0 {
		return []map[string]string{}, nil
	}

	headers := normalizeHeaders(excelRows[0])
	rows := []map[string]string{}
	for _, excelRow := range excelRows[1:] {
		if isBlankRow(excelRow) {
			continue
		}
		rows = append(rows, rowFromCells(headers, excelRow))
	}
	return rows, nil
}

func isBlankRow(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// ExportXLSX writes products into a single-sheet workbook
func ExportXLSX(w io.Writer, products []models.Product) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", ProductsSheet); err != nil {
		return err
	}
	headerStyle, err := newHeaderStyle(f)
	if err != nil {
		return err
	}

	for i, name := range exportColumns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(ProductsSheet, cell, name)
		f.SetCellStyle(ProductsSheet, cell, cell, headerStyle)
		colName, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(ProductsSheet, colName, colName, 24)
	}

	for r, p := range products {
		row := r + 2
		values := []any{p.ID.Value, p.Name, p.Description, p.Category, p.Price, p.Image, p.Code}
		for c, v := range values {
			cell, _ := excelize.CoordinatesToCellName(c+1, row)
			if err := f.SetCellValue(ProductsSheet, cell, v); err != nil {
				return fmt.Errorf("failed to write cell %s: %w", cell, err)
			}
		}
	}

	return f.Write(w)
}

// TemplateXLSX writes an empty import workbook plus an instructions sheet
func TemplateXLSX(w io.Writer, template models.ImportTemplate) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", ProductsSheet); err != nil {
		return err
	}
	headerStyle, err := newHeaderStyle(f)
	if err != nil {
		return err
	}

	for i, col := range template.Columns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(ProductsSheet, cell, col.Name)
		f.SetCellStyle(ProductsSheet, cell, cell, headerStyle)
		colName, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(ProductsSheet, colName, colName, 20)
	}

	const instructions = "Instructions"
	f.NewSheet(instructions)
	f.SetCellValue(instructions, "A1", "Catalog Import Instructions")
	f.SetCellValue(instructions, "A3", "Every column is optional. Portuguese column names (nome, descricao, categoria, preco, imagem) are accepted too.")
	f.SetCellValue(instructions, "A5", "Column")
	f.SetCellValue(instructions, "B5", "Description")
	f.SetCellValue(instructions, "C5", "Aliases")
	f.SetCellValue(instructions, "D5", "Type")
	f.SetCellValue(instructions, "E5", "Example")
	for i, col := range template.Columns {
		row := i + 6
		f.SetCellValue(instructions, fmt.Sprintf("A%d", row), col.Name)
		f.SetCellValue(instructions, fmt.Sprintf("B%d", row), col.Description)
		f.SetCellValue(instructions, fmt.Sprintf("C%d", row), strings.Join(col.Aliases, ", "))
		f.SetCellValue(instructions, fmt.Sprintf("D%d", row), col.Type)
		f.SetCellValue(instructions, fmt.Sprintf("E%d", row), col.Example)
	}
	f.SetColWidth(instructions, "A", "A", 20)
	f.SetColWidth(instructions, "B", "B", 60)
	f.SetColWidth(instructions, "C", "C", 25)

	sheetIdx, _ := f.GetSheetIndex(ProductsSheet)
	f.SetActiveSheet(sheetIdx)

	return f.Write(w)
}

func newHeaderStyle(f *excelize.File) (int, error) {
	return f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})
}
