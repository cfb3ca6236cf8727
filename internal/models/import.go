package models

// ImportFormat represents the file format for import and export
type ImportFormat string

const (
	ImportFormatJSON ImportFormat = "json"
	ImportFormatCSV  ImportFormat = "csv"
	ImportFormatXLSX ImportFormat = "xlsx"
)

// ImportTemplateColumn defines a column in the import template
type ImportTemplateColumn struct {
	Name        string   `json:"name"`
	Aliases     []string `json:"aliases"`
	Description string   `json:"description"`
	Type        string   `json:"type"` // string, number
	Example     string   `json:"example"`
}

// ImportTemplate defines the structure of an import template
type ImportTemplate struct {
	Entity     string                 `json:"entity"`
	Version    string                 `json:"version"`
	Columns    []ImportTemplateColumn `json:"columns"`
	SampleData []map[string]string    `json:"sampleData,omitempty"`
}

// ProductImportColumns returns the column definitions for catalog import.
// Every column is optional: missing values fall back to the catalog defaults.
func ProductImportColumns() []ImportTemplateColumn {
	return []ImportTemplateColumn{
		{Name: "id", Aliases: []string{"ID", "_id"}, Description: "Product identifier; its first digit run numbers the product code", Type: "string", Example: "1"},
		{Name: "name", Aliases: []string{"nome", "title"}, Description: "Product name", Type: "string", Example: "Caneca de Porcelana 325ml"},
		{Name: "description", Aliases: []string{"descricao", "desc"}, Description: "Product description", Type: "string", Example: "Personalize com fotos, nomes ou frases."},
		{Name: "category", Aliases: []string{"categoria"}, Description: "Category label (default: " + DefaultCategory + ")", Type: "string", Example: "Sublimação"},
		{Name: "price", Aliases: []string{"preco", "valor"}, Description: "Unit price, dot as decimal separator", Type: "number", Example: "35.9"},
		{Name: "image", Aliases: []string{"imagem", "photo"}, Description: "Image URL", Type: "string", Example: ""},
	}
}

// ProductImportTemplate returns the template definition for products
func ProductImportTemplate() ImportTemplate {
	return ImportTemplate{
		Entity:  "products",
		Version: "1.0",
		Columns: ProductImportColumns(),
		SampleData: []map[string]string{
			{"id": "1", "name": "Caneca de Porcelana 325ml", "description": "Personalize com fotos, nomes ou frases.", "category": "Sublimação", "price": "35.9", "image": ""},
		},
	}
}
