package catalog

import "catalog-service/internal/models"

// SourceDefaults names the embedded collection as a load source
const SourceDefaults = "defaults"

// DefaultProducts returns the embedded collection used when no other source
// has products. The result is normalized and coded.
func DefaultProducts() []models.Product {
	raw := []any{
		map[string]any{"id": 1, "name": "Caneca de Porcelana 325ml", "category": "Sublimação", "price": 35.9, "description": "Personalize com fotos, nomes ou frases.", "image": ""},
		map[string]any{"id": 2, "name": "Camiseta Poliéster", "category": "Sublimação", "price": 49.9, "description": "Estampa de alta definição.", "image": ""},
		map[string]any{"id": 3, "name": "Chaveiro Acrílico", "category": "Personalizados", "price": 15.0, "description": "Chaveiros exclusivos.", "image": ""},
		map[string]any{"id": 4, "name": "Convite Digital Casamento", "category": "Convites Digitais", "price": 49.9, "description": "Layout elegante.", "image": ""},
	}
	return AssignCodes(Normalize(raw))
}
