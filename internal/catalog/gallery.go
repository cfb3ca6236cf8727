package catalog

import (
	"fmt"

	"catalog-service/internal/models"
)

// Navigate locates code inside an ordered result list and returns the
// lightbox position with wrap-around neighbours. ok is false when the code is
// not in the list.
func Navigate(products []models.Product, code string) (pos models.GalleryPosition, ok bool) {
	idx := -1
	for i, p := range products {
		if p.Code == code {
			idx = i
			break
		}
	}
	if idx < 0 {
		return models.GalleryPosition{}, false
	}

	n := len(products)
	prev := products[(idx-1+n)%n]
	next := products[(idx+1)%n]
	return models.GalleryPosition{
		Product:  products[idx],
		Position: idx + 1,
		Total:    n,
		Previous: prev.Code,
		Next:     next.Code,
		Label:    fmt.Sprintf("Imagem %d de %d", idx+1, n),
	}, true
}
