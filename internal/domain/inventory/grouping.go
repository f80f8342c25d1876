package inventory

import (
	"sort"
	"strings"

	"github.com/jhoicas/bodega-app/internal/domain/entity"
)

// GroupProducts agrupa dispositivos por tipo, modelo, nombre, color y capacidad.
// Cada grupo conserva los códigos de barras de sus unidades y la fecha más reciente.
func GroupProducts(products []*entity.Product) []entity.ProductGroup {
	index := map[string]int{}
	var out []entity.ProductGroup
	for _, p := range products {
		key := strings.Join([]string{p.Type, p.ModelCode, p.Name, p.Color, p.Capacity}, "\x00")
		i, ok := index[key]
		if !ok {
			i = len(out)
			index[key] = i
			out = append(out, entity.ProductGroup{
				Type: p.Type, ModelCode: p.ModelCode, Name: p.Name, Color: p.Color, Capacity: p.Capacity,
			})
		}
		g := &out[i]
		g.Quantity++
		g.Barcodes = append(g.Barcodes, p.Barcode)
		if p.CreatedAt.After(g.Date) {
			g.Date = p.CreatedAt
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return lessName(out[i].Name, out[j].Name) })
	return out
}

// GroupAccessories agrupa accesorios por modelo y nombre.
func GroupAccessories(accessories []*entity.Accessory) []entity.AccessoryGroup {
	index := map[string]int{}
	var out []entity.AccessoryGroup
	for _, a := range accessories {
		key := a.ModelCode + "\x00" + a.Name
		i, ok := index[key]
		if !ok {
			i = len(out)
			index[key] = i
			out = append(out, entity.AccessoryGroup{ModelCode: a.ModelCode, Name: a.Name})
		}
		g := &out[i]
		g.Quantity++
		g.Barcodes = append(g.Barcodes, a.Barcode)
		if a.CreatedAt.After(g.Date) {
			g.Date = a.CreatedAt
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return lessName(out[i].Name, out[j].Name) })
	return out
}

func lessName(a, b string) bool {
	return strings.ToLower(a) < strings.ToLower(b)
}
