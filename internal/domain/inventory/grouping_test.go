package inventory_test

import (
	"testing"
	"time"

	"github.com/jhoicas/bodega-app/internal/domain/entity"
	"github.com/jhoicas/bodega-app/internal/domain/inventory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupProducts_AgrupaPorAtributos(t *testing.T) {
	d1 := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	d2 := d1.AddDate(0, 0, 5)
	products := []*entity.Product{
		{Barcode: "A1", Type: "Nuevo", ModelCode: "MX", Name: "iPhone 15", Color: "Negro", Capacity: "128GB", CreatedAt: d1},
		{Barcode: "B1", Type: "Nuevo", ModelCode: "AW", Name: "Apple Watch", Color: "Blanco", Capacity: "32GB", CreatedAt: d1},
		{Barcode: "A2", Type: "Nuevo", ModelCode: "MX", Name: "iPhone 15", Color: "Negro", Capacity: "128GB", CreatedAt: d2},
	}

	groups := inventory.GroupProducts(products)

	require.Len(t, groups, 2)
	assert.Equal(t, "Apple Watch", groups[0].Name)
	assert.Equal(t, "iPhone 15", groups[1].Name)
	assert.Equal(t, 2, groups[1].Quantity)
	assert.Equal(t, []string{"A1", "A2"}, groups[1].Barcodes)
	assert.Equal(t, d2, groups[1].Date)
}

func TestGroupAccessories_AgrupaPorModelo(t *testing.T) {
	groups := inventory.GroupAccessories([]*entity.Accessory{
		{Barcode: "C1", ModelCode: "USB-C", Name: "Cable"},
		{Barcode: "C2", ModelCode: "USB-C", Name: "Cable"},
	})

	require.Len(t, groups, 1)
	assert.Equal(t, 2, groups[0].Quantity)
}
