// Package catalog reglas fijas de opciones del catálogo de bodega.
package catalog

import "strings"

var (
	macbookCapacities    = []string{"512GB y 16GB RAM", "512GB y 8GB RAM", "1TB y 32GB RAM"}
	appleWatchCapacities = []string{"32GB", "64GB"}
	defaultCapacities    = []string{"16GB", "32GB", "64GB", "128GB", "256GB", "512GB", "1TB"}

	deviceTypes = []string{"Nuevo", "Seminuevo", "Open Box"}
)

// Tipos de artículo que se pueden registrar.
const (
	KindDevices     = "dispositivos"
	KindAccessories = "accesorios"
)

// CapacityOptions capacidades válidas para una categoría. La comparación es exacta
// sin distinguir mayúsculas; cualquier otra categoría (o ninguna) usa la lista general.
func CapacityOptions(category string) []string {
	switch strings.ToLower(strings.TrimSpace(category)) {
	case "macbook":
		return clone(macbookCapacities)
	case "apple watch":
		return clone(appleWatchCapacities)
	default:
		return clone(defaultCapacities)
	}
}

// TypeOptions estados comerciales del dispositivo.
func TypeOptions() []string {
	return clone(deviceTypes)
}

// ItemKinds tipos de registro.
func ItemKinds() []string {
	return []string{KindDevices, KindAccessories}
}

// ValidCapacity indica si capacity es una opción de la categoría.
func ValidCapacity(category, capacity string) bool {
	for _, c := range CapacityOptions(category) {
		if c == capacity {
			return true
		}
	}
	return false
}

func clone(s []string) []string {
	return append([]string(nil), s...)
}
