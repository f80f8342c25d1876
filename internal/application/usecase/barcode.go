package usecase

import (
	"fmt"
	"math/rand/v2"
)

// barcodePrefix prefijo GS1 de Colombia.
const barcodePrefix = "770"

// NewBarcode genera un EAN-13 aleatorio con prefijo 770.
func NewBarcode() string {
	return Barcode(rand.IntN(1_000_000_000))
}

// Barcode EAN-13 con prefijo 770, los últimos nueve dígitos de n y el dígito de control.
func Barcode(n int) string {
	body := fmt.Sprintf("%s%09d", barcodePrefix, n%1_000_000_000)
	return body + string(rune('0'+ean13Check(body)))
}

// ean13Check dígito de control de los primeros 12 dígitos.
func ean13Check(body string) int {
	sum := 0
	for i, r := range body {
		d := int(r - '0')
		if i%2 == 1 {
			d *= 3
		}
		sum += d
	}
	return (10 - sum%10) % 10
}

// uniqueBarcode pide códigos hasta encontrar uno libre.
func uniqueBarcode(taken func(code string) (bool, error)) (string, error) {
	for range 8 {
		code := NewBarcode()
		exists, err := taken(code)
		if err != nil {
			return "", err
		}
		if !exists {
			return code, nil
		}
	}
	return "", fmt.Errorf("no se pudo generar un código de barras libre")
}
