package dto

import (
	"strings"

	"github.com/jhoicas/bodega-app/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// Frontera de normalización: una función por recurso. Todo lo que sale de aquí
// tiene los tipos del dominio, sin variantes de forma del backend.

// NormalizeUser convierte el usuario del backend.
func NormalizeUser(r UserRecord) entity.User {
	return entity.User{
		ID:        r.ID,
		FirstName: strings.TrimSpace(r.FirstName),
		LastName:  strings.TrimSpace(r.LastName),
		Email:     strings.TrimSpace(r.Email),
		Role:      r.Role,
	}
}

// UserRecordFrom forma persistida y de respuesta de un usuario.
func UserRecordFrom(u entity.User) UserRecord {
	return UserRecord{ID: u.ID, FirstName: u.FirstName, LastName: u.LastName, Role: u.Role, Email: u.Email}
}

// NormalizeProduct convierte un dispositivo. Sin fecha, usa la del ObjectID.
func NormalizeProduct(r ProductRecord) entity.Product {
	created := r.CreatedAt.Time
	if created.IsZero() {
		created = idTime(r.ID)
	}
	return entity.Product{
		ID:          r.ID,
		Barcode:     r.Barcode,
		ModelCode:   string(r.ModelCode),
		Serial:      string(r.Serial),
		Name:        r.Name,
		Color:       r.Color,
		Capacity:    string(r.Capacity),
		Price:       r.Price.Decimal,
		Type:        r.Type,
		Category:    r.Category.First(),
		Status:      r.Status,
		Responsible: r.Responsible.First(),
		Location:    firstNonEmpty(r.Location, r.AltLocation),
		CreatedAt:   created,
	}
}

// ProductRecordFrom forma de respuesta de un dispositivo.
func ProductRecordFrom(p entity.Product) ProductRecord {
	return ProductRecord{
		ID:          p.ID,
		Barcode:     p.Barcode,
		ModelCode:   FlexString(p.ModelCode),
		Serial:      FlexString(p.Serial),
		Name:        p.Name,
		Color:       p.Color,
		Capacity:    FlexString(p.Capacity),
		Price:       FlexDecimal{p.Price},
		Type:        p.Type,
		Status:      p.Status,
		Category:    nameRef(p.Category),
		Responsible: nameRef(p.Responsible),
		Location:    p.Location,
		CreatedAt:   FlexTime{p.CreatedAt},
	}
}

// NormalizeProductLine convierte el resultado de una búsqueda por código en una línea escaneada.
func NormalizeProductLine(r ProductRecord) entity.ScannedProductLine {
	return entity.ScannedProductLine{
		Barcode:     r.Barcode,
		DisplayName: r.Name,
		Capacity:    string(r.Capacity),
		Color:       r.Color,
		Serial:      string(r.Serial),
	}
}

// NormalizeAccessory convierte un accesorio.
func NormalizeAccessory(r AccessoryRecord) entity.Accessory {
	created := r.CreatedAt.Time
	if created.IsZero() {
		created = idTime(r.ID)
	}
	return entity.Accessory{
		ID:           r.ID,
		Barcode:      r.Barcode,
		ModelCode:    string(r.ModelCode),
		Name:         r.Name,
		Price:        r.Price.Decimal,
		Availability: r.Availability,
		Category:     r.Category.First(),
		Responsible:  r.Responsible.First(),
		Location:     firstNonEmpty(r.Location, r.AltLocation),
		CreatedAt:    created,
	}
}

// AccessoryRecordFrom forma de respuesta de un accesorio.
func AccessoryRecordFrom(a entity.Accessory) AccessoryRecord {
	return AccessoryRecord{
		ID:           a.ID,
		Barcode:      a.Barcode,
		ModelCode:    FlexString(a.ModelCode),
		Name:         a.Name,
		Price:        FlexDecimal{a.Price},
		Availability: a.Availability,
		Category:     nameRef(a.Category),
		Responsible:  nameRef(a.Responsible),
		Location:     a.Location,
		CreatedAt:    FlexTime{a.CreatedAt},
	}
}

// NormalizeAccessoryLine convierte el resultado de una búsqueda por código en una línea escaneada.
func NormalizeAccessoryLine(r AccessoryRecord) entity.ScannedAccessoryLine {
	return entity.ScannedAccessoryLine{Barcode: r.Barcode, DisplayName: r.Name}
}

// NormalizeCategory convierte una categoría.
func NormalizeCategory(r CategoryRecord) entity.Category {
	return entity.Category{ID: r.ID, Name: strings.TrimSpace(r.Name), Description: r.Description}
}

// NormalizeAreas convierte y deduplica áreas conservando el orden; descarta vacías.
func NormalizeAreas(list AreaList) []entity.Area {
	seen := make(map[string]struct{}, len(list))
	out := make([]entity.Area, 0, len(list))
	for _, a := range list {
		if a.Name == "" {
			continue
		}
		if _, ok := seen[a.ID]; ok {
			continue
		}
		seen[a.ID] = struct{}{}
		out = append(out, entity.Area{Label: a.Name, Value: a.ID})
	}
	return out
}

// NormalizeMovement convierte un movimiento.
func NormalizeMovement(r MovementRecord) entity.Movement {
	m := entity.Movement{
		ID:              r.ID,
		Responsible:     append([]string(nil), r.Responsible...),
		SourceArea:      r.SourceArea,
		DestinationArea: r.DestinationArea,
		Note:            r.Note,
		Date:            r.Date.Time,
	}
	if m.Date.IsZero() {
		m.Date = idTime(r.ID)
	}
	for _, p := range r.Products {
		m.Products = append(m.Products, entity.MovementItem{Barcode: p.Barcode, Name: p.Name})
	}
	for _, a := range r.Accessories {
		m.Accessories = append(m.Accessories, entity.MovementItem{Barcode: a.Barcode, Name: a.Name})
	}
	return m
}

// MovementRecordFrom forma de respuesta de un movimiento.
func MovementRecordFrom(m entity.Movement) MovementRecord {
	r := MovementRecord{
		ID:              m.ID,
		Responsible:     NameRef(m.Responsible),
		SourceArea:      m.SourceArea,
		DestinationArea: m.DestinationArea,
		Note:            m.Note,
		Date:            FlexTime{m.Date},
		Products:        []MovementProductRef{},
		Accessories:     []MovementAccessoryRef{},
	}
	for _, p := range m.Products {
		r.Products = append(r.Products, MovementProductRef{Barcode: p.Barcode, Name: p.Name})
	}
	for _, a := range m.Accessories {
		r.Accessories = append(r.Accessories, MovementAccessoryRef{Barcode: a.Barcode, Name: a.Name})
	}
	return r
}

// MovementRequestFrom arma el cuerpo de registro desde el borrador: solo códigos de barras.
func MovementRequestFrom(d entity.MovementDraft) RegisterMovementRequest {
	req := RegisterMovementRequest{
		Products:        make([]MovementProductRef, 0, len(d.Products)),
		Accessories:     make([]MovementAccessoryRef, 0, len(d.Accessories)),
		DestinationArea: strings.TrimSpace(d.DestinationArea),
		Note:            strings.TrimSpace(d.Note),
	}
	for _, p := range d.Products {
		req.Products = append(req.Products, MovementProductRef{Barcode: p.Barcode})
	}
	for _, a := range d.Accessories {
		req.Accessories = append(req.Accessories, MovementAccessoryRef{Barcode: a.Barcode})
	}
	return req
}

// NormalizeStock convierte la respuesta de stockDisponible.
func NormalizeStock(r StockResponse) entity.StockSummary {
	var s entity.StockSummary
	for _, p := range r.Products {
		s.Products = append(s.Products, entity.ProductGroup{
			Type:      p.Type,
			ModelCode: string(p.ModelCode),
			Name:      p.Name,
			Color:     p.Color,
			Capacity:  string(p.Capacity),
			Quantity:  quantity(p.Quantity, p.Barcodes),
			Barcodes:  append([]string(nil), p.Barcodes...),
		})
	}
	for _, a := range r.Accessories {
		s.Accessories = append(s.Accessories, entity.AccessoryGroup{
			ModelCode: string(a.ModelCode),
			Name:      a.Name,
			Quantity:  quantity(a.Quantity, a.Barcodes),
			Barcodes:  append([]string(nil), a.Barcodes...),
		})
	}
	return s
}

// StockResponseFrom forma de respuesta de stockDisponible.
func StockResponseFrom(s entity.StockSummary) StockResponse {
	r := StockResponse{Products: []ProductGroupRecord{}, Accessories: []AccessoryGroupRecord{}}
	for _, p := range s.Products {
		r.Products = append(r.Products, ProductGroupRecord{
			Type: p.Type, ModelCode: FlexString(p.ModelCode), Name: p.Name, Color: p.Color,
			Capacity: FlexString(p.Capacity), Quantity: p.Quantity, Barcodes: p.Barcodes,
		})
	}
	for _, a := range s.Accessories {
		r.Accessories = append(r.Accessories, AccessoryGroupRecord{
			ModelCode: FlexString(a.ModelCode), Name: a.Name, Quantity: a.Quantity, Barcodes: a.Barcodes,
		})
	}
	return r
}

// NormalizeSale convierte una venta.
func NormalizeSale(r SaleRecord) entity.Sale {
	s := entity.Sale{
		ID:       r.ID,
		Seller:   r.Seller.First(),
		Customer: r.Customer.First(),
		Total:    r.Total.Decimal,
		Date:     r.Date.Time,
	}
	if s.Date.IsZero() {
		s.Date = idTime(r.ID)
	}
	for _, p := range r.Products {
		s.Items = append(s.Items, entity.MovementItem{Barcode: p.Barcode, Name: p.Name})
	}
	for _, a := range r.Accessories {
		s.Items = append(s.Items, entity.MovementItem{Barcode: a.Barcode, Name: a.Name})
	}
	return s
}

// SaleRecordFrom forma de respuesta de una venta. Los artículos salen como productos.
func SaleRecordFrom(s entity.Sale) SaleRecord {
	r := SaleRecord{
		ID:          s.ID,
		Seller:      nameRef(s.Seller),
		Customer:    nameRef(s.Customer),
		Total:       FlexDecimal{s.Total},
		Date:        FlexTime{s.Date},
		Products:    []MovementProductRef{},
		Accessories: []MovementAccessoryRef{},
	}
	for _, it := range s.Items {
		r.Products = append(r.Products, MovementProductRef{Barcode: it.Barcode, Name: it.Name})
	}
	return r
}

// PriceFrom precio para los cuerpos de alta.
func PriceFrom(d decimal.Decimal) FlexDecimal {
	return FlexDecimal{d}
}

func nameRef(s string) NameRef {
	if s == "" {
		return nil
	}
	return NameRef{s}
}

func quantity(n int, barcodes []string) int {
	if n == 0 {
		return len(barcodes)
	}
	return n
}
