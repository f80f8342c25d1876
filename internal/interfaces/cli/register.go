package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jhoicas/bodega-app/internal/application/forms"
	"github.com/jhoicas/bodega-app/internal/application/ports"
	"github.com/jhoicas/bodega-app/internal/domain/catalog"
	"github.com/jhoicas/bodega-app/internal/domain/entity"
)

func (a *App) register(ctx context.Context, args []string) error {
	var kind string
	if len(args) > 0 {
		kind, args = args[0], args[1:]
	}
	if alias, ok := kindAliases[strings.ToLower(kind)]; ok {
		kind = alias
	}
	// sin tipo se elige de la lista
	if err := a.choose(ctx, forms.NewItemKindSelector(), &kind); err != nil {
		return errUsage
	}
	reg := forms.NewRegistration(a.products, a.accessories, a.notify, a.log)
	if kind == catalog.KindAccessories {
		return a.registerAccessory(ctx, reg, args)
	}
	return a.registerProduct(ctx, reg, args)
}

// kindAliases nombres aceptados en la línea de comandos para cada tipo de registro.
var kindAliases = map[string]string{
	string(entity.KindProduct):   catalog.KindDevices,
	"dispositivo":                catalog.KindDevices,
	string(entity.KindAccessory): catalog.KindAccessories,
}

func (a *App) registerProduct(ctx context.Context, reg *forms.Registration, args []string) error {
	fs := a.flags("registrar producto")
	var f forms.ProductForm
	fs.StringVar(&f.ModelCode, "modelo", "", "código de modelo")
	fs.StringVar(&f.Serial, "serial", "", "código serial")
	fs.StringVar(&f.Name, "nombre", "", "nombre del equipo")
	fs.StringVar(&f.Color, "color", "", "color")
	fs.StringVar(&f.Category, "categoria", "", "categoría")
	fs.StringVar(&f.Capacity, "capacidad", "", "capacidad")
	fs.StringVar(&f.Type, "tipo", "", "tipo de dispositivo")
	fs.StringVar(&f.Price, "precio", "", "precio, p. ej. 4.500.000")
	if err := fs.Parse(args); err != nil {
		return err
	}

	categories := forms.NewCategorySelector(a.categories, a.notify, a.log)
	if err := categories.Load(ctx); err != nil {
		return err
	}
	if err := a.choose(ctx, categories.Dropdown, &f.Category); err != nil {
		return err
	}
	if err := a.choose(ctx, forms.NewCapacitySelector(f.Category), &f.Capacity); err != nil {
		return err
	}
	if err := a.choose(ctx, forms.NewTypeSelector(), &f.Type); err != nil {
		return err
	}
	for _, field := range []struct {
		label string
		dst   *string
	}{
		{"Código de modelo", &f.ModelCode},
		{"Serial", &f.Serial},
		{"Nombre", &f.Name},
		{"Color", &f.Color},
		{"Precio", &f.Price},
	} {
		if err := a.ask(ctx, field.label, field.dst); err != nil {
			return err
		}
	}

	code, err := reg.RegisterProduct(ctx, f)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Código de barras: %s\n", code)
	return nil
}

func (a *App) registerAccessory(ctx context.Context, reg *forms.Registration, args []string) error {
	fs := a.flags("registrar accesorio")
	var f forms.AccessoryForm
	fs.StringVar(&f.UniqueCode, "codigo", "", "código único; vacío = lo genera el servidor")
	fs.StringVar(&f.ModelCode, "modelo", "", "código de modelo")
	fs.StringVar(&f.Name, "nombre", "", "nombre del accesorio")
	fs.StringVar(&f.Price, "precio", "", "precio, p. ej. 120.000")
	if err := fs.Parse(args); err != nil {
		return err
	}
	for _, field := range []struct {
		label string
		dst   *string
	}{
		{"Código de modelo", &f.ModelCode},
		{"Nombre", &f.Name},
		{"Precio", &f.Price},
	} {
		if err := a.ask(ctx, field.label, field.dst); err != nil {
			return err
		}
	}

	code, err := reg.RegisterAccessory(ctx, f)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Código de barras: %s\n", code)
	return nil
}

// ask pide el valor solo si el flag vino vacío.
func (a *App) ask(ctx context.Context, label string, dst *string) error {
	if strings.TrimSpace(*dst) != "" {
		return nil
	}
	v, err := a.prompt(ctx, label)
	if errors.Is(err, io.EOF) {
		return errUsage
	}
	if err != nil {
		return err
	}
	*dst = v
	return nil
}

// choose valida dst contra las opciones del selector; sin valor muestra la lista
// y acepta el número o el texto de la opción.
func (a *App) choose(ctx context.Context, d *forms.Dropdown, dst *string) error {
	opts := d.Options()
	if strings.TrimSpace(*dst) == "" {
		for i, o := range opts {
			fmt.Fprintf(a.out, "%d. %s\n", i+1, o.Label)
		}
		v, err := a.prompt(ctx, d.Label)
		if errors.Is(err, io.EOF) {
			return errUsage
		}
		if err != nil {
			return err
		}
		*dst = optionValue(opts, v)
	}
	if err := d.Select(*dst); err != nil {
		a.alert(ports.TitleError, err.Error())
		return err
	}
	*dst = d.Value()
	return nil
}

// optionValue una opción con ese texto tiene prioridad sobre el número de la lista.
func optionValue(opts []forms.Option, input string) string {
	for _, o := range opts {
		if o.Value == input || strings.EqualFold(o.Label, input) {
			return o.Value
		}
	}
	if n, err := strconv.Atoi(input); err == nil && n >= 1 && n <= len(opts) {
		return opts[n-1].Value
	}
	return input
}
