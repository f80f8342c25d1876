package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/jhoicas/bodega-app/internal/application/history"
	"github.com/jhoicas/bodega-app/internal/application/ports"
	"github.com/jhoicas/bodega-app/internal/application/service"
	"github.com/jhoicas/bodega-app/internal/domain"
	"github.com/jhoicas/bodega-app/internal/domain/entity"
)

// Mensajes de los comandos simples.
const (
	MsgWelcome     = "Bienvenido, %s"
	MsgLoggedOut   = "Sesión cerrada"
	MsgNoteSaved   = "Observación actualizada"
	MsgEmptyNote   = "Ingrese una observación"
	MsgEmptyStock  = "No hay stock disponible con esos filtros"
	MsgProfileFail = "Error al obtener el perfil"
)

func (a *App) login(ctx context.Context, args []string) error {
	fs := a.flags("login")
	email := fs.StringP("email", "e", "", "correo")
	password := fs.StringP("password", "p", "", "contraseña")
	if err := fs.Parse(args); err != nil {
		return err
	}
	var err error
	if *email == "" {
		if *email, err = a.prompt(ctx, "Correo"); err != nil {
			return errUsage
		}
	}
	if *password == "" {
		if *password, err = a.prompt(ctx, "Contraseña"); err != nil {
			return errUsage
		}
	}
	user, err := a.session.Login(ctx, *email, *password)
	if err != nil {
		return a.fail(err, service.MsgLoginError)
	}
	fmt.Fprintf(a.out, MsgWelcome+"\n", user.FullName())
	return nil
}

func (a *App) logout(ctx context.Context, _ []string) error {
	if err := a.session.Logout(ctx); err != nil {
		return a.fail(err, MsgLoggedOut)
	}
	fmt.Fprintln(a.out, MsgLoggedOut)
	return nil
}

// profile consulta el perfil en el servidor; el token persistido puede haber vencido.
func (a *App) profile(ctx context.Context, _ []string) error {
	u, err := a.auth.Profile(ctx)
	if err != nil {
		return a.fail(err, MsgProfileFail)
	}
	a.fields([]history.Field{
		{Label: "ID", Value: u.ID},
		{Label: "Nombre", Value: u.FullName()},
		{Label: "Correo", Value: u.Email},
		{Label: "Rol", Value: u.Role},
	})
	return nil
}

func (a *App) areas(ctx context.Context, _ []string) error {
	list, err := a.movements.ListAreas(ctx)
	if err != nil {
		return a.fail(err, service.MsgAreasError)
	}
	for i, ar := range list {
		fmt.Fprintf(a.out, "%d. %s\n", i+1, ar.Label)
	}
	return nil
}

func (a *App) search(ctx context.Context, args []string) error {
	fs := a.flags("buscar")
	accessory := fs.BoolP("accesorio", "a", false, "buscar un accesorio")
	if err := fs.Parse(args); err != nil {
		return err
	}
	code := strings.TrimSpace(strings.Join(fs.Args(), " "))
	if code == "" {
		a.alert(ports.TitleWarning, service.MsgEmptyCode)
		return errUsage
	}
	if *accessory {
		acc, err := a.accessories.FindByBarcode(ctx, code)
		if err != nil {
			return a.fail(err, service.MsgAccessorySearchErr)
		}
		a.fields(history.AccessoryDetail(*acc))
		return nil
	}
	p, err := a.products.FindByBarcode(ctx, code)
	if err != nil {
		return a.fail(err, service.MsgProductSearchError)
	}
	a.fields(history.ProductDetail(*p))
	return nil
}

func (a *App) stockCmd(ctx context.Context, args []string) error {
	fs := a.flags("stock")
	var f entity.StockFilter
	fs.StringVar(&f.Name, "nombre", "", "parte del nombre")
	fs.StringVar(&f.Capacity, "capacidad", "", "capacidad exacta")
	fs.StringVar(&f.Category, "categoria", "", "categoría exacta")
	if err := fs.Parse(args); err != nil {
		return err
	}
	s, err := a.stock.Available(ctx, f)
	if err != nil {
		return a.fail(err, service.MsgStockError)
	}
	if len(s.Products) == 0 && len(s.Accessories) == 0 {
		a.alert(ports.TitleWarning, MsgEmptyStock)
		return nil
	}
	if len(s.Products) > 0 {
		rows := make([][]string, 0, len(s.Products))
		for _, g := range s.Products {
			rows = append(rows, []string{g.Type, g.ModelCode, g.Name, g.Color, g.Capacity, strconv.Itoa(g.Quantity)})
		}
		a.table([]string{"Tipo", "Modelo", "Nombre", "Color", "Capacidad", "Cantidad"}, rows)
	}
	if len(s.Accessories) > 0 {
		if len(s.Products) > 0 {
			fmt.Fprintln(a.out)
		}
		rows := make([][]string, 0, len(s.Accessories))
		for _, g := range s.Accessories {
			rows = append(rows, []string{g.ModelCode, g.Name, strconv.Itoa(g.Quantity)})
		}
		a.table([]string{"Modelo", "Accesorio", "Cantidad"}, rows)
	}
	return nil
}

func (a *App) movementDetail(ctx context.Context, args []string) error {
	if len(args) != 1 || strings.TrimSpace(args[0]) == "" {
		return errUsage
	}
	m, err := a.movements.GetMovement(ctx, args[0])
	if err != nil {
		return a.fail(err, service.MsgMovementNotFound)
	}
	a.fields(history.MovementDetail(*m))
	return nil
}

func (a *App) note(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return errUsage
	}
	text := strings.TrimSpace(strings.Join(args[1:], " "))
	if text == "" {
		a.alert(ports.TitleWarning, MsgEmptyNote)
		return domain.NewValidationError("observacion", MsgEmptyNote)
	}
	if err := a.movements.UpdateMovementNote(ctx, args[0], text); err != nil {
		return a.fail(err, service.MsgUpdateNoteError)
	}
	a.alert(ports.TitleSuccess, MsgNoteSaved)
	return nil
}

// ── Salida ───────────────────────────────────────────────────────────────────

func (a *App) fields(fields []history.Field) {
	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	for _, f := range fields {
		value := strings.ReplaceAll(f.Value, "\n", ", ")
		fmt.Fprintf(w, "%s:\t%s\n", f.Label, value)
	}
	_ = w.Flush()
}

func (a *App) table(columns []string, rows [][]string) {
	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, strings.Join(columns, "\t"))
	for _, r := range rows {
		cells := make([]string, len(r))
		for i, c := range r {
			cells[i] = strings.ReplaceAll(c, "\n", ", ")
		}
		fmt.Fprintln(w, strings.Join(cells, "\t"))
	}
	_ = w.Flush()
}
