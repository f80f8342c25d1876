// Package cli cliente de terminal para el personal de bodega. Cada comando usa las
// fachadas y controladores de la capa de aplicación; las alertas salen por stderr.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/jhoicas/bodega-app/internal/application/ports"
	"github.com/jhoicas/bodega-app/internal/application/service"
	"github.com/jhoicas/bodega-app/internal/application/session"
	"github.com/jhoicas/bodega-app/internal/domain"
	"github.com/jhoicas/bodega-app/internal/infrastructure/gateway"
	"github.com/jhoicas/bodega-app/internal/infrastructure/scanner"
	"github.com/jhoicas/bodega-app/pkg/config"
	"github.com/jhoicas/bodega-app/pkg/logger"
	"github.com/spf13/pflag"
)

// Códigos de salida.
const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
)

// MsgLoginRequired alerta cuando un comando necesita sesión.
const MsgLoginRequired = "Inicie sesión con: bodega login"

// Deps dependencias del cliente.
type Deps struct {
	Config *config.Config
	Store  ports.KeyValueStore
	Log    *logger.Logger
	In     io.Reader
	Out    io.Writer
	Err    io.Writer
	// Exporter opcional; nil = se arma desde la configuración al primer uso.
	Exporter Exporter
}

type command struct {
	name  string
	usage string
	auth  bool
	run   func(ctx context.Context, args []string) error
}

// App cliente de terminal.
type App struct {
	cfg    *config.Config
	log    *logger.Logger // raíz; cada componente se nombra a sí mismo
	out    io.Writer
	errOut io.Writer
	lines  *scanner.LineScanner
	notify ports.Notifier

	exporter Exporter
	closers  []io.Closer

	auth        *service.AuthService
	session     *session.Store
	movements   *service.MovementService
	products    *service.ProductService
	accessories *service.AccessoryService
	categories  *service.CategoryService
	stock       *service.StockService
	reports     *service.ReportService
	sales       *service.SaleService

	commands map[string]command
}

// New arma el cliente sobre el backend configurado.
func New(d Deps) *App {
	if d.Log == nil {
		d.Log = logger.Nop()
	}
	gw := gateway.New(d.Config.API.BaseURL, d.Config.API.Timeout, d.Store, d.Log)

	a := &App{
		cfg:         d.Config,
		log:         d.Log,
		out:         d.Out,
		errOut:      d.Err,
		lines:       scanner.NewLineScanner(d.In),
		exporter:    d.Exporter,
		auth:        service.NewAuthService(gw, d.Store, d.Log),
		movements:   service.NewMovementService(gw),
		products:    service.NewProductService(gw),
		accessories: service.NewAccessoryService(gw),
		categories:  service.NewCategoryService(gw),
		stock:       service.NewStockService(gw),
		reports:     service.NewReportService(gw),
		sales:       service.NewSaleService(gw),
	}
	a.notify = ports.NotifierFunc(a.alert)
	a.session = session.New(a.auth, d.Log)

	a.commands = map[string]command{}
	for _, c := range []command{
		{"login", "login [-e email] [-p password]", false, a.login},
		{"logout", "logout", false, a.logout},
		{"perfil", "perfil", true, a.profile},
		{"areas", "areas", true, a.areas},
		{"buscar", "buscar [-a] <codigo>", true, a.search},
		{"stock", "stock [--nombre N] [--capacidad C] [--categoria K]", true, a.stockCmd},
		{"mover", "mover", true, a.move},
		{"historial", "historial movimientos|productos|accesorios|ventas [--desde F] [--hasta F] [--nombre N] [--pdf archivo] [--barcodes]", true, a.history},
		{"movimiento", "movimiento <id>", true, a.movementDetail},
		{"registrar", "registrar [producto|accesorio] [flags]", true, a.register},
		{"observacion", "observacion <id> <texto>", true, a.note},
	} {
		a.commands[c.name] = c
	}
	return a
}

// Run ejecuta args[0] con el resto como argumentos y devuelve el código de salida.
func (a *App) Run(ctx context.Context, args []string) int {
	defer a.session.Close()
	if len(args) == 0 || args[0] == "-h" || args[0] == "--help" || args[0] == "ayuda" {
		a.usage()
		return ExitUsage
	}
	cmd, ok := a.commands[args[0]]
	if !ok {
		fmt.Fprintf(a.errOut, "comando desconocido: %s\n", args[0])
		a.usage()
		return ExitUsage
	}

	if err := a.session.Init(ctx); err != nil {
		a.alert(ports.TitleError, domain.UserMessage(err, MsgLoginRequired))
		return ExitError
	}
	if cmd.auth {
		if _, err := a.session.RequireUser(); err != nil {
			a.alert(ports.TitleWarning, MsgLoginRequired)
			return ExitError
		}
	}

	err := cmd.run(ctx, args[1:])
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, pflag.ErrHelp):
		return ExitOK
	case errors.Is(err, errUsage):
		fmt.Fprintf(a.errOut, "uso: bodega %s\n", cmd.usage)
		return ExitUsage
	default:
		a.log.Named("cli").Debug().Err(err).Str("command", cmd.name).Msg("comando fallido")
		return ExitError
	}
}

var errUsage = errors.New("uso incorrecto")

func (a *App) usage() {
	names := make([]string, 0, len(a.commands))
	for n := range a.commands {
		names = append(names, n)
	}
	sort.Strings(names)
	fmt.Fprintln(a.errOut, "uso: bodega <comando> [argumentos]")
	for _, n := range names {
		fmt.Fprintf(a.errOut, "  %s\n", a.commands[n].usage)
	}
}

// alert implementación de terminal del diálogo de alerta.
func (a *App) alert(title, message string) {
	fmt.Fprintf(a.errOut, "%s: %s\n", title, message)
}

// fail alerta el mensaje de usuario de err y lo devuelve.
func (a *App) fail(err error, fallback string) error {
	a.alert(ports.TitleError, domain.UserMessage(err, fallback))
	return err
}

func (a *App) flags(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(a.errOut)
	fs.SortFlags = false
	return fs
}

// prompt escribe la etiqueta y lee una línea. io.EOF si el usuario cancela.
func (a *App) prompt(ctx context.Context, label string) (string, error) {
	fmt.Fprintf(a.out, "%s: ", label)
	line, err := a.lines.Scan(ctx)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
