package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jhoicas/bodega-app/internal/application/movement"
	"github.com/jhoicas/bodega-app/internal/application/ports"
	"github.com/jhoicas/bodega-app/internal/domain/entity"
)

const moveHelp = `Comandos:
  p                escanear un producto
  a                escanear un accesorio
  area <n|nombre>  área de llegada
  obs <texto>      observación
  quitar p|a <n>   quitar una línea
  ver              mostrar el borrador
  enviar           registrar el movimiento
  salir            descartar y salir
En el escáner, "q" cierra sin agregar.`

// move borrador interactivo: los códigos se leen de la misma entrada que los comandos.
func (a *App) move(ctx context.Context, _ []string) error {
	wf := movement.NewWorkflow(a.movements, a.notify, a.log)
	areas, err := wf.LoadAreas(ctx)
	if err != nil {
		return err
	}
	for i, ar := range areas {
		fmt.Fprintf(a.out, "%d. %s\n", i+1, ar.Label)
	}
	fmt.Fprintln(a.out, moveHelp)

	for {
		line, err := a.prompt(ctx, "mover")
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		cmd, rest, _ := strings.Cut(line, " ")
		rest = strings.TrimSpace(rest)

		switch strings.ToLower(cmd) {
		case "p", "a":
			kind := entity.KindProduct
			if strings.EqualFold(cmd, "a") {
				kind = entity.KindAccessory
			}
			fmt.Fprintln(a.out, "Escanee el código:")
			if err := wf.RunScan(ctx, kind, a.lines); err != nil {
				return err
			}
			a.printDraft(wf.Draft())
		case "area":
			if err := wf.SetDestinationArea(resolveArea(areas, rest)); err != nil {
				a.alert(ports.TitleError, err.Error())
			}
		case "obs":
			if err := wf.SetNote(rest); err != nil {
				a.alert(ports.TitleError, err.Error())
			}
		case "quitar":
			a.removeLine(wf, rest)
		case "ver":
			a.printDraft(wf.Draft())
		case "enviar":
			mov, err := wf.Submit(ctx)
			if err != nil {
				// el borrador se conserva; la alerta ya se mostró
				continue
			}
			if mov != nil && mov.ID != "" {
				fmt.Fprintf(a.out, "Movimiento %s\n", mov.ID)
			}
			return nil
		case "salir":
			return nil
		case "ayuda", "?":
			fmt.Fprintln(a.out, moveHelp)
		default:
			a.alert(ports.TitleWarning, "Comando no reconocido: "+cmd)
		}
	}
}

// resolveArea acepta el número de la lista o el nombre tal cual.
func resolveArea(areas []entity.Area, input string) string {
	if n, err := strconv.Atoi(input); err == nil && n >= 1 && n <= len(areas) {
		return areas[n-1].Value
	}
	for _, ar := range areas {
		if strings.EqualFold(ar.Label, input) {
			return ar.Value
		}
	}
	return input
}

func (a *App) removeLine(wf *movement.Workflow, args string) {
	kindArg, idxArg, _ := strings.Cut(args, " ")
	idx, err := strconv.Atoi(strings.TrimSpace(idxArg))
	var kind entity.ItemKind
	switch strings.ToLower(kindArg) {
	case "p":
		kind = entity.KindProduct
	case "a":
		kind = entity.KindAccessory
	default:
		err = errUsage
	}
	if err != nil {
		a.alert(ports.TitleWarning, "uso: quitar p|a <n>")
		return
	}
	if err := wf.RemoveLine(kind, idx-1); err != nil {
		a.alert(ports.TitleError, err.Error())
		return
	}
	a.printDraft(wf.Draft())
}

func (a *App) printDraft(d entity.MovementDraft) {
	fmt.Fprintf(a.out, "Productos (%d):\n", len(d.Products))
	for i, p := range d.Products {
		fmt.Fprintf(a.out, "  %d. %s %s %s [%s]\n", i+1, p.DisplayName, p.Capacity, p.Color, p.Barcode)
	}
	fmt.Fprintf(a.out, "Accesorios (%d):\n", len(d.Accessories))
	for i, acc := range d.Accessories {
		fmt.Fprintf(a.out, "  %d. %s [%s]\n", i+1, acc.DisplayName, acc.Barcode)
	}
	fmt.Fprintf(a.out, "Área de llegada: %s\nObservación: %s\n", d.DestinationArea, d.Note)
}
