// Package share entrega los PDF exportados: carpeta local o bucket compatible con S3.
package share

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jhoicas/bodega-app/pkg/logger"
)

// DirSharer escribe el archivo en una carpeta y devuelve su ruta absoluta.
type DirSharer struct {
	dir string
	log *logger.Logger
}

func NewDirSharer(dir string, log *logger.Logger) *DirSharer {
	if log == nil {
		log = logger.Nop()
	}
	return &DirSharer{dir: dir, log: log.Named("share")}
}

func (s *DirSharer) Share(ctx context.Context, fileName string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("share: crear carpeta %s: %w", s.dir, err)
	}
	path := filepath.Join(s.dir, filepath.Base(fileName))
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return "", fmt.Errorf("share: escribir %s: %w", path, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return "", fmt.Errorf("share: mover %s: %w", path, err)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	s.log.Debug().Str("path", abs).Int("bytes", len(data)).Msg("archivo guardado")
	return abs, nil
}
