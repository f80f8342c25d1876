// Package scanner lee códigos de barras como líneas de texto: lectores USB en modo
// teclado o digitación manual.
package scanner

import (
	"bufio"
	"context"
	"io"
	"strings"
)

// Palabras que cierran el escáner sin leer un código.
var closeWords = map[string]struct{}{"q": {}, "salir": {}, "cancelar": {}}

type line struct {
	text string
	err  error
}

// LineScanner un código por línea. Las líneas vacías se ignoran; fin de entrada
// o una palabra de cierre devuelven io.EOF.
type LineScanner struct {
	lines chan line
}

// NewLineScanner empieza a leer r en segundo plano hasta su fin.
func NewLineScanner(r io.Reader) *LineScanner {
	s := &LineScanner{lines: make(chan line)}
	go s.pump(r)
	return s
}

func (s *LineScanner) pump(r io.Reader) {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		s.lines <- line{text: sc.Text()}
	}
	if err := sc.Err(); err != nil {
		s.lines <- line{err: err}
	}
	close(s.lines)
}

// Scan espera el siguiente código o la cancelación de ctx.
func (s *LineScanner) Scan(ctx context.Context) (string, error) {
	for {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case l, ok := <-s.lines:
			if !ok {
				return "", io.EOF
			}
			if l.err != nil {
				return "", l.err
			}
			code := strings.TrimSpace(l.text)
			if code == "" {
				continue
			}
			if _, ok := closeWords[strings.ToLower(code)]; ok {
				return "", io.EOF
			}
			return code, nil
		}
	}
}
