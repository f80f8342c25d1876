package scanner_test

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/jhoicas/bodega-app/internal/infrastructure/scanner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLineScanner_IgnoraVaciasYTerminaEnEOF(t *testing.T) {
	s := scanner.NewLineScanner(strings.NewReader("\n  7701234567890 \n\nA1\n"))
	ctx := context.Background()

	code, err := s.Scan(ctx)
	require.NoError(t, err)
	assert.Equal(t, "7701234567890", code)

	code, err = s.Scan(ctx)
	require.NoError(t, err)
	assert.Equal(t, "A1", code)

	_, err = s.Scan(ctx)
	assert.ErrorIs(t, err, io.EOF)
	_, err = s.Scan(ctx)
	assert.ErrorIs(t, err, io.EOF)
}

func TestLineScanner_PalabraDeCierre(t *testing.T) {
	s := scanner.NewLineScanner(strings.NewReader("Salir\nP1\n"))
	_, err := s.Scan(context.Background())
	assert.ErrorIs(t, err, io.EOF)
}

func TestLineScanner_CancelacionDelContexto(t *testing.T) {
	r, w := io.Pipe()
	defer w.Close()
	s := scanner.NewLineScanner(r)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := s.Scan(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
