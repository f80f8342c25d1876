package barcode_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jhoicas/bodega-app/internal/infrastructure/barcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

func TestLocalSource_GeneraPNG(t *testing.T) {
	img, err := barcode.NewLocalSource().Image(context.Background(), "7701234567890")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(img, pngMagic))

	_, err = barcode.NewLocalSource().Image(context.Background(), " ")
	assert.Error(t, err)
}

func TestRemoteSource_ParametrosDelServicio(t *testing.T) {
	var rawQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rawQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(append(pngMagic, 0x00))
	}))
	defer srv.Close()

	img, err := barcode.NewRemoteSource(srv.URL, time.Second).Image(context.Background(), "P 1")

	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(img, pngMagic))
	assert.Contains(t, rawQuery, "bcid=code128")
	assert.Contains(t, rawQuery, "text=P+1")
	assert.Contains(t, rawQuery, "scale=2")
	assert.Contains(t, rawQuery, "includetext")
}

func TestFallbackSource_UsaLocalSiElServicioFalla(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	src := barcode.New(srv.URL, time.Second, nil)
	img, err := src.Image(context.Background(), "A1")

	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(img, pngMagic))
}
