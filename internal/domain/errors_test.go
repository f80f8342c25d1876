package domain_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jhoicas/bodega-app/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestAPIError_UnwrapPermiteErrorsIs(t *testing.T) {
	err := fmt.Errorf("productos: %w", &domain.APIError{Status: 404, Msg: "Producto no encontrado", Kind: domain.ErrNotFound})

	assert.True(t, errors.Is(err, domain.ErrNotFound))
	assert.Equal(t, "productos: Producto no encontrado", err.Error())
}

func TestKindFromStatus(t *testing.T) {
	assert.Equal(t, domain.ErrForbidden, domain.KindFromStatus(http.StatusForbidden))
	assert.Equal(t, domain.ErrUnauthorized, domain.KindFromStatus(http.StatusUnauthorized))
	assert.Equal(t, domain.ErrInvalidInput, domain.KindFromStatus(http.StatusUnprocessableEntity))
	assert.Nil(t, domain.KindFromStatus(http.StatusInternalServerError))
}

func TestUserMessage_403UsaMensajeFijo(t *testing.T) {
	err := &domain.APIError{Status: 403, Msg: "Forbidden", Kind: domain.ErrForbidden}
	assert.Equal(t, domain.MsgForbidden, domain.UserMessage(err, "Error al cargar"))
}

func TestUserMessage_PrefiereMensajeDelServidor(t *testing.T) {
	err := &domain.APIError{Status: 400, Msg: "Código ya registrado", Kind: domain.ErrInvalidInput}
	assert.Equal(t, "Código ya registrado", domain.UserMessage(err, "Error al registrar"))
}

func TestUserMessage_ValidacionYFallback(t *testing.T) {
	assert.Equal(t, "Seleccione un área", domain.UserMessage(domain.NewValidationError("area", "Seleccione un área"), "x"))
	assert.Equal(t, "Error genérico", domain.UserMessage(errors.New("boom"), "Error genérico"))
	assert.Equal(t, "boom", domain.UserMessage(errors.New("boom"), ""))
	assert.Equal(t, domain.MsgSessionExp, domain.UserMessage(domain.ErrNoToken, "x"))
	assert.Empty(t, domain.UserMessage(nil, "x"))
}
