package dto

import "encoding/json"

// MessageResponse cuerpo de error y de confirmación del backend: {msg}.
type MessageResponse struct {
	Msg string `json:"msg"`
}

// errorBody variantes de mensaje de error que se han visto en el backend.
type errorBody struct {
	Msg     string `json:"msg"`
	Mensaje string `json:"mensaje"`
	Message string `json:"message"`
	Error   string `json:"error"`
}

// ErrorMessage extrae el mensaje de un cuerpo de error; "" si no hay ninguno.
func ErrorMessage(body []byte) string {
	var b errorBody
	if err := json.Unmarshal(body, &b); err != nil {
		return ""
	}
	return firstNonEmpty(b.Msg, b.Mensaje, b.Message, b.Error)
}
