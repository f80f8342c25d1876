package ports

// Títulos de alerta.
const (
	TitleError   = "Error"
	TitleWarning = "Aviso"
	TitleSuccess = "Éxito"
)

// Notifier muestra una alerta modal al usuario.
type Notifier interface {
	Alert(title, message string)
}

// NotifierFunc adapta una función a Notifier.
type NotifierFunc func(title, message string)

func (f NotifierFunc) Alert(title, message string) { f(title, message) }
