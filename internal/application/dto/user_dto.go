package dto

// LoginRequest credenciales de POST /gt/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UserRecord usuario tal como lo envía el backend y como se persiste bajo la clave "user".
type UserRecord struct {
	ID        string `json:"_id,omitempty"`
	FirstName string `json:"nombre"`
	LastName  string `json:"apellido"`
	Role      string `json:"rol"`
	Email     string `json:"email"`
}

// LoginResponse respuesta de login: token más los datos del usuario al mismo nivel.
type LoginResponse struct {
	Token string `json:"token"`
	UserRecord
}
