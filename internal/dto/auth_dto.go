package dto

type LoginRequest struct {
	Username string `json:"username" validate:"required,min=3"`
	Password string `json:"password" validate:"required,min=6"`
}

type LoginResponse struct {
	Token     string `json:"token"`
	ExpiresIn int    `json:"expires_in"`
	Usuario   string `json:"usuario"`
	Nombre    string `json:"nombre"`
	Rol       string `json:"rol"`
}

type CrearUsuarioRequest struct {
	Username string `json:"username" validate:"required,min=3,max=40"`
	Password string `json:"password" validate:"required,min=6"`
	Nombre   string `json:"nombre"   validate:"required,min=3"`
	Rol      string `json:"rol"      validate:"required,oneof=admin mecanico"`
}
