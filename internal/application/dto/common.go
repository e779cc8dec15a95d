package dto

// ErrorResponse cuerpo de error HTTP. El campo message mantiene compatibilidad
// con el cliente GUI existente; code es para consumo programático.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// MessageResponse cuerpo de confirmación para operaciones sin entidad de salida.
type MessageResponse struct {
	Message string `json:"message"`
}
