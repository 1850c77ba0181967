package dto

// ErrorResponse respuesta uniforme de error de la API.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
