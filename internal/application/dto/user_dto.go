package dto

// LoginRequest credenciales: número de empleado o email.
type LoginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

// OperatorResponse identidad pública del operador autenticado.
type OperatorResponse struct {
	ID         string `json:"id"`
	EmployeeID string `json:"employee_id"`
	Name       string `json:"name"`
	GroupName  string `json:"group_name,omitempty"`
	IsAdmin    bool   `json:"is_admin"`
}

// LoginResponse token JWT más el operador.
type LoginResponse struct {
	Token string           `json:"token"`
	User  OperatorResponse `json:"user"`
}
