package entity

import "time"

// User representa un usuario del sistema identificado por su número de empleado.
type User struct {
	ID           string
	EmployeeID   string
	Name         string
	Unit         string
	GroupName    string
	IsAdmin      bool
	Email        string
	PasswordHash string // bcrypt, nunca plano después de persistir
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Operator es la identidad explícita que viaja en cada llamada al núcleo.
// Sustituye la lectura del token desde estado ambiente: el caller la construye
// una vez (middleware de auth) y la pasa por valor.
type Operator struct {
	ID         string
	EmployeeID string
	Name       string
	IsAdmin    bool
}
