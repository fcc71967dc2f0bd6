package domain

import "time"

// Aporte is a contribution (deposit) recorded by a user.
type Aporte struct {
	ID           int64
	UsuarioID    int64
	Monto        Centavos
	NumeroAporte int
	Fecha        string
	Banco        string
	ImagenURL    string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Gasto is an expense recorded by a user.
type Gasto struct {
	ID          int64
	UsuarioID   int64
	Monto       Centavos
	Descripcion string
	Fecha       string
	ImagenURL   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// GastoConUsuario is a Gasto joined with its owner's display name.
type GastoConUsuario struct {
	Gasto
	UsuarioNombre string
}
