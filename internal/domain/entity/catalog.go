package entity

import "time"

// Product catálogo de productos vendibles (referenciado por Sale.ProductID
// y por los skills de los digitadores).
type Product struct {
	ID        string
	Name      string
	IsActive  bool
	CreatedAt time.Time
}

// Status catálogo de estados de una venta. Exactamente uno es el estado
// "pendiente" que cuenta como carga para la auto-asignación.
type Status struct {
	ID        string
	Name      string
	Color     string
	IsPending bool
	CreatedAt time.Time
}

// Campaign catálogo de campañas de venta.
type Campaign struct {
	ID        string
	Name      string
	IsActive  bool
	CreatedAt time.Time
}
