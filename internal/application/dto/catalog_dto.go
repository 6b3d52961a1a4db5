package dto

import "time"

// ProductResponse producto del catálogo.
type ProductResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// StatusResponse estado de venta del catálogo.
type StatusResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Color     string    `json:"color,omitempty"`
	IsPending bool      `json:"is_pending"`
	CreatedAt time.Time `json:"created_at"`
}

// CampaignResponse campaña del catálogo.
type CampaignResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateProductRequest alta de producto.
type CreateProductRequest struct {
	Name string `json:"name"`
}

// CreateStatusRequest alta de estado. IsPending marca el estado que cuenta
// como carga para auto-asignación (debe haber exactamente uno).
type CreateStatusRequest struct {
	Name      string `json:"name"`
	Color     string `json:"color"`
	IsPending bool   `json:"is_pending"`
}

// CreateCampaignRequest alta de campaña.
type CreateCampaignRequest struct {
	Name string `json:"name"`
}
