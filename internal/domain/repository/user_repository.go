package repository

import (
	"context"

	"github.com/tu-usuario/ventas-ops/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
// Las búsquedas devuelven (nil, nil) cuando no hay fila.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	List(ctx context.Context, limit, offset int) ([]*entity.User, error)
	// ListActiveByRole devuelve usuarios activos con el rol dado; lo usa el
	// motor de auto-asignación para enumerar candidatos.
	ListActiveByRole(ctx context.Context, role string) ([]*entity.User, error)
	Delete(ctx context.Context, id string) error
}
