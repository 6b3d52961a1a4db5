package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/tu-usuario/ventas-ops/internal/domain"
	"github.com/tu-usuario/ventas-ops/internal/domain/entity"
	"github.com/tu-usuario/ventas-ops/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

const saleColumns = `id, user_id, campaign_id, product_id, concept_id, status_id, sale_date,
	customer_name, conteo, contact_number, id_document, os_madre, os_hija, plan_sold, pp,
	assigned_to, comment_claro, comment_orion, comment_dofu, installed_number,
	status_updated_by, status_updated_at, created_at`

// updatableSaleColumns whitelist de columnas que UpdateField puede tocar.
// Cualquier otra columna es rechazada antes de armar el SQL.
var updatableSaleColumns = map[string]bool{
	"assigned_to":      true,
	"status_id":        true,
	"campaign_id":      true,
	"contact_number":   true,
	"os_madre":         true,
	"os_hija":          true,
	"comment_claro":    true,
	"comment_orion":    true,
	"comment_dofu":     true,
	"installed_number": true,
}

// SaleRepo implementación del puerto SaleRepository sobre PostgreSQL.
type SaleRepo struct {
	db querier
}

// NewSaleRepository construye el adaptador de persistencia para ventas.
func NewSaleRepository(db querier) *SaleRepo {
	return &SaleRepo{db: db}
}

// Create persiste una nueva venta.
func (r *SaleRepo) Create(ctx context.Context, sale *entity.Sale) error {
	query := `
		INSERT INTO sales (id, user_id, campaign_id, product_id, concept_id, status_id, sale_date,
			customer_name, conteo, contact_number, id_document, os_madre, os_hija, plan_sold, pp,
			assigned_to, comment_claro, comment_orion, comment_dofu, installed_number,
			status_updated_by, status_updated_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15,
			NULLIF($16, ''), $17, $18, $19, $20, NULLIF($21, ''), $22, $23)`
	_, err := r.db.Exec(ctx, query,
		sale.ID, sale.UserID, sale.CampaignID, sale.ProductID, sale.ConceptID, sale.StatusID, sale.SaleDate,
		sale.CustomerName, sale.Conteo, sale.ContactNumber, sale.IDDocument, sale.OSMadre, sale.OSHija,
		sale.PlanSold, sale.PP, sale.AssignedTo, sale.CommentClaro, sale.CommentOrion, sale.CommentDofu,
		sale.InstalledNumber, sale.StatusUpdatedBy, sale.StatusUpdatedAt, sale.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

// GetByID obtiene una venta por ID. Devuelve (nil, nil) si no existe.
func (r *SaleRepo) GetByID(ctx context.Context, id string) (*entity.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales WHERE id = $1`
	return r.scanOne(r.db.QueryRow(ctx, query, id), "get sale by id")
}

// List lista ventas filtradas, más recientes primero, y devuelve además el
// total sin paginar para que el panel pueda pintar la paginación.
func (r *SaleRepo) List(ctx context.Context, f repository.SaleFilter) ([]*entity.Sale, int, error) {
	// os_madre/os_hija/contact_number se buscan por fragmento; EndDate llega
	// como inicio del día siguiente, por eso el límite superior es estricto.
	where := `
		WHERE ($1 = '' OR user_id = $1)
		  AND ($2::timestamptz IS NULL OR sale_date >= $2)
		  AND ($3::timestamptz IS NULL OR sale_date < $3)
		  AND ($4 = '' OR os_madre ILIKE '%' || $4 || '%')
		  AND ($5 = '' OR os_hija ILIKE '%' || $5 || '%')
		  AND ($6 = '' OR contact_number ILIKE '%' || $6 || '%')
		  AND ($7 = '' OR concept_id = $7)
		  AND ($8 = '' OR status_id = $8)`
	args := []any{
		f.UserID, f.StartDate, f.EndDate, f.OSMadre, f.OSHija,
		f.ContactNumber, f.ConceptID, f.StatusID,
	}

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM sales`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count sales: %w", err)
	}

	query := `SELECT ` + saleColumns + ` FROM sales` + where +
		` ORDER BY sale_date DESC, created_at DESC LIMIT $9 OFFSET $10`
	rows, err := r.db.Query(ctx, query, append(args, f.Limit, f.Offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()

	list, err := r.scanMany(rows)
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// UpdateField actualiza una sola columna editable. Para status_id estampa
// además status_updated_by/status_updated_at.
func (r *SaleRepo) UpdateField(ctx context.Context, upd repository.SaleFieldUpdate) error {
	if !updatableSaleColumns[upd.Field] {
		return fmt.Errorf("columna no editable %q: %w", upd.Field, domain.ErrInvalidInput)
	}

	var tag pgconn.CommandTag
	var err error
	if upd.Field == "status_id" {
		query := `UPDATE sales SET status_id = $2, status_updated_by = $3, status_updated_at = $4 WHERE id = $1`
		tag, err = r.db.Exec(ctx, query, upd.SaleID, upd.Value, upd.StatusUpdatedBy, upd.StatusUpdatedAt)
	} else {
		// Field viene de la whitelist, nunca del request.
		query := fmt.Sprintf(`UPDATE sales SET %s = $2 WHERE id = $1`, upd.Field)
		tag, err = r.db.Exec(ctx, query, upd.SaleID, upd.Value)
	}
	if err != nil {
		return fmt.Errorf("update sale field %s: %w", upd.Field, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// CountPendingAssigned carga actual de un digitador: ventas asignadas a él que
// siguen en el estado pendiente.
func (r *SaleRepo) CountPendingAssigned(ctx context.Context, userID, pendingStatusID string) (int, error) {
	var count int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM sales WHERE assigned_to = $1 AND status_id = $2`,
		userID, pendingStatusID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count pending sales: %w", err)
	}
	return count, nil
}

// DeleteAll borra todas las ventas y devuelve cuántas había.
func (r *SaleRepo) DeleteAll(ctx context.Context) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM sales`)
	if err != nil {
		return 0, fmt.Errorf("delete all sales: %w", err)
	}
	return tag.RowsAffected(), nil
}

// DeleteByDateRange borra ventas con sale_date en [start, end).
func (r *SaleRepo) DeleteByDateRange(ctx context.Context, start, end time.Time) (int64, error) {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM sales WHERE sale_date >= $1 AND sale_date < $2`, start, end)
	if err != nil {
		return 0, fmt.Errorf("delete sales by date range: %w", err)
	}
	return tag.RowsAffected(), nil
}

// InsertBatch inserta ventas en bloque (restore desde un dump).
func (r *SaleRepo) InsertBatch(ctx context.Context, sales []*entity.Sale) error {
	for _, sale := range sales {
		if err := r.Create(ctx, sale); err != nil {
			return fmt.Errorf("insert sale %s: %w", sale.ID, err)
		}
	}
	return nil
}

func (r *SaleRepo) scanOne(row pgx.Row, op string) (*entity.Sale, error) {
	s, err := scanSale(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return s, nil
}

func (r *SaleRepo) scanMany(rows pgx.Rows) ([]*entity.Sale, error) {
	var list []*entity.Sale
	for rows.Next() {
		s, err := scanSale(rows)
		if err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

func scanSale(row pgx.Row) (*entity.Sale, error) {
	var s entity.Sale
	var assignedTo, statusUpdatedBy *string
	err := row.Scan(
		&s.ID, &s.UserID, &s.CampaignID, &s.ProductID, &s.ConceptID, &s.StatusID, &s.SaleDate,
		&s.CustomerName, &s.Conteo, &s.ContactNumber, &s.IDDocument, &s.OSMadre, &s.OSHija,
		&s.PlanSold, &s.PP, &assignedTo, &s.CommentClaro, &s.CommentOrion, &s.CommentDofu,
		&s.InstalledNumber, &statusUpdatedBy, &s.StatusUpdatedAt, &s.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if assignedTo != nil {
		s.AssignedTo = *assignedTo
	}
	if statusUpdatedBy != nil {
		s.StatusUpdatedBy = *statusUpdatedBy
	}
	return &s, nil
}
