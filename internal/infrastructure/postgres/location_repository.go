package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Bodega-api/internal/domain"
	"github.com/jhoicas/Bodega-api/internal/domain/entity"
	"github.com/jhoicas/Bodega-api/internal/domain/repository"
)

var _ repository.LocationRepository = (*LocationRepo)(nil)

// LocationRepo implementación del puerto LocationRepository sobre PostgreSQL (usable con pool o tx).
type LocationRepo struct {
	q Querier
}

// NewLocationRepository construye el adaptador de ubicaciones. Pasar pool o tx (Querier).
func NewLocationRepository(q Querier) *LocationRepo {
	return &LocationRepo{q: q}
}

const locationColumns = `id, code, floor, kind, label, x, y, span_x, span_y, capacity, created_at`

// Create persiste una nueva ubicación. Código duplicado en el mismo piso es ErrDuplicate.
func (r *LocationRepo) Create(location *entity.Location) error {
	query := `
		INSERT INTO locations (` + locationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		location.ID, location.Code, location.Floor, location.Kind, location.Label,
		location.X, location.Y, location.SpanX, location.SpanY, location.Capacity,
		location.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert location: %w", err)
	}
	return nil
}

// GetByCode resuelve por código exacto en cualquier piso. Si el código existe en
// más de un piso la resolución es ambigua y se devuelve ErrDuplicate envuelto.
func (r *LocationRepo) GetByCode(code string) (*entity.Location, error) {
	query := `SELECT ` + locationColumns + ` FROM locations WHERE code = $1 LIMIT 2`
	rows, err := r.q.Query(context.Background(), query, code)
	if err != nil {
		return nil, fmt.Errorf("get location by code: %w", err)
	}
	defer rows.Close()
	var found []*entity.Location
	for rows.Next() {
		l, err := scanLocation(rows)
		if err != nil {
			return nil, err
		}
		found = append(found, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get location by code: %w", err)
	}
	switch len(found) {
	case 0:
		return nil, nil
	case 1:
		return found[0], nil
	default:
		return nil, fmt.Errorf("código %q existe en varios pisos: %w", code, domain.ErrDuplicate)
	}
}

// GetByCodeAndFloor obtiene una ubicación por código y piso exactos.
func (r *LocationRepo) GetByCodeAndFloor(code, floor string) (*entity.Location, error) {
	query := `SELECT ` + locationColumns + ` FROM locations WHERE code = $1 AND floor = $2`
	var l entity.Location
	err := r.q.QueryRow(context.Background(), query, code, floor).Scan(
		&l.ID, &l.Code, &l.Floor, &l.Kind, &l.Label,
		&l.X, &l.Y, &l.SpanX, &l.SpanY, &l.Capacity, &l.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get location by code and floor: %w", err)
	}
	return &l, nil
}

// UpdatePosition reposiciona la celda en el mapa del piso.
func (r *LocationRepo) UpdatePosition(id string, x, y int) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE locations SET x = $2, y = $3 WHERE id = $1`, id, x, y)
	if err != nil {
		return fmt.Errorf("update location position: %w", err)
	}
	return nil
}

// ListAll lista todas las ubicaciones (todos los pisos).
func (r *LocationRepo) ListAll() ([]*entity.Location, error) {
	query := `SELECT ` + locationColumns + ` FROM locations ORDER BY floor, y, x`
	return r.list(query)
}

// ListByFloor lista las ubicaciones de un piso en orden de mapa (fila, columna).
func (r *LocationRepo) ListByFloor(floor string) ([]*entity.Location, error) {
	query := `SELECT ` + locationColumns + ` FROM locations WHERE floor = $1 ORDER BY y, x`
	return r.list(query, floor)
}

func (r *LocationRepo) list(query string, args ...any) ([]*entity.Location, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list locations: %w", err)
	}
	defer rows.Close()
	var list []*entity.Location
	for rows.Next() {
		l, err := scanLocation(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, l)
	}
	return list, rows.Err()
}

func scanLocation(rows pgx.Rows) (*entity.Location, error) {
	var l entity.Location
	if err := rows.Scan(&l.ID, &l.Code, &l.Floor, &l.Kind, &l.Label,
		&l.X, &l.Y, &l.SpanX, &l.SpanY, &l.Capacity, &l.CreatedAt); err != nil {
		return nil, fmt.Errorf("scan location: %w", err)
	}
	return &l, nil
}

// RenameFloor renombra un piso completo y devuelve cuántas ubicaciones cambiaron.
func (r *LocationRepo) RenameFloor(oldName, newName string) (int64, error) {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE locations SET floor = $2 WHERE floor = $1`, oldName, newName)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, fmt.Errorf("el piso %q ya tiene códigos en conflicto: %w", newName, domain.ErrDuplicate)
		}
		return 0, fmt.Errorf("rename floor: %w", err)
	}
	return cmd.RowsAffected(), nil
}

// Delete elimina una ubicación por ID.
func (r *LocationRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM locations WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete location: %w", err)
	}
	return nil
}
