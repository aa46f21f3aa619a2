package resorts

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound indicates the resort does not exist.
var ErrNotFound = errors.New("resorts: not found")

// Repository provides PostgreSQL backed persistence for resorts.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const resortColumns = `id, name, description, location, price_per_night, amenities, max_guests, rooms, rating, image, is_active, created_at, updated_at`

// List returns active resorts matching the filter, ordered by name.
func (r *Repository) List(ctx context.Context, filter ListFilter) ([]Resort, error) {
	var (
		conditions = []string{"is_active = TRUE"}
		args       []any
	)
	if filter.Location != "" {
		args = append(args, "%"+filter.Location+"%")
		conditions = append(conditions, fmt.Sprintf("location ILIKE $%d", len(args)))
	}
	if len(filter.Amenities) > 0 {
		args = append(args, filter.Amenities)
		conditions = append(conditions, fmt.Sprintf("amenities @> $%d", len(args)))
	}
	if filter.MinRate > 0 {
		args = append(args, filter.MinRate)
		conditions = append(conditions, fmt.Sprintf("price_per_night >= $%d", len(args)))
	}
	if filter.MaxRate > 0 {
		args = append(args, filter.MaxRate)
		conditions = append(conditions, fmt.Sprintf("price_per_night <= $%d", len(args)))
	}

	query := fmt.Sprintf("SELECT %s FROM resorts WHERE %s ORDER BY name",
		resortColumns, strings.Join(conditions, " AND "))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Resort
	for rows.Next() {
		resort, err := scanResort(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, resort)
	}
	return out, rows.Err()
}

// FindByID fetches a resort by primary key.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (Resort, error) {
	query := fmt.Sprintf("SELECT %s FROM resorts WHERE id = $1", resortColumns)
	resort, err := scanResort(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Resort{}, ErrNotFound
		}
		return Resort{}, err
	}
	return resort, nil
}

// Create inserts a new resort.
func (r *Repository) Create(ctx context.Context, input ResortInput) (Resort, error) {
	const query = `
		INSERT INTO resorts (id, name, description, location, price_per_night, amenities, max_guests, rooms, rating, image, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, 0, $9, TRUE, NOW(), NOW())
		RETURNING created_at, updated_at`

	resort := Resort{
		ID:            uuid.New(),
		Name:          input.Name,
		Description:   input.Description,
		Location:      input.Location,
		PricePerNight: input.PricePerNight,
		Amenities:     input.Amenities,
		MaxGuests:     input.MaxGuests,
		Rooms:         input.Rooms,
		Image:         input.Image,
		IsActive:      true,
	}
	err := r.pool.QueryRow(ctx, query,
		resort.ID,
		resort.Name,
		resort.Description,
		resort.Location,
		resort.PricePerNight,
		resort.Amenities,
		resort.MaxGuests,
		resort.Rooms,
		resort.Image,
	).Scan(&resort.CreatedAt, &resort.UpdatedAt)
	if err != nil {
		return Resort{}, err
	}
	return resort, nil
}

// Update replaces the writable fields of a resort.
func (r *Repository) Update(ctx context.Context, id uuid.UUID, input ResortInput) (Resort, error) {
	query := fmt.Sprintf(`
		UPDATE resorts
		SET name = $2, description = $3, location = $4, price_per_night = $5,
		    amenities = $6, max_guests = $7, rooms = $8, image = $9, updated_at = NOW()
		WHERE id = $1
		RETURNING %s`, resortColumns)

	resort, err := scanResort(r.pool.QueryRow(ctx, query,
		id,
		input.Name,
		input.Description,
		input.Location,
		input.PricePerNight,
		input.Amenities,
		input.MaxGuests,
		input.Rooms,
		input.Image,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Resort{}, ErrNotFound
		}
		return Resort{}, err
	}
	return resort, nil
}

// SoftDelete marks a resort inactive. The record is kept so existing
// bookings can still resolve their snapshot.
func (r *Repository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, "UPDATE resorts SET is_active = FALSE, updated_at = NOW() WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanResort(row pgx.Row) (Resort, error) {
	var resort Resort
	err := row.Scan(
		&resort.ID,
		&resort.Name,
		&resort.Description,
		&resort.Location,
		&resort.PricePerNight,
		&resort.Amenities,
		&resort.MaxGuests,
		&resort.Rooms,
		&resort.Rating,
		&resort.Image,
		&resort.IsActive,
		&resort.CreatedAt,
		&resort.UpdatedAt,
	)
	return resort, err
}
