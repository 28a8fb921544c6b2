// Package homes, as part of the listing module.
// This file, `service.go`, is the persistence collaborator of the listing
// handler: every query against `homes` and `images` lives here, the way a
// Nest.js HomeService wraps PrismaService.
package homes

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/user/realtor-go/apperror"
)

// Service defines the listing operations the handler depends on.
// Handlers depend on this interface, not on the pgx implementation, so they
// can be exercised with a mock in tests.
type Service interface {
	ListHomes(ctx context.Context, filter Filter) ([]HomeResponse, error)
	GetHome(ctx context.Context, id int) (*HomeResponse, error)
	CreateHome(ctx context.Context, req CreateHomeRequest, realtorID int) (*HomeResponse, error)
	GetRealtorByHome(ctx context.Context, id int) (*Realtor, error)
	UpdateHomeByID(ctx context.Context, id int, req UpdateHomeRequest) (*HomeResponse, error)
	DeleteHomeByID(ctx context.Context, id int) error
}

// pgService implements Service against PostgreSQL.
type pgService struct {
	db *pgxpool.Pool
}

// NewService creates a PostgreSQL-backed listing Service.
func NewService(db *pgxpool.Pool) Service {
	return &pgService{db: db}
}

const homeColumns = `h.id, h.address, h.city, h.price, h.land_size, h.number_of_bedrooms,
	h.number_of_bathrooms, h.property_type, h.listed_date, h.realtor_id, h.created_at, h.updated_at`

// firstImage selects the url of the oldest image of the home in the current row.
const firstImage = `(SELECT i.url FROM images i WHERE i.home_id = h.id ORDER BY i.id LIMIT 1) AS image`

func scanHome(row pgx.Row) (*HomeResponse, error) {
	var h HomeResponse
	err := row.Scan(
		&h.ID, &h.Address, &h.City, &h.Price, &h.LandSize, &h.NumberOfBedrooms,
		&h.NumberOfBathrooms, &h.PropertyType, &h.ListedDate, &h.RealtorID, &h.CreatedAt, &h.UpdatedAt,
		&h.Image,
	)
	if err != nil {
		return nil, err
	}
	return &h, nil
}

func homeNotFound(id int) error {
	return apperror.NewNotFoundError(fmt.Sprintf("home with ID %d not found", id), nil)
}

func (s *pgService) ListHomes(ctx context.Context, filter Filter) ([]HomeResponse, error) {
	where, args := filter.where()
	query := fmt.Sprintf(`SELECT %s, %s FROM homes h %s ORDER BY h.id`, homeColumns, firstImage, where)

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to list homes", err)
	}
	defer rows.Close()

	homes := make([]HomeResponse, 0)
	for rows.Next() {
		h, err := scanHome(rows)
		if err != nil {
			return nil, apperror.NewDatabaseError("failed to scan home", err)
		}
		homes = append(homes, *h)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewDatabaseError("failed to list homes", err)
	}
	return homes, nil
}

func (s *pgService) GetHome(ctx context.Context, id int) (*HomeResponse, error) {
	query := fmt.Sprintf(`SELECT %s, %s FROM homes h WHERE h.id = $1`, homeColumns, firstImage)
	home, err := scanHome(s.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, homeNotFound(id)
		}
		return nil, apperror.NewDatabaseError("failed to get home", err)
	}

	rows, err := s.db.Query(ctx, `SELECT url FROM images WHERE home_id = $1 ORDER BY id`, id)
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to get home images", err)
	}
	images, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to get home images", err)
	}
	home.Images = images
	return home, nil
}

// CreateHome inserts the home and its images in one transaction.
func (s *pgService) CreateHome(ctx context.Context, req CreateHomeRequest, realtorID int) (*HomeResponse, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to begin transaction", err)
	}
	// Rollback after a successful Commit is a no-op.
	defer func() { _ = tx.Rollback(ctx) }()

	var id int
	err = tx.QueryRow(ctx, `
		INSERT INTO homes (address, city, price, land_size, number_of_bedrooms, number_of_bathrooms, property_type, realtor_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`,
		req.Address, req.City, req.Price, req.LandSize, req.NumberOfBedrooms, req.NumberOfBathrooms,
		string(req.PropertyType), realtorID,
	).Scan(&id)
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to create home", err)
	}

	if len(req.Images) > 0 {
		rows := make([][]interface{}, len(req.Images))
		for i, img := range req.Images {
			rows[i] = []interface{}{img.URL, id}
		}
		if _, err := tx.CopyFrom(ctx, pgx.Identifier{"images"}, []string{"url", "home_id"}, pgx.CopyFromRows(rows)); err != nil {
			return nil, apperror.NewDatabaseError("failed to create home images", err)
		}
	}

	query := fmt.Sprintf(`SELECT %s, %s FROM homes h WHERE h.id = $1`, homeColumns, firstImage)
	home, err := scanHome(tx.QueryRow(ctx, query, id))
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to read created home", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, apperror.NewDatabaseError("failed to commit home", err)
	}
	return home, nil
}

func (s *pgService) GetRealtorByHome(ctx context.Context, id int) (*Realtor, error) {
	var r Realtor
	err := s.db.QueryRow(ctx, `
		SELECT u.id, u.name, u.email, u.phone
		FROM homes h
		JOIN users u ON u.id = h.realtor_id
		WHERE h.id = $1`, id).Scan(&r.ID, &r.Name, &r.Email, &r.Phone)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, homeNotFound(id)
		}
		return nil, apperror.NewDatabaseError("failed to get realtor of home", err)
	}
	return &r, nil
}

// updateAssignments builds the SET list of an UPDATE from the non-nil fields.
// Placeholders start at $1; the caller appends the id argument last.
func updateAssignments(req UpdateHomeRequest) ([]string, []interface{}) {
	var sets []string
	var args []interface{}
	set := func(column string, value interface{}) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if req.Address != nil {
		set("address", *req.Address)
	}
	if req.City != nil {
		set("city", *req.City)
	}
	if req.Price != nil {
		set("price", *req.Price)
	}
	if req.LandSize != nil {
		set("land_size", *req.LandSize)
	}
	if req.NumberOfBedrooms != nil {
		set("number_of_bedrooms", *req.NumberOfBedrooms)
	}
	if req.NumberOfBathrooms != nil {
		set("number_of_bathrooms", *req.NumberOfBathrooms)
	}
	if req.PropertyType != nil {
		set("property_type", string(*req.PropertyType))
	}
	return sets, args
}

func (s *pgService) UpdateHomeByID(ctx context.Context, id int, req UpdateHomeRequest) (*HomeResponse, error) {
	sets, args := updateAssignments(req)
	if len(sets) == 0 {
		// Nothing to change; answer with the current state.
		return s.GetHome(ctx, id)
	}
	sets = append(sets, "updated_at = now()")
	args = append(args, id)

	query := fmt.Sprintf(`
		WITH h AS (
			UPDATE homes SET %s WHERE id = $%d RETURNING *
		)
		SELECT %s, %s FROM h`, strings.Join(sets, ", "), len(args), homeColumns, firstImage)

	home, err := scanHome(s.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, homeNotFound(id)
		}
		return nil, apperror.NewDatabaseError("failed to update home", err)
	}
	return home, nil
}

// DeleteHomeByID removes the images of the home and then the home, atomically.
func (s *pgService) DeleteHomeByID(ctx context.Context, id int) error {
	return pgx.BeginFunc(ctx, s.db, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM images WHERE home_id = $1`, id); err != nil {
			return apperror.NewDatabaseError("failed to delete home images", err)
		}
		tag, err := tx.Exec(ctx, `DELETE FROM homes WHERE id = $1`, id)
		if err != nil {
			return apperror.NewDatabaseError("failed to delete home", err)
		}
		if tag.RowsAffected() == 0 {
			return homeNotFound(id)
		}
		return nil
	})
}
