package location

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/DrivingSchool-BookingService/internal/domain"
	"github.com/m04kA/DrivingSchool-BookingService/pkg/dbmetrics"
	"github.com/m04kA/DrivingSchool-BookingService/pkg/psqlbuilder"
)

const table = "locations"

var columns = []string{"id", "name", "street", "house_number", "postal_code", "city"}

// Repository справочник мест встречи (только чтение)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория локаций
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает локацию по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Location, error) {
	return r.getOne(ctx, "GetByID", squirrel.Eq{"id": id})
}

// GetByName получает локацию по точному названию
func (r *Repository) GetByName(ctx context.Context, name string) (*domain.Location, error) {
	return r.getOne(ctx, "GetByName", squirrel.Eq{"name": name})
}

// List возвращает все локации по алфавиту
func (r *Repository) List(ctx context.Context) ([]*domain.Location, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		OrderBy("name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	locations := make([]*domain.Location, 0)
	for rows.Next() {
		var loc domain.Location
		if err := rows.Scan(&loc.ID, &loc.Name, &loc.Street, &loc.HouseNumber, &loc.PostalCode, &loc.City); err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %w", ErrScanRow, err)
		}
		locations = append(locations, &loc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %w", ErrScanRow, err)
	}

	return locations, nil
}

func (r *Repository) getOne(ctx context.Context, op string, where squirrel.Eq) (*domain.Location, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(where).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	var loc domain.Location
	err = executor.QueryRowContext(ctx, query, args...).
		Scan(&loc.ID, &loc.Name, &loc.Street, &loc.HouseNumber, &loc.PostalCode, &loc.City)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrLocationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan location: %w", ErrScanRow, op, err)
	}

	return &loc, nil
}
