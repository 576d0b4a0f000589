package appointment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/DrivingSchool-BookingService/internal/domain"
	"github.com/m04kA/DrivingSchool-BookingService/pkg/dbmetrics"
	"github.com/m04kA/DrivingSchool-BookingService/pkg/pgerrors"
	"github.com/m04kA/DrivingSchool-BookingService/pkg/psqlbuilder"
)

const table = "appointments"

var columns = []string{
	"id",
	"user_id",
	"time_slot_id",
	"location_id",
	"custom_pickup_street",
	"custom_pickup_house_number",
	"custom_pickup_postal_code",
	"custom_pickup_city",
	"start_time",
	"end_time",
	"is_exam",
	"calendar_event_id",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями (занятиями и экзаменами)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает бронирование
// Если на слот уже ссылается другое бронирование, возвращает ErrSlotTaken
func (r *Repository) Create(ctx context.Context, a *domain.Appointment) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	loc, err := flattenLocation(a.Location)
	if err != nil {
		return nil, err
	}

	a.StartTime = domain.TruncateInstant(a.StartTime)
	a.EndTime = domain.TruncateInstant(a.EndTime)

	query, args, err := psqlbuilder.Insert(table).
		Columns(
			"user_id",
			"time_slot_id",
			"location_id",
			"custom_pickup_street",
			"custom_pickup_house_number",
			"custom_pickup_postal_code",
			"custom_pickup_city",
			"start_time",
			"end_time",
			"is_exam",
			"calendar_event_id",
		).
		Values(
			a.UserID,
			a.TimeSlotID,
			loc.locationID,
			loc.street,
			loc.houseNumber,
			loc.postalCode,
			loc.city,
			a.StartTime,
			a.EndTime,
			a.IsExam,
			a.CalendarEventID,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, mapWriteError("Create", err)
	}

	return a, nil
}

// GetByID получает бронирование по ID
// Внутри транзакции строка блокируется (FOR UPDATE), чтобы параллельная отмена ждала текущую
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	a, err := scanAppointment(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan appointment: %w", ErrScanRow, err)
	}

	return a, nil
}

// ListByUser возвращает бронирования пользователя по возрастанию начала
func (r *Repository) ListByUser(ctx context.Context, userID int64) ([]*domain.Appointment, error) {
	builder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("start_time ASC")

	return r.list(ctx, "ListByUser", builder)
}

// ListAll возвращает все бронирования по возрастанию начала
func (r *Repository) ListAll(ctx context.Context) ([]*domain.Appointment, error) {
	builder := psqlbuilder.Select(columns...).
		From(table).
		OrderBy("start_time ASC")

	return r.list(ctx, "ListAll", builder)
}

// UpdateLocation заменяет место встречи
// Обе формы (локация и свой адрес) перезаписываются, чтобы не нарушить CHECK ограничение
func (r *Repository) UpdateLocation(ctx context.Context, id int64, location domain.PickupLocation) error {
	loc, err := flattenLocation(location)
	if err != nil {
		return err
	}

	query, args, err := psqlbuilder.Update(table).
		Set("location_id", loc.locationID).
		Set("custom_pickup_street", loc.street).
		Set("custom_pickup_house_number", loc.houseNumber).
		Set("custom_pickup_postal_code", loc.postalCode).
		Set("custom_pickup_city", loc.city).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateLocation - build update query: %v", ErrBuildQuery, err)
	}

	return r.execAffectingOne(ctx, "UpdateLocation", query, args)
}

// SetCalendarEventID сохраняет ID события в Google Calendar
func (r *Repository) SetCalendarEventID(ctx context.Context, id int64, eventID string) error {
	query, args, err := psqlbuilder.Update(table).
		Set("calendar_event_id", eventID).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: SetCalendarEventID - build update query: %v", ErrBuildQuery, err)
	}

	return r.execAffectingOne(ctx, "SetCalendarEventID", query, args)
}

// Delete удаляет бронирование
func (r *Repository) Delete(ctx context.Context, id int64) error {
	query, args, err := psqlbuilder.Delete(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	return r.execAffectingOne(ctx, "Delete", query, args)
}

func (r *Repository) list(ctx context.Context, op string, builder squirrel.SelectBuilder) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %w", ErrExecQuery, op, err)
	}
	defer rows.Close()

	appointments := make([]*domain.Appointment, 0)
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan row: %w", ErrScanRow, op, err)
		}
		appointments = append(appointments, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %w", ErrScanRow, op, err)
	}

	return appointments, nil
}

func (r *Repository) execAffectingOne(ctx context.Context, op, query string, args []interface{}) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return mapWriteError(op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %w", ErrExecQuery, op, err)
	}

	if rowsAffected == 0 {
		return ErrAppointmentNotFound
	}

	return nil
}

func mapWriteError(op string, err error) error {
	switch {
	case pgerrors.IsUniqueViolation(err):
		return fmt.Errorf("%w: %s: %w", ErrSlotTaken, op, err)
	case pgerrors.IsForeignKeyViolation(err):
		return fmt.Errorf("%w: %s: %w", ErrReferenceNotFound, op, err)
	case pgerrors.IsCheckViolation(err):
		return fmt.Errorf("%w: %s: %w", ErrInvalidLocation, op, err)
	default:
		return fmt.Errorf("%w: %s - execute: %w", ErrExecQuery, op, err)
	}
}
