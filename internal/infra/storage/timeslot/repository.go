package timeslot

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/DrivingSchool-BookingService/internal/domain"
	"github.com/m04kA/DrivingSchool-BookingService/pkg/dbmetrics"
	"github.com/m04kA/DrivingSchool-BookingService/pkg/pgerrors"
	"github.com/m04kA/DrivingSchool-BookingService/pkg/psqlbuilder"
)

const table = "time_slots"

var columns = []string{
	"id",
	"start_time",
	"end_time",
	"status",
	"is_visible",
	"appointment_id",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы со слотами
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория слотов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает слот
// Границы слота приводятся к целым секундам в UTC
// Пересечение с существующим слотом (гонка двух вставок) возвращается как ErrOverlap
func (r *Repository) Create(ctx context.Context, slot *domain.TimeSlot) (*domain.TimeSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	slot.StartTime = domain.TruncateInstant(slot.StartTime)
	slot.EndTime = domain.TruncateInstant(slot.EndTime)

	query, args, err := psqlbuilder.Insert(table).
		Columns("start_time", "end_time", "status", "is_visible", "appointment_id").
		Values(slot.StartTime, slot.EndTime, slot.Status, slot.IsVisible, slot.AppointmentID).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&slot.ID, &slot.CreatedAt, &slot.UpdatedAt)
	if err != nil {
		return nil, mapWriteError("Create", err)
	}

	return slot, nil
}

// GetByID получает слот по ID
// Внутри транзакции строка блокируется (FOR UPDATE)
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.TimeSlot, error) {
	builder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id})

	return r.getOne(ctx, "GetByID", builder)
}

// GetByStartTime получает слот, начинающийся ровно в указанный момент
func (r *Repository) GetByStartTime(ctx context.Context, startTime time.Time) (*domain.TimeSlot, error) {
	builder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"start_time": domain.TruncateInstant(startTime)})

	return r.getOne(ctx, "GetByStartTime", builder)
}

// GetIntersecting возвращает слоты, пересекающие полуинтервал [start, end), по возрастанию начала
// Внутри транзакции найденные строки блокируются (FOR UPDATE)
func (r *Repository) GetIntersecting(ctx context.Context, start, end time.Time) ([]*domain.TimeSlot, error) {
	builder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Lt{"start_time": domain.TruncateInstant(end)}).
		Where(squirrel.Gt{"end_time": domain.TruncateInstant(start)}).
		OrderBy("start_time ASC")

	if dbmetrics.IsInTransaction(ctx) {
		builder = builder.Suffix("FOR UPDATE")
	}

	return r.list(ctx, "GetIntersecting", builder)
}

// ListAvailable возвращает свободные видимые слоты, начинающиеся не раньше now
func (r *Repository) ListAvailable(ctx context.Context, now time.Time) ([]*domain.TimeSlot, error) {
	builder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"status": domain.SlotAvailable, "is_visible": true}).
		Where(squirrel.GtOrEq{"start_time": domain.TruncateInstant(now)}).
		OrderBy("start_time ASC")

	return r.list(ctx, "ListAvailable", builder)
}

// ListAll возвращает все слоты по возрастанию начала
func (r *Repository) ListAll(ctx context.Context) ([]*domain.TimeSlot, error) {
	builder := psqlbuilder.Select(columns...).
		From(table).
		OrderBy("start_time ASC")

	return r.list(ctx, "ListAll", builder)
}

// MarkBooked переводит слот в BOOKED, скрывает его и привязывает бронирование
func (r *Repository) MarkBooked(ctx context.Context, id, appointmentID int64) error {
	query, args, err := psqlbuilder.Update(table).
		Set("status", domain.SlotBooked).
		Set("is_visible", false).
		Set("appointment_id", appointmentID).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: MarkBooked - build update query: %v", ErrBuildQuery, err)
	}

	return r.execAffectingOne(ctx, "MarkBooked", query, args)
}

// Release возвращает слот в AVAILABLE, делает его видимым и отвязывает бронирование
func (r *Repository) Release(ctx context.Context, id int64) error {
	query, args, err := psqlbuilder.Update(table).
		Set("status", domain.SlotAvailable).
		Set("is_visible", true).
		Set("appointment_id", nil).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Release - build update query: %v", ErrBuildQuery, err)
	}

	return r.execAffectingOne(ctx, "Release", query, args)
}

// Delete удаляет слот
func (r *Repository) Delete(ctx context.Context, id int64) error {
	query, args, err := psqlbuilder.Delete(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	return r.execAffectingOne(ctx, "Delete", query, args)
}

func (r *Repository) getOne(ctx context.Context, op string, builder squirrel.SelectBuilder) (*domain.TimeSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if dbmetrics.IsInTransaction(ctx) {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	slot, err := scanTimeSlot(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrTimeSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan time slot: %w", ErrScanRow, op, err)
	}

	return slot, nil
}

func (r *Repository) list(ctx context.Context, op string, builder squirrel.SelectBuilder) ([]*domain.TimeSlot, error) {
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

	slots := make([]*domain.TimeSlot, 0)
	for rows.Next() {
		slot, err := scanTimeSlot(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan row: %w", ErrScanRow, op, err)
		}
		slots = append(slots, slot)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %w", ErrScanRow, op, err)
	}

	return slots, nil
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
		return ErrTimeSlotNotFound
	}

	return nil
}

// mapWriteError переводит нарушения ограничений в ошибки репозитория
// Исходная ошибка драйвера остается в цепочке, чтобы txmanager мог распознать конфликт сериализации
func mapWriteError(op string, err error) error {
	switch {
	case pgerrors.IsExclusionViolation(err):
		return fmt.Errorf("%w: %s: %w", ErrOverlap, op, err)
	case pgerrors.IsCheckViolation(err):
		return fmt.Errorf("%w: %s: %w", ErrInvalidWindow, op, err)
	default:
		return fmt.Errorf("%w: %s - execute: %w", ErrExecQuery, op, err)
	}
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanTimeSlot(row rowScanner) (*domain.TimeSlot, error) {
	var (
		slot          domain.TimeSlot
		status        string
		appointmentID sql.NullInt64
	)

	err := row.Scan(
		&slot.ID,
		&slot.StartTime,
		&slot.EndTime,
		&status,
		&slot.IsVisible,
		&appointmentID,
		&slot.CreatedAt,
		&slot.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	slot.Status = domain.TimeSlotStatus(status)
	slot.StartTime = slot.StartTime.UTC()
	slot.EndTime = slot.EndTime.UTC()
	if appointmentID.Valid {
		id := appointmentID.Int64
		slot.AppointmentID = &id
	}

	return &slot, nil
}
