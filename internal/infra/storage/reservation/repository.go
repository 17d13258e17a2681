package reservation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ReservationService/pkg/psqlbuilder"
)

// uniqueViolation код ошибки PostgreSQL при нарушении уникальности
const uniqueViolation = "23505"

// Repository репозиторий для работы с резервированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория резервирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет резервирование. ID задаётся клиентом (предварительный ID формы).
func (r *Repository) Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns(
			"id",
			"charging_station_id",
			"connector_id",
			"expiry_date",
			"from_date",
			"to_date",
			"id_tag",
			"parent_id_tag",
			"user_id",
			"status",
			"type",
		).
		Values(
			res.ID,
			res.ChargingStationID,
			res.ConnectorID,
			res.ExpiryDate,
			res.FromDate,
			res.ToDate,
			res.IDTag,
			res.ParentIDTag,
			nullString(res.UserID),
			res.Status,
			nullString(string(res.Type)),
		).
		Suffix("RETURNING created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&res.CreatedAt, &res.UpdatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return nil, ErrAlreadyExists
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return res, nil
}

// GetByID получает резервирование по ID.
// Внутри транзакции строка блокируется (FOR UPDATE).
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	res, err := scanReservation(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan reservation: %v", ErrScanRow, err)
	}

	return res, nil
}

// Update обновляет редактируемые поля резервирования
func (r *Repository) Update(ctx context.Context, res *domain.Reservation) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("charging_station_id", res.ChargingStationID).
		Set("connector_id", res.ConnectorID).
		Set("expiry_date", res.ExpiryDate).
		Set("from_date", res.FromDate).
		Set("to_date", res.ToDate).
		Set("id_tag", res.IDTag).
		Set("parent_id_tag", res.ParentIDTag).
		Set("user_id", nullString(res.UserID)).
		Set("type", nullString(string(res.Type))).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": res.ID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	return r.execAffectingOne(ctx, executor, "Update", query, args)
}

// UpdateStatus обновляет статус резервирования
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.ReservationStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	return r.execAffectingOne(ctx, executor, "UpdateStatus", query, args)
}

// Delete удаляет резервирование
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	return r.execAffectingOne(ctx, executor, "Delete", query, args)
}

// List возвращает страницу резервирований и общее количество по фильтру
func (r *Repository) List(
	ctx context.Context,
	filter domain.ReservationFilter,
	paging domain.Paging,
	sorting domain.Sorting,
) (*domain.ReservationPage, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	countQuery, countArgs, err := buildCountQuery(filter).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build count query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, countQuery, countArgs...).Scan(&count); err != nil {
		return nil, fmt.Errorf("%w: List - execute count: %v", ErrExecQuery, err)
	}

	query, args, err := buildListQuery(filter, paging, sorting).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]*domain.Reservation, 0)
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		result = append(result, res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return &domain.ReservationPage{Count: count, Result: result}, nil
}

func (r *Repository) execAffectingOne(ctx context.Context, executor DBExecutor, op, query string, args []interface{}) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute: %v", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}

	if rowsAffected == 0 {
		return ErrReservationNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanReservation(row rowScanner) (*domain.Reservation, error) {
	var (
		res         domain.Reservation
		fromDate    sql.NullTime
		toDate      sql.NullTime
		parentIDTag sql.NullString
		userID      sql.NullString
		resType     sql.NullString
		createdAt   sql.NullTime
		updatedAt   sql.NullTime
	)

	err := row.Scan(
		&res.ID,
		&res.ChargingStationID,
		&res.ConnectorID,
		&res.ExpiryDate,
		&fromDate,
		&toDate,
		&res.IDTag,
		&parentIDTag,
		&userID,
		&res.Status,
		&resType,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if fromDate.Valid {
		t := fromDate.Time
		res.FromDate = &t
	}
	if toDate.Valid {
		t := toDate.Time
		res.ToDate = &t
	}
	if parentIDTag.Valid {
		s := parentIDTag.String
		res.ParentIDTag = &s
	}
	res.UserID = userID.String
	res.Type = domain.ReservationType(resType.String)
	res.CreatedAt = createdAt.Time
	res.UpdatedAt = updatedAt.Time

	return &res, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
