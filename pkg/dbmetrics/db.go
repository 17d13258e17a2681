package dbmetrics

import (
	"context"
	"database/sql"
	"strings"
	"time"
)

// Recorder приёмник метрик БД
type Recorder interface {
	ObserveDBQuery(operation string, duration time.Duration, err error)
	SetDBStats(stats sql.DBStats)
}

// DefaultStatsInterval период сбора статистики пула соединений
const DefaultStatsInterval = 15 * time.Second

// DB обёртка над *sql.DB, измеряющая длительность запросов
type DB struct {
	db       *sql.DB
	recorder Recorder
}

// Wrap оборачивает *sql.DB
func Wrap(db *sql.DB, recorder Recorder) *DB {
	return &DB{db: db, recorder: recorder}
}

// WrapWithDefault оборачивает *sql.DB и запускает сбор статистики пула до закрытия stopCh
func WrapWithDefault(db *sql.DB, recorder Recorder, stopCh <-chan struct{}) *DB {
	wrapped := Wrap(db, recorder)
	go wrapped.collectStats(DefaultStatsInterval, stopCh)
	return wrapped
}

func (d *DB) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	start := time.Now()
	res, err := d.db.ExecContext(ctx, query, args...)
	d.recorder.ObserveDBQuery(Operation(query), time.Since(start), err)
	return res, err
}

func (d *DB) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	start := time.Now()
	rows, err := d.db.QueryContext(ctx, query, args...)
	d.recorder.ObserveDBQuery(Operation(query), time.Since(start), err)
	return rows, err
}

func (d *DB) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	start := time.Now()
	row := d.db.QueryRowContext(ctx, query, args...)
	d.recorder.ObserveDBQuery(Operation(query), time.Since(start), row.Err())
	return row
}

// BeginTx начинает транзакцию
func (d *DB) BeginTx(ctx context.Context, opts *sql.TxOptions) (TxExecutor, error) {
	tx, err := d.db.BeginTx(ctx, opts)
	if err != nil {
		return nil, err
	}
	return &Tx{tx: tx, recorder: d.recorder}, nil
}

func (d *DB) collectStats(interval time.Duration, stopCh <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			d.recorder.SetDBStats(d.db.Stats())
		}
	}
}

// Tx транзакция с измерением длительности запросов
type Tx struct {
	tx       *sql.Tx
	recorder Recorder
}

func (t *Tx) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	start := time.Now()
	res, err := t.tx.ExecContext(ctx, query, args...)
	t.recorder.ObserveDBQuery(Operation(query), time.Since(start), err)
	return res, err
}

func (t *Tx) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	start := time.Now()
	rows, err := t.tx.QueryContext(ctx, query, args...)
	t.recorder.ObserveDBQuery(Operation(query), time.Since(start), err)
	return rows, err
}

func (t *Tx) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	start := time.Now()
	row := t.tx.QueryRowContext(ctx, query, args...)
	t.recorder.ObserveDBQuery(Operation(query), time.Since(start), row.Err())
	return row
}

func (t *Tx) Commit() error {
	return t.tx.Commit()
}

func (t *Tx) Rollback() error {
	return t.tx.Rollback()
}

// Operation тип SQL запроса для метки метрики
func Operation(query string) string {
	fields := strings.Fields(query)
	if len(fields) == 0 {
		return "unknown"
	}
	switch op := strings.ToLower(fields[0]); op {
	case "select", "insert", "update", "delete", "with":
		return op
	}
	return "other"
}
