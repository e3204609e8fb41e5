package schema

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/coastalgloss/BookingService/pkg/psqlbuilder"
)

var (
	// ErrUnsupportedDialect возвращается для диалекта без описанной схемы
	ErrUnsupportedDialect = errors.New("schema: unsupported dialect")

	// ErrApply возвращается, если не удалось применить DDL
	ErrApply = errors.New("schema: failed to apply")
)

// Execer минимальный интерфейс для выполнения DDL (*sql.DB, *dbmetrics.DB)
type Execer interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

// Частичные уникальные индексы - последняя линия защиты от двойного бронирования:
// одна активная детейлинг-запись на (дата, слот) и одно активное покрытие на дату.
var sqliteStatements = []string{
	`CREATE TABLE IF NOT EXISTS bookings (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		customer_name TEXT NOT NULL,
		phone TEXT NOT NULL,
		vehicle TEXT NOT NULL,
		service_type TEXT NOT NULL CHECK (service_type IN ('mobile_detail', 'ceramic_coating')),
		location_type TEXT NOT NULL CHECK (location_type IN ('mobile', 'shop_drop_off')),
		address TEXT NOT NULL DEFAULT '',
		booking_date TEXT NOT NULL,
		slot TEXT NOT NULL,
		notes TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL DEFAULT 'new' CHECK (status IN ('new', 'confirmed', 'cancelled', 'completed')),
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_bookings_date_slot ON bookings (booking_date, slot)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_bookings_detail_slot ON bookings (booking_date, slot)
		WHERE service_type = 'mobile_detail' AND status <> 'cancelled'`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_bookings_coating_day ON bookings (booking_date)
		WHERE service_type = 'ceramic_coating' AND status <> 'cancelled'`,
}

var postgresStatements = []string{
	`CREATE TABLE IF NOT EXISTS bookings (
		id BIGSERIAL PRIMARY KEY,
		customer_name VARCHAR(120) NOT NULL,
		phone VARCHAR(20) NOT NULL,
		vehicle VARCHAR(120) NOT NULL,
		service_type VARCHAR(32) NOT NULL CHECK (service_type IN ('mobile_detail', 'ceramic_coating')),
		location_type VARCHAR(32) NOT NULL CHECK (location_type IN ('mobile', 'shop_drop_off')),
		address VARCHAR(250) NOT NULL DEFAULT '',
		booking_date VARCHAR(10) NOT NULL,
		slot VARCHAR(5) NOT NULL,
		notes TEXT NOT NULL DEFAULT '',
		status VARCHAR(16) NOT NULL DEFAULT 'new' CHECK (status IN ('new', 'confirmed', 'cancelled', 'completed')),
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_bookings_date_slot ON bookings (booking_date, slot)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_bookings_detail_slot ON bookings (booking_date, slot)
		WHERE service_type = 'mobile_detail' AND status <> 'cancelled'`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_bookings_coating_day ON bookings (booking_date)
		WHERE service_type = 'ceramic_coating' AND status <> 'cancelled'`,
}

// Statements возвращает DDL для диалекта
func Statements(dialect psqlbuilder.Dialect) ([]string, error) {
	switch dialect {
	case psqlbuilder.DialectSQLite:
		return sqliteStatements, nil
	case psqlbuilder.DialectPostgres:
		return postgresStatements, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDialect, dialect)
	}
}

// Apply создает таблицу bookings и индексы, если их еще нет
func Apply(ctx context.Context, db Execer, dialect psqlbuilder.Dialect) error {
	statements, err := Statements(dialect)
	if err != nil {
		return err
	}

	for i, stmt := range statements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("%w: statement %d: %v", ErrApply, i+1, err)
		}
	}

	return nil
}
