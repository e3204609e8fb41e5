package psqlbuilder

import (
	"fmt"

	"github.com/Masterminds/squirrel"
)

// Dialect SQL-диалект хранилища
type Dialect string

const (
	DialectPostgres Dialect = "postgres"
	DialectSQLite   Dialect = "sqlite"
)

// Builder squirrel.StatementBuilder с плейсхолдерами нужного диалекта
type Builder struct {
	dialect Dialect
	sb      squirrel.StatementBuilderType
}

// New создает билдер запросов для диалекта
func New(dialect Dialect) (Builder, error) {
	switch dialect {
	case DialectPostgres:
		return Builder{dialect: dialect, sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)}, nil
	case DialectSQLite:
		return Builder{dialect: dialect, sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)}, nil
	default:
		return Builder{}, fmt.Errorf("psqlbuilder: unsupported dialect %q", dialect)
	}
}

// MustNew как New, но паникует на неизвестном диалекте
func MustNew(dialect Dialect) Builder {
	b, err := New(dialect)
	if err != nil {
		panic(err)
	}
	return b
}

// Dialect возвращает диалект билдера
func (b Builder) Dialect() Dialect {
	return b.dialect
}

// SupportsRowLocks поддерживает ли диалект SELECT ... FOR UPDATE
func (b Builder) SupportsRowLocks() bool {
	return b.dialect == DialectPostgres
}

func (b Builder) Select(columns ...string) squirrel.SelectBuilder {
	return b.sb.Select(columns...)
}

func (b Builder) Insert(table string) squirrel.InsertBuilder {
	return b.sb.Insert(table)
}

func (b Builder) Update(table string) squirrel.UpdateBuilder {
	return b.sb.Update(table)
}

func (b Builder) Delete(table string) squirrel.DeleteBuilder {
	return b.sb.Delete(table)
}
