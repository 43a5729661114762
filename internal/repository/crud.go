package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/Etiti27/saas-platform-sub000/internal/domain"
	"github.com/Etiti27/saas-platform-sub000/internal/tenancy"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type rowScanner interface {
	Scan(dest ...interface{}) error
}

// tableSpec describes one tenant table for the shared query helpers.
// Table and column names are constants, never user input.
type tableSpec struct {
	entity        string
	table         string
	columns       []string
	searchColumns []string
	sortColumns   []string
	defaultSort   string
}

func (s tableSpec) hasColumn(name string) bool {
	for _, c := range s.columns {
		if c == name {
			return true
		}
	}
	return false
}

func getOne[T any](ctx context.Context, tx *tenancy.Tx, spec tableSpec, where sq.Sqlizer, scan func(rowScanner) (*T, error)) (*T, error) {
	query, args, err := psql.Select(spec.columns...).From(spec.table).Where(where).Limit(1).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	item, err := scan(tx.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get %s: %w", spec.entity, err)
	}
	return item, nil
}

func getByID[T any](ctx context.Context, tx *tenancy.Tx, spec tableSpec, id string, scan func(rowScanner) (*T, error)) (*T, error) {
	return getOne(ctx, tx, spec, sq.Eq{"id": id}, scan)
}

// escapeLike makes search text literal inside an ILIKE pattern
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func listRows[T any](ctx context.Context, tx *tenancy.Tx, spec tableSpec, params domain.ListParams, scan func(rowScanner) (*T, error)) (*domain.ListResult[T], error) {
	params.Normalize()

	sortColumn, err := tenancy.ValidateSortColumn(params.SortBy, spec.sortColumns, spec.defaultSort)
	if err != nil {
		return nil, err
	}

	filter := func(b sq.SelectBuilder) sq.SelectBuilder {
		if params.Search == "" || len(spec.searchColumns) == 0 {
			return b
		}
		pattern := "%" + escapeLike(params.Search) + "%"
		or := sq.Or{}
		for _, col := range spec.searchColumns {
			or = append(or, sq.ILike{col: pattern})
		}
		return b.Where(or)
	}

	countQuery, countArgs, err := filter(psql.Select("COUNT(*)").From(spec.table)).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build count query: %w", err)
	}

	var total int
	if err := tx.QueryRowContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("failed to count %s: %w", spec.entity, err)
	}

	direction := "DESC"
	if params.SortDir == domain.SortAsc {
		direction = "ASC"
	}

	query, args, err := filter(psql.Select(spec.columns...).From(spec.table)).
		OrderBy(string(sortColumn)+" "+direction, "id "+direction).
		Limit(uint64(params.PageSize)).
		Offset(uint64(params.Offset())).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := tx.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", spec.entity, err)
	}
	defer rows.Close()

	items := make([]T, 0, params.PageSize)
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", spec.entity, err)
		}
		items = append(items, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating %s rows: %w", spec.entity, err)
	}

	return &domain.ListResult[T]{
		Items:    items,
		Total:    total,
		Page:     params.Page,
		PageSize: params.PageSize,
	}, nil
}

// updateRow applies patch and returns the updated row, or nil if id does not exist
func updateRow[T any](ctx context.Context, tx *tenancy.Tx, spec tableSpec, id string, patch domain.Patch, scan func(rowScanner) (*T, error)) (*T, error) {
	if len(patch) == 0 {
		return nil, domain.NewValidationError("no fields to update")
	}

	values := make(map[string]interface{}, len(patch)+1)
	for column, value := range patch {
		if !spec.hasColumn(column) || column == "id" {
			return nil, fmt.Errorf("cannot update column %s on %s", column, spec.table)
		}
		values[column] = value
	}
	values["updated_at"] = time.Now().UTC()

	query, args, err := psql.Update(spec.table).
		SetMap(values).
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING " + strings.Join(spec.columns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	item, err := scan(tx.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update %s: %w", spec.entity, mapPgError(err))
	}
	return item, nil
}

// deleteRow hard-deletes id; false means it did not exist
func deleteRow(ctx context.Context, tx *tenancy.Tx, spec tableSpec, id string) (bool, error) {
	query, args, err := psql.Delete(spec.table).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build query: %w", err)
	}

	result, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("failed to delete %s: %w", spec.entity, mapPgError(err))
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get affected rows: %w", err)
	}
	return affected > 0, nil
}

func insertRow(ctx context.Context, tx *tenancy.Tx, spec tableSpec, values map[string]interface{}) error {
	query, args, err := psql.Insert(spec.table).SetMap(values).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to create %s: %w", spec.entity, mapPgError(err))
	}
	return nil
}
