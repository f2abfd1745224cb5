package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Masterminds/squirrel"
	"github.com/vytor/deutschhub/internal/logger"
	"github.com/vytor/deutschhub/internal/repository"
)

const kvTable = "kv_store"

type kvRepository struct {
	db *sql.DB
}

// NewKeyValueRepository creates a KeyValueRepository backed by the kv_store table.
func NewKeyValueRepository(db *sql.DB) repository.KeyValueRepository {
	return &kvRepository{db: db}
}

func (r *kvRepository) Get(ctx context.Context, key string) (string, bool, error) {
	log := logger.FromContext(ctx).WithPrefix("kv_repo")
	log.Debug("getting value: key=%s", key)

	query, args, err := sqlBuilder.Select("value").
		From(kvTable).
		Where(squirrel.Eq{"key": key}).
		ToSql()
	if err != nil {
		return "", false, err
	}

	var value string
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("no value stored: key=%s", key)
		return "", false, nil
	}
	if err != nil {
		log.Error("failed to get value: %v", err)
		return "", false, err
	}
	log.Debug("value found: key=%s, bytes=%d", key, len(value))
	return value, true, nil
}

func (r *kvRepository) Put(ctx context.Context, key, value string) error {
	log := logger.FromContext(ctx).WithPrefix("kv_repo")
	log.Debug("putting value: key=%s, bytes=%d", key, len(value))

	query, args, err := sqlBuilder.Insert(kvTable).
		Columns("key", "value").
		Values(key, value).
		Suffix("ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP").
		ToSql()
	if err != nil {
		return err
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		log.Error("failed to put value: %v", err)
		return err
	}
	return nil
}

func (r *kvRepository) Delete(ctx context.Context, key string) error {
	log := logger.FromContext(ctx).WithPrefix("kv_repo")
	log.Debug("deleting value: key=%s", key)

	query, args, err := sqlBuilder.Delete(kvTable).
		Where(squirrel.Eq{"key": key}).
		ToSql()
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to delete value: %v", err)
		return err
	}
	if n, err := res.RowsAffected(); err == nil {
		log.Debug("deleted %d rows: key=%s", n, key)
	}
	return nil
}
