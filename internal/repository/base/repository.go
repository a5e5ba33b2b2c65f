package base

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository базовый репозиторий: пул соединений и пространство приложения
type Repository struct {
	pool  *pgxpool.Pool
	appID string
}

// NewRepository создаёт новый базовый репозиторий
func NewRepository(pool *pgxpool.Pool, appID string) *Repository {
	return &Repository{pool: pool, appID: appID}
}

// Pool возвращает пул соединений
func (r *Repository) Pool() *pgxpool.Pool {
	return r.pool
}

// AppID пространство, в котором лежат коллекции владельцев
func (r *Repository) AppID() string {
	return r.appID
}

// OwnerKey ключ коллекции владельца, совпадает с payload уведомлений
func (r *Repository) OwnerKey(ownerID string) string {
	return OwnerKey(r.appID, ownerID)
}

// OwnerKey ключ коллекции владельца в пространстве appID
func OwnerKey(appID, ownerID string) string {
	return appID + ":" + ownerID
}

// QueryRow выполняет запрос и возвращает одну строку
func (r *Repository) QueryRow(ctx context.Context, query string, args ...any) pgx.Row {
	return r.pool.QueryRow(ctx, query, args...)
}

// Query выполняет запрос и возвращает множество строк
func (r *Repository) Query(ctx context.Context, query string, args ...any) (pgx.Rows, error) {
	return r.pool.Query(ctx, query, args...)
}

// ExecAffected выполняет команду и возвращает количество затронутых строк
func (r *Repository) ExecAffected(ctx context.Context, query string, args ...any) (int64, error) {
	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
