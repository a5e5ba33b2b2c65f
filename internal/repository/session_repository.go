package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Freeeeeet/tutor_ledger/internal/model"
	"github.com/Freeeeeet/tutor_ledger/internal/repository/base"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// NotifyChannel канал pg_notify, в который триггер пишет app_id:owner_id
const NotifyChannel = "teaching_sessions"

// ErrNotFound запись с таким ID у владельца отсутствует
var ErrNotFound = errors.New("session not found")

// SessionRepository хранит записи занятий в PostgreSQL.
// Изменения от любых клиентов приходят через LISTEN/NOTIFY.
type SessionRepository struct {
	*base.Repository
	hub    *Hub
	logger *zap.Logger
}

func NewSessionRepository(pool *pgxpool.Pool, appID string, logger *zap.Logger) *SessionRepository {
	return &SessionRepository{
		Repository: base.NewRepository(pool, appID),
		hub:        NewHub(),
		logger:     logger,
	}
}

// Listen держит соединение с LISTEN и будит подписчиков по уведомлениям.
// Возвращает nil после отмены ctx.
func (r *SessionRepository) Listen(ctx context.Context) error {
	conn, err := r.Pool().Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire listen connection: %w", err)
	}
	defer conn.Release()

	if _, err := conn.Exec(ctx, "LISTEN "+NotifyChannel); err != nil {
		return fmt.Errorf("listen %s: %w", NotifyChannel, err)
	}

	r.logger.Info("Listening for session changes", zap.String("channel", NotifyChannel))

	// Уведомления, пришедшие до LISTEN, потеряны: подписчики перечитывают списки
	r.hub.NotifyAll()

	for {
		notification, err := conn.Conn().WaitForNotification(ctx)
		if err != nil {
			if ctx.Err() != nil {
				r.logger.Info("Session change listener stopped")
				return nil
			}
			return fmt.Errorf("wait for notification: %w", err)
		}

		r.logger.Debug("Session change notification",
			zap.String("payload", notification.Payload))
		r.hub.Notify(notification.Payload)
	}
}

// Subscribe отдаёт список владельца сразу и после каждого изменения
func (r *SessionRepository) Subscribe(ctx context.Context, ownerID string) (<-chan model.Snapshot, error) {
	load := func(ctx context.Context) ([]*model.Session, error) {
		return r.List(ctx, ownerID)
	}
	return subscribe(ctx, r.hub, r.OwnerKey(ownerID), ownerID, load, r.logger), nil
}

// List получает все записи владельца, новые первыми
func (r *SessionRepository) List(ctx context.Context, ownerID string) ([]*model.Session, error) {
	query := `
		SELECT id, owner_id, session_date, student_name, topic, duration_hours, fee::text, created_at
		FROM teaching_sessions
		WHERE app_id = $1 AND owner_id = $2
		ORDER BY created_at DESC, id DESC
	`

	rows, err := r.Query(ctx, query, r.AppID(), ownerID)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	sessions := make([]*model.Session, 0)
	for rows.Next() {
		var (
			session model.Session
			id      uuid.UUID
			day     time.Time
			fee     string
		)
		err := rows.Scan(
			&id,
			&session.OwnerID,
			&day,
			&session.StudentName,
			&session.Topic,
			&session.Duration,
			&fee,
			&session.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}

		session.ID = id.String()
		session.Date = day.Format(model.DateLayout)
		session.Fee, err = decimal.NewFromString(fee)
		if err != nil {
			return nil, fmt.Errorf("parse fee of session %s: %w", session.ID, err)
		}
		sessions = append(sessions, &session)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sessions: %w", err)
	}

	return sessions, nil
}

// Create создаёт запись; created_at назначает сервер
func (r *SessionRepository) Create(ctx context.Context, ownerID string, in model.SessionInput) (string, error) {
	day, err := model.ParseDate(in.Date)
	if err != nil {
		return "", fmt.Errorf("parse session date: %w", err)
	}

	id := uuid.New()
	query := `
		INSERT INTO teaching_sessions (id, app_id, owner_id, session_date, student_name, topic, duration_hours, fee)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8::text::numeric)
		RETURNING created_at
	`

	var createdAt time.Time
	err = r.QueryRow(
		ctx, query,
		id,
		r.AppID(),
		ownerID,
		day,
		in.StudentName,
		in.Topic,
		in.Duration,
		in.Fee.String(),
	).Scan(&createdAt)
	if err != nil {
		return "", fmt.Errorf("create session: %w", err)
	}

	r.logger.Debug("Session inserted",
		zap.String("session_id", id.String()),
		zap.String("owner_id", ownerID),
		zap.Time("created_at", createdAt))

	return id.String(), nil
}

// Update перезаписывает поля записи, created_at не меняется
func (r *SessionRepository) Update(ctx context.Context, ownerID, id string, in model.SessionInput) error {
	sessionID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("update session %q: %w", id, ErrNotFound)
	}

	day, err := model.ParseDate(in.Date)
	if err != nil {
		return fmt.Errorf("parse session date: %w", err)
	}

	query := `
		UPDATE teaching_sessions
		SET session_date = $1, student_name = $2, topic = $3, duration_hours = $4, fee = $5::text::numeric, updated_at = now()
		WHERE app_id = $6 AND owner_id = $7 AND id = $8
	`

	affected, err := r.ExecAffected(
		ctx, query,
		day,
		in.StudentName,
		in.Topic,
		in.Duration,
		in.Fee.String(),
		r.AppID(),
		ownerID,
		sessionID,
	)
	if err != nil {
		return fmt.Errorf("update session: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("update session %s: %w", id, ErrNotFound)
	}

	return nil
}

// Delete удаляет запись владельца
func (r *SessionRepository) Delete(ctx context.Context, ownerID, id string) error {
	sessionID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("delete session %q: %w", id, ErrNotFound)
	}

	query := `DELETE FROM teaching_sessions WHERE app_id = $1 AND owner_id = $2 AND id = $3`

	affected, err := r.ExecAffected(ctx, query, r.AppID(), ownerID, sessionID)
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("delete session %s: %w", id, ErrNotFound)
	}

	return nil
}
