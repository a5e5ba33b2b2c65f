package repository

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Freeeeeet/tutor_ledger/internal/model"
	"github.com/Freeeeeet/tutor_ledger/internal/repository/base"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// sessionRow строка таблицы teaching_sessions в локальной базе
type sessionRow struct {
	ID            string    `gorm:"primaryKey"`
	AppID         string    `gorm:"not null;index:idx_sessions_owner,priority:1"`
	OwnerID       string    `gorm:"not null;index:idx_sessions_owner,priority:2"`
	SessionDate   string    `gorm:"not null"`
	StudentName   string    `gorm:"not null"`
	Topic         string    `gorm:"not null"`
	DurationHours float64   `gorm:"not null"`
	Fee           string    `gorm:"not null"` // decimal в текстовом виде
	CreatedAt     time.Time `gorm:"not null;index"`
	UpdatedAt     time.Time
}

func (sessionRow) TableName() string {
	return "teaching_sessions"
}

// LocalRepository хранит записи в одном файле SQLite.
// Подписчики этого процесса узнают об изменениях сразу после записи.
type LocalRepository struct {
	db     *gorm.DB
	appID  string
	hub    *Hub
	logger *zap.Logger
	now    func() time.Time
}

// OpenLocalRepository открывает (и при необходимости создаёт) базу по пути path
func OpenLocalRepository(path, appID string, logger *zap.Logger) (*LocalRepository, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.AutoMigrate(&sessionRow{}); err != nil {
		return nil, fmt.Errorf("migrate sqlite database: %w", err)
	}

	logger.Info("Local session store opened", zap.String("path", path))

	return &LocalRepository{
		db:     db,
		appID:  appID,
		hub:    NewHub(),
		logger: logger,
		now:    time.Now,
	}, nil
}

// Close закрывает соединение с базой
func (r *LocalRepository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Subscribe отдаёт список владельца сразу и после каждой записи
func (r *LocalRepository) Subscribe(ctx context.Context, ownerID string) (<-chan model.Snapshot, error) {
	load := func(ctx context.Context) ([]*model.Session, error) {
		return r.List(ctx, ownerID)
	}
	return subscribe(ctx, r.hub, base.OwnerKey(r.appID, ownerID), ownerID, load, r.logger), nil
}

// List получает все записи владельца, новые первыми
func (r *LocalRepository) List(ctx context.Context, ownerID string) ([]*model.Session, error) {
	var rows []sessionRow
	err := r.db.WithContext(ctx).
		Where("app_id = ? AND owner_id = ?", r.appID, ownerID).
		Order("created_at DESC").
		Order("id DESC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}

	sessions := make([]*model.Session, 0, len(rows))
	for _, row := range rows {
		fee, err := decimal.NewFromString(row.Fee)
		if err != nil {
			return nil, fmt.Errorf("parse fee of session %s: %w", row.ID, err)
		}
		sessions = append(sessions, &model.Session{
			ID:          row.ID,
			OwnerID:     row.OwnerID,
			Date:        row.SessionDate,
			StudentName: row.StudentName,
			Topic:       row.Topic,
			Duration:    row.DurationHours,
			Fee:         fee,
			CreatedAt:   row.CreatedAt,
		})
	}

	return sessions, nil
}

// Create создаёт запись и будит подписчиков владельца
func (r *LocalRepository) Create(ctx context.Context, ownerID string, in model.SessionInput) (string, error) {
	now := r.now().UTC()
	row := sessionRow{
		ID:            uuid.NewString(),
		AppID:         r.appID,
		OwnerID:       ownerID,
		SessionDate:   in.Date,
		StudentName:   in.StudentName,
		Topic:         in.Topic,
		DurationHours: in.Duration,
		Fee:           in.Fee.String(),
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return "", fmt.Errorf("create session: %w", err)
	}

	r.hub.Notify(base.OwnerKey(r.appID, ownerID))
	return row.ID, nil
}

// Update перезаписывает поля записи, created_at не меняется
func (r *LocalRepository) Update(ctx context.Context, ownerID, id string, in model.SessionInput) error {
	result := r.db.WithContext(ctx).
		Model(&sessionRow{}).
		Where("app_id = ? AND owner_id = ? AND id = ?", r.appID, ownerID, id).
		Updates(map[string]any{
			"session_date":   in.Date,
			"student_name":   in.StudentName,
			"topic":          in.Topic,
			"duration_hours": in.Duration,
			"fee":            in.Fee.String(),
			"updated_at":     r.now().UTC(),
		})
	if result.Error != nil {
		return fmt.Errorf("update session: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("update session %s: %w", id, ErrNotFound)
	}

	r.hub.Notify(base.OwnerKey(r.appID, ownerID))
	return nil
}

// Delete удаляет запись и будит подписчиков владельца
func (r *LocalRepository) Delete(ctx context.Context, ownerID, id string) error {
	result := r.db.WithContext(ctx).
		Where("app_id = ? AND owner_id = ? AND id = ?", r.appID, ownerID, id).
		Delete(&sessionRow{})
	if result.Error != nil {
		return fmt.Errorf("delete session: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("delete session %s: %w", id, ErrNotFound)
	}

	r.hub.Notify(base.OwnerKey(r.appID, ownerID))
	return nil
}
