package repository

import (
	"context"
	"errors"

	"github.com/AankTia/ecommerce-app/internal/domain/model"
	repo "github.com/AankTia/ecommerce-app/internal/repository"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type ProcessedEventGormRepository struct {
	db *gorm.DB
}

func NewProcessedEventGormRepository(db *gorm.DB) *ProcessedEventGormRepository {
	return &ProcessedEventGormRepository{db: db}
}

func (r *ProcessedEventGormRepository) Exists(ctx context.Context, eventID string) (bool, error) {
	var ev model.ProcessedEvent
	err := r.db.WithContext(ctx).Select("event_id").Where("event_id = ?", eventID).First(&ev).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *ProcessedEventGormRepository) Create(ctx context.Context, ev model.ProcessedEvent) error {
	err := r.db.WithContext(ctx).Create(&ev).Error
	if isUniqueViolation(err) {
		//同時配送で先に書かれた
		return repo.ErrDuplicateEvent
	}
	return err
}

// PostgreSQLのunique_violation
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
