package repository

import (
	"context"
	"errors"

	"github.com/IngMapache-Coder/Sistema-POS-Mar-de-Sabores/internal/model"

	"gorm.io/gorm"
)

// ConfigRepository manages the single system_config row. Get creates the row
// with defaults on first access so callers never see "not found".
type ConfigRepository interface {
	Get(ctx context.Context) (*model.SystemConfig, error)
	Update(ctx context.Context, cfg *model.SystemConfig) error
}

type configRepo struct{ db *gorm.DB }

func NewConfigRepository(db *gorm.DB) ConfigRepository { return &configRepo{db: db} }

func (r *configRepo) Get(ctx context.Context) (*model.SystemConfig, error) {
	var cfg model.SystemConfig
	err := r.db.WithContext(ctx).First(&cfg).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		cfg = model.SystemConfig{
			BusinessName: "Mar de Sabores",
			TopN:         10,
		}
		if err := r.db.WithContext(ctx).Create(&cfg).Error; err != nil {
			return nil, err
		}
		return &cfg, nil
	}
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (r *configRepo) Update(ctx context.Context, cfg *model.SystemConfig) error {
	return r.db.WithContext(ctx).Save(cfg).Error
}
