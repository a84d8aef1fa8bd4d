package service

import (
	"context"
	"fmt"

	"github.com/IngMapache-Coder/Sistema-POS-Mar-de-Sabores/internal/dto"
	"github.com/IngMapache-Coder/Sistema-POS-Mar-de-Sabores/internal/model"
	"github.com/IngMapache-Coder/Sistema-POS-Mar-de-Sabores/internal/repository"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

// ConfigService exposes the editable business settings. The reopen password
// is write-only: it is bcrypt-hashed on update and never appears in any
// response.
type ConfigService interface {
	Get(ctx context.Context) (*dto.ConfigResponse, error)
	Update(ctx context.Context, req dto.UpdateConfigRequest) (*dto.ConfigResponse, error)
}

type configService struct {
	config repository.ConfigRepository
}

func NewConfigService(config repository.ConfigRepository) ConfigService {
	return &configService{config: config}
}

func (s *configService) Get(ctx context.Context) (*dto.ConfigResponse, error) {
	cfg, err := s.config.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("get config: %w", err)
	}
	return configToResponse(cfg), nil
}

func (s *configService) Update(ctx context.Context, req dto.UpdateConfigRequest) (*dto.ConfigResponse, error) {
	cfg, err := s.config.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("update config: %w", err)
	}

	if req.BusinessName != nil {
		cfg.BusinessName = *req.BusinessName
	}
	if req.BusinessAddress != nil {
		cfg.BusinessAddress = *req.BusinessAddress
	}
	if req.BusinessPhone != nil {
		cfg.BusinessPhone = *req.BusinessPhone
	}
	if req.BusinessNIT != nil {
		cfg.BusinessNIT = *req.BusinessNIT
	}
	if req.TopN != nil {
		cfg.TopN = *req.TopN
	}
	if req.AlertEmail != nil {
		cfg.AlertEmail = *req.AlertEmail
	}
	if req.DailyBase != nil {
		if req.DailyBase.IsNegative() {
			return nil, fmt.Errorf("update config: daily base cannot be negative")
		}
		cfg.DailyBase = *req.DailyBase
	}
	if req.ReopenPassword != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.ReopenPassword), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("update config: hash reopen password: %w", err)
		}
		cfg.ReopenPasswordHash = string(hash)
		log.Info().Msg("reopen password changed")
	}

	if err := s.config.Update(ctx, cfg); err != nil {
		return nil, fmt.Errorf("update config: %w", err)
	}
	return configToResponse(cfg), nil
}

func configToResponse(cfg *model.SystemConfig) *dto.ConfigResponse {
	return &dto.ConfigResponse{
		BusinessName:    cfg.BusinessName,
		BusinessAddress: cfg.BusinessAddress,
		BusinessPhone:   cfg.BusinessPhone,
		BusinessNIT:     cfg.BusinessNIT,
		TopN:            cfg.TopN,
		AlertEmail:      cfg.AlertEmail,
		DailyBase:       cfg.DailyBase,
	}
}
