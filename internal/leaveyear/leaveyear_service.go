package leaveyear

import (
	"context"
	"errors"
	"time"

	leaveyearerrors "go-leaveledger/internal/leaveyear/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=leaveyear_service.go -destination=mock/leaveyear_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateConfigurationRequest) (ConfigurationResponse, error)
	GetAll(ctx context.Context) ([]ConfigurationResponse, error)
	Update(ctx context.Context, id string, req UpdateConfigurationRequest) (ConfigurationResponse, error)
	Resolve(ctx context.Context, date time.Time) (ConfigurationResponse, error)
}

// Resolver is the port consumed by the balance ledger and request workflow:
// it maps a calendar date onto the leave year that absorbs it.
type Resolver interface {
	Resolve(ctx context.Context, date time.Time) (ConfigurationResponse, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("leaveyear.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leaveyear.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) Create(ctx context.Context, req CreateConfigurationRequest) (ConfigurationResponse, error) {
	start, err := time.Parse("2006-01-02", req.CutoffStartDate)
	if err != nil {
		return ConfigurationResponse{}, leaveyearerrors.ErrInvalidDateFormat
	}
	end, err := time.Parse("2006-01-02", req.CutoffEndDate)
	if err != nil {
		return ConfigurationResponse{}, leaveyearerrors.ErrInvalidDateFormat
	}
	if !start.Before(end) {
		return ConfigurationResponse{}, leaveyearerrors.ErrInvalidCutoffRange
	}

	if _, err := s.repo.FindByYear(ctx, req.Year); err == nil {
		return ConfigurationResponse{}, leaveyearerrors.ErrDuplicateYear
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("create leave year lookup failed", zap.Error(err))
		return ConfigurationResponse{}, err
	}

	cfg := &Configuration{
		ID:              uuid.New(),
		CutoffStartDate: start,
		CutoffEndDate:   end,
		Year:            req.Year,
		IsActive:        true,
	}

	if err := s.repo.Create(ctx, cfg); err != nil {
		s.logger.Error("create leave year persist failed", zap.Error(err))
		return ConfigurationResponse{}, err
	}
	s.logger.Info("create leave year success", zap.String("year", cfg.Year))

	return mapToResponse(*cfg), nil
}

func (s *service) GetAll(ctx context.Context) ([]ConfigurationResponse, error) {
	configs, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]ConfigurationResponse, len(configs))
	for i, cfg := range configs {
		resp[i] = mapToResponse(cfg)
	}
	return resp, nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateConfigurationRequest) (ConfigurationResponse, error) {
	cfg, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ConfigurationResponse{}, leaveyearerrors.ErrConfigurationNotFound
		}
		return ConfigurationResponse{}, err
	}

	start, err := time.Parse("2006-01-02", req.CutoffStartDate)
	if err != nil {
		return ConfigurationResponse{}, leaveyearerrors.ErrInvalidDateFormat
	}
	end, err := time.Parse("2006-01-02", req.CutoffEndDate)
	if err != nil {
		return ConfigurationResponse{}, leaveyearerrors.ErrInvalidDateFormat
	}
	if !start.Before(end) {
		return ConfigurationResponse{}, leaveyearerrors.ErrInvalidCutoffRange
	}

	cfg.CutoffStartDate = start
	cfg.CutoffEndDate = end
	cfg.IsActive = *req.IsActive

	if err := s.repo.Update(ctx, cfg); err != nil {
		s.logger.Error("update leave year persist failed", zap.String("year", cfg.Year), zap.Error(err))
		return ConfigurationResponse{}, err
	}

	return mapToResponse(*cfg), nil
}

func (s *service) Resolve(ctx context.Context, date time.Time) (ConfigurationResponse, error) {
	cfg, err := s.repo.FindByDate(ctx, date)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ConfigurationResponse{}, leaveyearerrors.ErrConfigurationNotFound
		}
		return ConfigurationResponse{}, err
	}
	return mapToResponse(*cfg), nil
}

func mapToResponse(cfg Configuration) ConfigurationResponse {
	return ConfigurationResponse{
		ID:              cfg.ID.String(),
		CutoffStartDate: cfg.CutoffStartDate.Format("2006-01-02"),
		CutoffEndDate:   cfg.CutoffEndDate.Format("2006-01-02"),
		Year:            cfg.Year,
		IsActive:        cfg.IsActive,
	}
}
