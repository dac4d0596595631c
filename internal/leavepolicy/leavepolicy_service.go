package leavepolicy

import (
	"context"
	"errors"
	"time"

	leavepolicyerrors "go-leaveledger/internal/leavepolicy/errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=leavepolicy_service.go -destination=mock/leavepolicy_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreatePolicyRequest) (PolicyResponse, error)
	GetAll(ctx context.Context) ([]PolicyResponse, error)
	GetByID(ctx context.Context, id string) (PolicyResponse, error)
	GetActivePolicy(ctx context.Context, leaveTypeID string) (PolicyResponse, error)
	Update(ctx context.Context, id string, req UpdatePolicyRequest) (PolicyResponse, error)
	Activate(ctx context.Context, id string) (PolicyResponse, error)
	Retire(ctx context.Context, id string) (PolicyResponse, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("leavepolicy.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leavepolicy.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) Create(ctx context.Context, req CreatePolicyRequest) (PolicyResponse, error) {
	leaveTypeID, err := uuid.Parse(req.LeaveTypeID)
	if err != nil {
		return PolicyResponse{}, leavepolicyerrors.ErrInvalidLeaveTypeID
	}

	entitlement, carryLimit, encashLimit, err := parseLimits(req.AnnualEntitlement, req.CarryLimit, req.EncashLimit)
	if err != nil {
		return PolicyResponse{}, err
	}
	if req.CycleLengthYears < 1 {
		return PolicyResponse{}, leavepolicyerrors.ErrInvalidCycleLength
	}

	effectiveDate, expiryDate, err := parseEffectiveWindow(req.EffectiveDate, req.ExpiryDate)
	if err != nil {
		return PolicyResponse{}, err
	}

	status := StatusDraft
	if req.Activate {
		status = StatusActive
	}
	allowed := req.AllowedEmployeeStatuses
	if allowed == "" {
		allowed = AllStatuses
	}

	p := &LeavePolicy{
		ID:                      uuid.New(),
		LeaveTypeID:             leaveTypeID,
		AnnualEntitlement:       entitlement,
		CarryLimit:              carryLimit,
		EncashLimit:             encashLimit,
		CycleLengthYears:        req.CycleLengthYears,
		EffectiveDate:           effectiveDate,
		ExpiryDate:              expiryDate,
		Status:                  status,
		MinimumServiceMonths:    req.MinimumServiceMonths,
		AllowedEmployeeStatuses: allowed,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		s.logger.Error("create policy persist failed", zap.Error(err))
		return PolicyResponse{}, err
	}
	s.logger.Info("create policy success",
		zap.String("policy_id", p.ID.String()),
		zap.String("leave_type_id", req.LeaveTypeID),
		zap.String("status", p.Status),
	)

	return mapToResponse(*p), nil
}

func (s *service) GetAll(ctx context.Context) ([]PolicyResponse, error) {
	policies, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]PolicyResponse, len(policies))
	for i, p := range policies {
		resp[i] = mapToResponse(p)
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, id string) (PolicyResponse, error) {
	p, err := s.findPolicy(ctx, id)
	if err != nil {
		return PolicyResponse{}, err
	}
	return mapToResponse(*p), nil
}

func (s *service) GetActivePolicy(ctx context.Context, leaveTypeID string) (PolicyResponse, error) {
	if _, err := uuid.Parse(leaveTypeID); err != nil {
		return PolicyResponse{}, leavepolicyerrors.ErrInvalidLeaveTypeID
	}
	p, err := s.repo.FindActiveByLeaveType(ctx, leaveTypeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PolicyResponse{}, leavepolicyerrors.ErrNoActivePolicy
		}
		return PolicyResponse{}, err
	}
	return mapToResponse(*p), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdatePolicyRequest) (PolicyResponse, error) {
	p, err := s.findPolicy(ctx, id)
	if err != nil {
		return PolicyResponse{}, err
	}
	if p.Status == StatusRetired {
		return PolicyResponse{}, leavepolicyerrors.ErrPolicyRetired
	}

	entitlement, carryLimit, encashLimit, err := parseLimits(req.AnnualEntitlement, req.CarryLimit, req.EncashLimit)
	if err != nil {
		return PolicyResponse{}, err
	}
	if req.CycleLengthYears < 1 {
		return PolicyResponse{}, leavepolicyerrors.ErrInvalidCycleLength
	}
	effectiveDate, expiryDate, err := parseEffectiveWindow(req.EffectiveDate, req.ExpiryDate)
	if err != nil {
		return PolicyResponse{}, err
	}

	p.AnnualEntitlement = entitlement
	p.CarryLimit = carryLimit
	p.EncashLimit = encashLimit
	p.CycleLengthYears = req.CycleLengthYears
	p.EffectiveDate = effectiveDate
	p.ExpiryDate = expiryDate
	p.MinimumServiceMonths = req.MinimumServiceMonths
	if req.AllowedEmployeeStatuses != "" {
		p.AllowedEmployeeStatuses = req.AllowedEmployeeStatuses
	}

	if err := s.repo.Update(ctx, p); err != nil {
		s.logger.Error("update policy persist failed", zap.String("policy_id", id), zap.Error(err))
		return PolicyResponse{}, err
	}
	s.logger.Info("update policy success", zap.String("policy_id", id))

	return mapToResponse(*p), nil
}

// Activate promotes a draft policy. Activating an already active policy is
// a no-op success. Retiring any previously active policy for the same leave
// type is the caller's responsibility; the lookup always prefers the most
// recent effective_date.
func (s *service) Activate(ctx context.Context, id string) (PolicyResponse, error) {
	p, err := s.findPolicy(ctx, id)
	if err != nil {
		return PolicyResponse{}, err
	}
	switch p.Status {
	case StatusActive:
		return mapToResponse(*p), nil
	case StatusRetired:
		return PolicyResponse{}, leavepolicyerrors.ErrPolicyRetired
	}

	p.Status = StatusActive
	if err := s.repo.Update(ctx, p); err != nil {
		s.logger.Error("activate policy persist failed", zap.String("policy_id", id), zap.Error(err))
		return PolicyResponse{}, err
	}
	s.logger.Info("activate policy success", zap.String("policy_id", id))

	return mapToResponse(*p), nil
}

// Retire is terminal: retired policies stay retired and no replacement is
// activated automatically.
func (s *service) Retire(ctx context.Context, id string) (PolicyResponse, error) {
	p, err := s.findPolicy(ctx, id)
	if err != nil {
		return PolicyResponse{}, err
	}
	if p.Status == StatusRetired {
		return mapToResponse(*p), nil
	}

	p.Status = StatusRetired
	if err := s.repo.Update(ctx, p); err != nil {
		s.logger.Error("retire policy persist failed", zap.String("policy_id", id), zap.Error(err))
		return PolicyResponse{}, err
	}
	s.logger.Info("retire policy success", zap.String("policy_id", id))

	return mapToResponse(*p), nil
}

func (s *service) findPolicy(ctx context.Context, id string) (*LeavePolicy, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, leavepolicyerrors.ErrInvalidPolicyID
	}
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, leavepolicyerrors.ErrPolicyNotFound
		}
		return nil, err
	}
	return p, nil
}

func parseLimits(entitlement, carry, encash string) (decimal.Decimal, decimal.Decimal, decimal.Decimal, error) {
	e, err := parseNonNegative(entitlement)
	if err != nil {
		return decimal.Zero, decimal.Zero, decimal.Zero, err
	}
	c, err := parseNonNegative(carry)
	if err != nil {
		return decimal.Zero, decimal.Zero, decimal.Zero, err
	}
	x, err := parseNonNegative(encash)
	if err != nil {
		return decimal.Zero, decimal.Zero, decimal.Zero, err
	}
	return e, c, x, nil
}

func parseNonNegative(v string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(v)
	if err != nil || d.IsNegative() {
		return decimal.Zero, leavepolicyerrors.ErrInvalidEntitlement
	}
	return d.Round(2), nil
}

func parseEffectiveWindow(effective string, expiry *string) (time.Time, *time.Time, error) {
	effectiveDate, err := time.Parse("2006-01-02", effective)
	if err != nil {
		return time.Time{}, nil, leavepolicyerrors.ErrInvalidDateFormat
	}

	var expiryDate *time.Time
	if expiry != nil && *expiry != "" {
		parsed, err := time.Parse("2006-01-02", *expiry)
		if err != nil {
			return time.Time{}, nil, leavepolicyerrors.ErrInvalidDateFormat
		}
		if !effectiveDate.Before(parsed) {
			return time.Time{}, nil, leavepolicyerrors.ErrInvalidEffectiveWindow
		}
		expiryDate = &parsed
	}
	return effectiveDate, expiryDate, nil
}

func mapToResponse(p LeavePolicy) PolicyResponse {
	resp := PolicyResponse{
		ID:                      p.ID.String(),
		LeaveTypeID:             p.LeaveTypeID.String(),
		AnnualEntitlement:       p.AnnualEntitlement.StringFixed(2),
		CarryLimit:              p.CarryLimit.StringFixed(2),
		EncashLimit:             p.EncashLimit.StringFixed(2),
		CycleLengthYears:        p.CycleLengthYears,
		EffectiveDate:           p.EffectiveDate.Format("2006-01-02"),
		Status:                  p.Status,
		MinimumServiceMonths:    p.MinimumServiceMonths,
		AllowedEmployeeStatuses: p.AllowedEmployeeStatuses,
	}
	if p.ExpiryDate != nil {
		v := p.ExpiryDate.Format("2006-01-02")
		resp.ExpiryDate = &v
	}
	return resp
}
