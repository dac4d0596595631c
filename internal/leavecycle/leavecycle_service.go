package leavecycle

import (
	"context"
	"errors"
	"time"

	"go-leaveledger/internal/employee"
	leavecycleerrors "go-leaveledger/internal/leavecycle/errors"
	"go-leaveledger/internal/leavepolicy"
	leavepolicyerrors "go-leaveledger/internal/leavepolicy/errors"
	"go-leaveledger/internal/shared/database"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=leavecycle_service.go -destination=mock/leavecycle_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateCycleRequest) (CycleResponse, error)
	Setup(ctx context.Context, req SetupCyclesRequest) (SetupCyclesResult, error)
	GetActiveCycle(ctx context.Context, employeeID, leaveTypeID string) (CycleResponse, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]CycleResponse, error)
	Close(ctx context.Context, id string) (CycleResponse, error)
}

type service struct {
	txm       database.TxManager
	repo      Repository
	policies  leavepolicy.Repository
	employees employee.Directory
	logger    *zap.Logger
}

func NewService(
	txm database.TxManager,
	repo Repository,
	policies leavepolicy.Repository,
	employees employee.Directory,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("leavecycle.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leavecycle.service")
	}
	return &service{txm: txm, repo: repo, policies: policies, employees: employees, logger: l}
}

func (s *service) Create(ctx context.Context, req CreateCycleRequest) (CycleResponse, error) {
	if _, err := uuid.Parse(req.EmployeeID); err != nil {
		return CycleResponse{}, leavecycleerrors.ErrInvalidEmployeeID
	}
	if _, err := uuid.Parse(req.LeaveTypeID); err != nil {
		return CycleResponse{}, leavecycleerrors.ErrInvalidLeaveTypeID
	}

	startYear := time.Now().Year()
	if req.Year != nil {
		startYear = *req.Year
	}

	var created *LeaveCycle
	err := s.txm.RunInTransaction(ctx, func(tx *gorm.DB) error {
		cycle, err := s.createCycleTx(ctx, tx, req.EmployeeID, req.LeaveTypeID, startYear)
		if err != nil {
			return err
		}
		created = cycle
		return nil
	})
	if err != nil {
		return CycleResponse{}, err
	}
	s.logger.Info("create cycle success",
		zap.String("cycle_id", created.ID.String()),
		zap.String("employee_id", req.EmployeeID),
		zap.Int("start_year", created.CycleStartYear),
		zap.Int("end_year", created.CycleEndYear),
	)

	return mapToResponse(*created), nil
}

// createCycleTx runs the overlap check and the insert inside the caller's
// transaction so concurrent setups cannot both pass the check.
func (s *service) createCycleTx(ctx context.Context, tx *gorm.DB, employeeID, leaveTypeID string, startYear int) (*LeaveCycle, error) {
	qtx := s.repo.WithTx(tx)

	policy, err := s.policies.WithTx(tx).FindActiveByLeaveType(ctx, leaveTypeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, leavepolicyerrors.ErrNoActivePolicy
		}
		return nil, err
	}

	endYear := startYear + policy.CycleLengthYears - 1

	overlap, err := qtx.HasOverlappingCycle(ctx, employeeID, leaveTypeID, startYear, endYear)
	if err != nil {
		return nil, err
	}
	if overlap {
		return nil, leavecycleerrors.ErrCycleOverlap
	}

	cycle := &LeaveCycle{
		ID:             uuid.New(),
		EmployeeID:     uuid.MustParse(employeeID),
		LeaveTypeID:    uuid.MustParse(leaveTypeID),
		CycleStartYear: startYear,
		CycleEndYear:   endYear,
		TotalCarried:   decimal.Zero,
		Status:         StatusActive,
	}
	if err := qtx.Create(ctx, cycle); err != nil {
		return nil, err
	}
	return cycle, nil
}

// Setup batch-creates cycles for every eligible active employee and every
// leave type carrying an active policy. One employee's failure is collected,
// not propagated; the rest of the batch commits independently.
func (s *service) Setup(ctx context.Context, req SetupCyclesRequest) (SetupCyclesResult, error) {
	startYear := time.Now().Year()
	if req.Year != nil {
		startYear = *req.Year
	}

	s.logger.Debug("cycle setup requested",
		zap.Int("year", startYear),
		zap.Bool("force_regenerate", req.ForceRegenerate),
	)

	policies, err := s.policies.ListActive(ctx)
	if err != nil {
		s.logger.Error("cycle setup list policies failed", zap.Error(err))
		return SetupCyclesResult{}, err
	}
	employees, err := s.employees.ListActive(ctx)
	if err != nil {
		s.logger.Error("cycle setup list employees failed", zap.Error(err))
		return SetupCyclesResult{}, err
	}

	result := SetupCyclesResult{}
	now := time.Now()

	for _, emp := range employees {
		for _, policy := range policies {
			if !eligible(emp, policy, now) {
				result.Skipped++
				continue
			}

			employeeID := emp.ID.String()
			leaveTypeID := policy.LeaveTypeID.String()

			if existing, err := s.repo.FindActive(ctx, employeeID, leaveTypeID); err == nil {
				if !req.ForceRegenerate {
					result.Skipped++
					continue
				}
				// Forced regeneration supersedes the current cycle.
				existing.Status = StatusCompleted
				if err := s.repo.Update(ctx, existing); err != nil {
					result.Failures = append(result.Failures, SetupFailure{
						EmployeeID:  employeeID,
						LeaveTypeID: leaveTypeID,
						Reason:      err.Error(),
					})
					continue
				}
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				result.Failures = append(result.Failures, SetupFailure{
					EmployeeID:  employeeID,
					LeaveTypeID: leaveTypeID,
					Reason:      err.Error(),
				})
				continue
			}

			var created *LeaveCycle
			err := s.txm.RunInTransaction(ctx, func(tx *gorm.DB) error {
				cycle, err := s.createCycleTx(ctx, tx, employeeID, leaveTypeID, startYear)
				if err != nil {
					return err
				}
				created = cycle
				return nil
			})
			if err != nil {
				if errors.Is(err, leavecycleerrors.ErrCycleOverlap) && !req.ForceRegenerate {
					result.Skipped++
					continue
				}
				result.Failures = append(result.Failures, SetupFailure{
					EmployeeID:  employeeID,
					LeaveTypeID: leaveTypeID,
					Reason:      err.Error(),
				})
				continue
			}
			result.Created = append(result.Created, mapToResponse(*created))
		}
	}

	s.logger.Info("cycle setup finished",
		zap.Int("created", len(result.Created)),
		zap.Int("skipped", result.Skipped),
		zap.Int("failures", len(result.Failures)),
	)

	return result, nil
}

func (s *service) GetActiveCycle(ctx context.Context, employeeID, leaveTypeID string) (CycleResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return CycleResponse{}, leavecycleerrors.ErrInvalidEmployeeID
	}
	if _, err := uuid.Parse(leaveTypeID); err != nil {
		return CycleResponse{}, leavecycleerrors.ErrInvalidLeaveTypeID
	}

	c, err := s.repo.FindActive(ctx, employeeID, leaveTypeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return CycleResponse{}, leavecycleerrors.ErrNoActiveCycle
		}
		return CycleResponse{}, err
	}
	return mapToResponse(*c), nil
}

func (s *service) ListByEmployee(ctx context.Context, employeeID string) ([]CycleResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return nil, leavecycleerrors.ErrInvalidEmployeeID
	}
	cycles, err := s.repo.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	resp := make([]CycleResponse, len(cycles))
	for i, c := range cycles {
		resp[i] = mapToResponse(c)
	}
	return resp, nil
}

// Close is irreversible.
func (s *service) Close(ctx context.Context, id string) (CycleResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return CycleResponse{}, leavecycleerrors.ErrInvalidCycleID
	}

	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return CycleResponse{}, leavecycleerrors.ErrCycleNotFound
		}
		return CycleResponse{}, err
	}
	if c.Status == StatusCompleted {
		return CycleResponse{}, leavecycleerrors.ErrCycleCompleted
	}

	c.Status = StatusCompleted
	if err := s.repo.Update(ctx, c); err != nil {
		s.logger.Error("close cycle persist failed", zap.String("cycle_id", id), zap.Error(err))
		return CycleResponse{}, err
	}
	s.logger.Info("close cycle success", zap.String("cycle_id", id))

	return mapToResponse(*c), nil
}

func eligible(emp employee.Employee, policy leavepolicy.LeavePolicy, now time.Time) bool {
	if !policy.AllowsEmployeeStatus(emp.EmploymentStatus) {
		return false
	}
	return emp.ServiceMonths(now) >= policy.MinimumServiceMonths
}

func mapToResponse(c LeaveCycle) CycleResponse {
	return CycleResponse{
		ID:             c.ID.String(),
		EmployeeID:     c.EmployeeID.String(),
		LeaveTypeID:    c.LeaveTypeID.String(),
		CycleStartYear: c.CycleStartYear,
		CycleEndYear:   c.CycleEndYear,
		TotalCarried:   c.TotalCarried.StringFixed(2),
		Status:         c.Status,
	}
}
