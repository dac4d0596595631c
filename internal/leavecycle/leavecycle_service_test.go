package leavecycle_test

import (
	"context"
	"testing"
	"time"

	"go-leaveledger/internal/employee"
	"go-leaveledger/internal/leavecycle"
	"go-leaveledger/internal/leavepolicy"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type stubTxManager struct{}

func (stubTxManager) RunInTransaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

type fakeCycleRepository struct {
	createFn              func(ctx context.Context, c *leavecycle.LeaveCycle) error
	findByIDFn            func(ctx context.Context, id string) (*leavecycle.LeaveCycle, error)
	findActiveFn          func(ctx context.Context, employeeID, leaveTypeID string) (*leavecycle.LeaveCycle, error)
	listByEmployeeFn      func(ctx context.Context, employeeID string) ([]leavecycle.LeaveCycle, error)
	hasOverlappingCycleFn func(ctx context.Context, employeeID, leaveTypeID string, startYear, endYear int) (bool, error)
	updateFn              func(ctx context.Context, c *leavecycle.LeaveCycle) error
}

func (f *fakeCycleRepository) WithTx(tx *gorm.DB) leavecycle.Repository { return f }

func (f *fakeCycleRepository) Create(ctx context.Context, c *leavecycle.LeaveCycle) error {
	if f.createFn != nil {
		return f.createFn(ctx, c)
	}
	return nil
}

func (f *fakeCycleRepository) FindByID(ctx context.Context, id string) (*leavecycle.LeaveCycle, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeCycleRepository) FindActive(ctx context.Context, employeeID, leaveTypeID string) (*leavecycle.LeaveCycle, error) {
	if f.findActiveFn != nil {
		return f.findActiveFn(ctx, employeeID, leaveTypeID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeCycleRepository) ListByEmployee(ctx context.Context, employeeID string) ([]leavecycle.LeaveCycle, error) {
	if f.listByEmployeeFn != nil {
		return f.listByEmployeeFn(ctx, employeeID)
	}
	return nil, nil
}

func (f *fakeCycleRepository) HasOverlappingCycle(ctx context.Context, employeeID, leaveTypeID string, startYear, endYear int) (bool, error) {
	if f.hasOverlappingCycleFn != nil {
		return f.hasOverlappingCycleFn(ctx, employeeID, leaveTypeID, startYear, endYear)
	}
	return false, nil
}

func (f *fakeCycleRepository) Update(ctx context.Context, c *leavecycle.LeaveCycle) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, c)
	}
	return nil
}

type fakePolicyRepository struct {
	findActiveByLeaveTypeFn func(ctx context.Context, leaveTypeID string) (*leavepolicy.LeavePolicy, error)
	listActiveFn            func(ctx context.Context) ([]leavepolicy.LeavePolicy, error)
}

func (f *fakePolicyRepository) WithTx(tx *gorm.DB) leavepolicy.Repository { return f }

func (f *fakePolicyRepository) Create(ctx context.Context, p *leavepolicy.LeavePolicy) error {
	return nil
}

func (f *fakePolicyRepository) FindAll(ctx context.Context) ([]leavepolicy.LeavePolicy, error) {
	return nil, nil
}

func (f *fakePolicyRepository) FindByID(ctx context.Context, id string) (*leavepolicy.LeavePolicy, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakePolicyRepository) FindActiveByLeaveType(ctx context.Context, leaveTypeID string) (*leavepolicy.LeavePolicy, error) {
	if f.findActiveByLeaveTypeFn != nil {
		return f.findActiveByLeaveTypeFn(ctx, leaveTypeID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakePolicyRepository) ListActive(ctx context.Context) ([]leavepolicy.LeavePolicy, error) {
	if f.listActiveFn != nil {
		return f.listActiveFn(ctx)
	}
	return nil, nil
}

func (f *fakePolicyRepository) Update(ctx context.Context, p *leavepolicy.LeavePolicy) error {
	return nil
}

type fakeDirectory struct {
	listActiveFn func(ctx context.Context) ([]employee.Employee, error)
}

func (f *fakeDirectory) FindByID(ctx context.Context, id string) (*employee.Employee, error) {
	return &employee.Employee{ID: uuid.MustParse(id)}, nil
}

func (f *fakeDirectory) ListActive(ctx context.Context) ([]employee.Employee, error) {
	if f.listActiveFn != nil {
		return f.listActiveFn(ctx)
	}
	return nil, nil
}

type cycleServiceDeps struct {
	service   leavecycle.Service
	repo      *fakeCycleRepository
	policies  *fakePolicyRepository
	employees *fakeDirectory
}

func setupCycleServiceTest(t *testing.T) *cycleServiceDeps {
	t.Helper()

	deps := &cycleServiceDeps{
		repo:      &fakeCycleRepository{},
		policies:  &fakePolicyRepository{},
		employees: &fakeDirectory{},
	}
	deps.service = leavecycle.NewService(stubTxManager{}, deps.repo, deps.policies, deps.employees)
	return deps
}

func twoYearPolicy(leaveTypeID uuid.UUID) *leavepolicy.LeavePolicy {
	return &leavepolicy.LeavePolicy{
		ID:                      uuid.New(),
		LeaveTypeID:             leaveTypeID,
		AnnualEntitlement:       decimal.NewFromInt(15),
		CycleLengthYears:        2,
		AllowedEmployeeStatuses: leavepolicy.AllStatuses,
		Status:                  leavepolicy.StatusActive,
	}
}

func TestCycleService_Create(t *testing.T) {
	ctx := context.Background()
	employeeID := uuid.New().String()
	leaveTypeID := uuid.New()
	year := 2026

	t.Run("span follows policy cycle length", func(t *testing.T) {
		deps := setupCycleServiceTest(t)

		deps.policies.findActiveByLeaveTypeFn = func(ctx context.Context, ltID string) (*leavepolicy.LeavePolicy, error) {
			return twoYearPolicy(leaveTypeID), nil
		}
		deps.repo.hasOverlappingCycleFn = func(ctx context.Context, eid, ltid string, startYear, endYear int) (bool, error) {
			assert.Equal(t, 2026, startYear)
			assert.Equal(t, 2027, endYear)
			return false, nil
		}

		resp, err := deps.service.Create(ctx, leavecycle.CreateCycleRequest{
			EmployeeID:  employeeID,
			LeaveTypeID: leaveTypeID.String(),
			Year:        &year,
		})

		assert.NoError(t, err)
		assert.Equal(t, 2026, resp.CycleStartYear)
		assert.Equal(t, 2027, resp.CycleEndYear)
		assert.Equal(t, leavecycle.StatusActive, resp.Status)
		assert.Equal(t, "0.00", resp.TotalCarried)
	})

	t.Run("negative overlapping cycle", func(t *testing.T) {
		deps := setupCycleServiceTest(t)

		deps.policies.findActiveByLeaveTypeFn = func(ctx context.Context, ltID string) (*leavepolicy.LeavePolicy, error) {
			return twoYearPolicy(leaveTypeID), nil
		}
		deps.repo.hasOverlappingCycleFn = func(ctx context.Context, eid, ltid string, startYear, endYear int) (bool, error) {
			return true, nil
		}

		_, err := deps.service.Create(ctx, leavecycle.CreateCycleRequest{
			EmployeeID:  employeeID,
			LeaveTypeID: leaveTypeID.String(),
			Year:        &year,
		})

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "overlap")
	})

	t.Run("negative no active policy", func(t *testing.T) {
		deps := setupCycleServiceTest(t)

		_, err := deps.service.Create(ctx, leavecycle.CreateCycleRequest{
			EmployeeID:  employeeID,
			LeaveTypeID: leaveTypeID.String(),
			Year:        &year,
		})

		assert.Error(t, err)
	})
}

func TestCycleService_Setup(t *testing.T) {
	ctx := context.Background()
	leaveTypeID := uuid.New()
	year := 2026

	activeEmployee := employee.Employee{
		ID:               uuid.New(),
		HireDate:         time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
		EmploymentStatus: employee.StatusActive,
	}

	t.Run("creates cycles for eligible employees", func(t *testing.T) {
		deps := setupCycleServiceTest(t)

		deps.policies.listActiveFn = func(ctx context.Context) ([]leavepolicy.LeavePolicy, error) {
			return []leavepolicy.LeavePolicy{*twoYearPolicy(leaveTypeID)}, nil
		}
		deps.policies.findActiveByLeaveTypeFn = func(ctx context.Context, ltID string) (*leavepolicy.LeavePolicy, error) {
			return twoYearPolicy(leaveTypeID), nil
		}
		deps.employees.listActiveFn = func(ctx context.Context) ([]employee.Employee, error) {
			return []employee.Employee{activeEmployee}, nil
		}

		result, err := deps.service.Setup(ctx, leavecycle.SetupCyclesRequest{Year: &year})

		assert.NoError(t, err)
		assert.Len(t, result.Created, 1)
		assert.Equal(t, 0, result.Skipped)
		assert.Empty(t, result.Failures)
		assert.Equal(t, 2026, result.Created[0].CycleStartYear)
	})

	t.Run("existing active cycle is skipped without force", func(t *testing.T) {
		deps := setupCycleServiceTest(t)

		deps.policies.listActiveFn = func(ctx context.Context) ([]leavepolicy.LeavePolicy, error) {
			return []leavepolicy.LeavePolicy{*twoYearPolicy(leaveTypeID)}, nil
		}
		deps.employees.listActiveFn = func(ctx context.Context) ([]employee.Employee, error) {
			return []employee.Employee{activeEmployee}, nil
		}
		deps.repo.findActiveFn = func(ctx context.Context, eid, ltid string) (*leavecycle.LeaveCycle, error) {
			return &leavecycle.LeaveCycle{ID: uuid.New(), Status: leavecycle.StatusActive}, nil
		}
		deps.repo.createFn = func(ctx context.Context, c *leavecycle.LeaveCycle) error {
			t.Fatal("create must not be called")
			return nil
		}

		result, err := deps.service.Setup(ctx, leavecycle.SetupCyclesRequest{Year: &year})

		assert.NoError(t, err)
		assert.Empty(t, result.Created)
		assert.Equal(t, 1, result.Skipped)
	})

	t.Run("force regenerate completes the superseded cycle", func(t *testing.T) {
		deps := setupCycleServiceTest(t)
		oldCycle := &leavecycle.LeaveCycle{
			ID:             uuid.New(),
			EmployeeID:     activeEmployee.ID,
			LeaveTypeID:    leaveTypeID,
			CycleStartYear: 2024,
			CycleEndYear:   2025,
			Status:         leavecycle.StatusActive,
		}

		deps.policies.listActiveFn = func(ctx context.Context) ([]leavepolicy.LeavePolicy, error) {
			return []leavepolicy.LeavePolicy{*twoYearPolicy(leaveTypeID)}, nil
		}
		deps.policies.findActiveByLeaveTypeFn = func(ctx context.Context, ltID string) (*leavepolicy.LeavePolicy, error) {
			return twoYearPolicy(leaveTypeID), nil
		}
		deps.employees.listActiveFn = func(ctx context.Context) ([]employee.Employee, error) {
			return []employee.Employee{activeEmployee}, nil
		}
		deps.repo.findActiveFn = func(ctx context.Context, eid, ltid string) (*leavecycle.LeaveCycle, error) {
			return oldCycle, nil
		}
		var completed *leavecycle.LeaveCycle
		deps.repo.updateFn = func(ctx context.Context, c *leavecycle.LeaveCycle) error {
			completed = c
			return nil
		}

		result, err := deps.service.Setup(ctx, leavecycle.SetupCyclesRequest{
			Year:            &year,
			ForceRegenerate: true,
		})

		assert.NoError(t, err)
		assert.Len(t, result.Created, 1)
		assert.NotNil(t, completed)
		assert.Equal(t, leavecycle.StatusCompleted, completed.Status)
	})

	t.Run("ineligible employee is skipped", func(t *testing.T) {
		deps := setupCycleServiceTest(t)
		policy := twoYearPolicy(leaveTypeID)
		policy.AllowedEmployeeStatuses = employee.StatusActive
		probation := activeEmployee
		probation.EmploymentStatus = employee.StatusProbation

		deps.policies.listActiveFn = func(ctx context.Context) ([]leavepolicy.LeavePolicy, error) {
			return []leavepolicy.LeavePolicy{*policy}, nil
		}
		deps.employees.listActiveFn = func(ctx context.Context) ([]employee.Employee, error) {
			return []employee.Employee{probation}, nil
		}

		result, err := deps.service.Setup(ctx, leavecycle.SetupCyclesRequest{Year: &year})

		assert.NoError(t, err)
		assert.Empty(t, result.Created)
		assert.Equal(t, 1, result.Skipped)
	})
}

func TestCycleService_Close(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	t.Run("success", func(t *testing.T) {
		deps := setupCycleServiceTest(t)

		deps.repo.findByIDFn = func(ctx context.Context, targetID string) (*leavecycle.LeaveCycle, error) {
			return &leavecycle.LeaveCycle{ID: id, Status: leavecycle.StatusActive}, nil
		}

		resp, err := deps.service.Close(ctx, id.String())

		assert.NoError(t, err)
		assert.Equal(t, leavecycle.StatusCompleted, resp.Status)
	})

	t.Run("negative already completed", func(t *testing.T) {
		deps := setupCycleServiceTest(t)

		deps.repo.findByIDFn = func(ctx context.Context, targetID string) (*leavecycle.LeaveCycle, error) {
			return &leavecycle.LeaveCycle{ID: id, Status: leavecycle.StatusCompleted}, nil
		}

		_, err := deps.service.Close(ctx, id.String())

		assert.Error(t, err)
	})
}

func TestLeaveCycle_Overlaps(t *testing.T) {
	c := leavecycle.LeaveCycle{CycleStartYear: 2025, CycleEndYear: 2026}

	assert.True(t, c.Overlaps(2026, 2027))
	assert.True(t, c.Overlaps(2024, 2025))
	assert.False(t, c.Overlaps(2027, 2028))
	assert.False(t, c.Overlaps(2023, 2024))
}
