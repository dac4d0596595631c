package leavepolicy_test

import (
	"context"
	"errors"
	"testing"

	"go-leaveledger/internal/leavepolicy"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakePolicyRepository struct {
	createFn                func(ctx context.Context, p *leavepolicy.LeavePolicy) error
	findAllFn               func(ctx context.Context) ([]leavepolicy.LeavePolicy, error)
	findByIDFn              func(ctx context.Context, id string) (*leavepolicy.LeavePolicy, error)
	findActiveByLeaveTypeFn func(ctx context.Context, leaveTypeID string) (*leavepolicy.LeavePolicy, error)
	listActiveFn            func(ctx context.Context) ([]leavepolicy.LeavePolicy, error)
	updateFn                func(ctx context.Context, p *leavepolicy.LeavePolicy) error
}

func (f *fakePolicyRepository) WithTx(tx *gorm.DB) leavepolicy.Repository {
	return f
}

func (f *fakePolicyRepository) Create(ctx context.Context, p *leavepolicy.LeavePolicy) error {
	if f.createFn != nil {
		return f.createFn(ctx, p)
	}
	return nil
}

func (f *fakePolicyRepository) FindAll(ctx context.Context) ([]leavepolicy.LeavePolicy, error) {
	if f.findAllFn != nil {
		return f.findAllFn(ctx)
	}
	return nil, nil
}

func (f *fakePolicyRepository) FindByID(ctx context.Context, id string) (*leavepolicy.LeavePolicy, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
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
	if f.updateFn != nil {
		return f.updateFn(ctx, p)
	}
	return nil
}

func TestPolicyService_Create(t *testing.T) {
	ctx := context.Background()
	leaveTypeID := uuid.New().String()

	t.Run("success draft by default", func(t *testing.T) {
		repo := &fakePolicyRepository{}
		svc := leavepolicy.NewService(repo)

		repo.createFn = func(ctx context.Context, p *leavepolicy.LeavePolicy) error {
			assert.Equal(t, leavepolicy.StatusDraft, p.Status)
			assert.Equal(t, "15", p.AnnualEntitlement.String())
			assert.Equal(t, "5", p.CarryLimit.String())
			assert.Equal(t, leavepolicy.AllStatuses, p.AllowedEmployeeStatuses)
			return nil
		}

		resp, err := svc.Create(ctx, leavepolicy.CreatePolicyRequest{
			LeaveTypeID:       leaveTypeID,
			AnnualEntitlement: "15",
			CarryLimit:        "5",
			EncashLimit:       "10",
			CycleLengthYears:  1,
			EffectiveDate:     "2026-01-01",
		})

		assert.NoError(t, err)
		assert.Equal(t, leavepolicy.StatusDraft, resp.Status)
		assert.Equal(t, "15.00", resp.AnnualEntitlement)
	})

	t.Run("success immediately active", func(t *testing.T) {
		repo := &fakePolicyRepository{}
		svc := leavepolicy.NewService(repo)

		resp, err := svc.Create(ctx, leavepolicy.CreatePolicyRequest{
			LeaveTypeID:       leaveTypeID,
			AnnualEntitlement: "12",
			CarryLimit:        "0",
			EncashLimit:       "0",
			CycleLengthYears:  2,
			EffectiveDate:     "2026-01-01",
			Activate:          true,
		})

		assert.NoError(t, err)
		assert.Equal(t, leavepolicy.StatusActive, resp.Status)
	})

	t.Run("negative entitlement rejected", func(t *testing.T) {
		repo := &fakePolicyRepository{}
		svc := leavepolicy.NewService(repo)

		_, err := svc.Create(ctx, leavepolicy.CreatePolicyRequest{
			LeaveTypeID:       leaveTypeID,
			AnnualEntitlement: "-1",
			CarryLimit:        "5",
			EncashLimit:       "0",
			CycleLengthYears:  1,
			EffectiveDate:     "2026-01-01",
		})

		assert.Error(t, err)
	})

	t.Run("negative expiry before effective rejected", func(t *testing.T) {
		repo := &fakePolicyRepository{}
		svc := leavepolicy.NewService(repo)

		expiry := "2025-12-31"
		_, err := svc.Create(ctx, leavepolicy.CreatePolicyRequest{
			LeaveTypeID:       leaveTypeID,
			AnnualEntitlement: "15",
			CarryLimit:        "5",
			EncashLimit:       "0",
			CycleLengthYears:  1,
			EffectiveDate:     "2026-01-01",
			ExpiryDate:        &expiry,
		})

		assert.Error(t, err)
	})
}

func TestPolicyService_Activate(t *testing.T) {
	ctx := context.Background()
	id := uuid.New().String()

	t.Run("promotes draft", func(t *testing.T) {
		repo := &fakePolicyRepository{}
		svc := leavepolicy.NewService(repo)

		repo.findByIDFn = func(ctx context.Context, targetID string) (*leavepolicy.LeavePolicy, error) {
			return &leavepolicy.LeavePolicy{
				ID:     uuid.MustParse(targetID),
				Status: leavepolicy.StatusDraft,
			}, nil
		}
		updated := false
		repo.updateFn = func(ctx context.Context, p *leavepolicy.LeavePolicy) error {
			updated = true
			assert.Equal(t, leavepolicy.StatusActive, p.Status)
			return nil
		}

		resp, err := svc.Activate(ctx, id)

		assert.NoError(t, err)
		assert.True(t, updated)
		assert.Equal(t, leavepolicy.StatusActive, resp.Status)
	})

	t.Run("already active is a no-op", func(t *testing.T) {
		repo := &fakePolicyRepository{}
		svc := leavepolicy.NewService(repo)

		repo.findByIDFn = func(ctx context.Context, targetID string) (*leavepolicy.LeavePolicy, error) {
			return &leavepolicy.LeavePolicy{
				ID:     uuid.MustParse(targetID),
				Status: leavepolicy.StatusActive,
			}, nil
		}
		repo.updateFn = func(ctx context.Context, p *leavepolicy.LeavePolicy) error {
			t.Fatal("update must not be called")
			return nil
		}

		resp, err := svc.Activate(ctx, id)

		assert.NoError(t, err)
		assert.Equal(t, leavepolicy.StatusActive, resp.Status)
	})

	t.Run("negative retired cannot be activated", func(t *testing.T) {
		repo := &fakePolicyRepository{}
		svc := leavepolicy.NewService(repo)

		repo.findByIDFn = func(ctx context.Context, targetID string) (*leavepolicy.LeavePolicy, error) {
			return &leavepolicy.LeavePolicy{
				ID:     uuid.MustParse(targetID),
				Status: leavepolicy.StatusRetired,
			}, nil
		}

		_, err := svc.Activate(ctx, id)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "retired")
	})
}

func TestPolicyService_Retire(t *testing.T) {
	ctx := context.Background()
	id := uuid.New().String()

	t.Run("retire is idempotent", func(t *testing.T) {
		repo := &fakePolicyRepository{}
		svc := leavepolicy.NewService(repo)

		repo.findByIDFn = func(ctx context.Context, targetID string) (*leavepolicy.LeavePolicy, error) {
			return &leavepolicy.LeavePolicy{
				ID:     uuid.MustParse(targetID),
				Status: leavepolicy.StatusRetired,
			}, nil
		}
		repo.updateFn = func(ctx context.Context, p *leavepolicy.LeavePolicy) error {
			t.Fatal("update must not be called")
			return nil
		}

		resp, err := svc.Retire(ctx, id)

		assert.NoError(t, err)
		assert.Equal(t, leavepolicy.StatusRetired, resp.Status)
	})

	t.Run("retires active policy", func(t *testing.T) {
		repo := &fakePolicyRepository{}
		svc := leavepolicy.NewService(repo)

		repo.findByIDFn = func(ctx context.Context, targetID string) (*leavepolicy.LeavePolicy, error) {
			return &leavepolicy.LeavePolicy{
				ID:     uuid.MustParse(targetID),
				Status: leavepolicy.StatusActive,
			}, nil
		}

		resp, err := svc.Retire(ctx, id)

		assert.NoError(t, err)
		assert.Equal(t, leavepolicy.StatusRetired, resp.Status)
	})
}

func TestPolicyService_Update(t *testing.T) {
	ctx := context.Background()
	id := uuid.New().String()

	t.Run("negative retired policy is immutable", func(t *testing.T) {
		repo := &fakePolicyRepository{}
		svc := leavepolicy.NewService(repo)

		repo.findByIDFn = func(ctx context.Context, targetID string) (*leavepolicy.LeavePolicy, error) {
			return &leavepolicy.LeavePolicy{
				ID:     uuid.MustParse(targetID),
				Status: leavepolicy.StatusRetired,
			}, nil
		}

		_, err := svc.Update(ctx, id, leavepolicy.UpdatePolicyRequest{
			AnnualEntitlement: "20",
			CarryLimit:        "5",
			EncashLimit:       "0",
			CycleLengthYears:  1,
			EffectiveDate:     "2026-01-01",
		})

		assert.Error(t, err)
	})

	t.Run("negative not found", func(t *testing.T) {
		repo := &fakePolicyRepository{}
		svc := leavepolicy.NewService(repo)

		repo.findByIDFn = func(ctx context.Context, targetID string) (*leavepolicy.LeavePolicy, error) {
			return nil, gorm.ErrRecordNotFound
		}

		_, err := svc.Update(ctx, id, leavepolicy.UpdatePolicyRequest{
			AnnualEntitlement: "20",
			CarryLimit:        "5",
			EncashLimit:       "0",
			CycleLengthYears:  1,
			EffectiveDate:     "2026-01-01",
		})

		assert.Error(t, err)
	})
}

func TestPolicyService_GetActivePolicy(t *testing.T) {
	ctx := context.Background()
	leaveTypeID := uuid.New().String()

	t.Run("negative no active policy", func(t *testing.T) {
		repo := &fakePolicyRepository{}
		svc := leavepolicy.NewService(repo)

		_, err := svc.GetActivePolicy(ctx, leaveTypeID)

		assert.Error(t, err)
	})

	t.Run("negative repo error surfaces", func(t *testing.T) {
		repo := &fakePolicyRepository{}
		svc := leavepolicy.NewService(repo)

		repo.findActiveByLeaveTypeFn = func(ctx context.Context, ltID string) (*leavepolicy.LeavePolicy, error) {
			return nil, errors.New("db error")
		}

		_, err := svc.GetActivePolicy(ctx, leaveTypeID)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "db error")
	})
}

func TestLeavePolicy_AllowsEmployeeStatus(t *testing.T) {
	p := leavepolicy.LeavePolicy{AllowedEmployeeStatuses: "ACTIVE, PROBATION"}

	assert.True(t, p.AllowsEmployeeStatus("ACTIVE"))
	assert.True(t, p.AllowsEmployeeStatus("PROBATION"))
	assert.False(t, p.AllowsEmployeeStatus("SUSPENDED"))

	all := leavepolicy.LeavePolicy{AllowedEmployeeStatuses: leavepolicy.AllStatuses}
	assert.True(t, all.AllowsEmployeeStatus("SUSPENDED"))
}
