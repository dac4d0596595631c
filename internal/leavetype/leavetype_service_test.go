package leavetype_test

import (
	"context"
	"testing"

	"go-leaveledger/internal/leavetype"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeLeaveTypeRepository struct {
	createFn     func(ctx context.Context, lt *leavetype.LeaveType) error
	findAllFn    func(ctx context.Context) ([]leavetype.LeaveType, error)
	findByIDFn   func(ctx context.Context, id string) (*leavetype.LeaveType, error)
	findByCodeFn func(ctx context.Context, code string) (*leavetype.LeaveType, error)
	updateFn     func(ctx context.Context, lt *leavetype.LeaveType) error
	deleteFn     func(ctx context.Context, id string) error
}

func (f *fakeLeaveTypeRepository) Create(ctx context.Context, lt *leavetype.LeaveType) error {
	if f.createFn != nil {
		return f.createFn(ctx, lt)
	}
	return nil
}

func (f *fakeLeaveTypeRepository) FindAll(ctx context.Context) ([]leavetype.LeaveType, error) {
	if f.findAllFn != nil {
		return f.findAllFn(ctx)
	}
	return nil, nil
}

func (f *fakeLeaveTypeRepository) FindByID(ctx context.Context, id string) (*leavetype.LeaveType, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeLeaveTypeRepository) FindByCode(ctx context.Context, code string) (*leavetype.LeaveType, error) {
	if f.findByCodeFn != nil {
		return f.findByCodeFn(ctx, code)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeLeaveTypeRepository) Update(ctx context.Context, lt *leavetype.LeaveType) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, lt)
	}
	return nil
}

func (f *fakeLeaveTypeRepository) Delete(ctx context.Context, id string) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, id)
	}
	return nil
}

func TestLeaveTypeService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("success paid by default", func(t *testing.T) {
		repo := &fakeLeaveTypeRepository{}
		svc := leavetype.NewService(repo)

		repo.createFn = func(ctx context.Context, lt *leavetype.LeaveType) error {
			assert.True(t, lt.IsPaid)
			assert.True(t, lt.IsActive)
			return nil
		}

		resp, err := svc.Create(ctx, leavetype.CreateLeaveTypeRequest{
			Name: "Annual Leave",
			Code: "AL",
		})

		assert.NoError(t, err)
		assert.Equal(t, "AL", resp.Code)
		assert.True(t, resp.IsPaid)
	})

	t.Run("success explicitly unpaid", func(t *testing.T) {
		repo := &fakeLeaveTypeRepository{}
		svc := leavetype.NewService(repo)

		unpaid := false
		resp, err := svc.Create(ctx, leavetype.CreateLeaveTypeRequest{
			Name:   "Unpaid Leave",
			Code:   "UL",
			IsPaid: &unpaid,
		})

		assert.NoError(t, err)
		assert.False(t, resp.IsPaid)
	})

	t.Run("negative duplicate code", func(t *testing.T) {
		repo := &fakeLeaveTypeRepository{}
		svc := leavetype.NewService(repo)

		repo.findByCodeFn = func(ctx context.Context, code string) (*leavetype.LeaveType, error) {
			return &leavetype.LeaveType{ID: uuid.New(), Code: code}, nil
		}

		_, err := svc.Create(ctx, leavetype.CreateLeaveTypeRequest{
			Name: "Annual Leave",
			Code: "AL",
		})

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "code")
	})
}

func TestLeaveTypeService_Update(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	t.Run("code stays immutable", func(t *testing.T) {
		repo := &fakeLeaveTypeRepository{}
		svc := leavetype.NewService(repo)

		repo.findByIDFn = func(ctx context.Context, targetID string) (*leavetype.LeaveType, error) {
			return &leavetype.LeaveType{
				ID:       id,
				Name:     "Annual Leave",
				Code:     "AL",
				IsPaid:   true,
				IsActive: true,
			}, nil
		}

		paid := true
		inactive := false
		resp, err := svc.Update(ctx, id.String(), leavetype.UpdateLeaveTypeRequest{
			Name:     "Annual Leave (legacy)",
			IsPaid:   &paid,
			IsActive: &inactive,
		})

		assert.NoError(t, err)
		assert.Equal(t, "AL", resp.Code)
		assert.Equal(t, "Annual Leave (legacy)", resp.Name)
		assert.False(t, resp.IsActive)
	})

	t.Run("negative not found", func(t *testing.T) {
		repo := &fakeLeaveTypeRepository{}
		svc := leavetype.NewService(repo)

		paid := true
		active := true
		_, err := svc.Update(ctx, id.String(), leavetype.UpdateLeaveTypeRequest{
			Name:     "Annual Leave",
			IsPaid:   &paid,
			IsActive: &active,
		})

		assert.Error(t, err)
	})

	t.Run("negative malformed id", func(t *testing.T) {
		repo := &fakeLeaveTypeRepository{}
		svc := leavetype.NewService(repo)

		paid := true
		active := true
		_, err := svc.Update(ctx, "not-a-uuid", leavetype.UpdateLeaveTypeRequest{
			Name:     "Annual Leave",
			IsPaid:   &paid,
			IsActive: &active,
		})

		assert.Error(t, err)
	})
}
