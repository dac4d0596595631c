package leavebalance

import (
	"context"
	"errors"
	"time"

	"go-leaveledger/internal/employee"
	leavebalanceerrors "go-leaveledger/internal/leavebalance/errors"
	"go-leaveledger/internal/leavecycle"
	"go-leaveledger/internal/leavepolicy"
	"go-leaveledger/internal/leavetransaction"
	"go-leaveledger/internal/leaveyear"
	leaveyearerrors "go-leaveledger/internal/leaveyear/errors"
	"go-leaveledger/internal/shared/contextutil"
	"go-leaveledger/internal/shared/database"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=leavebalance_service.go -destination=mock/leavebalance_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateBalanceRequest) (BalanceResponse, error)
	GetAll(ctx context.Context, employeeID, year string) ([]BalanceResponse, error)
	GetByID(ctx context.Context, id string) (BalanceResponse, error)
	GetTransactions(ctx context.Context, id string) (BalanceTransactionsResponse, error)
	GenerateAnnual(ctx context.Context, req GenerateAnnualRequest) (GenerateAnnualResult, error)
	Adjust(ctx context.Context, id string, req AdjustBalanceRequest) (BalanceResponse, error)
	Encash(ctx context.Context, id string, req EncashRequest) (BalanceResponse, error)
	Close(ctx context.Context, id string) (BalanceResponse, error)
	ResetForYear(ctx context.Context, year string) (ResetForYearResult, error)
}

type service struct {
	txm          database.TxManager
	repo         Repository
	transactions leavetransaction.Repository
	policies     leavepolicy.Repository
	years        leaveyear.Repository
	employees    employee.Directory
	cycles       leavecycle.Repository
	logger       *zap.Logger
}

func NewService(
	txm database.TxManager,
	repo Repository,
	transactions leavetransaction.Repository,
	policies leavepolicy.Repository,
	years leaveyear.Repository,
	employees employee.Directory,
	cycles leavecycle.Repository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("leavebalance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leavebalance.service")
	}
	return &service{
		txm:          txm,
		repo:         repo,
		transactions: transactions,
		policies:     policies,
		years:        years,
		employees:    employees,
		cycles:       cycles,
		logger:       l,
	}
}

func (s *service) Create(ctx context.Context, req CreateBalanceRequest) (BalanceResponse, error) {
	employeeID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return BalanceResponse{}, leavebalanceerrors.ErrInvalidEmployeeID
	}
	leaveTypeID, err := uuid.Parse(req.LeaveTypeID)
	if err != nil {
		return BalanceResponse{}, leavebalanceerrors.ErrInvalidLeaveTypeID
	}
	policyID, err := uuid.Parse(req.PolicyID)
	if err != nil {
		return BalanceResponse{}, leavebalanceerrors.ErrInvalidPolicyID
	}

	beginning, err := parseAmountOrZero(req.BeginningBalance)
	if err != nil {
		return BalanceResponse{}, err
	}
	earned, err := parseAmountOrZero(req.Earned)
	if err != nil {
		return BalanceResponse{}, err
	}
	used, err := parseAmountOrZero(req.Used)
	if err != nil {
		return BalanceResponse{}, err
	}
	carried, err := parseAmountOrZero(req.CarriedOver)
	if err != nil {
		return BalanceResponse{}, err
	}
	encashed, err := parseAmountOrZero(req.Encashed)
	if err != nil {
		return BalanceResponse{}, err
	}

	var created *LeaveBalance
	err = s.txm.RunInTransaction(ctx, func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)

		if _, err := qtx.FindByOwnerAndYear(ctx, req.EmployeeID, req.LeaveTypeID, req.Year); err == nil {
			return leavebalanceerrors.ErrBalanceExists
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		b := &LeaveBalance{
			ID:               uuid.New(),
			EmployeeID:       employeeID,
			LeaveTypeID:      leaveTypeID,
			PolicyID:         policyID,
			Year:             req.Year,
			BeginningBalance: beginning,
			Earned:           earned,
			Used:             used,
			CarriedOver:      carried,
			Encashed:         encashed,
			Status:           StatusOpen,
			Remarks:          req.Remarks,
		}
		// Remaining is derived, never taken from input.
		b.Recompute()
		if b.Remaining.IsNegative() {
			return leavebalanceerrors.ErrInsufficientBalance
		}

		if err := qtx.Create(ctx, b); err != nil {
			return err
		}
		created = b
		return nil
	})
	if err != nil {
		return BalanceResponse{}, err
	}
	s.logger.Info("create balance success",
		zap.String("balance_id", created.ID.String()),
		zap.String("employee_id", req.EmployeeID),
		zap.String("year", req.Year),
	)

	return mapToResponse(*created), nil
}

func (s *service) GetAll(ctx context.Context, employeeID, year string) ([]BalanceResponse, error) {
	balances, err := s.repo.List(ctx, employeeID, year)
	if err != nil {
		return nil, err
	}
	resp := make([]BalanceResponse, len(balances))
	for i, b := range balances {
		resp[i] = mapToResponse(b)
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, id string) (BalanceResponse, error) {
	b, err := s.findBalance(ctx, id)
	if err != nil {
		return BalanceResponse{}, err
	}
	return mapToResponse(*b), nil
}

func (s *service) GetTransactions(ctx context.Context, id string) (BalanceTransactionsResponse, error) {
	b, err := s.findBalance(ctx, id)
	if err != nil {
		return BalanceTransactionsResponse{}, err
	}

	entries, err := s.transactions.ListByBalance(ctx, id)
	if err != nil {
		return BalanceTransactionsResponse{}, err
	}

	resp := BalanceTransactionsResponse{Balance: mapToResponse(*b)}
	resp.Transactions = make([]leavetransaction.TransactionResponse, len(entries))
	for i, t := range entries {
		resp.Transactions[i] = leavetransaction.MapToResponse(t)
	}
	return resp, nil
}

// GenerateAnnual creates the year's balance row for every eligible employee
// and every leave type carrying an active policy. Re-running without
// force_regenerate is a no-op for rows that already exist. Each employee x
// policy pair commits in its own transaction so one failure cannot poison
// the batch.
func (s *service) GenerateAnnual(ctx context.Context, req GenerateAnnualRequest) (GenerateAnnualResult, error) {
	actor := contextutil.Actor(ctx)
	s.logger.Debug("generate annual requested",
		zap.String("year", req.Year),
		zap.Bool("force_regenerate", req.ForceRegenerate),
		zap.String("actor", actor),
	)

	cfg, err := s.years.FindByYear(ctx, req.Year)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return GenerateAnnualResult{}, leaveyearerrors.ErrConfigurationNotFound
		}
		return GenerateAnnualResult{}, err
	}

	// The previous leave year feeds carryover; a missing one just means
	// nothing carries (first configured year).
	var prevYear string
	if prev, err := s.years.FindPrevious(ctx, cfg.CutoffStartDate); err == nil {
		prevYear = prev.Year
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return GenerateAnnualResult{}, err
	}

	policies, err := s.policies.ListActive(ctx)
	if err != nil {
		return GenerateAnnualResult{}, err
	}
	employees, err := s.employees.ListActive(ctx)
	if err != nil {
		return GenerateAnnualResult{}, err
	}

	result := GenerateAnnualResult{Year: req.Year}
	now := time.Now()

	for _, emp := range employees {
		for _, policy := range policies {
			if !eligibleForPolicy(emp, policy, now) {
				result.Skipped++
				continue
			}

			generated, skipped, err := s.generateOne(ctx, emp, policy, cfg, prevYear, req.ForceRegenerate, now)
			if err != nil {
				result.Failures = append(result.Failures, GenerateFailure{
					EmployeeID:  emp.ID.String(),
					LeaveTypeID: policy.LeaveTypeID.String(),
					Reason:      err.Error(),
				})
				continue
			}
			if skipped {
				result.Skipped++
				continue
			}
			result.Generated = append(result.Generated, mapToResponse(*generated))
		}
	}

	s.logger.Info("generate annual finished",
		zap.String("year", req.Year),
		zap.Int("generated", len(result.Generated)),
		zap.Int("skipped", result.Skipped),
		zap.Int("failures", len(result.Failures)),
	)

	return result, nil
}

func (s *service) generateOne(
	ctx context.Context,
	emp employee.Employee,
	policy leavepolicy.LeavePolicy,
	cfg *leaveyear.Configuration,
	prevYear string,
	force bool,
	now time.Time,
) (*LeaveBalance, bool, error) {
	employeeID := emp.ID.String()
	leaveTypeID := policy.LeaveTypeID.String()

	var generated *LeaveBalance
	skipped := false

	err := s.txm.RunInTransaction(ctx, func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)
		ttx := s.transactions.WithTx(tx)

		existing, err := qtx.FindByOwnerAndYearForUpdate(ctx, employeeID, leaveTypeID, cfg.Year)
		if err == nil && !force {
			skipped = true
			return nil
		}
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			existing = nil
		}

		carried := decimal.Zero
		if prevYear != "" {
			if prev, err := qtx.FindByOwnerAndYear(ctx, employeeID, leaveTypeID, prevYear); err == nil {
				carried = decimal.Min(prev.Remaining, policy.CarryLimit)
				if carried.IsNegative() {
					carried = decimal.Zero
				}
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
		}

		var old LeaveBalance
		b := existing
		if existing != nil {
			old = *existing
		} else {
			b = &LeaveBalance{
				ID:          uuid.New(),
				EmployeeID:  emp.ID,
				LeaveTypeID: policy.LeaveTypeID,
				Year:        cfg.Year,
			}
		}

		b.PolicyID = policy.ID
		b.BeginningBalance = decimal.Zero
		b.Earned = policy.AnnualEntitlement
		b.Used = decimal.Zero
		b.CarriedOver = carried
		b.Encashed = decimal.Zero
		b.Status = StatusOpen
		b.Recompute()
		b.Touch(now)

		if existing != nil {
			if err := qtx.Update(ctx, b); err != nil {
				return err
			}
		} else {
			if err := qtx.Create(ctx, b); err != nil {
				return err
			}
		}

		if existing != nil {
			// A forced re-run reconciles the log with delta entries, never
			// fresh full-value ones: earlier entries for this row stay valid
			// and per-type sums keep matching the balance columns.
			deltas := []struct {
				txType string
				delta  decimal.Decimal
				debit  bool
			}{
				{leavetransaction.TypeAdjustment, b.BeginningBalance.Sub(old.BeginningBalance), false},
				{leavetransaction.TypeAdjustment, b.Earned.Sub(old.Earned), false},
				{leavetransaction.TypeRequest, b.Used.Sub(old.Used), true},
				{leavetransaction.TypeCarry, b.CarriedOver.Sub(old.CarriedOver), false},
				{leavetransaction.TypeEncashment, b.Encashed.Sub(old.Encashed), true},
			}
			for _, d := range deltas {
				if d.delta.IsZero() {
					continue
				}
				days := d.delta
				if d.debit {
					days = d.delta.Neg()
				}
				if err := ttx.Append(ctx, &leavetransaction.LeaveTransaction{
					ID:              uuid.New(),
					BalanceID:       b.ID,
					TransactionType: d.txType,
					Days:            days,
					Remarks:         "annual regeneration for " + cfg.Year,
				}); err != nil {
					return err
				}
			}
		} else {
			if err := ttx.Append(ctx, &leavetransaction.LeaveTransaction{
				ID:              uuid.New(),
				BalanceID:       b.ID,
				TransactionType: leavetransaction.TypeAdjustment,
				Days:            b.Earned,
				Remarks:         "annual entitlement for " + cfg.Year,
			}); err != nil {
				return err
			}
			if carried.IsPositive() {
				if err := ttx.Append(ctx, &leavetransaction.LeaveTransaction{
					ID:              uuid.New(),
					BalanceID:       b.ID,
					TransactionType: leavetransaction.TypeCarry,
					Days:            carried,
					Remarks:         "carryover from " + prevYear,
				}); err != nil {
					return err
				}
			}
		}

		// Keep the active cycle's cumulative carry in step.
		if delta := carried.Sub(old.CarriedOver); !delta.IsZero() {
			cycleRepo := s.cycles.WithTx(tx)
			if cycle, err := cycleRepo.FindActive(ctx, employeeID, leaveTypeID); err == nil {
				yearNum := cfg.CutoffStartDate.Year()
				if cycle.Overlaps(yearNum, yearNum) {
					cycle.TotalCarried = cycle.TotalCarried.Add(delta)
					if cycle.TotalCarried.IsNegative() {
						cycle.TotalCarried = decimal.Zero
					}
					if err := cycleRepo.Update(ctx, cycle); err != nil {
						return err
					}
				}
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
		}

		generated = b
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return generated, skipped, nil
}

// Adjust patches the ledger fields of an open balance. Remaining is always
// recomputed from the stored inputs; each changed field gets a matching
// reconciliation entry in the transaction log.
func (s *service) Adjust(ctx context.Context, id string, req AdjustBalanceRequest) (BalanceResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return BalanceResponse{}, leavebalanceerrors.ErrInvalidBalanceID
	}

	var adjusted *LeaveBalance
	err := s.txm.RunInTransaction(ctx, func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)
		ttx := s.transactions.WithTx(tx)

		b, err := qtx.FindByIDForUpdate(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return leavebalanceerrors.ErrBalanceNotFound
			}
			return err
		}
		if b.Status == StatusClosed {
			return leavebalanceerrors.ErrBalanceClosed
		}

		type fieldPatch struct {
			raw    *string
			target *decimal.Decimal
			txType string
			// Debits are recorded with a negative sign in the log.
			debit bool
		}
		patches := []fieldPatch{
			{req.BeginningBalance, &b.BeginningBalance, leavetransaction.TypeAdjustment, false},
			{req.Earned, &b.Earned, leavetransaction.TypeAdjustment, false},
			{req.Used, &b.Used, leavetransaction.TypeRequest, true},
			{req.CarriedOver, &b.CarriedOver, leavetransaction.TypeCarry, false},
			{req.Encashed, &b.Encashed, leavetransaction.TypeEncashment, true},
		}

		var entries []*leavetransaction.LeaveTransaction
		for _, p := range patches {
			if p.raw == nil {
				continue
			}
			value, err := parseAmount(*p.raw)
			if err != nil {
				return err
			}
			delta := value.Sub(*p.target)
			if delta.IsZero() {
				continue
			}
			*p.target = value

			days := delta
			if p.debit {
				days = delta.Neg()
			}
			entries = append(entries, &leavetransaction.LeaveTransaction{
				ID:              uuid.New(),
				BalanceID:       b.ID,
				TransactionType: p.txType,
				Days:            days,
				Remarks:         adjustRemarks(req.Remarks),
			})
		}

		b.Recompute()
		if b.Remaining.IsNegative() {
			return leavebalanceerrors.ErrInsufficientBalance
		}
		if req.Remarks != "" {
			b.Remarks = req.Remarks
		}
		b.Touch(time.Now())

		if err := qtx.Update(ctx, b); err != nil {
			return err
		}
		for _, entry := range entries {
			if err := ttx.Append(ctx, entry); err != nil {
				return err
			}
		}
		adjusted = b
		return nil
	})
	if err != nil {
		return BalanceResponse{}, err
	}
	s.logger.Info("adjust balance success", zap.String("balance_id", id))

	return mapToResponse(*adjusted), nil
}

// Encash converts unused days into a payout entry: remaining drops without
// a corresponding use, capped by the policy encash limit.
func (s *service) Encash(ctx context.Context, id string, req EncashRequest) (BalanceResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return BalanceResponse{}, leavebalanceerrors.ErrInvalidBalanceID
	}
	days, err := parseAmount(req.Days)
	if err != nil {
		return BalanceResponse{}, err
	}
	if !days.IsPositive() {
		return BalanceResponse{}, leavebalanceerrors.ErrInvalidAmount
	}

	var encashed *LeaveBalance
	err = s.txm.RunInTransaction(ctx, func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)
		ttx := s.transactions.WithTx(tx)

		b, err := qtx.FindByIDForUpdate(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return leavebalanceerrors.ErrBalanceNotFound
			}
			return err
		}
		if b.Status == StatusClosed {
			return leavebalanceerrors.ErrBalanceClosed
		}
		if days.GreaterThan(b.Remaining) {
			return leavebalanceerrors.ErrInsufficientBalance
		}

		policy, err := s.policies.WithTx(tx).FindByID(ctx, b.PolicyID.String())
		if err != nil {
			return err
		}
		if b.Encashed.Add(days).GreaterThan(policy.EncashLimit) {
			return leavebalanceerrors.ErrEncashLimitExceeded
		}

		b.Encashed = b.Encashed.Add(days)
		b.Recompute()
		b.Touch(time.Now())

		if err := qtx.Update(ctx, b); err != nil {
			return err
		}
		if err := ttx.Append(ctx, &leavetransaction.LeaveTransaction{
			ID:              uuid.New(),
			BalanceID:       b.ID,
			TransactionType: leavetransaction.TypeEncashment,
			Days:            days.Neg(),
			Remarks:         adjustRemarks(req.Remarks),
		}); err != nil {
			return err
		}
		encashed = b
		return nil
	})
	if err != nil {
		return BalanceResponse{}, err
	}
	s.logger.Info("encash balance success",
		zap.String("balance_id", id),
		zap.String("days", days.StringFixed(2)),
	)

	return mapToResponse(*encashed), nil
}

// Close is terminal; the request workflow refuses to touch closed balances.
func (s *service) Close(ctx context.Context, id string) (BalanceResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return BalanceResponse{}, leavebalanceerrors.ErrInvalidBalanceID
	}

	var closed *LeaveBalance
	err := s.txm.RunInTransaction(ctx, func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)

		b, err := qtx.FindByIDForUpdate(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return leavebalanceerrors.ErrBalanceNotFound
			}
			return err
		}
		if b.Status == StatusClosed {
			return leavebalanceerrors.ErrBalanceClosed
		}

		b.Status = StatusClosed
		if err := qtx.Update(ctx, b); err != nil {
			return err
		}
		closed = b
		return nil
	})
	if err != nil {
		return BalanceResponse{}, err
	}
	s.logger.Info("close balance success", zap.String("balance_id", id))

	return mapToResponse(*closed), nil
}

// ResetForYear is the corrective bulk rollback, not part of the normal
// annual cycle (that creates next year's rows via GenerateAnnual).
func (s *service) ResetForYear(ctx context.Context, year string) (ResetForYearResult, error) {
	if year == "" {
		return ResetForYearResult{}, leavebalanceerrors.ErrInvalidYear
	}

	var affected int64
	err := s.txm.RunInTransaction(ctx, func(tx *gorm.DB) error {
		n, err := s.repo.WithTx(tx).ResetForYear(ctx, year)
		if err != nil {
			return err
		}
		affected = n
		return nil
	})
	if err != nil {
		return ResetForYearResult{}, err
	}
	s.logger.Info("reset balances for year",
		zap.String("year", year),
		zap.Int64("reset", affected),
	)

	return ResetForYearResult{Year: year, Reset: affected}, nil
}

func (s *service) findBalance(ctx context.Context, id string) (*LeaveBalance, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, leavebalanceerrors.ErrInvalidBalanceID
	}
	b, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, leavebalanceerrors.ErrBalanceNotFound
		}
		return nil, err
	}
	return b, nil
}

func eligibleForPolicy(emp employee.Employee, policy leavepolicy.LeavePolicy, now time.Time) bool {
	if !policy.AllowsEmployeeStatus(emp.EmploymentStatus) {
		return false
	}
	return emp.ServiceMonths(now) >= policy.MinimumServiceMonths
}

func adjustRemarks(remarks string) string {
	if remarks == "" {
		return "manual adjustment"
	}
	return remarks
}

func parseAmountOrZero(v *string) (decimal.Decimal, error) {
	if v == nil || *v == "" {
		return decimal.Zero, nil
	}
	return parseAmount(*v)
}

func parseAmount(v string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(v)
	if err != nil || d.IsNegative() {
		return decimal.Zero, leavebalanceerrors.ErrInvalidAmount
	}
	return d.Round(2), nil
}

func mapToResponse(b LeaveBalance) BalanceResponse {
	resp := BalanceResponse{
		ID:               b.ID.String(),
		EmployeeID:       b.EmployeeID.String(),
		LeaveTypeID:      b.LeaveTypeID.String(),
		PolicyID:         b.PolicyID.String(),
		Year:             b.Year,
		BeginningBalance: b.BeginningBalance.StringFixed(2),
		Earned:           b.Earned.StringFixed(2),
		Used:             b.Used.StringFixed(2),
		CarriedOver:      b.CarriedOver.StringFixed(2),
		Encashed:         b.Encashed.StringFixed(2),
		Remaining:        b.Remaining.StringFixed(2),
		Status:           b.Status,
		Remarks:          b.Remarks,
	}
	if b.LastTransactionDate != nil {
		v := b.LastTransactionDate.UTC().Format(time.RFC3339)
		resp.LastTransactionDate = &v
	}
	return resp
}
