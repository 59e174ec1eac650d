// Package settlement composes entropy, selection, pity, the ledger and the
// rate limiter into one wager: validate, rate-limit, select, pity-check,
// debit cost, credit reward, persist the immutable opening record.
package settlement

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/casedrop/engine/internal/catalog"
	"github.com/casedrop/engine/internal/domain"
	"github.com/casedrop/engine/internal/entropy"
	"github.com/casedrop/engine/internal/ledger"
	"github.com/casedrop/engine/internal/logger"
	"github.com/casedrop/engine/internal/metrics"
	"github.com/casedrop/engine/internal/pity"
	"github.com/casedrop/engine/internal/ratelimit"
	"github.com/casedrop/engine/internal/repository"
	"github.com/casedrop/engine/internal/selector"
)

// Service defines the interface for wager settlement operations
type Service interface {
	// OpenCase settles one wager end to end and returns the result the
	// front end renders. A failed wager never returns a symbol or an
	// altered balance.
	OpenCase(ctx context.Context, userID string, caseID int, clientSeed string) (*domain.WagerResult, error)

	// GetHistory returns the user's most recent opening records, newest first.
	GetHistory(ctx context.Context, userID string, limit int) ([]domain.OpeningRecord, error)
}

type service struct {
	users      repository.User
	openings   repository.Opening
	catalogSvc catalog.Service
	ledgerSvc  ledger.Service
	limiter    ratelimit.Limiter
	detector   ratelimit.Detector

	// Storage calls must not hang; each wager runs under this deadline
	storeTimeout time.Duration
	now          func() time.Time
}

// NewService creates a new settlement service
func NewService(users repository.User, openings repository.Opening, catalogSvc catalog.Service, ledgerSvc ledger.Service, limiter ratelimit.Limiter, detector ratelimit.Detector, storeTimeout time.Duration) Service {
	if storeTimeout <= 0 {
		storeTimeout = DefaultStoreTimeout
	}
	return &service{
		users:        users,
		openings:     openings,
		catalogSvc:   catalogSvc,
		ledgerSvc:    ledgerSvc,
		limiter:      limiter,
		detector:     detector,
		storeTimeout: storeTimeout,
		now:          time.Now,
	}
}

func (s *service) OpenCase(ctx context.Context, userID string, caseID int, clientSeed string) (*domain.WagerResult, error) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgOpenCaseCalled, "user_id", userID, "case_id", caseID)

	if err := validateOpenInput(userID, caseID, clientSeed); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	openCase, err := s.getAndValidateCase(ctx, caseID)
	if err != nil {
		metrics.WagersFailed.WithLabelValues(FailReasonValidation).Inc()
		return nil, err
	}

	if err := s.getAndValidateUser(ctx, userID); err != nil {
		metrics.WagersFailed.WithLabelValues(FailReasonValidation).Inc()
		return nil, err
	}

	// The limiter must pass before the RNG or the ledger are touched
	if decision := s.limiter.Allow(ctx, userID, ratelimit.ActionOpenCase); !decision.Allowed {
		metrics.WagersFailed.WithLabelValues(FailReasonRateLimited).Inc()
		return nil, &domain.RateLimitError{RetryAfter: decision.RetryAfter}
	}

	// Fast-fail read; the ledger's atomic guard is the real enforcement
	balanceBefore, err := s.ledgerSvc.GetBalance(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToGetBalance, err)
	}
	if balanceBefore < openCase.Cost {
		metrics.WagersFailed.WithLabelValues(FailReasonInsufficientFunds).Inc()
		return nil, domain.ErrInsufficientFunds
	}

	draw, err := s.draw(ctx, userID, openCase, clientSeed)
	if err != nil {
		return nil, err
	}

	result, err := s.settle(ctx, userID, openCase, draw, balanceBefore)
	if err != nil {
		return nil, err
	}

	s.flagPatterns(ctx, userID, result)

	outcome := OutcomeLoss
	if result.Reward >= result.Cost {
		outcome = OutcomeWin
	}
	metrics.WagersSettled.WithLabelValues(openCase.Name, outcome).Inc()
	if result.PityActivated {
		metrics.PityActivations.WithLabelValues(openCase.Name).Inc()
	}

	log.Info(LogMsgWagerSettled,
		"user_id", userID,
		"case_id", caseID,
		"symbol_id", result.Symbol.ID,
		"reward", result.Reward,
		"pity_activated", result.PityActivated,
		"new_balance", result.NewBalance)
	return result, nil
}

// drawResult carries the outcome of entropy derivation, raw selection and
// the pity evaluation, before any credits move.
type drawResult struct {
	symbol        domain.Symbol
	nonce         int64
	serverSeed    string
	clientSeed    string
	randomValue   float64
	pityActivated bool
}

// draw derives the random value, selects the raw symbol and applies the
// pity override when eligible. Pure with respect to the ledger: no balance
// is touched here.
func (s *service) draw(ctx context.Context, userID string, openCase *domain.Case, clientSeed string) (*drawResult, error) {
	nonce, err := s.openings.AllocateNonce(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToAllocateNonce, err)
	}

	serverSeed, err := entropy.NewServerSeed()
	if err != nil {
		// Fail hard; a weaker randomness source must never be substituted
		return nil, err
	}

	r := entropy.DeriveRandom(clientSeed, serverSeed, nonce)
	rawSymbolID := selector.Select(ctx, openCase.Pool, r)

	symbols, err := s.catalogSvc.GetCaseSymbols(ctx, openCase.ID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToGetSymbols, err)
	}
	symbolByID := make(map[int]domain.Symbol, len(symbols))
	for _, sym := range symbols {
		symbolByID[sym.ID] = sym
	}

	rawSymbol, ok := symbolByID[rawSymbolID]
	if !ok {
		return nil, fmt.Errorf("%w: %d", domain.ErrSymbolNotFound, rawSymbolID)
	}

	result := &drawResult{
		symbol:      rawSymbol,
		nonce:       nonce,
		serverSeed:  serverSeed,
		clientSeed:  clientSeed,
		randomValue: r,
	}

	pityCfg := s.catalogSvc.PityConfig(openCase.ID)
	if pityCfg == nil {
		return result, nil
	}

	records, err := s.openings.GetRecentByUser(ctx, userID, pityCfg.LookbackWindow)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToGetHistory, err)
	}

	decision := pity.Evaluate(ctx, pityCfg, records, openCase.Cost, rawSymbol.Value, r)
	if decision.Activated {
		pitySymbolID := pity.MapPayoutToSymbol(symbols, decision.Payout)
		result.symbol = symbolByID[pitySymbolID]
		result.pityActivated = true
	}

	return result, nil
}

// settle moves the credits and persists the opening record. Any failure
// after the debit triggers a compensating re-credit so the user is never
// silently left charged without a record.
func (s *service) settle(ctx context.Context, userID string, openCase *domain.Case, draw *drawResult, balanceBefore int64) (*domain.WagerResult, error) {
	reward := draw.symbol.Value

	newBalance, err := s.ledgerSvc.ApplyDelta(ctx, userID, -openCase.Cost, domain.CreditReasonBet, betKey(userID, draw.nonce))
	if err != nil {
		if errors.Is(err, domain.ErrInsufficientFunds) {
			metrics.WagersFailed.WithLabelValues(FailReasonInsufficientFunds).Inc()
			return nil, domain.ErrInsufficientFunds
		}
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToDebit, err)
	}

	if reward > 0 {
		newBalance, err = s.ledgerSvc.ApplyDelta(ctx, userID, reward, domain.CreditReasonWin, winKey(userID, draw.nonce))
		if err != nil {
			return nil, s.compensate(ctx, userID, openCase.Cost, draw.nonce,
				fmt.Errorf("%s: %w", ErrContextFailedToCredit, err))
		}
	}

	record := &domain.OpeningRecord{
		ID:            uuid.New(),
		UserID:        userID,
		CaseID:        openCase.ID,
		SymbolID:      draw.symbol.ID,
		Cost:          openCase.Cost,
		Reward:        reward,
		ServerSeed:    draw.serverSeed,
		ClientSeed:    draw.clientSeed,
		Nonce:         draw.nonce,
		RandomValue:   draw.randomValue,
		PityActivated: draw.pityActivated,
		BalanceBefore: balanceBefore,
		BalanceAfter:  newBalance,
		CreatedAt:     s.now(),
	}
	if err := s.openings.InsertRecord(ctx, record); err != nil {
		// A record already holds this nonce: another settlement owns it and
		// every ledger key above replayed, so there is nothing to unwind.
		if errors.Is(err, domain.ErrDuplicateWager) {
			metrics.WagersFailed.WithLabelValues(FailReasonDuplicate).Inc()
			return nil, err
		}
		return nil, s.compensate(ctx, userID, openCase.Cost-reward, draw.nonce,
			fmt.Errorf("%s: %w", ErrContextFailedToPersist, err))
	}

	return &domain.WagerResult{
		Success:       true,
		Symbol:        draw.symbol,
		Cost:          openCase.Cost,
		Reward:        reward,
		NetResult:     reward - openCase.Cost,
		NewBalance:    newBalance,
		PityActivated: draw.pityActivated,
		Provenance: domain.Provenance{
			ServerSeed:  draw.serverSeed,
			ClientSeed:  draw.clientSeed,
			Nonce:       draw.nonce,
			RandomValue: draw.randomValue,
		},
	}, nil
}

// compensate re-credits the net amount taken from the user after a partial
// settlement failure. It runs on a detached context because the original
// request's deadline may be the reason the wager failed. Compensation is
// attempted once and reported, never retried indefinitely.
func (s *service) compensate(reqCtx context.Context, userID string, amount, nonce int64, cause error) error {
	if amount == 0 {
		metrics.Compensations.WithLabelValues(CompensationSkipped).Inc()
		return cause
	}

	// Detach from the request deadline but keep the request ID, so the
	// compensation log lines still correlate with the failed wager.
	detached := context.Background()
	if id, ok := logger.RequestIDFromContext(reqCtx); ok {
		detached = logger.WithRequestID(detached, id)
	}
	ctx, cancel := context.WithTimeout(detached, s.storeTimeout)
	defer cancel()

	log := logger.FromContext(ctx)
	log.Error(LogMsgAttemptingCompensation, "user_id", userID, "amount", amount, "nonce", nonce, "cause", cause)

	if _, err := s.ledgerSvc.ApplyDelta(ctx, userID, amount, domain.CreditReasonRefund, refundKey(userID, nonce)); err != nil {
		metrics.Compensations.WithLabelValues(CompensationFailed).Inc()
		log.Error(LogMsgCompensationFailed, "user_id", userID, "amount", amount, "nonce", nonce, "error", err)
		return fmt.Errorf("%w: %v (original: %v)", domain.ErrCompensationFailed, err, cause)
	}

	metrics.Compensations.WithLabelValues(CompensationApplied).Inc()
	return cause
}

// flagPatterns feeds the advisory abuse detector. Flags never block; they
// are logged and counted for downstream review.
func (s *service) flagPatterns(ctx context.Context, userID string, result *domain.WagerResult) {
	if s.detector == nil {
		return
	}
	s.detector.RecordWager(ctx, userID, result.Reward > result.Cost)
}

func (s *service) GetHistory(ctx context.Context, userID string, limit int) ([]domain.OpeningRecord, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", domain.ErrInvalidInput)
	}
	if limit <= 0 || limit > MaxHistoryLimit {
		limit = DefaultHistoryLimit
	}

	if decision := s.limiter.Allow(ctx, userID, ratelimit.ActionRead); !decision.Allowed {
		return nil, &domain.RateLimitError{RetryAfter: decision.RetryAfter}
	}

	records, err := s.openings.GetRecentByUser(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToGetHistory, err)
	}
	return records, nil
}

func (s *service) getAndValidateUser(ctx context.Context, userID string) error {
	user, err := s.users.GetUser(ctx, userID)
	if err != nil {
		return err
	}
	if !user.Active {
		return domain.ErrUserInactive
	}
	return nil
}

func (s *service) getAndValidateCase(ctx context.Context, caseID int) (*domain.Case, error) {
	openCase, err := s.catalogSvc.GetCase(ctx, caseID)
	if err != nil {
		return nil, err
	}
	if !openCase.Active {
		return nil, domain.ErrCaseInactive
	}
	if len(openCase.Pool) == 0 {
		return nil, fmt.Errorf("%w: case %d", domain.ErrEmptyPool, caseID)
	}
	return openCase, nil
}

func validateOpenInput(userID string, caseID int, clientSeed string) error {
	if userID == "" {
		return fmt.Errorf("%w: user id is required", domain.ErrInvalidInput)
	}
	if caseID <= 0 {
		return fmt.Errorf("%w: case id must be positive", domain.ErrInvalidInput)
	}
	if len(clientSeed) > MaxClientSeedLength {
		return fmt.Errorf("%w: client seed exceeds %d characters", domain.ErrInvalidInput, MaxClientSeedLength)
	}
	return nil
}

func betKey(userID string, nonce int64) string {
	return fmt.Sprintf("bet:%s:%d", userID, nonce)
}

func winKey(userID string, nonce int64) string {
	return fmt.Sprintf("win:%s:%d", userID, nonce)
}

func refundKey(userID string, nonce int64) string {
	return fmt.Sprintf("refund:%s:%d", userID, nonce)
}
