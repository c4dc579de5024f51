package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"payment_adapter/internal/domain/entities"
	"payment_adapter/internal/usecase/interfaces"

	"github.com/sethvargo/go-retry"
)

var (
	ErrInvalidPaymentID = errors.New("invalid payment id")
	ErrPaymentNotFound  = errors.New("payment not found")
	ErrPaymentStore     = errors.New("payment store failure")
)

// DispatchResult is the outcome of one synchronous trigger.
//
// Conflict=true means every attempt lost the optimistic race; the operation may
// have completed concurrently through the notification path, so the transport
// reports "accepted, still processing" rather than an error.
type DispatchResult struct {
	Payment  entities.Payment
	Conflict bool
	Attempts int
}

// IPaymentProcessingUseCase is the synchronous trigger surface consumed by the
// transport layer.

type IPaymentProcessingUseCase interface {
	ProcessPayment(ctx context.Context, paymentID string) (DispatchResult, error)
	GetByID(ctx context.Context, paymentID string) (entities.Payment, error)
}

// PaymentProcessingUseCase wraps one dispatch cycle with bounded
// optimistic-concurrency retry. Each attempt re-reads the aggregate fresh, so a
// conflict caused by an interleaved notification resolves itself naturally.
type PaymentProcessingUseCase struct {
	repo        interfaces.IPaymentRepository
	dispatcher  *PaymentDispatcher
	maxAttempts int
	retryDelay  time.Duration
}

var _ IPaymentProcessingUseCase = (*PaymentProcessingUseCase)(nil)

func NewPaymentProcessingUseCase(repo interfaces.IPaymentRepository, dispatcher *PaymentDispatcher, maxAttempts int, retryDelay time.Duration) *PaymentProcessingUseCase {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &PaymentProcessingUseCase{
		repo:        repo,
		dispatcher:  dispatcher,
		maxAttempts: maxAttempts,
		retryDelay:  retryDelay,
	}
}

func (u *PaymentProcessingUseCase) ProcessPayment(ctx context.Context, paymentID string) (DispatchResult, error) {
	paymentID = strings.TrimSpace(paymentID)
	if paymentID == "" {
		return DispatchResult{}, ErrInvalidPaymentID
	}
	log.Printf("[payment][usecase] process start payment_id=%s", paymentID)

	// Constant delay with jitter keeps concurrent callers of one contested
	// payment from retrying in lockstep.
	backoff := retry.WithMaxRetries(uint64(u.maxAttempts-1), retry.WithJitter(u.retryDelay/2, retry.NewConstant(u.retryDelay)))

	attempts := 0
	var result entities.Payment
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempts++
		p, err := u.repo.GetByID(ctx, paymentID)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrPaymentStore, err)
		}
		if p.ID == "" {
			return ErrPaymentNotFound
		}

		updated, err := u.dispatcher.Dispatch(ctx, p)
		if errors.Is(err, interfaces.ErrVersionConflict) {
			return retry.RetryableError(err)
		}
		if err != nil {
			return err
		}
		result = updated
		return nil
	})

	if errors.Is(err, interfaces.ErrVersionConflict) {
		log.Printf("[payment][usecase] retries exhausted, reporting accepted payment_id=%s attempts=%d", paymentID, attempts)
		return DispatchResult{Conflict: true, Attempts: attempts}, nil
	}
	if err != nil {
		log.Printf("[payment][usecase] process failed payment_id=%s attempts=%d err=%v", paymentID, attempts, err)
		return DispatchResult{Attempts: attempts}, err
	}

	log.Printf("[payment][usecase] process success payment_id=%s attempts=%d version=%d", paymentID, attempts, result.Version)
	return DispatchResult{Payment: result, Attempts: attempts}, nil
}

func (u *PaymentProcessingUseCase) GetByID(ctx context.Context, paymentID string) (entities.Payment, error) {
	paymentID = strings.TrimSpace(paymentID)
	if paymentID == "" {
		return entities.Payment{}, ErrInvalidPaymentID
	}

	p, err := u.repo.GetByID(ctx, paymentID)
	if err != nil {
		return entities.Payment{}, fmt.Errorf("%w: %v", ErrPaymentStore, err)
	}
	if p.ID == "" {
		return entities.Payment{}, ErrPaymentNotFound
	}
	return p, nil
}
