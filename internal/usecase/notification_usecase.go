package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"payment_adapter/internal/domain/entities"
	"payment_adapter/internal/usecase/interfaces"

	"github.com/google/uuid"
)

var ErrNotificationPaymentNotFound = errors.New("no payment for gateway reference")

// Notification actions reported by the gateway.
const (
	NotificationActionAppointed   = "appointed"
	NotificationActionCapture     = "capture"
	NotificationActionPaid        = "paid"
	NotificationActionDebit       = "debit"
	NotificationActionCancelation = "cancelation"
	NotificationActionRefund      = "refund"
)

// INotificationUseCase merges inbound gateway notifications into the Payment
// aggregate.

type INotificationUseCase interface {
	HandleNotification(ctx context.Context, n entities.Notification) error
}

// NotificationProcessor applies one notification to the payment and returns the
// id of the transaction it touched, if any. Processors are pure over the
// aggregate copy; the dispatcher owns persistence.
type NotificationProcessor interface {
	Apply(n entities.Notification, p entities.Payment) (entities.Payment, string)
}

// transactionStateProcessor handles actions that map to a transaction. A
// notification whose sequence number matches a known transaction only advances
// its state forward; an unmatched one synthesizes a new transaction, because
// the gateway may report operations the synchronous flow never initiated
// (chargebacks, gateway-side captures).
type transactionStateProcessor struct {
	txType       entities.TransactionType
	initialState entities.TransactionState
}

func (pr transactionStateProcessor) Apply(n entities.Notification, p entities.Payment) (entities.Payment, string) {
	if tx, ok := p.TransactionBySequence(n.Sequence); ok {
		switch n.Status {
		case entities.NotificationStatusCompleted:
			p.SetTransactionState(tx.ID, entities.TransactionStateSuccess)
		case entities.NotificationStatusFailed:
			p.SetTransactionState(tx.ID, entities.TransactionStateFailure)
		}
		return p, tx.ID
	}

	tx := entities.Transaction{
		ID:             uuid.NewString(),
		Type:           pr.txType,
		State:          pr.initialState,
		Amount:         n.Amount,
		Currency:       n.Currency,
		SequenceNumber: n.Sequence,
		Timestamp:      time.Now().UTC(),
	}
	p.AddTransaction(tx)
	return p, tx.ID
}

// auditOnlyProcessor is the default route for unmapped actions: the delivery is
// recorded in the interaction log and nothing else changes.
type auditOnlyProcessor struct{}

func (auditOnlyProcessor) Apply(_ entities.Notification, p entities.Payment) (entities.Payment, string) {
	return p, ""
}

// NotificationDispatcher resolves the target payment by gateway reference,
// routes the notification by action and commits the merge as one optimistic
// write. A replayed delivery (same sequence number already recorded) is a
// no-op that still counts as accepted.
type NotificationDispatcher struct {
	repo       interfaces.IPaymentRepository
	processors map[string]NotificationProcessor
	fallback   NotificationProcessor
}

var _ INotificationUseCase = (*NotificationDispatcher)(nil)

func NewNotificationDispatcher(repo interfaces.IPaymentRepository) *NotificationDispatcher {
	return &NotificationDispatcher{
		repo: repo,
		processors: map[string]NotificationProcessor{
			NotificationActionAppointed:   transactionStateProcessor{txType: entities.TransactionTypeAuthorization, initialState: entities.TransactionStatePending},
			NotificationActionCapture:     transactionStateProcessor{txType: entities.TransactionTypeCharge, initialState: entities.TransactionStatePending},
			NotificationActionPaid:        transactionStateProcessor{txType: entities.TransactionTypeCharge, initialState: entities.TransactionStateSuccess},
			NotificationActionDebit:       transactionStateProcessor{txType: entities.TransactionTypeCharge, initialState: entities.TransactionStateSuccess},
			NotificationActionCancelation: transactionStateProcessor{txType: entities.TransactionTypeAuthorization, initialState: entities.TransactionStateFailure},
			NotificationActionRefund:      transactionStateProcessor{txType: entities.TransactionTypeRefund, initialState: entities.TransactionStateSuccess},
		},
		fallback: auditOnlyProcessor{},
	}
}

func (d *NotificationDispatcher) HandleNotification(ctx context.Context, n entities.Notification) error {
	log.Printf("[notification][usecase] dispatch start reference=%s action=%s sequence=%d status=%s", n.TransactionID, n.Action, n.Sequence, n.Status)

	p, err := d.repo.GetByGatewayReference(ctx, n.TransactionID)
	if err != nil {
		log.Printf("[notification][usecase] payment lookup failed reference=%s err=%v", n.TransactionID, err)
		return err
	}
	if p.ID == "" {
		log.Printf("[notification][usecase] payment not found reference=%s", n.TransactionID)
		return fmt.Errorf("%w: %q", ErrNotificationPaymentNotFound, n.TransactionID)
	}

	if p.HasNotificationWithSequence(n.Sequence) {
		log.Printf("[notification][usecase] duplicate delivery ignored payment_id=%s sequence=%d", p.ID, n.Sequence)
		return nil
	}

	processor, ok := d.processors[n.Action]
	if !ok {
		log.Printf("[notification][usecase] unmapped action, recording audit only payment_id=%s action=%s", p.ID, n.Action)
		processor = d.fallback
	}

	p, txID := processor.Apply(n, p)
	p.AddInteraction(entities.InterfaceInteraction{
		ID:             uuid.NewString(),
		Kind:           entities.InteractionKindNotification,
		TransactionID:  txID,
		SequenceNumber: n.Sequence,
		Timestamp:      time.Now().UTC(),
		Payload:        n.Raw,
	})

	if _, err := d.repo.UpdateWithVersion(ctx, p, p.Version); err != nil {
		// A conflict here usually means a synchronous dispatch raced us; the
		// transport answers with a retryable status and the gateway redelivers.
		log.Printf("[notification][usecase] commit failed payment_id=%s sequence=%d err=%v", p.ID, n.Sequence, err)
		return err
	}

	log.Printf("[notification][usecase] dispatch success payment_id=%s action=%s sequence=%d", p.ID, n.Action, n.Sequence)
	return nil
}
