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

var ErrUnexpectedGatewayStatus = errors.New("unexpected gateway response status")

// Gateway wire protocol: flat string maps both ways.
const (
	gatewayKeyStatus       = "status"
	gatewayKeyTxID         = "txid"
	gatewayKeyRedirectURL  = "redirecturl"
	gatewayKeyErrorCode    = "errorcode"
	gatewayKeyErrorMessage = "errormessage"

	gatewayStatusApproved = "APPROVED"
	gatewayStatusRedirect = "REDIRECT"
	gatewayStatusPending  = "PENDING"
	gatewayStatusError    = "ERROR"

	// internalErrorCode marks RESPONSE interactions synthesized locally when the
	// gateway call itself failed, so the audit trail stays complete.
	internalErrorCode = "9999"
)

// ITransactionExecutor executes one pending transaction against the gateway.

type ITransactionExecutor interface {
	Execute(ctx context.Context, p entities.Payment, tx entities.Transaction) (entities.Payment, error)
}

// IdempotentTransactionExecutor performs a transaction's gateway call at most
// once. The payment's own interaction log is the idempotency ledger: a
// REQUEST/RESPONSE/REDIRECT interaction for the transaction id proves the call
// already happened, so re-execution skips all gateway I/O.
//
// Commit cadence is two optimistic writes: the REQUEST interaction (with the
// sequence-number binding) goes in before the outbound call, the
// RESPONSE/REDIRECT interaction and the transaction state after it. The only
// unclosed window is a crash between the call returning and the second write;
// duplicate sends are prevented by checking before, not after, the call.
type IdempotentTransactionExecutor struct {
	repo    interfaces.IPaymentRepository
	gateway interfaces.IGatewayClient
	factory interfaces.IRequestFactory
}

var _ ITransactionExecutor = (*IdempotentTransactionExecutor)(nil)

func NewIdempotentTransactionExecutor(repo interfaces.IPaymentRepository, gateway interfaces.IGatewayClient, factory interfaces.IRequestFactory) *IdempotentTransactionExecutor {
	return &IdempotentTransactionExecutor{repo: repo, gateway: gateway, factory: factory}
}

func (e *IdempotentTransactionExecutor) Execute(ctx context.Context, p entities.Payment, tx entities.Transaction) (entities.Payment, error) {
	log.Printf("[dispatch][executor] execute start payment_id=%s transaction_id=%s type=%s", p.ID, tx.ID, tx.Type)

	if p.WasExecuted(tx.ID) {
		log.Printf("[dispatch][executor] already executed, skipping gateway call payment_id=%s transaction_id=%s", p.ID, tx.ID)
		return p, nil
	}

	seq := p.NextSequenceNumber()
	request, err := e.factory.BuildRequest(p, tx, seq)
	if err != nil {
		log.Printf("[dispatch][executor] request build failed payment_id=%s transaction_id=%s err=%v", p.ID, tx.ID, err)
		return p, err
	}

	p.BindSequenceNumber(tx.ID, seq)
	p.AddInteraction(entities.InterfaceInteraction{
		ID:             uuid.NewString(),
		Kind:           entities.InteractionKindRequest,
		TransactionID:  tx.ID,
		SequenceNumber: seq,
		Timestamp:      time.Now().UTC(),
		Payload:        request,
	})

	p, err = e.repo.UpdateWithVersion(ctx, p, p.Version)
	if err != nil {
		log.Printf("[dispatch][executor] request commit failed payment_id=%s transaction_id=%s err=%v", p.ID, tx.ID, err)
		return p, err
	}

	return e.attemptExecution(ctx, p, tx, seq, request)
}

func (e *IdempotentTransactionExecutor) attemptExecution(ctx context.Context, p entities.Payment, tx entities.Transaction, seq int, request map[string]string) (entities.Payment, error) {
	response, err := e.gateway.Send(ctx, request)
	if err != nil {
		// Transport failure is a recorded business outcome, never an exception
		// past the executor. The RESPONSE is synthesized locally so the audit
		// trail covers the failed call too.
		log.Printf("[dispatch][executor] gateway call failed payment_id=%s transaction_id=%s err=%v", p.ID, tx.ID, err)
		p.SetTransactionState(tx.ID, entities.TransactionStateFailure)
		p.AddInteraction(entities.InterfaceInteraction{
			ID:             uuid.NewString(),
			Kind:           entities.InteractionKindResponse,
			TransactionID:  tx.ID,
			SequenceNumber: seq,
			Timestamp:      time.Now().UTC(),
			Payload: map[string]string{
				gatewayKeyStatus:       gatewayStatusError,
				gatewayKeyErrorCode:    internalErrorCode,
				gatewayKeyErrorMessage: err.Error(),
			},
		})
		return e.repo.UpdateWithVersion(ctx, p, p.Version)
	}

	kind := entities.InteractionKindResponse
	status := response[gatewayKeyStatus]
	switch status {
	case gatewayStatusRedirect:
		p.RedirectURL = response[gatewayKeyRedirectURL]
		p.GatewayReference = response[gatewayKeyTxID]
		kind = entities.InteractionKindRedirect
	case gatewayStatusApproved:
		p.SetTransactionState(tx.ID, entities.TransactionStateSuccess)
		p.GatewayReference = response[gatewayKeyTxID]
	case gatewayStatusPending:
		// Gateway-side pending: the transaction stays PENDING until a
		// notification settles it.
		p.GatewayReference = response[gatewayKeyTxID]
	case gatewayStatusError:
		p.SetTransactionState(tx.ID, entities.TransactionStateFailure)
	default:
		return p, fmt.Errorf("%w: %q", ErrUnexpectedGatewayStatus, status)
	}

	p.AddInteraction(entities.InterfaceInteraction{
		ID:             uuid.NewString(),
		Kind:           kind,
		TransactionID:  tx.ID,
		SequenceNumber: seq,
		Timestamp:      time.Now().UTC(),
		Payload:        response,
	})

	p, err = e.repo.UpdateWithVersion(ctx, p, p.Version)
	if err != nil {
		log.Printf("[dispatch][executor] response commit failed payment_id=%s transaction_id=%s err=%v", p.ID, tx.ID, err)
		return p, err
	}
	log.Printf("[dispatch][executor] execute success payment_id=%s transaction_id=%s gateway_status=%s sequence=%d", p.ID, tx.ID, status, seq)
	return p, nil
}
