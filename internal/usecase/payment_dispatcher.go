package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"

	"payment_adapter/internal/domain/entities"
)

var (
	ErrWrongGatewayInterface = errors.New("payment gateway interface mismatch")
	ErrUnknownPaymentMethod  = errors.New("unknown payment method")
)

// PaymentMethodDispatcher routes one payment method's transactions to executors
// by transaction type. The table is built once at wiring time; types without an
// entry fall back to the explicit default executor.
type PaymentMethodDispatcher struct {
	executors map[entities.TransactionType]ITransactionExecutor
	fallback  ITransactionExecutor
}

func NewPaymentMethodDispatcher(executors map[entities.TransactionType]ITransactionExecutor, fallback ITransactionExecutor) *PaymentMethodDispatcher {
	if executors == nil {
		executors = map[entities.TransactionType]ITransactionExecutor{}
	}
	return &PaymentMethodDispatcher{executors: executors, fallback: fallback}
}

func (d *PaymentMethodDispatcher) Dispatch(ctx context.Context, p entities.Payment, tx entities.Transaction) (entities.Payment, error) {
	executor, ok := d.executors[tx.Type]
	if !ok {
		executor = d.fallback
	}
	if executor == nil {
		// Wiring error, not caller input: every method dispatcher must carry a
		// default entry.
		return p, fmt.Errorf("no executor configured for transaction type %s", tx.Type)
	}
	return executor.Execute(ctx, p, tx)
}

// PaymentDispatcher routes a payment's first pending transaction to the method
// dispatcher registered for its payment method. At most one transaction is
// processed per call; multi-step flows emerge from the caller re-invoking
// dispatch after each settled step.
type PaymentDispatcher struct {
	interfaceName string
	methods       map[string]*PaymentMethodDispatcher
}

func NewPaymentDispatcher(interfaceName string, methods map[string]*PaymentMethodDispatcher) *PaymentDispatcher {
	if methods == nil {
		methods = map[string]*PaymentMethodDispatcher{}
	}
	return &PaymentDispatcher{interfaceName: interfaceName, methods: methods}
}

func (d *PaymentDispatcher) Dispatch(ctx context.Context, p entities.Payment) (entities.Payment, error) {
	if p.Interface != d.interfaceName {
		log.Printf("[dispatch][dispatcher] interface mismatch payment_id=%s interface=%s configured=%s", p.ID, p.Interface, d.interfaceName)
		return p, fmt.Errorf("%w: payment has %q, adapter handles %q", ErrWrongGatewayInterface, p.Interface, d.interfaceName)
	}

	tx, ok := p.PendingTransaction()
	if !ok {
		log.Printf("[dispatch][dispatcher] no pending transaction payment_id=%s", p.ID)
		return p, nil
	}

	method, ok := d.methods[p.Method]
	if !ok {
		return p, fmt.Errorf("%w: %q", ErrUnknownPaymentMethod, p.Method)
	}
	return method.Dispatch(ctx, p, tx)
}
