package usecase

import (
	"context"
	"errors"
	"testing"

	"payment_adapter/internal/domain/entities"
	"payment_adapter/internal/usecase/interfaces"
	mock_interfaces "payment_adapter/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

func pendingPayment(txType entities.TransactionType) (entities.Payment, entities.Transaction) {
	tx := entities.Transaction{
		ID:             "tx-1",
		Type:           txType,
		State:          entities.TransactionStatePending,
		Amount:         2500,
		Currency:       "BRL",
		SequenceNumber: -1,
	}
	p := entities.Payment{
		ID:           "pay-1",
		Version:      1,
		Interface:    "PAYGATE",
		Method:       "CREDIT_CARD",
		Amount:       2500,
		Currency:     "BRL",
		Transactions: []entities.Transaction{tx},
	}
	return p, tx
}

func newExecutorFixture(t *testing.T) (*IdempotentTransactionExecutor, *mock_interfaces.MockIPaymentRepository, *mock_interfaces.MockIGatewayClient, *mock_interfaces.MockIRequestFactory) {
	ctrl := gomock.NewController(t)
	repo := mock_interfaces.NewMockIPaymentRepository(ctrl)
	gateway := mock_interfaces.NewMockIGatewayClient(ctrl)
	factory := mock_interfaces.NewMockIRequestFactory(ctrl)
	return NewIdempotentTransactionExecutor(repo, gateway, factory), repo, gateway, factory
}

func expectVersionedCommit(repo *mock_interfaces.MockIPaymentRepository) *gomock.Call {
	return repo.EXPECT().
		UpdateWithVersion(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, p entities.Payment, expected int64) (entities.Payment, error) {
			p.Version = expected + 1
			return p, nil
		})
}

func TestIdempotentTransactionExecutor_Execute_Approved(t *testing.T) {
	executor, repo, gateway, factory := newExecutorFixture(t)
	p, tx := pendingPayment(entities.TransactionTypeAuthorization)

	request := map[string]string{"request": "preauthorization", "amount": "2500"}
	factory.EXPECT().BuildRequest(gomock.Any(), gomock.Any(), 0).Return(request, nil)
	expectVersionedCommit(repo).Times(2)
	gateway.EXPECT().Send(gomock.Any(), request).Return(map[string]string{
		"status": "APPROVED",
		"txid":   "GW-42",
	}, nil)

	got, err := executor.Execute(context.Background(), p, tx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Transactions[0].State != entities.TransactionStateSuccess {
		t.Fatalf("expected SUCCESS, got %s", got.Transactions[0].State)
	}
	if got.Transactions[0].SequenceNumber != 0 {
		t.Fatalf("expected bound sequence 0, got %d", got.Transactions[0].SequenceNumber)
	}
	if got.GatewayReference != "GW-42" {
		t.Fatalf("expected gateway reference GW-42, got %q", got.GatewayReference)
	}
	if len(got.Interactions) != 2 {
		t.Fatalf("expected REQUEST and RESPONSE interactions, got %d", len(got.Interactions))
	}
	if got.Interactions[0].Kind != entities.InteractionKindRequest || got.Interactions[1].Kind != entities.InteractionKindResponse {
		t.Fatalf("unexpected interaction kinds: %s, %s", got.Interactions[0].Kind, got.Interactions[1].Kind)
	}
	if got.Version != 3 {
		t.Fatalf("expected two committed writes ending at version 3, got %d", got.Version)
	}
}

func TestIdempotentTransactionExecutor_Execute_AlreadyExecuted(t *testing.T) {
	executor, _, _, _ := newExecutorFixture(t)
	p, tx := pendingPayment(entities.TransactionTypeAuthorization)
	p.Interactions = []entities.InterfaceInteraction{
		{ID: "i-1", Kind: entities.InteractionKindRequest, TransactionID: tx.ID, SequenceNumber: 0},
	}

	// No expectations registered: any repo, gateway or factory call fails the test.
	got, err := executor.Execute(context.Background(), p, tx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got.Interactions) != 1 {
		t.Fatalf("payment must be returned untouched, got %d interactions", len(got.Interactions))
	}
}

func TestIdempotentTransactionExecutor_Execute_Redirect(t *testing.T) {
	executor, repo, gateway, factory := newExecutorFixture(t)
	p, tx := pendingPayment(entities.TransactionTypeAuthorization)

	factory.EXPECT().BuildRequest(gomock.Any(), gomock.Any(), 0).Return(map[string]string{}, nil)
	expectVersionedCommit(repo).Times(2)
	gateway.EXPECT().Send(gomock.Any(), gomock.Any()).Return(map[string]string{
		"status":      "REDIRECT",
		"txid":        "GW-7",
		"redirecturl": "https://gateway.example/checkout/GW-7",
	}, nil)

	got, err := executor.Execute(context.Background(), p, tx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Transactions[0].State != entities.TransactionStatePending {
		t.Fatalf("redirect must keep the transaction pending, got %s", got.Transactions[0].State)
	}
	if got.RedirectURL != "https://gateway.example/checkout/GW-7" {
		t.Fatalf("redirect url not captured: %q", got.RedirectURL)
	}
	if got.Interactions[1].Kind != entities.InteractionKindRedirect {
		t.Fatalf("expected REDIRECT interaction, got %s", got.Interactions[1].Kind)
	}
}

func TestIdempotentTransactionExecutor_Execute_GatewayPending(t *testing.T) {
	executor, repo, gateway, factory := newExecutorFixture(t)
	p, tx := pendingPayment(entities.TransactionTypeCharge)

	factory.EXPECT().BuildRequest(gomock.Any(), gomock.Any(), 0).Return(map[string]string{}, nil)
	expectVersionedCommit(repo).Times(2)
	gateway.EXPECT().Send(gomock.Any(), gomock.Any()).Return(map[string]string{
		"status": "PENDING",
		"txid":   "GW-9",
	}, nil)

	got, err := executor.Execute(context.Background(), p, tx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Transactions[0].State != entities.TransactionStatePending {
		t.Fatalf("expected PENDING to survive until a notification, got %s", got.Transactions[0].State)
	}
	if got.GatewayReference != "GW-9" {
		t.Fatalf("expected gateway reference GW-9, got %q", got.GatewayReference)
	}
}

func TestIdempotentTransactionExecutor_Execute_GatewayError(t *testing.T) {
	executor, repo, gateway, factory := newExecutorFixture(t)
	p, tx := pendingPayment(entities.TransactionTypeCharge)

	factory.EXPECT().BuildRequest(gomock.Any(), gomock.Any(), 0).Return(map[string]string{}, nil)
	expectVersionedCommit(repo).Times(2)
	gateway.EXPECT().Send(gomock.Any(), gomock.Any()).Return(map[string]string{
		"status":       "ERROR",
		"errorcode":    "2001",
		"errormessage": "card declined",
	}, nil)

	got, err := executor.Execute(context.Background(), p, tx)
	if err != nil {
		t.Fatalf("a declined transaction is an outcome, not an error: %v", err)
	}
	if got.Transactions[0].State != entities.TransactionStateFailure {
		t.Fatalf("expected FAILURE, got %s", got.Transactions[0].State)
	}
	if got.Interactions[1].Payload["errorcode"] != "2001" {
		t.Fatalf("gateway error payload not recorded: %+v", got.Interactions[1].Payload)
	}
}

func TestIdempotentTransactionExecutor_Execute_TransportFailure(t *testing.T) {
	executor, repo, gateway, factory := newExecutorFixture(t)
	p, tx := pendingPayment(entities.TransactionTypeAuthorization)

	factory.EXPECT().BuildRequest(gomock.Any(), gomock.Any(), 0).Return(map[string]string{}, nil)
	expectVersionedCommit(repo).Times(2)
	gateway.EXPECT().Send(gomock.Any(), gomock.Any()).Return(nil, errors.New("connection refused"))

	got, err := executor.Execute(context.Background(), p, tx)
	if err != nil {
		t.Fatalf("transport failure must settle as FAILURE, not bubble up: %v", err)
	}
	if got.Transactions[0].State != entities.TransactionStateFailure {
		t.Fatalf("expected FAILURE, got %s", got.Transactions[0].State)
	}
	response := got.Interactions[1]
	if response.Kind != entities.InteractionKindResponse {
		t.Fatalf("expected synthesized RESPONSE interaction, got %s", response.Kind)
	}
	if response.Payload["errorcode"] != "9999" {
		t.Fatalf("expected internal error code 9999, got %q", response.Payload["errorcode"])
	}
}

func TestIdempotentTransactionExecutor_Execute_UnexpectedStatus(t *testing.T) {
	executor, repo, gateway, factory := newExecutorFixture(t)
	p, tx := pendingPayment(entities.TransactionTypeAuthorization)

	factory.EXPECT().BuildRequest(gomock.Any(), gomock.Any(), 0).Return(map[string]string{}, nil)
	expectVersionedCommit(repo)
	gateway.EXPECT().Send(gomock.Any(), gomock.Any()).Return(map[string]string{"status": "WAT"}, nil)

	_, err := executor.Execute(context.Background(), p, tx)
	if !errors.Is(err, ErrUnexpectedGatewayStatus) {
		t.Fatalf("expected ErrUnexpectedGatewayStatus, got %v", err)
	}
}

func TestIdempotentTransactionExecutor_Execute_RequestCommitConflict(t *testing.T) {
	executor, repo, _, factory := newExecutorFixture(t)
	p, tx := pendingPayment(entities.TransactionTypeAuthorization)

	factory.EXPECT().BuildRequest(gomock.Any(), gomock.Any(), 0).Return(map[string]string{}, nil)
	repo.EXPECT().
		UpdateWithVersion(gomock.Any(), gomock.Any(), p.Version).
		Return(entities.Payment{}, interfaces.ErrVersionConflict)

	// The gateway mock has no expectations: a conflict before the REQUEST commit
	// must never reach the wire.
	_, err := executor.Execute(context.Background(), p, tx)
	if !errors.Is(err, interfaces.ErrVersionConflict) {
		t.Fatalf("expected version conflict, got %v", err)
	}
}

func TestIdempotentTransactionExecutor_Execute_SequenceFollowsPriorRequests(t *testing.T) {
	executor, repo, gateway, factory := newExecutorFixture(t)
	p, tx := pendingPayment(entities.TransactionTypeCharge)
	p.Interactions = []entities.InterfaceInteraction{
		{Kind: entities.InteractionKindRequest, TransactionID: "tx-old", SequenceNumber: 0},
		{Kind: entities.InteractionKindResponse, TransactionID: "tx-old", SequenceNumber: 0},
		{Kind: entities.InteractionKindRequest, TransactionID: "tx-older", SequenceNumber: 1},
	}

	factory.EXPECT().BuildRequest(gomock.Any(), gomock.Any(), 2).Return(map[string]string{}, nil)
	expectVersionedCommit(repo).Times(2)
	gateway.EXPECT().Send(gomock.Any(), gomock.Any()).Return(map[string]string{"status": "APPROVED", "txid": "GW-1"}, nil)

	got, err := executor.Execute(context.Background(), p, tx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Transactions[0].SequenceNumber != 2 {
		t.Fatalf("expected sequence 2 (count of prior REQUESTs), got %d", got.Transactions[0].SequenceNumber)
	}
}
