package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"payment_adapter/internal/adapter/http/handlers/mocks"
	"payment_adapter/internal/domain/entities"
	"payment_adapter/internal/usecase"
	"payment_adapter/internal/usecase/interfaces"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"
)

func newNotificationRouter(t *testing.T) (*gin.Engine, *mocks.MockINotificationUseCase) {
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)
	uc := mocks.NewMockINotificationUseCase(ctrl)
	handler := NewNotificationHandler(uc)

	router := gin.New()
	router.POST("/v1/notifications", handler.HandleNotification)
	return router, uc
}

func postNotification(router *gin.Engine, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/notifications", strings.NewReader(body))
	router.ServeHTTP(w, req)
	return w
}

func TestNotificationHandler_HandleNotification_Accepted(t *testing.T) {
	router, uc := newNotificationRouter(t)

	uc.EXPECT().
		HandleNotification(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ any, n entities.Notification) error {
			if n.TransactionID != "GW-42" || n.Sequence != 1 || n.Action != "capture" {
				t.Fatalf("parsed notification wrong: %+v", n)
			}
			return nil
		})

	w := postNotification(router, "txid=GW-42&sequencenumber=1&txaction=capture&transaction_status=completed&amount=2500&currency=BRL")

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", w.Code, w.Body.String())
	}
	if w.Body.String() != "TSOK" {
		t.Fatalf("gateway expects the literal acknowledgement TSOK, got %q", w.Body.String())
	}
}

func TestNotificationHandler_HandleNotification_Malformed(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{name: "empty body", body: ""},
		{name: "duplicate key", body: "txid=GW-1&txid=GW-2"},
		{name: "all blank values", body: "txid=&txaction="},
		{name: "missing txid", body: "txaction=capture&sequencenumber=1"},
		{name: "missing sequence", body: "txid=GW-1&txaction=paid&transaction_status=completed"},
		{name: "bad sequence", body: "txid=GW-1&sequencenumber=first"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			router, _ := newNotificationRouter(t)
			w := postNotification(router, tc.body)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d body=%s", w.Code, w.Body.String())
			}
		})
	}
}

func TestNotificationHandler_HandleNotification_UnknownReference(t *testing.T) {
	router, uc := newNotificationRouter(t)

	uc.EXPECT().HandleNotification(gomock.Any(), gomock.Any()).Return(usecase.ErrNotificationPaymentNotFound)

	w := postNotification(router, "txid=GW-unknown&sequencenumber=0&txaction=paid")
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestNotificationHandler_HandleNotification_ConflictAsksForRedelivery(t *testing.T) {
	router, uc := newNotificationRouter(t)

	uc.EXPECT().HandleNotification(gomock.Any(), gomock.Any()).Return(interfaces.ErrVersionConflict)

	w := postNotification(router, "txid=GW-42&sequencenumber=2&txaction=paid")
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 so the gateway retries, got %d", w.Code)
	}
	if w.Body.String() != "RETRY" {
		t.Fatalf("expected RETRY body, got %q", w.Body.String())
	}
}
