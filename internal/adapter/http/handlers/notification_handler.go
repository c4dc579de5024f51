package handlers

import (
	"errors"
	"io"
	"log"
	"net/http"

	request "payment_adapter/internal/adapter/http/dto/request"
	"payment_adapter/internal/usecase"
	"payment_adapter/pkg"

	"github.com/gin-gonic/gin"
)

// NotificationHandler receives asynchronous gateway notifications. The gateway
// keeps redelivering until it reads the acknowledgement body, so every
// transient failure (including an optimistic-concurrency conflict) must answer
// with a 5xx status.

type NotificationHandler struct {
	usecase usecase.INotificationUseCase
}

func NewNotificationHandler(uc usecase.INotificationUseCase) *NotificationHandler {
	return &NotificationHandler{usecase: uc}
}

// HandleNotification parses the flat key=value body and merges it into the
// target payment.
func (h *NotificationHandler) HandleNotification(c *gin.Context) {
	raw, err := io.ReadAll(c.Request.Body)
	if err != nil {
		log.Printf("[notification][handler] body read failed err=%v", err)
		appErr := pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	notification, err := request.ParseNotification(string(raw))
	if err != nil {
		log.Printf("[notification][handler] malformed payload err=%v", err)
		appErr := pkg.NewDomainErrorSimple("MALFORMED_NOTIFICATION", "Malformed notification payload", http.StatusBadRequest)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	log.Printf("[notification][handler] received reference=%s action=%s sequence=%d", notification.TransactionID, notification.Action, notification.Sequence)

	if err := h.usecase.HandleNotification(c.Request.Context(), notification); err != nil {
		if errors.Is(err, usecase.ErrNotificationPaymentNotFound) {
			log.Printf("[notification][handler] unknown payment reference=%s", notification.TransactionID)
			appErr := pkg.NewDomainErrorSimple("PAYMENT_NOT_FOUND", "No payment for gateway reference", http.StatusNotFound)
			c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
			return
		}
		// Conflicts and store failures land here: a 5xx makes the gateway
		// retry delivery later.
		log.Printf("[notification][handler] merge failed reference=%s sequence=%d err=%v", notification.TransactionID, notification.Sequence, err)
		c.String(http.StatusInternalServerError, "RETRY")
		return
	}

	log.Printf("[notification][handler] accepted reference=%s sequence=%d", notification.TransactionID, notification.Sequence)
	c.String(http.StatusOK, "TSOK")
}
