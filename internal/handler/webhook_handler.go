package handler

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/AankTia/ecommerce-app/internal/payment"
	"github.com/AankTia/ecommerce-app/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// Stripeのwebhookボディは数KB程度。暴走対策の上限だけ置く
const maxWebhookBodyBytes = 1 << 20

// /webhooks/stripeのHTTP。transport認証なし、署名で認証する
type WebhookHandler struct {
	verifier payment.WebhookVerifier
	uc       *usecase.WebhookUsecase
	logger   *slog.Logger
}

func NewWebhookHandler(verifier payment.WebhookVerifier, uc *usecase.WebhookUsecase, logger *slog.Logger) *WebhookHandler {
	return &WebhookHandler{verifier: verifier, uc: uc, logger: logger}
}

type WebhookResponse struct {
	Received bool `json:"received"`
}

func (h *WebhookHandler) RegisterRoutes(e *echo.Echo) {
	e.POST("/webhooks/stripe", h.receive)
}

func (h *WebhookHandler) receive(c echo.Context) error {
	deliveryID := uuid.NewString()

	//署名は生ボディに対して検証するのでBindは使わない
	body, err := io.ReadAll(io.LimitReader(c.Request().Body, maxWebhookBodyBytes))
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	sig := c.Request().Header.Get("Stripe-Signature")

	ev, err := h.verifier.Verify(body, sig)
	if errors.Is(err, payment.ErrBadSignature) {
		//セキュリティイベント。ボディは信用できないのでログに含めない
		h.logger.Warn("webhook signature rejected",
			slog.String("delivery_id", deliveryID),
			slog.String("remote_addr", c.Request().RemoteAddr),
		)
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid signature"})
	}
	if err != nil {
		h.logger.Warn("webhook payload rejected",
			slog.String("delivery_id", deliveryID),
			slog.String("error", err.Error()),
		)
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid payload"})
	}

	_, err = h.uc.Apply(c.Request().Context(), ev)
	if err != nil {
		//ストレージ障害。500を返してStripeに再配送させる（Applyは冪等）
		h.logger.Error("webhook apply failed",
			slog.String("delivery_id", deliveryID),
			slog.String("event_id", ev.ID),
			slog.String("error", err.Error()),
		)
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}

	//業務上no-opでも200。4xx/5xxを返すと解消しない再配送が続く
	return c.JSON(http.StatusOK, WebhookResponse{Received: true})
}
