package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/AankTia/ecommerce-app/internal/domain/model"
	"github.com/AankTia/ecommerce-app/internal/payment"
	repo "github.com/AankTia/ecommerce-app/internal/repository"
)

// Applyの業務結果。どれもwebhook応答としては成功（200）になる
type Outcome string

const (
	OutcomeApplied          Outcome = "APPLIED"
	OutcomeAlreadyProcessed Outcome = "ALREADY_PROCESSED"
	OutcomeNoMatchingOrder  Outcome = "NO_MATCHING_ORDER"
	OutcomeAlreadyTerminal  Outcome = "ALREADY_TERMINAL"
	OutcomeIgnored          Outcome = "IGNORED"
)

type WebhookUsecase struct {
	tx     repo.TransactionManager
	logger *slog.Logger
}

func NewWebhookUsecase(tx repo.TransactionManager, logger *slog.Logger) *WebhookUsecase {
	return &WebhookUsecase{tx: tx, logger: logger}
}

// Applyは検証済みイベントを冪等に適用する。
// 台帳チェック→status遷移→台帳INSERTを1トランザクションにまとめるので、
// 同じイベントIDは何度届いても遷移は高々1回しか起きない。
func (u *WebhookUsecase) Apply(ctx context.Context, ev payment.VerifiedEvent) (Outcome, error) {
	var out Outcome

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		seen, err := r.ProcessedEvents().Exists(ctx, ev.ID)
		if err != nil {
			return err
		}
		if seen {
			out = OutcomeAlreadyProcessed
			return nil
		}

		out, err = u.applyOnce(ctx, r, ev)
		if err != nil {
			return err
		}

		rec := model.ProcessedEvent{
			EventID:     ev.ID,
			EventType:   ev.Type,
			Outcome:     string(out),
			ProcessedAt: time.Now(),
		}
		if ev.OrderID > 0 {
			orderID := ev.OrderID
			rec.OrderID = &orderID
		}
		return r.ProcessedEvents().Create(ctx, rec)
	})

	//同時配送の負け側。勝った側が適用済みなのでno-opでよい
	if errors.Is(err, repo.ErrDuplicateEvent) {
		out = OutcomeAlreadyProcessed
		err = nil
	}
	if err != nil {
		return "", err
	}

	u.logger.Info("webhook event applied",
		slog.String("event_id", ev.ID),
		slog.String("event_type", ev.Type),
		slog.Int64("order_id", ev.OrderID),
		slog.String("outcome", string(out)),
	)
	return out, nil
}

func (u *WebhookUsecase) applyOnce(ctx context.Context, r repo.TxRepos, ev payment.VerifiedEvent) (Outcome, error) {
	var to model.OrderStatus

	switch ev.Kind {
	case payment.EventCheckoutCompleted:
		to = model.OrderStatusPaid
	case payment.EventPaymentFailed:
		to = model.OrderStatusFailed
	case payment.EventCheckoutExpired:
		to = model.OrderStatusCanceled
	default:
		//未知のtypeはエラーにしない（前方互換）
		return OutcomeIgnored, nil
	}

	err := r.Orders().UpdateStatusIf(ctx, ev.OrderID, []model.OrderStatus{model.OrderStatusPending}, to)
	if errors.Is(err, repo.ErrNotFound) {
		return OutcomeNoMatchingOrder, nil
	}
	if errors.Is(err, repo.ErrInvalidTransition) {
		return OutcomeAlreadyTerminal, nil
	}
	if err != nil {
		return "", err
	}
	return OutcomeApplied, nil
}
