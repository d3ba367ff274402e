package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/AankTia/ecommerce-app/internal/domain/model"
	"github.com/AankTia/ecommerce-app/internal/payment"
	repo "github.com/AankTia/ecommerce-app/internal/repository"
)

type CheckoutUsecase struct {
	tx      repo.TransactionManager
	orders  repo.OrderRepository
	gateway payment.CheckoutGateway
	logger  *slog.Logger
}

func NewCheckoutUsecase(tx repo.TransactionManager, orders repo.OrderRepository, gateway payment.CheckoutGateway, logger *slog.Logger) *CheckoutUsecase {
	return &CheckoutUsecase{tx: tx, orders: orders, gateway: gateway, logger: logger}
}

type CheckoutItemInput struct {
	ProductID int64
	Quantity  int64
	UnitPrice int64 //呼び出し側が確定した最小通貨単位の価格
}

type CheckoutInput struct {
	Items []CheckoutItemInput
}

type CheckoutOutput struct {
	OrderID     int64  `json:"order_id"`
	RedirectURL string `json:"redirect_url"`
}

// totalOfは明細リストを検証して合計（最小通貨単位）を返す。副作用なし。
// どの明細が不正かをメッセージで名指しする。
func totalOf(items []CheckoutItemInput) (int64, error) {
	if len(items) == 0 {
		return 0, NewHTTPError(http.StatusBadRequest, "items must not be empty")
	}

	var total int64 = 0
	for i, it := range items {
		if it.ProductID <= 0 {
			return 0, NewHTTPError(http.StatusBadRequest, fmt.Sprintf("invalid product_id at items[%d]", i))
		}
		if it.Quantity < 1 {
			return 0, NewHTTPError(http.StatusBadRequest, fmt.Sprintf("invalid quantity at items[%d]", i))
		}
		if it.UnitPrice < 0 {
			return 0, NewHTTPError(http.StatusBadRequest, fmt.Sprintf("invalid unit_price at items[%d]", i))
		}
		total += it.UnitPrice * it.Quantity
	}
	return total, nil
}

// PlaceCheckoutはOrder+明細を1トランザクションで作り、Stripeのcheckout
// セッションを発行してリダイレクトURLを返す。
// セッション発行前にcommitするので、Gateway失敗時のリトライは新しいOrderになる。
func (u *CheckoutUsecase) PlaceCheckout(ctx context.Context, userID int64, in CheckoutInput) (CheckoutOutput, error) {
	if userID <= 0 {
		return CheckoutOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	total, err := totalOf(in.Items)
	if err != nil {
		return CheckoutOutput{}, err
	}

	var orderID int64
	var lineItems []payment.LineItem

	err = u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		orderItems := make([]model.OrderItem, 0, len(in.Items))
		lineItems = make([]payment.LineItem, 0, len(in.Items))

		for i, it := range in.Items {
			//表示名の解決。価格は呼び出し側スナップショットを使う
			p, err := r.Products().FindByID(ctx, it.ProductID)
			if errors.Is(err, repo.ErrNotFound) {
				return NewHTTPError(http.StatusBadRequest, fmt.Sprintf("unknown product_id at items[%d]", i))
			}
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			if !p.IsActive {
				return NewHTTPError(http.StatusBadRequest, fmt.Sprintf("inactive product_id at items[%d]", i))
			}

			now := time.Now()
			orderItems = append(orderItems, model.OrderItem{
				ProductID:           it.ProductID,
				ProductNameSnapshot: p.Name,
				UnitPriceSnapshot:   it.UnitPrice,
				Quantity:            it.Quantity,
				CreatedAt:           now,
			})
			lineItems = append(lineItems, payment.LineItem{
				Name:       p.Name,
				UnitAmount: it.UnitPrice,
				Quantity:   it.Quantity,
			})
		}

		now := time.Now()
		id, err := r.Orders().Create(ctx, model.Order{
			UserID:     userID,
			Status:     model.OrderStatusPending,
			TotalPrice: total,
			CreatedAt:  now,
			UpdatedAt:  now,
		})
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if err := r.OrderItems().CreateBulk(ctx, id, orderItems); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		orderID = id
		return nil
	})
	if err != nil {
		return CheckoutOutput{}, err
	}

	//外部呼び出しはcommit後。失敗してもローカルには副作用が残らない
	sess, err := u.gateway.CreateSession(ctx, payment.SessionRequest{
		OrderID: orderID,
		Items:   lineItems,
	})
	if err != nil {
		return CheckoutOutput{}, err
	}

	//session idの控えはレポート用。失敗しても照合はmetadata側で届くのでURLは返す
	if err := u.orders.SetCheckoutSessionID(ctx, orderID, sess.ID); err != nil {
		u.logger.Warn("failed to record checkout session id",
			slog.Int64("order_id", orderID),
			slog.String("session_id", sess.ID),
			slog.String("error", err.Error()),
		)
	}

	return CheckoutOutput{OrderID: orderID, RedirectURL: sess.URL}, nil
}
