package repository

import (
	"context"

	"github.com/AankTia/ecommerce-app/internal/domain/model"
)

type OrderRepository interface {
	FindByID(ctx context.Context, orderID int64) (model.Order, error)
	ListByUserID(ctx context.Context, userID int64, page int, limit int) ([]model.Order, int64, error)
	Create(ctx context.Context, order model.Order) (int64, error)

	//compare-and-swap遷移。現在statusがfromに含まれる場合だけtoへ更新する。
	//行が無ければErrNotFound、statusが合わなければErrInvalidTransition。
	UpdateStatusIf(ctx context.Context, orderID int64, from []model.OrderStatus, to model.OrderStatus) error

	//決済セッション作成後にプロバイダのsession idを控える（照合はmetadata側で行う）
	SetCheckoutSessionID(ctx context.Context, orderID int64, sessionID string) error
}
