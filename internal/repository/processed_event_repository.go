package repository

import (
	"context"

	"github.com/AankTia/ecommerce-app/internal/domain/model"
)

// 処理済みイベント台帳。
type ProcessedEventRepository interface {
	Exists(ctx context.Context, eventID string) (bool, error)

	//同じeventIDが既にあればErrDuplicateEvent（先勝ち）
	Create(ctx context.Context, ev model.ProcessedEvent) error
}
