package repository

import (
	"context"

	"github.com/AankTia/ecommerce-app/internal/domain/model"
)

// 商品の参照だけを約束。金額計算には使わない（表示名の解決のみ）。
type ProductRepository interface {
	FindByID(ctx context.Context, id int64) (model.Product, error)
}
