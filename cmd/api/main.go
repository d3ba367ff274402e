package main

import (
	"log/slog"
	"os"

	"github.com/AankTia/ecommerce-app/internal/config"
	"github.com/AankTia/ecommerce-app/internal/domain/model"
	"github.com/AankTia/ecommerce-app/internal/handler"
	"github.com/AankTia/ecommerce-app/internal/infra/db"
	infraRepo "github.com/AankTia/ecommerce-app/internal/infra/repository"
	"github.com/AankTia/ecommerce-app/internal/payment"
	"github.com/AankTia/ecommerce-app/internal/server"
	"github.com/AankTia/ecommerce-app/internal/usecase"

	"github.com/joho/godotenv"
)

func main() {
	//.envは無ければ環境変数だけで動く
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	//DB接続
	gormDB, err := db.Connect(cfg)
	if err != nil {
		panic(err)
	}
	if err := gormDB.AutoMigrate(
		&model.Product{},
		&model.Order{},
		&model.OrderItem{},
		&model.ProcessedEvent{},
	); err != nil {
		panic(err)
	}

	//Repository（GORM実装）生成
	txm := infraRepo.NewTxManagerGorm(gormDB)
	orderRepo := infraRepo.NewOrderGormRepository(gormDB)

	//決済プロバイダ。シークレットはここで注入する
	gateway := payment.NewStripeGateway(
		cfg.StripeSecretKey,
		cfg.GatewayTimeout,
		cfg.CheckoutSuccessURL,
		cfg.CheckoutCancelURL,
		cfg.CheckoutCurrency,
	)
	verifier := payment.NewStripeWebhookVerifier(cfg.StripeWebhookSecret)

	//Usecase生成
	checkoutUC := usecase.NewCheckoutUsecase(txm, orderRepo, gateway, logger)
	webhookUC := usecase.NewWebhookUsecase(txm, logger)
	orderUC := usecase.NewOrderUsecase(txm)

	//Handler生成
	checkoutH := handler.NewCheckoutHandler(checkoutUC)
	webhookH := handler.NewWebhookHandler(verifier, webhookUC, logger)
	orderH := handler.NewOrderHandler(orderUC)

	//Server起動
	addr := cfg.Port
	if addr[0] != ':' {
		addr = ":" + addr
	}

	if err := server.Start(addr, cfg, checkoutH, webhookH, orderH); err != nil {
		panic(err)
	}
}
