package server

import (
	"github.com/AankTia/ecommerce-app/internal/config"
	"github.com/AankTia/ecommerce-app/internal/handler"

	"github.com/labstack/echo/v4"
)

func RegisterRoutes(e *echo.Echo, cfg config.Config, checkoutH *handler.CheckoutHandler, webhookH *handler.WebhookHandler, orderH *handler.OrderHandler) {
	checkoutH.RegisterRoutes(e, cfg)
	orderH.RegisterRoutes(e, cfg)

	//webhookは署名で認証するのでJWTは掛けない
	webhookH.RegisterRoutes(e)
}
