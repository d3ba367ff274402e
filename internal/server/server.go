package server

import (
	"github.com/AankTia/ecommerce-app/internal/config"
	"github.com/AankTia/ecommerce-app/internal/handler"

	"github.com/labstack/echo/v4"
)

func Start(addr string, cfg config.Config, checkoutH *handler.CheckoutHandler, webhookH *handler.WebhookHandler, orderH *handler.OrderHandler) error {
	e := echo.New()
	e.HideBanner = true

	RegisterRoutes(e, cfg, checkoutH, webhookH, orderH)
	return e.Start(addr)
}
