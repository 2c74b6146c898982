package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/karanxgill/AllHoursCafe/configs"
	"github.com/karanxgill/AllHoursCafe/controllers"
	"github.com/karanxgill/AllHoursCafe/middlewares"
	"github.com/karanxgill/AllHoursCafe/pkg/kv"
	"github.com/karanxgill/AllHoursCafe/repository"
	"github.com/karanxgill/AllHoursCafe/services"
	"github.com/karanxgill/AllHoursCafe/ws"
)

// RegisterRoutes wires repositories, services and controllers and mounts the
// API surface onto the engine.
func RegisterRoutes(r *gin.Engine, db *gorm.DB, store kv.Store, cfg *configs.Config, hub *ws.OrderHub) {
	// repositories
	userRepo := repository.NewUserRepository(db)
	addressRepo := repository.NewAddressRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	reservationRepo := repository.NewReservationRepository(db)
	menuRepo := repository.NewMenuRepository(db)

	// services
	mailer := services.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.SMTPFrom)
	payu := services.NewPayUService(cfg.PayUMerchantKey, cfg.PayUMerchantSalt, cfg.PayUBaseURL)
	pricing := services.NewPricingEngine(cfg.TaxRate, cfg.DeliveryFee)
	cartSvc := services.NewCartService(store, menuRepo, cfg.CartTTL)
	addressSvc := services.NewAddressService(db, addressRepo, userRepo, cfg.FuzzyAddressRecovery)
	checkoutSvc := services.NewCheckoutService(db, cartSvc, pricing, addressSvc, orderRepo, userRepo, payu, mailer, hub, cfg.AppBaseURL)
	reservationSvc := services.NewReservationService(db, reservationRepo, payu, mailer, cfg.ReservationDeposit, cfg.AppBaseURL)
	authSvc := services.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTTTL)
	menuSvc := services.NewMenuService(menuRepo)

	// controllers
	authCtl := controllers.NewAuthController(authSvc)
	menuCtl := controllers.NewMenuController(menuSvc)
	cartCtl := controllers.NewCartController(cartSvc)
	checkoutCtl := controllers.NewCheckoutController(checkoutSvc)
	addressCtl := controllers.NewAddressController(addressSvc, checkoutSvc)
	orderCtl := controllers.NewOrderController(checkoutSvc)
	reservationCtl := controllers.NewReservationController(reservationSvc)

	auth := middlewares.AuthMiddleware(cfg.JWTSecret)

	api := r.Group("/api")
	{
		api.POST("/auth/register", authCtl.Register)
		api.POST("/auth/login", authCtl.Login)
		api.GET("/auth/profile", auth, authCtl.Profile)
		api.PUT("/auth/profile", auth, authCtl.UpdateProfile)

		api.GET("/menu/categories", menuCtl.Categories)
		api.GET("/menu/items", menuCtl.Items)

		// cart is session-scoped, no login required
		api.GET("/cart", cartCtl.Get)
		api.POST("/cart", cartCtl.Replace)
		api.POST("/cart/item", cartCtl.SetItem)
		api.DELETE("/cart", cartCtl.Clear)

		api.GET("/checkout", auth, checkoutCtl.Summary)
		api.POST("/checkout", auth, checkoutCtl.Submit)
		// runs the full lookup chain, orphan recovery included
		api.GET("/checkout/addresses", auth, addressCtl.Resolve)

		api.GET("/payment/form/:id", auth, checkoutCtl.PaymentForm)
		// callbacks come from the gateway; trust lives in the hash, not a token
		api.GET("/payment/success/:id", checkoutCtl.PaymentSuccess)
		api.POST("/payment/success/:id", checkoutCtl.PaymentSuccess)
		api.GET("/payment/failure/:id", checkoutCtl.PaymentFailure)
		api.POST("/payment/failure/:id", checkoutCtl.PaymentFailure)

		addr := api.Group("/addresses", auth)
		{
			addr.GET("", addressCtl.List)
			addr.POST("", addressCtl.Create)
			addr.PUT("/:id", addressCtl.Update)
			addr.DELETE("/:id", addressCtl.Delete)
			addr.POST("/:id/default", addressCtl.SetDefault)
		}

		api.GET("/orders", auth, orderCtl.List)
		api.GET("/orders/:id", auth, orderCtl.Get)
		api.POST("/orders/:id/save-address", auth, addressCtl.CreateFromOrder)

		api.POST("/reservations", reservationCtl.Create)
		api.GET("/reservations/:id", reservationCtl.Get)
		api.GET("/reservations/:id/payment/form", reservationCtl.PaymentForm)
		api.GET("/reservations/:id/payment/success", reservationCtl.PaymentSuccess)
		api.POST("/reservations/:id/payment/success", reservationCtl.PaymentSuccess)
		api.GET("/reservations/:id/payment/failure", reservationCtl.PaymentFailure)
		api.POST("/reservations/:id/payment/failure", reservationCtl.PaymentFailure)
	}

	r.GET("/ws/orders/:id", hub.HandleWebSocket)
}
