package routes

import (
	"github.com/gin-gonic/gin"

	"klubnika/controllers"
	"klubnika/middleware"
	"klubnika/realtime"
)

type Controllers struct {
	Auth    *controllers.AuthController
	Admin   *controllers.AdminController
	Payment *controllers.PaymentController
	Order   *controllers.OrderController
	Hub     *realtime.Hub
}

func RegisterRoutes(r *gin.Engine, jwtSecret string, ctl Controllers) {

	r.POST("/auth/register", ctl.Auth.Register)
	r.POST("/auth/login", ctl.Auth.Login)
	r.GET("/menu", controllers.GetMenu)

	r.POST("/admin/login", ctl.Admin.Login)

	auth := middleware.Auth(jwtSecret)

	r.GET("/ws", auth, controllers.ServeWS(ctl.Hub))

	admin := r.Group("/admin")
	admin.Use(auth, middleware.Admin())
	{
		admin.GET("/invoices/stats", ctl.Admin.InvoiceStats)
		admin.GET("/invoices/download", ctl.Admin.MonthlyReport)

		admin.POST("/menu", controllers.CreateMenuItem)
		admin.PUT("/menu/:id", controllers.UpdateMenuItem)
		admin.PUT("/menu/:id/stock", controllers.UpdateMenuStock)
		admin.DELETE("/menu/:id", controllers.DeleteMenuItem)
	}

	orders := r.Group("/orders")
	orders.Use(auth)
	{
		// list branch is admin-only, invoice query branch is checked
		// against the order owner inside the handler
		orders.GET("", ctl.Order.GetAllOrders)
		orders.GET("/my-orders", ctl.Order.GetMyOrders)
		orders.GET("/:id/invoice", ctl.Order.DownloadInvoice)
		orders.PUT("/:id/status", middleware.Admin(), ctl.Order.UpdateStatus)
		orders.PUT("/:id/cancel", ctl.Order.Cancel)
	}

	payments := r.Group("/payment")
	payments.Use(auth)
	{
		payments.POST("/create-order", ctl.Payment.CreateOrder)
		payments.POST("/verify-payment", ctl.Payment.VerifyPayment)
		payments.POST("/create-cash-order", ctl.Payment.CreateCashOrder)
	}

	cart := r.Group("/cart")
	cart.Use(auth)
	{
		cart.GET("", controllers.GetCart)
		cart.POST("", controllers.AddToCart)
		cart.PUT("/:title", controllers.UpdateCartItem)
		cart.DELETE("", controllers.ClearCart)
	}
}
