package main

import (
	"log"
	"log/slog"
	"os"

	"github.com/gin-gonic/gin"

	"klubnika/config"
	"klubnika/controllers"
	"klubnika/database"
	"klubnika/notify"
	"klubnika/payment"
	"klubnika/realtime"
	"klubnika/routes"
)

func main() {

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("config error: ", err)
	}

	database.ConnectMongo(cfg.MongoURI, cfg.DBName)
	database.InitCollections()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	gateway := payment.NewClient(cfg.Razorpay, logger.With("component", "razorpay"))
	mailer := notify.NewMailer(cfg.SMTP)
	sms := notify.NewSMSClient(cfg.SMS, logger.With("component", "sms"))
	dispatcher := notify.NewDispatcher(4, 64, logger.With("component", "notify"))
	defer dispatcher.Close()

	hub := realtime.NewHub(logger.With("component", "realtime"))

	ctl := routes.Controllers{
		Auth: &controllers.AuthController{JWTSecret: cfg.JWTSecret},
		Admin: &controllers.AdminController{
			JWTSecret: cfg.JWTSecret,
			Admin:     cfg.Admin,
		},
		Payment: &controllers.PaymentController{
			Gateway:       gateway,
			Mailer:        mailer,
			SMS:           sms,
			Dispatch:      dispatcher,
			Hub:           hub,
			KeySecret:     cfg.Razorpay.KeySecret,
			PublicBaseURL: cfg.PublicBaseURL,
		},
		Order: &controllers.OrderController{
			Gateway:       gateway,
			Mailer:        mailer,
			SMS:           sms,
			Dispatch:      dispatcher,
			Hub:           hub,
			Log:           logger.With("component", "orders"),
			PublicBaseURL: cfg.PublicBaseURL,
		},
		Hub: hub,
	}

	r := gin.Default()
	r.SetTrustedProxies(nil)
	routes.RegisterRoutes(r, cfg.JWTSecret, ctl)

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("server error: ", err)
	}
}
