package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/Rohit-Saini7/BuddyBills-sub000/docs"
	"github.com/Rohit-Saini7/BuddyBills-sub000/internal/balance"
	"github.com/Rohit-Saini7/BuddyBills-sub000/internal/config"
	"github.com/Rohit-Saini7/BuddyBills-sub000/internal/database"
	"github.com/Rohit-Saini7/BuddyBills-sub000/internal/expense"
	expensesplit "github.com/Rohit-Saini7/BuddyBills-sub000/internal/expense/split"
	"github.com/Rohit-Saini7/BuddyBills-sub000/internal/group"
	"github.com/Rohit-Saini7/BuddyBills-sub000/internal/notification"
	"github.com/Rohit-Saini7/BuddyBills-sub000/internal/payment"
	"github.com/Rohit-Saini7/BuddyBills-sub000/internal/user"
	"github.com/Rohit-Saini7/BuddyBills-sub000/pkg/logger"
	mw "github.com/Rohit-Saini7/BuddyBills-sub000/pkg/middleware"
)

// @title        BuddyBills API
// @version      1.0
// @description  Group expense sharing with split calculation and balance tracking.
// @BasePath     /api/v1
func main() {
	// Load .env before reading configuration
	envErr := godotenv.Load()

	cfg := config.Load()
	log := logger.New(cfg.LogLevel)

	if envErr != nil {
		log.Debug("No .env file found, using environment variables")
	}

	db, err := database.NewPostgresConnection(cfg.DatabaseURL)
	if err != nil {
		log.WithError(err).Fatal("Failed to connect to database")
	}
	defer db.Close()

	log.Info("Connected to database")

	// Split strategy factory
	splitFactory := expensesplit.NewFactory()

	// Repositories
	userRepo := user.NewRepository(db)
	groupRepo := group.NewRepository(db)
	expenseRepo := expense.NewRepository(db)
	paymentRepo := payment.NewRepository(db)
	notificationRepo := notification.NewRepository(db)

	// Services. Balance aggregation feeds the group service its settlement
	// check, so it is built before the group service.
	notificationService := notification.NewService(notificationRepo)
	balanceService := balance.NewService(groupRepo, expenseRepo, paymentRepo)
	groupService := group.NewService(groupRepo, balanceService)
	expenseService := expense.NewService(expenseRepo, splitFactory, groupService, notificationService, log)
	paymentService := payment.NewService(paymentRepo, groupService, notificationService, log)
	userService := user.NewService(userRepo, cfg.JWTSecret)

	// Handlers
	userHandler := user.NewHandler(userService)
	groupHandler := group.NewHandler(groupService)
	expenseHandler := expense.NewHandler(expenseService)
	paymentHandler := payment.NewHandler(paymentService)
	balanceHandler := balance.NewHandler(balanceService)
	notificationHandler := notification.NewHandler(notificationService)

	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Get("/swagger/*", httpSwagger.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Mount("/auth", userHandler.PublicRoutes())

		r.Group(func(r chi.Router) {
			r.Use(mw.AuthMiddleware(cfg.JWTSecret))

			r.Mount("/users", userHandler.Routes())
			r.Mount("/groups", groupHandler.Routes())
			r.Mount("/expenses", expenseHandler.Routes())
			r.Mount("/payments", paymentHandler.Routes())
			r.Mount("/balances", balanceHandler.Routes())
			r.Mount("/notifications", notificationHandler.Routes())
		})
	})

	log.WithField("port", cfg.Port).Info("Server starting")
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		log.WithError(err).Fatal("Server failed")
	}
}
