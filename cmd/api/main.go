package main

import (
	"context"
	"net/http"
	"time"

	"github.com/georgemunganga/usedbooks-backend/internal/config"
	"github.com/georgemunganga/usedbooks-backend/internal/modules/auth"
	"github.com/georgemunganga/usedbooks-backend/internal/modules/book"
	"github.com/georgemunganga/usedbooks-backend/internal/modules/customer"
	"github.com/georgemunganga/usedbooks-backend/internal/modules/employee"
	"github.com/georgemunganga/usedbooks-backend/internal/modules/order"
	"github.com/georgemunganga/usedbooks-backend/internal/platform/database"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("invalid configuration")
	}
	logger := config.NewLogger(cfg.LogLevel)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	db, q, err := database.Open(ctx, cfg.DB)
	cancel()
	if err != nil {
		logger.WithField("driver", cfg.DB.Driver).Fatal(err.Error())
	}
	defer db.Close()

	for _, names := range [][]string{book.Queries, customer.Queries, employee.Queries, order.Queries} {
		if err := q.Require(names...); err != nil {
			logger.WithError(err).Fatal("query table incomplete")
		}
	}
	logger.WithField("driver", cfg.DB.Driver).Info("successfully connected to the database")

	// ── Services ────────────────────────────────────────────
	employeeRepo := employee.NewSQLRepository(db, q)
	employeeService := employee.NewService(employeeRepo, logger.WithField("module", "employee"))
	authService := auth.NewService(employeeRepo, cfg.JWTSecret, cfg.TokenTTL, logger.WithField("module", "auth"))

	bookService := book.NewService(book.NewSQLRepository(db, q), logger.WithField("module", "book"))
	customerService := customer.NewService(customer.NewSQLRepository(db, q), logger.WithField("module", "customer"))
	orderService := order.NewService(order.NewSQLRepository(db, q), logger.WithField("module", "order"))

	if cfg.Bootstrap.Enabled() {
		e, err := employeeService.Bootstrap(context.Background(), employee.HireRequest{
			FirstName: cfg.Bootstrap.FirstName,
			LastName:  cfg.Bootstrap.LastName,
			Phone:     cfg.Bootstrap.Phone,
			Passcode:  cfg.Bootstrap.Passcode,
		})
		if err != nil {
			logger.WithError(err).Fatal("bootstrap manager")
		}
		if e != nil {
			logger.WithField("employee_id", e.ID).Info("bootstrap manager ready to sign in")
		}
	}

	// ── Router ──────────────────────────────────────────────
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RequestLogger(&middleware.DefaultLogFormatter{Logger: logger, NoColor: true}))
	router.Use(middleware.Recoverer)

	manager := auth.RequireAccess(employee.AccessManager)

	router.Route("/api/v1", func(r chi.Router) {
		auth.NewHandler(authService).RegisterRoutes(r)

		r.Group(func(r chi.Router) {
			r.Use(auth.Middleware(authService))
			book.NewHandler(bookService).RegisterRoutes(r)
			customer.NewHandler(customerService, manager).RegisterRoutes(r)
			employee.NewHandler(employeeService, manager).RegisterRoutes(r)
			order.NewHandler(orderService, bookService).RegisterRoutes(r)
		})
	})

	// ── Start Server ─────────────────────────────────────────
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	logger.WithField("port", cfg.Port).Info("used bookstore API server starting")
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.WithError(err).Fatal("server stopped")
	}
}
