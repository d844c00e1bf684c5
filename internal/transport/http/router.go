package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/suittrip/backend/internal/application/auth"
	checkinapp "github.com/suittrip/backend/internal/application/checkin"
	notifapp "github.com/suittrip/backend/internal/application/notification"
	reservationapp "github.com/suittrip/backend/internal/application/reservation"
	reviewapp "github.com/suittrip/backend/internal/application/review"
	statsapp "github.com/suittrip/backend/internal/application/statistics"
	"github.com/suittrip/backend/internal/application/storageunit"
	storeapp "github.com/suittrip/backend/internal/application/store"
	"github.com/suittrip/backend/internal/application/verification"
	"github.com/suittrip/backend/internal/config"
	"github.com/suittrip/backend/internal/infrastructure/dynamo"
	jwtinfra "github.com/suittrip/backend/internal/infrastructure/jwt"
	s3infra "github.com/suittrip/backend/internal/infrastructure/s3"
	"github.com/suittrip/backend/internal/infrastructure/smtp"
	"github.com/suittrip/backend/internal/infrastructure/sns"
	"github.com/suittrip/backend/internal/ratelimit"
	"github.com/suittrip/backend/internal/transport/http/handler"
	appmiddleware "github.com/suittrip/backend/internal/transport/http/middleware"
	"golang.org/x/time/rate"
)

// Deps holds all infrastructure dependencies for the router.
type Deps struct {
	StoreRepo        *dynamo.StoreRepo
	SessionRepo      *dynamo.SessionRepo
	VerificationRepo *dynamo.VerificationRepo
	StorageRepo      *dynamo.StorageRepo
	ReservationRepo  *dynamo.ReservationRepo
	ReviewRepo       *dynamo.ReviewRepo
	NotificationRepo *dynamo.NotificationRepo
	CheckinRepo      *dynamo.CheckinRepo
	S3Store          *s3infra.Store
	Mailer           smtp.Mailer
	SMSSender        sns.SMSSender
	JWTProvider      *jwtinfra.Provider
}

// NewRouter builds and returns the application router.
func NewRouter(cfg *config.Config, deps *Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	var authMw func(http.Handler) http.Handler
	if deps.JWTProvider != nil {
		authMw = appmiddleware.Auth(deps.JWTProvider)
	} else {
		authMw = func(next http.Handler) http.Handler { return next }
	}

	// 5 requests/second, burst of 10 on the remaining sensitive public endpoints.
	sensitiveRL := appmiddleware.NewRateLimiter(rate.Limit(5), 10)

	// Fixed window keyed by requested email, so one client cannot drain the
	// mail quota of the whole instance.
	emailRL := appmiddleware.NewEmailLimiter(
		ratelimit.NewWindowStore(cfg.VerifyRateWindow),
		cfg.VerifyRateWindow,
		cfg.VerifyRateMax,
	)

	verificationSvc := verification.NewService(verification.ServiceDeps{
		Repo:        deps.VerificationRepo,
		CodeTTL:     cfg.CodeTTL,
		MaxAttempts: cfg.MaxCodeAttempts,
	})
	authSvc := auth.NewService(auth.ServiceDeps{
		StoreRepo:       deps.StoreRepo,
		SessionRepo:     deps.SessionRepo,
		Verification:    verificationSvc,
		Mailer:          deps.Mailer,
		JWTProvider:     deps.JWTProvider,
		CodeLength:      cfg.CodeLength,
		RefreshTokenDur: cfg.RefreshTokenTTL,
	})
	storeSvc := storeapp.NewService(storeapp.ServiceDeps{
		StoreRepo: deps.StoreRepo,
	})
	storageSvc := storageunit.NewService(storageunit.ServiceDeps{
		StorageRepo:     deps.StorageRepo,
		ReservationRepo: deps.ReservationRepo,
	})
	notifSvc := notifapp.NewService(notifapp.ServiceDeps{
		NotificationRepo: deps.NotificationRepo,
	})
	reservationSvc := reservationapp.NewService(reservationapp.ServiceDeps{
		ReservationRepo: deps.ReservationRepo,
		StorageRepo:     deps.StorageRepo,
		Notifier:        notifSvc,
		SMSSender:       deps.SMSSender,
		PhotoStore:      deps.S3Store,
	})
	checkinSvc := checkinapp.NewService(checkinapp.ServiceDeps{
		CheckinRepo:     deps.CheckinRepo,
		ReservationRepo: deps.ReservationRepo,
		StorageRepo:     deps.StorageRepo,
		PhotoStore:      deps.S3Store,
	})
	reviewSvc := reviewapp.NewService(reviewapp.ServiceDeps{
		ReviewRepo: deps.ReviewRepo,
	})
	statsSvc := statsapp.NewService(statsapp.ServiceDeps{
		ReservationRepo: deps.ReservationRepo,
		StorageRepo:     deps.StorageRepo,
	})

	healthH := handler.NewHealthHandler()
	authH := handler.NewAuthHandler(authSvc, cfg.CodeTTL)
	storeH := handler.NewStoreHandler(storeSvc)
	storageH := handler.NewStorageHandler(storageSvc)
	reservationH := handler.NewReservationHandler(reservationSvc)
	checkinH := handler.NewCheckinHandler(checkinSvc)
	reviewH := handler.NewReviewHandler(reviewSvc)
	notifH := handler.NewNotificationHandler(notifSvc)
	statsH := handler.NewStatisticsHandler(statsSvc)

	// ── Public routes (no auth) ──────────────────────────────────────────
	r.Get("/health", healthH.Ping)

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.With(emailRL.Limit).Post("/email/send-verification", authH.SendVerification)
			r.Post("/email/verify-code", authH.VerifyCode)
			r.With(sensitiveRL.Limit).Post("/register", authH.Register)
			r.With(sensitiveRL.Limit).Post("/login", authH.Login)
			r.Post("/refresh", authH.Refresh)
			r.With(authMw).Post("/logout", authH.Logout)
		})

		// ── Authenticated routes ─────────────────────────────────────────────
		r.Group(func(r chi.Router) {
			r.Use(authMw)

			r.Route("/stores", func(r chi.Router) {
				r.Get("/", storeH.Profile)
				r.Put("/", storeH.UpdateProfile)
				r.Get("/status", storeH.Status)
				r.Put("/status", storeH.UpdateStatus)
				r.Put("/settings", storeH.UpdateSettings)
				r.Delete("/", storeH.Deactivate)
			})

			r.Route("/storages", func(r chi.Router) {
				r.Post("/", storageH.Create)
				r.Get("/", storageH.List)
				r.Get("/{id}", storageH.Get)
				r.Put("/{id}", storageH.Update)
				r.Delete("/{id}", storageH.Delete)
			})

			r.Route("/reservations", func(r chi.Router) {
				r.Post("/", reservationH.Create)
				r.Get("/", reservationH.List)
				r.Get("/{id}", reservationH.Get)
				r.Put("/{id}/status", reservationH.UpdateStatus)
				r.Put("/{id}/approve", reservationH.Approve)
				r.Put("/{id}/reject", reservationH.Reject)
				r.Put("/{id}/cancel", reservationH.Cancel)
				r.Post("/{id}/photos", reservationH.AttachPhotos)
			})

			r.Route("/checkins", func(r chi.Router) {
				r.Post("/", checkinH.Create)
				r.Get("/", checkinH.List)
				r.Get("/{id}", checkinH.Get)
				r.Put("/{id}/checkout", checkinH.Checkout)
			})

			r.Route("/reviews", func(r chi.Router) {
				r.Get("/", reviewH.List)
				r.Get("/summary", reviewH.Summary)
				r.Get("/{id}", reviewH.Get)
				r.Post("/{id}/response", reviewH.Respond)
				r.Put("/{id}/response", reviewH.UpdateResponse)
				r.Delete("/{id}/response", reviewH.DeleteResponse)
			})

			r.Route("/notifications", func(r chi.Router) {
				r.Get("/", notifH.List)
				r.Get("/unread-count", notifH.UnreadCount)
				r.Put("/read-all", notifH.MarkAllRead)
				r.Get("/{id}", notifH.Get)
				r.Put("/{id}/read", notifH.MarkRead)
				r.Delete("/{id}", notifH.Delete)
			})

			r.Route("/statistics", func(r chi.Router) {
				r.Get("/daily", statsH.Daily)
				r.Get("/monthly", statsH.Monthly)
				r.Get("/revenue", statsH.Revenue)
			})
		})
	})

	return r
}
