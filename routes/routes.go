package routes

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rookieryder/golf-backend/handlers"
	"github.com/rookieryder/golf-backend/metrics"
	"github.com/rookieryder/golf-backend/middleware"
	"github.com/rookieryder/golf-backend/models"
)

type Handlers struct {
	Auth        *handlers.AuthHandler
	User        *handlers.UserHandler
	Club        *handlers.ClubHandler
	Course      *handlers.CourseHandler
	Weather     *handlers.WeatherHandler
	Round       *handlers.RoundHandler
	HoleScore   *handlers.HoleScoreHandler
	Leaderboard *handlers.LeaderboardHandler
	Friendship  *handlers.FriendshipHandler
	Achievement *handlers.AchievementHandler
	Catalog     *handlers.CatalogHandler
	SharedRound *handlers.SharedRoundHandler
	Admin       *handlers.AdminUserHandler
	Dashboard   *handlers.DashboardHandler
}

type Options struct {
	JWTSecret      string
	AllowedOrigins []string
	PublicLimiter  *middleware.RateLimiter
	Logger         *slog.Logger
	// Ready reports whether dependencies (database) are reachable for /healthz.
	Ready func(r *http.Request) error
}

func SetupRoutes(router chi.Router, h Handlers, opts Options) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	if opts.Logger != nil {
		router.Use(middleware.AccessLog(opts.Logger))
	}
	router.Use(chiMiddleware.Recoverer)
	router.Use(metrics.InstrumentHandler)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if opts.Ready != nil {
			if err := opts.Ready(r); err != nil {
				http.Error(w, "unavailable", http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	router.Handle("/metrics", metrics.Handler())

	authenticate := middleware.Authenticate(opts.JWTSecret)
	adminOnly := middleware.RequireRole(models.RoleAdmin)

	// Публичные маршруты для расшаренных раундов
	router.Group(func(r chi.Router) {
		if opts.PublicLimiter != nil {
			r.Use(opts.PublicLimiter.Handler)
		}
		r.Get("/api/v1/shared-rounds/{token}", h.SharedRound.Get)
		r.Get("/ws/shared-rounds/{token}", h.SharedRound.ServeWs)
	})

	router.Route("/api/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			if opts.PublicLimiter != nil {
				r.Use(opts.PublicLimiter.Handler)
			}
			r.Post("/auth/register", h.Auth.Register)
			r.Post("/auth/login", h.Auth.Login)
		})

		r.Group(func(r chi.Router) {
			r.Use(authenticate)

			r.Route("/users", func(r chi.Router) {
				r.Get("/me", h.User.GetMe)
				r.Get("/me/stats", h.User.Stats)
				r.Get("/search", h.User.Search)
				r.Put("/{id}", h.User.UpdateProfile)
				r.Post("/{id}/avatar", h.User.UploadAvatar)
			})

			r.Route("/clubs", func(r chi.Router) {
				r.Get("/", h.Club.List)
				r.Post("/", h.Club.Create)
				r.Get("/{id}", h.Club.Get)
				r.Put("/{id}", h.Club.Update)
				r.Delete("/{id}", h.Club.Delete)
			})

			r.Route("/courses", func(r chi.Router) {
				r.Get("/", h.Course.List)
				r.Get("/search-with-weather", h.Course.SearchWithWeather)
				r.Get("/{id}", h.Course.Get)
			})

			r.Get("/weather", h.Weather.Get)
			r.Get("/leaderboard", h.Leaderboard.Get)

			r.Route("/rounds", func(r chi.Router) {
				r.Get("/", h.Round.List)
				r.Post("/", h.Round.Create)
				r.Get("/leaderboard", h.Round.Leaderboard)
				r.Get("/suggest-club", h.Round.SuggestClub)
				r.Get("/{id}", h.Round.Get)
				r.Put("/{id}", h.Round.Update)
				r.Delete("/{id}", h.Round.Delete)
				r.Post("/{id}/total-score", h.Round.ComputeTotalScore)
				r.Post("/{id}/share", h.Round.Share)
				r.Post("/{id}/hole-scores", h.Round.CreateHoleScore)
			})

			r.Route("/hole-scores", func(r chi.Router) {
				r.Get("/", h.HoleScore.List)
				r.Post("/", h.HoleScore.Create)
				r.Get("/{id}", h.HoleScore.Get)
				r.Put("/{id}", h.HoleScore.Update)
				r.Delete("/{id}", h.HoleScore.Delete)
			})

			r.Route("/friendships", func(r chi.Router) {
				r.Get("/", h.Friendship.List)
				r.Post("/", h.Friendship.Create)
				r.Delete("/remove", h.Friendship.Remove)
			})

			r.Route("/achievements", func(r chi.Router) {
				r.Get("/", h.Achievement.List)
				r.Get("/{id}", h.Achievement.Get)
				r.Group(func(r chi.Router) {
					r.Use(adminOnly)
					r.Post("/", h.Achievement.Create)
					r.Put("/{id}", h.Achievement.Update)
					r.Delete("/{id}", h.Achievement.Delete)
				})
			})

			r.Route("/user-achievements", func(r chi.Router) {
				r.Get("/", h.Achievement.ListMine)
				r.Post("/evaluate", h.Achievement.Evaluate)
				r.Get("/{id}", h.Achievement.GetMine)
				r.With(adminOnly).Post("/", h.Achievement.Grant)
			})

			r.With(adminOnly).Get("/admin/dashboard", h.Dashboard.Stats)
			r.Route("/admin/users", func(r chi.Router) {
				r.Use(adminOnly)
				r.Get("/", h.Admin.ListUsers)
				r.Patch("/{id}/role", h.Admin.UpdateRole)
				r.Delete("/{id}", h.Admin.DeleteUser)
			})

			r.Route("/driving-ranges", func(r chi.Router) {
				r.Get("/", h.Catalog.ListDrivingRanges)
				r.Get("/{id}", h.Catalog.GetDrivingRange)
				r.Group(func(r chi.Router) {
					r.Use(adminOnly)
					r.Post("/", h.Catalog.CreateDrivingRange)
					r.Put("/{id}", h.Catalog.UpdateDrivingRange)
					r.Delete("/{id}", h.Catalog.DeleteDrivingRange)
				})
			})

			r.Route("/practice-tips", func(r chi.Router) {
				r.Get("/", h.Catalog.ListPracticeTips)
				r.Get("/{id}", h.Catalog.GetPracticeTip)
				r.Group(func(r chi.Router) {
					r.Use(adminOnly)
					r.Post("/", h.Catalog.CreatePracticeTip)
					r.Put("/{id}", h.Catalog.UpdatePracticeTip)
					r.Delete("/{id}", h.Catalog.DeletePracticeTip)
				})
			})
		})
	})
}
