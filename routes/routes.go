package routes

import (
	"net/http"

	"github.com/Dosada05/tournament-dashboard/handlers"
	"github.com/Dosada05/tournament-dashboard/middleware"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/Dosada05/tournament-dashboard/docs"
)

func SetupRoutes(
	router chi.Router,
	jwtSecret []byte,
	allowedOrigins []string,
	authHandler *handlers.AuthHandler,
	dashboardHandler *handlers.DashboardHandler,
	editHandler *handlers.EditHandler,
	teamHandler *handlers.TeamHandler,
	playerHandler *handlers.PlayerHandler,
	bracketHandler *handlers.BracketHandler,
	webSocketHandler *handlers.WebSocketHandler,
) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	authenticate := middleware.Authenticate(jwtSecret)

	router.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))
	router.Get("/ws/dashboard", webSocketHandler.ServeWs)
	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	router.Route("/api", func(r chi.Router) {
		r.Get("/dashboard", dashboardHandler.GetDashboard)

		r.Route("/session", func(r chi.Router) {
			r.Post("/login", authHandler.Login)

			r.Group(func(r chi.Router) {
				r.Use(authenticate)
				r.Get("/", authHandler.Status)
				r.Post("/edit-mode", authHandler.EnableEditMode)
				r.Delete("/edit-mode", authHandler.DisableEditMode)
				r.Post("/logout", authHandler.Logout)
			})
		})

		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			r.Post("/edits", editHandler.ApplyEdit)
			r.Post("/save", editHandler.Save)
			r.Post("/discard", editHandler.Discard)
		})

		r.Route("/teams", func(r chi.Router) {
			r.Get("/", dashboardHandler.ListTeams)
			r.Get("/{teamID}", dashboardHandler.GetTeam)

			r.Group(func(r chi.Router) {
				r.Use(authenticate)
				r.Post("/", teamHandler.CreateTeam)
				r.Put("/{teamID}", teamHandler.ReplaceTeam)
				r.Delete("/{teamID}", teamHandler.DeleteTeam)
				r.Post("/{teamID}/logo", teamHandler.UploadTeamLogo)
			})
		})

		r.Route("/players", func(r chi.Router) {
			r.Get("/", dashboardHandler.ListPlayers)
			r.Get("/{playerID}", dashboardHandler.GetPlayer)

			r.Group(func(r chi.Router) {
				r.Use(authenticate)
				r.Post("/", playerHandler.CreatePlayer)
				r.Put("/{playerID}", playerHandler.ReplacePlayer)
				r.Delete("/{playerID}", playerHandler.DeletePlayer)
				r.Post("/{playerID}/avatar", playerHandler.UploadPlayerAvatar)
			})
		})

		r.Route("/brackets", func(r chi.Router) {
			r.Get("/", dashboardHandler.ListBrackets)
			r.Get("/{bracketID}", dashboardHandler.GetBracket)

			r.Group(func(r chi.Router) {
				r.Use(authenticate)
				r.Post("/", bracketHandler.CreateBracket)
				r.Post("/generate", bracketHandler.GenerateBracket)
				r.Put("/{bracketID}", bracketHandler.ReplaceBracket)
				r.Delete("/{bracketID}", bracketHandler.DeleteBracket)
			})
		})
	})
}
