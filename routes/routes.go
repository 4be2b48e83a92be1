package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware" // Alias to avoid conflict
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/soccer-mvp/soccer-api/handlers"
	"github.com/soccer-mvp/soccer-api/middleware"
	"github.com/soccer-mvp/soccer-api/services"
)

type Handlers struct {
	Auth      *handlers.AuthHandler
	Users     *handlers.UserHandler
	Teams     *handlers.TeamHandler
	WebSocket *handlers.WebSocketHandler
}

func InitRoutes(h Handlers, tokens *services.TokenService, allowedOrigins []string) *chi.Mux {
	router := chi.NewRouter()

	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	router.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("Football API is running"))
	})

	router.Get("/swagger/*", httpSwagger.WrapHandler)

	router.Route("/auth", func(r chi.Router) {
		r.Post("/login", h.Auth.Login)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Authenticate(tokens))
			r.Get("/protected", h.Auth.Protected)
		})
	})

	router.Route("/users", func(r chi.Router) {
		r.Get("/", h.Users.ListUsers)
		r.Post("/", h.Users.CreateUser)
		r.Get("/{userID}", h.Users.GetUser)
		r.Put("/{userID}", h.Users.UpdateUser)
	})

	router.Route("/teams", func(r chi.Router) {
		r.Get("/", h.Teams.ListTeams)
		r.Post("/", h.Teams.CreateTeam)
		r.Get("/{teamID}", h.Teams.GetTeam)
		r.Put("/{teamID}", h.Teams.UpdateTeam)
		r.Delete("/{teamID}", h.Teams.DeleteTeam)
		r.Post("/{teamID}/players", h.Teams.AddPlayer)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Authenticate(tokens))
			r.Put("/{teamID}/images/{kind}", h.Teams.UploadImage)
		})
	})

	router.Get("/ws", h.WebSocket.Serve)

	return router
}
