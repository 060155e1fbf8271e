package http

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"rentalpro-backend/internal/security"
)

type Handlers struct {
	Customers *CustomerHandler
	Items     *ItemHandler
	Rentals   *RentalHandler
	Settings  *SettingsHandler
	Auth      *AuthHandler
}

// NewRouter wires the REST surface under /api and wraps it with CORS
// for the web frontend. The shop-floor endpoints the frontend already
// uses stay open; user administration requires an admin token.
func NewRouter(h Handlers, tokens security.TokenManager, allowedOrigins []string) http.Handler {
	r := mux.NewRouter()
	api := r.PathPrefix("/api").Subrouter()

	api.HandleFunc("/customers", h.Customers.List).Methods(http.MethodGet)
	api.HandleFunc("/customers", h.Customers.Create).Methods(http.MethodPost)
	api.HandleFunc("/customers/{id}", h.Customers.Update).Methods(http.MethodPut)
	api.HandleFunc("/customers/{id}", h.Customers.Delete).Methods(http.MethodDelete)

	api.HandleFunc("/items", h.Items.List).Methods(http.MethodGet)
	api.HandleFunc("/items", h.Items.Create).Methods(http.MethodPost)
	api.HandleFunc("/items/{id}", h.Items.Update).Methods(http.MethodPut)
	api.HandleFunc("/items/{id}", h.Items.Delete).Methods(http.MethodDelete)

	api.HandleFunc("/rentals", h.Rentals.List).Methods(http.MethodGet)
	api.HandleFunc("/rentals", h.Rentals.Create).Methods(http.MethodPost)
	api.HandleFunc("/rentals/{id}", h.Rentals.Get).Methods(http.MethodGet)
	api.HandleFunc("/rentals/{id}", h.Rentals.Update).Methods(http.MethodPut)
	api.HandleFunc("/rentals/{id}", h.Rentals.Delete).Methods(http.MethodDelete)

	api.HandleFunc("/settings", h.Settings.Get).Methods(http.MethodGet)
	api.HandleFunc("/settings", h.Settings.Update).Methods(http.MethodPut)

	api.HandleFunc("/auth/login", h.Auth.Login).Methods(http.MethodPost)

	admin := api.PathPrefix("/users").Subrouter()
	admin.Use(RequireAuth(tokens, "Admin"))
	admin.HandleFunc("", h.Auth.ListUsers).Methods(http.MethodGet)
	admin.HandleFunc("", h.Auth.CreateUser).Methods(http.MethodPost)

	c := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})
	return c.Handler(r)
}
