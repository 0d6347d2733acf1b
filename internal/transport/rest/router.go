package rest

import "net/http"

// NewRouter wires all REST handlers onto a ServeMux using method-scoped
// Go 1.22 route patterns. Trailing-slash collection routes use {$} so
// "/activities/" does not swallow "/activities/{id}".
func NewRouter(users *UserHandler, activities *ActivityHandler, tags *TagHandler, health *HealthHandler) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /users/{$}", users.Register)
	mux.HandleFunc("POST /users/login", users.Login)
	mux.HandleFunc("GET /users/me", users.Me)
	mux.HandleFunc("GET /users/me/telegram-status", users.TelegramStatus)
	mux.HandleFunc("POST /users/me/telegram", users.LinkTelegram)
	mux.HandleFunc("DELETE /users/me/telegram", users.UnlinkTelegram)

	mux.HandleFunc("POST /activities/{$}", activities.Create)
	mux.HandleFunc("GET /activities/{$}", activities.List)
	mux.HandleFunc("GET /activities/{id}", activities.Get)
	mux.HandleFunc("PUT /activities/{id}", activities.Update)
	mux.HandleFunc("DELETE /activities/{id}", activities.Delete)
	mux.HandleFunc("POST /activities/{id}/timer", activities.Timer)

	mux.HandleFunc("POST /tags/{$}", tags.Create)
	mux.HandleFunc("GET /tags/{$}", tags.List)

	mux.HandleFunc("GET /live", health.Live)
	mux.HandleFunc("GET /ready", health.Ready)
	mux.HandleFunc("GET /health", health.Health)

	return mux
}
