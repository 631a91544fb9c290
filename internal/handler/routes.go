package handler

import (
	"net/http"

	"github.com/msomdec/taskboard/internal/service"
)

// Routes bundles the dependencies RegisterRoutes wires into the mux.
// Limiter and Metrics are optional.
type Routes struct {
	Users   *service.UserService
	Tasks   *service.TaskService
	Tokens  TokenValidator
	Limiter RateLimiter
	Metrics *Metrics
}

// RegisterRoutes sets up all HTTP routes on the given mux.
func RegisterRoutes(mux *http.ServeMux, rt Routes) {
	users := NewUserHandler(rt.Users)
	tasks := NewTaskHandler(rt.Tasks)

	throttle := func(h http.HandlerFunc) http.Handler {
		if rt.Limiter == nil {
			return h
		}
		return RateLimit(rt.Limiter, h)
	}
	auth := func(h http.HandlerFunc) http.Handler {
		return RequireAuth(rt.Tokens, h)
	}

	mux.HandleFunc("GET /healthz", HandleHealthz)
	mux.HandleFunc("GET /{$}", HandleHome)
	if rt.Metrics != nil {
		mux.Handle("GET /metrics", rt.Metrics.Handler())
	}

	mux.Handle("POST /api/users/login", throttle(users.HandleLogin))
	mux.Handle("POST /api/users", throttle(users.HandleRegister))
	mux.Handle("GET /api/users/me", auth(users.HandleMe))

	mux.Handle("GET /api/tasks", auth(tasks.HandleList))
	mux.Handle("POST /api/tasks", auth(tasks.HandleCreate))
	mux.Handle("GET /api/tasks/{id}", auth(tasks.HandleGet))
	mux.Handle("PUT /api/tasks/{id}", auth(tasks.HandleUpdate))
	mux.Handle("DELETE /api/tasks/{id}", auth(tasks.HandleDelete))
}
