package rest

import (
	"net/http"

	"github.com/heartmarshall/nova-backend/internal/transport/middleware"
)

// Routes collects the handlers and per-route middleware the router mounts.
type Routes struct {
	Health     *HealthHandler
	Prediction *PredictionHandler
	Chat       *ChatHandler
	Diet       *DietHandler
	Doctor     *DoctorHandler

	// Auth guards every user-scoped route.
	Auth middleware.Middleware
	// Limit throttles routes that call the generator, and the public
	// doctor submission. Nil disables throttling.
	Limit middleware.Middleware

	// Metrics is mounted at MetricsPath when non-nil.
	Metrics     http.Handler
	MetricsPath string
}

// NewRouter registers every endpoint on a ServeMux. Global middleware is
// applied by the caller around the returned handler.
func NewRouter(rt Routes) *http.ServeMux {
	mux := http.NewServeMux()

	authed := func(h http.HandlerFunc) http.Handler {
		return rt.Auth(h)
	}
	generating := func(h http.HandlerFunc) http.Handler {
		return middleware.Chain(rt.Auth, rt.Limit)(h)
	}

	mux.HandleFunc("GET /{$}", rt.Health.Root)
	mux.HandleFunc("GET /live", rt.Health.Live)
	mux.HandleFunc("GET /ready", rt.Health.Ready)
	mux.HandleFunc("GET /health", rt.Health.Health)
	if rt.Metrics != nil {
		path := rt.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		mux.Handle("GET "+path, rt.Metrics)
	}

	mux.Handle("POST /predict_maternal", authed(rt.Prediction.Maternal))
	mux.Handle("POST /predict_fetal", authed(rt.Prediction.Fetal))

	mux.Handle("GET /chat", authed(rt.Chat.History))
	mux.Handle("POST /chat", generating(rt.Chat.Send))
	mux.Handle("GET /chat/sessions", authed(rt.Chat.ListSessions))
	mux.Handle("POST /chat/sessions", authed(rt.Chat.CreateSession))
	mux.Handle("GET /chat/sessions/{id}", authed(rt.Chat.GetSession))
	mux.Handle("DELETE /chat/sessions/{id}", authed(rt.Chat.DeleteSession))
	mux.Handle("POST /chat/sessions/{id}/message", generating(rt.Chat.SendMessage))

	mux.Handle("POST /diet_plan", generating(rt.Diet.Plan))
	mux.Handle("GET /diet/sessions", authed(rt.Diet.ListSessions))
	mux.Handle("POST /diet/sessions", generating(rt.Diet.CreateSession))
	mux.Handle("GET /diet/sessions/{id}", authed(rt.Diet.GetSession))
	mux.Handle("DELETE /diet/sessions/{id}", authed(rt.Diet.DeleteSession))

	mux.Handle("POST /create_doctor_profile", middleware.Chain(rt.Limit)(http.HandlerFunc(rt.Doctor.Create)))

	return mux
}
