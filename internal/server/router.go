package server

import (
	"net/http"
)

// Route binds a ServeMux pattern to a handler.
type Route struct {
	Pattern string
	Handler http.Handler
}

// Router collects routes with method checks and instrumentation applied.
type Router struct {
	metrics Metrics
	routes  []Route
}

// NewRouter creates an empty Router
func NewRouter(metrics Metrics) *Router {
	return &Router{metrics: metrics}
}

func (rt *Router) Get(pattern string, handler http.Handler) {
	rt.add(http.MethodGet, pattern, handler)
}

func (rt *Router) Post(pattern string, handler http.Handler) {
	rt.add(http.MethodPost, pattern, handler)
}

func (rt *Router) add(method, pattern string, handler http.Handler) {
	rt.routes = append(rt.routes, Route{
		Pattern: pattern,
		Handler: MetricsMiddleware(rt.metrics, pattern, methodHandler(method, handler)),
	})
}

// Routes returns the registered routes in order
func (rt *Router) Routes() []Route {
	return rt.routes
}

func methodHandler(method string, handler http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != method && !(method == http.MethodGet && r.Method == http.MethodHead) {
			w.Header().Set("Allow", method)
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
			return
		}
		handler.ServeHTTP(w, r)
	})
}

// InitRoutes registers the cloud and local dataset endpoints.
func InitRoutes(h *Handlers, metrics Metrics) *Router {
	router := NewRouter(metrics)

	router.Get("/data/index.json", http.HandlerFunc(h.CloudIndex))
	router.Get("/data/{file}", http.HandlerFunc(h.CloudDay))
	router.Post("/api/local", http.HandlerFunc(h.CreateLocal))
	router.Get("/api/local/{id}/index.json", http.HandlerFunc(h.LocalIndex))
	router.Get("/api/local/{id}/{file}", http.HandlerFunc(h.LocalDay))
	return router
}
