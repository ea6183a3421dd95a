package main

import (
	"net/http"
	"strings"

	_ "github.com/jeamon/bookshelf/docs"
	"github.com/julienschmidt/httprouter"
	httpswagger "github.com/swaggo/http-swagger/v2"
)

// MiddlewareMap contains middlwares chain to use for
// public-facing requests and for api key protected ones.
type MiddlewareMap struct {
	public func(httprouter.Handle) httprouter.Handle
	admin  func(httprouter.Handle) httprouter.Handle
}

// SetupRoutes injects book, user and ops related endpoints if required.
func (api *APIHandler) SetupRoutes(router *httprouter.Router, m *MiddlewareMap) *httprouter.Router {
	router.RedirectTrailingSlash = true
	router.NotFound = api.NotFound()
	router.MethodNotAllowed = api.MethodNotAllowed()
	router.GET("/", m.public(api.Index))
	router.GET("/status", m.public(api.Status))
	router.GET("/health", m.public(api.Health))
	router.GET("/admin/secret", m.admin(api.AdminSecret))
	api.SetupBookRoutes(router, m)
	api.SetupUserRoutes(router, m)
	if api.config.OpsEndpointsEnable {
		api.SetupOpsRoutes(router, m)
	}
	router.GET("/swagger/*any", m.public(api.OpsHandlerWrapper(httpswagger.WrapHandler)))
	return router
}

// profilerPathPrefix marks routes streaming for a client chosen duration.
const profilerPathPrefix = "/ops/debug/pprof/"

// Handler builds the complete server handler: the router wrapped with the request
// timeout, the cors policy and the processing time stamping, from inner to outer.
// Profiler routes skip the request timeout since a profile runs for the duration
// asked by the caller (30s by default).
func (api *APIHandler) Handler(router http.Handler) http.Handler {
	withTimeout := http.TimeoutHandler(
		router,
		api.config.Server.RequestTimeout,
		"Timeout. Processing taking too long. Please reach out to support.")
	dispatch := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, profilerPathPrefix) {
			router.ServeHTTP(w, r)
			return
		}
		withTimeout.ServeHTTP(w, r)
	})
	return api.ProcessTimeHandler(api.CORSHandler(dispatch))
}
