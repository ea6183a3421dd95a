package main

import (
	"net/http"
	"net/http/pprof"

	"github.com/julienschmidt/httprouter"
)

// profiles lists the runtime profiles served by name.
var profiles = []string{"heap", "allocs", "goroutine", "block", "mutex", "threadcreate"}

// SetupOpsRoutes injects internal operations related endpoints. They all require the api key.
func (api *APIHandler) SetupOpsRoutes(router *httprouter.Router, m *MiddlewareMap) *httprouter.Router {
	router.GET("/ops/configs", m.admin(api.GetConfigs))
	router.GET("/ops/stats", m.admin(api.GetStatistics))
	router.GET("/ops/debug/vars", m.admin(GetMemStats))

	if !api.config.ProfilerEndpointsEnable {
		return router
	}
	router.GET(profilerPathPrefix, m.admin(api.OpsHandlerWrapper(http.HandlerFunc(pprof.Index))))
	router.GET("/ops/debug/pprof/profile", m.admin(api.OpsHandlerWrapper(http.HandlerFunc(pprof.Profile))))
	router.GET("/ops/debug/pprof/trace", m.admin(api.OpsHandlerWrapper(http.HandlerFunc(pprof.Trace))))
	router.GET("/ops/debug/pprof/symbol", m.admin(api.OpsHandlerWrapper(http.HandlerFunc(pprof.Symbol))))
	router.GET("/ops/debug/pprof/cmdline", m.admin(api.OpsHandlerWrapper(http.HandlerFunc(pprof.Cmdline))))
	for _, name := range profiles {
		router.GET(profilerPathPrefix+name, m.admin(api.OpsHandlerWrapper(pprof.Handler(name))))
	}
	return router
}

// OpsHandlerWrapper adapts a standard http.Handler to the router handle signature.
func (api *APIHandler) OpsHandlerWrapper(h http.Handler) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		h.ServeHTTP(w, r)
	}
}
