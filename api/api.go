package api

import (
	"log/slog"
	"net/http"

	transport "feedfilter/internal/transport/http"
)

// Api собирает маршруты и цепочку middleware в один http.Handler.
type Api struct {
	routes  *transport.Api
	limiter *transport.RateLimiter
	log     *slog.Logger
}

func New(routes *transport.Api, limiter *transport.RateLimiter, log *slog.Logger) *Api {
	return &Api{
		routes:  routes,
		limiter: limiter,
		log:     log,
	}
}

// Handler возвращает роутер, обернутый middleware. Порядок: request id,
// логирование, CORS, ограничение частоты.
func (api *Api) Handler() http.Handler {
	var handler http.Handler = api.routes.Router()
	if api.limiter != nil {
		handler = api.limiter.Middleware(handler)
	}
	handler = transport.CORSMiddleware()(handler)
	handler = transport.LoggingMiddleware(api.log)(handler)
	handler = transport.RequestIDMiddleware(handler)
	return handler
}
