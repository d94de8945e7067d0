package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"feedfilter/internal/domain"
	"feedfilter/internal/models"
	"feedfilter/internal/serializer"

	httputils "github.com/Fau1con/renderresponse"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	requestTimeout = 30 * time.Second
	buildsWindow   = 24 * time.Hour
)

// FeedGetter отдает сериализованный отфильтрованный фид по имени.
type FeedGetter interface {
	GetFeed(ctx context.Context, name string) ([]byte, error)
}

// FeedLister перечисляет известные фиды.
type FeedLister interface {
	Names() []string
}

// BuildHistory - журнал пересборок, доступен только при настроенной БД.
type BuildHistory interface {
	RecentBuilds(ctx context.Context, feedName string, since time.Time) ([]models.BuildEvent, error)
}

type CacheSizer interface {
	Len() int
}

type Api struct {
	mux     *http.ServeMux
	feeds   FeedGetter
	catalog FeedLister
	cache   CacheSizer
	history BuildHistory
	log     *slog.Logger
}

func NewApi(feeds FeedGetter, catalog FeedLister, cache CacheSizer, history BuildHistory, log *slog.Logger) *Api {
	api := Api{
		mux:     http.NewServeMux(),
		feeds:   feeds,
		catalog: catalog,
		cache:   cache,
		history: history,
		log:     log,
	}
	api.endpoints()
	return &api
}

func (api *Api) Router() http.Handler {
	return api.mux
}

// Метод регистратор endpoint-ов.
func (api *Api) endpoints() {
	// отфильтрованный фид по имени
	api.mux.HandleFunc("/feed/{name}", api.GetFeedHandler)
	api.mux.HandleFunc("/healthz", api.HealthHandler)
	api.mux.Handle("/metrics", promhttp.Handler())
	if api.history != nil {
		api.mux.HandleFunc("/builds/{name}", api.GetBuildsHandler)
	}
}

func (api *Api) GetFeedHandler(w http.ResponseWriter, r *http.Request) {
	if !httputils.ValidateMethod(w, r, http.MethodGet, http.MethodOptions) {
		return
	}
	name := r.PathValue("name")

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	payload, err := api.feeds.GetFeed(ctx, name)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUnknownFeed):
			httputils.RenderError(w, "Unknown feed", http.StatusNotFound)
		case errors.Is(err, domain.ErrFetchFailed):
			api.log.Error("Failed to build feed",
				slog.String("feed", name),
				slog.String("request_id", GetRequestID(r.Context())),
				slog.Any("error", err),
			)
			httputils.RenderError(w, "Failed to fetch source feed", http.StatusBadGateway)
		default:
			api.log.Error("Failed to render feed",
				slog.String("feed", name),
				slog.Any("error", err),
			)
			httputils.RenderError(w, "Failed to render feed", http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", serializer.ContentType)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(payload); err != nil {
		api.log.Warn("Failed to write response", slog.Any("error", err))
	}
}

type healthResponse struct {
	Status string `json:"status"`
	Feeds  int    `json:"feeds"`
	Cached int    `json:"cached"`
}

func (api *Api) HealthHandler(w http.ResponseWriter, r *http.Request) {
	if !httputils.ValidateMethod(w, r, http.MethodGet, http.MethodOptions) {
		return
	}
	httputils.RenderJSON(w, healthResponse{
		Status: "ok",
		Feeds:  len(api.catalog.Names()),
		Cached: api.cache.Len(),
	}, http.StatusOK)
}

func (api *Api) GetBuildsHandler(w http.ResponseWriter, r *http.Request) {
	if !httputils.ValidateMethod(w, r, http.MethodGet, http.MethodOptions) {
		return
	}
	name := r.PathValue("name")
	if !api.known(name) {
		httputils.RenderError(w, "Unknown feed", http.StatusNotFound)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	builds, err := api.history.RecentBuilds(ctx, name, time.Now().Add(-buildsWindow))
	if err != nil {
		httputils.RenderError(w, "Failed to get feed builds from database", http.StatusInternalServerError)
		return
	}
	httputils.RenderJSON(w, builds, http.StatusOK)
}

func (api *Api) known(name string) bool {
	for _, n := range api.catalog.Names() {
		if n == name {
			return true
		}
	}
	return false
}
