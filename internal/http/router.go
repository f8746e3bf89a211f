package http

import (
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"jobboard/internal/http/handlers"
	"jobboard/internal/http/metrics"
	httpmw "jobboard/internal/http/middleware"
)

type RouterDependencies struct {
	JobHandler         *handlers.JobHandler
	ApplicationHandler *handlers.ApplicationHandler
	ResumeHandler      *handlers.ResumeHandler
	MetricsHandler     *handlers.MetricsHandler
	Metrics            *metrics.Collector
	Logger             *zap.Logger
	RequestTimeout     time.Duration
	MaxBodyBytes       int64
}

type Router struct {
	deps RouterDependencies
}

func NewRouter(deps RouterDependencies) http.Handler {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.MaxBodyBytes <= 0 {
		deps.MaxBodyBytes = 6 << 20
	}
	return &Router{deps: deps}
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	handler := httpmw.Chain(r.baseHandler(),
		httpmw.RequestID,
		httpmw.Logging(r.deps.Logger),
		httpmw.CORS,
		httpmw.BodyLimit(r.deps.MaxBodyBytes),
		httpmw.Recover(r.deps.Logger),
		httpmw.Metrics(r.deps.Metrics),
		httpmw.Timeout(r.deps.RequestTimeout),
	)
	handler.ServeHTTP(w, req)
}

func (r *Router) baseHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		path := req.URL.Path

		switch {
		case req.Method == http.MethodGet && path == "/health":
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ok"))
			return
		case req.Method == http.MethodGet && path == "/metrics":
			r.deps.MetricsHandler.Get(w, req)
			return
		case req.Method == http.MethodGet && path == "/jobs":
			r.deps.JobHandler.List(w, req)
			return
		case req.Method == http.MethodPost && path == "/jobs":
			r.deps.JobHandler.Create(w, req)
			return
		case req.Method == http.MethodPost && strings.HasPrefix(path, "/jobs/") && strings.HasSuffix(path, "/apply"):
			r.deps.ApplicationHandler.Apply(w, req)
			return
		case req.Method == http.MethodGet && strings.HasPrefix(path, "/jobs/"):
			r.deps.JobHandler.Get(w, req)
			return
		case req.Method == http.MethodPut && strings.HasPrefix(path, "/jobs/"):
			r.deps.JobHandler.Update(w, req)
			return
		case req.Method == http.MethodDelete && strings.HasPrefix(path, "/jobs/"):
			r.deps.JobHandler.Delete(w, req)
			return
		case req.Method == http.MethodGet && path == "/applications":
			r.deps.ApplicationHandler.List(w, req)
			return
		case req.Method == http.MethodGet && strings.HasPrefix(path, "/resumes/"):
			r.deps.ResumeHandler.Download(w, req)
			return
		case req.Method == http.MethodPost && path == "/upload":
			r.deps.ResumeHandler.Upload(w, req)
			return
		}

		http.NotFound(w, req)
	})
}
