package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/jennilaluyan/connect-in-backend/internal/domain/identity"
	"github.com/jennilaluyan/connect-in-backend/internal/http/handlers"
	"github.com/jennilaluyan/connect-in-backend/internal/http/metrics"
	httpmw "github.com/jennilaluyan/connect-in-backend/internal/http/middleware"
)

type RouterDependencies struct {
	AuthHandler         *handlers.AuthHandler
	ProfileHandler      *handlers.ProfileHandler
	PostingHandler      *handlers.PostingHandler
	ApplicationHandler  *handlers.ApplicationHandler
	NotificationHandler *handlers.NotificationHandler
	AdminHandler        *handlers.AdminHandler
	AuthMiddleware      *httpmw.AuthMiddleware
	Metrics             *metrics.Collector
	Logger              zerolog.Logger
	RequestTimeout      time.Duration
}

// Multipart uploads carry the 5 MB CV cap plus form overhead.
const maxBodyBytes = 8 << 20

type Router struct {
	deps RouterDependencies
}

func NewRouter(deps RouterDependencies) http.Handler {
	return &Router{deps: deps}
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	handler := httpmw.Chain(r.baseHandler(),
		httpmw.RequestID,
		httpmw.Logging(r.deps.Logger),
		httpmw.BodyLimit(maxBodyBytes),
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
			r.deps.Metrics.Handler().ServeHTTP(w, req)
			return
		case req.Method == http.MethodPost && path == "/register":
			r.deps.AuthHandler.Register(w, req)
			return
		case req.Method == http.MethodPost && path == "/login":
			r.deps.AuthHandler.Login(w, req)
			return
		case req.Method == http.MethodGet && path == "/job-postings":
			r.deps.PostingHandler.List(w, req)
			return
		case req.Method == http.MethodGet && strings.HasPrefix(path, "/job-postings/"):
			r.deps.PostingHandler.Get(w, req)
			return
		}

		protected := r.deps.AuthMiddleware.Authenticate(http.HandlerFunc(r.handleProtected))
		protected.ServeHTTP(w, req)
	})
}

func (r *Router) handleProtected(w http.ResponseWriter, req *http.Request) {
	path := req.URL.Path

	if strings.HasPrefix(path, "/superadmin/") {
		httpmw.RequireRole(identity.RoleAdmin)(http.HandlerFunc(r.handleSuperadmin)).ServeHTTP(w, req)
		return
	}

	switch {
	case req.Method == http.MethodPost && path == "/logout":
		r.deps.AuthHandler.Logout(w, req)
		return
	case req.Method == http.MethodGet && path == "/user":
		r.deps.AuthHandler.Me(w, req)
		return
	case req.Method == http.MethodGet && path == "/user/my-applications":
		r.deps.ApplicationHandler.ListMine(w, req)
		return
	case req.Method == http.MethodGet && path == "/profile":
		r.deps.ProfileHandler.Get(w, req)
		return
	case req.Method == http.MethodPost && path == "/profile":
		r.deps.ProfileHandler.Update(w, req)
		return
	case req.Method == http.MethodGet && path == "/notifications":
		r.deps.NotificationHandler.List(w, req)
		return
	case req.Method == http.MethodPost && path == "/notifications/mark-all-as-read":
		r.deps.NotificationHandler.MarkAllRead(w, req)
		return
	case req.Method == http.MethodPost && strings.HasPrefix(path, "/job-postings/") && strings.HasSuffix(path, "/apply"):
		r.deps.ApplicationHandler.Apply(w, req)
		return
	case req.Method == http.MethodPost && path == "/hr/job-postings":
		r.deps.PostingHandler.Create(w, req)
		return
	case (req.Method == http.MethodPut || req.Method == http.MethodPost) && strings.HasPrefix(path, "/hr/job-postings/"):
		r.deps.PostingHandler.Update(w, req)
		return
	case req.Method == http.MethodDelete && strings.HasPrefix(path, "/hr/job-postings/"):
		r.deps.PostingHandler.Delete(w, req)
		return
	case req.Method == http.MethodGet && path == "/hr/my-job-postings":
		r.deps.PostingHandler.ListMine(w, req)
		return
	case req.Method == http.MethodGet && path == "/hr/applicants":
		r.deps.ApplicationHandler.ListApplicants(w, req)
		return
	case req.Method == http.MethodGet && strings.HasPrefix(path, "/hr/applicants/") && strings.HasSuffix(path, "/download-cv"):
		r.deps.ApplicationHandler.DownloadCV(w, req)
		return
	case req.Method == http.MethodPost && strings.HasPrefix(path, "/hr/applicants/") && isStatusAction(path):
		r.deps.ApplicationHandler.UpdateStatus(w, req)
		return
	}

	http.NotFound(w, req)
}

func (r *Router) handleSuperadmin(w http.ResponseWriter, req *http.Request) {
	path := req.URL.Path

	switch {
	case req.Method == http.MethodGet && path == "/superadmin/users":
		r.deps.AdminHandler.ListUsers(w, req)
		return
	case req.Method == http.MethodDelete && strings.HasPrefix(path, "/superadmin/users/"):
		r.deps.AdminHandler.DeleteUser(w, req)
		return
	case req.Method == http.MethodGet && path == "/superadmin/pending-hr-applications":
		r.deps.AdminHandler.ListPendingRecruiters(w, req)
		return
	case req.Method == http.MethodPost && strings.HasPrefix(path, "/superadmin/hr-applications/") && strings.HasSuffix(path, "/approve"):
		r.deps.AdminHandler.ApproveRecruiter(w, req)
		return
	case req.Method == http.MethodPost && strings.HasPrefix(path, "/superadmin/hr-applications/") && strings.HasSuffix(path, "/reject"):
		r.deps.AdminHandler.RejectRecruiter(w, req)
		return
	}

	http.NotFound(w, req)
}

func isStatusAction(path string) bool {
	switch {
	case strings.HasSuffix(path, "/review"),
		strings.HasSuffix(path, "/accept"),
		strings.HasSuffix(path, "/reject"),
		strings.HasSuffix(path, "/hire"):
		return true
	default:
		return false
	}
}
