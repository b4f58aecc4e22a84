package handlers

import (
	"io"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/jennilaluyan/connect-in-backend/internal/app"
	"github.com/jennilaluyan/connect-in-backend/internal/common"
	"github.com/jennilaluyan/connect-in-backend/internal/domain/application"
	"github.com/jennilaluyan/connect-in-backend/internal/http/middleware"
	"github.com/jennilaluyan/connect-in-backend/internal/http/response"
)

const defaultApplicantsPerPage = 15
const defaultMyApplicationsPerPage = 20

type ApplicationHandler struct {
	applications *app.ApplicationService
	limiter      middleware.Limiter
}

func NewApplicationHandler(applications *app.ApplicationService, limiter middleware.Limiter) *ApplicationHandler {
	return &ApplicationHandler{applications: applications, limiter: limiter}
}

// Apply handles the multipart submission at /job-postings/{id}/apply.
func (h *ApplicationHandler) Apply(w http.ResponseWriter, r *http.Request) {
	caller, err := callerFromRequest(r)
	if err != nil {
		response.Error(w, err)
		return
	}
	postingID, err := idFromPath(r, 1)
	if err != nil {
		response.Error(w, err)
		return
	}
	if h.limiter != nil {
		key := "apply:" + postingID.String() + ":" + caller.ID.String()
		if !h.limiter.Allow(key, 3, time.Minute) {
			response.Error(w, common.NewError(common.CodeRateLimited, "apply rate limit exceeded", nil))
			return
		}
	}
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		response.Error(w, common.NewValidationError("invalid request", map[string]string{"body": "multipart form expected"}))
		return
	}
	cv, closer, err := formFile(r, "cv")
	if err != nil {
		response.Error(w, err)
		return
	}
	defer closeQuietly(closer)

	created, err := h.applications.Apply(r.Context(), caller, postingID, cv, r.FormValue("cover_letter"))
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, created)
}

func (h *ApplicationHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	caller, err := callerFromRequest(r)
	if err != nil {
		response.Error(w, err)
		return
	}
	limit, offset := pagination(r, defaultMyApplicationsPerPage, 50)
	items, err := h.applications.ListByApplicant(r.Context(), caller, limit, offset)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, map[string]any{"data": items})
}

func (h *ApplicationHandler) ListApplicants(w http.ResponseWriter, r *http.Request) {
	caller, err := callerFromRequest(r)
	if err != nil {
		response.Error(w, err)
		return
	}
	var postingID *common.UUID
	if value := strings.TrimSpace(r.URL.Query().Get("job_posting_id")); value != "" {
		parsed, err := common.ParseUUID(value)
		if err != nil {
			response.Error(w, common.NewValidationError("invalid request", map[string]string{"job_posting_id": "invalid uuid"}))
			return
		}
		postingID = &parsed
	}
	limit, offset := pagination(r, defaultApplicantsPerPage, 50)
	items, err := h.applications.ListForRecruiter(r.Context(), caller, postingID, limit, offset)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, map[string]any{"data": items})
}

// UpdateStatus serves /hr/applicants/{id}/{action} where the trailing path
// segment names the transition target.
func (h *ApplicationHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	caller, err := callerFromRequest(r)
	if err != nil {
		response.Error(w, err)
		return
	}
	applicationID, err := idFromPath(r, 2)
	if err != nil {
		response.Error(w, err)
		return
	}
	next, err := statusFromAction(r.URL.Path)
	if err != nil {
		response.Error(w, err)
		return
	}
	updated, err := h.applications.UpdateStatus(r.Context(), caller, applicationID, next)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, updated)
}

func statusFromAction(path string) (application.Status, error) {
	segments := strings.Split(strings.Trim(path, "/"), "/")
	action := segments[len(segments)-1]
	switch action {
	case "review":
		return application.StatusReviewed, nil
	case "accept":
		return application.StatusShortlisted, nil
	case "reject":
		return application.StatusRejected, nil
	case "hire":
		return application.StatusHired, nil
	default:
		return "", common.NewValidationError("invalid action", map[string]string{"action": "action must be review, accept, reject, or hire"})
	}
}

func (h *ApplicationHandler) DownloadCV(w http.ResponseWriter, r *http.Request) {
	caller, err := callerFromRequest(r)
	if err != nil {
		response.Error(w, err)
		return
	}
	applicationID, err := idFromPath(r, 2)
	if err != nil {
		response.Error(w, err)
		return
	}
	reader, filename, err := h.applications.DownloadCV(r.Context(), caller, applicationID)
	if err != nil {
		response.Error(w, err)
		return
	}
	defer func() { _ = reader.Close() }()

	w.Header().Set("Content-Type", contentTypeFor(filename))
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": filename}))
	_, _ = io.Copy(w, reader)
}

func contentTypeFor(filename string) string {
	switch {
	case strings.HasSuffix(filename, ".pdf"):
		return "application/pdf"
	case strings.HasSuffix(filename, ".docx"):
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	case strings.HasSuffix(filename, ".doc"):
		return "application/msword"
	default:
		return "application/octet-stream"
	}
}
