package handlers

import (
	"net/http"
	"strings"

	"github.com/jennilaluyan/connect-in-backend/internal/app"
	"github.com/jennilaluyan/connect-in-backend/internal/common"
	"github.com/jennilaluyan/connect-in-backend/internal/domain/identity"
	"github.com/jennilaluyan/connect-in-backend/internal/http/response"
)

type ProfileHandler struct {
	profiles *app.ProfileService
}

func NewProfileHandler(profiles *app.ProfileService) *ProfileHandler {
	return &ProfileHandler{profiles: profiles}
}

func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	caller, err := callerFromRequest(r)
	if err != nil {
		response.Error(w, err)
		return
	}
	ident, err := h.profiles.Get(r.Context(), caller)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, ident)
}

// Update accepts a multipart form: text fields plus an optional avatar file.
func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	caller, err := callerFromRequest(r)
	if err != nil {
		response.Error(w, err)
		return
	}
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		response.Error(w, common.NewValidationError("invalid request", map[string]string{"body": "multipart form expected"}))
		return
	}
	avatar, closer, err := formFile(r, "avatar")
	if err != nil {
		response.Error(w, err)
		return
	}
	defer closeQuietly(closer)

	update := identity.ProfileUpdate{
		Name:     optionalField(r, "name"),
		Headline: optionalField(r, "headline"),
		City:     optionalField(r, "city"),
		Province: optionalField(r, "province"),
	}
	if caller.Role == identity.RoleRecruiter {
		update.CompanyName = optionalField(r, "company_name")
	}
	updated, err := h.profiles.Update(r.Context(), caller, update, avatar)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, updated)
}

func optionalField(r *http.Request, name string) *string {
	if r.MultipartForm == nil {
		return nil
	}
	values, ok := r.MultipartForm.Value[name]
	if !ok || len(values) == 0 {
		return nil
	}
	value := strings.TrimSpace(values[0])
	return &value
}
