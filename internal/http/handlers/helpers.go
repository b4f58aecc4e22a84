package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/jennilaluyan/connect-in-backend/internal/app"
	"github.com/jennilaluyan/connect-in-backend/internal/common"
	"github.com/jennilaluyan/connect-in-backend/internal/domain/identity"
	"github.com/jennilaluyan/connect-in-backend/internal/http/middleware"
)

const maxMultipartMemory = 8 << 20

func errUnauthorized() error {
	return common.NewError(common.CodeUnauthorized, "authentication required", nil)
}

func callerFromRequest(r *http.Request) (*identity.Identity, error) {
	ident, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		return nil, errUnauthorized()
	}
	return ident, nil
}

func decodeJSON(r *http.Request, dst any) error {
	defer func() { _, _ = io.Copy(io.Discard, r.Body) }()
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return common.NewValidationError("invalid request body", map[string]string{"body": "malformed json"})
	}
	return nil
}

// idFromPath pulls the path segment at index (zero-based, leading slash
// stripped) and parses it as a UUID.
func idFromPath(r *http.Request, index int) (common.UUID, error) {
	segments := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	if index >= len(segments) || segments[index] == "" {
		return "", common.NewValidationError("invalid path", map[string]string{"id": "missing id"})
	}
	parsed, err := common.ParseUUID(segments[index])
	if err != nil {
		return "", common.NewValidationError("invalid path", map[string]string{"id": "invalid uuid"})
	}
	return parsed, nil
}

// pagination reads page and per_page, clamping per_page to the given default
// and cap. Pages start at 1; the returned offset is row-based.
func pagination(r *http.Request, defaultPerPage, maxPerPage int) (limit, offset int) {
	limit = defaultPerPage
	if value := r.URL.Query().Get("per_page"); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	if limit > maxPerPage {
		limit = maxPerPage
	}
	page := 1
	if value := r.URL.Query().Get("page"); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil && parsed > 0 {
			page = parsed
		}
	}
	return limit, (page - 1) * limit
}

// formFile pulls a multipart file into an app.FileUpload. A missing field
// yields nil so optional uploads fall through.
func formFile(r *http.Request, field string) (*app.FileUpload, io.Closer, error) {
	file, header, err := r.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil, nil
		}
		return nil, nil, common.NewValidationError("invalid upload", map[string]string{field: "malformed multipart field"})
	}
	return &app.FileUpload{FileName: header.Filename, Size: header.Size, Content: file}, file, nil
}

func closeQuietly(c io.Closer) {
	if c != nil {
		_ = c.Close()
	}
}
