package handlers

import (
	"net/http"

	"github.com/jennilaluyan/connect-in-backend/internal/app"
	"github.com/jennilaluyan/connect-in-backend/internal/domain/posting"
	"github.com/jennilaluyan/connect-in-backend/internal/http/response"
)

const defaultPostingsPerPage = 10

type PostingHandler struct {
	postings *app.PostingService
}

func NewPostingHandler(postings *app.PostingService) *PostingHandler {
	return &PostingHandler{postings: postings}
}

type postingRequest struct {
	Title            string   `json:"title"`
	CompanyName      string   `json:"company_name"`
	Type             string   `json:"type"`
	Location         string   `json:"location"`
	Description      string   `json:"description"`
	Requirements     []string `json:"requirements"`
	Responsibilities []string `json:"responsibilities"`
	Benefits         []string `json:"benefits"`
	SalaryMin        *int64   `json:"salary_min"`
	SalaryMax        *int64   `json:"salary_max"`
}

func (h *PostingHandler) Create(w http.ResponseWriter, r *http.Request) {
	caller, err := callerFromRequest(r)
	if err != nil {
		response.Error(w, err)
		return
	}
	var req postingRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	created, err := h.postings.Create(r.Context(), caller, posting.Posting{
		Title:            req.Title,
		CompanyName:      req.CompanyName,
		Type:             posting.Type(req.Type),
		Location:         req.Location,
		Description:      req.Description,
		Requirements:     req.Requirements,
		Responsibilities: req.Responsibilities,
		Benefits:         req.Benefits,
		SalaryMin:        req.SalaryMin,
		SalaryMax:        req.SalaryMax,
	})
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, created)
}

type postingUpdateRequest struct {
	Title            *string   `json:"title"`
	CompanyName      *string   `json:"company_name"`
	Type             *string   `json:"type"`
	Location         *string   `json:"location"`
	Description      *string   `json:"description"`
	Requirements     *[]string `json:"requirements"`
	Responsibilities *[]string `json:"responsibilities"`
	Benefits         *[]string `json:"benefits"`
	SalaryMin        *int64    `json:"salary_min"`
	SalaryMax        *int64    `json:"salary_max"`
}

func (h *PostingHandler) Update(w http.ResponseWriter, r *http.Request) {
	caller, err := callerFromRequest(r)
	if err != nil {
		response.Error(w, err)
		return
	}
	id, err := idFromPath(r, 2)
	if err != nil {
		response.Error(w, err)
		return
	}
	var req postingUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	update := posting.Update{
		Title:            req.Title,
		CompanyName:      req.CompanyName,
		Location:         req.Location,
		Description:      req.Description,
		Requirements:     req.Requirements,
		Responsibilities: req.Responsibilities,
		Benefits:         req.Benefits,
		SalaryMin:        req.SalaryMin,
		SalaryMax:        req.SalaryMax,
	}
	if req.Type != nil {
		parsed := posting.Type(*req.Type)
		update.Type = &parsed
	}
	updated, err := h.postings.Update(r.Context(), caller, id, update)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, updated)
}

func (h *PostingHandler) Delete(w http.ResponseWriter, r *http.Request) {
	caller, err := callerFromRequest(r)
	if err != nil {
		response.Error(w, err)
		return
	}
	id, err := idFromPath(r, 2)
	if err != nil {
		response.Error(w, err)
		return
	}
	if err := h.postings.Delete(r.Context(), caller, id); err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, map[string]string{"message": "job posting deleted"})
}

func (h *PostingHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := idFromPath(r, 1)
	if err != nil {
		response.Error(w, err)
		return
	}
	p, err := h.postings.Get(r.Context(), id)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, p)
}

func (h *PostingHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r, defaultPostingsPerPage, 50)
	items, err := h.postings.List(r.Context(), r.URL.Query().Get("search"), limit, offset)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, map[string]any{"data": items})
}

func (h *PostingHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	caller, err := callerFromRequest(r)
	if err != nil {
		response.Error(w, err)
		return
	}
	limit, offset := pagination(r, defaultPostingsPerPage, 50)
	items, err := h.postings.ListMine(r.Context(), caller, limit, offset)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, map[string]any{"data": items})
}
