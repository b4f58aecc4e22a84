package response

import (
	"encoding/json"
	"net/http"

	"github.com/jennilaluyan/connect-in-backend/internal/common"
)

type errorBody struct {
	Error  string            `json:"error"`
	Code   string            `json:"code"`
	Fields map[string]string `json:"fields,omitempty"`
}

func JSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(payload)
}

// Error maps a coded error to its HTTP status. Uncoded errors never leak
// their message to the client.
func Error(w http.ResponseWriter, err error) {
	coded, ok := common.From(err)
	if !ok {
		JSON(w, http.StatusInternalServerError, errorBody{Error: "internal server error", Code: string(common.CodeInternal)})
		return
	}
	body := errorBody{Error: coded.Message, Code: string(coded.Code), Fields: coded.Fields}
	if coded.Code == common.CodeInternal {
		body.Error = "internal server error"
		body.Fields = nil
	}
	JSON(w, statusFor(coded.Code), body)
}

func statusFor(code common.Code) int {
	switch code {
	case common.CodeValidation:
		return http.StatusUnprocessableEntity
	case common.CodeUnauthorized:
		return http.StatusUnauthorized
	case common.CodeForbidden:
		return http.StatusForbidden
	case common.CodeNotFound:
		return http.StatusNotFound
	case common.CodeConflict:
		return http.StatusConflict
	case common.CodeInvalidTransition, common.CodeNotApplicable:
		return http.StatusBadRequest
	case common.CodeRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}
