package infrastructure

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
)

// Outcome is the success body of mutating operations. Extra carries
// per-operation fields such as a generated id.
type Outcome struct {
	Success bool
	Message string
	Extra   map[string]any
}

func (o Outcome) MarshalJSON() ([]byte, error) {
	body := make(map[string]any, len(o.Extra)+2)
	for k, v := range o.Extra {
		body[k] = v
	}
	body["Success"] = o.Success
	body["Message"] = o.Message
	return json.Marshal(body)
}

type failureBody struct {
	Success bool   `json:"Success"`
	Message string `json:"Message"`
	Kind    Kind   `json:"Kind"`
}

func StatusCode(kind Kind) int {
	switch kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindUnauthorized:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

func WriteJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func WriteSuccess(w http.ResponseWriter, message string, extra map[string]any) {
	WriteJSON(w, http.StatusOK, Outcome{Success: true, Message: message, Extra: extra})
}

// WriteData writes {"data": data}.
func WriteData(w http.ResponseWriter, data any) {
	WriteJSON(w, http.StatusOK, map[string]any{"data": data})
}

func WriteFailure(w http.ResponseWriter, err error) {
	f := AsFailure(err)
	WriteJSON(w, StatusCode(f.Kind), failureBody{Success: false, Message: f.Message, Kind: f.Kind})
}

// WriteStatus writes a failure body with an explicit HTTP status, for rejections
// that happen before a request reaches a service.
func WriteStatus(w http.ResponseWriter, status int, kind Kind, message string) {
	WriteJSON(w, status, failureBody{Success: false, Message: message, Kind: kind})
}

// DecodeJSON decodes the request body into v. A malformed body is a validation failure.
func DecodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return Invalid(fmt.Sprintf("Invalid request body: %v", err))
	}
	return nil
}

// QueryInt reads an integer query parameter, returning def when it is absent.
func QueryInt(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, Invalid(fmt.Sprintf("Query parameter %s must be an integer.", name))
	}
	return n, nil
}
