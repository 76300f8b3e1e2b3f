package presence

import (
	"net/http"

	"github.com/gorilla/mux"

	"webtalk/infrastructure"
)

type JSONHandler struct {
	service *Service
}

func NewJSONHandler(service *Service) *JSONHandler {
	return &JSONHandler{service: service}
}

func (h *JSONHandler) UpdateUserStatus(w http.ResponseWriter, r *http.Request) {
	var req UpdateStatusInput
	if err := infrastructure.DecodeJSON(r, &req); err != nil {
		infrastructure.WriteFailure(w, err)
		return
	}

	if err := h.service.UpdateUserStatus(r.Context(), req.UserID, req.Status); err != nil {
		infrastructure.WriteFailure(w, err)
		return
	}
	infrastructure.WriteSuccess(w, "User status updated", nil)
}

func (h *JSONHandler) GetUserStatus(w http.ResponseWriter, r *http.Request) {
	st, err := h.service.GetUserStatus(r.Context(), mux.Vars(r)["user_id"])
	if err != nil {
		infrastructure.WriteFailure(w, err)
		return
	}
	infrastructure.WriteData(w, st)
}

func SetupJSONRoutes(r *mux.Router, h *JSONHandler) {
	r.HandleFunc("/status", h.UpdateUserStatus).Methods("POST")
	r.HandleFunc("/status/{user_id}", h.GetUserStatus).Methods("GET")
}
