package messaging

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

func (h *JSONHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	var req SendMessageInput
	if err := infrastructure.DecodeJSON(r, &req); err != nil {
		infrastructure.WriteFailure(w, err)
		return
	}

	id, err := h.service.SendMessage(r.Context(), req)
	if err != nil {
		infrastructure.WriteFailure(w, err)
		return
	}
	infrastructure.WriteSuccess(w, "Message sent", map[string]any{"message_id": id})
}

func (h *JSONHandler) GetMessagesForRoom(w http.ResponseWriter, r *http.Request) {
	limit, err := infrastructure.QueryInt(r, "limit", DefaultLimit)
	if err != nil {
		infrastructure.WriteFailure(w, err)
		return
	}
	offset, err := infrastructure.QueryInt(r, "offset", DefaultOffset)
	if err != nil {
		infrastructure.WriteFailure(w, err)
		return
	}

	msgs, err := h.service.GetMessagesForRoom(r.Context(), mux.Vars(r)["room_id"], limit, offset)
	if err != nil {
		infrastructure.WriteFailure(w, err)
		return
	}
	infrastructure.WriteData(w, msgs)
}

func (h *JSONHandler) EditMessage(w http.ResponseWriter, r *http.Request) {
	var req EditMessageInput
	if err := infrastructure.DecodeJSON(r, &req); err != nil {
		infrastructure.WriteFailure(w, err)
		return
	}

	if err := h.service.EditMessage(r.Context(), mux.Vars(r)["id"], req.Content); err != nil {
		infrastructure.WriteFailure(w, err)
		return
	}
	infrastructure.WriteSuccess(w, "Message updated", nil)
}

func (h *JSONHandler) DeleteMessage(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteMessage(r.Context(), mux.Vars(r)["id"]); err != nil {
		infrastructure.WriteFailure(w, err)
		return
	}
	infrastructure.WriteSuccess(w, "Message deleted", nil)
}

func SetupJSONRoutes(r *mux.Router, h *JSONHandler) {
	r.HandleFunc("/messages", h.SendMessage).Methods("POST")
	r.HandleFunc("/messages/{room_id}", h.GetMessagesForRoom).Methods("GET")
	r.HandleFunc("/messages/{id}", h.EditMessage).Methods("PUT")
	r.HandleFunc("/messages/{id}", h.DeleteMessage).Methods("DELETE")
}
