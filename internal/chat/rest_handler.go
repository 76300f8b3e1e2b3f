package chat

import (
	"net/http"

	"github.com/gorilla/mux"

	"webtalk/infrastructure"
)

type JSONHandler struct {
	chatUseCase *UseCase
}

func NewJSONHandler(chatUseCase *UseCase) *JSONHandler {
	return &JSONHandler{chatUseCase: chatUseCase}
}

func (h *JSONHandler) CreateChatRoom(w http.ResponseWriter, r *http.Request) {
	var req CreateRoomInput
	if err := infrastructure.DecodeJSON(r, &req); err != nil {
		infrastructure.WriteFailure(w, err)
		return
	}

	id, err := h.chatUseCase.CreateChatRoom(r.Context(), req)
	if err != nil {
		infrastructure.WriteFailure(w, err)
		return
	}

	infrastructure.WriteSuccess(w, "Chat room created", map[string]any{"room_id": id})
}

func (h *JSONHandler) ListChatRooms(w http.ResponseWriter, r *http.Request) {
	rooms, err := h.chatUseCase.ListChatRooms(r.Context())
	if err != nil {
		infrastructure.WriteFailure(w, err)
		return
	}
	infrastructure.WriteData(w, rooms)
}

func (h *JSONHandler) GetChatRoom(w http.ResponseWriter, r *http.Request) {
	room, err := h.chatUseCase.GetChatRoomByID(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		infrastructure.WriteFailure(w, err)
		return
	}
	infrastructure.WriteData(w, room)
}

func (h *JSONHandler) DeleteChatRoom(w http.ResponseWriter, r *http.Request) {
	if err := h.chatUseCase.DeleteChatRoom(r.Context(), mux.Vars(r)["id"]); err != nil {
		infrastructure.WriteFailure(w, err)
		return
	}
	infrastructure.WriteSuccess(w, "Chat room deleted", nil)
}

func (h *JSONHandler) AddUserToRoom(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	if err := h.chatUseCase.AddUserToRoom(r.Context(), vars["user_id"], vars["room_id"]); err != nil {
		infrastructure.WriteFailure(w, err)
		return
	}
	infrastructure.WriteSuccess(w, "User added to room", nil)
}

func (h *JSONHandler) RemoveUserFromRoom(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	if err := h.chatUseCase.RemoveUserFromRoom(r.Context(), vars["user_id"], vars["room_id"]); err != nil {
		infrastructure.WriteFailure(w, err)
		return
	}
	infrastructure.WriteSuccess(w, "User removed from room", nil)
}

func (h *JSONHandler) GetUsersInRoom(w http.ResponseWriter, r *http.Request) {
	ids, err := h.chatUseCase.GetUsersInRoom(r.Context(), mux.Vars(r)["room_id"])
	if err != nil {
		infrastructure.WriteFailure(w, err)
		return
	}
	infrastructure.WriteData(w, convertMembers(ids))
}

func (h *JSONHandler) GetRoomsForUser(w http.ResponseWriter, r *http.Request) {
	ids, err := h.chatUseCase.GetRoomsForUser(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		infrastructure.WriteFailure(w, err)
		return
	}
	infrastructure.WriteData(w, convertMemberships(ids))
}

func SetupJSONRoutes(r *mux.Router, h *JSONHandler) {
	r.HandleFunc("/rooms", h.CreateChatRoom).Methods("POST")
	r.HandleFunc("/rooms", h.ListChatRooms).Methods("GET")
	r.HandleFunc("/rooms/{id}", h.GetChatRoom).Methods("GET")
	r.HandleFunc("/rooms/{id}", h.DeleteChatRoom).Methods("DELETE")
	r.HandleFunc("/rooms/{room_id}/add_user/{user_id}", h.AddUserToRoom).Methods("POST")
	r.HandleFunc("/rooms/{room_id}/remove_user/{user_id}", h.RemoveUserFromRoom).Methods("POST")
	r.HandleFunc("/rooms/{room_id}/users", h.GetUsersInRoom).Methods("GET")
	r.HandleFunc("/users/{id}/rooms", h.GetRoomsForUser).Methods("GET")
}
