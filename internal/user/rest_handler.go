package user

import (
	"net/http"

	"github.com/gorilla/mux"

	"webtalk/infrastructure"
)

type JSONHandler struct {
	userUseCase *UseCase
}

func NewJSONHandler(userUseCase *UseCase) *JSONHandler {
	return &JSONHandler{
		userUseCase: userUseCase,
	}
}

func (h *JSONHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req CreateUserInput
	if err := infrastructure.DecodeJSON(r, &req); err != nil {
		infrastructure.WriteFailure(w, err)
		return
	}

	id, err := h.userUseCase.CreateUser(r.Context(), req)
	if err != nil {
		infrastructure.WriteFailure(w, err)
		return
	}

	infrastructure.WriteSuccess(w, "User created successfully", map[string]any{"user_id": id})
}

// ListUsers lists every user, or looks one up when ?username= is given.
func (h *JSONHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	var (
		users []*User
		err   error
	)
	if username, ok := r.URL.Query()["username"]; ok {
		var u *User
		u, err = h.userUseCase.GetUserByUsername(r.Context(), username[0])
		users = []*User{u}
	} else {
		users, err = h.userUseCase.ListUsers(r.Context())
	}
	if err != nil {
		infrastructure.WriteFailure(w, err)
		return
	}

	infrastructure.WriteJSON(w, http.StatusOK, map[string]any{"Success": true, "users": users})
}

func (h *JSONHandler) GetUserByID(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	u, err := h.userUseCase.GetUserByID(r.Context(), vars["id"])
	if err != nil {
		infrastructure.WriteFailure(w, err)
		return
	}

	infrastructure.WriteJSON(w, http.StatusOK, map[string]any{"data": u, "count": 1})
}

func (h *JSONHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	var patch Patch
	if err := infrastructure.DecodeJSON(r, &patch); err != nil {
		infrastructure.WriteFailure(w, err)
		return
	}

	if err := h.userUseCase.UpdateUser(r.Context(), vars["id"], patch); err != nil {
		infrastructure.WriteFailure(w, err)
		return
	}

	infrastructure.WriteSuccess(w, "User updated successfully", nil)
}

func (h *JSONHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	if err := h.userUseCase.DeleteUser(r.Context(), vars["id"]); err != nil {
		infrastructure.WriteFailure(w, err)
		return
	}

	infrastructure.WriteSuccess(w, "User deleted successfully", nil)
}

func SetupJSONRoutes(r *mux.Router, h *JSONHandler) {
	r.HandleFunc("/users", h.CreateUser).Methods("POST")
	r.HandleFunc("/users", h.ListUsers).Methods("GET")
	r.HandleFunc("/users/{id}", h.GetUserByID).Methods("GET")
	r.HandleFunc("/users/{id}", h.UpdateUser).Methods("PUT")
	r.HandleFunc("/users/{id}", h.DeleteUser).Methods("DELETE")
}
