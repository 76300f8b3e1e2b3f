package chat

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
)

func serve(t *testing.T, h http.Handler, method, path, body string) (int, map[string]any) {
	t.Helper()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, path, strings.NewReader(body)))

	var out map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("%s %s: decode %q: %v", method, path, rec.Body.String(), err)
	}
	return rec.Code, out
}

func TestRoomRoutes(t *testing.T) {
	uc, _ := newTestUseCase(t)
	r := mux.NewRouter()
	SetupJSONRoutes(r, NewJSONHandler(uc))

	code, body := serve(t, r, http.MethodPost, "/rooms", `{"name":"general","created_by":"userA"}`)
	if code != http.StatusOK || body["Message"] != "Chat room created" {
		t.Fatalf("create = %d %v", code, body)
	}
	id := body["room_id"].(string)

	code, body = serve(t, r, http.MethodGet, "/rooms/"+id, "")
	if data, _ := body["data"].(map[string]any); code != http.StatusOK || data["name"] != "general" || data["is_private"] != false {
		t.Errorf("get = %d %v", code, body)
	}

	code, body = serve(t, r, http.MethodPost, "/rooms/"+id+"/add_user/userB", "")
	if code != http.StatusOK || body["Message"] != "User added to room" {
		t.Errorf("add_user = %d %v", code, body)
	}

	_, body = serve(t, r, http.MethodGet, "/rooms/"+id+"/users", "")
	members, _ := body["data"].([]any)
	if len(members) != 1 || members[0].(map[string]any)["user_id"] != "userB" {
		t.Errorf("users = %v", body)
	}

	_, body = serve(t, r, http.MethodGet, "/users/userB/rooms", "")
	rooms, _ := body["data"].([]any)
	if len(rooms) != 1 || rooms[0].(map[string]any)["room_id"] != id {
		t.Errorf("rooms for user = %v", body)
	}

	code, body = serve(t, r, http.MethodPost, "/rooms/"+id+"/remove_user/userB", "")
	if code != http.StatusOK || body["Message"] != "User removed from room" {
		t.Errorf("remove_user = %d %v", code, body)
	}

	code, body = serve(t, r, http.MethodDelete, "/rooms/"+id, "")
	if code != http.StatusOK || body["Message"] != "Chat room deleted" {
		t.Errorf("delete = %d %v", code, body)
	}

	code, body = serve(t, r, http.MethodGet, "/rooms", "")
	if list, _ := body["data"].([]any); code != http.StatusOK || len(list) != 0 {
		t.Errorf("list = %d %v", code, body)
	}
}
