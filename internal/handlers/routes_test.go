package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DonSam77/reservasjs/internal/handlers"
	"github.com/DonSam77/reservasjs/internal/handlers/auth"
	"github.com/DonSam77/reservasjs/internal/store"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() { gin.SetMode(gin.TestMode) }

type failingStore struct{ err error }

func (f failingStore) Get(context.Context, string, string) (store.Document, error) {
	return store.Document{}, f.err
}
func (f failingStore) List(context.Context, string) ([]store.Document, error) { return nil, f.err }
func (f failingStore) Add(context.Context, string, map[string]any) (string, error) {
	return "", f.err
}
func (f failingStore) Update(context.Context, string, string, map[string]any) error { return f.err }
func (f failingStore) Delete(context.Context, string, string) error { return f.err }
func (f failingStore) Close() error { return nil }

type api struct {
	t *testing.T
	h http.Handler
}

func newAPI(t *testing.T, st store.Store) *api {
	return &api{t: t, h: handlers.NewRouter(st, handlers.Options{})}
}

func (a *api) do(method, path, body string, header ...string) *httptest.ResponseRecorder {
	a.t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	w := httptest.NewRecorder()
	a.h.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func TestRoot_Welcome(t *testing.T) {
	a := newAPI(t, store.NewMemory())
	w := a.do(http.MethodGet, "/", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, handlers.Welcome, w.Body.String())
	assert.Contains(t, w.Header().Get("Content-Type"), "text/plain")
}

func TestHealthz(t *testing.T) {
	a := newAPI(t, store.NewMemory())
	w := a.do(http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", decode[map[string]any](t, w)["status"])
}

func TestUsers_CreateThenGet(t *testing.T) {
	a := newAPI(t, store.NewMemory())

	w := a.do(http.MethodPost, "/usuarios", `{"name":"Ana","email":"ana@example.com","tags":["x"]}`)
	require.Equal(t, http.StatusCreated, w.Code)
	created := decode[map[string]any](t, w)
	id, _ := created["id"].(string)
	require.NotEmpty(t, id)
	assert.Equal(t, "Ana", created["name"])

	w = a.do(http.MethodGet, "/usuarios/"+id, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, map[string]any{
		"id":    id,
		"name":  "Ana",
		"email": "ana@example.com",
		"tags":  []any{"x"},
	}, decode[map[string]any](t, w))
}

func TestUsers_List(t *testing.T) {
	a := newAPI(t, store.NewMemory())
	a.do(http.MethodPost, "/usuarios", `{"name":"Ana"}`)
	a.do(http.MethodPost, "/usuarios", `{"name":"Luis"}`)

	w := a.do(http.MethodGet, "/usuarios", "")
	require.Equal(t, http.StatusOK, w.Code)
	list := decode[[]map[string]any](t, w)
	require.Len(t, list, 2)
	assert.Equal(t, "Ana", list[0]["name"])
	assert.NotEmpty(t, list[0]["id"])
	assert.Equal(t, "Luis", list[1]["name"])
}

func TestUsers_ListEmptyIsArray(t *testing.T) {
	a := newAPI(t, store.NewMemory())
	w := a.do(http.MethodGet, "/usuarios", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestUsers_GetMissingIs404(t *testing.T) {
	a := newAPI(t, store.NewMemory())
	w := a.do(http.MethodGet, "/usuarios/does-not-exist", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	body := decode[map[string]any](t, w)
	assert.Equal(t, "not_found", body["error"])
	assert.Equal(t, "User not found", body["message"])
}

func TestUsers_UpdateMergesAndIsIdempotent(t *testing.T) {
	a := newAPI(t, store.NewMemory())
	id := decode[map[string]any](t, a.do(http.MethodPost, "/usuarios", `{"name":"Ana","role":"student"}`))["id"].(string)

	for i := 0; i < 2; i++ {
		w := a.do(http.MethodPut, "/usuarios/"+id, `{"role":"staff","phone":"555"}`)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, map[string]any{"id": id, "role": "staff", "phone": "555"}, decode[map[string]any](t, w))
	}

	w := a.do(http.MethodGet, "/usuarios/"+id, "")
	assert.Equal(t, map[string]any{"id": id, "name": "Ana", "role": "staff", "phone": "555"}, decode[map[string]any](t, w))
}

func TestUsers_UpdateMissingIs404(t *testing.T) {
	st := store.NewMemory()
	a := newAPI(t, st)
	w := a.do(http.MethodPut, "/usuarios/ghost", `{"name":"x"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)

	users, _ := st.List(context.Background(), store.Users)
	assert.Empty(t, users)
}

func TestUsers_Delete(t *testing.T) {
	a := newAPI(t, store.NewMemory())
	id := decode[map[string]any](t, a.do(http.MethodPost, "/usuarios", `{"name":"Ana"}`))["id"].(string)

	w := a.do(http.MethodDelete, "/usuarios/"+id, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "User deleted", decode[map[string]any](t, w)["message"])
	assert.Equal(t, http.StatusNotFound, a.do(http.MethodGet, "/usuarios/"+id, "").Code)

	// Unknown ids delete without error.
	assert.Equal(t, http.StatusOK, a.do(http.MethodDelete, "/usuarios/"+id, "").Code)
}

func TestCreate_RejectsNonObjectBody(t *testing.T) {
	a := newAPI(t, store.NewMemory())
	for _, body := range []string{`[1,2]`, `"text"`, `{not json`} {
		w := a.do(http.MethodPost, "/usuarios", body)
		assert.Equal(t, http.StatusBadRequest, w.Code, body)
		assert.Equal(t, "invalid_request", decode[map[string]any](t, w)["error"])
	}
}

func TestCreate_EmptyBodyIsEmptyDocument(t *testing.T) {
	a := newAPI(t, store.NewMemory())
	w := a.do(http.MethodPost, "/salas", "")
	require.Equal(t, http.StatusCreated, w.Code)
	body := decode[map[string]any](t, w)
	assert.Len(t, body, 1)
	assert.NotEmpty(t, body["id"])
}

func TestCreate_UnknownLengthEmptyBody(t *testing.T) {
	h := handlers.NewRouter(store.NewMemory(), handlers.Options{})
	for _, path := range []string{"/salas", "/usuarios", "/reservacion", "/salas/r1/calificar"} {
		req := httptest.NewRequest(http.MethodPost, path, io.NopCloser(strings.NewReader("")))
		req.Header.Set("Content-Type", "application/json")
		require.Equal(t, int64(-1), req.ContentLength)
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)
		assert.Equal(t, http.StatusCreated, w.Code, path+" "+w.Body.String())
	}
}

func TestWrite_RejectsEmptyFieldName(t *testing.T) {
	a := newAPI(t, store.NewMemory())
	id := decode[map[string]any](t, a.do(http.MethodPost, "/salas", `{"name":"A1"}`))["id"].(string)

	w := a.do(http.MethodPut, "/salas/"+id, `{"":1}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid_request", decode[map[string]any](t, w)["error"])

	w = a.do(http.MethodPost, "/usuarios", `{"":"x","name":"Ana"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	got := decode[map[string]any](t, a.do(http.MethodGet, "/salas/"+id, ""))
	assert.Equal(t, map[string]any{"id": id, "name": "A1"}, got)
}

func TestCreate_StoreIDWinsOverBodyID(t *testing.T) {
	a := newAPI(t, store.NewMemory())
	w := a.do(http.MethodPost, "/usuarios", `{"id":"mine","name":"Ana"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	id := decode[map[string]any](t, w)["id"].(string)
	assert.NotEqual(t, "mine", id)

	got := decode[map[string]any](t, a.do(http.MethodGet, "/usuarios/"+id, ""))
	assert.Equal(t, id, got["id"])
}

func TestRooms_ListLabelsAvailability(t *testing.T) {
	st := store.NewMemory()
	a := newAPI(t, st)
	a.do(http.MethodPost, "/salas", `{"name":"A1","availability":true}`)
	a.do(http.MethodPost, "/salas", `{"name":"B2","availability":false}`)
	a.do(http.MethodPost, "/salas", `{"name":"C3"}`)

	w := a.do(http.MethodGet, "/salas", "")
	require.Equal(t, http.StatusOK, w.Code)
	list := decode[[]map[string]any](t, w)
	require.Len(t, list, 3)
	assert.Equal(t, "room available", list[0]["availability"])
	assert.Equal(t, "room unavailable", list[1]["availability"])
	assert.Equal(t, "room unavailable", list[2]["availability"])
	for _, r := range list {
		_, isBool := r["availability"].(bool)
		assert.False(t, isBool)
	}

	// The label is not written back.
	docs, _ := st.List(context.Background(), store.Rooms)
	assert.Equal(t, true, docs[0].Data["availability"])
	_, has := docs[2].Data["availability"]
	assert.False(t, has)
}

func TestRooms_GetIsRaw(t *testing.T) {
	a := newAPI(t, store.NewMemory())
	id := decode[map[string]any](t, a.do(http.MethodPost, "/salas", `{"name":"A1","availability":true}`))["id"].(string)

	w := a.do(http.MethodGet, "/salas/"+id, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decode[map[string]any](t, w)["availability"])
}

func TestRooms_DeleteThenGetIs404(t *testing.T) {
	a := newAPI(t, store.NewMemory())
	id := decode[map[string]any](t, a.do(http.MethodPost, "/salas", `{"name":"A1"}`))["id"].(string)

	w := a.do(http.MethodDelete, "/salas/"+id, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Room deleted", decode[map[string]any](t, w)["message"])

	w = a.do(http.MethodGet, "/salas/"+id, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Room not found", decode[map[string]any](t, w)["message"])
}

func TestRooms_LockDisablesRegardlessOfOccupancy(t *testing.T) {
	for _, occupied := range []string{"true", "false"} {
		a := newAPI(t, store.NewMemory())
		id := decode[map[string]any](t, a.do(http.MethodPost, "/salas", `{"name":"A1","availability":true,"occupied":`+occupied+`}`))["id"].(string)

		w := a.do(http.MethodPost, "/salas/"+id+"/bloquear", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.NotEmpty(t, decode[map[string]any](t, w)["message"])

		w = a.do(http.MethodGet, "/salas/"+id+"/disponibilidad", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, map[string]any{"id": id, "availability": "Room disabled"}, decode[map[string]any](t, w))

		raw := decode[map[string]any](t, a.do(http.MethodGet, "/salas/"+id, ""))
		assert.Equal(t, "disabled", raw["availability"])
	}
}

func TestRooms_LockMissingIs404(t *testing.T) {
	st := store.NewMemory()
	a := newAPI(t, st)
	w := a.do(http.MethodPost, "/salas/ghost/bloquear", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	rooms, _ := st.List(context.Background(), store.Rooms)
	assert.Empty(t, rooms)
}

func TestRooms_Availability(t *testing.T) {
	a := newAPI(t, store.NewMemory())
	occupied := decode[map[string]any](t, a.do(http.MethodPost, "/salas", `{"availability":true,"occupied":true}`))["id"].(string)
	free := decode[map[string]any](t, a.do(http.MethodPost, "/salas", `{"availability":true,"occupied":false}`))["id"].(string)

	assert.Equal(t, "Room occupied", decode[map[string]any](t, a.do(http.MethodGet, "/salas/"+occupied+"/disponibilidad", ""))["availability"])
	assert.Equal(t, "Room available", decode[map[string]any](t, a.do(http.MethodGet, "/salas/"+free+"/disponibilidad", ""))["availability"])
	assert.Equal(t, http.StatusNotFound, a.do(http.MethodGet, "/salas/ghost/disponibilidad", "").Code)
}

func TestRooms_UpdateAcceptsAnyCombination(t *testing.T) {
	a := newAPI(t, store.NewMemory())
	id := decode[map[string]any](t, a.do(http.MethodPost, "/salas", `{"name":"A1","availability":"disabled"}`))["id"].(string)

	w := a.do(http.MethodPut, "/salas/"+id, `{"availability":true,"occupied":true}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Room occupied", decode[map[string]any](t, a.do(http.MethodGet, "/salas/"+id+"/disponibilidad", ""))["availability"])
}

func TestRooms_Scenario(t *testing.T) {
	a := newAPI(t, store.NewMemory())

	w := a.do(http.MethodPost, "/salas", `{"name":"A1","availability":true}`)
	require.Equal(t, http.StatusCreated, w.Code)
	r1 := decode[map[string]any](t, w)["id"].(string)

	list := decode[[]map[string]any](t, a.do(http.MethodGet, "/salas", ""))
	assert.Contains(t, list, map[string]any{"id": r1, "name": "A1", "availability": "room available"})

	w = a.do(http.MethodPost, "/salas/"+r1+"/bloquear", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, decode[map[string]any](t, w), "message")

	w = a.do(http.MethodGet, "/salas/"+r1+"/disponibilidad", "")
	assert.Equal(t, map[string]any{"id": r1, "availability": "Room disabled"}, decode[map[string]any](t, w))
}

func TestRooms_RatingsAndReports(t *testing.T) {
	st := store.NewMemory()
	a := newAPI(t, st)
	id := decode[map[string]any](t, a.do(http.MethodPost, "/salas", `{"name":"A1"}`))["id"].(string)

	w := a.do(http.MethodPost, "/salas/"+id+"/calificar", `{"stars":4,"comment":"quiet"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, map[string]any{
		"message": "Rating added",
		"rating":  map[string]any{"stars": 4.0, "comment": "quiet"},
	}, decode[map[string]any](t, w))

	w = a.do(http.MethodPost, "/salas/"+id+"/reporte", `{"issue":"broken projector"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, map[string]any{
		"message": "Report added",
		"report":  map[string]any{"issue": "broken projector"},
	}, decode[map[string]any](t, w))

	// Written before the response was sent.
	ratings, err := st.List(context.Background(), store.SubCollection(store.Rooms, id, store.Ratings))
	require.NoError(t, err)
	require.Len(t, ratings, 1)
	assert.Equal(t, "quiet", ratings[0].Data["comment"])

	list := decode[[]map[string]any](t, a.do(http.MethodGet, "/salas/"+id+"/reportes", ""))
	require.Len(t, list, 1)
	assert.Equal(t, "broken projector", list[0]["issue"])

	list = decode[[]map[string]any](t, a.do(http.MethodGet, "/salas/"+id+"/calificaciones", ""))
	assert.Len(t, list, 1)
}

func TestReservations(t *testing.T) {
	a := newAPI(t, store.NewMemory())

	w := a.do(http.MethodPost, "/reservacion", `{"room":"not-a-room","user":"not-a-user","date":"2026-10-20"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	created := decode[map[string]any](t, w)
	id := created["id"].(string)
	assert.Equal(t, "not-a-room", created["room"])

	list := decode[[]map[string]any](t, a.do(http.MethodGet, "/reservacion", ""))
	require.Len(t, list, 1)
	assert.Equal(t, id, list[0]["id"])

	w = a.do(http.MethodGet, "/reservacion/"+id, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "2026-10-20", decode[map[string]any](t, w)["date"])

	assert.Equal(t, http.StatusOK, a.do(http.MethodDelete, "/reservacion/"+id, "").Code)
	assert.Equal(t, http.StatusNotFound, a.do(http.MethodGet, "/reservacion/"+id, "").Code)
}

func TestStoreFailuresAreUniform500(t *testing.T) {
	a := newAPI(t, failingStore{err: errors.New("deadline exceeded")})

	cases := []struct{ method, path, body string }{
		{http.MethodGet, "/usuarios", ""},
		{http.MethodGet, "/usuarios/u1", ""},
		{http.MethodPost, "/usuarios", `{"name":"Ana"}`},
		{http.MethodPut, "/usuarios/u1", `{"name":"Ana"}`},
		{http.MethodDelete, "/usuarios/u1", ""},
		{http.MethodGet, "/salas", ""},
		{http.MethodGet, "/salas/r1", ""},
		{http.MethodPost, "/salas", `{}`},
		{http.MethodPut, "/salas/r1", `{}`},
		{http.MethodDelete, "/salas/r1", ""},
		{http.MethodPost, "/salas/r1/bloquear", ""},
		{http.MethodGet, "/salas/r1/disponibilidad", ""},
		{http.MethodPost, "/salas/r1/calificar", `{"stars":1}`},
		{http.MethodPost, "/salas/r1/reporte", `{"issue":"x"}`},
		{http.MethodGet, "/reservacion", ""},
		{http.MethodPost, "/reservacion", `{"room":"r1"}`},
	}
	for _, tc := range cases {
		w := a.do(tc.method, tc.path, tc.body)
		assert.Equal(t, http.StatusInternalServerError, w.Code, tc.method+" "+tc.path)
		body := decode[map[string]any](t, w)
		assert.Equal(t, "store_error", body["error"], tc.method+" "+tc.path)
		assert.Contains(t, body["message"], "deadline exceeded", tc.method+" "+tc.path)
	}
}

func TestNotFoundFromStoreIsDistinctFromFailure(t *testing.T) {
	a := newAPI(t, failingStore{err: store.ErrNotFound})
	w := a.do(http.MethodGet, "/salas/r1", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "not_found", decode[map[string]any](t, w)["error"])
}

func TestWriteProtection(t *testing.T) {
	ah, err := auth.New("admin", "secret", "test-secret", time.Minute)
	require.NoError(t, err)
	a := &api{t: t, h: handlers.NewRouter(store.NewMemory(), handlers.Options{Auth: ah, JWTSecret: "test-secret"})}

	// Reads stay public.
	assert.Equal(t, http.StatusOK, a.do(http.MethodGet, "/salas", "").Code)

	w := a.do(http.MethodPost, "/salas", `{"name":"A1"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "unauthorized", decode[map[string]any](t, w)["error"])

	w = a.do(http.MethodPost, "/salas", `{"name":"A1"}`, "Authorization", "Bearer not-a-token")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = a.do(http.MethodPost, "/auth/login", `{"username":"admin","password":"nope"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = a.do(http.MethodPost, "/auth/login", `{"username":"admin","password":"secret"}`)
	require.Equal(t, http.StatusOK, w.Code)
	tok := decode[map[string]any](t, w)["access_token"].(string)
	require.NotEmpty(t, tok)

	w = a.do(http.MethodPost, "/salas", `{"name":"A1"}`, "Authorization", "Bearer "+tok)
	assert.Equal(t, http.StatusCreated, w.Code)

	w = a.do(http.MethodGet, "/auth/me", "", "Authorization", "Bearer "+tok)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, map[string]any{"username": "admin", "is_admin": true}, decode[map[string]any](t, w))
}

func TestAuthRoutesAbsentWhenDisabled(t *testing.T) {
	a := newAPI(t, store.NewMemory())
	assert.Equal(t, http.StatusNotFound, a.do(http.MethodPost, "/auth/login", `{"username":"a","password":"b"}`).Code)
	assert.Equal(t, http.StatusCreated, a.do(http.MethodPost, "/salas", `{"name":"A1"}`).Code)
}
