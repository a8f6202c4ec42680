package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// memTokens - TokenSource в памяти для тестов
type memTokens struct {
	mu      sync.Mutex
	access  string
	refresh string
	saves   int
}

func (m *memTokens) Tokens(context.Context) (string, string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.access, m.refresh, nil
}

func (m *memTokens) Save(_ context.Context, access, refresh string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.access = access
	m.refresh = refresh
	m.saves++
	return nil
}

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return New(server.URL, 5*time.Second, zap.NewNop()), server
}

func TestRequestHeaders(t *testing.T) {
	var gotAuth, gotRequestID string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotRequestID = r.Header.Get("X-Request-ID")
		fmt.Fprint(w, `{}`)
	}))

	tokens := &memTokens{access: "acc-token", refresh: "ref-token"}
	err := client.WithTokens(tokens).get(context.Background(), "/profile/", &struct{}{})

	require.NoError(t, err)
	assert.Equal(t, "Bearer acc-token", gotAuth)
	assert.NotEmpty(t, gotRequestID)
}

func TestRefreshOnUnauthorized(t *testing.T) {
	var calls []string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, r.URL.Path+" "+r.Header.Get("Authorization"))

		switch r.URL.Path {
		case "/token/refresh/":
			var body map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "ref-token", body["refresh"])
			fmt.Fprint(w, `{"access": "fresh-token"}`)
		case "/profile/":
			if r.Header.Get("Authorization") != "Bearer fresh-token" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			fmt.Fprint(w, `{"username": "alice"}`)
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	}))

	tokens := &memTokens{access: "stale-token", refresh: "ref-token"}
	var out struct {
		Username string `json:"username"`
	}
	err := client.WithTokens(tokens).get(context.Background(), "/profile/", &out)

	require.NoError(t, err)
	assert.Equal(t, "alice", out.Username)
	// Исходный запрос, рефреш, повтор
	require.Len(t, calls, 3)
	assert.Equal(t, "fresh-token", tokens.access)
	// Рефреш без ротации сохраняет старый refresh
	assert.Equal(t, "ref-token", tokens.refresh)
	assert.Equal(t, 1, tokens.saves)
}

func TestRefreshFailureReturnsUnauthorized(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))

	tokens := &memTokens{access: "stale", refresh: "dead"}
	err := client.WithTokens(tokens).get(context.Background(), "/profile/", &struct{}{})

	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestAnonymousUnauthorized(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))

	err := client.get(context.Background(), "/sessions/", &struct{}{})
	assert.ErrorIs(t, err, ErrUnauthorized)
}

// Источник с пустыми токенами - чат без привязанного аккаунта.
// Такой запрос уходит без Authorization, открытые эндпоинты отвечают.
func TestEmptyTokensRequestAnonymously(t *testing.T) {
	var gotAuth string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		fmt.Fprint(w, `[]`)
	}))

	var out []struct{}
	err := client.WithTokens(&memTokens{}).get(context.Background(), "/tutors/", &out)

	require.NoError(t, err)
	assert.Empty(t, gotAuth)
}

func TestAPIErrorDetail(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, `{"error": "This time slot is already booked"}`)
	}))

	err := client.post(context.Background(), "/sessions/", map[string]string{}, nil)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "This time slot is already booked", apiErr.Detail())
}

func TestCollectFollowsPagination(t *testing.T) {
	var server *httptest.Server
	mux := http.NewServeMux()
	mux.HandleFunc("/tutors/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("page") == "2" {
			fmt.Fprint(w, `{"results": [{"id": 3}], "next": null}`)
			return
		}
		fmt.Fprintf(w, `{"results": [{"id": 1}, {"id": 2}], "next": "%s/tutors/?page=2"}`, server.URL)
	})
	server = httptest.NewServer(mux)
	t.Cleanup(server.Close)
	client := New(server.URL, 5*time.Second, zap.NewNop())

	type item struct {
		ID int64 `json:"id"`
	}
	items, err := collect[item](context.Background(), client, "/tutors/")

	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, int64(1), items[0].ID)
	assert.Equal(t, int64(3), items[2].ID)
}

func TestCollectBareArray(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[{"id": 7}, {"id": 8}]`)
	}))

	type item struct {
		ID int64 `json:"id"`
	}
	items, err := collect[item](context.Background(), client, "/set-availability/")

	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, int64(7), items[0].ID)
}

func TestLogin(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/token/", r.URL.Path)
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "alice", body["username"])
		assert.Equal(t, "secret", body["password"])
		fmt.Fprint(w, `{"access": "a1", "refresh": "r1"}`)
	}))

	tokens, err := client.Login(context.Background(), "alice", "secret")

	require.NoError(t, err)
	assert.Equal(t, "a1", tokens.Access)
	assert.Equal(t, "r1", tokens.Refresh)
}

func TestUnreadCount(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/messages/unread-count", r.URL.Path)
		fmt.Fprint(w, `{"unread_count": 4}`)
	}))

	tokens := &memTokens{access: "acc", refresh: "ref"}
	count, err := client.WithTokens(tokens).UnreadCount(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 4, count)
}
