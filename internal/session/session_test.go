package session

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/kopi/internal/api"
	"github.com/felixgeelhaar/kopi/internal/storage"
)

func newSession(t *testing.T, handler http.Handler) (*Store, storage.Store) {
	t.Helper()

	st := storage.NewMemStore()
	sess := New(st, nil)

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client := api.NewClient(srv.URL,
		api.WithTokenSource(sess.Token),
		api.WithUnauthorizedHook(sess.ForceLogout),
	)
	sess.Bind(client)
	return sess, st
}

func loginHandler(t *testing.T) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/login", "/auth/register", "/auth/admin/login":
			role := "customer"
			if r.URL.Path == "/auth/admin/login" {
				role = "admin"
			}
			_ = json.NewEncoder(w).Encode(map[string]any{
				"success": true,
				"data": map[string]any{
					"user":          map[string]any{"id": 1, "username": "latte", "role": role},
					"token":         "tok-abc",
					"refresh_token": "refresh-xyz",
				},
			})
		default:
			t.Errorf("unexpected request to %s", r.URL.Path)
		}
	})
}

func TestLoginEstablishesSession(t *testing.T) {
	sess, st := newSession(t, loginHandler(t))

	res := sess.Login(context.Background(), api.Credentials{Email: "a@b.c", Password: "pw"})
	require.True(t, res.Success)

	assert.True(t, sess.IsAuthenticated())
	assert.Equal(t, "tok-abc", sess.Token())
	assert.Equal(t, "latte", sess.CurrentUser().Username)
	assert.False(t, sess.IsAdmin())

	tok, err := st.Get(storage.KeyToken)
	require.NoError(t, err)
	assert.Equal(t, "tok-abc", string(tok))

	rawUser, err := st.Get(storage.KeyUser)
	require.NoError(t, err)
	var u api.User
	require.NoError(t, json.Unmarshal(rawUser, &u))
	assert.Equal(t, "latte", u.Username)

	rt, err := st.Get(storage.KeyRefreshToken)
	require.NoError(t, err)
	assert.Equal(t, "refresh-xyz", string(rt))
}

func TestLoginFailureStaysAnonymous(t *testing.T) {
	sess, st := newSession(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": false,
			"message": "invalid credentials",
		})
	}))

	res := sess.Login(context.Background(), api.Credentials{Email: "a@b.c", Password: "nope"})
	assert.False(t, res.Success)
	assert.Contains(t, res.Message, "invalid credentials")
	assert.NotEmpty(t, res.Errors)

	assert.False(t, sess.IsAuthenticated())
	_, err := st.Get(storage.KeyToken)
	assert.ErrorIs(t, err, storage.ErrKeyNotFound)
}

func TestAdminLoginSetsRole(t *testing.T) {
	sess, _ := newSession(t, loginHandler(t))

	res := sess.AdminLogin(context.Background(), api.Credentials{Username: "boss", Password: "pw"})
	require.True(t, res.Success)
	assert.True(t, sess.IsAdmin())
}

func TestLogoutClearsEverything(t *testing.T) {
	sess, st := newSession(t, loginHandler(t))
	require.True(t, sess.Login(context.Background(), api.Credentials{Email: "a@b.c", Password: "pw"}).Success)

	sess.Logout()

	assert.False(t, sess.IsAuthenticated())
	assert.Empty(t, sess.Token())
	assert.Nil(t, sess.CurrentUser())
	for _, key := range []string{storage.KeyToken, storage.KeyUser, storage.KeyRefreshToken} {
		_, err := st.Get(key)
		assert.ErrorIs(t, err, storage.ErrKeyNotFound, key)
	}

	assert.False(t, sess.CheckAuthStatus(context.Background()),
		"nothing to rehydrate after a logout")
}

func TestSetAdminAuthFabricatesToken(t *testing.T) {
	// Any backend traffic fails the test: degraded mode is fully local.
	sess, st := newSession(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected request to %s", r.URL.Path)
	}))

	res := sess.SetAdminAuth(&api.User{ID: 99, Username: "boss", Role: api.RoleAdmin})
	require.True(t, res.Success)

	assert.True(t, sess.IsAuthenticated())
	assert.True(t, sess.IsAdmin())
	assert.True(t, IsFakeAdminToken(sess.Token()))

	tok, err := st.Get(storage.KeyToken)
	require.NoError(t, err)
	assert.True(t, IsFakeAdminToken(string(tok)))

	// The fabricated token skips verification entirely.
	assert.True(t, sess.CheckAuthStatus(context.Background()))
}

func TestCheckAuthStatusNoPersistedSession(t *testing.T) {
	sess, _ := newSession(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected request to %s", r.URL.Path)
	}))

	assert.False(t, sess.CheckAuthStatus(context.Background()))
}

func TestCheckAuthStatusInMemoryShortCircuit(t *testing.T) {
	var verifyCalls atomic.Int32
	sess, _ := newSession(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/login":
			loginHandler(t).ServeHTTP(w, r)
		case "/auth/verify-token":
			verifyCalls.Add(1)
			_ = json.NewEncoder(w).Encode(map[string]any{
				"success": true,
				"user":    map[string]any{"id": 1, "username": "latte", "role": "customer"},
			})
		}
	}))

	require.True(t, sess.Login(context.Background(), api.Credentials{Email: "a@b.c", Password: "pw"}).Success)

	assert.True(t, sess.CheckAuthStatus(context.Background()))
	assert.Equal(t, int32(0), verifyCalls.Load(), "a live in-memory session skips verification")
}

func TestCheckAuthStatusHydratesAndVerifies(t *testing.T) {
	st := storage.NewMemStore()
	require.NoError(t, st.Put(storage.KeyToken, []byte("persisted-tok")))
	require.NoError(t, st.Put(storage.KeyUser, []byte(`{"id":1,"username":"latte","role":"customer"}`)))

	var verifyCalls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth/verify-token", r.URL.Path)
		require.Equal(t, "Bearer persisted-tok", r.Header.Get("Authorization"))
		verifyCalls.Add(1)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"user":    map[string]any{"id": 1, "username": "latte-fresh", "role": "customer"},
		})
	}))
	t.Cleanup(srv.Close)

	sess := New(st, nil)
	sess.Bind(api.NewClient(srv.URL,
		api.WithTokenSource(sess.Token),
		api.WithUnauthorizedHook(sess.ForceLogout),
	))

	assert.True(t, sess.CheckAuthStatus(context.Background()))
	assert.Equal(t, int32(1), verifyCalls.Load())
	assert.Equal(t, "latte-fresh", sess.CurrentUser().Username, "verification refreshes the user")
	assert.True(t, sess.IsAuthenticated())
}

func TestCheckAuthStatusOptimisticOnNetworkFailure(t *testing.T) {
	st := storage.NewMemStore()
	require.NoError(t, st.Put(storage.KeyToken, []byte("persisted-tok")))
	require.NoError(t, st.Put(storage.KeyUser, []byte(`{"id":1,"username":"latte","role":"customer"}`)))

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // service unreachable

	sess := New(st, nil)
	sess.Bind(api.NewClient(srv.URL, api.WithTokenSource(sess.Token)))

	assert.True(t, sess.CheckAuthStatus(context.Background()),
		"an unreachable service must not drop a persisted session")
	assert.True(t, sess.IsAuthenticated())
}

func TestCheckAuthStatusRejectedTokenForcesLogout(t *testing.T) {
	st := storage.NewMemStore()
	require.NoError(t, st.Put(storage.KeyToken, []byte("revoked-tok")))
	require.NoError(t, st.Put(storage.KeyUser, []byte(`{"id":1,"username":"latte","role":"customer"}`)))

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]any{"success": false, "message": "token revoked"})
	}))
	t.Cleanup(srv.Close)

	sess := New(st, nil)
	sess.Bind(api.NewClient(srv.URL,
		api.WithTokenSource(sess.Token),
		api.WithUnauthorizedHook(sess.ForceLogout),
	))

	assert.False(t, sess.CheckAuthStatus(context.Background()))
	assert.False(t, sess.IsAuthenticated())
	_, err := st.Get(storage.KeyToken)
	assert.ErrorIs(t, err, storage.ErrKeyNotFound)
}

func TestCheckAuthStatusLatch(t *testing.T) {
	st := storage.NewMemStore()
	require.NoError(t, st.Put(storage.KeyToken, []byte("persisted-tok")))
	require.NoError(t, st.Put(storage.KeyUser, []byte(`{"id":1,"username":"latte","role":"customer"}`)))

	verifyStarted := make(chan struct{})
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(verifyStarted)
		<-release
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"user":    map[string]any{"id": 1, "username": "latte", "role": "customer"},
		})
	}))
	t.Cleanup(srv.Close)

	sess := New(st, nil)
	sess.Bind(api.NewClient(srv.URL, api.WithTokenSource(sess.Token)))

	first := make(chan bool, 1)
	go func() {
		first <- sess.CheckAuthStatus(context.Background())
	}()

	select {
	case <-verifyStarted:
	case <-time.After(2 * time.Second):
		t.Fatal("verification never started")
	}

	// A second check while verification is in flight bails out immediately.
	assert.False(t, sess.CheckAuthStatus(context.Background()))

	close(release)
	select {
	case ok := <-first:
		assert.True(t, ok)
	case <-time.After(2 * time.Second):
		t.Fatal("first check never finished")
	}
}

func TestRefreshAccessToken(t *testing.T) {
	sess, st := newSession(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/login":
			loginHandler(t).ServeHTTP(w, r)
		case "/auth/refresh":
			// The refresh token travels in the Authorization header, not
			// the access token and not a body.
			assert.Equal(t, "Bearer refresh-xyz", r.Header.Get("Authorization"))
			_ = json.NewEncoder(w).Encode(map[string]any{
				"success": true,
				"data":    map[string]any{"token": "tok-new"},
			})
		}
	}))

	require.True(t, sess.Login(context.Background(), api.Credentials{Email: "a@b.c", Password: "pw"}).Success)
	require.True(t, sess.RefreshAccessToken(context.Background()))

	assert.Equal(t, "tok-new", sess.Token())
	tok, err := st.Get(storage.KeyToken)
	require.NoError(t, err)
	assert.Equal(t, "tok-new", string(tok))
}

func TestRefreshAccessTokenFailureLogsOut(t *testing.T) {
	sess, _ := newSession(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/login":
			loginHandler(t).ServeHTTP(w, r)
		case "/auth/refresh":
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]any{"success": false, "message": "refresh token expired"})
		}
	}))

	require.True(t, sess.Login(context.Background(), api.Credentials{Email: "a@b.c", Password: "pw"}).Success)
	assert.False(t, sess.RefreshAccessToken(context.Background()))
	assert.False(t, sess.IsAuthenticated())
}

func TestRefreshAccessTokenWithoutRefreshToken(t *testing.T) {
	sess, _ := newSession(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected request to %s", r.URL.Path)
	}))

	assert.False(t, sess.RefreshAccessToken(context.Background()))
}

func TestRedirectPath(t *testing.T) {
	sess, _ := newSession(t, loginHandler(t))

	assert.Equal(t, DefaultRedirectPath, sess.RedirectPath())

	sess.SetRedirectPath("/admin/orders")
	assert.Equal(t, "/admin/orders", sess.RedirectPath())

	sess.ClearRedirectPath()
	assert.Equal(t, DefaultRedirectPath, sess.RedirectPath())
}

func TestUpdateProfileRefreshesUser(t *testing.T) {
	sess, st := newSession(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/login":
			loginHandler(t).ServeHTTP(w, r)
		case "/user/profile":
			require.Equal(t, http.MethodPut, r.Method)
			_ = json.NewEncoder(w).Encode(map[string]any{
				"success": true,
				"data":    map[string]any{"id": 1, "username": "latte", "role": "customer", "first_name": "Lat"},
			})
		}
	}))

	require.True(t, sess.Login(context.Background(), api.Credentials{Email: "a@b.c", Password: "pw"}).Success)

	first := "Lat"
	res := sess.UpdateProfile(context.Background(), api.ProfileUpdate{FirstName: &first})
	require.True(t, res.Success)
	assert.Equal(t, "Lat", sess.CurrentUser().FirstName)

	raw, err := st.Get(storage.KeyUser)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "Lat")
}
