package guard

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/kopi/internal/api"
	"github.com/felixgeelhaar/kopi/internal/session"
	"github.com/felixgeelhaar/kopi/internal/storage"
)

// anonymousSession has no token anywhere; its client reaches no server.
func anonymousSession(t *testing.T) *session.Store {
	t.Helper()
	sess := session.New(storage.NewMemStore(), nil)
	sess.Bind(api.NewClient("http://127.0.0.1:0", api.WithTokenSource(sess.Token)))
	return sess
}

func signedInSession(t *testing.T, role string) *session.Store {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"data": map[string]any{
				"user":  map[string]any{"id": 1, "username": "u", "role": role},
				"token": "tok",
			},
		})
	}))
	t.Cleanup(srv.Close)

	sess := session.New(storage.NewMemStore(), nil)
	sess.Bind(api.NewClient(srv.URL, api.WithTokenSource(sess.Token)))
	require.True(t, sess.Login(context.Background(), api.Credentials{Email: "u@x", Password: "p"}).Success)
	return sess
}

func TestLookup(t *testing.T) {
	assert.Equal(t, "menu", Lookup("/menu").Name)
	assert.True(t, Lookup("/admin/orders").RequiresAdmin)
	assert.True(t, Lookup("/auth/login").GuestOnly)
	assert.Equal(t, "not-found", Lookup("/no/such/page").Name)
}

func TestAdminGateRedirectsAnonymous(t *testing.T) {
	sess := anonymousSession(t)

	d := EvaluatePath(context.Background(), "/admin/orders", sess)
	assert.False(t, d.Allow)
	assert.Equal(t, "/admin/login", d.Redirect)
	assert.Equal(t, "/admin/orders", d.SavedPath)
	assert.Equal(t, "/admin/orders", sess.RedirectPath(), "the destination is recorded for replay")
}

func TestAdminGateHydratesPersistedSession(t *testing.T) {
	// A fake-admin token in storage hydrates without any backend call.
	st := storage.NewMemStore()
	require.NoError(t, st.Put(storage.KeyToken, []byte("fake-admin-token-123")))
	require.NoError(t, st.Put(storage.KeyUser, []byte(`{"id":9,"username":"boss","role":"admin"}`)))

	sess := session.New(st, nil)
	sess.Bind(api.NewClient("http://127.0.0.1:0", api.WithTokenSource(sess.Token)))

	d := EvaluatePath(context.Background(), "/admin/orders", sess)
	assert.True(t, d.Allow)
}

func TestAdminGateRejectsNonAdmin(t *testing.T) {
	sess := signedInSession(t, "customer")

	d := EvaluatePath(context.Background(), "/admin/menu", sess)
	assert.False(t, d.Allow)
	assert.Equal(t, "/menu", d.Redirect)
}

func TestAdminLoginRedirectsSignedInAdmin(t *testing.T) {
	sess := signedInSession(t, api.RoleAdmin)

	d := EvaluatePath(context.Background(), "/admin/login", sess)
	assert.Equal(t, "/admin", d.Redirect)
}

func TestAdminLoginAllowsAnonymous(t *testing.T) {
	d := EvaluatePath(context.Background(), "/admin/login", anonymousSession(t))
	assert.True(t, d.Allow)
}

func TestGuestOnlyRedirectsSignedInCustomer(t *testing.T) {
	sess := signedInSession(t, "customer")

	d := EvaluatePath(context.Background(), "/auth/login", sess)
	assert.Equal(t, "/menu", d.Redirect)
}

func TestGuestOnlyAllowsAnonymous(t *testing.T) {
	d := EvaluatePath(context.Background(), "/auth/register", anonymousSession(t))
	assert.True(t, d.Allow)
}

func TestGuestOnlyDoesNotTrapAdmin(t *testing.T) {
	// An admin visiting a guest-only page is not bounced to the customer
	// menu; the guest-only rule only targets customer sessions.
	sess := signedInSession(t, api.RoleAdmin)

	d := EvaluatePath(context.Background(), "/auth/login", sess)
	assert.True(t, d.Allow)
}

func TestRuleOrderAdminGateBeforeAdminLoginRedirect(t *testing.T) {
	// A signed-in admin hitting an admin-gated page is allowed by rule 1
	// and never reaches the admin-login redirect in rule 2.
	sess := signedInSession(t, api.RoleAdmin)

	d := EvaluatePath(context.Background(), "/admin", sess)
	assert.True(t, d.Allow)
	assert.Empty(t, d.Redirect)
}

func TestPlainRoutesAllowEveryone(t *testing.T) {
	for _, path := range []string{"/menu", "/cart", "/user/profile", "/no/such/page"} {
		d := EvaluatePath(context.Background(), path, anonymousSession(t))
		assert.True(t, d.Allow, path)
	}
}
