// Package guard decides whether a navigation target is reachable for the
// current session. It is a pure decision layer: commands ask before opening
// an admin or auth flow, and act on the returned redirect.
package guard

import (
	"context"

	"github.com/felixgeelhaar/kopi/internal/session"
)

// Route is one guarded destination.
type Route struct {
	Path          string
	Name          string
	RequiresAdmin bool
	GuestOnly     bool
}

// The route table mirrors the application's navigable surface.
var routes = []Route{
	{Path: "/", Name: "home"},
	{Path: "/menu", Name: "menu"},
	{Path: "/cart", Name: "cart"},
	{Path: "/checkout-success", Name: "checkout-success"},
	{Path: "/auth/login", Name: "login", GuestOnly: true},
	{Path: "/auth/register", Name: "register", GuestOnly: true},
	{Path: "/user/profile", Name: "profile"},
	{Path: "/user/member", Name: "member"},
	{Path: "/user/orders", Name: "orders"},
	{Path: "/admin/login", Name: "admin-login"},
	{Path: "/admin", Name: "admin-dashboard", RequiresAdmin: true},
	{Path: "/admin/menu", Name: "admin-menu", RequiresAdmin: true},
	{Path: "/admin/orders", Name: "admin-orders", RequiresAdmin: true},
	{Path: "/admin/profile", Name: "admin-profile", RequiresAdmin: true},
	{Path: "/admin/settings", Name: "admin-settings", RequiresAdmin: true},
}

// notFound is the catch-all for unknown paths.
var notFound = Route{Path: "/:pathMatch(.*)*", Name: "not-found"}

// Lookup resolves a path to its route. Unknown paths map to not-found,
// which carries no access flags.
func Lookup(path string) Route {
	for _, r := range routes {
		if r.Path == path {
			return r
		}
	}
	return notFound
}

// Routes returns the full route table.
func Routes() []Route {
	return append([]Route(nil), routes...)
}

// Decision is the guard's verdict for one navigation.
type Decision struct {
	Allow    bool
	Redirect string

	// SavedPath is set when the intended destination was recorded for
	// replay after sign-in.
	SavedPath string
}

func allow() Decision {
	return Decision{Allow: true}
}

func redirect(target string) Decision {
	return Decision{Redirect: target}
}

// Evaluate applies the access rules for a route against the session.
// The admin gate runs first: an expired admin session heading anywhere in
// the back office is sent to admin login before any other rule can fire.
func Evaluate(ctx context.Context, route Route, sess *session.Store) Decision {
	if route.RequiresAdmin {
		if !sess.IsAuthenticated() {
			sess.CheckAuthStatus(ctx)
		}
		if !sess.IsAuthenticated() {
			sess.SetRedirectPath(route.Path)
			return Decision{Redirect: "/admin/login", SavedPath: route.Path}
		}
		if !sess.IsAdmin() {
			return redirect("/menu")
		}
		return allow()
	}

	if route.Name == "admin-login" && sess.IsAuthenticated() && sess.IsAdmin() {
		return redirect("/admin")
	}

	if route.GuestOnly && sess.IsAuthenticated() && !sess.IsAdmin() {
		return redirect("/menu")
	}

	return allow()
}

// EvaluatePath is Evaluate over a raw path.
func EvaluatePath(ctx context.Context, path string, sess *session.Store) Decision {
	return Evaluate(ctx, Lookup(path), sess)
}
