package cmd

import (
	"context"
	"fmt"
	"sync"

	"github.com/felixgeelhaar/kopi/internal/api"
	"github.com/felixgeelhaar/kopi/internal/cart"
	"github.com/felixgeelhaar/kopi/internal/config"
	"github.com/felixgeelhaar/kopi/internal/errors"
	"github.com/felixgeelhaar/kopi/internal/guard"
	"github.com/felixgeelhaar/kopi/internal/log"
	"github.com/felixgeelhaar/kopi/internal/loyalty"
	"github.com/felixgeelhaar/kopi/internal/profile"
	"github.com/felixgeelhaar/kopi/internal/session"
	"github.com/felixgeelhaar/kopi/internal/storage"
	"github.com/felixgeelhaar/kopi/internal/theme"
)

// app wires the stores together: config feeds the client and storage,
// the session supplies the client's bearer token, and a 401 anywhere
// tears the session down through the client hook.
type app struct {
	cfg     config.Config
	store   storage.Store
	client  *api.Client
	session *session.Store
	cart    *cart.Store
	loyalty *loyalty.Store
	profile *profile.Store
	styles  theme.Theme
	logger  *log.Logger
}

var (
	appOnce   sync.Once
	sharedApp *app
	appErr    error
)

// getApp builds the shared application container on first use.
func getApp() (*app, error) {
	appOnce.Do(func() {
		sharedApp, appErr = newApp()
	})
	return sharedApp, appErr
}

// closeApp releases the state database after the command finishes.
func closeApp() {
	if sharedApp != nil {
		_ = sharedApp.store.Close()
	}
}

func newApp() (*app, error) {
	logCfg := log.DefaultConfig()
	if verbose {
		logCfg = log.VerboseConfig()
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if apiURLFlag != "" {
		cfg.BaseURL = apiURLFlag
	}
	if !verbose && cfg.LogLevel != "" {
		logCfg.Level = log.ParseLevel(cfg.LogLevel)
	}

	logger := log.New(logCfg)
	log.SetDefaultLogger(logger)

	store, err := storage.OpenBolt(cfg.StatePath)
	if err != nil {
		return nil, err
	}

	sess := session.New(store, logger)
	client := api.NewClient(cfg.BaseURL,
		api.WithTimeout(cfg.Timeout()),
		api.WithTokenSource(sess.Token),
		api.WithUnauthorizedHook(sess.ForceLogout),
		api.WithLogger(logger),
	)
	sess.Bind(client)

	cartStore := cart.New(store, logger)
	cartStore.Load()

	return &app{
		cfg:     cfg,
		store:   store,
		client:  client,
		session: sess,
		cart:    cartStore,
		loyalty: loyalty.New(client),
		profile: profile.New(client),
		styles:  theme.Load(store),
		logger:  logger,
	}, nil
}

// requireAuth re-establishes the session and fails when nobody is signed in.
func (a *app) requireAuth(ctx context.Context) error {
	if a.session.CheckAuthStatus(ctx) {
		return nil
	}
	return errors.NewAuthRequiredError()
}

// requireAdmin consults the navigation guard for the back office.
func (a *app) requireAdmin(ctx context.Context) error {
	d := guard.EvaluatePath(ctx, "/admin", a.session)
	if d.Allow {
		return nil
	}
	if d.Redirect == "/admin/login" {
		return errors.NewAuthRequiredError().
			WithSuggestion("Run 'kopi admin login' to sign in to the back office")
	}
	return errors.NewAdminRequiredError()
}

func (a *app) printSuccess(msg string) {
	fmt.Println(a.styles.Success.Render(msg))
}

func (a *app) printMuted(msg string) {
	fmt.Println(a.styles.Muted.Render(msg))
}

// resultErr converts a failed store Result into an error for cobra.
func resultErr(res session.Result) error {
	if res.Success {
		return nil
	}
	return fmt.Errorf("%s", res.Message)
}
