package firebase

import (
	"context"
	"fmt"
	"sync"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"
)

// Config selects the Firebase project and credentials. Both fields may be
// empty, in which case Application Default Credentials decide.
type Config struct {
	ProjectID       string
	CredentialsFile string
}

// App is the process-wide Firebase Admin app. Nothing is created until the
// first handler asks for a client, and then exactly once: an initialization
// error is sticky for the life of the process.
type App struct {
	cfg  Config
	opts []option.ClientOption

	once sync.Once
	app  *firebase.App
	err  error

	messagingOnce sync.Once
	messaging     *messaging.Client
	messagingErr  error

	authOnce sync.Once
	auth     *auth.Client
	authErr  error
}

// NewApp returns an uninitialized App. Extra client options are appended to
// the ones derived from cfg.
func NewApp(cfg Config, opts ...option.ClientOption) *App {
	return &App{cfg: cfg, opts: opts}
}

// EnsureInitialized creates the underlying Firebase app on first call and
// returns the same app (or the same error) on every later call.
func (a *App) EnsureInitialized(ctx context.Context) (*firebase.App, error) {
	a.once.Do(func() {
		var conf *firebase.Config
		if a.cfg.ProjectID != "" {
			conf = &firebase.Config{ProjectID: a.cfg.ProjectID}
		}
		opts := make([]option.ClientOption, 0, len(a.opts)+1)
		if a.cfg.CredentialsFile != "" {
			opts = append(opts, option.WithCredentialsFile(a.cfg.CredentialsFile))
		}
		opts = append(opts, a.opts...)
		// The first request's deadline must not leak into the shared app.
		a.app, a.err = firebase.NewApp(context.WithoutCancel(ctx), conf, opts...)
		if a.err != nil {
			a.err = fmt.Errorf("initialize firebase app: %w", a.err)
		}
	})
	return a.app, a.err
}

// Messaging returns the shared Cloud Messaging client.
func (a *App) Messaging(ctx context.Context) (*messaging.Client, error) {
	a.messagingOnce.Do(func() {
		app, err := a.EnsureInitialized(ctx)
		if err != nil {
			a.messagingErr = err
			return
		}
		a.messaging, a.messagingErr = app.Messaging(context.WithoutCancel(ctx))
		if a.messagingErr != nil {
			a.messagingErr = fmt.Errorf("firebase messaging client: %w", a.messagingErr)
		}
	})
	return a.messaging, a.messagingErr
}

// Auth returns the shared Firebase Auth client.
func (a *App) Auth(ctx context.Context) (*auth.Client, error) {
	a.authOnce.Do(func() {
		app, err := a.EnsureInitialized(ctx)
		if err != nil {
			a.authErr = err
			return
		}
		a.auth, a.authErr = app.Auth(context.WithoutCancel(ctx))
		if a.authErr != nil {
			a.authErr = fmt.Errorf("firebase auth client: %w", a.authErr)
		}
	})
	return a.auth, a.authErr
}
