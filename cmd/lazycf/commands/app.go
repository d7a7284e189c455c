package commands

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"lazycf/internal/components/chrono"
	"lazycf/internal/components/telemetry"
	"lazycf/internal/cookiestore"
	"lazycf/internal/scrapers/codeforces"
	"lazycf/internal/secrets"
	"lazycf/internal/state"
	"lazycf/lib/restyutil"
	libtelemetry "lazycf/lib/telemetry"
)

const (
	envHandle   = "LAZYCF_HANDLE"
	envPassword = "LAZYCF_PASSWORD"
)

// App holds everything a command needs, it is built once per invocation.
type App struct {
	Config    Config
	Tel       telemetry.API
	Client    *codeforces.Client
	Auth      *codeforces.Authenticator
	Submitter *codeforces.Submitter

	db   *sql.DB
	otel libtelemetry.Telemetry
}

type appOptions struct {
	configPath string
	verbose    bool
	dumpDir    string
}

func newApp(ctx context.Context, opts appOptions) (*App, error) {
	tel := telemetry.InitSlog(opts.verbose)

	config, err := loadConfig(opts.configPath, userDataDir())
	if err != nil {
		return nil, err
	}

	otel, err := libtelemetry.Setup(ctx, "lazycf", config.Telemetry)
	if err != nil {
		// telemetry export is optional, the cli works without it
		tel.ReportWarning("app.telemetry", err)
	}

	var dump restyutil.InstrumentOutput
	if opts.dumpDir != "" {
		output, err := restyutil.NewFilesystemOutput(opts.dumpDir)
		if err != nil {
			return nil, fmt.Errorf("http dump: %w", err)
		}
		dump = output
	}

	jar, err := cookiestore.New(chrono.NewStandardTime(), tel)
	if err != nil {
		return nil, err
	}
	client, err := codeforces.NewClient(codeforces.ClientOptions{
		BaseUrl:   config.BaseUrl,
		Jar:       jar,
		RateLimit: config.RateLimit,
		Dump:      dump,
	}, tel)
	if err != nil {
		return nil, err
	}

	db, err := config.StateDb.OpenDB()
	if err != nil {
		return nil, fmt.Errorf("open state: %w", err)
	}
	stateStore, err := state.Open(ctx, db, tel)
	if err != nil {
		db.Close()
		return nil, err
	}

	secretStore, err := secrets.NewChainStore(
		secrets.NewFileStore(config.SecretsDir),
		secrets.NewEnvStore(map[string]string{
			codeforces.SecretHandle:   envHandle,
			codeforces.SecretPassword: envPassword,
		}),
	)
	if err != nil {
		db.Close()
		return nil, err
	}

	auth := codeforces.NewAuthenticator(client, codeforces.NewSession(jar), secretStore, stateStore, tel)
	submitter := codeforces.NewSubmitter(client, auth, chrono.NewStandardTimer(), tel)

	return &App{
		Config:    config,
		Tel:       tel,
		Client:    client,
		Auth:      auth,
		Submitter: submitter,
		db:        db,
		otel:      otel,
	}, nil
}

// restore brings back the session of the last login if there is one, a
// failure only means the user is not logged in.
func (a *App) restore(ctx context.Context) {
	handle, err := a.Auth.StoredHandle(ctx)
	if err != nil || handle == "" {
		return
	}
	err = a.Auth.RestoreSession(ctx, handle)
	if err != nil {
		slog.Debug("session not restored", "handle", handle, "err", err)
	}
}

// requireLogin fails with a hint when the session could not be restored.
func (a *App) requireLogin() error {
	if a.Auth.Session().Authenticated() {
		return nil
	}
	return fmt.Errorf("%w, run `lazycf login` first", codeforces.ErrNotLoggedIn)
}

func (a *App) Close(ctx context.Context) error {
	return errors.Join(a.db.Close(), a.otel.Shutdown(ctx))
}

type appKey struct{}

func withApp(ctx context.Context, app *App) context.Context {
	return context.WithValue(ctx, appKey{}, app)
}

func appFrom(ctx context.Context) *App {
	return ctx.Value(appKey{}).(*App)
}
