package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"cookbook-go/internal/config"
	"cookbook-go/internal/cookbook"
	"cookbook-go/internal/encryption"
	"cookbook-go/internal/model"
	"cookbook-go/internal/store"
)

// ErrNoBackupSupport is returned by BackupDatabase for backends that cannot snapshot themselves.
var ErrNoBackupSupport = errors.New("storage backend does not support backups")

// Options adjusts how NewCookbookApp wires the application.
type Options struct {
	// Passphrase unlocks the private key when encryption is enabled.
	// It is only called when the configured encryptor needs it.
	Passphrase func() (string, error)

	// Verbose copies log lines to stderr.
	Verbose bool
}

// CookbookApp is the application layer between the CLI and the services.
// It constructs the store, the encryptor and both services from config and
// records the outcome of the CLI operation in the log on Close.
type CookbookApp struct {
	cfg      *config.Config
	store    cookbook.Store
	identity *cookbook.IdentityService
	cookbook *cookbook.CookbookService
	views    *cookbook.ViewGuard
	logger   cookbook.Logger
	op       *Operation
	logFile  *os.File
}

// NewCookbookApp creates a fully wired CookbookApp from the given config.
// operation names the CLI command being run (e.g. "AddRecipe", "Login").
// The caller must call Close when done.
func NewCookbookApp(ctx context.Context, cfg *config.Config, operation string, opts Options) (*CookbookApp, error) {
	op := NewOperation(operation, time.Now())
	l, logFile, err := newLogger(cfg.LogDir, op.ID, opts.Verbose)
	if err != nil {
		return nil, fmt.Errorf("creating logger: %w", err)
	}
	logger := &slogAdapter{l: l}

	closeLog := func() {
		if logFile != nil {
			logFile.Close()
		}
	}

	st, err := newStore(ctx, cfg, logger, opts)
	if err != nil {
		closeLog()
		return nil, err
	}

	identity, err := cookbook.NewIdentityService(st, logger, cookbook.RealClock{}, cookbook.UUIDGenerator{}, cookbook.IdentityOptions{
		Latency:       time.Duration(cfg.Identity.LatencyMS) * time.Millisecond,
		BcryptCost:    cfg.Identity.BcryptCost,
		AdminEmail:    cfg.Identity.AdminEmail,
		AdminPassword: cfg.Identity.AdminPassword,
	})
	if err != nil {
		st.Close()
		closeLog()
		return nil, fmt.Errorf("loading accounts: %w", err)
	}

	svc, err := cookbook.NewCookbookService(st, identity, logger, cookbook.RealClock{}, cookbook.UUIDGenerator{}, cookbook.CookbookOptions{
		AsymmetricFriendship: cfg.Social.AsymmetricFriendship,
	})
	if err != nil {
		st.Close()
		closeLog()
		return nil, fmt.Errorf("loading cookbook: %w", err)
	}

	logger.Debug("operation started", "operation", op.Name, "storage", cfg.Storage.Type, "encryption", cfg.Encryption.Type)
	return &CookbookApp{
		cfg:      cfg,
		store:    st,
		identity: identity,
		cookbook: svc,
		views:    cookbook.NewViewGuard(),
		logger:   logger,
		op:       op,
		logFile:  logFile,
	}, nil
}

// newStore opens the configured backend and wraps it for encryption at rest when enabled.
func newStore(ctx context.Context, cfg *config.Config, logger cookbook.Logger, opts Options) (cookbook.Store, error) {
	enc, err := encryption.NewEncryptorFromConfig(cfg.Encryption)
	if err != nil {
		return nil, fmt.Errorf("creating encryptor: %w", err)
	}

	var dec cookbook.DecryptionContext
	if enc != nil {
		if !enc.IsConfigured() {
			return nil, fmt.Errorf("encryption keys not found: run `cookbook config init` first")
		}
		if opts.Passphrase == nil {
			return nil, fmt.Errorf("encryption is enabled but no passphrase source is available")
		}
		passphrase, err := opts.Passphrase()
		if err != nil {
			return nil, fmt.Errorf("reading passphrase: %w", err)
		}
		dec, err = enc.Unlock(passphrase)
		if err != nil {
			return nil, fmt.Errorf("unlocking keys: %w", err)
		}
	}

	st, err := store.NewStoreFromConfig(ctx, cfg.Storage, logger)
	if err != nil {
		return nil, fmt.Errorf("opening storage: %w", err)
	}
	if enc == nil {
		return st, nil
	}
	return encryption.NewEncryptedStore(st, enc, dec), nil
}

// Identity returns the account and session service.
func (a *CookbookApp) Identity() *cookbook.IdentityService {
	return a.identity
}

// Cookbook returns the recipe, friendship, shopping list and notification service.
func (a *CookbookApp) Cookbook() *cookbook.CookbookService {
	return a.cookbook
}

// Config returns the configuration the app was built from.
func (a *CookbookApp) Config() *config.Config {
	return a.cfg
}

// ShowRecipe returns a recipe, counting the view once per app lifetime.
func (a *CookbookApp) ShowRecipe(id string) (model.Recipe, error) {
	if _, err := a.views.CountView(a.cookbook, id); err != nil {
		return model.Recipe{}, err
	}
	r, ok := a.cookbook.RecipeByID(id)
	if !ok {
		return model.Recipe{}, fmt.Errorf("recipe %s: %w", id, cookbook.ErrNotFound)
	}
	return r, nil
}

// BackupDatabase writes a consistent snapshot of the storage to destPath.
// Only the sqlite backend supports it. Encrypted values stay encrypted in the snapshot.
func (a *CookbookApp) BackupDatabase(destPath string) error {
	type backuper interface {
		BackupTo(destPath string) error
	}
	type unwrapper interface {
		Unwrap() cookbook.Store
	}

	st := a.store
	for {
		if b, ok := st.(backuper); ok {
			return b.BackupTo(destPath)
		}
		u, ok := st.(unwrapper)
		if !ok {
			return fmt.Errorf("%s: %w", a.cfg.Storage.Type, ErrNoBackupSupport)
		}
		st = u.Unwrap()
	}
}

// Record marks the operation as failed when err is non-nil and returns err unchanged.
func (a *CookbookApp) Record(err error) error {
	if err != nil {
		a.op.Fail(err)
	}
	return err
}

// Close logs the outcome of the operation and closes the store and the log file.
func (a *CookbookApp) Close() error {
	var firstErr error

	a.op.Finish(time.Now())
	if a.op.Status == StatusError {
		a.logger.Warn("operation finished", "operation", a.op.Name, "status", a.op.Status, "duration", a.op.Duration(), "error", a.op.Err)
	} else {
		a.logger.Info("operation finished", "operation", a.op.Name, "status", a.op.Status, "duration", a.op.Duration())
	}

	if err := a.store.Close(); err != nil {
		firstErr = fmt.Errorf("closing storage: %w", err)
	}

	if a.logFile != nil {
		a.logFile.Close()
	}

	return firstErr
}
