package app

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"sealchat/internal/crypto"
	"sealchat/internal/domain"
	contactsvc "sealchat/internal/services/contact"
	envelopesvc "sealchat/internal/services/envelope"
	groupsvc "sealchat/internal/services/group"
	identitysvc "sealchat/internal/services/identity"
	verifysvc "sealchat/internal/services/verify"
	"sealchat/internal/store"
)

// App bundles the session, store and protocol services for the CLI.
type App struct {
	Config  Config
	Profile Profile
	Log     *slog.Logger

	Session *domain.Session
	Store   domain.KeyValueStore

	Identity  domain.IdentityService
	Envelopes domain.EnvelopeService
	Groups    domain.GroupService
	GroupMsgs domain.GroupMessageService
	Contacts  domain.ContactService
	Verify    domain.VerificationService
}

// New constructs the dependency graph from cfg: the crypto suite with the
// deployed parameters, the file-backed store under cfg.Home, and the
// services on top. The session starts empty; commands attach the identity
// through LoadIdentity.
func New(cfg Config) (*App, error) {
	suite, err := crypto.NewSuite(crypto.DefaultParams())
	if err != nil {
		return nil, fmt.Errorf("build crypto suite: %w", err)
	}
	log := newLogger(cfg.Verbose)
	fs := store.NewFileStore(cfg.Home)

	profile := LoadProfile(cfg.Home)
	if cfg.DisplayName != "" {
		profile.DisplayName = cfg.DisplayName
	}

	return &App{
		Config:    cfg,
		Profile:   profile,
		Log:       log,
		Session:   domain.NewSession(),
		Store:     fs,
		Identity:  identitysvc.New(suite, fs, log),
		Envelopes: envelopesvc.New(suite),
		Groups:    groupsvc.New(suite, fs, log),
		GroupMsgs: groupsvc.NewMessageCodec(suite),
		Contacts:  contactsvc.New(suite, fs, log),
		Verify:    verifysvc.New(suite),
	}, nil
}

// LoadIdentity returns the active identity, reading it from the store on
// first use and caching it in the session after that.
func (a *App) LoadIdentity() (*domain.Identity, error) {
	if id, err := a.Session.Identity(); err == nil {
		return id, nil
	}
	id, err := a.Identity.Load()
	if err != nil {
		return nil, err
	}
	a.Session.Attach(id)
	return id, nil
}

// Logout erases the persisted identity and resets the session, dropping
// every cached group key. With purge the contact keyring and group records
// are erased too; the escrow blob is left alone so the account stays
// recoverable.
func (a *App) Logout(purge bool) error {
	if err := a.Identity.Clear(); err != nil {
		return err
	}
	if purge {
		for _, key := range []string{contactsvc.StoreKey, groupsvc.StoreKey} {
			if err := a.Store.Remove(key); err != nil {
				return err
			}
		}
	}
	a.Session.Reset()
	a.Log.Debug("logged out", "purged", purge)
	return nil
}

// newLogger returns a debug JSON logger on stderr when verbose, a discard
// logger otherwise. Log output never includes key material.
func newLogger(verbose bool) *slog.Logger {
	if !verbose {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
}
