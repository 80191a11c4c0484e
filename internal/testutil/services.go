package testutil

import (
	"context"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"cookbook-go/internal/cookbook"
	"cookbook-go/internal/model"
)

// Admin credentials of the seed account created by NewTestServices.
const (
	AdminEmail    = cookbook.DefaultAdminEmail
	AdminPassword = cookbook.DefaultAdminPassword
)

// Services bundles an IdentityService and a CookbookService sharing one store.
type Services struct {
	Store    cookbook.Store
	Clock    *StubClock
	IDs      *StubIDGenerator
	Identity *cookbook.IdentityService
	Cookbook *cookbook.CookbookService
}

// ServicesOption adjusts how NewTestServices builds the services.
type ServicesOption func(*servicesConfig)

type servicesConfig struct {
	cookbook cookbook.CookbookOptions
}

// WithAsymmetricFriendship records accepted friendships on the accepting side only.
func WithAsymmetricFriendship() ServicesOption {
	return func(c *servicesConfig) { c.cookbook.AsymmetricFriendship = true }
}

// NewTestServices builds both services over s with a fixed clock, sequential ids,
// no login latency and the cheapest bcrypt cost.
func NewTestServices(t *testing.T, s cookbook.Store, opts ...ServicesOption) *Services {
	t.Helper()
	return OpenTestServices(t, s, FixedClock(), NewStubIDGenerator(), opts...)
}

// OpenTestServices is NewTestServices with an explicit clock and id generator,
// for tests that reopen services over the same store.
func OpenTestServices(t *testing.T, s cookbook.Store, clock *StubClock, ids *StubIDGenerator, opts ...ServicesOption) *Services {
	t.Helper()

	var cfg servicesConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	logger := cookbook.NewNopLogger()
	identity, err := cookbook.NewIdentityService(s, logger, clock, ids, cookbook.IdentityOptions{
		BcryptCost: bcrypt.MinCost,
	})
	if err != nil {
		t.Fatalf("NewIdentityService() error = %v", err)
	}
	cb, err := cookbook.NewCookbookService(s, identity, logger, clock, ids, cfg.cookbook)
	if err != nil {
		t.Fatalf("NewCookbookService() error = %v", err)
	}

	return &Services{Store: s, Clock: clock, IDs: ids, Identity: identity, Cookbook: cb}
}

// Password is the password Register gives every account.
func Password(username string) string {
	return "pw-" + username + "-secret"
}

// Register creates username (email <username>@example.com) and leaves it logged in.
func (s *Services) Register(t *testing.T, username string) model.User {
	t.Helper()
	u, err := s.Identity.Register(context.Background(), username, username+"@example.com", Password(username))
	if err != nil {
		t.Fatalf("Register(%s) error = %v", username, err)
	}
	return u
}

// LoginAs logs in a user created by Register.
func (s *Services) LoginAs(t *testing.T, username string) model.User {
	t.Helper()
	u, err := s.Identity.Login(context.Background(), username+"@example.com", Password(username))
	if err != nil {
		t.Fatalf("Login(%s) error = %v", username, err)
	}
	return u
}

// LoginAdmin logs in the seed admin account.
func (s *Services) LoginAdmin(t *testing.T) model.User {
	t.Helper()
	u, err := s.Identity.Login(context.Background(), AdminEmail, AdminPassword)
	if err != nil {
		t.Fatalf("Login(admin) error = %v", err)
	}
	return u
}
