package cookbook

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"cookbook-go/internal/model"
)

const (
	// AdminUserID is the id of the seed administrator account.
	// The account is recreated at load if missing and can never be deleted.
	AdminUserID = "admin"

	DefaultAdminEmail    = "admin@cookbook.local"
	DefaultAdminPassword = "admin123"

	// MinPasswordLength is the shortest password accepted at registration.
	MinPasswordLength = 6
)

// account is a user record together with its credential. It never leaves this package.
type account struct {
	model.User
	PasswordHash string `json:"passwordHash"`
}

// IdentityOptions tunes an IdentityService.
type IdentityOptions struct {
	// Latency is an artificial delay applied to Login and Register.
	Latency time.Duration

	// BcryptCost is the bcrypt work factor. Zero means bcrypt.DefaultCost.
	BcryptCost int

	AdminEmail    string
	AdminPassword string
}

// ProfileUpdate lists the profile fields to change. Nil fields are left as they are.
type ProfileUpdate struct {
	DisplayName *string
	Bio         *string
}

// IdentityService owns the credential-bearing user table and the current session.
// Every mutation is written through to the Store before it becomes visible.
// It is safe for concurrent use.
type IdentityService struct {
	mu      sync.Mutex
	store   Store
	logger  Logger
	clock   Clock
	idgen   IDGenerator
	latency time.Duration
	cost    int

	users   []account
	session string // id of the logged-in user, "" when anonymous
}

// NewIdentityService loads the user table and session pointer from store.
// The seed admin account is inserted (or its role restored) before returning.
// A stored session whose user no longer exists is dropped.
func NewIdentityService(store Store, logger Logger, clock Clock, idgen IDGenerator, opts IdentityOptions) (*IdentityService, error) {
	cost := opts.BcryptCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	s := &IdentityService{
		store:   store,
		logger:  logger,
		clock:   clock,
		idgen:   idgen,
		latency: opts.Latency,
		cost:    cost,
	}

	if _, err := loadRecord(store, KeyUsers, &s.users); err != nil {
		return nil, fmt.Errorf("loading users: %w", err)
	}

	if err := s.ensureAdmin(opts); err != nil {
		return nil, fmt.Errorf("seeding admin account: %w", err)
	}

	var stored model.User
	found, err := loadRecord(store, KeyCurrentUser, &stored)
	if err != nil {
		return nil, fmt.Errorf("loading session: %w", err)
	}
	if found {
		if s.indexOf(stored.ID) >= 0 {
			s.session = stored.ID
		} else {
			if err := store.Delete(KeyCurrentUser); err != nil {
				return nil, fmt.Errorf("dropping stale session: %w", err)
			}
			logger.Info("stale session dropped", "user_id", stored.ID)
		}
	}

	return s, nil
}

// ensureAdmin makes sure the seed admin exists and still holds the admin role.
func (s *IdentityService) ensureAdmin(opts IdentityOptions) error {
	if i := s.indexOf(AdminUserID); i >= 0 {
		if s.users[i].Role == model.RoleAdmin {
			return nil
		}
		next := slices.Clone(s.users)
		next[i].Role = model.RoleAdmin
		if err := write(s.store, map[string]any{KeyUsers: next}); err != nil {
			return err
		}
		s.users = next
		s.logger.Warn("admin role restored", "user_id", AdminUserID)
		return nil
	}

	email := opts.AdminEmail
	if email == "" {
		email = DefaultAdminEmail
	}
	password := opts.AdminPassword
	if password == "" {
		password = DefaultAdminPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return fmt.Errorf("hashing admin password: %w", err)
	}

	admin := account{
		User: model.User{
			ID:          AdminUserID,
			Username:    "admin",
			DisplayName: "Administrator",
			Email:       email,
			CreatedAt:   s.clock.Now(),
			Role:        model.RoleAdmin,
			IsVerified:  true,
		},
		PasswordHash: string(hash),
	}
	next := append([]account{admin}, s.users...)
	if err := write(s.store, map[string]any{KeyUsers: next}); err != nil {
		return err
	}
	s.users = next
	s.logger.Info("admin account created", "email", email)
	return nil
}

// simulateLatency blocks for the configured delay or until ctx is done.
func (s *IdentityService) simulateLatency(ctx context.Context) error {
	if s.latency <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(s.latency)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Login authenticates by exact email and password match and starts a session.
// Any mismatch yields ErrInvalidCredentials; the previous session is left untouched.
func (s *IdentityService) Login(ctx context.Context, email, password string) (model.User, error) {
	if err := s.simulateLatency(ctx); err != nil {
		return model.User{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := slices.IndexFunc(s.users, func(a account) bool { return a.Email == email })
	if i < 0 || bcrypt.CompareHashAndPassword([]byte(s.users[i].PasswordHash), []byte(password)) != nil {
		s.logger.Warn("login rejected", "email", email)
		return model.User{}, ErrInvalidCredentials
	}

	user := s.users[i].User
	if err := write(s.store, map[string]any{KeyCurrentUser: user}); err != nil {
		return model.User{}, fmt.Errorf("saving session: %w", err)
	}
	s.session = user.ID
	s.logger.Info("logged in", "user_id", user.ID)
	return user, nil
}

// Register creates a user account and logs it in.
func (s *IdentityService) Register(ctx context.Context, username, email, password string) (model.User, error) {
	if err := s.simulateLatency(ctx); err != nil {
		return model.User{}, err
	}

	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if err := validateRegistration(username, email, password); err != nil {
		return model.User{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if slices.ContainsFunc(s.users, func(a account) bool { return a.Email == email }) {
		return model.User{}, ErrEmailTaken
	}
	if slices.ContainsFunc(s.users, func(a account) bool { return a.Username == username }) {
		return model.User{}, ErrUsernameTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return model.User{}, fmt.Errorf("hashing password: %w", err)
	}

	acc := account{
		User: model.User{
			ID:          s.idgen.New(),
			Username:    username,
			DisplayName: username,
			Email:       email,
			CreatedAt:   s.clock.Now(),
			Role:        model.RoleUser,
		},
		PasswordHash: string(hash),
	}
	next := append(slices.Clone(s.users), acc)
	if err := write(s.store, map[string]any{KeyUsers: next, KeyCurrentUser: acc.User}); err != nil {
		return model.User{}, fmt.Errorf("saving account: %w", err)
	}

	s.users = next
	s.session = acc.ID
	s.logger.Info("user registered", "user_id", acc.ID, "username", username)
	return acc.User, nil
}

func validateRegistration(username, email, password string) error {
	switch {
	case username == "":
		return fmt.Errorf("%w: username is required", ErrValidation)
	case email == "":
		return fmt.Errorf("%w: email is required", ErrValidation)
	case !strings.Contains(email, "@"):
		return fmt.Errorf("%w: email %q is malformed", ErrValidation, email)
	case len([]rune(password)) < MinPasswordLength:
		return fmt.Errorf("%w: password must be at least %d characters", ErrValidation, MinPasswordLength)
	}
	return nil
}

// Logout ends the session. Calling it without a session is a no-op.
func (s *IdentityService) Logout() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Delete(KeyCurrentUser); err != nil {
		return fmt.Errorf("clearing session: %w", err)
	}
	if s.session != "" {
		s.logger.Info("logged out", "user_id", s.session)
	}
	s.session = ""
	return nil
}

// CurrentUser returns the logged-in user.
func (s *IdentityService) CurrentUser() (model.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session == "" {
		return model.User{}, false
	}
	i := s.indexOf(s.session)
	if i < 0 {
		return model.User{}, false
	}
	return s.users[i].User, true
}

// UpdateProfile changes the display name and/or bio of the logged-in user.
// An empty display name falls back to the username.
func (s *IdentityService) UpdateProfile(update ProfileUpdate) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(s.session)
	if s.session == "" || i < 0 {
		return model.User{}, ErrNotAuthenticated
	}

	next := slices.Clone(s.users)
	acc := &next[i]
	if update.DisplayName != nil {
		acc.DisplayName = strings.TrimSpace(*update.DisplayName)
		if acc.DisplayName == "" {
			acc.DisplayName = acc.Username
		}
	}
	if update.Bio != nil {
		acc.Bio = strings.TrimSpace(*update.Bio)
	}

	if err := write(s.store, map[string]any{KeyUsers: next, KeyCurrentUser: acc.User}); err != nil {
		return model.User{}, fmt.Errorf("saving profile: %w", err)
	}
	s.users = next
	s.logger.Info("profile updated", "user_id", acc.ID)
	return acc.User, nil
}

// UpdateUserRole sets the role and verified flag of another user. Admin only.
func (s *IdentityService) UpdateUserRole(userID string, role model.Role, verified bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	me := s.indexOf(s.session)
	if s.session == "" || me < 0 {
		return ErrNotAuthenticated
	}
	if s.users[me].Role != model.RoleAdmin {
		s.logger.Warn("role change rejected", "caller", s.session, "target", userID)
		return ErrForbidden
	}
	if !role.Valid() {
		return fmt.Errorf("%w: unknown role %q", ErrValidation, role)
	}
	i := s.indexOf(userID)
	if i < 0 {
		return fmt.Errorf("user %s: %w", userID, ErrNotFound)
	}
	if userID == AdminUserID && role != model.RoleAdmin {
		return fmt.Errorf("demoting seed admin: %w", ErrProtectedAccount)
	}

	next := slices.Clone(s.users)
	next[i].Role = role
	next[i].IsVerified = verified
	if err := write(s.store, map[string]any{KeyUsers: next}); err != nil {
		return fmt.Errorf("saving role: %w", err)
	}
	s.users = next
	s.logger.Info("role updated", "user_id", userID, "role", role, "verified", verified)
	return nil
}

// AllUsers returns every account's public profile.
func (s *IdentityService) AllUsers() []model.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	users := make([]model.User, len(s.users))
	for i, a := range s.users {
		users[i] = a.User
	}
	return users
}

// User returns the public profile of the given account.
func (s *IdentityService) User(id string) (model.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return model.User{}, false
	}
	return s.users[i].User, true
}

// removeAccount deletes an account and writes extra records in the same SetMany,
// so that a cascading delete is stored all-or-nothing.
func (s *IdentityService) removeAccount(userID string, extra map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(userID)
	if i < 0 {
		return fmt.Errorf("user %s: %w", userID, ErrNotFound)
	}
	if userID == AdminUserID {
		return ErrProtectedAccount
	}

	next := slices.Delete(slices.Clone(s.users), i, i+1)
	records := maps.Clone(extra)
	if records == nil {
		records = map[string]any{}
	}
	records[KeyUsers] = next
	if err := write(s.store, records); err != nil {
		return err
	}
	s.users = next

	if s.session == userID {
		s.session = ""
		if err := s.store.Delete(KeyCurrentUser); err != nil {
			s.logger.Error("clearing session of deleted user", "error", err)
		}
	}
	return nil
}

func (s *IdentityService) indexOf(id string) int {
	if id == "" {
		return -1
	}
	return slices.IndexFunc(s.users, func(a account) bool { return a.ID == id })
}
