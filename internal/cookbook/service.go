package cookbook

import (
	"fmt"
	"slices"
	"sync"

	"cookbook-go/internal/model"
)

// CookbookOptions tunes a CookbookService.
type CookbookOptions struct {
	// AsymmetricFriendship records an accepted friendship only on the
	// accepting side, as older installations did.
	AsymmetricFriendship bool
}

// CookbookService is the orchestration layer for recipes, friendships,
// shopping lists and notifications. The acting user is always the one
// logged in on the IdentityService.
//
// Every mutation builds the next version of the affected collections,
// writes them with one SetMany and only then swaps them in, so a failed
// write leaves the service unchanged.
type CookbookService struct {
	mu        sync.Mutex
	store     Store
	identity  *IdentityService
	logger    Logger
	clock     Clock
	idgen     IDGenerator
	symmetric bool

	recipes       []model.Recipe
	requests      []model.FriendRequest
	friends       map[string][]model.User // owner id -> friends
	shopping      map[string][]model.ShoppingListItem
	notifications []model.Notification
}

// NewCookbookService loads every collection from store.
func NewCookbookService(store Store, identity *IdentityService, logger Logger, clock Clock, idgen IDGenerator, opts CookbookOptions) (*CookbookService, error) {
	s := &CookbookService{
		store:     store,
		identity:  identity,
		logger:    logger,
		clock:     clock,
		idgen:     idgen,
		symmetric: !opts.AsymmetricFriendship,
	}

	records := []struct {
		key string
		dst any
	}{
		{KeyRecipes, &s.recipes},
		{KeyFriendRequests, &s.requests},
		{KeyFriends, &s.friends},
		{KeyShoppingList, &s.shopping},
		{KeyNotifications, &s.notifications},
	}
	for _, r := range records {
		if _, err := loadRecord(store, r.key, r.dst); err != nil {
			return nil, fmt.Errorf("loading %s: %w", r.key, err)
		}
	}
	if s.friends == nil {
		s.friends = map[string][]model.User{}
	}
	if s.shopping == nil {
		s.shopping = map[string][]model.ShoppingListItem{}
	}

	logger.Debug("cookbook loaded",
		"recipes", len(s.recipes),
		"requests", len(s.requests),
		"notifications", len(s.notifications))
	return s, nil
}

// sessionUser returns the logged-in user or ErrNotAuthenticated.
func (s *CookbookService) sessionUser() (model.User, error) {
	me, ok := s.identity.CurrentUser()
	if !ok {
		return model.User{}, ErrNotAuthenticated
	}
	return me, nil
}

// notify builds a notification addressed to userID.
func (s *CookbookService) notify(userID string, typ model.NotificationType, message, relatedID string) model.Notification {
	return model.Notification{
		ID:        s.idgen.New(),
		UserID:    userID,
		Type:      typ,
		Message:   message,
		RelatedID: relatedID,
		CreatedAt: s.clock.Now(),
	}
}

func (s *CookbookService) recipeIndex(id string) int {
	return slices.IndexFunc(s.recipes, func(r model.Recipe) bool { return r.ID == id })
}

// cloneRecipe returns a copy of r that shares no slices with it.
func cloneRecipe(r model.Recipe) model.Recipe {
	r.Ingredients = slices.Clone(r.Ingredients)
	r.Tags = slices.Clone(r.Tags)
	r.Likes = slices.Clone(r.Likes)
	r.Favorites = slices.Clone(r.Favorites)
	r.Comments = slices.Clone(r.Comments)
	return r
}

func cloneRecipes(rs []model.Recipe) []model.Recipe {
	out := make([]model.Recipe, len(rs))
	for i, r := range rs {
		out[i] = cloneRecipe(r)
	}
	return out
}

// toggle adds id to ids when absent and removes it otherwise.
// It never modifies ids and reports whether id is present afterwards.
func toggle(ids []string, id string) ([]string, bool) {
	if i := slices.Index(ids, id); i >= 0 {
		return slices.Delete(slices.Clone(ids), i, i+1), false
	}
	return append(slices.Clone(ids), id), true
}
