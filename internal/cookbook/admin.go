package cookbook

import (
	"fmt"
	"slices"

	"cookbook-go/internal/model"
)

// DeleteUser removes an account together with everything that refers to it:
// recipes it authored, friend requests it sent or received, its friend list and
// its membership in other lists, its shopping list and notifications, and its
// likes and favorites. The whole cascade is stored as one write.
//
// Only admins may delete users. The seed admin and the caller's own account are protected.
func (s *CookbookService) DeleteUser(userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	me, err := s.sessionUser()
	if err != nil {
		return err
	}
	if !me.IsAdmin() {
		s.logger.Warn("user delete rejected", "caller", me.ID, "target", userID)
		return ErrForbidden
	}
	if userID == AdminUserID || userID == me.ID {
		return fmt.Errorf("deleting %s: %w", userID, ErrProtectedAccount)
	}
	if _, ok := s.identity.User(userID); !ok {
		return fmt.Errorf("user %s: %w", userID, ErrNotFound)
	}

	var recipes []model.Recipe
	for _, r := range s.recipes {
		if r.AuthorID == userID {
			continue
		}
		r = cloneRecipe(r)
		r.Likes = slices.DeleteFunc(r.Likes, func(id string) bool { return id == userID })
		r.Favorites = slices.DeleteFunc(r.Favorites, func(id string) bool { return id == userID })
		recipes = append(recipes, r)
	}

	requests := slices.DeleteFunc(slices.Clone(s.requests), func(r model.FriendRequest) bool {
		return r.FromUserID == userID || r.ToUserID == userID
	})

	friends := cloneFriends(s.friends)
	delete(friends, userID)
	for owner := range friends {
		removeFriend(friends, owner, userID)
	}

	shopping := cloneShopping(s.shopping)
	delete(shopping, userID)

	notifications := slices.DeleteFunc(slices.Clone(s.notifications), func(n model.Notification) bool {
		return n.UserID == userID
	})

	if err := s.identity.removeAccount(userID, map[string]any{
		KeyRecipes:        recipes,
		KeyFriendRequests: requests,
		KeyFriends:        friends,
		KeyShoppingList:   shopping,
		KeyNotifications:  notifications,
	}); err != nil {
		s.logger.Error("deleting user", "target", userID, "error", err)
		return fmt.Errorf("deleting user %s: %w", userID, err)
	}

	removed := len(s.recipes) - len(recipes)
	s.recipes = recipes
	s.requests = requests
	s.friends = friends
	s.shopping = shopping
	s.notifications = notifications

	s.logger.Info("user deleted", "target", userID, "caller", me.ID, "recipes_removed", removed)
	return nil
}
