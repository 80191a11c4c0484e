package cookbook

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"cookbook-go/internal/model"
)

// SendFriendRequest proposes friendship from the logged-in user to toUserID
// and notifies the recipient.
func (s *CookbookService) SendFriendRequest(toUserID string) (model.FriendRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	me, err := s.sessionUser()
	if err != nil {
		return model.FriendRequest{}, err
	}
	if toUserID == me.ID {
		return model.FriendRequest{}, fmt.Errorf("%w: cannot befriend yourself", ErrValidation)
	}
	to, ok := s.identity.User(toUserID)
	if !ok {
		return model.FriendRequest{}, fmt.Errorf("user %s: %w", toUserID, ErrNotFound)
	}
	if hasFriend(s.friends[me.ID], to.ID) || hasFriend(s.friends[to.ID], me.ID) {
		return model.FriendRequest{}, ErrAlreadyFriends
	}
	if slices.ContainsFunc(s.requests, func(r model.FriendRequest) bool {
		return r.Status == model.RequestPending && pairOf(r, me.ID, to.ID)
	}) {
		s.logger.Warn("duplicate friend request", "from", me.ID, "to", to.ID)
		return model.FriendRequest{}, ErrDuplicateRequest
	}

	req := model.FriendRequest{
		ID:           s.idgen.New(),
		FromUserID:   me.ID,
		FromUsername: me.Username,
		ToUserID:     to.ID,
		Status:       model.RequestPending,
		CreatedAt:    s.clock.Now(),
	}
	note := s.notify(to.ID, model.NotificationFriendRequest,
		fmt.Sprintf("%s sent you a friend request", me.Username), req.ID)

	requests := append(slices.Clone(s.requests), req)
	notifications := append(slices.Clone(s.notifications), note)
	if err := write(s.store, map[string]any{
		KeyFriendRequests: requests,
		KeyNotifications:  notifications,
	}); err != nil {
		s.logger.Error("saving friend request", "error", err)
		return model.FriendRequest{}, fmt.Errorf("saving friend request: %w", err)
	}
	s.requests = requests
	s.notifications = notifications

	s.logger.Info("friend request sent", "request_id", req.ID, "from", me.ID, "to", to.ID)
	return req, nil
}

// AcceptFriendRequest accepts a pending request addressed to the logged-in user.
// The requester is added to the accepter's friends and, unless friendship is
// asymmetric, the accepter to the requester's friends.
func (s *CookbookService) AcceptFriendRequest(requestID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	me, i, err := s.pendingRequestFor(requestID)
	if err != nil {
		return err
	}

	requests := slices.Clone(s.requests)
	requests[i].Status = model.RequestAccepted
	req := requests[i]

	friends := cloneFriends(s.friends)
	notifications := s.notifications
	if requester, ok := s.identity.User(req.FromUserID); ok {
		addFriend(friends, me.ID, requester)
		if s.symmetric {
			addFriend(friends, requester.ID, me)
		}
		note := s.notify(requester.ID, model.NotificationFriendAccepted,
			fmt.Sprintf("%s accepted your friend request", me.Username), req.ID)
		notifications = append(slices.Clone(s.notifications), note)
	}

	if err := write(s.store, map[string]any{
		KeyFriendRequests: requests,
		KeyFriends:        friends,
		KeyNotifications:  notifications,
	}); err != nil {
		s.logger.Error("accepting friend request", "error", err)
		return fmt.Errorf("accepting friend request: %w", err)
	}
	s.requests = requests
	s.friends = friends
	s.notifications = notifications

	s.logger.Info("friend request accepted", "request_id", requestID, "by", me.ID)
	return nil
}

// RejectFriendRequest rejects a pending request addressed to the logged-in user.
func (s *CookbookService) RejectFriendRequest(requestID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	me, i, err := s.pendingRequestFor(requestID)
	if err != nil {
		return err
	}

	requests := slices.Clone(s.requests)
	requests[i].Status = model.RequestRejected
	if err := write(s.store, map[string]any{KeyFriendRequests: requests}); err != nil {
		s.logger.Error("rejecting friend request", "error", err)
		return fmt.Errorf("rejecting friend request: %w", err)
	}
	s.requests = requests

	s.logger.Info("friend request rejected", "request_id", requestID, "by", me.ID)
	return nil
}

// pendingRequestFor finds a request the logged-in user may still answer.
func (s *CookbookService) pendingRequestFor(requestID string) (model.User, int, error) {
	me, err := s.sessionUser()
	if err != nil {
		return model.User{}, -1, err
	}
	i := slices.IndexFunc(s.requests, func(r model.FriendRequest) bool { return r.ID == requestID })
	if i < 0 {
		return model.User{}, -1, fmt.Errorf("friend request %s: %w", requestID, ErrNotFound)
	}
	req := s.requests[i]
	if req.ToUserID != me.ID {
		s.logger.Warn("friend request answer rejected", "request_id", requestID, "caller", me.ID)
		return model.User{}, -1, ErrForbidden
	}
	if req.Status != model.RequestPending {
		return model.User{}, -1, fmt.Errorf("friend request %s is %s: %w", requestID, req.Status, ErrRequestResolved)
	}
	return me, i, nil
}

// IncomingRequests returns the pending requests addressed to the logged-in user.
func (s *CookbookService) IncomingRequests() []model.FriendRequest {
	return s.pendingRequests(func(r model.FriendRequest, me string) bool { return r.ToUserID == me })
}

// OutgoingRequests returns the pending requests sent by the logged-in user.
func (s *CookbookService) OutgoingRequests() []model.FriendRequest {
	return s.pendingRequests(func(r model.FriendRequest, me string) bool { return r.FromUserID == me })
}

func (s *CookbookService) pendingRequests(match func(model.FriendRequest, string) bool) []model.FriendRequest {
	s.mu.Lock()
	defer s.mu.Unlock()

	me, err := s.sessionUser()
	if err != nil {
		return nil
	}
	var out []model.FriendRequest
	for _, r := range s.requests {
		if r.Status == model.RequestPending && match(r, me.ID) {
			out = append(out, r)
		}
	}
	return out
}

// Friends returns the logged-in user's friends.
func (s *CookbookService) Friends() []model.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	me, err := s.sessionUser()
	if err != nil {
		return nil
	}
	return slices.Clone(s.friends[me.ID])
}

// RemoveFriend ends a friendship in both directions.
func (s *CookbookService) RemoveFriend(userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	me, err := s.sessionUser()
	if err != nil {
		return err
	}
	if !hasFriend(s.friends[me.ID], userID) && !hasFriend(s.friends[userID], me.ID) {
		return fmt.Errorf("friend %s: %w", userID, ErrNotFound)
	}

	friends := cloneFriends(s.friends)
	removeFriend(friends, me.ID, userID)
	removeFriend(friends, userID, me.ID)
	if err := write(s.store, map[string]any{KeyFriends: friends}); err != nil {
		s.logger.Error("removing friend", "error", err)
		return fmt.Errorf("removing friend: %w", err)
	}
	s.friends = friends

	s.logger.Info("friend removed", "user_id", me.ID, "friend", userID)
	return nil
}

// SearchUsers matches query against usernames and emails, ignoring case.
// A blank query matches nobody.
func (s *CookbookService) SearchUsers(query string) []model.User {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil
	}
	var out []model.User
	for _, u := range s.identity.AllUsers() {
		if strings.Contains(strings.ToLower(u.Username), query) || strings.Contains(strings.ToLower(u.Email), query) {
			out = append(out, u)
		}
	}
	return out
}

func pairOf(r model.FriendRequest, a, b string) bool {
	return (r.FromUserID == a && r.ToUserID == b) || (r.FromUserID == b && r.ToUserID == a)
}

func hasFriend(list []model.User, id string) bool {
	return slices.ContainsFunc(list, func(u model.User) bool { return u.ID == id })
}

// cloneFriends copies the outer map. Lists are replaced, never modified in place.
func cloneFriends(m map[string][]model.User) map[string][]model.User {
	if m == nil {
		return map[string][]model.User{}
	}
	return maps.Clone(m)
}

func addFriend(m map[string][]model.User, owner string, friend model.User) {
	if hasFriend(m[owner], friend.ID) {
		return
	}
	m[owner] = append(slices.Clone(m[owner]), friend)
}

func removeFriend(m map[string][]model.User, owner, friendID string) {
	list, ok := m[owner]
	if !ok || !hasFriend(list, friendID) {
		return
	}
	next := slices.DeleteFunc(slices.Clone(list), func(u model.User) bool { return u.ID == friendID })
	if len(next) == 0 {
		delete(m, owner)
		return
	}
	m[owner] = next
}
