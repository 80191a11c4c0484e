package model

import "time"

// Role is the privilege level of a user account.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// Difficulty is the optional difficulty label of a recipe.
// Labels are stored verbatim in Polish, as existing data uses them.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "łatwy"
	DifficultyMedium Difficulty = "średni"
	DifficultyHard   Difficulty = "trudny"
)

// Valid reports whether d is a known difficulty. The empty value means "not set" and is valid.
func (d Difficulty) Valid() bool {
	switch d {
	case "", DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// RequestStatus is the state of a friend request.
// Transitions are one-way: pending -> accepted | rejected.
type RequestStatus string

const (
	RequestPending  RequestStatus = "pending"
	RequestAccepted RequestStatus = "accepted"
	RequestRejected RequestStatus = "rejected"
)

// User is the public profile of an account. Credentials are never part of it.
type User struct {
	ID          string    `json:"id"`
	Username    string    `json:"username"`    // unique, immutable
	DisplayName string    `json:"displayName"` // mutable
	Email       string    `json:"email"`       // unique, immutable
	CreatedAt   time.Time `json:"createdAt"`
	Bio         string    `json:"bio,omitempty"`
	Role        Role      `json:"role"`
	IsVerified  bool      `json:"isVerified"`
}

// IsAdmin reports whether the user has the admin role.
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Recipe is a recipe posted by a user.
// AuthorUsername is a copy taken at creation time and is not kept in sync.
type Recipe struct {
	ID             string     `json:"id"`
	Title          string     `json:"title"`
	Ingredients    []string   `json:"ingredients"`
	Instructions   string     `json:"instructions"`
	AuthorID       string     `json:"authorId"`
	AuthorUsername string     `json:"authorUsername"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
	ImageURL       string     `json:"imageUrl,omitempty"`
	CookingTime    int        `json:"cookingTime,omitempty"` // minutes, 0 = not set
	Servings       int        `json:"servings,omitempty"`    // 0 = not set
	Difficulty     Difficulty `json:"difficulty,omitempty"`
	Category       string     `json:"category,omitempty"`
	Tags           []string   `json:"tags,omitempty"`
	Likes          []string   `json:"likes,omitempty"`     // user ids
	Favorites      []string   `json:"favorites,omitempty"` // user ids
	Comments       []Comment  `json:"comments,omitempty"`
	ViewCount      int        `json:"viewCount"`
}

// Comment is a comment left on a recipe.
type Comment struct {
	ID             string    `json:"id"`
	AuthorID       string    `json:"authorId"`
	AuthorUsername string    `json:"authorUsername"`
	Text           string    `json:"text"`
	CreatedAt      time.Time `json:"createdAt"`
}

// FriendRequest is a directed proposal of friendship.
type FriendRequest struct {
	ID           string        `json:"id"`
	FromUserID   string        `json:"fromUserId"`
	FromUsername string        `json:"fromUsername"`
	ToUserID     string        `json:"toUserId"`
	Status       RequestStatus `json:"status"`
	CreatedAt    time.Time     `json:"createdAt"`
}

// ShoppingListItem is one ingredient on a user's shopping list.
type ShoppingListItem struct {
	ID          string `json:"id"`
	Ingredient  string `json:"ingredient"`
	RecipeTitle string `json:"recipeTitle,omitempty"` // grouping key
	Checked     bool   `json:"checked"`
}

// NotificationType identifies what triggered a notification.
type NotificationType string

const (
	NotificationFriendRequest  NotificationType = "friend_request"
	NotificationFriendAccepted NotificationType = "friend_accepted"
	NotificationRecipeLiked    NotificationType = "recipe_liked"
	NotificationRecipeComment  NotificationType = "recipe_comment"
)

// Notification is a message addressed to one user.
type Notification struct {
	ID        string           `json:"id"`
	UserID    string           `json:"userId"`
	Type      NotificationType `json:"type"`
	Message   string           `json:"message"`
	RelatedID string           `json:"relatedId,omitempty"` // request or recipe id
	Read      bool             `json:"read"`
	CreatedAt time.Time        `json:"createdAt"`
}
