package cookbook

// Store is the persistent key/value port the services write through to.
// Values are opaque bytes; the services store JSON documents under the keys below.
type Store interface {
	// Get returns the value stored under key, or (nil, nil) when the key is absent.
	Get(key string) ([]byte, error)

	// Set stores value under key, replacing any previous value.
	Set(key string, value []byte) error

	// SetMany stores every entry of values as a single all-or-nothing write.
	// Multi-collection mutations (registration, cascading deletes) rely on this.
	SetMany(values map[string][]byte) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(key string) error

	// Close releases backend resources.
	Close() error
}

// Storage keys. Existing data written under these names stays readable.
const (
	KeyUsers          = "users"
	KeyCurrentUser    = "currentUser"
	KeyRecipes        = "recipes"
	KeyFriendRequests = "friendRequests"
	KeyFriends        = "friends"
	KeyShoppingList   = "shoppingList"
	KeyNotifications  = "notifications"
)
