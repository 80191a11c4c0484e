package cookbook

import "sync"

// ViewGuard counts each recipe at most once per session.
// IncrementRecipeViewCount itself never de-duplicates.
type ViewGuard struct {
	mu   sync.Mutex
	seen map[string]bool
}

func NewViewGuard() *ViewGuard {
	return &ViewGuard{seen: make(map[string]bool)}
}

// Seen marks recipeID as viewed and reports whether it had already been viewed.
func (g *ViewGuard) Seen(recipeID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.seen[recipeID] {
		return true
	}
	g.seen[recipeID] = true
	return false
}

// Forget unmarks recipeID so the next view counts again.
func (g *ViewGuard) Forget(recipeID string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.seen, recipeID)
}

// Reset forgets every view, as when the session ends.
func (g *ViewGuard) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	clear(g.seen)
}

// CountView increments the view count of recipeID unless this guard already counted it.
// It reports whether a view was counted. A failed increment is forgotten so it can be retried.
func (g *ViewGuard) CountView(svc *CookbookService, recipeID string) (bool, error) {
	if g.Seen(recipeID) {
		return false, nil
	}
	if _, err := svc.IncrementRecipeViewCount(recipeID); err != nil {
		g.Forget(recipeID)
		return false, err
	}
	return true, nil
}
