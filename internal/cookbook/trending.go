package cookbook

import (
	"cmp"
	"slices"
	"strings"

	"cookbook-go/internal/model"
)

// RecipeSort selects the order of search results.
type RecipeSort string

const (
	SortNewest   RecipeSort = "newest"
	SortPopular  RecipeSort = "popular"
	SortQuickest RecipeSort = "quickest"
)

// RecipeQuery filters recipes. Zero-valued fields do not filter.
type RecipeQuery struct {
	// Text matches title, ingredients and tags, case-insensitively.
	Text           string
	Category       string
	Difficulty     model.Difficulty
	Tag            string
	MaxCookingTime int // minutes; recipes without a cooking time never match
	Sort           RecipeSort
}

// TrendingScore is the popularity of a recipe.
func TrendingScore(r model.Recipe) int {
	return 3*len(r.Likes) + 2*len(r.Favorites) + 2*len(r.Comments) + r.ViewCount
}

// byTrending orders by score descending, then newest first, then id.
func byTrending(a, b model.Recipe) int {
	if c := cmp.Compare(TrendingScore(b), TrendingScore(a)); c != 0 {
		return c
	}
	if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
		return c
	}
	return strings.Compare(a.ID, b.ID)
}

// byCookingTime orders quickest first; recipes without a cooking time go last.
func byCookingTime(a, b model.Recipe) int {
	switch {
	case a.CookingTime == 0 && b.CookingTime == 0:
		return b.CreatedAt.Compare(a.CreatedAt)
	case a.CookingTime == 0:
		return 1
	case b.CookingTime == 0:
		return -1
	}
	if c := cmp.Compare(a.CookingTime, b.CookingTime); c != 0 {
		return c
	}
	return b.CreatedAt.Compare(a.CreatedAt)
}

// TrendingRecipes returns the most popular recipes. A limit of zero or less returns all of them.
func (s *CookbookService) TrendingRecipes(limit int) []model.Recipe {
	s.mu.Lock()
	defer s.mu.Unlock()

	rs := s.filterRecipes(func(model.Recipe) bool { return true })
	slices.SortFunc(rs, byTrending)
	if limit > 0 && len(rs) > limit {
		rs = rs[:limit]
	}
	return rs
}

// SearchRecipes returns the recipes matching q.
func (s *CookbookService) SearchRecipes(q RecipeQuery) []model.Recipe {
	s.mu.Lock()
	defer s.mu.Unlock()

	text := strings.ToLower(strings.TrimSpace(q.Text))
	category := strings.TrimSpace(q.Category)
	tag := strings.TrimSpace(q.Tag)

	rs := s.filterRecipes(func(r model.Recipe) bool {
		if text != "" && !matchesText(r, text) {
			return false
		}
		if category != "" && !strings.EqualFold(r.Category, category) {
			return false
		}
		if q.Difficulty != "" && r.Difficulty != q.Difficulty {
			return false
		}
		if tag != "" && !slices.ContainsFunc(r.Tags, func(t string) bool { return strings.EqualFold(t, tag) }) {
			return false
		}
		if q.MaxCookingTime > 0 && (r.CookingTime == 0 || r.CookingTime > q.MaxCookingTime) {
			return false
		}
		return true
	})

	switch q.Sort {
	case SortPopular:
		slices.SortFunc(rs, byTrending)
	case SortQuickest:
		slices.SortStableFunc(rs, byCookingTime)
	default:
		newestFirst(rs)
	}
	return rs
}

func matchesText(r model.Recipe, lowered string) bool {
	if strings.Contains(strings.ToLower(r.Title), lowered) {
		return true
	}
	contains := func(s string) bool { return strings.Contains(strings.ToLower(s), lowered) }
	return slices.ContainsFunc(r.Ingredients, contains) || slices.ContainsFunc(r.Tags, contains)
}
