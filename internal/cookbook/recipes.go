package cookbook

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"cookbook-go/internal/model"
)

// RecipeInput holds the author-supplied fields of a new recipe.
type RecipeInput struct {
	Title        string
	Ingredients  []string
	Instructions string
	ImageURL     string
	CookingTime  int
	Servings     int
	Difficulty   model.Difficulty
	Category     string
	Tags         []string
}

// RecipePatch lists the fields to change on an existing recipe. Nil fields are left as they are.
type RecipePatch struct {
	Title        *string
	Ingredients  *[]string
	Instructions *string
	ImageURL     *string
	CookingTime  *int
	Servings     *int
	Difficulty   *model.Difficulty
	Category     *string
	Tags         *[]string
}

// AddRecipe publishes a recipe authored by the logged-in user.
func (s *CookbookService) AddRecipe(in RecipeInput) (model.Recipe, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	me, err := s.sessionUser()
	if err != nil {
		return model.Recipe{}, err
	}

	now := s.clock.Now()
	r := model.Recipe{
		ID:             s.idgen.New(),
		Title:          strings.TrimSpace(in.Title),
		Ingredients:    cleanList(in.Ingredients),
		Instructions:   strings.TrimSpace(in.Instructions),
		AuthorID:       me.ID,
		AuthorUsername: me.Username,
		CreatedAt:      now,
		UpdatedAt:      now,
		ImageURL:       strings.TrimSpace(in.ImageURL),
		CookingTime:    in.CookingTime,
		Servings:       in.Servings,
		Difficulty:     in.Difficulty,
		Category:       strings.TrimSpace(in.Category),
		Tags:           cleanTags(in.Tags),
	}
	if err := validateRecipe(r); err != nil {
		s.logger.Warn("recipe rejected", "author", me.ID, "error", err)
		return model.Recipe{}, err
	}

	next := append(cloneRecipes(s.recipes), r)
	if err := write(s.store, map[string]any{KeyRecipes: next}); err != nil {
		s.logger.Error("saving recipe", "error", err)
		return model.Recipe{}, fmt.Errorf("saving recipe: %w", err)
	}
	s.recipes = next

	s.logger.Info("recipe added", "recipe_id", r.ID, "author", me.ID)
	return cloneRecipe(r), nil
}

// UpdateRecipe applies patch to a recipe. Only its author or an admin may do so.
func (s *CookbookService) UpdateRecipe(id string, patch RecipePatch) (model.Recipe, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	me, err := s.sessionUser()
	if err != nil {
		return model.Recipe{}, err
	}
	i := s.recipeIndex(id)
	if i < 0 {
		return model.Recipe{}, fmt.Errorf("recipe %s: %w", id, ErrNotFound)
	}
	if !canModify(me, s.recipes[i].AuthorID) {
		s.logger.Warn("recipe update rejected", "recipe_id", id, "caller", me.ID)
		return model.Recipe{}, ErrForbidden
	}

	r := cloneRecipe(s.recipes[i])
	if patch.Title != nil {
		r.Title = strings.TrimSpace(*patch.Title)
	}
	if patch.Ingredients != nil {
		r.Ingredients = cleanList(*patch.Ingredients)
	}
	if patch.Instructions != nil {
		r.Instructions = strings.TrimSpace(*patch.Instructions)
	}
	if patch.ImageURL != nil {
		r.ImageURL = strings.TrimSpace(*patch.ImageURL)
	}
	if patch.CookingTime != nil {
		r.CookingTime = *patch.CookingTime
	}
	if patch.Servings != nil {
		r.Servings = *patch.Servings
	}
	if patch.Difficulty != nil {
		r.Difficulty = *patch.Difficulty
	}
	if patch.Category != nil {
		r.Category = strings.TrimSpace(*patch.Category)
	}
	if patch.Tags != nil {
		r.Tags = cleanTags(*patch.Tags)
	}
	if err := validateRecipe(r); err != nil {
		return model.Recipe{}, err
	}
	r.UpdatedAt = s.touch(r.UpdatedAt)

	if err := s.saveRecipe(i, r, nil); err != nil {
		return model.Recipe{}, err
	}
	s.logger.Info("recipe updated", "recipe_id", id, "caller", me.ID)
	return cloneRecipe(r), nil
}

// DeleteRecipe removes a recipe. Only its author or an admin may do so.
func (s *CookbookService) DeleteRecipe(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	me, err := s.sessionUser()
	if err != nil {
		return err
	}
	i := s.recipeIndex(id)
	if i < 0 {
		return fmt.Errorf("recipe %s: %w", id, ErrNotFound)
	}
	if !canModify(me, s.recipes[i].AuthorID) {
		s.logger.Warn("recipe delete rejected", "recipe_id", id, "caller", me.ID)
		return ErrForbidden
	}

	next := slices.Delete(cloneRecipes(s.recipes), i, i+1)
	if err := write(s.store, map[string]any{KeyRecipes: next}); err != nil {
		s.logger.Error("deleting recipe", "error", err)
		return fmt.Errorf("deleting recipe: %w", err)
	}
	s.recipes = next

	s.logger.Info("recipe deleted", "recipe_id", id, "caller", me.ID)
	return nil
}

// RecipeByID returns the recipe with the given id.
func (s *CookbookService) RecipeByID(id string) (model.Recipe, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.recipeIndex(id)
	if i < 0 {
		return model.Recipe{}, false
	}
	return cloneRecipe(s.recipes[i]), true
}

// Recipes returns every recipe, newest first.
func (s *CookbookService) Recipes() []model.Recipe {
	s.mu.Lock()
	defer s.mu.Unlock()

	return newestFirst(s.filterRecipes(func(model.Recipe) bool { return true }))
}

// UserRecipes returns the recipes authored by userID, newest first.
func (s *CookbookService) UserRecipes(userID string) []model.Recipe {
	s.mu.Lock()
	defer s.mu.Unlock()

	return newestFirst(s.filterRecipes(func(r model.Recipe) bool { return r.AuthorID == userID }))
}

// FavoriteRecipes returns the recipes the logged-in user has favorited.
func (s *CookbookService) FavoriteRecipes() []model.Recipe {
	s.mu.Lock()
	defer s.mu.Unlock()

	me, err := s.sessionUser()
	if err != nil {
		return nil
	}
	return newestFirst(s.filterRecipes(func(r model.Recipe) bool { return slices.Contains(r.Favorites, me.ID) }))
}

// FriendRecipes returns the recipes authored by friends of the logged-in user.
func (s *CookbookService) FriendRecipes() []model.Recipe {
	s.mu.Lock()
	defer s.mu.Unlock()

	me, err := s.sessionUser()
	if err != nil {
		return nil
	}
	friends := make(map[string]bool, len(s.friends[me.ID]))
	for _, f := range s.friends[me.ID] {
		friends[f.ID] = true
	}
	return newestFirst(s.filterRecipes(func(r model.Recipe) bool { return friends[r.AuthorID] }))
}

// LikeRecipe toggles the logged-in user's like and reports whether the recipe is now liked.
func (s *CookbookService) LikeRecipe(id string) (bool, error) {
	return s.toggleEngagement(id, "like", func(r *model.Recipe) *[]string { return &r.Likes })
}

// FavoriteRecipe toggles the logged-in user's favorite and reports whether the recipe is now a favorite.
func (s *CookbookService) FavoriteRecipe(id string) (bool, error) {
	return s.toggleEngagement(id, "favorite", func(r *model.Recipe) *[]string { return &r.Favorites })
}

func (s *CookbookService) toggleEngagement(id, kind string, set func(*model.Recipe) *[]string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	me, err := s.sessionUser()
	if err != nil {
		return false, err
	}
	i := s.recipeIndex(id)
	if i < 0 {
		return false, fmt.Errorf("recipe %s: %w", id, ErrNotFound)
	}

	r := cloneRecipe(s.recipes[i])
	ids := set(&r)
	var on bool
	*ids, on = toggle(*ids, me.ID)
	r.UpdatedAt = s.touch(r.UpdatedAt)

	var n *model.Notification
	if on && kind == "like" && r.AuthorID != me.ID {
		note := s.notify(r.AuthorID, model.NotificationRecipeLiked,
			fmt.Sprintf("%s liked your recipe %q", me.Username, r.Title), r.ID)
		n = &note
	}
	if err := s.saveRecipe(i, r, n); err != nil {
		return false, err
	}

	s.logger.Info("recipe "+kind+" toggled", "recipe_id", id, "user_id", me.ID, "on", on)
	return on, nil
}

// IncrementRecipeViewCount adds one view to a recipe and returns the new count.
// Every call counts; callers that want one count per view use a ViewGuard.
func (s *CookbookService) IncrementRecipeViewCount(id string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.recipeIndex(id)
	if i < 0 {
		return 0, fmt.Errorf("recipe %s: %w", id, ErrNotFound)
	}
	r := cloneRecipe(s.recipes[i])
	r.ViewCount++
	r.UpdatedAt = s.touch(r.UpdatedAt)
	if err := s.saveRecipe(i, r, nil); err != nil {
		return 0, err
	}
	s.logger.Debug("recipe viewed", "recipe_id", id, "views", r.ViewCount)
	return r.ViewCount, nil
}

// AddComment appends a comment by the logged-in user to a recipe.
func (s *CookbookService) AddComment(recipeID, text string) (model.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	me, err := s.sessionUser()
	if err != nil {
		return model.Comment{}, err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return model.Comment{}, fmt.Errorf("%w: comment text is required", ErrValidation)
	}
	i := s.recipeIndex(recipeID)
	if i < 0 {
		return model.Comment{}, fmt.Errorf("recipe %s: %w", recipeID, ErrNotFound)
	}

	c := model.Comment{
		ID:             s.idgen.New(),
		AuthorID:       me.ID,
		AuthorUsername: me.Username,
		Text:           text,
		CreatedAt:      s.clock.Now(),
	}
	r := cloneRecipe(s.recipes[i])
	r.Comments = append(r.Comments, c)
	r.UpdatedAt = s.touch(r.UpdatedAt)

	var n *model.Notification
	if r.AuthorID != me.ID {
		note := s.notify(r.AuthorID, model.NotificationRecipeComment,
			fmt.Sprintf("%s commented on your recipe %q", me.Username, r.Title), r.ID)
		n = &note
	}
	if err := s.saveRecipe(i, r, n); err != nil {
		return model.Comment{}, err
	}

	s.logger.Info("comment added", "recipe_id", recipeID, "comment_id", c.ID, "author", me.ID)
	return c, nil
}

// DeleteComment removes a comment. The comment author, the recipe author and admins may do so.
func (s *CookbookService) DeleteComment(recipeID, commentID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	me, err := s.sessionUser()
	if err != nil {
		return err
	}
	i := s.recipeIndex(recipeID)
	if i < 0 {
		return fmt.Errorf("recipe %s: %w", recipeID, ErrNotFound)
	}
	r := cloneRecipe(s.recipes[i])
	j := slices.IndexFunc(r.Comments, func(c model.Comment) bool { return c.ID == commentID })
	if j < 0 {
		return fmt.Errorf("comment %s: %w", commentID, ErrNotFound)
	}
	if r.Comments[j].AuthorID != me.ID && !canModify(me, r.AuthorID) {
		s.logger.Warn("comment delete rejected", "comment_id", commentID, "caller", me.ID)
		return ErrForbidden
	}

	r.Comments = slices.Delete(r.Comments, j, j+1)
	r.UpdatedAt = s.touch(r.UpdatedAt)
	if err := s.saveRecipe(i, r, nil); err != nil {
		return err
	}
	s.logger.Info("comment deleted", "recipe_id", recipeID, "comment_id", commentID, "caller", me.ID)
	return nil
}

// saveRecipe replaces the recipe at index i, optionally adding a notification in the same write.
func (s *CookbookService) saveRecipe(i int, r model.Recipe, n *model.Notification) error {
	next := cloneRecipes(s.recipes)
	next[i] = r
	records := map[string]any{KeyRecipes: next}

	notifications := s.notifications
	if n != nil {
		notifications = append(slices.Clone(s.notifications), *n)
		records[KeyNotifications] = notifications
	}

	if err := write(s.store, records); err != nil {
		s.logger.Error("saving recipe", "recipe_id", r.ID, "error", err)
		return fmt.Errorf("saving recipe: %w", err)
	}
	s.recipes = next
	s.notifications = notifications
	return nil
}

// touch returns the new updatedAt value; it never moves backwards.
func (s *CookbookService) touch(prev time.Time) time.Time {
	now := s.clock.Now()
	if now.Before(prev) {
		return prev
	}
	return now
}

func (s *CookbookService) filterRecipes(keep func(model.Recipe) bool) []model.Recipe {
	var out []model.Recipe
	for _, r := range s.recipes {
		if keep(r) {
			out = append(out, cloneRecipe(r))
		}
	}
	return out
}

// newestFirst sorts rs by creation time, newest first, and returns it.
func newestFirst(rs []model.Recipe) []model.Recipe {
	slices.SortStableFunc(rs, func(a, b model.Recipe) int { return b.CreatedAt.Compare(a.CreatedAt) })
	return rs
}

func canModify(me model.User, authorID string) bool {
	return me.ID == authorID || me.IsAdmin()
}

func validateRecipe(r model.Recipe) error {
	switch {
	case r.Title == "":
		return fmt.Errorf("%w: title is required", ErrValidation)
	case len(r.Ingredients) == 0:
		return fmt.Errorf("%w: at least one ingredient is required", ErrValidation)
	case r.Instructions == "":
		return fmt.Errorf("%w: instructions are required", ErrValidation)
	case r.CookingTime < 0:
		return fmt.Errorf("%w: cooking time must be positive", ErrValidation)
	case r.Servings < 0:
		return fmt.Errorf("%w: servings must be positive", ErrValidation)
	case !r.Difficulty.Valid():
		return fmt.Errorf("%w: unknown difficulty %q", ErrValidation, r.Difficulty)
	}
	return nil
}

// cleanList trims every entry and drops the blank ones.
func cleanList(items []string) []string {
	var out []string
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// cleanTags is cleanList without case-insensitive duplicates.
func cleanTags(tags []string) []string {
	var out []string
	for _, t := range cleanList(tags) {
		if !slices.ContainsFunc(out, func(o string) bool { return strings.EqualFold(o, t) }) {
			out = append(out, t)
		}
	}
	return out
}
