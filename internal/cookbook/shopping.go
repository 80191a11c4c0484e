package cookbook

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"cookbook-go/internal/model"
)

// ShoppingList returns the logged-in user's shopping list.
func (s *CookbookService) ShoppingList() ([]model.ShoppingListItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	me, err := s.sessionUser()
	if err != nil {
		return nil, err
	}
	return slices.Clone(s.shopping[me.ID]), nil
}

// AddShoppingItem appends one ingredient. recipeTitle may be empty.
func (s *CookbookService) AddShoppingItem(ingredient, recipeTitle string) (model.ShoppingListItem, error) {
	ingredient = strings.TrimSpace(ingredient)
	if ingredient == "" {
		return model.ShoppingListItem{}, fmt.Errorf("%w: ingredient is required", ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.addShoppingItems([]string{ingredient}, strings.TrimSpace(recipeTitle))
	if err != nil {
		return model.ShoppingListItem{}, err
	}
	return items[0], nil
}

// AddRecipeToShoppingList adds one item per ingredient of a recipe, grouped under its title.
func (s *CookbookService) AddRecipeToShoppingList(recipeID string) ([]model.ShoppingListItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.recipeIndex(recipeID)
	if i < 0 {
		return nil, fmt.Errorf("recipe %s: %w", recipeID, ErrNotFound)
	}
	r := s.recipes[i]
	return s.addShoppingItems(r.Ingredients, r.Title)
}

func (s *CookbookService) addShoppingItems(ingredients []string, recipeTitle string) ([]model.ShoppingListItem, error) {
	me, err := s.sessionUser()
	if err != nil {
		return nil, err
	}

	added := make([]model.ShoppingListItem, len(ingredients))
	for i, ing := range ingredients {
		added[i] = model.ShoppingListItem{ID: s.idgen.New(), Ingredient: ing, RecipeTitle: recipeTitle}
	}

	shopping := cloneShopping(s.shopping)
	shopping[me.ID] = append(slices.Clone(shopping[me.ID]), added...)
	if err := s.saveShopping(shopping); err != nil {
		return nil, err
	}
	s.logger.Info("shopping items added", "user_id", me.ID, "count", len(added), "recipe", recipeTitle)
	return added, nil
}

// ToggleShoppingItem flips the checked state of an item and returns the new state.
func (s *CookbookService) ToggleShoppingItem(itemID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	me, err := s.sessionUser()
	if err != nil {
		return false, err
	}
	items := slices.Clone(s.shopping[me.ID])
	i := slices.IndexFunc(items, func(it model.ShoppingListItem) bool { return it.ID == itemID })
	if i < 0 {
		return false, fmt.Errorf("shopping item %s: %w", itemID, ErrNotFound)
	}
	items[i].Checked = !items[i].Checked

	shopping := cloneShopping(s.shopping)
	shopping[me.ID] = items
	if err := s.saveShopping(shopping); err != nil {
		return false, err
	}
	return items[i].Checked, nil
}

// RemoveShoppingItem deletes an item from the list.
func (s *CookbookService) RemoveShoppingItem(itemID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	me, err := s.sessionUser()
	if err != nil {
		return err
	}
	items := s.shopping[me.ID]
	i := slices.IndexFunc(items, func(it model.ShoppingListItem) bool { return it.ID == itemID })
	if i < 0 {
		return fmt.Errorf("shopping item %s: %w", itemID, ErrNotFound)
	}

	shopping := cloneShopping(s.shopping)
	shopping[me.ID] = slices.Delete(slices.Clone(items), i, i+1)
	return s.saveShopping(shopping)
}

// ClearShoppingList empties the logged-in user's list.
func (s *CookbookService) ClearShoppingList() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	me, err := s.sessionUser()
	if err != nil {
		return err
	}
	shopping := cloneShopping(s.shopping)
	delete(shopping, me.ID)
	if err := s.saveShopping(shopping); err != nil {
		return err
	}
	s.logger.Info("shopping list cleared", "user_id", me.ID)
	return nil
}

func (s *CookbookService) saveShopping(shopping map[string][]model.ShoppingListItem) error {
	if err := write(s.store, map[string]any{KeyShoppingList: shopping}); err != nil {
		s.logger.Error("saving shopping list", "error", err)
		return fmt.Errorf("saving shopping list: %w", err)
	}
	s.shopping = shopping
	return nil
}

func cloneShopping(m map[string][]model.ShoppingListItem) map[string][]model.ShoppingListItem {
	if m == nil {
		return map[string][]model.ShoppingListItem{}
	}
	return maps.Clone(m)
}
