package cookbook_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"cookbook-go/internal/cookbook"
	"cookbook-go/internal/model"
	"cookbook-go/internal/testutil"
)

func TestCookbookService_ShoppingList(t *testing.T) {
	ignoreIDs := cmpopts.IgnoreFields(model.ShoppingListItem{}, "ID")

	svc := testutil.NewTestServices(t, testutil.NewTestStore())
	if _, err := svc.Cookbook.ShoppingList(); !errors.Is(err, cookbook.ErrNotAuthenticated) {
		t.Errorf("ShoppingList() anonymous error = %v, want ErrNotAuthenticated", err)
	}

	svc.Register(t, "ala")
	r, err := svc.Cookbook.AddRecipe(cookbook.RecipeInput{
		Title:        "Jajecznica",
		Ingredients:  []string{"jajka", "masło"},
		Instructions: "Usmażyć.",
	})
	if err != nil {
		t.Fatal(err)
	}

	t.Run("add single item", func(t *testing.T) {
		if _, err := svc.Cookbook.AddShoppingItem("  ", ""); !errors.Is(err, cookbook.ErrValidation) {
			t.Errorf("AddShoppingItem(blank) error = %v, want ErrValidation", err)
		}
		item, err := svc.Cookbook.AddShoppingItem(" chleb ", "")
		if err != nil {
			t.Fatalf("AddShoppingItem() error = %v", err)
		}
		if item.ID == "" || item.Ingredient != "chleb" || item.Checked {
			t.Errorf("AddShoppingItem() = %+v", item)
		}
	})

	t.Run("add recipe ingredients", func(t *testing.T) {
		items, err := svc.Cookbook.AddRecipeToShoppingList(r.ID)
		if err != nil {
			t.Fatalf("AddRecipeToShoppingList() error = %v", err)
		}
		if len(items) != 2 {
			t.Fatalf("added %d items, want 2", len(items))
		}
		if _, err := svc.Cookbook.AddRecipeToShoppingList("missing"); !errors.Is(err, cookbook.ErrNotFound) {
			t.Errorf("AddRecipeToShoppingList(missing) error = %v, want ErrNotFound", err)
		}

		got, err := svc.Cookbook.ShoppingList()
		if err != nil {
			t.Fatal(err)
		}
		want := []model.ShoppingListItem{
			{Ingredient: "chleb"},
			{Ingredient: "jajka", RecipeTitle: "Jajecznica"},
			{Ingredient: "masło", RecipeTitle: "Jajecznica"},
		}
		if diff := cmp.Diff(want, got, ignoreIDs); diff != "" {
			t.Errorf("ShoppingList() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("toggle and remove", func(t *testing.T) {
		list, _ := svc.Cookbook.ShoppingList()
		id := list[1].ID

		for _, want := range []bool{true, false, true} {
			got, err := svc.Cookbook.ToggleShoppingItem(id)
			if err != nil || got != want {
				t.Fatalf("ToggleShoppingItem() = %v, %v; want %v", got, err, want)
			}
		}
		if _, err := svc.Cookbook.ToggleShoppingItem("missing"); !errors.Is(err, cookbook.ErrNotFound) {
			t.Errorf("ToggleShoppingItem(missing) error = %v, want ErrNotFound", err)
		}

		if err := svc.Cookbook.RemoveShoppingItem(list[0].ID); err != nil {
			t.Fatalf("RemoveShoppingItem() error = %v", err)
		}
		if err := svc.Cookbook.RemoveShoppingItem(list[0].ID); !errors.Is(err, cookbook.ErrNotFound) {
			t.Errorf("second RemoveShoppingItem() error = %v, want ErrNotFound", err)
		}

		reopened := testutil.OpenTestServices(t, svc.Store, svc.Clock, svc.IDs)
		got, err := reopened.Cookbook.ShoppingList()
		if err != nil {
			t.Fatal(err)
		}
		want := []model.ShoppingListItem{
			{Ingredient: "jajka", RecipeTitle: "Jajecznica", Checked: true},
			{Ingredient: "masło", RecipeTitle: "Jajecznica"},
		}
		if diff := cmp.Diff(want, got, ignoreIDs); diff != "" {
			t.Errorf("persisted ShoppingList() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("lists are per user", func(t *testing.T) {
		alas, _ := svc.Cookbook.ShoppingList()

		svc.Register(t, "bob")
		got, err := svc.Cookbook.ShoppingList()
		if err != nil {
			t.Fatal(err)
		}
		if len(got) != 0 {
			t.Errorf("bob ShoppingList() = %+v, want empty", got)
		}
		if err := svc.Cookbook.RemoveShoppingItem(alas[0].ID); !errors.Is(err, cookbook.ErrNotFound) {
			t.Errorf("RemoveShoppingItem() of another user's item error = %v, want ErrNotFound", err)
		}
	})

	t.Run("clear", func(t *testing.T) {
		svc.LoginAs(t, "ala")
		if err := svc.Cookbook.ClearShoppingList(); err != nil {
			t.Fatalf("ClearShoppingList() error = %v", err)
		}
		got, _ := svc.Cookbook.ShoppingList()
		if len(got) != 0 {
			t.Errorf("ShoppingList() after clear = %+v", got)
		}
		if err := svc.Cookbook.ClearShoppingList(); err != nil {
			t.Errorf("ClearShoppingList() on empty list error = %v", err)
		}
	})
}
