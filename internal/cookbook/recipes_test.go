package cookbook_test

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"cookbook-go/internal/cookbook"
	"cookbook-go/internal/model"
	"cookbook-go/internal/testutil"
)

func TestCookbookService_AddRecipe(t *testing.T) {
	t.Run("requires session", func(t *testing.T) {
		svc := testutil.NewTestServices(t, testutil.NewTestStore())
		if _, err := svc.Cookbook.AddRecipe(pierogiInput()); !errors.Is(err, cookbook.ErrNotAuthenticated) {
			t.Errorf("AddRecipe() error = %v, want ErrNotAuthenticated", err)
		}
	})

	t.Run("stamps author and times", func(t *testing.T) {
		svc := testutil.NewTestServices(t, testutil.NewTestStore())
		ala := svc.Register(t, "ala")

		in := pierogiInput()
		in.Ingredients = []string{" mąka ", "", "woda"}
		in.Tags = []string{"Polskie", "polskie", " szybkie "}
		got, err := svc.Cookbook.AddRecipe(in)
		if err != nil {
			t.Fatalf("AddRecipe() error = %v", err)
		}

		want := model.Recipe{
			ID:             got.ID,
			Title:          "Pierogi ruskie",
			Ingredients:    []string{"mąka", "woda"},
			Instructions:   in.Instructions,
			AuthorID:       ala.ID,
			AuthorUsername: "ala",
			CreatedAt:      svc.Clock.Now(),
			UpdatedAt:      svc.Clock.Now(),
			CookingTime:    90,
			Servings:       4,
			Difficulty:     model.DifficultyMedium,
			Category:       "obiad",
			Tags:           []string{"Polskie", "szybkie"},
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("AddRecipe() mismatch (-want +got):\n%s", diff)
		}

		reopened := testutil.OpenTestServices(t, svc.Store, svc.Clock, svc.IDs)
		stored, ok := reopened.Cookbook.RecipeByID(got.ID)
		if !ok {
			t.Fatal("recipe not persisted")
		}
		if diff := cmp.Diff(got, stored); diff != "" {
			t.Errorf("persisted recipe mismatch (-added +stored):\n%s", diff)
		}
	})

	t.Run("validation", func(t *testing.T) {
		tests := []struct {
			name   string
			mutate func(*cookbook.RecipeInput)
		}{
			{"blank title", func(in *cookbook.RecipeInput) { in.Title = "  " }},
			{"no ingredients", func(in *cookbook.RecipeInput) { in.Ingredients = []string{" ", ""} }},
			{"blank instructions", func(in *cookbook.RecipeInput) { in.Instructions = "" }},
			{"negative cooking time", func(in *cookbook.RecipeInput) { in.CookingTime = -5 }},
			{"negative servings", func(in *cookbook.RecipeInput) { in.Servings = -1 }},
			{"unknown difficulty", func(in *cookbook.RecipeInput) { in.Difficulty = "extreme" }},
		}
		svc := testutil.NewTestServices(t, testutil.NewTestStore())
		svc.Register(t, "ala")
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				in := pierogiInput()
				tt.mutate(&in)
				if _, err := svc.Cookbook.AddRecipe(in); !errors.Is(err, cookbook.ErrValidation) {
					t.Errorf("AddRecipe() error = %v, want ErrValidation", err)
				}
			})
		}
		if n := len(svc.Cookbook.Recipes()); n != 0 {
			t.Errorf("len(Recipes()) = %d after rejected input, want 0", n)
		}
	})

	t.Run("optional fields may be omitted", func(t *testing.T) {
		svc := testutil.NewTestServices(t, testutil.NewTestStore())
		svc.Register(t, "ala")
		_, err := svc.Cookbook.AddRecipe(cookbook.RecipeInput{
			Title:        "Herbata",
			Ingredients:  []string{"woda", "herbata"},
			Instructions: "Zaparzyć.",
		})
		if err != nil {
			t.Errorf("AddRecipe() error = %v", err)
		}
	})
}

func TestCookbookService_UpdateRecipe(t *testing.T) {
	strPtr := func(s string) *string { return &s }

	svc := testutil.NewTestServices(t, testutil.NewTestStore())
	svc.Register(t, "bob")
	svc.Register(t, "ala")
	r := addRecipe(t, svc, "Bigos")

	t.Run("author applies patch", func(t *testing.T) {
		svc.Clock.Advance(time.Hour)
		tags := []string{"zima"}
		got, err := svc.Cookbook.UpdateRecipe(r.ID, cookbook.RecipePatch{
			Title: strPtr(" Bigos myśliwski "),
			Tags:  &tags,
		})
		if err != nil {
			t.Fatalf("UpdateRecipe() error = %v", err)
		}
		if got.Title != "Bigos myśliwski" {
			t.Errorf("Title = %q", got.Title)
		}
		if diff := cmp.Diff([]string{"zima"}, got.Tags); diff != "" {
			t.Errorf("Tags mismatch (-want +got):\n%s", diff)
		}
		if diff := cmp.Diff(r.Ingredients, got.Ingredients); diff != "" {
			t.Errorf("unpatched Ingredients changed (-want +got):\n%s", diff)
		}
		if !got.CreatedAt.Equal(r.CreatedAt) {
			t.Errorf("CreatedAt changed to %v", got.CreatedAt)
		}
		if !got.UpdatedAt.Equal(svc.Clock.Now()) {
			t.Errorf("UpdatedAt = %v, want %v", got.UpdatedAt, svc.Clock.Now())
		}
	})

	t.Run("invalid patch rejected", func(t *testing.T) {
		empty := []string{}
		_, err := svc.Cookbook.UpdateRecipe(r.ID, cookbook.RecipePatch{Ingredients: &empty})
		if !errors.Is(err, cookbook.ErrValidation) {
			t.Errorf("UpdateRecipe() error = %v, want ErrValidation", err)
		}
		if got := mustRecipe(t, svc, r.ID); len(got.Ingredients) == 0 {
			t.Error("rejected patch emptied ingredients")
		}
	})

	t.Run("other user forbidden", func(t *testing.T) {
		svc.LoginAs(t, "bob")
		_, err := svc.Cookbook.UpdateRecipe(r.ID, cookbook.RecipePatch{Title: strPtr("Mine now")})
		if !errors.Is(err, cookbook.ErrForbidden) {
			t.Errorf("UpdateRecipe() error = %v, want ErrForbidden", err)
		}
	})

	t.Run("admin allowed", func(t *testing.T) {
		svc.LoginAdmin(t)
		if _, err := svc.Cookbook.UpdateRecipe(r.ID, cookbook.RecipePatch{Category: strPtr("zupa")}); err != nil {
			t.Errorf("admin UpdateRecipe() error = %v", err)
		}
	})

	t.Run("unknown recipe", func(t *testing.T) {
		if _, err := svc.Cookbook.UpdateRecipe("missing", cookbook.RecipePatch{}); !errors.Is(err, cookbook.ErrNotFound) {
			t.Errorf("UpdateRecipe() error = %v, want ErrNotFound", err)
		}
	})

	t.Run("updatedAt never moves backwards", func(t *testing.T) {
		before := mustRecipe(t, svc, r.ID).UpdatedAt
		svc.Clock.Advance(-24 * time.Hour)
		got, err := svc.Cookbook.UpdateRecipe(r.ID, cookbook.RecipePatch{Servings: new(int)})
		if err != nil {
			t.Fatalf("UpdateRecipe() error = %v", err)
		}
		if got.UpdatedAt.Before(before) {
			t.Errorf("UpdatedAt = %v, earlier than %v", got.UpdatedAt, before)
		}
	})
}

func TestCookbookService_DeleteRecipe(t *testing.T) {
	svc := testutil.NewTestServices(t, testutil.NewTestStore())
	svc.Register(t, "bob")
	svc.Register(t, "ala")
	first := addRecipe(t, svc, "Żurek")
	second := addRecipe(t, svc, "Barszcz")

	svc.LoginAs(t, "bob")
	if err := svc.Cookbook.DeleteRecipe(first.ID); !errors.Is(err, cookbook.ErrForbidden) {
		t.Errorf("DeleteRecipe() by stranger error = %v, want ErrForbidden", err)
	}

	svc.LoginAs(t, "ala")
	if err := svc.Cookbook.DeleteRecipe(first.ID); err != nil {
		t.Fatalf("DeleteRecipe() by author error = %v", err)
	}
	if err := svc.Cookbook.DeleteRecipe(first.ID); !errors.Is(err, cookbook.ErrNotFound) {
		t.Errorf("second DeleteRecipe() error = %v, want ErrNotFound", err)
	}

	svc.LoginAdmin(t)
	if err := svc.Cookbook.DeleteRecipe(second.ID); err != nil {
		t.Errorf("DeleteRecipe() by admin error = %v", err)
	}

	reopened := testutil.OpenTestServices(t, svc.Store, svc.Clock, svc.IDs)
	if n := len(reopened.Cookbook.Recipes()); n != 0 {
		t.Errorf("len(Recipes()) after reload = %d, want 0", n)
	}
}

func TestCookbookService_RecipeListings(t *testing.T) {
	svc := testutil.NewTestServices(t, testutil.NewTestStore())
	bob := svc.Register(t, "bob")
	b1 := addRecipe(t, svc, "Kotlet")
	svc.Clock.Advance(time.Minute)
	ala := svc.Register(t, "ala")
	a1 := addRecipe(t, svc, "Gołąbki")
	svc.Clock.Advance(time.Minute)
	a2 := addRecipe(t, svc, "Naleśniki")

	t.Run("newest first", func(t *testing.T) {
		want := []string{a2.ID, a1.ID, b1.ID}
		if diff := cmp.Diff(want, recipeIDs(svc.Cookbook.Recipes())); diff != "" {
			t.Errorf("Recipes() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("by author", func(t *testing.T) {
		if diff := cmp.Diff([]string{a2.ID, a1.ID}, recipeIDs(svc.Cookbook.UserRecipes(ala.ID))); diff != "" {
			t.Errorf("UserRecipes(ala) mismatch (-want +got):\n%s", diff)
		}
		if diff := cmp.Diff([]string{b1.ID}, recipeIDs(svc.Cookbook.UserRecipes(bob.ID))); diff != "" {
			t.Errorf("UserRecipes(bob) mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("favorites", func(t *testing.T) {
		if _, err := svc.Cookbook.FavoriteRecipe(b1.ID); err != nil {
			t.Fatal(err)
		}
		if diff := cmp.Diff([]string{b1.ID}, recipeIDs(svc.Cookbook.FavoriteRecipes())); diff != "" {
			t.Errorf("FavoriteRecipes() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("friends", func(t *testing.T) {
		if got := svc.Cookbook.FriendRecipes(); len(got) != 0 {
			t.Errorf("FriendRecipes() without friends = %v", recipeIDs(got))
		}
		req, err := svc.Cookbook.SendFriendRequest(bob.ID)
		if err != nil {
			t.Fatal(err)
		}
		svc.LoginAs(t, "bob")
		if err := svc.Cookbook.AcceptFriendRequest(req.ID); err != nil {
			t.Fatal(err)
		}
		if diff := cmp.Diff([]string{a2.ID, a1.ID}, recipeIDs(svc.Cookbook.FriendRecipes())); diff != "" {
			t.Errorf("FriendRecipes() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("anonymous", func(t *testing.T) {
		if err := svc.Identity.Logout(); err != nil {
			t.Fatal(err)
		}
		if got := svc.Cookbook.FavoriteRecipes(); got != nil {
			t.Errorf("FavoriteRecipes() anonymous = %v", recipeIDs(got))
		}
		if n := len(svc.Cookbook.Recipes()); n != 3 {
			t.Errorf("len(Recipes()) anonymous = %d, want 3", n)
		}
	})
}

func TestCookbookService_LikeAndFavorite(t *testing.T) {
	toggles := []struct {
		name   string
		toggle func(*cookbook.CookbookService, string) (bool, error)
		ids    func(model.Recipe) []string
	}{
		{"like", (*cookbook.CookbookService).LikeRecipe, func(r model.Recipe) []string { return r.Likes }},
		{"favorite", (*cookbook.CookbookService).FavoriteRecipe, func(r model.Recipe) []string { return r.Favorites }},
	}

	for _, tt := range toggles {
		t.Run(tt.name, func(t *testing.T) {
			svc := testutil.NewTestServices(t, testutil.NewTestStore())
			svc.Register(t, "ala")
			r := addRecipe(t, svc, "Sernik")
			bob := svc.Register(t, "bob")

			on, err := tt.toggle(svc.Cookbook, r.ID)
			if err != nil || !on {
				t.Fatalf("first toggle = %v, %v; want true, nil", on, err)
			}
			if diff := cmp.Diff([]string{bob.ID}, tt.ids(mustRecipe(t, svc, r.ID))); diff != "" {
				t.Errorf("ids after first toggle (-want +got):\n%s", diff)
			}

			svc.Clock.Advance(time.Minute)
			on, err = tt.toggle(svc.Cookbook, r.ID)
			if err != nil || on {
				t.Fatalf("second toggle = %v, %v; want false, nil", on, err)
			}
			got := mustRecipe(t, svc, r.ID)
			if len(tt.ids(got)) != 0 {
				t.Errorf("ids after second toggle = %v, want none", tt.ids(got))
			}
			if !got.UpdatedAt.Equal(svc.Clock.Now()) {
				t.Errorf("UpdatedAt = %v, want %v", got.UpdatedAt, svc.Clock.Now())
			}

			if _, err := tt.toggle(svc.Cookbook, "missing"); !errors.Is(err, cookbook.ErrNotFound) {
				t.Errorf("toggle(missing) error = %v, want ErrNotFound", err)
			}
			if err := svc.Identity.Logout(); err != nil {
				t.Fatal(err)
			}
			if _, err := tt.toggle(svc.Cookbook, r.ID); !errors.Is(err, cookbook.ErrNotAuthenticated) {
				t.Errorf("anonymous toggle error = %v, want ErrNotAuthenticated", err)
			}
		})
	}
}

func TestCookbookService_LikeNotifiesAuthor(t *testing.T) {
	svc := testutil.NewTestServices(t, testutil.NewTestStore())
	svc.Register(t, "ala")
	r := addRecipe(t, svc, "Sernik")

	// Own likes do not notify.
	if _, err := svc.Cookbook.LikeRecipe(r.ID); err != nil {
		t.Fatal(err)
	}
	if n := svc.Cookbook.UnreadNotificationCount(); n != 0 {
		t.Errorf("UnreadNotificationCount() after own like = %d, want 0", n)
	}

	svc.Register(t, "bob")
	for i := 0; i < 3; i++ { // like, unlike, like
		if _, err := svc.Cookbook.LikeRecipe(r.ID); err != nil {
			t.Fatal(err)
		}
	}

	svc.LoginAs(t, "ala")
	got := svc.Cookbook.Notifications()
	if len(got) != 2 {
		t.Fatalf("len(Notifications()) = %d, want 2 (one per like)", len(got))
	}
	for _, n := range got {
		if n.Type != model.NotificationRecipeLiked || n.RelatedID != r.ID {
			t.Errorf("notification = %+v", n)
		}
	}
}

func TestCookbookService_IncrementRecipeViewCount(t *testing.T) {
	svc := testutil.NewTestServices(t, testutil.NewTestStore())
	svc.Register(t, "ala")
	r := addRecipe(t, svc, "Rosół")
	if err := svc.Identity.Logout(); err != nil {
		t.Fatal(err)
	}

	for want := 1; want <= 3; want++ {
		got, err := svc.Cookbook.IncrementRecipeViewCount(r.ID)
		if err != nil {
			t.Fatalf("IncrementRecipeViewCount() error = %v", err)
		}
		if got != want {
			t.Errorf("IncrementRecipeViewCount() = %d, want %d", got, want)
		}
	}
	if _, err := svc.Cookbook.IncrementRecipeViewCount("missing"); !errors.Is(err, cookbook.ErrNotFound) {
		t.Errorf("IncrementRecipeViewCount(missing) error = %v, want ErrNotFound", err)
	}

	reopened := testutil.OpenTestServices(t, svc.Store, svc.Clock, svc.IDs)
	if got := mustRecipe(t, reopened, r.ID).ViewCount; got != 3 {
		t.Errorf("persisted ViewCount = %d, want 3", got)
	}
}

func TestCookbookService_Comments(t *testing.T) {
	svc := testutil.NewTestServices(t, testutil.NewTestStore())
	svc.Register(t, "ala")
	r := addRecipe(t, svc, "Placki")
	bob := svc.Register(t, "bob")
	svc.Register(t, "cez")

	svc.LoginAs(t, "bob")
	if _, err := svc.Cookbook.AddComment(r.ID, "   "); !errors.Is(err, cookbook.ErrValidation) {
		t.Errorf("AddComment(blank) error = %v, want ErrValidation", err)
	}
	if _, err := svc.Cookbook.AddComment("missing", "Pyszne"); !errors.Is(err, cookbook.ErrNotFound) {
		t.Errorf("AddComment(missing) error = %v, want ErrNotFound", err)
	}

	bobs, err := svc.Cookbook.AddComment(r.ID, " Pyszne! ")
	if err != nil {
		t.Fatalf("AddComment() error = %v", err)
	}
	want := model.Comment{
		ID:             bobs.ID,
		AuthorID:       bob.ID,
		AuthorUsername: "bob",
		Text:           "Pyszne!",
		CreatedAt:      svc.Clock.Now(),
	}
	if diff := cmp.Diff(want, bobs); diff != "" {
		t.Errorf("AddComment() mismatch (-want +got):\n%s", diff)
	}
	second, err := svc.Cookbook.AddComment(r.ID, "Dodałbym cukru")
	if err != nil {
		t.Fatal(err)
	}

	svc.LoginAs(t, "cez")
	if err := svc.Cookbook.DeleteComment(r.ID, bobs.ID); !errors.Is(err, cookbook.ErrForbidden) {
		t.Errorf("DeleteComment() by stranger error = %v, want ErrForbidden", err)
	}

	svc.LoginAs(t, "bob")
	if err := svc.Cookbook.DeleteComment(r.ID, bobs.ID); err != nil {
		t.Errorf("DeleteComment() by comment author error = %v", err)
	}
	if err := svc.Cookbook.DeleteComment(r.ID, bobs.ID); !errors.Is(err, cookbook.ErrNotFound) {
		t.Errorf("second DeleteComment() error = %v, want ErrNotFound", err)
	}

	svc.LoginAs(t, "ala")
	if n := svc.Cookbook.UnreadNotificationCount(); n != 2 {
		t.Errorf("UnreadNotificationCount() = %d, want 2 comment notifications", n)
	}
	if err := svc.Cookbook.DeleteComment(r.ID, second.ID); err != nil {
		t.Errorf("DeleteComment() by recipe author error = %v", err)
	}
	if got := mustRecipe(t, svc, r.ID).Comments; len(got) != 0 {
		t.Errorf("Comments = %+v, want none", got)
	}
}

func TestCookbookService_FailedWriteKeepsRecipes(t *testing.T) {
	s := testutil.NewFailingStore(testutil.NewTestStore())
	svc := testutil.NewTestServices(t, s)
	svc.Register(t, "ala")
	r := addRecipe(t, svc, "Kopytka")

	s.Fail()
	if _, err := svc.Cookbook.AddRecipe(pierogiInput()); !errors.Is(err, testutil.ErrInjected) {
		t.Errorf("AddRecipe() error = %v, want ErrInjected", err)
	}
	if _, err := svc.Cookbook.LikeRecipe(r.ID); !errors.Is(err, testutil.ErrInjected) {
		t.Errorf("LikeRecipe() error = %v, want ErrInjected", err)
	}
	if _, err := svc.Cookbook.IncrementRecipeViewCount(r.ID); !errors.Is(err, testutil.ErrInjected) {
		t.Errorf("IncrementRecipeViewCount() error = %v, want ErrInjected", err)
	}
	if err := svc.Cookbook.DeleteRecipe(r.ID); !errors.Is(err, testutil.ErrInjected) {
		t.Errorf("DeleteRecipe() error = %v, want ErrInjected", err)
	}

	if diff := cmp.Diff([]model.Recipe{r}, svc.Cookbook.Recipes()); diff != "" {
		t.Errorf("Recipes() changed by failed writes (-want +got):\n%s", diff)
	}
}
