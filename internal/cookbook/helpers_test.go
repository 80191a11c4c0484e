package cookbook_test

import (
	"testing"

	"cookbook-go/internal/cookbook"
	"cookbook-go/internal/model"
	"cookbook-go/internal/testutil"
)

func pierogiInput() cookbook.RecipeInput {
	return cookbook.RecipeInput{
		Title:        "Pierogi ruskie",
		Ingredients:  []string{"mąka", "ziemniaki", "twaróg", "cebula"},
		Instructions: "Zagnieść ciasto, nałożyć farsz, ugotować.",
		CookingTime:  90,
		Servings:     4,
		Difficulty:   model.DifficultyMedium,
		Category:     "obiad",
		Tags:         []string{"polskie", "wegetariańskie"},
	}
}

// addRecipe publishes a recipe as the logged-in user, titled title.
func addRecipe(t *testing.T, svc *testutil.Services, title string) model.Recipe {
	t.Helper()
	in := pierogiInput()
	in.Title = title
	r, err := svc.Cookbook.AddRecipe(in)
	if err != nil {
		t.Fatalf("AddRecipe(%q) error = %v", title, err)
	}
	return r
}

func recipeIDs(rs []model.Recipe) []string {
	ids := make([]string, len(rs))
	for i, r := range rs {
		ids[i] = r.ID
	}
	return ids
}

func userIDs(us []model.User) []string {
	ids := make([]string, len(us))
	for i, u := range us {
		ids[i] = u.ID
	}
	return ids
}

func mustRecipe(t *testing.T, svc *testutil.Services, id string) model.Recipe {
	t.Helper()
	r, ok := svc.Cookbook.RecipeByID(id)
	if !ok {
		t.Fatalf("RecipeByID(%s) not found", id)
	}
	return r
}
