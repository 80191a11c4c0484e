package main

import (
	"fmt"
	"strings"

	"cookbook-go/internal/cookbook"
	"cookbook-go/internal/model"

	"github.com/spf13/cobra"
)

// recipe command
var recipeCmd = &cobra.Command{
	Use:   "recipe",
	Short: "Manage recipes",
}

var recipeAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a recipe",
	RunE: func(cmd *cobra.Command, args []string) error {
		f := cmd.Flags()
		in := cookbook.RecipeInput{}
		in.Title, _ = f.GetString("title")
		in.Ingredients, _ = f.GetStringArray("ingredient")
		in.Instructions, _ = f.GetString("instructions")
		in.ImageURL, _ = f.GetString("image")
		in.CookingTime, _ = f.GetInt("time")
		in.Servings, _ = f.GetInt("servings")
		in.Category, _ = f.GetString("category")
		in.Tags, _ = f.GetStringSlice("tag")
		difficulty, _ := f.GetString("difficulty")
		in.Difficulty = parseDifficulty(difficulty)

		a, err := newApp(cmd, "AddRecipe")
		if err != nil {
			return err
		}
		defer a.Close()

		r, err := a.Cookbook().AddRecipe(in)
		if err != nil {
			return a.Record(fmt.Errorf("adding recipe: %w", err))
		}
		fmt.Printf("Added recipe %s\n", r.ID)
		return nil
	},
}

var recipeUpdateCmd = &cobra.Command{
	Use:   "update RECIPE_ID",
	Short: "Change fields of a recipe",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f := cmd.Flags()
		var patch cookbook.RecipePatch
		if f.Changed("title") {
			v, _ := f.GetString("title")
			patch.Title = &v
		}
		if f.Changed("ingredient") {
			v, _ := f.GetStringArray("ingredient")
			patch.Ingredients = &v
		}
		if f.Changed("instructions") {
			v, _ := f.GetString("instructions")
			patch.Instructions = &v
		}
		if f.Changed("image") {
			v, _ := f.GetString("image")
			patch.ImageURL = &v
		}
		if f.Changed("time") {
			v, _ := f.GetInt("time")
			patch.CookingTime = &v
		}
		if f.Changed("servings") {
			v, _ := f.GetInt("servings")
			patch.Servings = &v
		}
		if f.Changed("difficulty") {
			s, _ := f.GetString("difficulty")
			v := parseDifficulty(s)
			patch.Difficulty = &v
		}
		if f.Changed("category") {
			v, _ := f.GetString("category")
			patch.Category = &v
		}
		if f.Changed("tag") {
			v, _ := f.GetStringSlice("tag")
			patch.Tags = &v
		}

		a, err := newApp(cmd, "UpdateRecipe")
		if err != nil {
			return err
		}
		defer a.Close()

		r, err := a.Cookbook().UpdateRecipe(args[0], patch)
		if err != nil {
			return a.Record(fmt.Errorf("updating recipe: %w", err))
		}
		printRecipe(r)
		return nil
	},
}

var recipeDeleteCmd = &cobra.Command{
	Use:   "delete RECIPE_ID",
	Short: "Delete a recipe",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd, "DeleteRecipe")
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.Cookbook().DeleteRecipe(args[0]); err != nil {
			return a.Record(fmt.Errorf("deleting recipe: %w", err))
		}
		fmt.Printf("Deleted recipe %s\n", args[0])
		return nil
	},
}

var recipeShowCmd = &cobra.Command{
	Use:   "show RECIPE_ID",
	Short: "Show a recipe",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd, "ShowRecipe")
		if err != nil {
			return err
		}
		defer a.Close()

		r, err := a.ShowRecipe(args[0])
		if err != nil {
			return a.Record(err)
		}
		printRecipe(r)
		return nil
	},
}

var recipeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recipes, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		mine, _ := cmd.Flags().GetBool("mine")
		author, _ := cmd.Flags().GetString("author")
		favorites, _ := cmd.Flags().GetBool("favorites")
		friends, _ := cmd.Flags().GetBool("friends")

		a, err := newApp(cmd, "ListRecipes")
		if err != nil {
			return err
		}
		defer a.Close()

		svc := a.Cookbook()
		var rs []model.Recipe
		switch {
		case mine:
			me, ok := a.Identity().CurrentUser()
			if !ok {
				return a.Record(cookbook.ErrNotAuthenticated)
			}
			rs = svc.UserRecipes(me.ID)
		case author != "":
			rs = svc.UserRecipes(author)
		case favorites:
			rs = svc.FavoriteRecipes()
		case friends:
			rs = svc.FriendRecipes()
		default:
			rs = svc.Recipes()
		}
		printRecipeList(rs)
		return nil
	},
}

var recipeSearchCmd = &cobra.Command{
	Use:   "search [TEXT]",
	Short: "Discover recipes",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f := cmd.Flags()
		var q cookbook.RecipeQuery
		if len(args) > 0 {
			q.Text = args[0]
		}
		q.Category, _ = f.GetString("category")
		q.Tag, _ = f.GetString("tag")
		q.MaxCookingTime, _ = f.GetInt("max-time")
		difficulty, _ := f.GetString("difficulty")
		q.Difficulty = parseDifficulty(difficulty)
		sort, _ := f.GetString("sort")
		q.Sort = cookbook.RecipeSort(sort)

		a, err := newApp(cmd, "SearchRecipes")
		if err != nil {
			return err
		}
		defer a.Close()

		printRecipeList(a.Cookbook().SearchRecipes(q))
		return nil
	},
}

var recipeTrendingCmd = &cobra.Command{
	Use:   "trending",
	Short: "Most popular recipes",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		a, err := newApp(cmd, "TrendingRecipes")
		if err != nil {
			return err
		}
		defer a.Close()

		for i, r := range a.Cookbook().TrendingRecipes(limit) {
			fmt.Printf("%2d. %-5d %s  %s\n", i+1, cookbook.TrendingScore(r), r.ID, r.Title)
		}
		return nil
	},
}

var recipeLikeCmd = &cobra.Command{
	Use:   "like RECIPE_ID",
	Short: "Like or unlike a recipe",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return toggleRecipe(cmd, "LikeRecipe", args[0], (*cookbook.CookbookService).LikeRecipe, "Liked", "Unliked")
	},
}

var recipeFavoriteCmd = &cobra.Command{
	Use:   "favorite RECIPE_ID",
	Short: "Add or remove a recipe from favorites",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return toggleRecipe(cmd, "FavoriteRecipe", args[0], (*cookbook.CookbookService).FavoriteRecipe, "Favorited", "Unfavorited")
	},
}

func toggleRecipe(cmd *cobra.Command, operation, id string, toggle func(*cookbook.CookbookService, string) (bool, error), on, off string) error {
	a, err := newApp(cmd, operation)
	if err != nil {
		return err
	}
	defer a.Close()

	set, err := toggle(a.Cookbook(), id)
	if err != nil {
		return a.Record(err)
	}
	if set {
		fmt.Printf("%s %s\n", on, id)
	} else {
		fmt.Printf("%s %s\n", off, id)
	}
	return nil
}

var recipeCommentCmd = &cobra.Command{
	Use:   "comment RECIPE_ID TEXT",
	Short: "Comment on a recipe",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd, "AddComment")
		if err != nil {
			return err
		}
		defer a.Close()

		c, err := a.Cookbook().AddComment(args[0], args[1])
		if err != nil {
			return a.Record(fmt.Errorf("adding comment: %w", err))
		}
		fmt.Printf("Added comment %s\n", c.ID)
		return nil
	},
}

var recipeUncommentCmd = &cobra.Command{
	Use:   "delete-comment RECIPE_ID COMMENT_ID",
	Short: "Delete a comment",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd, "DeleteComment")
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.Cookbook().DeleteComment(args[0], args[1]); err != nil {
			return a.Record(fmt.Errorf("deleting comment: %w", err))
		}
		fmt.Printf("Deleted comment %s\n", args[1])
		return nil
	},
}

// parseDifficulty accepts the stored names and their English equivalents.
// Unknown values pass through so the service reports them.
func parseDifficulty(s string) model.Difficulty {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "easy":
		return model.DifficultyEasy
	case "medium":
		return model.DifficultyMedium
	case "hard":
		return model.DifficultyHard
	}
	return model.Difficulty(strings.TrimSpace(s))
}

func addRecipeFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.String("title", "", "Title")
	f.StringArrayP("ingredient", "i", nil, "Ingredient (repeatable)")
	f.String("instructions", "", "Preparation steps")
	f.String("image", "", "Image URL")
	f.Int("time", 0, "Cooking time in minutes")
	f.Int("servings", 0, "Number of servings")
	f.String("difficulty", "", "easy, medium or hard")
	f.String("category", "", "Category")
	f.StringSlice("tag", nil, "Tags (comma separated or repeatable)")
}

func init() {
	addRecipeFlags(recipeAddCmd)
	addRecipeFlags(recipeUpdateCmd)

	recipeListCmd.Flags().Bool("mine", false, "Only my recipes")
	recipeListCmd.Flags().String("author", "", "Only recipes by this user id")
	recipeListCmd.Flags().Bool("favorites", false, "Only my favorites")
	recipeListCmd.Flags().Bool("friends", false, "Only recipes by my friends")

	recipeSearchCmd.Flags().String("category", "", "Category")
	recipeSearchCmd.Flags().String("difficulty", "", "easy, medium or hard")
	recipeSearchCmd.Flags().String("tag", "", "Tag")
	recipeSearchCmd.Flags().Int("max-time", 0, "Maximum cooking time in minutes")
	recipeSearchCmd.Flags().String("sort", string(cookbook.SortNewest), "newest, popular or quickest")

	recipeTrendingCmd.Flags().IntP("limit", "n", 10, "Maximum number of recipes to show")

	recipeCmd.AddCommand(recipeAddCmd)
	recipeCmd.AddCommand(recipeUpdateCmd)
	recipeCmd.AddCommand(recipeDeleteCmd)
	recipeCmd.AddCommand(recipeShowCmd)
	recipeCmd.AddCommand(recipeListCmd)
	recipeCmd.AddCommand(recipeSearchCmd)
	recipeCmd.AddCommand(recipeTrendingCmd)
	recipeCmd.AddCommand(recipeLikeCmd)
	recipeCmd.AddCommand(recipeFavoriteCmd)
	recipeCmd.AddCommand(recipeCommentCmd)
	recipeCmd.AddCommand(recipeUncommentCmd)

	rootCmd.AddCommand(recipeCmd)
}
