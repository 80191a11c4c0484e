package main

import (
	"fmt"
	"strings"

	"cookbook-go/internal/model"
)

const timeLayout = "2006-01-02 15:04"

func printUser(u model.User) {
	fmt.Printf("ID:       %s\n", u.ID)
	fmt.Printf("Username: %s\n", u.Username)
	fmt.Printf("Name:     %s\n", u.DisplayName)
	fmt.Printf("Email:    %s\n", u.Email)
	fmt.Printf("Role:     %s\n", u.Role)
	fmt.Printf("Verified: %t\n", u.IsVerified)
	if u.Bio != "" {
		fmt.Printf("Bio:      %s\n", u.Bio)
	}
}

func printUserList(users []model.User) {
	if len(users) == 0 {
		fmt.Println("No users found.")
		return
	}
	for _, u := range users {
		fmt.Printf("%-36s  %-16s  %-5s  %s\n", u.ID, u.Username, u.Role, u.Email)
	}
}

func printRecipeList(rs []model.Recipe) {
	if len(rs) == 0 {
		fmt.Println("No recipes found.")
		return
	}
	for _, r := range rs {
		fmt.Printf("%-36s  %s  %-16s  %s\n", r.ID, r.CreatedAt.Format(timeLayout), r.AuthorUsername, r.Title)
	}
}

func printRecipe(r model.Recipe) {
	fmt.Printf("%s\n", r.Title)
	fmt.Printf("by %s, %s\n\n", r.AuthorUsername, r.CreatedAt.Format(timeLayout))

	var facts []string
	if r.CookingTime > 0 {
		facts = append(facts, fmt.Sprintf("%d min", r.CookingTime))
	}
	if r.Servings > 0 {
		facts = append(facts, fmt.Sprintf("%d servings", r.Servings))
	}
	if r.Difficulty != "" {
		facts = append(facts, string(r.Difficulty))
	}
	if r.Category != "" {
		facts = append(facts, r.Category)
	}
	if len(facts) > 0 {
		fmt.Println(strings.Join(facts, " | "))
	}
	if len(r.Tags) > 0 {
		fmt.Printf("#%s\n", strings.Join(r.Tags, " #"))
	}

	fmt.Println("\nIngredients:")
	for _, ing := range r.Ingredients {
		fmt.Printf("  - %s\n", ing)
	}
	fmt.Printf("\n%s\n\n", r.Instructions)
	fmt.Printf("%d like(s)  %d favorite(s)  %d view(s)\n", len(r.Likes), len(r.Favorites), r.ViewCount)

	for _, c := range r.Comments {
		fmt.Printf("\n%s  %s  %s\n  %s\n", c.ID, c.AuthorUsername, c.CreatedAt.Format(timeLayout), c.Text)
	}
}

type shoppingGroup struct {
	Title string
	Items []model.ShoppingListItem
}

// groupShopping groups items by recipe title in order of first appearance.
// Items without a title form the "Other" group, which always comes last.
func groupShopping(items []model.ShoppingListItem) []shoppingGroup {
	var groups []shoppingGroup
	index := make(map[string]int)
	var other []model.ShoppingListItem
	for _, it := range items {
		if it.RecipeTitle == "" {
			other = append(other, it)
			continue
		}
		i, ok := index[it.RecipeTitle]
		if !ok {
			i = len(groups)
			index[it.RecipeTitle] = i
			groups = append(groups, shoppingGroup{Title: it.RecipeTitle})
		}
		groups[i].Items = append(groups[i].Items, it)
	}
	if len(other) > 0 {
		groups = append(groups, shoppingGroup{Title: "Other", Items: other})
	}
	return groups
}

func printShoppingList(items []model.ShoppingListItem) {
	if len(items) == 0 {
		fmt.Println("Shopping list is empty.")
		return
	}
	for _, g := range groupShopping(items) {
		fmt.Printf("%s:\n", g.Title)
		for _, it := range g.Items {
			box := "[ ]"
			if it.Checked {
				box = "[x]"
			}
			fmt.Printf("  %s %s  %s\n", box, it.Ingredient, it.ID)
		}
	}
}
