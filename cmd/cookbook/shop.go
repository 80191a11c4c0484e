package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// shop command
var shopCmd = &cobra.Command{
	Use:   "shop",
	Short: "Manage the shopping list",
}

var shopListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show the shopping list grouped by recipe",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd, "ShoppingList")
		if err != nil {
			return err
		}
		defer a.Close()

		items, err := a.Cookbook().ShoppingList()
		if err != nil {
			return a.Record(err)
		}
		printShoppingList(items)
		return nil
	},
}

var shopAddCmd = &cobra.Command{
	Use:   "add INGREDIENT",
	Short: "Add an item",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		recipeTitle, _ := cmd.Flags().GetString("recipe")

		a, err := newApp(cmd, "AddShoppingItem")
		if err != nil {
			return err
		}
		defer a.Close()

		item, err := a.Cookbook().AddShoppingItem(args[0], recipeTitle)
		if err != nil {
			return a.Record(fmt.Errorf("adding item: %w", err))
		}
		fmt.Printf("Added %s\n", item.ID)
		return nil
	},
}

var shopAddRecipeCmd = &cobra.Command{
	Use:   "add-recipe RECIPE_ID",
	Short: "Add every ingredient of a recipe",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd, "AddRecipeToShoppingList")
		if err != nil {
			return err
		}
		defer a.Close()

		items, err := a.Cookbook().AddRecipeToShoppingList(args[0])
		if err != nil {
			return a.Record(fmt.Errorf("adding recipe ingredients: %w", err))
		}
		fmt.Printf("Added %d item(s)\n", len(items))
		return nil
	},
}

var shopToggleCmd = &cobra.Command{
	Use:   "toggle ITEM_ID",
	Short: "Check or uncheck an item",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd, "ToggleShoppingItem")
		if err != nil {
			return err
		}
		defer a.Close()

		checked, err := a.Cookbook().ToggleShoppingItem(args[0])
		if err != nil {
			return a.Record(err)
		}
		if checked {
			fmt.Printf("Checked %s\n", args[0])
		} else {
			fmt.Printf("Unchecked %s\n", args[0])
		}
		return nil
	},
}

var shopRemoveCmd = &cobra.Command{
	Use:   "remove ITEM_ID",
	Short: "Remove an item",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd, "RemoveShoppingItem")
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.Cookbook().RemoveShoppingItem(args[0]); err != nil {
			return a.Record(err)
		}
		fmt.Printf("Removed %s\n", args[0])
		return nil
	},
}

var shopClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Empty the shopping list",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd, "ClearShoppingList")
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.Cookbook().ClearShoppingList(); err != nil {
			return a.Record(err)
		}
		fmt.Println("Shopping list cleared.")
		return nil
	},
}

func init() {
	shopAddCmd.Flags().String("recipe", "", "Recipe title to group the item under")

	shopCmd.AddCommand(shopListCmd)
	shopCmd.AddCommand(shopAddCmd)
	shopCmd.AddCommand(shopAddRecipeCmd)
	shopCmd.AddCommand(shopToggleCmd)
	shopCmd.AddCommand(shopRemoveCmd)
	shopCmd.AddCommand(shopClearCmd)

	rootCmd.AddCommand(shopCmd)
}
