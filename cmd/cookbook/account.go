package main

import (
	"fmt"

	"cookbook-go/internal/cookbook"
	"cookbook-go/internal/model"

	"github.com/spf13/cobra"
)

var registerCmd = &cobra.Command{
	Use:   "register USERNAME EMAIL",
	Short: "Create an account and log in",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		password, err := prompter.Secret("Password")
		if err != nil {
			return fmt.Errorf("reading password: %w", err)
		}

		a, err := newApp(cmd, "Register")
		if err != nil {
			return err
		}
		defer a.Close()

		u, err := a.Identity().Register(cmd.Context(), args[0], args[1], password)
		if err != nil {
			return a.Record(fmt.Errorf("registering: %w", err))
		}
		fmt.Printf("Registered and logged in as %s (%s)\n", u.Username, u.ID)
		return nil
	},
}

var loginCmd = &cobra.Command{
	Use:   "login EMAIL",
	Short: "Log in",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		password, err := prompter.Secret("Password")
		if err != nil {
			return fmt.Errorf("reading password: %w", err)
		}

		a, err := newApp(cmd, "Login")
		if err != nil {
			return err
		}
		defer a.Close()

		u, err := a.Identity().Login(cmd.Context(), args[0], password)
		if err != nil {
			return a.Record(err)
		}
		fmt.Printf("Logged in as %s\n", u.Username)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd, "Logout")
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.Identity().Logout(); err != nil {
			return a.Record(err)
		}
		fmt.Println("Logged out.")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the logged-in user",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd, "CurrentUser")
		if err != nil {
			return err
		}
		defer a.Close()

		u, ok := a.Identity().CurrentUser()
		if !ok {
			fmt.Println("Not logged in.")
			return nil
		}
		printUser(u)
		fmt.Printf("Unread:   %d notification(s)\n", a.Cookbook().UnreadNotificationCount())
		return nil
	},
}

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Update display name or bio",
	RunE: func(cmd *cobra.Command, args []string) error {
		var update cookbook.ProfileUpdate
		if cmd.Flags().Changed("name") {
			name, _ := cmd.Flags().GetString("name")
			update.DisplayName = &name
		}
		if cmd.Flags().Changed("bio") {
			bio, _ := cmd.Flags().GetString("bio")
			update.Bio = &bio
		}

		a, err := newApp(cmd, "UpdateProfile")
		if err != nil {
			return err
		}
		defer a.Close()

		u, err := a.Identity().UpdateProfile(update)
		if err != nil {
			return a.Record(fmt.Errorf("updating profile: %w", err))
		}
		printUser(u)
		return nil
	},
}

// users command
var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Find and administer users",
}

var usersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all users",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd, "AllUsers")
		if err != nil {
			return err
		}
		defer a.Close()

		printUserList(a.Identity().AllUsers())
		return nil
	},
}

var usersSearchCmd = &cobra.Command{
	Use:   "search QUERY",
	Short: "Search users by username or email",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd, "SearchUsers")
		if err != nil {
			return err
		}
		defer a.Close()

		printUserList(a.Cookbook().SearchUsers(args[0]))
		return nil
	},
}

var usersRoleCmd = &cobra.Command{
	Use:   "role USER_ID ROLE",
	Short: "Set a user's role (admin only)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd, "UpdateUserRole")
		if err != nil {
			return err
		}
		defer a.Close()

		verified, _ := cmd.Flags().GetBool("verified")
		if !cmd.Flags().Changed("verified") {
			if u, ok := a.Identity().User(args[0]); ok {
				verified = u.IsVerified
			}
		}

		if err := a.Identity().UpdateUserRole(args[0], model.Role(args[1]), verified); err != nil {
			return a.Record(fmt.Errorf("updating role: %w", err))
		}
		fmt.Printf("User %s is now %s (verified: %t)\n", args[0], args[1], verified)
		return nil
	},
}

var usersDeleteCmd = &cobra.Command{
	Use:   "delete USER_ID",
	Short: "Delete a user and everything they own (admin only)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd, "DeleteUser")
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.Cookbook().DeleteUser(args[0]); err != nil {
			return a.Record(fmt.Errorf("deleting user: %w", err))
		}
		fmt.Printf("Deleted user %s\n", args[0])
		return nil
	},
}

func init() {
	profileCmd.Flags().String("name", "", "Display name")
	profileCmd.Flags().String("bio", "", "Short bio")

	usersCmd.AddCommand(usersListCmd)
	usersCmd.AddCommand(usersSearchCmd)
	usersCmd.AddCommand(usersRoleCmd)
	usersCmd.AddCommand(usersDeleteCmd)
	usersRoleCmd.Flags().Bool("verified", false, "Mark the user as verified")

	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(profileCmd)
	rootCmd.AddCommand(usersCmd)
}
