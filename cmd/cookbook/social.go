package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// friend command
var friendCmd = &cobra.Command{
	Use:   "friend",
	Short: "Manage friends",
}

var friendRequestCmd = &cobra.Command{
	Use:   "request USER_ID",
	Short: "Send a friend request",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd, "SendFriendRequest")
		if err != nil {
			return err
		}
		defer a.Close()

		req, err := a.Cookbook().SendFriendRequest(args[0])
		if err != nil {
			return a.Record(fmt.Errorf("sending friend request: %w", err))
		}
		fmt.Printf("Sent friend request %s\n", req.ID)
		return nil
	},
}

var friendAcceptCmd = &cobra.Command{
	Use:   "accept REQUEST_ID",
	Short: "Accept a friend request",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd, "AcceptFriendRequest")
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.Cookbook().AcceptFriendRequest(args[0]); err != nil {
			return a.Record(fmt.Errorf("accepting friend request: %w", err))
		}
		fmt.Printf("Accepted friend request %s\n", args[0])
		return nil
	},
}

var friendRejectCmd = &cobra.Command{
	Use:   "reject REQUEST_ID",
	Short: "Reject a friend request",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd, "RejectFriendRequest")
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.Cookbook().RejectFriendRequest(args[0]); err != nil {
			return a.Record(fmt.Errorf("rejecting friend request: %w", err))
		}
		fmt.Printf("Rejected friend request %s\n", args[0])
		return nil
	},
}

var friendListCmd = &cobra.Command{
	Use:   "list",
	Short: "List friends",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd, "Friends")
		if err != nil {
			return err
		}
		defer a.Close()

		printUserList(a.Cookbook().Friends())
		return nil
	},
}

var friendRequestsCmd = &cobra.Command{
	Use:   "requests",
	Short: "List pending friend requests",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd, "FriendRequests")
		if err != nil {
			return err
		}
		defer a.Close()

		in, out := a.Cookbook().IncomingRequests(), a.Cookbook().OutgoingRequests()
		if len(in) == 0 && len(out) == 0 {
			fmt.Println("No pending requests.")
			return nil
		}
		for _, r := range in {
			fmt.Printf("in   %s  from %s  %s\n", r.ID, r.FromUsername, r.CreatedAt.Format(timeLayout))
		}
		for _, r := range out {
			name := r.ToUserID
			if u, ok := a.Identity().User(r.ToUserID); ok {
				name = u.Username
			}
			fmt.Printf("out  %s  to %s  %s\n", r.ID, name, r.CreatedAt.Format(timeLayout))
		}
		return nil
	},
}

var friendRemoveCmd = &cobra.Command{
	Use:   "remove USER_ID",
	Short: "Remove a friend",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd, "RemoveFriend")
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.Cookbook().RemoveFriend(args[0]); err != nil {
			return a.Record(fmt.Errorf("removing friend: %w", err))
		}
		fmt.Printf("Removed friend %s\n", args[0])
		return nil
	},
}

// notifications command
var notificationsCmd = &cobra.Command{
	Use:   "notifications",
	Short: "Manage notifications",
}

var notificationsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List notifications, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd, "Notifications")
		if err != nil {
			return err
		}
		defer a.Close()

		ns := a.Cookbook().Notifications()
		if len(ns) == 0 {
			fmt.Println("No notifications.")
			return nil
		}
		for _, n := range ns {
			mark := "*"
			if n.Read {
				mark = " "
			}
			fmt.Printf("%s %s  %s  %s\n", mark, n.ID, n.CreatedAt.Format(timeLayout), n.Message)
		}
		return nil
	},
}

var notificationsReadCmd = &cobra.Command{
	Use:   "read NOTIFICATION_ID",
	Short: "Mark a notification as read",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd, "MarkNotificationRead")
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.Cookbook().MarkNotificationRead(args[0]); err != nil {
			return a.Record(err)
		}
		return nil
	},
}

var notificationsClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all notifications",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd, "ClearAllNotifications")
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.Cookbook().ClearAllNotifications(); err != nil {
			return a.Record(err)
		}
		fmt.Println("Notifications cleared.")
		return nil
	},
}

func init() {
	friendCmd.AddCommand(friendRequestCmd)
	friendCmd.AddCommand(friendAcceptCmd)
	friendCmd.AddCommand(friendRejectCmd)
	friendCmd.AddCommand(friendListCmd)
	friendCmd.AddCommand(friendRequestsCmd)
	friendCmd.AddCommand(friendRemoveCmd)

	notificationsCmd.AddCommand(notificationsListCmd)
	notificationsCmd.AddCommand(notificationsReadCmd)
	notificationsCmd.AddCommand(notificationsClearCmd)

	rootCmd.AddCommand(friendCmd)
	rootCmd.AddCommand(notificationsCmd)
}
