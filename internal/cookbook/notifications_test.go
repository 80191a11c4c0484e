package cookbook_test

import (
	"errors"
	"testing"
	"time"

	"cookbook-go/internal/cookbook"
	"cookbook-go/internal/model"
	"cookbook-go/internal/testutil"
)

func TestCookbookService_Notifications(t *testing.T) {
	svc := testutil.NewTestServices(t, testutil.NewTestStore())
	svc.Register(t, "ala")
	r := addRecipe(t, svc, "Makowiec")
	svc.Register(t, "bob")

	if _, err := svc.Cookbook.LikeRecipe(r.ID); err != nil {
		t.Fatal(err)
	}
	svc.Clock.Advance(time.Minute)
	if _, err := svc.Cookbook.AddComment(r.ID, "Jak u babci"); err != nil {
		t.Fatal(err)
	}

	t.Run("other users see none", func(t *testing.T) {
		if got := svc.Cookbook.Notifications(); len(got) != 0 {
			t.Errorf("bob Notifications() = %+v", got)
		}
	})

	svc.LoginAs(t, "ala")
	notes := svc.Cookbook.Notifications()

	t.Run("newest first", func(t *testing.T) {
		if len(notes) != 2 {
			t.Fatalf("len(Notifications()) = %d, want 2", len(notes))
		}
		if notes[0].Type != model.NotificationRecipeComment || notes[1].Type != model.NotificationRecipeLiked {
			t.Errorf("types = %s, %s; want comment then like", notes[0].Type, notes[1].Type)
		}
		if svc.Cookbook.UnreadNotificationCount() != 2 {
			t.Errorf("UnreadNotificationCount() = %d, want 2", svc.Cookbook.UnreadNotificationCount())
		}
	})

	t.Run("mark read is idempotent", func(t *testing.T) {
		for i := 0; i < 2; i++ {
			if err := svc.Cookbook.MarkNotificationRead(notes[1].ID); err != nil {
				t.Fatalf("MarkNotificationRead() #%d error = %v", i+1, err)
			}
		}
		if n := svc.Cookbook.UnreadNotificationCount(); n != 1 {
			t.Errorf("UnreadNotificationCount() = %d, want 1", n)
		}
		if err := svc.Cookbook.MarkNotificationRead("missing"); !errors.Is(err, cookbook.ErrNotFound) {
			t.Errorf("MarkNotificationRead(missing) error = %v, want ErrNotFound", err)
		}

		reopened := testutil.OpenTestServices(t, svc.Store, svc.Clock, svc.IDs)
		if n := reopened.Cookbook.UnreadNotificationCount(); n != 1 {
			t.Errorf("persisted UnreadNotificationCount() = %d, want 1", n)
		}
	})

	t.Run("cannot touch another user's notification", func(t *testing.T) {
		svc.LoginAs(t, "bob")
		if err := svc.Cookbook.MarkNotificationRead(notes[0].ID); !errors.Is(err, cookbook.ErrNotFound) {
			t.Errorf("MarkNotificationRead() error = %v, want ErrNotFound", err)
		}
		if err := svc.Cookbook.ClearAllNotifications(); err != nil {
			t.Fatal(err)
		}
		svc.LoginAs(t, "ala")
		if n := len(svc.Cookbook.Notifications()); n != 2 {
			t.Errorf("ala lost notifications to bob's clear: %d left", n)
		}
	})

	t.Run("clear all", func(t *testing.T) {
		if err := svc.Cookbook.ClearAllNotifications(); err != nil {
			t.Fatalf("ClearAllNotifications() error = %v", err)
		}
		if n := len(svc.Cookbook.Notifications()); n != 0 {
			t.Errorf("len(Notifications()) = %d, want 0", n)
		}
		if n := svc.Cookbook.UnreadNotificationCount(); n != 0 {
			t.Errorf("UnreadNotificationCount() = %d, want 0", n)
		}
	})

	t.Run("anonymous", func(t *testing.T) {
		if err := svc.Identity.Logout(); err != nil {
			t.Fatal(err)
		}
		if svc.Cookbook.Notifications() != nil || svc.Cookbook.UnreadNotificationCount() != 0 {
			t.Error("anonymous caller sees notifications")
		}
		if err := svc.Cookbook.ClearAllNotifications(); !errors.Is(err, cookbook.ErrNotAuthenticated) {
			t.Errorf("ClearAllNotifications() error = %v, want ErrNotAuthenticated", err)
		}
	})
}
