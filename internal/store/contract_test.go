package store

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"cookbook-go/internal/cookbook"
)

// runStoreContract exercises the behaviour every cookbook.Store must share.
func runStoreContract(t *testing.T, open func(t *testing.T) cookbook.Store) {
	t.Helper()

	t.Run("absent key", func(t *testing.T) {
		s := open(t)
		got, err := s.Get(cookbook.KeyRecipes)
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if got != nil {
			t.Errorf("Get() = %q, want nil", got)
		}
	})

	t.Run("set and get", func(t *testing.T) {
		s := open(t)
		if err := s.Set(cookbook.KeyUsers, []byte(`[{"id":"admin"}]`)); err != nil {
			t.Fatalf("Set() error = %v", err)
		}
		got, err := s.Get(cookbook.KeyUsers)
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if string(got) != `[{"id":"admin"}]` {
			t.Errorf("Get() = %q", got)
		}
	})

	t.Run("returned value is a copy", func(t *testing.T) {
		s := open(t)
		value := []byte("abc")
		if err := s.Set("k", value); err != nil {
			t.Fatalf("Set() error = %v", err)
		}
		value[0] = 'x'

		got, _ := s.Get("k")
		got[1] = 'y'

		again, _ := s.Get("k")
		if string(again) != "abc" {
			t.Errorf("Get() = %q, want %q", again, "abc")
		}
	})

	t.Run("set many", func(t *testing.T) {
		s := open(t)
		want := map[string][]byte{
			cookbook.KeyRecipes:       []byte(`[]`),
			cookbook.KeyFriends:       []byte(`{}`),
			cookbook.KeyNotifications: []byte(`[{"id":"n1"}]`),
		}
		if err := s.SetMany(want); err != nil {
			t.Fatalf("SetMany() error = %v", err)
		}
		got := map[string][]byte{}
		for k := range want {
			v, err := s.Get(k)
			if err != nil {
				t.Fatalf("Get(%s) error = %v", k, err)
			}
			got[k] = v
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("SetMany() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("delete is idempotent", func(t *testing.T) {
		s := open(t)
		if err := s.Set(cookbook.KeyCurrentUser, []byte(`{}`)); err != nil {
			t.Fatalf("Set() error = %v", err)
		}
		for i := 0; i < 2; i++ {
			if err := s.Delete(cookbook.KeyCurrentUser); err != nil {
				t.Fatalf("Delete() #%d error = %v", i+1, err)
			}
		}
		if got, _ := s.Get(cookbook.KeyCurrentUser); got != nil {
			t.Errorf("Get() after Delete = %q, want nil", got)
		}
	})
}
