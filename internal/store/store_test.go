package store

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "saves.db")
	st, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() {
		if err := st.Close(); err != nil {
			t.Fatalf("close: %v", err)
		}
	})
	return st, path
}

func TestOpenRequiresPath(t *testing.T) {
	if _, err := Open(" "); err == nil {
		t.Fatal("expected error")
	}
}

func TestPutGet(t *testing.T) {
	st, _ := openTestStore(t)
	ctx := context.Background()

	save := Save{Name: "career", Team: "Ashford Rovers", Season: 2, Week: 7, Snapshot: []byte(`{"version":1}`)}
	if err := st.Put(ctx, save); err != nil {
		t.Fatalf("put: %v", err)
	}
	got, err := st.Get(ctx, "career")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Team != save.Team || got.Season != 2 || got.Week != 7 {
		t.Errorf("got %+v", got)
	}
	if !bytes.Equal(got.Snapshot, save.Snapshot) {
		t.Errorf("snapshot = %s, want %s", got.Snapshot, save.Snapshot)
	}
	if got.SavedAt.IsZero() {
		t.Error("saved_at not set")
	}

	t.Run("replace", func(t *testing.T) {
		save.Week = 8
		save.Snapshot = []byte(`{"version":1,"week":8}`)
		if err := st.Put(ctx, save); err != nil {
			t.Fatal(err)
		}
		got, err := st.Get(ctx, "career")
		if err != nil {
			t.Fatal(err)
		}
		if got.Week != 8 || !bytes.Equal(got.Snapshot, save.Snapshot) {
			t.Errorf("slot not replaced: %+v", got)
		}
	})

	t.Run("empty snapshot keeps previous", func(t *testing.T) {
		if err := st.Put(ctx, Save{Name: "career"}); err == nil {
			t.Fatal("expected error for empty snapshot")
		}
		got, err := st.Get(ctx, "career")
		if err != nil {
			t.Fatal(err)
		}
		if got.Week != 8 {
			t.Errorf("previous save lost: %+v", got)
		}
	})

	t.Run("missing", func(t *testing.T) {
		if _, err := st.Get(ctx, "nope"); !errors.Is(err, ErrNotFound) {
			t.Errorf("error = %v, want ErrNotFound", err)
		}
	})
}

func TestListAndDelete(t *testing.T) {
	st, _ := openTestStore(t)
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	for i, name := range []string{"old", "newer", "newest"} {
		err := st.Put(ctx, Save{Name: name, Season: 1, Week: i, Snapshot: []byte("x"), SavedAt: base.Add(time.Duration(i) * time.Hour)})
		if err != nil {
			t.Fatal(err)
		}
	}

	saves, err := st.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	for _, s := range saves {
		names = append(names, s.Name)
		if s.Snapshot != nil {
			t.Errorf("%s: List returned a snapshot", s.Name)
		}
	}
	if want := []string{"newest", "newer", "old"}; len(names) != 3 || names[0] != want[0] || names[2] != want[2] {
		t.Errorf("List() = %v, want %v", names, want)
	}
	if !saves[0].SavedAt.Equal(base.Add(2 * time.Hour)) {
		t.Errorf("saved_at = %v", saves[0].SavedAt)
	}

	if err := st.Delete(ctx, "old"); err != nil {
		t.Fatal(err)
	}
	if err := st.Delete(ctx, "old"); !errors.Is(err, ErrNotFound) {
		t.Errorf("second delete error = %v, want ErrNotFound", err)
	}
	saves, _ = st.List(ctx)
	if len(saves) != 2 {
		t.Errorf("%d saves left, want 2", len(saves))
	}
}

func TestPersistsAcrossOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "saves.db")
	st, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := st.Put(context.Background(), Save{Name: "a", Snapshot: []byte("data")}); err != nil {
		t.Fatal(err)
	}
	if err := st.Close(); err != nil {
		t.Fatal(err)
	}

	st, err = Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer st.Close()
	got, err := st.Get(context.Background(), "a")
	if err != nil {
		t.Fatal(err)
	}
	if string(got.Snapshot) != "data" {
		t.Errorf("snapshot = %q", got.Snapshot)
	}
}
