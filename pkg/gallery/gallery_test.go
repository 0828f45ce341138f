package gallery

import (
	"context"
	"errors"
	"testing"

	"github.com/flowtext/mmdascii/pkg/config"
)

func TestFileStore_PutGetRoundTrips(t *testing.T) {
	ctx := context.Background()
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	defer s.Close()

	doc := &Document{Name: "demo", Source: "graph TD\n  A --> B", Config: config.DefaultRenderConfig()}
	if err := s.Put(ctx, doc); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, err := s.Get(ctx, "demo")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Source != doc.Source {
		t.Errorf("Source = %q, want %q", got.Source, doc.Source)
	}
}

func TestFileStore_GetMissingReturnsErrNotFound(t *testing.T) {
	ctx := context.Background()
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	defer s.Close()

	if _, err := s.Get(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get on missing document: err = %v, want ErrNotFound", err)
	}
}

func TestFileStore_ListReturnsSortedNames(t *testing.T) {
	ctx := context.Background()
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	defer s.Close()

	for _, name := range []string{"zebra", "alpha", "mid"} {
		if err := s.Put(ctx, &Document{Name: name}); err != nil {
			t.Fatalf("Put(%s): %v", name, err)
		}
	}

	names, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	want := []string{"alpha", "mid", "zebra"}
	if len(names) != len(want) {
		t.Fatalf("List = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("List[%d] = %q, want %q", i, names[i], want[i])
		}
	}
}

func TestFileStore_DeleteRemovesDocument(t *testing.T) {
	ctx := context.Background()
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	defer s.Close()

	if err := s.Put(ctx, &Document{Name: "demo"}); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := s.Delete(ctx, "demo"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Get(ctx, "demo"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get after delete: err = %v, want ErrNotFound", err)
	}
	if err := s.Delete(ctx, "demo"); err != nil {
		t.Errorf("Delete on missing document should be a no-op, got %v", err)
	}
}
