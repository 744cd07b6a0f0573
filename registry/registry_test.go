package registry_test

import (
	"errors"
	"sync"
	"testing"

	"github.com/c360studio/notegraph/registry"
)

func TestRegisterAndFind(t *testing.T) {
	r := registry.New()
	if err := r.Register("notes/adr-001.md", "doc1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	t.Run("exact path", func(t *testing.T) {
		uri, ok := r.FindByPath("notes/adr-001.md")
		if !ok || uri != "doc1" {
			t.Errorf("got (%q, %v), want (doc1, true)", uri, ok)
		}
	})

	t.Run("stem", func(t *testing.T) {
		uri, ok := r.FindByPath("notes/adr-001")
		if !ok || uri != "doc1" {
			t.Errorf("got (%q, %v), want (doc1, true)", uri, ok)
		}
	})

	t.Run("miss is not an error", func(t *testing.T) {
		uri, ok := r.FindByPath("missing-doc")
		if ok || uri != "" {
			t.Errorf("got (%q, %v), want miss", uri, ok)
		}
	})

	t.Run("no partial matching", func(t *testing.T) {
		if _, ok := r.FindByPath("adr-001"); ok {
			t.Error("basename lookup should miss; matching is exact path or stem only")
		}
	})
}

func TestRegisterOverwrites(t *testing.T) {
	r := registry.New()
	if err := r.Register("a.md", "old"); err != nil {
		t.Fatal(err)
	}
	if err := r.Register("a.md", "new"); err != nil {
		t.Fatal(err)
	}

	uri, _ := r.FindByPath("a.md")
	if uri != "new" {
		t.Errorf("re-registration should overwrite silently, got %q", uri)
	}
	if r.Len() != 1 {
		t.Errorf("expected 1 registered path, got %d", r.Len())
	}
}

func TestSealRejectsRegistration(t *testing.T) {
	r := registry.New()
	if err := r.Register("a.md", "doc1"); err != nil {
		t.Fatal(err)
	}

	r.Seal()
	if !r.Sealed() {
		t.Fatal("registry should report sealed")
	}

	err := r.Register("b.md", "doc2")
	if !errors.Is(err, registry.ErrSealed) {
		t.Errorf("expected ErrSealed, got %v", err)
	}

	// Existing entries remain readable after sealing.
	if _, ok := r.FindByPath("a.md"); !ok {
		t.Error("sealed registry lost an entry")
	}
}

func TestConcurrentReads(t *testing.T) {
	r := registry.New()
	if err := r.Register("notes/a.md", "doc-a"); err != nil {
		t.Fatal(err)
	}
	if err := r.Register("notes/b.md", "doc-b"); err != nil {
		t.Fatal(err)
	}
	r.Seal()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				if uri, ok := r.FindByPath("notes/a"); !ok || uri != "doc-a" {
					t.Errorf("concurrent read got (%q, %v)", uri, ok)
					return
				}
			}
		}()
	}
	wg.Wait()
}
