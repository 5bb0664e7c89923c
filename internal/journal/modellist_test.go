package journal

import (
	"testing"

	apperrors "tradelight/internal/errors"
	"tradelight/internal/store"
)

func TestModelListAddAndList(t *testing.T) {
	list := NewModelList(store.NewMemoryCache())

	if got := list.List(); len(got) != 0 {
		t.Fatalf("fresh list = %v", got)
	}

	for _, name := range []string{"Silver Bullet", "Judas Swing", "OB Retest"} {
		if err := list.Add(name); err != nil {
			t.Fatalf("Add(%q): %v", name, err)
		}
	}

	got := list.List()
	if len(got) != 3 {
		t.Fatalf("List = %v", got)
	}
	// Stored order is insertion order.
	if got[0] != "Silver Bullet" || got[2] != "OB Retest" {
		t.Errorf("order = %v", got)
	}
}

func TestModelListDuplicateIgnoresCase(t *testing.T) {
	list := NewModelList(store.NewMemoryCache())

	if err := list.Add("Silver Bullet"); err != nil {
		t.Fatal(err)
	}
	err := list.Add("silver bullet")
	if !apperrors.Is(err, apperrors.ErrModelExists) {
		t.Errorf("err = %v, want ErrModelExists", err)
	}
	if got := list.List(); len(got) != 1 {
		t.Errorf("List = %v", got)
	}
}

func TestModelListAddRejectsBlank(t *testing.T) {
	list := NewModelList(store.NewMemoryCache())
	if err := list.Add("   "); err == nil {
		t.Error("blank name accepted")
	}
}

func TestModelListRemove(t *testing.T) {
	list := NewModelList(store.NewMemoryCache())
	list.Add("Silver Bullet")
	list.Add("Judas Swing")

	if err := list.Remove("SILVER BULLET"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if got := list.List(); len(got) != 1 || got[0] != "Judas Swing" {
		t.Errorf("List = %v", got)
	}

	err := list.Remove("Silver Bullet")
	if !apperrors.Is(err, apperrors.ErrModelNotFound) {
		t.Errorf("err = %v, want ErrModelNotFound", err)
	}
}

func TestModelListFilter(t *testing.T) {
	list := NewModelList(store.NewMemoryCache())
	for _, name := range []string{"Silver Bullet", "Judas Swing", "silver lining"} {
		list.Add(name)
	}

	got := list.Filter("silver")
	if len(got) != 2 {
		t.Fatalf("Filter = %v", got)
	}
	// Filter output is sorted.
	if got[0] != "Silver Bullet" || got[1] != "silver lining" {
		t.Errorf("Filter = %v", got)
	}

	if got := list.Filter("nothing"); len(got) != 0 {
		t.Errorf("Filter(nothing) = %v", got)
	}
}

func TestModelListCorruptCacheReadsEmpty(t *testing.T) {
	cache := store.NewMemoryCache()
	cache.Set("trade-models", "{broken")
	list := NewModelList(cache)

	if got := list.List(); len(got) != 0 {
		t.Errorf("List over corrupt cache = %v", got)
	}
	// And adding starts a fresh list.
	if err := list.Add("Silver Bullet"); err != nil {
		t.Fatal(err)
	}
	if got := list.List(); len(got) != 1 {
		t.Errorf("List = %v", got)
	}
}
