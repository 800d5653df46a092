package store

import (
	"errors"
	"path/filepath"
	"testing"

	"bookrec/internal/domain"
)

func TestSaveAndLoadCatalog(t *testing.T) {
	st, err := Open(filepath.Join(t.TempDir(), "snapshot.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer st.Close()

	books := []domain.Book{
		{ID: "b1", Title: "One", Genres: []string{"Fantasy"}, Year: 2020, AvgRating: 4.2, RatingsCount: 10, PopScore: 0.61},
		{ID: "b2", Title: "Two", Year: 2021},
	}
	if err := st.SaveCatalog(books); err != nil {
		t.Fatal(err)
	}

	got, err := st.LoadCatalog()
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0].ID != "b1" || got[0].PopScore != 0.61 {
		t.Errorf("unexpected snapshot: %+v", got)
	}
	if got[0].Genres[0] != "Fantasy" {
		t.Errorf("genres not preserved: %v", got[0].Genres)
	}

	savedAt, err := st.SavedAt()
	if err != nil {
		t.Fatal(err)
	}
	if savedAt.IsZero() {
		t.Error("expected a save timestamp")
	}
}

func TestLoadCatalogEmpty(t *testing.T) {
	st, err := Open(filepath.Join(t.TempDir(), "snapshot.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer st.Close()

	if _, err := st.LoadCatalog(); !errors.Is(err, ErrNoSnapshot) {
		t.Errorf("expected ErrNoSnapshot, got %v", err)
	}
}

func TestSaveCatalogReplaces(t *testing.T) {
	st, err := Open(filepath.Join(t.TempDir(), "snapshot.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer st.Close()

	st.SaveCatalog([]domain.Book{{ID: "old"}})
	st.SaveCatalog([]domain.Book{{ID: "new1"}, {ID: "new2"}})

	got, err := st.LoadCatalog()
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0].ID != "new1" {
		t.Errorf("expected snapshot replaced wholesale, got %+v", got)
	}
}
