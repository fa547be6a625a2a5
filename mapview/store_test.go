package mapview

import (
	"testing"
	"time"
)

func TestStoreCreateGetDelete(t *testing.T) {
	st := NewStore(DefaultSurface(), time.Hour)
	s := st.Create()

	got, ok := st.Get(s.ID())
	if !ok || got != s {
		t.Fatal("expected created session to be found")
	}
	if v := got.Snapshot(); v.Zoom != 12 || v.Center.Lat != 53.8008 {
		t.Fatalf("expected session to start at the surface view, got %+v", v)
	}

	if !st.Delete(s.ID()) {
		t.Fatal("expected delete to report the session")
	}
	if _, ok := st.Get(s.ID()); ok {
		t.Fatal("expected session to be deleted")
	}
	if st.Delete(s.ID()) {
		t.Fatal("expected second delete to report nothing removed")
	}
}

func TestStoreGetRejectsMalformedID(t *testing.T) {
	st := NewStore(DefaultSurface(), time.Hour)
	if _, ok := st.Get("not-a-uuid"); ok {
		t.Fatal("expected malformed id to miss")
	}
}

func TestStoreGetOrCreate(t *testing.T) {
	st := NewStore(DefaultSurface(), time.Hour)
	s := st.GetOrCreate("")
	if st.Len() != 1 {
		t.Fatalf("expected 1 session, got %d", st.Len())
	}
	if again := st.GetOrCreate(s.ID()); again != s {
		t.Fatal("expected existing session to be returned")
	}
}

func TestStoreSweepDropsIdleSessions(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	st := NewStore(DefaultSurface(), time.Hour)
	st.now = func() time.Time { return now }

	idle := st.Create()
	now = now.Add(50 * time.Minute)
	active := st.Create()
	now = now.Add(20 * time.Minute)

	if removed := st.Sweep(); removed != 1 {
		t.Fatalf("expected 1 session removed, got %d", removed)
	}
	if _, ok := st.Get(idle.ID()); ok {
		t.Fatal("expected idle session to be swept")
	}
	if _, ok := st.Get(active.ID()); !ok {
		t.Fatal("expected active session to survive")
	}
}
