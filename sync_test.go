package folioengine

import (
	"context"
	"path/filepath"
	"reflect"
	"sync"
	"testing"
	"time"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(filepath.Join(t.TempDir(), "portfolio.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// memRemote is an in-memory Remote for tests. It records every upsert and
// can be configured to fail or report a missing table.
type memRemote struct {
	mu      sync.Mutex
	doc     *PortfolioData
	upserts []PortfolioData
	err     error
}

func (m *memRemote) Upsert(_ context.Context, doc PortfolioData, _ time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	stored := doc.Clone()
	m.doc = &stored
	m.upserts = append(m.upserts, doc.Clone())
	return nil
}

func (m *memRemote) Fetch(_ context.Context) (PortfolioData, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return PortfolioData{}, false, m.err
	}
	if m.doc == nil {
		return PortfolioData{}, false, nil
	}
	return m.doc.Clone(), true, nil
}

func (m *memRemote) Probe(_ context.Context) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.err == nil, m.err
}

func (m *memRemote) upsertCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.upserts)
}

func (m *memRemote) lastUpsert() PortfolioData {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.upserts[len(m.upserts)-1]
}

func newSyncedTest(t *testing.T, remote Remote, debounce time.Duration) (*Synchronizer, *Store) {
	t.Helper()
	store := setupTestStore(t)
	s, err := NewSynchronizer(store, remote, debounce)
	if err != nil {
		t.Fatalf("NewSynchronizer failed: %v", err)
	}
	t.Cleanup(s.Close)
	s.Hydrate(context.Background())
	return s, store
}

func strptr(s string) *string { return &s }

func TestUpdateDataShallowMerge(t *testing.T) {
	s, _ := newSyncedTest(t, nil, 0)

	skills := []Skill{{ID: "x", Name: "Go", Percentage: 99}}
	s.UpdateData(DocumentPatch{SiteName: strptr("First")})
	s.UpdateData(DocumentPatch{Skills: &skills})
	s.UpdateData(DocumentPatch{SiteName: strptr("Second")})

	got := s.Snapshot()
	if got.SiteName != "Second" {
		t.Errorf("SiteName = %q, want %q", got.SiteName, "Second")
	}
	if !reflect.DeepEqual(got.Skills, skills) {
		t.Errorf("Skills = %v, want %v", got.Skills, skills)
	}
	// Fields never patched keep their seed values.
	seed := SeedDocument()
	if got.Logo != seed.Logo {
		t.Errorf("Logo = %q, want untouched seed value %q", got.Logo, seed.Logo)
	}
	if !reflect.DeepEqual(got.Projects, seed.Projects) {
		t.Errorf("Projects changed by unrelated patches")
	}
}

func TestUpdateDataOrderMatchesIterativeMerge(t *testing.T) {
	s, _ := newSyncedTest(t, nil, 0)

	patches := []DocumentPatch{
		{SiteName: strptr("a"), Logo: strptr("L1")},
		{SiteName: strptr("b")},
		{Logo: strptr("L2")},
		{SiteName: strptr("c")},
	}
	want := SeedDocument()
	for _, p := range patches {
		applyPatch(&want, p)
		s.UpdateData(p)
	}

	got := s.Snapshot()
	if got.SiteName != want.SiteName || got.Logo != want.Logo {
		t.Errorf("merge result = (%q, %q), want (%q, %q)", got.SiteName, got.Logo, want.SiteName, want.Logo)
	}
}

func TestAddMessagePrepends(t *testing.T) {
	s, _ := newSyncedTest(t, nil, 0)

	before := time.Now().UTC().Add(-time.Second)
	first := s.AddMessage("Alice", "alice@example.com", "Hi", "First message")
	second := s.AddMessage("Bob", "bob@example.com", "Yo", "Second message")

	msgs := s.Snapshot().Messages
	if len(msgs) != 2 {
		t.Fatalf("message count = %d, want 2", len(msgs))
	}
	if msgs[0].ID != second.ID || msgs[1].ID != first.ID {
		t.Errorf("messages not newest-first: %v", []string{msgs[0].ID, msgs[1].ID})
	}
	if first.ID == second.ID || first.ID == "" {
		t.Errorf("ids not unique: %q, %q", first.ID, second.ID)
	}
	if msgs[0].Read {
		t.Error("new message should be unread")
	}
	ts, err := time.Parse(time.RFC3339, msgs[0].Date)
	if err != nil {
		t.Fatalf("message date %q not RFC3339: %v", msgs[0].Date, err)
	}
	if ts.Before(before) {
		t.Errorf("message timestamp %v before call time %v", ts, before)
	}
	if msgs[1].Name != "Alice" || msgs[1].Message != "First message" {
		t.Errorf("earlier message mutated: %+v", msgs[1])
	}
}

func TestMarkMessageRead(t *testing.T) {
	s, _ := newSyncedTest(t, nil, 0)
	msg := s.AddMessage("Alice", "alice@example.com", "Hi", "Hello")

	s.MarkMessageRead(msg.ID)
	if got := s.Snapshot().Messages[0]; !got.Read {
		t.Error("message should be read")
	}
}

func TestMarkMessageReadMissingID(t *testing.T) {
	s, _ := newSyncedTest(t, nil, 0)
	s.AddMessage("Alice", "alice@example.com", "Hi", "Hello")
	before := s.Snapshot().Messages

	s.MarkMessageRead("no-such-id")

	after := s.Snapshot().Messages
	if !reflect.DeepEqual(before, after) {
		t.Errorf("messages changed on missing id: %v -> %v", before, after)
	}
}

func TestDeleteMessage(t *testing.T) {
	s, _ := newSyncedTest(t, nil, 0)
	keep := s.AddMessage("Alice", "alice@example.com", "Keep", "Hello")
	drop := s.AddMessage("Bob", "bob@example.com", "Drop", "Bye")

	s.DeleteMessage(drop.ID)
	msgs := s.Snapshot().Messages
	if len(msgs) != 1 || msgs[0].ID != keep.ID {
		t.Errorf("messages = %v, want only %q", msgs, keep.ID)
	}

	s.DeleteMessage("no-such-id")
	if got := len(s.Snapshot().Messages); got != 1 {
		t.Errorf("message count after missing-id delete = %d, want 1", got)
	}
}

func TestIncrementViewsOncePerSession(t *testing.T) {
	s, _ := newSyncedTest(t, nil, 0)
	base := s.Snapshot().Analytics

	if !s.IncrementViews("session-1") {
		t.Fatal("first increment should count")
	}
	for i := 0; i < 4; i++ {
		if s.IncrementViews("session-1") {
			t.Fatal("repeat increment in same session should not count")
		}
	}

	got := s.Snapshot().Analytics
	if got.TotalViews != base.TotalViews+1 {
		t.Errorf("TotalViews = %d, want %d", got.TotalViews, base.TotalViews+1)
	}
	last := len(got.ViewHistory) - 1
	if got.ViewHistory[last].Views != base.ViewHistory[last].Views+1 {
		t.Errorf("last history entry = %d, want %d", got.ViewHistory[last].Views, base.ViewHistory[last].Views+1)
	}
	for i := 0; i < last; i++ {
		if got.ViewHistory[i].Views != base.ViewHistory[i].Views {
			t.Errorf("history[%d] changed: %d -> %d", i, base.ViewHistory[i].Views, got.ViewHistory[i].Views)
		}
	}
	if len(got.ViewHistory) != 7 {
		t.Errorf("history length = %d, want 7", len(got.ViewHistory))
	}

	// A different session counts again.
	if !s.IncrementViews("session-2") {
		t.Error("new session should count")
	}
	if got := s.Snapshot().Analytics.TotalViews; got != base.TotalViews+2 {
		t.Errorf("TotalViews = %d, want %d", got, base.TotalViews+2)
	}
}

func TestDebounceCollapsesBurst(t *testing.T) {
	remote := &memRemote{}
	s, _ := newSyncedTest(t, remote, 80*time.Millisecond)

	for _, name := range []string{"v1", "v2", "v3", "v4", "v5"} {
		s.UpdateData(DocumentPatch{SiteName: strptr(name)})
	}

	time.Sleep(250 * time.Millisecond)

	if n := remote.upsertCount(); n != 1 {
		t.Fatalf("upsert count = %d, want 1 (burst should collapse)", n)
	}
	pushed := remote.lastUpsert()
	if pushed.SiteName != "v5" {
		t.Errorf("pushed SiteName = %q, want final state %q", pushed.SiteName, "v5")
	}
	if !reflect.DeepEqual(pushed, s.Snapshot()) {
		t.Error("pushed payload differs from the document state after the last call")
	}
}

func TestDebounceReschedules(t *testing.T) {
	remote := &memRemote{}
	s, _ := newSyncedTest(t, remote, 100*time.Millisecond)

	s.UpdateData(DocumentPatch{SiteName: strptr("first")})
	time.Sleep(60 * time.Millisecond)
	// Mutation inside the quiet window cancels and replaces the pending push.
	s.UpdateData(DocumentPatch{SiteName: strptr("second")})
	time.Sleep(60 * time.Millisecond)
	if n := remote.upsertCount(); n != 0 {
		t.Fatalf("push fired during an active quiet window (%d upserts)", n)
	}
	time.Sleep(100 * time.Millisecond)
	if n := remote.upsertCount(); n != 1 {
		t.Fatalf("upsert count = %d, want 1", n)
	}
	if got := remote.lastUpsert().SiteName; got != "second" {
		t.Errorf("pushed SiteName = %q, want %q", got, "second")
	}
}

func TestHydrateRemoteWins(t *testing.T) {
	store := setupTestStore(t)
	local := SeedDocument()
	local.SiteName = "Stale Local"
	if err := store.SaveDocument(local); err != nil {
		t.Fatalf("SaveDocument failed: %v", err)
	}

	remoteDoc := SeedDocument()
	remoteDoc.SiteName = "Fresh Remote"
	remote := &memRemote{}
	if err := remote.Upsert(context.Background(), remoteDoc, time.Now()); err != nil {
		t.Fatal(err)
	}

	s, err := NewSynchronizer(store, remote, 0)
	if err != nil {
		t.Fatalf("NewSynchronizer failed: %v", err)
	}
	defer s.Close()
	s.Hydrate(context.Background())

	if got := s.Snapshot().SiteName; got != "Fresh Remote" {
		t.Errorf("SiteName = %q, want remote document to win", got)
	}
	cached, found, err := store.LoadDocument()
	if err != nil || !found {
		t.Fatalf("LoadDocument = found=%v err=%v", found, err)
	}
	if cached.SiteName != "Fresh Remote" {
		t.Errorf("local cache not overwritten with remote document: %q", cached.SiteName)
	}
}

func TestHydrateRemoteFailureKeepsLocal(t *testing.T) {
	store := setupTestStore(t)
	local := SeedDocument()
	local.SiteName = "Local Copy"
	if err := store.SaveDocument(local); err != nil {
		t.Fatalf("SaveDocument failed: %v", err)
	}

	remote := &memRemote{err: &RemoteError{Code: "HTTP500", Message: "boom"}}
	s, err := NewSynchronizer(store, remote, 0)
	if err != nil {
		t.Fatalf("NewSynchronizer failed: %v", err)
	}
	defer s.Close()
	s.Hydrate(context.Background())

	if got := s.Snapshot().SiteName; got != "Local Copy" {
		t.Errorf("SiteName = %q, remote failure must not blink away local data", got)
	}
	if s.State() != StateSynced {
		t.Error("synchronizer should reach StateSynced even when the remote is unreachable")
	}
}

func TestHydrateEmptyRemoteUsesSeed(t *testing.T) {
	s, _ := newSyncedTest(t, &memRemote{}, 0)
	if got, want := s.Snapshot().SiteName, SeedDocument().SiteName; got != want {
		t.Errorf("SiteName = %q, want seed %q", got, want)
	}
}

func TestMutationsDuringHydrationStayInMemory(t *testing.T) {
	store := setupTestStore(t)
	s, err := NewSynchronizer(store, nil, 0)
	if err != nil {
		t.Fatalf("NewSynchronizer failed: %v", err)
	}
	defer s.Close()

	s.UpdateData(DocumentPatch{SiteName: strptr("pre-hydration")})
	if got := s.Snapshot().SiteName; got != "pre-hydration" {
		t.Errorf("in-memory document = %q, want mutation applied", got)
	}
	if _, found, _ := store.LoadDocument(); found {
		t.Error("local cache written while hydrating")
	}

	s.Hydrate(context.Background())
	s.UpdateData(DocumentPatch{SiteName: strptr("post-hydration")})
	cached, found, err := store.LoadDocument()
	if err != nil || !found {
		t.Fatalf("LoadDocument = found=%v err=%v", found, err)
	}
	if cached.SiteName != "post-hydration" {
		t.Errorf("cached SiteName = %q, want %q", cached.SiteName, "post-hydration")
	}
}

func TestHydratePersistsPendingMutation(t *testing.T) {
	store := setupTestStore(t)
	remote := &memRemote{err: &RemoteError{Code: "HTTP500", Message: "boom"}}
	s, err := NewSynchronizer(store, remote, 0)
	if err != nil {
		t.Fatalf("NewSynchronizer failed: %v", err)
	}
	defer s.Close()

	// A visitor message lands while the startup fetch is still in flight.
	msg := s.AddMessage("Alice", "alice@example.com", "Hi", "Hello")
	s.Hydrate(context.Background())

	cached, found, err := store.LoadDocument()
	if err != nil || !found {
		t.Fatalf("LoadDocument = found=%v err=%v", found, err)
	}
	if len(cached.Messages) != 1 || cached.Messages[0].ID != msg.ID {
		t.Error("mutation made during hydration not durable after hydration completed")
	}
}

func TestViewMarkersExpire(t *testing.T) {
	s, _ := newSyncedTest(t, nil, 0)
	base := s.Snapshot().Analytics.TotalViews

	if !s.IncrementViews("session-1") {
		t.Fatal("first increment should count")
	}
	if s.IncrementViews("session-1") {
		t.Fatal("fresh marker should block a second count")
	}

	// Age the marker past its lifetime; the session counts as new again.
	s.mu.Lock()
	s.counted["session-1"] = time.Now().Add(-2 * viewMarkerTTL)
	s.mu.Unlock()
	if !s.IncrementViews("session-1") {
		t.Error("expired marker should allow the view to count again")
	}
	if got := s.Snapshot().Analytics.TotalViews; got != base+2 {
		t.Errorf("TotalViews = %d, want %d", got, base+2)
	}
}

func TestPruneMarkers(t *testing.T) {
	s, _ := newSyncedTest(t, nil, 0)

	s.IncrementViews("old-session")
	s.IncrementViews("new-session")
	s.mu.Lock()
	s.counted["old-session"] = time.Now().Add(-2 * viewMarkerTTL)
	s.mu.Unlock()

	s.pruneMarkers(time.Now().Add(-viewMarkerTTL))

	s.mu.Lock()
	_, oldKept := s.counted["old-session"]
	_, newKept := s.counted["new-session"]
	s.mu.Unlock()
	if oldKept {
		t.Error("expired marker survived the sweep")
	}
	if !newKept {
		t.Error("live marker removed by the sweep")
	}
}

func TestSnapshotIsImmutable(t *testing.T) {
	s, _ := newSyncedTest(t, nil, 0)

	snap := s.Snapshot()
	snap.Skills[0].Name = "tampered"
	snap.SiteName = "tampered"

	got := s.Snapshot()
	if got.Skills[0].Name == "tampered" || got.SiteName == "tampered" {
		t.Error("mutating a snapshot must not affect the synchronizer's document")
	}
}

func TestLoginLogoutPersistsAuth(t *testing.T) {
	s, store := newSyncedTest(t, nil, 0)

	s.Login("admin")
	auth, err := store.LoadAuth()
	if err != nil {
		t.Fatalf("LoadAuth failed: %v", err)
	}
	if !auth.IsAuthenticated || auth.User != "admin" {
		t.Errorf("auth = %+v, want authenticated admin", auth)
	}

	s.Logout()
	auth, err = store.LoadAuth()
	if err != nil {
		t.Fatalf("LoadAuth failed: %v", err)
	}
	if auth.IsAuthenticated || auth.User != "" {
		t.Errorf("auth = %+v, want cleared", auth)
	}
}

func TestLoginDoesNotTouchDocument(t *testing.T) {
	s, _ := newSyncedTest(t, nil, 0)
	before := s.Snapshot()
	s.Login("admin")
	s.Logout()
	if !reflect.DeepEqual(before, s.Snapshot()) {
		t.Error("login/logout must not modify the document")
	}
}

func TestCredentialsFallback(t *testing.T) {
	doc := SeedDocument()
	doc.AdminCredentials = nil
	creds := doc.Credentials()
	if creds.Username != DefaultAdminUsername || creds.Password != DefaultAdminPassword {
		t.Errorf("fallback credentials = %+v", creds)
	}

	doc.AdminCredentials = &AdminCredentials{Username: "me", Password: "secret"}
	creds = doc.Credentials()
	if creds.Username != "me" || creds.Password != "secret" {
		t.Errorf("stored credentials = %+v", creds)
	}
}
