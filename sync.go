package folioengine

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
)

// SyncState is the synchronizer's lifecycle state for one process.
type SyncState int

const (
	// StateHydrating is the initial state: the document came from the local
	// cache (or the seed) and the one-time remote fetch has not completed.
	// Local persistence and remote pushes are suppressed so a stale local
	// document cannot overwrite a richer remote one.
	StateHydrating SyncState = iota
	// StateSynced is the steady state: mutations persist locally right away
	// and schedule a debounced remote push.
	StateSynced
)

// DefaultDebounce is the quiet window after the last mutation before the
// full document is pushed to the remote store.
const DefaultDebounce = time.Second

// Session view markers expire after the lifetime of the session cookie, and
// a background sweep drops expired ones so cookieless clients cannot grow
// the marker set without bound.
const (
	viewMarkerTTL   = 12 * time.Hour
	viewMarkerSweep = time.Hour
)

// Synchronizer owns the single authoritative in-memory PortfolioData
// snapshot. Every mutation replaces the snapshot, writes the full document
// to the local cache synchronously, and schedules a debounced remote push.
// Remote failures never surface to mutation callers; the local path is
// authoritative for the live session.
//
// Mutations are serialized by a mutex, so callers observe them as atomic.
// Remote pushes are deliberately not ordered against each other: an
// in-flight push always runs to completion, so two pushes racing on the
// wire resolve last-network-completion-wins. That weak-consistency property
// is inherited from the original design and kept as-is; the synchronizer is
// not safe for multiple concurrent editors.
type Synchronizer struct {
	mu      sync.Mutex
	doc     PortfolioData
	auth    AuthState
	state   SyncState
	timer   *time.Timer
	counted map[string]time.Time

	store    *Store
	remote   Remote
	debounce time.Duration

	hydrateOnce sync.Once
	closeOnce   sync.Once
	done        chan struct{}
	localErr    error
}

// NewSynchronizer builds a synchronizer over the local store and an optional
// remote. The initial document is the cached one when present, else the
// seed. Call Hydrate to perform the one-time remote fetch.
func NewSynchronizer(store *Store, remote Remote, debounce time.Duration) (*Synchronizer, error) {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	doc, found, err := store.LoadDocument()
	if err != nil {
		return nil, err
	}
	if !found {
		doc = SeedDocument()
	}
	auth, err := store.LoadAuth()
	if err != nil {
		return nil, err
	}
	s := &Synchronizer{
		doc:      doc,
		auth:     auth,
		state:    StateHydrating,
		counted:  make(map[string]time.Time),
		store:    store,
		remote:   remote,
		debounce: debounce,
		done:     make(chan struct{}),
	}
	go s.sweepMarkers()
	return s, nil
}

// sweepMarkers periodically drops expired session view markers.
func (s *Synchronizer) sweepMarkers() {
	ticker := time.NewTicker(viewMarkerSweep)
	defer ticker.Stop()
	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			s.pruneMarkers(time.Now().Add(-viewMarkerTTL))
		}
	}
}

func (s *Synchronizer) pruneMarkers(cutoff time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, stamp := range s.counted {
		if stamp.Before(cutoff) {
			delete(s.counted, id)
		}
	}
}

// Hydrate issues the one-time remote fetch. A non-empty remote document
// replaces the in-memory one; a fetch failure or empty result keeps the
// current document unmodified. Either way the synchronizer transitions to
// StateSynced and writes the current document to the local cache, so
// mutations made while the fetch was in flight become durable. The system
// is fully usable offline. Repeated calls are no-ops.
func (s *Synchronizer) Hydrate(ctx context.Context) {
	s.hydrateOnce.Do(func() {
		if s.remote != nil {
			doc, found, err := s.remote.Fetch(ctx)
			switch {
			case err != nil:
				if !IsTableMissing(err) {
					log.Printf("folioengine: hydration fetch failed, keeping local document: %v", err)
				}
			case found:
				s.mu.Lock()
				s.doc = doc
				s.mu.Unlock()
			}
		}
		s.mu.Lock()
		s.state = StateSynced
		if err := s.store.SaveDocument(s.doc); err != nil {
			s.localErr = err
			log.Printf("folioengine: local cache write failed: %v", err)
		}
		s.mu.Unlock()
	})
}

// State returns the current lifecycle state.
func (s *Synchronizer) State() SyncState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Snapshot returns a deep copy of the current document. Callers must treat
// it as immutable and never write through it.
func (s *Synchronizer) Snapshot() PortfolioData {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc.Clone()
}

// Auth returns the current operator auth state.
func (s *Synchronizer) Auth() AuthState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.auth
}

// LocalHealth returns the last local cache write error, if any. Loss of the
// local durable copy removes the only guaranteed persistence path, so this
// is surfaced rather than swallowed.
func (s *Synchronizer) LocalHealth() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.localErr
}

// ProbeRemote reports whether the remote backing table exists. Informational
// only: the result never gates any data operation.
func (s *Synchronizer) ProbeRemote(ctx context.Context) (bool, error) {
	if s.remote == nil {
		return false, nil
	}
	return s.remote.Probe(ctx)
}

// mutate applies fn to a fresh copy of the document, installs the copy as
// the new snapshot, persists it locally, and schedules the debounced push.
// While hydrating, only the in-memory snapshot changes.
func (s *Synchronizer) mutate(fn func(doc *PortfolioData)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.doc.Clone()
	fn(&next)
	s.doc = next

	if s.state == StateHydrating {
		return
	}
	if err := s.store.SaveDocument(s.doc); err != nil {
		s.localErr = err
		log.Printf("folioengine: local cache write failed: %v", err)
	} else {
		s.localErr = nil
	}
	s.scheduleSyncLocked()
}

// scheduleSyncLocked is a single-slot deferred-task register: scheduling
// cancels and replaces any previously scheduled push. The push reads the
// latest snapshot at fire time, so a burst of edits collapses into one
// network write carrying the final state.
func (s *Synchronizer) scheduleSyncLocked() {
	if s.remote == nil {
		return
	}
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.debounce, s.push)
}

// push uploads the latest snapshot. All remote errors are classified and
// logged here; none propagate to mutation callers.
func (s *Synchronizer) push() {
	s.mu.Lock()
	doc := s.doc.Clone()
	s.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := s.remote.Upsert(ctx, doc, time.Now()); err != nil {
		if IsTableMissing(err) {
			// Soft failure: the table is simply not provisioned yet. The
			// diagnostic probe surfaces this; the sync path stays quiet.
			return
		}
		log.Printf("folioengine: remote push failed: %v", err)
	}
}

// Close stops the marker sweeper and abandons any scheduled-but-unfired
// push. An in-flight push is never aborted; best-effort sync, not a
// write-ahead log.
func (s *Synchronizer) Close() {
	s.closeOnce.Do(func() { close(s.done) })
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

// UpdateData shallow-merges patch into the document: every non-nil patch
// field replaces the corresponding top-level field. No validation is
// performed beyond what the caller guarantees — a malformed patch corrupts
// the corresponding field. Accepted limitation of a single-operator tool.
func (s *Synchronizer) UpdateData(patch DocumentPatch) {
	s.mutate(func(doc *PortfolioData) {
		applyPatch(doc, patch)
	})
}

func applyPatch(doc *PortfolioData, p DocumentPatch) {
	if p.SiteName != nil {
		doc.SiteName = *p.SiteName
	}
	if p.Logo != nil {
		doc.Logo = *p.Logo
	}
	if p.SEO != nil {
		doc.SEO = *p.SEO
	}
	if p.Profile != nil {
		doc.Profile = *p.Profile
	}
	if p.Skills != nil {
		doc.Skills = *p.Skills
	}
	if p.Projects != nil {
		doc.Projects = *p.Projects
	}
	if p.Services != nil {
		doc.Services = *p.Services
	}
	if p.Experience != nil {
		doc.Experience = *p.Experience
	}
	if p.Education != nil {
		doc.Education = *p.Education
	}
	if p.Testimonials != nil {
		doc.Testimonials = *p.Testimonials
	}
	if p.Messages != nil {
		doc.Messages = *p.Messages
	}
	if p.Analytics != nil {
		doc.Analytics = *p.Analytics
	}
	if p.AdminCredentials != nil {
		doc.AdminCredentials = p.AdminCredentials
	}
}

// AddMessage synthesizes a new inbox message with a fresh id, the current
// timestamp and read=false, and prepends it to the inbox. This is the one
// mutation reachable from untrusted visitor input; length checks live at the
// HTTP boundary.
func (s *Synchronizer) AddMessage(name, email, subject, body string) Message {
	msg := Message{
		ID:      uuid.NewString(),
		Name:    name,
		Email:   email,
		Subject: subject,
		Message: body,
		Date:    time.Now().UTC().Format(time.RFC3339),
		Read:    false,
	}
	s.mutate(func(doc *PortfolioData) {
		doc.Messages = append([]Message{msg}, doc.Messages...)
	})
	return msg
}

// MarkMessageRead flags the message with the given id as read. A missing id
// leaves the inbox unchanged.
func (s *Synchronizer) MarkMessageRead(id string) {
	s.mutate(func(doc *PortfolioData) {
		for i := range doc.Messages {
			if doc.Messages[i].ID == id {
				doc.Messages[i].Read = true
				return
			}
		}
	})
}

// DeleteMessage removes the message with the given id. A missing id leaves
// the inbox unchanged.
func (s *Synchronizer) DeleteMessage(id string) {
	s.mutate(func(doc *PortfolioData) {
		for i := range doc.Messages {
			if doc.Messages[i].ID == id {
				doc.Messages = append(doc.Messages[:i], doc.Messages[i+1:]...)
				return
			}
		}
	})
}

// IncrementViews bumps the running total and the last view-history entry by
// one, at most once per session marker. Returns true when the view was
// counted. Concurrent tabs of one session are not deduplicated beyond the
// marker; this is best-effort analytics, not billing.
func (s *Synchronizer) IncrementViews(sessionID string) bool {
	if sessionID == "" {
		return false
	}
	now := time.Now()
	s.mu.Lock()
	if stamp, done := s.counted[sessionID]; done && now.Sub(stamp) < viewMarkerTTL {
		s.mu.Unlock()
		return false
	}
	s.counted[sessionID] = now
	s.mu.Unlock()

	s.mutate(func(doc *PortfolioData) {
		doc.Analytics.TotalViews++
		if n := len(doc.Analytics.ViewHistory); n > 0 {
			doc.Analytics.ViewHistory[n-1].Views++
		}
	})
	return true
}

// Login sets the persisted operator auth flag. It never touches the
// document.
func (s *Synchronizer) Login(user string) {
	s.setAuth(AuthState{IsAuthenticated: true, User: user})
}

// Logout clears the persisted operator auth flag.
func (s *Synchronizer) Logout() {
	s.setAuth(AuthState{})
}

func (s *Synchronizer) setAuth(auth AuthState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.auth = auth
	if err := s.store.SaveAuth(auth); err != nil {
		log.Printf("folioengine: persist auth state failed: %v", err)
	}
}
