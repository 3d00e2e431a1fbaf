// Package session owns the repository-selection-and-clone workflow: it holds
// the credential handle, the fetched and displayed catalogs and the selection
// set, and drives the per-repository clone pipeline. All mutable workflow
// state lives on the Session object so independent sessions can coexist and
// tests need no package-level state.
package session

import (
	"context"
	"fmt"
	"sync"

	"github.com/UnityEssentials/go-upmtools/internal/catalog"
	"github.com/UnityEssentials/go-upmtools/internal/errors"
	"github.com/UnityEssentials/go-upmtools/internal/progress"
	"github.com/UnityEssentials/go-upmtools/internal/token"
)

// ErrBusy is returned when a fetch or clone batch is already in flight.
// The busy flag is the session's entire concurrency-safety mechanism: a
// started per-repository step always runs to completion before the next
// command is accepted.
var ErrBusy = fmt.Errorf("an operation is already in progress")

// ErrNoCredential is returned when a command requires a credential and none
// is stored.
var ErrNoCredential = fmt.Errorf("no credential available")

// CatalogLister is the slice of the GitHub client the session consumes.
type CatalogLister interface {
	ListRepositories(ctx context.Context) ([]catalog.Identifier, error)
}

// Session is the orchestrator for one fetch/filter/select/clone cycle.
type Session struct {
	mu      sync.Mutex
	busy    bool
	state   State
	storage token.Storage
	client  CatalogLister
	tracker progress.Tracker

	credential token.Token
	targetDir  string

	fetched   []catalog.Identifier
	displayed []catalog.Identifier
	selection *catalog.SelectionSet
	search    string
	showAll   bool
	local     map[string]struct{}
}

// New creates a session over the given token storage and catalog client.
// The target directory is used both for the local-collision exclusion filter
// and as the clone root.
func New(storage token.Storage, client CatalogLister, tracker progress.Tracker, targetDir string) *Session {
	if tracker == nil {
		tracker = progress.NopTracker{}
	}
	return &Session{
		state:     StateUnauthenticated,
		storage:   storage,
		client:    client,
		tracker:   tracker,
		targetDir: targetDir,
		selection: catalog.NewSelectionSet(0),
	}
}

// State returns the session's current state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// SetShowAll controls whether already-cloned repositories are excluded from
// the displayed catalog. Re-applies filters when a catalog is loaded.
func (s *Session) SetShowAll(showAll bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.showAll = showAll
	s.refreshDisplayedLocked()
}

// ResolveCredential loads the stored credential into the session. When no
// credential is stored, ErrNoCredential is returned and the session stays
// unauthenticated.
func (s *Session) ResolveCredential(ctx context.Context) error {
	t, err := s.storage.Retrieve(ctx, token.KeyGitHub)
	if err != nil {
		if err == token.ErrTokenNotFound {
			return ErrNoCredential
		}
		return err
	}
	s.mu.Lock()
	s.credential = t
	s.mu.Unlock()
	return nil
}

// SetCredential injects a credential directly (for example from a --token
// flag), bypassing storage.
func (s *Session) SetCredential(t token.Token) {
	s.mu.Lock()
	s.credential = t
	s.mu.Unlock()
}

// Fetch retrieves the repository catalog. Any HTTP rejection presumes the
// credential invalid: it is discarded from storage and the session resets to
// unauthenticated with an empty catalog. On a transport failure the previous
// catalog and state are kept so the fetch can simply be retried.
func (s *Session) Fetch(ctx context.Context) error {
	s.mu.Lock()
	if s.busy {
		s.mu.Unlock()
		return ErrBusy
	}
	if s.credential.Value == "" {
		s.mu.Unlock()
		return ErrNoCredential
	}
	s.busy = true
	prev := s.state
	s.state = StateFetching
	s.mu.Unlock()

	entries, err := s.client.ListRepositories(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.busy = false

	if err != nil {
		if errors.IsAuthError(err) {
			// Credential presumed invalid: discard it and reset the catalog.
			_ = s.storage.Delete(ctx, token.KeyGitHub)
			s.credential = token.Token{}
			s.fetched = nil
			s.displayed = nil
			s.selection.Reset(0)
			s.state = StateUnauthenticated
			return err
		}
		s.state = prev
		return err
	}

	local, lerr := catalog.LocalFolderNames(s.targetDir)
	if lerr != nil {
		local = map[string]struct{}{}
	}

	s.fetched = entries
	s.local = local
	s.state = StateIdle
	s.refreshDisplayedLocked()
	return nil
}

// Search sets the name filter and re-derives the displayed catalog. The
// selection set is reset so stale flags cannot misalign with the new view.
func (s *Session) Search(substring string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.search = substring
	s.refreshDisplayedLocked()
}

// refreshDisplayedLocked recomputes the displayed catalog from the fetched
// one and resets the selection to match. Caller holds s.mu.
func (s *Session) refreshDisplayedLocked() {
	entries := s.fetched
	if !s.showAll {
		entries = catalog.FilterExcludingLocal(entries, s.local)
	}
	entries = catalog.FilterByName(entries, s.search)
	s.displayed = entries
	s.selection.Reset(len(entries))
}

// Displayed returns the currently displayed (filtered) catalog.
func (s *Session) Displayed() []catalog.Identifier {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]catalog.Identifier, len(s.displayed))
	copy(out, s.displayed)
	return out
}

// IsLocal reports whether the identifier's folder already exists under the
// session's target root.
func (s *Session) IsLocal(id catalog.Identifier) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.local[id.FolderName()]
	return ok
}

// Toggle flips the selection flag for the displayed entry at index i.
func (s *Session) Toggle(i int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selection.Toggle(i)
}

// SelectAll marks every displayed entry selected.
func (s *Session) SelectAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selection.SelectAll()
}

// SelectNone clears the selection.
func (s *Session) SelectNone() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selection.SelectNone()
}

// SelectMatching selects every displayed entry whose full name contains the
// given substring (case-insensitive) and returns how many matched.
func (s *Session) SelectMatching(substring string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	matched := 0
	for i, entry := range s.displayed {
		if len(catalog.FilterByName([]catalog.Identifier{entry}, substring)) == 1 {
			s.selection.Set(i, true)
			matched++
		}
	}
	return matched
}

// Selected returns the selected identifiers in display order.
func (s *Session) Selected() []catalog.Identifier {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selection.Selected(s.displayed)
}
