package branding

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/streamvault/storefront/internal/store"
)

// snapshotKey is the single fixed key the branding snapshot is persisted
// under in the local settings store.
const snapshotKey = "branding:snapshot"

// Branding metrics. Fetch failures surface here and in the log -- they are
// never raised to the render path.
var (
	fetchFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "branding_fetch_failures_total",
		Help: "Total number of failed branding fetches from the remote source.",
	})
	profilesApplied = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "branding_applied_total",
		Help: "Total number of branding profiles applied to the presentation layer.",
	})
	staleFetchesDiscarded = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "branding_stale_fetches_discarded_total",
		Help: "Total number of fetch results discarded because a newer fetch already applied.",
	})
)

func init() {
	prometheus.MustRegister(fetchFailures)
	prometheus.MustRegister(profilesApplied)
	prometheus.MustRegister(staleFetchesDiscarded)
}

// State tracks where the live profile was hydrated from.
type State string

const (
	// StateCached means the profile came from the local snapshot or the
	// hard-coded default; no remote fetch has succeeded yet.
	StateCached State = "cached"
	// StateSynced means at least one remote fetch has succeeded. There is
	// no transition back to cached.
	StateSynced State = "synced"
)

// Source fetches the current branding payload from the remote API.
type Source interface {
	Branding(ctx context.Context) (Profile, error)
}

// Snapshots persists the most recent branding payload as an opaque value
// under a fixed key. Implemented by store.Settings.
type Snapshots interface {
	Get(ctx context.Context, key string) (store.Setting, error)
	Set(ctx context.Context, key, value string) error
}

// Applier receives derived theme states as presentation side effects.
type Applier interface {
	ApplyTheme(ThemeState)
}

// Store holds the process-wide branding profile. Readers always see a
// wholly-replaced profile; a fetch that loses the race against a newer
// fetch is discarded by sequence number rather than applied last-write-wins.
type Store struct {
	snapshots Snapshots
	source    Source
	applier   Applier
	logger    *zap.Logger
	validate  *validator.Validate

	mu         sync.RWMutex
	profile    Profile
	theme      ThemeState
	state      State
	nextSeq    uint64 // next fetch sequence number, taken at issue time
	appliedSeq uint64 // sequence of the last applied fetch
}

// NewStore creates a branding store. The applier may be nil when no
// presentation layer is attached (tests, CLI inspection).
func NewStore(snapshots Snapshots, source Source, applier Applier, logger *zap.Logger) *Store {
	return &Store{
		snapshots: snapshots,
		source:    source,
		applier:   applier,
		logger:    logger,
		validate:  validator.New(),
		profile:   Default(),
		state:     StateCached,
	}
}

// Load hydrates the profile from the persisted snapshot, synchronously and
// without touching the network. A missing or unparsable snapshot falls
// back to the hard-coded default; the fault is logged, never raised, so
// the first render pass always has a profile.
func (s *Store) Load(ctx context.Context) Profile {
	profile := Default()

	snap, err := s.snapshots.Get(ctx, snapshotKey)
	switch {
	case errors.Is(err, store.ErrNotFound):
		s.logger.Info("no branding snapshot, using default profile")
	case err != nil:
		s.logger.Warn("branding snapshot unreadable, using default profile", zap.Error(err))
	default:
		var parsed Profile
		if jsonErr := json.Unmarshal([]byte(snap.Value), &parsed); jsonErr != nil {
			s.logger.Warn("branding snapshot unparsable, using default profile", zap.Error(jsonErr))
		} else if valErr := s.validate.Struct(parsed); valErr != nil {
			s.logger.Warn("branding snapshot invalid, using default profile", zap.Error(valErr))
		} else {
			profile = parsed
		}
	}

	theme := themeState(profile)

	s.mu.Lock()
	s.profile = profile
	s.theme = theme
	s.state = StateCached
	s.mu.Unlock()

	s.apply(theme)
	return profile
}

// Fetch requests the current profile from the remote source and, on
// success, replaces the in-memory profile, persists the snapshot, and
// re-applies presentation side effects. Failures leave the current
// profile untouched and are reported to the log and metrics only.
//
// Each fetch is tagged with a sequence number at issue time; a fetch that
// resolves after a newer one has applied is discarded.
func (s *Store) Fetch(ctx context.Context) {
	s.mu.Lock()
	s.nextSeq++
	seq := s.nextSeq
	s.mu.Unlock()

	fetched, err := s.source.Branding(ctx)
	if err != nil {
		fetchFailures.Inc()
		s.logger.Warn("branding fetch failed, keeping current profile",
			zap.Uint64("seq", seq), zap.Error(err))
		return
	}

	if err := s.validate.Struct(fetched); err != nil {
		fetchFailures.Inc()
		s.logger.Warn("branding fetch returned invalid profile, keeping current profile",
			zap.Uint64("seq", seq), zap.Error(err))
		return
	}

	theme := themeState(fetched)

	s.mu.Lock()
	if seq < s.appliedSeq {
		s.mu.Unlock()
		staleFetchesDiscarded.Inc()
		s.logger.Info("discarding stale branding fetch", zap.Uint64("seq", seq))
		return
	}
	s.profile = fetched
	s.theme = theme
	s.state = StateSynced
	s.appliedSeq = seq
	s.mu.Unlock()

	s.persist(ctx, fetched)
	s.apply(theme)

	s.logger.Info("branding profile synced",
		zap.Uint64("seq", seq), zap.String("site_name", fetched.SiteName))
}

// persist writes the snapshot; a write failure costs only instant-paint on
// the next start, so it is logged and swallowed.
func (s *Store) persist(ctx context.Context, p Profile) {
	data, err := json.Marshal(p)
	if err != nil {
		s.logger.Error("marshal branding snapshot", zap.Error(err))
		return
	}
	if err := s.snapshots.Set(ctx, snapshotKey, string(data)); err != nil {
		s.logger.Error("persist branding snapshot", zap.Error(err))
	}
}

// apply notifies the presentation layer. Idempotent: the theme state is a
// pure function of the profile, so re-applying the same profile produces
// an identical observable state.
func (s *Store) apply(theme ThemeState) {
	if s.applier != nil {
		s.applier.ApplyTheme(theme)
	}
	profilesApplied.Inc()
}

// Profile returns a copy of the current profile.
func (s *Store) Profile() Profile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.profile
}

// State reports whether the profile has been synced from the remote
// source at least once.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// CardColor returns the base color products cards are rendered with.
func (s *Store) CardColor() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.profile.CardColor
}

// Theme returns the currently applied theme state.
func (s *Store) Theme() ThemeState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.theme
}
