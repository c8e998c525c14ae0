package store

import (
	"sync"

	"risk-console/src/gateway"
	"risk-console/src/interfaces"
	"risk-console/src/logger"
	"risk-console/src/models"
)

// -----------------------------------------------------------------------------
// Store - the single mutable state container for the console.
//
// It is constructed once and passed by handle to every component that needs
// it; there is no ambient global. Writes go through mutations only, reads
// through getters. REST snapshot fetches replace whole collections; push
// deltas merge single records by id. Either can arrive first; a delta after a
// replace finds the repopulated record, and a replace after a delta discards
// the interim partial state until the next fetch.
// -----------------------------------------------------------------------------

type Store struct {
	mu sync.RWMutex

	API    *gateway.Client
	Tokens interfaces.ITokenStore
	Logger *logger.Logger

	accounts    []models.MAccount
	positions   []models.MPosition
	alerts      []models.MRiskAlert
	riskConfigs map[int64]models.MRiskConfig
	dashboard   map[string]any

	sessionToken string
	currentUser  *models.MUserProfile

	// Per-resource snapshot sequencing: a snapshot commit is discarded when a
	// later-issued fetch for the same resource has already committed.
	seqIssued  map[string]uint64
	seqApplied map[string]uint64
}

// -----------------------------------------------------------------------------

func NewStore(api *gateway.Client, tokens interfaces.ITokenStore, log *logger.Logger) *Store {
	return &Store{
		API:         api,
		Tokens:      tokens,
		Logger:      log,
		riskConfigs: make(map[int64]models.MRiskConfig),
		dashboard:   make(map[string]any),
		seqIssued:   make(map[string]uint64),
		seqApplied:  make(map[string]uint64),
	}
}

// -----------------------------------------------------------------------------
// Snapshot sequencing
// -----------------------------------------------------------------------------

// beginFetch tags an action invocation with a monotonic sequence number for
// its resource. Numbers follow invocation order; commits follow response
// order, so the staleness check in commit makes the last request win.
func (s *Store) beginFetch(resource string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seqIssued[resource]++
	return s.seqIssued[resource]
}

// -----------------------------------------------------------------------------

// commit applies a snapshot mutation unless a newer fetch for the same
// resource already committed. apply runs under the write lock and must not
// touch the lock itself.
func (s *Store) commit(resource string, seq uint64, apply func()) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if seq <= s.seqApplied[resource] {
		s.Logger.Debug("Discarding stale %s snapshot (seq %d <= %d)", resource, seq, s.seqApplied[resource])
		return false
	}

	apply()
	s.seqApplied[resource] = seq
	return true
}

// -----------------------------------------------------------------------------
// Mutations - the only permitted way to change state. Synchronous and total.
// -----------------------------------------------------------------------------

// SetAccounts replaces the whole account collection.
func (s *Store) SetAccounts(accounts []models.MAccount) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setAccounts(accounts)
}

func (s *Store) setAccounts(accounts []models.MAccount) {
	s.accounts = append([]models.MAccount(nil), accounts...)
}

// -----------------------------------------------------------------------------

// SetPositions replaces the whole position collection, discarding any interim
// push-only merges not present in the list.
func (s *Store) SetPositions(positions []models.MPosition) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setPositions(positions)
}

func (s *Store) setPositions(positions []models.MPosition) {
	s.positions = append([]models.MPosition(nil), positions...)
}

// -----------------------------------------------------------------------------

// SetAlerts replaces the whole alert collection.
func (s *Store) SetAlerts(alerts []models.MRiskAlert) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setAlerts(alerts)
}

func (s *Store) setAlerts(alerts []models.MRiskAlert) {
	s.alerts = append([]models.MRiskAlert(nil), alerts...)
}

// -----------------------------------------------------------------------------

// SetRiskConfig stores the config for one account; last write wins.
func (s *Store) SetRiskConfig(accountID int64, cfg models.MRiskConfig) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setRiskConfig(accountID, cfg)
}

func (s *Store) setRiskConfig(accountID int64, cfg models.MRiskConfig) {
	s.riskConfigs[accountID] = cfg
}

// -----------------------------------------------------------------------------

// UpdateDashboardData shallow-merges partial metrics into the aggregate
// record; existing keys survive unless overwritten.
func (s *Store) UpdateDashboardData(partial map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.updateDashboardData(partial)
}

func (s *Store) updateDashboardData(partial map[string]any) {
	for k, v := range partial {
		s.dashboard[k] = v
	}
}

// -----------------------------------------------------------------------------

// UpdateAlert replaces the alert with the same id in place, or inserts it
// when the store has never seen it.
func (s *Store) UpdateAlert(alert models.MRiskAlert) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.updateAlert(alert)
}

func (s *Store) updateAlert(alert models.MRiskAlert) {
	for i := range s.alerts {
		if s.alerts[i].ID == alert.ID {
			s.alerts[i] = alert
			return
		}
	}
	s.alerts = append(s.alerts, alert)
}

// -----------------------------------------------------------------------------

// UpdatePosition merges a partial delta into the position with the same id,
// preserving unsupplied fields, or inserts a new record built from the delta.
func (s *Store) UpdatePosition(delta models.MPositionDelta) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.updatePosition(delta)
}

func (s *Store) updatePosition(delta models.MPositionDelta) {
	for i := range s.positions {
		if s.positions[i].ID == delta.ID {
			delta.ApplyTo(&s.positions[i])
			return
		}
	}
	s.positions = append(s.positions, delta.Materialize())
}

// -----------------------------------------------------------------------------

// upsertPosition replaces a full position record by id, inserting if missing.
// Used when a REST response returns the authoritative record.
func (s *Store) upsertPosition(position models.MPosition) {
	for i := range s.positions {
		if s.positions[i].ID == position.ID {
			s.positions[i] = position
			return
		}
	}
	s.positions = append(s.positions, position)
}

// -----------------------------------------------------------------------------
// Session mutations
// -----------------------------------------------------------------------------

// SetSessionToken records the active bearer token. A token without a profile
// is a valid transient state (boot before /auth/me resolves).
func (s *Store) SetSessionToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessionToken = token
	if token == "" {
		s.currentUser = nil
	}
}

// -----------------------------------------------------------------------------

// SetCurrentUser records the authenticated profile. A profile is only held
// while a token is present.
func (s *Store) SetCurrentUser(user *models.MUserProfile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sessionToken == "" && user != nil {
		s.Logger.Warning("Dropping user profile update without an active token")
		return
	}
	s.currentUser = user
}

// -----------------------------------------------------------------------------

// ClearSession destroys the session identity.
func (s *Store) ClearSession() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessionToken = ""
	s.currentUser = nil
}
