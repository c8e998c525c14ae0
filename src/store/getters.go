package store

import "risk-console/src/models"

// -----------------------------------------------------------------------------
// Getters - derived views computed on every access so they always reflect the
// latest committed mutation. All return copies; callers never see internal
// slices or maps.
// -----------------------------------------------------------------------------

func (s *Store) Accounts() []models.MAccount {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.MAccount(nil), s.accounts...)
}

// -----------------------------------------------------------------------------

func (s *Store) Positions() []models.MPosition {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.MPosition(nil), s.positions...)
}

// -----------------------------------------------------------------------------

func (s *Store) Alerts() []models.MRiskAlert {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.MRiskAlert(nil), s.alerts...)
}

// -----------------------------------------------------------------------------

// AccountByID looks an account up by id.
func (s *Store) AccountByID(id int64) (models.MAccount, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, account := range s.accounts {
		if account.ID == id {
			return account, true
		}
	}
	return models.MAccount{}, false
}

// -----------------------------------------------------------------------------

// PositionByID looks a position up by id.
func (s *Store) PositionByID(id int64) (models.MPosition, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, position := range s.positions {
		if position.ID == id {
			return position, true
		}
	}
	return models.MPosition{}, false
}

// -----------------------------------------------------------------------------

// RiskConfigByAccount returns the stored config for an account.
func (s *Store) RiskConfigByAccount(accountID int64) (models.MRiskConfig, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cfg, ok := s.riskConfigs[accountID]
	return cfg, ok
}

// -----------------------------------------------------------------------------

// ActiveAlerts filters to unresolved alerts.
func (s *Store) ActiveAlerts() []models.MRiskAlert {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var active []models.MRiskAlert
	for _, alert := range s.alerts {
		if !alert.IsResolved {
			active = append(active, alert)
		}
	}
	return active
}

// -----------------------------------------------------------------------------

// AlertsByRiskLevel filters alerts to one risk level.
func (s *Store) AlertsByRiskLevel(level models.RiskLevel) []models.MRiskAlert {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var matched []models.MRiskAlert
	for _, alert := range s.alerts {
		if alert.RiskLevel == level {
			matched = append(matched, alert)
		}
	}
	return matched
}

// -----------------------------------------------------------------------------

// DashboardMetrics returns the current aggregate metrics record.
func (s *Store) DashboardMetrics() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]any, len(s.dashboard))
	for k, v := range s.dashboard {
		out[k] = v
	}
	return out
}

// -----------------------------------------------------------------------------
// Session views
// -----------------------------------------------------------------------------

// SessionToken returns the active token, or empty when unauthenticated.
func (s *Store) SessionToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sessionToken
}

// -----------------------------------------------------------------------------

func (s *Store) CurrentUser() *models.MUserProfile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.currentUser == nil {
		return nil
	}
	user := *s.currentUser
	return &user
}
