package service

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ndewijer/Campaign-Finance-Explorer-Backend/internal/apperrors"
	"github.com/ndewijer/Campaign-Finance-Explorer-Backend/internal/explorer"
	"github.com/ndewijer/Campaign-Finance-Explorer-Backend/internal/model"
	"github.com/ndewijer/Campaign-Finance-Explorer-Backend/internal/statetoken"
)

// SessionView is what every session operation returns: the session id and the
// projection of its state after the operation.
type SessionView struct {
	ID         string              `json:"id"`
	Projection explorer.Projection `json:"projection"`
	LoadedAt   time.Time           `json:"lastUpdated"`
}

type session struct {
	state    explorer.State
	lastSeen time.Time
	live     int // attached live connections
}

// sharedState is the part of a session's state carried in share tokens.
type sharedState struct {
	View  explorer.View     `json:"view"`
	Race  string            `json:"race"`
	Query string            `json:"query"`
	Sort  explorer.SortSpec `json:"sort"`
}

// SessionService keeps one explorer state per browser session and applies
// transitions to it. Each transition runs under the service lock, so a
// session never sees two transitions interleave.
type SessionService struct {
	catalog *CatalogService
	tokens  *statetoken.Codec
	logger  *zap.Logger
	now     func() time.Time

	mu       sync.Mutex
	sessions map[string]*session
}

// NewSessionService creates a SessionService over catalog.
func NewSessionService(catalog *CatalogService, tokens *statetoken.Codec, logger *zap.Logger) *SessionService {
	return &SessionService{
		catalog:  catalog,
		tokens:   tokens,
		logger:   logger,
		now:      time.Now,
		sessions: make(map[string]*session),
	}
}

// Create starts a session in the initial state.
func (s *SessionService) Create() SessionView {
	return s.create(explorer.NewState())
}

func (s *SessionService) create(state explorer.State) SessionView {
	id := uuid.New().String()

	s.mu.Lock()
	s.sessions[id] = &session{state: state, lastSeen: s.now()}
	s.mu.Unlock()

	s.logger.Debug("session created", zap.String("session", id))
	return s.view(id, state, s.catalog.Snapshot())
}

// Get returns the current projection of a session.
func (s *SessionService) Get(id string) (SessionView, error) {
	return s.apply(id, func(st explorer.State, _ []model.Candidate) explorer.State { return st })
}

// SetRace changes the race selector.
func (s *SessionService) SetRace(id, race string) (SessionView, error) {
	return s.apply(id, func(st explorer.State, _ []model.Candidate) explorer.State {
		return st.SetRace(explorer.ParseRaceFilter(race))
	})
}

// SetQuery changes the free-text query.
func (s *SessionService) SetQuery(id, query string) (SessionView, error) {
	return s.apply(id, func(st explorer.State, _ []model.Candidate) explorer.State {
		return st.SetQuery(query)
	})
}

// SetSort picks a sort column, toggling direction on a repeat pick.
func (s *SessionService) SetSort(id string, column explorer.SortColumn) (SessionView, error) {
	return s.apply(id, func(st explorer.State, _ []model.Candidate) explorer.State {
		return st.SetSort(column)
	})
}

// SwitchView activates a view.
func (s *SessionService) SwitchView(id string, view explorer.View) (SessionView, error) {
	return s.apply(id, func(st explorer.State, _ []model.Candidate) explorer.State {
		return st.SwitchView(view)
	})
}

// ClearFilters resets race, query and sort.
func (s *SessionService) ClearFilters(id string) (SessionView, error) {
	return s.apply(id, func(st explorer.State, _ []model.Candidate) explorer.State {
		return st.ClearFilters()
	})
}

// OpenDetails opens the detail modal for a candidate. An unknown candidate
// leaves the modal as it was.
func (s *SessionService) OpenDetails(id string, candidate model.CandidateID) (SessionView, error) {
	return s.apply(id, func(st explorer.State, candidates []model.Candidate) explorer.State {
		return st.OpenDetails(candidate, candidates)
	})
}

// CloseDetails closes the detail modal.
func (s *SessionService) CloseDetails(id string) (SessionView, error) {
	return s.apply(id, func(st explorer.State, _ []model.Candidate) explorer.State {
		return st.CloseDetails()
	})
}

// Attach marks a session as held by a live connection. Held sessions are
// never purged as idle. The returned release function detaches and touches the
// session.
func (s *SessionService) Attach(id string) (release func(), err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, apperrors.ErrSessionNotFound
	}
	sess.live++
	sess.lastSeen = s.now()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			sess.live--
			sess.lastSeen = s.now()
		})
	}, nil
}

// End discards a session.
func (s *SessionService) End(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[id]; !ok {
		return apperrors.ErrSessionNotFound
	}
	delete(s.sessions, id)
	return nil
}

// Count returns the number of live sessions.
func (s *SessionService) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// PurgeIdle drops sessions not touched within ttl and returns how many were
// dropped. Sessions held by a live connection are kept.
func (s *SessionService) PurgeIdle(ttl time.Duration) int {
	cutoff := s.now().Add(-ttl)

	s.mu.Lock()
	defer s.mu.Unlock()

	purged := 0
	for id, sess := range s.sessions {
		if sess.live == 0 && sess.lastSeen.Before(cutoff) {
			delete(s.sessions, id)
			purged++
		}
	}
	return purged
}

// Token issues a share token for the session's filters, sort and view. The
// detail modal is not carried over.
func (s *SessionService) Token(id string) (string, error) {
	s.mu.Lock()
	sess, ok := s.sessions[id]
	if !ok {
		s.mu.Unlock()
		return "", apperrors.ErrSessionNotFound
	}
	st := sess.state
	s.mu.Unlock()

	token, err := s.tokens.Encode(sharedState{
		View:  st.View,
		Race:  string(st.Race),
		Query: st.Query,
		Sort:  st.Sort,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %w", apperrors.ErrFailedToIssueStateToken, err)
	}
	return token, nil
}

// Restore starts a new session from a share token.
func (s *SessionService) Restore(token string) (SessionView, error) {
	var shared sharedState
	if err := s.tokens.Decode(token, &shared); err != nil {
		return SessionView{}, err
	}

	view, err := explorer.ParseView(string(shared.View))
	if err != nil {
		return SessionView{}, fmt.Errorf("%w: %w", apperrors.ErrInvalidStateToken, err)
	}

	st := explorer.NewState().
		SwitchView(view).
		SetRace(explorer.ParseRaceFilter(shared.Race)).
		SetQuery(shared.Query)
	if shared.Sort.Column.Valid() {
		st.Sort = explorer.SortSpec{
			Column:    shared.Sort.Column,
			Direction: explorer.ParseDirection(string(shared.Sort.Direction)),
		}
	}

	return s.create(st), nil
}

// apply runs one transition against a session and projects the result. The
// transition and the projection see the same snapshot. A modal whose candidate
// is gone from that snapshot is closed.
func (s *SessionService) apply(id string, transition func(explorer.State, []model.Candidate) explorer.State) (SessionView, error) {
	snap := s.catalog.Snapshot()

	s.mu.Lock()
	sess, ok := s.sessions[id]
	if !ok {
		s.mu.Unlock()
		return SessionView{}, apperrors.ErrSessionNotFound
	}
	st := transition(sess.state, snap.Candidates)
	if st.Modal != nil {
		if _, found := model.FindCandidate(snap.Candidates, *st.Modal); !found {
			st = st.CloseDetails()
		}
	}
	sess.state = st
	sess.lastSeen = s.now()
	s.mu.Unlock()

	return s.view(id, st, snap), nil
}

func (s *SessionService) view(id string, st explorer.State, snap *Snapshot) SessionView {
	return SessionView{
		ID:         id,
		Projection: explorer.Project(st, snap.Candidates),
		LoadedAt:   snap.LoadedAt,
	}
}
