package sessioncache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/soripaulos/medical-quiz-app-sub001/internal/domain/answer"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/domain/profile"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/domain/quizsession"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/shared/biztime"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/shared/constants"
	apperrors "github.com/soripaulos/medical-quiz-app-sub001/internal/shared/errors"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/shared/logger"
)

// ErrNoSnapshot is returned when the slot is empty or its snapshot expired.
var ErrNoSnapshot = errors.New("no cached session snapshot")

// Store is the raw key/value slot storage.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

type sessionReader interface {
	GetByID(ctx context.Context, sessionID string) (*quizsession.QuizSession, error)
}

type answerReader interface {
	ListBySession(ctx context.Context, userID, sessionID string) ([]*answer.UserAnswer, error)
}

type profileReader interface {
	GetByUserID(ctx context.Context, userID string) (*profile.UserProfile, error)
}

// ClientKey addresses one slot: a user on one client.
type ClientKey struct {
	UserID   string
	ClientID string
}

func (k ClientKey) String() string {
	client := k.ClientID
	if client == "" {
		client = constants.DefaultClientID
	}
	return k.UserID + ":" + client
}

// Action tells the client what to do with its cached session.
type Action string

const (
	ActionResume  Action = "resume"
	ActionDiscard Action = "discard"
)

type ReconcileResult struct {
	Action   Action    `json:"action"`
	Snapshot *Snapshot `json:"snapshot,omitempty"`
	// Pending lists cached answers the server never acknowledged.
	Pending []uint `json:"pending"`
	// Stale is set when the server saw activity after the snapshot was cached.
	Stale  bool   `json:"stale"`
	Reason string `json:"reason,omitempty"`
}

type ResumeTarget struct {
	SessionID string `json:"session_id,omitempty"`
	Status    string `json:"status,omitempty"`
	Resume    bool   `json:"resume"`
	Source    string `json:"source,omitempty"`
}

type Reconciler struct {
	store    Store
	sessions sessionReader
	answers  answerReader
	profiles profileReader
	ttl      time.Duration
	now      func() time.Time
	logger   logger.Interface
}

func NewReconciler(
	store Store,
	sessions quizsession.Repository,
	answers answer.AnswerRepository,
	profiles profile.Repository,
	ttl time.Duration,
	logger logger.Interface,
) *Reconciler {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Reconciler{
		store:    store,
		sessions: sessions,
		answers:  answers,
		profiles: profiles,
		ttl:      ttl,
		now:      biztime.NowUTC,
		logger:   logger,
	}
}

// WithClock replaces the time source.
func (r *Reconciler) WithClock(now func() time.Time) *Reconciler {
	r.now = now
	return r
}

// Save replaces the slot with snap, stamping last_cached.
func (r *Reconciler) Save(ctx context.Context, key ClientKey, snap *Snapshot) (*Snapshot, error) {
	if snap == nil || snap.Session.ID == "" {
		return nil, apperrors.NewValidationError("snapshot must reference a session")
	}
	snap.normalize()
	snap.LastCached = r.now()
	if err := r.write(ctx, key, snap); err != nil {
		return nil, err
	}
	return snap, nil
}

// Load returns the slot's snapshot. An expired snapshot is cleared and
// reported as ErrNoSnapshot.
func (r *Reconciler) Load(ctx context.Context, key ClientKey) (*Snapshot, error) {
	data, found, err := r.store.Get(ctx, key.String())
	if err != nil {
		return nil, apperrors.NewDownstreamError("failed to read session cache", err)
	}
	if !found {
		return nil, ErrNoSnapshot
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		r.logger.Warnw("discarding unreadable session cache", "key", key.String(), "error", err)
		_ = r.store.Delete(ctx, key.String())
		return nil, ErrNoSnapshot
	}
	if snap.Expired(r.now(), r.ttl) {
		if err := r.store.Delete(ctx, key.String()); err != nil {
			r.logger.Warnw("failed to clear expired session cache", "key", key.String(), "error", err)
		}
		return nil, ErrNoSnapshot
	}
	snap.normalize()
	return &snap, nil
}

// Update merges p into the existing snapshot. It never creates one.
func (r *Reconciler) Update(ctx context.Context, key ClientKey, p Patch) (*Snapshot, error) {
	snap, err := r.Load(ctx, key)
	if err != nil {
		return nil, err
	}
	p.applyTo(snap)
	snap.LastCached = r.now()
	if err := r.write(ctx, key, snap); err != nil {
		return nil, err
	}
	return snap, nil
}

func (r *Reconciler) Clear(ctx context.Context, key ClientKey) error {
	if err := r.store.Delete(ctx, key.String()); err != nil {
		return apperrors.NewDownstreamError("failed to clear session cache", err)
	}
	return nil
}

// Reconcile merges the cached snapshot with the server's view. The server
// wins for session fields and submitted answers; UI state, notes and flags
// are kept from the cache. A snapshot whose session is gone or closed is discarded.
func (r *Reconciler) Reconcile(ctx context.Context, key ClientKey) (*ReconcileResult, error) {
	snap, err := r.Load(ctx, key)
	if err != nil {
		return nil, err
	}

	s, err := r.sessions.GetByID(ctx, snap.Session.ID)
	switch {
	case err != nil && apperrors.IsNotFoundError(err):
		return r.discard(ctx, key, "session no longer exists")
	case err != nil:
		return nil, apperrors.NewDownstreamError("failed to load quiz session", err)
	case !s.IsOwnedBy(key.UserID):
		return r.discard(ctx, key, "session no longer exists")
	case !s.IsActive:
		return r.discard(ctx, key, "session is "+s.Status.String())
	}

	server, err := r.answers.ListBySession(ctx, key.UserID, s.ID)
	if err != nil {
		return nil, apperrors.NewDownstreamError("failed to load answers", err)
	}

	stale := s.LastActivityAt != nil && s.LastActivityAt.After(snap.LastCached)
	snap.Session = stateFromSession(s)

	acknowledged := make(map[uint]struct{}, len(server))
	for _, a := range server {
		acknowledged[a.QuestionID] = struct{}{}
		snap.Answers[a.QuestionID] = CachedAnswer{
			Choice:     a.SelectedChoiceLetter,
			IsCorrect:  a.IsCorrect,
			TimeSpent:  a.TimeSpent,
			Submitted:  true,
			AnsweredAt: a.AnsweredAt,
		}
	}
	pending := []uint{}
	for qid, a := range snap.Answers {
		if _, ok := acknowledged[qid]; ok {
			continue
		}
		a.Submitted = false
		snap.Answers[qid] = a
		pending = append(pending, qid)
	}
	sort.Slice(pending, func(i, j int) bool { return pending[i] < pending[j] })

	snap.LastCached = r.now()
	if err := r.write(ctx, key, snap); err != nil {
		return nil, err
	}

	r.logger.Debugw("session cache reconciled",
		"key", key.String(),
		"session_id", s.ID,
		"pending", len(pending),
		"stale", stale,
	)
	return &ReconcileResult{Action: ActionResume, Snapshot: snap, Pending: pending, Stale: stale}, nil
}

// ResumeTarget picks the session the client should be sent back to: the
// reconciled cached session when there is one, else the profile's active pointer.
func (r *Reconciler) ResumeTarget(ctx context.Context, key ClientKey) (*ResumeTarget, error) {
	res, err := r.Reconcile(ctx, key)
	switch {
	case err == nil && res.Action == ActionResume:
		return &ResumeTarget{
			SessionID: res.Snapshot.Session.ID,
			Status:    res.Snapshot.Session.Status,
			Resume:    true,
			Source:    "cache",
		}, nil
	case err != nil && !errors.Is(err, ErrNoSnapshot):
		return nil, err
	}

	p, err := r.profiles.GetByUserID(ctx, key.UserID)
	if err != nil {
		if apperrors.IsNotFoundError(err) {
			return &ResumeTarget{}, nil
		}
		return nil, apperrors.NewDownstreamError("failed to load profile", err)
	}
	if p.ActiveSessionID == nil {
		return &ResumeTarget{}, nil
	}
	s, err := r.sessions.GetByID(ctx, *p.ActiveSessionID)
	if err != nil {
		if apperrors.IsNotFoundError(err) {
			return &ResumeTarget{}, nil
		}
		return nil, apperrors.NewDownstreamError("failed to load quiz session", err)
	}
	if !s.IsActive || !s.IsOwnedBy(key.UserID) {
		return &ResumeTarget{}, nil
	}
	return &ResumeTarget{SessionID: s.ID, Status: s.Status.String(), Resume: true, Source: "profile"}, nil
}

func (r *Reconciler) discard(ctx context.Context, key ClientKey, reason string) (*ReconcileResult, error) {
	if err := r.store.Delete(ctx, key.String()); err != nil {
		r.logger.Warnw("failed to clear discarded session cache", "key", key.String(), "error", err)
	}
	r.logger.Infow("session cache discarded", "key", key.String(), "reason", reason)
	return &ReconcileResult{Action: ActionDiscard, Pending: []uint{}, Reason: reason}, nil
}

func (r *Reconciler) write(ctx context.Context, key ClientKey, snap *Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to marshal session snapshot: %w", err)
	}
	if err := r.store.Set(ctx, key.String(), data, r.ttl); err != nil {
		return apperrors.NewDownstreamError("failed to write session cache", err)
	}
	return nil
}
