// Package session owns the locally cached credential: it persists it across
// runs, schedules its expiry, and guarantees nothing keeps acting
// authenticated after the credential's lifetime ends.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/dkowalski/quoteshelf/internal/client/storage"
	"github.com/dkowalski/quoteshelf/internal/common"
	"github.com/dkowalski/quoteshelf/internal/server/auth"
)

// State of the session machine. Expiring is transient: it exists between
// the countdown reaching zero and the cleanup finishing.
type State int

const (
	StateLoggedOut State = iota
	StateActive
	StateExpiring
)

// Identity is the authenticated user as reported at login, cached alongside
// the credential.
type Identity struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Manager runs the session state machine. At most one countdown is live at
// any moment; starting a new session cancels the previous countdown first.
//
// The countdown is wall-clock driven: every tick recomputes the remaining
// time from the credential's embedded expiry, so a machine suspend shortens
// the session instead of extending it.
type Manager struct {
	store        storage.Repository
	tickInterval time.Duration
	onExpire     func()

	now func() time.Time

	mu       sync.Mutex
	state    State
	token    string
	identity Identity
	expires  time.Time
	stop     chan struct{}
}

// NewManager creates a logged-out manager. onExpire is invoked (once per
// session) when the countdown reaches zero, after the stored credential has
// been cleared; it may be nil.
func NewManager(store storage.Repository, tickInterval time.Duration, onExpire func()) *Manager {
	return &Manager{
		store:        store,
		tickInterval: tickInterval,
		onExpire:     onExpire,
		now:          time.Now,
	}
}

// Begin starts an authenticated session: any prior countdown is cancelled,
// the credential and identity are persisted, and a fresh countdown starts
// from the credential's embedded expiry.
func (m *Manager) Begin(ctx context.Context, token string, identity Identity) error {
	claims, err := auth.PeekClaims(token)
	if err != nil {
		return err
	}
	if claims.ExpiresAt == nil {
		return fmt.Errorf("%w: credential has no expiry", common.ErrInvalidToken)
	}

	identityJSON, err := json.Marshal(identity)
	if err != nil {
		return err
	}
	// The lock is held across the writes: a countdown for the previous
	// credential that ticks mid-replacement must not purge the fresh slots.
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.store.Set(ctx, storage.SlotCredential, []byte(token)); err != nil {
		return err
	}
	if err := m.store.Set(ctx, storage.SlotIdentity, identityJSON); err != nil {
		return err
	}

	m.stopCountdownLocked()
	m.state = StateActive
	m.token = token
	m.identity = identity
	m.expires = claims.ExpiresAt.Time
	m.startCountdownLocked()

	return nil
}

// End is the user-initiated logout: the countdown stops and the stored
// credential and identity are cleared. Calling End while logged out is a
// no-op.
func (m *Manager) End(ctx context.Context) error {
	m.mu.Lock()
	m.stopCountdownLocked()
	m.state = StateLoggedOut
	m.token = ""
	m.identity = Identity{}
	m.mu.Unlock()

	if err := m.store.Delete(ctx, storage.SlotCredential); err != nil {
		return err
	}
	return m.store.Delete(ctx, storage.SlotIdentity)
}

// Restore attempts to resume a persisted session at startup. A missing
// credential leaves the manager logged out; an already-expired one is purged
// instead of starting a negative countdown.
func (m *Manager) Restore(ctx context.Context) error {
	token, err := m.store.Get(ctx, storage.SlotCredential)
	if err != nil {
		return err
	}
	if len(token) == 0 {
		return nil
	}

	claims, err := auth.PeekClaims(string(token))
	if err != nil || claims.ExpiresAt == nil || !claims.ExpiresAt.Time.After(m.now()) {
		return m.End(ctx)
	}

	var identity Identity
	identityJSON, err := m.store.Get(ctx, storage.SlotIdentity)
	if err != nil {
		return err
	}
	if len(identityJSON) > 0 {
		if err := json.Unmarshal(identityJSON, &identity); err != nil {
			return m.End(ctx)
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.stopCountdownLocked()
	m.state = StateActive
	m.token = string(token)
	m.identity = identity
	m.expires = claims.ExpiresAt.Time
	m.startCountdownLocked()

	return nil
}

// Token returns the live credential, or "" when logged out.
func (m *Manager) Token() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != StateActive {
		return ""
	}
	return m.token
}

// Identity returns the cached identity and whether a session is active.
func (m *Manager) Identity() (Identity, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.identity, m.state == StateActive
}

func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Remaining reports the time left on the active session, zero otherwise.
func (m *Manager) Remaining() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != StateActive {
		return 0
	}
	remaining := m.expires.Sub(m.now())
	if remaining < 0 {
		return 0
	}
	return remaining
}

// stopCountdownLocked cancels the live countdown if there is one. Safe to
// call repeatedly.
func (m *Manager) stopCountdownLocked() {
	if m.stop != nil {
		close(m.stop)
		m.stop = nil
	}
}

func (m *Manager) startCountdownLocked() {
	stop := make(chan struct{})
	m.stop = stop

	go func() {
		ticker := time.NewTicker(m.tickInterval)
		defer ticker.Stop()

		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				if m.expired(stop) {
					return
				}
			}
		}
	}()
}

// expired checks the wall clock against the session expiry and, when the
// session is over, performs the forced logout. The stop channel identifies
// the countdown: a countdown that has been replaced never fires.
func (m *Manager) expired(stop chan struct{}) bool {
	m.mu.Lock()
	if m.stop != stop {
		m.mu.Unlock()
		return true
	}
	if m.now().Before(m.expires) {
		m.mu.Unlock()
		return false
	}

	m.state = StateExpiring
	m.stop = nil
	m.token = ""
	m.identity = Identity{}
	m.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = m.store.Delete(ctx, storage.SlotCredential)
	_ = m.store.Delete(ctx, storage.SlotIdentity)

	m.mu.Lock()
	m.state = StateLoggedOut
	m.mu.Unlock()

	if m.onExpire != nil {
		m.onExpire()
	}
	return true
}
