package router

import (
	"sync"

	"github.com/Alice-Fowler/telegram-bot-nlp/internal/model"
)

// State is the conversational position of a pending transaction.
type State int

// Router states with pending data attached.
const (
	// StateAwaitingConfirmation waits for a yes/no on a suggested category.
	StateAwaitingConfirmation State = iota
	// StateAwaitingCategory waits for an explicit pick from the category list.
	StateAwaitingCategory
	// StateAwaitingAmount waits for a sum in the fast-add flow, where the
	// category was chosen up front.
	StateAwaitingAmount
)

type session struct {
	pending model.PendingTransaction
	state   State
}

// sessionStore keeps at most one pending conversation per user, in memory
// only. Restart loses pending conversations, which is acceptable: the user
// starts over.
type sessionStore struct {
	sessions map[int64]*session
	mu       sync.Mutex
}

func newSessionStore() *sessionStore {
	return &sessionStore{sessions: make(map[int64]*session)}
}

func (s *sessionStore) get(userID int64) *session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessions[userID]
}

// put replaces any existing session for the user. Two conversations for one
// user never coexist; the newer one wins.
func (s *sessionStore) put(userID int64, sess *session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[userID] = sess
}

func (s *sessionStore) clear(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, userID)
}
