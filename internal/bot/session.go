package bot

import (
	"sync"

	"github.com/shopspring/decimal"

	"github.com/simex888888-dotcom/tg-trade-bot3/internal/pnl"
)

// step identifies which answer the wizard is waiting for.
type step int

const (
	stepNone step = iota

	// Trade card wizard
	stepExchange
	stepSymbol
	stepSide
	stepEntry
	stepMark
	stepAmount
	stepLeverage
	stepDeposit

	// Custom card wizard
	stepCustomExchange
	stepCustomUsername
	stepCustomSide
	stepCustomSymbol
	stepCustomEntry
	stepCustomExit
	stepCustomLeverage
	stepCustomReferral
	stepCustomDatetime

	// Marathon enrollment
	stepMarathonDeposit
)

// tradeDraft accumulates wizard answers. Pointer fields distinguish "not
// answered yet" from a zero value, which matters when the user walks back.
type tradeDraft struct {
	exchange pnl.Exchange
	symbol   string
	side     pnl.Side
	entry    *decimal.Decimal
	mark     *decimal.Decimal
	amount   *decimal.Decimal
	leverage *int
	deposit  *decimal.Decimal
}

// customDraft accumulates custom card answers as entered.
type customDraft struct {
	exchange pnl.Exchange
	username string
	side     pnl.Side
	symbol   string
	entry    *decimal.Decimal
	exit     *decimal.Decimal
	leverage string
	referral string
	datetime string
}

// session is one user's wizard state. Updates are handled in separate
// goroutines, so handlers hold mu while reading or mutating the session.
type session struct {
	mu     sync.Mutex
	step   step
	prev   []step // back stack
	trade  tradeDraft
	custom customDraft
}

// advance moves to the next step, remembering the current one.
func (s *session) advance(next step) {
	if s.step != stepNone {
		s.prev = append(s.prev, s.step)
	}
	s.step = next
}

// back pops the previous step. Returns false at the start of a flow.
func (s *session) back() bool {
	if len(s.prev) == 0 {
		return false
	}
	s.step = s.prev[len(s.prev)-1]
	s.prev = s.prev[:len(s.prev)-1]
	return true
}

func (s *session) reset() {
	s.step = stepNone
	s.prev = nil
	s.trade = tradeDraft{}
	s.custom = customDraft{}
}

// sessionStore holds per-user sessions.
type sessionStore struct {
	mu       sync.Mutex
	sessions map[int64]*session
}

func newSessionStore() *sessionStore {
	return &sessionStore{sessions: make(map[int64]*session)}
}

func (st *sessionStore) get(userID int64) *session {
	st.mu.Lock()
	defer st.mu.Unlock()

	s, ok := st.sessions[userID]
	if !ok {
		s = &session{}
		st.sessions[userID] = s
	}
	return s
}
