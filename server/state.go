package server

import (
	"sync"

	"github.com/gofiber/fiber/v3"

	"github.com/axiomconsultancy/axiom-admin-go/axiom"
	"github.com/axiomconsultancy/axiom-admin-go/console"
	"github.com/axiomconsultancy/axiom-admin-go/session"
)

// consoleState is the set of screen controllers for one session. The
// controllers carry fetch sequencers and busy-row state, so they must
// survive across requests and never be shared between operators.
type consoleState struct {
	client    *axiom.Client
	agents    *console.AgentsController
	users     *console.UsersController
	plans     *console.PlansController
	coupons   *console.CouponsController
	knowledge *console.KnowledgeController
	summaries *console.SummariesController
}

type stateCache struct {
	mutex    sync.Mutex
	platform *axiom.Client
	states   map[string]*consoleState
}

func newStateCache(platform *axiom.Client) *stateCache {
	return &stateCache{
		platform: platform,
		states:   make(map[string]*consoleState),
	}
}

// get returns the state for a session, building it on first use.
func (sc *stateCache) get(sess session.Session) *consoleState {
	sc.mutex.Lock()
	defer sc.mutex.Unlock()

	if state, exists := sc.states[sess.ID]; exists {
		return state
	}

	client := sc.platform.WithToken(sess.Token)
	state := &consoleState{
		client:    client,
		agents:    console.NewAgentsController(client),
		users:     console.NewUsersController(client),
		plans:     console.NewPlansController(client),
		coupons:   console.NewCouponsController(client),
		knowledge: console.NewKnowledgeController(client),
		summaries: console.NewSummariesController(client),
	}
	sc.states[sess.ID] = state
	return state
}

// drop forgets a session's controllers, on signout or token death.
func (sc *stateCache) drop(sessionID string) {
	sc.mutex.Lock()
	defer sc.mutex.Unlock()
	delete(sc.states, sessionID)
}

// consoleFor resolves the request's session and its controller set.
func (s *Server) consoleFor(c fiber.Ctx) (session.Session, *consoleState) {
	sess := sessionFrom(c)
	return sess, s.state.get(sess)
}
