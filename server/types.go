package server

import (
	"time"

	"github.com/axiomconsultancy/axiom-admin-go/console"
	"github.com/axiomconsultancy/axiom-admin-go/datatable"
	"github.com/axiomconsultancy/axiom-admin-go/session"
)

const (
	sessionCookie = "sid"
	sessionKey    = "console_session"
)

// Screen identifiers, shared by the view routes, the layout store and
// the live channel.
const (
	screenAgents    = "agents"
	screenUsers     = "users"
	screenPlans     = "plans"
	screenCoupons   = "coupons"
	screenKnowledge = "knowledge"
	screenSummaries = "summaries"
)

var knownScreens = map[string]struct{}{
	screenAgents:    {},
	screenUsers:     {},
	screenPlans:     {},
	screenCoupons:   {},
	screenKnowledge: {},
	screenSummaries: {},
}

// TableView is a datatable view plus which paging strategy produced it.
type TableView struct {
	datatable.View
	Strategy console.Strategy `json:"strategy,omitempty"`
}

// SessionInfo is what the frontend learns about its session. The
// platform token never leaves the server.
type SessionInfo struct {
	ID        string `json:"id"`
	UserID    string `json:"user_id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	ExpiresAt string `json:"expires_at"`
}

func sessionInfo(sess session.Session) SessionInfo {
	return SessionInfo{
		ID:        sess.ID,
		UserID:    sess.UserID,
		Username:  sess.Username,
		Email:     sess.Email,
		Role:      sess.Role,
		ExpiresAt: sess.TokenExpiry.Format(time.RFC3339),
	}
}

type signinRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Admin    bool   `json:"admin,omitempty"`
}

type signupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Admin    bool   `json:"admin,omitempty"`
}

type otpRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

type emailRequest struct {
	Email string `json:"email"`
}

type resetPasswordRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"new_password"`
}

type blockRequest struct {
	Blocked bool `json:"blocked"`
}

// exportRequest narrows which summaries go into a CSV export. All
// fields are optional; an empty body exports everything.
type exportRequest struct {
	Search  string `json:"search,omitempty"`
	AgentID string `json:"agent_id,omitempty"`
	From    string `json:"from,omitempty"`
	To      string `json:"to,omitempty"`
}
