package console

import (
	"context"
	"fmt"
	"strings"

	"github.com/axiomconsultancy/axiom-admin-go/axiom"
	"github.com/axiomconsultancy/axiom-admin-go/datatable"
	"github.com/axiomconsultancy/axiom-admin-go/fetch"
)

type UsersController struct {
	api  UsersAPI
	seq  *fetch.Sequencer
	busy *busyTracker
}

func NewUsersController(api UsersAPI) *UsersController {
	return &UsersController{
		api:  api,
		seq:  fetch.NewSequencer(),
		busy: newBusyTracker(),
	}
}

type UsersQuery struct {
	Query
	Role    string
	Blocked *bool
}

func (c *UsersController) List(ctx context.Context, key string, q UsersQuery) (Page[axiom.User], error) {
	return guarded(c.seq, ctx, key, func(ctx context.Context) (Page[axiom.User], error) {
		return resolvePage(ctx, q.Query, func(ctx context.Context, page, pageSize int) (axiom.List[axiom.User], error) {
			return c.api.ListUsers(ctx, axiom.ListUsersParams{
				Page:     page,
				PageSize: pageSize,
				Search:   strings.TrimSpace(q.Search),
				Role:     q.Role,
				Blocked:  q.Blocked,
			})
		})
	})
}

func (c *UsersController) Get(ctx context.Context, id string) (axiom.User, error) {
	return c.api.GetUser(ctx, id)
}

func (c *UsersController) Create(ctx context.Context, form UserForm) (axiom.User, error) {
	req, err := BuildUserCreate(form)
	if err != nil {
		return axiom.User{}, err
	}
	return c.api.CreateUser(ctx, req)
}

func (c *UsersController) Update(ctx context.Context, key, id string, form UserForm) (axiom.User, error) {
	req := BuildUserUpdate(form)

	if !c.busy.mark(key, id) {
		return axiom.User{}, ErrRowBusy
	}
	defer c.busy.unmark(key, id)

	return c.api.UpdateUser(ctx, id, req)
}

// SetBlocked toggles the block flag, tracked per row so a double click
// cannot fire twice.
func (c *UsersController) SetBlocked(ctx context.Context, key, id string, blocked bool) (axiom.User, error) {
	if !c.busy.mark(key, id) {
		return axiom.User{}, ErrRowBusy
	}
	defer c.busy.unmark(key, id)

	return c.api.SetUserBlocked(ctx, id, blocked)
}

func (c *UsersController) Delete(ctx context.Context, key, id string) error {
	if !c.busy.mark(key, id) {
		return ErrRowBusy
	}
	defer c.busy.unmark(key, id)

	return c.api.DeleteUser(ctx, id)
}

func (c *UsersController) SoftDelete(ctx context.Context, key, id string) error {
	if !c.busy.mark(key, id) {
		return ErrRowBusy
	}
	defer c.busy.unmark(key, id)

	return c.api.SoftDeleteUser(ctx, id)
}

func (c *UsersController) BusyRows(key string) []string {
	return c.busy.busyRows(key)
}

// UserColumns defines the users table.
func UserColumns() []datatable.Column {
	return []datatable.Column{
		{Key: "username", Title: "Username", Width: 180, Sticky: datatable.StickyLeft, Visible: true, Sortable: true},
		{Key: "email", Title: "Email", Width: 240, Visible: true, Hideable: true, Sortable: true},
		{Key: "role", Title: "Role", Width: 90, Visible: true, Hideable: true},
		{Key: "agent", Title: "Agent", Width: 140, Visible: true, Hideable: true},
		{Key: "plan", Title: "Plan", Width: 120, Visible: true, Hideable: true},
		{Key: "status", Title: "Status", Width: 100, Visible: true, Hideable: true},
		{Key: "actions", Title: "", Width: 120, Sticky: datatable.StickyRight, Visible: true},
	}
}

// UserRows renders users for the table.
func UserRows(users []axiom.User) []datatable.Row {
	rows := make([]datatable.Row, 0, len(users))
	for _, user := range users {
		status := "active"
		if user.Blocked {
			status = "blocked"
		}

		plan := ""
		if user.Subscription != nil {
			plan = user.Subscription.PlanName
		}

		rows = append(rows, datatable.Row{
			"id":       user.ID,
			"username": user.Username,
			"email":    user.Email,
			"role":     user.Role,
			"agent":    user.AgentID,
			"plan":     plan,
			"status":   status,
		})
	}
	return rows
}

// UserForm carries the user modal's fields as submitted.
type UserForm struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
	AgentID  string `json:"agent_id"`
}

// BuildUserCreate validates and trims the create modal.
func BuildUserCreate(form UserForm) (axiom.UserCreate, error) {
	username := strings.TrimSpace(form.Username)
	email := strings.TrimSpace(form.Email)
	password := strings.TrimSpace(form.Password)

	if username == "" {
		return axiom.UserCreate{}, fmt.Errorf("username is required")
	}
	if email == "" {
		return axiom.UserCreate{}, fmt.Errorf("email is required")
	}
	if password == "" {
		return axiom.UserCreate{}, fmt.Errorf("password is required")
	}

	return axiom.UserCreate{
		Username: username,
		Email:    email,
		Password: password,
		Role:     strings.TrimSpace(form.Role),
		AgentID:  strings.TrimSpace(form.AgentID),
	}, nil
}

// BuildUserUpdate keeps only the fields whose trimmed value is
// non-empty, so resubmitting an untouched edit form sends exactly the
// populated fields and an empty password box never clears a password.
func BuildUserUpdate(form UserForm) axiom.UserUpdate {
	var req axiom.UserUpdate

	if username := strings.TrimSpace(form.Username); username != "" {
		req.Username = &username
	}
	if email := strings.TrimSpace(form.Email); email != "" {
		req.Email = &email
	}
	if password := strings.TrimSpace(form.Password); password != "" {
		req.Password = &password
	}
	if role := strings.TrimSpace(form.Role); role != "" {
		req.Role = &role
	}
	if agentID := strings.TrimSpace(form.AgentID); agentID != "" {
		req.AgentID = &agentID
	}

	return req
}
