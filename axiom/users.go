package axiom

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// User roles.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User is a platform account as the admin console sees it.
type User struct {
	ID           string        `json:"id"`
	Username     string        `json:"username"`
	Email        string        `json:"email"`
	Role         string        `json:"role"`
	AgentID      string        `json:"agent_id,omitempty"`
	Blocked      bool          `json:"blocked"`
	Subscription *Subscription `json:"subscription,omitempty"`
	CreatedAt    string        `json:"created_at,omitempty"`
}

// Subscription is the billing state attached to a user.
type Subscription struct {
	PlanID           string `json:"plan_id,omitempty"`
	PlanName         string `json:"plan_name,omitempty"`
	Status           string `json:"status,omitempty"`
	CurrentPeriodEnd string `json:"current_period_end,omitempty"`
}

type UserCreate struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role,omitempty"`
	AgentID  string `json:"agent_id,omitempty"`
}

// UserUpdate is the PUT payload. Only non-nil fields reach the wire.
type UserUpdate struct {
	Username *string `json:"username,omitempty"`
	Email    *string `json:"email,omitempty"`
	Password *string `json:"password,omitempty"`
	Role     *string `json:"role,omitempty"`
	AgentID  *string `json:"agent_id,omitempty"`
	Blocked  *bool   `json:"blocked,omitempty"`
}

type ListUsersParams struct {
	Page     int
	PageSize int
	Search   string
	Role     string
	Blocked  *bool
}

func (p ListUsersParams) query() url.Values {
	query := url.Values{}
	if p.Page > 0 {
		query.Set("page", strconv.Itoa(p.Page))
	}
	if p.PageSize > 0 {
		query.Set("page_size", strconv.Itoa(p.PageSize))
	}
	if p.Search != "" {
		query.Set("search", p.Search)
	}
	if p.Role != "" {
		query.Set("role", p.Role)
	}
	if p.Blocked != nil {
		query.Set("blocked", strconv.FormatBool(*p.Blocked))
	}
	return query
}

func (c *Client) ListUsers(ctx context.Context, params ListUsersParams) (List[User], error) {
	body, err := c.do(ctx, http.MethodGet, "/auth/admin/users", params.query(), nil)
	if err != nil {
		return List[User]{}, err
	}
	return decodeList[User](body)
}

func (c *Client) GetUser(ctx context.Context, id string) (User, error) {
	body, err := c.do(ctx, http.MethodGet, "/auth/admin/users/"+url.PathEscape(id), nil, nil)
	if err != nil {
		return User{}, err
	}
	return decode[User](body)
}

func (c *Client) CreateUser(ctx context.Context, req UserCreate) (User, error) {
	body, err := c.do(ctx, http.MethodPost, "/auth/admin/users", nil, req)
	if err != nil {
		return User{}, err
	}
	return decode[User](body)
}

func (c *Client) UpdateUser(ctx context.Context, id string, req UserUpdate) (User, error) {
	body, err := c.do(ctx, http.MethodPut, "/auth/admin/users/"+url.PathEscape(id), nil, req)
	if err != nil {
		return User{}, err
	}
	return decode[User](body)
}

// SetUserBlocked toggles the blocked flag. The backend treats this as a
// plain update on the user resource.
func (c *Client) SetUserBlocked(ctx context.Context, id string, blocked bool) (User, error) {
	return c.UpdateUser(ctx, id, UserUpdate{Blocked: &blocked})
}

func (c *Client) DeleteUser(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodDelete, "/auth/admin/users/"+url.PathEscape(id), nil, nil)
	return err
}

// SoftDeleteUser deactivates the account but keeps its records.
func (c *Client) SoftDeleteUser(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodDelete, "/auth/admin/users/"+url.PathEscape(id)+"/soft", nil, nil)
	return err
}
