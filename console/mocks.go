package console

import (
	"context"
	"fmt"
	"strings"

	"github.com/axiomconsultancy/axiom-admin-go/axiom"
)

// In-memory implementations of the client interfaces for local testing.
// Each mock serves its slice either as a paginated envelope or, with
// Legacy set, as the full set the way older backend deployments respond.

func mockPageSlice[T any](items []T, page, pageSize int) axiom.List[T] {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}

	start := (page - 1) * pageSize
	end := start + pageSize
	if start > len(items) {
		start = len(items)
	}
	if end > len(items) {
		end = len(items)
	}

	return axiom.List[T]{
		Items: append([]T{}, items[start:end]...),
		Total: len(items),
		Paged: true,
	}
}

func mockNotFound(resource, id string) error {
	return axiom.APIError{Status: 404, Message: fmt.Sprintf("%s %s not found", resource, id)}
}

func containsFold(value, search string) bool {
	return strings.Contains(strings.ToLower(value), strings.ToLower(search))
}

// MockAgentsAPI implements AgentsAPI for local testing.
type MockAgentsAPI struct {
	Agents     []axiom.Agent
	Unassigned []axiom.Agent
	Legacy     bool
	Err        error

	ListCalls []axiom.ListAgentsParams
	Updates   map[string]axiom.AgentUpdate
}

func NewMockAgentsAPI(agents ...axiom.Agent) *MockAgentsAPI {
	return &MockAgentsAPI{
		Agents:  agents,
		Updates: make(map[string]axiom.AgentUpdate),
	}
}

func (m *MockAgentsAPI) ListAgents(ctx context.Context, params axiom.ListAgentsParams) (axiom.List[axiom.Agent], error) {
	m.ListCalls = append(m.ListCalls, params)
	if m.Err != nil {
		return axiom.List[axiom.Agent]{}, m.Err
	}

	var matched []axiom.Agent
	for _, agent := range m.Agents {
		if params.Search != "" && !containsFold(agent.Name, params.Search) {
			continue
		}
		matched = append(matched, agent)
	}

	if m.Legacy {
		return axiom.List[axiom.Agent]{Items: matched}, nil
	}
	return mockPageSlice(matched, params.Page, params.PageSize), nil
}

func (m *MockAgentsAPI) GetAgent(ctx context.Context, id string) (axiom.Agent, error) {
	if m.Err != nil {
		return axiom.Agent{}, m.Err
	}
	for _, agent := range m.Agents {
		if agent.ID == id {
			return agent, nil
		}
	}
	return axiom.Agent{}, mockNotFound("agent", id)
}

func (m *MockAgentsAPI) CreateAgent(ctx context.Context, req axiom.AgentCreate) (axiom.Agent, error) {
	if m.Err != nil {
		return axiom.Agent{}, m.Err
	}
	agent := axiom.Agent{
		ID:              fmt.Sprintf("agent-%d", len(m.Agents)+1),
		Name:            req.Name,
		Tags:            req.Tags,
		DefaultLanguage: req.DefaultLanguage,
	}
	if req.ConversationConfig != nil {
		agent.ConversationConfig = *req.ConversationConfig
	}
	m.Agents = append(m.Agents, agent)
	return agent, nil
}

func (m *MockAgentsAPI) UpdateAgent(ctx context.Context, id string, req axiom.AgentUpdate) (axiom.Agent, error) {
	if m.Err != nil {
		return axiom.Agent{}, m.Err
	}
	for i, agent := range m.Agents {
		if agent.ID != id {
			continue
		}
		if req.Name != nil {
			agent.Name = *req.Name
		}
		if req.Tags != nil {
			agent.Tags = req.Tags
		}
		if req.DefaultLanguage != nil {
			agent.DefaultLanguage = *req.DefaultLanguage
		}
		if req.ConversationConfig != nil {
			agent.ConversationConfig = *req.ConversationConfig
		}
		m.Agents[i] = agent
		if m.Updates == nil {
			m.Updates = make(map[string]axiom.AgentUpdate)
		}
		m.Updates[id] = req
		return agent, nil
	}
	return axiom.Agent{}, mockNotFound("agent", id)
}

func (m *MockAgentsAPI) DeleteAgent(ctx context.Context, id string) error {
	if m.Err != nil {
		return m.Err
	}
	for i, agent := range m.Agents {
		if agent.ID == id {
			m.Agents = append(m.Agents[:i], m.Agents[i+1:]...)
			return nil
		}
	}
	return mockNotFound("agent", id)
}

func (m *MockAgentsAPI) ListUnassignedAgents(ctx context.Context) ([]axiom.Agent, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Unassigned, nil
}

func (m *MockAgentsAPI) UploadAgentDocument(ctx context.Context, agentID string, upload axiom.DocumentUpload) (axiom.Document, error) {
	if m.Err != nil {
		return axiom.Document{}, m.Err
	}
	if _, err := m.GetAgent(ctx, agentID); err != nil {
		return axiom.Document{}, err
	}
	return axiom.Document{ID: "doc-" + agentID, Name: upload.Name, Status: "processing"}, nil
}

// MockUsersAPI implements UsersAPI for local testing.
type MockUsersAPI struct {
	Users  []axiom.User
	Legacy bool
	Err    error

	ListCalls []axiom.ListUsersParams
	Deleted   []string
}

func NewMockUsersAPI(users ...axiom.User) *MockUsersAPI {
	return &MockUsersAPI{Users: users}
}

func (m *MockUsersAPI) ListUsers(ctx context.Context, params axiom.ListUsersParams) (axiom.List[axiom.User], error) {
	m.ListCalls = append(m.ListCalls, params)
	if m.Err != nil {
		return axiom.List[axiom.User]{}, m.Err
	}

	var matched []axiom.User
	for _, user := range m.Users {
		if params.Search != "" && !containsFold(user.Username, params.Search) && !containsFold(user.Email, params.Search) {
			continue
		}
		if params.Role != "" && user.Role != params.Role {
			continue
		}
		if params.Blocked != nil && user.Blocked != *params.Blocked {
			continue
		}
		matched = append(matched, user)
	}

	if m.Legacy {
		return axiom.List[axiom.User]{Items: matched}, nil
	}
	return mockPageSlice(matched, params.Page, params.PageSize), nil
}

func (m *MockUsersAPI) GetUser(ctx context.Context, id string) (axiom.User, error) {
	if m.Err != nil {
		return axiom.User{}, m.Err
	}
	for _, user := range m.Users {
		if user.ID == id {
			return user, nil
		}
	}
	return axiom.User{}, mockNotFound("user", id)
}

func (m *MockUsersAPI) CreateUser(ctx context.Context, req axiom.UserCreate) (axiom.User, error) {
	if m.Err != nil {
		return axiom.User{}, m.Err
	}
	user := axiom.User{
		ID:       fmt.Sprintf("user-%d", len(m.Users)+1),
		Username: req.Username,
		Email:    req.Email,
		Role:     req.Role,
	}
	m.Users = append(m.Users, user)
	return user, nil
}

func (m *MockUsersAPI) UpdateUser(ctx context.Context, id string, req axiom.UserUpdate) (axiom.User, error) {
	if m.Err != nil {
		return axiom.User{}, m.Err
	}
	for i, user := range m.Users {
		if user.ID != id {
			continue
		}
		if req.Username != nil {
			user.Username = *req.Username
		}
		if req.Email != nil {
			user.Email = *req.Email
		}
		if req.Role != nil {
			user.Role = *req.Role
		}
		if req.AgentID != nil {
			user.AgentID = *req.AgentID
		}
		if req.Blocked != nil {
			user.Blocked = *req.Blocked
		}
		m.Users[i] = user
		return user, nil
	}
	return axiom.User{}, mockNotFound("user", id)
}

func (m *MockUsersAPI) SetUserBlocked(ctx context.Context, id string, blocked bool) (axiom.User, error) {
	return m.UpdateUser(ctx, id, axiom.UserUpdate{Blocked: &blocked})
}

func (m *MockUsersAPI) DeleteUser(ctx context.Context, id string) error {
	if m.Err != nil {
		return m.Err
	}
	for i, user := range m.Users {
		if user.ID == id {
			m.Users = append(m.Users[:i], m.Users[i+1:]...)
			m.Deleted = append(m.Deleted, id)
			return nil
		}
	}
	return mockNotFound("user", id)
}

func (m *MockUsersAPI) SoftDeleteUser(ctx context.Context, id string) error {
	return m.DeleteUser(ctx, id)
}

// MockPlansAPI implements PlansAPI for local testing.
type MockPlansAPI struct {
	Plans  []axiom.Plan
	Legacy bool
	Err    error
}

func NewMockPlansAPI(plans ...axiom.Plan) *MockPlansAPI {
	return &MockPlansAPI{Plans: plans}
}

func (m *MockPlansAPI) ListPlans(ctx context.Context, params axiom.ListPlansParams) (axiom.List[axiom.Plan], error) {
	if m.Err != nil {
		return axiom.List[axiom.Plan]{}, m.Err
	}

	var matched []axiom.Plan
	for _, plan := range m.Plans {
		if params.Search != "" && !containsFold(plan.Name, params.Search) {
			continue
		}
		matched = append(matched, plan)
	}

	if m.Legacy {
		return axiom.List[axiom.Plan]{Items: matched}, nil
	}
	return mockPageSlice(matched, params.Page, params.PageSize), nil
}

func (m *MockPlansAPI) GetPlan(ctx context.Context, id string) (axiom.Plan, error) {
	if m.Err != nil {
		return axiom.Plan{}, m.Err
	}
	for _, plan := range m.Plans {
		if plan.ID == id {
			return plan, nil
		}
	}
	return axiom.Plan{}, mockNotFound("plan", id)
}

func (m *MockPlansAPI) CreatePlan(ctx context.Context, req axiom.PlanCreate) (axiom.Plan, error) {
	if m.Err != nil {
		return axiom.Plan{}, m.Err
	}
	plan := axiom.Plan{
		ID:         fmt.Sprintf("plan-%d", len(m.Plans)+1),
		Name:       req.Name,
		PriceCents: req.PriceCents,
		Currency:   req.Currency,
		Interval:   req.Interval,
	}
	m.Plans = append(m.Plans, plan)
	return plan, nil
}

func (m *MockPlansAPI) UpdatePlan(ctx context.Context, id string, req axiom.PlanUpdate) (axiom.Plan, error) {
	if m.Err != nil {
		return axiom.Plan{}, m.Err
	}
	for i, plan := range m.Plans {
		if plan.ID != id {
			continue
		}
		if req.Name != nil {
			plan.Name = *req.Name
		}
		if req.PriceCents != nil {
			plan.PriceCents = *req.PriceCents
		}
		if req.Status != nil {
			plan.Status = *req.Status
		}
		m.Plans[i] = plan
		return plan, nil
	}
	return axiom.Plan{}, mockNotFound("plan", id)
}

func (m *MockPlansAPI) DeletePlan(ctx context.Context, id string) error {
	if m.Err != nil {
		return m.Err
	}
	for i, plan := range m.Plans {
		if plan.ID == id {
			m.Plans = append(m.Plans[:i], m.Plans[i+1:]...)
			return nil
		}
	}
	return mockNotFound("plan", id)
}

// MockCouponsAPI implements CouponsAPI for local testing.
type MockCouponsAPI struct {
	Coupons []axiom.Coupon
	Legacy  bool
	Err     error
}

func NewMockCouponsAPI(coupons ...axiom.Coupon) *MockCouponsAPI {
	return &MockCouponsAPI{Coupons: coupons}
}

func (m *MockCouponsAPI) ListCoupons(ctx context.Context, params axiom.ListCouponsParams) (axiom.List[axiom.Coupon], error) {
	if m.Err != nil {
		return axiom.List[axiom.Coupon]{}, m.Err
	}

	var matched []axiom.Coupon
	for _, coupon := range m.Coupons {
		if params.Search != "" && !containsFold(coupon.Code, params.Search) {
			continue
		}
		if params.Status != "" && coupon.Status != params.Status {
			continue
		}
		matched = append(matched, coupon)
	}

	if m.Legacy {
		return axiom.List[axiom.Coupon]{Items: matched}, nil
	}
	return mockPageSlice(matched, params.Page, params.PageSize), nil
}

func (m *MockCouponsAPI) GetCoupon(ctx context.Context, id string) (axiom.Coupon, error) {
	if m.Err != nil {
		return axiom.Coupon{}, m.Err
	}
	for _, coupon := range m.Coupons {
		if coupon.ID == id {
			return coupon, nil
		}
	}
	return axiom.Coupon{}, mockNotFound("coupon", id)
}

func (m *MockCouponsAPI) CreateCoupon(ctx context.Context, req axiom.CouponCreate) (axiom.Coupon, error) {
	if m.Err != nil {
		return axiom.Coupon{}, m.Err
	}
	coupon := axiom.Coupon{
		ID:         fmt.Sprintf("coupon-%d", len(m.Coupons)+1),
		Code:       req.Code,
		PercentOff: req.PercentOff,
		Status:     req.Status,
	}
	m.Coupons = append(m.Coupons, coupon)
	return coupon, nil
}

func (m *MockCouponsAPI) UpdateCoupon(ctx context.Context, id string, req axiom.CouponUpdate) (axiom.Coupon, error) {
	if m.Err != nil {
		return axiom.Coupon{}, m.Err
	}
	for i, coupon := range m.Coupons {
		if coupon.ID != id {
			continue
		}
		if req.Code != nil {
			coupon.Code = *req.Code
		}
		if req.PercentOff != nil {
			coupon.PercentOff = *req.PercentOff
		}
		if req.Status != nil {
			coupon.Status = *req.Status
		}
		m.Coupons[i] = coupon
		return coupon, nil
	}
	return axiom.Coupon{}, mockNotFound("coupon", id)
}

func (m *MockCouponsAPI) DeleteCoupon(ctx context.Context, id string) error {
	if m.Err != nil {
		return m.Err
	}
	for i, coupon := range m.Coupons {
		if coupon.ID == id {
			m.Coupons = append(m.Coupons[:i], m.Coupons[i+1:]...)
			return nil
		}
	}
	return mockNotFound("coupon", id)
}

// MockKnowledgeAPI implements KnowledgeAPI for local testing.
type MockKnowledgeAPI struct {
	Documents  []axiom.Document
	Dependents map[string][]axiom.DependentAgent
	Legacy     bool
	Err        error

	Deleted []string
}

func NewMockKnowledgeAPI(documents ...axiom.Document) *MockKnowledgeAPI {
	return &MockKnowledgeAPI{
		Documents:  documents,
		Dependents: make(map[string][]axiom.DependentAgent),
	}
}

func (m *MockKnowledgeAPI) ListDocuments(ctx context.Context, params axiom.ListDocumentsParams) (axiom.List[axiom.Document], error) {
	if m.Err != nil {
		return axiom.List[axiom.Document]{}, m.Err
	}

	var matched []axiom.Document
	for _, document := range m.Documents {
		if params.Search != "" && !containsFold(document.Name, params.Search) {
			continue
		}
		if params.Type != "" && document.Type != params.Type {
			continue
		}
		matched = append(matched, document)
	}

	if m.Legacy {
		return axiom.List[axiom.Document]{Items: matched}, nil
	}
	return mockPageSlice(matched, params.Page, params.PageSize), nil
}

func (m *MockKnowledgeAPI) DeleteDocument(ctx context.Context, id string) error {
	if m.Err != nil {
		return m.Err
	}
	for i, document := range m.Documents {
		if document.ID == id {
			m.Documents = append(m.Documents[:i], m.Documents[i+1:]...)
			m.Deleted = append(m.Deleted, id)
			return nil
		}
	}
	return mockNotFound("document", id)
}

func (m *MockKnowledgeAPI) DependentAgents(ctx context.Context, id string) ([]axiom.DependentAgent, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Dependents[id], nil
}

// MockSummariesAPI implements SummariesAPI for local testing.
type MockSummariesAPI struct {
	Summaries []axiom.Summary
	Legacy    bool
	Err       error
}

func NewMockSummariesAPI(summaries ...axiom.Summary) *MockSummariesAPI {
	return &MockSummariesAPI{Summaries: summaries}
}

func (m *MockSummariesAPI) ListSummaries(ctx context.Context, params axiom.ListSummariesParams) (axiom.List[axiom.Summary], error) {
	if m.Err != nil {
		return axiom.List[axiom.Summary]{}, m.Err
	}

	matched := append([]axiom.Summary{}, m.Summaries...)
	if m.Legacy {
		return axiom.List[axiom.Summary]{Items: matched}, nil
	}
	return mockPageSlice(matched, params.Page, params.PageSize), nil
}
