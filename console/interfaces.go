package console

import (
	"context"

	"github.com/axiomconsultancy/axiom-admin-go/axiom"
)

// The controllers depend on these slices of the platform client so tests
// can swap in mocks.

type AgentsAPI interface {
	ListAgents(ctx context.Context, params axiom.ListAgentsParams) (axiom.List[axiom.Agent], error)
	GetAgent(ctx context.Context, id string) (axiom.Agent, error)
	CreateAgent(ctx context.Context, req axiom.AgentCreate) (axiom.Agent, error)
	UpdateAgent(ctx context.Context, id string, req axiom.AgentUpdate) (axiom.Agent, error)
	DeleteAgent(ctx context.Context, id string) error
	ListUnassignedAgents(ctx context.Context) ([]axiom.Agent, error)
	UploadAgentDocument(ctx context.Context, agentID string, upload axiom.DocumentUpload) (axiom.Document, error)
}

type UsersAPI interface {
	ListUsers(ctx context.Context, params axiom.ListUsersParams) (axiom.List[axiom.User], error)
	GetUser(ctx context.Context, id string) (axiom.User, error)
	CreateUser(ctx context.Context, req axiom.UserCreate) (axiom.User, error)
	UpdateUser(ctx context.Context, id string, req axiom.UserUpdate) (axiom.User, error)
	SetUserBlocked(ctx context.Context, id string, blocked bool) (axiom.User, error)
	DeleteUser(ctx context.Context, id string) error
	SoftDeleteUser(ctx context.Context, id string) error
}

type PlansAPI interface {
	ListPlans(ctx context.Context, params axiom.ListPlansParams) (axiom.List[axiom.Plan], error)
	GetPlan(ctx context.Context, id string) (axiom.Plan, error)
	CreatePlan(ctx context.Context, req axiom.PlanCreate) (axiom.Plan, error)
	UpdatePlan(ctx context.Context, id string, req axiom.PlanUpdate) (axiom.Plan, error)
	DeletePlan(ctx context.Context, id string) error
}

type CouponsAPI interface {
	ListCoupons(ctx context.Context, params axiom.ListCouponsParams) (axiom.List[axiom.Coupon], error)
	GetCoupon(ctx context.Context, id string) (axiom.Coupon, error)
	CreateCoupon(ctx context.Context, req axiom.CouponCreate) (axiom.Coupon, error)
	UpdateCoupon(ctx context.Context, id string, req axiom.CouponUpdate) (axiom.Coupon, error)
	DeleteCoupon(ctx context.Context, id string) error
}

type KnowledgeAPI interface {
	ListDocuments(ctx context.Context, params axiom.ListDocumentsParams) (axiom.List[axiom.Document], error)
	DeleteDocument(ctx context.Context, id string) error
	DependentAgents(ctx context.Context, id string) ([]axiom.DependentAgent, error)
}

type SummariesAPI interface {
	ListSummaries(ctx context.Context, params axiom.ListSummariesParams) (axiom.List[axiom.Summary], error)
}
