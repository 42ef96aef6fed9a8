package server

func (s *Server) setupRoutes() {
	s.app.Get("/health", s.healthHandler)

	// Auth and session lifecycle
	s.app.Post("/console/auth/signin", s.signinHandler)
	s.app.Post("/console/auth/signup", s.signupHandler)
	s.app.Post("/console/auth/verify-otp", s.verifyOTPHandler)
	s.app.Post("/console/auth/resend-otp", s.resendOTPHandler)
	s.app.Post("/console/auth/forgot-password", s.forgotPasswordHandler)
	s.app.Post("/console/auth/reset-password", s.resetPasswordHandler)
	s.app.Post("/console/auth/signout", s.signoutHandler)
	s.app.Get("/console/auth/profile", s.profileHandler)

	// Agents. Static segments are registered before :id.
	s.app.Get("/console/agents", s.agentsViewHandler)
	s.app.Get("/console/agents/unassigned", s.unassignedAgentsHandler)
	s.app.Post("/console/agents", s.agentCreateHandler)
	s.app.Post("/console/agents/prompt-assist", s.promptAssistHandler)
	s.app.Get("/console/agents/:id", s.agentGetHandler)
	s.app.Put("/console/agents/:id", s.agentUpdateHandler)
	s.app.Delete("/console/agents/:id", s.agentDeleteHandler)
	s.app.Post("/console/agents/:id/documents", s.agentDocumentHandler)

	// Users
	s.app.Get("/console/users", s.usersViewHandler)
	s.app.Post("/console/users", s.userCreateHandler)
	s.app.Get("/console/users/:id", s.userGetHandler)
	s.app.Put("/console/users/:id", s.userUpdateHandler)
	s.app.Put("/console/users/:id/block", s.userBlockHandler)
	s.app.Delete("/console/users/:id", s.userDeleteHandler)
	s.app.Delete("/console/users/:id/soft", s.userSoftDeleteHandler)

	// Plans
	s.app.Get("/console/plans", s.plansViewHandler)
	s.app.Post("/console/plans", s.planCreateHandler)
	s.app.Get("/console/plans/:id", s.planGetHandler)
	s.app.Put("/console/plans/:id", s.planUpdateHandler)
	s.app.Delete("/console/plans/:id", s.planDeleteHandler)

	// Coupons
	s.app.Get("/console/coupons", s.couponsViewHandler)
	s.app.Post("/console/coupons", s.couponCreateHandler)
	s.app.Get("/console/coupons/:id", s.couponGetHandler)
	s.app.Put("/console/coupons/:id", s.couponUpdateHandler)
	s.app.Delete("/console/coupons/:id", s.couponDeleteHandler)

	// Knowledge base
	s.app.Get("/console/knowledge", s.knowledgeViewHandler)
	s.app.Get("/console/knowledge/:id/agents", s.knowledgeAgentsHandler)
	s.app.Delete("/console/knowledge/:id", s.knowledgeDeleteHandler)

	// Call summaries
	s.app.Get("/console/summaries", s.summariesViewHandler)
	s.app.Post("/console/summaries/export", s.summariesExportHandler)

	// Billing actions
	s.app.Post("/console/billing/subscribe", s.subscribeHandler)
	s.app.Post("/console/billing/update-price", s.updatePriceHandler)
	s.app.Post("/console/billing/apply-coupon", s.applyCouponHandler)

	// Voice catalog, saved layouts, form schemas
	s.app.Get("/console/voices", s.voicesHandler)
	s.app.Get("/console/layout/:screen", s.layoutGetHandler)
	s.app.Put("/console/layout/:screen", s.layoutPutHandler)
	s.app.Get("/console/schemas", s.schemaIndexHandler)
	s.app.Get("/console/schemas/:form", s.schemaHandler)
}
