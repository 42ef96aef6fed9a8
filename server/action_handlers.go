package server

import (
	"context"
	"strconv"

	"github.com/gofiber/fiber/v3"
	"github.com/rs/zerolog/log"

	"github.com/axiomconsultancy/axiom-admin-go/assist"
	"github.com/axiomconsultancy/axiom-admin-go/axiom"
	"github.com/axiomconsultancy/axiom-admin-go/console"
)

// agentGetHandler handles GET /console/agents/:id
func (s *Server) agentGetHandler(c fiber.Ctx) error {
	_, state := s.consoleFor(c)

	agent, err := state.agents.Get(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(agent)
}

// agentCreateHandler handles POST /console/agents
func (s *Server) agentCreateHandler(c fiber.Ctx) error {
	_, state := s.consoleFor(c)

	var form console.AgentForm
	if err := c.Bind().Body(&form); err != nil {
		return badRequest(c, "Invalid request body: "+err.Error())
	}

	agent, err := state.agents.Create(c.Context(), form)
	if err != nil {
		return respondFormError(c, err)
	}

	s.live.BroadcastRefresh(screenAgents)
	return c.Status(fiber.StatusCreated).JSON(agent)
}

// agentUpdateHandler handles PUT /console/agents/:id
func (s *Server) agentUpdateHandler(c fiber.Ctx) error {
	_, state := s.consoleFor(c)

	var form console.AgentForm
	if err := c.Bind().Body(&form); err != nil {
		return badRequest(c, "Invalid request body: "+err.Error())
	}

	agent, err := state.agents.Update(c.Context(), screenAgents, c.Params("id"), form)
	if err != nil {
		return respondFormError(c, err)
	}

	s.live.BroadcastRefresh(screenAgents)
	return c.JSON(agent)
}

// agentDeleteHandler handles DELETE /console/agents/:id
func (s *Server) agentDeleteHandler(c fiber.Ctx) error {
	_, state := s.consoleFor(c)

	if err := state.agents.Delete(c.Context(), screenAgents, c.Params("id")); err != nil {
		return respondError(c, err)
	}

	s.live.BroadcastRefresh(screenAgents)
	return c.JSON(map[string]string{"message": "Agent deleted"})
}

// unassignedAgentsHandler handles GET /console/agents/unassigned
func (s *Server) unassignedAgentsHandler(c fiber.Ctx) error {
	_, state := s.consoleFor(c)

	agents, err := state.agents.Unassigned(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(agents)
}

// agentDocumentHandler handles POST /console/agents/:id/documents. The
// body is multipart: a file part, or url/text form fields.
func (s *Server) agentDocumentHandler(c fiber.Ctx) error {
	_, state := s.consoleFor(c)
	agentID := c.Params("id")

	upload := axiom.DocumentUpload{
		Name: c.FormValue("name"),
		URL:  c.FormValue("url"),
		Text: c.FormValue("text"),
	}

	if file, err := c.FormFile("file"); err == nil {
		reader, err := file.Open()
		if err != nil {
			return badRequest(c, "Unreadable upload: "+err.Error())
		}
		defer reader.Close()
		upload.File = reader
		upload.FileName = file.Filename
	}

	if upload.File == nil && upload.URL == "" && upload.Text == "" {
		return badRequest(c, "Provide a file, url, or text to upload")
	}

	document, err := state.agents.AttachDocument(c.Context(), screenKnowledge, agentID, upload)
	if err != nil {
		return respondError(c, err)
	}

	s.live.BroadcastRefresh(screenKnowledge)
	return c.Status(fiber.StatusCreated).JSON(document)
}

// promptAssistHandler handles POST /console/agents/prompt-assist
func (s *Server) promptAssistHandler(c fiber.Ctx) error {
	var req assist.Request
	if err := c.Bind().Body(&req); err != nil {
		return badRequest(c, "Invalid request body: "+err.Error())
	}

	draft, err := s.assist.DraftPrompt(c.Context(), req)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(map[string]string{"prompt": draft})
}

// userGetHandler handles GET /console/users/:id
func (s *Server) userGetHandler(c fiber.Ctx) error {
	_, state := s.consoleFor(c)

	user, err := state.users.Get(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(user)
}

// userCreateHandler handles POST /console/users
func (s *Server) userCreateHandler(c fiber.Ctx) error {
	_, state := s.consoleFor(c)

	var form console.UserForm
	if err := c.Bind().Body(&form); err != nil {
		return badRequest(c, "Invalid request body: "+err.Error())
	}

	user, err := state.users.Create(c.Context(), form)
	if err != nil {
		return respondFormError(c, err)
	}

	s.live.BroadcastRefresh(screenUsers)
	return c.Status(fiber.StatusCreated).JSON(user)
}

// userUpdateHandler handles PUT /console/users/:id
func (s *Server) userUpdateHandler(c fiber.Ctx) error {
	_, state := s.consoleFor(c)

	var form console.UserForm
	if err := c.Bind().Body(&form); err != nil {
		return badRequest(c, "Invalid request body: "+err.Error())
	}

	user, err := state.users.Update(c.Context(), screenUsers, c.Params("id"), form)
	if err != nil {
		return respondFormError(c, err)
	}

	s.live.BroadcastRefresh(screenUsers)
	return c.JSON(user)
}

// userBlockHandler handles PUT /console/users/:id/block
func (s *Server) userBlockHandler(c fiber.Ctx) error {
	_, state := s.consoleFor(c)

	var req blockRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest(c, "Invalid request body: "+err.Error())
	}

	user, err := state.users.SetBlocked(c.Context(), screenUsers, c.Params("id"), req.Blocked)
	if err != nil {
		return respondError(c, err)
	}

	s.live.BroadcastRefresh(screenUsers)
	return c.JSON(user)
}

// userDeleteHandler handles DELETE /console/users/:id
func (s *Server) userDeleteHandler(c fiber.Ctx) error {
	_, state := s.consoleFor(c)

	if err := state.users.Delete(c.Context(), screenUsers, c.Params("id")); err != nil {
		return respondError(c, err)
	}

	s.live.BroadcastRefresh(screenUsers)
	return c.JSON(map[string]string{"message": "User deleted"})
}

// userSoftDeleteHandler handles DELETE /console/users/:id/soft
func (s *Server) userSoftDeleteHandler(c fiber.Ctx) error {
	_, state := s.consoleFor(c)

	if err := state.users.SoftDelete(c.Context(), screenUsers, c.Params("id")); err != nil {
		return respondError(c, err)
	}

	s.live.BroadcastRefresh(screenUsers)
	return c.JSON(map[string]string{"message": "User deactivated"})
}

// planGetHandler handles GET /console/plans/:id
func (s *Server) planGetHandler(c fiber.Ctx) error {
	_, state := s.consoleFor(c)

	plan, err := state.plans.Get(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(plan)
}

// planCreateHandler handles POST /console/plans
func (s *Server) planCreateHandler(c fiber.Ctx) error {
	_, state := s.consoleFor(c)

	var form console.PlanForm
	if err := c.Bind().Body(&form); err != nil {
		return badRequest(c, "Invalid request body: "+err.Error())
	}

	plan, err := state.plans.Create(c.Context(), form)
	if err != nil {
		return respondFormError(c, err)
	}

	s.live.BroadcastRefresh(screenPlans)
	return c.Status(fiber.StatusCreated).JSON(plan)
}

// planUpdateHandler handles PUT /console/plans/:id
func (s *Server) planUpdateHandler(c fiber.Ctx) error {
	_, state := s.consoleFor(c)

	var form console.PlanForm
	if err := c.Bind().Body(&form); err != nil {
		return badRequest(c, "Invalid request body: "+err.Error())
	}

	plan, err := state.plans.Update(c.Context(), screenPlans, c.Params("id"), form)
	if err != nil {
		return respondFormError(c, err)
	}

	s.live.BroadcastRefresh(screenPlans)
	return c.JSON(plan)
}

// planDeleteHandler handles DELETE /console/plans/:id
func (s *Server) planDeleteHandler(c fiber.Ctx) error {
	_, state := s.consoleFor(c)

	if err := state.plans.Delete(c.Context(), screenPlans, c.Params("id")); err != nil {
		return respondError(c, err)
	}

	s.live.BroadcastRefresh(screenPlans)
	return c.JSON(map[string]string{"message": "Plan deleted"})
}

// couponGetHandler handles GET /console/coupons/:id
func (s *Server) couponGetHandler(c fiber.Ctx) error {
	_, state := s.consoleFor(c)

	coupon, err := state.coupons.Get(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(coupon)
}

// couponCreateHandler handles POST /console/coupons
func (s *Server) couponCreateHandler(c fiber.Ctx) error {
	_, state := s.consoleFor(c)

	var form console.CouponForm
	if err := c.Bind().Body(&form); err != nil {
		return badRequest(c, "Invalid request body: "+err.Error())
	}

	coupon, err := state.coupons.Create(c.Context(), form)
	if err != nil {
		return respondFormError(c, err)
	}

	s.live.BroadcastRefresh(screenCoupons)
	return c.Status(fiber.StatusCreated).JSON(coupon)
}

// couponUpdateHandler handles PUT /console/coupons/:id
func (s *Server) couponUpdateHandler(c fiber.Ctx) error {
	_, state := s.consoleFor(c)

	var form console.CouponForm
	if err := c.Bind().Body(&form); err != nil {
		return badRequest(c, "Invalid request body: "+err.Error())
	}

	coupon, err := state.coupons.Update(c.Context(), screenCoupons, c.Params("id"), form)
	if err != nil {
		return respondFormError(c, err)
	}

	s.live.BroadcastRefresh(screenCoupons)
	return c.JSON(coupon)
}

// couponDeleteHandler handles DELETE /console/coupons/:id
func (s *Server) couponDeleteHandler(c fiber.Ctx) error {
	_, state := s.consoleFor(c)

	if err := state.coupons.Delete(c.Context(), screenCoupons, c.Params("id")); err != nil {
		return respondError(c, err)
	}

	s.live.BroadcastRefresh(screenCoupons)
	return c.JSON(map[string]string{"message": "Coupon deleted"})
}

// knowledgeAgentsHandler handles GET /console/knowledge/:id/agents
func (s *Server) knowledgeAgentsHandler(c fiber.Ctx) error {
	_, state := s.consoleFor(c)

	agents, err := state.knowledge.DependentAgents(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(agents)
}

// knowledgeDeleteHandler handles DELETE /console/knowledge/:id. Without
// force=true the delete is refused while agents still use the document.
func (s *Server) knowledgeDeleteHandler(c fiber.Ctx) error {
	_, state := s.consoleFor(c)

	force := false
	if forceParam := c.Query("force"); forceParam != "" {
		force, _ = strconv.ParseBool(forceParam)
	}

	if err := state.knowledge.Delete(c.Context(), screenKnowledge, c.Params("id"), force); err != nil {
		return respondError(c, err)
	}

	s.live.BroadcastRefresh(screenKnowledge)
	return c.JSON(map[string]string{"message": "Document deleted"})
}

// summariesExportHandler handles POST /console/summaries/export
func (s *Server) summariesExportHandler(c fiber.Ctx) error {
	sess, state := s.consoleFor(c)

	var req exportRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest(c, "Invalid request body: "+err.Error())
	}

	summaries, err := collectSummaries(c.Context(), state.client, req)
	if err != nil {
		return respondError(c, err)
	}

	url, err := s.exporter.ExportSummaries(c.Context(), summaries)
	if err != nil {
		return respondError(c, err)
	}

	log.Info().Str("user_id", sess.UserID).Int("rows", len(summaries)).Msg("Summaries exported")

	return c.JSON(map[string]string{"url": url})
}

const (
	exportPageSize = 100
	exportMaxPages = 50
)

// collectSummaries pulls every page matching the filter, capped so a
// misbehaving backend cannot feed the exporter forever.
func collectSummaries(ctx context.Context, client console.SummariesAPI, req exportRequest) ([]axiom.Summary, error) {
	var all []axiom.Summary

	for page := 1; page <= exportMaxPages; page++ {
		list, err := client.ListSummaries(ctx, axiom.ListSummariesParams{
			Page:     page,
			PageSize: exportPageSize,
			Search:   req.Search,
			AgentID:  req.AgentID,
			From:     req.From,
			To:       req.To,
		})
		if err != nil {
			return nil, err
		}

		all = append(all, list.Items...)

		// A legacy array is the whole set; an envelope is walked until
		// the reported total is reached.
		if !list.Paged || len(list.Items) == 0 || len(all) >= list.Total {
			break
		}
	}

	return all, nil
}

// subscribeHandler handles POST /console/billing/subscribe
func (s *Server) subscribeHandler(c fiber.Ctx) error {
	_, state := s.consoleFor(c)

	var req axiom.SubscribeRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest(c, "Invalid request body: "+err.Error())
	}
	if req.PlanID == "" {
		return badRequest(c, "plan_id is required")
	}

	result, err := state.client.Subscribe(c.Context(), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(result)
}

// updatePriceHandler handles POST /console/billing/update-price
func (s *Server) updatePriceHandler(c fiber.Ctx) error {
	_, state := s.consoleFor(c)

	var req axiom.UpdatePriceRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest(c, "Invalid request body: "+err.Error())
	}
	if req.PlanID == "" || req.StripePriceID == "" {
		return badRequest(c, "plan_id and stripe_price_id are required")
	}

	result, err := state.client.UpdatePrice(c.Context(), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(result)
}

// applyCouponHandler handles POST /console/billing/apply-coupon
func (s *Server) applyCouponHandler(c fiber.Ctx) error {
	_, state := s.consoleFor(c)

	var req axiom.ApplyCouponRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest(c, "Invalid request body: "+err.Error())
	}
	if req.CouponCode == "" {
		return badRequest(c, "coupon_code is required")
	}

	result, err := state.client.ApplyCoupon(c.Context(), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(result)
}
