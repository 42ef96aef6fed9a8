package server

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/rs/zerolog/log"

	"github.com/axiomconsultancy/axiom-admin-go/console"
	"github.com/axiomconsultancy/axiom-admin-go/datatable"
	"github.com/axiomconsultancy/axiom-admin-go/redis"
	"github.com/axiomconsultancy/axiom-admin-go/session"
)

// listQuery reads the shared pagination and search parameters.
func listQuery(c fiber.Ctx) console.Query {
	q := console.Query{Page: 1, PageSize: console.DefaultPageSize}

	if pageParam := c.Query("page"); pageParam != "" {
		if page, err := strconv.Atoi(pageParam); err == nil && page > 0 {
			q.Page = page
		}
	}

	if sizeParam := c.Query("page_size"); sizeParam != "" {
		if size, err := strconv.Atoi(sizeParam); err == nil && size > 0 && size <= 100 {
			q.PageSize = size
		}
	}

	q.Search = c.Query("search")
	return q
}

// sortQuery reads the sort parameters, if any.
func sortQuery(c fiber.Ctx) *datatable.Sort {
	key := c.Query("sort_key")
	if key == "" {
		return nil
	}

	direction := c.Query("sort_dir")
	if direction != datatable.SortDesc {
		direction = datatable.SortAsc
	}
	return &datatable.Sort{Key: key, Direction: direction}
}

// savedLayout loads the operator's saved column layout for a screen.
func (s *Server) savedLayout(userID, screen string) (datatable.Layout, bool) {
	data, err := s.redis.GetLayout(userID, screen)
	if err != nil {
		if !errors.Is(err, redis.ErrNotFound) {
			log.Warn().Err(err).Str("screen", screen).Msg("Failed to load saved layout")
		}
		return datatable.Layout{}, false
	}

	var layout datatable.Layout
	if err := json.Unmarshal(data, &layout); err != nil {
		log.Warn().Err(err).Str("screen", screen).Msg("Discarding corrupt saved layout")
		return datatable.Layout{}, false
	}
	return layout, true
}

// tableView assembles the response for one list screen, applying the
// operator's saved column layout on top of the screen's defaults.
func (s *Server) tableView(sess session.Session, screen string, columns []datatable.Column, rows []datatable.Row, footer datatable.Footer, strategy console.Strategy, opts datatable.ViewOptions) TableView {
	model := datatable.NewModel(columns, datatable.DefaultMaxSticky)
	if layout, ok := s.savedLayout(sess.UserID, screen); ok {
		model.ApplyLayout(layout)
	}

	return TableView{
		View:     datatable.BuildView(model, rows, footer, opts),
		Strategy: strategy,
	}
}

// listError renders a failed list fetch inside the table view so the
// screen shows the message with a retry control. Superseded fetches are
// the exception: the client already has a newer request in flight.
func (s *Server) listError(c fiber.Ctx, sess session.Session, screen string, columns []datatable.Column, err error) error {
	if errors.Is(err, console.ErrSuperseded) {
		return respondError(c, err)
	}

	log.Warn().Err(err).Str("screen", screen).Msg("List fetch failed")

	view := s.tableView(sess, screen, columns, nil, datatable.Footer{}, "", datatable.ViewOptions{
		Error:    toastMessage(err),
		CanRetry: true,
	})
	return c.JSON(view)
}

// agentsViewHandler handles GET /console/agents
func (s *Server) agentsViewHandler(c fiber.Ctx) error {
	sess, state := s.consoleFor(c)

	q := console.AgentsQuery{Query: listQuery(c), Tag: c.Query("tag")}

	page, err := state.agents.List(c.Context(), screenAgents, q)
	if err != nil {
		return s.listError(c, sess, screenAgents, console.AgentColumns(), err)
	}

	view := s.tableView(sess, screenAgents, console.AgentColumns(), console.AgentRows(page.Items), page.Footer(), page.Strategy, datatable.ViewOptions{
		Sort:     sortQuery(c),
		BusyRows: state.agents.BusyRows(screenAgents),
	})
	return c.JSON(view)
}

// usersViewHandler handles GET /console/users
func (s *Server) usersViewHandler(c fiber.Ctx) error {
	sess, state := s.consoleFor(c)

	q := console.UsersQuery{Query: listQuery(c), Role: c.Query("role")}
	if blockedParam := c.Query("blocked"); blockedParam != "" {
		if blocked, err := strconv.ParseBool(blockedParam); err == nil {
			q.Blocked = &blocked
		}
	}

	page, err := state.users.List(c.Context(), screenUsers, q)
	if err != nil {
		return s.listError(c, sess, screenUsers, console.UserColumns(), err)
	}

	view := s.tableView(sess, screenUsers, console.UserColumns(), console.UserRows(page.Items), page.Footer(), page.Strategy, datatable.ViewOptions{
		Sort:     sortQuery(c),
		BusyRows: state.users.BusyRows(screenUsers),
	})
	return c.JSON(view)
}

// plansViewHandler handles GET /console/plans
func (s *Server) plansViewHandler(c fiber.Ctx) error {
	sess, state := s.consoleFor(c)

	page, err := state.plans.List(c.Context(), screenPlans, listQuery(c))
	if err != nil {
		return s.listError(c, sess, screenPlans, console.PlanColumns(), err)
	}

	view := s.tableView(sess, screenPlans, console.PlanColumns(), console.PlanRows(page.Items), page.Footer(), page.Strategy, datatable.ViewOptions{
		Sort:     sortQuery(c),
		BusyRows: state.plans.BusyRows(screenPlans),
	})
	return c.JSON(view)
}

// couponsViewHandler handles GET /console/coupons
func (s *Server) couponsViewHandler(c fiber.Ctx) error {
	sess, state := s.consoleFor(c)

	q := console.CouponsQuery{
		Query:  listQuery(c),
		Status: c.Query("status"),
		PlanID: c.Query("plan_id"),
	}

	page, err := state.coupons.List(c.Context(), screenCoupons, q)
	if err != nil {
		return s.listError(c, sess, screenCoupons, console.CouponColumns(), err)
	}

	view := s.tableView(sess, screenCoupons, console.CouponColumns(), console.CouponRows(page.Items, time.Now()), page.Footer(), page.Strategy, datatable.ViewOptions{
		Sort:     sortQuery(c),
		BusyRows: state.coupons.BusyRows(screenCoupons),
	})
	return c.JSON(view)
}

// knowledgeViewHandler handles GET /console/knowledge
func (s *Server) knowledgeViewHandler(c fiber.Ctx) error {
	sess, state := s.consoleFor(c)

	q := console.KnowledgeQuery{Query: listQuery(c), Type: c.Query("type")}

	page, err := state.knowledge.List(c.Context(), screenKnowledge, q)
	if err != nil {
		return s.listError(c, sess, screenKnowledge, console.KnowledgeColumns(), err)
	}

	view := s.tableView(sess, screenKnowledge, console.KnowledgeColumns(), console.KnowledgeRows(page.Items), page.Footer(), page.Strategy, datatable.ViewOptions{
		Sort:     sortQuery(c),
		BusyRows: state.knowledge.BusyRows(screenKnowledge),
	})
	return c.JSON(view)
}

// summariesViewHandler handles GET /console/summaries. Columns are
// derived from the page's data, so they can change between fetches.
func (s *Server) summariesViewHandler(c fiber.Ctx) error {
	sess, state := s.consoleFor(c)

	q := console.SummariesQuery{
		Query:   listQuery(c),
		AgentID: c.Query("agent_id"),
		From:    c.Query("from"),
		To:      c.Query("to"),
	}

	page, err := state.summaries.List(c.Context(), screenSummaries, q)
	if err != nil {
		return s.listError(c, sess, screenSummaries, console.SummaryColumns(nil), err)
	}

	view := s.tableView(sess, screenSummaries, console.SummaryColumns(page.Items), console.SummaryRows(page.Items), page.Footer(), page.Strategy, datatable.ViewOptions{
		Sort: sortQuery(c),
	})
	return c.JSON(view)
}

// screenView is the live channel's view of a screen: one page with the
// default filters, keyed so parallel connections never supersede each
// other.
func (s *Server) screenView(ctx context.Context, sess session.Session, state *consoleState, screen, key string, q console.Query) (TableView, error) {
	switch screen {
	case screenAgents:
		page, err := state.agents.List(ctx, key, console.AgentsQuery{Query: q})
		if err != nil {
			return TableView{}, err
		}
		return s.tableView(sess, screen, console.AgentColumns(), console.AgentRows(page.Items), page.Footer(), page.Strategy, datatable.ViewOptions{
			BusyRows: state.agents.BusyRows(screen),
		}), nil

	case screenUsers:
		page, err := state.users.List(ctx, key, console.UsersQuery{Query: q})
		if err != nil {
			return TableView{}, err
		}
		return s.tableView(sess, screen, console.UserColumns(), console.UserRows(page.Items), page.Footer(), page.Strategy, datatable.ViewOptions{
			BusyRows: state.users.BusyRows(screen),
		}), nil

	case screenPlans:
		page, err := state.plans.List(ctx, key, q)
		if err != nil {
			return TableView{}, err
		}
		return s.tableView(sess, screen, console.PlanColumns(), console.PlanRows(page.Items), page.Footer(), page.Strategy, datatable.ViewOptions{
			BusyRows: state.plans.BusyRows(screen),
		}), nil

	case screenCoupons:
		page, err := state.coupons.List(ctx, key, console.CouponsQuery{Query: q})
		if err != nil {
			return TableView{}, err
		}
		return s.tableView(sess, screen, console.CouponColumns(), console.CouponRows(page.Items, time.Now()), page.Footer(), page.Strategy, datatable.ViewOptions{
			BusyRows: state.coupons.BusyRows(screen),
		}), nil

	case screenKnowledge:
		page, err := state.knowledge.List(ctx, key, console.KnowledgeQuery{Query: q})
		if err != nil {
			return TableView{}, err
		}
		return s.tableView(sess, screen, console.KnowledgeColumns(), console.KnowledgeRows(page.Items), page.Footer(), page.Strategy, datatable.ViewOptions{
			BusyRows: state.knowledge.BusyRows(screen),
		}), nil

	case screenSummaries:
		page, err := state.summaries.List(ctx, key, console.SummariesQuery{Query: q})
		if err != nil {
			return TableView{}, err
		}
		return s.tableView(sess, screen, console.SummaryColumns(page.Items), console.SummaryRows(page.Items), page.Footer(), page.Strategy, datatable.ViewOptions{}), nil

	default:
		return TableView{}, errors.New("unknown screen: " + screen)
	}
}
