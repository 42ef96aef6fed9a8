package console

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/axiomconsultancy/axiom-admin-go/axiom"
	"github.com/axiomconsultancy/axiom-admin-go/datatable"
	"github.com/axiomconsultancy/axiom-admin-go/fetch"
)

// ErrDocumentInUse is returned when a delete is refused because agents
// still reference the document.
type ErrDocumentInUse struct {
	DocumentID string
	Agents     []axiom.DependentAgent
}

func (e *ErrDocumentInUse) Error() string {
	names := make([]string, 0, len(e.Agents))
	for _, agent := range e.Agents {
		names = append(names, agent.Name)
	}
	return fmt.Sprintf("document is used by %d agent(s): %s", len(e.Agents), strings.Join(names, ", "))
}

type KnowledgeController struct {
	api  KnowledgeAPI
	seq  *fetch.Sequencer
	busy *busyTracker
}

func NewKnowledgeController(api KnowledgeAPI) *KnowledgeController {
	return &KnowledgeController{
		api:  api,
		seq:  fetch.NewSequencer(),
		busy: newBusyTracker(),
	}
}

type KnowledgeQuery struct {
	Query
	Type string
}

func (c *KnowledgeController) List(ctx context.Context, key string, q KnowledgeQuery) (Page[axiom.Document], error) {
	return guarded(c.seq, ctx, key, func(ctx context.Context) (Page[axiom.Document], error) {
		return resolvePage(ctx, q.Query, func(ctx context.Context, page, pageSize int) (axiom.List[axiom.Document], error) {
			return c.api.ListDocuments(ctx, axiom.ListDocumentsParams{
				Page:     page,
				PageSize: pageSize,
				Search:   strings.TrimSpace(q.Search),
				Type:     q.Type,
			})
		})
	})
}

// DependentAgents lists the agents still referencing a document, for
// the confirmation dialog.
func (c *KnowledgeController) DependentAgents(ctx context.Context, id string) ([]axiom.DependentAgent, error) {
	return c.api.DependentAgents(ctx, id)
}

// Delete removes a document. Unless force is set, the delete is refused
// with ErrDocumentInUse while agents still reference it, so the caller
// can show which agents would lose knowledge.
func (c *KnowledgeController) Delete(ctx context.Context, key, id string, force bool) error {
	if !c.busy.mark(key, id) {
		return ErrRowBusy
	}
	defer c.busy.unmark(key, id)

	if !force {
		dependents, err := c.api.DependentAgents(ctx, id)
		if err != nil {
			return err
		}
		if len(dependents) > 0 {
			return &ErrDocumentInUse{DocumentID: id, Agents: dependents}
		}
	}

	return c.api.DeleteDocument(ctx, id)
}

func (c *KnowledgeController) BusyRows(key string) []string {
	return c.busy.busyRows(key)
}

// KnowledgeColumns defines the knowledge base table.
func KnowledgeColumns() []datatable.Column {
	return []datatable.Column{
		{Key: "name", Title: "Document", Width: 260, Sticky: datatable.StickyLeft, Visible: true, Sortable: true},
		{Key: "type", Title: "Type", Width: 90, Visible: true, Hideable: true},
		{Key: "status", Title: "Status", Width: 110, Visible: true, Hideable: true},
		{Key: "size", Title: "Size", Width: 100, Visible: true, Hideable: true, Align: "right"},
		{Key: "chunks", Title: "Chunks", Width: 90, Visible: false, Hideable: true, Align: "right"},
		{Key: "tokens", Title: "Tokens", Width: 100, Visible: false, Hideable: true, Align: "right"},
		{Key: "created", Title: "Added", Width: 140, Visible: true, Hideable: true, Sortable: true},
		{Key: "actions", Title: "", Width: 90, Sticky: datatable.StickyRight, Visible: true},
	}
}

// KnowledgeRows renders documents for the table.
func KnowledgeRows(documents []axiom.Document) []datatable.Row {
	rows := make([]datatable.Row, 0, len(documents))
	for _, document := range documents {
		size := ""
		if document.SizeBytes > 0 {
			size = humanize.Bytes(uint64(document.SizeBytes))
		}

		rows = append(rows, datatable.Row{
			"id":      document.ID,
			"name":    document.Name,
			"type":    document.Type,
			"status":  document.Status,
			"size":    size,
			"chunks":  strconv.Itoa(document.ChunkCount),
			"tokens":  strconv.Itoa(document.TokenCount),
			"created": document.CreatedAt,
		})
	}
	return rows
}
