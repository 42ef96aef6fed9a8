package console

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/axiomconsultancy/axiom-admin-go/axiom"
	"github.com/axiomconsultancy/axiom-admin-go/datatable"
	"github.com/axiomconsultancy/axiom-admin-go/fetch"
)

// Defaults merged into new agents when the form leaves them blank.
const (
	DefaultASRProvider           = "axiom-asr"
	DefaultASRLanguage           = "en"
	DefaultTurnTimeoutSeconds    = 7
	DefaultSilenceEndCallSeconds = 20
	DefaultTurnEagerness         = axiom.TurnEagernessNormal
)

type AgentsController struct {
	api  AgentsAPI
	seq  *fetch.Sequencer
	busy *busyTracker
}

func NewAgentsController(api AgentsAPI) *AgentsController {
	return &AgentsController{
		api:  api,
		seq:  fetch.NewSequencer(),
		busy: newBusyTracker(),
	}
}

type AgentsQuery struct {
	Query
	Tag string
}

func (c *AgentsController) List(ctx context.Context, key string, q AgentsQuery) (Page[axiom.Agent], error) {
	return guarded(c.seq, ctx, key, func(ctx context.Context) (Page[axiom.Agent], error) {
		return resolvePage(ctx, q.Query, func(ctx context.Context, page, pageSize int) (axiom.List[axiom.Agent], error) {
			return c.api.ListAgents(ctx, axiom.ListAgentsParams{
				Page:     page,
				PageSize: pageSize,
				Search:   strings.TrimSpace(q.Search),
				Tag:      q.Tag,
			})
		})
	})
}

func (c *AgentsController) Get(ctx context.Context, id string) (axiom.Agent, error) {
	return c.api.GetAgent(ctx, id)
}

func (c *AgentsController) Unassigned(ctx context.Context) ([]axiom.Agent, error) {
	return c.api.ListUnassignedAgents(ctx)
}

func (c *AgentsController) Create(ctx context.Context, form AgentForm) (axiom.Agent, error) {
	req, err := BuildAgentCreate(form)
	if err != nil {
		return axiom.Agent{}, err
	}
	return c.api.CreateAgent(ctx, req)
}

func (c *AgentsController) Update(ctx context.Context, key, id string, form AgentForm) (axiom.Agent, error) {
	req, err := BuildAgentUpdate(form)
	if err != nil {
		return axiom.Agent{}, err
	}

	if !c.busy.mark(key, id) {
		return axiom.Agent{}, ErrRowBusy
	}
	defer c.busy.unmark(key, id)

	return c.api.UpdateAgent(ctx, id, req)
}

func (c *AgentsController) Delete(ctx context.Context, key, id string) error {
	if !c.busy.mark(key, id) {
		return ErrRowBusy
	}
	defer c.busy.unmark(key, id)

	return c.api.DeleteAgent(ctx, id)
}

// AttachDocument uploads knowledge to an agent, tracked as a row action
// on the agent.
func (c *AgentsController) AttachDocument(ctx context.Context, key, agentID string, upload axiom.DocumentUpload) (axiom.Document, error) {
	if !c.busy.mark(key, agentID) {
		return axiom.Document{}, ErrRowBusy
	}
	defer c.busy.unmark(key, agentID)

	return c.api.UploadAgentDocument(ctx, agentID, upload)
}

// BusyRows lists agents with a running row action.
func (c *AgentsController) BusyRows(key string) []string {
	return c.busy.busyRows(key)
}

// AgentColumns defines the agents table.
func AgentColumns() []datatable.Column {
	return []datatable.Column{
		{Key: "name", Title: "Name", Width: 220, Sticky: datatable.StickyLeft, Visible: true, Sortable: true},
		{Key: "tags", Title: "Tags", Width: 180, Visible: true, Hideable: true},
		{Key: "default_language", Title: "Language", Width: 110, Visible: true, Hideable: true},
		{Key: "voice", Title: "Voice", Width: 140, Visible: true, Hideable: true},
		{Key: "assigned_users", Title: "Assigned", Width: 100, Visible: true, Hideable: true, Align: "right"},
		{Key: "updated_at", Title: "Updated", Width: 160, Visible: true, Hideable: true, Sortable: true},
		{Key: "actions", Title: "", Width: 90, Sticky: datatable.StickyRight, Visible: true},
	}
}

// AgentRows renders agents for the table.
func AgentRows(agents []axiom.Agent) []datatable.Row {
	rows := make([]datatable.Row, 0, len(agents))
	for _, agent := range agents {
		rows = append(rows, datatable.Row{
			"id":               agent.ID,
			"name":             agent.Name,
			"tags":             strings.Join(agent.Tags, ", "),
			"default_language": agent.DefaultLanguage,
			"voice":            agent.ConversationConfig.Voice.VoiceID,
			"assigned_users":   strconv.Itoa(len(agent.AssignedUserIDs)),
			"updated_at":       agent.UpdatedAt,
		})
	}
	return rows
}

// AgentForm carries the agent modal's fields as submitted. Numeric
// inputs arrive as strings and are parsed during payload building.
type AgentForm struct {
	Name                  string   `json:"name"`
	Tags                  []string `json:"tags"`
	DefaultLanguage       string   `json:"default_language"`
	AdditionalLanguages   []string `json:"additional_languages"`
	Prompt                string   `json:"prompt"`
	VoiceID               string   `json:"voice_id"`
	VoiceModelID          string   `json:"voice_model_id"`
	VoiceSpeed            string   `json:"voice_speed"`
	VoiceStability        string   `json:"voice_stability"`
	ASRProvider           string   `json:"asr_provider"`
	ASRLanguage           string   `json:"asr_language"`
	ASRKeywords           []string `json:"asr_keywords"`
	TurnTimeout           string   `json:"turn_timeout"`
	SilenceEndCallTimeout string   `json:"silence_end_call_timeout"`
	TurnEagerness         string   `json:"turn_eagerness"`
	AssignedUserIDs       []string `json:"assigned_user_ids"`
}

// BuildAgentCreate turns the create modal into a platform payload.
// String fields are trimmed and empty optionals omitted; the ASR and
// turn-taking defaults fill anything the form left blank.
func BuildAgentCreate(form AgentForm) (axiom.AgentCreate, error) {
	name := strings.TrimSpace(form.Name)
	if name == "" {
		return axiom.AgentCreate{}, fmt.Errorf("agent name is required")
	}

	config, err := buildConversationConfig(form)
	if err != nil {
		return axiom.AgentCreate{}, err
	}

	if config.ASR.Provider == "" {
		config.ASR.Provider = DefaultASRProvider
	}
	if config.ASR.Language == "" {
		if lang := strings.TrimSpace(form.DefaultLanguage); lang != "" {
			config.ASR.Language = lang
		} else {
			config.ASR.Language = DefaultASRLanguage
		}
	}
	if config.Turn.TimeoutSeconds == 0 {
		config.Turn.TimeoutSeconds = DefaultTurnTimeoutSeconds
	}
	if config.Turn.SilenceEndCallSeconds == 0 {
		config.Turn.SilenceEndCallSeconds = DefaultSilenceEndCallSeconds
	}
	if config.Turn.Eagerness == "" {
		config.Turn.Eagerness = DefaultTurnEagerness
	}

	return axiom.AgentCreate{
		Name:                name,
		Tags:                trimAll(form.Tags),
		DefaultLanguage:     strings.TrimSpace(form.DefaultLanguage),
		AdditionalLanguages: trimAll(form.AdditionalLanguages),
		ConversationConfig:  &config,
		AssignedUserIDs:     trimAll(form.AssignedUserIDs),
	}, nil
}

// BuildAgentUpdate turns the edit modal into a PATCH payload holding
// only the fields whose trimmed value is non-empty. No defaults are
// merged here; an edit must not overwrite settings the form does not
// show.
func BuildAgentUpdate(form AgentForm) (axiom.AgentUpdate, error) {
	var req axiom.AgentUpdate

	if name := strings.TrimSpace(form.Name); name != "" {
		req.Name = &name
	}
	if tags := trimAll(form.Tags); len(tags) > 0 {
		req.Tags = tags
	}
	if lang := strings.TrimSpace(form.DefaultLanguage); lang != "" {
		req.DefaultLanguage = &lang
	}
	if langs := trimAll(form.AdditionalLanguages); len(langs) > 0 {
		req.AdditionalLanguages = langs
	}
	if ids := trimAll(form.AssignedUserIDs); len(ids) > 0 {
		req.AssignedUserIDs = ids
	}

	config, err := buildConversationConfig(form)
	if err != nil {
		return axiom.AgentUpdate{}, err
	}
	if !conversationConfigEmpty(config) {
		req.ConversationConfig = &config
	}

	return req, nil
}

func buildConversationConfig(form AgentForm) (axiom.ConversationConfig, error) {
	var config axiom.ConversationConfig

	config.Prompt = strings.TrimSpace(form.Prompt)
	config.Voice.VoiceID = strings.TrimSpace(form.VoiceID)
	config.Voice.ModelID = strings.TrimSpace(form.VoiceModelID)

	if speed := strings.TrimSpace(form.VoiceSpeed); speed != "" {
		value, err := strconv.ParseFloat(speed, 64)
		if err != nil {
			return config, fmt.Errorf("voice speed must be a number: %q", speed)
		}
		config.Voice.Speed = value
	}
	if stability := strings.TrimSpace(form.VoiceStability); stability != "" {
		value, err := strconv.ParseFloat(stability, 64)
		if err != nil {
			return config, fmt.Errorf("voice stability must be a number: %q", stability)
		}
		config.Voice.Stability = value
	}

	config.ASR.Provider = strings.TrimSpace(form.ASRProvider)
	config.ASR.Language = strings.TrimSpace(form.ASRLanguage)
	config.ASR.Keywords = trimAll(form.ASRKeywords)

	if timeout := strings.TrimSpace(form.TurnTimeout); timeout != "" {
		value, err := strconv.Atoi(timeout)
		if err != nil {
			return config, fmt.Errorf("turn timeout must be a whole number of seconds: %q", timeout)
		}
		config.Turn.TimeoutSeconds = value
	}
	if silence := strings.TrimSpace(form.SilenceEndCallTimeout); silence != "" {
		value, err := strconv.Atoi(silence)
		if err != nil {
			return config, fmt.Errorf("silence timeout must be a whole number of seconds: %q", silence)
		}
		config.Turn.SilenceEndCallSeconds = value
	}

	switch eagerness := strings.TrimSpace(form.TurnEagerness); eagerness {
	case "", axiom.TurnEagernessPatient, axiom.TurnEagernessNormal, axiom.TurnEagernessEager:
		config.Turn.Eagerness = eagerness
	default:
		return config, fmt.Errorf("unknown turn eagerness: %q", eagerness)
	}

	return config, nil
}

func conversationConfigEmpty(config axiom.ConversationConfig) bool {
	return config.Prompt == "" &&
		config.Voice == (axiom.VoiceConfig{}) &&
		config.ASR.Provider == "" && config.ASR.Language == "" && len(config.ASR.Keywords) == 0 &&
		config.Turn == (axiom.TurnConfig{})
}

// trimAll trims every entry and drops the empty ones. A slice with
// nothing left comes back nil so omitempty applies.
func trimAll(values []string) []string {
	var out []string
	for _, value := range values {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
