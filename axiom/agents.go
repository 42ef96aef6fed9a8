package axiom

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// Turn eagerness values understood by the voice pipeline.
const (
	TurnEagernessPatient = "patient"
	TurnEagernessNormal  = "normal"
	TurnEagernessEager   = "eager"
)

// Agent is a configured voice agent.
type Agent struct {
	ID                  string             `json:"id"`
	Name                string             `json:"name"`
	Tags                []string           `json:"tags,omitempty"`
	DefaultLanguage     string             `json:"default_language,omitempty"`
	AdditionalLanguages []string           `json:"additional_languages,omitempty"`
	ConversationConfig  ConversationConfig `json:"conversation_config"`
	AssignedUserIDs     []string           `json:"assigned_users,omitempty"`
	Workflow            *Workflow          `json:"workflow,omitempty"`
	CreatedAt           string             `json:"created_at,omitempty"`
	UpdatedAt           string             `json:"updated_at,omitempty"`
}

// Workflow is the agent's conversation graph. The console never edits
// it, so nodes and edges pass through untouched.
type Workflow struct {
	Nodes json.RawMessage `json:"nodes,omitempty"`
	Edges json.RawMessage `json:"edges,omitempty"`
}

// VoiceConfig selects the TTS voice for an agent.
type VoiceConfig struct {
	VoiceID   string  `json:"voice_id,omitempty"`
	ModelID   string  `json:"model_id,omitempty"`
	Speed     float64 `json:"speed,omitempty"`
	Stability float64 `json:"stability,omitempty"`
}

// ASRConfig holds the speech recognition settings for an agent.
type ASRConfig struct {
	Provider string   `json:"provider,omitempty"`
	Language string   `json:"language,omitempty"`
	Keywords []string `json:"keywords,omitempty"`
}

// TurnConfig holds the turn-taking timers and eagerness.
type TurnConfig struct {
	TimeoutSeconds        int    `json:"turn_timeout,omitempty"`
	SilenceEndCallSeconds int    `json:"silence_end_call_timeout,omitempty"`
	Eagerness             string `json:"turn_eagerness,omitempty"`
}

// ConversationConfig is the agent's conversational tuning. The platform
// attaches fields the console does not know about; those survive in
// Extra and round-trip unchanged, so an edit from this console never
// strips another client's settings.
type ConversationConfig struct {
	Prompt string
	Voice  VoiceConfig
	ASR    ASRConfig
	Turn   TurnConfig
	Extra  map[string]json.RawMessage
}

func (c ConversationConfig) MarshalJSON() ([]byte, error) {
	out := make(map[string]json.RawMessage, len(c.Extra)+4)
	for key, value := range c.Extra {
		out[key] = value
	}

	if c.Prompt != "" {
		if err := putJSON(out, "prompt", c.Prompt); err != nil {
			return nil, err
		}
	}
	if c.Voice != (VoiceConfig{}) {
		if err := putJSON(out, "voice", c.Voice); err != nil {
			return nil, err
		}
	}
	if c.ASR.Provider != "" || c.ASR.Language != "" || len(c.ASR.Keywords) > 0 {
		if err := putJSON(out, "asr", c.ASR); err != nil {
			return nil, err
		}
	}
	if c.Turn != (TurnConfig{}) {
		if err := putJSON(out, "turn", c.Turn); err != nil {
			return nil, err
		}
	}

	return json.Marshal(out)
}

func putJSON(out map[string]json.RawMessage, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", key, err)
	}
	out[key] = data
	return nil
}

func (c *ConversationConfig) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("failed to unmarshal conversation config: %w", err)
	}

	if value, ok := raw["prompt"]; ok {
		if err := json.Unmarshal(value, &c.Prompt); err != nil {
			return fmt.Errorf("failed to unmarshal prompt: %w", err)
		}
		delete(raw, "prompt")
	}
	if value, ok := raw["voice"]; ok {
		if err := json.Unmarshal(value, &c.Voice); err != nil {
			return fmt.Errorf("failed to unmarshal voice config: %w", err)
		}
		delete(raw, "voice")
	}
	if value, ok := raw["asr"]; ok {
		if err := json.Unmarshal(value, &c.ASR); err != nil {
			return fmt.Errorf("failed to unmarshal asr config: %w", err)
		}
		delete(raw, "asr")
	}
	if value, ok := raw["turn"]; ok {
		if err := json.Unmarshal(value, &c.Turn); err != nil {
			return fmt.Errorf("failed to unmarshal turn config: %w", err)
		}
		delete(raw, "turn")
	}

	if len(raw) > 0 {
		c.Extra = raw
	}
	return nil
}

// AgentCreate is the payload for creating an agent. Optional fields are
// pointers so an omitted field is distinguishable from a zero value.
type AgentCreate struct {
	Name                string              `json:"name"`
	Tags                []string            `json:"tags,omitempty"`
	DefaultLanguage     string              `json:"default_language,omitempty"`
	AdditionalLanguages []string            `json:"additional_languages,omitempty"`
	ConversationConfig  *ConversationConfig `json:"conversation_config,omitempty"`
	AssignedUserIDs     []string            `json:"assigned_users,omitempty"`
}

// AgentUpdate is the PATCH payload. Only non-nil fields reach the wire.
type AgentUpdate struct {
	Name                *string             `json:"name,omitempty"`
	Tags                []string            `json:"tags,omitempty"`
	DefaultLanguage     *string             `json:"default_language,omitempty"`
	AdditionalLanguages []string            `json:"additional_languages,omitempty"`
	ConversationConfig  *ConversationConfig `json:"conversation_config,omitempty"`
	AssignedUserIDs     []string            `json:"assigned_users,omitempty"`
}

type ListAgentsParams struct {
	Page     int
	PageSize int
	Search   string
	Tag      string
}

func (p ListAgentsParams) query() url.Values {
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
	if p.Tag != "" {
		query.Set("tag", p.Tag)
	}
	return query
}

func (c *Client) ListAgents(ctx context.Context, params ListAgentsParams) (List[Agent], error) {
	body, err := c.do(ctx, http.MethodGet, "/auth/admin/agents", params.query(), nil)
	if err != nil {
		return List[Agent]{}, err
	}
	return decodeList[Agent](body)
}

func (c *Client) GetAgent(ctx context.Context, id string) (Agent, error) {
	body, err := c.do(ctx, http.MethodGet, "/auth/admin/agents/"+url.PathEscape(id), nil, nil)
	if err != nil {
		return Agent{}, err
	}
	return decode[Agent](body)
}

func (c *Client) CreateAgent(ctx context.Context, req AgentCreate) (Agent, error) {
	body, err := c.do(ctx, http.MethodPost, "/auth/admin/agents", nil, req)
	if err != nil {
		return Agent{}, err
	}
	return decode[Agent](body)
}

func (c *Client) UpdateAgent(ctx context.Context, id string, req AgentUpdate) (Agent, error) {
	body, err := c.do(ctx, http.MethodPatch, "/auth/admin/agents/"+url.PathEscape(id), nil, req)
	if err != nil {
		return Agent{}, err
	}
	return decode[Agent](body)
}

func (c *Client) DeleteAgent(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodDelete, "/auth/admin/agents/"+url.PathEscape(id), nil, nil)
	return err
}

// ListUnassignedAgents returns agents with no user assigned to them.
func (c *Client) ListUnassignedAgents(ctx context.Context) ([]Agent, error) {
	body, err := c.do(ctx, http.MethodGet, "/auth/admin/agents/unassigned", nil, nil)
	if err != nil {
		return nil, err
	}
	list, err := decodeList[Agent](body)
	if err != nil {
		return nil, err
	}
	return list.Items, nil
}
