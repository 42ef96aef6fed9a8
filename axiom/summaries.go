package axiom

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// Summary is one call record. The backend keys its fields by display
// strings ("Caller Name", "Duration") with no stable schema, so they are
// kept as a map and only ID and CreatedAt are lifted out when present.
type Summary struct {
	ID        string
	CreatedAt string
	Fields    map[string]string
}

func (s *Summary) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("failed to unmarshal summary: %w", err)
	}

	s.Fields = make(map[string]string, len(raw))
	for key, value := range raw {
		switch key {
		case "id", "_id":
			json.Unmarshal(value, &s.ID)
		case "created_at":
			json.Unmarshal(value, &s.CreatedAt)
		default:
			var str string
			if err := json.Unmarshal(value, &str); err == nil {
				s.Fields[key] = str
				continue
			}
			// Numbers, booleans, and nested values render as-is.
			s.Fields[key] = string(value)
		}
	}
	return nil
}

func (s Summary) MarshalJSON() ([]byte, error) {
	out := make(map[string]string, len(s.Fields)+2)
	for key, value := range s.Fields {
		out[key] = value
	}
	if s.ID != "" {
		out["id"] = s.ID
	}
	if s.CreatedAt != "" {
		out["created_at"] = s.CreatedAt
	}
	return json.Marshal(out)
}

type ListSummariesParams struct {
	Page     int
	PageSize int
	Search   string
	AgentID  string
	From     string
	To       string
}

func (p ListSummariesParams) query() url.Values {
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
	if p.AgentID != "" {
		query.Set("agent_id", p.AgentID)
	}
	if p.From != "" {
		query.Set("from", p.From)
	}
	if p.To != "" {
		query.Set("to", p.To)
	}
	return query
}

func (c *Client) ListSummaries(ctx context.Context, params ListSummariesParams) (List[Summary], error) {
	body, err := c.do(ctx, http.MethodGet, "/auth/user/summaries", params.query(), nil)
	if err != nil {
		return List[Summary]{}, err
	}
	return decodeList[Summary](body)
}
