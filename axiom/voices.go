package axiom

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// Voice is a TTS voice from the platform catalog.
type Voice struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Provider   string `json:"provider,omitempty"`
	Language   string `json:"language,omitempty"`
	Gender     string `json:"gender,omitempty"`
	Accent     string `json:"accent,omitempty"`
	PreviewURL string `json:"preview_url,omitempty"`
}

type ListVoicesParams struct {
	Search   string
	PageSize int
}

func (p ListVoicesParams) query() url.Values {
	query := url.Values{}
	if p.Search != "" {
		query.Set("search", p.Search)
	}
	if p.PageSize > 0 {
		query.Set("page_size", strconv.Itoa(p.PageSize))
	}
	return query
}

func (c *Client) ListVoices(ctx context.Context, params ListVoicesParams) (List[Voice], error) {
	body, err := c.do(ctx, http.MethodGet, "/auth/user/voices", params.query(), nil)
	if err != nil {
		return List[Voice]{}, err
	}
	return decodeList[Voice](body)
}
