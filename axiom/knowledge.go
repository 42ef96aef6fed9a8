package axiom

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
)

// Document is a knowledge base entry an agent can draw on.
type Document struct {
	ID         string `json:"id"`
	Name       string `json:"name,omitempty"`
	Type       string `json:"type"`
	Status     string `json:"status,omitempty"`
	ChunkCount int    `json:"chunk_count,omitempty"`
	TokenCount int    `json:"token_count,omitempty"`
	SizeBytes  int64  `json:"size_bytes,omitempty"`
	CreatedAt  string `json:"created_at,omitempty"`
}

// DependentAgent identifies an agent that references a document.
type DependentAgent struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// DocumentUpload attaches new knowledge to an agent. Exactly one of
// File, URL, or Text should be set; Name labels the document.
type DocumentUpload struct {
	Name     string
	File     io.Reader
	FileName string
	URL      string
	Text     string
}

type ListDocumentsParams struct {
	Page     int
	PageSize int
	Search   string
	Type     string
}

func (p ListDocumentsParams) query() url.Values {
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
	if p.Type != "" {
		query.Set("type", p.Type)
	}
	return query
}

func (c *Client) ListDocuments(ctx context.Context, params ListDocumentsParams) (List[Document], error) {
	body, err := c.do(ctx, http.MethodGet, "/auth/user/knowledge-base", params.query(), nil)
	if err != nil {
		return List[Document]{}, err
	}
	return decodeList[Document](body)
}

func (c *Client) DeleteDocument(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodDelete, "/auth/user/knowledge-base/"+url.PathEscape(id), nil, nil)
	return err
}

// DependentAgents lists the agents still referencing a document, which
// the console shows before allowing a delete.
func (c *Client) DependentAgents(ctx context.Context, id string) ([]DependentAgent, error) {
	body, err := c.do(ctx, http.MethodGet, "/auth/user/knowledge-base/"+url.PathEscape(id)+"/dependent-agents", nil, nil)
	if err != nil {
		return nil, err
	}
	list, err := decodeList[DependentAgent](body)
	if err != nil {
		return nil, err
	}
	return list.Items, nil
}

// UploadAgentDocument adds a document to an agent's knowledge base as a
// multipart form, from a file, a URL, or raw text.
func (c *Client) UploadAgentDocument(ctx context.Context, agentID string, upload DocumentUpload) (Document, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	if upload.Name != "" {
		if err := writer.WriteField("name", upload.Name); err != nil {
			return Document{}, fmt.Errorf("failed to write name field: %w", err)
		}
	}

	switch {
	case upload.File != nil:
		fileName := upload.FileName
		if fileName == "" {
			fileName = "document"
		}
		part, err := writer.CreateFormFile("file", fileName)
		if err != nil {
			return Document{}, fmt.Errorf("failed to create file field: %w", err)
		}
		if _, err := io.Copy(part, upload.File); err != nil {
			return Document{}, fmt.Errorf("failed to copy file contents: %w", err)
		}
	case upload.URL != "":
		if err := writer.WriteField("url", upload.URL); err != nil {
			return Document{}, fmt.Errorf("failed to write url field: %w", err)
		}
	case upload.Text != "":
		if err := writer.WriteField("text", upload.Text); err != nil {
			return Document{}, fmt.Errorf("failed to write text field: %w", err)
		}
	default:
		return Document{}, fmt.Errorf("document upload needs a file, url, or text")
	}

	if err := writer.Close(); err != nil {
		return Document{}, fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	path := "/auth/admin/agents/" + url.PathEscape(agentID) + "/knowledge-base"
	respBody, err := c.doMultipart(ctx, http.MethodPost, path, &body, writer.FormDataContentType())
	if err != nil {
		return Document{}, err
	}
	return decode[Document](respBody)
}
