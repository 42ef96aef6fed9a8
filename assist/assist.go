// Package assist drafts agent system prompts for the create and edit
// forms. One completion call per request, no tools, no streaming.
package assist

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/rs/zerolog/log"
)

// ErrEmptyRequest is returned when the form gave nothing to work from.
var ErrEmptyRequest = errors.New("assist: request is empty")

var drafterPrompt = `You are a prompt engineer for conversational voice agents. You write system prompts that a voice agent follows during live phone calls.

Rules for every prompt you produce:
- Write in the second person, addressed to the agent ("You are...").
- Cover: the agent's role, the business context, tone of voice, what the agent may and may not do, and how to close a call.
- Keep sentences short; the prompt is consumed by a realtime voice model.
- If an existing prompt is provided, refine it: keep its intent and any constraints it states, improve clarity and structure.
- Answer with the prompt text only. No headings, no commentary, no markdown fences.`

type Client struct {
	client *openai.Client
}

func NewClient(apiKey string, httpClient http.Client) Client {
	client := openai.NewClient(
		option.WithAPIKey(apiKey),
		option.WithHTTPClient(&httpClient),
	)

	return Client{
		client: &client,
	}
}

// Request describes the agent the prompt is for. ExistingPrompt switches
// the call from drafting to refining.
type Request struct {
	AgentName      string `json:"agent_name"`
	Industry       string `json:"industry"`
	Tone           string `json:"tone"`
	Language       string `json:"language"`
	ExistingPrompt string `json:"existing_prompt"`
	Instructions   string `json:"instructions"`
}

// DraftPrompt produces a system prompt draft for the agent form.
func (c Client) DraftPrompt(ctx context.Context, req Request) (string, error) {
	userMessage := buildUserMessage(req)
	if userMessage == "" {
		return "", ErrEmptyRequest
	}

	log.Info().
		Str("agent_name", req.AgentName).
		Bool("refining", req.ExistingPrompt != "").
		Msg("Drafting agent prompt")

	chatCompletion, err := c.client.Chat.Completions.New(
		ctx,
		openai.ChatCompletionNewParams{
			Messages: []openai.ChatCompletionMessageParamUnion{
				openai.SystemMessage(drafterPrompt),
				openai.UserMessage(userMessage),
			},
			Model: openai.ChatModelGPT4_1Mini,
		},
	)
	if err != nil {
		log.Error().
			Err(err).
			Str("agent_name", req.AgentName).
			Msg("Prompt assist call failed")
		return "", fmt.Errorf("failed to draft prompt: %w", err)
	}

	if len(chatCompletion.Choices) == 0 {
		return "", fmt.Errorf("prompt assist returned no choices")
	}

	draft := strings.TrimSpace(chatCompletion.Choices[0].Message.Content)
	if draft == "" {
		return "", fmt.Errorf("prompt assist returned an empty draft")
	}
	return draft, nil
}

// buildUserMessage lays out the request as labeled lines, skipping the
// fields the form left blank.
func buildUserMessage(req Request) string {
	var lines []string

	if name := strings.TrimSpace(req.AgentName); name != "" {
		lines = append(lines, "Agent name: "+name)
	}
	if industry := strings.TrimSpace(req.Industry); industry != "" {
		lines = append(lines, "Industry: "+industry)
	}
	if tone := strings.TrimSpace(req.Tone); tone != "" {
		lines = append(lines, "Tone: "+tone)
	}
	if language := strings.TrimSpace(req.Language); language != "" {
		lines = append(lines, "Language: "+language)
	}
	if instructions := strings.TrimSpace(req.Instructions); instructions != "" {
		lines = append(lines, "Instructions: "+instructions)
	}
	if existing := strings.TrimSpace(req.ExistingPrompt); existing != "" {
		lines = append(lines, "Existing prompt to refine:\n"+existing)
	}

	return strings.Join(lines, "\n")
}
