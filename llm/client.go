package llm

import (
	"context"
	"log"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	anthropicopt "github.com/anthropics/anthropic-sdk-go/option"
	"github.com/openai/openai-go/v3"
	openaiopt "github.com/openai/openai-go/v3/option"
	"google.golang.org/genai"
)

// Provider selects which external text-generation service handles a request.
type Provider string

const (
	ProviderOpenAI Provider = "openai"
	ProviderGemini Provider = "gemini"
	ProviderClaude Provider = "claude"
)

const (
	openAIModel = openai.ChatModelGPT4oMini
	geminiModel = "gemini-2.0-flash-lite"
	claudeModel = anthropic.Model("claude-sonnet-4-20250514")

	claudeMaxTokens = 4096
)

// FallbackResponse is returned in place of provider output whenever a call
// fails. It is a minimal valid scene object so every caller always receives
// parseable text; provider outages surface only in the logs.
const FallbackResponse = `{"scenes": [{"id": 1, "description": "Scene generated (API error - using fallback)", "actions": [], "duration": 10, "mood": "neutral"}]}`

// Provider personas. Each arm sends its own system preamble.
const (
	systemDirector = "You are a professional film director and cinematographer producing short promotional videos."
	systemCasting  = "You are a film production specialist covering casting, scene breakdowns and sound design."
	systemVFX      = "You are a visual-effects supervisor writing production-ready prompts for AI image and video generation models."
)

// Request is one generation call. Schema is optional; only the OpenAI arm
// uses it (schema-enforced structured output), the other arms rely on the
// caller running ExtractJSON over the returned text.
type Request struct {
	Prompt     string
	Provider   Provider
	APIKey     string
	Schema     interface{}
	SchemaName string
}

// Generator is the call shape agents depend on. Tests substitute fakes.
type Generator interface {
	Generate(ctx context.Context, req Request) string
}

// Client dispatches to the selected provider. It never returns an error:
// any transport or provider failure becomes FallbackResponse.
type Client struct{}

func NewClient() *Client {
	return &Client{}
}

func (c *Client) Generate(ctx context.Context, req Request) string {
	switch req.Provider {
	case ProviderOpenAI:
		return c.generateOpenAI(ctx, req)
	case ProviderGemini:
		return c.generateGemini(ctx, req)
	case ProviderClaude:
		return c.generateClaude(ctx, req)
	default:
		log.Printf("Unknown LLM provider %q, using fallback", req.Provider)
		return FallbackResponse
	}
}

func (c *Client) generateOpenAI(ctx context.Context, req Request) string {
	client := openai.NewClient(openaiopt.WithAPIKey(req.APIKey))

	params := openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemDirector),
			openai.UserMessage(req.Prompt),
		},
		Model: openAIModel,
	}

	if req.Schema != nil {
		name := req.SchemaName
		if name == "" {
			name = "structured_response"
		}
		params.ResponseFormat = openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONSchema: &openai.ResponseFormatJSONSchemaParam{
				JSONSchema: openai.ResponseFormatJSONSchemaJSONSchemaParam{
					Name:   name,
					Schema: req.Schema,
					Strict: openai.Bool(true),
				},
			},
		}
	}

	completion, err := client.Chat.Completions.New(ctx, params)
	if err != nil {
		log.Printf("OpenAI API error: %v", err)
		return FallbackResponse
	}
	if len(completion.Choices) == 0 || completion.Choices[0].Message.Content == "" {
		log.Printf("OpenAI returned empty response")
		return FallbackResponse
	}
	return completion.Choices[0].Message.Content
}

func (c *Client) generateGemini(ctx context.Context, req Request) string {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  req.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		log.Printf("Gemini client error: %v", err)
		return FallbackResponse
	}

	resp, err := client.Models.GenerateContent(ctx, geminiModel, genai.Text(req.Prompt),
		&genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(systemCasting, genai.RoleUser),
		})
	if err != nil {
		log.Printf("Gemini API error: %v", err)
		return FallbackResponse
	}

	text := resp.Text()
	if text == "" {
		log.Printf("Gemini returned empty response")
		return FallbackResponse
	}
	return text
}

func (c *Client) generateClaude(ctx context.Context, req Request) string {
	client := anthropic.NewClient(anthropicopt.WithAPIKey(req.APIKey))

	msg, err := client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     claudeModel,
		MaxTokens: claudeMaxTokens,
		System: []anthropic.TextBlockParam{
			{Text: systemVFX},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(req.Prompt)),
		},
	})
	if err != nil {
		log.Printf("Claude API error: %v", err)
		return FallbackResponse
	}

	var sb strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	if sb.Len() == 0 {
		log.Printf("Claude returned empty response")
		return FallbackResponse
	}
	return sb.String()
}

// IsFallback reports whether raw provider output is the adapter's placeholder
// rather than real content. Agents use this to pick their own deterministic
// fallbacks instead of treating the placeholder as a genuine result.
func IsFallback(response string) bool {
	return strings.Contains(response, "API error")
}
