package generator

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/anthropics/anthropic-sdk-go/packages/param"
	"github.com/reel-trivia/backend/internal/models"
)

// LLMClient is the interface all generator backends satisfy.
type LLMClient interface {
	Generate(ctx context.Context, systemPrompt string, userPrompt string) (*LLMResponse, error)
}

// LLMResponse holds the raw response content and token usage.
type LLMResponse struct {
	Content      string
	PromptTokens int
	OutputTokens int
}

// Generator wraps an LLMClient and adds movie-trivia batch methods, falling
// back to template generation when no model is configured or a generated
// batch fails validation.
type Generator struct {
	llm   LLMClient
	model string
}

func NewGenerator() *Generator {
	var llm LLMClient
	model := "fallback"

	if os.Getenv("USE_CLI_GENERATOR") == "true" {
		cliPath := os.Getenv("CLAUDE_CLI_PATH")
		if cliPath == "" {
			cliPath = "claude"
		}
		llm = NewCLIClient(cliPath)
		model = "claude-cli"
		log.Println("Generator using Claude CLI (local plan)")
	} else if os.Getenv("MOCK_GENERATOR") == "true" {
		llm = NewMockClient()
		model = "mock"
		log.Println("Generator using mock data")
	} else if os.Getenv("ANTHROPIC_API_KEY") != "" {
		model = os.Getenv("ANTHROPIC_MODEL")
		if model == "" {
			model = "claude-3-5-haiku-latest"
		}
		llm = NewAPIClient(model)
		log.Println("Generator using Anthropic API:", model)
	} else {
		log.Println("Generator has no API key, using template fallback")
	}

	return &Generator{llm: llm, model: model}
}

func (g *Generator) ModelName() string {
	return g.model
}

// GenerateBatch produces one question per movie at the given difficulty
// level. Any model failure or invalid question degrades to the template
// fallback so a quiz can always start.
func (g *Generator) GenerateBatch(ctx context.Context, selected []models.Movie, level int) ([]GeneratedQuestion, error) {
	if len(selected) == 0 {
		return nil, fmt.Errorf("no movies to generate from")
	}

	if g.llm == nil {
		questions := make([]GeneratedQuestion, 0, len(selected))
		for _, movie := range selected {
			questions = append(questions, FallbackQuestion(movie, level))
		}
		return questions, nil
	}

	systemPrompt := SystemPrompt()
	userPrompt := BuildBatchPrompt(selected, level)

	resp, err := g.llm.Generate(ctx, systemPrompt, userPrompt)
	if err != nil {
		log.Printf("WARN: generation failed, using template fallback: %v", err)
		questions := make([]GeneratedQuestion, 0, len(selected))
		for _, movie := range selected {
			questions = append(questions, FallbackQuestion(movie, level))
		}
		return questions, nil
	}

	batch, err := ParseResponse(resp.Content)
	if err != nil {
		log.Printf("WARN: parse failed, using template fallback: %v", err)
		questions := make([]GeneratedQuestion, 0, len(selected))
		for _, movie := range selected {
			questions = append(questions, FallbackQuestion(movie, level))
		}
		return questions, nil
	}

	// Pair each generated question with its movie; top up or replace any
	// invalid ones with template questions. Mock responses use canned titles,
	// so the movie-mention check only applies to real model output.
	questions := make([]GeneratedQuestion, 0, len(selected))
	for i, movie := range selected {
		if i < len(batch.Questions) && (g.model == "mock" || validForMovie(batch.Questions[i], movie)) {
			q := batch.Questions[i]
			q.MovieTitle = movie.Title
			if q.Difficulty == "" {
				q.Difficulty = models.DifficultyForLevel(level)
			}
			questions = append(questions, q)
			continue
		}
		log.Printf("WARN: generated question %d failed validation for %q, using fallback", i+1, movie.Title)
		questions = append(questions, FallbackQuestion(movie, level))
	}
	return questions, nil
}

// validForMovie rejects questions that don't reference the movie they were
// generated for; those usually indicate a confused model response.
func validForMovie(q GeneratedQuestion, movie models.Movie) bool {
	if len(movie.Title) <= 3 {
		return true
	}
	return strings.Contains(strings.ToLower(q.Prompt), strings.ToLower(movie.Title))
}

// ── APIClient — Anthropic SDK (Production) ─────────────────

type APIClient struct {
	client *anthropic.Client
	model  string
}

func NewAPIClient(model string) *APIClient {
	client := anthropic.NewClient(
		option.WithAPIKey(os.Getenv("ANTHROPIC_API_KEY")),
	)
	return &APIClient{client: &client, model: model}
}

func (c *APIClient) Generate(ctx context.Context, systemPrompt string, userPrompt string) (*LLMResponse, error) {
	params := anthropic.MessageNewParams{
		Model:       anthropic.Model(c.model),
		MaxTokens:   4096,
		Temperature: param.NewOpt(0.7),
		System: []anthropic.TextBlockParam{
			{Text: systemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(userPrompt)),
		},
	}

	message, err := c.callWithRetry(ctx, params)
	if err != nil {
		return nil, err
	}

	var responseText string
	for _, block := range message.Content {
		if block.Type == "text" {
			responseText = block.Text
			break
		}
	}

	if responseText == "" {
		return nil, fmt.Errorf("no text content in API response")
	}

	return &LLMResponse{
		Content:      responseText,
		PromptTokens: int(message.Usage.InputTokens),
		OutputTokens: int(message.Usage.OutputTokens),
	}, nil
}

func (c *APIClient) callWithRetry(ctx context.Context, params anthropic.MessageNewParams) (*anthropic.Message, error) {
	var lastErr error
	for attempt := 0; attempt < 2; attempt++ {
		if attempt > 0 {
			sleepDuration := time.Duration(1<<uint(attempt)) * time.Second
			log.Printf("Retrying Anthropic API call in %v (attempt %d)", sleepDuration, attempt+1)
			time.Sleep(sleepDuration)
		}

		message, err := c.client.Messages.New(ctx, params)
		if err == nil {
			return message, nil
		}
		lastErr = err
		log.Printf("Anthropic API attempt %d failed: %v", attempt+1, err)
	}
	return nil, fmt.Errorf("anthropic API failed after retries: %w", lastErr)
}

// ── MockClient — Local Development ─────────────────────────

type MockClient struct{}

func NewMockClient() *MockClient {
	return &MockClient{}
}

func (m *MockClient) Generate(ctx context.Context, systemPrompt string, userPrompt string) (*LLMResponse, error) {
	return &LLMResponse{
		Content:      buildMockJSON(),
		PromptTokens: 800,
		OutputTokens: 1200,
	}, nil
}

func buildMockJSON() string {
	titles := []string{
		"The Quiet Harbor", "Midnight Courier", "Glass Orchard",
		"The Last Projectionist", "Northern Static", "Paper Lanterns",
	}

	questions := "["
	for i, title := range titles {
		if i > 0 {
			questions += ","
		}
		questions += fmt.Sprintf(
			`{"question":"[Mock] In which year was the film '%s' released?","options":["1994","2001","2008","2015"],"answer_index":%d,"difficulty":"medium"}`,
			title, i%4)
	}
	questions += "]"

	return fmt.Sprintf(`{"questions":%s}`, questions)
}
