package generator

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// CLIClient generates questions through a locally installed claude binary,
// for development machines without an API key. The CLI prints plain text and
// reports no usage, so token counts are estimated from prompt and response
// length to keep LLMResponse consistent with APIClient.
type CLIClient struct {
	binary string
}

func NewCLIClient(binary string) *CLIClient {
	return &CLIClient{binary: binary}
}

func (c *CLIClient) Generate(ctx context.Context, systemPrompt string, userPrompt string) (*LLMResponse, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	cmd := exec.CommandContext(ctx, c.binary,
		"--print",
		"--output-format", "text",
		"--system-prompt", systemPrompt,
		"--max-turns", "1",
	)
	cmd.Stdin = strings.NewReader(userPrompt)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("run %s: %w (stderr: %s)", c.binary, err, strings.TrimSpace(stderr.String()))
	}

	content := strings.TrimSpace(stdout.String())
	if content == "" {
		return nil, fmt.Errorf("%s produced no output for the question batch", c.binary)
	}

	return &LLMResponse{
		Content:      content,
		PromptTokens: approxTokens(systemPrompt) + approxTokens(userPrompt),
		OutputTokens: approxTokens(content),
	}, nil
}

// approxTokens is a rough 4-chars-per-token estimate.
func approxTokens(s string) int {
	return len(s) / 4
}
