// Package ai answers free-form questions about the task list through the
// Gemini API, using the key stored in the task database.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"taskdeck/internal/domain"
	"taskdeck/internal/repository"
)

const (
	defaultModel = "gemini-2.0-flash"
	apiURLFormat = "https://generativelanguage.googleapis.com/v1beta/models/%s:generateContent"
)

// Client talks to the Gemini generateContent endpoint.
type Client struct {
	store   repository.TaskStore
	model   string
	baseURL string // format string taking the model name
	http    *http.Client
}

func New(store repository.TaskStore, modelName string) *Client {
	if modelName == "" {
		modelName = defaultModel
	}
	return &Client{
		store:   store,
		model:   modelName,
		baseURL: apiURLFormat,
		http:    &http.Client{Timeout: 60 * time.Second},
	}
}

// Ask sends the question together with the current task list as context and
// returns the model's answer. The API key comes from the stored credential.
func (c *Client) Ask(ctx context.Context, question string) (string, error) {
	apiKey, err := c.store.GetCredential(ctx)
	if err != nil {
		return "", fmt.Errorf("no API key stored, run 'credential set' first: %w", err)
	}

	tasks, err := c.store.ListAll(ctx)
	if err != nil {
		return "", err
	}

	reqBody := apiRequest{
		Contents: []content{{
			Parts: []part{{Text: buildPrompt(tasks, question)}},
		}},
	}
	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	url := fmt.Sprintf(c.baseURL, c.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling Gemini API: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr apiErrorResponse
		if json.Unmarshal(respBody, &apiErr) == nil && apiErr.Error.Message != "" {
			return "", fmt.Errorf("API error (%d): %s", resp.StatusCode, apiErr.Error.Message)
		}
		return "", fmt.Errorf("API error (%d): %s", resp.StatusCode, string(respBody))
	}

	var result apiResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", fmt.Errorf("decoding response: %w", err)
	}
	if len(result.Candidates) == 0 {
		return "", fmt.Errorf("empty response from model")
	}

	var b strings.Builder
	for _, p := range result.Candidates[0].Content.Parts {
		b.WriteString(p.Text)
	}
	return strings.TrimSpace(b.String()), nil
}

// buildPrompt frames the task list so the model can answer questions about
// due dates, priorities and progress.
func buildPrompt(tasks []*domain.Task, question string) string {
	var b strings.Builder
	b.WriteString("You are a terse assistant for a terminal todo list. Answer using only the tasks below.\n\nTasks:\n")

	for _, t := range tasks {
		fmt.Fprintf(&b, "- [%d] %s (topic: %s, priority: %s, status: %s, due: %s)\n",
			t.ID, t.Title, t.Topic, t.Priority, t.Status, t.Due)
		for _, st := range t.Subtasks {
			fmt.Fprintf(&b, "  - %s (%s)\n", st.Text, st.Status)
		}
	}

	b.WriteString("\nQuestion: ")
	b.WriteString(question)
	return b.String()
}

type apiRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type apiResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

type apiErrorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}
