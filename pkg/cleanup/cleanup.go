// Package cleanup rewrites a note's title and content through a remote
// text-improvement model. It is the only part of the system that performs
// network I/O on behalf of the editor; its failures are classified and
// never touch the note itself.
package cleanup

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"notepocket/pkg/llm"
)

const systemInstruction = `You are a helpful assistant that cleans up and improves notes. Always return valid JSON with "title" and "content" fields. Do not include any markdown formatting or code blocks for first person notes always rewrite in first person.`

const promptTemplate = `Clean up and improve this note. Make it more organized, fix any grammar or spelling errors, improve clarity, and ensure proper formatting. Return ONLY a JSON object with "title" and "content" fields. Do not include any other text or markdown formatting.

Original Title: %s
Original Content: %s

Return the cleaned up version as JSON with "title" and "content" fields:`

// Result is the cleaned title/content pair.
type Result struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type Service struct {
	provider llm.Provider
}

func NewService(provider llm.Provider) *Service {
	return &Service{provider: provider}
}

// Cleanup submits the pair to the model and returns the cleaned pair.
// Provider failures pass through with their classification intact; a
// reply that cannot be parsed even after fenced-block extraction is an
// error. Missing fields in the reply fall back to the originals.
func (s *Service) Cleanup(ctx context.Context, title, content string) (Result, error) {
	promptTitle := title
	if promptTitle == "" {
		promptTitle = "Untitled"
	}

	reply, err := s.provider.Chat(ctx,
		[]llm.Message{
			{Role: "system", Content: systemInstruction},
			{Role: "user", Content: fmt.Sprintf(promptTemplate, promptTitle, content)},
		},
		llm.WithTemperature(0.7),
		llm.WithJSONObject(),
	)
	if err != nil {
		return Result{}, err
	}

	cleaned, err := parseReply(reply)
	if err != nil {
		return Result{}, err
	}

	if cleaned.Title == "" {
		cleaned.Title = promptTitle
	}
	if cleaned.Content == "" {
		cleaned.Content = content
	}
	return cleaned, nil
}

var (
	jsonFenceRe = regexp.MustCompile("(?s)```json\\s*(.*?)\\s*```")
	fenceRe     = regexp.MustCompile("(?s)```\\s*(.*?)\\s*```")
)

// parseReply decodes the model reply as a {title, content} object,
// unwrapping a fenced code block first when the model ignored the
// formatting instruction.
func parseReply(reply string) (Result, error) {
	candidates := []string{strings.TrimSpace(reply)}

	if m := jsonFenceRe.FindStringSubmatch(reply); m != nil {
		candidates = append(candidates, m[1])
	} else if m := fenceRe.FindStringSubmatch(reply); m != nil {
		candidates = append(candidates, m[1])
	}

	var lastErr error
	for _, candidate := range candidates {
		var parsed Result
		if err := json.Unmarshal([]byte(candidate), &parsed); err != nil {
			lastErr = err
			continue
		}
		return parsed, nil
	}
	return Result{}, fmt.Errorf("unparseable cleanup response: %w", lastErr)
}
