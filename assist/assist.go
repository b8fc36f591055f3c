// Package assist wraps the Gemini API for the portfolio's scripted AI
// features: visitor Q&A grounded in portfolio text, profile-text refinement,
// message-reply drafting, and project-description suggestion. It only ever
// produces suggested text; nothing here writes portfolio state.
package assist

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// Assistant is a thin client over a single Gemini model.
type Assistant struct {
	client *genai.Client
	model  string
}

// New creates an Assistant using the given API key and model name.
func New(ctx context.Context, apiKey, model string) (*Assistant, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("assist: init client: %w", err)
	}
	return &Assistant{client: client, model: model}, nil
}

// generate runs one completion, optionally with a system instruction.
func (a *Assistant) generate(ctx context.Context, prompt, system string) (string, error) {
	var cfg *genai.GenerateContentConfig
	if system != "" {
		cfg = &genai.GenerateContentConfig{
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: system}}},
		}
	}
	resp, err := a.client.Models.GenerateContent(ctx, a.model, genai.Text(prompt), cfg)
	if err != nil {
		return "", fmt.Errorf("assist: generate: %w", err)
	}
	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("assist: empty response")
	}
	return text, nil
}

// VisitorAnswer answers a visitor question grounded in the flattened
// portfolio text. portfolioContext is the owner's data rendered as plain
// key/value lines by the caller.
func (a *Assistant) VisitorAnswer(ctx context.Context, question, portfolioContext string) (string, error) {
	system := fmt.Sprintf(`You are an AI assistant for a personal portfolio website.
Here is the owner's data:
%s
Answer the following question about the owner as a helpful, professional assistant.
If you don't know the answer, politely ask the user to use the contact form.`, portfolioContext)
	return a.generate(ctx, question, system)
}

// RefineProfileText rewrites a bio or about-me text to be more professional.
// kind is "bio" or "about".
func (a *Assistant) RefineProfileText(ctx context.Context, text, kind string) (string, error) {
	prompt := fmt.Sprintf(`Refine the following %s text for a professional portfolio. Make it engaging, confident, and concise. Keep the length similar to the original: %q`, kind, text)
	return a.generate(ctx, prompt, "")
}

// DraftReply drafts a short, friendly email reply to a contact message.
func (a *Assistant) DraftReply(ctx context.Context, incoming, sender, ownerName, ownerRole string) (string, error) {
	prompt := fmt.Sprintf(`Draft a professional, friendly email reply to this message from %s: %q.
The reply should be from %s (%s).
Keep it under 100 words.`, sender, incoming, ownerName, ownerRole)
	return a.generate(ctx, prompt, "")
}

// ProjectSuggestion is a proposed project description and tech stack.
type ProjectSuggestion struct {
	Description string   `json:"description"`
	Tech        []string `json:"tech"`
}

// SuggestProject proposes a description and a tech stack for a project
// title. The model is asked for a fixed "Description: ... | Tech: ..."
// format which ParseSuggestion decodes.
func (a *Assistant) SuggestProject(ctx context.Context, title string) (ProjectSuggestion, error) {
	prompt := fmt.Sprintf(`Based on the project title %q, provide a 2-sentence professional description and a comma-separated list of 5 modern technologies that would likely be used to build it. Format the response exactly like this: Description: [Your description] | Tech: [Tech 1, Tech 2, ...]`, title)
	text, err := a.generate(ctx, prompt, "")
	if err != nil {
		return ProjectSuggestion{}, err
	}
	return ParseSuggestion(text), nil
}

// ParseSuggestion decodes the "Description: ... | Tech: a, b, c" response
// contract. Missing or malformed parts yield empty fields rather than an
// error; the operator reviews the result either way.
func ParseSuggestion(text string) ProjectSuggestion {
	descPart, techPart, _ := strings.Cut(text, "|")

	desc := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(descPart), "Description:"))
	desc = strings.Trim(desc, "[]")

	var tech []string
	raw := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(techPart), "Tech:"))
	raw = strings.Trim(raw, "[]")
	for _, t := range strings.Split(raw, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tech = append(tech, t)
		}
	}
	return ProjectSuggestion{Description: strings.TrimSpace(desc), Tech: tech}
}
