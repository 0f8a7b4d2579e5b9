// File: /services/assistant_service.go
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"campushub-api/models"
	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// TextGenerator is the model behind the assistant. Errors propagate to the
// caller unchanged; the assistant adds no retry or backoff of its own.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
	GenerateJSON(ctx context.Context, prompt string) (string, error)
}

// GeminiGenerator implements TextGenerator against the Gemini API.
type GeminiGenerator struct {
	client *genai.Client
	model  string
}

func NewGeminiGenerator(ctx context.Context, apiKey, model string) (*GeminiGenerator, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &GeminiGenerator{client: client, model: model}, nil
}

func (g *GeminiGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	model := g.client.GenerativeModel(g.model)
	return g.generate(ctx, model, prompt)
}

func (g *GeminiGenerator) GenerateJSON(ctx context.Context, prompt string) (string, error) {
	model := g.client.GenerativeModel(g.model)
	model.ResponseMIMEType = "application/json"
	return g.generate(ctx, model, prompt)
}

func (g *GeminiGenerator) generate(ctx context.Context, model *genai.GenerativeModel, prompt string) (string, error) {
	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("model returned an empty response")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	return sb.String(), nil
}

func (g *GeminiGenerator) Close() error {
	return g.client.Close()
}

// EventDraft is the structured event data the assistant extracts from free
// text. Date is the parsed schedule; RawDate keeps the model's original
// 'YYYY-MM-DDTHH:mm' string for clients that prefill form inputs with it.
type EventDraft struct {
	Title            string    `json:"title"`
	Description      string    `json:"description"`
	Venue            string    `json:"venue"`
	Location         string    `json:"location"`
	RawDate          string    `json:"raw_date"`
	Date             time.Time `json:"date"`
	Type             string    `json:"type"`
	MapLink          *string   `json:"map_link,omitempty"`
	RegistrationLink *string   `json:"registration_link,omitempty"`
}

// Recommendation is one suggested event for a user.
type Recommendation struct {
	Title  string `json:"title"`
	Reason string `json:"reason"`
}

// AssistantService wraps the campus assistant flows: event Q&A, drafting an
// event from unstructured text, and per-user recommendations.
type AssistantService struct {
	generator TextGenerator
}

func NewAssistantService(generator TextGenerator) *AssistantService {
	return &AssistantService{generator: generator}
}

// AnswerQuestion answers a campus question with the current event list
// templated into the prompt.
func (s *AssistantService) AnswerQuestion(ctx context.Context, question string, events []models.Event) (string, error) {
	var sb strings.Builder
	sb.WriteString("You are a helpful chatbot for a university campus. Your role is to answer questions about campus resources and events.\n\n")
	sb.WriteString("You have been provided with a list of current events. Use this list to answer any questions about what's happening on campus.\n\n")
	sb.WriteString("If the user asks a general question not related to the events, answer it based on your general knowledge of campus resources.\n\n")

	if len(events) == 0 {
		sb.WriteString("No events are currently scheduled.\n")
	} else {
		sb.WriteString("Current Events Data:\n")
		for _, event := range events {
			sb.WriteString(fmt.Sprintf("- Title: %s\n", event.Title))
			sb.WriteString(fmt.Sprintf("  Description: %s\n", event.Description))
			sb.WriteString(fmt.Sprintf("  Location: %s, %s\n", event.Venue, event.Location))
			sb.WriteString(fmt.Sprintf("  Date: %s\n", event.Date.Format(time.RFC3339)))
			if event.MapLink != nil && *event.MapLink != "" {
				sb.WriteString(fmt.Sprintf("  Map: %s\n", *event.MapLink))
			}
			if event.RegistrationLink != nil && *event.RegistrationLink != "" {
				sb.WriteString(fmt.Sprintf("  Registration: %s\n", *event.RegistrationLink))
			}
		}
	}

	sb.WriteString(fmt.Sprintf("\nQuestion: %s\n", question))

	answer, err := s.generator.Generate(ctx, sb.String())
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(answer), nil
}

type eventDraftResponse struct {
	Title            string  `json:"title"`
	Description      string  `json:"description"`
	Venue            string  `json:"venue"`
	Location         string  `json:"location"`
	Date             string  `json:"date"`
	Type             string  `json:"type"`
	MapLink          *string `json:"map_link"`
	RegistrationLink *string `json:"registration_link"`
}

// DraftEvent extracts structured event data from free text. The current date
// is supplied so the model can resolve relative dates like "next Friday".
func (s *AssistantService) DraftEvent(ctx context.Context, text string, now time.Time) (*EventDraft, error) {
	prompt := fmt.Sprintf(`You are an expert event planner's assistant. Your task is to extract structured event information from a block of text.

Today's date is %s. Use this to correctly interpret relative dates (e.g., "tomorrow", "next Friday").

From the following text, extract the event's title, a detailed description, the specific venue (e.g., "Library Room 4B", "Grand Hall"), the city or campus area (location), the full date and time, a map link if provided, a registration link if provided, and the event type.

If the event sounds like it's specifically for college students or happening on a campus, classify its type as 'college'. For all other events, classify the type as 'other'.

Respond with a single JSON object with the keys: title, description, venue, location, date, type, map_link, registration_link. The 'date' value MUST be in the format 'YYYY-MM-DDTHH:mm'.

Event Text:
"%s"`, now.Format("2006-01-02"), text)

	raw, err := s.generator.GenerateJSON(ctx, prompt)
	if err != nil {
		return nil, err
	}

	var parsed eventDraftResponse
	if err := json.Unmarshal([]byte(stripCodeFences(raw)), &parsed); err != nil {
		return nil, fmt.Errorf("parse event draft: %w", err)
	}
	if parsed.Title == "" {
		return nil, fmt.Errorf("event draft is missing a title")
	}

	date, err := time.Parse("2006-01-02T15:04", parsed.Date)
	if err != nil {
		return nil, fmt.Errorf("parse event draft date %q: %w", parsed.Date, err)
	}

	eventType := parsed.Type
	if !models.IsValidEventType(eventType) {
		eventType = models.EventTypeOther
	}

	return &EventDraft{
		Title:            parsed.Title,
		Description:      parsed.Description,
		Venue:            parsed.Venue,
		Location:         parsed.Location,
		RawDate:          parsed.Date,
		Date:             date,
		Type:             eventType,
		MapLink:          parsed.MapLink,
		RegistrationLink: parsed.RegistrationLink,
	}, nil
}

type recommendationsResponse struct {
	Recommendations []Recommendation `json:"recommendations"`
}

// RecommendEvents ranks upcoming events for the user based on their
// attendance history.
func (s *AssistantService) RecommendEvents(ctx context.Context, user *models.User, events []models.Event) ([]Recommendation, error) {
	if len(events) == 0 {
		return []Recommendation{}, nil
	}

	var sb strings.Builder
	sb.WriteString("You recommend campus events to students. Pick up to 3 of the following upcoming events for this student and give a one-sentence reason for each.\n\n")
	sb.WriteString(fmt.Sprintf("Student: %s, events attended so far: %d, badges: %s\n\n", user.Name, user.EventsAttended, strings.Join(user.Badges, ", ")))
	sb.WriteString("Upcoming events:\n")
	for _, event := range events {
		sb.WriteString(fmt.Sprintf("- %s (%s) at %s, %s on %s\n",
			event.Title, event.Category, event.Venue, event.Location, event.Date.Format("2006-01-02 15:04")))
	}
	sb.WriteString("\nRespond with a single JSON object: {\"recommendations\": [{\"title\": ..., \"reason\": ...}]}. Titles must match the list exactly.\n")

	raw, err := s.generator.GenerateJSON(ctx, sb.String())
	if err != nil {
		return nil, err
	}

	var parsed recommendationsResponse
	if err := json.Unmarshal([]byte(stripCodeFences(raw)), &parsed); err != nil {
		return nil, fmt.Errorf("parse recommendations: %w", err)
	}
	if parsed.Recommendations == nil {
		return []Recommendation{}, nil
	}
	return parsed.Recommendations, nil
}

// stripCodeFences removes a surrounding markdown code fence, which some model
// responses wrap around JSON even when asked not to.
func stripCodeFences(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(trimmed, "```")
	return strings.TrimSpace(trimmed)
}
