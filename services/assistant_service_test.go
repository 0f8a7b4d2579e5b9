// File: /services/assistant_service_test.go
package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"campushub-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGenerator struct {
	response   string
	err        error
	lastPrompt string
}

func (f *fakeGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	f.lastPrompt = prompt
	return f.response, f.err
}

func (f *fakeGenerator) GenerateJSON(ctx context.Context, prompt string) (string, error) {
	f.lastPrompt = prompt
	return f.response, f.err
}

func TestAnswerQuestion_TemplatesEventsIntoPrompt(t *testing.T) {
	gen := &fakeGenerator{response: "  The hackathon is on Friday.  "}
	svc := NewAssistantService(gen)

	events := []models.Event{
		{Title: "Campus Hackathon", Description: "24h build", Venue: "Grand Hall", Location: "Main Campus", Date: time.Date(2026, 10, 2, 18, 0, 0, 0, time.UTC)},
	}

	answer, err := svc.AnswerQuestion(context.Background(), "When is the hackathon?", events)
	require.NoError(t, err)
	assert.Equal(t, "The hackathon is on Friday.", answer)

	assert.Contains(t, gen.lastPrompt, "Campus Hackathon")
	assert.Contains(t, gen.lastPrompt, "Grand Hall")
	assert.Contains(t, gen.lastPrompt, "When is the hackathon?")
}

func TestAnswerQuestion_PropagatesGeneratorError(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("quota exceeded")}
	svc := NewAssistantService(gen)

	_, err := svc.AnswerQuestion(context.Background(), "anything", nil)
	require.Error(t, err)
}

func TestDraftEvent_ParsesStructuredResponse(t *testing.T) {
	gen := &fakeGenerator{response: `{
		"title": "AI Study Group",
		"description": "Weekly deep learning reading group",
		"venue": "Library Room 4B",
		"location": "North Campus",
		"date": "2026-09-04T17:30",
		"type": "college",
		"map_link": null,
		"registration_link": null
	}`}
	svc := NewAssistantService(gen)

	draft, err := svc.DraftEvent(context.Background(), "study group next friday at the library", time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	assert.Equal(t, "AI Study Group", draft.Title)
	assert.Equal(t, "Library Room 4B", draft.Venue)
	assert.Equal(t, models.EventTypeCollege, draft.Type)
	assert.Equal(t, "2026-09-04T17:30", draft.RawDate)
	assert.Equal(t, time.Date(2026, 9, 4, 17, 30, 0, 0, time.UTC), draft.Date)

	// The current date is in the prompt for relative date resolution
	assert.Contains(t, gen.lastPrompt, "2026-08-28")
}

func TestDraftEvent_StripsCodeFences(t *testing.T) {
	gen := &fakeGenerator{response: "```json\n{\"title\":\"Jazz Night\",\"description\":\"\",\"venue\":\"Quad\",\"location\":\"Campus\",\"date\":\"2026-09-10T20:00\",\"type\":\"other\"}\n```"}
	svc := NewAssistantService(gen)

	draft, err := svc.DraftEvent(context.Background(), "jazz night", time.Now())
	require.NoError(t, err)
	assert.Equal(t, "Jazz Night", draft.Title)
}

func TestDraftEvent_UnknownTypeFallsBackToOther(t *testing.T) {
	gen := &fakeGenerator{response: `{"title":"Picnic","description":"","venue":"Park","location":"Town","date":"2026-09-12T11:00","type":"community"}`}
	svc := NewAssistantService(gen)

	draft, err := svc.DraftEvent(context.Background(), "picnic", time.Now())
	require.NoError(t, err)
	assert.Equal(t, models.EventTypeOther, draft.Type)
}

func TestDraftEvent_RejectsUnparseableResponses(t *testing.T) {
	svc := NewAssistantService(&fakeGenerator{response: "sorry, I can't help with that"})
	_, err := svc.DraftEvent(context.Background(), "something", time.Now())
	require.Error(t, err)

	svc = NewAssistantService(&fakeGenerator{response: `{"title":"","date":"2026-09-12T11:00"}`})
	_, err = svc.DraftEvent(context.Background(), "something", time.Now())
	require.Error(t, err)

	svc = NewAssistantService(&fakeGenerator{response: `{"title":"X","date":"next friday"}`})
	_, err = svc.DraftEvent(context.Background(), "something", time.Now())
	require.Error(t, err)
}

func TestRecommendEvents_ParsesRecommendations(t *testing.T) {
	gen := &fakeGenerator{response: `{"recommendations":[{"title":"Campus Hackathon","reason":"You attended two tech events."}]}`}
	svc := NewAssistantService(gen)

	user := &models.User{Name: "Alex", EventsAttended: 2, Badges: models.StringSlice{BadgeFirstRSVP}}
	events := []models.Event{{Title: "Campus Hackathon", Category: "Tech", Venue: "Grand Hall", Location: "Main", Date: time.Now()}}

	recs, err := svc.RecommendEvents(context.Background(), user, events)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "Campus Hackathon", recs[0].Title)
}

func TestRecommendEvents_NoUpcomingEvents(t *testing.T) {
	gen := &fakeGenerator{response: "should never be called"}
	svc := NewAssistantService(gen)

	recs, err := svc.RecommendEvents(context.Background(), &models.User{}, nil)
	require.NoError(t, err)
	assert.Empty(t, recs)
	assert.Empty(t, gen.lastPrompt)
}
