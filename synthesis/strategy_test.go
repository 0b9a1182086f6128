package synthesis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kairoplan/schedule-ai/apperrors"
	"kairoplan/schedule-ai/telemetry"
	"kairoplan/schedule-ai/types"
)

// fixedNow is a Wednesday; the target week is Mon Jan 12 - Mon Jan 19.
var fixedNow = time.Date(2026, 1, 7, 14, 30, 0, 0, time.UTC)

type fakeStore struct {
	locked []types.CalendarEvent
}

func (f *fakeStore) RecentActivities(string, time.Time) ([]types.ActivityRecord, error) {
	return nil, nil
}

func (f *fakeStore) RecentCodingSessions(string, time.Time) ([]types.CodingSessionRecord, error) {
	return nil, nil
}

func (f *fakeStore) RecentArtifacts(string, time.Time) ([]types.EngineeringArtifact, error) {
	return nil, nil
}

func (f *fakeStore) CalendarEventsBetween(string, time.Time, time.Time) ([]types.CalendarEvent, error) {
	return f.locked, nil
}

func (f *fakeStore) UserProjects(string, int) ([]types.Project, error) {
	return nil, nil
}

func (f *fakeStore) Settings(userID string) (types.UserSettings, error) {
	return types.DefaultUserSettings(userID), nil
}

// fakeCompleter routes on the system prompt: the draft stage gets a
// canned array, the detail stage a canned object, and the refine stage
// echoes its input back (a well-behaved refinement).
type fakeCompleter struct {
	mu sync.Mutex

	draftResponse  string
	refineResponse string // empty means echo the user payload
	failDetailFor  string
	detailCalls    int
}

func (f *fakeCompleter) Complete(_ context.Context, system, user string) (string, error) {
	switch {
	case strings.Contains(system, "recommended calendar schedule"):
		return f.draftResponse, nil

	case strings.Contains(system, "elaborating a single planned calendar task"):
		f.mu.Lock()
		f.detailCalls++
		f.mu.Unlock()
		if f.failDetailFor != "" && strings.Contains(user, f.failDetailFor) {
			return "", fmt.Errorf("%w: model overloaded", apperrors.ErrLLMInvocation)
		}
		return `{"description":"what and why","steps":"1. prepare\n2. execute","background":"prior art","challenges":"unknown scope"}`, nil

	case strings.Contains(system, "reviewing a full week"):
		if f.refineResponse != "" {
			return f.refineResponse, nil
		}
		return user, nil
	}
	return "", errors.New("unexpected system prompt")
}

type fakeRetriever struct {
	queries []string
	mu      sync.Mutex
}

func (f *fakeRetriever) Search(_ context.Context, query string, _ int) []types.RetrievedChunk {
	f.mu.Lock()
	f.queries = append(f.queries, query)
	f.mu.Unlock()
	return []types.RetrievedChunk{{Content: "related past work"}}
}

type fakeWriter struct {
	userID string
	events []types.SuggestedEvent
	calls  int
}

func (f *fakeWriter) InsertSuggestedEvents(userID string, events []types.SuggestedEvent) ([]types.SuggestedEvent, error) {
	f.calls++
	f.userID = userID
	f.events = events

	out := make([]types.SuggestedEvent, len(events))
	for i, ev := range events {
		ev.ID = fmt.Sprintf("sugg-%d", i+1)
		ev.UserID = userID
		out[i] = ev
	}
	return out, nil
}

func testStrategy(completer *fakeCompleter, store *fakeStore) (*MultiStageStrategy, *fakeWriter, *fakeRetriever) {
	writer := &fakeWriter{}
	retriever := &fakeRetriever{}
	return &MultiStageStrategy{
		Aggregator: &telemetry.Aggregator{Store: store},
		Retriever:  retriever,
		Completer:  completer,
		Writer:     writer,
		Now:        func() time.Time { return fixedNow },
	}, writer, retriever
}

const twoDrafts = `[
  {"title":"Deep work on parser","suggestedStartTime":"2026-01-12T09:00:00Z","suggestedEndTime":"2026-01-12T11:00:00Z","priority":1,"relatedProjectId":null},
  {"title":"Review open pull requests","suggestedStartTime":"2026-01-13T10:00:00Z","suggestedEndTime":"2026-01-13T11:30:00Z","priority":3,"relatedProjectId":null}
]`

func TestGenerateWeek_HappyPath(t *testing.T) {
	completer := &fakeCompleter{draftResponse: twoDrafts}
	strategy, writer, retriever := testStrategy(completer, &fakeStore{})

	got, err := strategy.GenerateWeek(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, 1, writer.calls)
	assert.Equal(t, "user-1", writer.userID)
	assert.Len(t, retriever.queries, 2)
	assert.Equal(t, 2, completer.detailCalls)

	for _, ev := range got {
		assert.NotEmpty(t, ev.ID)
		assert.Equal(t, types.SuggestionPending, ev.Status)
		assert.Equal(t, "what and why", ev.Description)
		assert.NotEmpty(t, ev.Steps)
		assert.NotEmpty(t, ev.Background)
		assert.NotEmpty(t, ev.Challenges)
	}
}

func TestGenerateWeek_ProseDraftFailsRun(t *testing.T) {
	completer := &fakeCompleter{
		draftResponse: "Here is a schedule I would recommend for next week: start Monday with deep work.",
	}
	strategy, writer, _ := testStrategy(completer, &fakeStore{})

	got, err := strategy.GenerateWeek(context.Background(), "user-1")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrLLMOutputParse)
	assert.Nil(t, got)
	assert.Zero(t, writer.calls, "nothing may be persisted from an unreadable draft")
}

func TestGenerateWeek_DetailFailureDropsOnlyThatTask(t *testing.T) {
	completer := &fakeCompleter{
		draftResponse: twoDrafts,
		failDetailFor: "Review open pull requests",
	}
	strategy, writer, _ := testStrategy(completer, &fakeStore{})

	got, err := strategy.GenerateWeek(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Deep work on parser", got[0].Title)
	assert.Equal(t, 1, writer.calls)
}

func TestGenerateWeek_RefineFailureKeepsDetailedList(t *testing.T) {
	completer := &fakeCompleter{
		draftResponse:  twoDrafts,
		refineResponse: "I'm sorry, I can't restructure this schedule.",
	}
	strategy, _, _ := testStrategy(completer, &fakeStore{})

	got, err := strategy.GenerateWeek(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	// Pre-refinement details survive the fallback.
	assert.Equal(t, "what and why", got[0].Description)
}

func TestGenerateWeek_ValidationFiltersConflicts(t *testing.T) {
	locked := []types.CalendarEvent{{
		Title:     "architecture review",
		StartTime: time.Date(2026, 1, 12, 10, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2026, 1, 12, 11, 0, 0, 0, time.UTC),
	}}
	completer := &fakeCompleter{draftResponse: twoDrafts}
	strategy, writer, _ := testStrategy(completer, &fakeStore{locked: locked})

	got, err := strategy.GenerateWeek(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Review open pull requests", got[0].Title)
	assert.Equal(t, 1, writer.calls, "an empty or reduced survivor set is still persisted")
}
