package orchestrator

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/h2non/gock"
	"go.uber.org/zap/zaptest"

	"github.com/goliatone/go-signup/pkg/client"
	"github.com/goliatone/go-signup/pkg/model"
)

const transportBaseURL = "http://signup.test"

func newHTTPTransport(t *testing.T) *client.Client {
	t.Helper()
	httpClient := &http.Client{}
	gock.InterceptClient(httpClient)
	t.Cleanup(func() {
		gock.RestoreClient(httpClient)
		gock.Off()
	})
	return client.New(
		client.WithBaseURL(transportBaseURL),
		client.WithHTTPClient(httpClient),
		client.WithLogger(zaptest.NewLogger(t)),
	)
}

func TestSubmitOverHTTP_ProfileFailureHalts(t *testing.T) {
	transport := newHTTPTransport(t)
	gock.New(transportBaseURL).
		Get("/photos/3").
		ReplyError(errors.New("connection refused"))

	state := filledState(t)
	o := newOrchestrator(t, state, transport, transport)

	outcome, err := o.Submit(context.Background())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if outcome.Status != StatusHalted || outcome.Record != nil {
		t.Fatalf("expected halted outcome without record, got %#v", outcome)
	}
	if gock.HasUnmatchedRequest() {
		t.Fatalf("no user creation request expected, got %d unmatched", len(gock.GetUnmatchedRequests()))
	}
	if !gock.IsDone() {
		t.Fatalf("expected profile request to be issued")
	}
	if state.Pristine() || state.Value(model.FieldEmail) != "john@example.com" {
		t.Fatalf("form must not be reset after a halt, got %v", state.Values())
	}
	if o.Current() != StateIdle {
		t.Fatalf("expected idle, got %s", o.Current())
	}
}

func TestSubmitOverHTTP_CreationFailureStillResets(t *testing.T) {
	transport := newHTTPTransport(t)
	gock.New(transportBaseURL).
		Get("/photos/3").
		Reply(200).
		JSON(map[string]any{"id": 3, "thumbnailUrl": "https://example.com/image.jpg"})
	gock.New(transportBaseURL).
		Post("/users").
		MatchType("json").
		JSON(map[string]any{
			"firstName":    "John",
			"lastName":     "Doe",
			"email":        "john@example.com",
			"thumbnailUrl": "https://example.com/image.jpg",
		}).
		Reply(500)

	state := filledState(t)
	o := newOrchestrator(t, state, transport, transport)

	outcome, err := o.Submit(context.Background())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if outcome.Status != StatusCompleted {
		t.Fatalf("expected completed outcome, got %s", outcome.Status)
	}
	if outcome.Result.StatusCode != 0 || outcome.Result.Body != nil {
		t.Fatalf("expected neutral result for a failed creation, got %#v", outcome.Result)
	}
	if !gock.IsDone() {
		t.Fatalf("expected both requests to be issued")
	}
	if !state.Pristine() {
		t.Fatalf("expected form state to be reset, got %v", state.Values())
	}
}
