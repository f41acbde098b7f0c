package console

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/aaliyatanseeq-hub/events/internal/discovery"
	"github.com/aaliyatanseeq-hub/events/internal/export"
	"github.com/aaliyatanseeq-hub/events/internal/metrics"
	"github.com/aaliyatanseeq-hub/events/internal/models"
)

type fakeClient struct {
	eventsCalls    int
	attendeesCalls int
	eventsRes      *discovery.EventsResult
	attendeesRes   *discovery.AttendeesResult
	err            error

	// when set, called before returning so tests can interleave calls
	onEvents func()
}

func (f *fakeClient) DiscoverEvents(ctx context.Context, req discovery.EventsRequest) (*discovery.EventsResult, error) {
	f.eventsCalls++
	if f.onEvents != nil {
		f.onEvents()
	}
	return f.eventsRes, f.err
}

func (f *fakeClient) DiscoverAttendees(ctx context.Context, req discovery.AttendeesRequest) (*discovery.AttendeesResult, error) {
	f.attendeesCalls++
	return f.attendeesRes, f.err
}

func newController(client Discoverer) *Controller {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	m := metrics.New(prometheus.NewRegistry())
	return New(client, m, logger, 20, 30)
}

func eventsResult(n int) *discovery.EventsResult {
	events := make([]models.Event, n)
	for i := range events {
		events[i] = models.Event{EventName: "Event", Category: "music", ConfidenceScore: 0.8}
	}
	return &discovery.EventsResult{
		Events: events,
		Meta:   models.Metadata{Success: true, Total: n, APICallsUsed: 1, Subject: "Austin"},
	}
}

func attendeesResult(n int) *discovery.AttendeesResult {
	attendees := make([]models.Attendee, n)
	for i := range attendees {
		attendees[i] = models.Attendee{Username: "@a", EngagementType: "excited", PostContent: "hi", UserProfile: "#", PostLink: "#"}
	}
	return &discovery.AttendeesResult{
		Attendees: attendees,
		Meta:      models.Metadata{Success: true, Total: n, APICallsUsed: 1, Subject: "SXSW"},
	}
}

func validEventForm() EventForm {
	return EventForm{Location: "Austin", Categories: []string{"music"}, MaxResults: 5}
}

func TestDiscoverEventsSuccess(t *testing.T) {
	client := &fakeClient{eventsRes: eventsResult(3)}
	c := newController(client)

	if err := c.DiscoverEvents(context.Background(), validEventForm()); err != nil {
		t.Fatal(err)
	}

	page := c.Page()
	if len(page.EventRows) != 3 {
		t.Errorf("got %d rows, want 3", len(page.EventRows))
	}
	if len(page.EventOptions) != 3 {
		t.Errorf("dropdown: got %d options, want 3", len(page.EventOptions))
	}
	if page.Banner == nil || page.Banner.Level != BannerSuccess {
		t.Errorf("banner: %+v", page.Banner)
	}
	if page.Loading {
		t.Error("loading indicator must be dismissed after success")
	}
	if c.State() != StateIdle {
		t.Errorf("state: got %s, want idle", c.State())
	}
}

func TestDiscoverEventsValidationShortCircuit(t *testing.T) {
	client := &fakeClient{eventsRes: eventsResult(1)}
	c := newController(client)

	err := c.DiscoverEvents(context.Background(), EventForm{Location: "", Categories: nil})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if client.eventsCalls != 0 {
		t.Errorf("network call issued on validation failure: %d calls", client.eventsCalls)
	}
	if c.State() != StateIdle {
		t.Errorf("state: got %s, want idle", c.State())
	}
	page := c.Page()
	if page.Banner == nil || page.Banner.Level != BannerError {
		t.Errorf("banner: %+v", page.Banner)
	}
}

func TestDiscoverAttendeesValidationShortCircuit(t *testing.T) {
	client := &fakeClient{attendeesRes: attendeesResult(1)}
	c := newController(client)

	if err := c.DiscoverAttendees(context.Background(), AttendeeForm{}); err == nil {
		t.Fatal("expected validation error")
	}
	if client.attendeesCalls != 0 {
		t.Error("network call issued with no event selected and no manual text")
	}
}

func TestDiscoverEventsRejectsMalformedDates(t *testing.T) {
	client := &fakeClient{eventsRes: eventsResult(1)}
	c := newController(client)

	form := validEventForm()
	form.StartDate = "03/13/2026"
	if err := c.DiscoverEvents(context.Background(), form); err == nil {
		t.Fatal("expected date validation error")
	}
	if client.eventsCalls != 0 {
		t.Error("network call issued with malformed dates")
	}
}

func TestAttendeeFormManualTakesPrecedence(t *testing.T) {
	f := AttendeeForm{EventSelect: "From Dropdown", EventManual: "Typed In"}
	if f.EventName() != "Typed In" {
		t.Errorf("EventName: got %q, want manual entry", f.EventName())
	}
	f.EventManual = ""
	if f.EventName() != "From Dropdown" {
		t.Errorf("EventName: got %q, want dropdown value", f.EventName())
	}
}

func TestDiscoverEventsFailureKeepsPriorResults(t *testing.T) {
	client := &fakeClient{eventsRes: eventsResult(2)}
	c := newController(client)
	if err := c.DiscoverEvents(context.Background(), validEventForm()); err != nil {
		t.Fatal(err)
	}
	c.Page() // consume the success banner

	client.eventsRes = nil
	client.err = &discovery.UpstreamError{Status: 500, Message: "engine offline"}
	if err := c.DiscoverEvents(context.Background(), validEventForm()); err == nil {
		t.Fatal("expected upstream error")
	}

	page := c.Page()
	if page.Banner == nil || page.Banner.Message != "engine offline" {
		t.Errorf("server message should surface verbatim, got %+v", page.Banner)
	}
	if len(page.EventRows) != 2 {
		t.Errorf("prior results lost on error: %d rows", len(page.EventRows))
	}
	if page.Loading {
		t.Error("loading indicator must be dismissed after error")
	}
}

func TestTransportErrorGetsGenericBanner(t *testing.T) {
	client := &fakeClient{err: errors.New("dial tcp: connection refused")}
	c := newController(client)

	if err := c.DiscoverEvents(context.Background(), validEventForm()); err == nil {
		t.Fatal("expected error")
	}
	page := c.Page()
	if page.Banner == nil || page.Banner.Message == "dial tcp: connection refused" {
		t.Errorf("transport detail must not reach the banner: %+v", page.Banner)
	}
}

func TestStaleResponseDiscarded(t *testing.T) {
	client := &fakeClient{eventsRes: eventsResult(1)}
	c := newController(client)

	// While the first call is in flight, a second call is issued and
	// completes; the first call's response must then be discarded.
	first := true
	client.onEvents = func() {
		if first {
			first = false
			inner := &fakeClient{eventsRes: eventsResult(5)}
			c.client = inner
			if err := c.DiscoverEvents(context.Background(), validEventForm()); err != nil {
				t.Fatal(err)
			}
			c.client = client
		}
	}

	if err := c.DiscoverEvents(context.Background(), validEventForm()); err != nil {
		t.Fatal(err)
	}

	page := c.Page()
	if len(page.EventRows) != 5 {
		t.Errorf("stale response overwrote newer state: got %d rows, want 5", len(page.EventRows))
	}
}

func TestCollectionsReplacedWholesale(t *testing.T) {
	client := &fakeClient{attendeesRes: attendeesResult(4)}
	c := newController(client)
	if err := c.DiscoverAttendees(context.Background(), AttendeeForm{EventManual: "SXSW"}); err != nil {
		t.Fatal(err)
	}

	client.attendeesRes = attendeesResult(2)
	if err := c.DiscoverAttendees(context.Background(), AttendeeForm{EventManual: "SXSW"}); err != nil {
		t.Fatal(err)
	}

	page := c.Page()
	if len(page.AttendeeRows) != 2 {
		t.Errorf("collection merged instead of replaced: %d rows", len(page.AttendeeRows))
	}
}

func TestToggleCard(t *testing.T) {
	client := &fakeClient{attendeesRes: attendeesResult(8)}
	c := newController(client)
	if err := c.DiscoverAttendees(context.Background(), AttendeeForm{EventManual: "SXSW"}); err != nil {
		t.Fatal(err)
	}

	page := c.Page()
	if len(page.AttendeeCards) != 6 {
		t.Fatalf("got %d cards, want 6", len(page.AttendeeCards))
	}
	for _, card := range page.AttendeeCards {
		if card.Expanded {
			t.Errorf("card %d should start collapsed", card.Index)
		}
	}

	if err := c.ToggleCard(2); err != nil {
		t.Fatal(err)
	}
	if !c.Page().AttendeeCards[2].Expanded {
		t.Error("card 2 should be expanded after toggle")
	}
	if err := c.ToggleCard(2); err != nil {
		t.Fatal(err)
	}
	if c.Page().AttendeeCards[2].Expanded {
		t.Error("card 2 should collapse on second toggle")
	}

	if err := c.ToggleCard(6); err == nil {
		t.Error("toggling beyond the card cap must fail")
	}
	if err := c.ToggleCard(-1); err == nil {
		t.Error("negative index must fail")
	}
}

func TestCardsResetOnNewResults(t *testing.T) {
	client := &fakeClient{attendeesRes: attendeesResult(3)}
	c := newController(client)
	if err := c.DiscoverAttendees(context.Background(), AttendeeForm{EventManual: "SXSW"}); err != nil {
		t.Fatal(err)
	}
	if err := c.ToggleCard(0); err != nil {
		t.Fatal(err)
	}

	if err := c.DiscoverAttendees(context.Background(), AttendeeForm{EventManual: "SXSW"}); err != nil {
		t.Fatal(err)
	}
	if c.Page().AttendeeCards[0].Expanded {
		t.Error("expansion state must reset when the collection is replaced")
	}
}

func TestExportEmptyCollection(t *testing.T) {
	c := newController(&fakeClient{})

	file, err := c.Export("events", export.FormatCSV)
	if !errors.Is(err, export.ErrNoRecords) {
		t.Fatalf("got %v, want ErrNoRecords", err)
	}
	if file != nil {
		t.Error("no file may be produced for an empty collection")
	}
	page := c.Page()
	if page.Banner == nil || page.Banner.Level != BannerWarning {
		t.Errorf("banner: %+v", page.Banner)
	}
	if page.Banner != nil && page.Banner.Message != "Nothing to export yet. Run a discovery first." {
		t.Errorf("banner message: %q", page.Banner.Message)
	}
}

func TestExportCurrentCollection(t *testing.T) {
	client := &fakeClient{eventsRes: eventsResult(2)}
	c := newController(client)
	if err := c.DiscoverEvents(context.Background(), validEventForm()); err != nil {
		t.Fatal(err)
	}

	file, err := c.Export("events", export.FormatJSON)
	if err != nil {
		t.Fatal(err)
	}
	if file.ContentType != "application/json" {
		t.Errorf("content type: got %q", file.ContentType)
	}
	if len(file.Data) == 0 {
		t.Error("empty export payload")
	}
}

func TestBannerIsFlashScoped(t *testing.T) {
	client := &fakeClient{eventsRes: eventsResult(1)}
	c := newController(client)
	if err := c.DiscoverEvents(context.Background(), validEventForm()); err != nil {
		t.Fatal(err)
	}

	if c.Page().Banner == nil {
		t.Fatal("first render should carry the banner")
	}
	if c.Page().Banner != nil {
		t.Error("second render must not replay the banner")
	}
}

func TestSetPhase(t *testing.T) {
	c := newController(&fakeClient{})
	if err := c.SetPhase(PhaseAttendees); err != nil {
		t.Fatal(err)
	}
	if got := c.Page().Phase; got != PhaseAttendees {
		t.Errorf("phase: got %s", got)
	}
	if err := c.SetPhase(Phase("settings")); err == nil {
		t.Error("unknown phase must be rejected")
	}
}
