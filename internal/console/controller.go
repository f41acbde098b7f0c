// Package console owns all view state for the discovery console: the two
// record collections, the active phase, per-card expansion, the transient
// banner, and the in-flight call bookkeeping. State lives in one Controller
// struct passed around explicitly; there are no package-level collections.
package console

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/aaliyatanseeq-hub/events/internal/discovery"
	"github.com/aaliyatanseeq-hub/events/internal/export"
	"github.com/aaliyatanseeq-hub/events/internal/metrics"
	"github.com/aaliyatanseeq-hub/events/internal/models"
	"github.com/aaliyatanseeq-hub/events/internal/render"
)

type Phase string

const (
	PhaseEvents    Phase = "events"
	PhaseAttendees Phase = "attendees"
)

// CallState is the per-call lifecycle. Success and error are momentary:
// every call path lands back on idle before the handler returns.
type CallState string

const (
	StateIdle    CallState = "idle"
	StateLoading CallState = "loading"
)

type BannerLevel string

const (
	BannerSuccess BannerLevel = "success"
	BannerError   BannerLevel = "error"
	BannerWarning BannerLevel = "warning"
)

// Banner is a transient alert. It is consumed by the next page render
// (flash semantics) and the template auto-hides it after a fixed interval.
type Banner struct {
	Level   BannerLevel
	Message string
}

// Discoverer is the upstream client surface the controller depends on.
type Discoverer interface {
	DiscoverEvents(ctx context.Context, req discovery.EventsRequest) (*discovery.EventsResult, error)
	DiscoverAttendees(ctx context.Context, req discovery.AttendeesRequest) (*discovery.AttendeesResult, error)
}

// EventForm is the event-discovery form. Dates default to today → +30 days
// when left blank; max results is clamped to [1, maxEvents].
type EventForm struct {
	Location   string   `form:"location" binding:"required"`
	StartDate  string   `form:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate    string   `form:"end_date" validate:"omitempty,datetime=2006-01-02"`
	Categories []string `form:"categories" binding:"required,min=1"`
	MaxResults int      `form:"max_results"`
}

// AttendeeForm is the attendee-discovery form. Manual entry takes precedence
// over the dropdown selection when both are present.
type AttendeeForm struct {
	EventSelect string `form:"event_select"`
	EventManual string `form:"event_manual"`
	MaxResults  int    `form:"max_results"`
}

// EventName resolves the dropdown/free-text precedence.
func (f AttendeeForm) EventName() string {
	if f.EventManual != "" {
		return f.EventManual
	}
	return f.EventSelect
}

var (
	errMissingEventFields    = errors.New("please enter a location and select at least one category")
	errMissingAttendeeFields = errors.New("please select an event or enter an event name")
	errBadDateFormat         = errors.New("invalid date format, use YYYY-MM-DD")
)

type Controller struct {
	client  Discoverer
	metrics *metrics.Metrics
	logger  *slog.Logger

	maxEvents    int
	maxAttendees int

	mu           sync.Mutex
	phase        Phase
	state        CallState
	banner       *Banner
	events       []models.Event
	eventsMeta   models.Metadata
	eventOptions []string
	attendees    []models.Attendee
	attendeeMeta models.Metadata
	cardExpanded []bool

	// Latest issued call ID per kind. A completion whose ID no longer
	// matches was superseded by a newer call and is discarded, so stale
	// responses can never overwrite newer state.
	latestEventsCall    uuid.UUID
	latestAttendeesCall uuid.UUID

	eventsCallsUsed    int
	attendeesCallsUsed int

	now func() time.Time
}

func New(client Discoverer, m *metrics.Metrics, logger *slog.Logger, maxEvents, maxAttendees int) *Controller {
	return &Controller{
		client:       client,
		metrics:      m,
		logger:       logger,
		maxEvents:    maxEvents,
		maxAttendees: maxAttendees,
		phase:        PhaseEvents,
		state:        StateIdle,
		now:          time.Now,
	}
}

// DiscoverEvents runs one event discovery cycle. Validation failures stay in
// idle and never issue a network call. The loading state is dismissed on
// every exit path.
func (c *Controller) DiscoverEvents(ctx context.Context, form EventForm) error {
	if form.Location == "" || len(form.Categories) == 0 {
		c.reject(PhaseEvents, errMissingEventFields)
		return errMissingEventFields
	}
	if err := models.Validate.Struct(form); err != nil {
		c.reject(PhaseEvents, errBadDateFormat)
		return errBadDateFormat
	}

	start, end := form.StartDate, form.EndDate
	if start == "" {
		start = c.now().Format("2006-01-02")
	}
	if end == "" {
		end = c.now().AddDate(0, 0, 30).Format("2006-01-02")
	}

	req := discovery.EventsRequest{
		Location:   form.Location,
		StartDate:  start,
		EndDate:    end,
		Categories: form.Categories,
		MaxResults: clamp(form.MaxResults, 1, c.maxEvents),
	}

	callID := c.begin(&c.latestEventsCall)
	res, err := c.client.DiscoverEvents(ctx, req)

	c.mu.Lock()
	defer c.mu.Unlock()
	defer func() { c.state = StateIdle }()

	if c.latestEventsCall != callID {
		c.logger.Warn("discarding stale event discovery response", "location", form.Location)
		c.metrics.DiscoveryCalls.WithLabelValues("events", "stale").Inc()
		return nil
	}
	if err != nil {
		c.fail("events", err)
		return err
	}

	c.events = res.Events
	c.eventsMeta = res.Meta
	c.eventsCallsUsed += res.Meta.APICallsUsed
	c.eventOptions = eventNames(res.Events)
	c.banner = &Banner{
		Level:   BannerSuccess,
		Message: fmt.Sprintf("Found %d events in %s", len(res.Events), res.Meta.Subject),
	}

	c.metrics.DiscoveryCalls.WithLabelValues("events", "success").Inc()
	c.metrics.UpstreamCalls.WithLabelValues("events").Add(float64(res.Meta.APICallsUsed))
	c.metrics.RecordsHeld.WithLabelValues("events").Set(float64(len(res.Events)))
	if res.Cached {
		c.metrics.CacheHits.WithLabelValues("events").Inc()
	}
	return nil
}

// DiscoverAttendees runs one attendee discovery cycle. New results replace
// the collection wholesale and reset every card to collapsed.
func (c *Controller) DiscoverAttendees(ctx context.Context, form AttendeeForm) error {
	eventName := form.EventName()
	if eventName == "" {
		c.reject(PhaseAttendees, errMissingAttendeeFields)
		return errMissingAttendeeFields
	}

	req := discovery.AttendeesRequest{
		EventName:  eventName,
		MaxResults: clamp(form.MaxResults, 1, c.maxAttendees),
	}

	callID := c.begin(&c.latestAttendeesCall)
	res, err := c.client.DiscoverAttendees(ctx, req)

	c.mu.Lock()
	defer c.mu.Unlock()
	defer func() { c.state = StateIdle }()

	if c.latestAttendeesCall != callID {
		c.logger.Warn("discarding stale attendee discovery response", "event", eventName)
		c.metrics.DiscoveryCalls.WithLabelValues("attendees", "stale").Inc()
		return nil
	}
	if err != nil {
		c.fail("attendees", err)
		return err
	}

	c.attendees = res.Attendees
	c.attendeeMeta = res.Meta
	c.attendeesCallsUsed += res.Meta.APICallsUsed
	c.cardExpanded = make([]bool, len(res.Attendees))
	c.banner = &Banner{
		Level:   BannerSuccess,
		Message: fmt.Sprintf("Found %d attendees for %s", len(res.Attendees), res.Meta.Subject),
	}

	c.metrics.DiscoveryCalls.WithLabelValues("attendees", "success").Inc()
	c.metrics.UpstreamCalls.WithLabelValues("attendees").Add(float64(res.Meta.APICallsUsed))
	c.metrics.RecordsHeld.WithLabelValues("attendees").Set(float64(len(res.Attendees)))
	if res.Cached {
		c.metrics.CacheHits.WithLabelValues("attendees").Inc()
	}
	return nil
}

// begin transitions idle→loading and issues a fresh call ID.
func (c *Controller) begin(latest *uuid.UUID) uuid.UUID {
	c.mu.Lock()
	defer c.mu.Unlock()
	callID := uuid.New()
	*latest = callID
	c.state = StateLoading
	return callID
}

// reject handles a local validation failure: banner, no state change.
func (c *Controller) reject(phase Phase, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.banner = &Banner{Level: BannerError, Message: err.Error()}
	c.metrics.DiscoveryCalls.WithLabelValues(string(phase), "invalid").Inc()
	c.logger.Info("discovery request rejected", "phase", phase, "reason", err)
}

// fail surfaces a call failure. Upstream messages are shown verbatim;
// transport failures get a generic banner. Prior results stay visible.
// Callers hold c.mu.
func (c *Controller) fail(kind string, err error) {
	message := "Discovery service is unavailable. Please try again."
	var ue *discovery.UpstreamError
	if errors.As(err, &ue) && ue.Message != "" {
		message = ue.Message
	}
	c.banner = &Banner{Level: BannerError, Message: message}
	c.metrics.DiscoveryCalls.WithLabelValues(kind, "error").Inc()
	c.logger.Error("discovery call failed", "kind", kind, "error", err)
}

// SetPhase switches between the event and attendee views.
func (c *Controller) SetPhase(p Phase) error {
	if p != PhaseEvents && p != PhaseAttendees {
		return fmt.Errorf("unknown phase %q", p)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.phase = p
	return nil
}

// ToggleCard flips one attendee card between collapsed and expanded.
func (c *Controller) ToggleCard(index int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	limit := len(c.cardExpanded)
	if limit > render.MaxDetailCards {
		limit = render.MaxDetailCards
	}
	if index < 0 || index >= limit {
		return fmt.Errorf("no card at index %d", index)
	}
	c.cardExpanded[index] = !c.cardExpanded[index]
	return nil
}

// Export serializes whichever collection is currently held for the given
// kind. An empty collection produces a warning banner and no file.
func (c *Controller) Export(kind string, format export.Format) (*export.File, error) {
	c.mu.Lock()
	events := append([]models.Event(nil), c.events...)
	attendees := append([]models.Attendee(nil), c.attendees...)
	now := c.now()
	c.mu.Unlock()

	var file *export.File
	var err error
	switch kind {
	case "events":
		file, err = export.Events(events, format, now)
	case "attendees":
		file, err = export.Attendees(attendees, format, now)
	default:
		err = fmt.Errorf("unknown export kind %q", kind)
	}

	if err != nil {
		c.mu.Lock()
		if errors.Is(err, export.ErrNoRecords) {
			c.banner = &Banner{Level: BannerWarning, Message: "Nothing to export yet. Run a discovery first."}
		} else {
			c.banner = &Banner{Level: BannerError, Message: "Export failed."}
		}
		c.mu.Unlock()
		c.logger.Warn("export aborted", "kind", kind, "format", format, "error", err)
		return nil, err
	}

	c.metrics.Exports.WithLabelValues(kind, string(format)).Inc()
	return file, nil
}

// State reports the current call state.
func (c *Controller) State() CallState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// EventOptions returns the dropdown options built from the last successful
// event discovery.
func (c *Controller) EventOptions() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.eventOptions...)
}

func eventNames(events []models.Event) []string {
	names := make([]string, 0, len(events))
	for _, e := range events {
		names = append(names, e.EventName)
	}
	return names
}

func clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}
