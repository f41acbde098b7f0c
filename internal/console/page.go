package console

import (
	"github.com/aaliyatanseeq-hub/events/internal/models"
	"github.com/aaliyatanseeq-hub/events/internal/render"
)

// KnownCategories are the category tags the discovery engine understands,
// rendered as the form's checkbox set.
var KnownCategories = []string{
	"music", "sports", "food", "arts", "business",
	"conference", "festival", "comedy", "family", "other",
}

// PageData is everything the console template needs for one render.
type PageData struct {
	Phase      Phase
	Banner     *Banner
	Loading    bool
	Categories []string

	EventRows    []render.EventRow
	EventsMeta   models.Metadata
	EventOptions []string

	AttendeeRows    []render.AttendeeRow
	AttendeeCards   []render.AttendeeCard
	AttendeeSummary render.AttendeeSummary
	AttendeesMeta   models.Metadata

	EventsCallsUsed    int
	AttendeesCallsUsed int

	MaxEvents        int
	MaxAttendees     int
	DefaultStartDate string
	DefaultEndDate   string
}

// Page snapshots the current view state. The banner is flash-scoped: it is
// returned once and cleared, so a reload does not replay it.
func (c *Controller) Page() PageData {
	c.mu.Lock()
	defer c.mu.Unlock()

	data := PageData{
		Phase:              c.phase,
		Banner:             c.banner,
		Loading:            c.state == StateLoading,
		Categories:         KnownCategories,
		EventRows:          render.EventRows(c.events),
		EventsMeta:         c.eventsMeta,
		EventOptions:       append([]string(nil), c.eventOptions...),
		AttendeeRows:       render.AttendeeRows(c.attendees),
		AttendeeCards:      render.AttendeeCards(c.attendees, c.cardExpanded),
		AttendeeSummary:    render.Summarize(c.attendees),
		AttendeesMeta:      c.attendeeMeta,
		EventsCallsUsed:    c.eventsCallsUsed,
		AttendeesCallsUsed: c.attendeesCallsUsed,
		MaxEvents:          c.maxEvents,
		MaxAttendees:       c.maxAttendees,
		DefaultStartDate:   c.now().Format("2006-01-02"),
		DefaultEndDate:     c.now().AddDate(0, 0, 30).Format("2006-01-02"),
	}
	c.banner = nil
	return data
}
