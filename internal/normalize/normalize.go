// Package normalize resolves the loosely-typed records coming back from the
// discovery API into fully-populated display records. Every optional field
// has a documented fallback and resolution is done exactly once at ingestion,
// so downstream code (renderer, exporter) never sees an absent value.
package normalize

import "github.com/aaliyatanseeq-hub/events/internal/models"

// Fallback values applied when a field is absent from the wire record.
const (
	UnknownUsername   = "@unknown"
	DefaultEngagement = "general_discussion"
	NoContent         = "No content available"
	DeadLink          = "#"
	UnknownEvent      = "Unknown Event"
	DefaultCategory   = "other"
	DateTBD           = "TBD"
	VenueTBD          = "TBD"
)

// DefaultConfidence is assumed when the engine did not score a match.
const DefaultConfidence = 0.5

// Event resolves a raw event into a display-safe record. It never fails: a
// completely empty input yields a record built entirely from fallbacks.
func Event(r models.RawEvent) models.Event {
	e := models.Event{
		EventName:       fallback(r.EventName, UnknownEvent),
		ExactDate:       fallback(r.ExactDate, DateTBD),
		ExactVenue:      fallback(r.ExactVenue, VenueTBD),
		Location:        r.Location,
		Category:        fallback(r.Category, DefaultCategory),
		ConfidenceScore: DefaultConfidence,
	}
	if r.ConfidenceScore != nil {
		e.ConfidenceScore = *r.ConfidenceScore
	}
	return e
}

// Attendee resolves a raw attendee into a display-safe record. Alias fields
// are resolved in precedence order, first match wins:
//
//	post_content → bio
//	followers_count → user_followers
//	user_profile → source_tweet
//	post_link → source_tweet
func Attendee(r models.RawAttendee) models.Attendee {
	a := models.Attendee{
		Username:       fallback(r.Username, UnknownUsername),
		EngagementType: fallback(r.EngagementType, DefaultEngagement),
		PostContent:    fallback(r.PostContent, r.Bio, NoContent),
		PostDate:       r.PostDate,
		UserProfile:    fallback(r.UserProfile, r.SourceTweet, DeadLink),
		PostLink:       fallback(r.PostLink, r.SourceTweet, DeadLink),
		Verified:       r.Verified,
		LikesCount:     r.LikesCount,
		RetweetsCount:  r.RetweetsCount,
		SearchQuery:    r.SearchQuery,
	}
	switch {
	case r.FollowersCount != nil:
		a.FollowersCount = *r.FollowersCount
	case r.UserFollowers != nil:
		a.FollowersCount = *r.UserFollowers
	}
	return a
}

// Events resolves a whole response batch, preserving order.
func Events(raw []models.RawEvent) []models.Event {
	out := make([]models.Event, 0, len(raw))
	for _, r := range raw {
		out = append(out, Event(r))
	}
	return out
}

// Attendees resolves a whole response batch, preserving order.
func Attendees(raw []models.RawAttendee) []models.Attendee {
	out := make([]models.Attendee, 0, len(raw))
	for _, r := range raw {
		out = append(out, Attendee(r))
	}
	return out
}

// fallback returns the first non-empty candidate.
func fallback(candidates ...string) string {
	for _, c := range candidates {
		if c != "" {
			return c
		}
	}
	return ""
}
