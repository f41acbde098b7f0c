// Package render turns normalized record collections into the view models
// the console templates consume. Builders are pure: they never mutate their
// input and carry no rendering environment of their own.
package render

import (
	"github.com/aaliyatanseeq-hub/events/internal/format"
	"github.com/aaliyatanseeq-hub/events/internal/models"
)

const (
	// MaxDetailCards caps the attendee detail cards regardless of how many
	// records were requested or returned.
	MaxDetailCards = 6

	// contentPreviewLen is the summary-table cutoff for post content. The
	// full text stays available on the row (tooltip) and in the card.
	contentPreviewLen = 60
)

// EventRow is one row of the event results table.
type EventRow struct {
	Name            string
	Date            string
	Venue           string
	Location        string
	Category        string
	CategoryEmoji   string
	Confidence      string
	ConfidenceLevel string
}

// AttendeeRow is one row of the attendee results table.
type AttendeeRow struct {
	Username        string
	Engagement      string
	EngagementEmoji string
	Preview         string
	FullContent     string
	PostDate        string
	Followers       string
	Verified        bool
	ProfileURL      string
	PostURL         string
	Likes           string
	Retweets        string
}

// AttendeeCard is one expandable detail card. Expanded is per-card view
// state owned by the console controller, not by the record.
type AttendeeCard struct {
	Index    int
	Row      AttendeeRow
	Expanded bool
}

// AttendeeSummary is the analytics strip above the attendee table.
type AttendeeSummary struct {
	Total      int
	Verified   int
	TotalReach string
	Strategies string
}

// EventRows builds the event table. An empty collection yields no rows; the
// template renders the placeholder row in that case.
func EventRows(records []models.Event) []EventRow {
	rows := make([]EventRow, 0, len(records))
	for _, e := range records {
		rows = append(rows, EventRow{
			Name:            e.EventName,
			Date:            e.ExactDate,
			Venue:           e.ExactVenue,
			Location:        e.Location,
			Category:        e.Category,
			CategoryEmoji:   format.CategoryEmoji(e.Category),
			Confidence:      format.Percent(e.ConfidenceScore),
			ConfidenceLevel: format.ConfidenceLevel(e.ConfidenceScore),
		})
	}
	return rows
}

// AttendeeRows builds the attendee table with display-only truncation.
func AttendeeRows(records []models.Attendee) []AttendeeRow {
	rows := make([]AttendeeRow, 0, len(records))
	for _, a := range records {
		rows = append(rows, attendeeRow(a))
	}
	return rows
}

func attendeeRow(a models.Attendee) AttendeeRow {
	return AttendeeRow{
		Username:        a.Username,
		Engagement:      format.EngagementLabel(a.EngagementType),
		EngagementEmoji: format.EngagementEmoji(a.EngagementType),
		Preview:         truncate(a.PostContent, contentPreviewLen),
		FullContent:     a.PostContent,
		PostDate:        a.PostDate,
		Followers:       format.Count(a.FollowersCount),
		Verified:        a.Verified,
		ProfileURL:      a.UserProfile,
		PostURL:         a.PostLink,
		Likes:           format.Count(a.LikesCount),
		Retweets:        format.Count(a.RetweetsCount),
	}
}

// AttendeeCards builds the first MaxDetailCards detail cards. The expanded
// slice carries the per-card toggle state; missing entries mean collapsed.
func AttendeeCards(records []models.Attendee, expanded []bool) []AttendeeCard {
	n := len(records)
	if n > MaxDetailCards {
		n = MaxDetailCards
	}
	cards := make([]AttendeeCard, 0, n)
	for i := 0; i < n; i++ {
		card := AttendeeCard{Index: i, Row: attendeeRow(records[i])}
		if i < len(expanded) {
			card.Expanded = expanded[i]
		}
		cards = append(cards, card)
	}
	return cards
}

// Summarize computes the attendee analytics strip. Follower sums use the
// already-normalized counts, so absent values contribute zero. The strategy
// indicator is a coarse presence check, not a count of executed searches.
func Summarize(records []models.Attendee) AttendeeSummary {
	s := AttendeeSummary{Total: len(records), Strategies: "None"}

	var reach int64
	for _, a := range records {
		if a.Verified {
			s.Verified++
		}
		reach += a.FollowersCount
	}
	s.TotalReach = format.Count(reach)
	if len(records) > 0 {
		s.Strategies = "Multiple"
	}
	return s
}

// truncate cuts on rune boundaries so multibyte post content never yields
// an invalid UTF-8 preview.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}
