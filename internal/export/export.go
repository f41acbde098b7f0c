// Package export serializes the currently-held record collection into a
// downloadable CSV or JSON file. It operates on normalized records only, so
// no absent values can leak into the output.
package export

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/aaliyatanseeq-hub/events/internal/models"
)

type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
)

// ErrNoRecords is returned when an export is requested on an empty
// collection. No file is produced.
var ErrNoRecords = errors.New("export: no records to export")

// File is a fully-assembled download, generated without any server
// round-trip beyond the discovery call that produced the records.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// Events serializes the event collection.
func Events(records []models.Event, format Format, now time.Time) (*File, error) {
	if len(records) == 0 {
		return nil, ErrNoRecords
	}

	rows := make([][]string, 0, len(records))
	for _, e := range records {
		rows = append(rows, []string{
			e.EventName,
			e.ExactDate,
			e.ExactVenue,
			e.Location,
			e.Category,
			strconv.FormatFloat(e.ConfidenceScore, 'g', -1, 64),
		})
	}
	header := []string{"event_name", "exact_date", "exact_venue", "location", "category", "confidence_score"}

	return assemble("events", format, now, header, rows, records)
}

// Attendees serializes the attendee collection.
func Attendees(records []models.Attendee, format Format, now time.Time) (*File, error) {
	if len(records) == 0 {
		return nil, ErrNoRecords
	}

	rows := make([][]string, 0, len(records))
	for _, a := range records {
		rows = append(rows, []string{
			a.Username,
			a.EngagementType,
			a.PostContent,
			a.PostDate,
			strconv.FormatInt(a.FollowersCount, 10),
			a.UserProfile,
			a.PostLink,
			strconv.FormatBool(a.Verified),
			strconv.FormatInt(a.LikesCount, 10),
			strconv.FormatInt(a.RetweetsCount, 10),
			a.SearchQuery,
		})
	}
	header := []string{
		"username", "engagement_type", "post_content", "post_date",
		"followers_count", "user_profile", "post_link", "verified",
		"likes_count", "retweets_count", "search_query",
	}

	return assemble("attendees", format, now, header, rows, records)
}

func assemble(kind string, format Format, now time.Time, header []string, rows [][]string, records any) (*File, error) {
	switch format {
	case FormatCSV:
		return &File{
			Name:        filename(kind, "csv", now),
			ContentType: "text/csv",
			Data:        []byte(csvDocument(header, rows)),
		}, nil
	case FormatJSON:
		data, err := json.MarshalIndent(records, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("export: marshal %s: %w", kind, err)
		}
		return &File{
			Name:        filename(kind, "json", now),
			ContentType: "application/json",
			Data:        data,
		}, nil
	default:
		return nil, fmt.Errorf("export: unsupported format %q", format)
	}
}

func filename(kind, ext string, now time.Time) string {
	return fmt.Sprintf("%s_%s.%s", kind, now.Format("2006-01-02"), ext)
}

// csvDocument renders header + rows with every field quoted and embedded
// quotes doubled. encoding/csv only quotes when it has to, and the download
// contract promises fully-quoted fields, so the quoting is done by hand.
func csvDocument(header []string, rows [][]string) string {
	var b strings.Builder
	writeRow(&b, header)
	for _, row := range rows {
		writeRow(&b, row)
	}
	return b.String()
}

func writeRow(b *strings.Builder, fields []string) {
	for i, f := range fields {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('"')
		b.WriteString(strings.ReplaceAll(f, `"`, `""`))
		b.WriteByte('"')
	}
	b.WriteByte('\n')
}
