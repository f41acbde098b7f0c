// Package format holds the pure display transforms. Everything here is
// lossy and display-only; nothing downstream may compute on its output.
package format

import (
	"strconv"
	"strings"
)

// Confidence levels as rendered by the templates (CSS class names).
const (
	ConfidenceStrong = "strong"
	ConfidenceMedium = "medium"
	ConfidenceWeak   = "weak"
)

const pinMarker = "📍"

var categoryEmoji = map[string]string{
	"music":      "🎵",
	"sports":     "⚽",
	"food":       "🍕",
	"arts":       "🎨",
	"business":   "💼",
	"conference": "🎤",
	"festival":   "🎪",
	"comedy":     "😂",
	"family":     "👪",
}

// CategoryEmoji maps a category tag to its marker. Unknown tags, including
// "other", get the generic pin.
func CategoryEmoji(category string) string {
	if e, ok := categoryEmoji[category]; ok {
		return e
	}
	return pinMarker
}

// ConfidenceLevel buckets a [0,1] score into strong/medium/weak.
func ConfidenceLevel(score float64) string {
	switch {
	case score >= 0.8:
		return ConfidenceStrong
	case score >= 0.6:
		return ConfidenceMedium
	default:
		return ConfidenceWeak
	}
}

const discussionMarker = "💬"

var engagementEmoji = map[string]string{
	"ticket_purchase":      "🎫",
	"confirmed_attendance": "✅",
	"planning_to_attend":   "📅",
	"excited":              "🔥",
	"general_discussion":   discussionMarker,
}

// EngagementEmoji maps an engagement type to its marker, falling back to the
// generic discussion marker for unknown types.
func EngagementEmoji(engagementType string) string {
	if e, ok := engagementEmoji[engagementType]; ok {
		return e
	}
	return discussionMarker
}

// EngagementLabel turns an engagement token into a title-cased label:
// "ticket_purchase" → "Ticket Purchase". An empty token yields
// "General Discussion".
func EngagementLabel(engagementType string) string {
	if engagementType == "" {
		return "General Discussion"
	}
	parts := strings.Split(engagementType, "_")
	for i, p := range parts {
		if p == "" {
			continue
		}
		parts[i] = strings.ToUpper(p[:1]) + p[1:]
	}
	return strings.Join(parts, " ")
}

// Count compacts a large count for display: 2316000 → "2.3M",
// 1500 → "1.5K", 950 → "950". Negative counts render as "0".
func Count(n int64) string {
	switch {
	case n >= 1_000_000:
		return oneDecimal(float64(n)/1_000_000) + "M"
	case n >= 1_000:
		return oneDecimal(float64(n)/1_000) + "K"
	case n > 0:
		return strconv.FormatInt(n, 10)
	default:
		return "0"
	}
}

func oneDecimal(f float64) string {
	return strconv.FormatFloat(f, 'f', 1, 64)
}

// Percent renders a [0,1] score as a whole percentage, e.g. 0.85 → "85%".
func Percent(score float64) string {
	return strconv.Itoa(int(score*100+0.5)) + "%"
}
