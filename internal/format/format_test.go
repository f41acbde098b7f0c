package format

import "testing"

func TestCount(t *testing.T) {
	tests := []struct {
		n    int64
		want string
	}{
		{0, "0"},
		{-5, "0"},
		{950, "950"},
		{999, "999"},
		{1000, "1.0K"},
		{1500, "1.5K"},
		{999_999, "1000.0K"},
		{1_000_000, "1.0M"},
		{2_300_000, "2.3M"},
	}

	for _, tt := range tests {
		if got := Count(tt.n); got != tt.want {
			t.Errorf("Count(%d) = %q; want %q", tt.n, got, tt.want)
		}
	}
}

func TestEngagementLabel(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", "General Discussion"},
		{"ticket_purchase", "Ticket Purchase"},
		{"confirmed_attendance", "Confirmed Attendance"},
		{"excited", "Excited"},
		{"planning_to_attend", "Planning To Attend"},
	}

	for _, tt := range tests {
		if got := EngagementLabel(tt.in); got != tt.want {
			t.Errorf("EngagementLabel(%q) = %q; want %q", tt.in, got, tt.want)
		}
	}
}

func TestConfidenceLevel(t *testing.T) {
	tests := []struct {
		score float64
		want  string
	}{
		{0.95, ConfidenceStrong},
		{0.8, ConfidenceStrong},
		{0.79, ConfidenceMedium},
		{0.6, ConfidenceMedium},
		{0.59, ConfidenceWeak},
		{0, ConfidenceWeak},
	}

	for _, tt := range tests {
		if got := ConfidenceLevel(tt.score); got != tt.want {
			t.Errorf("ConfidenceLevel(%v) = %q; want %q", tt.score, got, tt.want)
		}
	}
}

func TestCategoryEmojiUnknownGetsPin(t *testing.T) {
	if CategoryEmoji("music") == pinMarker {
		t.Error("music should have its own marker")
	}
	for _, cat := range []string{"other", "", "rave"} {
		if got := CategoryEmoji(cat); got != pinMarker {
			t.Errorf("CategoryEmoji(%q) = %q; want pin", cat, got)
		}
	}
}

func TestEngagementEmojiUnknownGetsDiscussion(t *testing.T) {
	if got := EngagementEmoji("lurking"); got != discussionMarker {
		t.Errorf("EngagementEmoji(unknown) = %q; want discussion marker", got)
	}
	if got := EngagementEmoji("ticket_purchase"); got == discussionMarker {
		t.Error("ticket_purchase should have its own marker")
	}
}

func TestPercent(t *testing.T) {
	tests := []struct {
		score float64
		want  string
	}{
		{0.85, "85%"},
		{0.5, "50%"},
		{1, "100%"},
		{0, "0%"},
	}
	for _, tt := range tests {
		if got := Percent(tt.score); got != tt.want {
			t.Errorf("Percent(%v) = %q; want %q", tt.score, got, tt.want)
		}
	}
}
