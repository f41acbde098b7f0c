package models

// RawEvent is an event exactly as the discovery API returned it. Every field
// is optional on the wire, so consumers must resolve it through the normalize
// package before display or export.
type RawEvent struct {
	EventName       string   `json:"event_name"`
	ExactDate       string   `json:"exact_date"`
	ExactVenue      string   `json:"exact_venue"`
	Location        string   `json:"location"`
	Category        string   `json:"category"`
	ConfidenceScore *float64 `json:"confidence_score"`
	SourceTweet     string   `json:"source_tweet"`
	PostedBy        string   `json:"posted_by"`
}

// RawAttendee is an attendee as returned by the discovery API. Older engine
// versions used bio/user_followers/source_tweet where newer ones use
// post_content/followers_count/user_profile+post_link, so both spellings are
// accepted and resolved once at ingestion.
type RawAttendee struct {
	Username       string `json:"username"`
	EngagementType string `json:"engagement_type"`
	PostContent    string `json:"post_content"`
	Bio            string `json:"bio"`
	PostDate       string `json:"post_date"`
	FollowersCount *int64 `json:"followers_count"`
	UserFollowers  *int64 `json:"user_followers"`
	UserProfile    string `json:"user_profile"`
	PostLink       string `json:"post_link"`
	SourceTweet    string `json:"source_tweet"`
	Verified       bool   `json:"verified"`
	LikesCount     int64  `json:"likes_count"`
	RetweetsCount  int64  `json:"retweets_count"`
	SearchQuery    string `json:"search_query"`
}

// Event is a fully-populated event record, safe to render and export.
// Field order here is the CSV column order.
type Event struct {
	EventName       string  `json:"event_name"`
	ExactDate       string  `json:"exact_date"`
	ExactVenue      string  `json:"exact_venue"`
	Location        string  `json:"location"`
	Category        string  `json:"category"`
	ConfidenceScore float64 `json:"confidence_score"`
}

// Attendee is a fully-populated attendee record with all field aliases
// resolved. Field order here is the CSV column order.
type Attendee struct {
	Username       string `json:"username"`
	EngagementType string `json:"engagement_type"`
	PostContent    string `json:"post_content"`
	PostDate       string `json:"post_date"`
	FollowersCount int64  `json:"followers_count"`
	UserProfile    string `json:"user_profile"`
	PostLink       string `json:"post_link"`
	Verified       bool   `json:"verified"`
	LikesCount     int64  `json:"likes_count"`
	RetweetsCount  int64  `json:"retweets_count"`
	SearchQuery    string `json:"search_query"`
}

// Metadata is the per-call response summary, read once to refresh the
// summary display and then replaced by the next call.
type Metadata struct {
	Success        bool   `json:"success"`
	Total          int    `json:"total"`
	RequestedLimit int    `json:"requested_limit"`
	APICallsUsed   int    `json:"api_calls_used"`
	Subject        string `json:"subject"` // searched location or event name
	Error          string `json:"error,omitempty"`
}
