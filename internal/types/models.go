package types

// SummarizeRequest is the JSON body accepted by POST / and POST /summary.
// WordLimit is permissive on purpose: the front-end sends either a number
// or the string sentinel "noLimits", and anything else only degrades prompt
// quality, never correctness.
type SummarizeRequest struct {
	VideoID   string `json:"videoId"`
	URL       string `json:"url,omitempty"`
	Mode      string `json:"mode,omitempty"`
	WordLimit any    `json:"wordLimit,omitempty"`
}

type SummaryResponse struct {
	Summary string `json:"summary"`
}

type TranscriptionResponse struct {
	Transcription string `json:"transcription"`
}

type HealthResponse struct {
	Status string `json:"status"`
}

// ErrorResponse carries a stable user-facing message. Details is a debug
// aid only and must never replace the stable message.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
