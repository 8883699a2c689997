package asr

import "strings"

// Segment is one speaker-tagged line of the final transcript. Times are the
// vendor's millisecond offsets and may be zero when absent.
type Segment struct {
	Speaker   string `json:"speaker"`
	Text      string `json:"text"`
	BeginTime int64  `json:"begin_time,omitempty"`
	EndTime   int64  `json:"end_time,omitempty"`
}

// Transcription is the terminal value of a transcription job.
type Transcription struct {
	OrderID  string    `json:"order_id"`
	Text     string    `json:"text"`
	Segments []Segment `json:"segments"`
}

// ParseSentences converts the vendor sentence list into ordered segments and
// the newline-joined "speaker: text" transcript. Sentences whose trimmed
// text is empty are dropped; a missing speaker id defaults to
// DefaultSpeaker. Input order is preserved — diarization and chronology are
// entirely the vendor's responsibility.
func ParseSentences(sentences []Sentence) ([]Segment, string) {
	segments := make([]Segment, 0, len(sentences))
	lines := make([]string, 0, len(sentences))
	for _, s := range sentences {
		text := strings.TrimSpace(s.Text)
		if text == "" {
			continue
		}
		speaker := s.Speaker
		if speaker == "" {
			speaker = DefaultSpeaker
		}
		segments = append(segments, Segment{
			Speaker:   speaker,
			Text:      text,
			BeginTime: s.BeginTime,
			EndTime:   s.EndTime,
		})
		lines = append(lines, speaker+": "+text)
	}
	return segments, strings.Join(lines, "\n")
}
