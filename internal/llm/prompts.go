package llm

import "fmt"

// Prompt builders for the four tools. Each returns a ready-to-send message
// list; the transcript or description always travels in the user message so
// hosts can apply their own system-prompt policies on top.

// OptimizeTranscript asks the model to clean a raw ASR transcript without
// changing its meaning or speaker attribution.
func OptimizeTranscript(transcript string) []Message {
	return []Message{
		{Role: RoleSystem, Content: "You clean up raw speech-recognition transcripts. " +
			"Remove filler words, fix punctuation and obvious mis-recognitions, " +
			"keep every \"speaker: text\" line on its own line with the speaker label unchanged, " +
			"and never add, reorder or summarize content."},
		{Role: RoleUser, Content: transcript},
	}
}

// MeetingSummary asks for a structured Markdown summary of a transcript.
func MeetingSummary(title, transcript string) []Message {
	heading := title
	if heading == "" {
		heading = "Meeting Summary"
	}
	return []Message{
		{Role: RoleSystem, Content: "You write concise meeting summaries in Markdown. " +
			"Structure the output with these sections: a one-paragraph overview, " +
			"key discussion points, decisions, and action items with owners when identifiable. " +
			"Answer in the language of the transcript."},
		{Role: RoleUser, Content: fmt.Sprintf("Title: %s\n\nTranscript:\n%s", heading, transcript)},
	}
}

// Mindmap asks for a Markdown outline mindmap of the given content.
func Mindmap(content string) []Message {
	return []Message{
		{Role: RoleSystem, Content: "You turn meeting content into a mindmap expressed as a Markdown outline: " +
			"a single top-level # heading for the central topic, nested bullet lists for branches, " +
			"at most four levels deep, short node labels. Output only the Markdown outline."},
		{Role: RoleUser, Content: content},
	}
}

// Diagram asks for Mermaid source of the requested diagram kind describing
// the given content.
func Diagram(content, kind string) []Message {
	if kind == "" {
		kind = "flowchart"
	}
	return []Message{
		{Role: RoleSystem, Content: fmt.Sprintf("You express processes and structures as Mermaid diagrams. "+
			"Produce a valid Mermaid %s. Output only the Mermaid source, no fences, no commentary.", kind)},
		{Role: RoleUser, Content: content},
	}
}
