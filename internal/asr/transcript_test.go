package asr

import "testing"

func TestParseSentences(t *testing.T) {
	sentences := []Sentence{
		{Speaker: "S0", Text: "hello", BeginTime: 0, EndTime: 900},
		{Speaker: "S1", Text: " world ", BeginTime: 1000, EndTime: 1800},
	}
	segments, text := ParseSentences(sentences)
	if len(segments) != 2 {
		t.Fatalf("expected 2 segments, got %d", len(segments))
	}
	if text != "S0: hello\nS1: world" {
		t.Fatalf("unexpected transcript: %q", text)
	}
	if segments[1].BeginTime != 1000 || segments[1].EndTime != 1800 {
		t.Fatalf("timestamps not preserved: %+v", segments[1])
	}
}

func TestParseSentencesDropsEmptyText(t *testing.T) {
	sentences := []Sentence{
		{Speaker: "S0", Text: "hello"},
		{Speaker: "S1", Text: "   "},
		{Speaker: "S2", Text: "bye"},
	}
	segments, text := ParseSentences(sentences)
	if len(segments) != 2 {
		t.Fatalf("expected blank sentence dropped, got %d segments", len(segments))
	}
	if text != "S0: hello\nS2: bye" {
		t.Fatalf("unexpected transcript: %q", text)
	}
}

func TestParseSentencesDefaultsSpeaker(t *testing.T) {
	segments, text := ParseSentences([]Sentence{{Text: "unattributed"}})
	if segments[0].Speaker != DefaultSpeaker {
		t.Fatalf("expected default speaker, got %q", segments[0].Speaker)
	}
	if text != "S0: unattributed" {
		t.Fatalf("unexpected transcript: %q", text)
	}
}

func TestParseSentencesPreservesOrder(t *testing.T) {
	sentences := []Sentence{
		{Speaker: "S1", Text: "second speaker first"},
		{Speaker: "S0", Text: "then the host"},
		{Speaker: "S1", Text: "and back"},
	}
	segments, _ := ParseSentences(sentences)
	for i, s := range sentences {
		if segments[i].Text != s.Text {
			t.Fatalf("order changed at %d: %q", i, segments[i].Text)
		}
	}
}

func TestParseSentencesEmptyInput(t *testing.T) {
	segments, text := ParseSentences(nil)
	if len(segments) != 0 || text != "" {
		t.Fatalf("expected empty result, got %d segments %q", len(segments), text)
	}
}
