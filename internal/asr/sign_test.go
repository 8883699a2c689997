package asr

import "testing"

func TestSignOrderIndependent(t *testing.T) {
	// Maps iterate in random order; build the same parameter set several
	// times from differently ordered insertions and demand one signature.
	insertions := [][][2]string{
		{{"appId", "a"}, {"ts", "123"}, {"nonce", "n1"}, {"fileName", "x.wav"}},
		{{"fileName", "x.wav"}, {"nonce", "n1"}, {"ts", "123"}, {"appId", "a"}},
		{{"ts", "123"}, {"appId", "a"}, {"fileName", "x.wav"}, {"nonce", "n1"}},
		{{"nonce", "n1"}, {"fileName", "x.wav"}, {"appId", "a"}, {"ts", "123"}},
	}
	var want string
	for i, ins := range insertions {
		params := map[string]string{}
		for _, kv := range ins {
			params[kv[0]] = kv[1]
		}
		got := Sign(params, "secret")
		if got == "" {
			t.Fatalf("empty signature with secret configured")
		}
		if i == 0 {
			want = got
			continue
		}
		if got != want {
			t.Fatalf("permutation %d changed signature: %q vs %q", i, got, want)
		}
	}
}

func TestSignDropsEmptyAndSignatureParams(t *testing.T) {
	base := map[string]string{"appId": "a", "ts": "123"}
	withNoise := map[string]string{
		"appId":     "a",
		"ts":        "123",
		"duration":  "",
		"signature": "should-not-matter",
	}
	if Sign(base, "k") != Sign(withNoise, "k") {
		t.Fatalf("empty and signature params must not affect the signature")
	}
}

func TestSignEmptySecret(t *testing.T) {
	if got := Sign(map[string]string{"appId": "a"}, ""); got != "" {
		t.Fatalf("expected empty signature without secret, got %q", got)
	}
	if got := Sign(nil, ""); got != "" {
		t.Fatalf("expected empty signature for nil params, got %q", got)
	}
}

func TestSignURLEncodesValues(t *testing.T) {
	a := Sign(map[string]string{"fileName": "team sync.wav"}, "k")
	b := Sign(map[string]string{"fileName": "team+sync.wav"}, "k")
	if a == b {
		t.Fatalf("distinct values must produce distinct canonical strings")
	}
}
