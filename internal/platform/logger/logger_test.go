package logger

import (
	"strings"
	"testing"
)

func TestScrubRedactsSecrets(t *testing.T) {
	s := &scrubber{enabled: true}
	out := s.kvs([]interface{}{
		"csrf_token", "abc",
		"session_cookie", "eyJhbGciOiJIUzI1NiJ9.eyJ1c2VybmFtZSI6ImFsaWNlIn0.sig",
		"username", "alice",
		"caller", "bob",
	})
	if len(out) != 8 {
		t.Fatalf("len: want=8 got=%d", len(out))
	}
	if out[1] != redacted {
		t.Fatalf("csrf_token: want redacted got=%v", out[1])
	}
	if out[3] != redacted {
		t.Fatalf("session_cookie: want redacted got=%v", out[3])
	}
	if out[5] != "alice" {
		t.Fatalf("username: want passthrough got=%v", out[5])
	}
	if s, ok := out[7].(string); !ok || !strings.HasPrefix(s, "hash:") {
		t.Fatalf("caller: want hashed got=%v", out[7])
	}
}

func TestScrubSummarizesPayloads(t *testing.T) {
	s := &scrubber{enabled: true}
	out := s.kvs([]interface{}{"image", "R0lGODlhAQABAAAAACw="})
	if out[1] != "[20 bytes]" {
		t.Fatalf("image: got=%v", out[1])
	}
}

func TestScrubRedactsJWTLookingStrings(t *testing.T) {
	s := &scrubber{enabled: true}
	if got := s.value("detail", "aaaaaaaaaaaa.bbbbbbbbbbbb.cccc"); got != redacted {
		t.Fatalf("want redacted got=%v", got)
	}
	nested := s.value("fields", map[string]interface{}{"password": "hunter2"}).(map[string]interface{})
	if nested["password"] != redacted {
		t.Fatalf("nested password: got=%v", nested["password"])
	}
}

func TestHashIsSalted(t *testing.T) {
	a := (&scrubber{enabled: true, salt: "a"}).hash("alice")
	b := (&scrubber{enabled: true, salt: "b"}).hash("alice")
	if a == b {
		t.Fatalf("salt had no effect: %s", a)
	}
}

func TestRedactionCanBeDisabled(t *testing.T) {
	log, err := New("test", WithRedaction(false))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	kv := []interface{}{"password", "hunter2"}
	if got := log.scrub.kvs(kv); got[1] != "hunter2" {
		t.Fatalf("want passthrough got=%v", got[1])
	}
	log.Info("quiet", "k", "v")
	log.With("component", "x").Warn("still quiet")
	log.Sync()
}
