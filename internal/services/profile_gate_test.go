package services

import (
	"testing"

	types "github.com/yungbote/profile-backend/internal/domain/profile"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		name     string
		username string
		caller   types.Identity
		want     Access
	}{
		{name: "owner", username: "alice", caller: types.Identity{Username: "alice"}, want: Hydrate},
		{name: "other_user", username: "alice", caller: types.Identity{Username: "bob"}, want: PassThrough},
		{name: "anonymous", username: "alice", want: PassThrough},
		{name: "anonymous_empty_username", username: "", want: PassThrough},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Classify(tc.username, tc.caller); got != tc.want {
				t.Fatalf("Classify(%q, %+v)=%v, want %v", tc.username, tc.caller, got, tc.want)
			}
		})
	}
}

func TestCanWrite(t *testing.T) {
	cases := []struct {
		name     string
		username string
		caller   types.Identity
		want     bool
	}{
		{name: "owner", username: "alice", caller: types.Identity{Username: "alice"}, want: true},
		{name: "other_user", username: "alice", caller: types.Identity{Username: "bob"}, want: false},
		{name: "anonymous", username: "alice", want: false},
		{name: "reserved_anonymous", username: "reanimator", want: true},
		{name: "reserved_other_user", username: "reanimator", caller: types.Identity{Username: "bob"}, want: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := CanWrite(tc.username, "reanimator", tc.caller); got != tc.want {
				t.Fatalf("CanWrite(%q, %+v)=%v, want %v", tc.username, tc.caller, got, tc.want)
			}
		})
	}
}
