package event

import (
	"errors"
	"testing"
)

func TestTopicValidate(t *testing.T) {
	tests := []struct {
		name    string
		topic   Topic
		wantErr bool
	}{
		{"simple", "input", false},
		{"nested", "input.jump.start", false},
		{"wildcard suffix", "input.jump.*", false},
		{"bare wildcard", "*", false},
		{"empty", "", true},
		{"empty segment", "input..start", true},
		{"trailing separator", "input.", true},
		{"wildcard mid-path", "input.*.start", true},
		{"wildcard inside segment", "input.ju*p", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.topic.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidTopic) {
				t.Errorf("error %v does not wrap ErrInvalidTopic", err)
			}
		})
	}
}

func TestTopicMatches(t *testing.T) {
	tests := []struct {
		name     string
		pattern  Topic
		concrete Topic
		want     bool
	}{
		{"exact", "input.jump.start", "input.jump.start", true},
		{"exact mismatch", "input.jump.start", "input.jump.end", false},
		{"wildcard one deeper", "input.jump.*", "input.jump.start", true},
		{"wildcard two deeper", "input.*", "input.jump.start", true},
		{"wildcard needs deeper", "input.jump.*", "input.jump", false},
		{"wildcard prefix mismatch", "input.jump.*", "input.fire.start", false},
		{"bare wildcard", "*", "anything.at.all", true},
		{"no partial segment match", "input.j.*", "input.jump.start", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.pattern.Matches(tt.concrete); got != tt.want {
				t.Errorf("%q.Matches(%q) = %v, want %v", tt.pattern, tt.concrete, got, tt.want)
			}
		})
	}
}

func TestTopicIsPattern(t *testing.T) {
	if !Topic("input.*").IsPattern() {
		t.Error("input.* not recognized as pattern")
	}
	if !Topic("*").IsPattern() {
		t.Error("* not recognized as pattern")
	}
	if Topic("input.jump.start").IsPattern() {
		t.Error("concrete topic recognized as pattern")
	}
}

func TestTopicChildAndSegments(t *testing.T) {
	top := Topic("input").Child("jump").Child("start")
	if top != "input.jump.start" {
		t.Errorf("Child chain = %q", top)
	}

	segs := top.Segments()
	if len(segs) != 3 || segs[0] != "input" || segs[2] != "start" {
		t.Errorf("Segments() = %v", segs)
	}

	if Topic("").Segments() != nil {
		t.Error("empty topic has segments")
	}
}
