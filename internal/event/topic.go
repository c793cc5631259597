package event

import "strings"

// Topic is a hierarchical event type in dot notation, for example
// "input.jump.start".
type Topic string

const (
	// Separator divides topic segments.
	Separator = "."

	// Wildcard, as the final segment of a pattern, matches one or
	// more remaining segments.
	Wildcard = "*"
)

// String returns the topic as a string.
func (t Topic) String() string { return string(t) }

// Segments returns the topic split at separators.
func (t Topic) Segments() []string {
	if t == "" {
		return nil
	}
	return strings.Split(string(t), Separator)
}

// Child returns the topic extended by one segment.
func (t Topic) Child(segment string) Topic {
	if t == "" {
		return Topic(segment)
	}
	return Topic(string(t) + Separator + segment)
}

// Validate reports whether the topic is well formed: non-empty, no
// empty segments, and a wildcard only as the final segment.
func (t Topic) Validate() error {
	if t == "" {
		return ErrInvalidTopic
	}
	segs := t.Segments()
	for i, seg := range segs {
		if seg == "" {
			return ErrInvalidTopic
		}
		if strings.Contains(seg, Wildcard) && (seg != Wildcard || i != len(segs)-1) {
			return ErrInvalidTopic
		}
	}
	return nil
}

// IsPattern reports whether the topic ends in a wildcard segment and
// therefore cannot be published to, only subscribed.
func (t Topic) IsPattern() bool {
	return t == Wildcard || strings.HasSuffix(string(t), Separator+Wildcard)
}

// Matches reports whether the pattern t covers the concrete topic.
// A trailing wildcard segment matches any one or more segments below
// the prefix; a bare "*" matches every topic.
func (t Topic) Matches(concrete Topic) bool {
	if t == concrete {
		return true
	}
	if t == Wildcard {
		return concrete != ""
	}
	pattern := string(t)
	if !strings.HasSuffix(pattern, Separator+Wildcard) {
		return false
	}
	prefix := pattern[:len(pattern)-1] // keep the trailing separator
	return strings.HasPrefix(string(concrete), prefix) && len(concrete) > len(prefix)
}
