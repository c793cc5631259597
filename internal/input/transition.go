package input

import "github.com/dshills/inputpulse/internal/event"

// TopicRoot is the bus namespace for activation transitions.
const TopicRoot = event.Topic("input")

// TopicStart returns the bus topic for a channel's activation starts.
func TopicStart(channel string) event.Topic {
	return TopicRoot.Child(channel).Child("start")
}

// TopicEnd returns the bus topic for a channel's activation ends.
func TopicEnd(channel string) event.Topic {
	return TopicRoot.Child(channel).Child("end")
}

// Transition is the bus payload for a channel activation edge.
type Transition struct {
	// Channel is the name the profile gave this channel.
	Channel string

	// Tick is the tick the transition landed on.
	Tick int64

	// Value is the channel's activation value after the transition.
	Value float64

	// Active reports the direction: true for start, false for end.
	Active bool
}
