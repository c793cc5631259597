// Package key defines the keyboard key codes recognized by the input
// sampler.
//
// A Code identifies one physical key. Codes are stable across platforms
// and carry no modifier or layout information; the sampler treats every
// key, including Shift and Control, as an independent digital input.
//
// # Names
//
// Every code has a canonical name returned by String ("A", "Space",
// "F3"). FromName performs the reverse lookup and is tolerant of case
// and common aliases:
//
//	code, err := key.FromName("esc")    // key.Escape
//	code, err = key.FromName("Return") // key.Enter
//
// Names are the form keys take in activation profiles, so FromName is
// the entry point used by the config loader.
package key
