// Package config loads and validates activation profiles.
//
// A profile names the activation channels the runtime should build,
// each with its keys, axis references, initial trigger handles and an
// optional touch cooldown override. Profiles load from TOML or JSON:
//
//	touch_cooldown = "100ms"
//
//	[channels.jump]
//	keys = ["space", "w"]
//
//	[channels.steer]
//	axes = [{ name = "stick_x", deadzone = 0.15 }]
//
//	[channels.fire]
//	keys = ["f"]
//	triggers = ["fire-button"]
//
// Loading validates eagerly: unknown key names, malformed channel
// names and out-of-range deadzones are errors at load time, not
// surprises at tick time.
package config
