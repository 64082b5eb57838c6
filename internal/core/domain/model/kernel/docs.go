// Package kernel provides the shared value objects of the dispatch domain.
//
// The package includes:
//   - TimeInterval: a validated "HH:MM-HH:MM" window of minutes within a day,
//     used for courier working hours and order delivery hours
//   - Minute-of-day helpers (MinuteOfDay, StartOfDay, AnyContains) used when
//     slots are laid out on a calendar date and matched against delivery windows
//
// Value objects here are immutable and carry a construction guard, so a zero
// value fails Validate and can be told apart from a parsed one.
package kernel
