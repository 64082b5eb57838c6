// Package schedule provides the day schedule produced by order assignment.
//
// The package includes:
//   - TimeSlot: a fixed-length window of one courier that batches orders under
//     the courier type's weight and count limits and accumulates a batched price
//   - CourierSchedule: the filled slots of one courier in generation order
//   - DaySchedule: the write-once result for a calendar date
//
// Pricing inside a slot charges the first order its full cost and each later
// order cost*AdditionalOrderPriceFactor of the courier's profile.
package schedule
