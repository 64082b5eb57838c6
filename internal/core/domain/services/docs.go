// Package services provides the domain services of the dispatch system: the
// day assignment pipeline and courier performance rating.
//
// The package includes:
//   - SlotBuilder: lays out a courier's fixed-length slots over its working hours
//   - RankOrders: orders heaviest first, stable on ties
//   - AssignmentEngine: first-fit greedy placement of ranked orders into slots,
//     followed by materialization into a schedule.DaySchedule
//   - RateCourier: earnings and rating over a period of completed orders
//
// Services are pure: they read and mutate the aggregates handed to them and
// never touch storage.
package services
