// Package order provides the Order aggregate of the dispatch domain.
//
// The package includes:
//   - Order: the aggregate root with weight, region, delivery windows and cost
//   - Status: the lifecycle state derived from courier and completion fields
//
// Key business rules:
//   - Weight, region and cost are positive; at least one delivery window
//   - Order status follows Created -> Assigned -> Completed
//   - Assignment happens once, from Created, when a day schedule is built
//   - Completion may skip Assigned; a repeat completion is accepted only when it
//     names the same courier and instant
package order
