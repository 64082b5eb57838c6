// Package courier provides the Courier aggregate and the capacity profile table
// of the dispatch domain.
//
// The package includes:
//   - Courier: the aggregate root holding type, prioritized regions and working hours
//   - Type: the closed set FOOT, BIKE, AUTO
//   - Profile: per-type limits (weight, orders per slot, priority regions), slot
//     timing (first and next order minutes) and pricing/earnings coefficients
//
// Key business rules:
//   - Every Type maps to exactly one Profile through an exhaustive switch
//   - Only the first MaxPriorityRegions regions of a courier accept orders
//   - A slot lasts FirstOrderMinutes + NextOrderMinutes*(MaxOrdersPerSlot-1)
//   - The first order of a slot is priced at full cost, later ones at
//     cost*AdditionalOrderPriceFactor
package courier
