package services

import (
	"time"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/pkg/errs"
)

// CourierMetaInfo is the performance summary of a courier over a period.
// Both values are nil when the courier completed nothing in the period.
type CourierMetaInfo struct {
	Earnings *float64
	Rating   *float64
}

// CompletedOrdersSummary aggregates the orders a courier completed in a period.
type CompletedOrdersSummary struct {
	Count   int
	CostSum float64
}

// RateCourier computes earnings and rating of a courier of type t for the period
// [from, to).
//
// Business rules:
//   - earnings = sum of completed order costs * Profile.SalaryCoefficient
//   - rating = completed orders / period hours * Profile.RatingCoefficient
//   - no completed orders: both values are absent
//
// Returns ValueIsInvalidError when the period is empty or reversed, or when t
// has no profile.
func RateCourier(t courier.Type, summary CompletedOrdersSummary, from, to time.Time) (CourierMetaInfo, error) {
	if !from.Before(to) {
		return CourierMetaInfo{}, errs.NewValueIsInvalidError("period end must be after period start")
	}

	profile, err := courier.ProfileFor(t)
	if err != nil {
		return CourierMetaInfo{}, err
	}

	if summary.Count == 0 {
		return CourierMetaInfo{}, nil
	}

	earnings := summary.CostSum * float64(profile.SalaryCoefficient)
	rating := float64(summary.Count) / to.Sub(from).Hours() * float64(profile.RatingCoefficient)

	return CourierMetaInfo{Earnings: &earnings, Rating: &rating}, nil
}
