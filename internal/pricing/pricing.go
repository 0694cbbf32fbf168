// Package pricing computes the immutable price breakdown a quote is built
// from. It is a pure function of the order parameters: no I/O, no state,
// safe for concurrent use.
package pricing

import (
	"math"

	"github.com/tradux/backend/internal/domain/model"
)

// Tier identifiers accepted from the order form. Unrecognized values fall
// back to the standard tier so quoting stays available for malformed input.
const (
	TierStandard     = "standard"
	TierProfessional = "professional"
	TierSpecialist   = "specialist"

	DefaultCertType       = "certified"
	DefaultDeliverySpeed  = "standard"
	DefaultDeliveryMethod = "email"
)

var perPageRates = map[string]float64{
	TierStandard:     19.00,
	TierProfessional: 29.00,
	TierSpecialist:   39.00,
}

var certFees = map[string]float64{
	"certified": 0,
	"notarized": 15.00,
	"apostille": 75.00,
}

var speedMultipliers = map[string]float64{
	"standard": 1.0,
	"urgent":   1.25,
	"same-day": 1.50,
}

var deliveryFees = map[string]float64{
	"email": 0,
	"mail":  15.00,
	"fedex": 35.00,
}

// TierName returns the display name for a service tier.
func TierName(tier string) string {
	switch tier {
	case TierProfessional:
		return "Professional"
	case TierSpecialist:
		return "Specialist"
	default:
		return "Standard"
	}
}

// Calculate produces the price breakdown for the given order parameters.
// Monetary outputs are rounded to 2 decimal places.
func Calculate(pages int, tier, certType, deliverySpeed, deliveryMethod string) model.Breakdown {
	if pages < 1 {
		pages = 1
	}

	perPage, ok := perPageRates[tier]
	if !ok {
		perPage = perPageRates[TierStandard]
	}
	speedMult, ok := speedMultipliers[deliverySpeed]
	if !ok {
		speedMult = speedMultipliers[DefaultDeliverySpeed]
	}
	certFee, ok := certFees[certType]
	if !ok {
		certFee = certFees[DefaultCertType]
	}
	deliveryFee, ok := deliveryFees[deliveryMethod]
	if !ok {
		deliveryFee = deliveryFees[DefaultDeliveryMethod]
	}

	base := float64(pages) * perPage
	translationCost := base * speedMult
	total := translationCost + certFee + deliveryFee

	return model.Breakdown{
		PerPage:         perPage,
		PageCount:       pages,
		BasePrice:       round2(base),
		SpeedMultiplier: speedMult,
		TranslationCost: round2(translationCost),
		CertFee:         round2(certFee),
		DeliveryFee:     round2(deliveryFee),
		TotalPrice:      round2(total),
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
