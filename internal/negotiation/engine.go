// Package negotiation implements the scripted haggling engine. Every
// operation is a pure function over a Negotiation value (plus a Listing
// snapshot for Initiate): no I/O, no clock reads, no shared state. Callers
// persist the returned record whole or not at all.
package negotiation

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/RishabhV28/sneakdeal/internal/domain"
)

const (
	// discountPct is the AI's opening percentage discount.
	discountPct = 0.15
	// discountFlat is the AI's opening flat discount in dollars.
	discountFlat = 300.0
	// sellerConcession is the fraction of the remaining gap the seller
	// gives back toward the original price each round.
	sellerConcession = 0.5
	// aiConcession is the fraction of the seller's counter-move the AI
	// concedes each round.
	aiConcession = 0.7
	// marketAvgPct produces the naive "market average" quoted in the seed
	// message.
	marketAvgPct = 0.90
)

// Initiate starts a negotiation for the given listing on behalf of buyerID.
// The opening offer is the larger of 15%-off and $300-off, i.e. the smaller
// of the two concessions survives. Both branches are computed and compared;
// which one wins depends on the price ($300-off dominates above $2000).
//
// Returns domain.ErrAIDealUnavailable if the listing does not support AI
// deals. The returned Negotiation has no ID; the caller assigns one.
func Initiate(listing domain.Listing, buyerID string, now time.Time) (domain.Negotiation, error) {
	if !listing.AIDealAvailable {
		return domain.Negotiation{}, domain.ErrAIDealUnavailable
	}

	initialOffer := round2(math.Max(
		listing.Price*(1-discountPct),
		listing.Price-discountFlat,
	))

	seed := domain.NegotiationMessage{
		ID:   "1",
		Type: domain.MessageAI,
		Message: fmt.Sprintf(
			"I found this %s for $%s. Let me negotiate with the seller for a better price. The current market average is $%s.",
			listing.Name,
			trimPrice(listing.Price),
			wholeDollars(round2(listing.Price*marketAvgPct)),
		),
		Timestamp: now.UTC().Format(time.RFC3339),
	}

	return domain.Negotiation{
		SneakerID:     listing.ID,
		BuyerID:       buyerID,
		SellerID:      listing.SellerID,
		OriginalPrice: listing.Price,
		CurrentOffer:  initialOffer,
		Status:        domain.NegotiationActive,
		Messages:      []domain.NegotiationMessage{seed},
		CreatedAt:     now.UTC(),
		UpdatedAt:     now.UTC(),
	}, nil
}

// Continue simulates one haggling round: the seller meets the AI halfway
// back toward the original price, then the AI concedes 70% of that move.
// The new offer is strictly between the previous offer and the seller
// counter, so repeated rounds approach the original price geometrically
// (65% of the gap survives each round) without ever reaching it.
//
// Exactly two messages are appended, continuing the id sequence. Returns
// domain.ErrNegotiationNotActive without mutating n if the negotiation has
// left the active state.
func Continue(n domain.Negotiation, now time.Time) (domain.Negotiation, error) {
	if n.Status != domain.NegotiationActive {
		return domain.Negotiation{}, domain.ErrNegotiationNotActive
	}

	sellerCounter := round2(n.CurrentOffer + (n.OriginalPrice-n.CurrentOffer)*sellerConcession)
	aiNewOffer := round2(n.CurrentOffer + (sellerCounter-n.CurrentOffer)*aiConcession)

	ts := now.UTC().Format(time.RFC3339)
	next := len(n.Messages) + 1

	sellerMsg := domain.NegotiationMessage{
		ID:   strconv.Itoa(next),
		Type: domain.MessageSeller,
		Message: fmt.Sprintf(
			"Thanks for your interest! I can do $%s as my lowest price. These are %s.",
			wholeDollars(sellerCounter),
			sellerPitch(n.OriginalPrice),
		),
		Timestamp: ts,
	}
	aiMsg := domain.NegotiationMessage{
		ID:   strconv.Itoa(next + 1),
		Type: domain.MessageAI,
		Message: fmt.Sprintf(
			"I understand they're in great condition. Would you consider $%s? I'm seeing similar pairs at that price point, and my client is ready to purchase immediately.",
			wholeDollars(aiNewOffer),
		),
		Timestamp: ts,
	}

	out := n
	out.Messages = append(append([]domain.NegotiationMessage{}, n.Messages...), sellerMsg, aiMsg)
	out.CurrentOffer = aiNewOffer
	out.UpdatedAt = now.UTC()
	return out, nil
}

// Accept closes the negotiation at the current offer. It requires an active
// negotiation; accepting a terminal one would overwrite the recorded final
// price, so it fails with domain.ErrNegotiationNotActive instead.
func Accept(n domain.Negotiation, now time.Time) (domain.Negotiation, error) {
	if n.Status != domain.NegotiationActive {
		return domain.Negotiation{}, domain.ErrNegotiationNotActive
	}

	final := n.CurrentOffer
	out := n
	out.Status = domain.NegotiationAccepted
	out.FinalPrice = &final
	out.UpdatedAt = now.UTC()
	return out, nil
}

// sellerPitch picks the seller's justification line. High-end pairs get the
// authenticity pitch, everything else the condition pitch.
func sellerPitch(originalPrice float64) string {
	if originalPrice > 1000 {
		return "rare and authenticated"
	}
	return "in excellent condition"
}

// round2 rounds to two decimal places, half away from zero.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// wholeDollars renders a price rounded to whole dollars for message text.
func wholeDollars(v float64) string {
	return strconv.FormatInt(int64(math.Round(v)), 10)
}

// trimPrice renders a price with no trailing zeros ($2450, not $2450.00).
func trimPrice(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
