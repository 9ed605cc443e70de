package negotiation

import (
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RishabhV28/sneakdeal/internal/domain"
)

func testListing(price float64) domain.Listing {
	return domain.Listing{
		ID:              "sn-1",
		Name:            `Nike Air Jordan 1 Retro High "Chicago"`,
		Price:           price,
		SellerID:        "seller-1",
		AIDealAvailable: true,
	}
}

func TestInitiateOpeningOffer(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		price float64
		want  float64
	}{
		// Below $2000 the 15% cut is the smaller concession.
		{"percent discount wins", 185.00, 157.25},
		{"percent discount at 1000", 1000.00, 850.00},
		// Above $2000 the flat $300 cut is smaller.
		{"flat discount wins", 2450.00, 2150.00},
		{"flat discount high end", 4850.00, 4550.00},
		// Exactly $2000: both branches agree.
		{"crossover", 2000.00, 1700.00},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := Initiate(testListing(tt.price), "buyer-1", now)
			require.NoError(t, err)
			assert.Equal(t, tt.want, n.CurrentOffer)
			assert.Equal(t, tt.price, n.OriginalPrice)
		})
	}
}

func TestInitiateSeedsNegotiation(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	n, err := Initiate(testListing(2450), "buyer-1", now)
	require.NoError(t, err)

	assert.Empty(t, n.ID, "id assignment belongs to the caller")
	assert.Equal(t, "sn-1", n.SneakerID)
	assert.Equal(t, "buyer-1", n.BuyerID)
	assert.Equal(t, "seller-1", n.SellerID)
	assert.Equal(t, domain.NegotiationActive, n.Status)
	assert.Nil(t, n.FinalPrice)
	assert.Equal(t, now, n.CreatedAt)
	assert.Equal(t, now, n.UpdatedAt)

	require.Len(t, n.Messages, 1)
	msg := n.Messages[0]
	assert.Equal(t, "1", msg.ID)
	assert.Equal(t, domain.MessageAI, msg.Type)
	assert.Equal(t, now.Format(time.RFC3339), msg.Timestamp)
	// Market average is 90% of asking, quoted in whole dollars.
	assert.Contains(t, msg.Message, "The current market average is $2205.")
	assert.Contains(t, msg.Message, `Nike Air Jordan 1 Retro High "Chicago"`)
	assert.Contains(t, msg.Message, "$2450.")
}

func TestInitiateRequiresAIDeal(t *testing.T) {
	listing := testListing(2450)
	listing.AIDealAvailable = false

	_, err := Initiate(listing, "buyer-1", time.Now())
	assert.ErrorIs(t, err, domain.ErrAIDealUnavailable)
}

func TestContinueOneRound(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	n, err := Initiate(testListing(2450), "buyer-1", now)
	require.NoError(t, err)
	require.Equal(t, 2150.00, n.CurrentOffer)

	later := now.Add(time.Minute)
	updated, err := Continue(n, later)
	require.NoError(t, err)

	// Seller meets halfway: 2150 + (2450-2150)*0.5 = 2300.
	// AI concedes 70% of that move: 2150 + (2300-2150)*0.7 = 2255.
	assert.Equal(t, 2255.00, updated.CurrentOffer)
	assert.Equal(t, domain.NegotiationActive, updated.Status)
	assert.Equal(t, later, updated.UpdatedAt)

	require.Len(t, updated.Messages, 3)
	sellerMsg, aiMsg := updated.Messages[1], updated.Messages[2]
	assert.Equal(t, "2", sellerMsg.ID)
	assert.Equal(t, domain.MessageSeller, sellerMsg.Type)
	assert.Contains(t, sellerMsg.Message, "$2300")
	assert.Contains(t, sellerMsg.Message, "rare and authenticated")
	assert.Equal(t, "3", aiMsg.ID)
	assert.Equal(t, domain.MessageAI, aiMsg.Type)
	assert.Contains(t, aiMsg.Message, "$2255")

	// The input value is untouched.
	assert.Len(t, n.Messages, 1)
	assert.Equal(t, 2150.00, n.CurrentOffer)
}

func TestContinueSellerPitchByPrice(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Second)

	cheap, err := Initiate(testListing(185), "buyer-1", now)
	require.NoError(t, err)
	cheap, err = Continue(cheap, now)
	require.NoError(t, err)
	assert.Contains(t, cheap.Messages[1].Message, "in excellent condition")

	pricey, err := Initiate(testListing(1000.01), "buyer-1", now)
	require.NoError(t, err)
	pricey, err = Continue(pricey, now)
	require.NoError(t, err)
	assert.Contains(t, pricey.Messages[1].Message, "rare and authenticated")
}

func TestContinueConvergesWithoutReachingAsking(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Second)

	n, err := Initiate(testListing(2450), "buyer-1", now)
	require.NoError(t, err)

	prev := n.CurrentOffer
	for round := 1; round <= 10; round++ {
		n, err = Continue(n, now.Add(time.Duration(round)*time.Minute))
		require.NoError(t, err)

		assert.Greater(t, n.CurrentOffer, prev, "round %d must raise the offer", round)
		assert.Less(t, n.CurrentOffer, n.OriginalPrice, "round %d must stay below asking", round)
		prev = n.CurrentOffer
	}

	// Message ids stay contiguous: 1 seed + 2 per round.
	require.Len(t, n.Messages, 21)
	for i, msg := range n.Messages {
		assert.Equal(t, strconv.Itoa(i+1), msg.ID)
	}
}

func TestAccept(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Second)

	n, err := Initiate(testListing(2450), "buyer-1", now)
	require.NoError(t, err)
	n, err = Continue(n, now)
	require.NoError(t, err)

	accepted, err := Accept(n, now.Add(time.Minute))
	require.NoError(t, err)

	assert.Equal(t, domain.NegotiationAccepted, accepted.Status)
	require.NotNil(t, accepted.FinalPrice)
	assert.Equal(t, 2255.00, *accepted.FinalPrice)
	// No message is appended on accept.
	assert.Len(t, accepted.Messages, 3)
}

func TestTerminalNegotiationRejectsFurtherSteps(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Second)

	n, err := Initiate(testListing(185), "buyer-1", now)
	require.NoError(t, err)
	accepted, err := Accept(n, now)
	require.NoError(t, err)

	_, err = Continue(accepted, now)
	assert.True(t, errors.Is(err, domain.ErrNegotiationNotActive))

	_, err = Accept(accepted, now)
	assert.True(t, errors.Is(err, domain.ErrNegotiationNotActive))
	// The recorded final price survives the failed re-accept.
	require.NotNil(t, accepted.FinalPrice)
	assert.Equal(t, 157.25, *accepted.FinalPrice)
}
