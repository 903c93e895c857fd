// Package pricing derives timing facts from Dutch auction parameters.
package pricing

import (
	"math/big"

	"github.com/sterlingcrispin/artblocks-subgraph/internal/domain"
)

// interpolation granularity for the final partial half-life
var fixedPointScale = big.NewInt(100_000)

// TotalExponentialDecayDuration returns the number of seconds an exponential
// decay auction takes to fall from startPrice to basePrice, with the price halving
// every halfLifeSeconds. Whole half-lives are counted exactly; the remainder is
// resolved by linear interpolation inside the final half-life at 1e5 fixed-point
// granularity.
//
// Returns domain.ErrInvalidPriceRange unless startPrice > basePrice > 0.
func TotalExponentialDecayDuration(startPrice, basePrice *big.Int, halfLifeSeconds uint64) (uint64, error) {
	if basePrice.Sign() <= 0 || startPrice.Cmp(basePrice) <= 0 {
		return 0, domain.ErrInvalidPriceRange
	}

	price := new(big.Int).Set(startPrice)
	halfLives := uint64(0)
	for price.Cmp(basePrice) > 0 {
		price.Rsh(price, 1)
		halfLives++
	}

	// price is now the first halved value at or below basePrice; the previous
	// halving step brackets basePrice from above
	priceBefore := new(big.Int).Lsh(price, 1)

	// fraction of the final half-life needed to reach basePrice, in units of
	// 1/fixedPointScale
	span := new(big.Int).Sub(priceBefore, price)
	drop := new(big.Int).Sub(priceBefore, basePrice)
	frac := new(big.Int).Mul(drop, fixedPointScale)
	frac.Div(frac, span)

	whole := (halfLives - 1) * halfLifeSeconds

	partial := new(big.Int).Mul(frac, new(big.Int).SetUint64(halfLifeSeconds))
	partial.Div(partial, fixedPointScale)

	return whole + partial.Uint64(), nil
}
