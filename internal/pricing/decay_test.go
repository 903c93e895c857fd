package pricing

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sterlingcrispin/artblocks-subgraph/internal/domain"
)

func eth(wei string) *big.Int {
	v, ok := new(big.Int).SetString(wei, 10)
	if !ok {
		panic("invalid wei amount: " + wei)
	}
	return v
}

func TestTotalExponentialDecayDuration(t *testing.T) {
	tests := []struct {
		name            string
		startPrice      *big.Int
		basePrice       *big.Int
		halfLifeSeconds uint64
		want            uint64
	}{
		{
			// 3 whole half-lives, then 40% of the fourth
			name:            "one ether down to a tenth",
			startPrice:      eth("1000000000000000000"),
			basePrice:       eth("100000000000000000"),
			halfLifeSeconds: 600,
			want:            2040,
		},
		{
			name:            "exactly one half-life",
			startPrice:      big.NewInt(2),
			basePrice:       big.NewInt(1),
			halfLifeSeconds: 300,
			want:            300,
		},
		{
			name:            "two whole half-lives",
			startPrice:      eth("4000000000000000000"),
			basePrice:       eth("1000000000000000000"),
			halfLifeSeconds: 600,
			want:            1200,
		},
		{
			// halfway between 1 ether and 0.5 ether
			name:            "partial half-life interpolated",
			startPrice:      eth("1000000000000000000"),
			basePrice:       eth("750000000000000000"),
			halfLifeSeconds: 600,
			want:            300,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := TotalExponentialDecayDuration(tt.startPrice, tt.basePrice, tt.halfLifeSeconds)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTotalExponentialDecayDurationInvalidRange(t *testing.T) {
	tests := []struct {
		name       string
		startPrice *big.Int
		basePrice  *big.Int
	}{
		{"start equals base", big.NewInt(100), big.NewInt(100)},
		{"start below base", big.NewInt(50), big.NewInt(100)},
		{"zero base", big.NewInt(100), big.NewInt(0)},
		{"negative base", big.NewInt(100), big.NewInt(-1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := TotalExponentialDecayDuration(tt.startPrice, tt.basePrice, 600)
			assert.ErrorIs(t, err, domain.ErrInvalidPriceRange)
		})
	}
}
