package channels

import (
	"fmt"
	"math/rand/v2"
	"slices"

	customerrors "channel-allocator/errors"
	"channel-allocator/models"
)

const (
	MinTotalChannels = 50
	MaxTotalChannels = 100

	// Tiers 1-2 are low priority, tiers 3-5 high priority.
	LowTierMin  = 1
	LowTierMax  = 2
	HighTierMin = 3
	HighTierMax = 5
)

// NewBudget reserves ceil(10%) of total for control channels and leaves the
// rest for voice.
func NewBudget(total int) (models.ChannelBudget, error) {
	if total < MinTotalChannels || total > MaxTotalChannels {
		return models.ChannelBudget{}, fmt.Errorf("%w: %d not in [%d,%d]",
			customerrors.ErrTotalChannelsOutOfRange, total, MinTotalChannels, MaxTotalChannels)
	}
	control := (total + 9) / 10
	return models.ChannelBudget{
		Total:   total,
		Control: control,
		Voice:   total - control,
	}, nil
}

// LowPriorityCount returns ceil(35% of voice).
func LowPriorityCount(voice int) int {
	if voice <= 0 {
		return 0
	}
	return (voice*35 + 99) / 100
}

// Generate builds a pool of voice channels with ids 1..voice in a random
// order. The first ceil(35%) channels receive a low tier, the remainder a
// high tier. The pool is returned in construction order, not sorted.
func Generate(rng *rand.Rand, voice int) models.ChannelPool {
	if voice <= 0 {
		return models.ChannelPool{}
	}

	ids := make([]models.ChannelID, voice)
	for i := range ids {
		ids[i] = models.ChannelID(i + 1)
	}
	shuffle(rng, ids)

	low := LowPriorityCount(voice)
	pool := make(models.ChannelPool, voice)
	for i, id := range ids {
		var tier int
		if i < low {
			tier = LowTierMin + rng.IntN(LowTierMax-LowTierMin+1)
		} else {
			tier = HighTierMin + rng.IntN(HighTierMax-HighTierMin+1)
		}
		pool[i] = models.Channel{ID: id, Tier: tier}
	}
	return pool
}

// shuffle is a Fisher-Yates pass from the last index down, swapping each
// element with a uniformly chosen index in [0, i].
func shuffle(rng *rand.Rand, ids []models.ChannelID) {
	for i := len(ids) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		ids[i], ids[j] = ids[j], ids[i]
	}
}

// Summarize splits pool ids into low and high priority lists sorted ascending.
func Summarize(pool models.ChannelPool) models.PoolSummary {
	summary := models.PoolSummary{
		Low:  make([]models.ChannelID, 0),
		High: make([]models.ChannelID, 0),
	}
	for _, ch := range pool {
		if ch.IsHighPriority() {
			summary.High = append(summary.High, ch.ID)
		} else {
			summary.Low = append(summary.Low, ch.ID)
		}
	}
	slices.Sort(summary.Low)
	slices.Sort(summary.High)
	return summary
}

// NewRand returns a generator seeded from seed. Each run owns its generator.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}
