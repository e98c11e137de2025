package service

import (
	"math/rand/v2"
	"sync"
	"time"

	"github.com/octobees/food-recommender/internal/entity"
)

// Forecaster supplies the weather for a target time.
type Forecaster interface {
	Forecast(at time.Time) entity.Weather
}

// SyntheticForecaster derives a seasonal guess from the month alone. Results
// are flagged Synthetic.
type SyntheticForecaster struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewSyntheticForecaster seeds from src, or from the runtime when src is nil.
func NewSyntheticForecaster(src rand.Source) *SyntheticForecaster {
	if src == nil {
		src = rand.NewPCG(rand.Uint64(), rand.Uint64())
	}
	return &SyntheticForecaster{rnd: rand.New(src)}
}

func (f *SyntheticForecaster) Forecast(at time.Time) entity.Weather {
	switch at.Month() {
	case time.June, time.July:
		return entity.Weather{Description: "비/흐림", TempC: f.between(22, 28), Synthetic: true}
	case time.December, time.January, time.February:
		return entity.Weather{Description: "눈/추움", TempC: f.between(-10, 0), Synthetic: true}
	default:
		return entity.Weather{Description: "쾌적", TempC: f.between(12, 22), Synthetic: true}
	}
}

// between returns an int in [lo, hi].
func (f *SyntheticForecaster) between(lo, hi int) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return lo + f.rnd.IntN(hi-lo+1)
}
