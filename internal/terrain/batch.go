package terrain

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/dgravesa/go-parallel/parallel"
	"go.uber.org/zap"
)

// NewRand returns the PCG source used for request index stream under seed.
func NewRand(seed, stream uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, stream))
}

// GenerateBatch generates independent terrains in parallel. Request i draws from its
// own source NewRand(seed, i), so results do not depend on scheduling.
// Results keep request order; any failure is reported with its request index.
func GenerateBatch(reqs []Request, seed uint64, log *zap.Logger) ([]*Result, error) {
	results := make([]*Result, len(reqs))
	errs := make([]error, len(reqs))

	parallel.For(len(reqs), func(i, _ int) {
		g := NewGenerator(NewRand(seed, uint64(i)), log)
		res, err := g.Generate(reqs[i])
		if err != nil {
			errs[i] = fmt.Errorf("request %d: %w", i, err)
			return
		}
		results[i] = res
	})

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return results, nil
}
