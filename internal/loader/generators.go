package loader

import (
	"math/rand"

	"github.com/pingcap/go-ycsb/pkg/generator"
)

// rowGen bundles the per-job random state a loader worker needs: a
// private *rand.Rand (never the shared global source, so jobs never
// contend on a lock) plus the teacher's reused-generator idiom
// (benchmark/ycsb.go keeps one *generator.Zipfian per client rather
// than allocating one per draw). Here the distribution is uniform,
// never Zipfian: the loader's row values are frozen-uniform by
// contract, not skewed.
type rowGen struct {
	rng *rand.Rand
	// uniform caches one generator.Uniform per distinct [min,max]
	// range requested, so a repeatedly-drawn column (s_quantity,
	// i_im_id, ...) reuses the same generator across its whole batch
	// instead of allocating a fresh one per row.
	uniform map[[2]int64]*generator.Uniform
}

func newRowGen(seed int64) *rowGen {
	return &rowGen{
		rng:     rand.New(rand.NewSource(seed)),
		uniform: make(map[[2]int64]*generator.Uniform),
	}
}

// uniformInt draws from a [min,max] uniform distribution, reusing a
// cached generator.Uniform for that exact range.
func (g *rowGen) uniformInt(min, max int64) int64 {
	key := [2]int64{min, max}
	u, ok := g.uniform[key]
	if !ok {
		u = generator.NewUniform(min, max)
		g.uniform[key] = u
	}
	return u.Next(g.rng)
}

const alnum = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// randomAlphaString returns a random alphanumeric string whose length
// is uniformly drawn from [minLen, maxLen].
func (g *rowGen) randomAlphaString(minLen, maxLen int) string {
	n := maxLen
	if minLen < maxLen {
		n = int(g.uniformInt(int64(minLen), int64(maxLen)))
	}
	b := make([]byte, n)
	for i := range b {
		b[i] = alnum[g.rng.Intn(len(alnum))]
	}
	return string(b)
}

// randomZip returns a 9-character zip code "NNNN11111".
func (g *rowGen) randomZip() string {
	part := g.uniformInt(1, 9999)
	return fmt0000(int(part)) + "11111"
}

func fmt0000(n int) string {
	s := itoa(n)
	for len(s) < 4 {
		s = "0" + s
	}
	return s
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	var b []byte
	for n > 0 {
		b = append([]byte{byte('0' + n%10)}, b...)
		n /= 10
	}
	return string(b)
}

// randomState returns two distinct random uppercase letters.
func (g *rowGen) randomState() string {
	const letters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	a := g.rng.Intn(len(letters))
	b := a
	for b == a {
		b = g.rng.Intn(len(letters))
	}
	return string(letters[a]) + string(letters[b])
}

var lastSyllables = [10]string{"BAR", "OUGHT", "ABLE", "PRIS", "PRES", "ESE", "ANTI", "CALLY", "ATION", "EING"}

// genLast deterministically derives a customer's surname from a
// customer number, the classic TPC-C non-uniform "last name" scheme.
// When customerID >= 1000 a fresh random 0..999 draw is used instead
// (the NURand-shaped input used by the Payment/Order-Status lookup).
func (g *rowGen) genLast(customerID int) string {
	id := customerID
	if customerID >= 1000 {
		id = g.rng.Intn(1000)
	}
	digits := fmt000(id)
	var last string
	for _, c := range digits {
		last += lastSyllables[c-'0']
	}
	return last
}

func fmt000(n int) string {
	s := itoa(n)
	for len(s) < 3 {
		s = "0" + s
	}
	return s
}

// maybeEmbedOriginal has a 10% chance of overwriting 8 characters of s
// (at a random interior offset) with the literal "ORIGINAL", matching
// the TPC-C item/stock "ORIGINAL" data-distribution rule.
func (g *rowGen) maybeEmbedOriginal(s string) string {
	if g.rng.Intn(100) >= 10 {
		return s
	}
	if len(s) <= 9 {
		return s
	}
	pos := g.rng.Intn(len(s) - 9)
	b := []byte(s)
	copy(b[pos:pos+8], "ORIGINAL")
	return string(b)
}
