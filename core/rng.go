package core

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/crypto/chacha20"
)

// RNG is a deterministic, forkable, counter-based pseudo-random stream.
// It wraps golang.org/x/crypto/chacha20 as the underlying stream cipher:
// the 64-bit seed is mixed into a 32-byte key via xxhash, the nonce is
// fixed at zero, and successive draws simply pull further bytes from the
// keystream. State is exactly (seed, wordPosition, forkCounter) and can
// be snapshotted/restored in O(1) regardless of how many values have
// been drawn, by re-deriving the cipher and seeking its block counter
// directly to wordPosition's block via (*chacha20.Cipher).SetCounter,
// discarding at most one block's worth of words for the remainder.
type RNG struct {
	seed         uint64
	wordPosition uint64
	forkCounter  uint64
	cipher       *chacha20.Cipher
}

// NewRNG creates a stream seeded from a 64-bit seed.
func NewRNG(seed uint64) *RNG {
	r := &RNG{seed: seed}
	r.reinit()
	return r
}

// wordsPerBlock is ChaCha20's fixed block size (64 bytes, per RFC 8439)
// in 32-bit words; the package does not export this as a constant.
const wordsPerBlock = 64 / 4

func (r *RNG) reinit() {
	r.cipher = newCipher(r.seed)
	block := r.wordPosition / wordsPerBlock
	remainder := r.wordPosition % wordsPerBlock
	if block > 0 {
		r.cipher.SetCounter(uint32(block))
	}
	if remainder > 0 {
		discard(r.cipher, remainder)
	}
}

func newCipher(seed uint64) *chacha20.Cipher {
	var key [chacha20.KeySize]byte
	var seedBytes [8]byte
	binary.LittleEndian.PutUint64(seedBytes[:], seed)
	// Spread the 8-byte seed across the 32-byte key via xxhash so
	// nearby seeds do not produce related keystreams.
	for i := 0; i < 4; i++ {
		h := xxhash.New()
		h.Write(seedBytes[:])
		h.Write([]byte{byte(i)})
		binary.LittleEndian.PutUint64(key[i*8:(i+1)*8], h.Sum64())
	}
	var nonce [chacha20.NonceSize]byte
	c, err := chacha20.NewUnauthenticatedCipher(key[:], nonce[:])
	if err != nil {
		// Key/nonce sizes are fixed constants above; this cannot fail.
		panic(err)
	}
	return c
}

// discard advances the cipher's keystream by n 32-bit words without
// exposing the bytes, by XOR-ing a throwaway buffer.
func discard(c *chacha20.Cipher, words uint64) {
	const chunk = 4096
	buf := make([]byte, chunk)
	remaining := words * 4
	for remaining > 0 {
		n := uint64(chunk)
		if remaining < n {
			n = remaining
		}
		c.XORKeyStream(buf[:n], buf[:n])
		remaining -= n
	}
}

// nextWord draws the next 32-bit word from the keystream.
func (r *RNG) nextWord() uint32 {
	var buf [4]byte
	r.cipher.XORKeyStream(buf[:], buf[:])
	r.wordPosition++
	return binary.LittleEndian.Uint32(buf[:])
}

// nextUint64 draws two words worth of entropy.
func (r *RNG) nextUint64() uint64 {
	hi := uint64(r.nextWord())
	lo := uint64(r.nextWord())
	return hi<<32 | lo
}

// Intn returns a uniform value in [0, n). Panics if n <= 0.
func (r *RNG) Intn(n int) int {
	if n <= 0 {
		panic("core: RNG.Intn requires n > 0")
	}
	return int(r.nextUint64() % uint64(n))
}

// IntRange returns a uniform value in [lo, hi].
func (r *RNG) IntRange(lo, hi int) int {
	if hi < lo {
		panic("core: RNG.IntRange requires hi >= lo")
	}
	return lo + r.Intn(hi-lo+1)
}

// Bool returns true with probability p (clamped to [0,1]).
func (r *RNG) Bool(p float64) bool {
	if p <= 0 {
		return false
	}
	if p >= 1 {
		return true
	}
	const resolution = 1 << 24
	return r.Intn(resolution) < int(p*resolution)
}

// Shuffle performs a Fisher-Yates shuffle of n elements using swap.
func (r *RNG) Shuffle(n int, swap func(i, j int)) {
	for i := n - 1; i > 0; i-- {
		j := r.Intn(i + 1)
		swap(i, j)
	}
}

// WeightedChoice samples an index with probability proportional to
// weights[i]. Returns -1 if weights is empty or all non-positive.
func (r *RNG) WeightedChoice(weights []float64) int {
	total := 0.0
	for _, w := range weights {
		if w > 0 {
			total += w
		}
	}
	if total <= 0 {
		return -1
	}
	const resolution = 1 << 24
	target := float64(r.Intn(resolution)) / resolution * total
	acc := 0.0
	for i, w := range weights {
		if w <= 0 {
			continue
		}
		acc += w
		if target < acc {
			return i
		}
	}
	for i := len(weights) - 1; i >= 0; i-- {
		if weights[i] > 0 {
			return i
		}
	}
	return -1
}

// Fork produces an independent stream whose seed is a deterministic
// hash of the parent's seed and the parent's current fork counter. The
// parent's fork counter is advanced so repeated forks diverge; the
// child's own fork counter and word position start at zero.
func (r *RNG) Fork() *RNG {
	seed := hashSeedAndCounter(r.seed, r.forkCounter)
	r.forkCounter++
	return NewRNG(seed)
}

// ForContext produces an independent stream whose seed hashes the
// parent's seed with an arbitrary string key, independent of the fork
// counter. Useful for deriving a stable sub-stream per named purpose
// (e.g. "shuffle", "ai-opponent") rather than per call-site ordering.
func (r *RNG) ForContext(key string) *RNG {
	h := xxhash.New()
	var seedBytes [8]byte
	binary.LittleEndian.PutUint64(seedBytes[:], r.seed)
	h.Write(seedBytes[:])
	h.Write([]byte(key))
	return NewRNG(h.Sum64())
}

func hashSeedAndCounter(seed, counter uint64) uint64 {
	h := xxhash.New()
	var buf [16]byte
	binary.LittleEndian.PutUint64(buf[0:8], seed)
	binary.LittleEndian.PutUint64(buf[8:16], counter)
	h.Write(buf[:])
	return h.Sum64()
}

// RNGState is the O(1) serializable snapshot of an RNG.
type RNGState struct {
	Seed         uint64
	WordPosition uint64
	ForkCounter  uint64
}

// State returns a snapshot sufficient to reconstruct this RNG exactly,
// including all future draws.
func (r *RNG) State() RNGState {
	return RNGState{Seed: r.seed, WordPosition: r.wordPosition, ForkCounter: r.forkCounter}
}

// RestoreRNG reconstructs an RNG from a previously captured snapshot.
func RestoreRNG(s RNGState) *RNG {
	r := &RNG{seed: s.Seed, wordPosition: s.WordPosition, forkCounter: s.ForkCounter}
	r.reinit()
	return r
}

// softmaxSample draws an index from values using softmax(values/temperature).
// Exposed for MCTS's temperature-gated final action selection.
func softmaxSample(rng *RNG, values []float64, temperature float64) int {
	if len(values) == 0 {
		return -1
	}
	max := values[0]
	for _, v := range values[1:] {
		if v > max {
			max = v
		}
	}
	weights := make([]float64, len(values))
	for i, v := range values {
		weights[i] = math.Exp((v - max) / temperature)
	}
	idx := rng.WeightedChoice(weights)
	if idx < 0 {
		idx = 0
	}
	return idx
}

// SoftmaxSample is the exported form of softmaxSample, used by the MCTS
// search loop to sample a root action by visit-count softmax.
func SoftmaxSample(rng *RNG, values []float64, temperature float64) int {
	return softmaxSample(rng, values, temperature)
}
