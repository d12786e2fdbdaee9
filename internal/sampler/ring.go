package sampler

// sampleRing is a fixed-capacity ring of the most recent raw samples.
// Slots start out zeroed, which biases the very first average towards
// zero; the first K samples after startup are treated as warm-up.
type sampleRing struct {
	samples []int
	cursor  int
}

func newSampleRing(size int) *sampleRing {
	return &sampleRing{
		samples: make([]int, size),
	}
}

// add writes the given sample at the current cursor position and
// advances the cursor. Returns true when the cursor wrapped around,
// i.e. the ring just completed a full window.
func (r *sampleRing) add(sample int) bool {
	r.samples[r.cursor] = sample
	r.cursor = (r.cursor + 1) % len(r.samples)
	return r.cursor == 0
}

// average returns the arithmetic mean of all slots, truncated to int.
func (r *sampleRing) average() int {
	sum := 0
	for _, sample := range r.samples {
		sum += sample
	}
	return sum / len(r.samples)
}
