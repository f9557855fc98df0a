package flatqueue

// defaultGrowthFactor is applied by growth and pop-triggered compaction when
// no WithGrowthFactor option is given. An empirical tuning choice, not a
// correctness requirement.
const defaultGrowthFactor = 1.5

type settings struct {
	growth   float64
	capacity int
}

// Option configures a queue at construction time.
type Option func(*settings)

// WithGrowthFactor sets the multiplier applied to the live length when the
// buffer grows or compacts. Factors at or below 1 are rejected; they could
// not make progress on a full buffer.
func WithGrowthFactor(f float64) Option {
	return func(s *settings) {
		if f > 1 {
			s.growth = f
		}
	}
}

// WithCapacity pre-sizes the backing buffer, like an immediate Reserve.
func WithCapacity(n int) Option {
	return func(s *settings) {
		if n > 0 {
			s.capacity = n
		}
	}
}

func applyOptions(opts []Option) settings {
	s := settings{growth: defaultGrowthFactor}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}
