package repository

// Default upper bound for TopN.
const defaultMaxLimit = 500

// Option applies a configuration option to the MemoryStore.
type Option func(*MemoryStore)

// WithMaxLimit sets the largest n accepted by TopN.
func WithMaxLimit(n int) Option {
	return func(s *MemoryStore) {
		if n > 0 {
			s.maxLimit = n
		}
	}
}
