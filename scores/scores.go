package scores

// Scores counts completed rallies won by each side.
type Scores struct {
	Left  int `json:"left" msgpack:"left"`
	Right int `json:"right" msgpack:"right"`
}

// Reset zeroes both counters.
func (s *Scores) Reset() {
	s.Left = 0
	s.Right = 0
}
