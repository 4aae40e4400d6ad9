// Package indicator provides streaming technical indicators computed one bar
// at a time.
package indicator

// SMA is a simple moving average over a fixed window. It is not ready until
// it has seen a full window of samples; callers must check Ready before
// acting on Value.
type SMA struct {
	period int
	window []float64
	next   int
	count  int
	sum    float64
}

// NewSMA creates a simple moving average with the given period. Period must
// be at least 1.
func NewSMA(period int) *SMA {
	if period < 1 {
		period = 1
	}
	return &SMA{
		period: period,
		window: make([]float64, period),
	}
}

// Period returns the window length.
func (s *SMA) Period() int { return s.period }

// Update pushes one sample into the window, evicting the oldest once the
// window is full.
func (s *SMA) Update(v float64) {
	if s.count == s.period {
		s.sum -= s.window[s.next]
	} else {
		s.count++
	}
	s.window[s.next] = v
	s.sum += v
	s.next = (s.next + 1) % s.period
}

// Ready reports whether a full window of samples has been seen.
func (s *SMA) Ready() bool {
	return s.count == s.period
}

// Value returns the mean of the current window. Before Ready it returns the
// mean of the samples seen so far.
func (s *SMA) Value() float64 {
	if s.count == 0 {
		return 0
	}
	return s.sum / float64(s.count)
}
