// Package statistics summarises a series of observations by count, sum and
// sum of squares so that workers can accumulate independently and merge.
package statistics

import "math"

// z95 is the two-sided 95% normal quantile.
const z95 = 1.96

// Sample tracks enough of a series to report its mean and spread.
type Sample struct {
	N     int
	Sum   float64
	SumSq float64 // Sum of squares for variance calculation
}

// Add incorporates one observation.
func (s *Sample) Add(x float64) {
	s.N++
	s.Sum += x
	s.SumSq += x * x
}

// Merge adds other's observations into s.
func (s *Sample) Merge(other Sample) {
	s.N += other.N
	s.Sum += other.Sum
	s.SumSq += other.SumSq
}

// Mean returns the arithmetic mean of the observations
func (s Sample) Mean() float64 {
	if s.N == 0 {
		return 0
	}
	return s.Sum / float64(s.N)
}

// Variance returns the sample variance of the observations
func (s Sample) Variance() float64 {
	if s.N < 2 {
		return 0
	}
	mean := s.Mean()
	v := (s.SumSq - float64(s.N)*mean*mean) / float64(s.N-1)
	// Rounding can push a zero variance slightly negative.
	return max(v, 0)
}

// StdDev returns the sample standard deviation
func (s Sample) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// StdError returns the standard error of the mean
func (s Sample) StdError() float64 {
	if s.N == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.N))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean
func (s Sample) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := z95 * s.StdError()
	return mean - margin, mean + margin
}
