package httpclient

import "time"

// linearBackOff waits base*max(multiplier*attempt, 1) before each retry, attempt counting from 0.
type linearBackOff struct {
	base       time.Duration
	multiplier int
	attempt    int
}

func newLinearBackOff(base time.Duration, multiplier int) *linearBackOff {
	return &linearBackOff{base: base, multiplier: multiplier}
}

func (b *linearBackOff) NextBackOff() time.Duration {
	wait := b.base * time.Duration(max(b.multiplier*b.attempt, 1))
	b.attempt++
	return wait
}

func (b *linearBackOff) Reset() {
	b.attempt = 0
}
