package model

// Ticker is a round countdown. It ticks while the timer is positive and
// Update is a no-op once it reaches zero.
//
// There is no "never expires" timer value. Effects that must never expire
// are kept in a separate permanent category by their owner.
type Ticker struct {
	timer int
}

// NewTicker starts a countdown of the given rounds.
func NewTicker(rounds int) Ticker {
	if rounds < 0 {
		rounds = 0
	}
	return Ticker{timer: rounds}
}

// IsTicking reports whether the timer is above zero.
func (t *Ticker) IsTicking() bool { return t.timer > 0 }

// Update decrements the timer by one while ticking.
func (t *Ticker) Update() {
	if t.IsTicking() {
		t.timer--
	}
}

// Reset restarts the countdown.
func (t *Ticker) Reset(rounds int) {
	if rounds < 0 {
		rounds = 0
	}
	t.timer = rounds
}

// Remaining returns rounds left.
func (t *Ticker) Remaining() int { return t.timer }
