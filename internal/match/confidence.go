package match

// confidence is the additive evidence score attached to a decision. It
// starts at the rule base, moves by fixed increments as conditions are
// checked, and clamps to [0,1]. It can never flip alert_needed.
type confidence struct {
	value float64
}

const baseConfidence = 0.7

func newConfidence() *confidence {
	return &confidence{value: baseConfidence}
}

func (c *confidence) add(delta float64) {
	c.value += delta
}

func (c *confidence) score() float64 {
	if c.value > 1 {
		return 1
	}
	if c.value < 0 {
		return 0
	}
	return c.value
}
