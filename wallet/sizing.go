package wallet

// Sizing selects how much of the available balance an order converts:
// everything, an absolute amount, or a percent fraction of the balance.
// The zero value behaves like All.
type Sizing struct {
	kind     sizingKind
	amount   float64
	fraction float64
}

type sizingKind int8

const (
	sizeAll sizingKind = iota
	sizeAmount
	sizeFraction
)

// All spends the whole available balance.
func All() Sizing { return Sizing{kind: sizeAll} }

// Amount spends an absolute amount, clipped to the available balance.
func Amount(v float64) Sizing { return Sizing{kind: sizeAmount, amount: v} }

// Fraction spends pct percent of the available balance.
func Fraction(pct float64) Sizing { return Sizing{kind: sizeFraction, fraction: pct} }

// Resolve turns the sizing into a concrete spend against balance.
// Results at or below zero mean "nothing to do" and callers treat the
// order as a no-op.
func (s Sizing) Resolve(balance float64) float64 {
	switch s.kind {
	case sizeAmount:
		if s.amount > balance {
			return balance
		}
		return s.amount
	case sizeFraction:
		return balance * s.fraction / 100
	default:
		return balance
	}
}
