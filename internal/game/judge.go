package game

// Outcome of one judged round.
type Outcome string

const (
	OutcomeTie   Outcome = "tie"
	OutcomeSeat1 Outcome = "seat1"
	OutcomeSeat2 Outcome = "seat2"
)

// Judge determines the result of seat 1 playing a against seat 2 playing b.
// Total over all 9 symbol pairs and free of side effects.
func Judge(a, b Symbol) Outcome {
	if a == b {
		return OutcomeTie
	}

	switch a {
	case Rock:
		if b == Scissors {
			return OutcomeSeat1
		}
	case Paper:
		if b == Rock {
			return OutcomeSeat1
		}
	case Scissors:
		if b == Paper {
			return OutcomeSeat1
		}
	}

	return OutcomeSeat2
}
