package domain

// Transition classifies one observed status change on a matchup.
type Transition int

const (
	// TransitionNone means no handling is required.
	TransitionNone Transition = iota
	// TransitionInProgress means the contest started; refresh running values only.
	TransitionInProgress
	// TransitionFinal means the contest is decided; settle every pick.
	TransitionFinal
	// TransitionStalled means the matchup entered an absorbing state; picks
	// stay PENDING until an administrator intervenes.
	TransitionStalled
)

// ClassifyTransition maps an observed status change to its settlement
// handling. FINAL is absorbing: a matchup that already settled never
// re-enters the pipeline, whatever the upstream reports afterwards.
func ClassifyTransition(prev, next MatchupStatus) Transition {
	if prev == next || prev == StatusFinal {
		return TransitionNone
	}
	switch {
	case next == StatusInProgress:
		return TransitionInProgress
	case next == StatusFinal:
		return TransitionFinal
	case next.Stalled():
		return TransitionStalled
	}
	return TransitionNone
}

// DetermineWinner applies the matchup's operator to home vs away final
// values. A side wins only when the comparison holds one way and not the
// other; a tie under any operator yields SideNone (push).
func DetermineWinner(op Operator, home, away float64) Side {
	homeWins := op.Compare(home, away)
	awayWins := op.Compare(away, home)
	switch {
	case homeWins && !awayWins:
		return SideHome
	case awayWins && !homeWins:
		return SideAway
	default:
		return SideNone
	}
}

// ResolvePick classifies a pick's side against the settled winner.
func ResolvePick(side, winner Side) PickStatus {
	if winner == SideNone {
		return PickPush
	}
	if side == winner {
		return PickWin
	}
	return PickLoss
}
