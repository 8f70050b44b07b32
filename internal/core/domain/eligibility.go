package domain

import (
	"strings"

	"golang.org/x/text/cases"
)

// IsEligible decides whether voter may take part in election.
//
// Rules are applied in order and the first match wins: an unaccredited voter is
// never eligible; an election with neither state nor LGA is national; an
// election with only a state admits voters of that state; an election with an
// LGA admits voters of that LGA regardless of its state.
func IsEligible(voter *Voter, election *Election) bool {
	if voter == nil || election == nil || !voter.Accredited {
		return false
	}

	state := strings.TrimSpace(election.State)
	lga := strings.TrimSpace(election.LGA)

	switch {
	case state == "" && lga == "":
		return true
	case lga == "":
		return sameRegion(state, voter.State)
	default:
		return sameRegion(lga, voter.LGA)
	}
}

// CoversRegion is the geographic half of IsEligible, ignoring accreditation.
func CoversRegion(election *Election, state, lga string) bool {
	return IsEligible(&Voter{State: state, LGA: lga, Accredited: true}, election)
}

// sameRegion compares region names case-insensitively, ignoring surrounding
// whitespace.
func sameRegion(a, b string) bool {
	fold := cases.Fold()
	return fold.String(strings.TrimSpace(a)) == fold.String(strings.TrimSpace(b))
}
