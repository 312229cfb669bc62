package booking

import (
	"fmt"

	"rentfleet/internal/domain/user"
)

// transitionTable is the complete status state machine, keyed by the role
// of the actor requesting the transition. Anything not listed here is
// forbidden, including self-transitions.
var transitionTable = map[user.Role]map[Status][]Status{
	user.RoleRenter: {
		StatusPendingRenterApproval: {
			StatusApprovedByRenter,
			StatusRejectedByRenter,
			StatusSentBackToClient,
		},
		StatusSentBackToClient: {
			StatusApprovedByRenter,
			StatusRejectedByRenter,
		},
	},
	user.RoleClient: {
		StatusPendingRenterApproval: {
			StatusCanceledByClient,
		},
		StatusSentBackToClient: {
			StatusPendingRenterApproval,
			StatusCanceledByClient,
		},
		StatusApprovedByRenter: {
			StatusCanceledByClient,
		},
	},
}

// TransitionError names the offending role/status pair.
type TransitionError struct {
	Role    user.Role
	Current Status
	Target  Status
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("role %s cannot transition booking from %s to %s", e.Role, e.Current, e.Target)
}

func CanTransition(current, next Status, role user.Role) bool {
	allowed, ok := transitionTable[role][current]
	if !ok {
		return false
	}
	for _, s := range allowed {
		if s == next {
			return true
		}
	}
	return false
}
