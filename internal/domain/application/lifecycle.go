package application

import (
	"fmt"

	"sba-portal/internal/domain/apperr"
	"sba-portal/internal/domain/auth"
)

type Action string

const (
	ActionSubmit      Action = "submit"
	ActionStartReview Action = "start_review"
	ActionApprove     Action = "approve"
	ActionDecline     Action = "decline"
	ActionFund        Action = "fund"
)

type rule struct {
	role auth.Role
	from []Status
	to   Status
}

var rules = map[Action]rule{
	ActionSubmit:      {role: auth.RoleBorrower, from: []Status{StatusStarted}, to: StatusDocumentsPending},
	ActionStartReview: {role: auth.RoleAdmin, from: []Status{StatusDocumentsPending}, to: StatusUnderReview},
	ActionApprove:     {role: auth.RoleAdmin, from: []Status{StatusDocumentsPending, StatusUnderReview}, to: StatusApproved},
	ActionDecline:     {role: auth.RoleAdmin, from: []Status{StatusDocumentsPending, StatusUnderReview}, to: StatusDeclined},
	ActionFund:        {role: auth.RoleAdmin, from: []Status{StatusApproved}, to: StatusFunded},
}

func ParseAction(raw string) (Action, error) {
	a := Action(raw)
	if _, ok := rules[a]; !ok {
		return "", fmt.Errorf("%w: unknown action %q", apperr.ErrInvalidTransition, raw)
	}
	return a, nil
}

// Next resolves the status reached by applying action to from on behalf of role.
// Preconditions that need more than the status (document completeness for
// submit) are the caller's responsibility and are checked after Next succeeds.
func Next(from Status, action Action, role auth.Role) (Status, error) {
	r, ok := rules[action]
	if !ok {
		return "", fmt.Errorf("%w: unknown action %q", apperr.ErrInvalidTransition, action)
	}
	if role != r.role {
		return "", fmt.Errorf("%w: %s may not %s an application", apperr.ErrUnauthorized, role, action)
	}
	for _, s := range r.from {
		if s == from {
			return r.to, nil
		}
	}
	return "", fmt.Errorf("%w: cannot %s an application in %s", apperr.ErrInvalidTransition, action, from)
}

// Actions lists what role may do to an application currently in from.
func Actions(from Status, role auth.Role) []Action {
	var out []Action
	for _, a := range []Action{ActionSubmit, ActionStartReview, ActionApprove, ActionDecline, ActionFund} {
		if _, err := Next(from, a, role); err == nil {
			out = append(out, a)
		}
	}
	return out
}
