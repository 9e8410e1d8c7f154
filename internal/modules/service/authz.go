package service

import (
	"github.com/harborline/stafftrack/internal/pkg/errs"
	"github.com/harborline/stafftrack/internal/pkg/policy"
)

// authorize runs the policy table once for the request and converts a deny
// into the matching taxonomy error. The no-profile case keeps its distinct
// message so a provisioning gap never reads as a role failure.
func authorize(a policy.Actor, action policy.Action, res policy.Resource, own *policy.Ownership) error {
	d := policy.Authorize(a, action, res, own)
	if d.Allow {
		return nil
	}
	if d.Reason == policy.DenyUnauthenticated {
		return errs.Unauthorized("")
	}
	return errs.Forbidden(d.Reason.String())
}
