// Package policy centralizes the authorization rules for the platform as
// pure decision functions. Every rule takes explicit actor and resource
// state and returns a Decision; nothing in here touches storage or HTTP.
package policy

import (
	"github.com/KhalidTheCoder/scarlet-aid-server/internal/domain/entity"
	"github.com/KhalidTheCoder/scarlet-aid-server/pkg/apperr"
)

// Decision is the outcome of an authorization check. A denied decision
// carries the taxonomy kind and a human-readable reason.
type Decision struct {
	Allowed bool
	Kind    apperr.Kind
	Reason  string
}

func Allow() Decision {
	return Decision{Allowed: true}
}

func Deny(kind apperr.Kind, reason string) Decision {
	return Decision{Kind: kind, Reason: reason}
}

// Err converts a denied decision into an application error; allowed
// decisions yield nil.
func (d Decision) Err() error {
	if d.Allowed {
		return nil
	}
	return apperr.New(d.Kind, d.Reason)
}

// RoleRule is a decision function keyed on the actor's directory role.
// Route middleware runs one of these against a fresh directory read.
type RoleRule func(role entity.Role) Decision

// CanCreateRequest admits request creation only for active accounts.
// A blocked actor is denied regardless of role.
func CanCreateRequest(actor *entity.User) Decision {
	if actor.Status != entity.UserActive {
		return Deny(apperr.Authorization, "blocked users cannot create requests")
	}
	return Allow()
}

// CanListAllRequests gates the full request listing and stats endpoints.
func CanListAllRequests(role entity.Role) Decision {
	if !role.Elevated() {
		return Deny(apperr.Authorization, "admin or volunteer role required")
	}
	return Allow()
}

// CanUpdateRequest admits arbitrary-field updates for the original
// requester or an admin. Field stripping of status and identity is the
// update operation's own responsibility.
func CanUpdateRequest(actor *entity.User, requesterEmail string) Decision {
	if actor.Email == requesterEmail || actor.Role == entity.RoleAdmin {
		return Allow()
	}
	return Deny(apperr.Authorization, "not allowed to update this request")
}

// CanTransitionRequest admits a status change for admins, volunteers, or
// the original requester. Validity of the target status value is checked
// separately as a validation concern.
func CanTransitionRequest(actor *entity.User, requesterEmail string) Decision {
	if actor.Role.Elevated() || actor.Email == requesterEmail {
		return Allow()
	}
	return Deny(apperr.Authorization, "not allowed to change this request's status")
}

// CanDeleteRequest admits deletion for the original requester or an admin.
func CanDeleteRequest(actor *entity.User, requesterEmail string) Decision {
	if actor.Email == requesterEmail || actor.Role == entity.RoleAdmin {
		return Allow()
	}
	return Deny(apperr.Authorization, "not allowed to delete this request")
}

// CanCommitDonation admits claiming a request. The status check runs
// before the ownership check: a non-pending request is unavailable no
// matter who asks.
func CanCommitDonation(actorEmail string, req *entity.DonationRequest) Decision {
	if req.Status != entity.RequestPending {
		return Deny(apperr.Conflict, "this request is no longer available for donation")
	}
	if req.RequesterEmail == actorEmail {
		return Deny(apperr.Authorization, "you cannot donate to your own request")
	}
	return Allow()
}

// CanManageUsers gates user status and role mutation. There is no
// self-service role escalation.
func CanManageUsers(role entity.Role) Decision {
	if role != entity.RoleAdmin {
		return Deny(apperr.Authorization, "admin role required")
	}
	return Allow()
}

// CanManageBlogs gates blog publishing, unpublishing, and deletion.
// Authorship grants no special rights; creation is open to any
// authenticated account.
func CanManageBlogs(role entity.Role) Decision {
	if role != entity.RoleAdmin {
		return Deny(apperr.Authorization, "admin role required")
	}
	return Allow()
}
