// Package policy holds the access control decisions shared by every service.
// All functions are pure and deny when the principal is nil.
package policy

import "github.com/primstrade/platform/internal/core/domain"

// Ownable is implemented by any resource that records its creator.
type Ownable interface {
	OwnerID() string
}

// CanReadResource allows admins and the owner. Public reads of approved
// signals do not go through here.
func CanReadResource(p *domain.Principal, r Ownable) bool {
	if p == nil || r == nil {
		return false
	}
	return p.IsAdmin() || isOwner(p, r)
}

// CanWriteResource allows the owner only. Admins change signals solely
// through the status transition.
func CanWriteResource(p *domain.Principal, r Ownable) bool {
	if p == nil || r == nil {
		return false
	}
	return isOwner(p, r)
}

// CanDeleteResource allows admins and the owner.
func CanDeleteResource(p *domain.Principal, r Ownable) bool {
	if p == nil || r == nil {
		return false
	}
	return p.IsAdmin() || isOwner(p, r)
}

// CanTransitionStatus allows admins only. No resource is involved: owning
// a signal never lets its author approve it.
func CanTransitionStatus(p *domain.Principal) bool {
	return p.IsAdmin()
}

// CanModerate is the author-or-admin rule for editing and deleting
// discussions and comments. It is evaluated per resource, so owning a
// discussion says nothing about the comments inside it.
func CanModerate(p *domain.Principal, r Ownable) bool {
	if p == nil || r == nil {
		return false
	}
	return p.IsAdmin() || isOwner(p, r)
}

func isOwner(p *domain.Principal, r Ownable) bool {
	owner := r.OwnerID()
	return owner != "" && owner == p.ID
}
