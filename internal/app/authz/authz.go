// Package authz is the single decision point for who may do what to which
// post. Handlers never check roles or ownership themselves; they call Decide
// (or ListScope) and translate the verdict into a response.
package authz

import (
	"pressroom/internal/common"
	"pressroom/internal/domain/model"
	"pressroom/internal/domain/repository"
)

// Identity is the verified claim set of an authenticated caller. A nil
// *Identity means the caller is anonymous.
type Identity struct {
	UserID string
	Email  string
	Role   string
	Name   string
}

type Operation int

const (
	OpCreate Operation = iota
	OpRead
	OpUpdate
	OpDelete
	OpList
)

// Target is the part of a post a decision needs.
type Target struct {
	AuthorID  string
	Published bool
}

// Decide evaluates (identity, operation, target) and returns nil on allow or
// a sentinel error naming the outcome:
//
//   - Create: authenticated authors only.
//   - Update/Delete: authenticated authors only, and only on their own posts.
//   - Read: anyone for published posts; the owner for drafts. A draft denial
//     is ErrNotFound, not ErrForbidden, so non-owners cannot probe for the
//     existence of private drafts.
//
// List has no single target; use ListScope.
func Decide(id *Identity, op Operation, target *Target) error {
	switch op {
	case OpCreate:
		if id == nil {
			return common.ErrUnauthorized
		}
		if id.Role != model.RoleAuthor {
			return common.ErrForbidden
		}
		return nil

	case OpUpdate, OpDelete:
		if id == nil {
			return common.ErrUnauthorized
		}
		if id.Role != model.RoleAuthor {
			return common.ErrForbidden
		}
		if target == nil || id.UserID != target.AuthorID {
			return common.ErrForbidden
		}
		return nil

	case OpRead:
		if target == nil {
			return common.ErrNotFound
		}
		if target.Published {
			return nil
		}
		if id != nil && id.UserID == target.AuthorID {
			return nil
		}
		return common.ErrNotFound

	case OpList:
		return nil
	}

	return common.ErrForbidden
}

// ListScope returns the store filter matching what the caller may see:
// published posts for everyone, plus the caller's own posts when the caller
// is an author.
func ListScope(id *Identity) repository.PostFilter {
	if id != nil && id.Role == model.RoleAuthor {
		return repository.PostFilter{ViewerID: id.UserID}
	}
	return repository.PostFilter{}
}
