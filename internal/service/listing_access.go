package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/DronKashyap/DK-PropertyListings/internal/auth"
	"github.com/DronKashyap/DK-PropertyListings/internal/model"
	"github.com/DronKashyap/DK-PropertyListings/internal/repository"
)

// Decision is the outcome of an ownership check for a listing mutation.
// The zero value denies.
type Decision int

const (
	DecisionForbidden Decision = iota
	DecisionNotFound
	DecisionAllowed
)

func (d Decision) String() string {
	switch d {
	case DecisionAllowed:
		return "allowed"
	case DecisionNotFound:
		return "not found"
	default:
		return "forbidden"
	}
}

// Operation names the mutation being attempted. It only affects the message
// shown to an unauthorized caller.
type Operation string

const (
	OpUpdate Operation = "update"
	OpDelete Operation = "delete"
)

// ListingAccess enforces the ownership invariant: a listing may be updated
// or deleted only by the user that created it. It holds no state of its own;
// every call is a function of the principal and the current listing row.
type ListingAccess struct {
	listings *repository.ListingRepository
}

func NewListingAccess(lr *repository.ListingRepository) *ListingAccess {
	return &ListingAccess{listings: lr}
}

// AuthorizeMutation looks up the listing and decides whether principal may
// perform op on it. A missing listing and a listing owned by someone else
// are distinct decisions here; the HTTP layer chooses how to surface them.
func (s *ListingAccess) AuthorizeMutation(ctx context.Context, p auth.Principal, listingID int64, op Operation) (Decision, error) {
	listing, err := s.listings.GetByID(ctx, listingID)
	if errors.Is(err, repository.ErrNotFound) {
		return DecisionNotFound, nil
	}
	if err != nil {
		return DecisionForbidden, fmt.Errorf("ListingAccess.AuthorizeMutation(%s): %w", op, err)
	}
	if listing.UserID != p.UserID {
		return DecisionForbidden, nil
	}
	return DecisionAllowed, nil
}

// OwnerFilter scopes a listing query to rows owned by the principal.
func (s *ListingAccess) OwnerFilter(p auth.Principal) repository.ListingFilter {
	owner := p.UserID
	return repository.ListingFilter{OwnerID: &owner}
}

// UpdateOwned authorizes the update and then applies it with an owner-scoped
// conditional write, so a listing deleted or reassigned between the check and
// the write is never touched.
func (s *ListingAccess) UpdateOwned(ctx context.Context, p auth.Principal, listingID int64, patch model.ListingPatch) (*model.Listing, Decision, error) {
	decision, err := s.AuthorizeMutation(ctx, p, listingID, OpUpdate)
	if err != nil || decision != DecisionAllowed {
		return nil, decision, err
	}
	updated, err := s.listings.UpdateOwned(ctx, listingID, p.UserID, patch)
	if errors.Is(err, repository.ErrNotFound) {
		// the row vanished or changed hands after the check
		return nil, DecisionForbidden, nil
	}
	if err != nil {
		return nil, DecisionForbidden, fmt.Errorf("ListingAccess.UpdateOwned: %w", err)
	}
	return updated, DecisionAllowed, nil
}

// DeleteOwned authorizes the delete and performs it conditionally, like
// UpdateOwned.
func (s *ListingAccess) DeleteOwned(ctx context.Context, p auth.Principal, listingID int64) (Decision, error) {
	decision, err := s.AuthorizeMutation(ctx, p, listingID, OpDelete)
	if err != nil || decision != DecisionAllowed {
		return decision, err
	}
	err = s.listings.DeleteOwned(ctx, listingID, p.UserID)
	if errors.Is(err, repository.ErrNotFound) {
		return DecisionForbidden, nil
	}
	if err != nil {
		return DecisionForbidden, fmt.Errorf("ListingAccess.DeleteOwned: %w", err)
	}
	return DecisionAllowed, nil
}
