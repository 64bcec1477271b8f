package reservation

import (
	"context"

	domain "github.com/salonbelle/salon-scheduler/internal/domain/reservation"
	"github.com/salonbelle/salon-scheduler/internal/identity"
	"github.com/salonbelle/salon-scheduler/internal/models"
)

// ListQueue returns the stylist's own pending requests, soonest first.
type ListQueue struct {
	repo domain.Repository
}

func NewListQueue(repo domain.Repository) *ListQueue {
	return &ListQueue{repo: repo}
}

func (uc *ListQueue) Execute(
	ctx context.Context,
	user identity.CurrentUser,
) ([]models.Reservation, error) {
	return uc.repo.ListPendingForStylist(ctx, user.ID)
}
