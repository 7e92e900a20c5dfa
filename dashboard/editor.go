package dashboard

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dcode-github/dormdash/gateway"
	"github.com/dcode-github/dormdash/models"
	"github.com/dcode-github/dormdash/utils"
)

var (
	ErrInvalidListing  = errors.New("invalid listing")
	ErrUnknownProperty = errors.New("property not in this dashboard")
)

const (
	msgCreated      = "Property created successfully"
	msgUpdated      = "Property updated successfully"
	msgDeleted      = "Property deleted successfully"
	msgSaveFailed   = "Failed to create/update property"
	msgDeleteFailed = "Failed to delete property"
	msgMarkedRented = "Property marked as Rented"
	msgMarkedAvail  = "Property marked as Available"
	msgStatusFailed = "Failed to update property status"
	msgBoosted      = "Boost request submitted"
	msgBoostFailed  = "Failed to boost property"
	msgUploaded     = "Image uploaded"
	msgUploadFailed = "Failed to upload image"
	msgPlanRequired = "Select a boost plan"
	msgPropertyGone = "Property not found"
)

// editor carries the listing mutations shared by the landlord and agent
// dashboards. properties and notices belong to the owning view and are
// guarded by its lock.
type editor struct {
	v          *view
	backend    Backend
	identity   models.Identity
	creds      *gateway.Credentials
	list       func(context.Context) ([]models.Property, error)
	properties *[]models.Property
	notices    *[]models.Notice
}

func (e *editor) notify(ctx context.Context, n models.Notice) {
	e.v.apply(ctx, func() { *e.notices = append(*e.notices, n) })
}

// reload re-fetches the list after a successful mutation. A failed reload
// keeps the list as it was.
func (e *editor) reload(ctx context.Context) {
	props, err := e.list(ctx)
	if err != nil {
		if ctx.Err() == nil {
			e.v.logger.Warn("refresh properties failed", "err", err)
		}
		return
	}
	e.v.apply(ctx, func() { *e.properties = props })
}

func (e *editor) validate(ctx context.Context, draft *models.ProductDraft) error {
	draft.Title = strings.TrimSpace(draft.Title)
	draft.Location = strings.TrimSpace(draft.Location)
	if draft.OwnerEmail == "" {
		draft.OwnerEmail = e.identity.Email
	}
	if err := utils.ValidateStruct(draft); err != nil {
		msg := utils.ValidationMessage(err)
		e.notify(ctx, models.Failure(msg))
		return fmt.Errorf("%w: %s", ErrInvalidListing, msg)
	}
	return nil
}

// CreateProperty validates and submits a new listing. The list only changes
// through the re-fetch that follows a success.
func (e *editor) CreateProperty(ctx context.Context, draft models.ProductDraft) error {
	if err := e.validate(ctx, &draft); err != nil {
		return err
	}
	if _, err := e.backend.CreateProduct(ctx, draft); err != nil {
		e.v.logger.Warn("create property failed", "err", err)
		e.notify(ctx, models.Failure(gateway.Message(err, msgSaveFailed)))
		return err
	}
	e.notify(ctx, models.Success(msgCreated))
	e.reload(ctx)
	return nil
}

func (e *editor) UpdateProperty(ctx context.Context, id string, draft models.ProductDraft) error {
	if err := e.validate(ctx, &draft); err != nil {
		return err
	}
	if _, err := e.backend.UpdateProduct(ctx, id, draft); err != nil {
		e.v.logger.Warn("update property failed", "id", id, "err", err)
		e.notify(ctx, models.Failure(gateway.Message(err, msgSaveFailed)))
		return err
	}
	e.notify(ctx, models.Success(msgUpdated))
	e.reload(ctx)
	return nil
}

func (e *editor) DeleteProperty(ctx context.Context, id string) error {
	if _, err := e.backend.DeleteProduct(ctx, id, e.creds); err != nil {
		e.v.logger.Warn("delete property failed", "id", id, "err", err)
		e.notify(ctx, models.Failure(gateway.Message(err, msgDeleteFailed)))
		return err
	}
	e.notify(ctx, models.Success(msgDeleted))
	e.reload(ctx)
	return nil
}

// ToggleAvailability flips Rented to Available and anything else to Rented.
// On success only the one listing changes locally.
func (e *editor) ToggleAvailability(ctx context.Context, id string) (models.Availability, error) {
	var (
		current models.Availability
		found   bool
	)
	e.v.apply(ctx, func() {
		for _, p := range *e.properties {
			if p.ID == id {
				current, found = p.Availability, true
				break
			}
		}
	})
	if !found {
		e.notify(ctx, models.Failure(msgPropertyGone))
		return "", ErrUnknownProperty
	}

	next := models.Rented
	if current == models.Rented {
		next = models.Available
	}

	if _, err := e.backend.SetAvailability(ctx, id, next); err != nil {
		e.v.logger.Warn("set availability failed", "id", id, "err", err)
		e.notify(ctx, models.Failure(msgStatusFailed))
		return current, err
	}

	e.v.apply(ctx, func() {
		updated := make([]models.Property, len(*e.properties))
		copy(updated, *e.properties)
		for i := range updated {
			if updated[i].ID == id {
				updated[i].Availability = next
			}
		}
		*e.properties = updated
	})
	if next == models.Rented {
		e.notify(ctx, models.Success(msgMarkedRented))
	} else {
		e.notify(ctx, models.Success(msgMarkedAvail))
	}
	return next, nil
}

func (e *editor) Boost(ctx context.Context, id, planID string) error {
	if strings.TrimSpace(planID) == "" {
		e.notify(ctx, models.Failure(msgPlanRequired))
		return fmt.Errorf("%w: no boost plan", ErrInvalidListing)
	}
	if _, err := e.backend.InitiateBoost(ctx, id, planID); err != nil {
		e.v.logger.Warn("initiate boost failed", "id", id, "plan", planID, "err", err)
		e.notify(ctx, models.Failure(gateway.Message(err, msgBoostFailed)))
		return err
	}
	e.notify(ctx, models.Success(msgBoosted))
	e.reload(ctx)
	return nil
}

// Upload sends one image and returns the URLs the backend stored it under.
func (e *editor) Upload(ctx context.Context, productID, filename string, r io.Reader) ([]string, error) {
	urls, err := e.backend.UploadImage(ctx, productID, filename, r)
	if err != nil {
		e.v.logger.Warn("upload image failed", "product", productID, "err", err)
		e.notify(ctx, models.Failure(gateway.Message(err, msgUploadFailed)))
		return nil, err
	}
	e.notify(ctx, models.Success(msgUploaded))
	return urls, nil
}
