package registration

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"eventsite/entity"
	"eventsite/form"
)

// ErrUnknownWorkshop means the route-supplied workshop id is not in the
// workshop table.
var ErrUnknownWorkshop = errors.New("unknown workshop")

// Recorder persists a workshop registration. The db package implements it.
type Recorder interface {
	AddRegistration(ctx context.Context, registration entity.Registration) error
}

type Input struct {
	Name        string
	Email       string
	Phone       string
	Age         int
	Governorate string
}

// Flow validates registrant input, attaches the workshop metadata and hands
// the registration to the persistence collaborator.
type Flow struct {
	recorder Recorder
}

func NewFlow(recorder Recorder) Flow {
	return Flow{
		recorder: recorder,
	}
}

func (f Flow) Submit(ctx context.Context, workshopID string, input Input) (entity.Registration, error) {
	workshop, ok := entity.WorkshopByID(workshopID)
	if !ok {
		return entity.Registration{}, fmt.Errorf("%w: %q", ErrUnknownWorkshop, workshopID)
	}

	contact := entity.Contact{
		Name:  input.Name,
		Email: input.Email,
		Phone: input.Phone,
		Age:   input.Age,
	}
	if err := form.ValidateContact(contact); err != nil {
		return entity.Registration{}, err
	}
	if err := form.ValidateGovernorate(input.Governorate); err != nil {
		return entity.Registration{}, err
	}

	registration := entity.Registration{
		WorkshopID:   workshopID,
		Name:         strings.TrimSpace(input.Name),
		Email:        strings.TrimSpace(input.Email),
		Phone:        strings.TrimSpace(input.Phone),
		Age:          input.Age,
		Governorate:  strings.TrimSpace(input.Governorate),
		ProgramTitle: workshop.Title,
		GroupLink:    workshop.WhatsappGroup,
	}

	if err := f.recorder.AddRegistration(ctx, registration); err != nil {
		return entity.Registration{}, fmt.Errorf("saving registration: %w", err)
	}

	return registration, nil
}
