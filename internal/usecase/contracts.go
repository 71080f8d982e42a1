package usecase

import (
	"context"

	"github.com/healthfirst/scheduling-service/internal/integrations/identity"

	"github.com/google/uuid"
)

// IdentityClient is the contract against the external identity service.
// Patient and provider records are owned there; the scheduling core only
// verifies that referenced identities exist.
type IdentityClient interface {
	FindPatient(ctx context.Context, id uuid.UUID) (*identity.Patient, error)
	FindProvider(ctx context.Context, id uuid.UUID) (*identity.Provider, error)
}
