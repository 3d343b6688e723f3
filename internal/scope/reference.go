package scope

import (
	"context"
	"fmt"
)

// Checker reports whether id is one of the owner's rows.
type Checker interface {
	Exists(ctx context.Context, ownerID, id string) (bool, error)
}

// CheckReference fails with ErrInvalidReference unless ref is empty or
// points at a row the same owner can see.
func CheckReference(ctx context.Context, c Checker, ownerID string, ref *string) error {
	if ref == nil || *ref == "" {
		return nil
	}
	ok, err := c.Exists(ctx, ownerID, *ref)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: %s", ErrInvalidReference, *ref)
	}
	return nil
}

// Ref normalises an optional foreign key from a request.
func Ref(id string) *string {
	if id == "" {
		return nil
	}
	return &id
}
