package contract

import (
	"context"

	"niche-picker-be/pkg/store"
)

type SessionRepository interface {
	Save(ctx context.Context, session *store.PickerSession) error
	Get(ctx context.Context, sessionID string) (*store.PickerSession, bool, error)
	// Update loads sessionID, hands it to fn and stores the result, with no
	// other write to the same session in between. fn is not called and ok is
	// false when the session does not exist. An error from fn aborts the write.
	// Stores that retry on conflict may call fn more than once.
	Update(ctx context.Context, sessionID string, fn func(session *store.PickerSession) error) (updated *store.PickerSession, ok bool, err error)
	Delete(ctx context.Context, sessionID string) error
}
