// Package audit defines the append-only audit trail contract. Claim and
// picking mutations are recorded best-effort; a failed audit write never
// fails the business operation.
package audit

import (
	"context"
	"time"

	"github.com/fevxie/rma/internal/core/id"
)

// Entry is one recorded mutation.
type Entry struct {
	ID       id.ID     `db:"id" json:"id"`
	Entity   string    `db:"entity" json:"entity"`
	EntityID id.ID     `db:"entity_id" json:"entityId"`
	Action   string    `db:"action" json:"action"`
	UserID   id.ID     `db:"user_id" json:"userId"`
	At       time.Time `db:"at" json:"at"`

	// Payload is the zstd-compressed JSON snapshot of the change
	Payload []byte `db:"payload" json:"-"`
}

// Recorder persists audit entries.
type Recorder interface {
	// Record stores one entry. payload is JSON-marshalled and compressed
	// by the implementation.
	Record(ctx context.Context, entity string, entityID id.ID, action string, payload any) error
}

// Nop is a Recorder that drops everything, for tests.
type Nop struct{}

func (Nop) Record(context.Context, string, id.ID, string, any) error { return nil }
