package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/klauspost/compress/zstd"

	appctx "github.com/fevxie/rma/internal/core/context"
	"github.com/fevxie/rma/internal/core/id"
	"github.com/fevxie/rma/internal/domain/audit"
)

// AuditRecorder implements audit.Recorder on the sys_audit table.
// Payloads are stored as zstd-compressed JSON.
type AuditRecorder struct {
	txManager *TxManager
	encoder   *zstd.Encoder
	decoder   *zstd.Decoder
}

var _ audit.Recorder = (*AuditRecorder)(nil)

// NewAuditRecorder creates an audit recorder.
func NewAuditRecorder(txManager *TxManager) (*AuditRecorder, error) {
	encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, fmt.Errorf("create zstd encoder: %w", err)
	}

	decoder, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("create zstd decoder: %w", err)
	}

	return &AuditRecorder{
		txManager: txManager,
		encoder:   encoder,
		decoder:   decoder,
	}, nil
}

// Record stores one audit entry.
func (r *AuditRecorder) Record(ctx context.Context, entity string, entityID id.ID, action string, payload any) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	var userID id.ID
	if uid := appctx.GetUserID(ctx); uid != "" {
		if parsed, err := id.Parse(uid); err == nil {
			userID = parsed
		}
	}

	entry := audit.Entry{
		ID:       id.New(),
		Entity:   entity,
		EntityID: entityID,
		Action:   action,
		UserID:   userID,
		At:       time.Now().UTC(),
		Payload:  r.encoder.EncodeAll(raw, nil),
	}

	sql := `
		INSERT INTO sys_audit (id, entity, entity_id, action, user_id, at, payload)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err = r.txManager.GetQuerier(ctx).Exec(ctx, sql,
		entry.ID, entry.Entity, entry.EntityID, entry.Action,
		entry.UserID, entry.At, entry.Payload,
	)
	if err != nil {
		return fmt.Errorf("insert audit entry: %w", err)
	}

	return nil
}

// GetHistory retrieves the audit trail of an entity, payloads decompressed.
func (r *AuditRecorder) GetHistory(ctx context.Context, entity string, entityID id.ID, limit int) ([]audit.Entry, error) {
	sql := `
		SELECT id, entity, entity_id, action, user_id, at, payload
		FROM sys_audit
		WHERE entity = $1 AND entity_id = $2
		ORDER BY at DESC
		LIMIT $3
	`

	rows, err := r.txManager.GetQuerier(ctx).Query(ctx, sql, entity, entityID, limit)
	if err != nil {
		return nil, fmt.Errorf("query audit history: %w", err)
	}
	defer rows.Close()

	var entries []audit.Entry
	for rows.Next() {
		var e audit.Entry
		if err := rows.Scan(&e.ID, &e.Entity, &e.EntityID, &e.Action, &e.UserID, &e.At, &e.Payload); err != nil {
			return nil, fmt.Errorf("scan audit entry: %w", err)
		}

		if len(e.Payload) > 0 {
			decompressed, err := r.decoder.DecodeAll(e.Payload, nil)
			if err != nil {
				return nil, fmt.Errorf("decompress payload: %w", err)
			}
			e.Payload = decompressed
		}

		entries = append(entries, e)
	}

	return entries, rows.Err()
}
