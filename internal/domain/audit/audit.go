// Package audit keeps a trail of who triggered which AI operation. Entries
// are advisory: recording failures must never fail the request that caused
// them.
package audit

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	ActionGeneratePerformance = "performance.generate"
	ActionSendChat            = "chat.send"
	ActionGenerateMotivation  = "motivation.generate"
)

type Recorder struct {
	DB *pgxpool.Pool
}

func New(db *pgxpool.Pool) *Recorder {
	return &Recorder{DB: db}
}

func (r *Recorder) Record(ctx context.Context, actorUserID int64, action, entityType, entityID, requestID string, details any) error {
	var detailsJSON []byte
	if details != nil {
		payload, err := json.Marshal(details)
		if err != nil {
			return err
		}
		detailsJSON = payload
	}

	_, err := r.DB.Exec(ctx, `
    INSERT INTO audit_events (actor_user_id, action, entity_type, entity_id, request_id, details_json)
    VALUES ($1, $2, $3, $4, $5, $6)
  `, actorUserID, action, entityType, entityID, requestID, detailsJSON)
	return err
}
