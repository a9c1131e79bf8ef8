package chat

import "context"

type StoreAPI interface {
	SaveMessage(ctx context.Context, userID int64, role, content string) (int64, error)
	History(ctx context.Context, userID int64, limit int) ([]Message, error)
}
