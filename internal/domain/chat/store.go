package chat

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{DB: pool}
}

func (s *Store) SaveMessage(ctx context.Context, userID int64, role, content string) (int64, error) {
	var id int64
	err := s.DB.QueryRow(ctx, `
    INSERT INTO chat_history (user_id, role, content)
    VALUES ($1, $2, $3)
    RETURNING id
  `, userID, role, content).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

// History returns the user's messages in chronological order, capped at
// limit. The newest messages win: the query walks backwards and the result
// is reversed so context windows keep the most recent turns.
func (s *Store) History(ctx context.Context, userID int64, limit int) ([]Message, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, user_id, role, content, created_at
    FROM chat_history
    WHERE user_id = $1
    ORDER BY created_at DESC, id DESC
    LIMIT $2
  `, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []Message
	for rows.Next() {
		var m Message
		if err := rows.Scan(&m.ID, &m.UserID, &m.Role, &m.Content, &m.CreatedAt); err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	return messages, nil
}
