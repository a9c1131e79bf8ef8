package chat

import "time"

type Message struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"-"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

type SendResult struct {
	UserMessageID      int64     `json:"user_message_id"`
	AssistantMessageID int64     `json:"assistant_message_id"`
	AssistantContent   string    `json:"assistant_content"`
	CreatedAt          time.Time `json:"created_at"`
}
