package chat

import "errors"

var ErrEmptyMessage = errors.New("chat message must not be empty")
