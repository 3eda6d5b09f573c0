package bot

import (
	"context"
)

// Sender identifies the user who issued a command, as reported by the chat
// platform. Email may be empty on platforms that withhold it; handlers fall
// back to a directory lookup by mention handle.
type Sender struct {
	Name    string
	Mention string
	Email   string
}

// Invocation is one command execution request: the matched command plus the
// chat context it arrived from.
type Invocation struct {
	Command Command
	Sender  Sender
	RoomJID string
}

// Reply is one outgoing chat message. ImageURL optionally accompanies the
// text, for commands that post a picture with their announcement.
type Reply struct {
	Text     string
	ImageURL string
}

// Handler defines the interface that all tipbot modules implement.
type Handler interface {
	// Name returns the module name, used in logs and metrics.
	Name() string

	// CanHandle reports whether this handler owns the given command kind.
	CanHandle(kind Kind) bool

	// Handle executes the command and returns the replies to post, in order.
	// Errors are translated to user-facing failure replies by the caller.
	Handle(ctx context.Context, inv Invocation) ([]Reply, error)
}
