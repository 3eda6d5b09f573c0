// Package directory provides the chat platform directory gateway: user and
// room lookups against the platform's REST API.
package directory

import "context"

// Gateway is the narrow directory interface the core depends on.
// Implementations must not cache results between calls; every command
// invocation sees the platform's current state.
type Gateway interface {
	// ListUsers returns all users known to the chat platform.
	ListUsers(ctx context.Context) ([]User, error)

	// ListRooms returns all rooms known to the chat platform.
	ListRooms(ctx context.Context) ([]Room, error)

	// ShowRoom returns a room's detail including its participant list.
	ShowRoom(ctx context.Context, roomID int) (RoomDetail, error)

	// ShowUser returns full detail for one user.
	ShowUser(ctx context.Context, userID int) (User, error)
}
