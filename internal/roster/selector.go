// Package roster resolves the set of active, eligible participants in a
// chat room by cross-referencing directory room and user lookups with the
// configured exclusion policy.
package roster

import (
	"context"

	"github.com/leafsw/tipbot-go/internal/directory"
	"github.com/leafsw/tipbot-go/internal/logger"
)

// Selector computes active room membership. It holds no per-command state;
// every call reflects the directory's current view.
type Selector struct {
	gateway  directory.Gateway
	excluded map[string]struct{}
	logger   *logger.Logger
}

// NewSelector creates a selector. The excluded set is owned by the caller
// and must not change after construction.
func NewSelector(gateway directory.Gateway, excluded map[string]struct{}, log *logger.Logger) *Selector {
	if excluded == nil {
		excluded = map[string]struct{}{}
	}
	return &Selector{
		gateway:  gateway,
		excluded: excluded,
		logger:   log.WithModule("roster"),
	}
}

// ActiveMembers returns the room's participants that are currently marked
// available and not administratively excluded, in the order the directory
// reports them. An unknown room handle yields an empty list, not an error:
// a bulk tip in a room the directory cannot resolve means nobody gets paid,
// same as an empty room.
func (s *Selector) ActiveMembers(ctx context.Context, roomJID string) ([]directory.User, error) {
	roomID, found, err := s.resolveRoom(ctx, roomJID)
	if err != nil {
		return nil, err
	}
	if !found {
		s.logger.WithField("room_jid", roomJID).Warn("room handle did not resolve; treating as empty")
		return nil, nil
	}

	room, err := s.gateway.ShowRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}

	members := make([]directory.User, 0, len(room.Participants))
	for _, p := range room.Participants {
		user, err := s.gateway.ShowUser(ctx, p.UserID)
		if err != nil {
			return nil, err
		}
		if !user.IsAvailable() {
			continue
		}
		if _, skip := s.excluded[user.Email]; skip {
			continue
		}
		members = append(members, user)
	}

	s.logger.WithField("room_jid", roomJID).
		WithField("participants", len(room.Participants)).
		WithField("active", len(members)).
		Debug("resolved active room members")

	return members, nil
}

// resolveRoom maps an external room handle (xmpp_jid) to the directory's
// internal room id.
func (s *Selector) resolveRoom(ctx context.Context, roomJID string) (int, bool, error) {
	rooms, err := s.gateway.ListRooms(ctx)
	if err != nil {
		return 0, false, err
	}
	for _, room := range rooms {
		if room.XMPPJID == roomJID {
			return room.RoomID, true, nil
		}
	}
	return 0, false, nil
}
