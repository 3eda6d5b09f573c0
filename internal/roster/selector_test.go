package roster

import (
	"context"
	"errors"
	"testing"

	"github.com/leafsw/tipbot-go/internal/directory"
	"github.com/leafsw/tipbot-go/internal/logger"
)

// fakeGateway is an in-memory directory.Gateway for selector tests.
type fakeGateway struct {
	rooms        []directory.Room
	participants map[int][]directory.Participant
	users        map[int]directory.User

	listRoomsErr error
	showRoomErr  error
	showUserErr  map[int]error
}

func (f *fakeGateway) ListUsers(ctx context.Context) ([]directory.User, error) {
	users := make([]directory.User, 0, len(f.users))
	for _, u := range f.users {
		users = append(users, u)
	}
	return users, nil
}

func (f *fakeGateway) ListRooms(ctx context.Context) ([]directory.Room, error) {
	if f.listRoomsErr != nil {
		return nil, f.listRoomsErr
	}
	return f.rooms, nil
}

func (f *fakeGateway) ShowRoom(ctx context.Context, roomID int) (directory.RoomDetail, error) {
	if f.showRoomErr != nil {
		return directory.RoomDetail{}, f.showRoomErr
	}
	return directory.RoomDetail{RoomID: roomID, Participants: f.participants[roomID]}, nil
}

func (f *fakeGateway) ShowUser(ctx context.Context, userID int) (directory.User, error) {
	if err, ok := f.showUserErr[userID]; ok {
		return directory.User{}, err
	}
	return f.users[userID], nil
}

const lobbyJID = "42_lobby@conf.hipchat.com"

func lobbyGateway(users ...directory.User) *fakeGateway {
	g := &fakeGateway{
		rooms:        []directory.Room{{RoomID: 7, Name: "Lobby", XMPPJID: lobbyJID}},
		participants: map[int][]directory.Participant{7: {}},
		users:        map[int]directory.User{},
	}
	for _, u := range users {
		g.participants[7] = append(g.participants[7], directory.Participant{UserID: u.UserID, Name: u.Name})
		g.users[u.UserID] = u
	}
	return g
}

func TestActiveMembers_PresenceFilter(t *testing.T) {
	gw := lobbyGateway(
		directory.User{UserID: 1, Name: "Bob Vance", Mention: "BobVance", Email: "bob@x.com", Status: "not_available"},
	)
	sel := NewSelector(gw, nil, logger.New("error"))

	members, err := sel.ActiveMembers(context.Background(), lobbyJID)
	if err != nil {
		t.Fatalf("ActiveMembers() error: %v", err)
	}
	if len(members) != 0 {
		t.Errorf("members = %v, want empty for non-available participant", members)
	}
}

func TestActiveMembers_ExclusionPolicy(t *testing.T) {
	excluded := map[string]struct{}{"bot@x.com": {}}

	tests := []struct {
		name  string
		user  directory.User
		count int
	}{
		{
			name:  "excluded email dropped",
			user:  directory.User{UserID: 1, Mention: "HouseBot", Email: "bot@x.com", Status: "available"},
			count: 0,
		},
		{
			name:  "eligible participant kept",
			user:  directory.User{UserID: 2, Mention: "AnnChow", Email: "ann@x.com", Status: "available"},
			count: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sel := NewSelector(lobbyGateway(tt.user), excluded, logger.New("error"))
			members, err := sel.ActiveMembers(context.Background(), lobbyJID)
			if err != nil {
				t.Fatalf("ActiveMembers() error: %v", err)
			}
			if len(members) != tt.count {
				t.Errorf("len(members) = %d, want %d", len(members), tt.count)
			}
		})
	}
}

func TestActiveMembers_PreservesDirectoryOrder(t *testing.T) {
	gw := lobbyGateway(
		directory.User{UserID: 3, Mention: "Carl", Email: "carl@x.com", Status: "available"},
		directory.User{UserID: 1, Mention: "Ann", Email: "ann@x.com", Status: "available"},
		directory.User{UserID: 2, Mention: "Bea", Email: "bea@x.com", Status: "away"},
		directory.User{UserID: 4, Mention: "Dee", Email: "dee@x.com", Status: "available"},
	)
	sel := NewSelector(gw, nil, logger.New("error"))

	members, err := sel.ActiveMembers(context.Background(), lobbyJID)
	if err != nil {
		t.Fatalf("ActiveMembers() error: %v", err)
	}

	want := []string{"Carl", "Ann", "Dee"}
	if len(members) != len(want) {
		t.Fatalf("len(members) = %d, want %d", len(members), len(want))
	}
	for i, mention := range want {
		if members[i].Mention != mention {
			t.Errorf("members[%d].Mention = %q, want %q", i, members[i].Mention, mention)
		}
	}
}

func TestActiveMembers_UnknownRoomIsEmpty(t *testing.T) {
	sel := NewSelector(lobbyGateway(), nil, logger.New("error"))

	members, err := sel.ActiveMembers(context.Background(), "99_ghosts@conf.hipchat.com")
	if err != nil {
		t.Fatalf("ActiveMembers() error: %v", err)
	}
	if len(members) != 0 {
		t.Errorf("members = %v, want empty for unknown room", members)
	}
}

func TestActiveMembers_ErrorsPropagate(t *testing.T) {
	boom := errors.New("directory down")

	t.Run("room list failure", func(t *testing.T) {
		gw := lobbyGateway()
		gw.listRoomsErr = boom
		sel := NewSelector(gw, nil, logger.New("error"))
		if _, err := sel.ActiveMembers(context.Background(), lobbyJID); !errors.Is(err, boom) {
			t.Errorf("err = %v, want %v", err, boom)
		}
	})

	t.Run("per-user lookup failure", func(t *testing.T) {
		gw := lobbyGateway(
			directory.User{UserID: 1, Mention: "Ann", Email: "ann@x.com", Status: "available"},
		)
		gw.showUserErr = map[int]error{1: boom}
		sel := NewSelector(gw, nil, logger.New("error"))
		if _, err := sel.ActiveMembers(context.Background(), lobbyJID); !errors.Is(err, boom) {
			t.Errorf("err = %v, want %v", err, boom)
		}
	})
}
