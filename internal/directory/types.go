package directory

// StatusAvailable is the presence value the chat platform reports for users
// currently present in a room.
const StatusAvailable = "available"

// User is a chat platform user as reported by the directory service.
type User struct {
	UserID  int    `json:"user_id"`
	Name    string `json:"name"`
	Mention string `json:"mention_name"`
	Email   string `json:"email"`
	Status  string `json:"status"`
}

// IsAvailable reports whether the user's presence status marks them present.
func (u User) IsAvailable() bool {
	return u.Status == StatusAvailable
}

// Room is a chat room summary as returned by the room list.
type Room struct {
	RoomID  int    `json:"room_id"`
	Name    string `json:"name"`
	XMPPJID string `json:"xmpp_jid"`
}

// Participant is a room member reference; full detail requires a user lookup.
type Participant struct {
	UserID int    `json:"user_id"`
	Name   string `json:"name"`
}

// RoomDetail is a room including its current participant list.
type RoomDetail struct {
	RoomID       int           `json:"room_id"`
	Name         string        `json:"name"`
	XMPPJID      string        `json:"xmpp_jid"`
	Participants []Participant `json:"participants"`
}
