package messaging

import "time"

// Author can be one of:
//   - coach
//   - client
type Author string

const (
	AuthorCoach  Author = "coach"
	AuthorClient Author = "client"
)

func (a Author) String() string {
	return string(a)
}

func (a Author) IsValid() bool {
	switch a {
	case AuthorCoach, AuthorClient:
		return true
	default:
		return false
	}
}

// Other returns the opposite side of the thread.
func (a Author) Other() Author {
	if a == AuthorCoach {
		return AuthorClient
	}
	return AuthorCoach
}

// Message (DB level type) is one message in a coach-client thread.
type Message struct {
	ID        int       `json:"id"`
	ClientID  int       `json:"clientId"`
	Author    Author    `json:"author"`
	Body      string    `json:"body"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"createdAt"`
}
