package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User is the canonical account record. Password always holds a bcrypt hash,
// never the plain secret.
type User struct {
	ID                 bson.ObjectID   `bson:"_id,omitempty" json:"_id"`
	ChannelName        string          `bson:"channelName" json:"channelName"`
	UserName           string          `bson:"userName" json:"userName"`
	Password           string          `bson:"password" json:"-"`
	About              string          `bson:"about" json:"about"`
	ProfilePic         string          `bson:"profilePic" json:"profilePic"`
	Role               string          `bson:"role" json:"role"`
	IsBlocked          bool            `bson:"isBlocked" json:"isBlocked"`
	Subscribers        int64           `bson:"subscribers" json:"subscribers"`
	SubscribedChannels []bson.ObjectID `bson:"subscribedChannels,omitempty" json:"subscribedChannels,omitempty"`
	CreatedAt          time.Time       `bson:"createdAt" json:"createdAt"`
	UpdatedAt          time.Time       `bson:"updatedAt" json:"updatedAt"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// IsSubscribedTo reports whether the user already follows the given channel.
func (u *User) IsSubscribedTo(channelID bson.ObjectID) bool {
	for _, id := range u.SubscribedChannels {
		if id == channelID {
			return true
		}
	}
	return false
}
