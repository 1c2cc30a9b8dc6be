package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Comment is embedded inside its video document and keeps its own identity so
// it can be edited or removed individually.
type Comment struct {
	ID        bson.ObjectID `bson:"_id" json:"_id"`
	User      bson.ObjectID `bson:"user" json:"user"`
	Text      string        `bson:"text" json:"text"`
	Edited    bool          `bson:"edited" json:"edited"`
	CreatedAt time.Time     `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time     `bson:"updatedAt" json:"updatedAt"`
}

// Video owns an ordered list of comments plus plain +1 counters. Counter
// updates go through atomic $inc operations, never read-modify-write.
type Video struct {
	ID          bson.ObjectID `bson:"_id,omitempty" json:"_id"`
	User        bson.ObjectID `bson:"user" json:"user"`
	Title       string        `bson:"title" json:"title"`
	Description string        `bson:"description" json:"description"`
	VideoLink   string        `bson:"videoLink" json:"videoLink"`
	Thumbnail   string        `bson:"thumbnail" json:"thumbnail"`
	Category    string        `bson:"category" json:"category"`
	Likes       int64         `bson:"likes" json:"likes"`
	Dislike     int64         `bson:"dislike" json:"dislike"`
	Views       int64         `bson:"views" json:"views"`
	Comments    []Comment     `bson:"comments" json:"comments"`
	CreatedAt   time.Time     `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time     `bson:"updatedAt" json:"updatedAt"`

	// Owner is the denormalized channel snippet attached on reads, not stored.
	Owner *UserSnippet `bson:"owner,omitempty" json:"owner,omitempty"`
}

// UserSnippet is the public slice of a user embedded in list responses.
type UserSnippet struct {
	ID          bson.ObjectID `bson:"_id" json:"_id"`
	UserName    string        `bson:"userName" json:"userName"`
	ChannelName string        `bson:"channelName" json:"channelName"`
	ProfilePic  string        `bson:"profilePic" json:"profilePic"`
	IsBlocked   bool          `bson:"isBlocked" json:"isBlocked"`
}
