package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// User struct matches the document in MongoDB
type User struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Username string             `bson:"username" json:"username"`
	Password string             `bson:"password" json:"-"`
	Fullname string             `bson:"fullname" json:"fullname"`
	IsAdmin  bool               `bson:"isAdmin" json:"isAdmin"`
}

// Mini returns the embeddable snapshot of the user stored on shipments.
func (u User) Mini() MiniUser {
	return MiniUser{ID: u.ID.Hex(), Fullname: u.Fullname, IsAdmin: u.IsAdmin}
}
