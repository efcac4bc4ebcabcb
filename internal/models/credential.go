package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Credential is a stored site credential owned by a single user. The password
// field holds ciphertext at rest; the service layer decrypts it before a
// credential ever leaves a read path.
type Credential struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`

	Sitename string             `bson:"sitename" json:"sitename"`
	Username string             `bson:"username" json:"username"`
	Email    string             `bson:"email" json:"email"`
	Password string             `bson:"password" json:"password"`
	Other    string             `bson:"other,omitempty" json:"other,omitempty"`
	UserID   primitive.ObjectID `bson:"user_id" json:"user_id"`
}
