package models

import "go.mongodb.org/mongo-driver/bson/primitive"

const RoleAdmin = "admin"

type User struct {
	ID    primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	Email string             `json:"email" bson:"email"`
	Name  string             `json:"name,omitempty" bson:"name,omitempty"`
	Role  string             `json:"role,omitempty" bson:"role,omitempty"`
}

func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// UpsertUserRequest is the login payload. It has no role field so a client
// can never promote itself.
type UpsertUserRequest struct {
	Name string `json:"name"`
}

type UpsertUserResponse struct {
	Result WriteResult `json:"result"`
	Token  string      `json:"token"`
}

type AdminStatusResponse struct {
	Admin bool `json:"admin"`
}
