package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type User struct {
	ID           primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Name         string             `json:"name" bson:"name,omitempty"`
	Email        string             `json:"email" bson:"email,omitempty"`
	Password     string             `json:"password,omitempty" bson:"password,omitempty"`
	Role         string             `json:"role" bson:"role,omitempty"`
	Position     string             `json:"position" bson:"position,omitempty"`
	Section      string             `json:"section" bson:"section,omitempty"`
	IsFirstLogin bool               `json:"is_first_login" bson:"isFirstLogin,omitempty"`
	CreatedAt    time.Time          `json:"created_at" bson:"created_at,omitempty"`
	UpdatedAt    time.Time          `json:"updated_at" bson:"updated_at,omitempty"`
}

type UserRegisterPayload struct {
	Name     string `json:"name" validate:"required,min=3,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=50,hasuppercase"`
	Role     string `json:"role" validate:"required,oneof=admin empleado"`
	Position string `json:"position"`
	Section  string `json:"section" validate:"required,min=2,max=100"`
}

type UserLoginPayload struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type ChangePasswordPayload struct {
	OldPassword string `json:"old_password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8,max=50,hasuppercase"`
}

// Claims es la identidad extraída del token PASETO y dejada en c.Locals("user").
type Claims struct {
	UserID  primitive.ObjectID `json:"user_id"`
	Name    string             `json:"name"`
	Email   string             `json:"email"`
	Role    string             `json:"role"`
	Section string             `json:"section"`
}

// Section agrupa usuarios y delimita qué solicitudes puede gestionar un admin.
type Section struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name      string             `bson:"name" json:"name" validate:"required,min=2,max=100"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`
}
