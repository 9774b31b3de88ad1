// models/user.go
package models

import "time"

// User is a patient account.
type User struct {
	ID           string    `bson:"id" json:"id"`
	Name         string    `bson:"name" json:"name"`
	Email        string    `bson:"email" json:"email"`
	PasswordHash string    `bson:"passwordHash" json:"-"`
	Phone        string    `bson:"phone,omitempty" json:"phone,omitempty"`
	IsActivated  bool      `bson:"isActivated" json:"isActivated"`
	DateJoined   time.Time `bson:"dateJoined" json:"dateJoined"`
	UpdatedAt    time.Time `bson:"updatedAt" json:"updatedAt,omitzero"`
}

// Profile holds the optional personal details a patient fills in after signup.
type Profile struct {
	UserID       string    `bson:"userId" json:"userId"`
	Name         string    `bson:"name,omitempty" json:"name,omitempty"`
	Gender       string    `bson:"gender,omitempty" json:"gender,omitempty"`
	DOB          string    `bson:"dob,omitempty" json:"dob,omitempty"`
	Phone        string    `bson:"phone,omitempty" json:"phone,omitempty"`
	Address      string    `bson:"address,omitempty" json:"address,omitempty"`
	ProfilePhoto string    `bson:"profilePhoto,omitempty" json:"profilePhoto,omitempty"`
	UpdatedAt    time.Time `bson:"updatedAt" json:"updatedAt,omitzero"`
}

// ProfileUpdate carries the patient-editable profile fields. Nil means "leave unchanged".
type ProfileUpdate struct {
	Name    *string `json:"name" form:"name"`
	Gender  *string `json:"gender" form:"gender"`
	DOB     *string `json:"dob" form:"dob"`
	Phone   *string `json:"phone" form:"phone"`
	Address *string `json:"address" form:"address"`
}
