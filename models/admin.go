package models

import "time"

// Admin is a back-office account that verifies doctors.
type Admin struct {
	ID           string    `bson:"id" json:"id"`
	Name         string    `bson:"name" json:"name"`
	Email        string    `bson:"email" json:"email"`
	PasswordHash string    `bson:"passwordHash" json:"-"`
	Role         string    `bson:"role" json:"role"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt" json:"updatedAt"`
}

// AdminSignupRequest registers a new admin.
type AdminSignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SafeAdmin is the public view of an admin.
type SafeAdmin struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

func (a *Admin) Safe() SafeAdmin {
	return SafeAdmin{ID: a.ID, Name: a.Name, Email: a.Email, Role: a.Role}
}
