package models

import "time"

// Verification states of a doctor account.
const (
	VerificationPending  = "pending"
	VerificationApproved = "approved"
)

// Clinic is where a doctor practises.
type Clinic struct {
	Name    string  `bson:"name,omitempty" json:"name,omitempty"`
	Address string  `bson:"address,omitempty" json:"address,omitempty"`
	City    string  `bson:"city,omitempty" json:"city,omitempty"`
	Fee     float64 `bson:"fee,omitempty" json:"fee,omitempty"`
}

// DoctorDocuments are the uploaded registration proofs (Cloudinary URLs).
type DoctorDocuments struct {
	MedicalRegistrationCertificate string `bson:"medicalRegistrationCertificate,omitempty" json:"medicalRegistrationCertificate,omitempty"`
	DegreeCertificate              string `bson:"degreeCertificate,omitempty" json:"degreeCertificate,omitempty"`
	GovtIDProof                    string `bson:"govtIdProof,omitempty" json:"govtIdProof,omitempty"`
}

// Doctor is a practitioner account with a weekly availability template.
type Doctor struct {
	ID                  string            `bson:"id" json:"id"`
	Name                string            `bson:"name" json:"name"`
	Email               string            `bson:"email" json:"email"`
	PasswordHash        string            `bson:"passwordHash" json:"-"`
	Phone               string            `bson:"phone,omitempty" json:"phone,omitempty"`
	Specialization      string            `bson:"specialization,omitempty" json:"specialization,omitempty"`
	Experience          int               `bson:"experience,omitempty" json:"experience,omitempty"`
	Clinic              *Clinic           `bson:"clinic,omitempty" json:"clinic,omitempty"`
	RegistrationNumber  string            `bson:"registrationNumber,omitempty" json:"registrationNumber,omitempty"`
	RegistrationCouncil string            `bson:"registrationCouncil,omitempty" json:"registrationCouncil,omitempty"`
	RegistrationYear    int               `bson:"registrationYear,omitempty" json:"registrationYear,omitempty"`
	Documents           DoctorDocuments   `bson:"documents" json:"documents,omitzero"`
	ProfilePhoto        string            `bson:"profilePhoto,omitempty" json:"profilePhoto,omitempty"`
	VerificationStatus  string            `bson:"verificationStatus" json:"verificationStatus"`
	RejectionReason     string            `bson:"rejectionReason,omitempty" json:"rejectionReason,omitempty"`
	OnDuty              bool              `bson:"onDuty" json:"onDuty"`
	Availability        []DayAvailability `bson:"availability" json:"availability"`
	CreatedAt           time.Time         `bson:"createdAt" json:"createdAt"`
	UpdatedAt           time.Time         `bson:"updatedAt" json:"updatedAt"`
}

// DoctorSummary is the public listing entry used by the booking form.
type DoctorSummary struct {
	ID             string `bson:"id" json:"_id"`
	Name           string `bson:"name" json:"name"`
	Specialization string `bson:"specialization,omitempty" json:"specialization,omitempty"`
}

// DoctorProfileUpdate carries the doctor-editable profile fields. Nil means "leave unchanged".
type DoctorProfileUpdate struct {
	Name           *string `json:"name" form:"name"`
	Phone          *string `json:"phone" form:"phone"`
	Specialization *string `json:"specialization" form:"specialization"`
	Experience     *int    `json:"experience" form:"experience"`
	Clinic         *Clinic `json:"clinic" form:"-"`
}
