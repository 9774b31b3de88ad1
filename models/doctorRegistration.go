package models

// DoctorRegistration is the multipart form a doctor submits to apply.
type DoctorRegistration struct {
	FullName            string `form:"fullName"`
	Email               string `form:"email"`
	Password            string `form:"password"`
	Phone               string `form:"phone"`
	Specialization      string `form:"specialization"`
	RegistrationNumber  string `form:"registrationNumber"`
	RegistrationCouncil string `form:"registrationCouncil"`
	RegistrationYear    string `form:"registrationYear"`
}

// RejectDoctorRequest optionally explains an admin rejection.
type RejectDoctorRequest struct {
	Reason string `json:"reason"`
}
