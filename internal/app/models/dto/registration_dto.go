package dto

// RegistrationForm carries the multipart form fields of a submission. The photo
// and signature files are read separately from the multipart payload.
type RegistrationForm struct {
	Class                string `form:"class"`
	OlympiadType         string `form:"olympiadType"`
	FullName             string `form:"fullName"`
	FatherName           string `form:"fatherName"`
	MotherName           string `form:"motherName"`
	FatherMobile         string `form:"fatherMobile"`
	MotherMobile         string `form:"motherMobile"`
	Address              string `form:"address"`
	Gender               string `form:"gender"`
	DateOfBirth          string `form:"dateOfBirth"`
	EducationalInstitute string `form:"educationalInstitute"`
	DreamUniversity      string `form:"dreamUniversity"`
	PreviousScholarship  string `form:"previousScholarship"` // "yes" or "no"
	ScholarshipDetails   string `form:"scholarshipDetails"`  // required only when previous is "yes"
}

// RegistrationResponse is the flat wire response of the submission endpoint.
type RegistrationResponse struct {
	Success            bool   `json:"success"`
	StudentID          int64  `json:"studentId,omitempty"`
	RegistrationNumber string `json:"registrationNumber,omitempty"`
	Message            string `json:"message,omitempty"`
}

// RegistrationResult is returned on a successful submission.
type RegistrationResult struct {
	StudentID          int64  `json:"studentId" example:"42"`
	RegistrationNumber string `json:"registrationNumber" example:"SSS-2026-0042"`
}

// StudentListItem is the condensed row shown on the admin dashboard.
type StudentListItem struct {
	ID                 int64  `json:"id"`
	FullName           string `json:"fullName"`
	Class              string `json:"class"`
	OlympiadType       string `json:"olympiadType"`
	RegistrationNumber string `json:"registrationNumber"`
	RegistrationDate   string `json:"registrationDate" example:"2026-02-11"`
	PaymentStatus      string `json:"paymentStatus" example:"pending"`
	FatherMobile       string `json:"fatherMobile"`
	PhotoURL           string `json:"photoUrl"`
}
