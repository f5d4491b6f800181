package models

import (
	"time"
)

// PaymentStatus is the payment state of a registration. A record is always in
// exactly one of the two states.
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
)

// Valid reports whether s is one of the two allowed payment states.
func (s PaymentStatus) Valid() bool {
	return s == PaymentPending || s == PaymentPaid
}

// Student defines one application record in the 'students' table.
type Student struct {
	ID                   int64         `json:"id" db:"id"`
	Class                string        `json:"class" db:"class"`
	OlympiadType         string        `json:"olympiadType" db:"olympiad_type"`
	FullName             string        `json:"fullName" db:"full_name"`
	FatherName           string        `json:"fatherName" db:"father_name"`
	MotherName           string        `json:"motherName" db:"mother_name"`
	FatherMobile         string        `json:"fatherMobile" db:"father_mobile"`
	MotherMobile         *string       `json:"motherMobile,omitempty" db:"mother_mobile"`
	Address              string        `json:"address" db:"address"`
	Gender               string        `json:"gender" db:"gender"`
	DateOfBirth          string        `json:"dateOfBirth" db:"date_of_birth"`
	EducationalInstitute string        `json:"educationalInstitute" db:"educational_institute"`
	DreamUniversity      string        `json:"dreamUniversity" db:"dream_university"`
	PreviousScholarship  string        `json:"previousScholarship" db:"previous_scholarship"`
	ScholarshipDetails   *string       `json:"scholarshipDetails,omitempty" db:"scholarship_details"`
	PhotoURL             string        `json:"photoUrl" db:"photo_url"`
	SignatureURL         string        `json:"signatureUrl" db:"signature_url"`
	RegistrationNumber   string        `json:"registrationNumber" db:"registration_number"`
	RegistrationDate     time.Time     `json:"registrationDate" db:"registration_date"`
	PaymentStatus        PaymentStatus `json:"paymentStatus" db:"payment_status"`
	CreatedAt            time.Time     `json:"createdAt" db:"created_at"`
	UpdatedAt            time.Time     `json:"updatedAt" db:"updated_at"`
}

// StudentStats holds the aggregate dashboard counts, computed directly from the
// store and never cached.
type StudentStats struct {
	TotalRegistered int64 `json:"totalRegistered"`
	TotalPaid       int64 `json:"totalPaid"`
	TotalPending    int64 `json:"totalPending"`
}

// StudentFilter narrows the admin list query. Zero values mean "no filter".
type StudentFilter struct {
	PaymentStatus PaymentStatus
	OlympiadType  string
	Class         string
	Search        string // matched against full name, case-insensitive substring
}
