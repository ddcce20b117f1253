package patients

import "time"

// Patient is a contact/demographic row created once per appointment
// submission and never mutated afterwards.
type Patient struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Age       int       `json:"age"`
	Sex       string    `json:"sex"`
	CreatedAt time.Time `json:"created_at"`
}

// CreatePatientRequest carries the fields captured by the submission form.
type CreatePatientRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
	Age   int    `json:"age"`
	Sex   string `json:"sex"`
}
