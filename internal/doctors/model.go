package doctors

import "time"

// Doctor is a row in the doctor directory. PasswordHash never leaves the
// server; the login response uses Summary instead.
type Doctor struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Specialty    string    `json:"specialty"`
	Availability string    `json:"availability"`
	Phone        string    `json:"phone"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Summary is the doctor shape returned to authenticated sessions.
type Summary struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Specialty string `json:"specialty"`
}

// Listing is the public doctor shape shown to patients browsing the list.
type Listing struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Specialty    string `json:"specialty"`
	Availability string `json:"availability"`
	Phone        string `json:"phone"`
}

// Summary converts a Doctor to its authenticated-session shape.
func (d *Doctor) Summary() Summary {
	return Summary{ID: d.ID, Name: d.Name, Email: d.Email, Specialty: d.Specialty}
}

// Listing converts a Doctor to its public directory shape.
func (d *Doctor) Listing() Listing {
	return Listing{
		ID:           d.ID,
		Name:         d.Name,
		Specialty:    d.Specialty,
		Availability: d.Availability,
		Phone:        d.Phone,
	}
}
