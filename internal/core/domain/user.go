package domain

import "time"

// Role is the closed set of account roles. There is exactly one elevated role.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleEmployee Role = "employee"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleEmployee
}

// User is an employee or admin account record.
type User struct {
	ID                  int64     `json:"id"`
	Email               string    `json:"email"`
	PasswordHash        string    `json:"-"`
	FirstName           string    `json:"firstName"`
	LastName            string    `json:"lastName"`
	MiddleName          string    `json:"middleName"`
	BirthDate           string    `json:"birthDate"`
	Phone               string    `json:"phone"`
	Role                Role      `json:"role"`
	ProgrammingLanguage string    `json:"programmingLanguage"`
	Country             string    `json:"country"`
	MentorName          string    `json:"mentorName"`
	EnglishLevel        string    `json:"englishLevel"`
	Salary              float64   `json:"salary"`
	CreatedAt           time.Time `json:"createdAt"`
	UpdatedAt           time.Time `json:"updatedAt"`
}

// UserPatch carries the fields supplied to an update. Nil means "leave as is".
// Role and ID are not patchable.
type UserPatch struct {
	Email               *string
	PasswordHash        *string
	FirstName           *string
	LastName            *string
	MiddleName          *string
	BirthDate           *string
	Phone               *string
	ProgrammingLanguage *string
	Country             *string
	MentorName          *string
	EnglishLevel        *string
	Salary              *float64
	UpdatedAt           time.Time
}

// Apply merges the supplied fields of p over u.
func (p UserPatch) Apply(u *User) {
	setString(&u.Email, p.Email)
	setString(&u.PasswordHash, p.PasswordHash)
	setString(&u.FirstName, p.FirstName)
	setString(&u.LastName, p.LastName)
	setString(&u.MiddleName, p.MiddleName)
	setString(&u.BirthDate, p.BirthDate)
	setString(&u.Phone, p.Phone)
	setString(&u.ProgrammingLanguage, p.ProgrammingLanguage)
	setString(&u.Country, p.Country)
	setString(&u.MentorName, p.MentorName)
	setString(&u.EnglishLevel, p.EnglishLevel)
	if p.Salary != nil {
		u.Salary = *p.Salary
	}
	if !p.UpdatedAt.IsZero() {
		u.UpdatedAt = p.UpdatedAt
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
