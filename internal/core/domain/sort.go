package domain

import (
	"cmp"
	"strings"
)

// SortField names a sortable user attribute as it appears in JSON.
type SortField string

const (
	SortByID                  SortField = "id"
	SortByEmail               SortField = "email"
	SortByFirstName           SortField = "firstName"
	SortByLastName            SortField = "lastName"
	SortByMiddleName          SortField = "middleName"
	SortByBirthDate           SortField = "birthDate"
	SortByPhone               SortField = "phone"
	SortByRole                SortField = "role"
	SortByProgrammingLanguage SortField = "programmingLanguage"
	SortByCountry             SortField = "country"
	SortByMentorName          SortField = "mentorName"
	SortByEnglishLevel        SortField = "englishLevel"
	SortBySalary              SortField = "salary"
	SortByCreatedAt           SortField = "createdAt"
)

var sortFields = map[SortField]struct{}{
	SortByID: {}, SortByEmail: {}, SortByFirstName: {}, SortByLastName: {},
	SortByMiddleName: {}, SortByBirthDate: {}, SortByPhone: {}, SortByRole: {},
	SortByProgrammingLanguage: {}, SortByCountry: {}, SortByMentorName: {},
	SortByEnglishLevel: {}, SortBySalary: {}, SortByCreatedAt: {},
}

// ParseSortField accepts the exact JSON field name. Empty input selects id.
func ParseSortField(s string) (SortField, error) {
	if s == "" {
		return SortByID, nil
	}
	f := SortField(s)
	if _, ok := sortFields[f]; !ok {
		return "", ErrInvalidSortKey
	}
	return f, nil
}

// Compare orders a and b by f. It does not apply the id tie-break.
func (f SortField) Compare(a, b *User) int {
	switch f {
	case SortByEmail:
		return strings.Compare(a.Email, b.Email)
	case SortByFirstName:
		return strings.Compare(a.FirstName, b.FirstName)
	case SortByLastName:
		return strings.Compare(a.LastName, b.LastName)
	case SortByMiddleName:
		return strings.Compare(a.MiddleName, b.MiddleName)
	case SortByBirthDate:
		return strings.Compare(a.BirthDate, b.BirthDate)
	case SortByPhone:
		return strings.Compare(a.Phone, b.Phone)
	case SortByRole:
		return strings.Compare(string(a.Role), string(b.Role))
	case SortByProgrammingLanguage:
		return strings.Compare(a.ProgrammingLanguage, b.ProgrammingLanguage)
	case SortByCountry:
		return strings.Compare(a.Country, b.Country)
	case SortByMentorName:
		return strings.Compare(a.MentorName, b.MentorName)
	case SortByEnglishLevel:
		return strings.Compare(a.EnglishLevel, b.EnglishLevel)
	case SortBySalary:
		return cmp.Compare(a.Salary, b.Salary)
	case SortByCreatedAt:
		return a.CreatedAt.Compare(b.CreatedAt)
	default:
		return cmp.Compare(a.ID, b.ID)
	}
}

// SortOrder is the direction of a listing.
type SortOrder string

const (
	SortAsc  SortOrder = "ASC"
	SortDesc SortOrder = "DESC"
)

// ParseSortOrder is case-insensitive. Empty input selects ASC.
func ParseSortOrder(s string) (SortOrder, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "", string(SortAsc):
		return SortAsc, nil
	case string(SortDesc):
		return SortDesc, nil
	default:
		return "", InvalidInput("sortOrder must be one of: ASC DESC")
	}
}
