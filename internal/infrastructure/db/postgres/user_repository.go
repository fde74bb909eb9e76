package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/roster-hq/employee-roster/internal/core/domain"
	"github.com/roster-hq/employee-roster/internal/core/ports"
)

type userRow struct {
	ID                  int64     `gorm:"primaryKey;autoIncrement"`
	Email               string    `gorm:"size:320;not null;uniqueIndex"`
	PasswordHash        string    `gorm:"not null"`
	FirstName           string    `gorm:"size:100"`
	LastName            string    `gorm:"size:100;index"`
	MiddleName          string    `gorm:"size:100"`
	BirthDate           string    `gorm:"size:32"`
	Phone               string    `gorm:"size:32"`
	Role                string    `gorm:"size:16;not null"`
	ProgrammingLanguage string    `gorm:"size:64"`
	Country             string    `gorm:"size:64"`
	MentorName          string    `gorm:"size:200"`
	EnglishLevel        string    `gorm:"size:16"`
	Salary              float64   `gorm:"type:double precision;not null;default:0;index"`
	CreatedAt           time.Time `gorm:"autoCreateTime:false"`
	UpdatedAt           time.Time `gorm:"autoUpdateTime:false"`
}

func (userRow) TableName() string { return "users" }

func fromDomain(u *domain.User) userRow {
	return userRow{
		ID:                  u.ID,
		Email:               u.Email,
		PasswordHash:        u.PasswordHash,
		FirstName:           u.FirstName,
		LastName:            u.LastName,
		MiddleName:          u.MiddleName,
		BirthDate:           u.BirthDate,
		Phone:               u.Phone,
		Role:                string(u.Role),
		ProgrammingLanguage: u.ProgrammingLanguage,
		Country:             u.Country,
		MentorName:          u.MentorName,
		EnglishLevel:        u.EnglishLevel,
		Salary:              u.Salary,
		CreatedAt:           u.CreatedAt,
		UpdatedAt:           u.UpdatedAt,
	}
}

func (r userRow) toDomain() *domain.User {
	return &domain.User{
		ID:                  r.ID,
		Email:               r.Email,
		PasswordHash:        r.PasswordHash,
		FirstName:           r.FirstName,
		LastName:            r.LastName,
		MiddleName:          r.MiddleName,
		BirthDate:           r.BirthDate,
		Phone:               r.Phone,
		Role:                domain.Role(r.Role),
		ProgrammingLanguage: r.ProgrammingLanguage,
		Country:             r.Country,
		MentorName:          r.MentorName,
		EnglishLevel:        r.EnglishLevel,
		Salary:              r.Salary,
		CreatedAt:           r.CreatedAt.UTC(),
		UpdatedAt:           r.UpdatedAt.UTC(),
	}
}

var sortColumns = map[domain.SortField]string{
	domain.SortByID:                  "id",
	domain.SortByEmail:               "email",
	domain.SortByFirstName:           "first_name",
	domain.SortByLastName:            "last_name",
	domain.SortByMiddleName:          "middle_name",
	domain.SortByBirthDate:           "birth_date",
	domain.SortByPhone:               "phone",
	domain.SortByRole:                "role",
	domain.SortByProgrammingLanguage: "programming_language",
	domain.SortByCountry:             "country",
	domain.SortByMentorName:          "mentor_name",
	domain.SortByEnglishLevel:        "english_level",
	domain.SortBySalary:              "salary",
	domain.SortByCreatedAt:           "created_at",
}

// UserRepository implements ports.UserRepository on PostgreSQL. Ids come
// from the table's identity sequence and are never reused.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	row := fromDomain(user)
	row.ID = 0
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return nil, translate("create user", err)
	}
	return row.toDomain(), nil
}

func (r *UserRepository) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	var row userRow
	if err := r.db.WithContext(ctx).First(&row, id).Error; err != nil {
		return nil, translate("find user", err)
	}
	return row.toDomain(), nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var row userRow
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&row).Error; err != nil {
		return nil, translate("find user", err)
	}
	return row.toDomain(), nil
}

// Update locks the row, merges the patch and writes it back in one transaction.
func (r *UserRepository) Update(ctx context.Context, id int64, patch domain.UserPatch) (*domain.User, error) {
	var merged *domain.User
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row userRow
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&row, id).Error; err != nil {
			return err
		}

		current := row.toDomain()
		patch.Apply(current)
		next := fromDomain(current)
		if err := tx.Save(&next).Error; err != nil {
			return err
		}
		merged = next.toDomain()
		return nil
	})
	if err != nil {
		return nil, translate("update user", err)
	}
	return merged, nil
}

func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&userRow{}, id)
	if res.Error != nil {
		return translate("delete user", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) List(ctx context.Context, f ports.ListUsersFilter) ([]*domain.User, int64, error) {
	query := r.db.WithContext(ctx).Model(&userRow{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, translate("count users", err)
	}
	if f.PastEnd(total) {
		return []*domain.User{}, total, nil
	}

	col, ok := sortColumns[f.SortKey]
	if !ok {
		col = "id"
	}
	desc := f.SortOrder == domain.SortDesc
	query = query.Order(clause.OrderByColumn{Column: clause.Column{Name: col}, Desc: desc})
	if col != "id" {
		query = query.Order(clause.OrderByColumn{Column: clause.Column{Name: "id"}})
	}

	var rows []userRow
	if err := query.Offset(f.Offset()).Limit(f.Limit).Find(&rows).Error; err != nil {
		return nil, 0, translate("list users", err)
	}

	users := make([]*domain.User, len(rows))
	for i := range rows {
		users[i] = rows[i].toDomain()
	}
	return users, total, nil
}

func translate(op string, err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return domain.ErrUserNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return domain.ErrUserExists
	}
	return fmt.Errorf("%s: %w", op, err)
}
