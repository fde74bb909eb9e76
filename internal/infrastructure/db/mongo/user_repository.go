package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/roster-hq/employee-roster/internal/core/domain"
	"github.com/roster-hq/employee-roster/internal/core/ports"
)

const (
	collectionUsers    = "users"
	collectionCounters = "counters"
)

// sortColumns maps JSON sort keys to document fields.
var sortColumns = map[domain.SortField]string{
	domain.SortByID:                  "_id",
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

// UserRepository implements ports.UserRepository on a MongoDB collection.
// Ids come from a counter document so they increase and are never reused.
type UserRepository struct {
	col      *mongo.Collection
	counters *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{
		col:      db.Collection(collectionUsers),
		counters: db.Collection(collectionCounters),
	}
}

type mongoUser struct {
	ID                  int64     `bson:"_id"`
	Email               string    `bson:"email"`
	PasswordHash        string    `bson:"password_hash"`
	FirstName           string    `bson:"first_name"`
	LastName            string    `bson:"last_name"`
	MiddleName          string    `bson:"middle_name"`
	BirthDate           string    `bson:"birth_date"`
	Phone               string    `bson:"phone"`
	Role                string    `bson:"role"`
	ProgrammingLanguage string    `bson:"programming_language"`
	Country             string    `bson:"country"`
	MentorName          string    `bson:"mentor_name"`
	EnglishLevel        string    `bson:"english_level"`
	Salary              float64   `bson:"salary"`
	CreatedAt           time.Time `bson:"created_at"`
	UpdatedAt           time.Time `bson:"updated_at"`
}

func toDocument(u *domain.User) mongoUser {
	return mongoUser{
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
		CreatedAt:           u.CreatedAt.UTC(),
		UpdatedAt:           u.UpdatedAt.UTC(),
	}
}

func (d mongoUser) toDomain() *domain.User {
	return &domain.User{
		ID:                  d.ID,
		Email:               d.Email,
		PasswordHash:        d.PasswordHash,
		FirstName:           d.FirstName,
		LastName:            d.LastName,
		MiddleName:          d.MiddleName,
		BirthDate:           d.BirthDate,
		Phone:               d.Phone,
		Role:                domain.Role(d.Role),
		ProgrammingLanguage: d.ProgrammingLanguage,
		Country:             d.Country,
		MentorName:          d.MentorName,
		EnglishLevel:        d.EnglishLevel,
		Salary:              d.Salary,
		CreatedAt:           d.CreatedAt.UTC(),
		UpdatedAt:           d.UpdatedAt.UTC(),
	}
}

// Create allocates the next id and inserts the user.
func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id, err := r.nextID(ctx)
	if err != nil {
		return nil, err
	}

	doc := toDocument(user)
	doc.ID = id
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *UserRepository) nextID(ctx context.Context) (int64, error) {
	var counter struct {
		Seq int64 `bson:"seq"`
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	err := r.counters.FindOneAndUpdate(ctx,
		bson.M{"_id": collectionUsers},
		bson.M{"$inc": bson.M{"seq": int64(1)}},
		opts,
	).Decode(&counter)
	if err != nil {
		return 0, fmt.Errorf("next user id: %w", err)
	}
	return counter.Seq, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc mongoUser
	if err := r.col.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return doc.toDomain(), nil
}

// Update applies the patch with a single FindOneAndUpdate so a concurrent
// delete leaves nothing to write to.
func (r *UserRepository) Update(ctx context.Context, id int64, patch domain.UserPatch) (*domain.User, error) {
	set := patchDocument(patch)
	if len(set) == 0 {
		return r.FindByID(ctx, id)
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc mongoUser
	err := r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		switch {
		case errors.Is(err, mongo.ErrNoDocuments):
			return nil, domain.ErrUserNotFound
		case mongo.IsDuplicateKeyError(err):
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("update user: %w", err)
	}
	return doc.toDomain(), nil
}

func patchDocument(p domain.UserPatch) bson.M {
	set := bson.M{}
	put := func(field string, v *string) {
		if v != nil {
			set[field] = *v
		}
	}
	put("email", p.Email)
	put("password_hash", p.PasswordHash)
	put("first_name", p.FirstName)
	put("last_name", p.LastName)
	put("middle_name", p.MiddleName)
	put("birth_date", p.BirthDate)
	put("phone", p.Phone)
	put("programming_language", p.ProgrammingLanguage)
	put("country", p.Country)
	put("mentor_name", p.MentorName)
	put("english_level", p.EnglishLevel)
	if p.Salary != nil {
		set["salary"] = *p.Salary
	}
	if !p.UpdatedAt.IsZero() {
		set["updated_at"] = p.UpdatedAt.UTC()
	}
	return set
}

func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// List returns one page sorted by the filter key with _id ascending on ties.
func (r *UserRepository) List(ctx context.Context, f ports.ListUsersFilter) ([]*domain.User, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	total, err := r.col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, fmt.Errorf("count users: %w", err)
	}
	if f.PastEnd(total) {
		return []*domain.User{}, total, nil
	}

	opts := options.Find().
		SetSort(sortDocument(f)).
		SetSkip(int64(f.Offset())).
		SetLimit(int64(f.Limit))

	cur, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("find users: %w", err)
	}
	var docs []mongoUser
	if err := cur.All(ctx, &docs); err != nil {
		return nil, 0, fmt.Errorf("decode users: %w", err)
	}

	users := make([]*domain.User, len(docs))
	for i, d := range docs {
		users[i] = d.toDomain()
	}
	return users, total, nil
}

func sortDocument(f ports.ListUsersFilter) bson.D {
	dir := 1
	if f.SortOrder == domain.SortDesc {
		dir = -1
	}
	col, ok := sortColumns[f.SortKey]
	if !ok || col == "_id" {
		return bson.D{{Key: "_id", Value: dir}}
	}
	return bson.D{{Key: col, Value: dir}, {Key: "_id", Value: 1}}
}

// EnsureIndexes creates the unique email index and indexes for common sort keys.
func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "salary", Value: 1}, {Key: "_id", Value: 1}}},
		{Keys: bson.D{{Key: "last_name", Value: 1}, {Key: "_id", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
