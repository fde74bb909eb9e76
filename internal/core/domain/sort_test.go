package domain

import (
	"errors"
	"testing"
	"time"
)

func TestParseSortField(t *testing.T) {
	for _, in := range []string{"id", "salary", "firstName", "programmingLanguage", "createdAt"} {
		if f, err := ParseSortField(in); err != nil || string(f) != in {
			t.Errorf("ParseSortField(%q) = %q, %v", in, f, err)
		}
	}

	if f, err := ParseSortField(""); err != nil || f != SortByID {
		t.Errorf("empty key should select id, got %q, %v", f, err)
	}

	for _, in := range []string{"password", "passwordHash", "Salary", "first_name"} {
		_, err := ParseSortField(in)
		if !errors.Is(err, ErrInvalidSortKey) || !errors.Is(err, ErrInvalidInput) {
			t.Errorf("ParseSortField(%q): expected ErrInvalidSortKey, got %v", in, err)
		}
	}
}

func TestParseSortOrder(t *testing.T) {
	cases := map[string]SortOrder{"": SortAsc, "asc": SortAsc, "ASC": SortAsc, "desc": SortDesc, " Desc ": SortDesc}
	for in, want := range cases {
		got, err := ParseSortOrder(in)
		if err != nil || got != want {
			t.Errorf("ParseSortOrder(%q) = %q, %v; want %q", in, got, err, want)
		}
	}

	if _, err := ParseSortOrder("random"); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestSortField_Compare(t *testing.T) {
	early := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	a := &User{ID: 1, LastName: "Bauer", Salary: 3000, CreatedAt: early}
	b := &User{ID: 2, LastName: "Adams", Salary: 3000, CreatedAt: early.Add(time.Hour)}

	if SortByLastName.Compare(a, b) <= 0 {
		t.Errorf("expected Bauer after Adams")
	}
	if SortBySalary.Compare(a, b) != 0 {
		t.Errorf("expected equal salaries to compare equal")
	}
	if SortByCreatedAt.Compare(a, b) >= 0 {
		t.Errorf("expected earlier createdAt first")
	}
	if SortByID.Compare(a, b) >= 0 {
		t.Errorf("expected id 1 before id 2")
	}
}
