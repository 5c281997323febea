package usecase_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/careerflowhq/careerflow-api/internal/domain"
	"github.com/careerflowhq/careerflow-api/internal/usecase"
)

func TestMergeSnapshot_StoredValuesWin(t *testing.T) {
	app := domain.Application{
		FullName: "Snapshot Name",
		Email:    "snapshot@example.com",
		Skills:   []string{"rust"},
	}
	user := domain.User{
		FirstName: "Profile",
		LastName:  "Person",
		Email:     "profile@example.com",
		Phone:     "+111",
		Skills:    []string{"go"},
	}

	got := usecase.MergeSnapshot(app, user)
	assert.Equal(t, "Snapshot Name", got.FullName)
	assert.Equal(t, "snapshot@example.com", got.Email)
	assert.Equal(t, []string{"rust"}, got.Skills)
	// Gaps fill from the profile.
	assert.Equal(t, "+111", got.Phone)
}

func TestMergeSnapshot_EmptySnapshotFillsFromProfile(t *testing.T) {
	user := domain.User{
		FirstName:       "Jane",
		LastName:        "Doe",
		Email:           "jane@example.com",
		ExperienceYears: "7",
		Skills:          []string{"go", "sql"},
	}

	got := usecase.MergeSnapshot(domain.Application{}, user)
	assert.Equal(t, "Jane Doe", got.FullName)
	assert.Equal(t, "jane@example.com", got.Email)
	assert.Equal(t, "7", got.ExperienceYears)
	assert.Equal(t, []string{"go", "sql"}, got.Skills)
}

func TestMergeSnapshot_Idempotent(t *testing.T) {
	app := domain.Application{FullName: "Stored", Phone: ""}
	user := domain.User{FirstName: "Jane", Phone: "+222", Skills: []string{"go"}}

	once := usecase.MergeSnapshot(app, user)
	twice := usecase.MergeSnapshot(once, user)
	assert.Equal(t, once, twice)
}

func TestMergeSnapshot_SkillsNeverNil(t *testing.T) {
	got := usecase.MergeSnapshot(domain.Application{}, domain.User{})
	assert.NotNil(t, got.Skills)
	assert.Empty(t, got.Skills)
}

func TestMergeSnapshot_DoesNotAliasProfileSkills(t *testing.T) {
	user := domain.User{Skills: []string{"go"}}
	got := usecase.MergeSnapshot(domain.Application{}, user)
	got.Skills[0] = "mutated"
	assert.Equal(t, []string{"go"}, user.Skills)
}
