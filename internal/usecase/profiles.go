package usecase

import (
	"errors"
	"fmt"
	"time"

	"github.com/careerflowhq/careerflow-api/internal/domain"
)

// ProfileService syncs identity-provider users into the store and serves
// profile reads. Users are created on first sign-in and patched on return
// visits; they are never deleted.
type ProfileService struct {
	Users domain.UserRepository
}

// NewProfileService constructs a ProfileService with the given repo.
func NewProfileService(users domain.UserRepository) ProfileService {
	return ProfileService{Users: users}
}

// SyncArgs carries the fields a sign-in or profile edit may set. Empty
// strings leave the stored value untouched on an existing profile.
type SyncArgs struct {
	SocialID        string
	FirstName       string
	LastName        string
	Email           string
	Phone           string
	Location        string
	ExperienceYears string
	CurrentPosition string
	CurrentCompany  string
	Skills          []string
	Education       string
	Availability    string
	ExpectedSalary  string
	NoticePeriod    string
	Role            string
	ResumeURL       string
}

// Sync creates the user on first sign-in or patches the stored profile.
func (s ProfileService) Sync(ctx domain.Context, args SyncArgs) (domain.User, error) {
	if args.SocialID == "" {
		return domain.User{}, fmt.Errorf("%w: socialId required", domain.ErrInvalidArgument)
	}
	existing, err := s.Users.GetBySocialID(ctx, args.SocialID)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			return domain.User{}, fmt.Errorf("op=profile.sync: %w", err)
		}
		now := time.Now().UTC()
		u := domain.User{
			SocialID:        args.SocialID,
			FirstName:       args.FirstName,
			LastName:        args.LastName,
			Email:           args.Email,
			Phone:           args.Phone,
			Location:        args.Location,
			ExperienceYears: args.ExperienceYears,
			CurrentPosition: args.CurrentPosition,
			CurrentCompany:  args.CurrentCompany,
			Skills:          args.Skills,
			Education:       args.Education,
			Availability:    args.Availability,
			ExpectedSalary:  args.ExpectedSalary,
			NoticePeriod:    args.NoticePeriod,
			Role:            firstNonEmpty(args.Role, domain.RoleCandidate),
			ResumeURL:       args.ResumeURL,
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		id, err := s.Users.Create(ctx, u)
		if err != nil {
			return domain.User{}, fmt.Errorf("op=profile.sync: %w", err)
		}
		u.ID = id
		return u, nil
	}

	existing.FirstName = firstNonEmpty(args.FirstName, existing.FirstName)
	existing.LastName = firstNonEmpty(args.LastName, existing.LastName)
	existing.Email = firstNonEmpty(args.Email, existing.Email)
	existing.Phone = firstNonEmpty(args.Phone, existing.Phone)
	existing.Location = firstNonEmpty(args.Location, existing.Location)
	existing.ExperienceYears = firstNonEmpty(args.ExperienceYears, existing.ExperienceYears)
	existing.CurrentPosition = firstNonEmpty(args.CurrentPosition, existing.CurrentPosition)
	existing.CurrentCompany = firstNonEmpty(args.CurrentCompany, existing.CurrentCompany)
	if len(args.Skills) > 0 {
		existing.Skills = args.Skills
	}
	existing.Education = firstNonEmpty(args.Education, existing.Education)
	existing.Availability = firstNonEmpty(args.Availability, existing.Availability)
	existing.ExpectedSalary = firstNonEmpty(args.ExpectedSalary, existing.ExpectedSalary)
	existing.NoticePeriod = firstNonEmpty(args.NoticePeriod, existing.NoticePeriod)
	existing.Role = firstNonEmpty(args.Role, existing.Role)
	existing.ResumeURL = firstNonEmpty(args.ResumeURL, existing.ResumeURL)
	existing.UpdatedAt = time.Now().UTC()

	if err := s.Users.Update(ctx, existing); err != nil {
		return domain.User{}, fmt.Errorf("op=profile.sync: %w", err)
	}
	return existing, nil
}

// Get loads a profile by social id.
func (s ProfileService) Get(ctx domain.Context, socialID string) (domain.User, error) {
	u, err := s.Users.GetBySocialID(ctx, socialID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.User{}, fmt.Errorf("op=profile.get: %w", domain.ErrUserNotFound)
		}
		return domain.User{}, fmt.Errorf("op=profile.get: %w", err)
	}
	return u, nil
}
