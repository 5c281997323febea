package usecase

import "github.com/careerflowhq/careerflow-api/internal/domain"

// MergeSnapshot fills missing snapshot fields of a stored application from
// the owning candidate's current profile. Historical records may predate the
// snapshot feature or carry partial data; the merge is a read-time projection
// and is never written back. It is a pure function: applying it twice yields
// the same output as applying it once.
func MergeSnapshot(app domain.Application, user domain.User) domain.Application {
	app.FullName = firstNonEmpty(app.FullName, user.FullName())
	app.Email = firstNonEmpty(app.Email, user.Email)
	app.Phone = firstNonEmpty(app.Phone, user.Phone)
	app.Location = firstNonEmpty(app.Location, user.Location)
	app.ExperienceYears = firstNonEmpty(app.ExperienceYears, user.ExperienceYears)
	app.CurrentPosition = firstNonEmpty(app.CurrentPosition, user.CurrentPosition)
	app.CurrentCompany = firstNonEmpty(app.CurrentCompany, user.CurrentCompany)
	app.Education = firstNonEmpty(app.Education, user.Education)
	app.Availability = firstNonEmpty(app.Availability, user.Availability)
	app.ExpectedSalary = firstNonEmpty(app.ExpectedSalary, user.ExpectedSalary)
	app.NoticePeriod = firstNonEmpty(app.NoticePeriod, user.NoticePeriod)

	if len(app.Skills) == 0 {
		if len(user.Skills) > 0 {
			app.Skills = append([]string(nil), user.Skills...)
		} else {
			app.Skills = []string{}
		}
	}
	return app
}

func firstNonEmpty(stored, profile string) string {
	if stored != "" {
		return stored
	}
	return profile
}
