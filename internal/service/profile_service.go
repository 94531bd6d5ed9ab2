package service

import (
	"context"
	"strings"

	"devconnector/internal/cache"
	"devconnector/internal/github"
	"devconnector/internal/models"
	"devconnector/internal/observability"
	"devconnector/internal/repository"

	"go.opentelemetry.io/otel/attribute"
)

// ProfileService implements developer profile operations.
type ProfileService struct {
	profileRepo repository.ProfileRepository
	userRepo    repository.UserRepository
	gh          *github.Client
}

// UpsertProfileInput carries profile fields from the API layer. Empty
// optional fields leave the stored value untouched; Social is always
// replaced as a whole.
type UpsertProfileInput struct {
	UserID         uint
	Company        string
	Website        string
	Location       string
	Status         string
	Skills         string
	Bio            string
	GithubUsername string
	Social         models.SocialLinks
}

// ExperienceInput carries a work-history entry from the API layer.
type ExperienceInput struct {
	Title       string
	Company     string
	Location    string
	From        string
	To          string
	Current     bool
	Description string
}

// EducationInput carries an education entry from the API layer.
type EducationInput struct {
	School       string
	Degree       string
	FieldOfStudy string
	From         string
	To           string
	Current      bool
	Description  string
}

// NewProfileService returns a new ProfileService.
func NewProfileService(profileRepo repository.ProfileRepository, userRepo repository.UserRepository, gh *github.Client) *ProfileService {
	return &ProfileService{profileRepo: profileRepo, userRepo: userRepo, gh: gh}
}

// GetByUserID returns the profile belonging to the user, served from cache
// when fresh. Mutations invalidate the entry, so a miss falls through to the
// store.
func (s *ProfileService) GetByUserID(ctx context.Context, userID uint) (*models.Profile, error) {
	var profile models.Profile
	err := cache.CacheAside(ctx, cache.ProfileKey(userID), &profile, cache.ProfileTTL, func() error {
		fetched, err := s.profileRepo.GetByUserID(ctx, userID)
		if err != nil {
			return err
		}
		profile = *fetched
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// List returns all profiles, newest first.
func (s *ProfileService) List(ctx context.Context) ([]models.Profile, error) {
	return s.profileRepo.List(ctx)
}

func isNotFound(err error) bool {
	appErr, ok := err.(*models.AppError)
	return ok && appErr.Code == models.CodeNotFound
}

// parseSkills splits a comma-separated skills string, trimming whitespace
// and dropping empty segments.
func parseSkills(raw string) []string {
	parts := strings.Split(raw, ",")
	skills := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			skills = append(skills, trimmed)
		}
	}
	return skills
}

// Upsert creates the user's profile or updates it in place. Submitting the
// same input twice yields the same stored profile.
func (s *ProfileService) Upsert(ctx context.Context, in UpsertProfileInput) (*models.Profile, error) {
	var missing []string
	if strings.TrimSpace(in.Status) == "" {
		missing = append(missing, "status")
	}
	skills := parseSkills(in.Skills)
	if len(skills) == 0 {
		missing = append(missing, "skills")
	}
	if len(missing) > 0 {
		return nil, models.NewValidationError("Status and skills are required", missing...)
	}

	profile, err := s.profileRepo.GetByUserID(ctx, in.UserID)
	if err != nil {
		if !isNotFound(err) {
			return nil, err
		}
		profile = &models.Profile{UserID: in.UserID}
	}

	profile.Status = in.Status
	profile.Skills = skills
	if in.Company != "" {
		profile.Company = in.Company
	}
	if in.Website != "" {
		profile.Website = in.Website
	}
	if in.Location != "" {
		profile.Location = in.Location
	}
	if in.Bio != "" {
		profile.Bio = in.Bio
	}
	if in.GithubUsername != "" {
		profile.GithubUsername = in.GithubUsername
	}
	// The social block is replaced wholesale: omitted links are cleared.
	profile.Social = in.Social

	if err := s.profileRepo.Save(ctx, profile); err != nil {
		return nil, err
	}

	return s.profileRepo.GetByUserID(ctx, in.UserID)
}

// AddExperience prepends a work-history entry to the user's profile.
func (s *ProfileService) AddExperience(ctx context.Context, userID uint, in ExperienceInput) (*models.Profile, error) {
	var missing []string
	if strings.TrimSpace(in.Title) == "" {
		missing = append(missing, "title")
	}
	if strings.TrimSpace(in.Company) == "" {
		missing = append(missing, "company")
	}
	if strings.TrimSpace(in.From) == "" {
		missing = append(missing, "from")
	}
	if len(missing) > 0 {
		return nil, models.NewValidationError("Title, company and from date are required", missing...)
	}

	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	exp := &models.Experience{
		ProfileID:   profile.ID,
		Title:       in.Title,
		Company:     in.Company,
		Location:    in.Location,
		From:        in.From,
		To:          in.To,
		Current:     in.Current,
		Description: in.Description,
	}
	if err := s.profileRepo.AddExperience(ctx, exp); err != nil {
		return nil, err
	}
	cache.InvalidateProfile(ctx, userID)

	return s.profileRepo.GetByUserID(ctx, userID)
}

// RemoveExperience deletes the entry. Removal succeeds as a no-op when the
// entry, or the profile itself, does not exist; callers get a nil profile in
// the latter case.
func (s *ProfileService) RemoveExperience(ctx context.Context, userID, expID uint) (*models.Profile, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	if err := s.profileRepo.RemoveExperience(ctx, profile.ID, expID); err != nil {
		return nil, err
	}
	cache.InvalidateProfile(ctx, userID)
	return s.profileRepo.GetByUserID(ctx, userID)
}

// AddEducation prepends an education entry to the user's profile.
func (s *ProfileService) AddEducation(ctx context.Context, userID uint, in EducationInput) (*models.Profile, error) {
	var missing []string
	if strings.TrimSpace(in.School) == "" {
		missing = append(missing, "school")
	}
	if strings.TrimSpace(in.Degree) == "" {
		missing = append(missing, "degree")
	}
	if strings.TrimSpace(in.FieldOfStudy) == "" {
		missing = append(missing, "fieldofstudy")
	}
	if strings.TrimSpace(in.From) == "" {
		missing = append(missing, "from")
	}
	if len(missing) > 0 {
		return nil, models.NewValidationError("School, degree, field of study and from date are required", missing...)
	}

	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	edu := &models.Education{
		ProfileID:    profile.ID,
		School:       in.School,
		Degree:       in.Degree,
		FieldOfStudy: in.FieldOfStudy,
		From:         in.From,
		To:           in.To,
		Current:      in.Current,
		Description:  in.Description,
	}
	if err := s.profileRepo.AddEducation(ctx, edu); err != nil {
		return nil, err
	}
	cache.InvalidateProfile(ctx, userID)

	return s.profileRepo.GetByUserID(ctx, userID)
}

// RemoveEducation deletes the entry. Removal succeeds as a no-op when the
// entry, or the profile itself, does not exist; callers get a nil profile in
// the latter case.
func (s *ProfileService) RemoveEducation(ctx context.Context, userID, eduID uint) (*models.Profile, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	if err := s.profileRepo.RemoveEducation(ctx, profile.ID, eduID); err != nil {
		return nil, err
	}
	cache.InvalidateProfile(ctx, userID)
	return s.profileRepo.GetByUserID(ctx, userID)
}

// DeleteAccount removes the user's profile and account. Posts and comments
// the user authored stay in the feed.
func (s *ProfileService) DeleteAccount(ctx context.Context, userID uint) error {
	if err := s.profileRepo.DeleteByUserID(ctx, userID); err != nil {
		return err
	}
	return s.userRepo.Delete(ctx, userID)
}

// GithubRepos returns the user's five most recently created public GitHub
// repositories, served from cache when fresh.
func (s *ProfileService) GithubRepos(ctx context.Context, username string) ([]github.Repo, error) {
	span, ctx := observability.NewSpan(ctx, "profile.github_repos")
	defer span.End()
	span.AddAttributes(attribute.String("github.username", username))

	var repos []github.Repo
	err := cache.CacheAside(ctx, cache.GithubKey(username), &repos, cache.GithubTTL, func() error {
		fetched, err := s.gh.Repos(ctx, username)
		if err != nil {
			return err
		}
		repos = fetched
		return nil
	})
	if err != nil {
		span.SetError(err)
		return nil, err
	}
	return repos, nil
}
