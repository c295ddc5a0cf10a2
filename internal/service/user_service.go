package service

import (
	"aifit/fitness-app/internal/domain"
	"aifit/fitness-app/internal/repository"
	"aifit/fitness-app/internal/storage"
	"context"
	"errors"
	"fmt"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrInvalidProfile   = errors.New("invalid profile values")
	ErrPhotoURLError    = errors.New("failed to generate photo URL")
	ErrInvalidPhotoType = errors.New("invalid or missing image content type")
)

// ProfileUpdate carries partial profile changes. Nil fields keep their
// previous values, matching PUT-with-merge semantics on the profile endpoint.
type ProfileUpdate struct {
	Age                 *int                  `json:"age,omitempty"`
	Weight              *float64              `json:"weight,omitempty"`
	Height              *int                  `json:"height,omitempty"`
	Gender              *domain.Gender        `json:"gender,omitempty"`
	Goal                *domain.Goal          `json:"goal,omitempty"`
	ActivityLevel       *domain.ActivityLevel `json:"activityLevel,omitempty"`
	DietaryRestrictions *[]string             `json:"dietaryRestrictions,omitempty"`
}

// ProgressInput is a new progress check-in.
type ProgressInput struct {
	Weight       *float64             `json:"weight,omitempty"`
	Measurements *domain.Measurements `json:"measurements,omitempty"`
	Notes        string               `json:"notes,omitempty"`
	PhotoKey     string               `json:"photoKey,omitempty"`
}

// ProgressDetails pairs a progress entry with a temporary photo URL when the
// entry has one.
type ProgressDetails struct {
	domain.ProgressEntry
	PhotoURL *string `json:"photoUrl,omitempty"`
}

// ProgressStats summarizes weight change over the progress log.
type ProgressStats struct {
	TotalEntries  int     `json:"totalEntries"`
	StartWeight   float64 `json:"startWeight"`
	CurrentWeight float64 `json:"currentWeight"`
	WeightChange  float64 `json:"weightChange"`
}

// UploadURLResponse returns a pre-signed upload URL plus the object key the
// client must report back when it attaches the photo to a progress entry.
type UploadURLResponse struct {
	UploadURL string `json:"uploadUrl"`
	ObjectKey string `json:"objectKey"`
}

type UserService interface {
	GetProfile(ctx context.Context, userID primitive.ObjectID) (*domain.Profile, error)
	UpdateProfile(ctx context.Context, userID primitive.ObjectID, update ProfileUpdate) (*domain.Profile, error)

	AddProgress(ctx context.Context, userID primitive.ObjectID, input ProgressInput) (*domain.ProgressEntry, error)
	GetProgress(ctx context.Context, userID primitive.ObjectID) ([]ProgressDetails, error)
	GetProgressStats(ctx context.Context, userID primitive.ObjectID) (*ProgressStats, error)
	RequestPhotoUploadURL(ctx context.Context, userID primitive.ObjectID, contentType string) (*UploadURLResponse, error)
}

// userService implements the UserService interface.
type userService struct {
	userRepo    repository.UserRepository
	fileStorage storage.FileStorage
}

// NewUserService creates a new instance of userService.
func NewUserService(userRepo repository.UserRepository, fileStorage storage.FileStorage) UserService {
	return &userService{
		userRepo:    userRepo,
		fileStorage: fileStorage,
	}
}

// GetProfile returns the user's profile.
func (s *userService) GetProfile(ctx context.Context, userID primitive.ObjectID) (*domain.Profile, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user.Profile, nil
}

// UpdateProfile merges the update into the stored profile and persists it.
func (s *userService) UpdateProfile(ctx context.Context, userID primitive.ObjectID, update ProfileUpdate) (*domain.Profile, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	profile := user.Profile
	if update.Age != nil {
		profile.Age = update.Age
	}
	if update.Weight != nil {
		profile.Weight = update.Weight
	}
	if update.Height != nil {
		profile.Height = update.Height
	}
	if update.Gender != nil {
		profile.Gender = *update.Gender
	}
	if update.Goal != nil {
		profile.Goal = *update.Goal
	}
	if update.ActivityLevel != nil {
		profile.ActivityLevel = *update.ActivityLevel
	}
	if update.DietaryRestrictions != nil {
		profile.DietaryRestrictions = *update.DietaryRestrictions
	}

	if err := validateProfile(profile); err != nil {
		return nil, err
	}

	if err := s.userRepo.UpdateProfile(ctx, userID, profile); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &profile, nil
}

// AddProgress appends a new progress entry.
func (s *userService) AddProgress(ctx context.Context, userID primitive.ObjectID, input ProgressInput) (*domain.ProgressEntry, error) {
	entry := domain.ProgressEntry{
		ID:           primitive.NewObjectID(),
		Date:         time.Now().UTC(),
		Weight:       input.Weight,
		Measurements: input.Measurements,
		Notes:        input.Notes,
		PhotoKey:     input.PhotoKey,
	}

	if err := s.userRepo.AppendProgressEntry(ctx, userID, entry); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &entry, nil
}

// GetProgress returns all progress entries, resolving photo keys to temporary
// download URLs.
func (s *userService) GetProgress(ctx context.Context, userID primitive.ObjectID) ([]ProgressDetails, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	details := make([]ProgressDetails, 0, len(user.Progress))
	for _, entry := range user.Progress {
		d := ProgressDetails{ProgressEntry: entry}
		if entry.PhotoKey != "" {
			url, err := s.fileStorage.GeneratePresignedDownloadURL(ctx, entry.PhotoKey, storage.DefaultPresignedURLExpiry)
			if err == nil {
				d.PhotoURL = &url
			}
			// A failed presign degrades to an entry without a photo URL
			// rather than failing the whole listing.
		}
		details = append(details, d)
	}
	return details, nil
}

// GetProgressStats computes weight change across the progress log.
func (s *userService) GetProgressStats(ctx context.Context, userID primitive.ObjectID) (*ProgressStats, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	weighed := make([]domain.ProgressEntry, 0, len(user.Progress))
	for _, entry := range user.Progress {
		if entry.Weight != nil {
			weighed = append(weighed, entry)
		}
	}

	stats := &ProgressStats{TotalEntries: len(user.Progress)}
	if len(weighed) == 0 {
		return stats, nil
	}

	sort.SliceStable(weighed, func(i, j int) bool {
		return weighed[i].Date.Before(weighed[j].Date)
	})
	stats.StartWeight = *weighed[0].Weight
	stats.CurrentWeight = *weighed[len(weighed)-1].Weight
	stats.WeightChange = stats.CurrentWeight - stats.StartWeight
	return stats, nil
}

// RequestPhotoUploadURL generates a pre-signed URL for uploading a progress
// photo directly to object storage.
func (s *userService) RequestPhotoUploadURL(ctx context.Context, userID primitive.ObjectID, contentType string) (*UploadURLResponse, error) {
	if !strings.HasPrefix(strings.ToLower(contentType), "image/") {
		return nil, ErrInvalidPhotoType
	}

	fileExtension := ""
	parts := strings.Split(contentType, "/")
	if len(parts) == 2 {
		fileExtension = parts[1]
	}
	objectKey := path.Join("progress", userID.Hex(), fmt.Sprintf("%s.%s", uuid.NewString(), fileExtension))

	uploadURL, err := s.fileStorage.GeneratePresignedUploadURL(ctx, objectKey, contentType, storage.DefaultPresignedURLExpiry)
	if err != nil {
		return nil, ErrPhotoURLError
	}

	return &UploadURLResponse{
		UploadURL: uploadURL,
		ObjectKey: objectKey,
	}, nil
}

// validateProfile enforces the value ranges and enums the generation pipeline
// assumes.
func validateProfile(p domain.Profile) error {
	if p.Age != nil && (*p.Age < 10 || *p.Age > 100) {
		return fmt.Errorf("%w: age must be between 10 and 100", ErrInvalidProfile)
	}
	if p.Weight != nil && (*p.Weight < 30 || *p.Weight > 300) {
		return fmt.Errorf("%w: weight must be between 30 and 300 kg", ErrInvalidProfile)
	}
	if p.Height != nil && (*p.Height < 100 || *p.Height > 250) {
		return fmt.Errorf("%w: height must be between 100 and 250 cm", ErrInvalidProfile)
	}
	switch p.Gender {
	case "", domain.GenderMale, domain.GenderFemale, domain.GenderOther:
	default:
		return fmt.Errorf("%w: unknown gender %q", ErrInvalidProfile, p.Gender)
	}
	switch p.Goal {
	case "", domain.GoalWeightLoss, domain.GoalMuscleGain, domain.GoalMaintenance, domain.GoalGeneralFitness:
	default:
		return fmt.Errorf("%w: unknown goal %q", ErrInvalidProfile, p.Goal)
	}
	switch p.ActivityLevel {
	case "", domain.ActivitySedentary, domain.ActivityModerate, domain.ActivityActive, domain.ActivityVeryActive:
	default:
		return fmt.Errorf("%w: unknown activity level %q", ErrInvalidProfile, p.ActivityLevel)
	}
	return nil
}
