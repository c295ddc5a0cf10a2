package service

import (
	"aifit/fitness-app/internal/domain"
	"aifit/fitness-app/internal/llm"
	"aifit/fitness-app/internal/repository"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrUserNotFound      = errors.New("user not found")
	ErrGenerationService = errors.New("generation service failure")
	ErrPersistence       = errors.New("failed to persist generated plan")
	ErrEntryNotFound     = errors.New("workout history entry not found")
)

// GenerationService runs the plan-generation pipeline: profile check, calorie
// calculation, prompt construction, model call, sanitize/validate, and the
// history append. Each request is a strict sequence; any stage failure aborts
// the request with its typed error and nothing is retried across stages.
type GenerationService interface {
	GenerateWorkout(ctx context.Context, userID primitive.ObjectID, prefs WorkoutPreferences) (*domain.WorkoutHistoryEntry, error)
	// GenerateDiet also returns the calorie target the plan was built around.
	GenerateDiet(ctx context.Context, userID primitive.ObjectID, prefs DietPreferences) (*domain.MealHistoryEntry, int, error)

	CompleteWorkout(ctx context.Context, userID, entryID primitive.ObjectID, duration *int, notes string) (*domain.WorkoutHistoryEntry, error)
	LogMeal(ctx context.Context, userID primitive.ObjectID, log domain.MealLog) (*domain.MealHistoryEntry, error)

	WorkoutHistory(ctx context.Context, userID primitive.ObjectID) ([]domain.WorkoutHistoryEntry, error)
	MealHistory(ctx context.Context, userID primitive.ObjectID) ([]domain.MealHistoryEntry, error)
}

type generationService struct {
	userRepo  repository.UserRepository
	generator llm.Client
	logger    zerolog.Logger
}

// NewGenerationService creates a new instance of generationService.
func NewGenerationService(userRepo repository.UserRepository, generator llm.Client, logger zerolog.Logger) GenerationService {
	return &generationService{
		userRepo:  userRepo,
		generator: generator,
		logger:    logger,
	}
}

// GenerateWorkout runs the pipeline for the workout variant.
func (s *generationService) GenerateWorkout(ctx context.Context, userID primitive.ObjectID, prefs WorkoutPreferences) (*domain.WorkoutHistoryEntry, error) {
	user, err := s.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	// Profile check happens before anything touches the external service.
	if !user.Profile.HasBodyMetrics() {
		return nil, ErrIncompleteProfile
	}

	prompt := BuildWorkoutPrompt(user.Profile, prefs)

	raw, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		s.logger.Error().Err(err).Str("user", userID.Hex()).Msg("workout generation call failed")
		return nil, fmt.Errorf("%w: %v", ErrGenerationService, err)
	}

	plan, err := ParseWorkoutPlan(SanitizeResponse(raw))
	if err != nil {
		var parseErr *ResponseParseError
		if errors.As(err, &parseErr) {
			s.logger.Error().Str("user", userID.Hex()).Str("snippet", parseErr.Snippet).Msg("workout response rejected")
		}
		return nil, err
	}

	entry := domain.WorkoutHistoryEntry{
		ID:        primitive.NewObjectID(),
		Date:      time.Now().UTC(),
		Plan:      *plan,
		Completed: false,
	}
	if err := s.userRepo.AppendWorkoutEntry(ctx, userID, entry); err != nil {
		s.logger.Error().Err(err).Str("user", userID.Hex()).Msg("failed to append workout history entry")
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	s.logger.Info().Str("user", userID.Hex()).Str("plan", plan.PlanName).Msg("workout plan generated")
	return &entry, nil
}

// GenerateDiet runs the pipeline for the diet variant. An explicit calorie
// target in the preferences bypasses the calculator entirely; otherwise the
// target is derived from the profile, which must be complete.
func (s *generationService) GenerateDiet(ctx context.Context, userID primitive.ObjectID, prefs DietPreferences) (*domain.MealHistoryEntry, int, error) {
	user, err := s.getUser(ctx, userID)
	if err != nil {
		return nil, 0, err
	}

	var targetCalories int
	if prefs.CalorieTarget != nil && *prefs.CalorieTarget > 0 {
		targetCalories = *prefs.CalorieTarget
	} else {
		targetCalories, err = CalculateCalorieTarget(user.Profile)
		if err != nil {
			return nil, 0, err
		}
	}

	prompt := BuildDietPrompt(user.Profile, prefs, targetCalories)

	raw, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		s.logger.Error().Err(err).Str("user", userID.Hex()).Msg("diet generation call failed")
		return nil, 0, fmt.Errorf("%w: %v", ErrGenerationService, err)
	}

	plan, err := ParseDietPlan(SanitizeResponse(raw))
	if err != nil {
		var parseErr *ResponseParseError
		if errors.As(err, &parseErr) {
			s.logger.Error().Str("user", userID.Hex()).Str("snippet", parseErr.Snippet).Msg("diet response rejected")
		}
		return nil, 0, err
	}

	entry := domain.MealHistoryEntry{
		ID:   primitive.NewObjectID(),
		Date: time.Now().UTC(),
		Plan: plan,
	}
	if err := s.userRepo.AppendMealEntry(ctx, userID, entry); err != nil {
		s.logger.Error().Err(err).Str("user", userID.Hex()).Msg("failed to append meal history entry")
		return nil, 0, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	s.logger.Info().Str("user", userID.Hex()).Str("plan", plan.PlanName).Int("calories", targetCalories).Msg("diet plan generated")
	return &entry, targetCalories, nil
}

// CompleteWorkout marks one workout history entry as completed.
func (s *generationService) CompleteWorkout(ctx context.Context, userID, entryID primitive.ObjectID, duration *int, notes string) (*domain.WorkoutHistoryEntry, error) {
	entry, err := s.userRepo.CompleteWorkoutEntry(ctx, userID, entryID, duration, notes)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrEntryNotFound
		}
		return nil, err
	}
	return entry, nil
}

// LogMeal appends an ad-hoc meal entry (no generation involved).
func (s *generationService) LogMeal(ctx context.Context, userID primitive.ObjectID, log domain.MealLog) (*domain.MealHistoryEntry, error) {
	entry := domain.MealHistoryEntry{
		ID:   primitive.NewObjectID(),
		Date: time.Now().UTC(),
		Log:  &log,
	}
	if err := s.userRepo.AppendMealEntry(ctx, userID, entry); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return &entry, nil
}

// WorkoutHistory returns the user's workout history in append order.
func (s *generationService) WorkoutHistory(ctx context.Context, userID primitive.ObjectID) ([]domain.WorkoutHistoryEntry, error) {
	user, err := s.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return user.WorkoutHistory, nil
}

// MealHistory returns the user's meal history in append order.
func (s *generationService) MealHistory(ctx context.Context, userID primitive.ObjectID) ([]domain.MealHistoryEntry, error) {
	user, err := s.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return user.MealHistory, nil
}

func (s *generationService) getUser(ctx context.Context, userID primitive.ObjectID) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}
