package service

import (
	"aifit/fitness-app/internal/domain"
	"aifit/fitness-app/internal/repository"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Stubs ---

type stubUserRepo struct {
	user      *domain.User
	getErr    error
	appendErr error

	workoutEntries  []domain.WorkoutHistoryEntry
	mealEntries     []domain.MealHistoryEntry
	progressEntries []domain.ProgressEntry
	updatedProfile  *domain.Profile
}

func (r *stubUserRepo) Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error) {
	if r.user != nil && r.user.Email == user.Email {
		return primitive.NilObjectID, repository.ErrDuplicate
	}
	id := primitive.NewObjectID()
	stored := *user
	stored.ID = id
	r.user = &stored
	return id, nil
}

func (r *stubUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if r.user == nil || r.user.Email != email {
		return nil, repository.ErrNotFound
	}
	u := *r.user
	return &u, nil
}

func (r *stubUserRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	if r.getErr != nil {
		return nil, r.getErr
	}
	if r.user == nil || r.user.ID != id {
		return nil, repository.ErrNotFound
	}
	u := *r.user
	u.WorkoutHistory = append([]domain.WorkoutHistoryEntry(nil), r.workoutEntries...)
	u.MealHistory = append([]domain.MealHistoryEntry(nil), r.mealEntries...)
	u.Progress = append([]domain.ProgressEntry(nil), r.progressEntries...)
	return &u, nil
}

func (r *stubUserRepo) UpdateProfile(ctx context.Context, userID primitive.ObjectID, profile domain.Profile) error {
	if r.user == nil || r.user.ID != userID {
		return repository.ErrNotFound
	}
	r.updatedProfile = &profile
	r.user.Profile = profile
	return nil
}

func (r *stubUserRepo) AppendWorkoutEntry(ctx context.Context, userID primitive.ObjectID, entry domain.WorkoutHistoryEntry) error {
	if r.appendErr != nil {
		return r.appendErr
	}
	if r.user == nil || r.user.ID != userID {
		return repository.ErrNotFound
	}
	r.workoutEntries = append(r.workoutEntries, entry)
	return nil
}

func (r *stubUserRepo) AppendMealEntry(ctx context.Context, userID primitive.ObjectID, entry domain.MealHistoryEntry) error {
	if r.appendErr != nil {
		return r.appendErr
	}
	if r.user == nil || r.user.ID != userID {
		return repository.ErrNotFound
	}
	r.mealEntries = append(r.mealEntries, entry)
	return nil
}

func (r *stubUserRepo) CompleteWorkoutEntry(ctx context.Context, userID, entryID primitive.ObjectID, duration *int, notes string) (*domain.WorkoutHistoryEntry, error) {
	if r.user == nil || r.user.ID != userID {
		return nil, repository.ErrNotFound
	}
	for i := range r.workoutEntries {
		if r.workoutEntries[i].ID == entryID {
			r.workoutEntries[i].Completed = true
			r.workoutEntries[i].Duration = duration
			if notes != "" {
				r.workoutEntries[i].Notes = notes
			}
			entry := r.workoutEntries[i]
			return &entry, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *stubUserRepo) AppendProgressEntry(ctx context.Context, userID primitive.ObjectID, entry domain.ProgressEntry) error {
	if r.user == nil || r.user.ID != userID {
		return repository.ErrNotFound
	}
	r.progressEntries = append(r.progressEntries, entry)
	return nil
}

type stubGenerator struct {
	response string
	err      error
	calls    int
	prompts  []string
}

func (g *stubGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	g.calls++
	g.prompts = append(g.prompts, prompt)
	if g.err != nil {
		return "", g.err
	}
	return g.response, nil
}

func newTestUser() *domain.User {
	profile := baseProfile()
	return &domain.User{
		ID:      primitive.NewObjectID(),
		Name:    "Test User",
		Email:   "test@example.com",
		Profile: profile,
	}
}

func newTestService(repo *stubUserRepo, gen *stubGenerator) GenerationService {
	return NewGenerationService(repo, gen, zerolog.Nop())
}

// --- Tests ---

func TestGenerateWorkoutSuccess(t *testing.T) {
	user := newTestUser()
	repo := &stubUserRepo{user: user}
	gen := &stubGenerator{response: "```json\n" + validWorkoutJSON + "\n```"}
	svc := newTestService(repo, gen)

	entry, err := svc.GenerateWorkout(context.Background(), user.ID, WorkoutPreferences{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if entry.Plan.PlanName != "Full Body Strength" {
		t.Errorf("unexpected plan: %+v", entry.Plan)
	}
	if entry.Completed {
		t.Error("new entry must not be completed")
	}
	if entry.ID.IsZero() {
		t.Error("entry has no ID")
	}
	if len(repo.workoutEntries) != 1 {
		t.Fatalf("expected 1 persisted entry, got %d", len(repo.workoutEntries))
	}
	if repo.workoutEntries[0].ID != entry.ID {
		t.Error("persisted entry differs from returned entry")
	}
}

func TestGenerateWorkoutIncompleteProfileSkipsExternalCall(t *testing.T) {
	user := newTestUser()
	user.Profile.Weight = nil
	repo := &stubUserRepo{user: user}
	gen := &stubGenerator{response: validWorkoutJSON}
	svc := newTestService(repo, gen)

	_, err := svc.GenerateWorkout(context.Background(), user.ID, WorkoutPreferences{})
	if !errors.Is(err, ErrIncompleteProfile) {
		t.Fatalf("expected ErrIncompleteProfile, got %v", err)
	}
	if gen.calls != 0 {
		t.Errorf("generator was called %d times; profile check must run first", gen.calls)
	}
	if len(repo.workoutEntries) != 0 {
		t.Error("nothing should be persisted")
	}
}

func TestGenerateWorkoutHistoryAppendOrder(t *testing.T) {
	user := newTestUser()
	repo := &stubUserRepo{user: user}
	gen := &stubGenerator{response: validWorkoutJSON}
	svc := newTestService(repo, gen)

	const n = 5
	var ids []primitive.ObjectID
	for i := 0; i < n; i++ {
		entry, err := svc.GenerateWorkout(context.Background(), user.ID, WorkoutPreferences{})
		if err != nil {
			t.Fatalf("generate %d: %v", i, err)
		}
		ids = append(ids, entry.ID)
	}

	history, err := svc.WorkoutHistory(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history) != n {
		t.Fatalf("expected %d entries, got %d", n, len(history))
	}
	for i, entry := range history {
		if entry.ID != ids[i] {
			t.Errorf("entry %d out of order", i)
		}
	}
}

func TestGenerateWorkoutServiceFailure(t *testing.T) {
	user := newTestUser()
	repo := &stubUserRepo{user: user}
	gen := &stubGenerator{err: errors.New("connection refused")}
	svc := newTestService(repo, gen)

	_, err := svc.GenerateWorkout(context.Background(), user.ID, WorkoutPreferences{})
	if !errors.Is(err, ErrGenerationService) {
		t.Fatalf("expected ErrGenerationService, got %v", err)
	}
	if len(repo.workoutEntries) != 0 {
		t.Error("nothing should be persisted on generation failure")
	}
}

func TestGenerateWorkoutParseFailure(t *testing.T) {
	user := newTestUser()
	repo := &stubUserRepo{user: user}
	gen := &stubGenerator{response: "I'm sorry, I can't produce JSON today."}
	svc := newTestService(repo, gen)

	_, err := svc.GenerateWorkout(context.Background(), user.ID, WorkoutPreferences{})
	var parseErr *ResponseParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected *ResponseParseError, got %v", err)
	}
	if len(repo.workoutEntries) != 0 {
		t.Error("nothing should be persisted on parse failure")
	}
}

func TestGenerateWorkoutPersistenceFailure(t *testing.T) {
	user := newTestUser()
	repo := &stubUserRepo{user: user, appendErr: errors.New("write concern failed")}
	gen := &stubGenerator{response: validWorkoutJSON}
	svc := newTestService(repo, gen)

	_, err := svc.GenerateWorkout(context.Background(), user.ID, WorkoutPreferences{})
	if !errors.Is(err, ErrPersistence) {
		t.Fatalf("expected ErrPersistence, got %v", err)
	}
}

func TestGenerateDietCalculatesCalories(t *testing.T) {
	user := newTestUser()
	repo := &stubUserRepo{user: user}
	gen := &stubGenerator{response: validDietJSON}
	svc := newTestService(repo, gen)

	entry, calories, err := svc.GenerateDiet(context.Background(), user.ID, DietPreferences{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calories != 2056 {
		t.Errorf("expected 2056 kcal target, got %d", calories)
	}
	if entry.Plan == nil || entry.Plan.PlanName != "Lean Cut" {
		t.Errorf("unexpected plan: %+v", entry.Plan)
	}
	if len(gen.prompts) != 1 || !strings.Contains(gen.prompts[0], "Target Calories: 2056 kcal/day") {
		t.Error("prompt does not carry the calculated calorie target")
	}
	if len(repo.mealEntries) != 1 {
		t.Fatalf("expected 1 persisted meal entry, got %d", len(repo.mealEntries))
	}
}

func TestGenerateDietExplicitTargetBypassesCalculator(t *testing.T) {
	user := newTestUser()
	user.Profile.Weight = nil // incomplete profile: calculator would fail
	repo := &stubUserRepo{user: user}
	gen := &stubGenerator{response: validDietJSON}
	svc := newTestService(repo, gen)

	target := 1800
	_, calories, err := svc.GenerateDiet(context.Background(), user.ID, DietPreferences{CalorieTarget: &target})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calories != 1800 {
		t.Errorf("expected explicit target 1800, got %d", calories)
	}
}

func TestGenerateDietIncompleteProfile(t *testing.T) {
	user := newTestUser()
	user.Profile.Weight = nil
	repo := &stubUserRepo{user: user}
	gen := &stubGenerator{response: validDietJSON}
	svc := newTestService(repo, gen)

	_, _, err := svc.GenerateDiet(context.Background(), user.ID, DietPreferences{})
	if !errors.Is(err, ErrIncompleteProfile) {
		t.Fatalf("expected ErrIncompleteProfile, got %v", err)
	}
	if gen.calls != 0 {
		t.Error("generator must not be called with an incomplete profile")
	}
}

func TestCompleteWorkoutAffectsOnlyTargetEntry(t *testing.T) {
	user := newTestUser()
	repo := &stubUserRepo{user: user}
	gen := &stubGenerator{response: validWorkoutJSON}
	svc := newTestService(repo, gen)

	var ids []primitive.ObjectID
	for i := 0; i < 3; i++ {
		entry, err := svc.GenerateWorkout(context.Background(), user.ID, WorkoutPreferences{})
		if err != nil {
			t.Fatalf("generate %d: %v", i, err)
		}
		ids = append(ids, entry.ID)
	}

	duration := 50
	updated, err := svc.CompleteWorkout(context.Background(), user.ID, ids[1], &duration, "felt strong")
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if !updated.Completed || updated.Duration == nil || *updated.Duration != 50 || updated.Notes != "felt strong" {
		t.Errorf("unexpected updated entry: %+v", updated)
	}

	history, _ := svc.WorkoutHistory(context.Background(), user.ID)
	for i, entry := range history {
		wantCompleted := i == 1
		if entry.Completed != wantCompleted {
			t.Errorf("entry %d completed = %v, want %v", i, entry.Completed, wantCompleted)
		}
	}
}

func TestCompleteWorkoutNotFound(t *testing.T) {
	user := newTestUser()
	repo := &stubUserRepo{user: user}
	svc := newTestService(repo, &stubGenerator{})

	_, err := svc.CompleteWorkout(context.Background(), user.ID, primitive.NewObjectID(), nil, "")
	if !errors.Is(err, ErrEntryNotFound) {
		t.Fatalf("expected ErrEntryNotFound, got %v", err)
	}
}

func TestLogMealAppendsEntry(t *testing.T) {
	user := newTestUser()
	repo := &stubUserRepo{user: user}
	svc := newTestService(repo, &stubGenerator{})

	calories := 650.0
	entry, err := svc.LogMeal(context.Background(), user.ID, domain.MealLog{
		MealType:  "Lunch",
		FoodItems: []string{"chicken", "rice"},
		Calories:  &calories,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if entry.Log == nil || entry.Log.MealType != "Lunch" {
		t.Errorf("unexpected entry: %+v", entry)
	}
	if entry.Plan != nil {
		t.Error("logged meal must not carry a generated plan")
	}
	if len(repo.mealEntries) != 1 {
		t.Fatalf("expected 1 persisted entry, got %d", len(repo.mealEntries))
	}
}

func TestGenerateWorkoutUnknownUser(t *testing.T) {
	repo := &stubUserRepo{}
	svc := newTestService(repo, &stubGenerator{})

	_, err := svc.GenerateWorkout(context.Background(), primitive.NewObjectID(), WorkoutPreferences{})
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
