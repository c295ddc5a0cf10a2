package repository

import (
	"aifit/fitness-app/internal/domain"
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Error constants for the repository layer.
var (
	ErrNotFound     = RepositoryError("not found")
	ErrDuplicate    = RepositoryError("duplicate key")
	ErrUpdateFailed = RepositoryError("update failed")
)

// RepositoryError helps distinguish repository errors from other failures.
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// UserRepository defines persistence for the user aggregate. History appends
// and the completion transition are expressed as single server-side array
// updates so that concurrent requests for the same user never lose entries to
// a read-modify-write race.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)

	// Profile
	UpdateProfile(ctx context.Context, userID primitive.ObjectID, profile domain.Profile) error

	// Plan histories (append-only; append = last element)
	AppendWorkoutEntry(ctx context.Context, userID primitive.ObjectID, entry domain.WorkoutHistoryEntry) error
	AppendMealEntry(ctx context.Context, userID primitive.ObjectID, entry domain.MealHistoryEntry) error

	// CompleteWorkoutEntry flips the completion fields on exactly one history
	// entry. Returns ErrNotFound if the user has no entry with that ID.
	CompleteWorkoutEntry(ctx context.Context, userID, entryID primitive.ObjectID, duration *int, notes string) (*domain.WorkoutHistoryEntry, error)

	// Progress log
	AppendProgressEntry(ctx context.Context, userID primitive.ObjectID, entry domain.ProgressEntry) error
}
