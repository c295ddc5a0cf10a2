package mongo

import (
	"aifit/fitness-app/internal/domain"
	"aifit/fitness-app/internal/repository"
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const userCollectionName = "users"

// mongoUserRepository implements repository.UserRepository using MongoDB.
// The whole user aggregate lives in one document, so every history operation
// below is a single atomic update on that document.
type mongoUserRepository struct {
	collection *mongo.Collection
}

// NewMongoUserRepository creates a new instance of mongoUserRepository.
// It expects a connected *mongo.Database instance.
func NewMongoUserRepository(db *mongo.Database) repository.UserRepository {
	return &mongoUserRepository{
		collection: db.Collection(userCollectionName),
	}
}

// Create inserts a new user into the database.
func (r *mongoUserRepository) Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error) {
	if user.Email == "" || user.PasswordHash == "" {
		return primitive.NilObjectID, errors.New("user email and password hash are required")
	}

	user.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return primitive.NilObjectID, repository.ErrDuplicate
		}
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted ID")
	}

	return insertedID, nil
}

// GetByEmail retrieves a user by their email address.
func (r *mongoUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	filter := bson.M{"email": email}

	err := r.collection.FindOne(ctx, filter).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// GetByID retrieves a user by their MongoDB ObjectID.
func (r *mongoUserRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	var user domain.User
	filter := bson.M{"_id": id}

	err := r.collection.FindOne(ctx, filter).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// UpdateProfile replaces the embedded profile document.
// Merge semantics (keeping unset fields) are handled in the service layer.
func (r *mongoUserRepository) UpdateProfile(ctx context.Context, userID primitive.ObjectID, profile domain.Profile) error {
	filter := bson.M{"_id": userID}
	update := bson.M{
		"$set": bson.M{
			"profile":   profile,
			"updatedAt": time.Now().UTC(),
		},
	}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// AppendWorkoutEntry pushes a new entry onto the workout history array.
// $push appends server-side, so concurrent generations for the same user
// cannot overwrite each other's entries.
func (r *mongoUserRepository) AppendWorkoutEntry(ctx context.Context, userID primitive.ObjectID, entry domain.WorkoutHistoryEntry) error {
	return r.pushEntry(ctx, userID, "workoutHistory", entry)
}

// AppendMealEntry pushes a new entry onto the meal history array.
func (r *mongoUserRepository) AppendMealEntry(ctx context.Context, userID primitive.ObjectID, entry domain.MealHistoryEntry) error {
	return r.pushEntry(ctx, userID, "mealHistory", entry)
}

// AppendProgressEntry pushes a new entry onto the progress array.
func (r *mongoUserRepository) AppendProgressEntry(ctx context.Context, userID primitive.ObjectID, entry domain.ProgressEntry) error {
	return r.pushEntry(ctx, userID, "progress", entry)
}

// pushEntry is the shared atomic append for the embedded history arrays.
func (r *mongoUserRepository) pushEntry(ctx context.Context, userID primitive.ObjectID, field string, entry interface{}) error {
	filter := bson.M{"_id": userID}
	update := bson.M{
		"$push": bson.M{field: entry},
		"$set":  bson.M{"updatedAt": time.Now().UTC()},
	}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// CompleteWorkoutEntry marks a single workout history entry as completed using
// a positional array update, then reads the updated entry back.
func (r *mongoUserRepository) CompleteWorkoutEntry(ctx context.Context, userID, entryID primitive.ObjectID, duration *int, notes string) (*domain.WorkoutHistoryEntry, error) {
	filter := bson.M{"_id": userID, "workoutHistory._id": entryID}
	set := bson.M{
		"workoutHistory.$.completed": true,
		"updatedAt":                  time.Now().UTC(),
	}
	if duration != nil {
		set["workoutHistory.$.duration"] = *duration
	}
	if notes != "" {
		set["workoutHistory.$.notes"] = notes
	}

	result, err := r.collection.UpdateOne(ctx, filter, bson.M{"$set": set})
	if err != nil {
		return nil, err
	}
	if result.MatchedCount == 0 {
		return nil, repository.ErrNotFound
	}

	// Read back only the entry we just updated.
	projection := options.FindOne().SetProjection(bson.M{
		"workoutHistory": bson.M{"$elemMatch": bson.M{"_id": entryID}},
	})
	var partial struct {
		WorkoutHistory []domain.WorkoutHistoryEntry `bson:"workoutHistory"`
	}
	err = r.collection.FindOne(ctx, bson.M{"_id": userID}, projection).Decode(&partial)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	if len(partial.WorkoutHistory) == 0 {
		return nil, repository.ErrNotFound
	}
	return &partial.WorkoutHistory[0], nil
}

// EnsureUserIndexes creates necessary indexes for the users collection.
// Call this once during application startup.
func EnsureUserIndexes(ctx context.Context, collection *mongo.Collection) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "workoutHistory._id", Value: 1}},
			Options: options.Index().SetSparse(true),
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}
