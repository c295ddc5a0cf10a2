package service

import (
	"aifit/fitness-app/internal/domain"
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

// stubFileStorage returns canned URLs and records requested keys.
type stubFileStorage struct {
	uploadKeys   []string
	downloadKeys []string
	err          error
}

func (s *stubFileStorage) GeneratePresignedUploadURL(ctx context.Context, objectKey string, contentType string, expires time.Duration) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	s.uploadKeys = append(s.uploadKeys, objectKey)
	return "https://storage.example.com/upload/" + objectKey, nil
}

func (s *stubFileStorage) GeneratePresignedDownloadURL(ctx context.Context, objectKey string, expires time.Duration) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	s.downloadKeys = append(s.downloadKeys, objectKey)
	return "https://storage.example.com/download/" + objectKey, nil
}

func (s *stubFileStorage) DeleteObject(ctx context.Context, objectKey string) error {
	return s.err
}

func TestUpdateProfileMergesFields(t *testing.T) {
	user := newTestUser()
	repo := &stubUserRepo{user: user}
	svc := NewUserService(repo, &stubFileStorage{})

	newWeight := 68.5
	profile, err := svc.UpdateProfile(context.Background(), user.ID, ProfileUpdate{Weight: &newWeight})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if profile.Weight == nil || *profile.Weight != 68.5 {
		t.Errorf("weight not updated: %+v", profile)
	}
	// Untouched fields keep their previous values.
	if profile.Age == nil || *profile.Age != 30 {
		t.Errorf("age should be unchanged: %+v", profile)
	}
	if profile.Goal != domain.GoalWeightLoss {
		t.Errorf("goal should be unchanged: %+v", profile)
	}
}

func TestUpdateProfileValidation(t *testing.T) {
	badGoal := domain.Goal("get_swole")

	tests := []struct {
		name   string
		update ProfileUpdate
	}{
		{"age too low", ProfileUpdate{Age: intPtr(5)}},
		{"age too high", ProfileUpdate{Age: intPtr(140)}},
		{"weight out of range", ProfileUpdate{Weight: floatPtr(20)}},
		{"height out of range", ProfileUpdate{Height: intPtr(90)}},
		{"unknown goal", ProfileUpdate{Goal: &badGoal}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user := newTestUser()
			repo := &stubUserRepo{user: user}
			svc := NewUserService(repo, &stubFileStorage{})

			_, err := svc.UpdateProfile(context.Background(), user.ID, tt.update)
			if !errors.Is(err, ErrInvalidProfile) {
				t.Fatalf("expected ErrInvalidProfile, got %v", err)
			}
			if repo.updatedProfile != nil {
				t.Error("invalid profile must not be persisted")
			}
		})
	}
}

func TestGetProgressStats(t *testing.T) {
	user := newTestUser()
	repo := &stubUserRepo{user: user}
	svc := NewUserService(repo, &stubFileStorage{})

	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	weights := []float64{82.0, 80.5, 78.2}
	for i, w := range weights {
		weight := w
		repo.progressEntries = append(repo.progressEntries, domain.ProgressEntry{
			Date:   base.AddDate(0, 0, i*7),
			Weight: &weight,
		})
	}
	// An entry without a weight counts toward totals but not weight change.
	repo.progressEntries = append(repo.progressEntries, domain.ProgressEntry{
		Date:  base.AddDate(0, 0, 30),
		Notes: "measurements only",
	})

	stats, err := svc.GetProgressStats(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.TotalEntries != 4 {
		t.Errorf("totalEntries = %d, want 4", stats.TotalEntries)
	}
	if stats.StartWeight != 82.0 || stats.CurrentWeight != 78.2 {
		t.Errorf("unexpected weights: %+v", stats)
	}
	if diff := stats.WeightChange - (-3.8); diff > 1e-9 || diff < -1e-9 {
		t.Errorf("weightChange = %v, want -3.8", stats.WeightChange)
	}
}

func TestGetProgressStatsEmpty(t *testing.T) {
	user := newTestUser()
	repo := &stubUserRepo{user: user}
	svc := NewUserService(repo, &stubFileStorage{})

	stats, err := svc.GetProgressStats(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.TotalEntries != 0 || stats.WeightChange != 0 {
		t.Errorf("expected zero stats, got %+v", stats)
	}
}

func TestRequestPhotoUploadURL(t *testing.T) {
	user := newTestUser()
	storageStub := &stubFileStorage{}
	svc := NewUserService(&stubUserRepo{user: user}, storageStub)

	resp, err := svc.RequestPhotoUploadURL(context.Background(), user.ID, "image/jpeg")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(resp.ObjectKey, "progress/"+user.ID.Hex()+"/") {
		t.Errorf("unexpected object key %q", resp.ObjectKey)
	}
	if !strings.HasSuffix(resp.ObjectKey, ".jpeg") {
		t.Errorf("object key should carry the file extension: %q", resp.ObjectKey)
	}
	if resp.UploadURL == "" {
		t.Error("missing upload URL")
	}
}

func TestRequestPhotoUploadURLRejectsNonImage(t *testing.T) {
	user := newTestUser()
	svc := NewUserService(&stubUserRepo{user: user}, &stubFileStorage{})

	_, err := svc.RequestPhotoUploadURL(context.Background(), user.ID, "video/mp4")
	if !errors.Is(err, ErrInvalidPhotoType) {
		t.Fatalf("expected ErrInvalidPhotoType, got %v", err)
	}
}

func TestGetProgressResolvesPhotoURLs(t *testing.T) {
	user := newTestUser()
	repo := &stubUserRepo{user: user}
	storageStub := &stubFileStorage{}
	svc := NewUserService(repo, storageStub)

	repo.progressEntries = []domain.ProgressEntry{
		{Date: time.Now().UTC(), PhotoKey: "progress/abc/photo.jpeg"},
		{Date: time.Now().UTC()},
	}

	details, err := svc.GetProgress(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(details) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(details))
	}
	if details[0].PhotoURL == nil || !strings.Contains(*details[0].PhotoURL, "photo.jpeg") {
		t.Errorf("photo URL not resolved: %+v", details[0])
	}
	if details[1].PhotoURL != nil {
		t.Error("entry without a photo must not get a URL")
	}
}
