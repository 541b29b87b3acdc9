package service

import (
	"context"
	"errors"
	"strings"

	"github.com/alexanderramin/punchclock/internal/repository"
)

// PreferredUserKey is the preference holding the remembered user ID.
const PreferredUserKey = "remembered_user_id"

type preferenceService struct {
	prefs repository.PreferenceRepo
	users repository.UserRepo
}

func NewPreferenceService(prefs repository.PreferenceRepo, users repository.UserRepo) PreferenceService {
	return &preferenceService{prefs: prefs, users: users}
}

func (s *preferenceService) PreferredUser(ctx context.Context) (string, error) {
	id, err := s.prefs.Get(ctx, PreferredUserKey)
	if errors.Is(err, repository.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", storeErr(err)
	}
	return id, nil
}

// SetPreferredUser remembers userID. The user must exist; an empty id
// clears the preference.
func (s *preferenceService) SetPreferredUser(ctx context.Context, userID string) error {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return storeErr(s.prefs.Delete(ctx, PreferredUserKey))
	}
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return storeErr(err)
	}
	return storeErr(s.prefs.Set(ctx, PreferredUserKey, userID))
}
