package service

import (
	"context"
	"errors"
	"time"

	"github.com/alexanderramin/punchclock/internal/db"
	"github.com/alexanderramin/punchclock/internal/domain"
	"github.com/alexanderramin/punchclock/internal/repository"
	"github.com/google/uuid"
)

type userService struct {
	users    repository.UserRepo
	uow      db.UnitOfWork
	now      Clock
	observer UseCaseObserver
}

func NewUserService(users repository.UserRepo, uow db.UnitOfWork, clock Clock, observers ...UseCaseObserver) UserService {
	return &userService{
		users:    users,
		uow:      uow,
		now:      clockOrNow(clock),
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *userService) Register(ctx context.Context, name, email string) (user *domain.User, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{}
	defer func() {
		if user != nil {
			fields["user_id"] = user.ID
		}
		observe(ctx, s.observer, "register-user", startedAt, err, fields)
	}()

	user, err = domain.NewUser(name, email)
	if err != nil {
		return nil, err
	}
	user.ID = uuid.New().String()
	user.CreatedAt = s.now().UTC()
	if err := s.users.Create(ctx, user); err != nil {
		return nil, storeErr(err)
	}
	return user, nil
}

func (s *userService) Get(ctx context.Context, id string) (*domain.User, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, storeErr(err)
	}
	return u, nil
}

func (s *userService) List(ctx context.Context) ([]*domain.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, storeErr(err)
	}
	return users, nil
}

// Delete removes the user, every log they own and the remembered-user
// preference when it points at them, all in one transaction.
func (s *userService) Delete(ctx context.Context, id string) (err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"user_id": id}
	defer func() {
		observe(ctx, s.observer, "delete-user", startedAt, err, fields)
	}()

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		logs := repository.NewSQLiteLogRepo(tx)
		users := repository.NewSQLiteUserRepo(tx)
		prefs := repository.NewSQLitePreferenceRepo(tx)

		n, err := logs.DeleteByUser(ctx, id)
		if err != nil {
			return err
		}
		fields["logs_deleted"] = n
		if err := users.Delete(ctx, id); err != nil {
			return err
		}

		remembered, err := prefs.Get(ctx, PreferredUserKey)
		if errors.Is(err, repository.ErrNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		if remembered == id {
			return prefs.Delete(ctx, PreferredUserKey)
		}
		return nil
	})
	return storeErr(err)
}
