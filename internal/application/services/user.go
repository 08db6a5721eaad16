package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"filebox-api/internal/application/ports"
	"filebox-api/internal/domain/file"
	domain "filebox-api/internal/domain/user"
	"filebox-api/internal/infrastructure/mq"
)

type UserService struct {
	auth           ports.Auth
	userRepository domain.Repository
	fileRepository file.Repository
	storage        ports.Storage
	mq             ports.RabbitMQ
	mCounter       *prometheus.CounterVec
	logger         *zap.Logger
}

func NewUserService(
	auth ports.Auth,
	userRepository domain.Repository,
	fileRepository file.Repository,
	storage ports.Storage,
	mqc ports.RabbitMQ,
	mCounter *prometheus.CounterVec,
	logger *zap.Logger,
) ports.UserService {
	return &UserService{
		auth:           auth,
		userRepository: userRepository,
		fileRepository: fileRepository,
		storage:        storage,
		mq:             mqc,
		mCounter:       mCounter,
		logger:         logger,
	}
}

func (us *UserService) FindUserByID(ctx context.Context, uuid domain.UUID) (*domain.User, error) {
	u, err := us.userRepository.FetchUserByID(ctx, uuid)
	if err != nil {
		return nil, err
	}

	return u, nil
}

func (us *UserService) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	u, err := us.userRepository.FetchUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	return u, nil
}

func (us *UserService) RegisterUser(ctx context.Context, u domain.User, password string) (*domain.User, error) {
	hash, err := us.auth.HashPassword(password)
	if err != nil {
		return nil, err
	}
	u.PasswordHash = &hash

	uRet, err := us.userRepository.CreateUser(ctx, u)
	if err != nil {
		return nil, err
	}

	if uRet != nil {
		us.mq.GetInputChan() <- mq.Event{
			Id:      uuid.New(),
			TS:      time.Now(),
			Action:  mq.ActionCreated,
			Entity:  mq.EntityUser,
			ActorID: uRet.UUID.String(),
			Payload: uRet,
		}
	}

	us.mCounter.WithLabelValues("user_registered_total").Inc()

	return uRet, nil
}

func (us *UserService) UpdateUser(ctx context.Context, u domain.User) (*domain.User, error) {
	uRet, err := us.userRepository.UpdateUser(ctx, u)
	if err != nil {
		return nil, err
	}

	if uRet != nil {
		us.mq.GetInputChan() <- mq.Event{
			Id:      uuid.New(),
			TS:      time.Now(),
			Action:  mq.ActionUpdated,
			Entity:  mq.EntityUser,
			ActorID: uRet.UUID.String(),
			Payload: uRet,
		}
	}

	us.mCounter.WithLabelValues("user_updated_total").Inc()

	return uRet, nil
}

// DeleteUser removes the account and everything it owns: each stored
// object is deleted best-effort, then the metadata rows and the user
// row are soft-deleted together.
func (us *UserService) DeleteUser(ctx context.Context, userUUID domain.UUID) error {
	id, err := us.userRepository.FetchInternalID(ctx, userUUID)
	if err != nil {
		return err
	}

	fls, err := us.fileRepository.FetchFiles(ctx, id)
	if err != nil {
		return err
	}
	for _, f := range fls {
		if _, delErr := us.storage.Delete(ctx, f.StorageKey); delErr != nil {
			us.logger.Warn("cascade storage delete failed",
				zap.String("key", f.StorageKey),
				zap.Stringer("file_uuid", f.UUID),
				zap.Error(delErr),
			)
		}
	}

	if err = us.fileRepository.SoftDeleteUserFiles(ctx, id); err != nil {
		return err
	}
	u, err := us.userRepository.DeleteUser(ctx, id)
	if err != nil {
		return err
	}
	if u != nil {
		us.mq.GetInputChan() <- mq.Event{
			Id:      uuid.New(),
			TS:      time.Now(),
			Action:  mq.ActionDeleted,
			Entity:  mq.EntityUser,
			ActorID: u.UUID.String(),
			Payload: u,
		}
	}

	us.mCounter.WithLabelValues("user_deleted_total").Inc()

	return nil
}
