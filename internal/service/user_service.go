package service

import (
	"context"
	"fmt"
	"tour-booking-api/config"
	"tour-booking-api/internal/model"
	"tour-booking-api/internal/ports"
)

// UserService : операции над профилем (/me) и админский CRUD.
// Смена пароля сюда не входит, этим занимается AuthenticationService.
type UserService struct {
	userRepository ports.UserRepository
	imageStore     ports.S3Storage
	transcoder     ports.ImageTranscoder
	db             *config.Database
}

func NewUserService(userRepository ports.UserRepository, imageStore ports.S3Storage, transcoder ports.ImageTranscoder, db *config.Database) *UserService {
	return &UserService{
		userRepository: userRepository,
		imageStore:     imageStore,
		transcoder:     transcoder,
		db:             db,
	}
}

func (s *UserService) GetUser(ctx context.Context, uuid string) (*model.User, error) {
	user, err := s.userRepository.FindByUUID(ctx, s.db, uuid)
	if err != nil {
		return nil, fmt.Errorf("[UserService] пользователь не найден: %w", err)
	}
	return user, nil
}

// UpdateMe обновляет только имя и email. Роль и пароль через этот
// метод изменить нельзя, какие бы поля ни пришли в запросе.
func (s *UserService) UpdateMe(ctx context.Context, userUUID, name, email string) (*model.User, error) {
	user, err := s.userRepository.FindByUUID(ctx, s.db, userUUID)
	if err != nil {
		return nil, fmt.Errorf("[UserService] пользователь не найден: %w", err)
	}

	if name != "" {
		user.Name = name
	}
	if email != "" {
		user.Email = email
	}

	if err := s.userRepository.UpdateUser(ctx, s.db, user); err != nil {
		return nil, fmt.Errorf("[UserService] ошибка обновления профиля: %w", err)
	}

	return user, nil
}

// UpdatePhoto ресайзит загруженное фото до квадрата 500x500,
// кладет его в объектное хранилище и записывает ключ в профиль
func (s *UserService) UpdatePhoto(ctx context.Context, userUUID string, photo []byte) (*model.User, error) {
	user, err := s.userRepository.FindByUUID(ctx, s.db, userUUID)
	if err != nil {
		return nil, fmt.Errorf("[UserService] пользователь не найден: %w", err)
	}

	resized, err := s.transcoder.ResizeJPEG(photo, 500, 500)
	if err != nil {
		return nil, fmt.Errorf("[UserService] ошибка обработки изображения: %w", err)
	}

	key := fmt.Sprintf("users/user-%s.jpg", userUUID)
	if err := s.imageStore.PutObject(ctx, key, resized, "image/jpeg"); err != nil {
		return nil, fmt.Errorf("[UserService] ошибка загрузки фото: %w", err)
	}

	user.Photo = key
	if err := s.userRepository.UpdateUser(ctx, s.db, user); err != nil {
		return nil, fmt.Errorf("[UserService] ошибка обновления профиля: %w", err)
	}

	return user, nil
}

// DeleteMe деактивирует аккаунт (active = false), запись остается в БД,
// но перестает находиться всеми выборками
func (s *UserService) DeleteMe(ctx context.Context, userUUID string) error {
	if err := s.userRepository.DeactivateUser(ctx, s.db, userUUID); err != nil {
		return fmt.Errorf("[UserService] ошибка деактивации аккаунта: %w", err)
	}
	return nil
}

// UpdateUser : админское обновление, в отличие от UpdateMe может менять роль
func (s *UserService) UpdateUser(ctx context.Context, uuid, name, email, role string) (*model.User, error) {
	user, err := s.userRepository.FindByUUID(ctx, s.db, uuid)
	if err != nil {
		return nil, fmt.Errorf("[UserService] пользователь не найден: %w", err)
	}

	if name != "" {
		user.Name = name
	}
	if email != "" {
		user.Email = email
	}
	if role != "" {
		user.Role = role
	}

	if err := s.userRepository.UpdateUser(ctx, s.db, user); err != nil {
		return nil, fmt.Errorf("[UserService] ошибка обновления пользователя: %w", err)
	}

	return user, nil
}

func (s *UserService) DeleteUser(ctx context.Context, uuid string) error {
	if err := s.userRepository.DeleteUser(ctx, s.db, uuid); err != nil {
		return fmt.Errorf("[UserService] ошибка удаления пользователя: %w", err)
	}
	return nil
}

func (s *UserService) ListUsers(ctx context.Context, cursor string, limit int) ([]*model.User, string, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	users, nextCursor, err := s.userRepository.ListUsers(ctx, s.db, cursor, limit)
	if err != nil {
		return nil, "", fmt.Errorf("[UserService] ошибка получения списка пользователей: %w", err)
	}
	return users, nextCursor, nil
}
