package postgres

import (
	"context"

	"gatekeeper/internal/domain/entity"
	domainerrors "gatekeeper/internal/domain/errors"
	"gatekeeper/internal/domain/repository"
	"gatekeeper/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// userRepository implements repository.UserRepository using GORM.
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository is the constructor for userRepository.
// It returns the repository as a repository.UserRepository interface, adhering to dependency inversion.
func NewUserRepository(db *gorm.DB) repository.UserRepository {
	return &userRepository{db: db}
}

func (repo *userRepository) Create(ctx context.Context, user *entity.User, passwordHash string) error {
	userM := fromUserDomain(user)
	userM.ID = uuid.New()
	if passwordHash != "" {
		userM.PasswordHash = &passwordHash
	}

	if err := repo.db.WithContext(ctx).Create(userM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return errors.WithStack(repository.ErrDuplicateEmail)
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrUserCreationFailed.WrapMessage("missing required user information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create user")
	}

	user.ID = userM.ID
	user.CreatedAt = userM.CreatedAt
	user.UpdatedAt = userM.UpdatedAt

	return nil
}

func (repo *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	var userM model.UserModel
	if err := repo.db.WithContext(ctx).Where("id = ?", id).First(&userM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user by id")
	}

	return toUserDomain(&userM), nil
}

func (repo *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	userM, err := repo.findModelByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	return toUserDomain(userM), nil
}

func (repo *userRepository) FindCredentialsByEmail(ctx context.Context, email string) (*entity.Credentials, error) {
	userM, err := repo.findModelByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	creds := &entity.Credentials{User: toUserDomain(userM)}
	if userM.PasswordHash != nil {
		creds.PasswordHash = *userM.PasswordHash
	}

	return creds, nil
}

func (repo *userRepository) findModelByEmail(ctx context.Context, email string) (*model.UserModel, error) {
	var userM model.UserModel
	if err := repo.db.WithContext(ctx).Where("email = ?", email).First(&userM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user by email")
	}

	return &userM, nil
}

func (repo *userRepository) Update(ctx context.Context, id uuid.UUID, patch *entity.UserPatch) (*entity.User, error) {
	if patch.IsEmpty() {
		return repo.FindByID(ctx, id)
	}

	updates := map[string]any{}
	if patch.Name != nil {
		updates["name"] = *patch.Name
	}
	if patch.Picture != nil {
		updates["picture"] = *patch.Picture
	}
	if patch.PasswordHash != nil {
		updates["password_hash"] = *patch.PasswordHash
	}

	var userM model.UserModel
	result := repo.db.WithContext(ctx).
		Model(&userM).
		Clauses(clause.Returning{}).
		Where("id = ?", id).
		Updates(updates)
	if result.Error != nil {
		return nil, domainerrors.NewDatabaseExecuteError(result.Error, "failed to update user")
	}
	if result.RowsAffected == 0 {
		return nil, repository.ErrUserNotFound
	}

	return toUserDomain(&userM), nil
}

func (repo *userRepository) UpsertByEmail(ctx context.Context, user *entity.User) (*entity.User, error) {
	userM := fromUserDomain(user)
	userM.ID = uuid.New()

	err := repo.db.WithContext(ctx).
		Clauses(
			clause.OnConflict{
				Columns:   []clause.Column{{Name: "email"}},
				DoUpdates: clause.AssignmentColumns([]string{"name", "picture", "updated_at"}),
			},
			clause.Returning{},
		).
		Create(userM).Error
	if err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to upsert user")
	}

	return toUserDomain(userM), nil
}

// --- Mapper Functions ---

// toUserDomain converts a UserModel to the password-free domain User.
func toUserDomain(data *model.UserModel) *entity.User {
	if data == nil {
		return nil
	}

	return &entity.User{
		ID:        data.ID,
		Email:     data.Email,
		Name:      data.Name,
		Picture:   data.Picture,
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}

// fromUserDomain converts a domain User to a UserModel. The password hash is set by callers.
func fromUserDomain(data *entity.User) *model.UserModel {
	if data == nil {
		return nil
	}

	return &model.UserModel{
		ID:        data.ID,
		Email:     data.Email,
		Name:      data.Name,
		Picture:   data.Picture,
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}
