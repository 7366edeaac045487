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
)

type sessionRepository struct {
	db *gorm.DB
}

// NewSessionRepository is the constructor for sessionRepository.
func NewSessionRepository(db *gorm.DB) repository.SessionRepository {
	return &sessionRepository{db: db}
}

func (repo *sessionRepository) Create(ctx context.Context, userID uuid.UUID, userAgent string) (*entity.Session, error) {
	sessionM := &model.SessionModel{
		ID:        uuid.New(),
		UserID:    userID,
		UserAgent: userAgent,
		Valid:     true,
	}

	if err := repo.db.WithContext(ctx).Create(sessionM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return nil, errors.WithStack(repository.ErrUserNotFound)
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to create session")
	}

	return toSessionDomain(sessionM), nil
}

func (repo *sessionRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Session, error) {
	var sessionM model.SessionModel
	if err := repo.db.WithContext(ctx).Where("id = ?", id).First(&sessionM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrSessionNotFound
		}

		return nil, errors.Wrap(err, "failed to find session by id")
	}

	return toSessionDomain(&sessionM), nil
}

func (repo *sessionRepository) Find(ctx context.Context, filter entity.SessionFilter) ([]*entity.Session, error) {
	query := repo.db.WithContext(ctx).Where("user_id = ?", filter.UserID)
	if filter.Valid != nil {
		query = query.Where("valid = ?", *filter.Valid)
	}

	var sessionMs []*model.SessionModel
	if err := query.Order("created_at DESC").Find(&sessionMs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find sessions")
	}

	sessions := make([]*entity.Session, 0, len(sessionMs))
	for _, sessionM := range sessionMs {
		sessions = append(sessions, toSessionDomain(sessionM))
	}

	return sessions, nil
}

func (repo *sessionRepository) Update(ctx context.Context, id uuid.UUID, patch entity.SessionPatch) (bool, error) {
	if patch.Valid == nil {
		return false, nil
	}
	if *patch.Valid {
		return false, errors.New("invalidated sessions cannot be revalidated")
	}

	// A repeated invalidation matches no row and reports no change.
	result := repo.db.WithContext(ctx).
		Model(&model.SessionModel{}).
		Where("id = ? AND valid = ?", id, true).
		Update("valid", false)
	if result.Error != nil {
		return false, domainerrors.NewDatabaseExecuteError(result.Error, "failed to update session")
	}

	return result.RowsAffected > 0, nil
}

// --- Mapper Functions ---

func toSessionDomain(data *model.SessionModel) *entity.Session {
	if data == nil {
		return nil
	}

	return &entity.Session{
		ID:        data.ID,
		UserID:    data.UserID,
		UserAgent: data.UserAgent,
		Valid:     data.Valid,
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}
