package implementation

import (
	"context"
	"errors"
	"time"

	"studynotes-be/internal/entity"
	"studynotes-be/internal/mapper"
	"studynotes-be/internal/model"
	"studynotes-be/internal/repository/contract"
	"studynotes-be/internal/repository/specification"

	"gorm.io/gorm"
)

type UserRepositoryImpl struct {
	baseRepository
	mapper *mapper.UserMapper
}

func NewUserRepository(db *gorm.DB, timeout time.Duration) contract.UserRepository {
	return &UserRepositoryImpl{
		baseRepository: baseRepository{db: db, timeout: timeout},
		mapper:         mapper.NewUserMapper(),
	}
}

func (r *UserRepositoryImpl) Create(ctx context.Context, user *entity.User) error {
	db, cancel := r.session(ctx)
	defer cancel()

	modelUser := r.mapper.ToModel(user)
	if err := db.Create(modelUser).Error; err != nil {
		return translateError(err)
	}
	*user = *r.mapper.ToEntity(modelUser)
	return nil
}

func (r *UserRepositoryImpl) UpdateProfile(ctx context.Context, user *entity.User) error {
	db, cancel := r.session(ctx)
	defer cancel()

	err := db.Model(&model.User{}).
		Where("cwid = ?", user.CWID).
		Updates(map[string]interface{}{
			"first_name": user.FirstName,
			"last_name":  user.LastName,
			"email":      user.Email,
			"updated_at": user.UpdatedAt,
		}).Error
	return translateError(err)
}

func (r *UserRepositoryImpl) UpdatePassword(ctx context.Context, cwid string, hash string) error {
	db, cancel := r.session(ctx)
	defer cancel()

	err := db.Model(&model.User{}).
		Where("cwid = ?", cwid).
		Updates(map[string]interface{}{
			"password_hash": hash,
			"updated_at":    time.Now(),
		}).Error
	return translateError(err)
}

func (r *UserRepositoryImpl) FindByCWID(ctx context.Context, cwid string) (*entity.User, error) {
	return r.findOne(ctx, specification.ByCWID{CWID: cwid})
}

func (r *UserRepositoryImpl) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.findOne(ctx, specification.ByEmail{Email: email})
}

func (r *UserRepositoryImpl) findOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error) {
	db, cancel := r.session(ctx)
	defer cancel()

	var modelUser model.User
	query := specification.ApplyAll(db.Model(&model.User{}), specs...)
	if err := query.Take(&modelUser).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, translateError(err)
	}

	return r.mapper.ToEntity(&modelUser), nil
}
