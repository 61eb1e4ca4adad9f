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

type RatingRepositoryImpl struct {
	baseRepository
	mapper *mapper.RatingMapper
}

func NewRatingRepository(db *gorm.DB, timeout time.Duration) contract.RatingRepository {
	return &RatingRepositoryImpl{
		baseRepository: baseRepository{db: db, timeout: timeout},
		mapper:         mapper.NewRatingMapper(),
	}
}

func (r *RatingRepositoryImpl) Create(ctx context.Context, rating *entity.Rating) error {
	db, cancel := r.session(ctx)
	defer cancel()

	m := r.mapper.ToModel(rating)
	if err := db.Create(m).Error; err != nil {
		return translateError(err)
	}
	*rating = *r.mapper.ToEntity(m)
	return nil
}

func (r *RatingRepositoryImpl) FindByRaterAndNote(ctx context.Context, raterId string, noteId uint) (*entity.Rating, error) {
	db, cancel := r.session(ctx)
	defer cancel()

	var m model.Rating
	query := specification.ApplyAll(db.Model(&model.Rating{}),
		specification.RatingByRater{RaterID: raterId},
		specification.RatingForNote{NoteID: noteId},
	)
	if err := query.Take(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, translateError(err)
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *RatingRepositoryImpl) Aggregate(ctx context.Context, noteId uint) (int64, int64, error) {
	db, cancel := r.session(ctx)
	defer cancel()

	var agg model.RatingAggregate
	err := specification.RatingForNote{NoteID: noteId}.
		Apply(db.Model(&model.Rating{}).Select("COUNT(*) AS count, COALESCE(SUM(value), 0) AS total")).
		Scan(&agg).Error
	if err != nil {
		return 0, 0, translateError(err)
	}
	return agg.Count, agg.Total, nil
}
