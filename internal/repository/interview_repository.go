package repository

import (
	"context"
	"errors"
	"mock_interview_backend/internal/model"
	"mock_interview_backend/internal/util"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type InterviewRepository struct {
	DB *gorm.DB
}

func NewInterviewRepository(db *gorm.DB) *InterviewRepository {
	return &InterviewRepository{DB: db}
}

func (r *InterviewRepository) Configured() bool {
	return true
}

func (r *InterviewRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (r *InterviewRepository) ListByUser(ctx context.Context, userID string, q InterviewQuery) ([]model.Interview, error) {
	var interviews []model.Interview

	query := r.DB.WithContext(ctx).Where("user_id = ?", userID)
	if q.Status != "" {
		query = query.Where("status = ?", q.Status)
	}
	// created_at 相同的记录按写入顺序排列
	if q.NewestFirst {
		query = query.Order("created_at DESC").Order("seq ASC")
	} else {
		query = query.Order("created_at ASC").Order("seq ASC")
	}
	if q.Limit > 0 {
		query = query.Limit(q.Limit)
	}

	err := query.Find(&interviews).Error
	return interviews, err
}

func (r *InterviewRepository) FindByID(ctx context.Context, id string) (*model.Interview, error) {
	var interview model.Interview
	err := r.DB.WithContext(ctx).Where("id = ?", id).First(&interview).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrInterviewNotFound
	}
	if err != nil {
		return nil, err
	}
	return &interview, nil
}

func (r *InterviewRepository) Create(ctx context.Context, interview *model.Interview) error {
	if interview.Status == "" {
		interview.Status = model.InterviewDraft
	}
	return r.DB.WithContext(ctx).Create(interview).Error
}

func (r *InterviewRepository) Update(ctx context.Context, interview *model.Interview) error {
	return r.DB.WithContext(ctx).Save(interview).Error
}

// StartInterview 在同一事务内把草稿置为 in_progress 并替换题目集合。
// 面试已不是 draft 时返回 util.ErrInvalidTransition，题目保持不变。
func (r *InterviewRepository) StartInterview(ctx context.Context, interviewID string, questions []model.Question) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&model.Interview{}).
			Where("id = ? AND status = ?", interviewID, model.InterviewDraft).
			Updates(map[string]interface{}{
				"status":          model.InterviewInProgress,
				"total_questions": len(questions),
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return util.ErrInvalidTransition
		}

		if err := tx.Unscoped().Where("interview_id = ?", interviewID).Delete(&model.Question{}).Error; err != nil {
			return err
		}

		for i := range questions {
			questions[i].ID = 0
			questions[i].InterviewID = interviewID
			if questions[i].Position == 0 {
				questions[i].Position = i + 1
			}
		}
		if len(questions) == 0 {
			return nil
		}
		return tx.Omit(clause.Associations).Create(&questions).Error
	})
}

func (r *InterviewRepository) ListQuestions(ctx context.Context, interviewID string) ([]model.Question, error) {
	var questions []model.Question
	err := r.DB.WithContext(ctx).
		Preload("Response").
		Preload("Response.Evaluation").
		Where("interview_id = ?", interviewID).
		Order("position ASC").
		Find(&questions).Error
	return questions, err
}

// SaveResponse 每道题只保留一条回答，重复提交时覆盖
func (r *InterviewRepository) SaveResponse(ctx context.Context, response *model.Response) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing model.Response
		err := tx.Where("question_id = ?", response.QuestionID).First(&existing).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return tx.Omit(clause.Associations).Create(response).Error
		case err != nil:
			return err
		}

		response.ID = existing.ID
		response.CreatedAt = existing.CreatedAt
		if response.RecordingURL == "" {
			response.RecordingURL = existing.RecordingURL
			response.ThumbnailURL = existing.ThumbnailURL
			response.DurationSeconds = existing.DurationSeconds
		}
		if response.Transcript == "" {
			response.Transcript = existing.Transcript
		}
		return tx.Omit(clause.Associations).Save(response).Error
	})
}

func (r *InterviewRepository) SaveEvaluation(ctx context.Context, evaluation *model.Evaluation) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing model.Evaluation
		err := tx.Where("response_id = ?", evaluation.ResponseID).First(&existing).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return tx.Create(evaluation).Error
		case err != nil:
			return err
		}

		evaluation.ID = existing.ID
		evaluation.CreatedAt = existing.CreatedAt
		return tx.Save(evaluation).Error
	})
}
