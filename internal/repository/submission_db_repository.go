package repository

import (
	"context"
	"encoding/json"
	"lesson_quiz_backend/internal/model"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// submissionRow submissions 表结构，题目整体存为 JSON 列
type submissionRow struct {
	ID         int64          `gorm:"primaryKey;autoIncrement:false"`
	CreatedAt  time.Time      `gorm:"index"`
	Content    string         `gorm:"type:text"`
	Simplified string         `gorm:"type:text"`
	Questions  datatypes.JSON `gorm:"comment:生成的题目"`
}

func (submissionRow) TableName() string {
	return "submissions"
}

// SubmissionModels 需要 AutoMigrate 的模型
func SubmissionModels() []interface{} {
	return []interface{}{&submissionRow{}}
}

type DBSubmissionRepository struct {
	DB *gorm.DB
}

func NewDBSubmissionRepository(db *gorm.DB) *DBSubmissionRepository {
	return &DBSubmissionRepository{DB: db}
}

func (r *DBSubmissionRepository) Backend() string { return "database" }

func (r *DBSubmissionRepository) Append(ctx context.Context, submission *model.Submission) error {
	questions, err := json.Marshal(submission.Questions)
	if err != nil {
		return err
	}

	row := submissionRow{
		ID:         submission.ID,
		CreatedAt:  submission.CreatedAt,
		Content:    submission.Content,
		Simplified: submission.Simplified,
		Questions:  datatypes.JSON(questions),
	}
	return r.DB.WithContext(ctx).Create(&row).Error
}

func (r *DBSubmissionRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// FindByID 供运维排查使用，请求路径不会回读
func (r *DBSubmissionRepository) FindByID(ctx context.Context, id int64) (*model.Submission, error) {
	var row submissionRow
	if err := r.DB.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		return nil, err
	}

	submission := &model.Submission{
		ID:         row.ID,
		CreatedAt:  row.CreatedAt,
		Content:    row.Content,
		Simplified: row.Simplified,
	}
	if err := json.Unmarshal(row.Questions, &submission.Questions); err != nil {
		return nil, err
	}
	return submission, nil
}
