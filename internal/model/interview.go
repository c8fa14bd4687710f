package model

import (
	"sync/atomic"
	"time"

	"gorm.io/gorm"
)

type InterviewStatus string

const (
	InterviewDraft      InterviewStatus = "draft"
	InterviewInProgress InterviewStatus = "in_progress"
	InterviewCompleted  InterviewStatus = "completed"
)

// CanTransitionTo 面试状态只能 draft -> in_progress -> completed 单向流转
func (s InterviewStatus) CanTransitionTo(next InterviewStatus) bool {
	switch s {
	case InterviewDraft:
		return next == InterviewInProgress
	case InterviewInProgress:
		return next == InterviewCompleted
	}
	return false
}

// swagger:model Interview
type Interview struct {
	UUIDBase
	UserID          string          `gorm:"type:varchar(36);index;not null" json:"userId"`
	JobRole         string          `gorm:"size:200;not null" json:"jobRole"`
	ExperienceLevel string          `gorm:"size:50" json:"experienceLevel,omitempty"`
	JobDescription  string          `gorm:"type:text" json:"jobDescription,omitempty"`
	ResumeURL       string          `gorm:"size:500" json:"resumeUrl,omitempty"`
	Status          InterviewStatus `gorm:"size:20;index;default:'draft'" json:"status"`
	OverallScore    *int            `json:"overallScore"`
	TotalQuestions  int             `gorm:"default:0" json:"totalQuestions"`
	CompletedAt     *time.Time      `json:"completedAt,omitempty"`
	// Seq 写入顺序，created_at 相同时按它排序
	Seq int64 `gorm:"index;not null;default:0" json:"-"`
}

var lastInterviewSeq atomic.Int64

// nextInterviewSeq 以纳秒时间为基准的单调递增序号，同一进程内严格递增
func nextInterviewSeq() int64 {
	for {
		last := lastInterviewSeq.Load()
		next := time.Now().UnixNano()
		if next <= last {
			next = last + 1
		}
		if lastInterviewSeq.CompareAndSwap(last, next) {
			return next
		}
	}
}

func (i *Interview) BeforeCreate(tx *gorm.DB) error {
	if i.Seq == 0 {
		i.Seq = nextInterviewSeq()
	}
	return i.UUIDBase.BeforeCreate(tx)
}

func (Interview) TableName() string {
	return "interviews"
}

func (i *Interview) IsCompleted() bool {
	return i.Status == InterviewCompleted
}

// Score 未评分时按 0 计
func (i *Interview) Score() int {
	if i.OverallScore == nil {
		return 0
	}
	return *i.OverallScore
}

type QuestionType string

const (
	QuestionBehavioral QuestionType = "behavioral"
	QuestionTechnical  QuestionType = "technical"
)

// swagger:model InterviewQuestion
type Question struct {
	BaseModel
	InterviewID      string       `gorm:"type:varchar(36);index;not null" json:"interviewId"`
	Position         int          `gorm:"not null" json:"position"`
	Text             string       `gorm:"type:text;not null" json:"text"`
	Type             QuestionType `gorm:"size:20" json:"type"`
	Difficulty       string       `gorm:"size:20" json:"difficulty"`
	ExpectedDuration int          `json:"expectedDuration"` // 秒
	Response         *Response    `gorm:"foreignKey:QuestionID" json:"response,omitempty"`
}

func (Question) TableName() string {
	return "interview_questions"
}

// swagger:model InterviewResponse
type Response struct {
	BaseModel
	QuestionID      uint        `gorm:"uniqueIndex;not null" json:"questionId"`
	InterviewID     string      `gorm:"type:varchar(36);index;not null" json:"interviewId"`
	Transcript      string      `gorm:"type:text" json:"transcript,omitempty"`
	RecordingURL    string      `gorm:"size:500" json:"recordingUrl,omitempty"`
	ThumbnailURL    string      `gorm:"size:500" json:"thumbnailUrl,omitempty"`
	DurationSeconds float64     `json:"durationSeconds,omitempty"`
	Evaluation      *Evaluation `gorm:"foreignKey:ResponseID" json:"evaluation,omitempty"`
}

func (Response) TableName() string {
	return "interview_responses"
}

// swagger:model Evaluation
type Evaluation struct {
	BaseModel
	ResponseID         uint              `gorm:"uniqueIndex;not null" json:"-"`
	CommunicationScore int               `json:"communicationScore"`
	ContentScore       int               `json:"contentScore"`
	BehavioralScore    int               `json:"behavioralScore"`
	NonverbalScore     int               `json:"nonverbalScore"`
	OverallScore       int               `json:"overallScore"`
	Strengths          []string          `gorm:"type:text;serializer:json" json:"strengths"`
	Improvements       []string          `gorm:"type:text;serializer:json" json:"improvements"`
	Feedback           map[string]string `gorm:"type:text;serializer:json" json:"feedback"`
	Recommendations    []string          `gorm:"type:text;serializer:json" json:"recommendations"`
}

func (Evaluation) TableName() string {
	return "response_evaluations"
}
