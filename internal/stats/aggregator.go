// Package stats 面试统计聚合：仪表盘与进度页的派生指标计算。
// 所有函数均为纯函数，不做 I/O，相同输入与相同 now 得到相同结果。
package stats

import (
	"fmt"
	"math"
	"mock_interview_backend/internal/model"
	"sort"
	"time"
)

const (
	maxSkillsMastered = 5
	skillBandWidth    = 20
	maxCategoryScore  = 95
)

// DashboardStats 仪表盘统计
type DashboardStats struct {
	// 与原接口保持一致：统计的是全部面试数，而非已完成数
	InterviewsCompleted int `json:"interviewsCompleted"`
	AverageScore        int `json:"averageScore"`
	ImprovementRate     int `json:"improvementRate"`
	SkillsMastered      int `json:"skillsMastered"`
}

type ProgressData struct {
	OverallScore        int `json:"overallScore"`
	InterviewsCompleted int `json:"interviewsCompleted"`
	AverageScore        int `json:"averageScore"`
	ImprovementRate     int `json:"improvementRate"`
	SkillsMastered      int `json:"skillsMastered"`
}

type CategoryScore struct {
	Name   string `json:"name"`
	Score  int    `json:"score"`
	Target int    `json:"target"`
}

type Improvement struct {
	Skill       string `json:"skill"`
	Improvement string `json:"improvement"`
	Trend       string `json:"trend"`
}

type ProgressReport struct {
	ProgressData       ProgressData    `json:"progressData"`
	CategoryProgress   []CategoryScore `json:"categoryProgress"`
	RecentImprovements []Improvement   `json:"recentImprovements"`
}

type category struct {
	name   string
	target int
	// 进步幅度展示系数，0 表示不出现在 recentImprovements 中
	factor float64
}

var categories = []category{
	{name: "Communication", target: 90, factor: 0.10},
	{name: "Content Quality", target: 85, factor: 0.12},
	{name: "Behavioral", target: 85, factor: 0.08},
	{name: "Non-Verbal", target: 80},
}

// CategoryNames 进度页固定的四个能力维度
func CategoryNames() []string {
	names := make([]string, len(categories))
	for i, c := range categories {
		names[i] = c.name
	}
	return names
}

// ComputeDashboardStats 仪表盘统计，提升率按自然月窗口计算
func ComputeDashboardStats(records []model.Interview, now time.Time) DashboardStats {
	completed := CompletedOnly(records)
	avg := AverageScore(completed)

	return DashboardStats{
		InterviewsCompleted: len(records),
		AverageScore:        avg,
		ImprovementRate:     ImprovementByCalendarMonth(completed, now),
		SkillsMastered:      SkillsMastered(avg),
	}
}

// ComputeProgressReport 进度报告，提升率按列表中点拆分计算。
// jitter 为 nil 时使用按用户与 now 所在日期播种的确定性抖动。
func ComputeProgressReport(records []model.Interview, now time.Time, jitter Jitter) ProgressReport {
	if jitter == nil {
		userID := ""
		if len(records) > 0 {
			userID = records[0].UserID
		}
		jitter = NewDailyJitter(userID, now)
	}

	completed := CompletedOnly(records)
	avg := AverageScore(completed)

	report := ProgressReport{
		ProgressData: ProgressData{
			OverallScore:        avg,
			InterviewsCompleted: len(records),
			AverageScore:        avg,
			ImprovementRate:     ImprovementByMidpoint(completed),
			SkillsMastered:      SkillsMastered(avg),
		},
		CategoryProgress:   make([]CategoryScore, 0, len(categories)),
		RecentImprovements: make([]Improvement, 0, len(categories)),
	}

	for _, c := range categories {
		score := clamp(avg+jitter.Offset(c.name), 0, maxCategoryScore)
		report.CategoryProgress = append(report.CategoryProgress, CategoryScore{
			Name:   c.name,
			Score:  score,
			Target: c.target,
		})
		if c.factor == 0 {
			continue
		}
		report.RecentImprovements = append(report.RecentImprovements, Improvement{
			Skill:       c.name,
			Improvement: formatImprovement(score, c.factor),
			Trend:       "up",
		})
	}

	return report
}

// CompletedOnly 过滤出已完成的面试，保持原有顺序
func CompletedOnly(records []model.Interview) []model.Interview {
	completed := make([]model.Interview, 0, len(records))
	for _, r := range records {
		if r.IsCompleted() {
			completed = append(completed, r)
		}
	}
	return completed
}

// AverageScore 四舍五入后的平均分，空列表为 0
func AverageScore(records []model.Interview) int {
	if len(records) == 0 {
		return 0
	}
	return roundHalfUp(mean(records))
}

// SkillsMastered 每 20 分算一项，最多 5 项
func SkillsMastered(averageScore int) int {
	if averageScore <= 0 {
		return 0
	}
	n := averageScore / skillBandWidth
	if n > maxSkillsMastered {
		return maxSkillsMastered
	}
	return n
}

// ImprovementByCalendarMonth 比较上个自然月与再上个自然月的平均分。
// 月份边界取 now 所在时区的月初。
func ImprovementByCalendarMonth(completed []model.Interview, now time.Time) int {
	startOfThisMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	startOfLastMonth := startOfThisMonth.AddDate(0, -1, 0)
	startOfPrevMonth := startOfThisMonth.AddDate(0, -2, 0)

	var lastMonth, prevMonth []model.Interview
	for _, r := range completed {
		switch {
		case inWindow(r.CreatedAt, startOfLastMonth, startOfThisMonth):
			lastMonth = append(lastMonth, r)
		case inWindow(r.CreatedAt, startOfPrevMonth, startOfLastMonth):
			prevMonth = append(prevMonth, r)
		}
	}

	return improvementRate(mean(lastMonth), mean(prevMonth))
}

// ImprovementByMidpoint 按创建时间倒序后从中点拆分，前半为近期、后半为早期
func ImprovementByMidpoint(completed []model.Interview) int {
	ordered := NewestFirst(completed)
	mid := len(ordered) / 2

	recent := ordered[:mid]
	earlier := ordered[mid:]

	return improvementRate(mean(recent), mean(earlier))
}

// NewestFirst 按 CreatedAt 倒序的稳定排序副本
func NewestFirst(records []model.Interview) []model.Interview {
	ordered := make([]model.Interview, len(records))
	copy(ordered, records)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].CreatedAt.After(ordered[j].CreatedAt)
	})
	return ordered
}

// GroupByUser 按用户拆分面试记录
func GroupByUser(records []model.Interview) map[string][]model.Interview {
	grouped := make(map[string][]model.Interview)
	for _, r := range records {
		grouped[r.UserID] = append(grouped[r.UserID], r)
	}
	return grouped
}

func improvementRate(recentAvg, baselineAvg float64) int {
	if baselineAvg <= 0 {
		return 0
	}
	rate := roundHalfUp((recentAvg - baselineAvg) / baselineAvg * 100)
	if rate < 0 {
		return 0
	}
	return rate
}

func mean(records []model.Interview) float64 {
	if len(records) == 0 {
		return 0
	}
	sum := 0
	for i := range records {
		sum += records[i].Score()
	}
	return float64(sum) / float64(len(records))
}

func inWindow(t, start, end time.Time) bool {
	return !t.Before(start) && t.Before(end)
}

func formatImprovement(score int, factor float64) string {
	if score <= 0 {
		return "+0%"
	}
	return fmt.Sprintf("+%d%%", roundHalfUp(float64(score)*factor))
}

func roundHalfUp(x float64) int {
	return int(math.Floor(x + 0.5))
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
