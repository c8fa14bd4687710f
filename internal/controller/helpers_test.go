package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mock_interview_backend/internal/config"
	"mock_interview_backend/internal/middleware"
	"mock_interview_backend/internal/model"
	"mock_interview_backend/internal/repository"
	"mock_interview_backend/internal/service"
	"mock_interview_backend/internal/stats"
	"mock_interview_backend/internal/testhelpers"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	router *gin.Engine
	auth   *service.AuthService
	store  repository.InterviewStore
}

type envOptions struct {
	store    repository.InterviewStore
	userRepo *repository.UserRepository
}

// brokenStore 模拟数据库查询失败
type brokenStore struct {
	repository.FixtureInterviewRepository
}

func (s *brokenStore) Configured() bool { return true }

func (s *brokenStore) ListByUser(ctx context.Context, userID string, q repository.InterviewQuery) ([]model.Interview, error) {
	return nil, errors.New("relation \"interviews\" does not exist")
}

func newFixtureEnv(t *testing.T) *testEnv {
	return newEnv(t, envOptions{store: repository.NewFixtureInterviewRepository()})
}

func newDatabaseEnv(t *testing.T) *testEnv {
	db := testhelpers.NewTestDB(t)
	return newEnv(t, envOptions{
		store:    repository.NewInterviewRepository(db),
		userRepo: repository.NewUserRepository(db),
	})
}

func newEnv(t *testing.T, opts envOptions) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{}
	cfg.JWT.Secret = "controller-secret"
	cfg.JWT.ExpireTime = time.Hour
	cfg.Storage.Type = "local"
	cfg.Storage.LocalPath = t.TempDir()

	store := opts.store
	auth := service.NewAuthService(opts.userRepo, cfg)
	storage := service.NewStorageService(cfg)
	questions := service.NewQuestionService(nil, nil)
	evaluations := service.NewEvaluationService()
	interviews := service.NewInterviewService(store, questions, evaluations)
	recordings := service.NewRecordingService(storage, interviews)
	progress := service.NewProgressService(store)
	progress.Jitter = func(string, time.Time) stats.Jitter { return stats.FixedJitter(0) }

	healthCtrl := NewHealthController(store, nil, auth)
	healthCtrl.FFmpegVersion = func() (string, error) { return "ffmpeg version test", nil }
	authCtrl := NewAuthController(auth)
	dashboardCtrl := NewDashboardController(service.NewDashboardService(store), progress)
	interviewCtrl := NewInterviewController(interviews, recordings)
	questionCtrl := NewQuestionController(interviews, evaluations)
	resumeCtrl := NewResumeController(service.NewResumeService(storage))

	r := gin.New()
	api := r.Group("/api")
	api.GET("/health", healthCtrl.HealthCheck)
	api.GET("/test-connection", healthCtrl.TestConnection)
	api.GET("/auth-test", healthCtrl.AuthTest)
	api.POST("/register", authCtrl.Register)
	api.POST("/login", authCtrl.Login)
	api.GET("/profile", middleware.AuthMiddleware(auth), authCtrl.Profile)

	protected := api.Group("")
	protected.Use(middleware.IdentityMiddleware(auth, store.Configured()))
	protected.GET("/dashboard/stats", dashboardCtrl.GetStats)
	protected.GET("/progress", dashboardCtrl.GetProgress)
	protected.GET("/interviews", interviewCtrl.ListInterviews)
	protected.POST("/interviews", interviewCtrl.CreateInterview)
	protected.GET("/interviews/:id", interviewCtrl.GetInterview)
	protected.POST("/interviews/:id/start", interviewCtrl.StartInterview)
	protected.POST("/interviews/:id/questions/:questionId/answer", interviewCtrl.SubmitAnswer)
	protected.POST("/interviews/:id/questions/:questionId/recording", interviewCtrl.UploadRecording)
	protected.POST("/interviews/:id/complete", interviewCtrl.CompleteInterview)
	protected.POST("/questions/generate", questionCtrl.GenerateQuestions)
	protected.POST("/evaluation", questionCtrl.Evaluate)
	protected.POST("/resumes", resumeCtrl.UploadResume)

	return &testEnv{router: r, auth: auth, store: store}
}

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
	Details string          `json:"details"`
}

func (e *testEnv) request(t *testing.T, method, target, token string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return e.serve(t, req)
}

func (e *testEnv) serve(t *testing.T, req *http.Request) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	}
	return w, env
}

func decode(t *testing.T, raw json.RawMessage, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(raw, v), string(raw))
}

// registerAndLogin 返回 token
func (e *testEnv) registerAndLogin(t *testing.T, email string) string {
	t.Helper()
	w, _ := e.request(t, http.MethodPost, "/api/register", "", gin.H{
		"name": "Tester", "email": email, "password": "password123",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w, env := e.request(t, http.MethodPost, "/api/login", "", gin.H{
		"email": email, "password": "password123",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var data struct {
		Token string `json:"token"`
	}
	decode(t, env.Data, &data)
	require.NotEmpty(t, data.Token)
	return data.Token
}
