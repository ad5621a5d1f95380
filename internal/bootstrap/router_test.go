package bootstrap

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"qa-forum/internal/dto"
	httpHandler "qa-forum/internal/handler/http"
	gormpersistence "qa-forum/internal/infra/persistence/gorm"
	"qa-forum/internal/infra/setup"
	"qa-forum/internal/service"
)

const testJWTSecret = "router-test-secret"

type testServer struct {
	router *gin.Engine
	db     *gorm.DB
	auth   *service.AuthService
	seeder *Seeder
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func newTestServer(t *testing.T, frontendDir string) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := setup.InitDB(setup.DBOptions{
		Driver: setup.DriverSQLite,
		Path:   filepath.Join(t.TempDir(), "forum.db"),
	}, nil)
	require.NoError(t, err)
	require.NoError(t, setup.MigrateDB(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	users := gormpersistence.NewGormUserRepository(db)
	questions := gormpersistence.NewGormQuestionRepository(db)
	answers := gormpersistence.NewGormAnswerRepository(db)
	tx := gormpersistence.NewGormTransactor(db)

	auth, err := service.NewAuthService(users, testJWTSecret, 1)
	require.NoError(t, err)
	questionService := service.NewQuestionService(questions, tx)
	answerService := service.NewAnswerService(answers, questions, tx)

	log := quietLogger()
	router, err := NewRouter(Handlers{
		Auth:     httpHandler.NewAuthHandler(auth),
		Question: httpHandler.NewQuestionHandler(questionService),
		Answer:   httpHandler.NewAnswerHandler(answerService),
	}, RouterOptions{
		JWTSecret:      testJWTSecret,
		AllowedOrigins: []string{"http://localhost:5173"},
		FrontendDir:    frontendDir,
		Log:            log,
	})
	require.NoError(t, err)

	return &testServer{
		router: router,
		db:     db,
		auth:   auth,
		seeder: &Seeder{Users: users, Questions: questions, Auth: auth, QuestionService: questionService, Log: log},
	}
}

func (s *testServer) do(t *testing.T, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

// signUp registers a user over HTTP and returns an access token.
func (s *testServer) signUp(t *testing.T, username string) string {
	t.Helper()
	rec := s.do(t, http.MethodPost, "/api/user/create", gin.H{
		"username":  username,
		"password1": "secret-pw",
		"password2": "secret-pw",
		"email":     username + "@example.com",
	}, "")
	require.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())

	rec = s.do(t, http.MethodPost, "/api/user/login", gin.H{"username": username, "password": "secret-pw"}, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var token dto.Token
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &token))
	return token.AccessToken
}

func (s *testServer) createQuestion(t *testing.T, token, subject, content string) dto.Question {
	t.Helper()
	rec := s.do(t, http.MethodPost, "/api/question/create", gin.H{"subject": subject, "content": content}, token)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var q dto.Question
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &q))
	return q
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestUserEndpoints(t *testing.T) {
	s := newTestServer(t, "")
	token := s.signUp(t, "alice")

	t.Run("duplicate username", func(t *testing.T) {
		rec := s.do(t, http.MethodPost, "/api/user/create", gin.H{
			"username": "alice", "password1": "pw", "password2": "pw", "email": "new@example.com",
		}, "")
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("passwords differ", func(t *testing.T) {
		rec := s.do(t, http.MethodPost, "/api/user/create", gin.H{
			"username": "bob", "password1": "pw1", "password2": "pw2", "email": "bob@example.com",
		}, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("invalid email", func(t *testing.T) {
		rec := s.do(t, http.MethodPost, "/api/user/create", gin.H{
			"username": "bob", "password1": "pw", "password2": "pw", "email": "not-an-email",
		}, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("form login", func(t *testing.T) {
		form := url.Values{"username": {"alice"}, "password": {"secret-pw"}}
		req := httptest.NewRequest(http.MethodPost, "/api/user/login", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		rec := httptest.NewRecorder()
		s.router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		got := decode[dto.Token](t, rec)
		assert.Equal(t, "bearer", got.TokenType)
		assert.Equal(t, "alice", got.Username)
		assert.NotEmpty(t, got.AccessToken)
	})

	t.Run("wrong password", func(t *testing.T) {
		rec := s.do(t, http.MethodPost, "/api/user/login", gin.H{"username": "alice", "password": "nope"}, "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("me", func(t *testing.T) {
		rec := s.do(t, http.MethodGet, "/api/user/me", nil, token)
		require.Equal(t, http.StatusOK, rec.Code)
		me := decode[dto.User](t, rec)
		assert.Equal(t, "alice", me.Username)
		assert.NotContains(t, rec.Body.String(), "password")

		rec = s.do(t, http.MethodGet, "/api/user/me", nil, "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestQuestionEndpoints_Ownership(t *testing.T) {
	s := newTestServer(t, "")
	owner := s.signUp(t, "owner")
	intruder := s.signUp(t, "intruder")
	q := s.createQuestion(t, owner, "How do I close a channel?", "Details inside")
	require.NotNil(t, q.User)
	assert.Equal(t, "owner", q.User.Username)

	update := gin.H{"question_id": q.ID, "subject": "Hijacked", "content": "Hijacked"}

	rec := s.do(t, http.MethodPut, "/api/question/update", update, intruder)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = s.do(t, http.MethodDelete, "/api/question/delete", gin.H{"question_id": q.ID}, intruder)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = s.do(t, http.MethodGet, fmt.Sprintf("/api/question/detail/%d", q.ID), nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	detail := decode[dto.Question](t, rec)
	assert.Equal(t, "How do I close a channel?", detail.Subject, "rejected update must not change the question")
	assert.Nil(t, detail.ModifyDate)

	rec = s.do(t, http.MethodPut, "/api/question/update", gin.H{"question_id": 9999, "subject": "s", "content": "c"}, owner)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(t, http.MethodPut, "/api/question/update", gin.H{"question_id": q.ID, "subject": "Edited", "content": "Edited body"}, owner)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = s.do(t, http.MethodGet, fmt.Sprintf("/api/question/detail/%d", q.ID), nil, "")
	detail = decode[dto.Question](t, rec)
	assert.Equal(t, "Edited", detail.Subject)
	assert.NotNil(t, detail.ModifyDate)

	rec = s.do(t, http.MethodPut, "/api/question/update", update, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestQuestionEndpoints_Validation(t *testing.T) {
	s := newTestServer(t, "")
	token := s.signUp(t, "alice")

	rec := s.do(t, http.MethodPost, "/api/question/create", gin.H{"subject": "   ", "content": "body"}, token)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	rec = s.do(t, http.MethodPost, "/api/question/create", gin.H{"subject": "subject"}, token)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	for _, query := range []string{"page=-1", "size=0", "size=101", "page=abc"} {
		rec = s.do(t, http.MethodGet, "/api/question/list?"+query, nil, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code, query)
	}

	rec = s.do(t, http.MethodGet, "/api/question/detail/abc", nil, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	rec = s.do(t, http.MethodGet, "/api/question/detail/4242", nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	var count int64
	require.NoError(t, s.db.Table("questions").Count(&count).Error)
	assert.Zero(t, count)
}

func TestQuestionEndpoints_ListAndSearch(t *testing.T) {
	s := newTestServer(t, "")
	alice := s.signUp(t, "alice")
	gopher := s.signUp(t, "gopher")
	for i := 0; i < 25; i++ {
		s.createQuestion(t, alice, fmt.Sprintf("Question %02d", i), "plain text")
	}
	s.createQuestion(t, gopher, "Unrelated", "nothing to see")

	sizes := []int{10, 10, 6}
	for page, want := range sizes {
		rec := s.do(t, http.MethodGet, fmt.Sprintf("/api/question/list?page=%d&size=10", page), nil, "")
		require.Equal(t, http.StatusOK, rec.Code)
		list := decode[dto.QuestionList](t, rec)
		assert.Equal(t, int64(26), list.Total)
		assert.Len(t, list.QuestionList, want)
	}

	rec := s.do(t, http.MethodGet, "/api/question/list", nil, "")
	list := decode[dto.QuestionList](t, rec)
	require.Len(t, list.QuestionList, 10, "default size is 10")
	assert.Equal(t, "Unrelated", list.QuestionList[0].Subject, "newest first")

	rec = s.do(t, http.MethodGet, "/api/question/list?keyword=QUESTION%201", nil, "")
	list = decode[dto.QuestionList](t, rec)
	assert.Equal(t, int64(10), list.Total)

	rec = s.do(t, http.MethodGet, "/api/question/list?keyword=GOPH", nil, "")
	list = decode[dto.QuestionList](t, rec)
	assert.Equal(t, int64(1), list.Total, "matches the author username")
	require.Len(t, list.QuestionList, 1)
	assert.Equal(t, "Unrelated", list.QuestionList[0].Subject)
}

func TestQuestionEndpoints_VoteTwice(t *testing.T) {
	s := newTestServer(t, "")
	alice := s.signUp(t, "alice")
	bob := s.signUp(t, "bob")
	q := s.createQuestion(t, alice, "Subject", "Content")

	for i := 0; i < 2; i++ {
		rec := s.do(t, http.MethodPost, "/api/question/vote", gin.H{"question_id": q.ID}, bob)
		assert.Equal(t, http.StatusNoContent, rec.Code)
	}
	rec := s.do(t, http.MethodPost, "/api/question/vote", gin.H{"question_id": 9999}, bob)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(t, http.MethodGet, fmt.Sprintf("/api/question/detail/%d", q.ID), nil, "")
	detail := decode[dto.Question](t, rec)
	require.Len(t, detail.Voter, 1)
	assert.Equal(t, "bob", detail.Voter[0].Username)
}

func TestAnswerEndpoints(t *testing.T) {
	s := newTestServer(t, "")
	alice := s.signUp(t, "alice")
	bob := s.signUp(t, "bob")
	q := s.createQuestion(t, alice, "Subject", "Content")

	rec := s.do(t, http.MethodPost, "/api/answer/create", gin.H{"question_id": q.ID, "content": "  \t "}, bob)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/answer/create", gin.H{"question_id": 9999, "content": "orphan"}, bob)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/answer/create", gin.H{"question_id": q.ID, "content": "Use close()."}, bob)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	answer := decode[dto.Answer](t, rec)
	assert.Equal(t, q.ID, answer.QuestionID)

	rec = s.do(t, http.MethodPut, "/api/answer/update", gin.H{"answer_id": answer.ID, "content": "mine now"}, alice)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	rec = s.do(t, http.MethodPut, "/api/answer/update", gin.H{"answer_id": answer.ID, "content": "Use close(ch)."}, bob)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/answer/vote", gin.H{"answer_id": answer.ID}, alice)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = s.do(t, http.MethodPost, "/api/answer/vote", gin.H{"answer_id": answer.ID}, alice)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = s.do(t, http.MethodGet, fmt.Sprintf("/api/answer/detail/%d", answer.ID), nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	detail := decode[dto.Answer](t, rec)
	assert.Equal(t, "Use close(ch).", detail.Content)
	assert.Len(t, detail.Voter, 1)

	rec = s.do(t, http.MethodGet, "/api/answer/list?page=0&size=10", nil, "")
	list := decode[dto.AnswerList](t, rec)
	assert.Equal(t, int64(1), list.Total)

	rec = s.do(t, http.MethodGet, fmt.Sprintf("/api/question/detail/%d", q.ID), nil, "")
	question := decode[dto.Question](t, rec)
	require.Len(t, question.Answers, 1)
	assert.Equal(t, "bob", question.Answers[0].User.Username)

	// Deleting the question takes its answers along.
	rec = s.do(t, http.MethodDelete, "/api/question/delete", gin.H{"question_id": q.ID}, alice)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = s.do(t, http.MethodGet, fmt.Sprintf("/api/answer/detail/%d", answer.ID), nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec = s.do(t, http.MethodDelete, "/api/answer/delete", gin.H{"answer_id": answer.ID}, bob)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAnswerEndpoints_DeleteByOwner(t *testing.T) {
	s := newTestServer(t, "")
	alice := s.signUp(t, "alice")
	q := s.createQuestion(t, alice, "Subject", "Content")
	rec := s.do(t, http.MethodPost, "/api/answer/create", gin.H{"question_id": q.ID, "content": "self answer"}, alice)
	require.Equal(t, http.StatusCreated, rec.Code)
	answer := decode[dto.Answer](t, rec)

	rec = s.do(t, http.MethodDelete, "/api/answer/delete", gin.H{"answer_id": answer.ID}, alice)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = s.do(t, http.MethodGet, fmt.Sprintf("/api/question/detail/%d", q.ID), nil, "")
	assert.Empty(t, decode[dto.Question](t, rec).Answers)
}

func TestEndpoints_ZeroIDIsNotFound(t *testing.T) {
	s := newTestServer(t, "")
	token := s.signUp(t, "alice")

	requests := []struct {
		method string
		path   string
		body   gin.H
	}{
		{http.MethodPut, "/api/question/update", gin.H{"question_id": 0, "subject": "s", "content": "c"}},
		{http.MethodDelete, "/api/question/delete", gin.H{"question_id": 0}},
		{http.MethodPost, "/api/question/vote", gin.H{"question_id": 0}},
		{http.MethodPost, "/api/answer/create", gin.H{"question_id": 0, "content": "c"}},
		{http.MethodPut, "/api/answer/update", gin.H{"answer_id": 0, "content": "c"}},
		{http.MethodDelete, "/api/answer/delete", gin.H{"answer_id": 0}},
		{http.MethodPost, "/api/answer/vote", gin.H{"answer_id": 0}},
	}
	for _, r := range requests {
		rec := s.do(t, r.method, r.path, r.body, token)
		assert.Equal(t, http.StatusNotFound, rec.Code, r.path)
	}
}

func TestRouter_FallbackAndRoot(t *testing.T) {
	s := newTestServer(t, "")

	rec := s.do(t, http.MethodGet, "/api/does-not-exist", nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"route not found","path":"/api/does-not-exist"}`, rec.Body.String())

	rec = s.do(t, http.MethodGet, "/", nil, "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_ServesFrontend(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "assets"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<html>forum</html>"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "assets", "app.js"), []byte("console.log(1)"), 0o644))
	s := newTestServer(t, dir)

	rec := s.do(t, http.MethodGet, "/", nil, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "forum")

	rec = s.do(t, http.MethodGet, "/assets/app.js", nil, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "console.log")
}

func TestRouter_CORS(t *testing.T) {
	s := newTestServer(t, "")
	req := httptest.NewRequest(http.MethodOptions, "/api/question/list", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestSeeder(t *testing.T) {
	s := newTestServer(t, "")
	ctx := context.Background()

	require.NoError(t, s.seeder.Seed(ctx))
	require.NoError(t, s.seeder.Seed(ctx))

	var users, questions int64
	require.NoError(t, s.db.Table("users").Count(&users).Error)
	require.NoError(t, s.db.Table("questions").Count(&questions).Error)
	assert.Equal(t, int64(1), users)
	assert.Equal(t, int64(2), questions)

	_, user, err := s.auth.Login(ctx, SeedUsername, SeedPassword)
	require.NoError(t, err, "the seed password is stored hashed and can log in")
	assert.Equal(t, SeedEmail, user.Email)
}

func TestSeeder_SkipsPopulatedTables(t *testing.T) {
	s := newTestServer(t, "")
	s.signUp(t, "existing")

	require.NoError(t, s.seeder.Seed(context.Background()))

	var users, questions int64
	require.NoError(t, s.db.Table("users").Count(&users).Error)
	require.NoError(t, s.db.Table("questions").Count(&questions).Error)
	assert.Equal(t, int64(1), users)
	assert.Zero(t, questions, "no seed user, so no seed questions")
}
