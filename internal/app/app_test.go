package app

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/celestiaorg/intakeflow/internal/db/models"
	"github.com/celestiaorg/intakeflow/internal/types"
)

const testKey = "test-key"

type AppTestSuite struct {
	suite.Suite
	db  *gorm.DB
	app *fiber.App
}

func (s *AppTestSuite) SetupTest() {
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(s.T(), err)
	require.NoError(s.T(), db.AutoMigrate(models.AllModels()...))

	s.db = db
	s.app = NewApp(db, Options{APIKey: testKey})
}

func (s *AppTestSuite) TearDownTest() {
	if sqlDB, err := s.db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

func (s *AppTestSuite) do(method, path string, body interface{}, withKey bool) *http.Response {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = strings.NewReader(string(raw))
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if withKey {
		req.Header.Set("x-api-key", testKey)
	}
	resp, err := s.app.Test(req, -1)
	s.Require().NoError(err)
	return resp
}

func (s *AppTestSuite) decode(resp *http.Response, v interface{}) {
	defer resp.Body.Close()
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(v))
}

func (s *AppTestSuite) errorMessage(resp *http.Response) string {
	var body types.ErrorResponse
	s.decode(resp, &body)
	return body.Error
}

func (s *AppTestSuite) count() int64 {
	var n int64
	s.Require().NoError(s.db.Model(&models.Project{}).Count(&n).Error)
	return n
}

func (s *AppTestSuite) create(name, taskID string) models.Project {
	resp := s.do(fiber.MethodPost, "/api/v1/projects", types.ProjectRequest{Name: name, PlannerTaskID: taskID}, true)
	s.Require().Equal(fiber.StatusCreated, resp.StatusCode)
	var p models.Project
	s.decode(resp, &p)
	return p
}

func (s *AppTestSuite) TestHealth() {
	resp := s.do(fiber.MethodGet, "/health", nil, false)
	s.Equal(fiber.StatusOK, resp.StatusCode)
	var body types.HealthResponse
	s.decode(resp, &body)
	s.Equal("healthy", body.Status)
}

func (s *AppTestSuite) TestSwaggerDoc() {
	resp := s.do(fiber.MethodGet, "/swagger/doc.json", nil, false)
	s.Equal(fiber.StatusOK, resp.StatusCode)

	var doc struct {
		Info  map[string]interface{}     `json:"info"`
		Paths map[string]json.RawMessage `json:"paths"`
	}
	s.decode(resp, &doc)
	s.Equal("IntakeFlow API", doc.Info["title"])
	s.Contains(doc.Paths, "/api/v1/projects/{id}/status")
}

func (s *AppTestSuite) TestCreateAndGet() {
	resp := s.do(fiber.MethodPost, "/api/v1/projects", types.ProjectRequest{
		Name: "Payroll", PlannerTaskID: "PLN-1", StartDate: "2024-01-01", EndDate: "2024-06-30",
	}, true)
	s.Require().Equal(fiber.StatusCreated, resp.StatusCode)

	var created models.Project
	s.decode(resp, &created)
	s.Equal(models.ProjectStatusInitiated, created.Status)
	s.Equal(models.DefaultPortfolio, created.Portfolio)
	s.Equal("/api/v1/projects/"+jsonID(created.ID), resp.Header.Get(fiber.HeaderLocation))

	resp = s.do(fiber.MethodGet, "/api/v1/projects/"+jsonID(created.ID), nil, false)
	s.Require().Equal(fiber.StatusOK, resp.StatusCode)
	var fetched models.Project
	s.decode(resp, &fetched)
	s.Equal(created.ID, fetched.ID)
	s.Require().NotNil(fetched.StartDate)
	s.Equal("2024-01-01", fetched.StartDate.Format("2006-01-02"))
}

func (s *AppTestSuite) TestList() {
	s.create("a", "PLN-1")
	s.create("b", "PLN-2")

	resp := s.do(fiber.MethodGet, "/api/v1/projects", nil, false)
	s.Require().Equal(fiber.StatusOK, resp.StatusCode)
	var projects []models.Project
	s.decode(resp, &projects)
	s.Len(projects, 2)
}

func (s *AppTestSuite) TestCreateValidation() {
	resp := s.do(fiber.MethodPost, "/api/v1/projects", types.ProjectRequest{Name: " "}, true)
	s.Equal(fiber.StatusBadRequest, resp.StatusCode)
	s.Equal("Fields 'name' and 'plannerTaskId' are required.", s.errorMessage(resp))

	resp = s.do(fiber.MethodPost, "/api/v1/projects", types.ProjectRequest{
		Name: "a", PlannerTaskID: "b", StartDate: "2024-06-30", EndDate: "2024-01-01",
	}, true)
	s.Equal(fiber.StatusBadRequest, resp.StatusCode)
	s.Equal("endDate cannot be earlier than startDate.", s.errorMessage(resp))
	s.Zero(s.count())
}

func (s *AppTestSuite) TestCreateMalformedBody() {
	req := httptest.NewRequest(fiber.MethodPost, "/api/v1/projects", strings.NewReader("{not json"))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	req.Header.Set("x-api-key", testKey)
	resp, err := s.app.Test(req)
	s.Require().NoError(err)
	s.Equal(fiber.StatusBadRequest, resp.StatusCode)
}

func (s *AppTestSuite) TestCreateConflict() {
	s.create("a", "PLN-1")

	resp := s.do(fiber.MethodPost, "/api/v1/projects", types.ProjectRequest{Name: "b", PlannerTaskID: "PLN-1 "}, true)
	s.Equal(fiber.StatusConflict, resp.StatusCode)
	s.Equal("A project with PlannerTaskId 'PLN-1' already exists.", s.errorMessage(resp))
	s.Equal(int64(1), s.count())
}

func (s *AppTestSuite) TestUpdate() {
	p := s.create("a", "PLN-1")

	resp := s.do(fiber.MethodPut, "/api/v1/projects/"+jsonID(p.ID), types.ProjectRequest{
		Name: "renamed", PlannerTaskID: "PLN-1", Status: "onhold", Portfolio: "IT",
	}, true)
	s.Require().Equal(fiber.StatusOK, resp.StatusCode)
	var updated models.Project
	s.decode(resp, &updated)
	s.Equal("renamed", updated.Name)
	s.Equal(models.ProjectStatusOnHold, updated.Status)
	s.Equal("IT", updated.Portfolio)

	resp = s.do(fiber.MethodPut, "/api/v1/projects/9999", types.ProjectRequest{
		Name: "x", PlannerTaskID: "PLN-X", Status: "Approved",
	}, true)
	s.Equal(fiber.StatusNotFound, resp.StatusCode)
	s.Equal("Project 9999 not found.", s.errorMessage(resp))

	resp = s.do(fiber.MethodPut, "/api/v1/projects/"+jsonID(p.ID), types.ProjectRequest{
		Name: "x", PlannerTaskID: "PLN-1", Status: "Cancelled",
	}, true)
	s.Equal(fiber.StatusBadRequest, resp.StatusCode)
	s.Contains(s.errorMessage(resp), "Allowed: Initiated, Approved, InProgress, OnHold, Completed, Rejected")
}

func (s *AppTestSuite) TestUpdateConflict() {
	first := s.create("a", "PLN-1")
	second := s.create("b", "PLN-2")

	resp := s.do(fiber.MethodPut, "/api/v1/projects/"+jsonID(second.ID), types.ProjectRequest{
		Name: "b", PlannerTaskID: first.PlannerTaskID, Status: "Approved",
	}, true)
	s.Equal(fiber.StatusConflict, resp.StatusCode)
}

func (s *AppTestSuite) TestUpdateStatus() {
	p := s.create("a", "PLN-1")

	resp := s.do(fiber.MethodPut, "/api/v1/projects/"+jsonID(p.ID)+"/status", types.StatusRequest{Status: "inprogress"}, true)
	s.Require().Equal(fiber.StatusOK, resp.StatusCode)
	var updated models.Project
	s.decode(resp, &updated)
	s.Equal(models.ProjectStatusInProgress, updated.Status)

	resp = s.do(fiber.MethodPut, "/api/v1/projects/"+jsonID(p.ID)+"/status", types.StatusRequest{Status: "Cancelled"}, true)
	s.Equal(fiber.StatusBadRequest, resp.StatusCode)

	resp = s.do(fiber.MethodPut, "/api/v1/projects/777/status", types.StatusRequest{Status: "Approved"}, true)
	s.Equal(fiber.StatusNotFound, resp.StatusCode)
}

func (s *AppTestSuite) TestDelete() {
	p := s.create("a", "PLN-1")

	resp := s.do(fiber.MethodDelete, "/api/v1/projects/"+jsonID(p.ID), nil, true)
	s.Equal(fiber.StatusNoContent, resp.StatusCode)

	resp = s.do(fiber.MethodGet, "/api/v1/projects/"+jsonID(p.ID), nil, false)
	s.Equal(fiber.StatusNotFound, resp.StatusCode)

	resp = s.do(fiber.MethodDelete, "/api/v1/projects/"+jsonID(p.ID), nil, true)
	s.Equal(fiber.StatusNotFound, resp.StatusCode)
}

func (s *AppTestSuite) TestBadID() {
	for _, id := range []string{"abc", "0", "-3"} {
		resp := s.do(fiber.MethodGet, "/api/v1/projects/"+id, nil, false)
		s.Equal(fiber.StatusBadRequest, resp.StatusCode, id)
	}
}

func (s *AppTestSuite) TestWritesWithoutKeyDoNotMutate() {
	p := s.create("a", "PLN-1")
	before := s.count()

	requests := []struct {
		method string
		path   string
		body   interface{}
	}{
		{fiber.MethodPost, "/api/v1/projects", types.ProjectRequest{Name: "b", PlannerTaskID: "PLN-2"}},
		{fiber.MethodPut, "/api/v1/projects/" + jsonID(p.ID), types.ProjectRequest{Name: "c", PlannerTaskID: "PLN-1", Status: "Approved"}},
		{fiber.MethodPut, "/api/v1/projects/" + jsonID(p.ID) + "/status", types.StatusRequest{Status: "Completed"}},
		{fiber.MethodDelete, "/api/v1/projects/" + jsonID(p.ID), nil},
	}
	for _, r := range requests {
		resp := s.do(r.method, r.path, r.body, false)
		s.Equal(fiber.StatusUnauthorized, resp.StatusCode, r.method+" "+r.path)
		body, err := io.ReadAll(resp.Body)
		s.Require().NoError(err)
		s.Equal("Unauthorized: missing or invalid x-api-key", string(body))
	}

	s.Equal(before, s.count())
	var stored models.Project
	s.Require().NoError(s.db.First(&stored, p.ID).Error)
	s.Equal("a", stored.Name)
	s.Equal(models.ProjectStatusInitiated, stored.Status)
}

func (s *AppTestSuite) TestRequestIDHeader() {
	resp := s.do(fiber.MethodGet, "/api/v1/projects", nil, false)
	s.NotEmpty(resp.Header.Get("X-Request-ID"))
}

func jsonID(id uint) string {
	raw, _ := json.Marshal(id)
	return string(raw)
}

func TestAppSuite(t *testing.T) {
	suite.Run(t, new(AppTestSuite))
}
