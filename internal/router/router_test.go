package router

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/jwalitptl/clinic-api/internal/repository/memory"
	"github.com/jwalitptl/clinic-api/internal/service/event"
	"github.com/jwalitptl/clinic-api/pkg/auth"
	apperrors "github.com/jwalitptl/clinic-api/pkg/errors"
	"github.com/jwalitptl/clinic-api/pkg/metrics"
	"github.com/jwalitptl/clinic-api/pkg/security"
	"github.com/jwalitptl/clinic-api/pkg/validator"
)

type envelope struct {
	Status  string                 `json:"status"`
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Data    json.RawMessage        `json:"data"`
	Errors  []apperrors.FieldError `json:"errors"`
	Fields  []string               `json:"fields"`
}

type record struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type APISuite struct {
	suite.Suite
	engine *gin.Engine
	events *event.Recorder
}

func TestAPISuite(t *testing.T) {
	suite.Run(t, new(APISuite))
}

func newDeps(events event.Publisher, requireAuth bool) Dependencies {
	return Dependencies{
		Store:       memory.NewStore(),
		Validator:   validator.New(),
		Events:      events,
		Hasher:      security.NewBcryptHasher(4),
		Tokens:      auth.NewJWTService("test-secret", time.Hour),
		TokenTTL:    time.Hour,
		Metrics:     metrics.New("clinic_test"),
		RequireAuth: requireAuth,
	}
}

func (s *APISuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.events = &event.Recorder{}
	s.engine = Build(newDeps(s.events, false), RouterConfig{}).Engine()
}

func (s *APISuite) do(method, path string, body interface{}) (int, envelope) {
	return request(s.T(), s.engine, method, path, body, "")
}

func request(t *testing.T, engine *gin.Engine, method, path string, body interface{}, token string) (int, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, "/api/v1"+path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return w.Code, env
}

func (s *APISuite) create(path string, body interface{}) record {
	code, env := s.do(http.MethodPost, path, body)
	s.Require().Equal(http.StatusCreated, code, env.Message)
	var r record
	s.Require().NoError(json.Unmarshal(env.Data, &r))
	return r
}

func (s *APISuite) TestCategoryNameIsUniqueIgnoringCase() {
	cat := s.create("/categories/register-category", gin.H{"name": "Antibiotics"})
	s.Equal("antibiotics", cat.Name)

	code, env := s.do(http.MethodPost, "/categories/register-category", gin.H{"name": "ANTIBIOTICS "})
	s.Equal(http.StatusBadRequest, code)
	s.Equal("CONFLICT", env.Code)
	s.Equal([]string{"name"}, env.Fields)

	s.Contains(s.events.Types(), "category.created")
}

func (s *APISuite) TestEmptyListPolicy() {
	code, env := s.do(http.MethodGet, "/categories/get-all-categories", nil)
	s.Equal(http.StatusOK, code)
	s.JSONEq(`[]`, string(env.Data))

	code, env = s.do(http.MethodGet, "/users/get-all-users", nil)
	s.Equal(http.StatusOK, code)
	s.JSONEq(`[]`, string(env.Data))

	for _, path := range []string{
		"/patients/get-all-patients",
		"/medicines/get-all-medicines",
		"/diseases/get-all-diseases",
		"/healthCheck/get-all-healthChecks",
		"/prescriptionMedicines/get-all-prescriptionMedicines",
	} {
		code, env = s.do(http.MethodGet, path, nil)
		s.Equal(http.StatusNotFound, code, path)
		s.Equal("NOT_FOUND", env.Code, path)
	}
}

func (s *APISuite) TestMedicineRejections() {
	cat := s.create("/categories/register-category", gin.H{"name": "painkillers"})

	medicine := func(categoryID uuid.UUID, expiration string) gin.H {
		return gin.H{
			"name":       "paracetamol",
			"categoryId": categoryID,
			"types":      []string{"Tablet"},
			"stock":      20,
			"expiration": expiration,
			"price":      1.25,
		}
	}

	code, env := s.do(http.MethodPost, "/medicines/register-medicine", medicine(cat.ID, "2001-01-01"))
	s.Equal(http.StatusBadRequest, code)
	s.Equal("INVALID_INPUT", env.Code)
	s.Require().NotEmpty(env.Errors)
	s.Equal("expiration", env.Errors[0].Field)

	code, env = s.do(http.MethodPost, "/medicines/register-medicine", medicine(uuid.New(), "2099-01-01"))
	s.Equal(http.StatusNotFound, code)
	s.Equal("category not found", env.Message)

	m := s.create("/medicines/register-medicine", medicine(cat.ID, "2099-01-01"))
	code, env = s.do(http.MethodGet, "/medicines/get-medicinesById/"+m.ID.String(), nil)
	s.Require().Equal(http.StatusOK, code)
	s.Contains(string(env.Data), `"category":{`)

	code, env = s.do(http.MethodDelete, "/categories/delete-category/"+cat.ID.String(), nil)
	s.Equal(http.StatusBadRequest, code)
	s.Equal("CONFLICT", env.Code)
}

func (s *APISuite) TestOnePaymentPerPrescription() {
	patient := s.create("/patients/register-patient", gin.H{"name": "jane doe", "sex": "female", "phone": "0123456789"})
	doctor := s.create("/users/register-user", gin.H{
		"name":     "doctor who",
		"phone":    "0987654321",
		"email":    "doc@clinic.test",
		"password": "secret123",
		"role":     "Doctor",
	})
	prescription := s.create("/prescriptions/register-prescription", gin.H{"patientId": patient.ID, "doctorId": doctor.ID})

	payment := gin.H{"patientId": patient.ID, "prescriptionId": prescription.ID, "amount": 42.5, "status": "paid"}
	s.create("/payments/register-payment", payment)

	code, env := s.do(http.MethodPost, "/payments/register-payment", payment)
	s.Equal(http.StatusBadRequest, code)
	s.Equal("CONFLICT", env.Code)
	s.Equal([]string{"prescriptionId"}, env.Fields)

	code, _ = s.do(http.MethodGet, "/payments/get-all-payments?patientId="+patient.ID.String(), nil)
	s.Equal(http.StatusOK, code)
}

func (s *APISuite) TestDeleteThenGet() {
	d := s.create("/diseases/register-disease", gin.H{"name": "malaria", "signsAndEffects": []string{"fever"}})

	code, _ := s.do(http.MethodDelete, "/diseases/delete-disease/"+d.ID.String(), nil)
	s.Equal(http.StatusOK, code)

	code, env := s.do(http.MethodGet, "/diseases/get-diseaseById/"+d.ID.String(), nil)
	s.Equal(http.StatusNotFound, code)
	s.Equal("disease not found", env.Message)

	code, _ = s.do(http.MethodDelete, "/diseases/delete-disease/"+d.ID.String(), nil)
	s.Equal(http.StatusNotFound, code)
}

func (s *APISuite) TestMalformedRequests() {
	code, env := s.do(http.MethodGet, "/patients/get-patientById/not-a-uuid", nil)
	s.Equal(http.StatusBadRequest, code)
	s.Equal("INVALID_INPUT", env.Code)

	code, env = s.do(http.MethodGet, "/medicines/get-all-medicines?categoryId=nope", nil)
	s.Equal(http.StatusBadRequest, code)
	s.Equal("categoryId", env.Errors[0].Field)

	code, env = s.do(http.MethodPatch, "/patients/update-patient/"+uuid.NewString(), "not an object")
	s.Equal(http.StatusBadRequest, code)
	s.Equal("invalid request body", env.Message)
	s.Require().Len(env.Errors, 1)
	s.Equal(apperrors.FieldError{Field: "body", Message: "must be an object"}, env.Errors[0])
}

func (s *APISuite) TestBodyTypeErrorsNameTheField() {
	cases := []struct {
		path    string
		body    gin.H
		field   string
		message string
	}{
		{
			path:    "/patients/register-patient",
			body:    gin.H{"name": "jane doe", "sex": "female", "phone": "0123456789", "ageInMonths": 5.5},
			field:   "ageInMonths",
			message: "must be an integer",
		},
		{
			path: "/prescriptionMedicines/register-prescriptionMedicine",
			body: gin.H{
				"prescriptionId": uuid.New(),
				"medicineId":     uuid.New(),
				"dosage":         "500mg",
				"duration":       "7 days",
				"quantity":       1.5,
			},
			field:   "quantity",
			message: "must be an integer",
		},
		{
			path:    "/prescriptions/register-prescription",
			body:    gin.H{"patientId": "not-a-uuid", "doctorId": uuid.New()},
			field:   "patientId",
			message: "must be a valid UUID",
		},
		{
			path:    "/payments/register-payment",
			body:    gin.H{"patientId": uuid.New(), "prescriptionId": uuid.New(), "amount": "lots", "status": "paid"},
			field:   "amount",
			message: "must be a number",
		},
		{
			path:    "/diseases/register-disease",
			body:    gin.H{"name": "malaria", "signsAndEffects": "fever"},
			field:   "signsAndEffects",
			message: "must be a list",
		},
	}

	for _, tc := range cases {
		code, env := s.do(http.MethodPost, tc.path, tc.body)
		s.Equal(http.StatusBadRequest, code, tc.path)
		s.Equal("INVALID_INPUT", env.Code, tc.path)
		s.Require().NotEmpty(env.Errors, tc.path)
		s.Equal(tc.field, env.Errors[0].Field, tc.path)
		s.Equal(tc.message, env.Errors[0].Message, tc.path)
		s.NotContains(env.Errors[0].Message, "Go struct", tc.path)
	}
}

func TestAuthRequired(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := Build(newDeps(event.Nop{}, true), RouterConfig{}).Engine()

	code, _ := request(t, engine, http.MethodGet, "/users/get-all-users", nil, "")
	assert.Equal(t, http.StatusUnauthorized, code)

	code, _ = request(t, engine, http.MethodPost, "/users/register-user", gin.H{
		"name":     "admin user",
		"phone":    "0987654321",
		"email":    "admin@clinic.test",
		"password": "secret123",
		"role":     "Admin",
	}, "")
	require.Equal(t, http.StatusCreated, code)

	code, env := request(t, engine, http.MethodPost, "/users/login", gin.H{"email": "admin@clinic.test", "password": "secret123"}, "")
	require.Equal(t, http.StatusOK, code)
	var token struct {
		AccessToken string `json:"accessToken"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &token))

	code, env = request(t, engine, http.MethodGet, "/users/get-all-users", nil, token.AccessToken)
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(env.Data), "admin@clinic.test")
}

func TestOperationalRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := Build(newDeps(event.Nop{}, false), RouterConfig{}).Engine()

	for _, path := range []string{"/health/live", "/health/ready", "/metrics"} {
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, w.Code, path)
	}
}
