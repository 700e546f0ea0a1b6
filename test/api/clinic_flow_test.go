//go:build e2e

package api_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// authToken registers a throwaway admin and logs in; the token is ignored when auth is off
func authToken(t *testing.T) string {
	t.Helper()
	email := fmt.Sprintf("admin%d@clinic.test", time.Now().UnixNano())
	resp := makeRequest(t, http.MethodPost, "/users/register-user", map[string]interface{}{
		"name":     unique("admin"),
		"phone":    uniqueDigits(),
		"email":    email,
		"password": "secret123",
		"role":     "Admin",
	}, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode, resp.Message)

	login := makeRequest(t, http.MethodPost, "/users/login", map[string]interface{}{
		"email":    email,
		"password": "secret123",
	}, "")
	require.True(t, login.IsSuccess(), login.Message)

	var token struct {
		AccessToken string `json:"accessToken"`
	}
	require.NoError(t, json.Unmarshal(login.Data, &token))
	return token.AccessToken
}

func TestPrescriptionFlow(t *testing.T) {
	token := authToken(t)

	doctor := makeRequest(t, http.MethodPost, "/users/register-user", map[string]interface{}{
		"name":     unique("doctor"),
		"phone":    uniqueDigits(),
		"email":    fmt.Sprintf("doctor%d@clinic.test", time.Now().UnixNano()),
		"password": "secret123",
		"role":     "Doctor",
	}, "")
	require.Equal(t, http.StatusCreated, doctor.StatusCode, doctor.Message)

	patient := makeRequest(t, http.MethodPost, "/patients/register-patient", map[string]interface{}{
		"name":       unique("patient"),
		"ageInYears": 34,
		"sex":        "female",
		"phone":      uniqueDigits(),
	}, token)
	require.Equal(t, http.StatusCreated, patient.StatusCode, patient.Message)

	category := makeRequest(t, http.MethodPost, "/categories/register-category", map[string]interface{}{
		"name": unique("Antibiotics"),
	}, token)
	require.Equal(t, http.StatusCreated, category.StatusCode, category.Message)

	medicine := makeRequest(t, http.MethodPost, "/medicines/register-medicine", map[string]interface{}{
		"name":       unique("amoxicillin"),
		"categoryId": category.ID(t),
		"types":      []string{"Capsule"},
		"stock":      100,
		"expiration": time.Now().AddDate(1, 0, 0).Format("2006-01-02"),
		"price":      "3.50",
	}, token)
	require.Equal(t, http.StatusCreated, medicine.StatusCode, medicine.Message)

	prescription := makeRequest(t, http.MethodPost, "/prescriptions/register-prescription", map[string]interface{}{
		"patientId": patient.ID(t),
		"doctorId":  doctor.ID(t),
	}, token)
	require.Equal(t, http.StatusCreated, prescription.StatusCode, prescription.Message)

	item := makeRequest(t, http.MethodPost, "/prescriptionMedicines/register-prescriptionMedicine", map[string]interface{}{
		"prescriptionId": prescription.ID(t),
		"medicineId":     medicine.ID(t),
		"dosage":         "500mg",
		"duration":       "7 days",
		"quantity":       14,
	}, token)
	require.Equal(t, http.StatusCreated, item.StatusCode, item.Message)

	got := makeRequest(t, http.MethodGet, "/prescriptions/get-prescriptionsById/"+prescription.ID(t), nil, token)
	require.True(t, got.IsSuccess(), got.Message)
	assert.Contains(t, string(got.Data), medicine.ID(t))

	payment := map[string]interface{}{
		"patientId":      patient.ID(t),
		"prescriptionId": prescription.ID(t),
		"amount":         49,
		"status":         "paid",
	}
	first := makeRequest(t, http.MethodPost, "/payments/register-payment", payment, token)
	require.Equal(t, http.StatusCreated, first.StatusCode, first.Message)

	second := makeRequest(t, http.MethodPost, "/payments/register-payment", payment, token)
	assert.Equal(t, http.StatusBadRequest, second.StatusCode)
	assert.Equal(t, "CONFLICT", second.Code)

	blocked := makeRequest(t, http.MethodDelete, "/prescriptions/delete-prescription/"+prescription.ID(t), nil, token)
	assert.Equal(t, http.StatusBadRequest, blocked.StatusCode)

	require.True(t, makeRequest(t, http.MethodDelete, "/payments/delete-payment/"+first.ID(t), nil, token).IsSuccess())
	require.True(t, makeRequest(t, http.MethodDelete, "/prescriptions/delete-prescription/"+prescription.ID(t), nil, token).IsSuccess())

	gone := makeRequest(t, http.MethodGet, "/prescriptionMedicines/get-prescriptionMedicineById/"+item.ID(t), nil, token)
	assert.Equal(t, http.StatusNotFound, gone.StatusCode)
}

func TestHealthCheckFlow(t *testing.T) {
	token := authToken(t)

	labDoctor := makeRequest(t, http.MethodPost, "/users/register-user", map[string]interface{}{
		"name":     unique("lab"),
		"phone":    uniqueDigits(),
		"email":    fmt.Sprintf("lab%d@clinic.test", time.Now().UnixNano()),
		"password": "secret123",
		"role":     "Lab_Doctor",
	}, "")
	require.Equal(t, http.StatusCreated, labDoctor.StatusCode, labDoctor.Message)

	patient := makeRequest(t, http.MethodPost, "/patients/register-patient", map[string]interface{}{
		"name":  unique("patient"),
		"sex":   "male",
		"phone": uniqueDigits(),
	}, token)
	require.Equal(t, http.StatusCreated, patient.StatusCode, patient.Message)

	disease := makeRequest(t, http.MethodPost, "/diseases/register-disease", map[string]interface{}{
		"name":            unique("malaria"),
		"signsAndEffects": []string{"fever", "chills"},
	}, token)
	require.Equal(t, http.StatusCreated, disease.StatusCode, disease.Message)

	hc := makeRequest(t, http.MethodPost, "/healthCheck/register-healthCheck", map[string]interface{}{
		"patientId":   patient.ID(t),
		"labDoctorId": labDoctor.ID(t),
		"signs":       []string{"fever"},
		"diseases":    []string{disease.ID(t)},
	}, token)
	require.Equal(t, http.StatusCreated, hc.StatusCode, hc.Message)
	assert.Contains(t, string(hc.Data), disease.ID(t))

	list := makeRequest(t, http.MethodGet, "/healthCheck/get-all-healthChecks?patientId="+patient.ID(t), nil, token)
	require.True(t, list.IsSuccess(), list.Message)

	require.True(t, makeRequest(t, http.MethodDelete, "/healthCheck/delete-healthCheck/"+hc.ID(t), nil, token).IsSuccess())
	assert.Equal(t, http.StatusNotFound,
		makeRequest(t, http.MethodGet, "/healthCheck/get-healthCheckById/"+hc.ID(t), nil, token).StatusCode)
}
