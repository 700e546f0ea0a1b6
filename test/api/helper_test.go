//go:build e2e

package api_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// APIResponse mirrors the API envelope
type APIResponse struct {
	StatusCode int             `json:"-"`
	Status     string          `json:"status"`
	Code       string          `json:"code,omitempty"`
	Message    string          `json:"message,omitempty"`
	Data       json.RawMessage `json:"data,omitempty"`
	Fields     []string        `json:"fields,omitempty"`
}

func (r APIResponse) IsSuccess() bool {
	return r.Status == "success"
}

// ID reads data.id from an object response
func (r APIResponse) ID(t *testing.T) string {
	t.Helper()
	var obj struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(r.Data, &obj), string(r.Data))
	require.NotEmpty(t, obj.ID)
	return obj.ID
}

func makeRequest(t *testing.T, method, path string, body interface{}, token string) APIResponse {
	t.Helper()

	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		require.NoError(t, err)
		reqBody = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, baseURL+"/api/v1"+path, reqBody)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out APIResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	out.StatusCode = resp.StatusCode
	return out
}

// unique avoids collisions with earlier runs against the same database
func unique(prefix string) string {
	return fmt.Sprintf("%s %d", prefix, time.Now().UnixNano())
}

func uniqueDigits() string {
	return fmt.Sprintf("%010d", time.Now().UnixNano()%10000000000)
}
