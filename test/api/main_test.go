//go:build e2e

package api_test

import (
	"fmt"
	"net/http"
	"os"
	"strings"
	"testing"
	"time"
)

var baseURL = "http://localhost:4000"

func checkAPIServer() error {
	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Get(baseURL + "/health/ready")
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("server not ready: %s", resp.Status)
	}
	return nil
}

func TestMain(m *testing.M) {
	if url := os.Getenv("API_URL"); url != "" {
		baseURL = strings.TrimRight(url, "/")
	}

	if err := checkAPIServer(); err != nil {
		fmt.Printf("API server at %s is not available: %v\n", baseURL, err)
		os.Exit(1)
	}

	os.Exit(m.Run())
}
