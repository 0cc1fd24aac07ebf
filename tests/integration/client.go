package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"testing"
	"time"

	"gotix/internal/models"
)

// These tests run against a live server. Set GOTIX_API_URL to enable them:
//
//	GOTIX_API_URL=http://localhost:8080 go test ./tests/integration/...

// BaseURL returns the target server, skipping the test when unset
func BaseURL(t *testing.T) string {
	t.Helper()
	url := os.Getenv("GOTIX_API_URL")
	if url == "" {
		t.Skip("GOTIX_API_URL not set, skipping integration test")
	}
	return url
}

// TestClient provides methods for testing the API
type TestClient struct {
	BaseURL    string
	Token      string
	HTTPClient *http.Client
}

func NewTestClient(baseURL string) *TestClient {
	return &TestClient{
		BaseURL: baseURL,
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (c *TestClient) makeRequest(t *testing.T, method, path string, body interface{}) *http.Response {
	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("Failed to marshal request body: %v", err)
		}
		reqBody = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, c.BaseURL+path, reqBody)
	if err != nil {
		t.Fatalf("Failed to create request: %v", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		t.Fatalf("Failed to make request: %v", err)
	}

	return resp
}

// decode reads the envelope and unmarshals the data field into out
func decode(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("Failed to read response body: %v", err)
	}

	var envelope struct {
		Message string          `json:"message"`
		Data    json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		t.Fatalf("Failed to unmarshal envelope: %v (body: %s)", err, raw)
	}
	if out != nil {
		if err := json.Unmarshal(envelope.Data, out); err != nil {
			t.Fatalf("Failed to unmarshal data: %v (body: %s)", err, raw)
		}
	}
}

// Register creates a throwaway account
func (c *TestClient) Register(t *testing.T, username, password string) *models.User {
	resp := c.makeRequest(t, "POST", "/api/auth/register", models.RegisterRequest{
		FullName:        "Integration Test",
		Username:        username,
		Email:           username + "@test.local",
		Password:        password,
		ConfirmPassword: password,
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("Register: expected 201, got %d", resp.StatusCode)
	}

	var user models.User
	decode(t, resp, &user)
	return &user
}

// Login authenticates and stores the token on the client
func (c *TestClient) Login(t *testing.T, identifier, password string) {
	resp := c.makeRequest(t, "POST", "/api/auth/login", models.LoginRequest{
		Identifier: identifier,
		Password:   password,
	})
	if resp.StatusCode == http.StatusUnauthorized {
		// Fresh accounts need activation; deployments under test are
		// expected to auto-activate
		t.Skip("account not activated, skipping")
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Login: expected 200, got %d", resp.StatusCode)
	}

	var login models.LoginResponse
	decode(t, resp, &login)
	c.Token = login.Token
}

// ListEvents lists published events
func (c *TestClient) ListEvents(t *testing.T) []models.Event {
	resp := c.makeRequest(t, "GET", "/api/events", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("ListEvents: expected 200, got %d", resp.StatusCode)
	}

	var events []models.Event
	decode(t, resp, &events)
	return events
}

// TicketsForEvent lists the ticket types of an event
func (c *TestClient) TicketsForEvent(t *testing.T, eventID int64) []models.Ticket {
	resp := c.makeRequest(t, "GET", fmt.Sprintf("/api/tickets/%d/events", eventID), nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("TicketsForEvent: expected 200, got %d", resp.StatusCode)
	}

	var tickets []models.Ticket
	decode(t, resp, &tickets)
	return tickets
}

// CreateOrder places an order
func (c *TestClient) CreateOrder(t *testing.T, ticketID, quantity int64) *models.Order {
	resp := c.makeRequest(t, "POST", "/api/orders", models.CreateOrderRequest{
		Ticket:   ticketID,
		Quantity: quantity,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("CreateOrder: expected 200, got %d", resp.StatusCode)
	}

	var order models.Order
	decode(t, resp, &order)
	return &order
}

// TransitionOrder drives an order through ./pending, ./complete or ./cancel
func (c *TestClient) TransitionOrder(t *testing.T, code, transition string, wantStatus int) *models.Order {
	resp := c.makeRequest(t, "PUT", "/api/orders/"+code+"/"+transition, nil)
	if resp.StatusCode != wantStatus {
		t.Fatalf("TransitionOrder %s: expected %d, got %d", transition, wantStatus, resp.StatusCode)
	}
	if wantStatus != http.StatusOK {
		resp.Body.Close()
		return nil
	}

	var order models.Order
	decode(t, resp, &order)
	return &order
}

// HealthCheck verifies the server is up
func (c *TestClient) HealthCheck(t *testing.T) {
	resp := c.makeRequest(t, "GET", "/health", nil)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("HealthCheck: expected 200, got %d", resp.StatusCode)
	}
}
