package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"gotix/internal/auth"
	"gotix/internal/middleware"
	"gotix/internal/models"
	"gotix/internal/repository"
	"gotix/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	router *gin.Engine
	store  *repository.MemoryStore
	issuer *auth.TokenIssuer
}

func setup(t *testing.T) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := repository.NewMemoryStore()
	issuer := auth.NewTokenIssuer("test-secret", time.Hour)

	repos := &repository.Repositories{
		Users:   store.Users(),
		Tickets: store.Tickets(),
		Orders:  store.Orders(),
	}
	services := service.NewServices(repos, issuer, nil, nil, nil)
	h := NewHandlers(services)

	authed := middleware.Authn(issuer)
	admin := middleware.RequireAdmin()

	r := gin.New()
	api := r.Group("/api")
	{
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/register", h.Register)
			authGroup.POST("/login", h.Login)
			authGroup.POST("/activation", h.Activation)
			authGroup.GET("/me", authed, h.Me)
		}

		orders := api.Group("/orders")
		orders.Use(authed)
		{
			orders.POST("", h.CreateOrder)
			orders.GET("", admin, h.ListOrders)
			orders.GET("/:orderId", h.GetOrder)
			orders.PUT("/:orderId/complete", h.CompleteOrder)
			orders.PUT("/:orderId/pending", h.PendingOrder)
			orders.PUT("/:orderId/cancel", h.CancelOrder)
			orders.DELETE("/:orderId/remove", h.DeleteOrder)
		}
		api.GET("/orders-history", authed, h.ListMyOrders)

		api.GET("/regions", h.ListProvinces)
		api.GET("/regions-search", h.SearchRegions)
	}

	return &fixture{router: r, store: store, issuer: issuer}
}

func (f *fixture) request(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, _ := http.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

// memberToken registers an activated member and returns a token for them
func (f *fixture) memberToken(t *testing.T, username string) (string, int64) {
	t.Helper()
	w := f.request(t, "POST", "/api/auth/register", "", models.RegisterRequest{
		FullName:        "Test User",
		Username:        username,
		Email:           username + "@example.com",
		Password:        "Secret123",
		ConfirmPassword: "Secret123",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		Data models.User `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	token, err := f.issuer.Generate(resp.Data.ID, models.RoleMember)
	require.NoError(t, err)
	return token, resp.Data.ID
}

func (f *fixture) seedTicket(t *testing.T, quantity int64) *models.Ticket {
	t.Helper()
	ticket := &models.Ticket{
		Name:     "Regular",
		Price:    decimal.NewFromInt(20000),
		Quantity: quantity,
		EventID:  1,
	}
	require.NoError(t, f.store.Tickets().Create(t.Context(), ticket))
	return ticket
}

func TestRegisterEndpoint(t *testing.T) {
	f := setup(t)

	w := f.request(t, "POST", "/api/auth/register", "", models.RegisterRequest{
		FullName:        "Jane Doe",
		Username:        "janedoe",
		Email:           "jane@example.com",
		Password:        "Secret123",
		ConfirmPassword: "Secret123",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	var resp models.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "registration success", resp.Message)

	// Password policy violations map to 400
	w = f.request(t, "POST", "/api/auth/register", "", models.RegisterRequest{
		FullName:        "Jane Doe",
		Username:        "janedoe2",
		Email:           "jane2@example.com",
		Password:        "short",
		ConfirmPassword: "short",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Missing fields fail binding
	w = f.request(t, "POST", "/api/auth/register", "", map[string]string{"username": "x"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMeEndpoint(t *testing.T) {
	f := setup(t)
	token, _ := f.memberToken(t, "janedoe")

	w := f.request(t, "GET", "/api/auth/me", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data models.User `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "janedoe", resp.Data.Username)

	// No token
	w = f.request(t, "GET", "/api/auth/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Garbage token
	w = f.request(t, "GET", "/api/auth/me", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCreateOrderEndpoint(t *testing.T) {
	f := setup(t)
	token, userID := f.memberToken(t, "buyer")
	ticket := f.seedTicket(t, 5)

	w := f.request(t, "POST", "/api/orders", token, models.CreateOrderRequest{
		Ticket:   ticket.ID,
		Quantity: 3,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Data models.Order `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Data.OrderCode)
	assert.Equal(t, userID, resp.Data.CreatedBy)
	assert.True(t, resp.Data.Total.Equal(decimal.NewFromInt(60000)))

	// Stock exhausted for a second order of 3
	w = f.request(t, "POST", "/api/orders", token, models.CreateOrderRequest{
		Ticket:   ticket.ID,
		Quantity: 3,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Unknown ticket
	w = f.request(t, "POST", "/api/orders", token, models.CreateOrderRequest{
		Ticket:   9999,
		Quantity: 1,
	})
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Unauthenticated
	w = f.request(t, "POST", "/api/orders", "", models.CreateOrderRequest{
		Ticket:   ticket.ID,
		Quantity: 1,
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestOrderLifecycleEndpoints(t *testing.T) {
	f := setup(t)
	token, _ := f.memberToken(t, "buyer")
	ticket := f.seedTicket(t, 5)

	w := f.request(t, "POST", "/api/orders", token, models.CreateOrderRequest{
		Ticket:   ticket.ID,
		Quantity: 2,
	})
	require.Equal(t, http.StatusOK, w.Code)

	var created struct {
		Data models.Order `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	code := created.Data.OrderCode

	w = f.request(t, "PUT", "/api/orders/"+code+"/pending", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = f.request(t, "PUT", "/api/orders/"+code+"/complete", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var completed struct {
		Data models.Order `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &completed))
	assert.Equal(t, models.OrderStatusCompleted, completed.Data.Status)
	assert.Len(t, completed.Data.Vouchers, 2)

	// Completing again conflicts
	w = f.request(t, "PUT", "/api/orders/"+code+"/complete", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Cancelling a completed order conflicts
	w = f.request(t, "PUT", "/api/orders/"+code+"/cancel", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Unknown order
	w = f.request(t, "PUT", "/api/orders/TRX-DOESNOTEXIST/complete", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestOrderOwnershipOverHTTP(t *testing.T) {
	f := setup(t)
	buyer, _ := f.memberToken(t, "buyer")
	other, _ := f.memberToken(t, "other")
	ticket := f.seedTicket(t, 5)

	w := f.request(t, "POST", "/api/orders", buyer, models.CreateOrderRequest{
		Ticket:   ticket.ID,
		Quantity: 1,
	})
	require.Equal(t, http.StatusOK, w.Code)

	var created struct {
		Data models.Order `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	code := created.Data.OrderCode

	// Another member cannot see, complete or delete the order
	w = f.request(t, "GET", "/api/orders/"+code, other, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = f.request(t, "PUT", "/api/orders/"+code+"/complete", other, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = f.request(t, "DELETE", "/api/orders/"+code+"/remove", other, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Pending and cancel are open to any authenticated member
	w = f.request(t, "PUT", "/api/orders/"+code+"/pending", other, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = f.request(t, "PUT", "/api/orders/"+code+"/cancel", other, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// The owner still sees it
	w = f.request(t, "GET", "/api/orders/"+code, buyer, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var cancelled struct {
		Data models.Order `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cancelled))
	assert.Equal(t, models.OrderStatusCancelled, cancelled.Data.Status)
}

func TestAdminOnlyOrderListing(t *testing.T) {
	f := setup(t)
	member, _ := f.memberToken(t, "buyer")

	adminToken, err := f.issuer.Generate(999, models.RoleAdmin)
	require.NoError(t, err)

	w := f.request(t, "GET", "/api/orders", member, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = f.request(t, "GET", "/api/orders", adminToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestOrderHistoryEndpoint(t *testing.T) {
	f := setup(t)
	token, _ := f.memberToken(t, "buyer")
	ticket := f.seedTicket(t, 50)

	for i := 0; i < 3; i++ {
		w := f.request(t, "POST", "/api/orders", token, models.CreateOrderRequest{
			Ticket:   ticket.ID,
			Quantity: 1,
		})
		require.Equal(t, http.StatusOK, w.Code)
	}

	w := f.request(t, "GET", "/api/orders-history?page=1&limit=2", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data       []models.Order  `json:"data"`
		Pagination models.PageMeta `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Data, 2)
	assert.Equal(t, int64(3), resp.Pagination.Total)
	assert.Equal(t, int64(2), resp.Pagination.TotalPage)
}

func TestRegionEndpoints(t *testing.T) {
	f := setup(t)

	w := f.request(t, "GET", "/api/regions", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = f.request(t, "GET", "/api/regions-search?name=bandung", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data []struct {
			Name string `json:"name"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Data)
	for _, r := range resp.Data {
		assert.Contains(t, r.Name, "Bandung")
	}
}
