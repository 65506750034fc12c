package storefront

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/your-org/easyway-storefront/internal/api"
	"github.com/your-org/easyway-storefront/internal/config"
	"github.com/your-org/easyway-storefront/internal/infrastructure/storage"
	"github.com/your-org/easyway-storefront/internal/pkg/auth"
	"github.com/your-org/easyway-storefront/internal/pkg/logger"
	"github.com/your-org/easyway-storefront/internal/store"
	"github.com/your-org/easyway-storefront/internal/validation"
)

// fakeBackend is an in-memory stand-in for the EasyWay REST API
type fakeBackend struct {
	srv *httptest.Server

	mu         sync.Mutex
	products   map[int64]map[string]any
	cart       []map[string]any
	calls      []string
	failures   map[string]int
	failAfter  map[string]int
	gates      map[string]*gate
	nextCardID int64
	orders     []map[string]any
	refreshed  int
}

func newFakeBackend(t *testing.T) *fakeBackend {
	t.Helper()
	b := &fakeBackend{
		products: map[int64]map[string]any{
			1: product(1, "Tomato", 60),
			2: product(2, "Onion", 35.5),
		},
		failures:   map[string]int{},
		failAfter:  map[string]int{},
		gates:      map[string]*gate{},
		nextCardID: 100,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/auth/sign-in", b.signIn)
	mux.HandleFunc("POST /v1/auth/sign-up", b.ok)
	mux.HandleFunc("POST /v1/auth/sign-out", b.ok)
	mux.HandleFunc("POST /v1/auth/refresh", b.refresh)
	mux.HandleFunc("GET /v1/stocks/home-products", b.homeProducts)
	mux.HandleFunc("GET /v1/stocks/home-product-info/{id}", b.productInfo)
	mux.HandleFunc("POST /v1/card-items/add/{id}", b.addCardItem)
	mux.HandleFunc("DELETE /v1/card-items/remove/{id}", b.ok)
	mux.HandleFunc("GET /v1/card-items/my", b.myCart)
	mux.HandleFunc("POST /v1/favourites/{id}", b.ok)
	mux.HandleFunc("DELETE /v1/favourites/{id}", b.ok)
	mux.HandleFunc("GET /v1/favourites/my", b.myFavourites)
	mux.HandleFunc("POST /v1/sales-orders/create", b.createOrder)
	mux.HandleFunc("POST /v1/payments/create", b.createPayment)
	mux.HandleFunc("POST /v1/recurring-orders/create", b.createRecurring)
	mux.HandleFunc("GET /v1/recurring-orders/my", b.ok)

	b.srv = httptest.NewServer(b.record(mux))
	t.Cleanup(b.srv.Close)
	return b
}

func product(id int64, name string, price float64) map[string]any {
	return map[string]any{
		"productId":               id,
		"nameTranslations":        []map[string]string{{"language": "en", "name": name}},
		"measurementSellingPrice": price,
		"heroImageSignedUrl":      "https://img/" + strconv.FormatInt(id, 10) + ".png",
	}
}

// fail makes every call to route return status
func (b *fakeBackend) fail(route string, status int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failures[route] = status
}

// failAfterCalls lets n calls to route succeed and fails the rest with 500
func (b *fakeBackend) failAfterCalls(route string, n int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failAfter[route] = n
}

// gate parks one request until the test releases it with a status; zero lets
// it through to the handler
type gate struct {
	arrived chan struct{}
	release chan int
}

// holdNext parks the next call to route
func (b *fakeBackend) holdNext(route string) *gate {
	g := &gate{arrived: make(chan struct{}), release: make(chan int, 1)}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.gates[route] = g
	return g
}

func (b *fakeBackend) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		route := r.Method + " " + r.URL.Path

		b.mu.Lock()
		b.calls = append(b.calls, route)
		status, failing := b.failures[route]
		if n, limited := b.failAfter[route]; limited {
			if n <= 0 {
				status, failing = http.StatusInternalServerError, true
			} else {
				b.failAfter[route] = n - 1
			}
		}
		g, held := b.gates[route]
		delete(b.gates, route)
		b.mu.Unlock()

		if held {
			close(g.arrived)
			if code := <-g.release; code != 0 {
				status, failing = code, true
			}
		}

		if failing {
			writeJSON(w, status, map[string]any{"message": "backend says no"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (b *fakeBackend) count(route string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := 0
	for _, c := range b.calls {
		if c == route {
			n++
		}
	}
	return n
}

func (b *fakeBackend) refreshCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.refreshed
}

func (b *fakeBackend) placedOrders() []map[string]any {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]map[string]any(nil), b.orders...)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func success(w http.ResponseWriter, results any) {
	writeJSON(w, http.StatusOK, map[string]any{"status": "successful", "results": results})
}

func (b *fakeBackend) ok(w http.ResponseWriter, _ *http.Request) {
	success(w, []any{})
}

func (b *fakeBackend) signIn(w http.ResponseWriter, r *http.Request) {
	var req api.SignInRequest
	_ = json.NewDecoder(r.Body).Decode(&req)
	if req.Password != "Secret123" {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"message": "bad credentials"})
		return
	}
	success(w, []map[string]any{{
		"userId":                           9,
		"firstName":                        "Asha",
		"lastName":                         "Kumar",
		"email":                            req.Email,
		"accessToken":                      "access-token",
		"refreshToken":                     "refresh-token",
		"isPasswordChangedForTheFirstTime": false,
	}})
}

func (b *fakeBackend) refresh(w http.ResponseWriter, _ *http.Request) {
	b.mu.Lock()
	b.refreshed++
	b.mu.Unlock()
	success(w, []map[string]any{{"accessToken": "refreshed-access", "refreshToken": "refreshed-refresh"}})
}

func (b *fakeBackend) homeProducts(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("pageNumber"))
	b.mu.Lock()
	item := b.products[int64(page+1)]
	b.mu.Unlock()
	success(w, []map[string]any{{
		"items":       []any{item},
		"currentPage": page,
		"totalPages":  2,
	}})
}

func (b *fakeBackend) productInfo(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.ParseInt(r.PathValue("id"), 10, 64)
	b.mu.Lock()
	p, ok := b.products[id]
	b.mu.Unlock()
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]any{"message": "no such product"})
		return
	}
	success(w, []any{p})
}

func (b *fakeBackend) addCardItem(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.ParseInt(r.PathValue("id"), 10, 64)
	b.mu.Lock()
	b.nextCardID++
	item := map[string]any{"cardItemId": b.nextCardID, "productId": id, "quantity": 1, "measurementSellingPrice": 60}
	b.cart = append(b.cart, item)
	b.mu.Unlock()
	success(w, []any{item})
}

func (b *fakeBackend) myCart(w http.ResponseWriter, _ *http.Request) {
	b.mu.Lock()
	items := append([]map[string]any(nil), b.cart...)
	b.mu.Unlock()
	success(w, items)
}

func (b *fakeBackend) myFavourites(w http.ResponseWriter, _ *http.Request) {
	success(w, []map[string]any{{
		"id":                      2,
		"productNameResponseDtos": []map[string]string{{"language": "en", "name": "Onion"}},
		"heroImageSignedUrl":      "https://img/2.png",
	}})
}

func (b *fakeBackend) createOrder(w http.ResponseWriter, r *http.Request) {
	var body map[string]any
	_ = json.NewDecoder(r.Body).Decode(&body)
	b.mu.Lock()
	b.orders = append(b.orders, body)
	b.mu.Unlock()
	success(w, []map[string]any{{"salesOrderId": 555, "status": "ORDER_PENDING"}})
}

func (b *fakeBackend) createPayment(w http.ResponseWriter, r *http.Request) {
	var body struct {
		OrderID int64 `json:"orderId"`
	}
	_ = json.NewDecoder(r.Body).Decode(&body)
	success(w, []map[string]any{{"id": 1, "orderId": body.OrderID, "status": "PENDING"}})
}

func (b *fakeBackend) createRecurring(w http.ResponseWriter, r *http.Request) {
	var body api.RecurringOrderRequest
	_ = json.NewDecoder(r.Body).Decode(&body)
	success(w, []map[string]any{{"id": 3, "name": body.Name, "note": body.Note}})
}

func testConfig() *config.Config {
	return &config.Config{
		API:     config.APIConfig{PageSize: 10, DefaultRoleID: 2},
		Session: config.SessionConfig{TokenRefreshSkew: time.Minute},
	}
}

func newTestService(t *testing.T, backend *fakeBackend) *Service {
	t.Helper()
	log := logger.Discard()

	client, err := api.NewClient(api.Options{BaseURL: backend.srv.URL, Timeout: 2 * time.Second, Logger: log})
	require.NoError(t, err)

	cfg := testConfig()
	registry := store.NewRegistry(storage.NewMemory(), "test", store.DefaultDefaults, log)
	return NewService(client, registry, validation.New(), auth.NewTokenInspector(cfg.Session.TokenRefreshSkew), cfg, log)
}
