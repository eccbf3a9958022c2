package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go-inventory-admin/internal/auth"
	"go-inventory-admin/internal/database"
	"go-inventory-admin/internal/models"
	"go-inventory-admin/internal/server"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type testServer struct {
	router   *gin.Engine
	db       *gorm.DB
	sessions *auth.SessionStore
	timeout  time.Duration
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if err := database.Seed(db); err != nil {
		t.Fatalf("seed: %v", err)
	}

	ts := &testServer{db: db, timeout: 15 * time.Minute}
	ts.sessions = auth.NewSessionStore(func() time.Duration { return ts.timeout }, nil)
	ts.router = server.NewRouter(db, ts.sessions, []string{"http://localhost:5173"})
	return ts
}

func (ts *testServer) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)
	return w
}

func (ts *testServer) login(t *testing.T) string {
	t.Helper()
	return ts.loginAs(t, "admin@np.com", "admin123")
}

func (ts *testServer) loginAs(t *testing.T, email, password string) string {
	t.Helper()
	w := ts.do(t, http.MethodPost, "/api/auth/login", "", gin.H{
		"email": email, "password": password,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("login as %s: status %d, body %s", email, w.Code, w.Body.String())
	}
	var resp struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode login response: %v", err)
	}
	if resp.Token == "" {
		t.Fatal("login returned an empty token")
	}
	return resp.Token
}

func decode(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), out); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
}

func TestLoginSuccess(t *testing.T) {
	ts := newTestServer(t)
	w := ts.do(t, http.MethodPost, "/api/auth/login", "", gin.H{
		"email": "admin@np.com", "password": "admin123",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	var resp struct {
		Token string `json:"token"`
		User  struct {
			Name string `json:"name"`
			Role string `json:"role"`
		} `json:"user"`
	}
	decode(t, w, &resp)
	if resp.User.Name != "Admin User" || resp.User.Role != models.RoleSuperAdmin {
		t.Errorf("user = %+v", resp.User)
	}
	if ts.sessions.Len() != 1 {
		t.Errorf("sessions = %d, want 1", ts.sessions.Len())
	}

	var entry models.ActivityLog
	if err := ts.db.First(&entry).Error; err != nil {
		t.Fatalf("expected a login activity entry: %v", err)
	}
	if entry.Action != "Login" {
		t.Errorf("entry action = %s, want Login", entry.Action)
	}

	var user models.User
	ts.db.Where("email = ?", "admin@np.com").First(&user)
	if user.LastLogin == nil {
		t.Error("last login not recorded")
	}
}

func TestLoginWrongCredentialsLeavesNoTrace(t *testing.T) {
	ts := newTestServer(t)
	for _, body := range []gin.H{
		{"email": "admin@np.com", "password": "wrong"},
		{"email": "nobody@np.com", "password": "admin123"},
	} {
		w := ts.do(t, http.MethodPost, "/api/auth/login", "", body)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("login %v: status = %d, want 401", body["email"], w.Code)
		}
	}
	if ts.sessions.Len() != 0 {
		t.Errorf("sessions = %d, want 0", ts.sessions.Len())
	}
	var logs int64
	ts.db.Model(&models.ActivityLog{}).Count(&logs)
	if logs != 0 {
		t.Errorf("activity entries = %d, want 0", logs)
	}
}

func TestProtectedRoutesRejectAnonymous(t *testing.T) {
	ts := newTestServer(t)
	if w := ts.do(t, http.MethodGet, "/api/products", "", nil); w.Code != http.StatusUnauthorized {
		t.Errorf("no token: status = %d, want 401", w.Code)
	}
	if w := ts.do(t, http.MethodGet, "/api/products", "garbage-token", nil); w.Code != http.StatusUnauthorized {
		t.Errorf("bad token: status = %d, want 401", w.Code)
	}
}

func TestIdleSessionExpires(t *testing.T) {
	ts := newTestServer(t)
	token := ts.login(t)

	if w := ts.do(t, http.MethodGet, "/api/products", token, nil); w.Code != http.StatusOK {
		t.Fatalf("fresh session: status = %d", w.Code)
	}

	// Shrink the inactivity window to nothing; the next request finds
	// the session idle and ends it.
	ts.timeout = 0
	w := ts.do(t, http.MethodGet, "/api/products", token, nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("idle session: status = %d, want 401", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Session expired") {
		t.Errorf("body = %s", w.Body.String())
	}
	if ts.sessions.Len() != 0 {
		t.Errorf("sessions = %d, want 0", ts.sessions.Len())
	}

	// The token is still a valid JWT but its session is gone for good.
	ts.timeout = 15 * time.Minute
	if w := ts.do(t, http.MethodGet, "/api/products", token, nil); w.Code != http.StatusUnauthorized {
		t.Errorf("after expiry: status = %d, want 401", w.Code)
	}
}

func TestLogoutEndsSession(t *testing.T) {
	ts := newTestServer(t)
	token := ts.login(t)

	if w := ts.do(t, http.MethodPost, "/api/auth/logout", token, nil); w.Code != http.StatusOK {
		t.Fatalf("logout: status = %d", w.Code)
	}
	if ts.sessions.Len() != 0 {
		t.Errorf("sessions = %d, want 0", ts.sessions.Len())
	}
	if w := ts.do(t, http.MethodGet, "/api/products", token, nil); w.Code != http.StatusUnauthorized {
		t.Errorf("after logout: status = %d, want 401", w.Code)
	}

	var entry models.ActivityLog
	ts.db.Order("id desc").First(&entry)
	if entry.Action != "Logout" {
		t.Errorf("latest entry = %s, want Logout", entry.Action)
	}
}

func TestMeOmitsPasswordHash(t *testing.T) {
	ts := newTestServer(t)
	token := ts.login(t)

	w := ts.do(t, http.MethodGet, "/api/auth/me", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, "admin@np.com") {
		t.Errorf("body = %s", body)
	}
	if strings.Contains(strings.ToLower(body), "password") {
		t.Errorf("password material leaked: %s", body)
	}
}

func TestProductListAndFilters(t *testing.T) {
	ts := newTestServer(t)
	token := ts.login(t)

	count := func(path string) int {
		w := ts.do(t, http.MethodGet, path, token, nil)
		if w.Code != http.StatusOK {
			t.Fatalf("%s: status = %d", path, w.Code)
		}
		var products []json.RawMessage
		decode(t, w, &products)
		return len(products)
	}

	if n := count("/api/products"); n != 15 {
		t.Errorf("all products = %d, want 15", n)
	}
	if n := count("/api/products?status=out"); n != 1 {
		t.Errorf("out of stock = %d, want 1", n)
	}
	if n := count("/api/products?status=low"); n != 2 {
		t.Errorf("low stock = %d, want 2", n)
	}
	if n := count("/api/products?category=Hardware"); n != 5 {
		t.Errorf("hardware = %d, want 5", n)
	}
	if n := count("/api/products?q=Monitor"); n != 2 {
		t.Errorf("q=Monitor = %d, want 2", n)
	}
}

func TestProductStatusDerived(t *testing.T) {
	ts := newTestServer(t)
	token := ts.login(t)

	// Wireless mouse is seeded with zero stock.
	w := ts.do(t, http.MethodGet, "/api/products/5", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var p struct {
		Stock  int    `json:"stock"`
		Status string `json:"status"`
	}
	decode(t, w, &p)
	if p.Stock != 0 || p.Status != models.StockStatusOut {
		t.Errorf("product 5 = %+v, want stock 0 / %s", p, models.StockStatusOut)
	}
}

func TestProductCreateUpdateDelete(t *testing.T) {
	ts := newTestServer(t)
	token := ts.login(t)

	w := ts.do(t, http.MethodPost, "/api/products", token, gin.H{
		"name":         "Webcam 4K",
		"sku":          "ELEC-0099",
		"category":     "Electronics",
		"price":        7999,
		"costPrice":    5500,
		"stock":        10,
		"reorderLevel": 4,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create: status = %d, body %s", w.Code, w.Body.String())
	}
	var created models.Product
	decode(t, w, &created)
	if created.ID == 0 || !created.Price.Equal(decimal.NewFromInt(7999)) {
		t.Fatalf("created = %+v", created)
	}

	w = ts.do(t, http.MethodPut, fmt.Sprintf("/api/products/%d", created.ID), token, gin.H{
		"price": 6999,
		"stock": 25,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("update: status = %d, body %s", w.Code, w.Body.String())
	}
	var updated struct {
		models.Product
		Status string `json:"status"`
	}
	decode(t, w, &updated)
	if !updated.Price.Equal(decimal.NewFromInt(6999)) || updated.Stock != 25 {
		t.Errorf("updated = price %s stock %d, want 6999/25", updated.Price, updated.Stock)
	}
	if updated.CostPrice.IsZero() {
		t.Error("partial update wiped an untouched field")
	}

	w = ts.do(t, http.MethodDelete, fmt.Sprintf("/api/products/%d", created.ID), token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("delete: status = %d", w.Code)
	}
	if w := ts.do(t, http.MethodGet, fmt.Sprintf("/api/products/%d", created.ID), token, nil); w.Code != http.StatusNotFound {
		t.Errorf("after delete: status = %d, want 404", w.Code)
	}
}

func TestProductCreateValidation(t *testing.T) {
	ts := newTestServer(t)
	token := ts.login(t)

	cases := []gin.H{
		{"name": "No SKU", "category": "Electronics", "price": 10},
		{"name": "", "sku": "X-1", "price": 10},
		{"name": "Bad Price", "sku": "X-2", "price": -5},
		{"name": "Bad Stock", "sku": "X-3", "price": 5, "stock": -1},
		{"name": "Dup SKU", "sku": "ELEC-0001", "price": 5},
	}
	for _, body := range cases {
		if w := ts.do(t, http.MethodPost, "/api/products", token, body); w.Code != http.StatusBadRequest {
			t.Errorf("create %v: status = %d, want 400", body, w.Code)
		}
	}
}

func TestNextSKU(t *testing.T) {
	ts := newTestServer(t)
	token := ts.login(t)

	w := ts.do(t, http.MethodGet, "/api/products/sku?category=Electronics", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var resp struct {
		SKU string `json:"sku"`
	}
	decode(t, w, &resp)
	if resp.SKU != "ELEC-0003" {
		t.Errorf("sku = %s, want ELEC-0003", resp.SKU)
	}

	if w := ts.do(t, http.MethodGet, "/api/products/sku", token, nil); w.Code != http.StatusBadRequest {
		t.Errorf("missing category: status = %d, want 400", w.Code)
	}
}

func TestProductExportCSV(t *testing.T) {
	ts := newTestServer(t)
	token := ts.login(t)

	w := ts.do(t, http.MethodGet, "/api/products/export", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Errorf("content type = %s", ct)
	}
	lines := strings.Split(strings.TrimSpace(w.Body.String()), "\n")
	if len(lines) != 16 {
		t.Errorf("got %d lines, want header + 15 rows", len(lines))
	}
	if !strings.HasPrefix(lines[0], "Name,SKU,Category") {
		t.Errorf("header = %s", lines[0])
	}
	if !strings.Contains(w.Body.String(), "ELEC-0001") {
		t.Error("rows missing seeded product")
	}
}

func TestInvoiceCreateOverHTTP(t *testing.T) {
	ts := newTestServer(t)
	token := ts.login(t)

	w := ts.do(t, http.MethodPost, "/api/invoices", token, gin.H{
		"items":        []gin.H{{"productId": 3, "qty": 2}},
		"customerName": "Walk-in Customer",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	var inv models.Invoice
	decode(t, w, &inv)
	if !inv.Subtotal.Equal(decimal.NewFromInt(598)) {
		t.Errorf("subtotal = %s, want 598", inv.Subtotal)
	}
	if !inv.FinalAmount.Equal(decimal.RequireFromString("705.64")) {
		t.Errorf("final = %s, want 705.64", inv.FinalAmount)
	}
	wantNo := fmt.Sprintf("INV-%d-003", time.Now().Year())
	if inv.InvoiceNo != wantNo {
		t.Errorf("invoice no = %s, want %s", inv.InvoiceNo, wantNo)
	}

	var p models.Product
	ts.db.First(&p, 3)
	if p.Stock != 43 {
		t.Errorf("stock = %d, want 43", p.Stock)
	}

	var m models.StockMovement
	if err := ts.db.Where("product_id = ?", 3).First(&m).Error; err != nil {
		t.Fatalf("expected a movement: %v", err)
	}
	if m.Reason != "invoice sale" {
		t.Errorf("movement reason = %q", m.Reason)
	}
}

func TestInvoiceCreateRejectsEmpty(t *testing.T) {
	ts := newTestServer(t)
	token := ts.login(t)

	w := ts.do(t, http.MethodPost, "/api/invoices", token, gin.H{
		"items":        []gin.H{},
		"customerName": "Nobody",
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("empty items: status = %d, want 400", w.Code)
	}

	w = ts.do(t, http.MethodPost, "/api/invoices", token, gin.H{
		"items":        []gin.H{{"productId": 999, "qty": 1}},
		"customerName": "Nobody",
	})
	if w.Code != http.StatusNotFound {
		t.Errorf("unknown product: status = %d, want 404", w.Code)
	}
}

func TestInvoicePDFDownload(t *testing.T) {
	ts := newTestServer(t)
	token := ts.login(t)

	w := ts.do(t, http.MethodGet, "/api/invoices/1/pdf", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Errorf("content type = %s", ct)
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, "INV-2025-001.pdf") {
		t.Errorf("content disposition = %s", cd)
	}
	if !bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF")) {
		t.Error("body is not a PDF document")
	}
}

func TestStockAdjustOverHTTP(t *testing.T) {
	ts := newTestServer(t)
	token := ts.login(t)

	w := ts.do(t, http.MethodPost, "/api/stock/adjust", token, gin.H{
		"productId": 5, "quantity": 10, "action": "add", "reason": "restock",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("add: status = %d, body %s", w.Code, w.Body.String())
	}
	var m models.StockMovement
	decode(t, w, &m)
	if m.PreviousStock != 0 || m.NewStock != 10 {
		t.Errorf("movement = %d -> %d, want 0 -> 10", m.PreviousStock, m.NewStock)
	}

	w = ts.do(t, http.MethodPost, "/api/stock/adjust", token, gin.H{
		"productId": 5, "quantity": 25, "action": "reduce", "reason": "write-off",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("reduce: status = %d", w.Code)
	}
	decode(t, w, &m)
	if m.NewStock != 0 {
		t.Errorf("clamped stock = %d, want 0", m.NewStock)
	}

	if w := ts.do(t, http.MethodPost, "/api/stock/adjust", token, gin.H{
		"productId": 5, "quantity": 1, "action": "teleport",
	}); w.Code != http.StatusBadRequest {
		t.Errorf("bad action: status = %d, want 400", w.Code)
	}

	w = ts.do(t, http.MethodGet, "/api/stock/movements?productId=5", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("movements: status = %d", w.Code)
	}
	var movements []models.StockMovement
	decode(t, w, &movements)
	if len(movements) != 2 {
		t.Fatalf("got %d movements, want 2", len(movements))
	}
	// Newest first.
	if movements[0].Action != models.StockActionReduced {
		t.Errorf("first movement = %s, want %s", movements[0].Action, models.StockActionReduced)
	}
}

func TestUserRoutesRequireSuperAdmin(t *testing.T) {
	ts := newTestServer(t)

	hash, err := bcrypt.GenerateFromPassword([]byte("staff123"), bcrypt.DefaultCost)
	if err != nil {
		t.Fatal(err)
	}
	staff := models.User{Name: "Staff", Email: "staff@np.com", PasswordHash: string(hash), Role: models.RoleAdmin}
	if err := ts.db.Create(&staff).Error; err != nil {
		t.Fatal(err)
	}

	staffToken := ts.loginAs(t, "staff@np.com", "staff123")
	if w := ts.do(t, http.MethodGet, "/api/users", staffToken, nil); w.Code != http.StatusForbidden {
		t.Errorf("staff list users: status = %d, want 403", w.Code)
	}
	if w := ts.do(t, http.MethodPost, "/api/system/reset", staffToken, nil); w.Code != http.StatusForbidden {
		t.Errorf("staff reset: status = %d, want 403", w.Code)
	}
	// Staff still reach the regular surface.
	if w := ts.do(t, http.MethodGet, "/api/products", staffToken, nil); w.Code != http.StatusOK {
		t.Errorf("staff list products: status = %d, want 200", w.Code)
	}

	adminToken := ts.login(t)
	w := ts.do(t, http.MethodGet, "/api/users", adminToken, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("admin list users: status = %d", w.Code)
	}
	var users []models.User
	decode(t, w, &users)
	if len(users) != 2 {
		t.Errorf("got %d users, want 2", len(users))
	}
}

func TestCreateUser(t *testing.T) {
	ts := newTestServer(t)
	token := ts.login(t)

	w := ts.do(t, http.MethodPost, "/api/users", token, gin.H{
		"name": "New Operator", "email": "op@np.com", "password": "op12345",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	var created models.User
	decode(t, w, &created)
	if created.Role != models.RoleAdmin {
		t.Errorf("role = %s, want default %s", created.Role, models.RoleAdmin)
	}

	// The new account can log in right away.
	ts.loginAs(t, "op@np.com", "op12345")

	if w := ts.do(t, http.MethodPost, "/api/users", token, gin.H{
		"name": "Dup", "email": "op@np.com", "password": "x1234567",
	}); w.Code != http.StatusBadRequest {
		t.Errorf("duplicate email: status = %d, want 400", w.Code)
	}
}

func TestSettingsRoundTrip(t *testing.T) {
	ts := newTestServer(t)
	token := ts.login(t)

	w := ts.do(t, http.MethodGet, "/api/settings", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get: status = %d", w.Code)
	}
	var settings models.Settings
	decode(t, w, &settings)
	if settings.GSTRate != 18 || settings.SessionTimeoutMinutes != 15 {
		t.Fatalf("seed settings = %+v", settings)
	}

	settings.GSTRate = 12
	settings.SessionTimeoutMinutes = 30
	w = ts.do(t, http.MethodPut, "/api/settings", token, settings)
	if w.Code != http.StatusOK {
		t.Fatalf("put: status = %d, body %s", w.Code, w.Body.String())
	}

	got := database.GetSettings(ts.db)
	if got.GSTRate != 12 || got.SessionTimeoutMinutes != 30 {
		t.Errorf("persisted settings = %+v", got)
	}
	if got.SessionTimeout() != 30*time.Minute {
		t.Errorf("timeout = %s, want 30m", got.SessionTimeout())
	}

	settings.GSTRate = 150
	if w := ts.do(t, http.MethodPut, "/api/settings", token, settings); w.Code != http.StatusBadRequest {
		t.Errorf("gst 150: status = %d, want 400", w.Code)
	}
}

func TestDashboardReport(t *testing.T) {
	ts := newTestServer(t)
	token := ts.login(t)

	w := ts.do(t, http.MethodGet, "/api/reports/dashboard", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var s struct {
		TotalProducts int64 `json:"totalProducts"`
		TotalInvoices int64 `json:"totalInvoices"`
		LowStockCount int   `json:"lowStockCount"`
	}
	decode(t, w, &s)
	if s.TotalProducts != 15 || s.TotalInvoices != 2 {
		t.Errorf("summary = %+v", s)
	}
	// Dell monitor, RTX 4070 and the out-of-stock mouse sit at or
	// below their reorder levels.
	if s.LowStockCount != 3 {
		t.Errorf("low stock = %d, want 3", s.LowStockCount)
	}
}

func TestStockReportGroupsByCategory(t *testing.T) {
	ts := newTestServer(t)
	token := ts.login(t)

	w := ts.do(t, http.MethodGet, "/api/reports/stock", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var report struct {
		InStock    int `json:"inStock"`
		LowStock   int `json:"lowStock"`
		OutOfStock int `json:"outOfStock"`
		Categories []struct {
			CategoryName string `json:"categoryName"`
		} `json:"categories"`
	}
	decode(t, w, &report)
	if report.InStock != 12 || report.LowStock != 2 || report.OutOfStock != 1 {
		t.Errorf("distribution = %+v", report)
	}
	if len(report.Categories) != 5 {
		t.Fatalf("got %d categories, want 5", len(report.Categories))
	}
	// Alphabetical ordering keeps the report stable.
	if report.Categories[0].CategoryName != "Accessories" {
		t.Errorf("first category = %s, want Accessories", report.Categories[0].CategoryName)
	}
}

func TestSystemReset(t *testing.T) {
	ts := newTestServer(t)
	token := ts.login(t)

	w := ts.do(t, http.MethodPost, "/api/categories", token, gin.H{"name": "Scratch"})
	if w.Code != http.StatusCreated {
		t.Fatalf("create category: status = %d", w.Code)
	}

	if w := ts.do(t, http.MethodPost, "/api/system/reset", token, nil); w.Code != http.StatusOK {
		t.Fatalf("reset: status = %d, body %s", w.Code, w.Body.String())
	}

	var categories, products, logs int64
	ts.db.Model(&models.Category{}).Count(&categories)
	ts.db.Model(&models.Product{}).Count(&products)
	ts.db.Model(&models.ActivityLog{}).Count(&logs)
	if categories != 5 || products != 15 {
		t.Errorf("after reset: %d categories, %d products, want 5/15", categories, products)
	}
	if logs != 0 {
		t.Errorf("after reset: %d activity entries, want 0", logs)
	}
}

func TestBackupContainsEveryCollection(t *testing.T) {
	ts := newTestServer(t)
	token := ts.login(t)

	w := ts.do(t, http.MethodGet, "/api/backup", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var dump map[string]json.RawMessage
	decode(t, w, &dump)
	for _, key := range []string{"products", "categories", "invoices", "catalogues", "users", "logs", "stockMovements", "settings"} {
		if _, ok := dump[key]; !ok {
			t.Errorf("backup missing %q", key)
		}
	}
}

func TestCatalogueCreateAndOrder(t *testing.T) {
	ts := newTestServer(t)
	token := ts.login(t)

	w := ts.do(t, http.MethodPost, "/api/catalogues", token, gin.H{
		"name":     "Winter Promo",
		"products": []uint{3, 1, 8},
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create: status = %d, body %s", w.Code, w.Body.String())
	}
	var created models.Catalogue
	decode(t, w, &created)
	if len(created.Items) != 3 {
		t.Fatalf("got %d items, want 3", len(created.Items))
	}
	// Item order follows the request, not product IDs.
	if created.Items[0].ProductID != 3 || created.Items[0].Position != 0 {
		t.Errorf("first item = %+v", created.Items[0])
	}
	if created.CreatedBy != "Admin User" {
		t.Errorf("created by = %s", created.CreatedBy)
	}

	if w := ts.do(t, http.MethodPost, "/api/catalogues", token, gin.H{
		"name":     "Ghost Promo",
		"products": []uint{999},
	}); w.Code != http.StatusBadRequest {
		t.Errorf("unknown product: status = %d, want 400", w.Code)
	}

	w = ts.do(t, http.MethodDelete, fmt.Sprintf("/api/catalogues/%d", created.ID), token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("delete: status = %d", w.Code)
	}
	var items int64
	ts.db.Model(&models.CatalogueItem{}).Where("catalogue_id = ?", created.ID).Count(&items)
	if items != 0 {
		t.Errorf("orphaned items = %d, want 0", items)
	}
}
