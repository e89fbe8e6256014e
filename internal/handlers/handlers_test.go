package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/sehatsetu/sehatsetu-api/internal/ai"
	"github.com/sehatsetu/sehatsetu-api/internal/audit"
	"github.com/sehatsetu/sehatsetu-api/internal/cache"
	"github.com/sehatsetu/sehatsetu-api/internal/domain"
	"github.com/sehatsetu/sehatsetu-api/internal/domain/stock"
	"github.com/sehatsetu/sehatsetu-api/internal/middleware"
	"github.com/sehatsetu/sehatsetu-api/internal/models"
	"github.com/sehatsetu/sehatsetu-api/internal/storage"
	ucStock "github.com/sehatsetu/sehatsetu-api/internal/usecase/stock"
)

type nopSink struct{}

func (nopSink) Log(context.Context, audit.Event) error { return nil }

func newDispatcher(t *testing.T) *audit.Dispatcher {
	t.Helper()
	d := audit.NewDispatcher(nopSink{}, zerolog.Nop())
	t.Cleanup(d.Close)
	return d
}

// asUser stands in for the auth chain.
func asUser(userID, pharmacyID uint, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.ContextUserID, userID)
		c.Set(middleware.ContextUserRole, role)
		if pharmacyID != 0 {
			c.Set(middleware.ContextPharmacyID, pharmacyID)
		}
		c.Next()
	}
}

func multipartBody(t *testing.T, fields map[string]string, fileName string, file []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			t.Fatalf("write field: %v", err)
		}
	}
	if file != nil {
		fw, err := w.CreateFormFile("file", fileName)
		if err != nil {
			t.Fatalf("create file: %v", err)
		}
		if _, err := fw.Write(file); err != nil {
			t.Fatalf("write file: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return &buf, w.FormDataContentType()
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, x%h, color.RGBA{G: 180, A: 255})
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Code string `json:"error_code"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode error body %q: %v", rec.Body.String(), err)
	}
	return body.Code
}

// ====== AI ======

type fakeAssistant struct {
	reply     string
	lines     []models.MedicineLine
	err       error
	gotMsg    string
	gotAttach *ai.Attachment
}

func (f *fakeAssistant) Chat(_ context.Context, message string, att *ai.Attachment) (string, error) {
	f.gotMsg = message
	f.gotAttach = att
	return f.reply, f.err
}

func (f *fakeAssistant) ExtractMedicines(_ context.Context, att ai.Attachment) ([]models.MedicineLine, error) {
	f.gotAttach = &att
	return f.lines, f.err
}

func aiRouter(t *testing.T, assistant Assistant) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewAIHandler(assistant, newDispatcher(t), 1<<20, zerolog.Nop())

	r := gin.New()
	r.POST("/ai/chat", asUser(1, 0, models.RoleDoctor), h.Chat)
	r.POST("/ai/digitize", asUser(2, 20, models.RolePharmacy), h.Digitize)
	return r
}

func TestAIChat(t *testing.T) {
	assistant := &fakeAssistant{reply: "Consider a CBC."}
	r := aiRouter(t, assistant)

	body, ct := multipartBody(t, map[string]string{"message": "  fever for 3 days "}, "", nil)
	req := httptest.NewRequest(http.MethodPost, "/ai/chat", body)
	req.Header.Set("Content-Type", ct)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var out struct {
		Reply string `json:"reply"`
	}
	_ = json.Unmarshal(rec.Body.Bytes(), &out)
	if out.Reply != "Consider a CBC." {
		t.Errorf("unexpected reply %q", out.Reply)
	}
	if assistant.gotMsg != "fever for 3 days" || assistant.gotAttach != nil {
		t.Errorf("assistant got message %q attachment %v", assistant.gotMsg, assistant.gotAttach)
	}
}

func TestAIChatRejectsEmptyMessage(t *testing.T) {
	r := aiRouter(t, &fakeAssistant{})

	body, ct := multipartBody(t, map[string]string{"message": "   "}, "", nil)
	req := httptest.NewRequest(http.MethodPost, "/ai/chat", body)
	req.Header.Set("Content-Type", ct)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest || errorCode(t, rec) != "empty_message" {
		t.Fatalf("expected empty_message, got %d %s", rec.Code, rec.Body.String())
	}
}

func TestAIDigitize(t *testing.T) {
	cases := []struct {
		name     string
		file     []byte
		err      error
		wantCode int
		wantErr  string
	}{
		{"extracted", pngBytes(t, 4, 4), nil, http.StatusOK, ""},
		{"missing file", nil, nil, http.StatusBadRequest, "missing_file"},
		{"text file", []byte("just some notes"), nil, http.StatusUnsupportedMediaType, "unsupported_file_type"},
		{"malformed", pngBytes(t, 4, 4), ai.ErrMalformed, http.StatusUnprocessableEntity, "extraction_failed"},
		{"unavailable", pngBytes(t, 4, 4), ai.ErrUnavailable, http.StatusBadGateway, "ai_unavailable"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assistant := &fakeAssistant{
				lines: []models.MedicineLine{{Name: "Paracetamol", Quantity: 2}},
				err:   tc.err,
			}
			r := aiRouter(t, assistant)

			body, ct := multipartBody(t, nil, "rx.png", tc.file)
			req := httptest.NewRequest(http.MethodPost, "/ai/digitize", body)
			req.Header.Set("Content-Type", ct)
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)

			if rec.Code != tc.wantCode {
				t.Fatalf("expected %d, got %d: %s", tc.wantCode, rec.Code, rec.Body.String())
			}
			if tc.wantErr != "" {
				if got := errorCode(t, rec); got != tc.wantErr {
					t.Errorf("expected %s, got %s", tc.wantErr, got)
				}
				return
			}

			var lines []models.MedicineLine
			if err := json.Unmarshal(rec.Body.Bytes(), &lines); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if len(lines) != 1 || lines[0].Name != "Paracetamol" {
				t.Errorf("unexpected lines %+v", lines)
			}
			if assistant.gotAttach == nil || assistant.gotAttach.MimeType != "image/png" {
				t.Errorf("expected sniffed image/png attachment, got %+v", assistant.gotAttach)
			}
		})
	}
}

// ====== UPLOADS ======

type fakeStore struct {
	err    error
	prefix string
	ct     string
	body   []byte
}

func (f *fakeStore) Put(_ context.Context, prefix, ext, contentType string, body []byte) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.prefix, f.ct, f.body = prefix, contentType, body
	return "https://cdn.example/" + prefix + "/pic." + ext, nil
}

func TestProfilePictureUpload(t *testing.T) {
	gin.SetMode(gin.TestMode)

	send := func(store storage.ObjectStore, file []byte) *httptest.ResponseRecorder {
		h := NewUploadHandler(store, 1<<20, zerolog.Nop())
		r := gin.New()
		r.POST("/upload", asUser(1, 0, models.RoleDoctor), h.ProfilePicture)

		body, ct := multipartBody(t, nil, "me.png", file)
		req := httptest.NewRequest(http.MethodPost, "/upload", body)
		req.Header.Set("Content-Type", ct)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		return rec
	}

	store := &fakeStore{}
	rec := send(store, pngBytes(t, 64, 64))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "secure_url") {
		t.Errorf("missing secure_url in %s", rec.Body.String())
	}
	if store.prefix != "profile-pictures" || store.ct != "image/webp" {
		t.Errorf("unexpected put: prefix=%s content-type=%s", store.prefix, store.ct)
	}
	if len(store.body) < 12 || string(store.body[8:12]) != "WEBP" {
		t.Error("stored body is not WebP")
	}

	rec = send(storage.Disabled{}, pngBytes(t, 8, 8))
	if rec.Code != http.StatusServiceUnavailable || errorCode(t, rec) != "storage_unavailable" {
		t.Errorf("expected storage_unavailable, got %d %s", rec.Code, rec.Body.String())
	}

	rec = send(&fakeStore{}, []byte("%PDF-1.4 not an image"))
	if rec.Code != http.StatusUnsupportedMediaType {
		t.Errorf("expected 415 for a PDF avatar, got %d", rec.Code)
	}
}

// ====== HEALTH ======

type pingerFunc func(context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestHealthCheck(t *testing.T) {
	gin.SetMode(gin.TestMode)

	ok := pingerFunc(func(context.Context) error { return nil })
	down := pingerFunc(func(context.Context) error { return errors.New("connection refused") })

	cases := []struct {
		name       string
		db, cache  Pinger
		wantStatus int
		wantState  string
	}{
		{"healthy", ok, ok, http.StatusOK, "ok"},
		{"cache down", ok, down, http.StatusServiceUnavailable, "degraded"},
		{"db down", down, ok, http.StatusServiceUnavailable, "degraded"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := gin.New()
			r.GET("/health", NewHealthHandler(tc.db, tc.cache).Check)

			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

			if rec.Code != tc.wantStatus {
				t.Fatalf("expected %d, got %d", tc.wantStatus, rec.Code)
			}
			var body struct {
				Status string `json:"status"`
			}
			_ = json.Unmarshal(rec.Body.Bytes(), &body)
			if body.Status != tc.wantState {
				t.Errorf("expected %s, got %s", tc.wantState, body.Status)
			}
		})
	}
}

// ====== OFFLINE ORDER ======

type memoryStock struct {
	items map[uint]*models.StockItem
}

func (m *memoryStock) List(_ context.Context, pharmacyID uint) ([]models.StockItem, error) {
	var out []models.StockItem
	for _, it := range m.items {
		if it.PharmacyID == pharmacyID {
			out = append(out, *it)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memoryStock) Create(context.Context, *models.StockItem) error { return nil }
func (m *memoryStock) Delete(context.Context, uint, uint) error { return nil }

func (m *memoryStock) Modify(
	_ context.Context,
	pharmacyID uint,
	itemID uint,
	fn func(*models.StockItem) ([]string, error),
) (*models.StockItem, error) {
	it, ok := m.items[itemID]
	if !ok || it.PharmacyID != pharmacyID {
		return nil, domain.ErrNotFound
	}
	cp := *it
	if _, err := fn(&cp); err != nil {
		return nil, err
	}
	*it = cp
	return &cp, nil
}

func (m *memoryStock) CountSummary(context.Context, uint) (int64, int64, error) {
	return int64(len(m.items)), 0, nil
}

func (m *memoryStock) ProcessOfflineOrder(
	ctx context.Context,
	pharmacyID uint,
	lines []models.MedicineLine,
) (*models.OfflineOrder, []stock.LineResult, error) {
	current, _ := m.List(ctx, pharmacyID)
	results, touched := stock.Reconcile(lines, current)
	for _, it := range touched {
		m.items[it.ID].Quantity = it.Quantity
	}
	order := stock.OrderFromResults(pharmacyID, results)
	order.ID = 1
	return order, results, nil
}

func (m *memoryStock) ListOrders(context.Context, uint, int) ([]models.OfflineOrder, error) {
	return nil, nil
}

func TestProcessOfflineOrder(t *testing.T) {
	gin.SetMode(gin.TestMode)

	repo := &memoryStock{items: map[uint]*models.StockItem{
		1: {ID: 1, PharmacyID: 20, MedicineName: "Paracetamol 500mg", NameKey: "paracetamol 500mg", Quantity: 10},
		2: {ID: 2, PharmacyID: 20, MedicineName: "Amoxicillin", NameKey: "amoxicillin", Quantity: 1},
	}}
	dispatcher := newDispatcher(t)

	h := NewPharmacyHandler(PharmacyUseCases{
		OfflineOrder: ucStock.NewProcessOfflineOrder(repo, cache.NewMemory(), dispatcher),
	}, zerolog.Nop())

	r := gin.New()
	r.POST("/orders", asUser(2, 20, models.RolePharmacy), h.ProcessOfflineOrder)

	post := func(payload string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		return rec
	}

	rec := post(`{"medicines":[
		{"name":" paracetamol 500MG ","quantity":4},
		{"name":"Amoxicillin","quantity":3},
		{"name":"Cetirizine","quantity":1}
	]}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var summary stock.Summary
	if err := json.Unmarshal(rec.Body.Bytes(), &summary); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if summary.SoldCount != 1 || summary.UnavailableCount != 2 {
		t.Fatalf("unexpected counts %+v", summary)
	}
	if summary.Details[1].Status != stock.LineOutOfStock || summary.Details[2].Status != stock.LineNotFound {
		t.Errorf("unexpected details %+v", summary.Details)
	}
	if repo.items[1].Quantity != 6 {
		t.Errorf("expected paracetamol at 6, got %d", repo.items[1].Quantity)
	}
	if repo.items[2].Quantity != 1 {
		t.Errorf("out-of-stock line must not deduct, got %d", repo.items[2].Quantity)
	}

	rec = post(`{"medicines":[{"name":"   ","quantity":2}]}`)
	if rec.Code != http.StatusBadRequest || errorCode(t, rec) != "no_medicines" {
		t.Errorf("expected no_medicines, got %d %s", rec.Code, rec.Body.String())
	}
}

// ====== AUDIT LOGS ======

type memoryAuditLogs struct {
	logs    []models.AuditLog
	lastFor uint
	last    audit.Filter
}

func (m *memoryAuditLogs) List(_ context.Context, actorID uint, f audit.Filter) ([]models.AuditLog, int64, error) {
	m.lastFor, m.last = actorID, f

	var mine []models.AuditLog
	for _, l := range m.logs {
		if l.ActorID == actorID && (f.Action == "" || l.Action == f.Action) {
			mine = append(mine, l)
		}
	}

	start := (f.Page - 1) * f.Limit
	if start > len(mine) {
		start = len(mine)
	}
	end := min(start+f.Limit, len(mine))
	return mine[start:end], int64(len(mine)), nil
}

func TestAuditLogsArePagedAndScopedToCaller(t *testing.T) {
	gin.SetMode(gin.TestMode)
	reader := &memoryAuditLogs{logs: []models.AuditLog{
		{ID: 1, ActorID: 7, Action: "stock_added"},
		{ID: 2, ActorID: 8, Action: "stock_added"},
		{ID: 3, ActorID: 7, Action: "stock_added"},
		{ID: 4, ActorID: 7, Action: "stock_deleted"},
		{ID: 5, ActorID: 7, Action: "stock_added"},
	}}

	r := gin.New()
	r.GET("/api/me/audit-logs", asUser(7, 0, models.RolePharmacy), NewAuditLogsHandler(reader, zerolog.Nop()).List)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/me/audit-logs?action=stock_added&page=2&limit=2", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if reader.lastFor != 7 {
		t.Fatalf("expected query scoped to caller 7, got %d", reader.lastFor)
	}

	var body struct {
		Data  []models.AuditLog `json:"data"`
		Page  int               `json:"page"`
		Limit int               `json:"limit"`
		Total int64             `json:"total"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Page != 2 || body.Limit != 2 || body.Total != 3 {
		t.Fatalf("unexpected paging %+v", body)
	}
	if len(body.Data) != 1 || body.Data[0].ID != 5 {
		t.Fatalf("expected only log 5 on page 2, got %+v", body.Data)
	}
	for _, l := range body.Data {
		if l.ActorID != 7 {
			t.Fatalf("leaked log of actor %d", l.ActorID)
		}
	}
}

func TestAuditLogsClampPaging(t *testing.T) {
	gin.SetMode(gin.TestMode)
	reader := &memoryAuditLogs{}

	r := gin.New()
	r.GET("/api/me/audit-logs", asUser(7, 0, models.RoleDoctor), NewAuditLogsHandler(reader, zerolog.Nop()).List)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/me/audit-logs?page=-3&limit=500", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if reader.last.Page != 1 || reader.last.Limit != 50 {
		t.Fatalf("expected page 1 limit 50, got %+v", reader.last)
	}
	if !strings.Contains(rec.Body.String(), `"data":[]`) {
		t.Fatalf("expected empty data array, got %s", rec.Body.String())
	}
}
