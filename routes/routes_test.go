package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"petcare/handlers"
	"petcare/models"
	"petcare/services/access"
	"petcare/services/booking"
	"petcare/utils"

	accountRepo "petcare/database/repository/account"
	bookingRepo "petcare/database/repository/booking"
	profileRepo "petcare/database/repository/profile"

	"github.com/gin-gonic/gin"
)

const secret = "routes-test-secret"

type server struct {
	router   *gin.Engine
	accounts *accountRepo.MemoryAccountRepo
	profiles *profileRepo.MemoryProfileRepo
	bookings *bookingRepo.MemoryBookingRepo
	events   *eventLog
}

type eventLog struct{ events []models.BookingEvent }

func (e *eventLog) Publish(_ context.Context, event models.BookingEvent) error {
	e.events = append(e.events, event)
	return nil
}

func newServer(t *testing.T) *server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	s := &server{
		accounts: accountRepo.NewMemoryAccountRepo(),
		profiles: profileRepo.NewMemoryProfileRepo(),
		bookings: bookingRepo.NewMemoryBookingRepo(),
		events:   &eventLog{},
	}
	pipeline := access.NewPipeline(access.NewJWTVerifier(secret), s.accounts, access.DefaultProfileQueries(s.profiles))
	lifecycle := booking.NewLifecycle(s.bookings, s.events)

	hb := handlers.NewHandlerBundle(handlers.NewBookingHandler(lifecycle), nil)
	s.router = gin.New()
	RegisterRoutes(s.router, hb, pipeline)
	return s
}

func (s *server) user(t *testing.T, id string, role models.Role, status models.AccountStatus) string {
	t.Helper()
	s.accounts.Put(models.Account{ID: id, Email: id + "@example.com", Role: role, Status: status})
	token, err := utils.GenerateToken([]byte(secret), id, id+"@example.com", string(role), time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	return token
}

func (s *server) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decodeBooking(t *testing.T, w *httptest.ResponseRecorder) models.Booking {
	t.Helper()
	var b models.Booking
	if err := json.Unmarshal(w.Body.Bytes(), &b); err != nil {
		t.Fatalf("decode booking: %v (%s)", err, w.Body.String())
	}
	return b
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) utils.ErrorResponse {
	t.Helper()
	var e utils.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &e); err != nil {
		t.Fatalf("decode error: %v (%s)", err, w.Body.String())
	}
	return e
}

func TestBookingLifecycleOverHTTP(t *testing.T) {
	s := newServer(t)
	ownerToken := s.user(t, "owner-1", models.RolePetOwner, models.AccountActive)
	sitterToken := s.user(t, "sitter-1", models.RolePetSitter, models.AccountActive)
	s.profiles.Put(models.BusinessProfile{ID: "p-1", OwnerAccountID: "sitter-1", RoleType: models.RolePetSitter, IsVerified: true, Status: models.ProfileActive})
	if err := s.bookings.Create(context.Background(), &models.Booking{ID: "b-1", ClientID: "owner-1", ProviderID: "sitter-1", GrandTotal: 30}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	w := s.do(t, http.MethodPost, "/api/bookings/b-1/confirm", sitterToken, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("confirm: %d %s", w.Code, w.Body.String())
	}
	if b := decodeBooking(t, w); b.Status != models.BookingConfirmed || b.ConfirmedAt == nil {
		t.Fatalf("confirm snapshot: %+v", b)
	}

	if w := s.do(t, http.MethodPost, "/api/bookings/b-1/start", sitterToken, nil); w.Code != http.StatusOK {
		t.Fatalf("start: %d %s", w.Code, w.Body.String())
	}

	w = s.do(t, http.MethodPost, "/api/bookings/b-1/request-completion", sitterToken, handlers.CompletionRequest{Notes: "done"})
	if w.Code != http.StatusBadRequest || decodeError(t, w).Error != "evidence_required" {
		t.Fatalf("completion without attachments: %d %s", w.Code, w.Body.String())
	}

	w = s.do(t, http.MethodPost, "/api/bookings/b-1/request-completion", sitterToken,
		handlers.CompletionRequest{Notes: "done", Attachments: []string{"https://cdn.example.com/1.jpg"}})
	if w.Code != http.StatusOK {
		t.Fatalf("request completion: %d %s", w.Code, w.Body.String())
	}

	w = s.do(t, http.MethodPost, "/api/bookings/b-1/complete", ownerToken, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("complete: %d %s", w.Code, w.Body.String())
	}
	if b := decodeBooking(t, w); b.Status != models.BookingCompleted || b.Version != 5 {
		t.Fatalf("final snapshot: %+v", b)
	}

	w = s.do(t, http.MethodGet, "/api/bookings/b-1", ownerToken, nil)
	if w.Code != http.StatusOK || decodeBooking(t, w).Status != models.BookingCompleted {
		t.Fatalf("get: %d %s", w.Code, w.Body.String())
	}

	if len(s.events.events) != 4 {
		t.Fatalf("got %d events, want 4", len(s.events.events))
	}
}

func TestAccessFailuresOverHTTP(t *testing.T) {
	s := newServer(t)
	suspendedToken := s.user(t, "sitter-s", models.RolePetSitter, models.AccountSuspended)
	s.profiles.Put(models.BusinessProfile{ID: "p-s", OwnerAccountID: "sitter-s", RoleType: models.RolePetSitter, IsVerified: true, Status: models.ProfileActive})
	unverifiedToken := s.user(t, "sitter-u", models.RolePetSitter, models.AccountActive)
	s.profiles.Put(models.BusinessProfile{ID: "p-u", OwnerAccountID: "sitter-u", RoleType: models.RolePetSitter, IsVerified: false, Status: models.ProfileActive})
	ownerToken := s.user(t, "owner-1", models.RolePetOwner, models.AccountActive)
	if err := s.bookings.Create(context.Background(), &models.Booking{ID: "b-1", ClientID: "owner-1", ProviderID: "sitter-u"}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	tests := []struct {
		name   string
		method string
		path   string
		token  string
		status int
		reason string
	}{
		{"no credential", http.MethodPost, "/api/bookings/b-1/confirm", "", http.StatusUnauthorized, "MISSING"},
		{"garbage credential", http.MethodPost, "/api/bookings/b-1/confirm", "garbage", http.StatusUnauthorized, "INVALID"},
		{"suspended with verified profile", http.MethodPost, "/api/bookings/b-1/confirm", suspendedToken, http.StatusForbidden, "SUSPENDED"},
		{"unverified profile", http.MethodPost, "/api/bookings/b-1/confirm", unverifiedToken, http.StatusForbidden, "PROFILE_NOT_VERIFIED"},
		{"owner cannot confirm", http.MethodPost, "/api/bookings/b-1/confirm", ownerToken, http.StatusForbidden, "ROLE_MISMATCH"},
		{"owner cannot finalize", http.MethodPost, "/api/admin/bookings/b-1/finalize", ownerToken, http.StatusForbidden, "ROLE_MISMATCH"},
		{"suspended cannot read", http.MethodGet, "/api/bookings/b-1", suspendedToken, http.StatusForbidden, "SUSPENDED"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := s.do(t, tt.method, tt.path, tt.token, nil)
			if w.Code != tt.status {
				t.Fatalf("status = %d, want %d (%s)", w.Code, tt.status, w.Body.String())
			}
			if reason := decodeError(t, w).Details["reason"]; reason != tt.reason {
				t.Fatalf("reason = %v, want %s", reason, tt.reason)
			}
		})
	}

	if b, _ := s.bookings.GetByID(context.Background(), "b-1"); b.Status != models.BookingPending || b.Version != 1 {
		t.Fatalf("rejected requests mutated the booking: %+v", b)
	}
}

func TestBookingErrorsOverHTTP(t *testing.T) {
	s := newServer(t)
	ownerToken := s.user(t, "owner-1", models.RolePetOwner, models.AccountActive)
	adminToken := s.user(t, "admin-1", models.RoleAdmin, models.AccountActive)
	if err := s.bookings.Create(context.Background(), &models.Booking{ID: "b-1", ClientID: "owner-1", ProviderID: "sitter-1"}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	if w := s.do(t, http.MethodGet, "/api/bookings/missing", ownerToken, nil); w.Code != http.StatusNotFound {
		t.Fatalf("missing booking: %d", w.Code)
	}
	if w := s.do(t, http.MethodGet, "/api/bookings/b-1", adminToken, nil); w.Code != http.StatusForbidden {
		t.Fatalf("non-participant read: %d", w.Code)
	}

	w := s.do(t, http.MethodPost, "/api/admin/bookings/b-1/finalize", adminToken, nil)
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("finalize pending booking: %d %s", w.Code, w.Body.String())
	}
	if e := decodeError(t, w); e.Details["current"] != "PENDING" || e.Details["requested"] != "COMPLETED" {
		t.Fatalf("details = %v", e.Details)
	}

	if w := s.do(t, http.MethodPost, "/api/bookings/b-1/cancel", ownerToken, nil); w.Code != http.StatusOK {
		t.Fatalf("cancel: %d %s", w.Code, w.Body.String())
	}
	if w := s.do(t, http.MethodPost, "/api/bookings/b-1/cancel", ownerToken, nil); w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("second cancel: %d", w.Code)
	}
}

func TestHealthIsPublic(t *testing.T) {
	s := newServer(t)
	if w := s.do(t, http.MethodGet, "/health", "", nil); w.Code != http.StatusOK {
		t.Fatalf("health: %d %s", w.Code, w.Body.String())
	}
}

func TestListBookingsOverHTTP(t *testing.T) {
	s := newServer(t)
	ownerToken := s.user(t, "owner-1", models.RolePetOwner, models.AccountActive)
	ctx := context.Background()
	for _, b := range []models.Booking{
		{ID: "b-1", ClientID: "owner-1", ProviderID: "sitter-1"},
		{ID: "b-2", ClientID: "owner-1", ProviderID: "sitter-2", Status: models.BookingCancelled},
		{ID: "b-3", ClientID: "owner-2", ProviderID: "sitter-1"},
	} {
		if err := s.bookings.Create(ctx, &b); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	var body struct {
		Bookings []models.Booking `json:"bookings"`
		Count    int              `json:"count"`
	}
	w := s.do(t, http.MethodGet, "/api/bookings?status=PENDING", ownerToken, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list: %d %s", w.Code, w.Body.String())
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Count != 1 || len(body.Bookings) != 1 || body.Bookings[0].ID != "b-1" {
		t.Fatalf("pending bookings = %+v", body)
	}

	w = s.do(t, http.MethodGet, "/api/bookings?status=ARCHIVED", ownerToken, nil)
	if w.Code != http.StatusBadRequest || decodeError(t, w).Error != "invalid_status" {
		t.Fatalf("bad status: %d %s", w.Code, w.Body.String())
	}

	if w := s.do(t, http.MethodGet, "/api/bookings", "", nil); w.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous list: %d", w.Code)
	}
}
