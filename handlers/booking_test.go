package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"petcare/models"
	"petcare/services/access"
	"petcare/utils"

	"github.com/gin-gonic/gin"
)

type stubService struct {
	evidence  models.CompletionEvidence
	finalized string
	requested bool

	listed     bool
	listStatus models.BookingStatus
	listLimit  int
}

func (s *stubService) Get(_ context.Context, id string, _ access.RequestContext) (*models.Booking, error) {
	return &models.Booking{ID: id}, nil
}
func (s *stubService) List(_ context.Context, _ access.RequestContext, status models.BookingStatus, limit int) ([]models.Booking, error) {
	s.listed = true
	s.listStatus = status
	s.listLimit = limit
	return []models.Booking{{ID: "b-1", Status: models.BookingPending}}, nil
}
func (s *stubService) Confirm(_ context.Context, id string, _ access.RequestContext) (*models.Booking, error) {
	return &models.Booking{ID: id, Status: models.BookingConfirmed}, nil
}
func (s *stubService) Cancel(_ context.Context, id string, _ access.RequestContext) (*models.Booking, error) {
	return &models.Booking{ID: id, Status: models.BookingCancelled}, nil
}
func (s *stubService) Start(_ context.Context, id string, _ access.RequestContext) (*models.Booking, error) {
	return &models.Booking{ID: id, Status: models.BookingInProgress}, nil
}
func (s *stubService) RequestCompletion(_ context.Context, id string, _ access.RequestContext, ev models.CompletionEvidence) (*models.Booking, error) {
	s.requested = true
	s.evidence = ev
	return &models.Booking{ID: id, Status: models.BookingCompletionRequested}, nil
}
func (s *stubService) ConfirmCompletion(_ context.Context, id string, _ access.RequestContext) (*models.Booking, error) {
	return &models.Booking{ID: id, Status: models.BookingCompleted}, nil
}
func (s *stubService) FinalizeCompletion(_ context.Context, id string) (*models.Booking, error) {
	s.finalized = id
	return &models.Booking{ID: id, Status: models.BookingCompleted}, nil
}

func newRouter(svc BookingService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	bh := NewBookingHandler(svc)
	r := gin.New()
	r.GET("/bookings", bh.ListBookingsHandler)
	r.POST("/bookings/:id/request-completion", bh.RequestCompletionHandler)
	r.POST("/bookings/:id/finalize", bh.FinalizeCompletionHandler)
	r.GET("/health", HealthHandler)
	return r
}

func TestRequestCompletionRejectsMalformedBody(t *testing.T) {
	svc := &stubService{}
	r := newRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/bookings/b-1/request-completion", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", w.Code)
	}
	if svc.requested {
		t.Fatal("service called with a malformed body")
	}
}

func TestRequestCompletionForwardsEvidence(t *testing.T) {
	svc := &stubService{}
	r := newRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/bookings/b-1/request-completion",
		strings.NewReader(`{"notes":"fed the cat","attachments":["https://cdn.example.com/cat.jpg"]}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d %s", w.Code, w.Body.String())
	}
	if svc.evidence.Notes != "fed the cat" || len(svc.evidence.Attachments) != 1 {
		t.Fatalf("evidence = %+v", svc.evidence)
	}
}

func TestFinalizeCompletionUsesPathID(t *testing.T) {
	svc := &stubService{}
	r := newRouter(svc)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/bookings/b-9/finalize", nil))
	if w.Code != http.StatusOK || svc.finalized != "b-9" {
		t.Fatalf("status = %d finalized = %q", w.Code, svc.finalized)
	}
}

func TestListBookingsPassesFilters(t *testing.T) {
	svc := &stubService{}
	r := newRouter(svc)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/bookings?status=PENDING&limit=5", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d %s", w.Code, w.Body.String())
	}
	if svc.listStatus != models.BookingPending || svc.listLimit != 5 {
		t.Fatalf("status = %q limit = %d", svc.listStatus, svc.listLimit)
	}
	if !strings.Contains(w.Body.String(), `"count":1`) {
		t.Fatalf("body = %s", w.Body.String())
	}
}

func TestListBookingsRejectsBadLimit(t *testing.T) {
	for _, limit := range []string{"abc", "0", "-3"} {
		svc := &stubService{}
		r := newRouter(svc)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/bookings?limit="+limit, nil))
		if w.Code != http.StatusBadRequest {
			t.Fatalf("limit %q: status = %d", limit, w.Code)
		}
		if svc.listed {
			t.Fatalf("limit %q: service called", limit)
		}
	}
}

func TestHealthHandlerReportsDegraded(t *testing.T) {
	r := newRouter(&stubService{})
	utils.RunHealthChecks(context.Background(), map[string]utils.HealthCheck{
		"mongo": func(context.Context) error { return context.DeadlineExceeded },
	})
	defer utils.RunHealthChecks(context.Background(), nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d", w.Code)
	}
}
