package analytics

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"

	"muskan-shop/internal/kafka"
)

// fakeService нужен для «подмены» AnalyticsService в тестах хендлера.
type fakeService struct {
	lastLimit int

	returnCategories []string
	returnErr        error
}

func (f *fakeService) ProcessEvent(ctx context.Context, event kafka.Event) error {
	return nil
}

func (f *fakeService) GetTopCategories(ctx context.Context, limit int) ([]string, error) {
	f.lastLimit = limit
	return f.returnCategories, f.returnErr
}

func serve(h *Handler, target string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/categories/popular", h.GetPopularCategories).Methods("GET")

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest("GET", target, nil))
	return rr
}

func TestHandler_GetPopularCategories_Success(t *testing.T) {
	svc := &fakeService{returnCategories: []string{"Mutton", "Chicken"}}
	rr := serve(NewHandler(svc, zapTestLogger(t)), "/categories/popular?top=2")

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
	if svc.lastLimit != 2 {
		t.Errorf("expected service.GetTopCategories limit=2, got %d", svc.lastLimit)
	}

	var got []string
	if err := json.Unmarshal(rr.Body.Bytes(), &got); err != nil {
		t.Fatalf("failed to unmarshal response body: %v", err)
	}
	if len(got) != 2 || got[0] != "Mutton" {
		t.Errorf("unexpected body %v", got)
	}
}

func TestHandler_GetPopularCategories_DefaultTop(t *testing.T) {
	for _, target := range []string{"/categories/popular", "/categories/popular?top=abc", "/categories/popular?top=-1"} {
		svc := &fakeService{}
		rr := serve(NewHandler(svc, zapTestLogger(t)), target)

		if rr.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d", rr.Code)
		}
		if svc.lastLimit != 3 {
			t.Errorf("%s: expected default limit=3, got %d", target, svc.lastLimit)
		}
		if rr.Body.String() != "[]\n" {
			t.Errorf("expected empty JSON array, got %q", rr.Body.String())
		}
	}
}

func TestHandler_GetPopularCategories_ServiceError(t *testing.T) {
	svc := &fakeService{returnErr: errors.New("something went wrong")}
	rr := serve(NewHandler(svc, zapTestLogger(t)), "/categories/popular")

	if rr.Code != http.StatusInternalServerError {
		t.Errorf("expected status 500, got %d", rr.Code)
	}
}
