package admin

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sngm3741/feedbackpro/api/internal/feedback/application"
	"github.com/sngm3741/feedbackpro/api/internal/feedback/domain"
	"github.com/sngm3741/feedbackpro/api/internal/interfaces/http/common"
)

// memoryStore is a tiny record store: List and Delete over a slice.
type memoryStore struct {
	mu        sync.Mutex
	records   []domain.Submission
	listErr   error
	deleteErr error
	lists     int
}

func (s *memoryStore) List(context.Context) ([]domain.Submission, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lists++
	if s.listErr != nil {
		return nil, s.listErr
	}
	return append([]domain.Submission(nil), s.records...), nil
}

func (s *memoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.deleteErr != nil {
		return s.deleteErr
	}
	for i, r := range s.records {
		if r.ID == id {
			s.records = append(s.records[:i], s.records[i+1:]...)
			return nil
		}
	}
	return application.ErrNotFound
}

func record(id, name string, overall int, canContact bool, experienced string) domain.Submission {
	return domain.Submission{
		ID:                id,
		Name:              name,
		Contact:           domain.Contact(strings.ToLower(name) + "@gmail.com"),
		DateOfExperience:  domain.CalendarDate(experienced),
		DateOfSubmission:  domain.CalendarDate(experienced),
		OverallExperience: domain.OverallRating(overall),
		QualityOfService:  domain.RatingExcellent,
		Timeliness:        domain.RatingGood,
		Professionalism:   domain.RatingExcellent,
		CommunicationEase: domain.RatingAverage,
		LikedMost:         "service",
		WouldRecommend:    "yes",
		CanContactAgain:   canContact,
		AfterImageKey:     domain.BlobKey("after_" + id + ".png"),
	}
}

type fixture struct {
	store  *memoryStore
	router http.Handler
}

func newFixture() *fixture {
	store := &memoryStore{records: []domain.Submission{
		record("r1", "Jane", 5, true, "2024-04-01"),
		record("r2", "Bob", 3, false, "2024-03-01"),
		record("r3", "Carl", 3, true, "2024-02-01"),
		record("r4", "Dana", 1, false, "2024-01-01"),
	}}
	registry := application.NewDashboardRegistry(store)
	deletion := application.NewDeletionService(store, nil, nil, registry, nil)

	h := NewHandler(Config{
		Dashboards:   registry,
		Deletion:     deletion,
		MediaBaseURL: "https://media.example.com/feedback-images",
		Now:          func() time.Time { return time.Date(2024, 6, 30, 23, 0, 0, 0, time.UTC) },
	})
	r := chi.NewRouter()
	r.Route("/admin", func(r chi.Router) {
		r.Use(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
				user := common.AuthenticatedUser{ID: req.Header.Get("X-Test-User")}
				next.ServeHTTP(w, req.WithContext(common.ContextWithUser(req.Context(), user)))
			})
		})
		h.Register(r)
	})
	return &fixture{store: store, router: r}
}

func (f *fixture) do(t *testing.T, method, target, user string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	req.Header.Set("X-Test-User", user)
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func decodeList(t *testing.T, rec *httptest.ResponseRecorder) feedbackListResponse {
	t.Helper()
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var resp feedbackListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func listIDs(resp feedbackListResponse) []string {
	out := make([]string, 0, len(resp.Items))
	for _, item := range resp.Items {
		out = append(out, item.ID)
	}
	return out
}

func TestList_FiltersAndCounts(t *testing.T) {
	f := newFixture()

	resp := decodeList(t, f.do(t, http.MethodGet, "/admin/feedback", "alice"))
	assert.Equal(t, []string{"r1", "r2", "r3", "r4"}, listIDs(resp))
	assert.Equal(t, 4, resp.Shown)
	assert.Equal(t, 4, resp.Total)

	resp = decodeList(t, f.do(t, http.MethodGet, "/admin/feedback?overallRating=3", "alice"))
	assert.Equal(t, []string{"r2", "r3"}, listIDs(resp))
	assert.Equal(t, 2, resp.Shown)
	assert.Equal(t, 4, resp.Total)
	assert.Equal(t, "3", resp.Filter.OverallRating)

	resp = decodeList(t, f.do(t, http.MethodGet, "/admin/feedback?canContact=yes&dateTo=2024-03-01&search=C", "alice"))
	assert.Equal(t, []string{"r3"}, listIDs(resp))
	assert.Equal(t, "https://media.example.com/feedback-images/after_r3.png", resp.Items[0].AfterImageURL)

	assert.Equal(t, 1, f.store.lists, "collection is fetched once per activation")
}

func TestList_LoadFailure(t *testing.T) {
	f := newFixture()
	f.store.listErr = errors.New("mongo down")

	rec := f.do(t, http.MethodGet, "/admin/feedback", "alice")
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestRefresh_Refetches(t *testing.T) {
	f := newFixture()
	decodeList(t, f.do(t, http.MethodGet, "/admin/feedback", "alice"))

	f.store.mu.Lock()
	f.store.records = append([]domain.Submission{record("r0", "Zed", 4, false, "2024-05-01")}, f.store.records...)
	f.store.mu.Unlock()

	resp := decodeList(t, f.do(t, http.MethodGet, "/admin/feedback", "alice"))
	assert.Equal(t, 4, resp.Total)

	resp = decodeList(t, f.do(t, http.MethodPost, "/admin/feedback/refresh", "alice"))
	assert.Equal(t, 5, resp.Total)
	assert.Equal(t, "r0", resp.Items[0].ID)
}

func TestExport(t *testing.T) {
	f := newFixture()
	rec := f.do(t, http.MethodGet, "/admin/feedback/export?overallRating=3", "alice")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	assert.Equal(t, "attachment; filename=feedback-export-2024-06-30.csv", rec.Header().Get("Content-Disposition"))

	lines := strings.Split(rec.Body.String(), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "Name,Contact,"))
	assert.True(t, strings.HasPrefix(lines[1], "Bob,bob@gmail.com,"))
	assert.True(t, strings.HasSuffix(lines[2], `,"https://media.example.com/feedback-images/after_r3.png"`))
}

func TestDetailAndSelection(t *testing.T) {
	f := newFixture()

	rec := f.do(t, http.MethodGet, "/admin/feedback/r2", "alice")
	require.Equal(t, http.StatusOK, rec.Code)
	var detail common.FeedbackResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &detail))
	assert.Equal(t, "Bob", detail.Name)

	rec = f.do(t, http.MethodGet, "/admin/feedback/selection", "alice")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(t, http.MethodGet, "/admin/feedback/selection", "bob")
	assert.Equal(t, http.StatusNotFound, rec.Code, "selection is per reviewer")

	rec = f.do(t, http.MethodDelete, "/admin/feedback/selection", "alice")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = f.do(t, http.MethodGet, "/admin/feedback/selection", "alice")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = f.do(t, http.MethodGet, "/admin/feedback/nope", "alice")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDelete(t *testing.T) {
	f := newFixture()
	decodeList(t, f.do(t, http.MethodGet, "/admin/feedback", "alice"))
	decodeList(t, f.do(t, http.MethodGet, "/admin/feedback", "bob"))
	require.Equal(t, http.StatusOK, f.do(t, http.MethodGet, "/admin/feedback/r2", "alice").Code)

	rec := f.do(t, http.MethodDelete, "/admin/feedback/r2", "alice")
	assert.Equal(t, http.StatusBadRequest, rec.Code, "unconfirmed")

	rec = f.do(t, http.MethodDelete, "/admin/feedback/r2?confirm=true", "alice")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var resp feedbackDeleteResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 3, resp.Total)

	assert.Equal(t, http.StatusNotFound, f.do(t, http.MethodGet, "/admin/feedback/selection", "alice").Code)
	assert.Equal(t, []string{"r1", "r3", "r4"}, listIDs(decodeList(t, f.do(t, http.MethodGet, "/admin/feedback", "alice"))))
	assert.Equal(t, []string{"r1", "r3", "r4"}, listIDs(decodeList(t, f.do(t, http.MethodGet, "/admin/feedback", "bob"))))

	rec = f.do(t, http.MethodDelete, "/admin/feedback/r2?confirm=true", "alice")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDelete_StoreFailureKeepsCollection(t *testing.T) {
	f := newFixture()
	decodeList(t, f.do(t, http.MethodGet, "/admin/feedback", "alice"))
	f.store.deleteErr = errors.New("timeout")

	rec := f.do(t, http.MethodDelete, "/admin/feedback/r1?confirm=true", "alice")
	assert.Equal(t, http.StatusBadGateway, rec.Code)

	resp := decodeList(t, f.do(t, http.MethodGet, "/admin/feedback", "alice"))
	assert.Equal(t, 4, resp.Total)
}

func TestRequiresUser(t *testing.T) {
	f := newFixture()
	rec := f.do(t, http.MethodGet, "/admin/feedback", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
