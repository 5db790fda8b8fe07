//go:build integration

package rest_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Gunvolt24/calllog/internal/domain"
	pgrepo "github.com/Gunvolt24/calllog/internal/repo/postgres"
	"github.com/Gunvolt24/calllog/internal/testutil"
	rest "github.com/Gunvolt24/calllog/internal/transport/http"
	"github.com/Gunvolt24/calllog/internal/usecase"
	"github.com/Gunvolt24/calllog/pkg/calllog"
	"github.com/Gunvolt24/calllog/pkg/logger"
	"github.com/Gunvolt24/calllog/pkg/validate"
)

// 1) GET /entries — последние записи, фильтр по severity и пагинация
func TestHTTP_ListEntries_TC(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 45*time.Second)
	defer cancel()

	pg, stop, err := testutil.StartPostgresTC(ctx)
	require.NoError(t, err)
	defer func() { _ = stop(context.Background()) }()
	require.NoError(t, testutil.ApplyMigrationsGoose(pg.DSN))

	logg, cleanup, err := logger.NewZapLogger(false)
	require.NoError(t, err)
	defer func() { _ = cleanup() }()

	repo := pgrepo.NewEntryRepository(pg.Pool)
	svc := usecase.NewEntryService(repo, logg, validate.NewEntryValidator())

	// seed: 3 error + 2 info, время по возрастанию
	base := time.Now().UTC().Add(-time.Hour).Truncate(time.Millisecond)
	for i := 0; i < 5; i++ {
		sev := "error"
		if i%2 == 1 {
			sev = "info"
		}
		e := testutil.MakeEntry(testutil.WithSeverity(sev), testutil.WithTime(base.Add(time.Duration(i)*time.Minute)))
		require.NoError(t, repo.Save(ctx, &e))
	}

	h := rest.NewHandler(svc, logg, calllog.New(logg), 2*time.Second)
	ts := httptest.NewServer(rest.NewRouter(h, ""))
	defer ts.Close()

	// все записи, новые сначала
	all := getEntries(t, ts.URL+"/entries")
	require.Len(t, all, 5)
	for i := 1; i < len(all); i++ {
		require.False(t, all[i].Time.After(all[i-1].Time))
	}

	// фильтр по severity (синоним err)
	errs := getEntries(t, ts.URL+"/entries?severity=err")
	require.Len(t, errs, 3)
	for _, e := range errs {
		require.Equal(t, "error", e.Severity)
	}

	// limit=2 offset=1
	page := getEntries(t, ts.URL+"/entries?limit=2&offset=1")
	require.Len(t, page, 2)
	require.Equal(t, all[1].ID, page[0].ID)
	require.Equal(t, all[2].ID, page[1].ID)
}

// 2) GET /entries?severity=fatal — 400
func TestHTTP_ListEntries_BadSeverity_TC(t *testing.T) {
	logg, cleanup, err := logger.NewZapLogger(false)
	require.NoError(t, err)
	defer func() { _ = cleanup() }()

	svc := usecase.NewEntryService(noOpRepo{}, logg, validate.NewEntryValidator())
	h := rest.NewHandler(svc, logg, calllog.New(logg), 2*time.Second)
	ts := httptest.NewServer(rest.NewRouter(h, ""))
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/entries?severity=fatal")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

// 3) POST /entries — 405 Method Not Allowed + заголовок Allow: GET
func TestHTTP_ListEntries_MethodNotAllowed_TC(t *testing.T) {
	logg, cleanup, err := logger.NewZapLogger(false)
	require.NoError(t, err)
	defer func() { _ = cleanup() }()

	h := rest.NewHandler(slowService{}, logg, calllog.New(logg), 2*time.Second)
	ts := httptest.NewServer(rest.NewRouter(h, ""))
	defer ts.Close()

	req, _ := http.NewRequest(http.MethodPost, ts.URL+"/entries", nil)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
	require.Equal(t, "GET", resp.Header.Get("Allow"))

	var got map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	require.Equal(t, "method not allowed", got["error"])
}

// 4) /ping, /metrics, 404 на неизвестный маршрут
func TestHTTP_Health_Metrics_And_404_TC(t *testing.T) {
	logg, cleanup, err := logger.NewZapLogger(false)
	require.NoError(t, err)
	defer func() { _ = cleanup() }()

	h := rest.NewHandler(slowService{}, logg, calllog.New(logg), 2*time.Second)
	ts := httptest.NewServer(rest.NewRouter(h, ""))
	defer ts.Close()

	// /ping
	resp, err := http.Get(ts.URL + "/ping")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "pong", string(readAll(t, resp.Body)))

	// /metrics
	respM, err := http.Get(ts.URL + "/metrics")
	require.NoError(t, err)
	defer respM.Body.Close()
	require.Equal(t, http.StatusOK, respM.StatusCode)
	require.NotEmpty(t, readAll(t, respM.Body))

	// 404
	resp404, err := http.Get(ts.URL + "/no/such/route")
	require.NoError(t, err)
	defer resp404.Body.Close()
	require.Equal(t, http.StatusNotFound, resp404.StatusCode)

	var got map[string]any
	require.NoError(t, json.NewDecoder(resp404.Body).Decode(&got))
	require.Equal(t, "route not found", got["error"])
}

// 5) Таймаут запросов: Handler с коротким таймаутом должен вернуть 504
func TestHTTP_ListEntries_Timeout_504_TC(t *testing.T) {
	logg, cleanup, err := logger.NewZapLogger(false)
	require.NoError(t, err)
	defer func() { _ = cleanup() }()

	h := rest.NewHandler(slowService{}, logg, calllog.New(logg), 10*time.Millisecond)
	ts := httptest.NewServer(rest.NewRouter(h, ""))
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/entries")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusGatewayTimeout, resp.StatusCode)

	var got map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	require.Equal(t, "timeout", got["error"])
}

// --- функции помощники ---

// noOpRepo — хранилище, до которого не должно дойти.
type noOpRepo struct{}

func (noOpRepo) Save(context.Context, *domain.Entry) error { return nil }
func (noOpRepo) List(context.Context, domain.EntryFilter) ([]*domain.Entry, error) {
	return nil, nil
}

// slowService — всегда ждёт ctx.Done() и возвращает ошибку контекста.
type slowService struct{}

func (slowService) Recent(ctx context.Context, _ domain.EntryFilter) ([]*domain.Entry, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func getEntries(t *testing.T, url string) []domain.Entry {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got []domain.Entry
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	return got
}

// readAll — просто прочитать тело.
func readAll(t *testing.T, r io.Reader) []byte {
	t.Helper()
	b, err := io.ReadAll(r)
	require.NoError(t, err)
	return b
}
