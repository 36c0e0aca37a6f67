package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/yusufkecer/body-composition-backend/internal/bodycomp"
	"github.com/yusufkecer/body-composition-backend/internal/middleware"
	"github.com/yusufkecer/body-composition-backend/internal/service"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var testNow = time.Date(2026, 10, 18, 9, 30, 0, 0, time.UTC)

func fixedNow() time.Time { return testNow }

type mockBodyComposition struct {
	mock.Mock
}

func (m *mockBodyComposition) ForUser(ctx context.Context, userID int64, o service.Overrides) (bodycomp.DerivedMetrics, error) {
	args := m.Called(ctx, userID, o)
	return args.Get(0).(bodycomp.DerivedMetrics), args.Error(1)
}

func jsonBody(t *testing.T, v any) io.Reader {
	t.Helper()
	if s, ok := v.(string); ok {
		return bytes.NewBufferString(s)
	}
	raw, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewReader(raw)
}

// authedRequest builds a request as AuthMiddleware would hand it over.
func authedRequest(t *testing.T, method, target string, body any, userID int64) *http.Request {
	t.Helper()
	var reader io.Reader
	if body != nil {
		reader = jsonBody(t, body)
	}
	req := httptest.NewRequest(method, target, reader)
	return req.WithContext(middleware.WithAccountID(req.Context(), userID))
}

func decodeResponse[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v), rr.Body.String())
	return v
}
