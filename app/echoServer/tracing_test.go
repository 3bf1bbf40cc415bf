package echoServer

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"
)

func spanAttr(span tracetest.SpanStub, key string) (attribute.Value, bool) {
	for _, kv := range span.Attributes {
		if string(kv.Key) == key {
			return kv.Value, true
		}
	}
	return attribute.Value{}, false
}

func Test_Tracing_RecordsRouteAndStatus(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))

	e := echo.New()
	e.Use(Tracing(provider.Tracer("test")))
	e.GET("/api/books/:id", func(c echo.Context) error {
		assert.True(t, trace.SpanFromContext(c.Request().Context()).SpanContext().IsValid(),
			"handler should see the request span")
		return c.NoContent(http.StatusNoContent)
	})
	e.GET("/boom", func(c echo.Context) error { return errors.New("boom") })

	e.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/books/7", nil))
	e.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/boom", nil))

	spans := exporter.GetSpans()
	require.Len(t, spans, 2)

	ok := spans[0]
	assert.Equal(t, "GET /api/books/:id", ok.Name)
	assert.Equal(t, trace.SpanKindServer, ok.SpanKind)
	status, found := spanAttr(ok, "http.response.status_code")
	require.True(t, found)
	assert.Equal(t, int64(http.StatusNoContent), status.AsInt64())
	assert.Equal(t, codes.Unset, ok.Status.Code)

	failed := spans[1]
	status, _ = spanAttr(failed, "http.response.status_code")
	assert.Equal(t, int64(http.StatusInternalServerError), status.AsInt64())
	assert.Equal(t, codes.Error, failed.Status.Code)
	assert.NotEmpty(t, failed.Events, "error should be recorded as an event")
}

func Test_JSONSerializer_RejectsMalformedBody(t *testing.T) {
	e := echo.New()
	e.JSONSerializer = JSONSerializer{}

	req := httptest.NewRequest(http.MethodPost, "/", http.NoBody)
	c := e.NewContext(req, httptest.NewRecorder())
	var v map[string]any
	require.NoError(t, JSONSerializer{}.Deserialize(c, &v))

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"a":`))
	c = e.NewContext(req, httptest.NewRecorder())
	err := JSONSerializer{}.Deserialize(c, &v)
	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, http.StatusBadRequest, he.Code)

	rec := httptest.NewRecorder()
	c = e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	require.NoError(t, c.JSON(http.StatusOK, echo.Map{"title": "Kindred"}))
	assert.JSONEq(t, `{"title":"Kindred"}`, rec.Body.String())
}
