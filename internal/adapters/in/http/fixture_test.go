package http_test

import (
	"io"
	"log/slog"
	nethttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"dispatch/api"
	httpadapter "dispatch/internal/adapters/in/http"
	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/order"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2023, time.May, 1, 15, 30, 0, 0, time.UTC)

type fixture struct {
	createCouriers *handlerMock[commands.CreateCouriersCommand, []*courier.Courier]
	createOrders   *handlerMock[commands.CreateOrdersCommand, []*order.Order]
	completeOrders *handlerMock[commands.CompleteOrdersCommand, []*order.Order]
	assignOrders   *handlerMock[commands.AssignOrdersCommand, commands.AssignOrdersResult]

	getCourier     *handlerMock[queries.GetCourierQuery, queries.CourierView]
	getCouriers    *handlerMock[queries.GetCouriersQuery, queries.GetCouriersQueryResponse]
	getMetaInfo    *handlerMock[queries.GetCourierMetaInfoQuery, queries.CourierMetaInfoView]
	getOrder       *handlerMock[queries.GetOrderQuery, queries.OrderView]
	getOrders      *handlerMock[queries.GetOrdersQuery, []queries.OrderView]
	getAssignments *handlerMock[queries.GetAssignmentsQuery, queries.AssignmentsView]

	registry *prometheus.Registry
	router   *echo.Echo
}

type fixtureOption func(*httpadapter.RouterConfig)

func withRateLimit(cfg httpadapter.RateLimitConfig) fixtureOption {
	return func(rc *httpadapter.RouterConfig) { rc.RateLimit = cfg }
}

func withoutOpenAPI() fixtureOption {
	return func(rc *httpadapter.RouterConfig) { rc.OpenAPI = nil }
}

func newFixture(t *testing.T, opts ...fixtureOption) *fixture {
	t.Helper()

	f := &fixture{
		createCouriers: &handlerMock[commands.CreateCouriersCommand, []*courier.Courier]{},
		createOrders:   &handlerMock[commands.CreateOrdersCommand, []*order.Order]{},
		completeOrders: &handlerMock[commands.CompleteOrdersCommand, []*order.Order]{},
		assignOrders:   &handlerMock[commands.AssignOrdersCommand, commands.AssignOrdersResult]{},
		getCourier:     &handlerMock[queries.GetCourierQuery, queries.CourierView]{},
		getCouriers:    &handlerMock[queries.GetCouriersQuery, queries.GetCouriersQueryResponse]{},
		getMetaInfo:    &handlerMock[queries.GetCourierMetaInfoQuery, queries.CourierMetaInfoView]{},
		getOrder:       &handlerMock[queries.GetOrderQuery, queries.OrderView]{},
		getOrders:      &handlerMock[queries.GetOrdersQuery, []queries.OrderView]{},
		getAssignments: &handlerMock[queries.GetAssignmentsQuery, queries.AssignmentsView]{},
		registry:       prometheus.NewPedanticRegistry(),
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	server := httpadapter.NewServer(httpadapter.Handlers{
		CreateCouriers:     f.createCouriers,
		CreateOrders:       f.createOrders,
		CompleteOrders:     f.completeOrders,
		AssignOrders:       f.assignOrders,
		GetCourier:         f.getCourier,
		GetCouriers:        f.getCouriers,
		GetCourierMetaInfo: f.getMetaInfo,
		GetOrder:           f.getOrder,
		GetOrders:          f.getOrders,
		GetAssignments:     f.getAssignments,
	}, time.UTC, func() time.Time { return now }, logger)

	doc, err := httpadapter.LoadOpenAPI(t.Context(), api.OpenAPI)
	require.NoError(t, err)

	cfg := httpadapter.RouterConfig{
		RateLimit: httpadapter.RateLimitConfig{Rate: 1000, Burst: 1000, ExpiresIn: time.Minute},
		OpenAPI:   doc,
		Gatherer:  f.registry,
		Logger:    logger,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	f.router = httpadapter.NewRouter(server, cfg)
	return f
}

func (f *fixture) do(method, target, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}

	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func (f *fixture) get(target string) *httptest.ResponseRecorder {
	return f.do(nethttp.MethodGet, target, "")
}

func (f *fixture) post(target, body string) *httptest.ResponseRecorder {
	return f.do(nethttp.MethodPost, target, body)
}
