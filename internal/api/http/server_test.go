package http

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/holiman/uint256"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apiconfig "github.com/weisyn/taxledger/internal/config/api"
	taxconfig "github.com/weisyn/taxledger/internal/config/taxledger"
	"github.com/weisyn/taxledger/internal/core/infrastructure/clock"
	"github.com/weisyn/taxledger/internal/core/taxledger"
	"github.com/weisyn/taxledger/internal/core/taxledger/ledger"
	"github.com/weisyn/taxledger/internal/core/taxledger/testutil"
	"github.com/weisyn/taxledger/pkg/types"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type envelope struct {
	Data      json.RawMessage `json:"data"`
	RequestID string          `json:"requestId"`
	Error     *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func newTestRouter(t *testing.T) (*gin.Engine, *taxledger.Engine) {
	t.Helper()
	authority := testutil.Authority.Hex()
	self := testutil.Self.Hex()
	pool := testutil.Pool.Hex()
	supply := "1000000"
	engine, err := taxledger.New(taxconfig.New(&types.UserTaxLedgerConfig{
		Authority:    &authority,
		SelfAddress:  &self,
		VenueAddress: &pool,
		TotalSupply:  &supply,
	}), taxledger.Deps{
		Ledger: ledger.NewMemory(),
		Venue:  testutil.NewFakeVenue(testutil.Pool),
		Logger: &testutil.MockLogger{},
		Clock:  clock.NewSystemClock(),
	})
	require.NoError(t, err)

	reg := prometheus.NewRegistry()
	router := NewRouter(RouterOptions{
		Query:    engine,
		Logger:   &testutil.MockLogger{},
		Clock:    clock.NewMockClock(time.Unix(1700000000, 0)),
		HTTP:     apiconfig.New(nil).GetOptions().HTTP,
		Registry: reg,
		Gatherer: reg,
	})
	return router, engine
}

func get(t *testing.T, router http.Handler, path string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	router.ServeHTTP(rec, req)

	var env envelope
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	}
	return rec, env
}

func TestHealth(t *testing.T) {
	router, _ := newTestRouter(t)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestGetToken(t *testing.T) {
	router, _ := newTestRouter(t)
	rec, env := get(t, router, "/api/v1/token")
	require.Equal(t, http.StatusOK, rec.Code)

	var token struct {
		Name           string `json:"name"`
		Symbol         string `json:"symbol"`
		Decimals       uint8  `json:"decimals"`
		TotalSupply    string `json:"total_supply"`
		FeeDenominator uint64 `json:"fee_denominator"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &token))
	assert.Equal(t, "TAX", token.Symbol)
	assert.Equal(t, uint8(9), token.Decimals)
	assert.Equal(t, "1000000", token.TotalSupply)
	assert.Equal(t, uint64(10000), token.FeeDenominator)
	assert.NotEmpty(t, env.RequestID)
}

func TestGetRates(t *testing.T) {
	router, _ := newTestRouter(t)

	rec, env := get(t, router, "/api/v1/fees/buy")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"direction":"buy","liquidity":100,"marketing":400,"total":500}`, string(env.Data))

	rec, env = get(t, router, "/api/v1/fees/sideways")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "INVALID_ARGUMENT", env.Error.Code)

	rec, env = get(t, router, "/api/v1/fees")
	require.Equal(t, http.StatusOK, rec.Code)
	var schedule types.FeeSchedule
	require.NoError(t, json.Unmarshal(env.Data, &schedule))
	assert.True(t, schedule.Transfer.IsZero())
}

func TestGetAccountAndTreasury(t *testing.T) {
	router, engine := newTestRouter(t)
	ctx := context.Background()
	_, err := engine.Transfer(ctx, testutil.Authority, testutil.Pool, uint256.NewInt(10000))
	require.NoError(t, err)
	_, err = engine.Transfer(ctx, testutil.Pool, testutil.Trader1, uint256.NewInt(1000))
	require.NoError(t, err)

	rec, env := get(t, router, "/api/v1/accounts/"+testutil.Trader1.Hex())
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"address":"`+testutil.Trader1.Hex()+`","balance":"950","excluded":false,"venue":false}`, string(env.Data))

	rec, env = get(t, router, "/api/v1/accounts/"+testutil.Pool.Hex())
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, string(env.Data), `"tiers":[3000]`)

	rec, _ = get(t, router, "/api/v1/accounts/not-an-address")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, env = get(t, router, "/api/v1/treasury")
	require.Equal(t, http.StatusOK, rec.Code)
	var treasury struct {
		Address          string `json:"address"`
		Balance          string `json:"balance"`
		AccruedLiquidity string `json:"accrued_liquidity"`
		AccruedMarketing string `json:"accrued_marketing"`
		SwapEnabled      bool   `json:"swap_enabled"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &treasury))
	assert.Equal(t, testutil.Self.Hex(), treasury.Address)
	assert.Equal(t, "50", treasury.Balance)
	assert.Equal(t, "10", treasury.AccruedLiquidity)
	assert.Equal(t, "40", treasury.AccruedMarketing)
	assert.True(t, treasury.SwapEnabled)
}

func TestVenuesAndGovernance(t *testing.T) {
	router, engine := newTestRouter(t)

	rec, env := get(t, router, "/api/v1/venues")
	require.Equal(t, http.StatusOK, rec.Code)
	// common.Address 以小写十六进制编码
	assert.JSONEq(t, `[{"address":"`+strings.ToLower(testutil.Pool.Hex())+`","tier":3000}]`, string(env.Data))

	_, env = get(t, router, "/api/v1/venues/"+testutil.Pool.Hex()+"?tier=500")
	assert.Contains(t, string(env.Data), `"member":false`)
	_, env = get(t, router, "/api/v1/venues/"+testutil.Pool.Hex()+"?tier=3000")
	assert.Contains(t, string(env.Data), `"member":true`)
	rec, _ = get(t, router, "/api/v1/venues/"+testutil.Pool.Hex()+"?tier=abc")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	require.NoError(t, engine.RenounceAuthority(context.Background(), testutil.Authority))
	_, env = get(t, router, "/api/v1/governance")
	assert.Contains(t, string(env.Data), `"renounced":true`)
}

func TestMetricsEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)
	get(t, router, "/api/v1/token")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `taxledger_api_requests_total{method="GET",route="/api/v1/token",status="200"} 1`)
}

func TestServerLifecycle(t *testing.T) {
	router, _ := newTestRouter(t)
	options := apiconfig.New(nil).GetOptions().HTTP
	options.Port = 0

	server := NewServer(router, options, &testutil.MockLogger{})
	require.NoError(t, server.Start())
	defer func() { assert.NoError(t, server.Stop(context.Background())) }()

	resp, err := http.Get("http://" + server.Addr() + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
