// Package handlers 费用账本只读查询接口
package handlers

import (
	"net/http"
	"strconv"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"

	"github.com/weisyn/taxledger/internal/api/http/middleware"
	apitypes "github.com/weisyn/taxledger/internal/api/http/types"
	"github.com/weisyn/taxledger/pkg/constants"
	"github.com/weisyn/taxledger/pkg/interfaces/infrastructure/log"
	iface "github.com/weisyn/taxledger/pkg/interfaces/taxledger"
	"github.com/weisyn/taxledger/pkg/types"
)

// TaxLedgerHandlers 费用账本查询处理器
// 只暴露读接口，所有写操作走进程内引擎
type TaxLedgerHandlers struct {
	query  iface.QueryService
	logger log.Logger
}

// NewTaxLedgerHandlers 创建查询处理器
func NewTaxLedgerHandlers(query iface.QueryService, logger log.Logger) *TaxLedgerHandlers {
	return &TaxLedgerHandlers{query: query, logger: logger}
}

// RegisterRoutes 注册路由
func (h *TaxLedgerHandlers) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/token", h.GetToken)
	r.GET("/fees", h.GetFeeSchedule)
	r.GET("/fees/:direction", h.GetRates)
	r.GET("/accounts/:address", h.GetAccount)
	r.GET("/venues", h.ListVenues)
	r.GET("/venues/:address", h.GetVenue)
	r.GET("/treasury", h.GetTreasury)
	r.GET("/governance", h.GetGovernance)
}

// TokenResponse 代币元数据
type TokenResponse struct {
	Name           string `json:"name"`
	Symbol         string `json:"symbol"`
	Decimals       uint8  `json:"decimals"`
	TotalSupply    string `json:"total_supply"`
	FeeDenominator uint64 `json:"fee_denominator"`
}

// AccountResponse 账户视图
type AccountResponse struct {
	Address  string   `json:"address"`
	Balance  string   `json:"balance"`
	Excluded bool     `json:"excluded"`
	Venue    bool     `json:"venue"`
	Tiers    []uint32 `json:"tiers,omitempty"`
}

// TreasuryResponse 国库视图
type TreasuryResponse struct {
	Address          string `json:"address"`
	Balance          string `json:"balance"`
	AccruedLiquidity string `json:"accrued_liquidity"`
	AccruedMarketing string `json:"accrued_marketing"`
	SwapThreshold    string `json:"swap_threshold"`
	SwapEnabled      bool   `json:"swap_enabled"`
}

// GovernanceResponse 治理视图
type GovernanceResponse struct {
	Authority       string `json:"authority"`
	Renounced       bool   `json:"renounced"`
	MarketingWallet string `json:"marketing_wallet"`
}

// GetToken 代币元数据
func (h *TaxLedgerHandlers) GetToken(c *gin.Context) {
	md := h.query.Metadata()
	h.ok(c, TokenResponse{
		Name:           md.Name,
		Symbol:         md.Symbol,
		Decimals:       md.Decimals,
		TotalSupply:    md.TotalSupply.Dec(),
		FeeDenominator: constants.FeeDenominator,
	})
}

// GetFeeSchedule 完整费率表
func (h *TaxLedgerHandlers) GetFeeSchedule(c *gin.Context) {
	h.ok(c, h.query.FeeSchedule())
}

// GetRates 单个方向的费率
func (h *TaxLedgerHandlers) GetRates(c *gin.Context) {
	d, err := types.ParseDirection(c.Param("direction"))
	if err != nil {
		middleware.WriteError(c, http.StatusBadRequest, apitypes.ErrInvalidArgument, err.Error())
		return
	}
	rates := h.query.Rates(d)
	h.ok(c, gin.H{
		"direction": d.String(),
		"liquidity": rates.Liquidity,
		"marketing": rates.Marketing,
		"total":     rates.Total(),
	})
}

// GetAccount 账户余额与名单状态
func (h *TaxLedgerHandlers) GetAccount(c *gin.Context) {
	addr, ok := h.address(c)
	if !ok {
		return
	}
	resp := AccountResponse{
		Address:  addr.Hex(),
		Balance:  h.query.BalanceOf(addr).Dec(),
		Excluded: h.query.IsExcluded(addr),
		Venue:    h.query.IsAnyVenue(addr),
	}
	for _, v := range h.query.Venues() {
		if v.Address == addr {
			resp.Tiers = append(resp.Tiers, v.Tier)
		}
	}
	h.ok(c, resp)
}

// ListVenues 全部交易场所注册项
func (h *TaxLedgerHandlers) ListVenues(c *gin.Context) {
	venues := h.query.Venues()
	if venues == nil {
		venues = []types.VenueKey{}
	}
	h.ok(c, venues)
}

// GetVenue 查询注册状态，可带 ?tier= 查询具体档位
func (h *TaxLedgerHandlers) GetVenue(c *gin.Context) {
	addr, ok := h.address(c)
	if !ok {
		return
	}
	raw := c.Query("tier")
	if raw == "" {
		h.ok(c, gin.H{"address": addr.Hex(), "member": h.query.IsAnyVenue(addr)})
		return
	}
	tier, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		middleware.WriteError(c, http.StatusBadRequest, apitypes.ErrInvalidArgument, "invalid tier "+strconv.Quote(raw))
		return
	}
	h.ok(c, gin.H{"address": addr.Hex(), "tier": uint32(tier), "member": h.query.IsVenue(addr, uint32(tier))})
}

// GetTreasury 国库余额、累计份额与兑换配置
func (h *TaxLedgerHandlers) GetTreasury(c *gin.Context) {
	accrued := h.query.AccruedShares()
	swap := h.query.SwapConfig()
	h.ok(c, TreasuryResponse{
		Address:          h.query.SelfAddress().Hex(),
		Balance:          h.query.TreasuryBalance().Dec(),
		AccruedLiquidity: accrued.Liquidity.Dec(),
		AccruedMarketing: accrued.Marketing.Dec(),
		SwapThreshold:    swap.Threshold.Dec(),
		SwapEnabled:      swap.Enabled,
	})
}

// GetGovernance 治理地址与营销钱包
func (h *TaxLedgerHandlers) GetGovernance(c *gin.Context) {
	authority := h.query.Authority()
	h.ok(c, GovernanceResponse{
		Authority:       authority.Hex(),
		Renounced:       authority == (common.Address{}),
		MarketingWallet: h.query.MarketingWallet().Hex(),
	})
}

func (h *TaxLedgerHandlers) address(c *gin.Context) (common.Address, bool) {
	raw := c.Param("address")
	if !common.IsHexAddress(raw) {
		middleware.WriteError(c, http.StatusBadRequest, apitypes.ErrInvalidArgument, "invalid address "+strconv.Quote(raw))
		return common.Address{}, false
	}
	return common.HexToAddress(raw), true
}

func (h *TaxLedgerHandlers) ok(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, apitypes.NewSuccessResponse(data).WithRequestID(middleware.GetRequestID(c)))
}
