// Package taxledger 费用账本配置
package taxledger

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/holiman/uint256"

	"github.com/weisyn/taxledger/pkg/constants"
	configtypes "github.com/weisyn/taxledger/pkg/types"
)

// TaxLedgerOptions 费用账本配置选项
type TaxLedgerOptions struct {
	// === 代币元数据 ===
	Name        string      `json:"name"`
	Symbol      string      `json:"symbol"`
	Decimals    uint8       `json:"decimals"`
	TotalSupply uint256.Int `json:"-"`

	// === 角色地址 ===
	Authority         common.Address `json:"authority"`
	SelfAddress       common.Address `json:"self_address"`
	MarketingWallet   common.Address `json:"marketing_wallet"`
	LiquidityReceiver common.Address `json:"liquidity_receiver"`

	// === 初始费率 ===
	Schedule configtypes.FeeSchedule `json:"schedule"`

	// === 自动兑换 ===
	SwapEnabled   bool        `json:"swap_enabled"`
	SwapThreshold uint256.Int `json:"-"`

	// === 初始注册 ===
	Venues     []configtypes.VenueKey `json:"venues"`
	Exclusions []common.Address       `json:"exclusions"`

	// === 参考交易场所 ===
	VenueAddress common.Address `json:"venue_address"`
	VenueRateNum uint64         `json:"venue_rate_num"`
	VenueRateDen uint64         `json:"venue_rate_den"`

	// 用户配置解析中遇到的错误，由 Validate 统一返回
	parseErrs []error
}

// Config 费用账本配置实现
type Config struct {
	options *TaxLedgerOptions
}

// New 创建费用账本配置实现
func New(userConfig interface{}) *Config {
	options := createDefaultTaxLedgerOptions()

	if userConfig != nil {
		applyUserConfig(options, userConfig)
	}

	return &Config{options: options}
}

// NewFromOptions 直接使用完整选项创建配置
func NewFromOptions(options *TaxLedgerOptions) *Config {
	if options == nil {
		return New(nil)
	}
	return &Config{options: options}
}

// createDefaultTaxLedgerOptions 创建默认配置
func createDefaultTaxLedgerOptions() *TaxLedgerOptions {
	authority := DefaultAuthority()
	supply := defaultTotalSupply(constants.DefaultDecimals)

	options := &TaxLedgerOptions{
		Name:              constants.DefaultTokenName,
		Symbol:            constants.DefaultTokenSymbol,
		Decimals:          constants.DefaultDecimals,
		TotalSupply:       *supply,
		Authority:         authority,
		SelfAddress:       crypto.CreateAddress(authority, 0),
		MarketingWallet:   authority,
		LiquidityReceiver: authority,
		Schedule: configtypes.FeeSchedule{
			Buy:      configtypes.FeeRates{Liquidity: defaultBuyLiquidityFee, Marketing: defaultBuyMarketingFee},
			Sell:     configtypes.FeeRates{Liquidity: defaultSellLiquidityFee, Marketing: defaultSellMarketingFee},
			Transfer: configtypes.FeeRates{Liquidity: defaultTransferLiquidityFee, Marketing: defaultTransferMarketingFee},
		},
		SwapEnabled:  defaultSwapEnabled,
		VenueAddress: crypto.CreateAddress(authority, 1),
		VenueRateNum: defaultVenueRateNum,
		VenueRateDen: defaultVenueRateDen,
	}
	options.SwapThreshold = *thresholdFromSupply(&options.TotalSupply)
	options.Venues = []configtypes.VenueKey{{Address: options.VenueAddress, Tier: defaultVenueTier}}
	return options
}

// DefaultAuthority 默认治理地址
func DefaultAuthority() common.Address {
	return common.BytesToAddress(crypto.Keccak256([]byte(defaultAuthoritySeed))[12:])
}

// defaultTotalSupply 按精度计算默认总量
func defaultTotalSupply(decimals uint8) *uint256.Int {
	scale := new(uint256.Int).Exp(uint256.NewInt(10), uint256.NewInt(uint64(decimals)))
	return new(uint256.Int).Mul(uint256.NewInt(constants.DefaultSupplyUnits), scale)
}

func thresholdFromSupply(supply *uint256.Int) *uint256.Int {
	return new(uint256.Int).Div(supply, uint256.NewInt(constants.DefaultSwapThresholdDivisor))
}

// applyUserConfig 应用用户配置覆盖默认值
//
// 派生关系：
// - authority 变化时，未显式配置的 self/marketing/liquidity/venue 地址随之重新派生
// - 总量或精度变化时，未显式配置的阈值按 总量/2000 重新计算
func applyUserConfig(options *TaxLedgerOptions, userConfig interface{}) {
	cfg, ok := userConfig.(*configtypes.UserTaxLedgerConfig)
	if !ok || cfg == nil {
		return
	}

	if cfg.Name != nil {
		options.Name = *cfg.Name
	}
	if cfg.Symbol != nil {
		options.Symbol = *cfg.Symbol
	}
	if cfg.Decimals != nil {
		options.Decimals = *cfg.Decimals
		options.TotalSupply = *defaultTotalSupply(options.Decimals)
	}
	if cfg.TotalSupply != nil {
		if v, err := uint256.FromDecimal(*cfg.TotalSupply); err == nil {
			options.TotalSupply = *v
		} else {
			options.parseErrs = append(options.parseErrs, fmt.Errorf("total_supply: %w", err))
		}
	}

	if cfg.Authority != nil {
		if addr, err := parseAddress(*cfg.Authority); err == nil {
			options.Authority = addr
			options.SelfAddress = crypto.CreateAddress(addr, 0)
			options.MarketingWallet = addr
			options.LiquidityReceiver = addr
			options.VenueAddress = crypto.CreateAddress(addr, 1)
			options.Venues = []configtypes.VenueKey{{Address: options.VenueAddress, Tier: defaultVenueTier}}
		} else {
			options.parseErrs = append(options.parseErrs, fmt.Errorf("authority: %w", err))
		}
	}
	options.SelfAddress = overrideAddress(options, "self_address", cfg.SelfAddress, options.SelfAddress)
	options.MarketingWallet = overrideAddress(options, "marketing_wallet", cfg.MarketingWallet, options.MarketingWallet)
	options.LiquidityReceiver = overrideAddress(options, "liquidity_receiver", cfg.LiquidityReceiver, options.LiquidityReceiver)
	if cfg.VenueAddress != nil {
		options.VenueAddress = overrideAddress(options, "venue_address", cfg.VenueAddress, options.VenueAddress)
		options.Venues = []configtypes.VenueKey{{Address: options.VenueAddress, Tier: defaultVenueTier}}
	}

	applyFeeRates(&options.Schedule.Buy, cfg.BuyFees)
	applyFeeRates(&options.Schedule.Sell, cfg.SellFees)
	applyFeeRates(&options.Schedule.Transfer, cfg.TransferFees)

	if cfg.SwapEnabled != nil {
		options.SwapEnabled = *cfg.SwapEnabled
	}
	options.SwapThreshold = *thresholdFromSupply(&options.TotalSupply)
	if cfg.SwapThreshold != nil {
		if v, err := uint256.FromDecimal(*cfg.SwapThreshold); err == nil {
			options.SwapThreshold = *v
		} else {
			options.parseErrs = append(options.parseErrs, fmt.Errorf("swap_threshold: %w", err))
		}
	}

	if cfg.Venues != nil {
		venues := make([]configtypes.VenueKey, 0, len(cfg.Venues))
		for _, v := range cfg.Venues {
			addr, err := parseAddress(v.Address)
			if err != nil {
				options.parseErrs = append(options.parseErrs, fmt.Errorf("venues: %w", err))
				continue
			}
			venues = append(venues, configtypes.VenueKey{Address: addr, Tier: v.Tier})
		}
		options.Venues = venues
	}
	for _, s := range cfg.Exclusions {
		addr, err := parseAddress(s)
		if err != nil {
			options.parseErrs = append(options.parseErrs, fmt.Errorf("exclusions: %w", err))
			continue
		}
		options.Exclusions = append(options.Exclusions, addr)
	}

	if cfg.VenueRateNum != nil {
		options.VenueRateNum = *cfg.VenueRateNum
	}
	if cfg.VenueRateDen != nil {
		options.VenueRateDen = *cfg.VenueRateDen
	}
}

func applyFeeRates(dst *configtypes.FeeRates, src *configtypes.UserFeeRates) {
	if src == nil {
		return
	}
	if src.Liquidity != nil {
		dst.Liquidity = *src.Liquidity
	}
	if src.Marketing != nil {
		dst.Marketing = *src.Marketing
	}
}

func overrideAddress(options *TaxLedgerOptions, field string, raw *string, current common.Address) common.Address {
	if raw == nil {
		return current
	}
	addr, err := parseAddress(*raw)
	if err != nil {
		options.parseErrs = append(options.parseErrs, fmt.Errorf("%s: %w", field, err))
		return current
	}
	return addr
}

// parseAddress 解析 0x 十六进制地址
func parseAddress(s string) (common.Address, error) {
	if !common.IsHexAddress(s) {
		return common.Address{}, fmt.Errorf("invalid address %q", s)
	}
	return common.HexToAddress(s), nil
}

// Validate 校验配置是否满足账本初始化约束
func (c *Config) Validate() error {
	o := c.options
	errs := append([]error(nil), o.parseErrs...)

	if o.Authority == (common.Address{}) {
		errs = append(errs, errors.New("authority cannot be the zero address"))
	}
	if o.SelfAddress == (common.Address{}) {
		errs = append(errs, errors.New("self_address cannot be the zero address"))
	}
	if o.MarketingWallet == (common.Address{}) {
		errs = append(errs, configtypes.ErrMarketingZero)
	}
	// 账本地址与主交易场所在启动时都带合约标记
	if o.MarketingWallet == o.SelfAddress || o.MarketingWallet == o.VenueAddress {
		errs = append(errs, configtypes.ErrMarketingContract)
	}
	if o.Schedule.Buy.Total() > constants.MaxTradeFeeBps || o.Schedule.Sell.Total() > constants.MaxTradeFeeBps {
		errs = append(errs, configtypes.ErrBuyFeesTooHigh)
	}
	if o.Schedule.Transfer.Total() > constants.MaxTransferFeeBps {
		errs = append(errs, configtypes.ErrTransferFeesTooHigh)
	}
	if o.SwapThreshold.IsZero() {
		errs = append(errs, configtypes.ErrThresholdZero)
	}
	if o.VenueRateDen == 0 {
		errs = append(errs, errors.New("venue_rate_den must be positive"))
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("费用账本配置无效: %w", errors.Join(errs...))
}

// GetOptions 获取完整配置选项
func (c *Config) GetOptions() *TaxLedgerOptions {
	return c.options
}

// GetAuthority 获取治理地址
func (c *Config) GetAuthority() common.Address {
	return c.options.Authority
}

// GetSelfAddress 获取账本自身地址
func (c *Config) GetSelfAddress() common.Address {
	return c.options.SelfAddress
}

// GetSchedule 获取初始费率表
func (c *Config) GetSchedule() configtypes.FeeSchedule {
	return c.options.Schedule
}

// GetSwapConfig 获取初始兑换配置
func (c *Config) GetSwapConfig() configtypes.SwapConfig {
	return configtypes.SwapConfig{Threshold: c.options.SwapThreshold, Enabled: c.options.SwapEnabled}
}

// GetMetadata 获取代币元数据
func (c *Config) GetMetadata() configtypes.TokenMetadata {
	supply := c.options.TotalSupply
	return configtypes.TokenMetadata{
		Name:        c.options.Name,
		Symbol:      c.options.Symbol,
		Decimals:    c.options.Decimals,
		TotalSupply: &supply,
	}
}
