// Package scenario 回放费用账本操作脚本
//
// 脚本是一组按顺序执行的步骤，每步对应引擎的一个写入口。
// 地址字段可以写十六进制地址，也可以写别名 authority / self / marketing / venue。
// 金额一律为十进制字符串，单位为最小单位。
package scenario

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"

	iface "github.com/weisyn/taxledger/pkg/interfaces/taxledger"
	"github.com/weisyn/taxledger/pkg/types"
)

// 步骤操作
const (
	OpTransfer           = "transfer"
	OpUpdateFees         = "update_fees"
	OpSetMarketingWallet = "set_marketing_wallet"
	OpSetThreshold       = "set_threshold"
	OpToggleConversion   = "toggle_conversion"
	OpSetExclusion       = "set_exclusion"
	OpSetVenue           = "set_venue"
	OpManualConversion   = "manual_conversion"
	OpTransferAuthority  = "transfer_authority"
	OpRenounceAuthority  = "renounce_authority"
)

// Scenario 操作脚本
type Scenario struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Steps       []Step `json:"steps"`
}

// Step 单个步骤
//
// 各操作使用的字段：
//   - transfer: from, to, amount
//   - update_fees: caller, direction, liquidity, marketing
//   - set_marketing_wallet: caller, account
//   - set_threshold: caller, amount
//   - toggle_conversion: caller, enabled
//   - set_exclusion: caller, account, enabled
//   - set_venue: caller, account, tier, enabled
//   - manual_conversion / renounce_authority: caller
//   - transfer_authority: caller, account
type Step struct {
	Op        string `json:"op"`
	Caller    string `json:"caller,omitempty"`
	From      string `json:"from,omitempty"`
	To        string `json:"to,omitempty"`
	Account   string `json:"account,omitempty"`
	Amount    string `json:"amount,omitempty"`
	Direction string `json:"direction,omitempty"`
	Liquidity uint16 `json:"liquidity,omitempty"`
	Marketing uint16 `json:"marketing,omitempty"`
	Tier      uint32 `json:"tier,omitempty"`
	Enabled   bool   `json:"enabled,omitempty"`

	// ExpectError 非空时要求本步失败且错误信息包含该文本
	ExpectError string `json:"expect_error,omitempty"`
}

// Result 单步执行结果
type Result struct {
	Index   int
	Step    Step
	Receipt *types.TransferReceipt
	Outcome *types.ConversionOutcome
	Err     error
}

// Load 从文件读取脚本
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取脚本失败: %w", err)
	}
	return Parse(data)
}

// Parse 解析并校验脚本
func Parse(data []byte) (*Scenario, error) {
	var sc Scenario
	if err := json.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("解析脚本失败: %w", err)
	}
	if len(sc.Steps) == 0 {
		return nil, fmt.Errorf("脚本 %q 没有任何步骤", sc.Name)
	}
	for i, step := range sc.Steps {
		if err := step.validate(); err != nil {
			return nil, fmt.Errorf("第 %d 步: %w", i+1, err)
		}
	}
	return &sc, nil
}

func (s Step) validate() error {
	switch s.Op {
	case OpTransfer:
		if s.From == "" || s.To == "" || s.Amount == "" {
			return fmt.Errorf("transfer 需要 from、to 与 amount")
		}
	case OpUpdateFees:
		if _, err := types.ParseDirection(s.Direction); err != nil || s.Direction == "no_fee" {
			return fmt.Errorf("update_fees 的 direction 必须为 buy、sell 或 transfer")
		}
	case OpSetThreshold:
		if s.Amount == "" {
			return fmt.Errorf("set_threshold 需要 amount")
		}
	case OpSetMarketingWallet, OpSetExclusion, OpSetVenue, OpTransferAuthority:
		if s.Account == "" {
			return fmt.Errorf("%s 需要 account", s.Op)
		}
	case OpToggleConversion, OpManualConversion, OpRenounceAuthority:
	default:
		return fmt.Errorf("未知操作 %q", s.Op)
	}
	return nil
}

// Runner 脚本执行器
type Runner struct {
	engine  iface.Engine
	aliases map[string]common.Address
}

// NewRunner 创建执行器
//
// 别名在创建时按引擎当前状态解析，脚本中途转移治理权不会改变 authority 的指向。
func NewRunner(engine iface.Engine, venue common.Address) *Runner {
	return &Runner{
		engine: engine,
		aliases: map[string]common.Address{
			"authority": engine.Authority(),
			"self":      engine.SelfAddress(),
			"marketing": engine.MarketingWallet(),
			"venue":     venue,
		},
	}
}

// Run 依次执行全部步骤
//
// 步骤失败不会中止回放，失败被记录在对应的 Result 中。
// 只有与 expect_error 不符的结果才会让 Run 返回错误。
func (r *Runner) Run(ctx context.Context, sc *Scenario) ([]Result, error) {
	results := make([]Result, 0, len(sc.Steps))
	for i, step := range sc.Steps {
		res := r.apply(ctx, step)
		res.Index = i + 1
		results = append(results, res)

		if err := checkExpectation(step, res.Err); err != nil {
			return results, fmt.Errorf("第 %d 步 %s: %w", i+1, step.Op, err)
		}
	}
	return results, nil
}

func checkExpectation(step Step, err error) error {
	switch {
	case step.ExpectError == "":
		return nil
	case err == nil:
		return fmt.Errorf("期望失败 %q，实际成功", step.ExpectError)
	case !strings.Contains(err.Error(), step.ExpectError):
		return fmt.Errorf("期望失败 %q，实际为 %q", step.ExpectError, err.Error())
	default:
		return nil
	}
}

func (r *Runner) apply(ctx context.Context, step Step) Result {
	res := Result{Step: step}

	caller, err := r.address(step.Caller, "authority")
	if err != nil {
		res.Err = err
		return res
	}

	switch step.Op {
	case OpTransfer:
		var from, to common.Address
		var amount *uint256.Int
		if from, err = r.address(step.From, ""); err != nil {
			break
		}
		if to, err = r.address(step.To, ""); err != nil {
			break
		}
		if amount, err = parseAmount(step.Amount); err != nil {
			break
		}
		res.Receipt, err = r.engine.Transfer(ctx, from, to, amount)
		if res.Receipt != nil {
			res.Outcome = res.Receipt.Conversion
		}

	case OpUpdateFees:
		d, _ := types.ParseDirection(step.Direction)
		switch d {
		case types.DirectionBuy:
			err = r.engine.UpdateBuyFees(ctx, caller, step.Liquidity, step.Marketing)
		case types.DirectionSell:
			err = r.engine.UpdateSellFees(ctx, caller, step.Liquidity, step.Marketing)
		default:
			err = r.engine.UpdateTransferFees(ctx, caller, step.Liquidity, step.Marketing)
		}

	case OpSetMarketingWallet:
		var wallet common.Address
		if wallet, err = r.address(step.Account, ""); err == nil {
			err = r.engine.SetMarketingWallet(ctx, caller, wallet)
		}

	case OpSetThreshold:
		var amount *uint256.Int
		if amount, err = parseAmount(step.Amount); err == nil {
			err = r.engine.SetSwapThreshold(ctx, caller, amount)
		}

	case OpToggleConversion:
		err = r.engine.ToggleAutoConversion(ctx, caller, step.Enabled)

	case OpSetExclusion:
		var account common.Address
		if account, err = r.address(step.Account, ""); err == nil {
			err = r.engine.SetExclusion(ctx, caller, account, step.Enabled)
		}

	case OpSetVenue:
		var venue common.Address
		if venue, err = r.address(step.Account, ""); err == nil {
			err = r.engine.SetVenue(ctx, caller, venue, step.Tier, step.Enabled)
		}

	case OpManualConversion:
		res.Outcome, err = r.engine.ManualConversion(ctx, caller)

	case OpTransferAuthority:
		var next common.Address
		if next, err = r.address(step.Account, ""); err == nil {
			err = r.engine.TransferAuthority(ctx, caller, next)
		}

	case OpRenounceAuthority:
		err = r.engine.RenounceAuthority(ctx, caller)

	default:
		err = fmt.Errorf("未知操作 %q", step.Op)
	}

	res.Err = err
	return res
}

// address 解析别名或十六进制地址，空值时使用 fallback 别名
func (r *Runner) address(s, fallback string) (common.Address, error) {
	if s == "" {
		s = fallback
	}
	if addr, ok := r.aliases[strings.ToLower(s)]; ok {
		return addr, nil
	}
	if !common.IsHexAddress(s) {
		return common.Address{}, fmt.Errorf("非法地址 %q", s)
	}
	return common.HexToAddress(s), nil
}

func parseAmount(s string) (*uint256.Int, error) {
	v, err := uint256.FromDecimal(s)
	if err != nil {
		return nil, fmt.Errorf("非法金额 %q: %w", s, err)
	}
	return v, nil
}
