package ui

import (
	"fmt"
	"strconv"

	"github.com/ethereum/go-ethereum/common"

	iface "github.com/weisyn/taxledger/pkg/interfaces/taxledger"
	"github.com/weisyn/taxledger/pkg/types"
)

// Overview 显示账本概览：代币、治理、费率、国库、交易场所，以及指定账户的余额
func (r *Report) Overview(q iface.QueryService, accounts []common.Address) error {
	md := q.Metadata()
	swap := q.SwapConfig()
	accrued := q.AccruedShares()

	r.Section("代币")
	if err := r.KeyValues([][]string{
		{"名称", md.Name},
		{"符号", md.Symbol},
		{"精度", strconv.Itoa(int(md.Decimals))},
		{"总量", md.TotalSupply.Dec()},
	}); err != nil {
		return err
	}

	r.Section("治理")
	authority := q.Authority().Hex()
	if q.Authority() == (common.Address{}) {
		authority += " (已放弃)"
	}
	if err := r.KeyValues([][]string{
		{"治理地址", authority},
		{"账本地址", q.SelfAddress().Hex()},
		{"营销钱包", q.MarketingWallet().Hex()},
	}); err != nil {
		return err
	}

	r.Section("费率")
	if err := r.Table([]string{"方向", "流动性", "营销", "合计"}, FeeRows(q.FeeSchedule())); err != nil {
		return err
	}

	r.Section("国库")
	if err := r.KeyValues([][]string{
		{"余额", q.TreasuryBalance().Dec()},
		{"累计流动性", accrued.Liquidity.Dec()},
		{"累计营销", accrued.Marketing.Dec()},
		{"兑换阈值", swap.Threshold.Dec()},
		{"自动兑换", onOff(swap.Enabled)},
	}); err != nil {
		return err
	}

	r.Section("交易场所")
	var venueRows [][]string
	for _, v := range q.Venues() {
		venueRows = append(venueRows, []string{v.Address.Hex(), strconv.FormatUint(uint64(v.Tier), 10)})
	}
	if err := r.Table([]string{"地址", "费率档"}, venueRows); err != nil {
		return err
	}

	if len(accounts) == 0 {
		return nil
	}
	r.Section("账户")
	rows := make([][]string, 0, len(accounts))
	for _, addr := range accounts {
		rows = append(rows, []string{
			addr.Hex(),
			q.BalanceOf(addr).Dec(),
			yesNo(q.IsExcluded(addr)),
			yesNo(q.IsAnyVenue(addr)),
		})
	}
	return r.Table([]string{"地址", "余额", "免费", "交易场所"}, rows)
}

// FeeRows 费率表的表格行，费率以百分比显示
func FeeRows(s types.FeeSchedule) [][]string {
	rows := make([][]string, 0, 3)
	for _, d := range []types.Direction{types.DirectionBuy, types.DirectionSell, types.DirectionTransfer} {
		rates := s.Rates(d)
		rows = append(rows, []string{
			d.String(),
			Percent(uint32(rates.Liquidity)),
			Percent(uint32(rates.Marketing)),
			Percent(rates.Total()),
		})
	}
	return rows
}

// Percent 把基点格式化为百分比
func Percent(bps uint32) string {
	return fmt.Sprintf("%d.%02d%%", bps/100, bps%100)
}

func onOff(b bool) string {
	if b {
		return "开启"
	}
	return "关闭"
}

func yesNo(b bool) string {
	if b {
		return "是"
	}
	return "否"
}
