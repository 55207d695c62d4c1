package main

import (
	"strconv"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"

	"github.com/weisyn/taxledger/internal/app"
	"github.com/weisyn/taxledger/internal/cli/ui"
	"github.com/weisyn/taxledger/internal/scenario"
	iface "github.com/weisyn/taxledger/pkg/interfaces/taxledger"
)

var simulateCmd = &cobra.Command{
	Use:   "simulate <scenario.json>",
	Short: "回放操作脚本并输出每一步的费用拆分",
	Long: `回放操作脚本并输出每一步的费用拆分。

脚本在当前账本状态上执行，结束时写入检查点。
配合 --in-memory 可以在全新的创世状态上回放而不落盘。`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sc, err := scenario.Load(args[0])
		if err != nil {
			return err
		}

		a, err := app.Start(appOptions(app.WithoutAPI())...)
		if err != nil {
			return err
		}
		defer func() { _ = a.Stop() }()

		engine := a.Engine()
		results, runErr := scenario.NewRunner(engine, primaryVenue(engine)).Run(cmd.Context(), sc)

		report := ui.NewReport(cmd.OutOrStdout())
		if err := renderResults(report, sc, results); err != nil {
			return err
		}
		if err := report.Overview(engine, nil); err != nil {
			return err
		}
		return runErr
	},
}

// primaryVenue 脚本中 venue 别名指向的地址
func primaryVenue(q iface.QueryService) common.Address {
	venues := q.Venues()
	if len(venues) == 0 {
		return common.Address{}
	}
	return venues[0].Address
}

func renderResults(report *ui.Report, sc *scenario.Scenario, results []scenario.Result) error {
	title := sc.Name
	if title == "" {
		title = "脚本"
	}
	report.Section(title)
	if sc.Description != "" {
		report.Info(sc.Description)
	}

	if err := report.Table(
		[]string{"#", "操作", "方向", "金额", "流动性费", "营销费", "到账", "兑换", "结果"},
		stepRows(results),
	); err != nil {
		return err
	}

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
	}
	if failed == 0 {
		report.Success("%d 步全部成功", len(results))
	} else {
		report.Warning("%d 步中有 %d 步失败", len(results), failed)
	}
	return nil
}

// stepRows 每一步一行，非转账步骤的费用列留空
func stepRows(results []scenario.Result) [][]string {
	rows := make([][]string, 0, len(results))
	for _, r := range results {
		row := []string{strconv.Itoa(r.Index), r.Step.Op, "", "", "", "", "", "", "ok"}
		if rc := r.Receipt; rc != nil {
			row[2] = rc.Direction.String()
			row[3] = rc.Amount.Dec()
			row[4] = rc.LiquidityFee.Dec()
			row[5] = rc.MarketingFee.Dec()
			row[6] = rc.Net.Dec()
		}
		if o := r.Outcome; o != nil {
			switch {
			case o.Succeeded && o.AmountIn != nil:
				row[7] = o.AmountIn.Dec()
			case o.Succeeded:
				row[7] = "成功"
			default:
				row[7] = "失败: " + o.Reason
			}
		}
		if r.Err != nil {
			row[8] = r.Err.Error()
		}
		rows = append(rows, row)
	}
	return rows
}
