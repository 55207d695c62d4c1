package main

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"

	"github.com/weisyn/taxledger/internal/app"
	"github.com/weisyn/taxledger/internal/cli/ui"
)

var inspectAccounts []string

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "显示账本当前状态",
	RunE: func(cmd *cobra.Command, args []string) error {
		accounts, err := parseAddresses(inspectAccounts)
		if err != nil {
			return err
		}

		a, err := app.Start(appOptions(app.WithoutAPI())...)
		if err != nil {
			return err
		}
		defer func() { _ = a.Stop() }()

		engine := a.Engine()
		accounts = append([]common.Address{engine.Authority()}, accounts...)
		return ui.NewReport(cmd.OutOrStdout()).Overview(engine, accounts)
	},
}

func parseAddresses(raw []string) ([]common.Address, error) {
	out := make([]common.Address, 0, len(raw))
	for _, s := range raw {
		if !common.IsHexAddress(s) {
			return nil, fmt.Errorf("非法地址 %q", s)
		}
		out = append(out, common.HexToAddress(s))
	}
	return out, nil
}

func init() {
	inspectCmd.Flags().StringSliceVarP(&inspectAccounts, "account", "a", nil, "额外显示的账户地址，可重复")
}
