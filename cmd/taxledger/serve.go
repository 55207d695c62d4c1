package main

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/weisyn/taxledger/internal/app"
	"github.com/weisyn/taxledger/internal/app/version"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "启动账本并开放只读 HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := app.Start(appOptions()...)
		if err != nil {
			return err
		}

		engine := a.Engine()
		pterm.Success.Printfln("费用账本 %s 已启动", version.GetVersion())
		pterm.Info.Printfln("账本地址: %s", engine.SelfAddress().Hex())
		pterm.Info.Printfln("治理地址: %s", engine.Authority().Hex())
		pterm.Info.Println("按 Ctrl+C 退出")

		a.Wait()
		return nil
	},
}
