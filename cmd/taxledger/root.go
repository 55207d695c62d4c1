package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/weisyn/taxledger/internal/app"
)

// GlobalFlags 全局标志
type GlobalFlags struct {
	ConfigFile string // 配置文件路径
	InMemory   bool   // 不读写磁盘检查点
}

var globalFlags GlobalFlags

// rootCmd 根命令
var rootCmd = &cobra.Command{
	Use:   "taxledger",
	Short: "收费代币账本",
	Long: `taxledger - 按方向收费的代币账本

转账按买入、卖出、普通转账三个方向收取流动性与营销费用，
费用累计到账本自身的国库，超过阈值后自动交给交易场所兑换。

配置文件缺省时使用内嵌默认配置。`,
	SilenceUsage: true,
}

// Execute 执行根命令
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "错误: %v\n", err)
		os.Exit(1)
	}
}

// appOptions 根据全局标志组装应用选项
func appOptions(extra ...app.Option) []app.Option {
	var opts []app.Option
	if globalFlags.ConfigFile != "" {
		opts = append(opts, app.WithConfigFile(globalFlags.ConfigFile))
	}
	if globalFlags.InMemory {
		opts = append(opts, app.WithInMemoryStorage())
	}
	return append(opts, extra...)
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&globalFlags.ConfigFile, "config", "c", "", "配置文件路径 (默认使用内嵌配置)")
	rootCmd.PersistentFlags().BoolVar(&globalFlags.InMemory, "in-memory", false, "使用内存存储，不读写磁盘检查点")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(versionCmd)
}
