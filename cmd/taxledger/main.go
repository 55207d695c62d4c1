// taxledger 费用账本命令行
//
// 子命令：
//
//	serve     启动账本并开放只读 HTTP API
//	simulate  回放操作脚本并输出每一步的费用拆分
//	inspect   显示账本当前状态
//	version   显示版本信息
package main

func main() {
	Execute()
}
