// Package api 对外接口
package api

import (
	"go.uber.org/fx"

	"github.com/weisyn/taxledger/internal/api/http"
)

// Module 返回API模块
func Module() fx.Option {
	return fx.Module("api",
		http.Module(),
		// 确保服务器被实例化并注册生命周期
		fx.Invoke(func(*http.Server) {}),
	)
}
