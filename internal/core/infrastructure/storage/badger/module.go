package badger

import (
	"context"

	"go.uber.org/fx"

	badgerconfig "github.com/weisyn/taxledger/internal/config/storage/badger"
	"github.com/weisyn/taxledger/pkg/interfaces/config"
	"github.com/weisyn/taxledger/pkg/interfaces/infrastructure/log"
	"github.com/weisyn/taxledger/pkg/interfaces/infrastructure/storage"
)

// ModuleInput 存储模块输入依赖
type ModuleInput struct {
	fx.In

	Provider  config.Provider
	Logger    log.Logger `optional:"true"`
	Lifecycle fx.Lifecycle
}

// Module 返回BadgerDB存储模块
func Module() fx.Option {
	return fx.Module("storage",
		fx.Provide(ProvideStore),
	)
}

// ProvideStore 打开存储并在停止时关闭
func ProvideStore(input ModuleInput) (storage.BadgerStore, error) {
	var logger log.Logger
	if input.Logger != nil {
		logger = input.Logger.With("module", "storage")
	}

	store, err := New(badgerconfig.NewFromOptions(input.Provider.GetBadger()), logger)
	if err != nil {
		return nil, err
	}

	input.Lifecycle.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return store.Close()
		},
	})
	return store, nil
}
