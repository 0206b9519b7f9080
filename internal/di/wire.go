//go:build wireinject

package di

import (
	"context"

	"github.com/google/wire"

	"github.com/Kargones/profillog/internal/config"
)

//go:generate wire

// ProviderSet объединяет все провайдеры приложения.
var ProviderSet = wire.NewSet(
	ProvideLogger,
	ProvideOutputWriter,
	ProvideTraceID,
	ProvideMetricsCollector,
	ProvideTracerProvider,
	ProvideAlerter,
	ProvideStores,
	ProvideJournal,
	ProvideReader,
	wire.Struct(new(App), "*"),
)

// InitializeApp собирает App из загруженного Config.
// ctx используется при открытии хранилищ (подключение к SQL).
// Вызывающий обязан вызвать cleanup после работы.
func InitializeApp(ctx context.Context, cfg *config.Config) (*App, func(), error) {
	wire.Build(ProviderSet)
	return nil, nil, nil
}
