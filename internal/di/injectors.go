//go:build wireinject
// +build wireinject

package di

import (
	wire "github.com/google/wire"

	"github.com/iksnae/question-digest/internal"
	"github.com/iksnae/question-digest/internal/server"
)

func InitServer(conf *internal.Config) (*server.Server, error) {

	wire.Build(
		internal.NewPipelineFromConfig,
		server.NewZstdCompressor,
		server.NewDatasetStore,
		server.NewCache,
		server.NewRegistry,
		server.NewMetrics,
		server.NewHandlers,
		server.InitRoutes,
		server.NewServer,
	)

	return nil, nil
}
