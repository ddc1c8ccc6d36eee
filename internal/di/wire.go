//go:build wireinject
// +build wireinject

package di

import (
	"github.com/google/wire"
)

// InitializeContainer builds the full application via Wire.
func InitializeContainer() (*Container, error) {
	wire.Build(ProviderSet)
	return nil, nil
}
