package player

import (
	"github.com/leandrodaf/maestro/internal/focus"
	"github.com/leandrodaf/maestro/internal/logger"
	"github.com/leandrodaf/maestro/sdk/contracts"
)

// applyDefaultOptions sets default values for PlayerOptions if not
// explicitly provided.
func applyDefaultOptions(opts ...contracts.Option) (contracts.PlayerOptions, error) {
	options := &contracts.PlayerOptions{}
	for _, opt := range opts {
		opt(options)
	}

	if options.Logger == nil {
		options.Logger = logger.NewZapLogger()
	}
	if options.LogLevel == 0 {
		options.LogLevel = contracts.InfoLevel
	}
	if options.Speed == 0 {
		options.Speed = 1.0
	}
	if options.Lookahead == 0 {
		options.Lookahead = 5.0
	}
	if options.Focus == nil {
		options.Focus = focus.New()
	}

	options.Logger.SetLevel(options.LogLevel)
	return *options, nil
}
