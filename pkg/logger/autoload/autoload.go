// Package autoload initializes the global logger from the LOG_* environment
// on import:
//
//	import _ "github.com/ifoodlabs/concierge/pkg/logger/autoload"
package autoload

import (
	configx "github.com/ifoodlabs/concierge/pkg/config"
	logx "github.com/ifoodlabs/concierge/pkg/logger"
)

func init() {
	cfg, err := configx.New[logx.Config]("LOG")
	if err != nil {
		cfg = logx.DefaultConfig
	}
	logx.Init(*cfg)
}
