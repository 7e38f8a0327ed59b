// Package autoload initializes the global logger from the LOG-prefixed
// environment as a side effect of being imported.
package autoload

import (
	"github.com/kelseyhightower/envconfig"

	logx "github.com/al-jwarizmi/mongodb-agents/pkg/logger"
)

func init() {
	// Reads the environment directly: init runs before main registers its
	// flags, so the flag-aware config loader cannot be used here.
	var cfg logx.Config
	if err := envconfig.Process("LOG", &cfg); err != nil {
		logx.Init()
		return
	}
	logx.Init(cfg)
}
