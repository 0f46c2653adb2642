package main

import (
	"github.com/contribgraph/backend/internal/server"
	"github.com/contribgraph/backend/internal/util"
	"github.com/contribgraph/backend/pkg/logger"
	"github.com/contribgraph/backend/pkg/logger/console"
)

func main() {
	util.LoadEnv()

	debug := util.GetEnvBool("DEBUG", false)

	consoleLogger := console.NewConsoleLogger(console.ConsoleLoggerParams{
		Debug: debug,
	})
	logger.Init(consoleLogger)

	server.Init()
}
