package main

import (
	"github.com/drafterhq/drafter/cli"
	"github.com/drafterhq/drafter/logger"
)

func main() {
	logger.InitLogger()
	cli.Execute()
}
