// Package main is the entry point of steadyplay.
package main

import (
	"github.com/samber/lo"
	"github.com/steadyplay/steadyplay/cmd"
	"github.com/steadyplay/steadyplay/config"
	"github.com/steadyplay/steadyplay/internal/cache"
	"github.com/steadyplay/steadyplay/log"
)

func main() {
	lo.Must0(config.Setup())
	lo.Must0(log.Setup())

	go cache.CollectGarbage()

	cmd.Execute()
}
