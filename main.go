// main is the entry point for the divrank CLI.
package main

import (
	"github.com/huangsam/divrank/cmd"
	"github.com/huangsam/divrank/internal/contract"
	"github.com/huangsam/divrank/internal/iocache"
)

func main() {
	cmd.SetCacheManager(iocache.Manager)
	defer iocache.CloseCaching()
	defer func() {
		if err := cmd.StopProfiling(); err != nil {
			contract.LogWarn("Failed to stop profiling", err)
		}
	}()

	if err := cmd.Execute(); err != nil {
		// Deferred calls do not run after os.Exit, so clean up first.
		iocache.CloseCaching()
		_ = cmd.StopProfiling()
		contract.LogFatal("Command failed", err)
	}
}
