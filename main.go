// main is the entry point for the pnrlens CLI.
package main

import (
	"github.com/edakit/pnrlens/cmd"
	"github.com/edakit/pnrlens/internal/contract"
	"github.com/edakit/pnrlens/internal/iocache"
)

func main() {
	if err := cmd.Execute(); err != nil {
		iocache.CloseStores()
		contract.LogFatal("command failed", err)
	}
	iocache.CloseStores()
}
