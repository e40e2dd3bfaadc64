package tools

import (
	"fmt"

	"github.com/lgn-lvx3/pge-nrg-api/config/log"
	"github.com/lgn-lvx3/pge-nrg-api/config/toml"
)

// SafeStart initializes the logger and runs the given background
// starters (cron registration, worker pool) in panic-safe goroutines.
func SafeStart(starters ...func()) {
	// Recover panics in main startup
	defer func() {
		if r := recover(); r != nil {
			fmt.Println("Recovered panic in main startup:", r)
		}
	}()

	log.InitLogger(toml.GetConfig().Log.Path, toml.GetConfig().Log.Level)

	for _, start := range starters {
		start := start
		NewPanicGroup().Go(func() {
			defer func() {
				if r := recover(); r != nil {
					log.Logger.Error("Recovered panic in background starter", log.Any("panic", r))
				}
			}()
			start()
		})
	}
}
