package main

import (
	"fmt"
	"net/http"
	"time"

	_ "github.com/lgn-lvx3/pge-nrg-api/config/mysql"
	"github.com/lgn-lvx3/pge-nrg-api/config/toml"
	"github.com/lgn-lvx3/pge-nrg-api/config/worker"
	"github.com/lgn-lvx3/pge-nrg-api/src/api"
	"github.com/lgn-lvx3/pge-nrg-api/src/cron"
	"github.com/lgn-lvx3/pge-nrg-api/src/tools"
)

func main() {
	cfg := toml.GetConfig().Process
	tools.SafeStart(
		cron.CreateBaseCronJob,
		func() { worker.StartWorkerPool(cfg.Numworkers, cfg.Jobqueuesize) },
	)

	r := api.NewRouter()
	s := &http.Server{
		Addr:           ":8080",
		Handler:        r,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   15 * time.Minute, // direct uploads stream the whole file
		MaxHeaderBytes: 1 << 20,
	}

	err := s.ListenAndServe()
	if nil != err {
		fmt.Println(err)
	}
}
