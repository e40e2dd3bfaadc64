package cronjob

import (
	"time"

	"github.com/robfig/cron/v3"
)

var _cj *cron.Cron

func init() {
	// Schedules are written against UTC, same as entry timestamps.
	_cj = cron.New(cron.WithLocation(time.UTC))
	_cj.Start()
}

func GetCJ() *cron.Cron {
	return _cj
}

func StopCJ() {
	_cj.Stop()
}
