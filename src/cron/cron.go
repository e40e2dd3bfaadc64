package cron

import (
	"time"

	"github.com/lgn-lvx3/pge-nrg-api/config/cronjob"
	"github.com/lgn-lvx3/pge-nrg-api/config/log"
	"github.com/lgn-lvx3/pge-nrg-api/config/mysql"
	"github.com/lgn-lvx3/pge-nrg-api/src/service"

	"go.uber.org/zap"
)

// CreateBaseCronJob registers the scheduled jobs. Currently one: the
// hourly alert scan that mails users whose latest entries exceed their
// threshold.
func CreateBaseCronJob() {
	_cron := cronjob.GetCJ()

	_cron.AddFunc("@every 1h", func() {
		defer func() {
			if r := recover(); r != nil {
				log.Logger.Error("Recovered from panic in alert scan", zap.Any("panic", r))
			}
		}()

		log.Logger.Info("Alert scan triggered", zap.Time("timestamp", time.Now().UTC()))
		if err := service.IAlertService.ScanAndNotify(mysql.GetDB(), time.Hour); err != nil {
			log.Logger.Error("Alert scan failed", zap.Error(err))
		}
	})
}
