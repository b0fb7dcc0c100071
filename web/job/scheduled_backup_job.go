// Package job contains the cron jobs run by the web server.
package job

import (
	"os"

	"github.com/ruvumera/choir-panel/config"
	"github.com/ruvumera/choir-panel/logger"
	"github.com/ruvumera/choir-panel/util/common"
	"github.com/ruvumera/choir-panel/web/service"
)

// ScheduledBackupJob writes a full JSON export to the backup folder on the
// schedule configured in settings.
type ScheduledBackupJob struct {
	backupService  service.BackupService
	settingService service.SettingService
}

func NewScheduledBackupJob() *ScheduledBackupJob {
	return new(ScheduledBackupJob)
}

func (j *ScheduledBackupJob) Run() {
	folder, err := j.settingService.GetBackupFolder()
	if err != nil || folder == "" {
		folder = config.GetBackupFolderPath()
	}

	path, err := j.backupService.WriteToFolder(folder)
	if err != nil {
		logger.Warning("scheduled backup failed:", err)
		return
	}
	if info, err := os.Stat(path); err == nil {
		logger.Infof("scheduled backup written to %s (%s)", path, common.FormatBytes(info.Size()))
	} else {
		logger.Info("scheduled backup written to", path)
	}
}
