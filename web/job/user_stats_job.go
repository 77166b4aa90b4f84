// Package job contains the background jobs scheduled by the web server.
package job

import (
	"usergate/logger"
	"usergate/util/common"
	"usergate/web/service"
)

// UserStatsJob periodically logs the size of the user store.
type UserStatsJob struct {
	userService *service.UserService
}

func NewUserStatsJob() *UserStatsJob {
	return &UserStatsJob{userService: service.NewUserService()}
}

func (j *UserStatsJob) Run() {
	defer common.Recover("user stats job")

	count, err := j.userService.CountUsers()
	if err != nil {
		logger.Warning("count users failed:", err)
		return
	}
	logger.Debugf("user store holds %d users", count)
}
