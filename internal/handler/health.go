package handler

import (
	"context"
	"net/http"
	"time"

	"pdv/internal/infra"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Health returns a JSON health check response.
// Backends that are not configured (nil) report "disabled" and do not fail
// the check; never exposes credentials or internals.
func Health(storageDriver string, db *gorm.DB, rdb *redis.Client, jobsCB *infra.CircuitBreaker) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		dbStatus := "disabled"
		if db != nil {
			dbStatus = "connected"
			sqlDB, err := db.DB()
			if err != nil || sqlDB.PingContext(ctx) != nil {
				dbStatus = "error"
			}
		}

		redisStatus := "disabled"
		if rdb != nil {
			redisStatus = "connected"
			if rdb.Ping(ctx).Err() != nil {
				redisStatus = "error"
			}
		}

		// An open breaker only degrades receipts; the API stays healthy.
		jobsStatus := "disabled"
		if jobsCB != nil {
			jobsStatus = jobsCB.State().String()
		}

		status := http.StatusOK
		if dbStatus == "error" || redisStatus == "error" {
			status = http.StatusServiceUnavailable
		}

		c.JSON(status, gin.H{
			"ok":      status == http.StatusOK,
			"storage": storageDriver,
			"db":      dbStatus,
			"redis":   redisStatus,
			"jobs":    jobsStatus,
		})
	}
}
