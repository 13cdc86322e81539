package endpoint

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/skillsenselab/yumlsvg/diagram"
	"github.com/skillsenselab/yumlsvg/version"
)

// startTime records when the process started for uptime calculation.
var startTime = time.Now()

// Info returns a handler that reports service version, build information,
// and the supported diagram types.
func Info(serviceName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		v := version.Get()
		c.JSON(http.StatusOK, gin.H{
			"service":       serviceName,
			"version":       v.Version,
			"git_commit":    v.GitCommit,
			"build_time":    v.BuildTime,
			"go_version":    v.GoVersion,
			"is_release":    v.IsRelease,
			"diagram_types": diagram.KnownTypes(),
			"uptime":        time.Since(startTime).String(),
			"timestamp":     time.Now().UTC().Format(time.RFC3339),
		})
	}
}
