package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

type HealthResponse struct {
	Status        string            `json:"status"`
	Time          string            `json:"time"`
	Version       string            `json:"version,omitempty"`
	SchemaVersion int64             `json:"schema_version,omitempty"`
	Checks        map[string]string `json:"checks"`
}

type HealthController struct {
	store   HealthChecker
	version string
}

func NewHealthController(store HealthChecker, version string) *HealthController {
	return &HealthController{store: store, version: version}
}

// Status reports database reachability and the applied schema version.
// Any failed check turns the whole response into 503.
func (h *HealthController) Status(c *gin.Context) {
	resp := HealthResponse{
		Status:  "healthy",
		Time:    time.Now().UTC().Format(time.RFC3339),
		Version: h.version,
		Checks:  map[string]string{},
	}

	fail := func(check string, err error) {
		resp.Checks[check] = "error: " + err.Error()
		resp.Status = "unhealthy"
	}

	switch {
	case h.store == nil:
		resp.Checks["database"] = "not configured"
	default:
		if err := h.store.Ping(); err != nil {
			fail("database", err)
			break
		}
		resp.Checks["database"] = "ok"

		v, err := h.store.SchemaVersion()
		if err != nil {
			fail("schema", err)
			break
		}
		resp.SchemaVersion = v
		resp.Checks["schema"] = strconv.FormatInt(v, 10)
	}

	code := http.StatusOK
	if resp.Status != "healthy" {
		code = http.StatusServiceUnavailable
	}
	c.IndentedJSON(code, resp)
}
