package api

import (
	"net/http"
)

// CheckHealth reports controller reachability and whether the configuration
// file changed since the server started.
// GET /health
func (h *Handler) CheckHealth(w http.ResponseWriter, r *http.Request) {
	response := HealthCheckResponse{
		Healthy: true,
		Version: h.version,
		Checks:  make(map[string]CheckResult),
	}

	// Check controller connectivity
	status, err := h.deps.ControllerClient().Status(r.Context())
	switch {
	case err != nil:
		response.Healthy = false
		response.Checks["controller"] = CheckResult{
			Passed:  false,
			Message: "Failed to reach controller: " + err.Error(),
		}
	case !status.Online:
		response.Checks["controller"] = CheckResult{
			Passed:  true,
			Message: "Controller node " + status.Address + " is reachable but offline",
		}
	default:
		response.Checks["controller"] = CheckResult{
			Passed:  true,
			Message: "Controller node " + status.Address + " is online",
		}
	}

	// Check configuration file
	if h.configHasher != nil {
		changed, err := h.configHasher.IsConfigChanged()
		if err != nil {
			response.Healthy = false
			response.Checks["config"] = CheckResult{
				Passed:  false,
				Message: "Failed to read configuration: " + err.Error(),
			}
		} else {
			response.ConfigChanged = changed
			response.ConfigHash = h.configHasher.GetActiveConfigHash()
			message := "Configuration is unchanged"
			if changed {
				message = "Configuration changed on disk, restart to apply"
			}
			response.Checks["config"] = CheckResult{Passed: true, Message: message}
		}
	}

	statusCode := http.StatusOK
	if !response.Healthy {
		statusCode = http.StatusServiceUnavailable
	}
	writeJSON(w, statusCode, response)
}
