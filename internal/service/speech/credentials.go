package speech

import (
	"fmt"
	"strings"

	speechmodel "github.com/linmiao/lumipet/backend/internal/model/speech"
)

// resolveCredentials returns the normalized AppID and access token, with a
// clear error when either is missing.
func resolveCredentials(cfg *speechmodel.Config) (string, string, error) {
	if cfg == nil {
		return "", "", fmt.Errorf("speech configuration not initialized")
	}

	appID := strings.TrimSpace(cfg.AppID)
	token := strings.TrimSpace(cfg.AccessToken)
	if token == "" {
		token = strings.TrimSpace(cfg.AccessKey)
	}

	if appID == "" || token == "" {
		return "", "", fmt.Errorf("speech configuration missing AppID or access token")
	}

	return appID, token, nil
}
