package handlers

import (
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/ramonskie/mediareaparr/internal/config"
	"github.com/ramonskie/mediareaparr/internal/services"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

// SettingsHandler handles settings management requests
type SettingsHandler struct {
	runner    *services.Runner
	onUpdated func()
}

// NewSettingsHandler creates a new SettingsHandler. onUpdated is called after
// a successful save and reload, so the scheduler can pick up a new cron.
func NewSettingsHandler(runner *services.Runner, onUpdated func()) *SettingsHandler {
	return &SettingsHandler{
		runner:    runner,
		onUpdated: onUpdated,
	}
}

// SanitizedSettings is the settings view returned to clients. Secrets are
// replaced by has_* booleans.
type SanitizedSettings struct {
	Admin    SanitizedAdminSettings  `json:"admin"`
	Server   config.ServerConfig     `json:"server"`
	App      config.AppConfig        `json:"app"`
	Radarr   SanitizedRadarrSettings `json:"radarr"`
	Rule     config.RuleConfig       `json:"rule"`
	Schedule config.ScheduleConfig   `json:"schedule"`
}

// SanitizedAdminSettings holds admin settings without the password
type SanitizedAdminSettings struct {
	Username    string `json:"username"`
	DisableAuth bool   `json:"disable_auth"`
}

// SanitizedRadarrSettings holds Radarr settings without the API key
type SanitizedRadarrSettings struct {
	URL            string `json:"url"`
	HasAPIKey      bool   `json:"has_api_key"`
	TimeoutSeconds int    `json:"timeout_seconds"`
	Verified       bool   `json:"verified"`
}

func sanitize(cfg *config.Config) SanitizedSettings {
	return SanitizedSettings{
		Admin: SanitizedAdminSettings{
			Username:    cfg.Admin.Username,
			DisableAuth: cfg.Admin.DisableAuth,
		},
		Server: cfg.Server,
		App:    cfg.App,
		Radarr: SanitizedRadarrSettings{
			URL:            cfg.Radarr.URL,
			HasAPIKey:      cfg.Radarr.APIKey != "",
			TimeoutSeconds: cfg.Radarr.TimeoutSeconds,
			Verified:       cfg.Radarr.Verified,
		},
		Rule:     cfg.Rule,
		Schedule: cfg.Schedule,
	}
}

// GetSettings handles GET /api/settings
func (h *SettingsHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	cfg := config.Get()
	if cfg == nil {
		log.Error().Msg("Config not initialized")
		respondError(w, http.StatusInternalServerError, "Config not initialized")
		return
	}

	respondJSON(w, http.StatusOK, sanitize(cfg))
}

// UpdateSettingsRequest represents a settings update request. Only fields
// present in the body are applied.
type UpdateSettingsRequest struct {
	Admin    *UpdateAdminSettings   `json:"admin,omitempty"`
	App      *config.AppConfig      `json:"app,omitempty"`
	Radarr   *UpdateRadarrSettings  `json:"radarr,omitempty"`
	Rule     *UpdateRuleSettings    `json:"rule,omitempty"`
	Schedule *config.ScheduleConfig `json:"schedule,omitempty"`
}

// UpdateAdminSettings holds updatable admin settings
type UpdateAdminSettings struct {
	Username    *string `json:"username,omitempty"`
	Password    *string `json:"password,omitempty"`
	DisableAuth *bool   `json:"disable_auth,omitempty"`
}

// UpdateRadarrSettings holds updatable Radarr connection settings
type UpdateRadarrSettings struct {
	URL            *string `json:"url,omitempty"`
	APIKey         *string `json:"api_key,omitempty"`
	TimeoutSeconds *int    `json:"timeout_seconds,omitempty"`
}

// UpdateRuleSettings holds updatable rule settings
type UpdateRuleSettings struct {
	TagLabel           *string `json:"tag_label,omitempty"`
	DaysOld            *int    `json:"days_old,omitempty"`
	DryRun             *bool   `json:"dry_run,omitempty"`
	DeleteFiles        *bool   `json:"delete_files,omitempty"`
	AddImportExclusion *bool   `json:"add_import_exclusion,omitempty"`
}

// UpdateSettings handles PUT /api/settings
func (h *SettingsHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req UpdateSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error().Err(err).Msg("Failed to decode update settings request")
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	cfg := config.Get()
	if cfg == nil {
		log.Error().Msg("Config not initialized")
		respondError(w, http.StatusInternalServerError, "Config not initialized")
		return
	}

	newCfg := *cfg

	if req.Admin != nil {
		if req.Admin.Username != nil {
			newCfg.Admin.Username = *req.Admin.Username
		}
		if req.Admin.Password != nil {
			newCfg.Admin.Password = *req.Admin.Password
		}
		if req.Admin.DisableAuth != nil {
			newCfg.Admin.DisableAuth = *req.Admin.DisableAuth
		}
	}

	if req.App != nil {
		newCfg.App = *req.App
	}

	if req.Radarr != nil {
		if req.Radarr.URL != nil {
			url := strings.TrimRight(*req.Radarr.URL, "/")
			if url != newCfg.Radarr.URL {
				newCfg.Radarr.URL = url
				newCfg.Radarr.Verified = false
			}
		}
		if req.Radarr.APIKey != nil && *req.Radarr.APIKey != newCfg.Radarr.APIKey {
			newCfg.Radarr.APIKey = *req.Radarr.APIKey
			newCfg.Radarr.Verified = false
		}
		if req.Radarr.TimeoutSeconds != nil {
			newCfg.Radarr.TimeoutSeconds = *req.Radarr.TimeoutSeconds
		}
	}

	if req.Rule != nil {
		if req.Rule.TagLabel != nil {
			newCfg.Rule.TagLabel = *req.Rule.TagLabel
		}
		if req.Rule.DaysOld != nil {
			newCfg.Rule.DaysOld = *req.Rule.DaysOld
		}
		if req.Rule.DryRun != nil {
			newCfg.Rule.DryRun = *req.Rule.DryRun
		}
		if req.Rule.DeleteFiles != nil {
			newCfg.Rule.DeleteFiles = *req.Rule.DeleteFiles
		}
		if req.Rule.AddImportExclusion != nil {
			newCfg.Rule.AddImportExclusion = *req.Rule.AddImportExclusion
		}
	}

	if req.Schedule != nil {
		newCfg.Schedule = *req.Schedule
	}

	config.SetDefaults(&newCfg)

	if err := config.Validate(&newCfg); err != nil {
		log.Error().Err(err).Msg("Settings validation failed")
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := writeConfigToFile(&newCfg); err != nil {
		log.Error().Err(err).Msg("Failed to write config to file")
		respondError(w, http.StatusInternalServerError, "Failed to save settings")
		return
	}

	if err := config.Reload(); err != nil {
		log.Error().Err(err).Msg("Failed to reload config")
		respondError(w, http.StatusInternalServerError, "Failed to reload settings")
		return
	}

	if h.onUpdated != nil {
		h.onUpdated()
	}

	log.Info().Msg("Settings updated successfully")
	respondJSON(w, http.StatusOK, sanitize(config.Get()))
}

// TestConnectionRequest optionally carries connection settings to test
// instead of the saved ones.
type TestConnectionRequest struct {
	URL    *string `json:"url,omitempty"`
	APIKey *string `json:"api_key,omitempty"`
}

// TestConnectionResponse reports a connection test outcome
type TestConnectionResponse struct {
	OK       bool   `json:"ok"`
	Verified bool   `json:"verified"`
	Error    string `json:"error,omitempty"`
}

// TestConnection handles POST /api/settings/test-connection. On a successful
// test of the saved settings, radarr.verified is flipped to true and
// persisted; that flag is what allows a non-dry run to start.
func (h *SettingsHandler) TestConnection(w http.ResponseWriter, r *http.Request) {
	var req TestConnectionRequest
	if r.Body != nil {
		// An empty body means "test the saved settings"
		_ = json.NewDecoder(r.Body).Decode(&req)
	}

	cfg := config.Get()
	if cfg == nil {
		respondError(w, http.StatusInternalServerError, "Config not initialized")
		return
	}

	radarrCfg := cfg.Radarr
	adhoc := false
	if req.URL != nil {
		radarrCfg.URL = strings.TrimRight(*req.URL, "/")
		adhoc = radarrCfg.URL != cfg.Radarr.URL
	}
	if req.APIKey != nil {
		if *req.APIKey != cfg.Radarr.APIKey {
			adhoc = true
		}
		radarrCfg.APIKey = *req.APIKey
	}

	if radarrCfg.URL == "" || radarrCfg.APIKey == "" {
		respondJSON(w, http.StatusBadRequest, TestConnectionResponse{
			Error: "Radarr URL and API key are required",
		})
		return
	}

	if err := h.runner.TestConnection(r.Context(), radarrCfg); err != nil {
		log.Warn().Err(err).Str("url", radarrCfg.URL).Msg("Radarr connection test failed")
		respondJSON(w, http.StatusOK, TestConnectionResponse{Error: err.Error()})
		return
	}

	verified := false
	if !adhoc {
		// Persist the verified flag so live runs are unlocked across restarts.
		newCfg := *cfg
		newCfg.Radarr.Verified = true
		if err := writeConfigToFile(&newCfg); err != nil {
			log.Error().Err(err).Msg("Failed to persist verified flag")
		} else if err := config.Reload(); err != nil {
			log.Error().Err(err).Msg("Failed to reload config after connection test")
		} else {
			verified = true
		}
	}

	log.Info().Str("url", radarrCfg.URL).Bool("verified", verified).Msg("Radarr connection test succeeded")
	respondJSON(w, http.StatusOK, TestConnectionResponse{OK: true, Verified: verified})
}

// writeConfigToFile writes the config to the YAML file
func writeConfigToFile(cfg *config.Config) error {
	configPath := config.GetPath()
	if configPath == "" {
		configPath = "./config/config.yaml"
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		log.Error().Err(err).Msg("Failed to marshal config to YAML")
		return err
	}

	header := "# Mediareaparr Configuration\n# Generated by the settings API\n\n"
	content := header + string(data)

	// Preserve original permissions, 0600 for new files
	info, err := os.Stat(configPath)
	perm := os.FileMode(0600)
	if err == nil {
		perm = info.Mode()
	}

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		log.Error().Err(err).Str("dir", dir).Msg("Failed to create config directory")
		return err
	}

	if err := os.WriteFile(configPath, []byte(content), perm); err != nil {
		log.Error().Err(err).Str("path", configPath).Msg("Failed to write config file")
		return err
	}

	log.Info().Str("path", configPath).Msg("Config file written")
	return nil
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, ErrorResponse{Error: msg})
}
