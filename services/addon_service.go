package services

import (
	"strings"

	config "github.com/tutorpress/tutorpress-api/configs"
)

// AddonService answers the two questions every certificate endpoint asks
// before doing any work: is Tutor LMS active at all, and is a given addon
// enabled for this install. Both are resolved once from configuration.
type AddonService struct {
	tutorActive bool
	enabled     map[string]bool
}

func NewAddonService() *AddonService {
	active := config.ConfigDefault("TUTOR_ACTIVE", "true") != "false"

	enabled := make(map[string]bool)
	for _, name := range strings.Split(config.Config("TUTOR_ADDONS"), ",") {
		name = strings.TrimSpace(name)
		if name != "" {
			enabled[name] = true
		}
	}
	return &AddonService{tutorActive: active, enabled: enabled}
}

// NewAddonServiceWith builds a fixed-flag service, mainly for tests.
func NewAddonServiceWith(tutorActive bool, addons ...string) *AddonService {
	enabled := make(map[string]bool, len(addons))
	for _, name := range addons {
		enabled[name] = true
	}
	return &AddonService{tutorActive: tutorActive, enabled: enabled}
}

func (s *AddonService) PluginActive() bool {
	return s.tutorActive
}

func (s *AddonService) CanUserAccessFeature(name string) bool {
	return s.enabled[name]
}
