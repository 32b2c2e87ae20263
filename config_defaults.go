package main

import "encoding/json"

func defaultConfigTemplate() Config {
	return Config{
		Language:        "en",
		InteractionMode: ModeCommandOnly,
		Catalog:         CatalogConfig{DataDir: "data", PriceMatch: "exact"},
		Storage:         StorageConfig{Driver: "sqlite", SQLitePath: "tb_bot_db.db", PoolSize: 4},
		Webhook:         WebhookConfig{ListenAddr: ":5000", ReadTimeoutSeconds: 15, WriteTimeoutSeconds: 15},
		Logging:         LoggingConfig{Level: "info"},
	}
}

func fillMissingConfigFields(configMap map[string]interface{}) bool {
	defaults := defaultConfigTemplate()
	defaultBytes, err := json.Marshal(defaults)
	if err != nil {
		return false
	}
	var defaultMap map[string]interface{}
	if err := json.Unmarshal(defaultBytes, &defaultMap); err != nil {
		return false
	}
	return fillMissingMap(configMap, defaultMap)
}

func fillMissingMap(configMap, defaultMap map[string]interface{}) bool {
	changed := false
	for key, defaultValue := range defaultMap {
		currentValue, exists := configMap[key]
		if !exists || currentValue == nil || currentValue == "" {
			configMap[key] = defaultValue
			changed = true
			continue
		}

		currentMap, currentIsMap := currentValue.(map[string]interface{})
		defaultSubMap, defaultIsMap := defaultValue.(map[string]interface{})
		if currentIsMap && defaultIsMap {
			if fillMissingMap(currentMap, defaultSubMap) {
				changed = true
			}
		}
	}
	return changed
}
