package commands

import (
	"fmt"

	"github.com/spf13/viper"
)

// LoadMetrics reads a flat metrics file (yaml/json/toml, sniffed by viper
// from the extension) of kpi id -> numeric value pairs.
func LoadMetrics(path string) (map[string]float64, error) {
	v := viper.New()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read metrics file: %w", err)
	}

	metrics := make(map[string]float64)
	for _, key := range v.AllKeys() {
		if !v.IsSet(key) {
			continue
		}
		metrics[key] = v.GetFloat64(key)
	}
	return metrics, nil
}
