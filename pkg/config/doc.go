// Package config provides configuration loading, validation, and defaults
// for the DS-Search core.
//
// Configuration is loaded from a YAML file, defaults are applied for any
// unset fields, and environment variables with the DSSEARCH_ prefix override
// file values. The final configuration is validated before use.
//
// Example:
//
//	cfg, err := config.LoadConfigWithEnvOverrides("config.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
package config
