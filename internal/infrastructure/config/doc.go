// Package config handles loading and validating localstore configuration.
//
// This package manages:
//   - Loading configuration from YAML files
//   - Loading a dotenv file into the environment
//   - Overriding with LOCALSTORE_* environment variables
//   - Validation of required fields
//
// Security Considerations:
//   - Broker passwords and InfluxDB tokens should come from the environment
//   - The config file should have restricted permissions (0600)
//
// Usage:
//
//	if err := config.LoadEnvFile(".env"); err != nil {
//	    return err
//	}
//	cfg, err := config.Load("configs/localstore.yaml")
//	if err != nil {
//	    return err
//	}
//	fmt.Println(cfg.Database.Path())
package config
