// Package config manages the settings of the geoadmin client.
//
// Settings come from three layers, later ones winning:
//
//  1. the YAML settings file in the OS config directory
//  2. a .env file in the working directory, loaded into the environment
//  3. GEOADMIN_* environment variables
//
// Command-line flags are applied on top by the caller.
//
// # Configuration File Location
//
//   - Linux: $XDG_CONFIG_HOME/geoadmin/config.yaml or $HOME/.config/geoadmin/config.yaml
//   - macOS: $HOME/.config/geoadmin/config.yaml
//   - Windows: %LOCALAPPDATA%\geoadmin\config.yaml
//
// # Usage Example
//
//	settings, err := config.Load()
//	if err != nil {
//	    return err
//	}
//	client := apiclient.NewClient(settings.API.URL)
//
// Backends found with `geoadmin discover` are remembered under servers:
//
//	settings.RememberServer("lab-backend", "http://192.168.1.40:8080")
//	err = settings.Save()
//
// File writes are atomic (temp file + rename) and serialized by a mutex.
package config
