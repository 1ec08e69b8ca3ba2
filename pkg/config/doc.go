/*
Package config defines the Beacon configuration model and its loading
pipeline.

Configuration is a single YAML file with three sections: server (listener
and timeouts), collector (cookie/do-not-track policy, redirect toggle,
path mappings, cross-domain and CORS settings) and telemetry (logging,
metrics, tracing).

Loading sequence:

 1. Read and parse the YAML file
 2. Apply default values for anything unset
 3. Optionally apply BEACON_* environment variable overrides
 4. Validate the final configuration

Example:

	cfg, err := config.LoadConfigWithEnvOverrides("config.yaml")
	if err != nil {
		return err
	}

The package also provides a debounced fsnotify watcher so the process can
reload collector policy settings (cookie name, DNT rule, redirect toggle)
without a restart:

	w, err := config.NewWatcher(path)
	if err != nil {
		return err
	}
	go w.Watch(ctx, func() error { return reload() })
*/
package config
