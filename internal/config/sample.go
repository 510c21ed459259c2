package config

// SampleConfig returns a fully documented configuration file
func SampleConfig() string {
	return `# VSS site configuration
version: "1.0"

site:
  # YAML content file; leave empty to serve the built-in page
  content_path: ""
  # Deployment base path; must start and end with '/'
  base_path: /vss-site/
  # Reload content when the file changes (serve and browse)
  watch: false

server:
  address: 127.0.0.1:8080
  read_timeout: 10s
  write_timeout: 10s
  shutdown_timeout: 5s
  # Per-request deadline; slower requests get 504
  request_timeout: 30s

contact:
  # simulated: accept every submission after simulated_delay
  # http: POST JSON to endpoint (e.g. a running "vss serve")
  mode: simulated
  endpoint: http://127.0.0.1:8080/vss-site/api/contact
  simulated_delay: 800ms
  timeout: 10s
  # Empty the form after a successful submission
  clear_on_success: false

disclosure:
  # shared: one panel open across the page; per_list: one per accordion
  scope: shared

ui:
  # vss, high-contrast or minimal
  theme: vss
  # Lines hidden under the sticky nav bar when tracking the active section
  scroll_offset: 2
  smooth_scroll: true
  scroll_frame: 16ms
  # Below this width the nav bar collapses into a menu
  narrow_width: 100

output:
  # text, json, markdown or csv
  default_format: text
  # auto, always or never
  color_mode: auto
  verbose: false
`
}

// MinimalSampleConfig returns a configuration file with the settings most
// deployments change
func MinimalSampleConfig() string {
	return `version: "1.0"
site:
  base_path: /vss-site/
server:
  address: 127.0.0.1:8080
contact:
  mode: simulated
`
}
