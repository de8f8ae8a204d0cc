// Package paths centralizes filesystem path defaults and resolution for
// mcpdock.
//
// The historical fixed paths (/app/config.json, /tmp/config.json,
// config.json, Dockerfile.template, Dockerfile) are declared here as
// defaults rather than hard-coded at call sites, so every entry point takes
// explicit path parameters and only falls back to these values.
package paths
