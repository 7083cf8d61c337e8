// Package provider defines the pluggable language-model client used to
// collect product data, plus the shared parsing and validation pipeline
// every backend funnels its raw output through. Concrete backends live in
// the anthropic and openai subpackages; the mock client backs tests.
package provider
