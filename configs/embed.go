// Package configs provides embedded configuration templates for docmind.
//
// Templates are embedded at build time via go:embed so they ship inside the
// binary itself rather than needing a separate install step.
//
// Template files:
//   - user-config.example.yaml: machine-level settings (~/.config/docmind/config.yaml)
//   - project-config.example.yaml: per-root settings (.docmind.yaml)
//
// Configuration hierarchy (see internal/config/config.go Load()):
//  1. Hardcoded defaults (internal/config.NewConfig)
//  2. User config (~/.config/docmind/config.yaml)
//  3. Project config (.docmind.yaml)
//  4. Environment variables (DOCMIND_*)
package configs

import _ "embed"

// UserConfigTemplate is the template written by `docmind config init` at
// ~/.config/docmind/config.yaml.
//
//go:embed user-config.example.yaml
var UserConfigTemplate string

// ProjectConfigTemplate is the template for a watched root's .docmind.yaml.
//
//go:embed project-config.example.yaml
var ProjectConfigTemplate string
