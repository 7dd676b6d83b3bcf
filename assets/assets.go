// Package assets holds files compiled into the binary.
package assets

import _ "embed"

// ProjectIdeas is the default project catalog in YAML.
//
//go:embed project_ideas.yaml
var ProjectIdeas []byte
