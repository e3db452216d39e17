// Package hcl loads declarative flow definitions from .hcl files: the
// targets to build, the execution options, and the seed values for one run.
package hcl

import (
	"time"

	"github.com/hashicorp/hcl/v2"

	"github.com/vk/databuild/internal/data"
)

// Flow is one fully validated run definition.
type Flow struct {
	Name            string
	Targets         []string
	Parallel        bool
	MaxConcurrency  int
	BuilderTimeout  time.Duration
	ContinueOnError bool
	Seeds           []data.Data
}

// fileRoot decodes the top-level blocks of one flow file.
type fileRoot struct {
	Flows []*flowBlock `hcl:"flow,block"`
}

type flowBlock struct {
	Name            string       `hcl:"name,label"`
	Targets         []string     `hcl:"targets"`
	Parallel        bool         `hcl:"parallel,optional"`
	MaxConcurrency  int          `hcl:"max_concurrency,optional"`
	BuilderTimeout  string       `hcl:"builder_timeout,optional"`
	ContinueOnError bool         `hcl:"continue_on_error,optional"`
	Seeds           []*seedBlock `hcl:"seed,block"`
}

// seedBlock carries an arbitrary cty expression; it is evaluated and
// converted to a native Go value at load time.
type seedBlock struct {
	Type  string         `hcl:"type,label"`
	Value hcl.Expression `hcl:"value"`
}
