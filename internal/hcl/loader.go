package hcl

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/vk/databuild/internal/ctxlog"
	"github.com/vk/databuild/internal/data"
)

// Loader parses flow definitions from HCL files.
type Loader struct{}

// NewLoader creates a flow file loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads every flow definition under path, which may be a single .hcl
// file or a directory searched recursively. Flow names must be unique across
// all loaded files.
func (l *Loader) Load(ctx context.Context, path string) ([]Flow, error) {
	logger := ctxlog.FromContext(ctx)

	files, err := findFlowFiles(path)
	if err != nil {
		return nil, err
	}
	logger.Debug("Discovered flow files.", "count", len(files), "path", path)

	parser := hclparse.NewParser()
	var flows []Flow
	byName := make(map[string]string)

	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse flow file %s: %w", file, diags)
		}

		var root fileRoot
		if diags := gohcl.DecodeBody(hclFile.Body, nil, &root); diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode flow file %s: %w", file, diags)
		}

		for _, block := range root.Flows {
			if prev, ok := byName[block.Name]; ok {
				return nil, fmt.Errorf("duplicate flow %q in %s (first defined in %s)", block.Name, file, prev)
			}
			byName[block.Name] = file

			flow, err := l.translateFlow(block)
			if err != nil {
				return nil, fmt.Errorf("flow %q in %s: %w", block.Name, file, err)
			}
			flows = append(flows, flow)
		}
	}

	logger.Debug("Flow loading complete.", "flows", len(flows))
	return flows, nil
}

// translateFlow validates one decoded block and evaluates its seeds.
func (l *Loader) translateFlow(block *flowBlock) (Flow, error) {
	flow := Flow{
		Name:            block.Name,
		Targets:         block.Targets,
		Parallel:        block.Parallel,
		MaxConcurrency:  block.MaxConcurrency,
		ContinueOnError: block.ContinueOnError,
	}

	if len(block.Targets) == 0 {
		return Flow{}, fmt.Errorf("targets must not be empty")
	}
	if block.MaxConcurrency < 0 {
		return Flow{}, fmt.Errorf("max_concurrency must not be negative, got %d", block.MaxConcurrency)
	}
	if block.BuilderTimeout != "" {
		timeout, err := time.ParseDuration(block.BuilderTimeout)
		if err != nil {
			return Flow{}, fmt.Errorf("invalid builder_timeout: %w", err)
		}
		flow.BuilderTimeout = timeout
	}

	seen := make(map[string]bool, len(block.Seeds))
	for _, seed := range block.Seeds {
		if seen[seed.Type] {
			return Flow{}, fmt.Errorf("duplicate seed for type %q", seed.Type)
		}
		seen[seed.Type] = true

		val, diags := seed.Value.Value(nil)
		if diags.HasErrors() {
			return Flow{}, fmt.Errorf("seed %q: %w", seed.Type, diags)
		}
		converted, err := ctyToGo(val)
		if err != nil {
			return Flow{}, fmt.Errorf("seed %q: %w", seed.Type, err)
		}
		flow.Seeds = append(flow.Seeds, data.NewValue(seed.Type, converted))
	}

	return flow, nil
}

// findFlowFiles resolves a path to the sorted list of .hcl files it names.
func findFlowFiles(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("flow path %s: %w", path, err)
	}
	if !info.IsDir() {
		return []string{path}, nil
	}

	var files []string
	err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(d.Name(), ".hcl") {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}
