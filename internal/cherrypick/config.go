package cherrypick

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
	"github.com/hashicorp/hcl/v2/hclsimple"
	"github.com/ohler55/ojg/oj"
)

// DefaultConfigFile is read from the working directory when no other
// file is named.
const DefaultConfigFile = "cherry-picks.json"

var (
	ErrMissingSHA    = errors.New("cherry-pick is missing sha")
	ErrInvalidConfig = errors.New("invalid cherry-pick config")
)

// LoadConfig reads the descriptor list at path from fsys. Files ending
// in .hcl are decoded as HCL, anything else as JSON.
func LoadConfig(fsys billy.Filesystem, path string) ([]Descriptor, error) {
	data, err := util.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var descs []Descriptor
	if strings.EqualFold(filepath.Ext(path), ".hcl") {
		descs, err = decodeHCL(path, data)
	} else {
		descs, err = DecodeJSON(data)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	for i, d := range descs {
		if d.SHA == "" {
			return nil, fmt.Errorf("%s: entry %d: %w", path, i, ErrMissingSHA)
		}
	}
	return descs, nil
}

// DecodeJSON decodes a JSON array of descriptor objects.
func DecodeJSON(data []byte) ([]Descriptor, error) {
	doc, err := oj.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	list, ok := doc.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: top level is %T, want array", ErrInvalidConfig, doc)
	}

	descs := make([]Descriptor, len(list))
	for i, entry := range list {
		obj, ok := entry.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: entry %d is %T, want object", ErrInvalidConfig, i, entry)
		}
		if descs[i], err = descriptorFromObject(obj); err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
	}
	return descs, nil
}

func descriptorFromObject(obj map[string]any) (Descriptor, error) {
	var d Descriptor

	switch sha := obj["sha"].(type) {
	case string:
		d.SHA = sha
	case nil:
	default:
		return d, fmt.Errorf("%w: sha is %T, want string", ErrInvalidConfig, sha)
	}

	if raw, ok := obj["merge"]; ok && raw != nil {
		merge, ok := raw.(bool)
		if !ok {
			return d, fmt.Errorf("%w: merge is %T, want bool", ErrInvalidConfig, raw)
		}
		d.Merge = &merge
	}

	if raw, ok := obj["cherry-pick-args"]; ok && raw != nil {
		list, ok := raw.([]any)
		if !ok {
			return d, fmt.Errorf("%w: cherry-pick-args is %T, want array", ErrInvalidConfig, raw)
		}
		d.Args = make([]string, len(list))
		for i, a := range list {
			s, ok := a.(string)
			if !ok {
				return d, fmt.Errorf("%w: cherry-pick-args[%d] is %T, want string", ErrInvalidConfig, i, a)
			}
			d.Args[i] = s
		}
	}

	return d, nil
}

type hclConfig struct {
	CherryPicks []hclCherryPick `hcl:"cherry_pick,block"`
}

type hclCherryPick struct {
	SHA   string   `hcl:"sha,label"`
	Merge *bool    `hcl:"merge,optional"`
	Args  []string `hcl:"args,optional"`
}

// decodeHCL accepts cherry_pick "<sha>" { merge = false, args = [...] } blocks.
func decodeHCL(path string, data []byte) ([]Descriptor, error) {
	var cfg hclConfig
	if err := hclsimple.Decode(filepath.Base(path), data, nil, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	descs := make([]Descriptor, len(cfg.CherryPicks))
	for i, cp := range cfg.CherryPicks {
		descs[i] = Descriptor{SHA: cp.SHA, Merge: cp.Merge, Args: cp.Args}
	}
	return descs, nil
}
