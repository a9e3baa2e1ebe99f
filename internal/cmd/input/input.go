// Package input reads drafts and controls documents for CLI commands.
package input

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-yaml"

	"github.com/agentstation/genctl/pkg/constants"
	"github.com/agentstation/genctl/pkg/controls"
	"github.com/agentstation/genctl/pkg/draft"
	"github.com/agentstation/genctl/pkg/errors"
)

// Read returns the contents of path, or of stdin when path is "-".
// Documents larger than constants.MaxDraftBytes are rejected.
func Read(stdin io.Reader, path string) ([]byte, error) {
	var r io.Reader
	if path == constants.StdinPath {
		r = stdin
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, errors.WrapIO("open", path, err)
		}
		defer f.Close()
		r = f
	}

	data, err := io.ReadAll(io.LimitReader(r, constants.MaxDraftBytes+1))
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}
	if len(data) > constants.MaxDraftBytes {
		return nil, errors.NewIOError("read", path, fmt.Errorf("document exceeds %d bytes", constants.MaxDraftBytes))
	}
	return data, nil
}

// Draft reads a JSON draft.
func Draft(stdin io.Reader, path string) (draft.Draft, error) {
	data, err := Read(stdin, path)
	if err != nil {
		return nil, err
	}
	d, err := draft.Parse(data)
	if err != nil {
		return nil, errors.WrapParse("json", path, err)
	}
	return d, nil
}

// Controls reads a controls document. JSON objects are decoded as JSON,
// anything else as YAML. Unknown fields are rejected. An empty path yields
// zero controls.
func Controls(stdin io.Reader, path string) (*controls.GenerationControls, error) {
	c := &controls.GenerationControls{}
	if path == "" {
		return c, nil
	}

	data, err := Read(stdin, path)
	if err != nil {
		return nil, err
	}

	trimmed := bytes.TrimSpace(data)
	if bytes.HasPrefix(trimmed, []byte("{")) {
		dec := json.NewDecoder(bytes.NewReader(trimmed))
		dec.UseNumber()
		dec.DisallowUnknownFields()
		if err := dec.Decode(c); err != nil {
			return nil, errors.WrapParse("json", path, err)
		}
		return c, nil
	}

	if err := yaml.UnmarshalWithOptions(data, c, yaml.Strict(), yaml.DisallowUnknownField()); err != nil {
		return nil, errors.NewParseError("yaml", path, yaml.FormatError(err, false, false), err)
	}
	if c.ProviderSpecific != nil {
		bag, err := normalizeBag(c.ProviderSpecific)
		if err != nil {
			return nil, errors.WrapParse("yaml", path, err)
		}
		c.ProviderSpecific = bag
	}
	return c, nil
}

// normalizeBag re-decodes a YAML-decoded map as JSON so that its numbers
// and nested maps have the same types as a parsed draft.
func normalizeBag(bag map[string]any) (map[string]any, error) {
	data, err := json.Marshal(bag)
	if err != nil {
		return nil, err
	}
	d, err := draft.Parse(data)
	if err != nil {
		return nil, err
	}
	return d, nil
}
