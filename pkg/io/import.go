package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/pymeta-dev/pymeta/pkg/meta"
)

// ReadJSON decodes a resolution result from r.
//
// The input must be a JSON export produced by [WriteJSON]. The returned
// result is independent of r and can be modified safely after ReadJSON
// returns. ReadJSON does not close r.
func ReadJSON(r io.Reader) (*meta.Result, error) {
	var res meta.Result
	if err := json.NewDecoder(r).Decode(&res); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	if res.Record == nil {
		return nil, fmt.Errorf("decode: missing record")
	}
	return &res, nil
}

// ImportJSON reads a JSON file at path and returns the decoded result.
//
// ImportJSON opens the file, decodes it using [ReadJSON], and closes the
// file. Errors wrap the underlying cause with the file path for context.
func ImportJSON(path string) (*meta.Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	res, err := ReadJSON(f)
	if err != nil {
		return nil, fmt.Errorf("import %s: %w", path, err)
	}
	return res, nil
}
