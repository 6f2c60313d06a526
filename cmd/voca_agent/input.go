package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/jonathan/voca-career/internal/types"
)

// stdinPath is the argument that reads a profile from stdin
const stdinPath = "-"

// readProfileRequest loads a {userType, formData} document from path, or from stdin when path is "-"
func readProfileRequest(path string, stdin io.Reader) (types.ProfileRequest, error) {
	var data []byte
	var err error
	if path == stdinPath {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return types.ProfileRequest{}, fmt.Errorf("failed to read profile file %s: %w", path, err)
	}

	var req types.ProfileRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return types.ProfileRequest{}, fmt.Errorf("failed to parse profile JSON %s: %w", path, err)
	}
	return req, nil
}

// writeJSON encodes v to w, indented when pretty is set
func writeJSON(w io.Writer, v any, pretty bool) error {
	enc := json.NewEncoder(w)
	if pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}
