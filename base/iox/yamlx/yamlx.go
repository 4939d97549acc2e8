// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package yamlx opens and saves structs as YAML files.
package yamlx

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Open reads the given object from the given filename using YAML encoding.
func Open(v any, filename string) error {
	f, err := os.Open(filename)
	if err != nil {
		return err
	}
	defer f.Close()
	return Read(v, f)
}

// Read reads the given object from the given reader using YAML encoding.
// An empty document leaves v unchanged.
func Read(v any, reader io.Reader) error {
	d := yaml.NewDecoder(reader)
	if err := d.Decode(v); err != nil && err != io.EOF {
		return fmt.Errorf("yamlx.Read: %w", err)
	}
	return nil
}

// Save writes the given object to the given filename using YAML encoding.
func Save(v any, filename string) error {
	b, err := yaml.Marshal(v)
	if err != nil {
		return err
	}
	return os.WriteFile(filename, b, 0644)
}
