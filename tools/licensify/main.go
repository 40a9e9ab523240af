// seehuhn.de/go/deepzoom - navigation for multi-resolution tiled images
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Licensify adds the license header to all Go source files below the
// current directory.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"
)

const header = `// seehuhn.de/go/deepzoom - navigation for multi-resolution tiled images
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

`

type status int

const (
	statusOK status = iota
	statusUpdated
	statusForeign
)

// process returns body with the license header added.  Files which
// already carry a different copyright notice are left alone.
func process(body []byte) ([]byte, status) {
	if bytes.HasPrefix(body, []byte(header)) {
		return body, statusOK
	}
	if bytes.HasPrefix(body, []byte("package ")) {
		return append([]byte(header), body...), statusUpdated
	}

	// A package comment may come first, but a copyright line means the
	// file has a header of its own.
	end := bytes.Index(body, []byte("\npackage "))
	if !bytes.HasPrefix(body, []byte("//")) || end < 0 ||
		bytes.Contains(bytes.ToLower(body[:end]), []byte("copyright")) {
		return body, statusForeign
	}
	return append([]byte(header), body...), statusUpdated
}

func main() {
	check := flag.Bool("check", false, "only list the files which need a header")
	flag.Parse()

	missing := 0
	err := filepath.WalkDir(".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			name := d.Name()
			if path != "." && (strings.HasPrefix(name, "_") || strings.HasPrefix(name, ".") || name == "testdata") {
				return fs.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(path, ".go") {
			return nil
		}

		body, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		out, st := process(body)
		switch st {
		case statusOK:
			return nil
		case statusForeign:
			fmt.Println("ATTENTION " + path)
			return nil
		}

		missing++
		if *check {
			fmt.Println("missing " + path)
			return nil
		}
		fmt.Println("updating " + path)
		return os.WriteFile(path, out, 0o644)
	})
	if err != nil {
		log.Fatal(err)
	}
	if *check && missing > 0 {
		os.Exit(1)
	}
}
