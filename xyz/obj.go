// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// This decoder is based extensively on https://github.com/g3n/engine :
// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/xyzgallery/frames/math32"
)

// OBJDecoder decodes the Wavefront OBJ file format (*.obj) into a single
// [Mesh], merging all objects and groups. Materials (mtllib, usemtl) are
// ignored: a frame mesh gets its material from the scene, not the asset.
// Basic format info: https://en.wikipedia.org/wiki/Wavefront_.obj_file
type OBJDecoder struct{}

// objFace contains the vertex, uv and normal indexes of one face;
// missing uv / normal indexes are -1.
type objFace struct {
	vertices []int
	uvs      []int
	normals  []int
}

// objState is the transient parse state for one Decode call.
type objState struct {
	vertices []float32
	normals  []float32
	uvs      []float32
	faces    []objFace
	line     int
	warned   map[string]bool
}

// Local constants
const blanks = "\r\n\t "

// Decode reads an OBJ stream and returns the triangulated mesh.
func (dec *OBJDecoder) Decode(r io.Reader, name string) (*Mesh, error) {
	st := &objState{warned: map[string]bool{}}
	bufin := bufio.NewReader(r)
	st.line = 1
	for {
		// Reads next line and abort on errors (not EOF)
		line, err := bufin.ReadString('\n')
		if err != nil && err != io.EOF {
			return nil, err
		}
		if perr := st.parseLine(strings.Trim(line, blanks)); perr != nil {
			return nil, perr
		}
		if err == io.EOF {
			break
		}
		st.line++
	}
	if len(st.faces) == 0 {
		return nil, errors.New("obj: no faces found")
	}
	return st.mesh(name)
}

// parseLine dispatches one obj line to the specific parsers.
func (st *objState) parseLine(line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
		return nil
	}
	switch fields[0] {
	case "v":
		return st.parseFloats(fields[1:], 3, &st.vertices)
	case "vn":
		return st.parseFloats(fields[1:], 3, &st.normals)
	case "vt":
		return st.parseFloats(fields[1:], 2, &st.uvs)
	case "f":
		return st.parseFace(fields[1:])
	case "o", "g", "s", "mtllib", "usemtl":
		// grouping, smoothing and materials do not affect the merged mesh
	default:
		if !st.warned[fields[0]] {
			st.warned[fields[0]] = true
			slog.Warn("obj: field not supported", "field", fields[0], "line", st.line)
		}
	}
	return nil
}

// parseFloats appends the first n fields as floats to dst.
func (st *objState) parseFloats(fields []string, n int, dst *[]float32) error {
	if len(fields) < n {
		return st.formatError(fmt.Sprintf("fewer than %d values", n))
	}
	for _, f := range fields[:n] {
		val, err := strconv.ParseFloat(f, 32)
		if err != nil {
			return st.formatError(err.Error())
		}
		*dst = append(*dst, float32(val))
	}
	return nil
}

// parseFace parses a face decription line:
// f v1[/vt1][/vn1] v2[/vt2][/vn2] v3[/vt3][/vn3] ...
func (st *objState) parseFace(fields []string) error {
	if len(fields) < 3 {
		return st.formatError("face line with less than 3 fields")
	}
	face := objFace{
		vertices: make([]int, len(fields)),
		uvs:      make([]int, len(fields)),
		normals:  make([]int, len(fields)),
	}
	for pos, f := range fields {
		vfields := strings.Split(f, "/")
		idx, err := st.parseIndex(vfields[0], len(st.vertices)/3)
		if err != nil {
			return err
		}
		if idx < 0 {
			return st.formatError("face vertex index missing")
		}
		face.vertices[pos] = idx

		face.uvs[pos] = -1
		if len(vfields) > 1 {
			if face.uvs[pos], err = st.parseIndex(vfields[1], len(st.uvs)/2); err != nil {
				return err
			}
		}
		face.normals[pos] = -1
		if len(vfields) > 2 {
			if face.normals[pos], err = st.parseIndex(vfields[2], len(st.normals)/3); err != nil {
				return err
			}
		}
	}
	st.faces = append(st.faces, face)
	return nil
}

// parseIndex parses a 1-based (or negative, relative) obj index
// into a 0-based index; an empty field yields -1.
func (st *objState) parseIndex(field string, count int) (int, error) {
	if field == "" {
		return -1, nil
	}
	val, err := strconv.Atoi(field)
	if err != nil {
		return 0, st.formatError(err.Error())
	}
	var idx int
	switch {
	case val > 0:
		idx = val - 1
	case val < 0:
		// relative to the last parsed element
		idx = count + val
	default:
		return 0, st.formatError("index value equal to 0")
	}
	if idx < 0 || idx >= count {
		return 0, st.formatError(fmt.Sprintf("index %d out of range", val))
	}
	return idx, nil
}

// mesh builds the mesh from the parsed faces, triangulating
// polygons as fans around their first vertex.
func (st *objState) mesh(name string) (*Mesh, error) {
	ms := &Mesh{Name: name}
	for _, face := range st.faces {
		base := uint32(ms.NumVertex())
		for i := range face.vertices {
			st.copyVertex(ms, &face, i)
		}
		for i := 2; i < len(face.vertices); i++ {
			ms.Index = append(ms.Index, base, base+uint32(i-1), base+uint32(i))
		}
	}
	return ms, nil
}

// copyVertex appends corner i of the face to the mesh vertex arrays,
// computing a flat normal when the face has none.
func (st *objState) copyVertex(ms *Mesh, face *objFace, i int) {
	vi := 3 * face.vertices[i]
	ms.Vertex = append(ms.Vertex, st.vertices[vi:vi+3]...)

	if ni := face.normals[i]; ni >= 0 {
		ms.Normal = append(ms.Normal, st.normals[3*ni:3*ni+3]...)
	} else {
		n := st.faceNormal(face)
		ms.Normal = append(ms.Normal, n.X, n.Y, n.Z)
	}

	if ti := face.uvs[i]; ti >= 0 {
		ms.TexCoord = append(ms.TexCoord, st.uvs[2*ti:2*ti+2]...)
	} else {
		ms.TexCoord = append(ms.TexCoord, 0, 0)
	}
}

func (st *objState) faceNormal(face *objFace) math32.Vector3 {
	at := func(k int) math32.Vector3 {
		vi := 3 * face.vertices[k]
		return math32.Vec3(st.vertices[vi], st.vertices[vi+1], st.vertices[vi+2])
	}
	a, b, c := at(0), at(1), at(2)
	return b.Sub(a).Cross(c.Sub(a)).Normal()
}

func (st *objState) formatError(msg string) error {
	return fmt.Errorf("obj: %s in line: %d", msg, st.line)
}
