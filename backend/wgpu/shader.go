// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package wgpu

import (
	"fmt"
	"regexp"

	"github.com/gogpu/glx"
	"github.com/gogpu/naga"
	"github.com/gogpu/wgpu/hal"
)

var (
	vertexEntry   = regexp.MustCompile(`@vertex\s+fn\s+(\w+)`)
	fragmentEntry = regexp.MustCompile(`@fragment\s+fn\s+(\w+)`)
	uniformDecl   = regexp.MustCompile(`var\s*<\s*uniform\s*>\s*(\w+)`)
	comment       = regexp.MustCompile(`(?s)//[^\n]*|/\*.*?\*/`)
)

// stripComments blanks out WGSL comments so declarations inside them are
// not scanned.
func stripComments(src string) string {
	return comment.ReplaceAllString(src, " ")
}

type shader struct {
	kind     glx.ShaderKind
	source   string
	spirv    []uint32
	compiled bool
	log      string
}

type program struct {
	attached  []glx.Shader
	modules   []hal.ShaderModule
	entries   [2]string
	uniforms  []string
	linked    bool
	validated bool
	log       string
}

// compileWGSL compiles WGSL to SPIR-V words.
func compileWGSL(source string) ([]uint32, error) {
	spirvBytes, err := naga.Compile(source)
	if err != nil {
		return nil, err
	}
	if len(spirvBytes)%4 != 0 {
		return nil, fmt.Errorf("SPIR-V size %d is not a multiple of 4", len(spirvBytes))
	}

	// SPIR-V is little-endian 32-bit words.
	words := make([]uint32, len(spirvBytes)/4)
	for i := range words {
		words[i] = uint32(spirvBytes[i*4]) |
			uint32(spirvBytes[i*4+1])<<8 |
			uint32(spirvBytes[i*4+2])<<16 |
			uint32(spirvBytes[i*4+3])<<24
	}
	return words, nil
}

// uniformNames returns the var<uniform> names declared in sources, in
// order, without duplicates.
func uniformNames(sources ...string) []string {
	var names []string
	seen := make(map[string]bool)
	for _, src := range sources {
		for _, m := range uniformDecl.FindAllStringSubmatch(stripComments(src), -1) {
			if !seen[m[1]] {
				seen[m[1]] = true
				names = append(names, m[1])
			}
		}
	}
	return names
}

func (d *Device) CreateShader(kind glx.ShaderKind) glx.Shader {
	d.mu.Lock()
	defer d.mu.Unlock()
	s := glx.Shader(d.newID())
	d.shaders[s] = &shader{kind: kind}
	return s
}

func (d *Device) ShaderSource(s glx.Shader, source string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if sh := d.shaders[s]; sh != nil {
		sh.source = source
	}
}

func (d *Device) CompileShader(s glx.Shader) {
	d.mu.Lock()
	sh := d.shaders[s]
	var source string
	if sh != nil {
		source = sh.source
	}
	d.mu.Unlock()
	if sh == nil {
		return
	}

	// naga runs without the lock held.
	words, err := compileWGSL(source)

	d.mu.Lock()
	defer d.mu.Unlock()
	if err != nil {
		sh.spirv, sh.compiled, sh.log = nil, false, err.Error()
		return
	}
	sh.spirv, sh.compiled, sh.log = words, true, ""
}

func (d *Device) ShaderCompiled(s glx.Shader) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	sh := d.shaders[s]
	return sh != nil && sh.compiled
}

func (d *Device) ShaderInfoLog(s glx.Shader) string {
	d.mu.Lock()
	defer d.mu.Unlock()
	if sh := d.shaders[s]; sh != nil {
		return sh.log
	}
	return ""
}

func (d *Device) DeleteShader(s glx.Shader) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.shaders, s)
}

func (d *Device) CreateProgram() glx.Program {
	d.mu.Lock()
	defer d.mu.Unlock()
	p := glx.Program(d.newID())
	d.programs[p] = &program{}
	return p
}

func (d *Device) AttachShader(p glx.Program, s glx.Shader) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if pr := d.programs[p]; pr != nil {
		pr.attached = append(pr.attached, s)
	}
}

// LinkProgram creates one shader module per attached stage. The stages
// must be compiled and carry their entry points.
func (d *Device) LinkProgram(p glx.Program) {
	d.mu.Lock()
	defer d.mu.Unlock()
	pr := d.programs[p]
	if pr == nil {
		return
	}
	d.releaseModules(pr)
	pr.linked, pr.validated, pr.log = false, false, ""

	var stages [2]*shader
	for _, s := range pr.attached {
		sh := d.shaders[s]
		if sh == nil || !sh.compiled {
			pr.log = fmt.Sprintf("shader %d is not compiled", s)
			return
		}
		if int(sh.kind) >= len(stages) {
			pr.log = fmt.Sprintf("unsupported shader kind %s", sh.kind)
			return
		}
		if stages[sh.kind] != nil {
			pr.log = fmt.Sprintf("more than one %s shader attached", sh.kind)
			return
		}
		stages[sh.kind] = sh
	}
	entryRE := [2]*regexp.Regexp{vertexEntry, fragmentEntry}
	for kind, sh := range stages {
		k := glx.ShaderKind(kind)
		if sh == nil {
			pr.log = fmt.Sprintf("no %s shader attached", k)
			return
		}
		m := entryRE[kind].FindStringSubmatch(stripComments(sh.source))
		if m == nil {
			pr.log = fmt.Sprintf("%s shader has no @%s entry point", k, k)
			return
		}
		pr.entries[kind] = m[1]
	}

	for kind, sh := range stages {
		module, err := d.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
			Label: fmt.Sprintf("glx_program_%d_%s", p, glx.ShaderKind(kind)),
			Source: hal.ShaderSource{
				SPIRV: sh.spirv,
			},
		})
		if err != nil {
			d.releaseModules(pr)
			pr.log = fmt.Sprintf("create %s module: %v", glx.ShaderKind(kind), err)
			return
		}
		pr.modules = append(pr.modules, module)
	}
	pr.uniforms = uniformNames(stages[glx.VertexShader].source, stages[glx.FragmentShader].source)
	pr.linked = true
}

func (d *Device) ProgramLinked(p glx.Program) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	pr := d.programs[p]
	return pr != nil && pr.linked
}

// ValidateProgram checks that a linked program still holds both modules.
func (d *Device) ValidateProgram(p glx.Program) {
	d.mu.Lock()
	defer d.mu.Unlock()
	pr := d.programs[p]
	if pr == nil {
		return
	}
	switch {
	case !pr.linked:
		pr.validated, pr.log = false, "program is not linked"
	case len(pr.modules) != 2:
		pr.validated, pr.log = false, "program has no shader modules"
	default:
		pr.validated = true
	}
}

func (d *Device) ProgramValidated(p glx.Program) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	pr := d.programs[p]
	return pr != nil && pr.validated
}

func (d *Device) ProgramInfoLog(p glx.Program) string {
	d.mu.Lock()
	defer d.mu.Unlock()
	if pr := d.programs[p]; pr != nil {
		return pr.log
	}
	return ""
}

func (d *Device) DeleteProgram(p glx.Program) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if pr := d.programs[p]; pr != nil {
		d.releaseModules(pr)
		delete(d.programs, p)
	}
}

// releaseModules destroys pr's shader modules. mu must be held.
func (d *Device) releaseModules(pr *program) {
	for _, m := range pr.modules {
		d.device.DestroyShaderModule(m)
	}
	pr.modules = nil
}

// UniformLocation returns the declaration index of the named uniform
// binding in a linked program.
func (d *Device) UniformLocation(p glx.Program, name string) glx.UniformLocation {
	d.mu.Lock()
	defer d.mu.Unlock()
	pr := d.programs[p]
	if pr == nil || !pr.linked {
		return glx.NoUniform
	}
	for i, u := range pr.uniforms {
		if u == name {
			return glx.UniformLocation(i)
		}
	}
	return glx.NoUniform
}

// EntryPoints returns the vertex and fragment entry point names of a
// linked program.
func (d *Device) EntryPoints(p glx.Program) (vertex, fragment string, ok bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	pr := d.programs[p]
	if pr == nil || !pr.linked {
		return "", "", false
	}
	return pr.entries[glx.VertexShader], pr.entries[glx.FragmentShader], true
}
