package glx

// CompileShader creates a shader of the given kind and compiles source.
//
// On failure the shader object is deleted and a *ShaderCompileError
// carrying the device's info log is returned.
func (c *Context) CompileShader(kind ShaderKind, source string) (Shader, error) {
	s := c.dev.CreateShader(kind)
	if s == 0 {
		return 0, &ShaderCompileError{Kind: kind, Log: "could not create shader object"}
	}
	c.dev.ShaderSource(s, source)
	c.dev.CompileShader(s)
	if !c.dev.ShaderCompiled(s) {
		log := c.dev.ShaderInfoLog(s)
		c.dev.DeleteShader(s)
		return 0, &ShaderCompileError{Kind: kind, Log: log}
	}
	return s, nil
}

// CreateProgram compiles both stages, links them into a program and
// validates it.
//
// The shader objects are released as soon as the link attempt finishes,
// whatever its outcome. A program that fails to link or validate is
// deleted; the returned handle is then zero.
func (c *Context) CreateProgram(vertexSource, fragmentSource string) (Program, error) {
	vs, err := c.CompileShader(VertexShader, vertexSource)
	if err != nil {
		return 0, err
	}
	fs, err := c.CompileShader(FragmentShader, fragmentSource)
	if err != nil {
		c.dev.DeleteShader(vs)
		return 0, err
	}

	p := c.dev.CreateProgram()
	if p == 0 {
		c.dev.DeleteShader(vs)
		c.dev.DeleteShader(fs)
		return 0, ErrNoResource
	}
	c.dev.AttachShader(p, vs)
	c.dev.AttachShader(p, fs)
	c.dev.LinkProgram(p)
	linked := c.dev.ProgramLinked(p)

	c.dev.DeleteShader(vs)
	c.dev.DeleteShader(fs)

	if !linked {
		log := c.dev.ProgramInfoLog(p)
		c.dev.DeleteProgram(p)
		return 0, &ProgramLinkError{Log: log}
	}

	c.dev.ValidateProgram(p)
	if !c.dev.ProgramValidated(p) {
		log := c.dev.ProgramInfoLog(p)
		c.dev.DeleteProgram(p)
		return 0, &ProgramValidateError{Log: log}
	}

	c.log().Debug("glx: program created", "program", p)
	return p, nil
}
