package glx

// UniformLocations maps uniform names to their locations in one program.
type UniformLocations map[string]UniformLocation

// Get returns the location for name, or NoUniform if name was not looked up
// or has no matching uniform.
func (u UniformLocations) Get(name string) UniformLocation {
	if l, ok := u[name]; ok {
		return l
	}
	return NoUniform
}

// UniformLocations looks up every name in p. Each requested name gets an
// entry; names with no active uniform map to NoUniform instead of failing
// the batch.
func (c *Context) UniformLocations(p Program, names ...string) UniformLocations {
	locs := make(UniformLocations, len(names))
	for _, name := range names {
		locs[name] = c.dev.UniformLocation(p, name)
	}
	return locs
}
