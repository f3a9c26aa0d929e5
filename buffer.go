package glx

import "unsafe"

// Numeric is the set of element types that can back a buffer.
type Numeric interface {
	~int8 | ~uint8 | ~int16 | ~uint16 | ~int32 | ~uint32 | ~float32 | ~float64
}

// Bytes reinterprets a numeric slice as its bytes in native byte order,
// which is the order graphics APIs expect. The result aliases data.
func Bytes[T Numeric](data []T) []byte {
	if len(data) == 0 {
		return nil
	}
	var zero T
	return unsafe.Slice((*byte)(unsafe.Pointer(&data[0])), len(data)*int(unsafe.Sizeof(zero)))
}

// CreateBuffer creates a buffer, uploads data to it through target and
// leaves target unbound.
func (c *Context) CreateBuffer(target BufferTarget, data []byte, usage BufferUsage) (Buffer, error) {
	b := c.dev.CreateBuffer()
	if b == 0 {
		return 0, ErrNoResource
	}
	c.dev.BindBuffer(target, b)
	c.dev.BufferData(target, data, usage)
	c.dev.BindBuffer(target, 0)
	c.log().Debug("glx: buffer created", "target", target, "bytes", len(data), "usage", usage)
	return b, nil
}

// CreateVertexBuffer uploads float32 vertex data to a new ARRAY_BUFFER.
func (c *Context) CreateVertexBuffer(data []float32, usage BufferUsage) (Buffer, error) {
	return c.CreateBuffer(ArrayBuffer, Bytes(data), usage)
}

// CreateIndexBuffer uploads 16-bit indices to a new ELEMENT_ARRAY_BUFFER.
func (c *Context) CreateIndexBuffer(data []uint16, usage BufferUsage) (Buffer, error) {
	return c.CreateBuffer(ElementArrayBuffer, Bytes(data), usage)
}

// CreateFramebuffer creates a framebuffer, binds it and sets the viewport
// to width x height. A height of zero or less means a square of width.
//
// The framebuffer is left bound so attachments can follow.
func (c *Context) CreateFramebuffer(width, height int) (Framebuffer, error) {
	if height <= 0 {
		height = width
	}
	fb := c.dev.CreateFramebuffer()
	if fb == 0 {
		return 0, ErrNoResource
	}
	c.dev.BindFramebuffer(fb)
	c.dev.Viewport(0, 0, width, height)
	return fb, nil
}
