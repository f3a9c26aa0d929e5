// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package wgpu

import (
	"errors"
	"fmt"

	"github.com/gogpu/glx"
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	"github.com/gogpu/wgpu/hal/noop"

	// Registers the Vulkan HAL backend with hal.GetBackend.
	_ "github.com/gogpu/wgpu/hal/vulkan"
)

// Context types registered by DefaultSurface.
const (
	ContextVulkan = "vulkan"
	ContextNoop   = "noop"
)

// InstanceFactory creates HAL instances. The values returned by
// hal.GetBackend and noop.API implement it.
type InstanceFactory interface {
	CreateInstance(desc *hal.InstanceDescriptor) (hal.Instance, error)
}

// Backend is a named way of opening a Device.
type Backend struct {
	Name string
	open func(attrs glx.Attributes) (*Device, error)
}

// HALBackend returns a backend that opens a fresh device from f.
func HALBackend(name string, f InstanceFactory) Backend {
	return Backend{
		Name: name,
		open: func(attrs glx.Attributes) (*Device, error) {
			return openDevice(f, attrs)
		},
	}
}

// ProviderBackend returns a backend that hands out the device owned by p.
// The device is not destroyed when the returned Device is closed.
func ProviderBackend(name string, p gpucontext.DeviceProvider) Backend {
	return Backend{
		Name: name,
		open: func(glx.Attributes) (*Device, error) {
			return FromProvider(p)
		},
	}
}

// Surface implements glx.Surface over a set of named backends.
type Surface struct {
	backends []Backend
}

// NewSurface returns a surface offering the given backends.
func NewSurface(backends ...Backend) *Surface {
	return &Surface{backends: backends}
}

// DefaultSurface returns a surface with the Vulkan backend, when it is
// registered, and the noop backend.
func DefaultSurface() *Surface {
	var backends []Backend
	if vk, ok := hal.GetBackend(gputypes.BackendVulkan); ok {
		backends = append(backends, HALBackend(ContextVulkan, vk))
	}
	backends = append(backends, HALBackend(ContextNoop, &noop.API{}))
	return NewSurface(backends...)
}

// DefaultConfig prefers Vulkan and falls back to noop.
func DefaultConfig() glx.Config {
	return glx.Config{
		Types:      []string{ContextVulkan, ContextNoop},
		Attributes: glx.DefaultAttributes(),
	}
}

// GetContext implements glx.Surface. Unknown names and backends without
// adapters are unsupported.
func (s *Surface) GetContext(contextType string, attrs glx.Attributes) (glx.Device, error) {
	for _, b := range s.backends {
		if b.Name != contextType {
			continue
		}
		dev, err := b.open(attrs)
		if errors.Is(err, ErrNoAdapter) {
			return nil, nil
		}
		if err != nil {
			return nil, err
		}
		return dev, nil
	}
	return nil, nil
}

// openDevice creates an instance, picks an adapter and opens a device.
func openDevice(f InstanceFactory, attrs glx.Attributes) (*Device, error) {
	instance, err := f.CreateInstance(&hal.InstanceDescriptor{Flags: 0})
	if err != nil {
		return nil, fmt.Errorf("wgpu: create instance: %w", err)
	}
	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		instance.Destroy()
		return nil, ErrNoAdapter
	}
	selected := selectAdapter(adapters, attrs.PowerPreference)
	openDev, err := selected.Adapter.Open(gputypes.Features(0), gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		return nil, fmt.Errorf("wgpu: open device: %w", err)
	}
	glx.Logger().Info("wgpu: device opened", "adapter", selected.Info.Name)

	d := newDevice(openDev.Device, openDev.Queue)
	d.instance = instance
	d.owned = true
	return d, nil
}

// selectAdapter honors the power preference when an adapter of the
// matching type exists, preferring any real GPU otherwise.
func selectAdapter(adapters []hal.ExposedAdapter, pref glx.PowerPreference) *hal.ExposedAdapter {
	var order []gputypes.DeviceType
	switch pref {
	case glx.PowerLow:
		order = []gputypes.DeviceType{gputypes.DeviceTypeIntegratedGPU, gputypes.DeviceTypeDiscreteGPU}
	default:
		order = []gputypes.DeviceType{gputypes.DeviceTypeDiscreteGPU, gputypes.DeviceTypeIntegratedGPU}
	}
	for _, want := range order {
		for i := range adapters {
			if adapters[i].Info.DeviceType == want {
				return &adapters[i]
			}
		}
	}
	return &adapters[0]
}

// FromProvider wraps the HAL device of a host application. The provider
// must expose HalDevice and HalQueue returning hal.Device and hal.Queue.
func FromProvider(p gpucontext.DeviceProvider) (*Device, error) {
	hp, ok := p.(interface {
		HalDevice() any
		HalQueue() any
	})
	if !ok {
		return nil, ErrNoHAL
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok {
		return nil, fmt.Errorf("%w: HalDevice is not hal.Device", ErrNoHAL)
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok {
		return nil, fmt.Errorf("%w: HalQueue is not hal.Queue", ErrNoHAL)
	}
	info := p.AdapterInfo()
	glx.Logger().Debug("wgpu: using host device", "adapter", info.Name, "type", info.Type)
	return newDevice(device, queue), nil
}
