// Package binder provides the minimal external-collaborator surface the
// checker consumes but does not implement: a resolved name -> binding
// table (name resolution proper is out of scope; the checker assumes it
// already ran) and the optional extension plugin.
package binder

import "github.com/emberlang/ember/types"

// Plugin extends resolution at the fixed fallback points described in
// spec.md §4.D/§4.B: each method may return nil to defer to the next
// strategy.
type Plugin interface {
	ResolveDynamicVariableType(name string) *types.Type
	ResolveProperty(receiver *types.Type, name string) *types.Property
	FindMethod(receiver *types.Type, name string, args []*types.Type) *types.Method
}

// NoopPlugin defers on every call; it is the default when a host does
// not supply one.
type NoopPlugin struct{}

func (NoopPlugin) ResolveDynamicVariableType(string) *types.Type                { return nil }
func (NoopPlugin) ResolveProperty(*types.Type, string) *types.Property          { return nil }
func (NoopPlugin) FindMethod(*types.Type, string, []*types.Type) *types.Method { return nil }
