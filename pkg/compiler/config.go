package compiler

import (
	"github.com/jc-juarez/lazarus-statusgen/pkg/config"
	"github.com/jc-juarez/lazarus-statusgen/pkg/emit"
	"github.com/jc-juarez/lazarus-statusgen/pkg/notify"
	"github.com/jc-juarez/lazarus-statusgen/pkg/store"
)

// Emitters builds the native and dynamic emitters described by cfg, with
// paths resolved against cfg.Root.
func Emitters(cfg *config.Config) []emit.Emitter {
	t := cfg.Targets
	return []emit.Emitter{
		emit.NewNative(emit.NativeOptions{
			Path:        cfg.Resolve(t.Native.Path),
			Project:     t.Native.Project,
			Namespace:   t.Native.Namespace,
			Include:     t.Native.Include,
			HTTPType:    t.Native.HTTPType,
			HTTPInclude: t.Native.HTTPInclude,
			Generator:   t.Generator,
		}),
		emit.NewDynamic(emit.DynamicOptions{
			Path:      cfg.Resolve(t.Dynamic.Path),
			Project:   t.Dynamic.Project,
			ClassName: t.Dynamic.ClassName,
			Generator: t.Generator,
		}),
	}
}

// NewFromConfig returns a Compiler for the registry and targets in cfg.
func NewFromConfig(cfg *config.Config, n notify.Notifier) *Compiler {
	return New(Options{
		Store:             store.New(cfg.Resolve(cfg.Registry.Path)),
		Emitters:          Emitters(cfg),
		Notifier:          n,
		RequireFailRecord: cfg.Registry.RequireFailRecord,
	})
}

// RegistryPath is the registry file the compiler reads and appends to.
func (c *Compiler) RegistryPath() string {
	return c.store.Path()
}

// ArtifactPaths lists the generated files, in emitter order.
func (c *Compiler) ArtifactPaths() []string {
	paths := make([]string, 0, len(c.emitters))
	for _, e := range c.emitters {
		paths = append(paths, e.Path())
	}
	return paths
}
