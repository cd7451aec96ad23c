package compiler

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel/attribute"

	"github.com/jc-juarez/lazarus-statusgen/pkg/codes"
	"github.com/jc-juarez/lazarus-statusgen/pkg/emit"
	"github.com/jc-juarez/lazarus-statusgen/pkg/envelope"
	log "github.com/jc-juarez/lazarus-statusgen/pkg/logger"
	"github.com/jc-juarez/lazarus-statusgen/pkg/notify"
	"github.com/jc-juarez/lazarus-statusgen/pkg/store"
	"github.com/jc-juarez/lazarus-statusgen/pkg/tracing"
)

// Options configures a Compiler.
type Options struct {
	Store    *store.Store
	Emitters []emit.Emitter
	// Notifier receives an event after every successful write. Nil disables it.
	Notifier notify.Notifier
	// RequireFailRecord makes a registry without a "fail" record invalid.
	RequireFailRecord bool
}

// Compiler drives one registry through load, allocation, validation,
// rendering and writing.
type Compiler struct {
	store             *store.Store
	emitters          []emit.Emitter
	notifier          notify.Notifier
	requireFailRecord bool
}

// New returns a Compiler.
func New(opts Options) *Compiler {
	n := opts.Notifier
	if n == nil {
		n = notify.Nop{}
	}
	return &Compiler{
		store:             opts.Store,
		emitters:          opts.Emitters,
		notifier:          n,
		requireFailRecord: opts.RequireFailRecord,
	}
}

// Append allocates the next failure code for name, persists the record and
// regenerates every artifact. A duplicate name fails before anything is
// written. Artifacts are staged before the registry is saved, so a failure
// to write them leaves the registry untouched.
func (c *Compiler) Append(ctx context.Context, name string, http int, desc string) (sc codes.StatusCode, err error) {
	ctx, span := tracing.Start(ctx, "append", attribute.String("status_code.name", name))
	defer func() { tracing.End(span, err) }()

	doc, err := c.read(ctx)
	if err != nil {
		return sc, err
	}
	for _, e := range doc.Codes {
		if e.Name == name {
			v, _ := e.Internal.Decode()
			return sc, codes.NewDuplicateNameError(name, v)
		}
	}

	internal, err := doc.NextCode()
	if err != nil {
		return sc, err
	}
	sc = codes.StatusCode{Name: name, Internal: internal, HTTP: http, Desc: desc}
	span.SetAttributes(tracing.CodeAttributes(sc)...)

	reg, err := doc.Registry()
	if err != nil {
		return sc, err
	}
	candidate := reg.With(sc)
	if err = c.validate(ctx, candidate); err != nil {
		return sc, err
	}
	save := func() error {
		if err := c.store.Append(sc); err != nil {
			return fmt.Errorf("append %q: %w", name, err)
		}
		return nil
	}
	if err = c.write(ctx, c.render(ctx, candidate), save); err != nil {
		return sc, err
	}
	log.WithCode(ctx, sc).Info("Added new status code")

	c.notify(ctx, envelope.KindAppended, candidate.Len(), &sc)
	return sc, nil
}

// Regenerate rewrites every artifact from the registry.
func (c *Compiler) Regenerate(ctx context.Context) (err error) {
	ctx, span := tracing.Start(ctx, "regenerate")
	defer func() { tracing.End(span, err) }()

	reg, err := c.load(ctx)
	if err != nil {
		return err
	}
	if err = c.validate(ctx, reg); err != nil {
		return err
	}
	if err = c.write(ctx, c.render(ctx, reg), nil); err != nil {
		return err
	}
	c.notify(ctx, envelope.KindRegenerated, reg.Len(), nil)
	return nil
}

// Check reports artifacts that would change on regeneration.
func (c *Compiler) Check(ctx context.Context) (err error) {
	ctx, span := tracing.Start(ctx, "check")
	defer func() { tracing.End(span, err) }()

	reg, err := c.load(ctx)
	if err != nil {
		return err
	}
	if err = c.validate(ctx, reg); err != nil {
		return err
	}
	stale, err := emit.Stale(c.render(ctx, reg))
	if err != nil {
		return err
	}
	if len(stale) > 0 {
		return &codes.StaleArtifactError{Paths: stale}
	}
	log.WithTrace(ctx).WithField("artifacts", len(c.emitters)).Info("Generated artifacts are up to date")
	return nil
}

// Init seeds a registry holding only the success record and generates the
// artifacts for it.
func (c *Compiler) Init(ctx context.Context) error {
	if err := store.Seed(c.store.Path()); err != nil {
		return err
	}
	log.WithTrace(ctx).WithField("path", c.store.Path()).Info("Seeded registry")
	return c.Regenerate(ctx)
}

func (c *Compiler) read(ctx context.Context) (doc *codes.Document, err error) {
	_, span := tracing.Start(ctx, "load", attribute.String("registry.path", c.store.Path()))
	defer func() { tracing.End(span, err) }()
	return c.store.Read()
}

func (c *Compiler) load(ctx context.Context) (*codes.Registry, error) {
	doc, err := c.read(ctx)
	if err != nil {
		return nil, err
	}
	return doc.Registry()
}

func (c *Compiler) validate(ctx context.Context, reg *codes.Registry) (err error) {
	ctx, span := tracing.Start(ctx, "validate", attribute.Int("registry.count", reg.Len()))
	defer func() { tracing.End(span, err) }()

	var escalate []codes.ViolationKind
	if c.requireFailRecord {
		escalate = append(escalate, codes.ViolationMissingFail)
	}
	warnings, err := reg.Check(escalate...)
	for _, w := range codes.Warnings(warnings) {
		log.WithTrace(ctx).WithField("kind", string(w.Kind)).Warn(w.String())
	}
	return err
}

func (c *Compiler) render(ctx context.Context, reg *codes.Registry) []emit.Artifact {
	_, span := tracing.Start(ctx, "render", attribute.Int("artifact.count", len(c.emitters)))
	defer span.End()
	return emit.Render(reg, c.emitters...)
}

// write stages every artifact, runs before (if any), then renames the
// artifacts into place. A before error discards the staged files.
func (c *Compiler) write(ctx context.Context, artifacts []emit.Artifact, before func() error) (err error) {
	ctx, span := tracing.Start(ctx, "write")
	defer func() { tracing.End(span, err) }()

	staged, err := emit.StageAll(artifacts)
	if err != nil {
		return err
	}
	if before != nil {
		if err = before(); err != nil {
			staged.Discard()
			return err
		}
	}
	if err = staged.Commit(); err != nil {
		return err
	}
	for _, a := range artifacts {
		log.WithTrace(ctx).WithFields(log.Fields{"target": a.Target, "path": a.Path}).Info("Regenerated")
	}
	return nil
}

// notify publishes a change event. The registry and artifacts are already
// consistent on disk, so failures only warn.
func (c *Compiler) notify(ctx context.Context, kind string, count int, sc *codes.StatusCode) {
	if _, ok := c.notifier.(notify.Nop); ok {
		return
	}
	raw, err := c.store.ReadRaw()
	if err != nil {
		log.WithTrace(ctx).WithError(err).Warn("Skipping change notification")
		return
	}
	evt := envelope.New(kind, raw, count, sc)
	evt.Registry = c.store.Path()
	if err := c.notifier.Notify(ctx, evt); err != nil {
		log.WithTrace(ctx).WithError(err).WithField("event", evt.ID).Warn("Change notification failed")
		return
	}
	log.WithTrace(ctx).WithFields(log.Fields{"event": evt.ID, "kind": kind}).Debug("Published change notification")
}

// IsStale reports whether err came from Check finding outdated artifacts.
func IsStale(err error) bool {
	return errors.Is(err, codes.ErrStaleArtifact)
}
