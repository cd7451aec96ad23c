package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/jc-juarez/lazarus-statusgen/pkg/bootstrap"
	"github.com/jc-juarez/lazarus-statusgen/pkg/codes"
	"github.com/jc-juarez/lazarus-statusgen/pkg/compiler"
	"github.com/jc-juarez/lazarus-statusgen/pkg/config"
	log "github.com/jc-juarez/lazarus-statusgen/pkg/logger"
	"github.com/jc-juarez/lazarus-statusgen/pkg/notify"
)

// LoadConfig reads the configuration and applies the flag overrides in opts.
func LoadConfig(opts *Options) (*config.Config, error) {
	lo := config.DefaultLoadOptions()
	if opts.ConfigFile != "" {
		lo.ConfigFile = opts.ConfigFile
	} else if opts.Root != "" {
		lo.ConfigPaths = append([]string{opts.Root, filepath.Join(opts.Root, "configs")}, lo.ConfigPaths...)
	}
	cfg, err := config.Load(lo)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if opts.Root != "" {
		cfg.Root = opts.Root
	}
	if opts.LogLevel != "" {
		cfg.Log.Level = opts.LogLevel
	}
	if opts.LogFormat != "" {
		cfg.Log.Format = opts.LogFormat
	}
	return cfg, nil
}

// Run executes the operation selected in opts. User-facing results go to
// out; logs and exported spans go to errOut.
func Run(ctx context.Context, opts *Options, out, errOut io.Writer) error {
	cfg, err := LoadConfig(opts)
	if err != nil {
		return err
	}
	registry := cfg.Resolve(cfg.Registry.Path)

	if err := bootstrap.InitLoggerWithOptions(cfg.Log, bootstrap.LoggerOptions{Output: errOut, Registry: registry}); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	shutdown, err := bootstrap.InitTracingWithWriter(ctx, cfg.Tracing, errOut)
	if err != nil {
		log.WithError(err).Warn("Tracing disabled")
	} else {
		defer func() {
			if err := shutdown(context.WithoutCancel(ctx)); err != nil {
				log.WithError(err).Warn("Tracing shutdown failed")
			}
		}()
	}

	var n notify.Notifier = notify.Nop{}
	if opts.Op != OpCheck {
		if built, err := notify.New(ctx, cfg.Notify); err != nil {
			log.WithError(err).WithField("backend", cfg.Notify.Backend).Warn("Change notification disabled")
		} else {
			n = built
		}
	}
	defer func() {
		if err := n.Close(); err != nil {
			log.WithError(err).Warn("Notifier close failed")
		}
	}()

	c := compiler.NewFromConfig(cfg, n)
	log.WithFields(log.Fields{"op": opts.Op.String(), "root": cfg.Root}).Debug("Starting")

	switch opts.Op {
	case OpGenerate:
		if err := c.Regenerate(ctx); err != nil {
			return err
		}
		printRegenerated(out, c)
	case OpAdd:
		sc, err := c.Append(ctx, opts.Name, opts.HTTP, opts.Desc)
		if err != nil {
			var dup *codes.DuplicateNameError
			if errors.As(err, &dup) {
				return fmt.Errorf("status code '%s' already exists. Aborting: %w", dup.Name, err)
			}
			return err
		}
		fmt.Fprintf(out, "[+] Added new status code: %s\n", sc.Name)
		fmt.Fprintf(out, "    Internal code: %s\n", sc.Hex())
		printRegenerated(out, c)
	case OpCheck:
		if err := c.Check(ctx); err != nil {
			return err
		}
		fmt.Fprintln(out, "[✓] Generated files are up to date")
	case OpInit:
		if err := c.Init(ctx); err != nil {
			return err
		}
		fmt.Fprintf(out, "[+] Created %s\n", c.RegistryPath())
		printRegenerated(out, c)
	default:
		return usageError("no operation selected")
	}
	return nil
}

func printRegenerated(out io.Writer, c *compiler.Compiler) {
	for _, p := range c.ArtifactPaths() {
		fmt.Fprintf(out, "[✓] Regenerated %s\n", p)
	}
}
