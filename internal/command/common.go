// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/staranto/cludder/internal/cacheutil"
	"github.com/staranto/cludder/internal/cludder"
	"github.com/staranto/cludder/internal/config"
	"github.com/staranto/cludder/internal/meta"
	"github.com/staranto/cludder/internal/output"
	"github.com/staranto/cludder/internal/transport"
)

// ShortCircuitTLDR checks the --tldr flag and, if present and available,
// runs `tldr cludder <subcmd>` and returns true so the caller can exit early.
func ShortCircuitTLDR(ctx context.Context, cmd *cli.Command, subcmd string) bool {
	if cmd.Bool("tldr") {
		if _, err := exec.LookPath("tldr"); err == nil {
			c := exec.CommandContext(ctx, "tldr", "cludder", subcmd)
			c.Stdout = os.Stdout
			c.Stderr = os.Stderr
			_ = c.Run()
		}
		return true
	}
	return false
}

// GetMeta returns the meta.Meta stored in the command's Metadata. If missing
// or of an unexpected type, it returns the zero value.
func GetMeta(cmd *cli.Command) meta.Meta {
	if cmd == nil || cmd.Metadata == nil {
		return meta.Meta{}
	}
	if m, ok := cmd.Metadata["meta"].(meta.Meta); ok {
		return m
	}
	return meta.Meta{}
}

// NewSession builds the application context for one invocation: an HTTP
// client for --host, the lookup cache when enabled, and an App bound to
// --property.
func NewSession(cmd *cli.Command) (*cludder.App, error) {
	var opts []transport.Option
	if cacheutil.Enabled() {
		fns, err := config.GetStringSlice("cache.functions", []string{cludder.FnGetHandle})
		if err != nil {
			return nil, fmt.Errorf("invalid cache.functions: %w", err)
		}
		opts = append(opts, transport.WithLookupCache(fns...))
	}

	client, err := transport.NewClient(cmd.String("host"), opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}
	log.Debugf("host: %s", client.Host())

	shim := transport.NewShim(client, transport.NewLoop())
	return cludder.NewApp(shim, cludder.WithProperty(cmd.String("property"))), nil
}

// Writer is where command results go: the root command's writer, which is
// stdout unless a caller replaced it.
func Writer(cmd *cli.Command) io.Writer {
	if root := cmd.Root(); root != nil && root.Writer != nil {
		return root.Writer
	}
	return os.Stdout
}

// SessionCommandBuilder constructs a cli.Command for the page commands
// (profile, post, follow, posts, users, follows) using a consistent pattern.
// The builder wires metadata, adds the host, property, tldr and output
// flags, and sets up validators.
type SessionCommandBuilder struct {
	Name      string
	Usage     string
	UsageText string
	ArgsUsage string
	MinArgs   int
	MaxArgs   int
	Output    string
	Flags     []cli.Flag
	Action    func(context.Context, *cli.Command) error
	Meta      meta.Meta
}

// Build returns a configured cli.Command from the builder.
func (b *SessionCommandBuilder) Build() *cli.Command {
	return &cli.Command{
		Name:      b.Name,
		Usage:     b.Usage,
		UsageText: b.UsageText,
		ArgsUsage: b.ArgsUsage,
		Metadata: map[string]any{
			"meta": b.Meta,
		},
		Flags: append(b.Flags, append([]cli.Flag{
			tldrFlag,
			NewHostFlag(b.Name, b.Meta.Config.Source),
			NewPropertyFlag(b.Name, b.Meta.Config.Source),
		}, NewGlobalFlags(b.Name, b.Output)...)...),
		Before: ArgsValidator(b.MinArgs, b.MaxArgs),
		Action: b.Action,
	}
}

// SessionActionRunner encapsulates the page load every session command
// performs: the profile is loaded first, then Step runs the command's own
// action, and once every call has settled the Kind dataset is emitted.
type SessionActionRunner struct {
	CommandName string
	Kind        output.Kind
	Step        func(context.Context, *cli.Command, *cludder.App)
}

// Run executes the session action with the provided context and command.
func (r *SessionActionRunner) Run(ctx context.Context, cmd *cli.Command) error {
	// Step 1: GetMeta + debug.
	m := GetMeta(cmd)
	if len(m.Args) > 1 {
		log.Debugf("Executing action for %v", m.Args[1:])
	}

	// Step 2: Short-circuit checks.
	if ShortCircuitTLDR(ctx, cmd, r.CommandName) {
		return nil
	}

	// Step 3: Build the session.
	app, err := NewSession(cmd)
	if err != nil {
		return err
	}

	// Step 4: Load the profile. The nick it resolves is needed by compose and
	// by the user listing, so it settles before the command's own action.
	app.LoadProfile(ctx)
	if err := app.Wait(ctx); err != nil {
		return fmt.Errorf("%s: %w", r.CommandName, err)
	}

	// Step 5: Command action.
	if r.Step != nil {
		r.Step(ctx, cmd, app)
		if err := app.Wait(ctx); err != nil {
			return fmt.Errorf("%s: %w", r.CommandName, err)
		}
	}

	// Step 6: Emit.
	opts := output.Options{
		Format: cmd.String("output"),
		Color:  cmd.Bool("color"),
		Titles: cmd.Bool("titles"),
		Filter: cmd.String("filter"),
	}
	return output.SliceDiceSpit(Writer(cmd), app.Page(), app.Cache(), r.Kind, opts)
}
