// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/staranto/cludder/internal/cludder"
	"github.com/staranto/cludder/internal/meta"
	"github.com/staranto/cludder/internal/output"
)

// PostCommandAction composes a post from the arguments, joined by spaces.
func PostCommandAction(ctx context.Context, cmd *cli.Command) error {
	message := strings.Join(cmd.Args().Slice(), " ")

	runner := &SessionActionRunner{
		CommandName: "post",
		Kind:        output.KindPosts,
		Step: func(ctx context.Context, _ *cli.Command, app *cludder.App) {
			app.Compose(ctx, message)
		},
	}
	return runner.Run(ctx, cmd)
}

func PostCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	return (&SessionCommandBuilder{
		Name:      "post",
		Usage:     "compose a post",
		UsageText: `cludder post MESSAGE... [options]`,
		ArgsUsage: "MESSAGE...",
		MinArgs:   1,
		MaxArgs:   -1,
		Output:    "html",
		Action:    PostCommandAction,
		Meta:      meta,
	}).Build()
}
