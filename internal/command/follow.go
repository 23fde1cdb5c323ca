// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/staranto/cludder/internal/cludder"
	"github.com/staranto/cludder/internal/meta"
	"github.com/staranto/cludder/internal/output"
)

// FollowCommandAction follows the handle given as the only argument and
// emits the follows known afterwards.
func FollowCommandAction(ctx context.Context, cmd *cli.Command) error {
	whom := cmd.Args().First()

	runner := &SessionActionRunner{
		CommandName: "follow",
		Kind:        output.KindFollows,
		Step: func(ctx context.Context, _ *cli.Command, app *cludder.App) {
			app.Follow(ctx, whom)
		},
	}
	return runner.Run(ctx, cmd)
}

func FollowCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	return (&SessionCommandBuilder{
		Name:      "follow",
		Usage:     "follow a user",
		UsageText: `cludder follow NICK [options]`,
		ArgsUsage: "NICK",
		MinArgs:   1,
		MaxArgs:   1,
		Output:    "text",
		Action:    FollowCommandAction,
		Meta:      meta,
	}).Build()
}
