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

func FollowsCommandAction(ctx context.Context, cmd *cli.Command) error {
	whom := cmd.Args().First()

	runner := &SessionActionRunner{
		CommandName: "follows",
		Kind:        output.KindFollows,
		Step: func(ctx context.Context, _ *cli.Command, app *cludder.App) {
			app.LoadFollows(ctx, whom)
		},
	}
	return runner.Run(ctx, cmd)
}

func FollowsCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	return (&SessionCommandBuilder{
		Name:      "follows",
		Usage:     "list the follows recorded for a user",
		UsageText: `cludder follows NICK [options]`,
		ArgsUsage: "NICK",
		MinArgs:   1,
		MaxArgs:   1,
		Output:    "text",
		Action:    FollowsCommandAction,
		Meta:      meta,
	}).Build()
}
