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

func UsersCommandAction(ctx context.Context, cmd *cli.Command) error {
	runner := &SessionActionRunner{
		CommandName: "users",
		Kind:        output.KindUsers,
		Step: func(ctx context.Context, _ *cli.Command, app *cludder.App) {
			app.LoadUsers(ctx)
		},
	}
	return runner.Run(ctx, cmd)
}

func UsersCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	return (&SessionCommandBuilder{
		Name:      "users",
		Usage:     "list users other than yourself",
		UsageText: `cludder users [options]`,
		MaxArgs:   0,
		Output:    "text",
		Action:    UsersCommandAction,
		Meta:      meta,
	}).Build()
}
