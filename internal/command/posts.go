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

// PostsCommandAction adds the posts of SUBJECT, when given, to the ones the
// profile load already fetched.
func PostsCommandAction(ctx context.Context, cmd *cli.Command) error {
	subject := cmd.Args().First()

	runner := &SessionActionRunner{
		CommandName: "posts",
		Kind:        output.KindPosts,
	}
	if subject != "" {
		runner.Step = func(ctx context.Context, _ *cli.Command, app *cludder.App) {
			app.LoadPosts(ctx, subject)
		}
	}
	return runner.Run(ctx, cmd)
}

func PostsCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	return (&SessionCommandBuilder{
		Name:      "posts",
		Usage:     "list posts",
		UsageText: `cludder posts [SUBJECT] [options]`,
		ArgsUsage: "[SUBJECT]",
		MaxArgs:   1,
		Output:    "html",
		Action:    PostsCommandAction,
		Meta:      meta,
	}).Build()
}
