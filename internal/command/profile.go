// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/staranto/cludder/internal/meta"
	"github.com/staranto/cludder/internal/output"
)

// ProfileCommandAction loads the page: the signed-in handle and its posts.
func ProfileCommandAction(ctx context.Context, cmd *cli.Command) error {
	runner := &SessionActionRunner{
		CommandName: "profile",
		Kind:        output.KindPosts,
	}
	return runner.Run(ctx, cmd)
}

func ProfileCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	return (&SessionCommandBuilder{
		Name:      "profile",
		Usage:     "load the signed-in profile and its posts",
		UsageText: `cludder profile [options]`,
		MaxArgs:   0,
		Output:    "html",
		Action:    ProfileCommandAction,
		Meta:      meta,
	}).Build()
}
