// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package command

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/staranto/cludder/internal/output"
)

func GlobalFlagsValidator(ctx context.Context, c *cli.Command) error {
	return nil
}

type FlagValidatorType func(any) error

func FlagValidators(value any, validators ...FlagValidatorType) error {
	for _, v := range validators {
		if err := v(value); err != nil {
			return err
		}
	}
	return nil
}

// JammedFlagValidator verifies that the arg following a flag does not begin
// with '--'.  urfave/cli allows this and I don't see how to turn it off.
func JammedFlagValidator(value any) error {
	if strings.HasPrefix(value.(string), "--") {
		return errors.New("must not begin with '--'")
	}
	return nil
}

func OutputValidator(value any) error {
	if s, ok := value.(string); !ok || !slices.Contains(output.Formats, s) {
		return fmt.Errorf("must be one of %v", output.Formats)
	}
	return nil
}

// ArgsValidator returns a Before hook that checks the positional argument
// count is within [minArgs, maxArgs]. A negative maxArgs means no limit.
func ArgsValidator(minArgs, maxArgs int) cli.BeforeFunc {
	return func(ctx context.Context, c *cli.Command) (context.Context, error) {
		n := c.Args().Len()
		switch {
		case n < minArgs:
			return ctx, fmt.Errorf("%s: expected at least %d argument(s), got %d", c.Name, minArgs, n)
		case maxArgs >= 0 && n > maxArgs:
			return ctx, fmt.Errorf("%s: expected at most %d argument(s), got %d", c.Name, maxArgs, n)
		}
		return ctx, GlobalFlagsValidator(ctx, c)
	}
}
