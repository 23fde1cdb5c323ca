// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/apex/log"

	"github.com/staranto/cludder/internal/cacheutil"
	"github.com/staranto/cludder/internal/command"
	"github.com/staranto/cludder/internal/config"
	mylog "github.com/staranto/cludder/internal/log"
	"github.com/staranto/cludder/internal/version"
)

func main() {
	os.Exit(realMain())
}

func realMain() int {
	mylog.InitLogger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	args := os.Args

	if len(args) < 2 {
		fmt.Fprintln(os.Stderr, "No command specified.")
		args = append(args, "--help")
	} else {
		args = mangleArguments(args)
	}

	// Short-circuit --version/-v.
	for _, a := range args {
		if a == "--version" || a == "-v" {
			fmt.Println(version.Version)
			return 0
		}
	}

	// Best-effort: pre-create cache directory when caching is enabled and drop
	// entries older than cache.clean hours.
	if _, ok, err := cacheutil.EnsureBaseDir(); err != nil {
		fmt.Fprintln(os.Stderr, err)
	} else if ok {
		if err := cacheutil.Purge(cacheCleanHours()); err != nil {
			log.WithError(err).Warn("cache purge failed")
		}
	}

	app, err := command.InitApp(ctx, args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	if err := app.Run(ctx, args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	return 0
}

// defaultCacheClean is the age in hours past which cached lookups are
// dropped when cache.clean is not configured.
const defaultCacheClean = 24

// cacheCleanHours reads cache.clean. A value of 0 or less keeps entries
// forever.
func cacheCleanHours() int {
	hours, _ := config.GetInt("cache.clean", defaultCacheClean)
	return hours
}

// mangleArguments expands an argument set from the config file right after
// the command. "@name" picks <command>.<name>; without one <command>.defaults
// is used when it exists.
func mangleArguments(args []string) []string {
	// Short-circuit for --help/-h. If help is requested, just keep the preamble
	// and add --help flag.
	for _, a := range args {
		if a == "--help" || a == "-h" {
			preamble := make([]string, 2, 3)
			copy(preamble, args[:2])
			return append(preamble, "--help")
		}
	}

	if strings.HasPrefix(args[1], "-") {
		return args
	}

	working := make([]string, 0, len(args))
	working = append(working, args[:2]...)

	set := "defaults"
	var rest []string
	for _, a := range args[2:] {
		if strings.HasPrefix(a, "@") && len(a) > 1 {
			set = a[1:]
			continue
		}
		rest = append(rest, a)
	}

	setArgs, _ := config.GetStringSlice(args[1] + "." + set)
	for _, arg := range setArgs {
		working = append(working, strings.Fields(arg)...)
	}
	working = append(working, rest...)

	log.Debugf("set=%s, args=%v", set, working)
	return working
}
