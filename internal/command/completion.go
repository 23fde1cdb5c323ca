// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package command

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/staranto/cludder/internal/meta"
	"github.com/urfave/cli/v3"
)

const bashCompletionScript = `# bash completion for cludder
# Fallback if bash-completion is not installed
if ! declare -F _get_comp_words_by_ref >/dev/null 2>&1; then
  _get_comp_words_by_ref() {
    cur=${COMP_WORDS[COMP_CWORD]}
    prev=${COMP_WORDS[COMP_CWORD-1]}
  }
fi

_cludder()
{
    local cur prev cmd
    COMPREPLY=()
    _get_comp_words_by_ref -n : cur prev

    if [[ ${COMP_CWORD} -eq 1 ]]; then
        COMPREPLY=( $(compgen -W "profile post follow posts users follows completion --help --version" -- "$cur") )
        return 0
    fi

    cmd=${COMP_WORDS[1]}
    local common="--color -c --filter -f --host -H --output -o --property --titles -t --tldr"

    case "$cmd" in
        completion)
            COMPREPLY=( $(compgen -W "bash zsh" -- "$cur") )
            return 0
            ;;
    esac

    if [[ "$prev" == "--output" || "$prev" == "-o" ]]; then
        COMPREPLY=( $(compgen -W "html text json yaml" -- "$cur") )
        return 0
    fi

    if [[ "$cur" == -* ]]; then
        COMPREPLY=( $(compgen -W "$common" -- "$cur") )
    fi
    return 0
}

complete -F _cludder cludder
`

const zshCompletionScript = `#compdef cludder

_cludder() {
  local -a cmds
  cmds=(
    'profile:load the signed-in profile and its posts'
    'post:compose a post'
    'follow:follow a user'
    'posts:list posts'
    'users:list users other than yourself'
    'follows:list the follows recorded for a user'
    'completion:generate shell completion script'
  )

  local -a common
  common=(
  '(-c --color)'{-c,--color}'[enable colored text]'
  '(-f --filter)'{-f,--filter}'[filters to apply]:filters'
  '(-H --host)'{-H,--host}'[backend base URL]:host'
  '(-o --output)'{-o,--output}'[output format]:format:(html text json yaml)'
  '--property[app property holding the session id]:property'
  '(-t --titles)'{-t,--titles}'[show titles]'
  '--tldr[show tldr page]'
  )

  if (( CURRENT == 2 )); then
    _describe -t commands 'cludder commands' cmds
    return
  fi

  local curcontext="$curcontext" state line
  case $words[2] in
    post)
      _arguments -C $common '*:message'
      ;;
    follow|follows)
      _arguments -C $common '1:nick'
      ;;
    posts)
      _arguments -C $common '::subject'
      ;;
    completion)
      _arguments '1: :((bash zsh))'
      ;;
    *)
      _arguments -C $common
      ;;
  esac
}

# If this file is sourced directly (not autoloaded via fpath), ensure compsys is initialized and register the completion
if ! typeset -f compdef >/dev/null 2>&1; then
  autoload -Uz compinit && compinit -i
fi
compdef _cludder cludder
`

func CompletionCommandAction(ctx context.Context, cmd *cli.Command) error {
	shell := ""
	if args := cmd.Args().Slice(); len(args) > 0 {
		shell = args[0]
	}
	switch shell {
	case "bash":
		fmt.Fprint(Writer(cmd), bashCompletionScript)
	case "zsh":
		fmt.Fprint(Writer(cmd), zshCompletionScript)
	default:
		// Try to detect from SHELL or print help
		sh := os.Getenv("SHELL")
		if strings.HasSuffix(sh, "zsh") {
			fmt.Fprint(Writer(cmd), zshCompletionScript)
		} else if strings.HasSuffix(sh, "bash") {
			fmt.Fprint(Writer(cmd), bashCompletionScript)
		} else {
			return errors.New("usage: cludder completion [bash|zsh]")
		}
	}
	return nil
}

func CompletionCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "completion",
		Usage:     "generate shell completion script",
		UsageText: "cludder completion [bash|zsh]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Action: CompletionCommandAction,
	}
}
