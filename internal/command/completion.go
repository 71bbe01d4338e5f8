// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/ndjdiff/ndjdiff/internal/meta"
)

const bashCompletionScript = `# bash completion for ndjdiff
# Fallback if bash-completion is not installed
if ! declare -F _get_comp_words_by_ref >/dev/null 2>&1; then
  _get_comp_words_by_ref() {
    cur=${COMP_WORDS[COMP_CWORD]}
    prev=${COMP_WORDS[COMP_CWORD-1]}
  }
fi

_ndjdiff()
{
    local cur prev cmd
    COMPREPLY=()
    _get_comp_words_by_ref -n : cur prev

    if [[ ${COMP_CWORD} -eq 1 ]]; then
        COMPREPLY=( $(compgen -W "diff keys completion --help --version" -- "$cur") )
        return 0
    fi

    cmd=${COMP_WORDS[1]}
  local common="--color -c --filter -f --key -k --output -o --passphrase --profile --region --where -w"

    case "$cmd" in
        diff)
      local opts="$common --detail -d --pick --limit"
            ;;
        keys)
      local opts="$common"
            ;;
        completion)
            local opts="bash zsh"
            COMPREPLY=( $(compgen -W "$opts" -- "$cur") )
            return 0
            ;;
        *)
            local opts="$common"
            ;;
    esac

    if [[ "$prev" == "--output" || "$prev" == "-o" ]]; then
        COMPREPLY=( $(compgen -W "text json raw yaml" -- "$cur") )
        return 0
    fi

  if [[ "$cur" == -* ]]; then
    COMPREPLY=( $(compgen -W "$opts" -- "$cur") )
    return 0
  fi

  # Positional sources are files (or s3:// URIs the user types out)
  COMPREPLY=( $(compgen -o default -- "$cur") )
  return 0
}

complete -F _ndjdiff ndjdiff
`

const zshCompletionScript = `#compdef ndjdiff

_ndjdiff() {
  local -a cmds
  cmds=(
    'diff:compare two NDJSON inputs'
    'keys:list the record keys present in one NDJSON input'
    'completion:generate shell completion script'
  )

  local -a common
  common=(
  '(-c --color)'{-c,--color}'[enable colored text]'
  '(-f --filter)'{-f,--filter}'[filters to apply]:filters'
  '(-k --key)'{-k,--key}'[key path]:path'
  '(-o --output)'{-o,--output}'[output format]:format:(text json raw yaml)'
  '--passphrase[sealed input passphrase]:passphrase'
  '--profile[aws profile]:profile'
  '--region[aws region]:region'
  '(-w --where)'{-w,--where}'[predicate expression]:expr'
  )

  if (( CURRENT == 2 )); then
    _describe -t commands 'ndjdiff commands' cmds
    return
  fi

  local curcontext="$curcontext" state line
  case $words[2] in
    diff)
      _arguments -C \
        $common \
        '(-d --detail)'{-d,--detail}'[attribute-level diff for changed pairs]' \
        '--pick[pick two versions of one s3 object]' \
        '--limit[max object versions offered by --pick]:limit' \
        '*:source:_files'
      ;;
    keys)
      _arguments -C \
        $common \
        '1:source:_files'
      ;;
    completion)
      _arguments '1: :((bash zsh))'
      ;;
    *)
      _arguments -C $common '*:source:_files'
      ;;
  esac
}

# If this file is sourced directly (not autoloaded via fpath), ensure compsys
# is initialized and register the completion
if ! typeset -f compdef >/dev/null 2>&1; then
  autoload -Uz compinit && compinit -i
fi
compdef _ndjdiff ndjdiff ndjdiff
`

func completionCommandAction(ctx context.Context, cmd *cli.Command) error {
	shell := ""
	if args := cmd.Args().Slice(); len(args) > 0 {
		shell = args[0]
	}
	switch shell {
	case "bash":
		fmt.Fprint(os.Stdout, bashCompletionScript)
	case "zsh":
		fmt.Fprint(os.Stdout, zshCompletionScript)
	default:
		// Try to detect from SHELL or print help
		sh := os.Getenv("SHELL")
		switch {
		case strings.HasSuffix(sh, "zsh"):
			fmt.Fprint(os.Stdout, zshCompletionScript)
		case strings.HasSuffix(sh, "bash"):
			fmt.Fprint(os.Stdout, bashCompletionScript)
		default:
			fmt.Fprintln(os.Stderr, "usage: ndjdiff completion [bash|zsh]")
			return nil
		}
	}
	return nil
}

func completionCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "completion",
		Usage:     "generate shell completion script",
		UsageText: "ndjdiff completion [bash|zsh]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Action: completionCommandAction,
	}
}
