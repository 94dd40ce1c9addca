package main

import (
	"strings"

	"github.com/glebovdev/nowplaying/internal/nowplaying"
)

type commandKind int

const (
	cmdNone commandKind = iota
	cmdIntent
	cmdSearch
	cmdSelect
	cmdFavorite
	cmdRefresh
	cmdList
	cmdShare
	cmdHelp
	cmdQuit
)

type command struct {
	kind   commandKind
	intent nowplaying.Intent
	arg    string
}

const helpText = `Commands:
  <station name>  play a station
  /<text>         filter the station list ("/" alone clears it)
  p               play/pause
  s               stop
  n, b            next / previous station
  f               toggle favorite for the current station
  r               refresh the station list
  l               list stations
  i               show what is playing
  h               help
  q               quit`

func parseCommand(line string) command {
	line = strings.TrimSpace(line)
	if line == "" {
		return command{kind: cmdNone}
	}

	if strings.HasPrefix(line, "/") {
		return command{kind: cmdSearch, arg: strings.TrimPrefix(line, "/")}
	}

	switch line {
	case "p":
		return command{kind: cmdIntent, intent: nowplaying.IntentTogglePlay}
	case "s":
		return command{kind: cmdIntent, intent: nowplaying.IntentStop}
	case "n":
		return command{kind: cmdIntent, intent: nowplaying.IntentNext}
	case "b":
		return command{kind: cmdIntent, intent: nowplaying.IntentPrevious}
	case "f":
		return command{kind: cmdFavorite}
	case "r":
		return command{kind: cmdRefresh}
	case "l":
		return command{kind: cmdList}
	case "i":
		return command{kind: cmdShare}
	case "h", "?":
		return command{kind: cmdHelp}
	case "q":
		return command{kind: cmdQuit}
	}

	return command{kind: cmdSelect, arg: line}
}
