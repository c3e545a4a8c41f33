package console

import "strings"

// Command names after alias resolution.
const (
	CmdStart  = "start"
	CmdPause  = "pause"
	CmdToggle = "toggle"
	CmdReset  = "reset"
	CmdMute   = "mute"
	CmdList   = "list"
	CmdPreset = "preset"
	CmdCustom = "custom"
	CmdHelp   = "help"
	CmdQuit   = "quit"
)

var aliases = map[string]string{
	"s": CmdStart,
	"p": CmdPause,
	"t": CmdToggle,
	"r": CmdReset,
	"m": CmdMute,
	"l": CmdList,
	"h": CmdHelp,
	"?": CmdHelp,
	"q": CmdQuit,
}

// Command is one parsed console line.
type Command struct {
	Name string
	Args []string
}

// Parse splits a line into a command and its arguments. The command name is
// case-insensitive and short aliases are resolved. An empty line toggles.
func Parse(line string) Command {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Command{Name: CmdToggle}
	}
	name := strings.ToLower(fields[0])
	if full, ok := aliases[name]; ok {
		name = full
	}
	return Command{Name: name, Args: fields[1:]}
}

const helpText = `Commands:
  s, start              start or resume timing
  p, pause              pause timing
  t, toggle, <enter>    start or pause
  r, reset              stop and clear the timer
  m, mute               turn sound cues off or on
  l, list               list presets
  preset <name|number>  select a preset
  custom gm gs ym ys rm rs
                        set a custom preset, minutes and seconds per signal
  h, help               show this help
  q, quit               exit`
