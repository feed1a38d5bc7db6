// Package interactive provides the interactive command-line console for
// canlinkd.
package interactive

import (
	"context"
	"fmt"
	"strings"

	"github.com/chzyer/readline"

	"github.com/canlink-project/canlink-go/pkg/can"
	"github.com/canlink-project/canlink-go/pkg/config"
	"github.com/canlink-project/canlink-go/pkg/link"
	"github.com/canlink-project/canlink-go/pkg/log"
	"github.com/canlink-project/canlink-go/pkg/rtnl"
)

// Console handles interactive mode for canlinkd.
type Console struct {
	manager      *link.Manager
	configurator *link.Configurator
	conn         *rtnl.Conn
	files        []*config.File
	logger       log.Logger
	rl           *readline.Instance
}

// New creates a console over the daemon's manager, configurator, and
// netlink connection.
func New(manager *link.Manager, configurator *link.Configurator, conn *rtnl.Conn, files []*config.File, logger log.Logger) (*Console, error) {
	c := &Console{
		manager:      manager,
		configurator: configurator,
		conn:         conn,
		files:        files,
		logger:       logger,
	}

	completer := readline.NewPrefixCompleter(
		readline.PcItem("links"),
		readline.PcItem("show", readline.PcItemDynamic(c.linkNames)),
		readline.PcItem("configure", readline.PcItemDynamic(c.linkNames)),
		readline.PcItem("up", readline.PcItemDynamic(c.linkNames)),
		readline.PcItem("down", readline.PcItemDynamic(c.linkNames)),
		readline.PcItem("help"),
		readline.PcItem("quit"),
	)

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "canlink> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
		AutoComplete:    completer,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create readline: %w", err)
	}
	c.rl = rl

	return c, nil
}

// linkNames feeds the completer with the managed interface names.
func (c *Console) linkNames(string) []string {
	var names []string
	for _, l := range c.manager.Links() {
		names = append(names, l.Name)
	}
	return names
}

// Run starts the interactive command loop.
func (c *Console) Run(ctx context.Context, cancel context.CancelFunc) {
	defer c.rl.Close()

	c.printHelp()

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		line, err := c.rl.Readline()
		if err != nil {
			// EOF or interrupt
			if err == readline.ErrInterrupt {
				continue
			}
			fmt.Fprintln(c.rl.Stdout(), "Exiting...")
			cancel()
			return
		}

		input := strings.TrimSpace(line)
		if input == "" {
			continue
		}

		parts := strings.Fields(input)
		cmd := strings.ToLower(parts[0])
		args := parts[1:]

		switch cmd {
		case "help", "?":
			c.printHelp()

		case "links", "l":
			c.cmdLinks()

		case "show", "s":
			c.cmdShow(args)

		case "configure", "c":
			c.cmdConfigure(args)

		case "up":
			c.cmdUp(args)

		case "down":
			c.cmdDown(args)

		case "quit", "exit", "q":
			fmt.Fprintln(c.rl.Stdout(), "Exiting...")
			cancel()
			return

		default:
			fmt.Fprintf(c.rl.Stdout(), "Unknown command: %s (type 'help' for commands)\n", cmd)
		}
	}
}

func (c *Console) printHelp() {
	fmt.Fprintln(c.rl.Stdout(), `
CAN Link Commands:
  links              - List managed links and their states
  show <iface>       - Show a link's kernel parameters
  configure <iface>  - Run the configuration sequence for a link
  up <iface>         - Bring a link administratively up
  down <iface>       - Bring a link administratively down

  help               - Show this help
  quit               - Exit`)
}

// cmdLinks lists the managed links.
func (c *Console) cmdLinks() {
	links := c.manager.Links()
	if len(links) == 0 {
		fmt.Fprintln(c.rl.Stdout(), "No managed links")
		return
	}

	fmt.Fprintf(c.rl.Stdout(), "%-5s %-12s %-8s %-12s %s\n", "IDX", "NAME", "KIND", "STATE", "ADMIN")
	for _, l := range links {
		kind := l.Kind
		if kind == "" {
			kind = "-"
		}
		admin := "down"
		if l.AdminUp() {
			admin = "up"
		}
		fmt.Fprintf(c.rl.Stdout(), "%-5d %-12s %-8s %-12s %s\n", l.Index, l.Name, kind, l.State(), admin)
	}
}

// cmdShow dumps a link's current kernel state and parameters.
func (c *Console) cmdShow(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(c.rl.Stdout(), "Usage: show <iface>")
		return
	}
	name := args[0]

	infos, err := c.conn.List()
	if err != nil {
		fmt.Fprintf(c.rl.Stdout(), "Link dump failed: %v\n", err)
		return
	}

	for _, info := range infos {
		if info.Name != name {
			continue
		}

		fmt.Fprintf(c.rl.Stdout(), "\n%s (index %d)\n", info.Name, info.Index)
		if info.Kind != "" {
			fmt.Fprintf(c.rl.Stdout(), "  Kind:    %s\n", info.Kind)
		}
		admin := "down"
		if info.Up() {
			admin = "up"
		}
		fmt.Fprintf(c.rl.Stdout(), "  Admin:   %s\n", admin)

		if l, ok := c.manager.ByName(name); ok {
			fmt.Fprintf(c.rl.Stdout(), "  State:   %s\n", l.State())
		}
		if f := c.matchFile(name); f != nil {
			fmt.Fprintf(c.rl.Stdout(), "  Config:  %s\n", f.Path)
		}

		if len(info.InfoData) > 0 {
			c.printParameters(info.InfoData)
		}
		fmt.Fprintln(c.rl.Stdout())
		return
	}

	fmt.Fprintf(c.rl.Stdout(), "Link not found: %s\n", name)
}

// printParameters renders the kernel's CAN parameters for a link.
func (c *Console) printParameters(infoData []byte) {
	params, err := can.ParseInfoData(infoData)
	if err != nil {
		fmt.Fprintf(c.rl.Stdout(), "  Parameters: undecodable (%v)\n", err)
		return
	}

	if params.HasBitTiming {
		fmt.Fprintf(c.rl.Stdout(), "  Bitrate: %d bit/s (sample point %d.%d%%)\n",
			params.BitTiming.Bitrate, params.BitTiming.SamplePoint/10, params.BitTiming.SamplePoint%10)
	}
	if params.HasDataBitTiming {
		fmt.Fprintf(c.rl.Stdout(), "  Data bitrate: %d bit/s (sample point %d.%d%%)\n",
			params.DataBitTiming.Bitrate, params.DataBitTiming.SamplePoint/10, params.DataBitTiming.SamplePoint%10)
	}
	if params.HasCtrlMode && params.CtrlMode.Flags != 0 {
		fmt.Fprintf(c.rl.Stdout(), "  Modes:   %s\n", strings.Join(can.CtrlModeNames(params.CtrlMode.Flags), ","))
	}
	if params.HasRestartMS {
		if params.RestartMS == 0 {
			fmt.Fprintln(c.rl.Stdout(), "  Restart: disabled")
		} else {
			fmt.Fprintf(c.rl.Stdout(), "  Restart: %d ms\n", params.RestartMS)
		}
	}
	if params.HasTermination {
		fmt.Fprintf(c.rl.Stdout(), "  Termination: %d ohm\n", params.TerminationOhms)
	}
	if params.HasState {
		fmt.Fprintf(c.rl.Stdout(), "  Bus state: %s\n", can.StateName(params.State))
	}
	if params.HasClock {
		fmt.Fprintf(c.rl.Stdout(), "  Clock:   %d Hz\n", params.ClockFrequency)
	}
}

// cmdConfigure starts the configuration sequence for a link.
func (c *Console) cmdConfigure(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(c.rl.Stdout(), "Usage: configure <iface>")
		return
	}

	l, ok := c.manager.ByName(args[0])
	if !ok {
		fmt.Fprintf(c.rl.Stdout(), "Link not found: %s\n", args[0])
		return
	}

	f := c.matchFile(l.Name)
	if f == nil {
		fmt.Fprintf(c.rl.Stdout(), "No configuration matches %s\n", l.Name)
		return
	}

	l.Config = f.Resolve(c.logger)
	if err := c.configurator.Configure(l); err != nil {
		fmt.Fprintf(c.rl.Stdout(), "Configure failed: %v\n", err)
		return
	}
	fmt.Fprintf(c.rl.Stdout(), "Configuring %s from %s\n", l.Name, f.Path)
}

// cmdUp brings a link administratively up.
func (c *Console) cmdUp(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(c.rl.Stdout(), "Usage: up <iface>")
		return
	}

	l, ok := c.manager.ByName(args[0])
	if !ok {
		fmt.Fprintf(c.rl.Stdout(), "Link not found: %s\n", args[0])
		return
	}

	if err := c.manager.RequestUp(l); err != nil {
		fmt.Fprintf(c.rl.Stdout(), "Up request failed: %v\n", err)
		return
	}
	fmt.Fprintf(c.rl.Stdout(), "Bringing %s up\n", l.Name)
}

// cmdDown brings a link administratively down.
func (c *Console) cmdDown(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(c.rl.Stdout(), "Usage: down <iface>")
		return
	}

	l, ok := c.manager.ByName(args[0])
	if !ok {
		fmt.Fprintf(c.rl.Stdout(), "Link not found: %s\n", args[0])
		return
	}

	err := c.manager.RequestDown(l, func(s rtnl.Status) {
		fmt.Fprintf(c.rl.Stdout(), "\n%s: down %s\n", l.Name, s)
		c.rl.Refresh()
	})
	if err != nil {
		fmt.Fprintf(c.rl.Stdout(), "Down request failed: %v\n", err)
		return
	}
	fmt.Fprintf(c.rl.Stdout(), "Bringing %s down\n", l.Name)
}

// matchFile returns the first configuration file matching name.
func (c *Console) matchFile(name string) *config.File {
	for _, f := range c.files {
		if f.Matches(name) {
			return f
		}
	}
	return nil
}
