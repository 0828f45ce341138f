package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/flowtext/mmdascii/pkg/config"
	"github.com/flowtext/mmdascii/pkg/mmerr"
	"github.com/flowtext/mmdascii/pkg/pipeline"
)

const watchPollInterval = 300 * time.Millisecond

// watchCommand creates the "watch" command: a bubbletea TUI that
// re-renders path to the terminal every time its mtime changes.
func (c *CLI) watchCommand() *cobra.Command {
	var (
		direction string
		ascii     bool
		padding   int
	)

	cmd := &cobra.Command{
		Use:   "watch [file]",
		Short: "Re-render a Mermaid diagram live as the file changes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.DefaultRenderConfig()
			cfg.ASCII = ascii
			cfg.Padding = padding
			if direction != "" {
				cfg.Direction = mermaidDirection(direction)
			}

			model := newWatchModel(args[0], cfg)
			program := tea.NewProgram(model)
			_, err := program.Run()
			return err
		},
	}

	cmd.Flags().StringVarP(&direction, "direction", "d", "", "override the diagram direction: TD, BT, LR, RL")
	cmd.Flags().BoolVar(&ascii, "ascii", false, "use plain ASCII box characters instead of Unicode")
	cmd.Flags().IntVar(&padding, "padding", 1, "horizontal label padding inside each node box, in character cells")

	return cmd
}

// tickMsg triggers the next mtime poll.
type tickMsg time.Time

// renderedMsg carries the outcome of one render_dsl call.
type renderedMsg struct {
	output string
	err    error
	stats  pipeline.Stats
	mtime  time.Time
}

type watchModel struct {
	path     string
	cfg      config.RenderConfig
	lastMod  time.Time
	output   string
	errMsg   string
	stats    pipeline.Stats
	renderAt time.Time
}

func newWatchModel(path string, cfg config.RenderConfig) watchModel {
	return watchModel{path: path, cfg: cfg}
}

func (m watchModel) Init() tea.Cmd {
	return m.renderNow()
}

func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		}
	case tickMsg:
		info, err := os.Stat(m.path)
		if err == nil && info.ModTime().After(m.lastMod) {
			return m, tea.Batch(m.renderNow(), m.tick())
		}
		return m, m.tick()
	case renderedMsg:
		m.lastMod = msg.mtime
		m.renderAt = time.Now()
		if msg.err != nil {
			m.errMsg = mmerr.UserMessage(msg.err)
			m.output = ""
		} else {
			m.errMsg = ""
			m.output = msg.output
			m.stats = msg.stats
		}
		return m, m.tick()
	}
	return m, nil
}

func (m watchModel) View() string {
	var b strings.Builder
	b.WriteString(StyleTitle.Render("watch: " + m.path))
	b.WriteString("  ")
	b.WriteString(StyleDim.Render("q to quit"))
	b.WriteString("\n\n")

	if m.errMsg != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("167")).Render(m.errMsg))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(m.output)
	b.WriteString("\n")
	b.WriteString(StyleDim.Render(fmt.Sprintf("%d nodes · %d edges · rendered %s",
		m.stats.NodeCount, m.stats.EdgeCount, m.renderAt.Format("15:04:05"))))
	return b.String()
}

func (m watchModel) tick() tea.Cmd {
	return tea.Tick(watchPollInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m watchModel) renderNow() tea.Cmd {
	return func() tea.Msg {
		info, statErr := os.Stat(m.path)
		if statErr != nil {
			return renderedMsg{err: statErr}
		}
		source, err := os.ReadFile(m.path)
		if err != nil {
			return renderedMsg{err: err, mtime: info.ModTime()}
		}
		result, err := pipeline.RenderDSL(string(source), m.cfg, nil)
		if err != nil {
			return renderedMsg{err: err, mtime: info.ModTime()}
		}
		return renderedMsg{output: result.Output, stats: result.Stats, mtime: info.ModTime()}
	}
}
