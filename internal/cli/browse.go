package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/isotrack/isotrack/pkg/api"
	"github.com/isotrack/isotrack/pkg/config"
	"github.com/isotrack/isotrack/pkg/store"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// newBrowseCmd creates the browse command: an interactive list of the
// diagrams and flows on a running server.
func newBrowseCmd(configPath *string) *cobra.Command {
	var baseURL string

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse diagrams and flows on a server interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			if baseURL == "" {
				baseURL = cfg.API.BaseURL
			}

			var opts []api.Option
			if cfg.API.Token != "" {
				opts = append(opts, api.WithTokenSource(api.StaticToken(cfg.API.Token)))
			}
			c := api.New(baseURL, opts...)

			model := NewBrowseModel(cmd.Context(), c)
			final, err := tea.NewProgram(model).Run()
			if err != nil {
				return err
			}
			if m, ok := final.(BrowseModel); ok && m.Err != nil {
				return m.Err
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&baseURL, "url", "", "server base URL (overrides config)")

	return cmd
}

// browseTab selects which record kind the list shows.
type browseTab int

const (
	tabDiagrams browseTab = iota
	tabFlows
)

// recordsMsg delivers the fetched records to the model.
type recordsMsg struct {
	diagrams []store.Diagram
	flows    []store.Flow
}

// fetchErrMsg delivers a fetch failure to the model.
type fetchErrMsg struct{ err error }

// BrowseModel is the bubbletea model for the browse command.
type BrowseModel struct {
	Diagrams []store.Diagram
	Flows    []store.Flow
	Tab      browseTab
	Cursor   int
	Loading  bool
	Err      error

	ctx    context.Context
	client *api.Client
}

// NewBrowseModel creates a browse model that fetches records on Init.
func NewBrowseModel(ctx context.Context, c *api.Client) BrowseModel {
	return BrowseModel{Loading: true, ctx: ctx, client: c}
}

func (m BrowseModel) Init() tea.Cmd {
	return m.fetch
}

func (m BrowseModel) fetch() tea.Msg {
	diagrams, err := m.client.ListDiagrams(m.ctx)
	if err != nil {
		return fetchErrMsg{err}
	}
	flows, err := m.client.ListFlows(m.ctx)
	if err != nil {
		return fetchErrMsg{err}
	}
	return recordsMsg{diagrams: diagrams, flows: flows}
}

// rowCount returns the number of rows on the active tab.
func (m BrowseModel) rowCount() int {
	if m.Tab == tabDiagrams {
		return len(m.Diagrams)
	}
	return len(m.Flows)
}

func (m BrowseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case recordsMsg:
		m.Diagrams = msg.diagrams
		m.Flows = msg.flows
		m.Loading = false
		return m, nil

	case fetchErrMsg:
		m.Err = msg.err
		m.Loading = false
		return m, tea.Quit

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "tab":
			if m.Tab == tabDiagrams {
				m.Tab = tabFlows
			} else {
				m.Tab = tabDiagrams
			}
			m.Cursor = 0
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
			}
		case "down", "j":
			if m.Cursor < m.rowCount()-1 {
				m.Cursor++
			}
		}
	}
	return m, nil
}

func (m BrowseModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("IsoTrack"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  tab switch  q quit"))
	b.WriteString("\n\n")

	if m.Loading {
		b.WriteString(listDimStyle.Render("Loading…"))
		return b.String()
	}
	if m.Err != nil {
		b.WriteString(StyleWarning.Render(m.Err.Error()))
		return b.String()
	}

	if m.Tab == tabDiagrams {
		b.WriteString(m.diagramTable())
	} else {
		b.WriteString(m.flowTable())
	}

	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, max(m.rowCount(), 1))))
	return b.String()
}

func (m BrowseModel) diagramTable() string {
	rows := [][]string{}
	for i, d := range m.Diagrams {
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		size := "—"
		if d.Data != nil {
			size = fmt.Sprintf("%d nodos · %d conexiones", len(d.Data.Nodes), len(d.Data.Edges))
		}
		rows = append(rows, []string{cursor, d.Name, d.Code, d.Type, size, formatRelativeTime(d.UpdatedAt)})
	}
	return m.renderTable([]string{"", "Diagrama", "Código", "Tipo", "Contenido", "Actualizado"}, rows)
}

func (m BrowseModel) flowTable() string {
	rows := [][]string{}
	for i, f := range m.Flows {
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		rows = append(rows, []string{cursor, f.Title, f.Area, strings.Join(f.Tags, ", "), formatRelativeTime(f.UpdatedAt)})
	}
	return m.renderTable([]string{"", "Flujo", "Área", "Etiquetas", "Actualizado"}, rows)
}

func (m BrowseModel) renderTable(headers []string, rows [][]string) string {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if row == m.Cursor {
				return listSelectedStyle
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		})

	return t.Render()
}

// formatRelativeTime renders a timestamp relative to now, falling back to
// an absolute date after a week.
func formatRelativeTime(t time.Time) string {
	if t.IsZero() {
		return "—"
	}

	diff := time.Since(t)
	switch {
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	case diff < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(diff.Hours()/24))
	default:
		return t.Format("Jan 2, 2006")
	}
}
