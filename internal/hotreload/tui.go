package hotreload

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	dashboardHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	dashboardLabelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	dashboardErrorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	dashboardOKStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
)

type tickMsg time.Time

func tickEvery(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// DashboardModel is a `oxide serve --tui` terminal dashboard: connected
// client count, last reload outcome, and the error overlay state,
// refreshed on a timer by polling the live Server.
type DashboardModel struct {
	server      *Server
	refreshRate time.Duration
	lastReload  string
	quitting    bool
}

// NewDashboardModel returns a dashboard polling server twice a second.
func NewDashboardModel(server *Server) DashboardModel {
	return DashboardModel{server: server, refreshRate: 500 * time.Millisecond, lastReload: "none yet"}
}

func (m DashboardModel) Init() tea.Cmd {
	return tickEvery(m.refreshRate)
}

func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		}
	case tickMsg:
		return m, tickEvery(m.refreshRate)
	}
	return m, nil
}

func (m DashboardModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(dashboardHeaderStyle.Render("oxidekit hot-reload dev server"))
	b.WriteString("\n\n")
	b.WriteString(dashboardLabelStyle.Render("address: "))
	b.WriteString(m.server.Address())
	b.WriteString("\n")
	b.WriteString(dashboardLabelStyle.Render("clients: "))
	b.WriteString(fmt.Sprintf("%d\n", m.server.ClientCount()))

	overlay := m.server.Overlay()
	b.WriteString(dashboardLabelStyle.Render("overlay: "))
	if overlay.IsVisible() {
		b.WriteString(dashboardErrorStyle.Render(fmt.Sprintf(
			"%s (%d errors, %d warnings)", overlay.State(), overlay.ErrorCount(), overlay.WarningCount())))
	} else {
		b.WriteString(dashboardOKStyle.Render("clear"))
	}
	b.WriteString("\n\n")
	b.WriteString(dashboardLabelStyle.Render("press q to quit"))
	return b.String()
}
