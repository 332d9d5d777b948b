package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/bottlepop/internal/config"
	"github.com/vovakirdan/bottlepop/internal/core"
	"github.com/vovakirdan/bottlepop/internal/registry"
	"github.com/vovakirdan/bottlepop/internal/storage"
)

const dialBarWidth = 30

// MenuItem represents a selectable game mode in the menu.
type MenuItem struct {
	GameID      string
	Title       string
	Description string
	Best        int
	Played      int // Games recorded for this mode
	Steps       int // Highest intensity dial position
	Initial     int // Dial position the mode starts at by default
}

// MenuModel is the Bubble Tea model for the mode picker.
// Up/down picks a mode, left/right sets the starting intensity.
type MenuModel struct {
	items          []MenuItem
	cursor         int
	intensity      int
	bar            progress.Model
	width          int
	height         int
	config         core.RuntimeConfig
	keyMapper      *KeyMapper
	quitting       bool
	selected       *MenuItem // Set when user selects a game
	openScoreboard bool      // True if user pressed Tab for scoreboard
}

// NewMenuModel creates a new menu model. configPath is the custom config
// file given on the command line, used to read each mode's dial range.
func NewMenuModel(store *storage.Store, cfg core.RuntimeConfig, configPath string) MenuModel {
	games := registry.List()
	items := make([]MenuItem, 0, len(games))

	var stats map[string]*storage.GameStats
	if store != nil {
		stats, _ = store.GetAllGamesStats()
	}

	for _, g := range games {
		bc, err := config.LoadBottles(g.ID, configPath)
		if err != nil {
			bc = config.DefaultFor(g.ID)
		}

		item := MenuItem{
			GameID:      g.ID,
			Title:       g.Title,
			Description: g.Description,
			Steps:       bc.Intensity.Steps,
			Initial:     bc.Intensity.Initial,
		}
		if st, ok := stats[g.ID]; ok {
			item.Best = st.HighScore
			item.Played = st.GamesCount
		}
		items = append(items, item)
	}

	m := MenuModel{
		items:     items,
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		config:    cfg,
		keyMapper: NewKeyMapper(),
		bar: progress.New(
			progress.WithDefaultGradient(),
			progress.WithWidth(dialBarWidth),
			progress.WithoutPercentage(),
		),
	}
	if len(items) > 0 {
		m.intensity = items[0].Initial
	}
	return m
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.keyMapper.MapKeyToMenuAction(msg)

	switch action {
	case MenuActionQuit, MenuActionBack:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
			m.intensity = m.items[m.cursor].Initial
		}

	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
			m.intensity = m.items[m.cursor].Initial
		}

	case MenuActionLeft:
		if len(m.items) > 0 {
			m.intensity = core.Clamp(m.intensity-1, 0, m.items[m.cursor].Steps)
		}

	case MenuActionRight:
		if len(m.items) > 0 {
			m.intensity = core.Clamp(m.intensity+1, 0, m.items[m.cursor].Steps)
		}

	case MenuActionSelect:
		if len(m.items) > 0 {
			selected := m.items[m.cursor]
			m.selected = &selected
			return m, tea.Quit // Exit menu to start game
		}

	case MenuActionScoreboard:
		m.openScoreboard = true
		return m, tea.Quit // Exit menu to show scoreboard
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("B O T T L E   P O P"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Select a mode", m.width))
	b.WriteString("\n\n")

	for i, item := range m.items {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}

		line := fmt.Sprintf("%s%-20s best %-5d played %d", cursor, item.Title, item.Best, item.Played)
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	if len(m.items) > 0 {
		item := m.items[m.cursor]
		if item.Description != "" {
			b.WriteString("\n")
			b.WriteString(centerText(dimStyle.Render(item.Description), m.width))
			b.WriteString("\n")
		}

		b.WriteString("\n")
		b.WriteString(centerText(fmt.Sprintf("Starting intensity: %d/%d", m.intensity, item.Steps), m.width))
		b.WriteString("\n")
		b.WriteString(centerText(m.bar.ViewAs(m.dialPercent()), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	controls := "Up/Down: Mode  |  Left/Right: Intensity  |  Enter: Play  |  Tab: Scores  |  Q: Quit"
	b.WriteString(centerText(dimStyle.Render(controls), m.width))
	b.WriteString("\n")

	return b.String()
}

// dialPercent returns the chosen intensity as a fraction of the dial.
func (m MenuModel) dialPercent() float64 {
	if len(m.items) == 0 || m.items[m.cursor].Steps <= 0 {
		return 0
	}
	return float64(m.intensity) / float64(m.items[m.cursor].Steps)
}

// Selected returns the selected menu item, or nil if none selected.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// Intensity returns the chosen starting intensity.
func (m MenuModel) Intensity() int {
	return m.intensity
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if user requested scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	padding := (width - w) / 2
	return strings.Repeat(" ", padding) + text
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	GameID          string
	Intensity       int
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

// RunMenu runs the menu and returns the selection result.
func RunMenu(store *storage.Store, cfg core.RuntimeConfig, configPath string) (MenuResult, error) {
	model := NewMenuModel(store, cfg, configPath)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}

	return m.Result(), nil
}

// Result summarizes what the user chose.
func (m MenuModel) Result() MenuResult {
	result := MenuResult{
		Config:    m.Config(),
		Intensity: m.intensity,
	}

	switch {
	case m.WantsScoreboard():
		result.WantsScoreboard = true
	case m.IsQuitting() || m.Selected() == nil:
		result.Quit = true
	default:
		result.GameID = m.Selected().GameID
	}
	return result
}
