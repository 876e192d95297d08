package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/felixgeelhaar/kopi/internal/api"
	"github.com/felixgeelhaar/kopi/internal/cart"
	"github.com/felixgeelhaar/kopi/internal/theme"
)

// menuEntry adapts a menu item to the list component.
type menuEntry struct {
	item api.MenuItem
}

func (e menuEntry) Title() string {
	if !e.item.IsAvailable {
		return e.item.Name + " (unavailable)"
	}
	return e.item.Name
}

func (e menuEntry) Description() string {
	return fmt.Sprintf("$%.2f  %s", e.item.Price, e.item.Description)
}

func (e menuEntry) FilterValue() string {
	return e.item.Name
}

// browserKeys are the keyboard shortcuts of the menu browser.
type browserKeys struct {
	Add    key.Binding
	Remove key.Binding
	Quit   key.Binding
}

var defaultBrowserKeys = browserKeys{
	Add: key.NewBinding(
		key.WithKeys("enter", "a"),
		key.WithHelp("enter", "add to cart"),
	),
	Remove: key.NewBinding(
		key.WithKeys("x"),
		key.WithHelp("x", "remove from cart"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "esc", "ctrl+c"),
		key.WithHelp("q", "done"),
	),
}

// BrowserModel is the interactive menu browser. Selections mutate the cart
// store directly, so quitting at any point keeps what was added.
type BrowserModel struct {
	list   list.Model
	cart   *cart.Store
	styles theme.Theme
	keys   browserKeys
	status string
}

// NewBrowser creates a menu browser over the given items.
func NewBrowser(items []api.MenuItem, cartStore *cart.Store, styles theme.Theme) BrowserModel {
	entries := make([]list.Item, len(items))
	for i, item := range items {
		entries[i] = menuEntry{item: item}
	}

	l := list.New(entries, list.NewDefaultDelegate(), 0, 0)
	l.Title = "Menu"
	l.SetShowStatusBar(false)
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{defaultBrowserKeys.Add, defaultBrowserKeys.Remove, defaultBrowserKeys.Quit}
	}

	return BrowserModel{
		list:   l,
		cart:   cartStore,
		styles: styles,
		keys:   defaultBrowserKeys,
	}
}

// Init implements tea.Model.
func (m BrowserModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m BrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width, msg.Height-2)

	case tea.KeyMsg:
		// Never intercept shortcuts while the user is typing a filter.
		if m.list.FilterState() == list.Filtering {
			break
		}

		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.Add):
			if entry, ok := m.list.SelectedItem().(menuEntry); ok {
				if !entry.item.IsAvailable {
					m.status = m.styles.Error.Render(entry.item.Name + " is currently unavailable")
					return m, nil
				}
				res := m.cart.AddItem(&entry.item, 1)
				m.status = m.styles.Success.Render(res.Message)
			}
			return m, nil

		case key.Matches(msg, m.keys.Remove):
			if entry, ok := m.list.SelectedItem().(menuEntry); ok {
				if res := m.cart.RemoveItem(entry.item.ID); res.Success {
					m.status = m.styles.Muted.Render(entry.item.Name + " removed from cart")
				} else {
					m.status = m.styles.Muted.Render(res.Message)
				}
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m BrowserModel) View() string {
	footer := m.styles.Highlight.Render(
		fmt.Sprintf("Cart: %d items, $%.2f", m.cart.ItemCount(), m.cart.TotalPrice()),
	)
	if m.status != "" {
		footer += "  " + m.status
	}
	return m.list.View() + "\n" + footer
}

// RunBrowser opens the menu browser and blocks until the user quits.
func RunBrowser(items []api.MenuItem, cartStore *cart.Store, styles theme.Theme) error {
	p := tea.NewProgram(NewBrowser(items, cartStore, styles), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("menu browser failed: %w", err)
	}
	return nil
}
