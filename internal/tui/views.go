package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/felixgeelhaar/kopi/internal/api"
	"github.com/felixgeelhaar/kopi/internal/cart"
	"github.com/felixgeelhaar/kopi/internal/loyalty"
	"github.com/felixgeelhaar/kopi/internal/profile"
	"github.com/felixgeelhaar/kopi/internal/theme"
)

func newTable(styles theme.Theme, headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(styles.Border).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styles.Header.Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		}).
		Headers(headers...)
}

// MenuTable renders the menu as a table.
func MenuTable(items []api.MenuItem, styles theme.Theme) string {
	if len(items) == 0 {
		return styles.Muted.Render("The menu is empty.")
	}

	t := newTable(styles, "ID", "Name", "Category", "Price", "Available")
	for _, item := range items {
		available := "yes"
		if !item.IsAvailable {
			available = "no"
		}
		t.Row(
			strconv.FormatUint(uint64(item.ID), 10),
			item.Name,
			item.Category,
			fmt.Sprintf("$%.2f", item.Price),
			available,
		)
	}
	return t.Render()
}

// CartView renders the cart lines and the running total.
func CartView(lines []cart.Line, total float64, styles theme.Theme) string {
	if len(lines) == 0 {
		return styles.Muted.Render("Your cart is empty.")
	}

	t := newTable(styles, "ID", "Item", "Price", "Qty", "Subtotal")
	for _, l := range lines {
		t.Row(
			strconv.FormatUint(uint64(l.MenuID), 10),
			l.Name,
			fmt.Sprintf("$%.2f", l.UnitPrice),
			strconv.Itoa(l.Quantity),
			fmt.Sprintf("$%.2f", l.Subtotal),
		)
	}

	return t.Render() + "\n" + styles.Highlight.Render(fmt.Sprintf("Total: $%.2f", total))
}

// OrdersTable renders an order list.
func OrdersTable(orders []api.Order, styles theme.Theme) string {
	if len(orders) == 0 {
		return styles.Muted.Render("No orders yet.")
	}

	t := newTable(styles, "ID", "Number", "Status", "Total", "Placed")
	for _, o := range orders {
		t.Row(
			strconv.FormatUint(uint64(o.ID), 10),
			o.OrderNumber,
			string(o.Status),
			fmt.Sprintf("$%.2f", o.TotalPrice),
			o.CreatedAt.Format("2006-01-02 15:04"),
		)
	}
	return t.Render()
}

// OrderDetail renders one order with its lines.
func OrderDetail(order *api.Order, styles theme.Theme) string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("Order " + order.OrderNumber))
	b.WriteString("\n")
	b.WriteString(styles.Muted.Render("Status: ") + string(order.Status))
	b.WriteString("\n")
	if order.PickupCode != "" {
		b.WriteString(styles.Muted.Render("Pickup code: ") + styles.Highlight.Render(order.PickupCode))
		b.WriteString("\n")
	}

	if len(order.OrderItems) > 0 {
		t := newTable(styles, "Item", "Qty", "Unit", "Subtotal")
		for _, it := range order.OrderItems {
			name := strconv.FormatUint(uint64(it.MenuID), 10)
			if it.MenuItem != nil {
				name = it.MenuItem.Name
			}
			t.Row(
				name,
				strconv.Itoa(it.Quantity),
				fmt.Sprintf("$%.2f", it.UnitPrice),
				fmt.Sprintf("$%.2f", it.UnitPrice*float64(it.Quantity)),
			)
		}
		b.WriteString(t.Render())
		b.WriteString("\n")
	}

	if order.CustomerPointsUsed > 0 {
		b.WriteString(fmt.Sprintf("Points used: %d (-$%.2f)\n", order.CustomerPointsUsed, order.PointsDeductionAmount))
	}
	if order.PointsEarned > 0 {
		b.WriteString(fmt.Sprintf("Points earned: %d\n", order.PointsEarned))
	}
	b.WriteString(styles.Highlight.Render(fmt.Sprintf("Total: $%.2f", order.TotalPrice)))
	return b.String()
}

// PointsView renders the loyalty account summary.
func PointsView(info *api.PointsInfo, styles theme.Theme) string {
	var b strings.Builder

	b.WriteString(styles.Title.Render(loyalty.LevelLabel(info.MemberLevel)))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("Available points: %d\n", info.AvailablePoints))
	b.WriteString(fmt.Sprintf("Lifetime points:  %d\n", info.LifetimePoints))
	if info.FrozenPoints > 0 {
		b.WriteString(fmt.Sprintf("Frozen points:    %d\n", info.FrozenPoints))
	}

	if info.NextLevel != nil {
		progress := loyalty.NextLevelProgress(info)
		b.WriteString(styles.Muted.Render(fmt.Sprintf(
			"%d points to %s (%.0f%% there)",
			info.NextLevel.PointsNeeded, info.NextLevel.Name, progress*100,
		)))
	}
	return b.String()
}

// TransactionsTable renders one page of the loyalty ledger.
func TransactionsTable(page *api.TransactionPage, styles theme.Theme) string {
	if page == nil || len(page.Transactions) == 0 {
		return styles.Muted.Render("No point transactions yet.")
	}

	t := newTable(styles, "When", "Type", "Points", "Balance", "Description")
	for _, tx := range page.Transactions {
		points := strconv.Itoa(tx.PointsChange)
		if tx.PointsChange > 0 {
			points = "+" + points
		}
		t.Row(
			tx.CreatedAt.Format("2006-01-02"),
			loyalty.TransactionLabel(tx.TransactionType),
			points,
			strconv.Itoa(tx.PointsBalance),
			tx.Description,
		)
	}

	out := t.Render()
	if page.Pages > 1 {
		out += "\n" + styles.Muted.Render(fmt.Sprintf("Page %d of %d", page.Page, page.Pages))
	}
	return out
}

// ProfileView renders the account profile.
func ProfileView(user *api.User, styles theme.Theme) string {
	var b strings.Builder

	b.WriteString(styles.Title.Render(profile.FullName(user)))
	b.WriteString("\n")
	b.WriteString(styles.Muted.Render("Username: ") + user.Username + "\n")
	b.WriteString(styles.Muted.Render("Email:    ") + user.Email + "\n")
	if user.Phone != "" {
		b.WriteString(styles.Muted.Render("Phone:    ") + user.Phone + "\n")
	}
	if user.BirthDate != nil {
		b.WriteString(styles.Muted.Render("Birthday: ") + user.BirthDate.Format("2006-01-02") + "\n")
	}
	if profile.HasAvatar(user) {
		b.WriteString(styles.Muted.Render("Avatar:   ") + user.AvatarURL + "\n")
	}
	b.WriteString(styles.Muted.Render("Member since: ") + user.CreatedAt.Format("January 2006"))
	return b.String()
}

// UsersTable renders accounts for the back office.
func UsersTable(page *api.UserPage, styles theme.Theme) string {
	if page == nil || len(page.Users) == 0 {
		return styles.Muted.Render("No accounts found.")
	}

	t := newTable(styles, "ID", "Username", "Email", "Role", "Active")
	for _, u := range page.Users {
		active := "yes"
		if !u.IsActive {
			active = "no"
		}
		t.Row(
			strconv.FormatUint(uint64(u.ID), 10),
			u.Username,
			u.Email,
			u.Role,
			active,
		)
	}

	out := t.Render()
	if page.Total > len(page.Users) {
		out += "\n" + styles.Muted.Render(fmt.Sprintf("Showing %d of %d accounts", len(page.Users), page.Total))
	}
	return out
}

// StatsView renders the back-office order statistics.
func StatsView(stats *api.OrderStats, styles theme.Theme) string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("Order statistics"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("Total orders:   %d\n", stats.TotalOrders))
	b.WriteString(fmt.Sprintf("Total revenue:  $%.2f\n", stats.TotalRevenue))
	b.WriteString(fmt.Sprintf("Today:          %d orders, $%.2f\n", stats.TodayOrders, stats.TodayRevenue))
	b.WriteString(fmt.Sprintf("In flight:      %d pending, %d preparing, %d ready\n",
		stats.PendingCount, stats.PreparingCount, stats.ReadyCount))
	b.WriteString(fmt.Sprintf("Customers:      %d", stats.TotalUsers))

	if len(stats.TopProducts) > 0 {
		b.WriteString("\n\n")
		b.WriteString(styles.Header.Render("Best sellers"))
		b.WriteString("\n")
		t := newTable(styles, "Item", "Sold", "Revenue")
		for _, p := range stats.TopProducts {
			t.Row(p.MenuName, strconv.Itoa(p.Quantity), fmt.Sprintf("$%.2f", p.Revenue))
		}
		b.WriteString(t.Render())
	}
	return b.String()
}
