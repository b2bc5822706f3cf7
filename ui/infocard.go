package ui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
	"github.com/rivo/tview"
)

var cardBG = tcell.PaletteColor(236)

// InfoCard is a rounded card listing label/value pairs, shown over the
// dashboard with the connection details.
type InfoCard struct {
	*tview.Box
	title string
	rows  [][2]string
}

// NewInfoCard creates an empty card with the given title.
func NewInfoCard(title string) *InfoCard {
	return &InfoCard{
		Box:   tview.NewBox(),
		title: title,
	}
}

// SetRows replaces the label/value pairs.
func (c *InfoCard) SetRows(rows [][2]string) {
	c.rows = rows
}

// PreferredSize is the smallest size showing every row unclipped.
func (c *InfoCard) PreferredSize() (width, height int) {
	labelW, valueW := c.columns()
	width = labelW + valueW + 6
	if tw := runewidth.StringWidth(c.title) + 7; tw > width {
		width = tw
	}
	return width, len(c.rows) + 6
}

func (c *InfoCard) columns() (labelW, valueW int) {
	for _, r := range c.rows {
		if w := runewidth.StringWidth(r[0]); w > labelW {
			labelW = w
		}
		if w := runewidth.StringWidth(r[1]); w > valueW {
			valueW = w
		}
	}
	return labelW, valueW
}

// Draw renders the card with rounded borders.
func (c *InfoCard) Draw(screen tcell.Screen) {
	c.Box.DrawForSubclass(screen, c)

	x, y, width, height := c.GetInnerRect()
	if width < 10 || height < 5 {
		return
	}

	borderStyle := tcell.StyleDefault.Foreground(DashboardColors.BorderFocus).Background(cardBG)
	bgStyle := tcell.StyleDefault.Background(cardBG)

	for row := y; row < y+height; row++ {
		for col := x; col < x+width; col++ {
			screen.SetContent(col, row, ' ', nil, bgStyle)
		}
	}

	// ╭───╮ / │ │ / ╰───╯
	hline := func(row int, left, right rune) {
		screen.SetContent(x, row, left, nil, borderStyle)
		for col := x + 1; col < x+width-1; col++ {
			screen.SetContent(col, row, '─', nil, borderStyle)
		}
		screen.SetContent(x+width-1, row, right, nil, borderStyle)
	}
	hline(y, '╭', '╮')
	for row := y + 1; row < y+height-1; row++ {
		screen.SetContent(x, row, '│', nil, borderStyle)
		screen.SetContent(x+width-1, row, '│', nil, borderStyle)
	}
	hline(y+height-1, '╰', '╯')

	titleStyle := tcell.StyleDefault.Foreground(DashboardColors.Title).Background(cardBG).Bold(true)
	accentStyle := tcell.StyleDefault.Foreground(DashboardColors.BorderFocus).Background(cardBG)
	full := "⬡  " + c.title
	titleX := x + (width-runewidth.StringWidth(full))/2
	screen.SetContent(titleX, y+1, '⬡', nil, accentStyle)
	c.print(screen, c.title, titleX+3, y+1, x+width-1, titleStyle)
	hline(y+2, '├', '┤')

	labelW, _ := c.columns()
	labelStyle := tcell.StyleDefault.Foreground(DashboardColors.Hint).Background(cardBG)
	valueStyle := tcell.StyleDefault.Foreground(DashboardColors.Label).Background(cardBG)
	for i, r := range c.rows {
		row := y + 3 + i
		if row >= y+height-1 {
			break
		}
		c.print(screen, r[0], x+2, row, x+width-2, labelStyle)
		c.print(screen, r[1], x+4+labelW, row, x+width-2, valueStyle)
	}
}

func (c *InfoCard) print(screen tcell.Screen, s string, col, row, limit int, style tcell.Style) {
	for _, ch := range s {
		w := runewidth.RuneWidth(ch)
		if col+w > limit {
			return
		}
		screen.SetContent(col, row, ch, nil, style)
		col += w
	}
}

// Centered wraps p in spacers so it is shown in the middle of the screen
// at the given size.
func Centered(p tview.Primitive, width, height int) tview.Primitive {
	row := tview.NewFlex().SetDirection(tview.FlexColumn)
	row.AddItem(nil, 0, 1, false)
	row.AddItem(p, width, 0, true)
	row.AddItem(nil, 0, 1, false)

	col := tview.NewFlex().SetDirection(tview.FlexRow)
	col.AddItem(nil, 0, 1, false)
	col.AddItem(row, height, 0, true)
	col.AddItem(nil, 0, 1, false)
	return col
}
