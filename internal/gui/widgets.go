package gui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

var (
	frontColor = color.NRGBA{R: 0xf4, G: 0xf5, B: 0xf6, A: 0xff}
	backColor  = color.NRGBA{R: 0x26, G: 0xa6, B: 0x9a, A: 0xff}
	doneColor  = color.NRGBA{R: 0x8b, G: 0xc3, B: 0x4a, A: 0xff}
	inkColor   = color.NRGBA{R: 0x10, G: 0x1f, B: 0x38, A: 0xff}
	paperColor = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
)

// CardDisplay is a custom widget showing one side of a flashcard
type CardDisplay struct {
	widget.BaseWidget

	container  *fyne.Container
	background *canvas.Rectangle
	title      *canvas.Text
	word       *canvas.Text
	hint       *canvas.Text
}

// NewCardDisplay creates a new card widget showing a loading placeholder
func NewCardDisplay() *CardDisplay {
	d := &CardDisplay{}

	d.background = canvas.NewRectangle(frontColor)
	d.background.CornerRadius = 16
	d.background.SetMinSize(fyne.NewSize(480, 300))

	d.title = canvas.NewText("", inkColor)
	d.title.Alignment = fyne.TextAlignCenter
	d.title.TextStyle = fyne.TextStyle{Italic: true}
	d.title.TextSize = 20

	d.word = canvas.NewText("", inkColor)
	d.word.Alignment = fyne.TextAlignCenter
	d.word.TextStyle = fyne.TextStyle{Bold: true}
	d.word.TextSize = 44

	d.hint = canvas.NewText("", inkColor)
	d.hint.Alignment = fyne.TextAlignCenter
	d.hint.TextSize = 16

	d.container = container.NewStack(
		d.background,
		container.NewCenter(container.NewVBox(d.title, d.word, d.hint)),
	)

	d.ExtendBaseWidget(d)
	d.SetLoading()
	return d
}

// CreateRenderer implements fyne.Widget
func (d *CardDisplay) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(d.container)
}

// SetFront shows the source side of a card
func (d *CardDisplay) SetFront(title, word string) {
	d.show(frontColor, inkColor, title, word, "")
}

// SetBack shows the target side of a card
func (d *CardDisplay) SetBack(title, word string) {
	d.show(backColor, paperColor, title, word, "")
}

// SetExhausted shows the end-of-list message
func (d *CardDisplay) SetExhausted() {
	d.show(doneColor, inkColor, "Congratulations!", "All words learned.", "Press r to start over.")
}

// SetLoading shows a placeholder until the first card is drawn
func (d *CardDisplay) SetLoading() {
	d.show(frontColor, inkColor, "", "Loading...", "")
}

func (d *CardDisplay) show(bg, fg color.Color, title, word, hint string) {
	d.background.FillColor = bg
	d.title.Text = title
	d.word.Text = word
	d.hint.Text = hint

	for _, text := range []*canvas.Text{d.title, d.word, d.hint} {
		text.Color = fg
	}
	if hint == "" {
		d.hint.Hide()
	} else {
		d.hint.Show()
	}

	d.Refresh()
}

// Refresh redraws the card background and texts
func (d *CardDisplay) Refresh() {
	d.background.Refresh()
	d.title.Refresh()
	d.word.Refresh()
	d.hint.Refresh()
	d.BaseWidget.Refresh()
}
