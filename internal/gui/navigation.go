package gui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
)

const hotkeyHelp = `[Project Page: https://codeberg.org/snonux/flashy](https://codeberg.org/snonux/flashy)

---

## Cards
**←** or **x** I don't know this word  
**→** or **v** I know this word  

## Progress
**r** Reset progress and start over  

## Help
**h** or **?** Show hotkeys  
**c** Close dialog  
**q** Quit application  

---

The translation is revealed automatically after a short delay.

Press **c** to close this dialog`

// setupKeyboardShortcuts sets up keyboard shortcuts for the application
func (a *Application) setupKeyboardShortcuts() {
	a.window.Canvas().SetOnTypedRune(func(r rune) {
		// '?' has no key name, letters are handled as typed keys below
		if r == '?' {
			a.onShowHotkeys()
		}
	})

	a.window.Canvas().SetOnTypedKey(func(ev *fyne.KeyEvent) {
		a.handleShortcutKey(ev.Name)
	})
}

// handleShortcutKey handles the actual shortcut action
func (a *Application) handleShortcutKey(key fyne.KeyName) {
	switch key {
	case fyne.KeyLeft, fyne.KeyX: // Wrong
		if a.wrongButton.Disabled() {
			return
		}
		a.onWrong()

	case fyne.KeyRight, fyne.KeyV: // Correct
		if a.correctButton.Disabled() {
			return
		}
		a.onCorrect()

	case fyne.KeyR: // Reset
		a.onReset()

	case fyne.KeyH: // Show hotkeys
		a.onShowHotkeys()

	case fyne.KeyQ: // Quit application
		a.window.Close()
	}
}

// onShowHotkeys displays a dialog with all available keyboard shortcuts
func (a *Application) onShowHotkeys() {
	if a.hotkeysOpen {
		return
	}

	content := widget.NewRichTextFromMarkdown(hotkeyHelp)
	content.Wrapping = fyne.TextWrapWord

	scroll := container.NewScroll(container.NewPadded(content))
	scroll.SetMinSize(fyne.NewSize(420, 360))

	d := dialog.NewCustom("Keyboard Shortcuts", "Close", scroll, a.window)

	// 'c' closes the dialog, every other key is ignored while it is open
	a.window.Canvas().SetOnTypedRune(func(r rune) {
		if r == 'c' || r == 'C' {
			d.Hide()
		}
	})
	a.window.Canvas().SetOnTypedKey(func(ev *fyne.KeyEvent) {
		if ev.Name == fyne.KeyEscape {
			d.Hide()
		}
	})

	d.SetOnClosed(func() {
		a.hotkeysOpen = false
		a.setupKeyboardShortcuts()
	})

	a.hotkeysOpen = true
	d.Show()
}
