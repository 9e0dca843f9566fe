// Package dialogs holds the application's property-sheet dialogs.
package dialogs

import (
	"fmt"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"

	"pasport/internal/settings"
)

// ShowSettings opens the settings sheet. onApply receives the edited
// copy after validation; the caller persists it and reacts to changes
// such as a moved database file.
func ShowSettings(parent fyne.Window, current *settings.Settings, onApply func(settings.Settings)) {
	edited := *current

	dbEntry := widget.NewEntry()
	dbEntry.SetText(edited.DBPath)

	browse := widget.NewButton("Procházet…", func() {
		dialog.ShowFileSave(func(uri fyne.URIWriteCloser, err error) {
			if err != nil || uri == nil {
				return
			}
			uri.Close()
			dbEntry.SetText(uri.URI().Path())
		}, parent)
	})

	aspectSelect := widget.NewSelect(settings.AspectChoices, nil)
	aspectSelect.SetSelected(edited.AspectRatio)

	widthEntry := widget.NewEntry()
	widthEntry.SetText(strconv.Itoa(edited.OutputWidthPx))

	form := widget.NewForm(
		widget.NewFormItem("Soubor databáze", container.NewBorder(nil, nil, nil, browse, dbEntry)),
		widget.NewFormItem("Poměr stran", aspectSelect),
		widget.NewFormItem("Šířka výstupu (px)", widthEntry),
	)

	dialog.ShowCustomConfirm("Nastavení", "Uložit", "Zrušit", form, func(ok bool) {
		if !ok {
			return
		}
		width, err := strconv.Atoi(strings.TrimSpace(widthEntry.Text))
		if err != nil || width < settings.MinOutputWidth || width > settings.MaxOutputWidth {
			dialog.ShowError(fmt.Errorf("šířka výstupu musí být %d až %d px",
				settings.MinOutputWidth, settings.MaxOutputWidth), parent)
			return
		}
		edited.DBPath = strings.TrimSpace(dbEntry.Text)
		edited.AspectRatio = aspectSelect.Selected
		edited.OutputWidthPx = width
		edited.Normalize()
		onApply(edited)
	}, parent)
}

// imageFilter matches the formats the decoder understands.
var imageFilter = storage.NewExtensionFileFilter(
	[]string{".png", ".jpg", ".jpeg", ".gif", ".bmp", ".tif", ".tiff", ".webp"})

// ShowImageOpen opens a file picker restricted to supported image
// formats and hands the chosen reader to the callback.
func ShowImageOpen(parent fyne.Window, fn func(fyne.URIReadCloser)) {
	fd := dialog.NewFileOpen(func(uri fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, parent)
			return
		}
		if uri == nil {
			return
		}
		fn(uri)
	}, parent)
	fd.SetFilter(imageFilter)
	fd.Show()
}
