// Package mainwindow provides the main application window: the card
// list on the left, the live page preview in the center, and the
// menus and dialogs that drive card, image, and export operations.
package mainwindow

import (
	"context"
	"fmt"
	"log/slog"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"pasport/internal/compositor"
	"pasport/internal/pdf"
	"pasport/internal/settings"
	"pasport/internal/slots"
	"pasport/internal/store"
	"pasport/ui/dialogs"
	"pasport/ui/editorview"
	"pasport/ui/gridview"
)

// MainWindow is the primary application window.
type MainWindow struct {
	fyne.Window
	app fyne.App
	log *slog.Logger

	cfg   *settings.Settings
	store *store.Store

	cards   []*store.Card
	current *store.Card
	images  map[string][]byte

	list      *widget.List
	grid      *gridview.GridView
	statusBar *widget.Label
}

// New creates the main window over an already opened store.
func New(fyneApp fyne.App, log *slog.Logger, cfg *settings.Settings, st *store.Store) *MainWindow {
	win := fyneApp.NewWindow("Pasport")

	mw := &MainWindow{
		Window: win,
		app:    fyneApp,
		log:    log,
		cfg:    cfg,
		store:  st,
	}

	mw.setupUI()
	mw.setupMenus()
	mw.Resize(fyne.NewSize(1100, 780))

	mw.refreshCards()
	return mw
}

// setupUI creates the main layout.
func (mw *MainWindow) setupUI() {
	mw.grid = gridview.New()
	mw.grid.OnSelectSlot(mw.onSelectSlot)
	mw.grid.OnClearSlot(mw.onClearSlot)

	mw.list = widget.NewList(
		func() int { return len(mw.cards) },
		func() fyne.CanvasObject { return widget.NewLabel("karta") },
		func(i widget.ListItemID, obj fyne.CanvasObject) {
			obj.(*widget.Label).SetText(mw.cards[i].Name)
		},
	)
	mw.list.OnSelected = mw.onCardSelected

	cardButtons := container.NewHBox(
		widget.NewButton("Nová", mw.onAddCard),
		widget.NewButton("Přejmenovat", mw.onRenameCard),
		widget.NewButton("Smazat", mw.onDeleteCard),
	)
	sidebar := container.NewBorder(
		widget.NewLabel("Karty"), cardButtons, nil, nil,
		mw.list,
	)

	mw.statusBar = widget.NewLabel("Připraveno")

	split := container.NewHSplit(sidebar, mw.grid)
	split.SetOffset(0.22)

	mw.SetContent(container.NewBorder(
		nil,
		container.NewPadded(mw.statusBar),
		nil, nil,
		split,
	))
}

// setupMenus builds the application menu bar.
func (mw *MainWindow) setupMenus() {
	fileMenu := fyne.NewMenu("Soubor",
		fyne.NewMenuItem("Otevřít databázi…", mw.onOpenDatabase),
		fyne.NewMenuItem("Uložit kopii databáze…", mw.onSaveCopy),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Nastavení…", mw.onSettings),
	)
	cardMenu := fyne.NewMenu("Karta",
		fyne.NewMenuItem("Nová karta…", mw.onAddCard),
		fyne.NewMenuItem("Přejmenovat…", mw.onRenameCard),
		fyne.NewMenuItem("Smazat…", mw.onDeleteCard),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Zobrazit PDF", mw.onShowPDF),
		fyne.NewMenuItem("Exportovat PDF…", mw.onExportPDF),
		fyne.NewMenuItem("Tisk", mw.onPrint),
	)
	mw.SetMainMenu(fyne.NewMainMenu(fileMenu, cardMenu))
}

func (mw *MainWindow) setStatus(format string, args ...any) {
	mw.statusBar.SetText(fmt.Sprintf(format, args...))
}

func (mw *MainWindow) showError(err error) {
	mw.log.Error("operation failed", "error", err)
	dialog.ShowError(err, mw.Window)
}

// refreshCards reloads the card list, keeping the current selection
// where possible.
func (mw *MainWindow) refreshCards() {
	cards, err := mw.store.ListCards(context.Background())
	if err != nil {
		mw.showError(fmt.Errorf("načtení karet: %w", err))
		return
	}
	mw.cards = cards
	mw.list.Refresh()

	if mw.current != nil {
		for i, c := range cards {
			if c.ID == mw.current.ID {
				mw.list.Select(i)
				return
			}
		}
	}
	mw.current = nil
	mw.images = nil
	mw.grid.Clear()
}

func (mw *MainWindow) onCardSelected(i widget.ListItemID) {
	if i < 0 || i >= len(mw.cards) {
		return
	}
	mw.showCard(mw.cards[i])
}

// showCard loads a card's images and updates the preview.
func (mw *MainWindow) showCard(c *store.Card) {
	images, err := mw.store.ImagesForCard(context.Background(), c.ID)
	if err != nil {
		mw.showError(fmt.Errorf("načtení obrázků: %w", err))
		return
	}
	mw.current = c
	mw.images = images
	mw.grid.SetCard(c.Name, images)
	mw.setStatus("Karta %q, obrázků: %d z %d", c.Name, len(images), slots.Count)
}

func (mw *MainWindow) onAddCard() {
	entry := widget.NewEntry()
	items := []*widget.FormItem{widget.NewFormItem("Název", entry)}
	dialog.ShowForm("Nová karta", "Vytvořit", "Zrušit", items, func(ok bool) {
		if !ok {
			return
		}
		card, err := mw.store.CreateCard(context.Background(), entry.Text)
		if err != nil {
			mw.showError(fmt.Errorf("vytvoření karty: %w", err))
			return
		}
		mw.log.Info("card created", "id", card.ID, "name", card.Name)
		mw.current = card
		mw.refreshCards()
	}, mw.Window)
}

func (mw *MainWindow) onRenameCard() {
	if mw.current == nil {
		return
	}
	entry := widget.NewEntry()
	entry.SetText(mw.current.Name)
	items := []*widget.FormItem{widget.NewFormItem("Název", entry)}
	dialog.ShowForm("Přejmenovat kartu", "Uložit", "Zrušit", items, func(ok bool) {
		if !ok {
			return
		}
		if err := mw.renameCurrent(entry.Text); err != nil {
			mw.showError(err)
		}
	}, mw.Window)
}

// renameCurrent renames the selected card and repaints the preview
// from a freshly loaded copy, so the title never shows the old name.
func (mw *MainWindow) renameCurrent(name string) error {
	if mw.current == nil {
		return nil
	}
	ctx := context.Background()
	if err := mw.store.RenameCard(ctx, mw.current.ID, name); err != nil {
		return fmt.Errorf("přejmenování karty: %w", err)
	}
	card, err := mw.store.GetCard(ctx, mw.current.ID)
	if err != nil {
		return fmt.Errorf("načtení karty: %w", err)
	}
	mw.current = card
	mw.refreshCards()
	mw.showCard(card)
	return nil
}

func (mw *MainWindow) onDeleteCard() {
	if mw.current == nil {
		return
	}
	card := mw.current
	dialog.ShowConfirm("Smazat kartu",
		fmt.Sprintf("Smazat kartu %q včetně všech obrázků?", card.Name),
		func(ok bool) {
			if !ok {
				return
			}
			if err := mw.store.DeleteCard(context.Background(), card.ID); err != nil {
				mw.showError(fmt.Errorf("smazání karty: %w", err))
				return
			}
			mw.log.Info("card deleted", "id", card.ID, "name", card.Name)
			mw.current = nil
			mw.list.UnselectAll()
			mw.refreshCards()
		}, mw.Window)
}

// onSelectSlot opens the picker and then the edit dialog for one slot.
func (mw *MainWindow) onSelectSlot(key string) {
	if mw.current == nil {
		return
	}
	card := mw.current
	dialogs.ShowImageOpen(mw.Window, func(uri fyne.URIReadCloser) {
		defer uri.Close()
		src, err := compositor.Decode(uri)
		if err != nil {
			mw.showError(fmt.Errorf("načtení obrázku: %w", err))
			return
		}
		w, h := mw.cfg.OutputSize()
		spec := compositor.OutputSpec{Width: w, Height: h}
		err = editorview.Show(mw.Window, slots.Label(key), src, spec, func(png []byte) error {
			if err := mw.store.SetImage(context.Background(), card.ID, key, png); err != nil {
				return fmt.Errorf("uložení do slotu %s: %w", key, err)
			}
			mw.log.Info("slot image saved", "card", card.Name, "slot", key, "bytes", len(png))
			mw.showCard(card)
			return nil
		})
		if err != nil {
			mw.showError(err)
		}
	})
}

// onClearSlot removes the image from one slot after confirmation.
func (mw *MainWindow) onClearSlot(key string) {
	if mw.current == nil {
		return
	}
	if _, ok := mw.images[key]; !ok {
		return
	}
	card := mw.current
	dialog.ShowConfirm("Odstranit obrázek",
		fmt.Sprintf("Odstranit obrázek ze slotu %q?", slots.Label(key)),
		func(ok bool) {
			if !ok {
				return
			}
			if err := mw.store.SetImage(context.Background(), card.ID, key, nil); err != nil {
				mw.showError(fmt.Errorf("odstranění obrázku: %w", err))
				return
			}
			mw.showCard(card)
		}, mw.Window)
}

// generatePDF renders the current card to the given path.
func (mw *MainWindow) generatePDF(path string) error {
	if mw.current == nil {
		return fmt.Errorf("není vybraná žádná karta")
	}
	if err := pdf.Generate(path, mw.current.Name, mw.images); err != nil {
		return fmt.Errorf("generování PDF: %w", err)
	}
	return nil
}

func (mw *MainWindow) onShowPDF() {
	if mw.current == nil {
		return
	}
	path := pdf.TempPath(mw.current.Name)
	if err := mw.generatePDF(path); err != nil {
		mw.showError(err)
		return
	}
	if err := pdf.OpenViewer(path); err != nil {
		mw.showError(fmt.Errorf("otevření PDF: %w", err))
		return
	}
	mw.setStatus("PDF otevřeno: %s", path)
}

func (mw *MainWindow) onExportPDF() {
	if mw.current == nil {
		return
	}
	dialog.ShowFileSave(func(uri fyne.URIWriteCloser, err error) {
		if err != nil || uri == nil {
			return
		}
		path := uri.URI().Path()
		uri.Close()
		if err := mw.generatePDF(path); err != nil {
			mw.showError(err)
			return
		}
		mw.setStatus("PDF uloženo: %s", path)
	}, mw.Window)
}

func (mw *MainWindow) onPrint() {
	if mw.current == nil {
		return
	}
	path := pdf.TempPath(mw.current.Name)
	if err := mw.generatePDF(path); err != nil {
		mw.showError(err)
		return
	}
	if err := pdf.Print(path); err != nil {
		mw.showError(fmt.Errorf("tisk: %w", err))
		return
	}
	mw.setStatus("Odesláno na tiskárnu: %s", mw.current.Name)
}

// switchDatabase closes the current store and opens the one at path.
func (mw *MainWindow) switchDatabase(path string) {
	st, err := store.Open(path)
	if err != nil {
		mw.showError(fmt.Errorf("otevření databáze: %w", err))
		return
	}
	if err := mw.store.Close(); err != nil {
		mw.log.Warn("closing previous database", "error", err)
	}
	mw.store = st
	mw.cfg.DBPath = path
	if err := mw.cfg.Save(); err != nil {
		mw.log.Warn("saving settings", "error", err)
	}
	mw.current = nil
	mw.list.UnselectAll()
	mw.refreshCards()
	mw.setStatus("Databáze: %s", path)
	mw.log.Info("database switched", "path", path)
}

func (mw *MainWindow) onOpenDatabase() {
	dialog.ShowFileOpen(func(uri fyne.URIReadCloser, err error) {
		if err != nil || uri == nil {
			return
		}
		path := uri.URI().Path()
		uri.Close()
		mw.switchDatabase(path)
	}, mw.Window)
}

func (mw *MainWindow) onSaveCopy() {
	dialog.ShowFileSave(func(uri fyne.URIWriteCloser, err error) {
		if err != nil || uri == nil {
			return
		}
		path := uri.URI().Path()
		uri.Close()
		if err := mw.store.SaveCopy(context.Background(), path); err != nil {
			mw.showError(fmt.Errorf("uložení kopie: %w", err))
			return
		}
		mw.setStatus("Kopie databáze uložena: %s", path)
	}, mw.Window)
}

func (mw *MainWindow) onSettings() {
	dialogs.ShowSettings(mw.Window, mw.cfg, func(edited settings.Settings) {
		dbChanged := edited.DBPath != mw.cfg.DBPath
		*mw.cfg = edited
		if err := mw.cfg.Save(); err != nil {
			mw.showError(fmt.Errorf("uložení nastavení: %w", err))
			return
		}
		if dbChanged {
			mw.switchDatabase(mw.cfg.DBPath)
			return
		}
		mw.setStatus("Nastavení uloženo")
	})
}
