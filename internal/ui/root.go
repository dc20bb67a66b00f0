package ui

import (
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/magnetdrop/internal/clipboard"
	"github.com/ytget/magnetdrop/internal/config"
	"github.com/ytget/magnetdrop/internal/host"
	"github.com/ytget/magnetdrop/internal/model"
	"github.com/ytget/magnetdrop/internal/pipeline"
	"github.com/ytget/magnetdrop/internal/platform"
)

// RootUI represents the main UI structure
type RootUI struct {
	window       fyne.Window
	app          fyne.App
	presenter    *pipeline.Presenter
	settings     *config.Settings
	localization *Localization
	logger       *slog.Logger

	searchEntry      *widget.Entry
	searchTypeSelect *widget.Select
	fullLinkCheck    *widget.Check
	copyBtn          *widget.Button
	resultList       *widget.List
	placeholderLabel *widget.Label
	countLabel       *widget.Label

	// Notification panel
	notificationContainer *fyne.Container
	notificationLabel     *widget.Label
	notificationSeq       atomic.Uint64

	onMaxParallel func(int)

	// view is only read and written on the UI goroutine
	view           model.View
	suppressSearch bool
}

// NewRootUI creates and initializes the main UI. Call SetPresenter before
// showing the window.
func NewRootUI(window fyne.Window, app fyne.App, settings *config.Settings, logger *slog.Logger) *RootUI {
	if logger == nil {
		logger = slog.Default()
	}

	// Initialize localization
	localization := NewLocalization()
	localization.SetLanguage(settings.GetLanguage())

	ui := &RootUI{
		window:       window,
		app:          app,
		settings:     settings,
		localization: localization,
		logger:       logger,
		view:         model.View{State: model.ViewStateNoData},
	}

	// Set window title
	window.SetTitle(localization.GetText(KeyAppTitle))

	ui.setupUI()
	window.SetOnDropped(ui.handleDrop)
	return ui
}

// SetPresenter connects the UI to the presentation pipeline
func (ui *RootUI) SetPresenter(presenter *pipeline.Presenter) {
	ui.presenter = presenter
}

// SetMaxParallelHandler registers fn to receive the parallel conversion
// limit after settings are saved
func (ui *RootUI) SetMaxParallelHandler(fn func(int)) {
	ui.onMaxParallel = fn
}

// Clipboard returns a clipboard writer backed by the application clipboard
func (ui *RootUI) Clipboard() clipboard.Writer {
	return clipboard.App{App: ui.app}
}

// OnView shows view. It may be called from any goroutine.
func (ui *RootUI) OnView(view model.View) {
	fyne.Do(func() {
		ui.applyView(view)
	})
}

// OnBatchCompleted reports the outcome of the current drop. It may be called
// from any goroutine.
func (ui *RootUI) OnBatchCompleted(event model.BatchCompletedEvent) {
	if ui.presenter == nil || event.Batch != ui.presenter.Batch() {
		return
	}
	ui.logger.Info("drop processed", "batch", event.Batch, "converted", event.Converted, "failed", event.Failed)
	ui.showNotification(ui.localization.Format(KeyBatchDone, event.Converted, event.Failed), false)
}

// ReportIngestionError tells the user that results will not arrive
func (ui *RootUI) ReportIngestionError(err error) {
	ui.logger.Error("result ingestion unavailable", "error", err)
	ui.showNotification(ui.localization.GetText(KeyIngestionOff), false)
}

// setupUI creates and arranges all UI components
func (ui *RootUI) setupUI() {
	// Create menu
	ui.createMenu()

	// Search box; filters on every change
	ui.searchEntry = widget.NewEntry()
	ui.searchEntry.SetPlaceHolder(ui.localization.GetText(KeySearchPlaceholder))
	ui.searchEntry.OnChanged = ui.onSearchChanged

	searchTypes := make([]string, 0, len(host.SearchTypes()))
	for _, st := range ui.settings.GetSearchTypeOptions() {
		searchTypes = append(searchTypes, string(st))
	}
	ui.searchTypeSelect = widget.NewSelect(searchTypes, ui.onSearchTypeChanged)
	ui.searchTypeSelect.SetSelected(string(ui.settings.GetSearchType()))

	ui.fullLinkCheck = widget.NewCheck(ui.localization.GetText(KeyFullLink), ui.settings.SetFullLinkMode)
	ui.fullLinkCheck.SetChecked(ui.settings.GetFullLinkMode())

	ui.copyBtn = widget.NewButton(IconCopy+" "+ui.localization.GetText(KeyCopyLinks), ui.onCopyLinks)
	ui.copyBtn.Importance = widget.HighImportance
	ui.copyBtn.Disable()

	// Create settings button
	settingsBtn := widget.NewButton(IconSettings, ui.onShowSettings)
	settingsBtn.Importance = widget.LowImportance

	// Create logo
	left := container.NewHBox(settingsBtn)
	if logo, err := LoadLogoResource(); err == nil {
		logoImage := canvas.NewImageFromResource(logo)
		logoImage.SetMinSize(fyne.NewSize(32, 32))
		logoImage.FillMode = canvas.ImageFillContain
		left = container.NewHBox(logoImage, settingsBtn)
	}

	right := container.NewHBox(ui.searchTypeSelect, ui.fullLinkCheck, ui.copyBtn)
	topPanel := container.NewBorder(nil, nil, left, right, ui.searchEntry)

	// Create notification panel under the search row (hidden by default)
	ui.notificationLabel = widget.NewLabel("")
	ui.notificationLabel.Alignment = fyne.TextAlignLeading
	ui.notificationContainer = container.NewHBox(container.NewPadded(ui.notificationLabel))
	ui.notificationContainer.Hide()

	topCombined := container.NewVBox(topPanel, ui.notificationContainer)

	ui.resultList = widget.NewList(
		func() int {
			return len(ui.view.Rows)
		},
		ui.createResultItem,
		ui.updateResultItem,
	)

	ui.placeholderLabel = widget.NewLabel(ui.localization.GetText(KeyDropHint))
	ui.placeholderLabel.Alignment = fyne.TextAlignCenter
	ui.placeholderLabel.Wrapping = fyne.TextWrapWord

	ui.countLabel = widget.NewLabel("")
	ui.countLabel.Importance = widget.LowImportance

	content := container.NewBorder(
		topCombined,   // top
		ui.countLabel, // bottom
		nil,           // left
		nil,           // right
		container.NewStack(ui.resultList, container.NewCenter(ui.placeholderLabel)),
	)

	ui.window.SetContent(content)
	ui.applyView(ui.view)
}

// createMenu creates the application menu
func (ui *RootUI) createMenu() {
	settingsItem := fyne.NewMenuItem(ui.localization.GetText(KeySettings), ui.onShowSettings)

	languageMenu := fyne.NewMenu(ui.localization.GetText(KeyLanguage))
	for code, name := range ui.localization.GetAvailableLanguages() {
		langCode := code
		langItem := fyne.NewMenuItem(name, func() {
			ui.onLanguageChange(langCode)
		})
		langItem.Checked = ui.localization.GetCurrentLanguage() == code
		languageMenu.Items = append(languageMenu.Items, langItem)
	}

	ui.window.SetMainMenu(fyne.NewMainMenu(
		fyne.NewMenu(ui.localization.GetText(KeyFile), settingsItem),
		languageMenu,
	))
}

// onLanguageChange handles language change
func (ui *RootUI) onLanguageChange(langCode string) {
	ui.localization.SetLanguage(langCode)
	ui.settings.SetLanguage(langCode)
	ui.refreshUITexts()
	ui.createMenu()
}

// refreshUITexts updates all UI texts with current language
func (ui *RootUI) refreshUITexts() {
	ui.window.SetTitle(ui.localization.GetText(KeyAppTitle))
	ui.searchEntry.SetPlaceHolder(ui.localization.GetText(KeySearchPlaceholder))
	ui.fullLinkCheck.Text = ui.localization.GetText(KeyFullLink)
	ui.fullLinkCheck.Refresh()
	ui.copyBtn.SetText(IconCopy + " " + ui.localization.GetText(KeyCopyLinks))
	ui.applyView(ui.view)
}

// applyView replaces the result list. Must run on the UI goroutine and must
// not call into the presenter.
func (ui *RootUI) applyView(view model.View) {
	ui.view = view

	switch view.State {
	case model.ViewStateRows:
		ui.placeholderLabel.Hide()
	case model.ViewStateNoMatches:
		ui.placeholderLabel.SetText(ui.localization.Format(KeyNoMatches, view.Keyword))
		ui.placeholderLabel.Show()
	case model.ViewStateError:
		ui.placeholderLabel.SetText(IconError + " " + ui.localization.Format(KeyViewError, view.Err))
		ui.placeholderLabel.Show()
	default:
		ui.placeholderLabel.SetText(IconMagnet + " " + ui.localization.GetText(KeyDropHint))
		ui.placeholderLabel.Show()
	}

	if view.Len() == 0 {
		ui.copyBtn.Disable()
		ui.countLabel.SetText("")
	} else {
		ui.copyBtn.Enable()
		ui.countLabel.SetText(ui.localization.Format(KeyResultCount, view.Len()))
	}

	ui.resultList.UnselectAll()
	ui.resultList.Refresh()
}

// createResultItem creates a new result row widget
func (ui *RootUI) createResultItem() fyne.CanvasObject {
	row := NewResultRow(ui.localization)
	row.SetCallbacks(ui.onRevealFile, ui.onCopyLink)
	return row
}

// updateResultItem shows the row at id
func (ui *RootUI) updateResultItem(id widget.ListItemID, item fyne.CanvasObject) {
	if id < 0 || id >= len(ui.view.Rows) {
		return
	}
	if row, ok := item.(*ResultRow); ok {
		row.UpdateRow(ui.view.Rows[id])
	}
}

// handleDrop converts dropped files into a new batch
func (ui *RootUI) handleDrop(_ fyne.Position, uris []fyne.URI) {
	if ui.presenter == nil {
		return
	}

	paths := urisToPaths(uris)
	batch, err := ui.presenter.HandleDrop(paths, ui.fullLinkCheck.Checked)
	if errors.Is(err, pipeline.ErrNoPaths) {
		ui.logger.Debug("ignoring drop without local files", "uris", len(uris))
		return
	}

	if batch != "" {
		// The presenter reset its keyword; mirror that in the search box.
		ui.suppressSearch = true
		ui.searchEntry.SetText("")
		ui.suppressSearch = false
	}

	if err != nil {
		ui.showNotification(ui.localization.Format(KeyDropFailed, err), false)
		return
	}
	ui.showNotification(ui.localization.Format(KeyConverting, len(paths)), true)
}

// urisToPaths keeps local file URIs
func urisToPaths(uris []fyne.URI) []string {
	paths := make([]string, 0, len(uris))
	for _, u := range uris {
		if u == nil || u.Scheme() != FileURIScheme {
			continue
		}
		paths = append(paths, u.Path())
	}
	return paths
}

// onSearchChanged forwards the search box to the presenter
func (ui *RootUI) onSearchChanged(text string) {
	if ui.suppressSearch || ui.presenter == nil {
		return
	}
	ui.presenter.Filter(text)
}

// onSearchTypeChanged persists the search field and refreshes the view
func (ui *RootUI) onSearchTypeChanged(value string) {
	searchType, err := host.ParseSearchType(value)
	if err != nil {
		ui.logger.Warn("ignoring unknown search type", "value", value)
		return
	}
	ui.settings.SetSearchType(searchType)
	if ui.presenter != nil {
		ui.presenter.SetSearchType(searchType)
	}
}

// onCopyLinks copies the links of all visible rows
func (ui *RootUI) onCopyLinks() {
	if ui.presenter == nil {
		return
	}

	n, err := ui.presenter.Export()
	switch {
	case errors.Is(err, pipeline.ErrNothingToExport):
		ui.showNotification(ui.localization.GetText(KeyNothingToCopy), false)
	case err != nil:
		ui.showNotification(ui.localization.Format(KeyCopyFailed, err), false)
	default:
		ui.showNotification(ui.localization.Format(KeyCopied, n), false)
	}
}

// onCopyLink copies a single link
func (ui *RootUI) onCopyLink(link string) {
	if err := ui.Clipboard().WriteText(link); err != nil {
		ui.showNotification(ui.localization.Format(KeyCopyFailed, err), false)
		return
	}
	ui.showNotification(ui.localization.GetText(KeyLinkCopied), false)
}

// onRevealFile handles revealing a source torrent in the file manager
func (ui *RootUI) onRevealFile(path string) {
	if err := platform.OpenFileInManager(path); err != nil {
		ui.logger.Warn("cannot reveal file", "path", path, "error", err)
		ui.showNotification(ui.localization.GetText(KeyErrorOpeningFile)+": "+err.Error(), false)
	}
}

// onShowSettings shows the settings dialog
func (ui *RootUI) onShowSettings() {
	ShowSettingsDialog(ui.window, ui.settings, ui.localization, ui.onSettingsSaved)
}

// onSettingsSaved applies settings that take effect immediately
func (ui *RootUI) onSettingsSaved() {
	ui.localization.SetLanguage(ui.settings.GetLanguage())
	ui.fullLinkCheck.SetChecked(ui.settings.GetFullLinkMode())
	ui.searchTypeSelect.SetSelected(string(ui.settings.GetSearchType()))
	if ui.presenter != nil {
		ui.presenter.SetFenceStaleBatches(ui.settings.GetFenceStaleBatches())
	}
	if ui.onMaxParallel != nil {
		ui.onMaxParallel(ui.settings.GetMaxParallelConversions())
	}
	ui.refreshUITexts()
	ui.createMenu()
	ui.showNotification(ui.localization.GetText(KeySettingsSaved), false)
}

// showNotification displays a message in the notification panel under the
// search row. Unless sticky, it hides itself after NotificationAutoHide.
func (ui *RootUI) showNotification(message string, sticky bool) {
	seq := ui.notificationSeq.Add(1)
	fyne.Do(func() {
		ui.notificationLabel.SetText(message)
		ui.notificationContainer.Show()
		ui.notificationContainer.Refresh()
	})
	if sticky {
		return
	}

	go func() {
		time.Sleep(NotificationAutoHide)
		if ui.notificationSeq.Load() != seq {
			return
		}
		fyne.Do(func() {
			ui.notificationContainer.Hide()
		})
	}()
}
