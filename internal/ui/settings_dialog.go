package ui

import (
	"sort"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/magnetdrop/internal/config"
	"github.com/ytget/magnetdrop/internal/host"
)

// SettingsDialog represents the settings configuration dialog
type SettingsDialog struct {
	settings     *config.Settings
	localization *Localization
	window       fyne.Window
	dialog       *dialog.ConfirmDialog
	onSaved      func()

	// UI components
	fullLinkCheck    *widget.Check
	fenceCheck       *widget.Check
	searchTypeSelect *widget.Select
	maxParallelEntry *widget.Entry
	languageSelect   *widget.Select

	languageCodes map[string]string // display name -> code
}

// ShowSettingsDialog opens the settings dialog; onSaved runs after a save
func ShowSettingsDialog(window fyne.Window, settings *config.Settings, localization *Localization, onSaved func()) {
	NewSettingsDialog(settings, localization, window, onSaved).Show()
}

// NewSettingsDialog creates a new settings dialog
func NewSettingsDialog(settings *config.Settings, localization *Localization, window fyne.Window, onSaved func()) *SettingsDialog {
	sd := &SettingsDialog{
		settings:     settings,
		localization: localization,
		window:       window,
		onSaved:      onSaved,
	}

	sd.createUI()
	return sd
}

// Show displays the settings dialog
func (sd *SettingsDialog) Show() {
	sd.loadCurrentSettings()
	sd.dialog.Show()
}

// createUI creates the settings dialog UI
func (sd *SettingsDialog) createUI() {
	sd.fullLinkCheck = widget.NewCheck(sd.localization.GetText(KeyFullLink), nil)
	sd.fenceCheck = widget.NewCheck(sd.localization.GetText(KeyFenceStale), nil)

	searchOptions := []string{}
	for _, st := range sd.settings.GetSearchTypeOptions() {
		searchOptions = append(searchOptions, string(st))
	}
	sd.searchTypeSelect = widget.NewSelect(searchOptions, nil)

	sd.maxParallelEntry = widget.NewEntry()
	sd.maxParallelEntry.SetPlaceHolder(strconv.Itoa(host.MinMaxParallel) + "-" + strconv.Itoa(host.MaxMaxParallel))

	// Language selection shows display names
	sd.languageCodes = make(map[string]string)
	languageOptions := []string{}
	for code, name := range sd.settings.GetLanguageOptions() {
		sd.languageCodes[name] = code
		languageOptions = append(languageOptions, name)
	}
	sort.Strings(languageOptions)
	sd.languageSelect = widget.NewSelect(languageOptions, nil)

	form := container.NewVBox(
		sd.fullLinkCheck,
		sd.fenceCheck,

		widget.NewLabel(sd.localization.GetText(KeySearchType)+":"),
		sd.searchTypeSelect,

		widget.NewLabel(sd.localization.GetText(KeyMaxParallel)+":"),
		sd.maxParallelEntry,

		widget.NewSeparator(),

		widget.NewLabel(sd.localization.GetText(KeyLanguage)+":"),
		sd.languageSelect,
	)

	sd.dialog = dialog.NewCustomConfirm(
		sd.localization.GetText(KeySettings),
		sd.localization.GetText(KeySave),
		sd.localization.GetText(KeyCancel),
		form,
		sd.onSave,
		sd.window,
	)

	sd.dialog.Resize(fyne.NewSize(SettingsDialogWidth, SettingsDialogHeight))
}

// loadCurrentSettings loads current settings into the UI
func (sd *SettingsDialog) loadCurrentSettings() {
	sd.fullLinkCheck.SetChecked(sd.settings.GetFullLinkMode())
	sd.fenceCheck.SetChecked(sd.settings.GetFenceStaleBatches())
	sd.searchTypeSelect.SetSelected(string(sd.settings.GetSearchType()))
	sd.maxParallelEntry.SetText(strconv.Itoa(sd.settings.GetMaxParallelConversions()))
	sd.languageSelect.SetSelected(sd.settings.GetLanguageOptions()[sd.settings.GetLanguage()])
}

// onSave handles saving the settings
func (sd *SettingsDialog) onSave(confirmed bool) {
	if !confirmed {
		return
	}
	sd.save()
	if sd.onSaved != nil {
		sd.onSaved()
	}
}

// save writes the dialog values to settings
func (sd *SettingsDialog) save() {
	sd.settings.SetFullLinkMode(sd.fullLinkCheck.Checked)
	sd.settings.SetFenceStaleBatches(sd.fenceCheck.Checked)

	if sd.searchTypeSelect.Selected != "" {
		sd.settings.SetSearchType(host.SearchType(sd.searchTypeSelect.Selected))
	}

	if maxParallel, err := strconv.Atoi(sd.maxParallelEntry.Text); err == nil {
		sd.settings.SetMaxParallelConversions(maxParallel)
	}

	if code, ok := sd.languageCodes[sd.languageSelect.Selected]; ok {
		sd.settings.SetLanguage(code)
	}
}
