package ui

import "fmt"

// Localization manages UI text translations
type Localization struct {
	currentLanguage string
	texts           map[string]map[string]string
}

// Text keys for localization
const (
	KeyAppTitle          = "app_title"
	KeySettings          = "settings"
	KeyFile              = "file"
	KeyLanguage          = "language"
	KeySave              = "save"
	KeyCancel            = "cancel"
	KeySearchPlaceholder = "search_placeholder"
	KeySearchType        = "search_type"
	KeyFullLink          = "full_link"
	KeyCopyLinks         = "copy_links"
	KeyCopyLink          = "copy_link"
	KeyReveal            = "reveal"
	KeyDropHint          = "drop_hint"
	KeyNoMatches         = "no_matches"
	KeyViewError         = "view_error"
	KeyCopied            = "copied"
	KeyCopyFailed        = "copy_failed"
	KeyNothingToCopy     = "nothing_to_copy"
	KeyLinkCopied        = "link_copied"
	KeyErrorOpeningFile  = "error_opening_file"
	KeyDropFailed        = "drop_failed"
	KeyConverting        = "converting"
	KeyIngestionOff      = "ingestion_off"
	KeyMaxParallel       = "max_parallel"
	KeyFenceStale        = "fence_stale"
	KeySettingsSaved     = "settings_saved"
	KeyResultCount       = "result_count"
	KeyBatchDone         = "batch_done"
)

// NewLocalization creates a new localization manager
func NewLocalization() *Localization {
	l := &Localization{
		currentLanguage: "en",
		texts:           make(map[string]map[string]string),
	}

	l.initializeTexts()
	return l
}

// SetLanguage sets the current language
func (l *Localization) SetLanguage(lang string) {
	if lang == "system" {
		// Use system locale - simplified to English for now
		lang = "en"
	}

	if _, exists := l.texts[lang]; exists {
		l.currentLanguage = lang
	}
}

// GetText returns localized text for the given key
func (l *Localization) GetText(key string) string {
	if texts, exists := l.texts[l.currentLanguage]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Fallback to English
	if texts, exists := l.texts["en"]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Final fallback - return key itself
	return key
}

// Format returns localized text for key with args substituted
func (l *Localization) Format(key string, args ...any) string {
	return fmt.Sprintf(l.GetText(key), args...)
}

// GetCurrentLanguage returns the current language code
func (l *Localization) GetCurrentLanguage() string {
	return l.currentLanguage
}

// GetAvailableLanguages returns map of available languages with their display names
func (l *Localization) GetAvailableLanguages() map[string]string {
	return map[string]string{
		"en": "English",
		"ru": "Русский",
		"pt": "Português",
		"zh": "中文",
	}
}

// initializeTexts initializes all text translations
func (l *Localization) initializeTexts() {
	// English texts
	l.texts["en"] = map[string]string{
		KeyAppTitle:          "Magnet Drop",
		KeySettings:          "Settings",
		KeyFile:              "File",
		KeyLanguage:          "Language",
		KeySave:              "Save",
		KeyCancel:            "Cancel",
		KeySearchPlaceholder: "Filter results",
		KeySearchType:        "Search by",
		KeyFullLink:          "Full link",
		KeyCopyLinks:         "Copy links",
		KeyCopyLink:          "link",
		KeyReveal:            "show",
		KeyDropHint:          "Drop .torrent files or folders here",
		KeyNoMatches:         "No results match %q",
		KeyViewError:         "Cannot show results: %v",
		KeyCopied:            "copied %d links",
		KeyCopyFailed:        "copy failed: %v",
		KeyNothingToCopy:     "Nothing to copy",
		KeyLinkCopied:        "Link copied to clipboard",
		KeyErrorOpeningFile:  "Error opening file",
		KeyDropFailed:        "Drop failed: %v",
		KeyConverting:        "Converting %d dropped items...",
		KeyIngestionOff:      "Results cannot be received; restart the application",
		KeyMaxParallel:       "Parallel conversions",
		KeyFenceStale:        "Ignore results of earlier drops",
		KeySettingsSaved:     "Settings saved",
		KeyResultCount:       "%d results",
		KeyBatchDone:         "%d converted, %d failed",
	}

	// Russian texts
	l.texts["ru"] = map[string]string{
		KeyAppTitle:          "Magnet Drop",
		KeySettings:          "Настройки",
		KeyFile:              "Файл",
		KeyLanguage:          "Язык",
		KeySave:              "Сохранить",
		KeyCancel:            "Отмена",
		KeySearchPlaceholder: "Фильтр результатов",
		KeySearchType:        "Искать по",
		KeyFullLink:          "Полная ссылка",
		KeyCopyLinks:         "Копировать ссылки",
		KeyCopyLink:          "ссылка",
		KeyReveal:            "показать",
		KeyDropHint:          "Перетащите сюда .torrent файлы или папки",
		KeyNoMatches:         "Нет результатов для %q",
		KeyViewError:         "Не удалось показать результаты: %v",
		KeyCopied:            "скопировано ссылок: %d",
		KeyCopyFailed:        "ошибка копирования: %v",
		KeyNothingToCopy:     "Нечего копировать",
		KeyLinkCopied:        "Ссылка скопирована",
		KeyErrorOpeningFile:  "Ошибка открытия файла",
		KeyDropFailed:        "Ошибка обработки: %v",
		KeyConverting:        "Обработка элементов: %d...",
		KeyIngestionOff:      "Результаты не поступают; перезапустите приложение",
		KeyMaxParallel:       "Параллельная обработка",
		KeyFenceStale:        "Игнорировать результаты прошлых перетаскиваний",
		KeySettingsSaved:     "Настройки сохранены",
		KeyResultCount:       "Результатов: %d",
		KeyBatchDone:         "Готово: %d, ошибок: %d",
	}

	// Portuguese texts
	l.texts["pt"] = map[string]string{
		KeyAppTitle:          "Magnet Drop",
		KeySettings:          "Configurações",
		KeyFile:              "Arquivo",
		KeyLanguage:          "Idioma",
		KeySave:              "Salvar",
		KeyCancel:            "Cancelar",
		KeySearchPlaceholder: "Filtrar resultados",
		KeySearchType:        "Buscar por",
		KeyFullLink:          "Link completo",
		KeyCopyLinks:         "Copiar links",
		KeyCopyLink:          "link",
		KeyReveal:            "mostrar",
		KeyDropHint:          "Solte arquivos .torrent ou pastas aqui",
		KeyNoMatches:         "Nenhum resultado para %q",
		KeyViewError:         "Não foi possível mostrar os resultados: %v",
		KeyCopied:            "%d links copiados",
		KeyCopyFailed:        "falha ao copiar: %v",
		KeyNothingToCopy:     "Nada para copiar",
		KeyLinkCopied:        "Link copiado",
		KeyErrorOpeningFile:  "Erro ao abrir arquivo",
		KeyDropFailed:        "Falha ao processar: %v",
		KeyConverting:        "Convertendo %d itens...",
		KeyIngestionOff:      "Os resultados não podem ser recebidos; reinicie o aplicativo",
		KeyMaxParallel:       "Conversões paralelas",
		KeyFenceStale:        "Ignorar resultados de arrastos anteriores",
		KeySettingsSaved:     "Configurações salvas",
		KeyResultCount:       "%d resultados",
		KeyBatchDone:         "%d convertidos, %d com erro",
	}

	// Chinese texts
	l.texts["zh"] = map[string]string{
		KeyAppTitle:          "Magnet Drop",
		KeySettings:          "设置",
		KeyFile:              "文件",
		KeyLanguage:          "语言",
		KeySave:              "保存",
		KeyCancel:            "取消",
		KeySearchPlaceholder: "筛选结果",
		KeySearchType:        "搜索字段",
		KeyFullLink:          "完整链接",
		KeyCopyLinks:         "复制链接",
		KeyCopyLink:          "链接",
		KeyReveal:            "显示",
		KeyDropHint:          "将 .torrent 文件或文件夹拖到这里",
		KeyNoMatches:         "没有匹配 %q 的结果",
		KeyViewError:         "无法显示结果: %v",
		KeyCopied:            "已复制 %d 条链接",
		KeyCopyFailed:        "复制失败: %v",
		KeyNothingToCopy:     "没有可复制的内容",
		KeyLinkCopied:        "链接已复制",
		KeyErrorOpeningFile:  "打开文件出错",
		KeyDropFailed:        "处理失败: %v",
		KeyConverting:        "正在转换 %d 个项目...",
		KeyIngestionOff:      "无法接收结果, 请重启应用",
		KeyMaxParallel:       "并行转换数",
		KeyFenceStale:        "忽略之前拖放的结果",
		KeySettingsSaved:     "设置已保存",
		KeyResultCount:       "%d 条结果",
		KeyBatchDone:         "已转换 %d 个, 失败 %d 个",
	}
}
