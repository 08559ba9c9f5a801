package ui

import (
	"strings"

	"fyne.io/fyne/v2/lang"

	"github.com/ytget/multitool/internal/model"
)

// Localization manages UI text translations
type Localization struct {
	currentLanguage string
	texts           map[string]map[string]string
}

// Text keys for localization
const (
	KeyAppTitle = "app_title"

	// Actions
	KeyPDFToImage    = "pdf_to_image"
	KeyImageToPDF    = "image_to_pdf"
	KeyWordToPDF     = "word_to_pdf"
	KeyCompressImage = "compress_image"
	KeyLockPDF       = "lock_pdf"
	KeyPassportPhoto = "passport_photo"

	// Completion messages
	KeyDonePDFToImage    = "done_pdf_to_image"
	KeyDoneImageToPDF    = "done_image_to_pdf"
	KeyDoneWordToPDF     = "done_word_to_pdf"
	KeyDoneCompressImage = "done_compress_image"
	KeyDoneLockPDF       = "done_lock_pdf"
	KeyDonePassport      = "done_passport"

	// Dialog titles and prompts
	KeySelectPDF        = "select_pdf"
	KeySelectImages     = "select_images"
	KeySelectImage      = "select_image"
	KeySelectWord       = "select_word"
	KeySelectOutputDir  = "select_output_dir"
	KeySavePDF          = "save_pdf"
	KeySaveCompressed   = "save_compressed"
	KeySaveEncrypted    = "save_encrypted"
	KeySavePassport     = "save_passport"
	KeyPassword         = "password"
	KeyEnterPassword    = "enter_password"
	KeyCropImage        = "crop_image"
	KeyCropHint         = "crop_hint"
	KeyPassportOptions  = "passport_options"
	KeyNumberOfPhotos   = "number_of_photos"
	KeyPhotoSize        = "photo_size"
	KeyAdd              = "add"
	KeyRemove           = "remove"
	KeyMoveUp           = "move_up"
	KeyMoveDown         = "move_down"
	KeyNext             = "next"
	KeyNoImagesSelected = "no_images_selected"
	KeyCountRange       = "count_range"
	KeyFileName         = "file_name"
	KeyReplaceFile      = "replace_file"
	KeyImageCount       = "image_count"
	KeyCropSelection    = "crop_selection"
	KeyCropWholeImage   = "crop_whole_image"

	// Job rows and notifications
	KeyStop             = "stop"
	KeyOpen             = "open"
	KeyReveal           = "reveal"
	KeyWorking          = "working"
	KeyJobCompleted     = "job_completed"
	KeyJobFailed        = "job_failed"
	KeyJobStopped       = "job_stopped"
	KeyErrorOpeningFile = "error_opening_file"
	KeyAlreadyRunning   = "already_running"
	KeyOfficeMissing    = "office_missing"

	// Menu and settings
	KeySettings        = "settings"
	KeyFile            = "file"
	KeyLanguage        = "language"
	KeyOutputDirectory = "output_directory"
	KeyRenderDPI       = "render_dpi"
	KeyCompressQuality = "compress_quality"
	KeyOfficeBinary    = "office_binary"
	KeyOfficeTimeout   = "office_timeout"
	KeyAutoReveal      = "auto_reveal"
	KeyDarkTheme       = "dark_theme"
	KeyInterface       = "interface"
	KeyConversion      = "conversion"
	KeySave            = "save"
	KeyCancel          = "cancel"
	KeyBrowse          = "browse"
	KeySettingsSaved   = "settings_saved"
	KeySystemLanguage  = "system_language"
	KeyInvalidNumber   = "invalid_number"
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

// SetLanguage sets the current language; "system" follows the OS locale
func (l *Localization) SetLanguage(lang string) {
	if lang == "system" {
		lang = systemLanguage()
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
	}
}

// Button label and completion message keys per action
var (
	actionKeys = map[model.JobKind]string{
		model.JobKindPDFToImages:    KeyPDFToImage,
		model.JobKindImagesToPDF:    KeyImageToPDF,
		model.JobKindWordToPDF:      KeyWordToPDF,
		model.JobKindCompressImage:  KeyCompressImage,
		model.JobKindLockPDF:        KeyLockPDF,
		model.JobKindPassportPhotos: KeyPassportPhoto,
	}
	doneKeys = map[model.JobKind]string{
		model.JobKindPDFToImages:    KeyDonePDFToImage,
		model.JobKindImagesToPDF:    KeyDoneImageToPDF,
		model.JobKindWordToPDF:      KeyDoneWordToPDF,
		model.JobKindCompressImage:  KeyDoneCompressImage,
		model.JobKindLockPDF:        KeyDoneLockPDF,
		model.JobKindPassportPhotos: KeyDonePassport,
	}
)

// ActionText returns the button label for a job kind
func (l *Localization) ActionText(kind model.JobKind) string {
	if key, ok := actionKeys[kind]; ok {
		return l.GetText(key)
	}
	return kind.Label()
}

// DoneText returns the completion message for a job kind
func (l *Localization) DoneText(kind model.JobKind) string {
	if key, ok := doneKeys[kind]; ok {
		return l.GetText(key)
	}
	return l.GetText(KeyJobCompleted)
}

// systemLanguage returns the two-letter OS language, "en" when unknown
func systemLanguage() string {
	tag := lang.SystemLocale().LanguageString()
	if len(tag) < 2 {
		return "en"
	}
	return strings.ToLower(tag[:2])
}

// initializeTexts initializes all text translations
func (l *Localization) initializeTexts() {
	// English texts
	l.texts["en"] = map[string]string{
		KeyAppTitle: "Multi-Utility App",

		KeyPDFToImage:    "PDF to Image",
		KeyImageToPDF:    "Image to PDF",
		KeyWordToPDF:     "Word to PDF",
		KeyCompressImage: "Compress Image",
		KeyLockPDF:       "Lock PDF with Password",
		KeyPassportPhoto: "Make Passport Size Photo",

		KeyDonePDFToImage:    "PDF Converted to Images",
		KeyDoneImageToPDF:    "Images Converted to PDF",
		KeyDoneWordToPDF:     "Word Document Converted to PDF",
		KeyDoneCompressImage: "Image Compressed",
		KeyDoneLockPDF:       "PDF Locked with Password",
		KeyDonePassport:      "Passport photos saved to",

		KeySelectPDF:        "Select PDF",
		KeySelectImages:     "Select Images",
		KeySelectImage:      "Select Image",
		KeySelectWord:       "Select Word Document",
		KeySelectOutputDir:  "Select Output Folder",
		KeySavePDF:          "Save PDF",
		KeySaveCompressed:   "Save Compressed Image",
		KeySaveEncrypted:    "Save Encrypted PDF",
		KeySavePassport:     "Save Passport Photos",
		KeyPassword:         "Password",
		KeyEnterPassword:    "Enter password for PDF:",
		KeyCropImage:        "Select Area",
		KeyCropHint:         "Crop the image to the appropriate size.",
		KeyPassportOptions:  "Passport Photos",
		KeyNumberOfPhotos:   "Number of photos",
		KeyPhotoSize:        "Choose passport size",
		KeyAdd:              "Add",
		KeyRemove:           "Remove",
		KeyMoveUp:           "Up",
		KeyMoveDown:         "Down",
		KeyNext:             "Next",
		KeyNoImagesSelected: "No images selected",
		KeyCountRange:       "Enter a number from 1 to 50",
		KeyFileName:         "File name",
		KeyReplaceFile:      "%s already exists. Replace it?",
		KeyImageCount:       "Images: %d",
		KeyCropSelection:    "Selection: %d x %d px",
		KeyCropWholeImage:   "No selection, the whole image is used",

		KeyStop:             "Stop",
		KeyOpen:             "Open",
		KeyReveal:           "Reveal",
		KeyWorking:          "Working",
		KeyJobCompleted:     "Completed",
		KeyJobFailed:        "Failed",
		KeyJobStopped:       "Stopped",
		KeyErrorOpeningFile: "Error opening file",
		KeyAlreadyRunning:   "Already running",
		KeyOfficeMissing:    "LibreOffice was not found. Install it or set its path in Settings.",

		KeySettings:        "Settings",
		KeyFile:            "File",
		KeyLanguage:        "Language",
		KeyOutputDirectory: "Output Directory",
		KeyRenderDPI:       "Page Image DPI",
		KeyCompressQuality: "JPEG Quality",
		KeyOfficeBinary:    "LibreOffice Executable",
		KeyOfficeTimeout:   "Conversion Timeout (s)",
		KeyAutoReveal:      "Reveal files when done",
		KeyDarkTheme:       "Dark theme",
		KeyInterface:       "Interface",
		KeyConversion:      "Conversion",
		KeySave:            "Save",
		KeyCancel:          "Cancel",
		KeyBrowse:          "Browse",
		KeySettingsSaved:   "Settings saved successfully!",
		KeySystemLanguage:  "System",
		KeyInvalidNumber:   "Not a number",
	}

	// Russian texts
	l.texts["ru"] = map[string]string{
		KeyAppTitle: "Мультиутилита",

		KeyPDFToImage:    "PDF в изображения",
		KeyImageToPDF:    "Изображения в PDF",
		KeyWordToPDF:     "Word в PDF",
		KeyCompressImage: "Сжать изображение",
		KeyLockPDF:       "Защитить PDF паролем",
		KeyPassportPhoto: "Фото на паспорт",

		KeyDonePDFToImage:    "PDF преобразован в изображения",
		KeyDoneImageToPDF:    "Изображения преобразованы в PDF",
		KeyDoneWordToPDF:     "Документ Word преобразован в PDF",
		KeyDoneCompressImage: "Изображение сжато",
		KeyDoneLockPDF:       "PDF защищен паролем",
		KeyDonePassport:      "Фото на паспорт сохранены в",

		KeySelectPDF:        "Выберите PDF",
		KeySelectImages:     "Выберите изображения",
		KeySelectImage:      "Выберите изображение",
		KeySelectWord:       "Выберите документ Word",
		KeySelectOutputDir:  "Выберите папку",
		KeySavePDF:          "Сохранить PDF",
		KeySaveCompressed:   "Сохранить сжатое изображение",
		KeySaveEncrypted:    "Сохранить защищенный PDF",
		KeySavePassport:     "Сохранить фото на паспорт",
		KeyPassword:         "Пароль",
		KeyEnterPassword:    "Введите пароль для PDF:",
		KeyCropImage:        "Выделите область",
		KeyCropHint:         "Обрежьте изображение до нужного размера.",
		KeyPassportOptions:  "Фото на паспорт",
		KeyNumberOfPhotos:   "Количество фото",
		KeyPhotoSize:        "Размер фото",
		KeyAdd:              "Добавить",
		KeyRemove:           "Удалить",
		KeyMoveUp:           "Выше",
		KeyMoveDown:         "Ниже",
		KeyNext:             "Далее",
		KeyNoImagesSelected: "Изображения не выбраны",
		KeyCountRange:       "Введите число от 1 до 50",
		KeyFileName:         "Имя файла",
		KeyReplaceFile:      "Файл %s уже существует. Заменить?",
		KeyImageCount:       "Изображений: %d",
		KeyCropSelection:    "Выделено: %d x %d пикс.",
		KeyCropWholeImage:   "Нет выделения, используется всё изображение",

		KeyStop:             "Стоп",
		KeyOpen:             "Открыть",
		KeyReveal:           "Показать",
		KeyWorking:          "Выполняется",
		KeyJobCompleted:     "Готово",
		KeyJobFailed:        "Ошибка",
		KeyJobStopped:       "Остановлено",
		KeyErrorOpeningFile: "Ошибка открытия файла",
		KeyAlreadyRunning:   "Уже выполняется",
		KeyOfficeMissing:    "LibreOffice не найден. Установите его или укажите путь в настройках.",

		KeySettings:        "Настройки",
		KeyFile:            "Файл",
		KeyLanguage:        "Язык",
		KeyOutputDirectory: "Папка сохранения",
		KeyRenderDPI:       "DPI страниц",
		KeyCompressQuality: "Качество JPEG",
		KeyOfficeBinary:    "Исполняемый файл LibreOffice",
		KeyOfficeTimeout:   "Таймаут конвертации (с)",
		KeyAutoReveal:      "Показывать файлы по завершении",
		KeyDarkTheme:       "Темная тема",
		KeyInterface:       "Интерфейс",
		KeyConversion:      "Конвертация",
		KeySave:            "Сохранить",
		KeyCancel:          "Отмена",
		KeyBrowse:          "Обзор",
		KeySettingsSaved:   "Настройки успешно сохранены!",
		KeySystemLanguage:  "Системный",
		KeyInvalidNumber:   "Не число",
	}

	// Portuguese texts
	l.texts["pt"] = map[string]string{
		KeyAppTitle: "Multiutilitário",

		KeyPDFToImage:    "PDF para Imagem",
		KeyImageToPDF:    "Imagem para PDF",
		KeyWordToPDF:     "Word para PDF",
		KeyCompressImage: "Comprimir Imagem",
		KeyLockPDF:       "Proteger PDF com Senha",
		KeyPassportPhoto: "Criar Foto de Passaporte",

		KeyDonePDFToImage:    "PDF convertido em imagens",
		KeyDoneImageToPDF:    "Imagens convertidas em PDF",
		KeyDoneWordToPDF:     "Documento Word convertido em PDF",
		KeyDoneCompressImage: "Imagem comprimida",
		KeyDoneLockPDF:       "PDF protegido com senha",
		KeyDonePassport:      "Fotos de passaporte salvas em",

		KeySelectPDF:        "Selecionar PDF",
		KeySelectImages:     "Selecionar Imagens",
		KeySelectImage:      "Selecionar Imagem",
		KeySelectWord:       "Selecionar Documento Word",
		KeySelectOutputDir:  "Selecionar Pasta",
		KeySavePDF:          "Salvar PDF",
		KeySaveCompressed:   "Salvar Imagem Comprimida",
		KeySaveEncrypted:    "Salvar PDF Protegido",
		KeySavePassport:     "Salvar Fotos de Passaporte",
		KeyPassword:         "Senha",
		KeyEnterPassword:    "Digite a senha do PDF:",
		KeyCropImage:        "Selecionar Área",
		KeyCropHint:         "Recorte a imagem no tamanho adequado.",
		KeyPassportOptions:  "Fotos de Passaporte",
		KeyNumberOfPhotos:   "Número de fotos",
		KeyPhotoSize:        "Tamanho da foto",
		KeyAdd:              "Adicionar",
		KeyRemove:           "Remover",
		KeyMoveUp:           "Subir",
		KeyMoveDown:         "Descer",
		KeyNext:             "Próximo",
		KeyNoImagesSelected: "Nenhuma imagem selecionada",
		KeyCountRange:       "Digite um número de 1 a 50",
		KeyFileName:         "Nome do arquivo",
		KeyReplaceFile:      "%s já existe. Substituir?",
		KeyImageCount:       "Imagens: %d",
		KeyCropSelection:    "Seleção: %d x %d px",
		KeyCropWholeImage:   "Sem seleção, a imagem inteira será usada",

		KeyStop:             "Parar",
		KeyOpen:             "Abrir",
		KeyReveal:           "Mostrar",
		KeyWorking:          "Processando",
		KeyJobCompleted:     "Concluído",
		KeyJobFailed:        "Falhou",
		KeyJobStopped:       "Parado",
		KeyErrorOpeningFile: "Erro ao abrir arquivo",
		KeyAlreadyRunning:   "Já em execução",
		KeyOfficeMissing:    "LibreOffice não encontrado. Instale-o ou defina o caminho nas Configurações.",

		KeySettings:        "Configurações",
		KeyFile:            "Arquivo",
		KeyLanguage:        "Idioma",
		KeyOutputDirectory: "Diretório de Saída",
		KeyRenderDPI:       "DPI das Páginas",
		KeyCompressQuality: "Qualidade JPEG",
		KeyOfficeBinary:    "Executável do LibreOffice",
		KeyOfficeTimeout:   "Tempo Limite (s)",
		KeyAutoReveal:      "Mostrar arquivos ao concluir",
		KeyDarkTheme:       "Tema escuro",
		KeyInterface:       "Interface",
		KeyConversion:      "Conversão",
		KeySave:            "Salvar",
		KeyCancel:          "Cancelar",
		KeyBrowse:          "Navegar",
		KeySettingsSaved:   "Configurações salvas com sucesso!",
		KeySystemLanguage:  "Sistema",
		KeyInvalidNumber:   "Não é um número",
	}
}
