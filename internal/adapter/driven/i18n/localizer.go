package i18n

import (
	"embed"
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
	"gopkg.in/yaml.v3"
)

//go:embed locales/*.yaml
var catalogFS embed.FS

// supported lista os catálogos embutidos; o primeiro é o fallback.
var supported = []language.Tag{language.English, language.Slovenian}

var matcher = language.NewMatcher(supported)

// Localizer resolves user-facing strings and formats numbers for one locale.
type Localizer struct {
	locale   string
	tag      language.Tag
	messages map[string]string
	fallback map[string]string
	printer  *message.Printer
}

// New cria um Localizer para o locale pedido (ex.: "en", "en-US", "sl").
// Locales sem catálogo caem para o inglês.
func New(locale string) (*Localizer, error) {
	name := locale
	requested, err := language.Parse(locale)
	if err != nil {
		requested = language.English
		name = requested.String()
	}
	_, idx, _ := matcher.Match(requested)

	fallback, err := loadCatalog(supported[0])
	if err != nil {
		return nil, err
	}
	messages := fallback
	if idx > 0 {
		if messages, err = loadCatalog(supported[idx]); err != nil {
			return nil, err
		}
	}

	return &Localizer{
		locale:   name,
		tag:      requested,
		messages: messages,
		fallback: fallback,
		printer:  message.NewPrinter(requested),
	}, nil
}

func loadCatalog(tag language.Tag) (map[string]string, error) {
	base, _ := tag.Base()
	data, err := catalogFS.ReadFile(fmt.Sprintf("locales/%s.yaml", base.String()))
	if err != nil {
		return nil, fmt.Errorf("reading catalog %s: %w", base, err)
	}
	messages := map[string]string{}
	if err := yaml.Unmarshal(data, &messages); err != nil {
		return nil, fmt.Errorf("parsing catalog %s: %w", base, err)
	}
	return messages, nil
}

// T looks up key and substitutes {name} placeholders. Unknown keys return the key itself.
func (l *Localizer) T(key string, params map[string]string) string {
	msg, ok := l.messages[key]
	if !ok {
		if msg, ok = l.fallback[key]; !ok {
			return key
		}
	}
	if len(params) == 0 {
		return msg
	}
	pairs := make([]string, 0, len(params)*2)
	for k, v := range params {
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(msg)
}

// FormatNumber formata com separadores do locale e casas decimais fixas.
func (l *Localizer) FormatNumber(value float64, decimals int) string {
	return l.printer.Sprint(number.Decimal(value,
		number.MinFractionDigits(decimals),
		number.MaxFractionDigits(decimals),
	))
}

// Locale devolve o locale configurado.
func (l *Localizer) Locale() string {
	return l.locale
}
