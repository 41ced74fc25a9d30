package types

// Localizer resolve textos para o usuário. O motor de análise nunca embute texto literal.
type Localizer interface {
	T(key string, params map[string]string) string
	FormatNumber(value float64, decimals int) string
	Locale() string
}
